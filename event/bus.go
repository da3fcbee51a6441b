// Package event implements the scene-graph event bus: hit-testing,
// focus routing, hover (over/out) synthesis, and the drag state machine
// (idle -> pressed -> dragging, always emitting drag-end before drop).
// The byte-stream parser has no notion of any of this — it only knows
// raw down/up/move/drag/scroll — so the bus is what turns that into
// scene-routed events.
package event

import (
	"github.com/opentui/opentui-go/input"
	"github.com/opentui/opentui-go/scene"
)

type dragPhase int

const (
	dragIdle dragPhase = iota
	dragPressed
	dragDragging
)

// Dispatcher routes parsed input events into a scene tree.
type Dispatcher struct {
	Root             *scene.Node
	ScreenW, ScreenH int

	// DragThreshold is the Chebyshev distance in cells a press must move
	// before it counts as a drag rather than a click.
	DragThreshold int

	hovered  *scene.Node
	focused  *scene.Node
	pressed  *scene.Node
	phase    dragPhase
	pressX, pressY int
}

// NewDispatcher creates a dispatcher hit-testing against root within a
// screenW x screenH viewport.
func NewDispatcher(root *scene.Node, screenW, screenH int) *Dispatcher {
	return &Dispatcher{Root: root, ScreenW: screenW, ScreenH: screenH, DragThreshold: 1}
}

// Resize updates the viewport hit-testing is clipped to.
func (d *Dispatcher) Resize(w, h int) { d.ScreenW, d.ScreenH = w, h }

// Focused returns the currently focused node, or nil.
func (d *Dispatcher) Focused() *scene.Node { return d.focused }

// Dispatch routes one parsed input event into the scene graph. Only
// EventMouse is scene-routed here; EventKey delivery to the focused node
// and focus-restore on EventFocusIn are the frame loop's concern.
func (d *Dispatcher) Dispatch(ev input.Event) {
	if ev.Kind != input.EventMouse {
		return
	}
	switch ev.MouseKind {
	case input.MouseScroll:
		d.dispatchAt(ev.X, ev.Y, scene.MouseScroll, ev.Button)
	case input.MouseDown:
		d.handleDown(ev)
	case input.MouseDrag:
		d.handleDrag(ev)
	case input.MouseMove:
		d.handleMove(ev)
	case input.MouseUp:
		d.handleUp(ev)
	}
}

func (d *Dispatcher) hitTest(x, y int) *scene.Node {
	if d.Root == nil {
		return nil
	}
	return scene.HitTest(d.Root, d.ScreenW, d.ScreenH, x, y)
}

func (d *Dispatcher) handleDown(ev input.Event) {
	hit := d.hitTest(ev.X, ev.Y)
	d.pressed = hit
	d.pressX, d.pressY = ev.X, ev.Y
	d.phase = dragPressed

	d.setFocus(nearestFocusable(hit))

	if hit != nil {
		if shouldStartSelection(hit) {
			beginSelection(hit, ev.X, ev.Y)
		}
		d.bubble(hit, &scene.MouseEvent{X: ev.X, Y: ev.Y, Button: ev.Button, Kind: scene.MouseDown})
	}
}

func (d *Dispatcher) handleDrag(ev input.Event) {
	if d.phase == dragIdle || d.pressed == nil {
		d.handleMove(ev)
		return
	}
	dx, dy := ev.X-d.pressX, ev.Y-d.pressY
	if d.phase == dragPressed && abs(dx) < d.DragThreshold && abs(dy) < d.DragThreshold {
		return
	}
	d.phase = dragDragging
	if shouldStartSelection(d.pressed) {
		extendSelection(d.pressed, ev.X, ev.Y)
	}
	d.bubble(d.pressed, &scene.MouseEvent{X: ev.X, Y: ev.Y, Button: ev.Button, Kind: scene.MouseDrag})
}

func (d *Dispatcher) handleUp(ev input.Event) {
	switch {
	case d.phase == dragDragging && d.pressed != nil:
		d.bubble(d.pressed, &scene.MouseEvent{X: ev.X, Y: ev.Y, Button: ev.Button, Kind: scene.MouseDragEnd})
		if dropTarget := d.hitTest(ev.X, ev.Y); dropTarget != nil {
			d.bubble(dropTarget, &scene.MouseEvent{X: ev.X, Y: ev.Y, Button: ev.Button, Kind: scene.MouseDrop})
		}
	case d.pressed != nil:
		d.bubble(d.pressed, &scene.MouseEvent{X: ev.X, Y: ev.Y, Button: ev.Button, Kind: scene.MouseUp})
	}
	d.pressed = nil
	d.phase = dragIdle
}

func (d *Dispatcher) handleMove(ev input.Event) {
	hit := d.hitTest(ev.X, ev.Y)
	if hit != d.hovered {
		if d.hovered != nil {
			d.bubble(d.hovered, &scene.MouseEvent{X: ev.X, Y: ev.Y, Kind: scene.MouseOut})
		}
		if hit != nil {
			d.bubble(hit, &scene.MouseEvent{X: ev.X, Y: ev.Y, Kind: scene.MouseOver})
		}
		d.hovered = hit
	}
	if hit != nil {
		d.bubble(hit, &scene.MouseEvent{X: ev.X, Y: ev.Y, Button: ev.Button, Kind: scene.MouseMove})
	}
}

func (d *Dispatcher) dispatchAt(x, y int, kind scene.MouseEventKind, button int) {
	if hit := d.hitTest(x, y); hit != nil {
		d.bubble(hit, &scene.MouseEvent{X: x, Y: y, Button: button, Kind: kind})
	}
}

// bubble delivers ev to start and then each ancestor in turn, stopping
// once a handler returns true or calls StopPropagation.
func (d *Dispatcher) bubble(start *scene.Node, ev *scene.MouseEvent) {
	for cur := start; cur != nil; cur = cur.Parent() {
		if cur.OnMouse(ev) || ev.Stopped() {
			return
		}
	}
}

func (d *Dispatcher) setFocus(n *scene.Node) {
	if n == d.focused {
		return
	}
	if d.focused != nil {
		d.focused.SetFocused(false)
	}
	d.focused = n
	if d.focused != nil {
		d.focused.SetFocused(true)
	}
}

func nearestFocusable(n *scene.Node) *scene.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Capabilities.Has(scene.CapFocusable) {
			return cur
		}
	}
	return nil
}

func shouldStartSelection(n *scene.Node) bool {
	return n.Capabilities.Has(scene.CapSelectable)
}

func localCoords(n *scene.Node, x, y int) (int, int) {
	nx, ny, _, _ := n.Bounds()
	return x - nx, y - ny
}

func beginSelection(n *scene.Node, x, y int) {
	if txt, ok := n.Drawable.(*scene.Text); ok {
		lx, ly := localCoords(n, x, y)
		txt.BeginSelection(lx, ly)
	}
}

func extendSelection(n *scene.Node, x, y int) {
	if txt, ok := n.Drawable.(*scene.Text); ok {
		lx, ly := localCoords(n, x, y)
		txt.ExtendSelection(lx, ly)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
