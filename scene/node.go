// Package scene implements the retained scene graph and flexbox layout
// engine: a node tree with capability tags, a single-pass-per-axis
// flexbox solver, and a pre-order compositor that diffs against per-node
// frame buffer caches.
//
// The two-pass measure/draw shape (measure children, then draw them) is
// grounded in a classic retained-mode layout tree: capability tags,
// grow/shrink/basis, gap, align-items/justify-content, absolute
// positioning, z-index ordering and frame-buffer caching generalize that
// shape to a full flexbox subset.
package scene

import "github.com/opentui/opentui-go/cellbuf"

// Capability is a bitset of the roles a Node can play (drawable,
// container, mouse target, ...), letting one node type opt into several
// at once.
type Capability uint8

const (
	CapDrawable Capability = 1 << iota
	CapContainer
	CapMouseTarget
	CapSelectable
	CapLineInfoProvider
	CapFocusable
)

func (c Capability) Has(f Capability) bool { return c&f != 0 }

// Drawable is implemented by node kinds that paint themselves into a cell
// buffer (Box, Text, LineNumberGutter, ...). buf is either the root back
// buffer (for an unbuffered node, so x,y is this node's absolute position)
// or the node's own frame buffer (so x,y is always 0,0).
type Drawable interface {
	RenderSelf(buf *cellbuf.Buffer, x, y, width, height int)
}

// MeasureFunc lets a leaf node declare its own intrinsic size given the
// space available to it (e.g. Text measuring its wrapped line count).
type MeasureFunc func(availW, availH int) (w, h int)

// MouseEvent is the minimal event shape a node's mouse handler receives;
// the event bus (C10) is responsible for hit-testing and dispatch.
type MouseEvent struct {
	X, Y   int
	Button int
	Kind   MouseEventKind

	stopped bool
}

// StopPropagation halts further bubbling of this event past the current
// node.
func (e *MouseEvent) StopPropagation() { e.stopped = true }

// Stopped reports whether StopPropagation was called.
func (e *MouseEvent) Stopped() bool { return e.stopped }

type MouseEventKind int

const (
	MouseDown MouseEventKind = iota
	MouseUp
	MouseMove
	MouseDrag
	MouseDragEnd
	MouseDrop
	MouseOver
	MouseOut
	MouseScroll
)

// Node is one element of the retained scene graph.
type Node struct {
	ID           string
	Capabilities Capability

	Direction      Direction
	Width, Height  Size
	Grow, Shrink   float64
	Padding, Margin Edges
	Gap            int
	AlignItems     Align
	JustifyContent Justify
	MinWidth, MinHeight int
	MaxWidth, MaxHeight int
	PositionMode   Position
	Left, Top      int
	ZIndex         int
	Visible        bool

	Drawable Drawable
	Measure  MeasureFunc

	// FrameBuffer, when non-nil, caches this node's composited content;
	// the compositor blends it instead of calling RenderSelf when the
	// node isn't render-dirty.
	FrameBuffer *cellbuf.Buffer

	parent   *Node
	children []*Node

	layoutDirty bool
	renderDirty bool
	layoutError bool

	computedX, computedY int
	computedW, computedH int

	lifecycleCallbacks []func()
	mouseHandler       func(*MouseEvent) bool
	focusHandler       func(bool)
	focused            bool
}

// NewNode creates a node with sensible flexbox defaults: auto width/height,
// no grow, shrink 1 (matches CSS flexbox's default shrink), stretch
// cross-alignment, and both dirty flags set so it renders on its first
// frame.
func NewNode(caps Capability) *Node {
	return &Node{
		Capabilities: caps,
		Width:        Auto(),
		Height:       Auto(),
		Shrink:       1,
		MinWidth:     -1, MinHeight: -1,
		MaxWidth: -1, MaxHeight: -1,
		AlignItems:     AlignStretch,
		JustifyContent: JustifyStart,
		Visible:        true,
		layoutDirty:    true,
		renderDirty:    true,
	}
}

// Add appends child to this node's children, marking layout dirty.
func (n *Node) Add(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
	n.MarkLayoutDirty()
}

// Remove detaches the child with the given id, if present, and reports
// whether one was found.
func (n *Node) Remove(id string) bool {
	for i, c := range n.children {
		if c.ID == id {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			n.MarkLayoutDirty()
			return true
		}
	}
	return false
}

// DestroyRecursively detaches every descendant, breaking parent/child
// references so the subtree can be garbage collected independent of
// anything still holding a reference to n itself.
func (n *Node) DestroyRecursively() {
	for _, c := range n.children {
		c.DestroyRecursively()
	}
	n.children = nil
	n.parent = nil
	n.FrameBuffer = nil
}

// Children returns the node's children in insertion order.
func (n *Node) Children() []*Node { return n.children }

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Bounds returns the node's absolute position and computed size from the
// most recent layout pass.
func (n *Node) Bounds() (x, y, w, h int) {
	return n.computedX, n.computedY, n.computedW, n.computedH
}

// RequestRender marks this node (and every ancestor, since an ancestor
// that owns a frame buffer must recomposite to pick up the change)
// render-dirty, without forcing a layout pass.
func (n *Node) RequestRender() {
	for cur := n; cur != nil; cur = cur.parent {
		cur.renderDirty = true
	}
}

// MarkLayoutDirty marks this node (and every ancestor, up to the root that
// will actually run the solver) layout-dirty.
func (n *Node) MarkLayoutDirty() {
	for cur := n; cur != nil; cur = cur.parent {
		cur.layoutDirty = true
		cur.renderDirty = true
	}
}

// OnLifecyclePass registers cb to run once before layout each frame this
// node participates in.
func (n *Node) OnLifecyclePass(cb func()) {
	n.lifecycleCallbacks = append(n.lifecycleCallbacks, cb)
}

func (n *Node) runLifecycle() {
	for _, cb := range n.lifecycleCallbacks {
		cb()
	}
	for _, c := range n.children {
		c.runLifecycle()
	}
}

// SetMouseHandler installs the callback invoked by OnMouse.
func (n *Node) SetMouseHandler(fn func(*MouseEvent) bool) { n.mouseHandler = fn }

// OnMouse dispatches event to this node's handler, if any, returning
// whether it was handled.
func (n *Node) OnMouse(event *MouseEvent) bool {
	if n.mouseHandler == nil {
		return false
	}
	return n.mouseHandler(event)
}

// SetFocusHandler installs the callback invoked by SetFocused.
func (n *Node) SetFocusHandler(fn func(bool)) { n.focusHandler = fn }

// SetFocused updates this node's focus state, notifying its handler (if
// any) of the transition. The event bus is responsible for ensuring only
// one node is focused at a time.
func (n *Node) SetFocused(v bool) {
	if n.focused == v {
		return
	}
	n.focused = v
	if n.focusHandler != nil {
		n.focusHandler(v)
	}
}

// Focused reports whether this node currently holds focus.
func (n *Node) Focused() bool { return n.focused }

// Dirty reports whether n or any descendant needs a layout or render
// pass before the next present, the frame loop's gate for whether to
// composite at all this tick.
func (n *Node) Dirty() bool {
	if n.layoutDirty || n.renderDirty {
		return true
	}
	for _, c := range n.children {
		if c.Dirty() {
			return true
		}
	}
	return false
}
