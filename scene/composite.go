package scene

import (
	"sort"

	"github.com/opentui/opentui-go/cellbuf"
	"github.com/opentui/opentui-go/color"
)

// Tree owns the root node and the back buffer the compositing pass paints
// into.
type Tree struct {
	Root *Node
	back *cellbuf.Buffer
	bg   color.RGBA
}

// NewTree creates a scene rooted at root, with a back buffer of the given
// size.
func NewTree(root *Node, width, height int) *Tree {
	return &Tree{Root: root, back: cellbuf.New(width, height), bg: color.Transparent}
}

// SetBackground sets the color the root back buffer clears to each frame.
func (t *Tree) SetBackground(c color.RGBA) { t.bg = c }

// Resize reallocates the back buffer and marks the whole tree dirty.
func (t *Tree) Resize(width, height int) {
	t.back = cellbuf.New(width, height)
	t.Root.MarkLayoutDirty()
}

// Frame runs one lifecycle+layout+composite pass and returns the
// composited back buffer.
func (t *Tree) Frame() *cellbuf.Buffer {
	t.Root.runLifecycle()
	if t.Root.layoutDirty {
		t.Root.Layout(t.back.Width, t.back.Height)
	}
	t.back.Clear(t.bg)
	composite(t.Root, t.back, clip{0, 0, t.back.Width, t.back.Height})
	clearRenderDirty(t.Root)
	return t.back
}

type clip struct{ x0, y0, x1, y1 int }

func (c clip) intersect(x, y, w, h int) clip {
	x1, y1 := x+w, y+h
	if x > c.x0 {
		c.x0 = x
	}
	if y > c.y0 {
		c.y0 = y
	}
	if x1 < c.x1 {
		c.x1 = x1
	}
	if y1 < c.y1 {
		c.y1 = y1
	}
	if c.x1 < c.x0 {
		c.x1 = c.x0
	}
	if c.y1 < c.y0 {
		c.y1 = c.y0
	}
	return c
}

func (c clip) empty() bool { return c.x1 <= c.x0 || c.y1 <= c.y0 }

// composite walks the tree in pre-order, skipping invisible subtrees,
// drawing (zIndex, insertionOrder)-ordered children within each parent,
// and blending a node's cached frame buffer instead of re-rendering it
// when it isn't render-dirty.
func composite(n *Node, dst *cellbuf.Buffer, parentClip clip) {
	if !n.Visible {
		return
	}
	x, y, w, h := n.Bounds()
	nodeClip := parentClip.intersect(x, y, w, h)

	if n.Capabilities.Has(CapDrawable) && n.Drawable != nil {
		if n.FrameBuffer != nil && !n.renderDirty {
			dst.Blend(n.FrameBuffer, x, y)
		} else if n.FrameBuffer != nil {
			if n.FrameBuffer.Width != w || n.FrameBuffer.Height != h {
				n.FrameBuffer.Resize(w, h)
			}
			n.FrameBuffer.Clear(color.Transparent)
			n.Drawable.RenderSelf(n.FrameBuffer, 0, 0, w, h)
			dst.Blend(n.FrameBuffer, x, y)
		} else {
			n.Drawable.RenderSelf(dst, x, y, w, h)
		}
	}

	if nodeClip.empty() {
		return
	}

	children := orderedChildren(n.children)
	for _, c := range children {
		composite(c, dst, nodeClip)
	}
}

func orderedChildren(children []*Node) []*Node {
	out := make([]*Node, len(children))
	copy(out, children)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

func clearRenderDirty(n *Node) {
	n.renderDirty = false
	for _, c := range n.children {
		clearRenderDirty(c)
	}
}
