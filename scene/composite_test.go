package scene

import (
	"testing"

	"github.com/opentui/opentui-go/cellbuf"
	"github.com/opentui/opentui-go/color"
)

type stubDrawable struct {
	calls  int
	fillCh rune
}

func (s *stubDrawable) RenderSelf(buf *cellbuf.Buffer, x, y, w, h int) {
	s.calls++
	for yy := 0; yy < h; yy++ {
		for xx := 0; xx < w; xx++ {
			buf.SetCell(x+xx, y+yy, cellbuf.Cell{Char: s.fillCh, Fg: color.RGBA{A: 1}, Bg: color.Transparent})
		}
	}
}

func TestFrameRendersDrawableAtAbsolutePosition(t *testing.T) {
	root := NewNode(CapContainer)
	root.Width, root.Height = Fixed(10), Fixed(5)
	child := NewNode(CapDrawable)
	child.Width, child.Height = Fixed(3), Fixed(1)
	child.PositionMode = PositionAbsolute
	child.Left, child.Top = 4, 2
	d := &stubDrawable{fillCh: 'x'}
	child.Drawable = d
	root.Add(child)

	tree := NewTree(root, 10, 5)
	back := tree.Frame()

	if back.Get(4, 2).Char != 'x' || back.Get(6, 2).Char != 'x' {
		t.Errorf("expected the drawable rendered at its absolute bounds")
	}
	if back.Get(0, 0).Char == 'x' {
		t.Errorf("expected cell (0,0) untouched")
	}
}

func TestFrameBlendsCachedFrameBufferWhenNotRenderDirty(t *testing.T) {
	root := NewNode(CapContainer)
	root.Width, root.Height = Fixed(5), Fixed(5)
	child := NewNode(CapDrawable)
	child.Width, child.Height = Fixed(5), Fixed(5)
	d := &stubDrawable{fillCh: 'y'}
	child.Drawable = d
	child.FrameBuffer = cellbuf.New(5, 5)
	root.Add(child)

	tree := NewTree(root, 5, 5)
	tree.Frame()
	if d.calls != 1 {
		t.Fatalf("expected one RenderSelf call on first frame, got %d", d.calls)
	}

	tree.Frame()
	if d.calls != 1 {
		t.Errorf("expected RenderSelf not called again when not render-dirty, got %d calls", d.calls)
	}

	child.RequestRender()
	tree.Frame()
	if d.calls != 2 {
		t.Errorf("expected RenderSelf called again after RequestRender, got %d calls", d.calls)
	}
}

func TestFrameSkipsInvisibleSubtree(t *testing.T) {
	root := NewNode(CapContainer)
	root.Width, root.Height = Fixed(5), Fixed(5)
	child := NewNode(CapDrawable)
	child.Width, child.Height = Fixed(5), Fixed(5)
	child.Visible = false
	d := &stubDrawable{fillCh: 'z'}
	child.Drawable = d
	root.Add(child)

	tree := NewTree(root, 5, 5)
	tree.Frame()

	if d.calls != 0 {
		t.Errorf("expected invisible subtree's RenderSelf never called, got %d calls", d.calls)
	}
}

func TestFrameOrdersChildrenByZIndex(t *testing.T) {
	root := NewNode(CapContainer)
	root.Width, root.Height = Fixed(3), Fixed(1)

	back1 := NewNode(CapDrawable)
	back1.PositionMode = PositionAbsolute
	back1.Width, back1.Height = Fixed(3), Fixed(1)
	back1.ZIndex = 0
	back1.Drawable = &stubDrawable{fillCh: 'a'}

	front := NewNode(CapDrawable)
	front.PositionMode = PositionAbsolute
	front.Width, front.Height = Fixed(3), Fixed(1)
	front.ZIndex = 1
	front.Drawable = &stubDrawable{fillCh: 'b'}

	root.Add(back1)
	root.Add(front)

	tree := NewTree(root, 3, 1)
	back := tree.Frame()

	if back.Get(0, 0).Char != 'b' {
		t.Errorf("expected higher zIndex drawable to paint last (on top), got %q", back.Get(0, 0).Char)
	}
}

func TestResizeMarksRootLayoutDirty(t *testing.T) {
	root := NewNode(CapContainer)
	tree := NewTree(root, 5, 5)
	tree.Frame()
	root.layoutDirty = false

	tree.Resize(8, 8)

	if !root.layoutDirty {
		t.Errorf("expected Resize to mark the root layout-dirty")
	}
	if tree.back.Width != 8 || tree.back.Height != 8 {
		t.Errorf("expected back buffer resized to 8x8")
	}
}
