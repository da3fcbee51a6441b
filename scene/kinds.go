package scene

import (
	"github.com/opentui/opentui-go/cellbuf"
	"github.com/opentui/opentui-go/color"
	"github.com/opentui/opentui-go/text"
	"github.com/opentui/opentui-go/wcwidth"
)

// Box is a container node that optionally fills its background and draws
// a border, generalizing the same fill/border drawing primitives
// cellbuf exposes.
type Box struct {
	*Node
	Border     bool
	BorderKind cellbuf.BorderStyle
	BorderFg   color.RGBA
	Fill       *color.RGBA
}

// NewBox creates a container-capable, drawable Box node.
func NewBox() *Box {
	b := &Box{Node: NewNode(CapContainer | CapDrawable)}
	b.Drawable = b
	return b
}

func (b *Box) RenderSelf(buf *cellbuf.Buffer, x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if b.Fill != nil {
		fillX, fillY, fillW, fillH := x, y, w, h
		if b.Border {
			fillX, fillY, fillW, fillH = x+1, y+1, w-2, h-2
		}
		buf.FillRect(fillX, fillY, fillW, fillH, *b.Fill)
	}
	if b.Border {
		buf.DrawBox(x, y, w, h, b.BorderKind, b.BorderFg, nil)
	}
}

// Text is a drawable, line-info-provider node that renders visual rows
// from a text.Buffer, honoring a vertical scroll offset.
type Text struct {
	*Node
	Buffer     *text.Buffer
	WrapMode   wcwidth.WrapMode
	EastAsian  wcwidth.EastAsianMode
	ScrollLine int

	// SelectionColumnar selects box (column-locked) selection instead of
	// the default free-form range selection.
	SelectionColumnar bool

	selAnchorRow, selAnchorCol int
}

// NewText creates a Text node over buf.
func NewText(buf *text.Buffer) *Text {
	t := &Text{Node: NewNode(CapDrawable | CapLineInfoProvider | CapSelectable), Buffer: buf}
	t.Drawable = t
	t.Measure = t.measure
	return t
}

func (t *Text) measure(availW, availH int) (int, int) {
	if availW > 0 {
		t.Buffer.WrapTo(availW, t.WrapMode, 8)
	}
	n := t.Buffer.VirtualLineCount()
	if availH > 0 && n > availH {
		n = availH
	}
	return availW, n
}

func (t *Text) RenderSelf(buf *cellbuf.Buffer, x, y, w, h int) {
	total := t.Buffer.VirtualLineCount()
	for row := 0; row < h; row++ {
		vRow := t.ScrollLine + row
		if vRow >= total {
			break
		}
		col := 0
		for _, chunk := range t.Buffer.GetLineChunksForVisualRow(vRow) {
			buf.DrawText(chunk.Text, x+col, y+row, chunk.Fg, chunk.Bg, chunk.Attrs)
			col += wcwidth.CalculateTextWidth([]byte(chunk.Text), 8, true, t.EastAsian)
		}
	}
}

// LineNumberGutter is a drawable, line-info-provider node that renders a
// right-aligned line number column, tracking a companion Text node's
// scroll position.
type LineNumberGutter struct {
	*Node
	Companion *Text
	Fg, Bg    color.RGBA
}

// NewLineNumberGutter creates a gutter tracking companion's scroll offset.
func NewLineNumberGutter(companion *Text) *LineNumberGutter {
	g := &LineNumberGutter{Node: NewNode(CapDrawable | CapLineInfoProvider), Companion: companion}
	g.Drawable = g
	return g
}

func (g *LineNumberGutter) RenderSelf(buf *cellbuf.Buffer, x, y, w, h int) {
	total := g.Companion.Buffer.VirtualLineCount()
	for row := 0; row < h; row++ {
		vRow := g.Companion.ScrollLine + row
		if vRow >= total {
			break
		}
		logicalRow, startOffset := g.Companion.Buffer.VisualLineToLogical(vRow)
		label := ""
		if startOffset == 0 {
			label = itoa(logicalRow + 1)
		}
		padded := padLeft(label, w)
		buf.DrawText(padded, x, y+row, g.Fg, g.Bg, 0)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

func padLeft(s string, width int) string {
	for len([]rune(s)) < width {
		s = " " + s
	}
	return s
}

// ScrollBox is a container, mouse-target node clipping its children to a
// viewport and offering a scroll position that mouse wheel events adjust.
type ScrollBox struct {
	*Node
	ScrollX, ScrollY int
	ContentHeight    int
}

// NewScrollBox creates a scrollable container.
func NewScrollBox() *ScrollBox {
	s := &ScrollBox{Node: NewNode(CapContainer | CapMouseTarget)}
	s.SetMouseHandler(s.handleMouse)
	return s
}

func (s *ScrollBox) handleMouse(e *MouseEvent) bool {
	if e.Kind != MouseScroll {
		return false
	}
	s.ScrollY += e.Button // convention: Button carries signed scroll delta for MouseScroll
	if s.ScrollY < 0 {
		s.ScrollY = 0
	}
	maxScroll := s.ContentHeight - s.computedH
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.ScrollY > maxScroll {
		s.ScrollY = maxScroll
	}
	e.StopPropagation()
	s.RequestRender()
	return true
}

// HitToLogical converts a point local to this node (column/row relative
// to its own top-left) into the buffer's logical (row, column)
// coordinates, the shape Buffer.SetSelection expects.
func (t *Text) HitToLogical(localX, localY int) (row, col int) {
	vRow := t.ScrollLine + localY
	if vRow < 0 {
		vRow = 0
	}
	logicalRow, startOffset := t.Buffer.VisualLineToLogical(vRow)
	chunks := t.Buffer.GetLineChunksForVisualRow(vRow)

	width := 0
	runeCol := startOffset
	for _, c := range chunks {
		for _, r := range c.Text {
			w := wcwidth.CalculateTextWidth([]byte(string(r)), 8, true, t.EastAsian)
			if width+w > localX {
				return logicalRow, runeCol
			}
			width += w
			runeCol++
		}
	}
	return logicalRow, runeCol
}

// BeginSelection anchors a new selection at the given local point,
// delegating the actual range bookkeeping to the text buffer.
func (t *Text) BeginSelection(localX, localY int) {
	row, col := t.HitToLogical(localX, localY)
	t.selAnchorRow, t.selAnchorCol = row, col
	t.Buffer.SetSelection(row, col, row, col, t.SelectionColumnar)
}

// ExtendSelection moves the selection's focus end to the given local
// point, keeping the anchor BeginSelection recorded.
func (t *Text) ExtendSelection(localX, localY int) {
	row, col := t.HitToLogical(localX, localY)
	t.Buffer.SetSelection(t.selAnchorRow, t.selAnchorCol, row, col, t.SelectionColumnar)
}

// SelectedText returns the current selection's text.
func (t *Text) SelectedText() string {
	return t.Buffer.GetSelectedText()
}
