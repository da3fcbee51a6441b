package scene

import (
	"strings"

	"github.com/opentui/opentui-go/cellbuf"
	"github.com/opentui/opentui-go/color"
	"github.com/opentui/opentui-go/style"
	"github.com/opentui/opentui-go/text"
	"github.com/opentui/opentui-go/wcwidth"
)

// Code composes a Text node with a chroma-backed highlighter and named
// style table, re-tokenizing and re-applying highlight overlays whenever
// its source or language changes.
type Code struct {
	*Text
	Lang        string
	Highlighter style.Highlighter
	Table       *style.Table
}

// NewCode creates a Code node seeded from the given chroma style name.
func NewCode(lang, chromaStyleName string) *Code {
	table := style.NewTable()
	style.SeedFromChromaStyle(table, chromaStyleName)
	buf := text.New(wcwidth.EastAsianNarrow, table.Resolver())
	c := &Code{Text: NewText(buf), Lang: lang, Highlighter: style.NewChromaHighlighter(), Table: table}
	return c
}

// SetSource replaces the code's content and re-tokenizes every line for
// syntax highlighting.
func (c *Code) SetSource(src string) {
	c.Buffer.SetText(src)
	for row, line := range strings.Split(src, "\n") {
		c.Buffer.ClearHighlights(row, row)
		style.ApplyHighlights(c.Buffer, row, line, c.Highlighter, c.Lang, c.Table, c.EastAsian)
	}
	c.RequestRender()
}

// TextTable is a drawable grid node rendering rows of cells into aligned
// columns.
type TextTable struct {
	*Node
	Headers     []string
	Rows        [][]string
	ColWidths   []int
	HeaderStyle color.Style
	CellStyle   color.Style
}

// NewTextTable creates an empty table node.
func NewTextTable(headers []string) *TextTable {
	t := &TextTable{Node: NewNode(CapDrawable), Headers: headers}
	t.Drawable = t
	t.recomputeWidths()
	return t
}

// SetRows replaces the table's data rows and recomputes column widths.
func (t *TextTable) SetRows(rows [][]string) {
	t.Rows = rows
	t.recomputeWidths()
	t.RequestRender()
}

func (t *TextTable) recomputeWidths() {
	t.ColWidths = make([]int, len(t.Headers))
	for i, h := range t.Headers {
		t.ColWidths[i] = wcwidth.CalculateTextWidth([]byte(h), 8, false, wcwidth.EastAsianNarrow)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(t.ColWidths) {
				continue
			}
			if w := wcwidth.CalculateTextWidth([]byte(cell), 8, false, wcwidth.EastAsianNarrow); w > t.ColWidths[i] {
				t.ColWidths[i] = w
			}
		}
	}
}

func (t *TextTable) RenderSelf(buf *cellbuf.Buffer, x, y, w, h int) {
	drawRow := func(row int, cells []string, st color.Style) {
		if row >= h {
			return
		}
		col := 0
		for i, cellW := range t.ColWidths {
			text := ""
			if i < len(cells) {
				text = cells[i]
			}
			buf.DrawText(padRight(text, cellW), x+col, y+row, st.Fg, st.Bg, st.Attrs)
			col += cellW + 1
		}
	}
	drawRow(0, t.Headers, t.HeaderStyle)
	for i, row := range t.Rows {
		drawRow(i+1, row, t.CellStyle)
	}
}

func padRight(s string, width int) string {
	w := wcwidth.CalculateTextWidth([]byte(s), 8, false, wcwidth.EastAsianNarrow)
	for w < width {
		s += " "
		w++
	}
	return s
}

// DiffLineKind classifies a rendered Diff row.
type DiffLineKind int

const (
	DiffContext DiffLineKind = iota
	DiffAdd
	DiffRemove
)

// DiffLine is one row of a unified diff view.
type DiffLine struct {
	Kind DiffLineKind
	Text string
}

// Diff is a drawable node rendering a unified diff with add/remove
// background tinting, built on the same cell-drawing primitives as Code
// rather than duplicating a text.Buffer (a diff has no wrapping/selection
// needs of its own).
type Diff struct {
	*Node
	Lines  []DiffLine
	AddBg  color.RGBA
	DelBg  color.RGBA
	Prefix func(DiffLineKind) string
}

// NewDiff creates a Diff node with default +/-/space gutter prefixes.
func NewDiff() *Diff {
	d := &Diff{Node: NewNode(CapDrawable), Prefix: defaultDiffPrefix}
	d.Drawable = d
	return d
}

func defaultDiffPrefix(k DiffLineKind) string {
	switch k {
	case DiffAdd:
		return "+ "
	case DiffRemove:
		return "- "
	default:
		return "  "
	}
}

func (d *Diff) RenderSelf(buf *cellbuf.Buffer, x, y, w, h int) {
	for row := 0; row < h && row < len(d.Lines); row++ {
		line := d.Lines[row]
		bg := color.Transparent
		switch line.Kind {
		case DiffAdd:
			bg = d.AddBg
		case DiffRemove:
			bg = d.DelBg
		}
		if bg != color.Transparent {
			buf.FillRect(x, y+row, w, 1, bg)
		}
		buf.DrawText(d.Prefix(line.Kind)+line.Text, x, y+row, color.RGBA{R: 1, G: 1, B: 1, A: 1}, bg, 0)
	}
}

// Textarea composes a Text node with insertion-point editing: InsertAt,
// DeleteRange and a visible cursor position, for single-viewport editable
// input fields.
type Textarea struct {
	*Text
	CursorRow, CursorCol int
}

// NewTextarea creates an empty editable Textarea.
func NewTextarea(eastAsian wcwidth.EastAsianMode) *Textarea {
	buf := text.New(eastAsian, nil)
	return &Textarea{Text: NewText(buf)}
}

// TypeRune inserts r at the cursor and advances the cursor one column.
func (ta *Textarea) TypeRune(r rune) {
	ta.Buffer.InsertAt(ta.CursorRow, ta.CursorCol, string(r))
	ta.CursorCol++
	ta.RequestRender()
}

// Backspace deletes the grapheme before the cursor, if any.
func (ta *Textarea) Backspace() {
	if ta.CursorCol == 0 {
		return
	}
	ta.Buffer.DeleteRange(ta.CursorRow, ta.CursorCol-1, ta.CursorRow, ta.CursorCol)
	ta.CursorCol--
	ta.RequestRender()
}

// ThreeDBridge is a drawable stub for embedding externally-rasterized RGBA
// frames (e.g. from a software 3D renderer) via SuperSampleBlit. It carries
// no rasterization of its own: no GPU and no font/3D rendering is in scope,
// per the half-block pixel bridge this sits on top of.
type ThreeDBridge struct {
	*Node
	FrameRGBA    []byte
	FrameW, FrameH int
	Algo         cellbuf.SuperSampleAlgorithm
}

// NewThreeDBridge creates a bridge node with no frame set yet.
func NewThreeDBridge() *ThreeDBridge {
	b := &ThreeDBridge{Node: NewNode(CapDrawable)}
	b.Drawable = b
	return b
}

// SetFrame replaces the externally-rendered RGBA pixel buffer to blit next
// frame.
func (b *ThreeDBridge) SetFrame(rgba []byte, w, h int) {
	b.FrameRGBA, b.FrameW, b.FrameH = rgba, w, h
	b.RequestRender()
}

func (b *ThreeDBridge) RenderSelf(buf *cellbuf.Buffer, x, y, w, h int) {
	if b.FrameRGBA == nil {
		return
	}
	buf.SuperSampleBlit(b.FrameRGBA, b.FrameW, b.FrameH, x, y, b.Algo)
}
