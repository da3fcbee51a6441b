package cellbuf

import (
	"github.com/opentui/opentui-go/color"
	"github.com/opentui/opentui-go/wcwidth"
)

// replacementGlyph stands in for control characters other than TAB and LF.
const replacementGlyph = '�'

// DrawText walks text as graphemes and writes each one starting at (x,y),
// advancing by its display width. It stops at the buffer's right edge
// rather than wrapping — a caller that wants wrapping must pre-split using
// the wcwidth package.
func (b *Buffer) DrawText(text string, x, y int, fg, bg color.RGBA, attrs color.Attrs) {
	col := x
	row := y
	wcwidth.ForEachGrapheme(text, b.EastAsian, func(cluster string, width int) bool {
		if cluster == "\n" {
			row++
			col = x
			return true
		}
		if col >= b.Width {
			// No room left on this row; a later \n can still bring the
			// cursor back into view, so keep walking rather than stop.
			return true
		}
		if row < 0 || row >= b.Height {
			return true
		}
		r := []rune(cluster)[0]
		if cluster == "\t" {
			// Callers that want tab expansion should pre-expand via
			// wcwidth; DrawText treats a literal tab as one narrow glyph
			// slot to keep this primitive allocation-free and pure.
			r = ' '
			width = 1
		} else if r < 0x20 && r != '\n' {
			r = replacementGlyph
			width = 1
		}

		if width <= 0 {
			// zero-width grapheme (combining mark): merge into the
			// previous cell's glyph slot is out of scope for this
			// primitive; drop it rather than corrupt column accounting.
			return true
		}

		if width == 2 {
			if col+1 >= b.Width {
				// Wide glyph doesn't fit: skip it entirely.
				col++
				return true
			}
			b.SetCell(col, row, Cell{Char: r, Fg: fg, Bg: bg, Attrs: attrs, Wide: WideLeft})
			b.SetCell(col+1, row, Cell{Char: 0, Fg: fg, Bg: bg, Attrs: attrs, Wide: WideRight})
			col += 2
			return true
		}

		b.SetCell(col, row, Cell{Char: r, Fg: fg, Bg: bg, Attrs: attrs})
		col++
		return true
	})
}
