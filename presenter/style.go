package presenter

import (
	"strconv"

	"github.com/opentui/opentui-go/color"
)

// styleWriter renders the minimal SGR delta needed to move the terminal's
// shadow style from "from" to "to": only attribute bits and color
// channels that actually changed are emitted, never a blanket reset.
type styleWriter struct {
	trueColor bool
}

type attrCode struct {
	bit    color.Attrs
	on, off int
}

var attrTable = []attrCode{
	{color.AttrBold, 1, 22},
	{color.AttrDim, 2, 22},
	{color.AttrItalic, 3, 23},
	{color.AttrUnderline, 4, 24},
	{color.AttrBlink, 5, 25},
	{color.AttrInverse, 7, 27},
	{color.AttrHidden, 8, 28},
	{color.AttrStrikethrough, 9, 29},
}

func (w styleWriter) transition(dst []byte, from, to color.Style) []byte {
	if from.Equal(to) {
		return dst
	}

	var codes []int
	seen := map[int]bool{}
	add := func(c int) {
		if seen[c] {
			return
		}
		seen[c] = true
		codes = append(codes, c)
	}

	removed := from.Attrs &^ to.Attrs
	added := to.Attrs &^ from.Attrs
	// SGR 22 clears both bold and dim, so whichever of the two stays set
	// is switched on again.
	if removed&(color.AttrBold|color.AttrDim) != 0 {
		added |= to.Attrs & (color.AttrBold | color.AttrDim)
	}
	for _, a := range attrTable {
		if removed.Has(a.bit) {
			add(a.off)
		}
	}
	for _, a := range attrTable {
		if added.Has(a.bit) {
			add(a.on)
		}
	}
	if !from.Fg.Equal(to.Fg) {
		for _, c := range w.fgCodes(to.Fg) {
			add(c)
		}
	}
	if !from.Bg.Equal(to.Bg) {
		for _, c := range w.bgCodes(to.Bg) {
			add(c)
		}
	}
	if len(codes) == 0 {
		return dst
	}
	dst = append(dst, '\x1b', '[')
	for i, c := range codes {
		if i > 0 {
			dst = append(dst, ';')
		}
		dst = strconv.AppendInt(dst, int64(c), 10)
	}
	dst = append(dst, 'm')
	return dst
}

// fgCodes and bgCodes resolve a color to SGR parameters: the terminal
// default (39/49) for a transparent color, a 24-bit triplet when
// truecolor is available, otherwise the nearest xterm 256-color index.
func (w styleWriter) fgCodes(c color.RGBA) []int {
	if c.A == 0 {
		return []int{39}
	}
	if w.trueColor {
		r, g, b := c.RGB255()
		return []int{38, 2, int(r), int(g), int(b)}
	}
	return []int{38, 5, int(color.Nearest256(c))}
}

func (w styleWriter) bgCodes(c color.RGBA) []int {
	if c.A == 0 {
		return []int{49}
	}
	if w.trueColor {
		r, g, b := c.RGB255()
		return []int{48, 2, int(r), int(g), int(b)}
	}
	return []int{48, 5, int(color.Nearest256(c))}
}

// appendCursorPos appends an absolute cursor-position escape for the given
// 1-based row/col, with no fmt.Fprintf overhead on the hot diff path.
func appendCursorPos(dst []byte, row, col int) []byte {
	dst = append(dst, '\x1b', '[')
	dst = strconv.AppendInt(dst, int64(row), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(col), 10)
	dst = append(dst, 'H')
	return dst
}
