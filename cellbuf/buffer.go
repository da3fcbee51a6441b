// Package cellbuf implements the double-buffered cell grid: parallel
// arrays of codepoint/fg/bg/attrs, plus the primitive drawing operations
// the scene graph and presenter build on.
//
// This is a structure-of-arrays rewrite of the familiar array-of-structs
// ([]Cell) terminal buffer shape, keeping the same Buffer/Resize/SetCell/Get
// contract while storing each field in its own slice.
package cellbuf

import (
	"github.com/opentui/opentui-go/color"
	"github.com/opentui/opentui-go/wcwidth"
)

// cellFlags packs the wide-glyph state that doesn't fit naturally into the
// attribute bitset (display attributes are orthogonal to cell geometry).
type cellFlags uint8

const (
	flagWideLeft cellFlags = 1 << iota
	flagWideRight
)

// Cell is the read-only view returned by Buffer.Get — a snapshot, not a
// live handle into the arrays.
type Cell struct {
	Char  rune
	Fg    color.RGBA
	Bg    color.RGBA
	Attrs color.Attrs
	Wide  WideState
	Link  string
}

// WideState classifies a cell's role in a multi-cell grapheme.
type WideState int

const (
	WideNone WideState = iota
	WideLeft
	WideRight
)

// Buffer is the fixed width×height cell grid.
type Buffer struct {
	Width, Height int

	chars []rune
	fg    []color.RGBA
	bg    []color.RGBA
	attrs []color.Attrs
	flags []cellFlags
	links map[int]string

	EastAsian   wcwidth.EastAsianMode
	DefaultFg   color.RGBA
	DefaultBg   color.RGBA
}

// New allocates a buffer of the given dimensions, cleared to space on the
// default background.
func New(width, height int) *Buffer {
	b := &Buffer{DefaultFg: color.RGBA{R: 1, G: 1, B: 1, A: 1}}
	b.alloc(width, height)
	return b
}

func (b *Buffer) alloc(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	n := width * height
	b.Width, b.Height = width, height
	b.chars = make([]rune, n)
	b.fg = make([]color.RGBA, n)
	b.bg = make([]color.RGBA, n)
	b.attrs = make([]color.Attrs, n)
	b.flags = make([]cellFlags, n)
	b.links = make(map[int]string)
	b.Clear(color.Transparent)
}

func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0, false
	}
	return y*b.Width + x, true
}

// InBounds reports whether (x,y) is a valid cell coordinate.
func (b *Buffer) InBounds(x, y int) bool {
	_, ok := b.index(x, y)
	return ok
}

// Resize reallocates the buffer. Content is not preserved — callers must
// redraw.
func (b *Buffer) Resize(width, height int) {
	b.alloc(width, height)
}

// Clear sets every cell to (space, defaultFg, bg, no attrs) and drops all
// hyperlink annotations and wide-glyph flags.
func (b *Buffer) Clear(bg color.RGBA) {
	for i := range b.chars {
		b.chars[i] = ' '
		b.fg[i] = b.DefaultFg
		b.bg[i] = bg
		b.attrs[i] = 0
		b.flags[i] = 0
	}
	for k := range b.links {
		delete(b.links, k)
	}
}

// Get returns a snapshot of the cell at (x,y), or the zero Cell if out of
// bounds.
func (b *Buffer) Get(x, y int) Cell {
	i, ok := b.index(x, y)
	if !ok {
		return Cell{}
	}
	return b.cellAt(i)
}

func (b *Buffer) cellAt(i int) Cell {
	c := Cell{
		Char:  b.chars[i],
		Fg:    b.fg[i],
		Bg:    b.bg[i],
		Attrs: b.attrs[i],
		Link:  b.links[i],
	}
	switch {
	case b.flags[i]&flagWideLeft != 0:
		c.Wide = WideLeft
	case b.flags[i]&flagWideRight != 0:
		c.Wide = WideRight
	}
	return c
}

// SetCell writes a full cell directly (used by blend/supersample and by
// tests). Out-of-range coordinates are a silent no-op.
func (b *Buffer) SetCell(x, y int, c Cell) {
	i, ok := b.index(x, y)
	if !ok {
		return
	}
	b.chars[i] = c.Char
	b.fg[i] = c.Fg
	b.bg[i] = c.Bg
	b.attrs[i] = c.Attrs
	switch c.Wide {
	case WideLeft:
		b.flags[i] = flagWideLeft
	case WideRight:
		b.flags[i] = flagWideRight
	default:
		b.flags[i] = 0
	}
	if c.Link != "" {
		b.links[i] = c.Link
	} else {
		delete(b.links, i)
	}
}

// FillRect blends color into the background of every cell in the clipped
// rectangle. Zero/negative sizes and a fully-clipped rectangle are no-ops.
func (b *Buffer) FillRect(x, y, w, h int, bg color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0, x1, y1 := clipRect(x, y, w, h, b.Width, b.Height)
	for yy := y0; yy < y1; yy++ {
		row := yy * b.Width
		for xx := x0; xx < x1; xx++ {
			i := row + xx
			b.bg[i] = color.Blend(bg, b.bg[i])
		}
	}
}

func clipRect(x, y, w, h, bw, bh int) (x0, y0, x1, y1 int) {
	x0, y0 = x, y
	x1, y1 = x+w, y+h
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > bw {
		x1 = bw
	}
	if y1 > bh {
		y1 = bh
	}
	if x0 > x1 {
		x0 = x1
	}
	if y0 > y1 {
		y0 = y1
	}
	return
}
