package cellbuf

import "github.com/opentui/opentui-go/color"

// BorderStyle selects one of the four glyph sets drawBox can use.
type BorderStyle int

const (
	BorderSingle BorderStyle = iota
	BorderDouble
	BorderRounded
	BorderHeavy
)

// borderGlyphs holds one style's box-drawing characters in 13 slots
// {topLeft, top, topRight, right, bottomRight, bottom, bottomLeft, left,
// teeRight, teeLeft, teeDown, teeUp, cross}; top/bottom and left/right
// share a glyph, so the single style uses 11 distinct characters:
// "┌ ┐ └ ┘ ─ │ ├ ┤ ┬ ┴ ┼".
type borderGlyphs struct {
	topLeft, top, topRight      rune
	right, bottomRight, bottom  rune
	bottomLeft, left            rune
	teeRight, teeLeft           rune
	teeDown, teeUp, cross       rune
}

var borderSets = map[BorderStyle]borderGlyphs{
	BorderSingle: {
		topLeft: '┌', top: '─', topRight: '┐',
		right: '│', bottomRight: '┘', bottom: '─',
		bottomLeft: '└', left: '│',
		teeRight: '├', teeLeft: '┤', teeDown: '┬', teeUp: '┴', cross: '┼',
	},
	BorderDouble: {
		topLeft: '╔', top: '═', topRight: '╗',
		right: '║', bottomRight: '╝', bottom: '═',
		bottomLeft: '╚', left: '║',
		teeRight: '╠', teeLeft: '╣', teeDown: '╦', teeUp: '╩', cross: '╬',
	},
	BorderRounded: {
		topLeft: '╭', top: '─', topRight: '╮',
		right: '│', bottomRight: '╯', bottom: '─',
		bottomLeft: '╰', left: '│',
		teeRight: '├', teeLeft: '┤', teeDown: '┬', teeUp: '┴', cross: '┼',
	},
	BorderHeavy: {
		topLeft: '┏', top: '━', topRight: '┓',
		right: '┃', bottomRight: '┛', bottom: '━',
		bottomLeft: '┗', left: '┃',
		teeRight: '┣', teeLeft: '┫', teeDown: '┳', teeUp: '┻', cross: '╋',
	},
}

// DrawBox draws a rectangle's border using the given style, optionally
// filling its interior with fill. Corners where this box's edge lands
// exactly on an existing perpendicular edge are substituted with the
// matching tee/cross glyph, so adjacent boxes join cleanly.
func (b *Buffer) DrawBox(x, y, w, h int, style BorderStyle, borderColor color.RGBA, fill *color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	g, ok := borderSets[style]
	if !ok {
		g = borderSets[BorderSingle]
	}

	if fill != nil {
		b.FillRect(x+1, y+1, w-2, h-2, *fill)
	}

	set := func(cx, cy int, r rune) {
		b.joinBorderGlyph(cx, cy, r, g, borderColor)
	}

	set(x, y, g.topLeft)
	set(x+w-1, y, g.topRight)
	set(x, y+h-1, g.bottomLeft)
	set(x+w-1, y+h-1, g.bottomRight)
	for i := 1; i < w-1; i++ {
		set(x+i, y, g.top)
		set(x+i, y+h-1, g.bottom)
	}
	for i := 1; i < h-1; i++ {
		set(x, y+i, g.left)
		set(x+w-1, y+i, g.right)
	}
}

// joinBorderGlyph writes r at (x,y), but if that cell already holds a
// perpendicular border glyph from the same set, writes the intersection
// glyph instead — this is how two adjacent DrawBox calls join corners.
func (b *Buffer) joinBorderGlyph(x, y int, r rune, g borderGlyphs, col color.RGBA) {
	existing := b.Get(x, y).Char
	joined := joinGlyph(existing, r, g)
	b.SetCell(x, y, Cell{Char: joined, Fg: col, Bg: b.Get(x, y).Bg})
}

func joinGlyph(existing, incoming rune, g borderGlyphs) rune {
	isVert := func(r rune) bool { return r == g.left || r == g.right || r == g.teeLeft || r == g.teeRight || r == g.cross }
	isHoriz := func(r rune) bool { return r == g.top || r == g.bottom || r == g.teeDown || r == g.teeUp || r == g.cross }

	switch {
	case existing == g.topLeft && incoming == g.top, existing == g.topRight && incoming == g.top:
		return g.teeDown
	case existing == g.bottomLeft && incoming == g.bottom, existing == g.bottomRight && incoming == g.bottom:
		return g.teeUp
	case existing == g.topRight && incoming == g.topLeft, existing == g.topLeft && incoming == g.topRight:
		return g.teeDown
	case existing == g.bottomRight && incoming == g.bottomLeft, existing == g.bottomLeft && incoming == g.bottomRight:
		return g.teeUp
	case isVert(existing) && isHoriz(incoming), isHoriz(existing) && isVert(incoming):
		return g.cross
	default:
		return incoming
	}
}
