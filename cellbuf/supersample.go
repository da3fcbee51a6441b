package cellbuf

import "github.com/opentui/opentui-go/color"

// SuperSampleAlgorithm selects how SuperSampleBlit reduces a 2×N RGBA
// raster into N half-block cells.
type SuperSampleAlgorithm int

const (
	// SuperSampleStandard resolves each vertical pair of source pixels into
	// one cell, picking an upper/lower half-block glyph (or a full block /
	// space) with the pixels' colors as fg/bg. The two pixels are not
	// averaged into one color.
	SuperSampleStandard SuperSampleAlgorithm = iota
	// SuperSamplePreSqueezed assumes the caller already vertically
	// averaged the source: one source pixel maps to one cell.
	SuperSamplePreSqueezed
)

const (
	glyphUpperHalf = '▀'
	glyphLowerHalf = '▄'
	glyphFullBlock = '█'
	glyphSpace     = ' '
)

// SuperSampleBlit encodes srcRGBA (srcW×srcH, row-major RGBA bytes, 4 bytes
// per pixel) into cells starting at (dstX, dstY). In SuperSampleStandard
// mode each output row consumes two source rows (srcH/2 output rows); in
// SuperSamplePreSqueezed mode each source row maps 1:1 to an output row.
func (b *Buffer) SuperSampleBlit(srcRGBA []byte, srcW, srcH int, dstX, dstY int, algo SuperSampleAlgorithm) {
	pixelAt := func(x, y int) color.RGBA {
		if x < 0 || y < 0 || x >= srcW || y >= srcH {
			return color.Transparent
		}
		i := (y*srcW + x) * 4
		if i+3 >= len(srcRGBA) {
			return color.Transparent
		}
		return color.RGBA{
			R: float64(srcRGBA[i]) / 255,
			G: float64(srcRGBA[i+1]) / 255,
			B: float64(srcRGBA[i+2]) / 255,
			A: float64(srcRGBA[i+3]) / 255,
		}
	}

	switch algo {
	case SuperSamplePreSqueezed:
		for y := 0; y < srcH; y++ {
			for x := 0; x < srcW; x++ {
				p := pixelAt(x, y)
				b.SetCell(dstX+x, dstY+y, Cell{Char: glyphFullBlock, Fg: p, Bg: p})
			}
		}
	default:
		rows := srcH / 2
		for y := 0; y < rows; y++ {
			for x := 0; x < srcW; x++ {
				top := pixelAt(x, y*2)
				bot := pixelAt(x, y*2+1)
				b.SetCell(dstX+x, dstY+y, halfBlockCell(top, bot))
			}
		}
	}
}

// halfBlockCell resolves a pair of vertically-adjacent pixels into a single
// cell: fully transparent -> space, both opaque and equal -> full block
// with that color as bg, otherwise an upper or lower half-block glyph with
// the visible pixel as fg over the other as bg. Idempotent: calling it
// again with the same two pixels yields the same cell.
func halfBlockCell(top, bot color.RGBA) Cell {
	if top.A == 0 && bot.A == 0 {
		return Cell{Char: glyphSpace, Bg: color.Transparent}
	}
	if top.Equal(bot) {
		return Cell{Char: glyphFullBlock, Fg: top, Bg: top}
	}
	if bot.A == 0 {
		return Cell{Char: glyphUpperHalf, Fg: top, Bg: bot}
	}
	if top.A == 0 {
		return Cell{Char: glyphLowerHalf, Fg: bot, Bg: top}
	}
	// Both occupied and different: upper-half glyph carries top as fg,
	// bottom as bg — the conventional half-block encoding.
	return Cell{Char: glyphUpperHalf, Fg: top, Bg: bot}
}
