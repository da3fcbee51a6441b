package cellbuf

import "github.com/opentui/opentui-go/color"

// Blend composites src onto b at (dstX, dstY) with straight-alpha blending
// of fg and bg independently; a non-zero attribute bitset in src overlays
// (ORs into) the destination's attributes. Width/height mismatches clip to
// the overlap. A source cell holding no glyph or a space, with a
// transparent background and no attributes, leaves the destination as is.
func (b *Buffer) Blend(src *Buffer, dstX, dstY int) {
	for sy := 0; sy < src.Height; sy++ {
		dy := dstY + sy
		if dy < 0 || dy >= b.Height {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			dx := dstX + sx
			if dx < 0 || dx >= b.Width {
				continue
			}
			si, _ := src.index(sx, sy)
			sc := src.cellAt(si)
			if sc.Bg.A == 0 && sc.Attrs == 0 && (sc.Char == 0 || sc.Char == ' ') {
				continue
			}
			dst := b.Get(dx, dy)
			merged := Cell{
				Char:  dst.Char,
				Fg:    dst.Fg,
				Bg:    color.Blend(sc.Bg, dst.Bg),
				Attrs: dst.Attrs,
				Wide:  dst.Wide,
				Link:  dst.Link,
			}
			if sc.Char != 0 {
				merged.Char = sc.Char
				merged.Fg = color.Blend(sc.Fg, dst.Fg)
				merged.Wide = sc.Wide
				if sc.Link != "" {
					merged.Link = sc.Link
				}
			}
			if sc.Attrs != 0 {
				merged.Attrs |= sc.Attrs
			}
			b.SetCell(dx, dy, merged)
		}
	}
}
