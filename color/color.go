// Package color implements the normalized RGBA color atom and the text
// attribute bitset.
package color

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA holds four channels in [0,1]. Equality is by channel.
type RGBA struct {
	R, G, B, A float64
}

// Transparent is alpha=0.
var Transparent = RGBA{0, 0, 0, 0}

// Attrs is the text-attribute bitset.
type Attrs uint16

const (
	AttrBold Attrs = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrHidden
	AttrStrikethrough
)

func (a Attrs) Has(f Attrs) bool { return a&f != 0 }

// RGB255 converts to a 24-bit sRGB triplet, clamping each channel to [0,255].
func (c RGBA) RGB255() (r, g, b uint8) {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return clamp(c.R), clamp(c.G), clamp(c.B)
}

// Equal compares all four channels exactly.
func (c RGBA) Equal(o RGBA) bool {
	return c.R == o.R && c.G == o.G && c.B == o.B && c.A == o.A
}

// New builds an opaque color from 8-bit channels.
func New(r, g, b uint8) RGBA {
	return RGBA{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// Blend composites src over dst with straight alpha: each color channel is
// src*a + dst*(1-a), and the resulting alpha is a + dst.A*(1-a).
func Blend(src, dst RGBA) RGBA {
	a := src.A
	inv := 1 - a
	return RGBA{
		R: src.R*a + dst.R*inv,
		G: src.G*a + dst.G*inv,
		B: src.B*a + dst.B*inv,
		A: a + dst.A*inv,
	}
}

// Parse accepts "#RGB", "#RRGGBB", "transparent", or a name from Palette.
func Parse(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGBA{}, fmt.Errorf("color: empty string")
	}
	if strings.EqualFold(s, "transparent") {
		return Transparent, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if rgba, ok := Palette[strings.ToLower(s)]; ok {
		return rgba, nil
	}
	return RGBA{}, fmt.Errorf("color: unrecognized color %q", s)
}

func parseHex(hex string) (RGBA, error) {
	expand := func(c byte) string { return string([]byte{c, c}) }
	var rs, gs, bs string
	switch len(hex) {
	case 3:
		rs, gs, bs = expand(hex[0]), expand(hex[1]), expand(hex[2])
	case 6:
		rs, gs, bs = hex[0:2], hex[2:4], hex[4:6]
	default:
		return RGBA{}, fmt.Errorf("color: bad hex length %q", hex)
	}
	r, err := strconv.ParseUint(rs, 16, 8)
	if err != nil {
		return RGBA{}, err
	}
	g, err := strconv.ParseUint(gs, 16, 8)
	if err != nil {
		return RGBA{}, err
	}
	b, err := strconv.ParseUint(bs, 16, 8)
	if err != nil {
		return RGBA{}, err
	}
	return New(uint8(r), uint8(g), uint8(b)), nil
}

// Nearest256 downgrades a truecolor RGBA to the nearest xterm 256-color
// index, used when the presenter's capability handshake finds no
// truecolor support.
func Nearest256(c RGBA) uint8 {
	r, g, b := c.RGB255()
	target, _ := colorful.MakeColor(rgbColor{r, g, b})
	best := uint8(16)
	bestDist := -1.0
	for i := 16; i < 256; i++ {
		cr, cg, cb := xterm256[i-16][0], xterm256[i-16][1], xterm256[i-16][2]
		cand, _ := colorful.MakeColor(rgbColor{cr, cg, cb})
		d := target.DistanceLab(cand)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = uint8(i)
		}
	}
	return best
}

type rgbColor struct{ r, g, b uint8 }

func (c rgbColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r) * 0x101
	g = uint32(c.g) * 0x101
	b = uint32(c.b) * 0x101
	a = 0xffff
	return
}
