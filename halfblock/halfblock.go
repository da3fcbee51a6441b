// Package halfblock provides a standalone half-block pixel encoder: given
// a 2×N RGBA raster with no destination buffer to blit into, it allocates
// a cell buffer sized to hold the result and encodes into it.
//
// The encoding itself (resolving a vertical pixel pair to a
// space/▀/▄/█ glyph with fg/bg) lives in cellbuf.SuperSampleBlit, since a
// scene-graph node (ThreeDBridge) blits directly into a shared
// destination at an offset. This package exists for callers that just
// want "encode this image" with no scene graph involved — a thin
// convenience wrapper rather than a second implementation.
package halfblock

import "github.com/opentui/opentui-go/cellbuf"

// Encode reduces a width x height RGBA raster (4 bytes per pixel, row
// major) into a new cell buffer using algo. For SuperSampleStandard the
// result is height/2 rows tall (a trailing odd source row is dropped,
// matching SuperSampleBlit itself); for SuperSamplePreSqueezed it is
// height rows tall (one source row per cell row).
func Encode(rgba []byte, width, height int, algo cellbuf.SuperSampleAlgorithm) *cellbuf.Buffer {
	rows := height
	if algo == cellbuf.SuperSampleStandard {
		rows = height / 2
	}
	buf := cellbuf.New(width, rows)
	buf.SuperSampleBlit(rgba, width, height, 0, 0, algo)
	return buf
}
