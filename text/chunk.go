// Package text implements the styled text buffer: a rope of logical
// lines, each wrapped lazily into visual rows using the wcwidth package,
// with a highlight overlay and a logical-coordinate selection model.
package text

import "github.com/opentui/opentui-go/color"

// Chunk is a run of text sharing one style and an optional hyperlink
// target, the unit setStyledText accepts; getLineChunksForVisualRow
// returns the resolved LineChunk form.
type Chunk struct {
	Text  string
	Style color.Style
	Link  string
}

// Highlight overlays a style onto a column range of a logical line,
// independent of the chunk boundaries beneath it. When ranges from
// different calls to addHighlight overlap, the one with higher Priority
// wins per cell.
type Highlight struct {
	StartCol int
	EndCol   int
	StyleID  int
	Priority int
}
