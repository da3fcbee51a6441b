package text

import (
	"sort"
	"strings"

	"github.com/opentui/opentui-go/color"
	"github.com/opentui/opentui-go/rope"
	"github.com/opentui/opentui-go/wcwidth"
)

// StyleResolver maps a highlight's styleId (assigned by the style table)
// to a concrete color.Style.
type StyleResolver func(styleID int) color.Style

// Buffer is the styled text document: a rope of logical lines plus wrap
// parameters, a highlight overlay, and a logical-coordinate selection.
type Buffer struct {
	lines *rope.Tree[*logicalLine, visualMetric]

	wrapWidth int
	wrapMode  wcwidth.WrapMode
	tabWidth  int
	eastAsian wcwidth.EastAsianMode

	dirty map[int]bool

	resolver StyleResolver

	anchorRow, anchorCol int
	focusRow, focusCol   int
	columnar             bool
}

// New creates an empty buffer with a tab width of 8.
func New(eastAsian wcwidth.EastAsianMode, resolver StyleResolver) *Buffer {
	if resolver == nil {
		resolver = func(int) color.Style { return color.Style{} }
	}
	b := &Buffer{
		tabWidth:  8,
		wrapMode:  wcwidth.WrapNone,
		eastAsian: eastAsian,
		resolver:  resolver,
		dirty:     map[int]bool{},
	}
	b.lines = rope.FromSlice[*logicalLine, visualMetric]([]*logicalLine{newLogicalLine(nil)})
	return b
}

// SetText replaces the entire content with plain text, split on \n and
// \r\n into logical lines with a single default-style chunk each.
func (b *Buffer) SetText(s string) {
	parts := splitLines(s)
	lines := make([]*logicalLine, len(parts))
	for i, p := range parts {
		lines[i] = newLogicalLine([]Chunk{{Text: p}})
	}
	b.replaceLines(lines)
}

// SetStyledText replaces the entire content; each entry is the chunk list
// for one logical line.
func (b *Buffer) SetStyledText(lines [][]Chunk) {
	logical := make([]*logicalLine, len(lines))
	for i, chunks := range lines {
		logical[i] = newLogicalLine(chunks)
	}
	b.replaceLines(logical)
}

func (b *Buffer) replaceLines(lines []*logicalLine) {
	if len(lines) == 0 {
		lines = []*logicalLine{newLogicalLine(nil)}
	}
	b.lines = rope.FromSlice[*logicalLine, visualMetric](lines)
	b.dirty = map[int]bool{}
	for i := range lines {
		b.dirty[i] = true
	}
	b.anchorRow, b.anchorCol, b.focusRow, b.focusCol = 0, 0, 0, 0
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// WrapTo sets wrapping parameters and invalidates the wrap cache for every
// line.
func (b *Buffer) WrapTo(width int, mode wcwidth.WrapMode, tabWidth int) {
	if tabWidth <= 0 {
		tabWidth = 8
	}
	b.wrapWidth, b.wrapMode, b.tabWidth = width, mode, tabWidth
	for i := 0; i < b.lines.Len(); i++ {
		b.dirty[i] = true
	}
}

// flush rewraps every dirty line and refreshes its entry in the rope so the
// tree's visual-row aggregates stay consistent with the new wrap cache.
func (b *Buffer) flush() {
	if len(b.dirty) == 0 {
		return
	}
	idxs := make([]int, 0, len(b.dirty))
	for i := range b.dirty {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	for _, i := range idxs {
		if i >= b.lines.Len() {
			continue
		}
		line := b.lines.At(i)
		line.rewrap(b.wrapWidth, b.tabWidth, b.wrapMode, b.eastAsian)
		b.lines.Delete(i)
		b.lines.Insert(i, line)
	}
	b.dirty = map[int]bool{}
}

func (b *Buffer) clampRow(row int) int {
	if row < 0 {
		return 0
	}
	if n := b.lines.Len(); row >= n {
		return n - 1
	}
	return row
}

// InsertAt inserts str at (row, col) in display-column coordinates,
// grapheme-aligned, returning the new cursor position. Out-of-range
// row/col clamp to valid range.
func (b *Buffer) InsertAt(row, col int, str string) (newRow, newCol int) {
	row = b.clampRow(row)
	line := b.lines.At(row)
	text := line.text()
	byteOff := wcwidth.FindPosByWidth([]byte(text), col, b.tabWidth, true, false, b.eastAsian)

	segments := splitLines(str)
	if len(segments) == 1 {
		newText := text[:byteOff] + segments[0] + text[byteOff:]
		b.setLineChunks(row, []Chunk{{Text: newText}})
		return row, col + wcwidth.CalculateTextWidth([]byte(segments[0]), b.tabWidth, true, b.eastAsian)
	}

	before := text[:byteOff]
	after := text[byteOff:]
	newLines := make([]*logicalLine, len(segments))
	newLines[0] = newLogicalLine([]Chunk{{Text: before + segments[0]}})
	for i := 1; i < len(segments)-1; i++ {
		newLines[i] = newLogicalLine([]Chunk{{Text: segments[i]}})
	}
	last := segments[len(segments)-1]
	newLines[len(segments)-1] = newLogicalLine([]Chunk{{Text: last + after}})

	b.lines.Delete(row)
	for i, nl := range newLines {
		b.lines.Insert(row+i, nl)
		b.dirty[row+i] = true
	}
	endRow := row + len(segments) - 1
	endCol := wcwidth.CalculateTextWidth([]byte(last), b.tabWidth, true, b.eastAsian)
	return endRow, endCol
}

// DeleteRange removes the grapheme-aligned text between (startRow,
// startCol) and (endRow, endCol), merging the surviving halves of the
// boundary lines into one logical line.
func (b *Buffer) DeleteRange(startRow, startCol, endRow, endCol int) {
	startRow = b.clampRow(startRow)
	endRow = b.clampRow(endRow)
	if endRow < startRow || (endRow == startRow && endCol < startCol) {
		startRow, startCol, endRow, endCol = endRow, endCol, startRow, startCol
	}

	startLine := b.lines.At(startRow)
	startText := startLine.text()
	startByte := wcwidth.FindPosByWidth([]byte(startText), startCol, b.tabWidth, true, false, b.eastAsian)

	endLine := b.lines.At(endRow)
	endText := endLine.text()
	endByte := wcwidth.FindPosByWidth([]byte(endText), endCol, b.tabWidth, true, false, b.eastAsian)

	merged := startText[:startByte] + endText[endByte:]

	for r := endRow; r >= startRow; r-- {
		b.lines.Delete(r)
		delete(b.dirty, r)
	}
	b.lines.Insert(startRow, newLogicalLine([]Chunk{{Text: merged}}))
	b.dirty[startRow] = true
}

func (b *Buffer) setLineChunks(row int, chunks []Chunk) {
	b.lines.Delete(row)
	b.lines.Insert(row, newLogicalLine(chunks))
	b.dirty[row] = true
}

// AddHighlight overlays a style onto a column range of a logical line.
func (b *Buffer) AddHighlight(row int, h Highlight) {
	row = b.clampRow(row)
	line := b.lines.At(row)
	line.highlights = append(line.highlights, h)
}

// ClearHighlights removes every highlight overlapping [fromRow, toRow].
func (b *Buffer) ClearHighlights(fromRow, toRow int) {
	for r := b.clampRow(fromRow); r <= toRow && r < b.lines.Len(); r++ {
		b.lines.At(r).highlights = nil
	}
}

// VirtualLineCount returns the total number of visual (wrapped) rows.
func (b *Buffer) VirtualLineCount() int {
	b.flush()
	return int(b.lines.Measure())
}

// VisualLineToLogical maps a visual row to its logical row and the byte
// offset within that line's concatenated text where the visual row starts.
func (b *Buffer) VisualLineToLogical(vRow int) (row, startOffset int) {
	b.flush()
	if b.lines.Len() == 0 {
		return 0, 0
	}
	idx, cum := b.lines.FindByMetric(func(c visualMetric) bool { return int(c) > vRow })
	if idx >= b.lines.Len() {
		idx = b.lines.Len() - 1
	}
	line := b.lines.At(idx)
	priorRows := int(cum) - int(line.Measure())
	withinRow := vRow - priorRows
	if withinRow < 0 {
		withinRow = 0
	}
	return idx, line.rowStartOffset(withinRow)
}

// LogicalToVisual maps a logical (row, col) in display columns to its
// visual row and the column within that visual row.
func (b *Buffer) LogicalToVisual(row, col int) (vRow, vCol int) {
	b.flush()
	row = b.clampRow(row)
	priorRows := int(b.lines.PrefixMeasure(row))
	line := b.lines.At(row)
	text := line.text()
	byteOff := wcwidth.FindPosByWidth([]byte(text), col, b.tabWidth, true, false, b.eastAsian)

	withinRow := 0
	for withinRow < len(line.breaks) && line.breaks[withinRow] <= byteOff {
		withinRow++
	}
	rowStart := line.rowStartOffset(withinRow)
	colInRow := wcwidth.CalculateTextWidth([]byte(text[rowStart:byteOff]), b.tabWidth, true, b.eastAsian)
	return priorRows + withinRow, colInRow
}

// LineChunk is one resolved, already-styled run within a visual row.
type LineChunk struct {
	Text  string
	Fg    color.RGBA
	Bg    color.RGBA
	Attrs color.Attrs
	Link  string
}

// GetLineChunksForVisualRow returns the styled runs making up vRow, with
// highlight overlays merged in (highest Priority wins per column).
func (b *Buffer) GetLineChunksForVisualRow(vRow int) []LineChunk {
	b.flush()
	row, startOffset := b.visualRowLine(vRow)
	line := b.lines.At(row)
	endOffset := startOffset + len(line.rowText(b.withinRowOf(line, startOffset)))
	return b.resolveRow(line, startOffset, endOffset)
}

func (b *Buffer) visualRowLine(vRow int) (row, startOffset int) {
	return b.VisualLineToLogical(vRow)
}

func (b *Buffer) withinRowOf(line *logicalLine, startOffset int) int {
	for i, brk := range line.breaks {
		if brk == startOffset {
			return i + 1
		}
	}
	if startOffset == 0 {
		return 0
	}
	return len(line.breaks)
}

// resolveRow splits [startOffset,endOffset) of line's text into runs: a new
// run begins at every chunk boundary, every highlight boundary, and every
// column where the winning highlight changes.
func (b *Buffer) resolveRow(line *logicalLine, startOffset, endOffset int) []LineChunk {
	full := line.text()
	if endOffset > len(full) {
		endOffset = len(full)
	}
	boundaries := map[int]bool{startOffset: true, endOffset: true}

	off := 0
	for _, c := range line.chunks {
		boundaries[off] = true
		off += len(c.Text)
		boundaries[off] = true
	}
	offsetToCol := map[int]int{}
	pos, colAcc := 0, 0
	offsetToCol[0] = 0
	wcwidth.ForEachGrapheme(full, b.eastAsian, func(cluster string, w int) bool {
		pos += len(cluster)
		colAcc += w
		offsetToCol[pos] = colAcc
		return true
	})

	for _, h := range line.highlights {
		startB := byteOffsetForCol(full, h.StartCol, b.tabWidth, b.eastAsian)
		endB := byteOffsetForCol(full, h.EndCol, b.tabWidth, b.eastAsian)
		boundaries[startB] = true
		boundaries[endB] = true
	}

	cuts := make([]int, 0, len(boundaries))
	for o := range boundaries {
		if o >= startOffset && o <= endOffset {
			cuts = append(cuts, o)
		}
	}
	sort.Ints(cuts)

	var out []LineChunk
	for i := 0; i+1 < len(cuts); i++ {
		a, z := cuts[i], cuts[i+1]
		if a >= z {
			continue
		}
		chunk := chunkContaining(line.chunks, a)
		style := chunk.Style
		link := chunk.Link
		colA := offsetToCol[a]
		if best := winningHighlight(line.highlights, colA); best != nil {
			style = color.Merge(style, b.resolver(best.StyleID))
		}
		out = append(out, LineChunk{Text: full[a:z], Fg: style.Fg, Bg: style.Bg, Attrs: style.Attrs, Link: link})
	}
	return out
}

func byteOffsetForCol(text string, col, tabWidth int, eastAsian wcwidth.EastAsianMode) int {
	if col <= 0 {
		return 0
	}
	return wcwidth.FindPosByWidth([]byte(text), col, tabWidth, true, false, eastAsian)
}

func chunkContaining(chunks []Chunk, byteOffset int) Chunk {
	off := 0
	for _, c := range chunks {
		if byteOffset < off+len(c.Text) || (byteOffset == off+len(c.Text) && off+len(c.Text) == totalLen(chunks)) {
			return c
		}
		off += len(c.Text)
	}
	if len(chunks) == 0 {
		return Chunk{}
	}
	return chunks[len(chunks)-1]
}

func totalLen(chunks []Chunk) int {
	n := 0
	for _, c := range chunks {
		n += len(c.Text)
	}
	return n
}

func winningHighlight(hs []Highlight, col int) *Highlight {
	var best *Highlight
	for i := range hs {
		h := &hs[i]
		if col >= h.StartCol && col < h.EndCol {
			if best == nil || h.Priority > best.Priority {
				best = h
			}
		}
	}
	return best
}

// SetSelection stores the selection anchor/focus in logical coordinates.
// columnar selects columnar (box) selection mode for GetSelectedText.
func (b *Buffer) SetSelection(anchorRow, anchorCol, focusRow, focusCol int, columnar bool) {
	b.anchorRow, b.anchorCol = anchorRow, anchorCol
	b.focusRow, b.focusCol = focusRow, focusCol
	b.columnar = columnar
}

// GetSelectedText concatenates chunks within the selection's logical
// range, joining logical lines with \n, and columns with \t when columnar
// selection was requested.
func (b *Buffer) GetSelectedText() string {
	sr, sc, er, ec := b.anchorRow, b.anchorCol, b.focusRow, b.focusCol
	if er < sr || (er == sr && ec < sc) {
		sr, sc, er, ec = er, ec, sr, sc
	}
	sr, er = b.clampRow(sr), b.clampRow(er)

	sep := "\n"
	if b.columnar {
		sep = "\t"
	}

	var sb strings.Builder
	for r := sr; r <= er; r++ {
		line := b.lines.At(r)
		text := line.text()
		startCol, endCol := 0, wcwidth.CalculateTextWidth([]byte(text), b.tabWidth, true, b.eastAsian)
		if b.columnar || r == sr {
			startCol = sc
		}
		if b.columnar || r == er {
			endCol = ec
		}
		startB := byteOffsetForCol(text, startCol, b.tabWidth, b.eastAsian)
		endB := byteOffsetForCol(text, endCol, b.tabWidth, b.eastAsian)
		if startB > endB {
			startB = endB
		}
		if r > sr {
			sb.WriteString(sep)
		}
		sb.WriteString(text[startB:endB])
	}
	return sb.String()
}
