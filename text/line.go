package text

import (
	"strings"

	"github.com/opentui/opentui-go/rope"
	"github.com/opentui/opentui-go/wcwidth"
)

// visualMetric is the per-line "how many visual rows does this wrap into"
// measurement the rope aggregates; FindByMetric over it is how
// visualLineToLogical resolves in O(log n).
type visualMetric int

func (m visualMetric) Add(other visualMetric) visualMetric { return m + other }

// logicalLine is one \n-delimited line: its styled chunks, highlight
// overlays, and a wrap cache of soft-break byte offsets.
type logicalLine struct {
	chunks     []Chunk
	highlights []Highlight

	// breaks holds the byte offsets (into concatenated chunk text) where
	// each visual row of this line ends, excluding the final implicit row
	// end. A line with no soft breaks is exactly one visual row.
	breaks []int
}

func newLogicalLine(chunks []Chunk) *logicalLine {
	return &logicalLine{chunks: chunks}
}

// text concatenates this line's chunk text.
func (l *logicalLine) text() string {
	var sb strings.Builder
	for _, c := range l.chunks {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

func (l *logicalLine) Measure() visualMetric {
	return visualMetric(len(l.breaks) + 1)
}

func (l *logicalLine) IsEmpty() bool {
	for _, c := range l.chunks {
		if c.Text != "" {
			return false
		}
	}
	return true
}

func (l *logicalLine) Markers() []rope.MarkerVariant { return nil }

// rewrap recomputes l.breaks for the given wrap parameters.
func (l *logicalLine) rewrap(width, tabWidth int, mode wcwidth.WrapMode, eastAsian wcwidth.EastAsianMode) {
	l.breaks = wrapBreaks([]byte(l.text()), width, tabWidth, mode, eastAsian)
}

// wrapBreaks returns soft-wrap byte offsets within b: the positions where
// each visual row other than the last ends. WrapNone and a non-positive
// width both mean "never soft-wrap" — only the explicit logical line break
// that already delimits b applies.
func wrapBreaks(b []byte, width, tabWidth int, mode wcwidth.WrapMode, eastAsian wcwidth.EastAsianMode) []int {
	if mode == wcwidth.WrapNone || width <= 0 || len(b) == 0 {
		return nil
	}
	candidates := wrapCandidates(b, mode, eastAsian)

	var breaks []int
	pos := 0
	for pos < len(b) {
		limitOffset, _ := wcwidth.FindWrapPosByWidth(b[pos:], width, tabWidth, true, eastAsian)
		if limitOffset <= 0 {
			break
		}
		limit := pos + limitOffset
		if limit >= len(b) {
			break
		}
		chosen := limit
		if mode == wcwidth.WrapWord {
			if best, ok := lastCandidateInRange(candidates, pos, limit); ok {
				chosen = best
			}
		}
		breaks = append(breaks, chosen)
		pos = chosen
	}
	return breaks
}

func wrapCandidates(b []byte, mode wcwidth.WrapMode, eastAsian wcwidth.EastAsianMode) []int {
	return wcwidth.FindWrapBreaks(b, mode, eastAsian)
}

func lastCandidateInRange(candidates []int, lo, hi int) (int, bool) {
	best := -1
	for _, c := range candidates {
		if c > lo && c <= hi {
			best = c
		}
		if c > hi {
			break
		}
	}
	if best <= lo {
		return 0, false
	}
	return best, true
}

// rowText returns the text of the withinRow'th (0-based) visual row of
// this line.
func (l *logicalLine) rowText(withinRow int) string {
	full := l.text()
	start := 0
	if withinRow > 0 && withinRow-1 < len(l.breaks) {
		start = l.breaks[withinRow-1]
	}
	end := len(full)
	if withinRow < len(l.breaks) {
		end = l.breaks[withinRow]
	}
	if start > len(full) {
		start = len(full)
	}
	if end > len(full) {
		end = len(full)
	}
	if start > end {
		start = end
	}
	return full[start:end]
}

// rowStartOffset returns the byte offset where the withinRow'th visual row
// begins.
func (l *logicalLine) rowStartOffset(withinRow int) int {
	if withinRow <= 0 || withinRow-1 >= len(l.breaks) {
		if withinRow <= 0 {
			return 0
		}
		return len(l.text())
	}
	return l.breaks[withinRow-1]
}
