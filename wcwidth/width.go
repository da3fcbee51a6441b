// Package wcwidth implements Unicode-aware display width: ASCII fast path,
// UTF-8 decoding, grapheme width lookup, tab expansion, line/word break
// scanning and width-bounded search.
//
// Width lookup is delegated to github.com/mattn/go-runewidth (the
// ambiguous-width table most terminal-facing Go code relies on) and
// grapheme cluster boundaries to github.com/rivo/uniseg, so that a
// combining mark or ZWJ emoji sequence counts as one grapheme rather than
// one rune.
package wcwidth

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// EastAsianMode selects how ambiguous-width codepoints are measured.
type EastAsianMode int

const (
	// EastAsianNarrow treats East-Asian-ambiguous codepoints as width 1.
	// This is the default, matching go-runewidth's own default condition.
	EastAsianNarrow EastAsianMode = iota
	// EastAsianWide treats them as width 2.
	EastAsianWide
)

// IsASCIIOnly returns true iff every byte is < 0x80. It's a simple
// byte-at-a-time scan — SIMD-amenable in the sense that there's no
// branching on Unicode state, only a byte compare, so a vectorizing
// compiler or a future manually-unrolled variant can speed it up without
// changing behavior.
func IsASCIIOnly(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// GraphemeWidth returns the display width of a single codepoint: 0 for
// zero-width marks, 1 for narrow/ascii, 2 for wide, and 1 or 2 for
// East-Asian-ambiguous depending on mode.
func GraphemeWidth(r rune, mode EastAsianMode) int {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = mode == EastAsianWide
	return cond.RuneWidth(r)
}

// runeWidthCondition builds the Condition that the hot-path functions
// (CalculateTextWidth, FindWrapPosByWidth) create once per call and reuse
// for every grapheme, rather than allocating one per grapheme.
func runeWidthCondition(mode EastAsianMode) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = mode == EastAsianWide
	return cond
}

// graphemeDisplayWidth measures the width of one grapheme cluster (as
// returned by uniseg) by taking the max width of its constituent runes —
// combining marks are zero-width and don't affect the base rune's width.
func graphemeDisplayWidth(cluster string, cond *runewidth.Condition) int {
	w := 0
	for _, r := range cluster {
		if rw := cond.RuneWidth(r); rw > w {
			w = rw
		}
	}
	return w
}

// CalculateTextWidth sums grapheme widths over the UTF-8 decomposition of
// b. Invalid byte sequences are treated as one 1-wide replacement grapheme
// per byte, so this never panics on malformed input.
func CalculateTextWidth(b []byte, tabWidth int, respectTabs bool, mode EastAsianMode) int {
	cond := runeWidthCondition(mode)
	col := 0
	forEachGrapheme(b, func(cluster string) {
		if respectTabs && cluster == "\t" {
			next := ((col / tabWidth) + 1) * tabWidth
			col = next
			return
		}
		col += graphemeDisplayWidth(cluster, cond)
	})
	return col
}

// forEachGrapheme walks b as grapheme clusters via uniseg, falling back to
// one-byte-at-a-time consumption for invalid UTF-8 (uniseg itself handles
// this the same way RuneError-for-RuneError, but we make the contract
// explicit here since callers rely on "never panics").
func forEachGrapheme(b []byte, fn func(cluster string)) {
	s := b
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(string(s), state)
		if cluster == "" {
			// Defensive: FirstGraphemeClusterInString should always consume at least one byte;
			// if it doesn't, force progress to guarantee termination.
			_, size := utf8.DecodeRune(s)
			if size == 0 {
				size = 1
			}
			fn(string(s[:size]))
			s = s[size:]
			continue
		}
		fn(cluster)
		s = []byte(rest)
		state = newState
	}
}

// GraphemeCount returns the number of grapheme clusters in b.
func GraphemeCount(b []byte) int {
	n := 0
	forEachGrapheme(b, func(string) { n++ })
	return n
}

// ForEachGrapheme walks s as grapheme clusters, invoking fn with each
// cluster and its display width. fn returns false to stop early. Exported
// for callers outside this package (e.g. cellbuf.DrawText) that need the
// same clustering/width logic without duplicating uniseg/runewidth glue.
func ForEachGrapheme(s string, mode EastAsianMode, fn func(cluster string, width int) bool) {
	cond := runeWidthCondition(mode)
	stop := false
	forEachGrapheme([]byte(s), func(cluster string) {
		if stop {
			return
		}
		w := graphemeDisplayWidth(cluster, cond)
		if !fn(cluster, w) {
			stop = true
		}
	})
}
