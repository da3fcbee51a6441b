package wcwidth

// FindWrapPosByWidth returns the largest prefix of b (as a byte offset) that
// fits within maxWidth visual columns, along with that prefix's visual
// width. If no grapheme fits — the first grapheme alone exceeds maxWidth —
// it still returns that single grapheme, so callers always make progress.
//
// Tab handling follows a "wrap before tab" rule: if expanding a tab would
// overflow maxWidth, the wrap point is placed before the tab rather than
// letting it consume the remainder.
func FindWrapPosByWidth(b []byte, maxWidth, tabWidth int, respectTabs bool, mode EastAsianMode) (int, int) {
	cond := runeWidthCondition(mode)
	col := 0
	offset := 0
	firstGrapheme := true

	result := -1
	resultWidth := 0
	stopped := false

	emit := func(off, w int) {
		result = off
		resultWidth = w
	}

	forEachGrapheme(b, func(cluster string) {
		if stopped {
			return
		}
		var w int
		isTab := respectTabs && cluster == "\t"
		if isTab {
			w = ((col/tabWidth)+1)*tabWidth - col
		} else {
			w = graphemeDisplayWidth(cluster, cond)
		}

		if col+w > maxWidth {
			stopped = true
			if firstGrapheme {
				// Single grapheme exceeds maxWidth entirely: still must
				// return something so the caller always makes progress.
				emit(offset+len(cluster), col+w)
			}
			return
		}
		col += w
		offset += len(cluster)
		emit(offset, col)
		firstGrapheme = false
	})

	if result == -1 {
		return 0, 0
	}
	return result, resultWidth
}

// FindPosByWidth returns the byte offset whose visual column is nearest
// targetCol. roundUp selects the grapheme whose *end* column is >=
// targetCol; otherwise the grapheme whose end column is <= targetCol is
// chosen.
func FindPosByWidth(b []byte, targetCol, tabWidth int, respectTabs, roundUp bool, mode EastAsianMode) int {
	cond := runeWidthCondition(mode)
	col := 0
	offset := 0
	lastOffsetAtOrBelow := 0

	found := -1
	forEachGrapheme(b, func(cluster string) {
		if found != -1 {
			return
		}
		var w int
		if respectTabs && cluster == "\t" {
			w = ((col/tabWidth)+1)*tabWidth - col
		} else {
			w = graphemeDisplayWidth(cluster, cond)
		}
		endCol := col + w
		if endCol >= targetCol {
			if roundUp || endCol == targetCol {
				found = offset + len(cluster)
			} else {
				if col <= targetCol {
					found = offset
				} else {
					found = lastOffsetAtOrBelow
				}
			}
		}
		lastOffsetAtOrBelow = offset + len(cluster)
		col = endCol
		offset += len(cluster)
	})
	if found == -1 {
		return offset // target beyond the end: clamp to full length
	}
	return found
}
