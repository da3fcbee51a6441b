package wcwidth

import "testing"

func TestIsASCIIOnly(t *testing.T) {
	if !IsASCIIOnly([]byte("hello")) {
		t.Error("expected ascii-only")
	}
	if IsASCIIOnly([]byte("héllo")) {
		t.Error("expected not ascii-only")
	}
}

func TestCalculateTextWidthASCII(t *testing.T) {
	if w := CalculateTextWidth([]byte("hello"), 8, true, EastAsianNarrow); w != 5 {
		t.Errorf("got %d, want 5", w)
	}
}

func TestCalculateTextWidthWide(t *testing.T) {
	// 世 and 界 are both wide (2 cells) under any East-Asian mode.
	if w := CalculateTextWidth([]byte("世界"), 8, true, EastAsianNarrow); w != 4 {
		t.Errorf("got %d, want 4", w)
	}
}

func TestCalculateTextWidthMatchesGraphemeSum(t *testing.T) {
	s := "a世b"
	total := CalculateTextWidth([]byte(s), 8, true, EastAsianNarrow)
	sum := 0
	forEachGrapheme([]byte(s), func(cluster string) {
		sum += graphemeDisplayWidth(cluster, runeWidthCondition(EastAsianNarrow))
	})
	if total != sum {
		t.Errorf("width %d != grapheme sum %d", total, sum)
	}
}

func TestCalculateTextWidthTabExpansion(t *testing.T) {
	// tab at column 0 with tabWidth 4 advances to column 4.
	w := CalculateTextWidth([]byte("\tx"), 4, true, EastAsianNarrow)
	if w != 5 {
		t.Errorf("got %d, want 5", w)
	}
}

func TestFindLineBreaks(t *testing.T) {
	b := []byte("a\nb\r\nc")
	breaks := FindLineBreaks(b)
	if len(breaks) != 2 {
		t.Fatalf("expected 2 breaks, got %d", len(breaks))
	}
	if breaks[0].Kind != BreakLF || breaks[0].Offset != 1 {
		t.Errorf("break 0 = %+v", breaks[0])
	}
	if breaks[1].Kind != BreakCRLF || breaks[1].Offset != 3 {
		t.Errorf("break 1 = %+v", breaks[1])
	}
}

func TestFindWrapPosByWidthFits(t *testing.T) {
	off, w := FindWrapPosByWidth([]byte("hello world"), 5, 8, true, EastAsianNarrow)
	if off != 5 || w != 5 {
		t.Errorf("got off=%d w=%d, want 5,5", off, w)
	}
}

func TestFindWrapPosByWidthSingleGraphemeTooWide(t *testing.T) {
	// maxWidth smaller than the first wide glyph: must still return that glyph.
	off, w := FindWrapPosByWidth([]byte("世hi"), 1, 8, true, EastAsianNarrow)
	if off != len("世") || w != 2 {
		t.Errorf("got off=%d w=%d", off, w)
	}
}

func TestFindPosByWidthRoundTrip(t *testing.T) {
	s := []byte("hello")
	off := FindPosByWidth(s, 3, 8, true, false, EastAsianNarrow)
	if off != 3 {
		t.Errorf("got %d, want 3", off)
	}
}

func TestFindWrapBreaksWordMode(t *testing.T) {
	offsets := FindWrapBreaks([]byte("aaa bbb ccc"), WrapWord, EastAsianNarrow)
	if len(offsets) == 0 {
		t.Fatal("expected some break candidates")
	}
}

func TestFindWrapBreaksCharMode(t *testing.T) {
	offsets := FindWrapBreaks([]byte("abc"), WrapChar, EastAsianNarrow)
	if len(offsets) != 3 {
		t.Errorf("got %d offsets, want 3", len(offsets))
	}
}

func TestFindWrapBreaksNoneModeOnlyHardBreaks(t *testing.T) {
	offsets := FindWrapBreaks([]byte("a b\nc"), WrapNone, EastAsianNarrow)
	if len(offsets) != 1 {
		t.Errorf("got %d offsets, want 1", len(offsets))
	}
}

// TestFindWrapBreaksWordModeConsumesInvalidBytesOneAtATime guards against
// deriving byte advance from the decoded rune: a lone 0xFF byte must
// consume exactly one byte, not the three bytes U+FFFD would take if the
// input had gone through a []rune(string(b)) conversion first.
func TestFindWrapBreaksWordModeConsumesInvalidBytesOneAtATime(t *testing.T) {
	b := []byte{'a', 0xFF, 0xFF, ' ', 'b'}
	offsets := FindWrapBreaks(b, WrapWord, EastAsianNarrow)
	found := false
	for _, off := range offsets {
		if off == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a break candidate at byte offset 3 (the space), got %v", offsets)
	}
}

func TestGraphemeCount(t *testing.T) {
	if n := GraphemeCount([]byte("世界")); n != 2 {
		t.Errorf("got %d, want 2", n)
	}
}

func TestInvalidUTF8DoesNotPanic(t *testing.T) {
	bad := []byte{0xff, 0xfe, 'a', 0x80}
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panicked on invalid utf8: %v", r)
		}
	}()
	_ = CalculateTextWidth(bad, 8, true, EastAsianNarrow)
	_ = GraphemeCount(bad)
}
