package input

import "testing"

func TestFeedPlainCharacter(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte("a"))
	if len(events) != 1 || events[0].Kind != EventKey || events[0].Rune != 'a' {
		t.Fatalf("expected one char event 'a', got %+v", events)
	}
}

func TestFeedCtrlKey(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte{0x03})
	if len(events) != 1 || events[0].Mod != ModCtrl || events[0].Rune != 'c' {
		t.Fatalf("expected ctrl+c, got %+v", events)
	}
}

func TestFeedArrowKey(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte("\x1b[A"))
	if len(events) != 1 || events[0].Key != KeyArrowUp {
		t.Fatalf("expected arrow-up, got %+v", events)
	}
}

func TestFeedIncompleteSequenceBuffersAcrossCalls(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte("\x1b["))
	if len(events) != 0 {
		t.Fatalf("expected no events yet, got %+v", events)
	}
	events = p.Feed([]byte("A"))
	if len(events) != 1 || events[0].Key != KeyArrowUp {
		t.Fatalf("expected the sequence to complete across calls, got %+v", events)
	}
}

func TestFeedFocusInOut(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte("\x1b[O\x1b[I"))
	if len(events) != 2 || events[0].Kind != EventFocusOut || events[1].Kind != EventFocusIn {
		t.Fatalf("expected focus-out then focus-in, got %+v", events)
	}
}

func TestSGRMouseDragScenario(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte("\x1b[<0;10;5M\x1b[<32;12;5M\x1b[<0;12;5m"))
	if len(events) != 3 {
		t.Fatalf("expected 3 mouse events, got %d: %+v", len(events), events)
	}
	if events[0].MouseKind != MouseDown || events[0].X != 9 || events[0].Y != 4 {
		t.Errorf("expected down(9,4), got %+v", events[0])
	}
	if events[1].MouseKind != MouseDrag || events[1].X != 11 || events[1].Y != 4 {
		t.Errorf("expected drag(11,4), got %+v", events[1])
	}
	if events[2].MouseKind != MouseUp || events[2].X != 11 || events[2].Y != 4 {
		t.Errorf("expected up(11,4), got %+v", events[2])
	}
}

func TestX10MouseDecode(t *testing.T) {
	p := NewParser()
	// button=0 (32+0), x=1 (33+1=34), y=1 (33+1=34) -> decoded x=1,y=1
	events := p.Feed([]byte{0x1b, '[', 'M', 32, 34, 34})
	if len(events) != 1 || events[0].Kind != EventMouse || events[0].X != 1 || events[0].Y != 1 {
		t.Fatalf("expected a decoded X10 mouse event at (1,1), got %+v", events)
	}
}

func TestMalformedSequenceDropsAndAdvances(t *testing.T) {
	p := NewParser()
	// ESC [ followed by an invalid final byte (space, 0x20, not 0x40-0x7e;
	// also not a param byte 0x30-0x3f) should drop the ESC, then '[', ' '
	// and 'a' each parse as ordinary printable characters.
	events := p.Feed([]byte("\x1b[ a"))
	if len(events) != 3 {
		t.Fatalf("expected '[', ' ' and 'a' to still parse as printable chars, got %+v", events)
	}
	if events[0].Rune != '[' || events[1].Rune != ' ' || events[2].Rune != 'a' {
		t.Errorf("expected runes '[', ' ', 'a' in order, got %+v", events)
	}
}

func TestFeedNeverPanicsOnRandomBytes(t *testing.T) {
	p := NewParser()
	random := []byte{0x1b, '[', '<', '9', '9', ';', 0x1b, 0x9f, 0x00, 0xff, 'm'}
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Feed panicked on malformed input: %v", r)
		}
	}()
	p.Feed(random)
}

func TestCapabilityDAReply(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte("\x1b[?1;2c"))
	if len(events) != 1 || events[0].Kind != EventCapabilityReply {
		t.Fatalf("expected a capability reply event, got %+v", events)
	}
}
