package input

// Parser is a single-threaded byte consumer producing typed events. It
// carries no goroutines or timers: a trailing incomplete sequence is
// buffered internally and completed by a later Feed call.
type Parser struct {
	pending []byte
	pressed map[int]bool
}

// NewParser creates an empty Parser.
func NewParser() *Parser {
	return &Parser{pressed: map[int]bool{}}
}

// Feed consumes data (appended after anything buffered from a previous
// call) and returns every event it could fully parse. A trailing
// incomplete escape sequence is retained for the next call. Malformed
// sequences are dropped, advancing at least one byte, so Feed always
// terminates and never deadlocks on bad input.
func (p *Parser) Feed(data []byte) []Event {
	buf := append(p.pending, data...)
	p.pending = nil

	var events []Event
	i := 0
	for i < len(buf) {
		n, ev, ok := p.parseOne(buf[i:])
		if n == 0 {
			// Incomplete sequence at the end of the buffer: wait for more.
			p.pending = append(p.pending, buf[i:]...)
			break
		}
		if ok {
			events = append(events, ev)
		}
		i += n
	}
	return events
}

// parseOne attempts to parse exactly one event starting at b[0]. It
// returns the number of bytes consumed (0 means "need more input"), the
// event (valid only if ok), and ok (false for a dropped malformed byte).
func (p *Parser) parseOne(b []byte) (n int, ev Event, ok bool) {
	if b[0] != 0x1b {
		return p.parseChar(b)
	}
	if len(b) < 2 {
		return 0, Event{}, false
	}
	switch b[1] {
	case '[':
		return p.parseCSI(b)
	case 'O':
		return p.parseSS3(b)
	case 'P', ']':
		return parsePassthrough(b)
	default:
		// Alt+key: ESC followed by a printable byte.
		return 2, Event{Kind: EventKey, Key: KeyChar, Rune: rune(b[1]), Mod: ModAlt}, true
	}
}

func (p *Parser) parseChar(b []byte) (int, Event, bool) {
	c := b[0]
	switch {
	case c == 0x1b:
		return 1, Event{Kind: EventKey, Key: KeyEsc}, true
	case c == 0x0d:
		return 1, Event{Kind: EventKey, Key: KeyEnter}, true
	case c == 0x09:
		return 1, Event{Kind: EventKey, Key: KeyTab}, true
	case c == 0x08:
		return 1, Event{Kind: EventKey, Key: KeyBackspace}, true
	case c == 0x7f:
		return 1, Event{Kind: EventKey, Key: KeyBackspace}, true
	case c <= 0x1f:
		return 1, Event{Kind: EventKey, Key: KeyChar, Rune: rune(c + 0x60), Mod: ModCtrl}, true
	default:
		r, size := decodeRune(b)
		return size, Event{Kind: EventKey, Key: KeyChar, Rune: r}, true
	}
}

func decodeRune(b []byte) (rune, int) {
	c := b[0]
	switch {
	case c < 0x80:
		return rune(c), 1
	case c&0xe0 == 0xc0:
		if len(b) < 2 {
			return rune(c), 0
		}
		return rune(c&0x1f)<<6 | rune(b[1]&0x3f), 2
	case c&0xf0 == 0xe0:
		if len(b) < 3 {
			return rune(c), 0
		}
		return rune(c&0x0f)<<12 | rune(b[1]&0x3f)<<6 | rune(b[2]&0x3f), 3
	case c&0xf8 == 0xf0:
		if len(b) < 4 {
			return rune(c), 0
		}
		return rune(c&0x07)<<18 | rune(b[1]&0x3f)<<12 | rune(b[2]&0x3f)<<6 | rune(b[3]&0x3f), 4
	default:
		return rune(c), 1
	}
}

// parsePassthrough consumes a DCS (ESC P) or OSC (ESC ]) sequence up to
// its string terminator: ESC \ (ST) or BEL (for OSC). Returns 0 if the
// terminator hasn't arrived yet.
func parsePassthrough(b []byte) (int, Event, bool) {
	for i := 2; i < len(b); i++ {
		if b[i] == 0x07 { // BEL terminator (OSC only)
			return i + 1, Event{Kind: EventPassthrough, Raw: append([]byte(nil), b[:i+1]...)}, true
		}
		if b[i] == 0x1b && i+1 < len(b) && b[i+1] == '\\' {
			return i + 2, Event{Kind: EventPassthrough, Raw: append([]byte(nil), b[:i+2]...)}, true
		}
	}
	return 0, Event{}, false
}

// parseSS3 consumes ESC O <final>, used for application-cursor-keys mode
// arrow/function keys.
func (p *Parser) parseSS3(b []byte) (int, Event, bool) {
	if len(b) < 3 {
		return 0, Event{}, false
	}
	key, found := ss3Keys[b[2]]
	if !found {
		return 3, Event{}, false
	}
	return 3, Event{Kind: EventKey, Key: key}, true
}

var ss3Keys = map[byte]Key{
	'A': KeyArrowUp, 'B': KeyArrowDown, 'C': KeyArrowRight, 'D': KeyArrowLeft,
	'P': KeyF1, 'Q': KeyF2, 'R': KeyF3, 'S': KeyF4,
}

// parseCSI consumes ESC [ <params> <final>, where params is any run of
// bytes in 0x30-0x3F (digits, ';', ':', '<', '?') and final is 0x40-0x7E.
func (p *Parser) parseCSI(b []byte) (int, Event, bool) {
	i := 2
	for i < len(b) && b[i] >= 0x30 && b[i] <= 0x3f {
		i++
	}
	if i >= len(b) {
		return 0, Event{}, false
	}
	if b[i] < 0x40 || b[i] > 0x7e {
		// Not a valid final byte: drop just the ESC and resync on '['.
		return 1, Event{}, false
	}
	params := b[2:i]
	final := b[i]
	n := i + 1

	if len(params) > 0 && params[0] == '<' {
		ev, ok := p.decodeSGRMouse(params[1:], final)
		return n, ev, ok
	}
	if final == 'M' && len(params) == 0 {
		return p.parseX10Mouse(b, n)
	}

	switch final {
	case 'I':
		return n, Event{Kind: EventFocusIn}, true
	case 'O':
		return n, Event{Kind: EventFocusOut}, true
	case 'c':
		return n, Event{Kind: EventCapabilityReply, Raw: append([]byte(nil), b[:n]...)}, true
	}

	if key, found := csiSimpleKeys[final]; found {
		return n, Event{Kind: EventKey, Key: key}, true
	}
	if final == '~' {
		return n, p.decodeTilde(params), true
	}
	return n, Event{}, false
}

var csiSimpleKeys = map[byte]Key{
	'A': KeyArrowUp, 'B': KeyArrowDown, 'C': KeyArrowRight, 'D': KeyArrowLeft,
	'H': KeyHome, 'F': KeyEnd,
}

var tildeKeys = map[string]Key{
	"1": KeyHome, "2": KeyInsert, "3": KeyDelete, "4": KeyEnd,
	"5": KeyPgUp, "6": KeyPgDown,
	"15": KeyF5, "17": KeyF6, "18": KeyF7, "19": KeyF8, "20": KeyF9,
	"21": KeyF10, "23": KeyF11, "24": KeyF12,
}

func (p *Parser) decodeTilde(params []byte) Event {
	s := string(params)
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			s = s[:i]
			break
		}
	}
	if key, found := tildeKeys[s]; found {
		return Event{Kind: EventKey, Key: key}
	}
	return Event{}
}

// decodeSGRMouse decodes "b;x;y(M|m)" per ESC[<...M / ESC[<...m.
func (p *Parser) decodeSGRMouse(params []byte, final byte) (Event, bool) {
	bcode, x, y, ok := splitThree(params)
	if !ok {
		return Event{}, false
	}
	pressed := final == 'M'
	return p.mouseEvent(bcode, x-1, y-1, pressed), true
}

// parseX10Mouse decodes the legacy "ESC [ M B X Y" form: three raw bytes
// (not decimal digits) follow the 'M', each offset by 32, coordinates
// additionally offset by 1 (so effectively by 33) per the X10 protocol.
func (p *Parser) parseX10Mouse(b []byte, afterFinal int) (int, Event, bool) {
	if afterFinal+3 > len(b) {
		return 0, Event{}, false
	}
	bcode := int(b[afterFinal]) - 32
	x := int(b[afterFinal+1]) - 33
	y := int(b[afterFinal+2]) - 33
	return afterFinal + 3, p.mouseEvent(bcode, x, y, true), true
}

func splitThree(params []byte) (a, b, c int, ok bool) {
	vals := [3]int{}
	idx := 0
	cur := 0
	seenDigit := false
	for _, ch := range params {
		if ch == ';' {
			if idx >= 2 {
				return 0, 0, 0, false
			}
			vals[idx] = cur
			idx++
			cur = 0
			seenDigit = false
			continue
		}
		if ch < '0' || ch > '9' {
			return 0, 0, 0, false
		}
		cur = cur*10 + int(ch-'0')
		seenDigit = true
	}
	if idx != 2 || !seenDigit {
		return 0, 0, 0, false
	}
	vals[2] = cur
	return vals[0], vals[1], vals[2], true
}

// mouseEvent derives down/up/move/drag/scroll from the raw button code
// and the parser's own pressed-button bookkeeping, per the scroll (bit
// 6), motion (bit 5) and button (bits 0-1) layout SGR mouse reporting
// uses.
func (p *Parser) mouseEvent(bcode, x, y int, pressed bool) Event {
	const (
		bitMotion = 1 << 5
		bitScroll = 1 << 6
	)
	button := bcode & 0x3
	motion := bcode&bitMotion != 0
	scroll := bcode&bitScroll != 0

	ev := Event{Kind: EventMouse, Button: button, X: x, Y: y}

	switch {
	case scroll:
		ev.MouseKind = MouseScroll
		if button == 1 {
			ev.Button = -1
		} else {
			ev.Button = 1
		}
	case motion && len(p.pressed) > 0:
		ev.MouseKind = MouseDrag
	case motion:
		ev.MouseKind = MouseMove
	case pressed:
		ev.MouseKind = MouseDown
		p.pressed[button] = true
	default:
		ev.MouseKind = MouseUp
		delete(p.pressed, button)
	}
	return ev
}
