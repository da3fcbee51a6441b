package presenter

import (
	"os"

	"golang.org/x/term"
)

// rawState wraps the terminal state term.MakeRaw returns, so Stop can
// restore it exactly.
type rawState struct {
	state *term.State
}

func enableRawMode(f *os.File) (*rawState, error) {
	old, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	return &rawState{state: old}, nil
}

func disableRawMode(f *os.File, s *rawState) error {
	if s == nil || s.state == nil {
		return nil
	}
	return term.Restore(int(f.Fd()), s.state)
}

// Mode escape sequences the presenter is the sole owner of. Each pair is
// acquired on Start and released on Stop in reverse order; RestoreModes
// re-asserts the "on" half after a focus-in, in case the terminal
// silently dropped them.
const (
	seqCursorHide = "\x1b[?25l"
	seqCursorShow = "\x1b[?25h"

	seqAltScreenOn  = "\x1b[?1049h"
	seqAltScreenOff = "\x1b[?1049l"

	// 1000 reports button press/release, 1002 additionally reports motion
	// while a button is held, 1006 switches to the unambiguous SGR
	// encoding the input parser expects.
	seqMouseOn  = "\x1b[?1000h\x1b[?1002h\x1b[?1006h"
	seqMouseOff = "\x1b[?1006l\x1b[?1002l\x1b[?1000l"

	seqBracketedOn  = "\x1b[?2004h"
	seqBracketedOff = "\x1b[?2004l"

	seqFocusOn  = "\x1b[?1004h"
	seqFocusOff = "\x1b[?1004l"
)
