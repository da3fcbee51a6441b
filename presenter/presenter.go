// Package presenter owns the front/back cell buffers and the terminal
// output sink: the per-cell diff between frames, the cursor/style state
// machine that turns that diff into ANSI, and the capability handshake
// and terminal-mode lifecycle (raw mode, alternate screen, mouse
// reporting, bracketed paste, focus reporting) that only this package is
// allowed to touch.
package presenter

import (
	"errors"
	"io"
	"os"

	"github.com/opentui/opentui-go/cellbuf"
	"github.com/opentui/opentui-go/color"
	"github.com/opentui/opentui-go/input"
	"github.com/opentui/opentui-go/internal/config"
	"github.com/opentui/opentui-go/internal/rlog"
)

// maxWriteRetries bounds retries of a short write before the presenter
// gives up and enters the stopped state.
const maxWriteRetries = 3

// ErrStopped is returned by Present and Write once the output sink has
// been closed; every subsequent call is a no-op returning the same error.
var ErrStopped = errors.New("presenter: stopped")

// Presenter diffs a drawn-to Back buffer against what the terminal
// currently shows (Front) and writes the minimal ANSI to reconcile them.
type Presenter struct {
	Front, Back *cellbuf.Buffer

	out  io.Writer
	tty  *os.File
	raw  *rawState
	cfg  config.Config
	Caps Capabilities

	style    styleWriter
	curX     int
	curY     int
	curStyle color.Style
	curLink  string
	linkOpen bool

	stopped bool
}

// New creates a presenter of the given size writing ANSI to out (normally
// os.Stdout). tty is the descriptor raw mode is acquired on (normally
// os.Stdin); pass nil to skip raw-mode acquisition (e.g. under test).
func New(width, height int, out io.Writer, tty *os.File, cfg config.Config) *Presenter {
	caps := DetectFromEnv()
	caps.Hyperlink = caps.Hyperlink && cfg.Hyperlink
	return &Presenter{
		Front: cellbuf.New(width, height),
		Back:  cellbuf.New(width, height),
		out:   out,
		tty:   tty,
		cfg:   cfg,
		Caps:  caps,
		style: styleWriter{trueColor: caps.TrueColor},
		curX:  -1,
		curY:  -1,
	}
}

// Start acquires every terminal mode the presenter owns and writes the DA
// handshake queries. Responses arrive later through ApplyCapabilityReply.
func (p *Presenter) Start() error {
	if p.tty != nil {
		raw, err := enableRawMode(p.tty)
		if err != nil {
			rlog.L.Warn().Err(err).Msg("failed to enable raw mode")
		} else {
			p.raw = raw
		}
	}
	var seq []byte
	seq = append(seq, seqCursorHide...)
	if p.cfg.AltScreen {
		seq = append(seq, seqAltScreenOn...)
	}
	if p.cfg.Mouse {
		seq = append(seq, seqMouseOn...)
	}
	seq = append(seq, seqBracketedOn...)
	seq = append(seq, seqFocusOn...)
	seq = append(seq, HandshakeQueries()...)
	return p.write(seq)
}

// Stop restores every mode Start acquired, in reverse order, restores raw
// mode, and marks the presenter stopped. Idempotent.
func (p *Presenter) Stop() error {
	var seq []byte
	seq = p.resetStyle(seq)
	seq = append(seq, seqFocusOff...)
	seq = append(seq, seqBracketedOff...)
	if p.cfg.Mouse {
		seq = append(seq, seqMouseOff...)
	}
	if p.cfg.AltScreen {
		seq = append(seq, seqAltScreenOff...)
	}
	seq = append(seq, seqCursorShow...)
	err := p.write(seq)
	if p.tty != nil {
		disableRawMode(p.tty, p.raw)
	}
	p.stopped = true
	return err
}

// RestoreModes re-asserts mouse, bracketed-paste and focus reporting. The
// frame loop calls this on a focus-in event, since some terminal
// multiplexers silently drop these modes across a detach/attach cycle.
func (p *Presenter) RestoreModes() error {
	var seq []byte
	if p.cfg.Mouse {
		seq = append(seq, seqMouseOn...)
	}
	seq = append(seq, seqBracketedOn...)
	seq = append(seq, seqFocusOn...)
	return p.write(seq)
}

// ApplyCapabilityReply feeds a parsed DA reply event into Caps and keeps
// the style state machine's truecolor flag in sync.
func (p *Presenter) ApplyCapabilityReply(ev input.Event) {
	p.Caps.ApplyReply(ev)
	p.style.trueColor = p.Caps.TrueColor
}

// Resize reallocates both buffers to the new size. Content is not
// preserved (callers redraw from the scene graph); the cursor position
// shadow is invalidated so the next Present repositions explicitly.
func (p *Presenter) Resize(width, height int) {
	p.Front.Resize(width, height)
	p.Back.Resize(width, height)
	p.curX, p.curY = -1, -1
}

func cellEqual(a, b cellbuf.Cell) bool {
	return a.Char == b.Char && a.Fg.Equal(b.Fg) && a.Bg.Equal(b.Bg) && a.Attrs == b.Attrs && a.Link == b.Link
}

// Present diffs Back against Front cell by cell, writes the ANSI delta to
// the output sink, and updates Front to match so the next Present's diff
// is against what the terminal actually now shows. A no-op once stopped.
func (p *Presenter) Present() error {
	if p.stopped {
		return ErrStopped
	}
	var seq []byte
	w, h := p.Back.Width, p.Back.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			back := p.Back.Get(x, y)
			if back.Wide == cellbuf.WideRight {
				continue
			}
			front := p.Front.Get(x, y)
			if cellEqual(back, front) {
				continue
			}
			if p.curX != x || p.curY != y {
				seq = appendCursorPos(seq, y+1, x+1)
			}
			style := color.Style{Fg: back.Fg, Bg: back.Bg, Attrs: back.Attrs}
			seq = p.style.transition(seq, p.curStyle, style)
			p.curStyle = style
			seq = p.transitionLink(seq, back.Link)

			ch := back.Char
			if ch == 0 {
				ch = ' '
			}
			seq = append(seq, string(ch)...)

			p.curX = x + 1
			p.curY = y
			if back.Wide == cellbuf.WideLeft {
				p.curX++
			}
			p.Front.SetCell(x, y, back)
		}
	}
	if len(seq) == 0 {
		return nil
	}
	return p.write(seq)
}

// resetStyle closes any open hyperlink run and resets the style shadow to
// the terminal default, appending whatever ANSI that takes to dst. Present
// never calls this itself — the style shadow there tracks the terminal's
// actual state and is only ever updated when a cell requires a change, per
// the diff contract. This exists for session teardown (Stop), where the
// terminal must be left in its default state regardless of what the last
// frame drew.
func (p *Presenter) resetStyle(dst []byte) []byte {
	if p.linkOpen {
		dst = p.transitionLink(dst, "")
	}
	if !p.curStyle.Equal(color.Style{}) {
		dst = p.style.transition(dst, p.curStyle, color.Style{})
		p.curStyle = color.Style{}
	}
	return dst
}

// transitionLink opens or closes an OSC 8 hyperlink run when the target
// URL changes, skipped entirely when the terminal lacks the capability.
func (p *Presenter) transitionLink(dst []byte, link string) []byte {
	if !p.Caps.Hyperlink || link == p.curLink {
		return dst
	}
	if p.linkOpen {
		dst = append(dst, "\x1b]8;;\x1b\\"...)
		p.linkOpen = false
	}
	if link != "" {
		dst = append(dst, "\x1b]8;;"...)
		dst = append(dst, link...)
		dst = append(dst, "\x1b\\"...)
		p.linkOpen = true
	}
	p.curLink = link
	return dst
}

// write retries a short write up to maxWriteRetries before concluding the
// sink is closed and entering the stopped state.
func (p *Presenter) write(b []byte) error {
	if p.stopped {
		return ErrStopped
	}
	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		n, err := p.out.Write(b)
		if err == nil {
			return nil
		}
		if n <= 0 {
			rlog.L.Error().Err(err).Int("attempt", attempt).Msg("presenter write failed")
			p.stopped = true
			return err
		}
		b = b[n:]
		if len(b) == 0 {
			return nil
		}
	}
	p.stopped = true
	return errors.New("presenter: output sink unresponsive after retries")
}
