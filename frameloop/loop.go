// Package frameloop implements the single-threaded cooperative scheduler
// tying the scene graph, input parser, event bus and presenter together:
// each tick drains pending input, dispatches it, and — only if something
// is actually dirty — runs layout, composites, and presents.
package frameloop

import (
	"io"
	"time"

	"github.com/opentui/opentui-go/cellbuf"
	"github.com/opentui/opentui-go/event"
	"github.com/opentui/opentui-go/input"
	"github.com/opentui/opentui-go/internal/rlog"
	"github.com/opentui/opentui-go/presenter"
	"github.com/opentui/opentui-go/scene"
)

// Loop is the cooperative frame scheduler.
type Loop struct {
	TargetFPS int

	tree       *scene.Tree
	present    *presenter.Presenter
	parser     *input.Parser
	dispatcher *event.Dispatcher

	bytes <-chan byte

	onFrame []func(dt time.Duration)
	onKey   func(input.Event)

	lastTick time.Time
	stopped  bool
}

// New creates a loop compositing tree into present, routing input fed to
// parser through dispatcher.
func New(targetFPS int, tree *scene.Tree, present *presenter.Presenter, parser *input.Parser, dispatcher *event.Dispatcher) *Loop {
	if targetFPS <= 0 {
		targetFPS = 30
	}
	return &Loop{TargetFPS: targetFPS, tree: tree, present: present, parser: parser, dispatcher: dispatcher}
}

// OnFrame registers a callback invoked once per tick, in registration
// order. A panicking callback is logged and does not abort the frame or
// stop the loop.
func (l *Loop) OnFrame(fn func(dt time.Duration)) {
	l.onFrame = append(l.onFrame, fn)
}

// OnKey registers the callback EventKey, EventFocusIn and EventFocusOut
// are routed to — the event bus only routes mouse events into the scene
// graph, since keyboard delivery depends on which node holds focus, a
// decision the caller owns.
func (l *Loop) OnKey(fn func(input.Event)) {
	l.onKey = fn
}

// Start spawns the background byte reader draining r (normally the raw
// tty). Call once before Run.
func (l *Loop) Start(r io.Reader) {
	l.bytes = startByteReader(r)
}

// Run drives the loop until Stop is called or the input source closes.
// Input is drained every tick unconditionally; layout/composite/present
// only run when the scene is actually dirty. If a tick runs over its
// frame budget, the next tick's wait is simply shorter (or zero) —
// ticks are never queued to catch up.
func (l *Loop) Run() error {
	l.lastTick = time.Now()
	period := time.Second / time.Duration(l.TargetFPS)

	for !l.stopped {
		wait := period - time.Since(l.lastTick)
		if wait > 0 {
			time.Sleep(wait)
		}
		now := time.Now()
		dt := now.Sub(l.lastTick)
		l.lastTick = now

		closed := l.drainInput()
		l.runFrameCallbacks(dt)

		if l.tree.Root.Dirty() {
			buf := l.tree.Frame()
			l.blit(buf)
			if err := l.present.Present(); err != nil {
				return err
			}
		}

		if closed {
			return nil
		}
	}
	return nil
}

// Stop marks the loop to exit and restores terminal modes via the
// presenter. Idempotent.
func (l *Loop) Stop() error {
	if l.stopped {
		return nil
	}
	l.stopped = true
	return l.present.Stop()
}

func (l *Loop) drainInput() (closed bool) {
	var raw []byte
loop:
	for {
		select {
		case b, ok := <-l.bytes:
			if !ok {
				closed = true
				break loop
			}
			raw = append(raw, b)
		default:
			break loop
		}
	}
	if len(raw) > 0 {
		for _, ev := range l.parser.Feed(raw) {
			l.routeEvent(ev)
		}
	}
	return closed
}

func (l *Loop) routeEvent(ev input.Event) {
	switch ev.Kind {
	case input.EventMouse:
		l.dispatcher.Dispatch(ev)
	case input.EventKey:
		if l.onKey != nil {
			l.onKey(ev)
		}
	case input.EventFocusIn:
		if err := l.present.RestoreModes(); err != nil {
			rlog.L.Warn().Err(err).Msg("failed to restore terminal modes on focus-in")
		}
		if l.onKey != nil {
			l.onKey(ev)
		}
	case input.EventFocusOut:
		if l.onKey != nil {
			l.onKey(ev)
		}
	case input.EventCapabilityReply:
		l.present.ApplyCapabilityReply(ev)
	}
}

func (l *Loop) runFrameCallbacks(dt time.Duration) {
	for _, fn := range l.onFrame {
		l.safeCall(fn, dt)
	}
}

func (l *Loop) safeCall(fn func(time.Duration), dt time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			rlog.L.Error().Interface("panic", r).Msg("frame callback panicked")
		}
	}()
	fn(dt)
}

// blit copies the scene graph's composited buffer into the presenter's
// back buffer, resizing it first if the terminal geometry changed.
func (l *Loop) blit(buf *cellbuf.Buffer) {
	w, h := buf.Width, buf.Height
	if l.present.Back.Width != w || l.present.Back.Height != h {
		l.present.Resize(w, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l.present.Back.SetCell(x, y, buf.Get(x, y))
		}
	}
}
