package frameloop

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/opentui/opentui-go/event"
	"github.com/opentui/opentui-go/input"
	"github.com/opentui/opentui-go/internal/config"
	"github.com/opentui/opentui-go/presenter"
	"github.com/opentui/opentui-go/scene"
)

func newTestLoop(r string) (*Loop, *scene.Node, *bytes.Buffer) {
	root := scene.NewNode(scene.CapContainer)
	tree := scene.NewTree(root, 10, 5)
	var out bytes.Buffer
	pres := presenter.New(10, 5, &out, nil, config.Default())
	parser := input.NewParser()
	disp := event.NewDispatcher(root, 10, 5)

	l := New(1000, tree, pres, parser, disp)
	l.Start(strings.NewReader(r))
	return l, root, &out
}

func TestRunProcessesKeyEventsThenExitsOnClose(t *testing.T) {
	l, _, _ := newTestLoop("a")

	var gotKey rune
	keyCh := make(chan struct{}, 1)
	l.OnKey(func(ev input.Event) {
		if ev.Kind == input.EventKey {
			gotKey = ev.Rune
			keyCh <- struct{}{}
		}
	})

	done := make(chan error, 1)
	go func() { done <- l.Run() }()

	select {
	case <-keyCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the key event")
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned an error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not exit after the input source closed")
	}
	if gotKey != 'a' {
		t.Fatalf("expected key 'a', got %q", gotKey)
	}
}

func TestOnFramePanicIsRecoveredNotFatal(t *testing.T) {
	l, _, _ := newTestLoop("")

	called := false
	l.OnFrame(func(dt time.Duration) {
		called = true
		panic("boom")
	})

	err := l.Run()
	if err != nil {
		t.Fatalf("expected Run to tolerate a panicking callback, got %v", err)
	}
	if !called {
		t.Fatal("expected the frame callback to have run at least once")
	}
}

func TestFocusInRestoresTerminalModes(t *testing.T) {
	l, _, out := newTestLoop("\x1b[I")

	if err := l.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "\x1b[?1004h") {
		t.Fatalf("expected focus-reporting mode to be re-asserted on focus-in, got %q", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	l, _, _ := newTestLoop("")
	if err := l.Stop(); err != nil {
		t.Fatalf("first Stop: %v", err)
	}
	if err := l.Stop(); err != nil {
		t.Fatalf("second Stop should be a no-op, got: %v", err)
	}
}
