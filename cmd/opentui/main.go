// Command opentui is a minimal demo host for the renderer: it opens the
// terminal, wires the scene tree, presenter, input parser, event bus and
// frame loop together, and draws a bordered greeting box until the user
// quits.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/opentui/opentui-go/cellbuf"
	"github.com/opentui/opentui-go/color"
	"github.com/opentui/opentui-go/event"
	"github.com/opentui/opentui-go/frameloop"
	"github.com/opentui/opentui-go/input"
	"github.com/opentui/opentui-go/internal/config"
	"github.com/opentui/opentui-go/internal/rlog"
	"github.com/opentui/opentui-go/presenter"
	"github.com/opentui/opentui-go/scene"
	"github.com/opentui/opentui-go/signals"
	"github.com/opentui/opentui-go/text"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Default()
	fs := pflag.NewFlagSet("opentui", pflag.ContinueOnError)
	resolve := config.RegisterFlags(fs, &cfg)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	resolve()

	if cfg.LogFile != "" {
		f, err := rlog.ConfigureFile(cfg.LogFile, zerolog.InfoLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opentui: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	demo, stopDemo := buildDemoScene(cfg)
	defer stopDemo()
	tree := scene.NewTree(demo.root, width, height)

	pres := presenter.New(width, height, os.Stdout, os.Stdin, cfg)
	parser := input.NewParser()
	dispatcher := event.NewDispatcher(demo.root, width, height)
	loop := frameloop.New(cfg.TargetFPS, tree, pres, parser, dispatcher)

	loop.OnFrame(demo.tick)

	loop.OnKey(func(ev input.Event) {
		if ev.Kind != input.EventKey {
			return
		}
		if ev.Rune == 'q' || (ev.Mod&input.ModCtrl != 0 && ev.Rune == 'c') {
			loop.Stop()
		}
	})

	if err := pres.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "opentui: starting terminal: %v\n", err)
		return 1
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGWINCH)
	go func() {
		for s := range sig {
			switch s {
			case syscall.SIGWINCH:
				w, h, err := term.GetSize(int(os.Stdout.Fd()))
				if err != nil {
					continue
				}
				tree.Resize(w, h)
				dispatcher.Resize(w, h)
			case syscall.SIGINT, syscall.SIGTERM:
				loop.Stop()
			}
		}
	}()

	loop.Start(os.Stdin)

	runErr := runLoopRecovered(loop)

	signal.Stop(sig)
	close(sig)
	loop.Stop()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "opentui: %v\n", runErr)
		return 1
	}
	return 0
}

// runLoopRecovered guards the frame loop with a panic recovery that still
// restores terminal modes before this process exits, so a bug never leaves
// the user's shell in raw mode or the alternate screen.
func runLoopRecovered(loop *frameloop.Loop) (err error) {
	defer func() {
		if r := recover(); r != nil {
			loop.Stop()
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return loop.Run()
}

// demoScene is the greeting box plus the state its live clock line needs.
type demoScene struct {
	root    *scene.Node
	buf     *text.Buffer
	greeting *scene.Text
	clock   *signals.Signal[string]
	shown   string
}

// tick is registered as an OnFrame callback: it runs on the frame loop's
// own goroutine, so it's the only place that may touch the scene tree or
// text buffer, even though the clock value itself is produced by a
// background ticker goroutine and only reaches here through the
// mutex-guarded signal.
func (d *demoScene) tick(time.Duration) {
	now := d.clock.Get()
	if now == d.shown {
		return
	}
	d.shown = now
	d.buf.SetText("Hello from opentui.\nThe time is " + now + ".\nPress q to quit.")
	d.greeting.MarkLayoutDirty()
}

// buildDemoScene wires a live clock into the greeting box: a
// signals.Signal is updated once a second from a background goroutine, and
// demoScene.tick — run by the frame loop on its own goroutine — applies the
// latest value to the text buffer. stop must be called on shutdown to end
// the ticking goroutine.
func buildDemoScene(cfg config.Config) (d *demoScene, stop func()) {
	root := scene.NewNode(scene.CapContainer)
	root.Direction = scene.DirColumn
	root.Padding = scene.Uniform(1)

	box := scene.NewBox()
	box.Border = true
	box.BorderKind = cellbuf.BorderRounded
	box.BorderFg = color.New(120, 170, 255)
	box.Direction = scene.DirColumn
	box.Padding = scene.Uniform(1)
	box.Width = scene.Fixed(40)
	box.Height = scene.Fixed(5)

	buf := text.New(cfg.EastAsianAmbiguous, nil)
	greeting := scene.NewText(buf)
	greeting.EastAsian = cfg.EastAsianAmbiguous

	box.Add(greeting.Node)
	root.Add(box.Node)

	d = &demoScene{root: root, buf: buf, greeting: greeting, clock: signals.New(time.Now().Format("15:04:05"))}
	d.tick(0)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				d.clock.Set(time.Now().Format("15:04:05"))
			case <-done:
				return
			}
		}
	}()

	return d, func() { close(done) }
}
