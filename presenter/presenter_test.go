package presenter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentui/opentui-go/cellbuf"
	"github.com/opentui/opentui-go/color"
	"github.com/opentui/opentui-go/internal/config"
)

func newTestPresenter(w, h int) (*Presenter, *bytes.Buffer) {
	var out bytes.Buffer
	p := New(w, h, &out, nil, config.Default())
	p.Caps.Hyperlink = false
	return p, &out
}

func drawText(buf *cellbuf.Buffer, x, y int, s string) {
	for i, r := range s {
		buf.SetCell(x+i, y, cellbuf.Cell{Char: r, Fg: color.New(255, 255, 255)})
	}
}

func TestPresentHelloWorldDiff(t *testing.T) {
	p, out := newTestPresenter(80, 24)
	drawText(p.Back, 0, 0, "hello")

	require.NoError(t, p.Present())
	got := out.String()
	assert.Contains(t, got, "\x1b[1;1H")
	assert.Contains(t, got, "hello")

	out.Reset()
	p.Back.SetCell(2, 0, cellbuf.Cell{Char: 'L', Fg: color.New(255, 255, 255)})
	require.NoError(t, p.Present())
	got = out.String()
	assert.Contains(t, got, "\x1b[1;3H")
	assert.Contains(t, got, "L")
	assert.NotContains(t, got, "hello", "expected only the mutated cell to be rewritten")
}

func TestPresentSkipsUnchangedCells(t *testing.T) {
	p, out := newTestPresenter(10, 2)
	drawText(p.Back, 0, 0, "hi")
	require.NoError(t, p.Present())
	out.Reset()
	require.NoError(t, p.Present())
	assert.Zero(t, out.Len(), "expected no output for an unchanged frame")
}

func TestPresentSkipsWideRightCell(t *testing.T) {
	p, out := newTestPresenter(10, 2)
	p.Back.SetCell(0, 0, cellbuf.Cell{Char: '字', Wide: cellbuf.WideLeft})
	p.Back.SetCell(1, 0, cellbuf.Cell{Wide: cellbuf.WideRight})
	require.NoError(t, p.Present())
	got := out.String()
	assert.Equal(t, 1, strings.Count(got, "\x1b[1;"), "expected exactly one cursor move (wide-right is skipped)")
}

func TestPresentNoOpAfterStopped(t *testing.T) {
	p, _ := newTestPresenter(5, 5)
	p.stopped = true
	assert.ErrorIs(t, p.Present(), ErrStopped)
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(b []byte) (int, error) {
	f.calls++
	return 0, errors.New("broken pipe")
}

func TestWriteEntersStoppedStateOnSinkFailure(t *testing.T) {
	fw := &failingWriter{}
	p := New(5, 5, fw, nil, config.Default())
	drawText(p.Back, 0, 0, "x")
	err := p.Present()
	require.Error(t, err, "expected an error from a failing sink")
	assert.True(t, p.stopped, "expected the presenter to enter the stopped state")
	assert.ErrorIs(t, p.Present(), ErrStopped, "expected subsequent Present calls to be no-ops")
}

func TestStartStopEmitsModeSequences(t *testing.T) {
	var out bytes.Buffer
	cfg := config.Default()
	p := New(10, 10, &out, nil, cfg)
	require.NoError(t, p.Start())
	started := out.String()
	assert.Contains(t, started, seqAltScreenOn)
	assert.Contains(t, started, seqMouseOn)

	out.Reset()
	require.NoError(t, p.Stop())
	stopped := out.String()
	assert.Contains(t, stopped, seqAltScreenOff)
	assert.Contains(t, stopped, seqCursorShow)
}

func TestResizeInvalidatesCursorShadow(t *testing.T) {
	p, out := newTestPresenter(5, 5)
	drawText(p.Back, 0, 0, "a")
	require.NoError(t, p.Present())
	p.Resize(8, 8)
	out.Reset()
	drawText(p.Back, 0, 0, "a")
	require.NoError(t, p.Present())
	assert.Contains(t, out.String(), "\x1b[1;1H", "expected an explicit cursor move after resize")
}
