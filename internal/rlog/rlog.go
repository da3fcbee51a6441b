// Package rlog centralizes structured logging for the renderer. It wraps
// zerolog so every package logs through one configured writer instead of
// reaching for the standard library's log package directly.
package rlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// L is the package-level logger every component should log through. It
// defaults to discarding output, since a terminal renderer painting the
// same screen diagnostics write to would corrupt its own display.
var L = zerolog.New(io.Discard).With().Timestamp().Logger()

// Configure redirects L to w at the given level. Pass io.Discard (the
// default) to silence logging entirely, or a file opened by the caller
// when a --log-file flag is set.
func Configure(w io.Writer, level zerolog.Level) {
	if w == nil {
		w = io.Discard
	}
	L = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ConfigureFile opens path for appending and routes L to it, returning the
// file so the caller can close it on shutdown.
func ConfigureFile(path string, level zerolog.Level) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	Configure(f, level)
	return f, nil
}
