// Package config resolves the renderer's runtime options from CLI flags
// into a plain Config value, passed by value into the renderer
// constructor rather than read from globals.
package config

import (
	"github.com/spf13/pflag"

	"github.com/opentui/opentui-go/wcwidth"
)

// Config holds every option a caller of the renderer can tune.
type Config struct {
	TargetFPS          int
	AltScreen           bool
	EastAsianAmbiguous  wcwidth.EastAsianMode
	Mouse               bool
	Hyperlink           bool
	LogFile             string
}

// Default returns the renderer's out-of-the-box settings.
func Default() Config {
	return Config{
		TargetFPS:          30,
		AltScreen:          true,
		EastAsianAmbiguous: wcwidth.EastAsianNarrow,
		Mouse:              true,
		Hyperlink:          true,
	}
}

// RegisterFlags binds fs's flags to cfg's fields, GNU-style long flags
// following pflag convention across the rest of the CLI. It returns a
// resolve func the caller must invoke after fs.Parse, since a few of
// cfg's fields (the "positive" booleans, the narrow/wide enum) are
// inverses or translations of what the flags themselves store.
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) (resolve func()) {
	fs.IntVar(&cfg.TargetFPS, "fps", cfg.TargetFPS, "target frames per second")
	noAlt := fs.Bool("no-alt-screen", !cfg.AltScreen, "disable the alternate screen buffer")
	eastAsianDefault := "narrow"
	if cfg.EastAsianAmbiguous == wcwidth.EastAsianWide {
		eastAsianDefault = "wide"
	}
	eastAsian := fs.String("east-asian-ambiguous", eastAsianDefault, "width of East-Asian-ambiguous codepoints: narrow (1) or wide (2)")
	noMouse := fs.Bool("no-mouse", !cfg.Mouse, "disable mouse tracking")
	noHyperlink := fs.Bool("no-hyperlink", !cfg.Hyperlink, "disable OSC 8 hyperlink emission")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write diagnostic logs to this file instead of discarding them")

	fs.Lookup("no-alt-screen").NoOptDefVal = "true"
	fs.Lookup("no-mouse").NoOptDefVal = "true"
	fs.Lookup("no-hyperlink").NoOptDefVal = "true"

	return func() {
		cfg.AltScreen = !*noAlt
		cfg.Mouse = !*noMouse
		cfg.Hyperlink = !*noHyperlink
		if *eastAsian == "wide" {
			cfg.EastAsianAmbiguous = wcwidth.EastAsianWide
		} else {
			cfg.EastAsianAmbiguous = wcwidth.EastAsianNarrow
		}
	}
}
