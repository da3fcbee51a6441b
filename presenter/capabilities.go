package presenter

import (
	"os"
	"strings"

	"github.com/opentui/opentui-go/input"
)

// Capabilities records what the terminal is believed to support, steering
// the style state machine's color resolution (truecolor vs. nearest
// 256-color) and which optional escape sequences the presenter emits.
type Capabilities struct {
	TrueColor      bool
	Hyperlink      bool
	KittyKeyboard  bool
	FocusEvents    bool
	BracketedPaste bool
}

// DetectFromEnv seeds capabilities from COLORTERM/TERM before any
// handshake reply has arrived, the way most terminal programs bootstrap.
func DetectFromEnv() Capabilities {
	colorterm := os.Getenv("COLORTERM")
	trueColor := strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit")
	return Capabilities{
		TrueColor:      trueColor,
		Hyperlink:      true,
		FocusEvents:    true,
		BracketedPaste: true,
	}
}

// HandshakeQueries returns the DA1 and DA2 query sequences written once at
// startup; responses arrive later as EventCapabilityReply events out of
// the input parser and are fed back through ApplyReply.
func HandshakeQueries() []byte {
	return []byte("\x1b[c\x1b[>c")
}

// ApplyReply refines caps from a parsed DA reply. Feature 4 in a DA1
// reply signals sixel support, which in practice correlates strongly
// with a truecolor-capable emulator, so it corroborates (rather than
// solely determines) the truecolor flag when COLORTERM was unset or lied.
func (c *Capabilities) ApplyReply(ev input.Event) {
	if ev.Kind != input.EventCapabilityReply {
		return
	}
	s := string(ev.Raw)
	if strings.Contains(s, ";4;") || strings.HasSuffix(s, ";4c") {
		c.TrueColor = true
	}
}
