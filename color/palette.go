package color

// Palette is the fixed named-color set this package commits to: 33
// lower-cased CSS color keywords (the 16 CSS basic colors, orange, the
// aliases grey, magenta and cyan, and 13 common extended names). The other
// CSS Level 4 extended keywords are not recognized. "transparent" is
// intentionally absent here — it's handled as a special case in Parse
// since it carries alpha=0 rather than an RGB triplet.
var Palette = map[string]RGBA{
	"black":   New(0, 0, 0),
	"silver":  New(192, 192, 192),
	"gray":    New(128, 128, 128),
	"grey":    New(128, 128, 128),
	"white":   New(255, 255, 255),
	"maroon":  New(128, 0, 0),
	"red":     New(255, 0, 0),
	"purple":  New(128, 0, 128),
	"fuchsia": New(255, 0, 255),
	"magenta": New(255, 0, 255),
	"green":   New(0, 128, 0),
	"lime":    New(0, 255, 0),
	"olive":   New(128, 128, 0),
	"yellow":  New(255, 255, 0),
	"navy":    New(0, 0, 128),
	"blue":    New(0, 0, 255),
	"teal":    New(0, 128, 128),
	"aqua":    New(0, 255, 255),
	"cyan":    New(0, 255, 255),
	"orange":  New(255, 165, 0),
	"pink":    New(255, 192, 203),
	"brown":   New(165, 42, 42),
	"gold":    New(255, 215, 0),
	"indigo":  New(75, 0, 130),
	"violet":  New(238, 130, 238),
	"coral":   New(255, 127, 80),
	"salmon":  New(250, 128, 114),
	"khaki":   New(240, 230, 140),
	"plum":    New(221, 160, 221),
	"orchid":  New(218, 112, 214),
	"tomato":  New(255, 99, 71),
	"skyblue": New(135, 206, 235),
	"crimson": New(220, 20, 60),
}
