// Package input implements the byte-stream input parser: a synchronous
// state machine that turns a raw input stream into typed key, mouse,
// focus and passthrough events without backtracking or per-byte
// allocation.
//
// The Key/Mod vocabulary and the CSI/SS3 dispatch tables restate a
// familiar channel-based terminal parser as a pure Feed(bytes) -> events
// function, so the whole parser is deterministic and goroutine-free: the
// frame loop owns polling, not the parser.
package input

// Key identifies a non-character key, or KeyChar for a printable rune.
type Key int

const (
	KeyNull Key = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEsc
	KeySpace

	KeyArrowUp
	KeyArrowDown
	KeyArrowRight
	KeyArrowLeft

	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyDelete
	KeyInsert

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyChar
)

// Mod is a bitset of held modifier keys.
type Mod int

const (
	ModNone  Mod = 0
	ModCtrl  Mod = 1 << 0
	ModAlt   Mod = 1 << 1
	ModShift Mod = 1 << 2
)

// EventKind distinguishes the variants Event can carry.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
	EventFocusIn
	EventFocusOut
	EventCapabilityReply
	EventPassthrough
)

// MouseEventKind classifies a mouse Event, derived from the raw SGR/X10
// button byte and the parser's pressed-button tracking.
type MouseEventKind int

const (
	MouseDown MouseEventKind = iota
	MouseUp
	MouseMove
	MouseDrag
	MouseDragEnd
	MouseDrop
	MouseScroll
)

// Event is the tagged union every Feed call produces. Only the fields
// relevant to Kind are populated.
type Event struct {
	Kind EventKind

	// EventKey
	Key  Key
	Rune rune
	Mod  Mod

	// EventMouse
	MouseKind MouseEventKind
	Button    int
	X, Y      int

	// EventCapabilityReply / EventPassthrough
	Raw []byte
}
