// Package style implements the named style registry: a mapping from
// capture names like "keyword.import" to style atoms, with
// scope-longest-prefix lookup and stable integer ids assigned on
// registration, plus a chroma-backed highlighter that produces capture
// names for it.
package style

import (
	"strings"
	"sync"

	"github.com/opentui/opentui-go/color"
)

// Table is the capture-name -> style registry. A "default" entry always
// exists (registered by NewTable) so Lookup never fails to resolve.
type Table struct {
	mu     sync.RWMutex
	names  []string
	styles []color.Style
	byName map[string]int
}

// NewTable returns a table seeded with a "default" entry at id 0.
func NewTable() *Table {
	t := &Table{byName: map[string]int{}}
	t.register("default", color.Style{})
	return t
}

func (t *Table) register(name string, s color.Style) int {
	id := len(t.names)
	t.names = append(t.names, name)
	t.styles = append(t.styles, s)
	t.byName[name] = id
	return id
}

// Register assigns a stable id to name, or updates the style of an
// already-registered name without changing its id.
func (t *Table) Register(name string, s color.Style) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.byName[name]; ok {
		t.styles[id] = s
		return id
	}
	return t.register(name, s)
}

// Lookup resolves capture against registered dotted names by
// scope-longest-prefix: "keyword.import.go" prefers a registered
// "keyword.import" over a registered "keyword". Falls back to "default".
func (t *Table) Lookup(capture string) (id int, s color.Style) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	parts := strings.Split(capture, ".")
	for i := len(parts); i >= 1; i-- {
		prefix := strings.Join(parts[:i], ".")
		if id, ok := t.byName[prefix]; ok {
			return id, t.styles[id]
		}
	}
	id = t.byName["default"]
	return id, t.styles[id]
}

// StyleByID resolves a previously-assigned id back to its style, the shape
// text.StyleResolver expects.
func (t *Table) StyleByID(id int) color.Style {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || id >= len(t.styles) {
		return color.Style{}
	}
	return t.styles[id]
}

// Resolver adapts the table to text.StyleResolver.
func (t *Table) Resolver() func(int) color.Style {
	return t.StyleByID
}
