package color

// Style is the style atom attached to a cell or a styled-text chunk: a
// foreground/background color pair plus the attribute bitset. It has no
// hyperlink field — hyperlinks are a run-level annotation layered on top
// by the cell buffer, not part of the atom itself.
type Style struct {
	Fg    RGBA
	Bg    RGBA
	Attrs Attrs
}

// Equal is used by the frame presenter's diff to decide whether a style
// transition is needed between two cells.
func (s Style) Equal(o Style) bool {
	return s.Fg.Equal(o.Fg) && s.Bg.Equal(o.Bg) && s.Attrs == o.Attrs
}

// Merge overlays child on top of parent: child's non-zero-alpha colors and
// set attribute bits win, generalizing the familiar ANSI-string style
// merge to RGBA color values.
func Merge(parent, child Style) Style {
	out := parent
	if child.Fg.A > 0 {
		out.Fg = child.Fg
	}
	if child.Bg.A > 0 {
		out.Bg = child.Bg
	}
	out.Attrs |= child.Attrs
	return out
}
