package scene

// HitTest finds the topmost mouse-target node whose clipped bounds
// contain (x, y), walking the tree the same way the compositor does:
// z-index order within each parent, clipped to ancestor bounds. Returns
// nil if no mouse-target node covers the point.
func HitTest(root *Node, screenW, screenH, x, y int) *Node {
	return hitTest(root, x, y, clip{0, 0, screenW, screenH})
}

func hitTest(n *Node, x, y int, parentClip clip) *Node {
	if !n.Visible {
		return nil
	}
	nx, ny, nw, nh := n.Bounds()
	nodeClip := parentClip.intersect(nx, ny, nw, nh)
	if nodeClip.empty() {
		return nil
	}
	if x < nodeClip.x0 || x >= nodeClip.x1 || y < nodeClip.y0 || y >= nodeClip.y1 {
		return nil
	}

	// Children are visited in ascending z-index (the compositor's paint
	// order), so a later match overwrites an earlier one: the topmost
	// overlapping child wins, matching what's actually drawn on top.
	children := orderedChildren(n.children)
	var best *Node
	for _, c := range children {
		if hit := hitTest(c, x, y, nodeClip); hit != nil {
			best = hit
		}
	}
	if best != nil {
		return best
	}

	if n.Capabilities.Has(CapMouseTarget) {
		return n
	}
	return nil
}
