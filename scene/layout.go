package scene

// Layout runs the flexbox solver over n and its subtree, top-down, against
// the given available outer width/height. It's the entry point the
// compositor (or a test) calls on the root; internally it recurses via
// layoutChild. A cycle in the tree sets n's layoutError and leaves every
// node's previous layout in place.
func (n *Node) Layout(availW, availH int) {
	path := map[*Node]bool{}
	var cyclic func(*Node) bool
	cyclic = func(c *Node) bool {
		found := path[c]
		path[c] = true
		for _, k := range c.children {
			found = found || cyclic(k)
		}
		delete(path, c)
		return found
	}
	if cyclic(n) {
		n.layoutError = true
		return
	}
	seen := map[*Node]bool{}
	n.layoutChild(seen, availW, availH)
	n.clearLayoutDirty()
}

func (n *Node) clearLayoutDirty() {
	n.layoutDirty = false
	for _, c := range n.children {
		c.clearLayoutDirty()
	}
}

// layoutChild resolves n's own outer size against the hint, then (if n is
// a container) lays out its flow children and positions its absolute
// children, recursing into each.
func (n *Node) layoutChild(seen map[*Node]bool, hintW, hintH int) {
	if seen[n] {
		n.layoutError = true
		return
	}
	seen[n] = true
	defer delete(seen, n)
	n.layoutError = false

	flow, absolute := n.partitionChildren()

	contentHintW := clampNonNeg(hintW - n.Padding.Left - n.Padding.Right)
	contentHintH := clampNonNeg(hintH - n.Padding.Top - n.Padding.Bottom)

	mainHint, crossHint := axisPair(n.Direction, contentHintW, contentHintH)
	mains, crosses := n.measureFlow(flow, mainHint, crossHint)

	contentMain, contentCross := mainHint, crossHint
	if n.mainSize().Type == SizeAuto {
		contentMain = sumInts(mains) + n.Gap*maxInt(len(flow)-1, 0)
	}
	if n.crossSizeSpec().Type == SizeAuto {
		contentCross = maxInts(crosses)
	}

	n.placeFlow(flow, mains, crosses, contentMain, contentCross)

	contentW, contentH := axisPair(n.Direction, contentMain, contentCross)
	ow := contentW + n.Padding.Left + n.Padding.Right
	oh := contentH + n.Padding.Top + n.Padding.Bottom
	if n.Width.Type != SizeAuto {
		ow = resolveFixed(n.Width, hintW)
	}
	if n.Height.Type != SizeAuto {
		oh = resolveFixed(n.Height, hintH)
	}
	ow = clampSize(ow, n.MinWidth, n.MaxWidth)
	oh = clampSize(oh, n.MinHeight, n.MaxHeight)
	n.computedW, n.computedH = ow, oh

	for _, c := range flow {
		c.layoutChild(seen, c.computedW, c.computedH)
	}
	n.placeAbsolute(absolute, contentW, contentH)
	for _, c := range absolute {
		c.layoutChild(seen, c.computedW, c.computedH)
	}
}

func (n *Node) partitionChildren() (flow, absolute []*Node) {
	for _, c := range n.children {
		if c.PositionMode == PositionAbsolute {
			absolute = append(absolute, c)
		} else {
			flow = append(flow, c)
		}
	}
	return
}

func (n *Node) mainSize() Size {
	if n.Direction == DirRow {
		return n.Width
	}
	return n.Height
}

func (n *Node) crossSizeSpec() Size {
	if n.Direction == DirRow {
		return n.Height
	}
	return n.Width
}

// measureFlow resolves each flow child's main-axis basis and cross-axis
// size against the container's content box, following a teacher-style two
// pass: fixed/auto children first (to find how much space flex children
// split), then flex children share what's left, grown or shrunk to fit.
func (n *Node) measureFlow(flow []*Node, mainHint, crossHint int) (mains, crosses []int) {
	mains = make([]int, len(flow))
	crosses = make([]int, len(flow))

	var totalFixedAuto, totalGrow, totalShrinkBasis float64
	flexIdx := map[int]bool{}

	for i, c := range flow {
		spec := c.mainSizeSpec()
		switch spec.Type {
		case SizeFixed:
			mains[i] = spec.Value
			totalFixedAuto += float64(spec.Value)
		case SizeFlex:
			flexIdx[i] = true
			if c.Grow <= 0 {
				totalGrow += 1
			} else {
				totalGrow += c.Grow
			}
		default: // auto
			w, h := c.intrinsicSize(mainHint, crossHint)
			main, _ := axisPair(n.Direction, w, h)
			mains[i] = main
			totalFixedAuto += float64(main)
		}
		crosses[i] = c.resolveCrossSize(crossHint)
	}

	gapTotal := float64(n.Gap * maxInt(len(flow)-1, 0))
	remaining := float64(mainHint) - totalFixedAuto - gapTotal

	if len(flexIdx) > 0 && remaining > 0 {
		for i := range flexIdx {
			weight := flow[i].Grow
			if weight <= 0 {
				weight = 1
			}
			mains[i] = int(remaining * weight / totalGrow)
		}
	} else if len(flexIdx) > 0 {
		for i := range flexIdx {
			mains[i] = 0
		}
	} else if remaining < 0 {
		// Overflow with no flex children: shrink every child
		// proportional to its basis * shrink weight (flexbox shrink).
		for i, c := range flow {
			totalShrinkBasis += float64(mains[i]) * effectiveShrink(c.Shrink)
		}
		if totalShrinkBasis > 0 {
			overflow := -remaining
			for i, c := range flow {
				share := float64(mains[i]) * effectiveShrink(c.Shrink) / totalShrinkBasis
				mains[i] = maxInt(mains[i]-int(overflow*share), 0)
			}
		}
	}

	for i, c := range flow {
		mains[i] = clampSize(mains[i], c.mainMin(), c.mainMax())
	}
	return mains, crosses
}

func effectiveShrink(s float64) float64 {
	if s <= 0 {
		return 1
	}
	return s
}

func (n *Node) mainSizeSpec() Size {
	if n.parent == nil {
		return n.mainSize()
	}
	if n.parent.Direction == DirRow {
		return n.Width
	}
	return n.Height
}

func (n *Node) mainMin() int {
	if n.parent != nil && n.parent.Direction == DirColumn {
		return n.MinHeight
	}
	return n.MinWidth
}

func (n *Node) mainMax() int {
	if n.parent != nil && n.parent.Direction == DirColumn {
		return n.MaxHeight
	}
	return n.MaxWidth
}

// intrinsicSize measures an auto-sized node's natural (w,h), via its
// Measure callback, its own auto-container content sum, or its available
// hint as a last resort.
func (n *Node) intrinsicSize(hintW, hintH int) (int, int) {
	if n.Measure != nil {
		return n.Measure(hintW, hintH)
	}
	if len(n.children) > 0 {
		flow, _ := n.partitionChildren()
		mainHint, crossHint := axisPair(n.Direction, hintW-n.Padding.Left-n.Padding.Right, hintH-n.Padding.Top-n.Padding.Bottom)
		mains, crosses := n.measureFlow(flow, mainHint, crossHint)
		main := sumInts(mains) + n.Gap*maxInt(len(flow)-1, 0)
		cross := maxInts(crosses)
		cw, ch := axisPair(n.Direction, main, cross)
		return cw + n.Padding.Left + n.Padding.Right, ch + n.Padding.Top + n.Padding.Bottom
	}
	return hintW, hintH
}

func (n *Node) resolveCrossSize(crossHint int) int {
	spec := n.crossSizeSpec()
	switch spec.Type {
	case SizeFixed:
		return spec.Value
	case SizeFlex:
		return crossHint
	default:
		if n.parent != nil && n.parent.AlignItems == AlignStretch {
			return crossHint
		}
		w, h := n.intrinsicSize(crossHint, crossHint)
		_, cross := axisPair(n.parentDirectionOrSelf(), w, h)
		return cross
	}
}

func (n *Node) parentDirectionOrSelf() Direction {
	if n.parent != nil {
		return n.parent.Direction
	}
	return n.Direction
}

// placeFlow assigns computed outer sizes and positions to flow children,
// applying gap, align-items on the cross axis, and justify-content on the
// main axis.
func (n *Node) placeFlow(flow []*Node, mains, crosses []int, contentMain, contentCross int) {
	used := sumInts(mains) + n.Gap*maxInt(len(flow)-1, 0)
	leftover := maxInt(contentMain-used, 0)

	start, step := 0.0, float64(n.Gap)
	switch n.JustifyContent {
	case JustifyCenter:
		start = float64(leftover) / 2
	case JustifyEnd:
		start = float64(leftover)
	case JustifySpaceBetween:
		if len(flow) > 1 {
			step = float64(n.Gap) + float64(leftover)/float64(len(flow)-1)
		}
	}

	originX := n.Padding.Left
	originY := n.Padding.Top
	pos := start
	for i, c := range flow {
		mainPos := int(pos)
		crossPos := n.crossOffset(crosses[i], contentCross, c.AlignItems)

		var x, y int
		if n.Direction == DirRow {
			x, y = mainPos, crossPos
		} else {
			x, y = crossPos, mainPos
		}
		c.computedX = originX + x + c.Margin.Left
		c.computedY = originY + y + c.Margin.Top

		cw, ch := axisPair(n.Direction, mains[i], crosses[i])
		c.computedW = maxInt(cw-c.Margin.Left-c.Margin.Right, 0)
		c.computedH = maxInt(ch-c.Margin.Top-c.Margin.Bottom, 0)

		pos += float64(mains[i]) + step
	}
}

// crossOffset resolves a flow child's cross-axis offset within the
// container's cross content size from the container's AlignItems; the
// child's own AlignItems (the third argument) is not consulted.
func (n *Node) crossOffset(childCross, containerCross int, _ Align) int {
	align := n.AlignItems
	switch align {
	case AlignCenter:
		return maxInt((containerCross-childCross)/2, 0)
	case AlignEnd:
		return maxInt(containerCross-childCross, 0)
	default:
		return 0
	}
}

func (n *Node) placeAbsolute(absolute []*Node, contentW, contentH int) {
	for _, c := range absolute {
		ow, oh := c.absoluteSize(contentW, contentH)
		c.computedX = n.Padding.Left + c.Left
		c.computedY = n.Padding.Top + c.Top
		c.computedW, c.computedH = ow, oh
	}
}

func (c *Node) absoluteSize(hintW, hintH int) (int, int) {
	w := resolveFixed(c.Width, hintW)
	h := resolveFixed(c.Height, hintH)
	if c.Width.Type == SizeAuto || c.Height.Type == SizeAuto {
		iw, ih := c.intrinsicSize(hintW, hintH)
		if c.Width.Type == SizeAuto {
			w = iw
		}
		if c.Height.Type == SizeAuto {
			h = ih
		}
	}
	return clampSize(w, c.MinWidth, c.MaxWidth), clampSize(h, c.MinHeight, c.MaxHeight)
}

func resolveFixed(spec Size, hint int) int {
	if spec.Type == SizeFixed {
		return spec.Value
	}
	return hint
}

func clampSize(v, lo, hi int) int {
	if lo >= 0 && v < lo {
		v = lo
	}
	if hi >= 0 && v > hi {
		v = hi
	}
	return v
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func axisPair(dir Direction, main, cross int) (w, h int) {
	if dir == DirRow {
		return main, cross
	}
	return cross, main
}

func sumInts(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}

func maxInts(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
