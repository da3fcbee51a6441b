package scene

import "testing"

func TestLayoutFixedChildrenInRow(t *testing.T) {
	root := NewNode(CapContainer)
	root.Width, root.Height = Fixed(30), Fixed(10)
	a := NewNode(CapDrawable)
	a.Width, a.Height = Fixed(10), Fixed(5)
	b := NewNode(CapDrawable)
	b.Width, b.Height = Fixed(10), Fixed(5)
	root.Add(a)
	root.Add(b)

	root.Layout(30, 10)

	if ax, _, aw, _ := a.Bounds(); ax != 0 || aw != 10 {
		t.Errorf("expected a at x=0 w=10, got x=%d w=%d", ax, aw)
	}
	if bx, _, bw, _ := b.Bounds(); bx != 10 || bw != 10 {
		t.Errorf("expected b at x=10 w=10, got x=%d w=%d", bx, bw)
	}
}

func TestLayoutGrowDistributesRemainingSpace(t *testing.T) {
	root := NewNode(CapContainer)
	root.Width, root.Height = Fixed(30), Fixed(10)
	fixed := NewNode(CapDrawable)
	fixed.Width, fixed.Height = Fixed(10), Fixed(5)
	flexA := NewNode(CapDrawable)
	flexA.Width, flexA.Height = FlexSize(), Fixed(5)
	flexA.Grow = 1
	flexB := NewNode(CapDrawable)
	flexB.Width, flexB.Height = FlexSize(), Fixed(5)
	flexB.Grow = 1
	root.Add(fixed)
	root.Add(flexA)
	root.Add(flexB)

	root.Layout(30, 10)

	_, _, fw, _ := flexA.Bounds()
	_, _, gw, _ := flexB.Bounds()
	if fw != 10 || gw != 10 {
		t.Errorf("expected the 20 remaining cells split evenly, got %d and %d", fw, gw)
	}
}

func TestLayoutGapAddsSpacingBetweenChildren(t *testing.T) {
	root := NewNode(CapContainer)
	root.Width, root.Height = Fixed(30), Fixed(10)
	root.Gap = 2
	a := NewNode(CapDrawable)
	a.Width, a.Height = Fixed(5), Fixed(5)
	b := NewNode(CapDrawable)
	b.Width, b.Height = Fixed(5), Fixed(5)
	root.Add(a)
	root.Add(b)

	root.Layout(30, 10)

	bx, _, _, _ := b.Bounds()
	if bx != 7 {
		t.Errorf("expected b.x = 5(a.w) + 2(gap) = 7, got %d", bx)
	}
}

func TestLayoutJustifyContentCenter(t *testing.T) {
	root := NewNode(CapContainer)
	root.Width, root.Height = Fixed(20), Fixed(10)
	root.JustifyContent = JustifyCenter
	a := NewNode(CapDrawable)
	a.Width, a.Height = Fixed(10), Fixed(5)
	root.Add(a)

	root.Layout(20, 10)

	ax, _, _, _ := a.Bounds()
	if ax != 5 {
		t.Errorf("expected centered child at x=5 (20-10)/2, got %d", ax)
	}
}

func TestLayoutAlignItemsStretchFillsCross(t *testing.T) {
	root := NewNode(CapContainer)
	root.Width, root.Height = Fixed(20), Fixed(10)
	a := NewNode(CapDrawable)
	a.Width = Fixed(10)
	a.Height = Auto()
	root.Add(a)

	root.Layout(20, 10)

	_, _, _, ah := a.Bounds()
	if ah != 10 {
		t.Errorf("expected stretch-aligned auto-height child to fill cross size 10, got %d", ah)
	}
}

func TestLayoutColumnDirectionSwapsAxes(t *testing.T) {
	root := NewNode(CapContainer)
	root.Direction = DirColumn
	root.Width, root.Height = Fixed(20), Fixed(20)
	a := NewNode(CapDrawable)
	a.Width, a.Height = Fixed(5), Fixed(8)
	b := NewNode(CapDrawable)
	b.Width, b.Height = Fixed(5), Fixed(8)
	root.Add(a)
	root.Add(b)

	root.Layout(20, 20)

	_, ay, _, _ := a.Bounds()
	_, by, _, _ := b.Bounds()
	if ay != 0 || by != 8 {
		t.Errorf("expected column stacking at y=0 and y=8, got %d and %d", ay, by)
	}
}

func TestLayoutMinMaxClamping(t *testing.T) {
	root := NewNode(CapContainer)
	root.Width, root.Height = Fixed(30), Fixed(10)
	a := NewNode(CapDrawable)
	a.Width, a.Height = FlexSize(), Fixed(5)
	a.Grow = 1
	a.MaxWidth = 8
	root.Add(a)

	root.Layout(30, 10)

	_, _, aw, _ := a.Bounds()
	if aw != 8 {
		t.Errorf("expected width clamped to MaxWidth=8, got %d", aw)
	}
}

func TestLayoutAbsoluteChildIgnoresFlow(t *testing.T) {
	root := NewNode(CapContainer)
	root.Width, root.Height = Fixed(30), Fixed(10)
	flow := NewNode(CapDrawable)
	flow.Width, flow.Height = Fixed(10), Fixed(5)
	abs := NewNode(CapDrawable)
	abs.PositionMode = PositionAbsolute
	abs.Width, abs.Height = Fixed(4), Fixed(4)
	abs.Left, abs.Top = 20, 2
	root.Add(flow)
	root.Add(abs)

	root.Layout(30, 10)

	ax, ay, aw, ah := abs.Bounds()
	if ax != 20 || ay != 2 || aw != 4 || ah != 4 {
		t.Errorf("expected absolute child at (20,2,4,4), got (%d,%d,%d,%d)", ax, ay, aw, ah)
	}
}

func TestLayoutCycleGuardSetsLayoutError(t *testing.T) {
	a := NewNode(CapContainer)
	b := NewNode(CapContainer)
	a.children = append(a.children, b)
	b.parent = a
	b.children = append(b.children, a) // cycle: b's child is its own ancestor

	a.Layout(10, 10)

	if !a.layoutError && !b.layoutError {
		t.Errorf("expected the cycle guard to flag at least one node's layoutError")
	}
}
