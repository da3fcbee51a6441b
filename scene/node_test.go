package scene

import "testing"

func TestAddRemoveChild(t *testing.T) {
	root := NewNode(CapContainer)
	child := NewNode(CapDrawable)
	child.ID = "child"
	root.Add(child)
	if len(root.Children()) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children()))
	}
	if child.Parent() != root {
		t.Errorf("child.Parent() should be root")
	}
	if !root.Remove("child") {
		t.Fatalf("expected Remove to find the child")
	}
	if len(root.Children()) != 0 {
		t.Errorf("expected 0 children after Remove")
	}
	if child.Parent() != nil {
		t.Errorf("expected detached child's Parent to be nil")
	}
}

func TestDestroyRecursivelyClearsSubtree(t *testing.T) {
	root := NewNode(CapContainer)
	mid := NewNode(CapContainer)
	leaf := NewNode(CapDrawable)
	mid.Add(leaf)
	root.Add(mid)
	root.DestroyRecursively()
	if len(root.Children()) != 0 {
		t.Errorf("expected root to have no children after DestroyRecursively")
	}
	if mid.Parent() != nil || len(mid.Children()) != 0 {
		t.Errorf("expected mid's links to be cleared")
	}
}

func TestRequestRenderBubblesToAncestorsOnly(t *testing.T) {
	root := NewNode(CapContainer)
	mid := NewNode(CapContainer)
	leaf := NewNode(CapDrawable)
	sibling := NewNode(CapDrawable)
	mid.Add(leaf)
	mid.Add(sibling)
	root.Add(mid)

	root.renderDirty, mid.renderDirty, leaf.renderDirty, sibling.renderDirty = false, false, false, false
	leaf.RequestRender()

	if !leaf.renderDirty || !mid.renderDirty || !root.renderDirty {
		t.Errorf("expected leaf, mid and root to be render-dirty")
	}
	if sibling.renderDirty {
		t.Errorf("expected sibling to be untouched by leaf's RequestRender")
	}
}

func TestMarkLayoutDirtyBubblesBothFlags(t *testing.T) {
	root := NewNode(CapContainer)
	child := NewNode(CapDrawable)
	root.Add(child)
	root.layoutDirty, root.renderDirty = false, false
	child.layoutDirty, child.renderDirty = false, false

	child.MarkLayoutDirty()

	if !child.layoutDirty || !root.layoutDirty {
		t.Errorf("expected both child and root layoutDirty")
	}
	if !child.renderDirty || !root.renderDirty {
		t.Errorf("expected both child and root renderDirty")
	}
}

func TestOnMouseDispatchesToHandler(t *testing.T) {
	n := NewNode(CapMouseTarget)
	called := false
	n.SetMouseHandler(func(e *MouseEvent) bool {
		called = true
		e.StopPropagation()
		return true
	})
	ev := &MouseEvent{Kind: MouseDown}
	if !n.OnMouse(ev) {
		t.Fatalf("expected OnMouse to report handled")
	}
	if !called {
		t.Errorf("expected handler to run")
	}
	if !ev.Stopped() {
		t.Errorf("expected StopPropagation to mark the event stopped")
	}
}

func TestOnMouseWithNoHandlerIsUnhandled(t *testing.T) {
	n := NewNode(CapMouseTarget)
	if n.OnMouse(&MouseEvent{}) {
		t.Errorf("expected false when no handler installed")
	}
}
