package recdeck

import "testing"

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", ShapeContainer)
}

func TestNewCircleDefaults(t *testing.T) {
	n := NewCircle("c", 10, 20, 5, Hex(0x3b82f6))
	assertNodeDefaults(t, n, "c", ShapeCircle)
	if n.X != 10 || n.Y != 20 || n.Radius != 5 {
		t.Errorf("circle geometry = (%v, %v, r=%v)", n.X, n.Y, n.Radius)
	}
	if n.Fill != Hex(0x3b82f6) {
		t.Errorf("Fill = %+v", n.Fill)
	}
}

func TestNewRectDefaults(t *testing.T) {
	n := NewRect("r", 1, 2, 30, 40, ColorWhite)
	assertNodeDefaults(t, n, "r", ShapeRect)
	if n.Width != 30 || n.Height != 40 || n.Centered {
		t.Errorf("rect geometry = (%v x %v, centered=%v)", n.Width, n.Height, n.Centered)
	}
}

func TestNewLineRelativeEnd(t *testing.T) {
	n := NewLine("l", 10, 10, 40, 50, Hex(0xa0aec0), 2)
	assertNodeDefaults(t, n, "l", ShapeLine)
	if n.LineEnd != (Vec2{30, 40}) {
		t.Errorf("LineEnd = %+v, want (30, 40)", n.LineEnd)
	}
	if n.Fill.A != 0 {
		t.Errorf("line fill alpha = %v, want 0", n.Fill.A)
	}
}

func TestNewTextDefaults(t *testing.T) {
	n := NewText("text", "hola", 0, 0, 12, ColorWhite)
	assertNodeDefaults(t, n, "text", ShapeText)
	if n.Text != "hola" || n.FontSize != 12 {
		t.Errorf("text = %q size %v", n.Text, n.FontSize)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, shape Shape) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Shape != shape {
		t.Errorf("Shape = %v, want %v", n.Shape, shape)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if n.Interactable {
		t.Error("Interactable should default to false")
	}
	if !n.dirty {
		t.Error("new nodes should be dirty")
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[uint32]bool)
	for i := 0; i < 100; i++ {
		n := NewContainer("")
		if seen[n.ID] {
			t.Fatalf("duplicate ID %d", n.ID)
		}
		seen[n.ID] = true
	}
}

// --- Tree manipulation ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != child {
		t.Error("parent should contain child")
	}
}

func TestAddChildReparent(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")

	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("a.NumChildren() = %d, want 0", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child should be reparented to b")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(b)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestAddChildNilPanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewContainer("a").AddChild(nil)
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when removing from wrong parent")
		}
	}()
	b.RemoveChild(child)
}

func TestRemoveFromParentNoOp(t *testing.T) {
	n := NewContainer("orphan")
	n.RemoveFromParent()
	if n.Parent != nil {
		t.Error("orphan should stay parentless")
	}
}

func TestRemoveChildrenDisposes(t *testing.T) {
	parent := NewContainer("parent")
	kids := []*Node{NewContainer("a"), NewContainer("b"), NewContainer("c")}
	for _, k := range kids {
		parent.AddChild(k)
	}
	parent.RemoveChildren()

	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	for _, k := range kids {
		if !k.IsDisposed() || k.Parent != nil {
			t.Errorf("%s: disposed=%v parent=%v", k.Name, k.IsDisposed(), k.Parent)
		}
	}
}

func TestFindChildAndWalk(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(NewContainer("a1"))
	b.AddChild(NewContainer("b1"))
	root.AddChild(a)
	root.AddChild(b)

	if root.FindChild("b") != b {
		t.Error("FindChild(b) failed")
	}
	if root.FindChild("a1") != nil {
		t.Error("FindChild should only search direct children")
	}

	var order []string
	root.Walk(func(n *Node) bool {
		order = append(order, n.Name)
		return n.Name != "a"
	})
	want := []string{"root", "a", "b", "b1"}
	if len(order) != len(want) {
		t.Fatalf("walk = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("walk = %v, want %v", order, want)
		}
	}
}

func TestFlags(t *testing.T) {
	n := NewCircle("c", 0, 0, 1, ColorWhite)
	n.SetFlag(FlagHighlighted|FlagPulse, true)
	if !n.HasFlag(FlagHighlighted) || !n.HasFlag(FlagPulse) {
		t.Fatal("flags not set")
	}
	n.SetFlag(FlagPulse, false)
	if n.HasFlag(FlagPulse) || !n.HasFlag(FlagHighlighted) {
		t.Errorf("Flags = %b after clearing pulse", n.Flags)
	}
	if n.HasFlag(FlagHighlighted | FlagAlert) {
		t.Error("HasFlag should require every bit")
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)
	child.OnClick = func(PointerContext) {}

	child.Dispose()

	if parent.NumChildren() != 0 {
		t.Error("disposed child should be removed from parent")
	}
	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("dispose should be recursive")
	}
	if child.OnClick != nil {
		t.Error("callbacks should be cleared")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	n := NewContainer("n")
	n.Dispose()
	n.Dispose()
	if !n.IsDisposed() {
		t.Error("should remain disposed")
	}
}

func TestDirtyPropagationOnAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	child.AddChild(grandchild)
	updateWorldTransform(child, identityTransform, 1, false)
	if child.dirty || grandchild.dirty {
		t.Fatal("expected clean subtree after update")
	}

	parent.AddChild(child)
	if !child.dirty || !grandchild.dirty {
		t.Error("AddChild should mark the whole subtree dirty")
	}
}

func TestNewCrossIsTwoCenteredLines(t *testing.T) {
	n := NewCross("x", 10, ColorWhite, 2)
	if n.Shape != ShapeContainer || n.NumChildren() != 2 {
		t.Fatalf("cross = %v with %d children, want container with 2", n.Shape, n.NumChildren())
	}
	for _, l := range n.Children() {
		if l.Shape != ShapeLine || l.StrokeWidth != 2 {
			t.Errorf("%s: shape %v width %v", l.Name, l.Shape, l.StrokeWidth)
		}
		mid := Vec2{l.X + l.LineEnd.X/2, l.Y + l.LineEnd.Y/2}
		if mid != (Vec2{}) {
			t.Errorf("%s midpoint = %v, want origin", l.Name, mid)
		}
	}
}

func TestNewCheckIsJoinedPolyline(t *testing.T) {
	n := NewCheck("ok", 9, ColorWhite, 2)
	if n.NumChildren() != 2 {
		t.Fatalf("check has %d children, want 2", n.NumChildren())
	}
	short, long := n.Children()[0], n.Children()[1]
	end := Vec2{short.X + short.LineEnd.X, short.Y + short.LineEnd.Y}
	if end != (Vec2{long.X, long.Y}) {
		t.Errorf("segments not joined: short ends at %v, long starts at (%v, %v)", end, long.X, long.Y)
	}
	if long.LineEnd.Y >= 0 {
		t.Error("long stroke should rise to the right")
	}
}
