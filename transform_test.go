package recdeck

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertAffine(t *testing.T, name string, got, want affine) {
	t.Helper()
	assertNear(t, name+".sx", got.sx, want.sx)
	assertNear(t, name+".sy", got.sy, want.sy)
	assertNear(t, name+".tx", got.tx, want.tx)
	assertNear(t, name+".ty", got.ty, want.ty)
}

// --- localTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	assertAffine(t, "local", localTransform(NewContainer("test")), identityTransform)
}

func TestLocalTransformTranslationAndScale(t *testing.T) {
	n := NewContainer("test")
	n.X, n.Y = 10, 20
	n.ScaleX, n.ScaleY = 2, 0.5
	assertAffine(t, "local", localTransform(n), affine{sx: 2, sy: 0.5, tx: 10, ty: 20})
}

// --- then / invert ---

func TestThenIdentity(t *testing.T) {
	a := affine{sx: 2, sy: 3, tx: 4, ty: 5}
	assertAffine(t, "I*a", identityTransform.then(a), a)
	assertAffine(t, "a*I", a.then(identityTransform), a)
}

func TestThenComposes(t *testing.T) {
	parent := affine{sx: 2, sy: 2, tx: 100, ty: 50}
	child := affine{sx: 1, sy: 1, tx: 10, ty: 10}
	x, y := parent.then(child).apply(1, 1)
	assertNear(t, "x", x, 122)
	assertNear(t, "y", y, 72)
}

func TestInvertRoundtrip(t *testing.T) {
	a := affine{sx: 0.65, sy: 0.65, tx: 160, ty: 200}
	x, y := a.apply(37, -12)
	lx, ly := a.invert().apply(x, y)
	assertNear(t, "x", lx, 37)
	assertNear(t, "y", ly, -12)
}

func TestInvertZeroScale(t *testing.T) {
	a := affine{sx: 0, sy: 2, tx: 5, ty: 6}
	inv := a.invert()
	assertNear(t, "inv.sx", inv.sx, 1)
	assertNear(t, "inv.tx", inv.tx, 0)
	assertNear(t, "inv.sy", inv.sy, 0.5)
	assertNear(t, "inv.ty", inv.ty, -3)
}

// --- updateWorldTransform ---

func TestWorldTransformParentChild(t *testing.T) {
	parent := NewContainer("parent")
	parent.X, parent.Y = 100, 50
	parent.ScaleX, parent.ScaleY = 2, 2
	child := NewContainer("child")
	child.X, child.Y = 10, 5
	parent.AddChild(child)

	updateWorldTransform(parent, identityTransform, 1, false)

	wx, wy := child.LocalToWorld(0, 0)
	assertNear(t, "wx", wx, 120)
	assertNear(t, "wy", wy, 60)
}

func TestAlphaPropagation(t *testing.T) {
	parent := NewContainer("parent")
	parent.Alpha = 0.5
	child := NewContainer("child")
	child.Alpha = 0.4
	parent.AddChild(child)

	updateWorldTransform(parent, identityTransform, 1, false)
	assertNear(t, "child.worldAlpha", child.WorldAlpha(), 0.2)
}

func TestDirtyFlagSkipsClean(t *testing.T) {
	n := NewContainer("n")
	n.X = 10
	updateWorldTransform(n, identityTransform, 1, false)

	// Writing a field without marking dirty must not be picked up.
	n.X = 99
	updateWorldTransform(n, identityTransform, 1, false)
	wx, _ := n.LocalToWorld(0, 0)
	assertNear(t, "wx", wx, 10)

	n.MarkDirty()
	updateWorldTransform(n, identityTransform, 1, false)
	wx, _ = n.LocalToWorld(0, 0)
	assertNear(t, "wx", wx, 99)
}

func TestParentRecomputedPropagates(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	child.X = 5
	parent.AddChild(child)
	updateWorldTransform(parent, identityTransform, 1, false)

	parent.SetPosition(100, 0)
	if child.dirty {
		t.Fatal("child should be clean before the update")
	}
	updateWorldTransform(parent, identityTransform, 1, false)
	wx, _ := child.LocalToWorld(0, 0)
	assertNear(t, "child wx", wx, 105)
}

func TestWorldToLocalRoundtrip(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	mid.SetPosition(40, 30)
	mid.SetScale(0.7, 0.7)
	leaf := NewCircle("leaf", 10, -20, 5, ColorWhite)
	mid.AddChild(leaf)
	root.AddChild(mid)
	updateWorldTransform(root, identityTransform, 1, false)

	wx, wy := leaf.LocalToWorld(3, 4)
	lx, ly := leaf.WorldToLocal(wx, wy)
	assertNear(t, "lx", lx, 3)
	assertNear(t, "ly", ly, 4)
}

func TestSettersDirty(t *testing.T) {
	n := NewContainer("n")
	setters := map[string]func(){
		"SetPosition": func() { n.SetPosition(1, 2) },
		"SetScale":    func() { n.SetScale(2, 2) },
		"SetAlpha":    func() { n.SetAlpha(0.5) },
		"MarkDirty":   n.MarkDirty,
	}
	for name, set := range setters {
		n.dirty = false
		set()
		if !n.dirty {
			t.Errorf("%s should mark dirty", name)
		}
	}
	if n.Position() != (Vec2{1, 2}) {
		t.Errorf("Position = %+v", n.Position())
	}
}
