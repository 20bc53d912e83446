package recdeck

// affine is a 2D scale-then-translate transform. Scene nodes never rotate or
// skew, so the full 2x3 matrix collapses to four terms:
//
//	| sx  0  tx |
//	|  0 sy  ty |
type affine struct {
	sx, sy, tx, ty float64
}

var identityTransform = affine{sx: 1, sy: 1}

func localTransform(n *Node) affine {
	return affine{sx: n.ScaleX, sy: n.ScaleY, tx: n.X, ty: n.Y}
}

// then returns p applied after c (result = p * c).
func (p affine) then(c affine) affine {
	return affine{
		sx: p.sx * c.sx,
		sy: p.sy * c.sy,
		tx: p.sx*c.tx + p.tx,
		ty: p.sy*c.ty + p.ty,
	}
}

func (p affine) apply(x, y float64) (float64, float64) {
	return p.sx*x + p.tx, p.sy*y + p.ty
}

// invert returns the inverse transform. A zero scale axis maps to identity on
// that axis.
func (p affine) invert() affine {
	inv := affine{sx: 1, sy: 1}
	if p.sx != 0 {
		inv.sx = 1 / p.sx
		inv.tx = -p.tx / p.sx
	}
	if p.sy != 0 {
		inv.sy = 1 / p.sy
		inv.ty = -p.ty / p.sy
	}
	return inv
}

// updateWorldTransform recomputes a node's world transform and alpha.
// parentRecomputed forces recomputation of clean children of a dirty parent.
func updateWorldTransform(n *Node, parent affine, parentAlpha float64, parentRecomputed bool) {
	recompute := n.dirty || parentRecomputed
	if recompute {
		n.world = parent.then(localTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.dirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.world, n.worldAlpha, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.dirty = true
}

// Position returns the node's local position.
func (n *Node) Position() Vec2 {
	return Vec2{n.X, n.Y}
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.dirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.dirty = true
}

// MarkDirty forces recomputation of the node's world transform on the next
// frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return n.world.invert().apply(wx, wy)
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return n.world.apply(lx, ly)
}

// WorldAlpha returns the alpha accumulated from the root, as of the last
// transform update.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}
