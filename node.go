package recdeck

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
}

// DragContext carries drag event data.
type DragContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
	StartX  float64
	StartY  float64
	DeltaX  float64
	DeltaY  float64
}

// nodeIDCounter is not atomic; the engine runs on one goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used
// for every Shape so controllers can tween any field without type switches.
type Node struct {
	// Identity
	ID    uint32
	Name  string
	Shape Shape

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y   float64
	ScaleX float64
	ScaleY float64

	// Computed during updateWorldTransform.
	world      affine
	worldAlpha float64
	dirty      bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Paint
	Fill        Color
	Stroke      Color
	StrokeWidth float64
	Dash        float64 // dash length for strokes; 0 draws solid

	// Geometry
	Radius        float64 // ShapeCircle
	Width, Height float64 // ShapeRect
	Centered      bool    // ShapeRect is centered on the origin
	LineEnd       Vec2    // ShapeLine end point, local coordinates

	// Text
	Text     string
	FontSize float64
	Align    TextAlign
	Bold     bool

	Flags    NodeFlags
	UserData any

	// Hit testing
	HitShape HitShape

	// Per-node callbacks (nil by default)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	OnClick        func(PointerContext)
	OnPointerDown  func(PointerContext)
	OnDragStart    func(DragContext)
	OnDrag         func(DragContext)
	OnDragEnd      func(DragContext)

	// OnUpdate runs once per Scene.Update for every node in the tree,
	// visible or not.
	OnUpdate func(dt float32)

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Fill = ColorWhite
	n.Visible = true
	n.dirty = true
}

// NewContainer creates a group node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Shape: ShapeContainer}
	nodeDefaults(n)
	return n
}

// NewCircle creates a filled circle of radius r centered at (x, y).
func NewCircle(name string, x, y, r float64, fill Color) *Node {
	n := &Node{Name: name, Shape: ShapeCircle, Radius: r}
	nodeDefaults(n)
	n.X, n.Y = x, y
	n.Fill = fill
	return n
}

// NewRect creates a filled rectangle whose top-left corner is at (x, y).
func NewRect(name string, x, y, w, h float64, fill Color) *Node {
	n := &Node{Name: name, Shape: ShapeRect, Width: w, Height: h}
	nodeDefaults(n)
	n.X, n.Y = x, y
	n.Fill = fill
	return n
}

// NewLine creates a stroked segment from (x1, y1) to (x2, y2).
func NewLine(name string, x1, y1, x2, y2 float64, stroke Color, width float64) *Node {
	n := &Node{Name: name, Shape: ShapeLine, Stroke: stroke, StrokeWidth: width}
	nodeDefaults(n)
	n.X, n.Y = x1, y1
	n.LineEnd = Vec2{x2 - x1, y2 - y1}
	n.Fill = ColorNone
	return n
}

// NewText creates a text label anchored at (x, y).
func NewText(name, content string, x, y, size float64, fill Color) *Node {
	n := &Node{Name: name, Shape: ShapeText, Text: content, FontSize: size}
	nodeDefaults(n)
	n.X, n.Y = x, y
	n.Fill = fill
	return n
}

// NewCross creates a container holding an X mark of two crossed lines, size
// wide and centered on the container's origin.
func NewCross(name string, size float64, stroke Color, width float64) *Node {
	h := size / 2
	n := NewContainer(name)
	n.AddChild(NewLine(name+"_a", -h, -h, h, h, stroke, width))
	n.AddChild(NewLine(name+"_b", -h, h, h, -h, stroke, width))
	return n
}

// NewCheck creates a container holding a check mark drawn as a two-segment
// polyline, size wide and centered on the container's origin.
func NewCheck(name string, size float64, stroke Color, width float64) *Node {
	h := size / 2
	n := NewContainer(name)
	n.AddChild(NewLine(name+"_short", -h, 0, -h/3, h*2/3, stroke, width))
	n.AddChild(NewLine(name+"_long", -h/3, h*2/3, h, -h*2/3, stroke, width))
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("recdeck: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("recdeck: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("recdeck: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren disposes all children of this node.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// FindChild returns the first direct child with the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk calls fn for n and every descendant in painter order. Returning false
// from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// HasFlag reports whether every bit of f is set on the node.
func (n *Node) HasFlag(f NodeFlags) bool {
	return n.Flags&f == f
}

// SetFlag sets or clears the bits of f.
func (n *Node) SetFlag(f NodeFlags, on bool) {
	if on {
		n.Flags |= f
	} else {
		n.Flags &^= f
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Tweens targeting a disposed
// node stop on their next update.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.OnUpdate = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnClick = nil
	n.OnPointerDown = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func markSubtreeDirty(node *Node) {
	node.dirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
