package recdeck

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultDragDeadZone = 4.0 // pixels

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// pointerState tracks the single mouse pointer between frames.
type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node
	dragging  bool
}

// syntheticPointerEvent is a queued injected pointer event.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives the region from the node's shape.
// Lines, text and containers without a HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	switch n.Shape {
	case ShapeCircle:
		return HitCircle{Radius: n.Radius}.Contains(lx, ly)
	case ShapeRect:
		r := HitRect{Width: n.Width, Height: n.Height}
		if n.Centered {
			r.X, r.Y = -n.Width/2, -n.Height/2
		}
		return r.Contains(lx, ly)
	case ShapeContainer, ShapeLine, ShapeText:
		return false
	}
	return false
}

// collectInteractable walks the tree in painter order, appending candidate
// nodes to buf. Skips invisible or non-interactable subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Shape == ShapeCircle || n.Shape == ShapeRect {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (wx, wy), or nil.
func (s *Scene) hitTest(wx, wy float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(wx, wy)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Injection ---

// InjectMove queues a pointer move at the given coordinates. The button state
// is unchanged from the previous event.
func (s *Scene) InjectMove(x, y float64) {
	pressed := s.pointer.down
	if n := len(s.injectQueue); n > 0 {
		pressed = s.injectQueue[n-1].pressed
	}
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: pressed})
}

// InjectPress queues a pointer press at the given coordinates.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// InjectClick queues a press followed by a release. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues press, frames-2 interpolated moves and a release.
// Minimum frames is 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// PendingInput returns the number of injected events not yet processed.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// --- Input processing ---

// processInput consumes one injected event if any are queued; otherwise it
// reads the real cursor when the scene is attached to a running game.
func (s *Scene) processInput() {
	if len(s.injectQueue) > 0 {
		evt := s.injectQueue[0]
		copy(s.injectQueue, s.injectQueue[1:])
		s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
		s.processPointer(evt.x, evt.y, evt.pressed)
		return
	}
	if !s.liveInput {
		return
	}
	mx, my := ebiten.CursorPosition()
	s.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processPointer runs the pointer state machine.
func (s *Scene) processPointer(wx, wy float64, pressed bool) {
	ps := &s.pointer
	target := s.hitTest(wx, wy)

	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.IsDisposed() {
			s.firePointer(EventPointerLeave, ps.hoverNode, wx, wy)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, wx, wy)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.dragging = false
		s.firePointer(EventPointerDown, target, wx, wy)

	case !pressed && ps.down:
		if ps.dragging {
			s.fireDrag(EventDragEnd, ps.hitNode, wx, wy, wx-ps.lastX, wy-ps.lastY)
		} else if ps.hitNode != nil && ps.hitNode == target {
			s.firePointer(EventClick, target, wx, wy)
		}
		s.firePointer(EventPointerUp, target, wx, wy)
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false

	case pressed && ps.down:
		if wx != ps.lastX || wy != ps.lastY {
			if !ps.dragging {
				dx := wx - ps.startX
				dy := wy - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDrag(EventDragStart, ps.hitNode, wx, wy, wx-ps.startX, wy-ps.startY)
				}
			}
			if ps.dragging {
				s.fireDrag(EventDrag, ps.hitNode, wx, wy, wx-ps.lastX, wy-ps.lastY)
			}
		}
		ps.lastX, ps.lastY = wx, wy

	default:
		if wx != ps.lastX || wy != ps.lastY {
			s.firePointer(EventPointerMove, target, wx, wy)
			ps.lastX, ps.lastY = wx, wy
		}
	}
}

// --- Event dispatch ---

func (s *Scene) firePointer(typ EventType, node *Node, wx, wy float64) {
	ctx := PointerContext{Node: node, GlobalX: wx, GlobalY: wy}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		var fn func(PointerContext)
		switch typ {
		case EventPointerEnter:
			fn = node.OnPointerEnter
		case EventPointerLeave:
			fn = node.OnPointerLeave
		case EventClick:
			fn = node.OnClick
		case EventPointerDown:
			fn = node.OnPointerDown
		}
		if fn != nil {
			fn(ctx)
		}
	}
	s.emit(typ, node, wx, wy)
}

func (s *Scene) fireDrag(typ EventType, node *Node, wx, wy, dx, dy float64) {
	if node == nil {
		return
	}
	ctx := DragContext{
		Node: node, GlobalX: wx, GlobalY: wy,
		StartX: s.pointer.startX, StartY: s.pointer.startY,
		DeltaX: dx, DeltaY: dy,
	}
	ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
	var fn func(DragContext)
	switch typ {
	case EventDragStart:
		fn = node.OnDragStart
	case EventDrag:
		fn = node.OnDrag
	case EventDragEnd:
		fn = node.OnDragEnd
	}
	if fn != nil {
		fn(ctx)
	}
	s.emit(typ, node, wx, wy)
}

// emit forwards an interaction to the optional EventSink. Move events are
// not forwarded.
func (s *Scene) emit(typ EventType, node *Node, wx, wy float64) {
	if s.sink == nil || typ == EventPointerMove {
		return
	}
	name := ""
	if node != nil {
		name = node.Name
	}
	s.sink.EmitEvent(InteractionEvent{Type: typ, NodeName: name, GlobalX: wx, GlobalY: wy})
}
