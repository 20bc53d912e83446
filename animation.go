package recdeck

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween is anything a Timeline can advance each frame.
type Tween interface {
	Update(dt float32)
	Finished() bool
}

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenAlpha,
// TweenColor, ...) and call Update(dt) each frame, or hand it to a Timeline.
// The group auto-applies values and marks the node dirty. If the target node
// is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Finished reports whether every tween in the group has completed.
func (g *TweenGroup) Finished() bool {
	return g.Done
}

func newGroup(node *Node, duration float32, fn ease.TweenFunc, pairs ...tweenPair) *TweenGroup {
	g := &TweenGroup{count: len(pairs), target: node}
	for i, p := range pairs {
		g.tweens[i] = gween.New(float32(*p.field), float32(p.to), duration, fn)
		g.fields[i] = p.field
	}
	return g
}

type tweenPair struct {
	field *float64
	to    float64
}

// TweenPosition animates node.X and node.Y to the given coordinates.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn,
		tweenPair{&node.X, toX}, tweenPair{&node.Y, toY})
}

// TweenScale animates node.ScaleX and node.ScaleY to the given values.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn,
		tweenPair{&node.ScaleX, toSX}, tweenPair{&node.ScaleY, toSY})
}

// TweenAlpha animates node.Alpha to the target value.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, tweenPair{&node.Alpha, to})
}

// TweenColor animates all four components of node.Fill to the target color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := &node.Fill
	return newGroup(node, duration, fn,
		tweenPair{&c.R, to.R}, tweenPair{&c.G, to.G}, tweenPair{&c.B, to.B}, tweenPair{&c.A, to.A})
}

// TweenStrokeColor animates all four components of node.Stroke.
func TweenStrokeColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := &node.Stroke
	return newGroup(node, duration, fn,
		tweenPair{&c.R, to.R}, tweenPair{&c.G, to.G}, tweenPair{&c.B, to.B}, tweenPair{&c.A, to.A})
}

// TweenStrokeWidth animates node.StrokeWidth.
func TweenStrokeWidth(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, tweenPair{&node.StrokeWidth, to})
}

// TweenLineEnd animates the end point of a line node, in local coordinates.
func TweenLineEnd(node *Node, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn,
		tweenPair{&node.LineEnd.X, to.X}, tweenPair{&node.LineEnd.Y, to.Y})
}

// Parallel runs several tweens as one; it finishes when all of them have.
type Parallel []Tween

// Update advances every member tween.
func (p Parallel) Update(dt float32) {
	for _, t := range p {
		t.Update(dt)
	}
}

// Finished reports whether all member tweens are done.
func (p Parallel) Finished() bool {
	for _, t := range p {
		if !t.Finished() {
			return false
		}
	}
	return true
}

// Sequence runs tweens one after another. Each tween is built lazily from
// the node's state at the moment the previous one finishes, so chained
// color flashes start from the color actually on screen.
type Sequence struct {
	steps   []func() Tween
	current Tween
	index   int
}

// NewSequence builds a Sequence from tween constructors.
func NewSequence(steps ...func() Tween) *Sequence {
	return &Sequence{steps: steps}
}

// Update advances the current step, moving on when it finishes.
func (s *Sequence) Update(dt float32) {
	if s.current == nil {
		if s.index >= len(s.steps) {
			return
		}
		s.current = s.steps[s.index]()
		s.index++
	}
	s.current.Update(dt)
	if s.current.Finished() {
		s.current = nil
	}
}

// Finished reports whether every step has run to completion.
func (s *Sequence) Finished() bool {
	return s.current == nil && s.index >= len(s.steps)
}

// Call wraps fn as a Tween that runs it once on its first update and is
// finished from then on. It lets a Sequence end with a state mutation.
func Call(fn func()) Tween {
	return &callTween{fn: fn}
}

type callTween struct {
	fn   func()
	done bool
}

func (c *callTween) Update(float32) {
	if c.done {
		return
	}
	c.done = true
	if c.fn != nil {
		c.fn()
	}
}

func (c *callTween) Finished() bool {
	return c.done
}
