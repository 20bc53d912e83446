package scatter

import (
	"math"

	"github.com/phanxgames/recdeck"
)

// Kind is the closed set of scatter point kinds.
type Kind uint8

const (
	KindBackground Kind = iota // context point, not zone-sensitive
	KindHead                   // power user, deep inside its zone
	KindTail                   // long-tail user next to the boundary
)

func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindHead:
		return "head"
	case KindTail:
		return "tail"
	}
	return "unknown"
}

// Zone is the side of the boundary a point falls on.
type Zone uint8

const (
	ZoneNone  Zone = iota // point is not zone-sensitive
	ZoneLeft              // x < boundary
	ZoneRight             // x >= boundary
)

func (z Zone) String() string {
	switch z {
	case ZoneNone:
		return "none"
	case ZoneLeft:
		return "left"
	case ZoneRight:
		return "right"
	}
	return "unknown"
}

// ZoneOf classifies an x coordinate against the boundary.
func ZoneOf(x, boundary float64) Zone {
	if x < boundary {
		return ZoneLeft
	}
	return ZoneRight
}

// DriftPoint is a point of the latent space plot in domain units [0, 100].
// It is immutable; the drawn position is derived from the noise level on
// every render.
type DriftPoint struct {
	ID     string
	Kind   Kind
	Label  string
	Radius float64

	Base     recdeck.Vec2
	Control1 recdeck.Vec2
	Control2 recdeck.Vec2
	Target   recdeck.Vec2

	// Wobble scales the periodic offset per axis, as a fraction of the
	// controller's wobble amplitude.
	Wobble recdeck.Vec2
	Phase  float64

	ZoneSensitive bool
}

// Progress maps a noise level to the eased Bezier parameter:
// smoothstep((level/100)^1.3). Levels are clamped to [0, 100].
func Progress(level int) float64 {
	p := math.Pow(float64(clampLevel(level))/100, 1.3)
	return p * p * (3 - 2*p)
}

// Position returns where p is drawn at the given noise level. It is a pure
// function of its arguments and returns p.Base exactly at level 0.
func Position(p DriftPoint, level int, wobble float64) recdeck.Vec2 {
	level = clampLevel(level)
	if level == 0 {
		return p.Base
	}
	pos := bezier(p.Base, p.Control1, p.Control2, p.Target, Progress(level))

	l := float64(level)
	amp := wobble * l / 100
	pos.X += p.Wobble.X * amp * math.Sin(p.Phase+0.19*l)
	pos.Y += p.Wobble.Y * amp * math.Cos(1.7*p.Phase+0.11*l)

	return recdeck.Vec2{X: clamp(pos.X, 0, 100), Y: clamp(pos.Y, 0, 100)}
}

func bezier(p0, p1, p2, p3 recdeck.Vec2, t float64) recdeck.Vec2 {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return recdeck.Vec2{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// newPoint derives both control points from the straight base→target line,
// pushed off it by bend in opposite directions.
func newPoint(id string, kind Kind, label string, r float64, base, target, bend, wobble recdeck.Vec2, phase float64) DriftPoint {
	c1 := recdeck.Lerp(base, target, 1.0/3)
	c2 := recdeck.Lerp(base, target, 2.0/3)
	return DriftPoint{
		ID:            id,
		Kind:          kind,
		Label:         label,
		Radius:        r,
		Base:          base,
		Control1:      recdeck.Vec2{X: c1.X + bend.X, Y: c1.Y + bend.Y},
		Control2:      recdeck.Vec2{X: c2.X - bend.X, Y: c2.Y - bend.Y},
		Target:        target,
		Wobble:        wobble,
		Phase:         phase,
		ZoneSensitive: kind != KindBackground,
	}
}

// Scenario point ids.
const (
	PowerUser    = "power_user"
	LongTailUser = "longtail_user"
)

// scenarioPoints places the power user deep in the left zone and the
// long-tail user next to the boundary. The long-tail user drifts right
// along an x-monotone curve with no horizontal wobble, so it crosses the
// boundary once as the level rises.
func scenarioPoints(head, tail string) []DriftPoint {
	v := func(x, y float64) recdeck.Vec2 { return recdeck.Vec2{X: x, Y: y} }
	return []DriftPoint{
		newPoint(PowerUser, KindHead, head, 14, v(25, 50), v(33, 50), v(1, 6), v(1, 1), 0.4),
		newPoint(LongTailUser, KindTail, tail, 7, v(45, 50), v(64, 52), v(1, 4), v(0, 1), 1.3),
		newPoint("bg1", KindBackground, "", 4, v(20, 30), v(28, 22), v(2, -1), v(1, 1), 2.1),
		newPoint("bg2", KindBackground, "", 4, v(30, 70), v(22, 80), v(-1, 2), v(1, 1), 3.7),
		newPoint("bg3", KindBackground, "", 4, v(35, 40), v(44, 30), v(2, 2), v(1, 1), 0.9),
		newPoint("bg4", KindBackground, "", 4, v(65, 50), v(58, 60), v(-2, 1), v(1, 1), 5.2),
		newPoint("bg5", KindBackground, "", 4, v(70, 35), v(78, 28), v(1, -2), v(1, 1), 4.4),
		newPoint("bg6", KindBackground, "", 4, v(80, 65), v(72, 76), v(-1, -1), v(1, 1), 2.8),
	}
}
