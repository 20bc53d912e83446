package recdeck

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill.
var ColorWhite = Color{1, 1, 1, 1}

// ColorNone is a fully transparent color. Shapes skip fills and strokes
// whose alpha is zero.
var ColorNone = Color{}

// Hex builds an opaque Color from a 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

// WithAlpha returns c with its alpha component replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA converts c to a premultiplied color.RGBA scaled by the extra alpha.
func (c Color) RGBA(alpha float64) color.RGBA {
	a := clamp01(c.A * alpha)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Lerp returns the point at fraction t between a and b. Lerp(a, b, 0) is
// exactly a.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Mid returns the midpoint of a and b.
func Mid(a, b Vec2) Vec2 {
	return Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Shape selects how a Node is drawn. The set is closed: every switch over
// Shape in this package is exhaustive.
type Shape uint8

const (
	ShapeContainer Shape = iota // group node with no visual output
	ShapeCircle                 // circle centered on the node origin
	ShapeRect                   // rectangle, optionally centered
	ShapeLine                   // segment from the node origin to LineEnd
	ShapeText                   // single or multi-line label
)

func (s Shape) String() string {
	switch s {
	case ShapeContainer:
		return "container"
	case ShapeCircle:
		return "circle"
	case ShapeRect:
		return "rect"
	case ShapeLine:
		return "line"
	case ShapeText:
		return "text"
	}
	return "unknown"
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // fires when the pointer button is pressed
	EventPointerUp                     // fires when the pointer button is released
	EventPointerMove                   // fires when the pointer moves without a button
	EventClick                         // fires on press then release over the same node
	EventDragStart                     // fires when movement exceeds the drag dead zone
	EventDrag                          // fires each frame while dragging
	EventDragEnd                       // fires when the pointer is released after dragging
	EventPointerEnter                  // fires when the pointer enters a node's bounds
	EventPointerLeave                  // fires when the pointer leaves a node's bounds
)

// TextAlign controls horizontal text alignment around the node origin.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // text starts at the origin
	TextAlignCenter                  // text is centered on the origin
	TextAlignRight                   // text ends at the origin
)

// NodeFlags carries presentation classes toggled by controllers.
type NodeFlags uint8

const (
	FlagHighlighted NodeFlags = 1 << iota // node is part of a highlighted path
	FlagPulse                             // node is the recommendation target
	FlagAlert                             // node is in an alert state
	FlagHover                             // pointer is over the node
)
