package recdeck

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawNode draws n and its subtree using the world transforms computed in
// Update. Returns the number of shapes drawn.
func (s *Scene) drawNode(dst *ebiten.Image, n *Node, parentAlpha float64) int {
	if !n.Visible {
		return 0
	}
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return 0
	}
	count := 0
	if s.drawShape(dst, n, alpha) {
		count++
	}
	for _, child := range n.children {
		count += s.drawNode(dst, child, alpha)
	}
	return count
}

func (s *Scene) drawShape(dst *ebiten.Image, n *Node, alpha float64) bool {
	w := n.world
	switch n.Shape {
	case ShapeContainer:
		return false

	case ShapeCircle:
		cx, cy := w.apply(0, 0)
		r := float32(n.Radius * w.sx)
		if n.Fill.A > 0 {
			vector.DrawFilledCircle(dst, float32(cx), float32(cy), r, n.Fill.RGBA(alpha), true)
		}
		if n.StrokeWidth > 0 && n.Stroke.A > 0 {
			sw := float32(n.StrokeWidth * w.sx)
			clr := n.Stroke.RGBA(alpha)
			if n.Dash > 0 {
				dashedCircle(dst, cx, cy, float64(r), n.Dash*w.sx, sw, clr)
			} else {
				vector.StrokeCircle(dst, float32(cx), float32(cy), r, sw, clr, true)
			}
		}
		return true

	case ShapeRect:
		x0, y0 := 0.0, 0.0
		if n.Centered {
			x0, y0 = -n.Width/2, -n.Height/2
		}
		x, y := w.apply(x0, y0)
		rw, rh := n.Width*w.sx, n.Height*w.sy
		if n.Fill.A > 0 {
			vector.DrawFilledRect(dst, float32(x), float32(y), float32(rw), float32(rh), n.Fill.RGBA(alpha), true)
		}
		if n.StrokeWidth > 0 && n.Stroke.A > 0 {
			sw := float32(n.StrokeWidth * w.sx)
			clr := n.Stroke.RGBA(alpha)
			if n.Dash > 0 {
				d := n.Dash * w.sx
				dashedLine(dst, x, y, x+rw, y, d, sw, clr)
				dashedLine(dst, x+rw, y, x+rw, y+rh, d, sw, clr)
				dashedLine(dst, x+rw, y+rh, x, y+rh, d, sw, clr)
				dashedLine(dst, x, y+rh, x, y, d, sw, clr)
			} else {
				vector.StrokeRect(dst, float32(x), float32(y), float32(rw), float32(rh), sw, clr, true)
			}
		}
		return true

	case ShapeLine:
		if n.StrokeWidth <= 0 || n.Stroke.A <= 0 {
			return false
		}
		x1, y1 := w.apply(0, 0)
		x2, y2 := w.apply(n.LineEnd.X, n.LineEnd.Y)
		sw := float32(n.StrokeWidth * w.sx)
		clr := n.Stroke.RGBA(alpha)
		if n.Dash > 0 {
			dashedLine(dst, x1, y1, x2, y2, n.Dash*w.sx, sw, clr)
		} else {
			vector.StrokeLine(dst, float32(x1), float32(y1), float32(x2), float32(y2), sw, clr, true)
		}
		return true

	case ShapeText:
		if n.Text == "" || n.Fill.A <= 0 {
			return false
		}
		x, y := w.apply(0, 0)
		face := s.fonts.Face(n.FontSize * w.sy)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(n.Fill.RGBA(alpha))
		op.PrimaryAlign = primaryAlign(n.Align)
		op.SecondaryAlign = text.AlignCenter
		op.LineSpacing = n.FontSize * w.sy * 1.3
		text.Draw(dst, n.Text, face, op)
		return true
	}
	return false
}

// dashedLine strokes a segment as alternating dashes and gaps of equal length.
func dashedLine(dst *ebiten.Image, x1, y1, x2, y2, dash float64, width float32, clr color.Color) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 || dash <= 0 {
		return
	}
	ux, uy := dx/length, dy/length
	for d := 0.0; d < length; d += 2 * dash {
		end := math.Min(d+dash, length)
		vector.StrokeLine(dst,
			float32(x1+ux*d), float32(y1+uy*d),
			float32(x1+ux*end), float32(y1+uy*end),
			width, clr, true)
	}
}

// dashedCircle strokes a circle as arcs approximated by short segments.
func dashedCircle(dst *ebiten.Image, cx, cy, r, dash float64, width float32, clr color.Color) {
	if r <= 0 || dash <= 0 {
		return
	}
	circumference := 2 * math.Pi * r
	n := int(circumference / dash)
	if n < 2 {
		n = 2
	}
	if n%2 == 1 {
		n++
	}
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i += 2 {
		a0, a1 := float64(i)*step, float64(i+1)*step
		vector.StrokeLine(dst,
			float32(cx+r*math.Cos(a0)), float32(cy+r*math.Sin(a0)),
			float32(cx+r*math.Cos(a1)), float32(cy+r*math.Sin(a1)),
			width, clr, true)
	}
}
