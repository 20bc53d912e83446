// Package scatter shows identity drift in a latent space: as representation
// noise rises, every point moves along a fixed drift curve with a small
// periodic wobble, and a long-tail user near the zone boundary ends up on
// the wrong side while the power user stays put.
package scatter

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/recdeck"
	"github.com/phanxgames/recdeck/internal/config"
)

var (
	colorZoneLeft   = recdeck.Hex(0xe0f2fe).WithAlpha(0.5)
	colorZoneRight  = recdeck.Hex(0xdcfce7).WithAlpha(0.5)
	colorLeftText   = recdeck.Hex(0x0369a1)
	colorRightText  = recdeck.Hex(0x15803d)
	colorBoundary   = recdeck.Hex(0x64748b)
	colorAlert      = recdeck.Hex(0xef4444)
	colorAxis       = recdeck.Hex(0x4a5568)
	colorBackground = recdeck.Hex(0xcbd5e0)
	colorBgStroke   = recdeck.Hex(0x94a3b8)
	colorHead       = recdeck.Hex(0x0369a1)
	colorHeadStroke = recdeck.Hex(0x1e40af)
	colorTail       = recdeck.Hex(0x0284c7)
	colorTailStroke = recdeck.Hex(0x0369a1)
	colorCrossed    = recdeck.Hex(0x15803d)
	colorCrossedStr = recdeck.Hex(0x166534)
)

// Plot margins in pixels.
const (
	marginTop    = 40
	marginRight  = 20
	marginBottom = 30
	marginLeft   = 50
)

const alertFade = 200 * time.Millisecond

// Options configures a Controller.
type Options struct {
	Width, Height float64
	Timing        config.ScatterConfig
	Captions      config.ScatterCaptions
	Logger        zerolog.Logger
}

// DefaultOptions returns options built from the default configuration.
func DefaultOptions() Options {
	cfg := config.DefaultConfig()
	return Options{
		Width:    560,
		Height:   380,
		Timing:   cfg.Scatter,
		Captions: cfg.Captions.Scatter,
		Logger:   zerolog.Nop(),
	}
}

type pointView struct {
	group  *recdeck.Node
	circle *recdeck.Node
	label  *recdeck.Node
}

// Controller owns the scatter plot. Node is its root.
type Controller struct {
	Node *recdeck.Node

	opts   Options
	log    zerolog.Logger
	points []DriftPoint
	origin map[string]Zone // zone at level 0

	level     int
	positions map[string]recdeck.Vec2
	zones     map[string]Zone
	alert     bool

	plotW, plotH float64
	plot         *recdeck.Node
	views        map[string]pointView
	alertText    *recdeck.Node
	zoneLeft     *recdeck.Node
	zoneRight    *recdeck.Node
	axisX, axisY *recdeck.Node

	moveTL  recdeck.Timeline
	alertTL recdeck.Timeline
}

// New builds the plot and renders it at noise level 0.
func New(opts Options) *Controller {
	c := &Controller{
		opts:      opts,
		log:       opts.Logger.With().Str("scene", "scatter").Logger(),
		points:    scenarioPoints(opts.Captions.Head, opts.Captions.Tail),
		origin:    map[string]Zone{},
		positions: map[string]recdeck.Vec2{},
		zones:     map[string]Zone{},
		views:     map[string]pointView{},
		plotW:     opts.Width - marginLeft - marginRight,
		plotH:     opts.Height - marginTop - marginBottom,
	}
	for _, p := range c.points {
		c.origin[p.ID] = c.zoneOf(p, p.Base)
	}

	c.Node = recdeck.NewContainer("scatter-viz")
	c.Node.OnUpdate = c.Update

	c.buildZones()
	c.buildPoints()

	c.alertText = recdeck.NewText("alert", opts.Captions.Alert, marginLeft+c.plotW/2, opts.Height-30, 13, colorAlert)
	c.alertText.Align = recdeck.TextAlignCenter
	c.alertText.Bold = true
	c.alertText.Alpha = 0
	c.Node.AddChild(c.alertText)

	c.axisX = recdeck.NewText("axis_x", opts.Captions.AxisX, opts.Width/2, opts.Height-12, 11, colorAxis)
	c.axisX.Align = recdeck.TextAlignCenter
	c.axisY = recdeck.NewText("axis_y", opts.Captions.AxisY, 8, 12, 11, colorAxis)
	c.Node.AddChild(c.axisX)
	c.Node.AddChild(c.axisY)

	c.Render(0)
	return c
}

func (c *Controller) buildZones() {
	zones := recdeck.NewContainer("zones")
	zones.SetPosition(marginLeft, marginTop)
	bx := c.scaleX(c.opts.Timing.BoundaryX)

	left := recdeck.NewRect("zone_left", 0, 0, bx, c.plotH, colorZoneLeft)
	right := recdeck.NewRect("zone_right", bx, 0, c.plotW-bx, c.plotH, colorZoneRight)
	zones.AddChild(left)
	zones.AddChild(right)

	c.zoneLeft = recdeck.NewText("zone_left_label", c.opts.Captions.ZoneLeft, bx/2, 20, 14, colorLeftText)
	c.zoneRight = recdeck.NewText("zone_right_label", c.opts.Captions.ZoneRight, bx+(c.plotW-bx)/2, 20, 14, colorRightText)
	for _, t := range []*recdeck.Node{c.zoneLeft, c.zoneRight} {
		t.Align = recdeck.TextAlignCenter
		t.Bold = true
		zones.AddChild(t)
	}

	boundary := recdeck.NewLine("boundary", bx, 0, bx, c.plotH, colorBoundary, 2)
	boundary.Dash = 5
	zones.AddChild(boundary)
	c.Node.AddChild(zones)
}

func (c *Controller) buildPoints() {
	c.plot = recdeck.NewContainer("points")
	c.plot.SetPosition(marginLeft, marginTop)
	for _, p := range c.points {
		g := recdeck.NewContainer(p.ID)
		circle := recdeck.NewCircle(p.ID+"_dot", 0, 0, p.Radius, colorBackground)
		g.AddChild(circle)
		v := pointView{group: g, circle: circle}
		if p.Label != "" {
			dy := -15.0
			if p.Kind == KindHead {
				dy = -20
			}
			v.label = recdeck.NewText(p.ID+"_label", p.Label, 0, dy-4, 11, colorLeftText)
			v.label.Align = recdeck.TextAlignCenter
			v.label.Bold = true
			g.AddChild(v.label)
		}
		at := c.toScreen(p.Base)
		g.SetPosition(at.X, at.Y)
		c.views[p.ID] = v
		c.plot.AddChild(g)
	}
	c.Node.AddChild(c.plot)
}

// Update advances the point and alert transitions.
func (c *Controller) Update(dt float32) {
	c.moveTL.Update(dt)
	c.alertTL.Update(dt)
}

// UpdateNoise sets the shared noise level and re-renders.
func (c *Controller) UpdateNoise(level int) {
	c.level = clampLevel(level)
	c.Render(c.level)
}

// Render recomputes every point's position and zone for the level and
// moves the drawn points there: slowly when snapping back to level 0,
// quickly otherwise. Calling it twice with the same level targets the same
// positions.
func (c *Controller) Render(level int) {
	level = clampLevel(level)
	dur := c.opts.Timing.Follow
	if level == 0 {
		dur = c.opts.Timing.SnapBack
	}

	c.moveTL.Cancel()
	for _, p := range c.points {
		pos := Position(p, level, c.opts.Timing.Wobble)
		zone := c.zoneOf(p, pos)
		c.positions[p.ID] = pos
		c.zones[p.ID] = zone

		v, ok := c.views[p.ID]
		if !ok {
			c.log.Debug().Str("point", p.ID).Msg("no view for point")
			continue
		}
		at := c.toScreen(pos)
		c.moveTL.Play(recdeck.TweenPosition(v.group, at.X, at.Y, secs(dur), ease.OutQuad))
		c.style(p, v, zone)
	}

	compromised := level > 0 && c.zones[LongTailUser] != c.origin[LongTailUser]
	if compromised != c.alert {
		c.alert = compromised
		to := 0.0
		if compromised {
			to = 1
		}
		c.alertTL.Cancel()
		c.alertTL.Play(recdeck.TweenAlpha(c.alertText, to, secs(alertFade), ease.Linear))
		c.log.Debug().Int("level", level).Bool("alert", compromised).Msg("identity alert")
	}
}

func (c *Controller) style(p DriftPoint, v pointView, zone Zone) {
	crossed := p.ZoneSensitive && zone != c.origin[p.ID]
	switch p.Kind {
	case KindBackground:
		v.circle.Fill, v.circle.Stroke, v.circle.StrokeWidth = colorBackground, colorBgStroke, 1
	case KindHead:
		v.circle.Fill, v.circle.Stroke, v.circle.StrokeWidth = colorHead, colorHeadStroke, 2
	case KindTail:
		if crossed {
			v.circle.Fill, v.circle.Stroke, v.circle.StrokeWidth = colorCrossed, colorCrossedStr, 3
		} else {
			v.circle.Fill, v.circle.Stroke, v.circle.StrokeWidth = colorTail, colorTailStroke, 2
		}
	}
	if v.label != nil {
		v.label.Fill = colorLeftText
		if zone == ZoneRight {
			v.label.Fill = colorRightText
		}
	}
}

func (c *Controller) zoneOf(p DriftPoint, pos recdeck.Vec2) Zone {
	if !p.ZoneSensitive {
		return ZoneNone
	}
	return ZoneOf(pos.X, c.opts.Timing.BoundaryX)
}

func (c *Controller) scaleX(x float64) float64 { return x / 100 * c.plotW }

func (c *Controller) scaleY(y float64) float64 { return (1 - y/100) * c.plotH }

func (c *Controller) toScreen(p recdeck.Vec2) recdeck.Vec2 {
	return recdeck.Vec2{X: c.scaleX(p.X), Y: c.scaleY(p.Y)}
}

// SetCaptions swaps the copy.
func (c *Controller) SetCaptions(caps config.ScatterCaptions) {
	c.opts.Captions = caps
	c.alertText.Text = caps.Alert
	c.zoneLeft.Text = caps.ZoneLeft
	c.zoneRight.Text = caps.ZoneRight
	c.axisX.Text = caps.AxisX
	c.axisY.Text = caps.AxisY
	if v := c.views[PowerUser]; v.label != nil {
		v.label.Text = caps.Head
	}
	if v := c.views[LongTailUser]; v.label != nil {
		v.label.Text = caps.Tail
	}
}

// Level returns the current noise level.
func (c *Controller) Level() int { return c.level }

// Points returns a copy of the scenario points.
func (c *Controller) Points() []DriftPoint { return append([]DriftPoint(nil), c.points...) }

// PositionOf returns the last computed position of a point in domain units.
func (c *Controller) PositionOf(id string) (recdeck.Vec2, bool) {
	p, ok := c.positions[id]
	return p, ok
}

// ZoneOf returns the last computed zone of a point.
func (c *Controller) ZoneOf(id string) Zone { return c.zones[id] }

// Alert reports whether the long-tail user's identity is compromised.
func (c *Controller) Alert() bool { return c.alert }

// Settled reports whether every transition has finished.
func (c *Controller) Settled() bool { return c.moveTL.Idle() && c.alertTL.Idle() }

// ScreenPosition returns where the point's group is currently drawn,
// relative to the plot origin.
func (c *Controller) ScreenPosition(id string) (recdeck.Vec2, bool) {
	v, ok := c.views[id]
	if !ok {
		return recdeck.Vec2{}, false
	}
	return v.group.Position(), true
}

func secs(d time.Duration) float32 {
	return float32(d.Seconds())
}
