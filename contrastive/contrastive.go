// Package contrastive shows one interaction graph next to two augmented
// copies of it: a structural view with one interaction dropped and a
// feature view where every node carries noise.
package contrastive

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/recdeck"
	"github.com/phanxgames/recdeck/internal/config"
)

var (
	colorTitle      = recdeck.Hex(0x2d3748)
	colorViewTitle  = recdeck.Hex(0x667eea)
	colorLink       = recdeck.Hex(0xa0aec0)
	colorRemoved    = recdeck.Hex(0xef4444)
	colorUserFill   = recdeck.Hex(0x4299e1)
	colorUserStroke = recdeck.Hex(0x2c5282)
	colorItemFill   = recdeck.Hex(0x48bb78)
	colorItemStroke = recdeck.Hex(0x276749)
	colorNoiseRing  = recdeck.Hex(0xfbbf24)
	colorNoiseText  = recdeck.Hex(0xf59e0b)
	colorStatus     = recdeck.Hex(0x10b981)
)

// Variant is the closed set of views.
type Variant uint8

const (
	VariantOriginal  Variant = iota // the unperturbed graph
	VariantStructure                // one interaction removed
	VariantFeature                  // every node annotated with noise
)

func (v Variant) String() string {
	switch v {
	case VariantOriginal:
		return "original"
	case VariantStructure:
		return "structure"
	case VariantFeature:
		return "feature"
	}
	return "unknown"
}

// Phase is the scene state.
type Phase uint8

const (
	PhaseBase      Phase = iota // only the original view
	PhaseShrinking              // original moving aside, views pending
	PhaseShown                  // all three views on screen
)

type node struct {
	id    string
	user  bool
	label string
	pos   recdeck.Vec2
}

type link struct{ source, target int }

var (
	graphNodes = []node{
		{"u1", true, "U1", recdeck.Vec2{X: -80, Y: -60}},
		{"u2", true, "U2", recdeck.Vec2{X: -80, Y: 0}},
		{"u3", true, "U3", recdeck.Vec2{X: -80, Y: 60}},
		{"i1", false, "I1", recdeck.Vec2{X: 80, Y: -60}},
		{"i2", false, "I2", recdeck.Vec2{X: 80, Y: 0}},
		{"i3", false, "I3", recdeck.Vec2{X: 80, Y: 60}},
	}
	graphLinks = []link{{0, 3}, {1, 3}, {1, 4}, {2, 5}}
)

// droppedLink is the interaction the structural view removes (u2 → i2).
const droppedLink = 2

// View describes one drawn copy of the graph.
type View struct {
	Variant Variant
	Node    *recdeck.Node
	Removed []int // indices of removed links
	Noisy   int   // nodes annotated with noise
}

// Options configures a Controller.
type Options struct {
	Width, Height float64
	Timing        config.ContrastiveConfig
	Captions      config.ContrastiveCaptions
	Logger        zerolog.Logger
}

// DefaultOptions returns options built from the default configuration.
func DefaultOptions() Options {
	cfg := config.DefaultConfig()
	return Options{
		Width:    900,
		Height:   360,
		Timing:   cfg.Contrastive,
		Captions: cfg.Captions.Contrastive,
		Logger:   zerolog.Nop(),
	}
}

// Controller owns the three views. Node is its root.
type Controller struct {
	Node *recdeck.Node

	opts  Options
	log   zerolog.Logger
	phase Phase

	base   View
	views  []View
	status *recdeck.Node

	tl recdeck.Timeline
}

// New draws the original view centered in the scene.
func New(opts Options) *Controller {
	c := &Controller{
		opts: opts,
		log:  opts.Logger.With().Str("scene", "contrastive").Logger(),
	}
	c.Node = recdeck.NewContainer("augmentation-viz")
	c.Node.OnUpdate = c.Update

	c.base = c.buildView(VariantOriginal)
	c.base.Node.SetPosition(opts.Width/2, opts.Height/2)
	c.Node.AddChild(c.base.Node)

	c.status = recdeck.NewText("augmentation-status", "", opts.Width/2, opts.Height-16, 13, colorStatus)
	c.status.Align = recdeck.TextAlignCenter
	c.status.Bold = true
	c.Node.AddChild(c.status)
	return c
}

func (c *Controller) title(v Variant) string {
	switch v {
	case VariantOriginal:
		return c.opts.Captions.Original
	case VariantStructure:
		return c.opts.Captions.Structure
	case VariantFeature:
		return c.opts.Captions.Feature
	}
	return ""
}

// buildView draws one copy of the graph around its own origin.
func (c *Controller) buildView(variant Variant) View {
	v := View{Variant: variant, Node: recdeck.NewContainer(variant.String() + "_view")}
	g := v.Node

	titleColor, titleSize := colorViewTitle, 13.0
	if variant == VariantOriginal {
		titleColor, titleSize = colorTitle, 14
	}
	for i, line := range strings.Split(c.title(variant), "\n") {
		t := recdeck.NewText("title", line, 0, -110+float64(i)*16, titleSize, titleColor)
		t.Align = recdeck.TextAlignCenter
		t.Bold = true
		g.AddChild(t)
	}

	for i, l := range graphLinks {
		src, dst := graphNodes[l.source].pos, graphNodes[l.target].pos
		if variant == VariantStructure && i == droppedLink {
			line := recdeck.NewLine("removed_link", src.X, src.Y, dst.X, dst.Y, colorRemoved.WithAlpha(0.5), 2)
			line.Dash = 4
			g.AddChild(line)

			mid := recdeck.Mid(src, dst)
			mark := recdeck.NewContainer("removed_mark")
			mark.SetPosition(mid.X, mid.Y)
			mark.AddChild(recdeck.NewCircle("removed_dot", 0, 0, 12, colorRemoved.WithAlpha(0.9)))
			mark.AddChild(recdeck.NewCross("removed_x", 10, recdeck.ColorWhite, 2.5))
			g.AddChild(mark)
			v.Removed = append(v.Removed, i)
			continue
		}
		g.AddChild(recdeck.NewLine("link", src.X, src.Y, dst.X, dst.Y, colorLink, 2))
	}

	for _, n := range graphNodes {
		ng := recdeck.NewContainer(n.id)
		ng.SetPosition(n.pos.X, n.pos.Y)
		if variant == VariantFeature {
			ring := recdeck.NewCircle("noise_ring", 0, 0, 24, recdeck.ColorNone)
			ring.Stroke = colorNoiseRing.WithAlpha(0.6)
			ring.StrokeWidth = 2
			ring.Dash = 3
			ng.AddChild(ring)
			label := recdeck.NewText("noise_label", c.opts.Captions.Noise, 0, -30, 9, colorNoiseText)
			label.Align = recdeck.TextAlignCenter
			label.Bold = true
			ng.AddChild(label)
			v.Noisy++
		}
		var shape *recdeck.Node
		if n.user {
			shape = recdeck.NewCircle("shape", 0, 0, 16, colorUserFill)
			shape.Stroke = colorUserStroke
		} else {
			shape = recdeck.NewRect("shape", 0, 0, 32, 32, colorItemFill)
			shape.Centered = true
			shape.Stroke = colorItemStroke
		}
		shape.StrokeWidth = 2
		ng.AddChild(shape)
		label := recdeck.NewText("label", n.label, 0, 0, 11, recdeck.ColorWhite)
		label.Align = recdeck.TextAlignCenter
		label.Bold = true
		ng.AddChild(label)
		g.AddChild(ng)
	}
	return v
}

// Update advances the transition.
func (c *Controller) Update(dt float32) {
	c.tl.Update(dt)
}

// ShowAugmentedViews moves the original view aside and, after a delay,
// fades in the structural and feature views. It does nothing once started.
func (c *Controller) ShowAugmentedViews() {
	if c.phase != PhaseBase {
		return
	}
	c.phase = PhaseShrinking
	t := c.opts.Timing
	w, h := c.opts.Width, c.opts.Height

	c.tl.Play(recdeck.Parallel{
		recdeck.TweenPosition(c.base.Node, w*0.2, h/2, secs(t.Shrink), ease.InOutQuad),
		recdeck.TweenScale(c.base.Node, t.BaseScale, t.BaseScale, secs(t.Shrink), ease.InOutQuad),
	})
	c.tl.After(t.ViewDelay, func() {
		c.addView(VariantStructure, w*0.5)
		c.addView(VariantFeature, w*0.8)
		c.status.Text = c.opts.Captions.Status
		c.phase = PhaseShown
		c.log.Debug().Msg("augmented views shown")
	})
}

func (c *Controller) addView(variant Variant, x float64) {
	v := c.buildView(variant)
	scale := c.opts.Timing.ViewScale
	v.Node.SetPosition(x, c.opts.Height/2)
	v.Node.SetScale(scale, scale)
	v.Node.Alpha = 0
	c.Node.AddChild(v.Node)
	c.views = append(c.views, v)
	c.tl.Play(recdeck.TweenAlpha(v.Node, 1, secs(c.opts.Timing.FadeIn), ease.Linear))
}

// Reset drops the augmented views and puts the original view back in the
// center at full size, even mid-transition.
func (c *Controller) Reset() {
	c.tl.Cancel()
	for _, v := range c.views {
		v.Node.Dispose()
	}
	c.views = nil
	c.base.Node.SetPosition(c.opts.Width/2, c.opts.Height/2)
	c.base.Node.SetScale(1, 1)
	c.status.Text = ""
	c.phase = PhaseBase
}

// SetCaptions swaps the copy. Titles of views already drawn are rebuilt on
// the next show.
func (c *Controller) SetCaptions(caps config.ContrastiveCaptions) {
	c.opts.Captions = caps
	if c.phase == PhaseShown {
		c.status.Text = caps.Status
	}
	if title := c.base.Node.FindChild("title"); title != nil {
		title.Text = caps.Original
	}
}

// Phase returns the scene state.
func (c *Controller) Phase() Phase { return c.phase }

// Base returns the original view.
func (c *Controller) Base() View { return c.base }

// Views returns the augmented views in the order they were added.
func (c *Controller) Views() []View { return append([]View(nil), c.views...) }

// Status returns the status caption.
func (c *Controller) Status() string { return c.status.Text }

// Idle reports whether the transition has finished.
func (c *Controller) Idle() bool { return c.tl.Idle() }

func secs(d time.Duration) float32 {
	return float32(d.Seconds())
}
