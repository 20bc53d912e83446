// Package essence draws four photos of the same person under different
// conditions and, on demand, marks each as the same identity and links
// them.
package essence

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/recdeck"
	"github.com/phanxgames/recdeck/internal/config"
)

var (
	colorOriginal = recdeck.Hex(0x667eea)
	colorPhoto    = recdeck.Hex(0x94a3b8)
	colorFrame    = recdeck.Hex(0x2d3748)
	colorFace     = recdeck.Hex(0x1e293b)
	colorEssence  = recdeck.Hex(0x10b981)
	colorLabel    = recdeck.Hex(0x2d3748)
)

const (
	photoWidth  = 100
	photoHeight = 130
	photoGap    = 30
	photoTop    = 20
	faceY       = 75
	lineY       = 85
	lineAlpha   = 0.7
)

// Variation is the closed set of photo conditions.
type Variation uint8

const (
	VariationOriginal Variation = iota
	VariationMustache
	VariationDark
	VariationGlasses
)

func (v Variation) String() string {
	switch v {
	case VariationOriginal:
		return "original"
	case VariationMustache:
		return "mustache"
	case VariationDark:
		return "dark"
	case VariationGlasses:
		return "glasses"
	}
	return "unknown"
}

var variations = []Variation{VariationOriginal, VariationMustache, VariationDark, VariationGlasses}

// Phase is the scene state.
type Phase uint8

const (
	PhaseHidden Phase = iota
	PhaseShown
)

// Options configures a Controller.
type Options struct {
	Width    float64
	Timing   config.EssenceConfig
	Captions config.EssenceCaptions
	Logger   zerolog.Logger
}

// DefaultOptions returns options built from the default configuration.
func DefaultOptions() Options {
	cfg := config.DefaultConfig()
	return Options{
		Width:    620,
		Timing:   cfg.Essence,
		Captions: cfg.Captions.Essence,
		Logger:   zerolog.Nop(),
	}
}

// Controller owns the photo cards. Node is its root.
type Controller struct {
	Node *recdeck.Node

	opts   Options
	log    zerolog.Logger
	phase  Phase
	startX float64

	cards   []*recdeck.Node
	markers []*recdeck.Node
	labels  [][]*recdeck.Node
	lines   *recdeck.Node
	status  *recdeck.Node

	tl recdeck.Timeline
}

// New draws the four cards with their markers hidden.
func New(opts Options) *Controller {
	c := &Controller{
		opts: opts,
		log:  opts.Logger.With().Str("scene", "essence").Logger(),
	}
	c.Node = recdeck.NewContainer("alex-photos")
	c.Node.OnUpdate = c.Update

	total := float64(len(variations))*photoWidth + float64(len(variations)-1)*photoGap
	c.startX = (opts.Width - total) / 2

	for i, v := range variations {
		c.buildCard(i, v)
	}

	c.lines = recdeck.NewContainer("connections")
	c.Node.AddChild(c.lines)

	c.status = recdeck.NewText("essence-status", "", opts.Width/2, 215, 12, colorEssence)
	c.status.Align = recdeck.TextAlignCenter
	c.Node.AddChild(c.status)
	return c
}

func (c *Controller) cardX(i int) float64 {
	return c.startX + float64(i)*(photoWidth+photoGap)
}

func (c *Controller) buildCard(i int, v Variation) {
	x := c.cardX(i)
	card := recdeck.NewContainer(v.String())
	card.SetPosition(x, photoTop)

	frame := recdeck.NewRect("frame", 0, 0, photoWidth, photoHeight, colorPhoto.WithAlpha(0.6))
	if v == VariationOriginal {
		frame.Fill = colorOriginal.WithAlpha(0.9)
	}
	frame.Stroke = colorFrame
	frame.StrokeWidth = 2
	card.AddChild(frame)

	cx, cy := photoWidth/2.0, float64(faceY-photoTop)
	faceAlpha := 1.0
	switch v {
	case VariationOriginal:
	case VariationMustache:
		m := recdeck.NewLine("mustache", cx-20, cy+12, cx+20, cy+12, colorFace, 3)
		card.AddChild(m)
	case VariationDark:
		card.AddChild(recdeck.NewRect("shade", 0, 0, photoWidth, photoHeight, recdeck.Hex(0x000000).WithAlpha(0.6)))
		card.AddChild(recdeck.NewCircle("spotlight", cx, cy, 35, recdeck.ColorWhite.WithAlpha(0.15)))
		faceAlpha = 0.7
	case VariationGlasses:
		gy := cy - 7
		for _, dx := range []float64{-18, 18} {
			lens := recdeck.NewCircle("lens", cx+dx, gy, 13, colorFace.WithAlpha(0.1))
			lens.Stroke = colorFace
			lens.StrokeWidth = 3
			card.AddChild(lens)
		}
		card.AddChild(recdeck.NewLine("bridge", cx-4, gy, cx+4, gy, colorFace, 2))
	}
	for _, dx := range []float64{-15, 15} {
		eye := recdeck.NewCircle("eye", cx+dx, cy, 3, colorFace)
		eye.Alpha = faceAlpha
		card.AddChild(eye)
	}
	smile := recdeck.NewLine("smile", cx-15, cy+22, cx+15, cy+22, colorFace, 2)
	smile.Alpha = faceAlpha
	card.AddChild(smile)

	marker := recdeck.NewContainer("essence-marker")
	marker.SetPosition(photoWidth-10, 10)
	marker.Alpha = 0
	marker.AddChild(recdeck.NewCircle("marker_dot", 0, 0, 8, colorEssence))
	marker.AddChild(recdeck.NewCheck("marker_check", 9, recdeck.ColorWhite, 2))
	card.AddChild(marker)

	var labels []*recdeck.Node
	caption := ""
	if i < len(c.opts.Captions.Cards) {
		caption = c.opts.Captions.Cards[i]
	}
	for j, line := range strings.Split(caption, "\n") {
		t := recdeck.NewText("card_label", line, photoWidth/2, photoHeight+15+float64(j)*14, 11, colorLabel)
		t.Align = recdeck.TextAlignCenter
		t.Bold = v == VariationOriginal
		card.AddChild(t)
		labels = append(labels, t)
	}

	c.cards = append(c.cards, card)
	c.markers = append(c.markers, marker)
	c.labels = append(c.labels, labels)
	c.Node.AddChild(card)
}

// Update advances the fades.
func (c *Controller) Update(dt float32) {
	c.tl.Update(dt)
}

// ShowEssence fades in the identity markers, links neighbouring cards with
// dashed lines and writes the status caption. It does nothing when the
// essence is already shown.
func (c *Controller) ShowEssence() {
	if c.phase == PhaseShown {
		return
	}
	c.phase = PhaseShown
	c.tl.Cancel()

	for _, m := range c.markers {
		c.tl.Play(recdeck.TweenAlpha(m, 1, secs(c.opts.Timing.MarkerFade), ease.Linear))
	}
	for i := 0; i+1 < len(c.cards); i++ {
		x1 := c.cardX(i) + photoWidth
		x2 := c.cardX(i + 1)
		line := recdeck.NewLine("essence-connection", x1, lineY, x2, lineY, colorEssence, 3)
		line.Dash = 5
		line.Alpha = 0
		c.lines.AddChild(line)
		c.tl.Play(recdeck.TweenAlpha(line, lineAlpha, secs(c.opts.Timing.LineFade), ease.Linear))
	}
	c.status.Text = c.opts.Captions.Status
}

// Reset hides the markers, removes the connections and clears the status.
func (c *Controller) Reset() {
	c.phase = PhaseHidden
	c.tl.Cancel()
	for _, m := range c.markers {
		c.tl.Play(recdeck.TweenAlpha(m, 0, secs(c.opts.Timing.HideFade), ease.Linear))
	}
	c.lines.RemoveChildren()
	c.status.Text = ""
}

// SetCaptions swaps the copy.
func (c *Controller) SetCaptions(caps config.EssenceCaptions) {
	c.opts.Captions = caps
	for i, labels := range c.labels {
		if i >= len(caps.Cards) {
			break
		}
		lines := strings.Split(caps.Cards[i], "\n")
		for j, l := range labels {
			l.Text = ""
			if j < len(lines) {
				l.Text = lines[j]
			}
		}
	}
	if c.phase == PhaseShown {
		c.status.Text = caps.Status
	}
}

// Phase returns the scene state.
func (c *Controller) Phase() Phase { return c.phase }

// Markers returns the identity markers, one per card.
func (c *Controller) Markers() []*recdeck.Node { return append([]*recdeck.Node(nil), c.markers...) }

// Connections returns the connection lines currently drawn.
func (c *Controller) Connections() []*recdeck.Node {
	return append([]*recdeck.Node(nil), c.lines.Children()...)
}

// Status returns the status caption.
func (c *Controller) Status() string { return c.status.Text }

// Idle reports whether every fade has finished.
func (c *Controller) Idle() bool { return c.tl.Idle() }

func secs(d time.Duration) float32 {
	return float32(d.Seconds())
}
