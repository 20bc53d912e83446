// Package deck assembles the slide deck: one scene holding a slide per
// controller, the buttons and slider wired to their public methods, slide
// navigation and the active-view signal on the event bus.
package deck

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/phanxgames/recdeck"
	"github.com/phanxgames/recdeck/contrastive"
	"github.com/phanxgames/recdeck/convergence"
	"github.com/phanxgames/recdeck/ecs"
	"github.com/phanxgames/recdeck/essence"
	"github.com/phanxgames/recdeck/graphpath"
	"github.com/phanxgames/recdeck/internal/config"
	"github.com/phanxgames/recdeck/internal/logging"
	"github.com/phanxgames/recdeck/scatter"
	"github.com/phanxgames/recdeck/sparsity"
	"github.com/phanxgames/recdeck/widget"
)

// Container ids announced on the bus when a slide becomes active.
const (
	ViewSparsity    = sparsity.DefaultView
	ViewGraph       = "graph-viz"
	ViewScatter     = "scatter-viz"
	ViewContrastive = "augmentation-viz"
	ViewEssence     = "alex-photos"
	ViewConvergence = "infonce-viz"
)

var (
	colorBackground = recdeck.Hex(0xf7fafc)
	colorTitle      = recdeck.Hex(0x2d3748)
	colorPager      = recdeck.Hex(0xa0aec0)
)

// Slide is one page of the deck.
type Slide struct {
	View string
	Node *recdeck.Node

	title *recdeck.Node
}

// Deck owns the scene and every controller drawn into it.
type Deck struct {
	Scene *recdeck.Scene
	Bus   *ecs.Bus

	Sparsity    *sparsity.Controller
	Graph       *graphpath.Controller
	Scatter     *scatter.Controller
	Contrastive *contrastive.Controller
	Essence     *essence.Controller
	Convergence *convergence.Controller
	Noise       *widget.Slider

	cfg     config.Config
	log     zerolog.Logger
	slides  []*Slide
	current int
	pager   *recdeck.Node
	buttons map[string]*widget.Button

	mu      sync.Mutex
	pending *config.Config
}

// New builds the deck from cfg and shows the first slide. Pass a nil bus to
// get a fresh one.
func New(cfg config.Config, bus *ecs.Bus, log zerolog.Logger) *Deck {
	start := time.Now()
	if bus == nil {
		bus = ecs.NewBus()
	}
	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	d := &Deck{
		Scene:   recdeck.NewScene(w, h),
		Bus:     bus,
		cfg:     cfg,
		log:     log,
		current: -1,
		buttons: map[string]*widget.Button{},
	}
	d.Scene.ClearColor = colorBackground
	d.Scene.SetLogger(log)
	d.Scene.SetEventSink(bus)
	d.Scene.SetUpdateFunc(d.update)
	d.Scene.OnKey(d.onKey)

	caps := cfg.Captions
	d.buildSparsity(caps)
	d.buildGraph(caps)
	d.buildScatter(caps)
	d.buildContrastive(caps)
	d.buildEssence(caps)
	d.buildConvergence(caps)

	d.pager = recdeck.NewText("pager", "", w-24, h-20, 12, colorPager)
	d.pager.Align = recdeck.TextAlignRight
	d.Scene.Root().AddChild(d.pager)

	bus.OnInteraction(func(e recdeck.InteractionEvent) {
		d.log.Trace().Str("node", e.NodeName).Uint8("type", uint8(e.Type)).
			Float64("x", e.GlobalX).Float64("y", e.GlobalY).Msg("interaction")
	})

	d.Go(0)
	d.log.Debug().Int("slides", len(d.slides)).Dur("took", logging.Since(start)).Msg("deck built")
	return d
}

func (d *Deck) addSlide(view string, content *recdeck.Node, x, y float64) *Slide {
	i := len(d.slides)
	s := &Slide{View: view, Node: recdeck.NewContainer(fmt.Sprintf("slide%d", i))}
	s.Node.Interactable = true
	s.Node.Visible = false

	s.title = recdeck.NewText("title", d.slideTitle(i), float64(d.cfg.Window.Width)/2, 36, 22, colorTitle)
	s.title.Align = recdeck.TextAlignCenter
	s.title.Bold = true
	s.Node.AddChild(s.title)

	content.SetPosition(x, y)
	s.Node.AddChild(content)

	d.slides = append(d.slides, s)
	d.Scene.Root().AddChild(s.Node)
	return s
}

func (d *Deck) slideTitle(i int) string {
	if i < len(d.cfg.Captions.Slides) {
		return d.cfg.Captions.Slides[i]
	}
	return ""
}

func (d *Deck) addButton(s *Slide, name, label string, x, y float64, fn func()) {
	b := widget.NewButton(name, label, x, y, 190, 34, fn)
	d.buttons[name] = b
	s.Node.AddChild(b.Node)
}

func (d *Deck) buildSparsity(caps config.Captions) {
	opts := sparsity.DefaultOptions()
	opts.Timing = d.cfg.Sparsity
	opts.Captions = caps.Sparsity
	opts.Logger = d.log
	d.Sparsity = sparsity.New(opts)
	d.Sparsity.Subscribe(d.Bus)
	d.addSlide(ViewSparsity, d.Sparsity.Node, (float64(d.cfg.Window.Width)-opts.Width)/2, 70)
}

func (d *Deck) buildGraph(caps config.Captions) {
	opts := graphpath.DefaultOptions()
	opts.Timing = d.cfg.Graph
	opts.Captions = caps.Graph
	opts.Logger = d.log
	d.Graph = graphpath.New(opts)

	left := (float64(d.cfg.Window.Width) - opts.Width) / 2
	s := d.addSlide(ViewGraph, d.Graph.Node, left, 70)
	cx := float64(d.cfg.Window.Width) / 2
	d.addButton(s, "augment", caps.Graph.Augment, cx-105, 500, d.Graph.AugmentStructure)
	d.addButton(s, "graph_reset", caps.Graph.Reset, cx+105, 500, d.Graph.Reset)
}

func (d *Deck) buildScatter(caps config.Captions) {
	opts := scatter.DefaultOptions()
	opts.Timing = d.cfg.Scatter
	opts.Captions = caps.Scatter
	opts.Logger = d.log
	d.Scatter = scatter.New(opts)

	left := (float64(d.cfg.Window.Width) - opts.Width) / 2
	s := d.addSlide(ViewScatter, d.Scatter.Node, left, 70)
	d.Noise = widget.NewSlider("noise", caps.Scatter.Noise, left+100, 500, opts.Width-200,
		0, 100, d.cfg.Scatter.Step, 0, d.Scatter.UpdateNoise)
	s.Node.AddChild(d.Noise.Node)
}

func (d *Deck) buildContrastive(caps config.Captions) {
	opts := contrastive.DefaultOptions()
	opts.Timing = d.cfg.Contrastive
	opts.Captions = caps.Contrastive
	opts.Logger = d.log
	d.Contrastive = contrastive.New(opts)

	s := d.addSlide(ViewContrastive, d.Contrastive.Node, (float64(d.cfg.Window.Width)-opts.Width)/2, 80)
	cx := float64(d.cfg.Window.Width) / 2
	d.addButton(s, "augment_views", caps.Contrastive.Show, cx-105, 500, d.Contrastive.ShowAugmentedViews)
	d.addButton(s, "views_reset", caps.Contrastive.Reset, cx+105, 500, d.Contrastive.Reset)
}

func (d *Deck) buildEssence(caps config.Captions) {
	opts := essence.DefaultOptions()
	opts.Timing = d.cfg.Essence
	opts.Captions = caps.Essence
	opts.Logger = d.log
	d.Essence = essence.New(opts)

	s := d.addSlide(ViewEssence, d.Essence.Node, (float64(d.cfg.Window.Width)-opts.Width)/2, 120)
	cx := float64(d.cfg.Window.Width) / 2
	d.addButton(s, "show_essence", caps.Essence.Show, cx-105, 420, d.Essence.ShowEssence)
	d.addButton(s, "essence_reset", caps.Essence.Reset, cx+105, 420, d.Essence.Reset)
}

func (d *Deck) buildConvergence(caps config.Captions) {
	opts := convergence.DefaultOptions()
	opts.Timing = d.cfg.Convergence
	opts.Captions = caps.Convergence
	opts.Logger = d.log
	d.Convergence = convergence.New(opts)
	d.addSlide(ViewConvergence, d.Convergence.Node, (float64(d.cfg.Window.Width)-opts.Width)/2, 80)

	// The loop starts the first time its slide is shown and never stops.
	d.Bus.OnViewChanged(func(v ecs.ViewChanged) {
		if v.View == ViewConvergence {
			d.Convergence.Start()
		}
	})
}

// Go shows slide i and announces it on the bus. Out-of-range indices are
// ignored.
func (d *Deck) Go(i int) {
	if i < 0 || i >= len(d.slides) || i == d.current {
		return
	}
	if d.current >= 0 {
		d.slides[d.current].Node.Visible = false
	}
	d.current = i
	s := d.slides[i]
	s.Node.Visible = true
	d.pager.Text = fmt.Sprintf("%d / %d", i+1, len(d.slides))
	d.Bus.PublishViewChanged(ecs.ViewChanged{Slide: i, View: s.View})
	d.log.Debug().Int("slide", i).Str("view", s.View).Msg("active view changed")
}

// Next advances one slide.
func (d *Deck) Next() { d.Go(d.current + 1) }

// Prev goes back one slide.
func (d *Deck) Prev() { d.Go(d.current - 1) }

// Current returns the index of the visible slide.
func (d *Deck) Current() int { return d.current }

// Slides returns the deck's slides in order.
func (d *Deck) Slides() []*Slide { return append([]*Slide(nil), d.slides...) }

// Button returns a command button by name, or nil.
func (d *Deck) Button(name string) *widget.Button { return d.buttons[name] }

func (d *Deck) onKey(key string) {
	switch key {
	case "next":
		d.Next()
	case "prev":
		d.Prev()
	case "snapshot":
		d.Scene.Snapshot(fmt.Sprintf("slide%d", d.current))
	default:
		d.log.Debug().Str("key", key).Msg("unhandled key")
	}
}

// ApplyConfig queues a reloaded config. It is safe to call from any
// goroutine; the captions are applied on the next frame.
func (d *Deck) ApplyConfig(cfg config.Config) {
	d.mu.Lock()
	d.pending = &cfg
	d.mu.Unlock()
}

// Watch re-applies captions whenever the config file at path changes. It
// blocks until ctx is cancelled.
func (d *Deck) Watch(ctx context.Context, path string) error {
	return config.Watch(ctx, path, d.ApplyConfig, func(err error) {
		d.log.Warn().Err(err).Str("path", path).Msg("config reload failed, keeping previous")
	})
}

func (d *Deck) update(float32) error {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()
	if pending != nil {
		d.applyCaptions(pending.Captions)
	}
	d.Bus.ProcessEvents()
	return nil
}

// applyCaptions re-labels everything on screen. Timings and scenario data
// only take effect on restart.
func (d *Deck) applyCaptions(caps config.Captions) {
	d.cfg.Captions = caps
	for i, s := range d.slides {
		s.title.Text = d.slideTitle(i)
	}
	d.Sparsity.SetCaptions(caps.Sparsity)
	d.Graph.SetCaptions(caps.Graph)
	d.Scatter.SetCaptions(caps.Scatter)
	d.Contrastive.SetCaptions(caps.Contrastive)
	d.Essence.SetCaptions(caps.Essence)
	d.Convergence.SetCaptions(caps.Convergence)
	d.Noise.SetCaption(caps.Scatter.Noise)

	labels := map[string]string{
		"augment":       caps.Graph.Augment,
		"graph_reset":   caps.Graph.Reset,
		"augment_views": caps.Contrastive.Show,
		"views_reset":   caps.Contrastive.Reset,
		"show_essence":  caps.Essence.Show,
		"essence_reset": caps.Essence.Reset,
	}
	for name, label := range labels {
		if b := d.buttons[name]; b != nil {
			b.SetLabel(label)
		}
	}
	d.log.Info().Msg("captions reloaded")
}
