// Package convergence loops a contrastive training toy: positives slide
// toward their anchors and negatives get pushed away over a fixed number
// of discrete iterations, then the layout pauses, snaps back and runs
// again.
package convergence

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/recdeck"
	"github.com/phanxgames/recdeck/internal/config"
)

var (
	colorAnchor    = recdeck.Hex(0x667eea)
	colorPositive  = recdeck.Hex(0x10b981)
	colorNegative  = recdeck.Hex(0xef4444)
	colorStroke    = recdeck.Hex(0x2d3748)
	colorPair      = recdeck.Hex(0xa0aec0)
	colorConverged = recdeck.Hex(0x10b981)
	colorCounter   = recdeck.Hex(0x4a5568)
)

const nodeRadius = 18

// State is the loop state.
type State uint8

const (
	StateIdle      State = iota // not started
	StateRunning                // stepping through iterations
	StatePaused                 // holding the converged layout
	StateResetting              // back at the initial layout, settling
	StateStopped                // torn down; terminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateResetting:
		return "resetting"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Role is the closed set of node roles.
type Role uint8

const (
	RoleAnchor Role = iota
	RolePositive
	RoleNegative
)

// Node is one point of the layout. Initial and Target are fixed.
type Node struct {
	Label   string
	Role    Role
	Initial recdeck.Vec2
	Target  recdeck.Vec2
	Pair    int // index of the anchor of a positive, -1 otherwise
}

// Progress returns the eased interpolation factor for an iteration:
// cubic ease-in-out of iteration/total. It is 0 at 0 and 1 at total.
func Progress(iteration, total int) float64 {
	if total <= 0 || iteration >= total {
		return 1
	}
	if iteration <= 0 {
		return 0
	}
	return float64(ease.InOutCubic(float32(iteration), 0, 1, float32(total)))
}

// PositionAt returns where n is drawn at the given iteration.
func PositionAt(n Node, iteration, total int) recdeck.Vec2 {
	return recdeck.Lerp(n.Initial, n.Target, Progress(iteration, total))
}

// nodesFromConfig assigns roles: anchors are flagged, a positive carries
// its anchor's label as a prefix, everything else is a negative.
func nodesFromConfig(cfg []config.ConvergenceNode) []Node {
	out := make([]Node, len(cfg))
	for i, n := range cfg {
		out[i] = Node{
			Label:   n.Label,
			Role:    RoleNegative,
			Initial: recdeck.Vec2{X: n.Initial.X, Y: n.Initial.Y},
			Target:  recdeck.Vec2{X: n.Target.X, Y: n.Target.Y},
			Pair:    -1,
		}
		if n.Anchor {
			out[i].Role = RoleAnchor
		}
	}
	for i := range out {
		if out[i].Role == RoleAnchor {
			continue
		}
		for j, a := range out {
			if a.Role == RoleAnchor && out[i].Label != a.Label && strings.HasPrefix(out[i].Label, a.Label) {
				out[i].Role = RolePositive
				out[i].Pair = j
				break
			}
		}
	}
	return out
}

// Options configures a Controller.
type Options struct {
	Width, Height float64
	Timing        config.ConvergenceConfig
	Captions      config.ConvergenceCaptions
	Logger        zerolog.Logger
}

// DefaultOptions returns options built from the default configuration.
func DefaultOptions() Options {
	cfg := config.DefaultConfig()
	return Options{
		Width:    800,
		Height:   420,
		Timing:   cfg.Convergence,
		Captions: cfg.Captions.Convergence,
		Logger:   zerolog.Nop(),
	}
}

// Controller owns the playground. Node is its root.
type Controller struct {
	Node *recdeck.Node

	opts      Options
	log       zerolog.Logger
	nodes     []Node
	state     State
	iteration int
	converged bool
	loops     int

	dots      []*recdeck.Node
	pairs     []*recdeck.Node // one line per positive, keyed by node index
	counter   *recdeck.Node
	caption   *recdeck.Node
	pairLayer *recdeck.Node

	tl recdeck.Timeline
}

// New draws the layout at iteration 0. The loop does not run until Start.
func New(opts Options) *Controller {
	c := &Controller{
		opts:  opts,
		log:   opts.Logger.With().Str("scene", "convergence").Logger(),
		nodes: nodesFromConfig(opts.Timing.Nodes),
	}
	c.Node = recdeck.NewContainer("infonce-viz")
	c.Node.OnUpdate = c.Update

	c.pairLayer = recdeck.NewContainer("pairs")
	c.Node.AddChild(c.pairLayer)
	c.pairs = make([]*recdeck.Node, len(c.nodes))
	for i, n := range c.nodes {
		if n.Role != RolePositive {
			continue
		}
		line := recdeck.NewLine("pair_"+n.Label, 0, 0, 0, 0, colorPair, 2)
		line.Dash = 4
		c.pairs[i] = line
		c.pairLayer.AddChild(line)
	}

	for _, n := range c.nodes {
		g := recdeck.NewContainer(n.Label)
		dot := recdeck.NewCircle("dot", 0, 0, nodeRadius, roleColor(n.Role))
		dot.Stroke = colorStroke
		dot.StrokeWidth = 2
		g.AddChild(dot)
		label := recdeck.NewText("label", n.Label, 0, 0, 12, recdeck.ColorWhite)
		label.Align = recdeck.TextAlignCenter
		label.Bold = true
		g.AddChild(label)
		c.dots = append(c.dots, g)
		c.Node.AddChild(g)
	}

	c.counter = recdeck.NewText("counter", "", 16, 20, 13, colorCounter)
	c.counter.Bold = true
	c.caption = recdeck.NewText("converged", opts.Captions.Converged, opts.Width/2, opts.Height-16, 13, colorConverged)
	c.caption.Align = recdeck.TextAlignCenter
	c.caption.Bold = true
	c.caption.Alpha = 0
	c.Node.AddChild(c.counter)
	c.Node.AddChild(c.caption)

	c.apply()
	return c
}

func roleColor(r Role) recdeck.Color {
	switch r {
	case RoleAnchor:
		return colorAnchor
	case RolePositive:
		return colorPositive
	case RoleNegative:
		return colorNegative
	}
	return colorStroke
}

// Update advances the loop.
func (c *Controller) Update(dt float32) {
	c.tl.Update(dt)
}

// Start begins the endless loop. It only acts from Idle.
func (c *Controller) Start() {
	if c.state != StateIdle {
		return
	}
	c.state = StateRunning
	c.tl.After(c.opts.Timing.StepDelay, c.step)
	c.log.Debug().Int("max", c.opts.Timing.MaxIterations).Msg("convergence loop started")
}

func (c *Controller) step() {
	c.iteration++
	c.apply()
	if c.iteration < c.opts.Timing.MaxIterations {
		c.tl.After(c.opts.Timing.StepDelay, c.step)
		return
	}
	c.state = StatePaused
	c.tl.After(c.opts.Timing.Pause, c.rewind)
}

func (c *Controller) rewind() {
	c.state = StateResetting
	c.iteration = 0
	c.loops++
	c.apply()
	c.tl.After(c.opts.Timing.Settle, func() {
		c.state = StateRunning
		c.tl.After(c.opts.Timing.StepDelay, c.step)
	})
}

// Stop ends the loop for good. The layout stays where it is.
func (c *Controller) Stop() {
	c.tl.Cancel()
	c.state = StateStopped
}

// Reset cancels any pending step and returns the layout to iteration 0.
// A stopped controller stays stopped; any other returns to Idle.
func (c *Controller) Reset() {
	c.tl.Cancel()
	c.iteration = 0
	c.apply()
	if c.state != StateStopped {
		c.state = StateIdle
	}
}

// apply moves every node to the position of the current iteration and
// refreshes the counter and the converged look.
func (c *Controller) apply() {
	total := c.opts.Timing.MaxIterations
	for i, n := range c.nodes {
		p := PositionAt(n, c.iteration, total)
		c.dots[i].SetPosition(p.X, p.Y)
	}
	for i, n := range c.nodes {
		line := c.pairs[i]
		if line == nil {
			continue
		}
		a := c.dots[n.Pair].Position()
		b := c.dots[i].Position()
		line.SetPosition(a.X, a.Y)
		line.LineEnd = recdeck.Vec2{X: b.X - a.X, Y: b.Y - a.Y}
	}

	c.counter.Text = fmt.Sprintf("%s %d / %d", c.opts.Captions.Iteration, c.iteration, total)

	converged := Progress(c.iteration, total) > c.opts.Timing.Threshold
	if converged != c.converged {
		c.converged = converged
		for i, n := range c.nodes {
			if n.Role == RolePositive {
				c.dots[i].FindChild("dot").SetFlag(recdeck.FlagHighlighted, converged)
			}
		}
	}
	for _, line := range c.pairs {
		if line == nil {
			continue
		}
		line.Stroke = colorPair
		if converged {
			line.Stroke = colorConverged
		}
	}
	if converged {
		c.caption.SetAlpha(1)
	} else {
		c.caption.SetAlpha(0)
	}
}

// SetCaptions swaps the copy.
func (c *Controller) SetCaptions(caps config.ConvergenceCaptions) {
	c.opts.Captions = caps
	c.caption.Text = caps.Converged
	c.apply()
}

// State returns the loop state.
func (c *Controller) State() State { return c.state }

// Iteration returns the current iteration.
func (c *Controller) Iteration() int { return c.iteration }

// Loops returns how many times the layout has been rewound.
func (c *Controller) Loops() int { return c.loops }

// Converged reports whether the converged look is on.
func (c *Controller) Converged() bool { return c.converged }

// Counter returns the iteration counter text.
func (c *Controller) Counter() string { return c.counter.Text }

// Nodes returns a copy of the layout nodes.
func (c *Controller) Nodes() []Node { return append([]Node(nil), c.nodes...) }

// Positions returns where every node is drawn, in node order.
func (c *Controller) Positions() []recdeck.Vec2 {
	out := make([]recdeck.Vec2, len(c.dots))
	for i, d := range c.dots {
		out[i] = d.Position()
	}
	return out
}
