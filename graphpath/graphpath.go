// Package graphpath shows how collaborative filtering reaches a
// recommendation through a multi-hop path, and how removing one edge during
// structure augmentation breaks it.
//
// Hovering "Usuario 1" reveals the path user1 → itemB → user2 → itemC
// segment by segment. AugmentStructure flashes and removes the critical
// edge user2 → itemC; hovering again then shows only the connected prefix
// and a broken marker on the missing hop.
package graphpath

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/recdeck"
	"github.com/phanxgames/recdeck/internal/config"
)

// Palette.
var (
	colorLink        = recdeck.Hex(0xa0aec0)
	colorBroken      = recdeck.Hex(0xef4444)
	colorPath        = recdeck.Hex(0x10b981)
	colorUserFill    = recdeck.Hex(0x4299e1)
	colorUserStroke  = recdeck.Hex(0x2c5282)
	colorItemFill    = recdeck.Hex(0x48bb78)
	colorItemStroke  = recdeck.Hex(0x276749)
	colorLabel       = recdeck.Hex(0x2d3748)
	colorInstruction = recdeck.Hex(0x667eea)
)

const (
	userRadius = 20
	itemSize   = 50

	dimNodeAlpha = 0.3
	dimLinkAlpha = 0.2
	pathAlpha    = 0.8
	removedAlpha = 0.3
)

// Phase is the structure augmentation state.
type Phase uint8

const (
	PhaseIntact     Phase = iota // every edge present
	PhaseAugmenting              // critical edge flashing out
	PhaseAugmented               // critical edge removed
)

func (p Phase) String() string {
	switch p {
	case PhaseIntact:
		return "intact"
	case PhaseAugmenting:
		return "augmenting"
	case PhaseAugmented:
		return "augmented"
	}
	return "unknown"
}

// HoverState tracks the pointer over the trigger node.
type HoverState uint8

const (
	HoverOff HoverState = iota
	HoverOn
)

// Caption is the instruction line state.
type Caption uint8

const (
	CaptionIdle   Caption = iota // hover hint
	CaptionPath                  // full path explanation
	CaptionBroken                // broken path explanation
	CaptionLost                  // connection lost, hover again
)

// Options configures a Controller.
type Options struct {
	Width, Height float64
	Timing        config.GraphConfig
	Captions      config.GraphCaptions
	Logger        zerolog.Logger
}

// DefaultOptions returns options built from the default configuration.
func DefaultOptions() Options {
	cfg := config.DefaultConfig()
	return Options{
		Width:    560,
		Height:   380,
		Timing:   cfg.Graph,
		Captions: cfg.Captions.Graph,
		Logger:   zerolog.Nop(),
	}
}

// Controller owns the graph scene. Node is its root; add it to a scene and
// the controller advances itself through the node's OnUpdate callback.
type Controller struct {
	Node *recdeck.Node

	opts  Options
	log   zerolog.Logger
	graph *graph

	path    []string
	trigger string
	target  string

	phase   Phase
	hover   HoverState
	caption Caption

	pathLayer   *recdeck.Node
	linkLayer   *recdeck.Node
	nodeLayer   *recdeck.Node
	labelLayer  *recdeck.Node
	instruction *recdeck.Node

	links  map[string]*recdeck.Node // edge id → line
	groups map[string]*recdeck.Node // node id → container
	shapes map[string]*recdeck.Node // node id → circle or rect

	segments    []Segment
	marker      *recdeck.Node
	targetLabel *recdeck.Node

	pathTL    recdeck.Timeline
	augmentTL recdeck.Timeline
	captionTL recdeck.Timeline
}

// New builds the scenario graph and renders it.
func New(opts Options) *Controller {
	c := &Controller{
		opts:    opts,
		log:     opts.Logger.With().Str("scene", "graphpath").Logger(),
		graph:   newGraph(scenarioNodes(), scenarioEdges()),
		path:    recommendationPath,
		trigger: User1,
		target:  ItemC,
		links:   map[string]*recdeck.Node{},
		groups:  map[string]*recdeck.Node{},
		shapes:  map[string]*recdeck.Node{},
	}

	c.Node = recdeck.NewContainer("graph-viz")
	c.Node.Interactable = true
	c.Node.OnUpdate = c.Update

	c.pathLayer = recdeck.NewContainer("paths")
	c.linkLayer = recdeck.NewContainer("links")
	c.nodeLayer = recdeck.NewContainer("nodes")
	c.nodeLayer.Interactable = true
	c.labelLayer = recdeck.NewContainer("labels")
	c.Node.AddChild(c.pathLayer)
	c.Node.AddChild(c.linkLayer)
	c.Node.AddChild(c.nodeLayer)
	c.Node.AddChild(c.labelLayer)

	c.instruction = recdeck.NewText("instruction", opts.Captions.Idle, opts.Width/2, 20, 13, colorInstruction)
	c.instruction.Align = recdeck.TextAlignCenter
	c.instruction.Bold = true
	c.labelLayer.AddChild(c.instruction)

	for _, e := range c.graph.edges {
		line := recdeck.NewLine(e.ID, 0, 0, 0, 0, colorLink, 2)
		c.links[e.ID] = line
		c.linkLayer.AddChild(line)
	}
	for _, n := range c.graph.nodes {
		c.buildNode(n)
	}

	c.Render()
	return c
}

func (c *Controller) buildNode(n Node) {
	g := recdeck.NewContainer(n.ID)
	g.SetPosition(n.Pos.X, n.Pos.Y)

	var shape *recdeck.Node
	switch n.Kind {
	case KindUser:
		shape = recdeck.NewCircle(n.ID+"_shape", 0, 0, userRadius, colorUserFill)
	case KindItem:
		shape = recdeck.NewRect(n.ID+"_shape", 0, 0, itemSize, itemSize, colorItemFill)
		shape.Centered = true
	}
	g.AddChild(shape)

	lines := strings.Split(n.Label, "\n")
	for i, line := range lines {
		y := 35 + float64(i)*14
		if n.Pos.Y > c.opts.Timing.LabelFlipY {
			y = -35 - float64(len(lines)-1-i)*14
		}
		t := recdeck.NewText(n.ID+"_label", line, 0, y, 11, colorLabel)
		t.Align = recdeck.TextAlignCenter
		t.Bold = i == 0
		g.AddChild(t)
	}

	if n.ID == c.trigger {
		g.Interactable = true
		shape.Interactable = true
		shape.OnPointerEnter = func(recdeck.PointerContext) { c.HoverEnter() }
		shape.OnPointerLeave = func(recdeck.PointerContext) { c.HoverLeave() }
	}

	c.groups[n.ID] = g
	c.shapes[n.ID] = shape
	c.nodeLayer.AddChild(g)
}

// Update advances every animation owned by the controller.
func (c *Controller) Update(dt float32) {
	c.augmentTL.Update(dt)
	c.pathTL.Update(dt)
	c.captionTL.Update(dt)
}

// Render applies the model to the scene: edge geometry and style from the
// endpoint positions and the removed flag, node shape style by kind.
// Opacity and highlight belong to the hover state and are left alone.
// Render is idempotent.
func (c *Controller) Render() {
	for _, e := range c.graph.edges {
		line := c.links[e.ID]
		src, ok1 := c.graph.node(e.Source)
		dst, ok2 := c.graph.node(e.Target)
		if !ok1 || !ok2 {
			line.Visible = false
			c.log.Debug().Str("edge", e.ID).Msg("endpoint missing, edge not drawn")
			continue
		}
		line.Visible = true
		line.SetPosition(src.Pos.X, src.Pos.Y)
		line.LineEnd = recdeck.Vec2{X: dst.Pos.X - src.Pos.X, Y: dst.Pos.Y - src.Pos.Y}
		if e.Removed {
			line.Stroke = colorBroken.WithAlpha(removedAlpha)
			line.StrokeWidth = 3
			line.Dash = 5
		} else {
			line.Stroke = colorLink
			line.StrokeWidth = 2
			line.Dash = 0
		}
	}
	for _, n := range c.graph.nodes {
		shape := c.shapes[n.ID]
		c.groups[n.ID].SetPosition(n.Pos.X, n.Pos.Y)
		if shape.HasFlag(recdeck.FlagPulse) {
			continue
		}
		shape.StrokeWidth = 2
		switch n.Kind {
		case KindUser:
			shape.Fill, shape.Stroke = colorUserFill, colorUserStroke
		case KindItem:
			shape.Fill, shape.Stroke = colorItemFill, colorItemStroke
		}
	}
}

// HoverEnter is the pointer entering the trigger node.
func (c *Controller) HoverEnter() {
	c.hover = HoverOn
	c.ShowRecommendationPath()
}

// HoverLeave is the pointer leaving the trigger node.
func (c *Controller) HoverLeave() {
	c.hover = HoverOff
	c.HideRecommendationPath()
}

// ShowRecommendationPath reveals the path segment by segment and marks the
// terminal node as the recommendation target. Once the critical edge has
// been removed it reveals only the connected prefix and, after a delay,
// a broken marker on the missing hop.
func (c *Controller) ShowRecommendationPath() {
	c.clearPath()

	if crit := c.graph.critical(); crit != nil && crit.Removed {
		c.showBrokenPath()
		return
	}

	c.dim(c.path)
	c.revealSegments(c.path)
	c.highlight(c.path)

	target, ok := c.graph.node(c.target)
	if !ok {
		c.log.Debug().Str("node", c.target).Msg("target missing, no marker")
	} else {
		c.pathTL.After(c.opts.Timing.TargetDelay, func() {
			shape := c.shapes[c.target]
			shape.SetFlag(recdeck.FlagPulse, true)
			shape.Stroke = colorPath
			shape.StrokeWidth = 4

			label := recdeck.NewText("target_label", c.opts.Captions.Target, target.Pos.X+65, target.Pos.Y, 13, colorPath)
			label.Bold = true
			label.Alpha = 0
			c.pathLayer.AddChild(label)
			c.targetLabel = label
			c.pathTL.Play(recdeck.TweenAlpha(label, 1, secs(c.opts.Timing.RevealDuration), ease.Linear))
		})
	}
	c.setCaption(CaptionPath)
}

func (c *Controller) showBrokenPath() {
	prefix, hop, broken := c.graph.connectedPrefix(c.path)
	if !broken {
		// The critical edge is off this path; treat the last hop as lost.
		prefix = c.path[:len(c.path)-1]
		hop = Segment{From: c.path[len(c.path)-2], To: c.path[len(c.path)-1]}
	}

	c.dim(prefix)
	c.revealSegments(prefix)
	c.highlight(prefix)

	c.pathTL.After(c.opts.Timing.BrokenDelay, func() { c.drawBrokenHop(hop) })
	c.setCaption(CaptionBroken)
}

func (c *Controller) drawBrokenHop(hop Segment) {
	from, ok1 := c.graph.node(hop.From)
	to, ok2 := c.graph.node(hop.To)
	if !ok1 || !ok2 {
		c.log.Debug().Str("from", hop.From).Str("to", hop.To).Msg("broken hop endpoint missing")
		return
	}
	reveal := secs(c.opts.Timing.RevealDuration)

	line := recdeck.NewLine("broken_link", from.Pos.X, from.Pos.Y, to.Pos.X, to.Pos.Y, colorBroken.WithAlpha(0), 5)
	line.Dash = 5
	c.pathLayer.AddChild(line)
	c.pathTL.Play(recdeck.TweenStrokeColor(line, colorBroken.WithAlpha(pathAlpha), reveal, ease.Linear))

	mid := recdeck.Mid(from.Pos, to.Pos)
	marker := recdeck.NewContainer("broken_marker")
	marker.SetPosition(mid.X+20, mid.Y)
	marker.Alpha = 0
	marker.AddChild(recdeck.NewCircle("broken_dot", 0, 0, 18, colorBroken.WithAlpha(0.9)))
	marker.AddChild(recdeck.NewCross("broken_x", 14, recdeck.ColorWhite, 3))
	c.pathLayer.AddChild(marker)
	c.marker = marker
	c.pathTL.Play(recdeck.TweenAlpha(marker, 1, reveal, ease.Linear))
}

// revealSegments draws one growing line per hop of ids, staggered by the
// segment delay. Hops without an edge are skipped.
func (c *Controller) revealSegments(ids []string) {
	reveal := secs(c.opts.Timing.RevealDuration)
	idx := 0
	for i := 0; i+1 < len(ids); i++ {
		src, ok1 := c.graph.node(ids[i])
		dst, ok2 := c.graph.node(ids[i+1])
		e := c.graph.edgeBetween(ids[i], ids[i+1])
		if !ok1 || !ok2 || e == nil {
			c.log.Debug().Str("from", ids[i]).Str("to", ids[i+1]).Msg("path edge missing, segment skipped")
			continue
		}
		line := recdeck.NewLine("path_segment", src.Pos.X, src.Pos.Y, src.Pos.X, src.Pos.Y, colorPath.WithAlpha(0), 6)
		c.pathLayer.AddChild(line)
		c.segments = append(c.segments, Segment{From: ids[i], To: ids[i+1]})

		end := recdeck.Vec2{X: dst.Pos.X - src.Pos.X, Y: dst.Pos.Y - src.Pos.Y}
		c.pathTL.After(time.Duration(idx)*c.opts.Timing.SegmentDelay, func() {
			c.pathTL.Play(recdeck.Parallel{
				recdeck.TweenLineEnd(line, end, reveal, ease.OutQuad),
				recdeck.TweenStrokeColor(line, colorPath.WithAlpha(pathAlpha), reveal, ease.Linear),
			})
		})
		idx++
	}
}

// dim fades every node not in ids and every edge not on a hop of ids.
func (c *Controller) dim(ids []string) {
	fade := secs(c.opts.Timing.Fade)
	in := make(map[string]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}
	onPath := map[string]bool{}
	for i := 0; i+1 < len(ids); i++ {
		if e := c.graph.edgeBetween(ids[i], ids[i+1]); e != nil {
			onPath[e.ID] = true
		}
	}

	for _, n := range c.graph.nodes {
		to := dimNodeAlpha
		if in[n.ID] {
			to = 1
		}
		c.pathTL.Play(recdeck.TweenAlpha(c.groups[n.ID], to, fade, ease.Linear))
	}
	for _, e := range c.graph.edges {
		to := dimLinkAlpha
		if onPath[e.ID] {
			to = 1
		}
		c.pathTL.Play(recdeck.TweenAlpha(c.links[e.ID], to, fade, ease.Linear))
	}
}

func (c *Controller) highlight(ids []string) {
	for _, id := range ids {
		if shape, ok := c.shapes[id]; ok {
			shape.SetFlag(recdeck.FlagHighlighted, true)
		}
	}
}

// clearPath drops every path-specific visual and pending path step.
func (c *Controller) clearPath() {
	c.pathTL.Cancel()
	c.pathLayer.RemoveChildren()
	c.segments = nil
	c.marker = nil
	c.targetLabel = nil
	for _, shape := range c.shapes {
		shape.SetFlag(recdeck.FlagHighlighted|recdeck.FlagPulse, false)
	}
	c.Render()
}

// HideRecommendationPath returns to the non-hover baseline. It is safe to
// call when no path is shown.
func (c *Controller) HideRecommendationPath() {
	c.clearPath()
	fade := secs(c.opts.Timing.Fade)
	for _, g := range c.groups {
		c.pathTL.Play(recdeck.TweenAlpha(g, 1, fade, ease.Linear))
	}
	for _, l := range c.links {
		c.pathTL.Play(recdeck.TweenAlpha(l, 1, fade, ease.Linear))
	}

	if c.phase == PhaseAugmented {
		c.setCaption(CaptionLost)
	} else {
		c.setCaption(CaptionIdle)
	}
}

// AugmentStructure flashes the critical edge twice, fades it out and marks
// it removed. Calls while the animation runs, or after the edge is gone,
// are ignored. If the trigger node is hovered when the edge goes, the path
// is shown again in its broken form.
func (c *Controller) AugmentStructure() {
	if c.phase != PhaseIntact {
		return
	}
	crit := c.graph.critical()
	if crit == nil {
		c.log.Warn().Msg("no critical edge, augmentation skipped")
		return
	}
	line := c.links[crit.ID]
	phase := secs(c.opts.Timing.FlashPhase)
	c.phase = PhaseAugmenting

	flash := func(clr recdeck.Color, width float64) func() recdeck.Tween {
		return func() recdeck.Tween {
			return recdeck.Parallel{
				recdeck.TweenStrokeColor(line, clr, phase, ease.Linear),
				recdeck.TweenStrokeWidth(line, width, phase, ease.Linear),
			}
		}
	}
	c.augmentTL.Play(recdeck.NewSequence(
		flash(colorBroken, 5),
		flash(colorLink, 2),
		flash(colorBroken, 5),
		func() recdeck.Tween {
			return recdeck.TweenStrokeColor(line, colorBroken.WithAlpha(0), phase, ease.Linear)
		},
		func() recdeck.Tween { return recdeck.Call(func() { c.finishAugment(crit) }) },
	))
	c.log.Debug().Str("edge", crit.ID).Msg("augmenting structure")
}

func (c *Controller) finishAugment(crit *Edge) {
	crit.Removed = true
	c.phase = PhaseAugmented
	c.Render()
	if c.hover == HoverOn {
		c.ShowRecommendationPath()
	} else {
		c.setCaption(CaptionLost)
	}
}

// Reset restores every edge, cancels all animations and path visuals and
// re-renders the canonical scene.
func (c *Controller) Reset() {
	c.augmentTL.Cancel()
	c.captionTL.Cancel()
	c.clearPath()

	for _, e := range c.graph.edges {
		e.Removed = false
	}
	c.phase = PhaseIntact

	for _, g := range c.groups {
		g.SetAlpha(1)
	}
	for _, l := range c.links {
		l.SetAlpha(1)
	}
	c.Render()

	c.caption = CaptionIdle
	c.instruction.Text = c.opts.Captions.Idle
	c.instruction.SetAlpha(1)
}

// setCaption fades the instruction out, swaps the text and fades it back.
func (c *Controller) setCaption(state Caption) {
	c.caption = state
	text := c.captionText(state)
	fade := secs(c.opts.Timing.Fade)

	c.captionTL.Cancel()
	c.captionTL.Play(recdeck.TweenAlpha(c.instruction, 0, fade, ease.Linear))
	c.captionTL.After(c.opts.Timing.Fade, func() {
		c.instruction.Text = text
		c.captionTL.Play(recdeck.TweenAlpha(c.instruction, 1, fade, ease.Linear))
	})
}

func (c *Controller) captionText(state Caption) string {
	switch state {
	case CaptionIdle:
		return c.opts.Captions.Idle
	case CaptionPath:
		return c.opts.Captions.Path
	case CaptionBroken:
		return c.opts.Captions.Broken
	case CaptionLost:
		return c.opts.Captions.Lost
	}
	return ""
}

// SetCaptions swaps the copy, applying it to whatever is on screen.
func (c *Controller) SetCaptions(caps config.GraphCaptions) {
	c.opts.Captions = caps
	c.instruction.Text = c.captionText(c.caption)
	if c.targetLabel != nil {
		c.targetLabel.Text = caps.Target
	}
}

// Reachable returns the set of node ids reachable from the given node
// through edges that have not been removed.
func (c *Controller) Reachable(from string) map[string]bool {
	return c.graph.reachable(from)
}

// RecommendationReachable reports whether the recommendation target can
// still be reached from the trigger node.
func (c *Controller) RecommendationReachable() bool {
	return c.graph.reachable(c.trigger)[c.target]
}

// Phase returns the augmentation state.
func (c *Controller) Phase() Phase { return c.phase }

// Animating reports whether the augmentation animation is in flight.
func (c *Controller) Animating() bool { return c.phase == PhaseAugmenting }

// Augmented reports whether the critical edge has been removed.
func (c *Controller) Augmented() bool { return c.phase == PhaseAugmented }

// Hovering reports whether the pointer is over the trigger node.
func (c *Controller) Hovering() bool { return c.hover == HoverOn }

// Caption returns the instruction state and the text it settles on.
func (c *Controller) Caption() (Caption, string) {
	return c.caption, c.captionText(c.caption)
}

// Edges returns a copy of the edges.
func (c *Controller) Edges() []Edge {
	out := make([]Edge, len(c.graph.edges))
	for i, e := range c.graph.edges {
		out[i] = *e
	}
	return out
}

// EdgeBetween returns a copy of the edge joining a and b.
func (c *Controller) EdgeBetween(a, b string) (Edge, bool) {
	e := c.graph.edgeBetween(a, b)
	if e == nil {
		return Edge{}, false
	}
	return *e, true
}

// Nodes returns a copy of the scenario nodes.
func (c *Controller) Nodes() []Node {
	return append([]Node(nil), c.graph.nodes...)
}

// Segments returns the path hops drawn by the last show, in reveal order.
func (c *Controller) Segments() []Segment {
	return append([]Segment(nil), c.segments...)
}

// Highlighted returns the ids of highlighted nodes in scenario order.
func (c *Controller) Highlighted() []string {
	var out []string
	for _, n := range c.graph.nodes {
		if c.shapes[n.ID].HasFlag(recdeck.FlagHighlighted) {
			out = append(out, n.ID)
		}
	}
	return out
}

// BrokenMarker returns the broken-hop marker, or nil if none is drawn.
func (c *Controller) BrokenMarker() *recdeck.Node { return c.marker }

// TargetMarked reports whether the recommendation target is pulsing.
func (c *Controller) TargetMarked() bool {
	return c.shapes[c.target].HasFlag(recdeck.FlagPulse)
}

// TriggerNode returns the node whose hover reveals the path.
func (c *Controller) TriggerNode() *recdeck.Node { return c.shapes[c.trigger] }

// Idle reports whether no animation is pending.
func (c *Controller) Idle() bool {
	return c.pathTL.Idle() && c.augmentTL.Idle() && c.captionTL.Idle()
}

func secs(d time.Duration) float32 {
	return float32(d.Seconds())
}
