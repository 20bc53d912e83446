// Package sparsity draws a user × item interaction matrix where only a
// handful of cells are observed, and pulls attention to them with a
// staggered reveal each time the matrix becomes the active view.
package sparsity

import (
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/recdeck"
	"github.com/phanxgames/recdeck/ecs"
	"github.com/phanxgames/recdeck/internal/config"
)

var (
	colorEmpty          = recdeck.Hex(0xe2e8f0)
	colorEmptyStroke    = recdeck.Hex(0xcbd5e0)
	colorObserved       = recdeck.Hex(0x667eea)
	colorObservedStroke = recdeck.Hex(0x4c51bf)
	colorHover          = recdeck.Hex(0xfbbf24)
	colorHoverStroke    = recdeck.Hex(0xf59e0b)
	colorAxis           = recdeck.Hex(0x4a5568)
)

const (
	baselineAlpha = 0.35
	pulseScale    = 1.3
)

// DefaultView is the container id the matrix answers to.
const DefaultView = "matrix-viz"

// Cell is one matrix entry. Observed is fixed at construction.
type Cell struct {
	Row, Col int
	Observed bool
}

// Options configures a Controller.
type Options struct {
	View          string
	Width, Height float64
	Timing        config.SparsityConfig
	Captions      config.SparsityCaptions
	Logger        zerolog.Logger
}

// DefaultOptions returns options built from the default configuration.
func DefaultOptions() Options {
	cfg := config.DefaultConfig()
	return Options{
		View:     DefaultView,
		Width:    440,
		Height:   440,
		Timing:   cfg.Sparsity,
		Captions: cfg.Captions.Sparsity,
		Logger:   zerolog.Nop(),
	}
}

// Controller owns the matrix. Node is its root.
type Controller struct {
	Node *recdeck.Node

	opts     Options
	log      zerolog.Logger
	cells    []Cell
	observed []int // indices into cells, in reveal order
	rects    []*recdeck.Node
	revealed int
	runs     int

	axisX, axisY *recdeck.Node

	revealTL recdeck.Timeline
	hoverTL  recdeck.Timeline
}

// New builds the grid from the configured observed cells. Cells outside
// the grid are dropped.
func New(opts Options) *Controller {
	c := &Controller{
		opts: opts,
		log:  opts.Logger.With().Str("scene", "sparsity").Logger(),
	}
	n := opts.Timing.Size

	obs := make(map[[2]int]bool, len(opts.Timing.Observed))
	for _, o := range opts.Timing.Observed {
		if o.Row < 0 || o.Row >= n || o.Col < 0 || o.Col >= n {
			c.log.Debug().Int("row", o.Row).Int("col", o.Col).Msg("observed cell outside grid")
			continue
		}
		obs[[2]int{o.Row, o.Col}] = true
	}

	c.Node = recdeck.NewContainer("matrix")
	c.Node.Interactable = true
	c.Node.OnUpdate = c.Update

	size := math.Min(opts.Width, opts.Height) / float64(n+2)
	offX := (opts.Width - float64(n)*size) / 2
	offY := (opts.Height - float64(n)*size) / 2

	grid := recdeck.NewContainer("cells")
	grid.Interactable = true
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			cell := Cell{Row: row, Col: col, Observed: obs[[2]int{row, col}]}
			x := offX + float64(col)*size + size/2
			y := offY + float64(row)*size + size/2
			rect := recdeck.NewRect("cell", x, y, size-2, size-2, colorEmpty)
			rect.Centered = true
			rect.Stroke = colorEmptyStroke
			rect.StrokeWidth = 1
			if cell.Observed {
				c.observed = append(c.observed, len(c.cells))
				rect.Fill = colorObserved
			} else {
				rect.Interactable = true
				rect.OnPointerEnter = func(recdeck.PointerContext) { c.hover(rect, true) }
				rect.OnPointerLeave = func(recdeck.PointerContext) { c.hover(rect, false) }
			}
			c.cells = append(c.cells, cell)
			c.rects = append(c.rects, rect)
			grid.AddChild(rect)
		}
	}
	c.Node.AddChild(grid)

	c.axisX = recdeck.NewText("axis_x", opts.Captions.AxisX, opts.Width/2, opts.Height-14, 12, colorAxis)
	c.axisX.Align = recdeck.TextAlignCenter
	c.axisX.Bold = true
	c.axisY = recdeck.NewText("axis_y", opts.Captions.AxisY, 8, opts.Height/2, 12, colorAxis)
	c.axisY.Bold = true
	c.Node.AddChild(c.axisX)
	c.Node.AddChild(c.axisY)

	return c
}

// Subscribe re-runs the reveal whenever the bus announces this matrix as
// the active view.
func (c *Controller) Subscribe(bus *ecs.Bus) {
	bus.OnViewChanged(func(v ecs.ViewChanged) {
		if v.View == c.opts.View {
			c.AnimateObservedCells()
		}
	})
}

// Update advances the reveal and hover transitions.
func (c *Controller) Update(dt float32) {
	c.revealTL.Update(dt)
	c.hoverTL.Update(dt)
}

// AnimateObservedCells puts the observed cells back to their dim baseline
// and highlights them one by one. A call while a reveal is running
// restarts it from the beginning.
func (c *Controller) AnimateObservedCells() {
	c.revealTL.Cancel()
	c.revealed = 0
	c.runs++
	for _, idx := range c.observed {
		rect := c.rects[idx]
		rect.SetScale(1, 1)
		rect.Fill = colorObserved.WithAlpha(baselineAlpha)
		rect.Stroke = colorEmptyStroke
		rect.StrokeWidth = 1
	}

	half := secs(c.opts.Timing.Pulse) / 2
	for i, idx := range c.observed {
		rect := c.rects[idx]
		delay := c.opts.Timing.BaseDelay + time.Duration(i)*c.opts.Timing.Stagger
		c.revealTL.After(delay, func() {
			c.revealed++
			rect.Stroke = colorObservedStroke
			rect.StrokeWidth = 2
			c.revealTL.Play(recdeck.NewSequence(
				func() recdeck.Tween {
					return recdeck.Parallel{
						recdeck.TweenScale(rect, pulseScale, pulseScale, half, ease.OutQuad),
						recdeck.TweenColor(rect, colorObserved, half, ease.Linear),
					}
				},
				func() recdeck.Tween {
					return recdeck.TweenScale(rect, 1, 1, half, ease.InQuad)
				},
			))
		})
	}
	c.log.Debug().Int("cells", len(c.observed)).Msg("reveal observed cells")
}

func (c *Controller) hover(rect *recdeck.Node, on bool) {
	d := secs(c.opts.Timing.Hover)
	fill, stroke, width := colorEmpty, colorEmptyStroke, 1.0
	if on {
		fill, stroke, width = colorHover, colorHoverStroke, 2
	}
	rect.SetFlag(recdeck.FlagHover, on)
	c.hoverTL.Play(recdeck.Parallel{
		recdeck.TweenColor(rect, fill, d, ease.Linear),
		recdeck.TweenStrokeColor(rect, stroke, d, ease.Linear),
		recdeck.TweenStrokeWidth(rect, width, d, ease.Linear),
	})
}

// SetCaptions swaps the axis copy.
func (c *Controller) SetCaptions(caps config.SparsityCaptions) {
	c.opts.Captions = caps
	c.axisX.Text = caps.AxisX
	c.axisY.Text = caps.AxisY
}

// View returns the container id the matrix answers to.
func (c *Controller) View() string { return c.opts.View }

// Cells returns a copy of the grid in row-major order.
func (c *Controller) Cells() []Cell { return append([]Cell(nil), c.cells...) }

// ObservedCount returns the number of observed cells.
func (c *Controller) ObservedCount() int { return len(c.observed) }

// Revealed returns how many observed cells the current reveal has reached.
func (c *Controller) Revealed() int { return c.revealed }

// Runs returns how many reveals have been started.
func (c *Controller) Runs() int { return c.runs }

// Animating reports whether a reveal is in flight.
func (c *Controller) Animating() bool { return !c.revealTL.Idle() }

// CellNode returns the rect drawn for the cell at row, col.
func (c *Controller) CellNode(row, col int) *recdeck.Node {
	n := c.opts.Timing.Size
	if row < 0 || row >= n || col < 0 || col >= n {
		return nil
	}
	return c.rects[row*n+col]
}

func secs(d time.Duration) float32 {
	return float32(d.Seconds())
}
