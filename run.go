package recdeck

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	TPS     int  // ticks per second; 0 keeps Ebitengine's default of 60
	ShowFPS bool // adds an FPS/TPS overlay on top of the scene
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene  *Scene
	width  int
	height int
}

func (g *game) Update() error {
	return g.scene.Update(float32(1.0 / float64(ebiten.TPS())))
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens a window and drives the scene until the window is closed.
// It blocks and must be called from the main goroutine.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		w, h := scene.Size()
		cfg.Width, cfg.Height = int(w), int(h)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSWidget())
	}
	scene.liveInput = true
	if err := ebiten.RunGame(&game{scene: scene, width: cfg.Width, height: cfg.Height}); err != nil {
		return fmt.Errorf("recdeck: run: %w", err)
	}
	return nil
}

// pollKeys translates the navigation keys into named key events.
func (s *Scene) pollKeys() {
	for key, name := range navKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.keyQueue = append(s.keyQueue, name)
		}
	}
}

var navKeys = map[ebiten.Key]string{
	ebiten.KeyArrowRight: "next",
	ebiten.KeyPageDown:   "next",
	ebiten.KeySpace:      "next",
	ebiten.KeyArrowLeft:  "prev",
	ebiten.KeyPageUp:     "prev",
	ebiten.KeyF12:        "snapshot",
}

// NewFPSWidget creates a text node that shows the current FPS and TPS,
// refreshed roughly every half second by its own update callback.
func NewFPSWidget() *Node {
	n := NewText("fps_widget", "", 8, 12, 11, Color{0.2, 0.2, 0.2, 0.8})
	var elapsed float64
	n.OnUpdate = func(dt float32) {
		elapsed += float64(dt)
		if elapsed < 0.5 {
			return
		}
		elapsed = 0
		n.Text = fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	return n
}

func runFrameHooks(n *Node, dt float32) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, c := range n.children {
		runFrameHooks(c, dt)
	}
}
