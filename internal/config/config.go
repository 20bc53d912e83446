// Package config loads the deck's YAML configuration: window settings,
// logging, fonts, all UX captions and the per-scene timings and scenario
// data. Every field has a built-in default, so the file is optional and may
// override any subset.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/recdeck/internal/logging"
)

// DefaultPath is the file looked up when no -config flag is given.
const DefaultPath = "recdeck.yaml"

// WindowConfig holds window settings.
type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	TPS     int    `yaml:"tps"`
	ShowFPS bool   `yaml:"show_fps"`
}

// FontConfig selects the TTF used for text. An empty or unreadable path
// falls back to the built-in bitmap face.
type FontConfig struct {
	Path string  `yaml:"path,omitempty"`
	Size float64 `yaml:"size"`
}

// Point is a position in scene coordinates.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Cell addresses one grid cell.
type Cell struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// GraphConfig tunes the recommendation path scene.
type GraphConfig struct {
	SegmentDelay   time.Duration `yaml:"segment_delay"`
	RevealDuration time.Duration `yaml:"reveal_duration"`
	TargetDelay    time.Duration `yaml:"target_delay"`
	BrokenDelay    time.Duration `yaml:"broken_delay"`
	FlashPhase     time.Duration `yaml:"flash_phase"`
	Fade           time.Duration `yaml:"fade"`
	// Labels of nodes below this y are drawn under the node, the rest above.
	LabelFlipY float64 `yaml:"label_flip_y"`
}

// ScatterConfig tunes the identity drift scene.
type ScatterConfig struct {
	BoundaryX float64       `yaml:"boundary_x"`
	Wobble    float64       `yaml:"wobble"`
	SnapBack  time.Duration `yaml:"snap_back"`
	Follow    time.Duration `yaml:"follow"`
	Step      int           `yaml:"step"`
}

// SparsityConfig tunes the sparse interaction matrix.
type SparsityConfig struct {
	Size      int           `yaml:"size"`
	Observed  []Cell        `yaml:"observed"`
	BaseDelay time.Duration `yaml:"base_delay"`
	Stagger   time.Duration `yaml:"stagger"`
	Pulse     time.Duration `yaml:"pulse"`
	Hover     time.Duration `yaml:"hover"`
}

// ContrastiveConfig tunes the augmented views scene.
type ContrastiveConfig struct {
	Shrink    time.Duration `yaml:"shrink"`
	ViewDelay time.Duration `yaml:"view_delay"`
	FadeIn    time.Duration `yaml:"fade_in"`
	BaseScale float64       `yaml:"base_scale"`
	ViewScale float64       `yaml:"view_scale"`
}

// ConvergenceNode is one node of the convergence playground.
type ConvergenceNode struct {
	Label   string `yaml:"label"`
	Anchor  bool   `yaml:"anchor"`
	Initial Point  `yaml:"initial"`
	Target  Point  `yaml:"target"`
}

// ConvergenceConfig tunes the looping convergence playground.
type ConvergenceConfig struct {
	MaxIterations int               `yaml:"max_iterations"`
	StepDelay     time.Duration     `yaml:"step_delay"`
	Pause         time.Duration     `yaml:"pause"`
	Settle        time.Duration     `yaml:"settle"`
	Threshold     float64           `yaml:"converged_threshold"`
	Nodes         []ConvergenceNode `yaml:"nodes"`
}

// EssenceConfig tunes the essence learning cards.
type EssenceConfig struct {
	MarkerFade time.Duration `yaml:"marker_fade"`
	LineFade   time.Duration `yaml:"line_fade"`
	HideFade   time.Duration `yaml:"hide_fade"`
}

// Config is the top-level configuration.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Logging     logging.Config    `yaml:"logging"`
	Font        FontConfig        `yaml:"font"`
	Captions    Captions          `yaml:"captions"`
	Graph       GraphConfig       `yaml:"graph"`
	Scatter     ScatterConfig     `yaml:"scatter"`
	Sparsity    SparsityConfig    `yaml:"sparsity"`
	Contrastive ContrastiveConfig `yaml:"contrastive"`
	Convergence ConvergenceConfig `yaml:"convergence"`
	Essence     EssenceConfig     `yaml:"essence"`
}

// DefaultConfig returns a Config with the built-in copy and timings.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  960,
			Height: 600,
			Title:  "Sistemas de recomendación",
			TPS:    60,
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "console",
		},
		Font:     FontConfig{Size: 13},
		Captions: DefaultCaptions(),
		Graph: GraphConfig{
			SegmentDelay:   150 * time.Millisecond,
			RevealDuration: 300 * time.Millisecond,
			TargetDelay:    450 * time.Millisecond,
			BrokenDelay:    300 * time.Millisecond,
			FlashPhase:     250 * time.Millisecond,
			Fade:           200 * time.Millisecond,
			LabelFlipY:     340,
		},
		Scatter: ScatterConfig{
			BoundaryX: 50,
			Wobble:    6,
			SnapBack:  500 * time.Millisecond,
			Follow:    50 * time.Millisecond,
			Step:      5,
		},
		Sparsity: SparsityConfig{
			Size: 20,
			Observed: []Cell{
				{Row: 2, Col: 5},
				{Row: 5, Col: 14},
				{Row: 9, Col: 3},
				{Row: 13, Col: 17},
				{Row: 17, Col: 9},
			},
			BaseDelay: 300 * time.Millisecond,
			Stagger:   200 * time.Millisecond,
			Pulse:     400 * time.Millisecond,
			Hover:     200 * time.Millisecond,
		},
		Contrastive: ContrastiveConfig{
			Shrink:    600 * time.Millisecond,
			ViewDelay: 650 * time.Millisecond,
			FadeIn:    400 * time.Millisecond,
			BaseScale: 0.65,
			ViewScale: 0.7,
		},
		Convergence: ConvergenceConfig{
			MaxIterations: 20,
			StepDelay:     150 * time.Millisecond,
			Pause:         1500 * time.Millisecond,
			Settle:        600 * time.Millisecond,
			Threshold:     0.3,
			Nodes:         defaultConvergenceNodes(),
		},
		Essence: EssenceConfig{
			MarkerFade: 400 * time.Millisecond,
			LineFade:   600 * time.Millisecond,
			HideFade:   300 * time.Millisecond,
		},
	}
}

// defaultConvergenceNodes lays out two anchor/positive pairs and two
// negatives. Positives start scattered and end next to their anchor;
// negatives end pushed to the edges.
func defaultConvergenceNodes() []ConvergenceNode {
	return []ConvergenceNode{
		{Label: "A", Anchor: true, Initial: Point{170, 130}, Target: Point{200, 170}},
		{Label: "A+", Initial: Point{520, 300}, Target: Point{250, 190}},
		{Label: "B", Anchor: true, Initial: Point{600, 120}, Target: Point{560, 300}},
		{Label: "B+", Initial: Point{230, 330}, Target: Point{600, 330}},
		{Label: "N1", Initial: Point{360, 200}, Target: Point{90, 360}},
		{Label: "N2", Initial: Point{420, 260}, Target: Point{700, 70}},
	}
}

// Load reads config from path, overlaying it on DefaultConfig.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the parent directory.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate reports the first value that would leave a scene unusable.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Scatter.BoundaryX <= 0 || c.Scatter.BoundaryX >= 100 {
		return fmt.Errorf("scatter.boundary_x %v outside (0, 100)", c.Scatter.BoundaryX)
	}
	if c.Scatter.Step <= 0 {
		return fmt.Errorf("scatter.step must be positive")
	}
	if c.Sparsity.Size <= 0 {
		return fmt.Errorf("sparsity.size must be positive")
	}
	for _, cell := range c.Sparsity.Observed {
		if cell.Row < 0 || cell.Row >= c.Sparsity.Size || cell.Col < 0 || cell.Col >= c.Sparsity.Size {
			return fmt.Errorf("sparsity.observed cell (%d, %d) outside %dx%d grid",
				cell.Row, cell.Col, c.Sparsity.Size, c.Sparsity.Size)
		}
	}
	if c.Convergence.MaxIterations <= 0 {
		return fmt.Errorf("convergence.max_iterations must be positive")
	}
	if c.Convergence.Threshold < 0 || c.Convergence.Threshold > 1 {
		return fmt.Errorf("convergence.converged_threshold %v outside [0, 1]", c.Convergence.Threshold)
	}
	if c.Contrastive.BaseScale <= 0 || c.Contrastive.ViewScale <= 0 {
		return fmt.Errorf("contrastive scales must be positive")
	}
	return nil
}
