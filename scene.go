package recdeck

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// EventSink is the interface for an optional event bus bridge.
// When set on a Scene, interaction events are forwarded to it.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the event bus bridge.
type InteractionEvent struct {
	Type     EventType
	NodeName string
	GlobalX  float64
	GlobalY  float64
}

// Scene is the top-level object that owns the node tree, pointer state and
// the frame hooks of the controllers drawn into it.
type Scene struct {
	root   *Node
	width  float64
	height float64

	// ClearColor fills the screen before the tree is drawn.
	ClearColor Color

	// SnapshotDir is where scripted SVG snapshots are written.
	SnapshotDir string

	sink       EventSink
	debug      bool
	log        zerolog.Logger
	fonts      *Fonts
	updateFunc func(dt float32) error
	testRunner *TestRunner

	// Input state
	pointer      pointerState
	hitBuf       []*Node
	dragDeadZone float64
	injectQueue  []syntheticPointerEvent
	liveInput    bool
	keyQueue     []string
	onKey        func(key string)

	snapshotQueue []string
}

// NewScene creates a scene of the given pixel size with a pre-created root
// container. The size is fixed for the scene's lifetime.
func NewScene(width, height float64) *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:         root,
		width:        width,
		height:       height,
		ClearColor:   Color{1, 1, 1, 1},
		SnapshotDir:  "snapshots",
		dragDeadZone: defaultDragDeadZone,
		log:          zerolog.Nop(),
		fonts:        DefaultFonts(),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Size returns the scene's pixel width and height.
func (s *Scene) Size() (float64, float64) {
	return s.width, s.height
}

// SetUpdateFunc registers a callback invoked once per Update after input has
// been processed. Controllers advance their timelines from here.
func (s *Scene) SetUpdateFunc(fn func(dt float32) error) {
	s.updateFunc = fn
}

// SetEventSink sets the optional event bus bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetLogger sets the logger used for debug output and degrade warnings.
func (s *Scene) SetLogger(log zerolog.Logger) {
	s.log = log
}

// Logger returns the scene's logger.
func (s *Scene) Logger() zerolog.Logger {
	return s.log
}

// SetFonts replaces the font set used for text nodes.
func (s *Scene) SetFonts(f *Fonts) {
	if f != nil {
		s.fonts = f
	}
}

// SetDebugMode enables or disables per-frame timing logs.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// OnKey registers the handler for named keys (real or scripted).
func (s *Scene) OnKey(fn func(key string)) {
	s.onKey = fn
}

// InjectKey queues a named key press, consumed on the next Update.
func (s *Scene) InjectKey(key string) {
	s.keyQueue = append(s.keyQueue, key)
}

// Update refreshes world transforms, runs the test script, processes input
// and finally calls the update hook with dt seconds.
func (s *Scene) Update(dt float32) error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.processKeys()

	runFrameHooks(s.root, dt)
	if s.updateFunc != nil {
		if err := s.updateFunc(dt); err != nil {
			return err
		}
	}
	// Controllers mutate nodes in the hook; refresh so Draw and the next
	// frame's hit test see the same geometry.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.debug {
		s.log.Debug().Dur("update", time.Since(t0)).Msg("frame")
	}
	return nil
}

func (s *Scene) processKeys() {
	if s.liveInput {
		s.pollKeys()
	}
	for len(s.keyQueue) > 0 {
		k := s.keyQueue[0]
		s.keyQueue = s.keyQueue[1:]
		if s.onKey != nil {
			s.onKey(k)
		}
	}
}

// Draw renders the scene tree to screen and flushes queued snapshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	screen.Fill(s.ClearColor.RGBA(1))
	count := s.drawNode(screen, s.root, 1)
	if s.debug {
		s.log.Debug().Dur("draw", time.Since(t0)).Int("shapes", count).Msg("frame")
	}
	s.flushSnapshots()
}
