package widget

import (
	"testing"

	"github.com/phanxgames/recdeck"
)

const frame = float32(1.0 / 60)

func drain(s *recdeck.Scene) {
	for s.PendingInput() > 0 {
		s.Update(frame)
	}
}

func TestButtonClickRunsOnPress(t *testing.T) {
	s := recdeck.NewScene(400, 300)
	presses := 0
	b := NewButton("augment", "Aumentar", 200, 150, 120, 32, func() { presses++ })
	s.Root().AddChild(b.Node)

	s.InjectClick(200, 150)
	drain(s)

	if presses != 1 {
		t.Errorf("presses = %d, want 1", presses)
	}
}

func TestButtonPressFeedback(t *testing.T) {
	b := NewButton("reset", "Reiniciar", 0, 0, 100, 30, nil)

	b.Press()
	if b.Node.ScaleX != pressScale || b.Node.ScaleY != pressScale {
		t.Fatalf("scale = (%v, %v), want %v", b.Node.ScaleX, b.Node.ScaleY, pressScale)
	}

	b.Update(0.05)
	if b.Node.ScaleX != pressScale {
		t.Error("button restored too early")
	}
	b.Update(0.06)
	if b.Node.ScaleX != 1 || b.Node.ScaleY != 1 {
		t.Errorf("scale = (%v, %v), want 1 after feedback", b.Node.ScaleX, b.Node.ScaleY)
	}
}

func TestButtonFeedbackRunsFromScene(t *testing.T) {
	s := recdeck.NewScene(400, 300)
	b := NewButton("b", "x", 100, 100, 60, 30, nil)
	s.Root().AddChild(b.Node)

	b.Press()
	for i := 0; i < 10; i++ {
		s.Update(frame)
	}
	if b.Node.ScaleX != 1 {
		t.Errorf("scale = %v, want 1 once the scene advanced past the feedback", b.Node.ScaleX)
	}
}

func TestButtonHover(t *testing.T) {
	s := recdeck.NewScene(400, 300)
	b := NewButton("b", "x", 100, 100, 60, 30, nil)
	s.Root().AddChild(b.Node)

	s.InjectMove(100, 100)
	drain(s)
	if b.bg.Fill != ButtonHover {
		t.Error("hovered button should use the hover fill")
	}
	s.InjectMove(300, 250)
	drain(s)
	if b.bg.Fill != ButtonFill {
		t.Error("fill should be restored on leave")
	}
}

func TestButtonSetLabel(t *testing.T) {
	b := NewButton("b", "uno", 0, 0, 60, 30, nil)
	b.SetLabel("dos")
	if b.Label() != "dos" {
		t.Errorf("Label = %q", b.Label())
	}
}

func TestSliderClamps(t *testing.T) {
	var got []int
	s := NewSlider("noise", "Ruido", 0, 0, 200, 0, 100, 5, 0, func(v int) { got = append(got, v) })

	s.StepBy(-1)
	if s.Value() != 0 || len(got) != 0 {
		t.Errorf("stepping below min: value=%d changes=%v", s.Value(), got)
	}

	s.SetValue(98)
	s.StepBy(1)
	if s.Value() != 100 {
		t.Errorf("Value = %d, want clamp to 100", s.Value())
	}
	s.StepBy(1)
	if len(got) != 2 || got[0] != 98 || got[1] != 100 {
		t.Errorf("changes = %v, want [98 100]", got)
	}
}

func TestSliderStepButtons(t *testing.T) {
	sc := recdeck.NewScene(600, 200)
	var last int
	s := NewSlider("noise", "", 100, 100, 200, 0, 100, 5, 50, func(v int) { last = v })
	sc.Root().AddChild(s.Node)

	minus, plus := s.Buttons()
	plus.Press()
	plus.Press()
	if s.Value() != 60 || last != 60 {
		t.Errorf("after two increments value=%d last=%d, want 60", s.Value(), last)
	}
	minus.Press()
	if s.Value() != 55 {
		t.Errorf("Value = %d, want 55", s.Value())
	}

	// Clicking the "+" button through the scene.
	sc.InjectClick(100+200+stepButton, 100)
	drain(sc)
	if s.Value() != 60 {
		t.Errorf("Value = %d, want 60 after clicking +", s.Value())
	}
}

func TestSliderKnobFollowsValue(t *testing.T) {
	s := NewSlider("noise", "Ruido", 10, 20, 200, 0, 100, 5, 25, nil)
	x, y := s.KnobPosition()
	if x != 60 || y != 20 {
		t.Errorf("knob = (%v, %v), want (60, 20)", x, y)
	}
	if s.fill.Width != 50 {
		t.Errorf("fill width = %v, want 50", s.fill.Width)
	}
	if s.text.Text != "Ruido: 25" {
		t.Errorf("text = %q", s.text.Text)
	}
}

func TestSliderDragAndTrackClick(t *testing.T) {
	sc := recdeck.NewScene(600, 200)
	s := NewSlider("noise", "", 100, 100, 200, 0, 100, 5, 0, nil)
	sc.Root().AddChild(s.Node)

	sc.InjectDrag(100, 100, 200, 100, 8)
	drain(sc)
	if s.Value() != 50 {
		t.Errorf("Value = %d after dragging to the middle, want 50", s.Value())
	}

	sc.InjectClick(250, 102)
	drain(sc)
	if s.Value() != 75 {
		t.Errorf("Value = %d after clicking the track, want 75", s.Value())
	}
}
