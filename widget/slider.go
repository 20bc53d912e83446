package widget

import (
	"math"
	"strconv"

	"github.com/phanxgames/recdeck"
)

// Slider colors.
var (
	TrackColor = recdeck.Hex(0xe2e8f0)
	FillColor  = recdeck.Hex(0x667eea)
	KnobColor  = recdeck.ColorWhite
)

const (
	trackHeight = 6
	knobRadius  = 9
	stepButton  = 28
)

// Slider is a horizontal integer range control with a draggable knob and
// "-"/"+" buttons that move the value by one step. Values are always
// clamped to [Min, Max].
type Slider struct {
	Node     *recdeck.Node
	OnChange func(value int)

	Min, Max, Step int

	caption string
	value   int
	width   float64

	track *recdeck.Node
	fill  *recdeck.Node
	knob  *recdeck.Node
	text  *recdeck.Node
	minus *Button
	plus  *Button
}

// NewSlider creates a slider whose track starts at (x, y) and spans width
// pixels. The step buttons sit on either side of the track.
func NewSlider(name, caption string, x, y, width float64, lo, hi, step, value int, onChange func(int)) *Slider {
	if hi < lo {
		lo, hi = hi, lo
	}
	if step <= 0 {
		step = 1
	}
	s := &Slider{
		OnChange: onChange,
		Min:      lo,
		Max:      hi,
		Step:     step,
		caption:  caption,
		width:    width,
	}

	s.Node = recdeck.NewContainer(name)
	s.Node.SetPosition(x, y)
	s.Node.Interactable = true

	s.track = recdeck.NewRect(name+"_track", 0, -trackHeight/2, width, trackHeight, TrackColor)
	s.track.Interactable = true
	s.track.HitShape = recdeck.HitRect{X: 0, Y: -knobRadius + trackHeight/2, Width: width, Height: 2 * knobRadius}
	s.track.OnPointerDown = func(ctx recdeck.PointerContext) { s.setFromLocal(ctx.LocalX) }
	s.Node.AddChild(s.track)

	s.fill = recdeck.NewRect(name+"_fill", 0, -trackHeight/2, 0, trackHeight, FillColor)
	s.Node.AddChild(s.fill)

	s.knob = recdeck.NewCircle(name+"_knob", 0, 0, knobRadius, KnobColor)
	s.knob.Stroke = FillColor
	s.knob.StrokeWidth = 2
	s.knob.Interactable = true
	drag := func(ctx recdeck.DragContext) {
		lx, _ := s.Node.WorldToLocal(ctx.GlobalX, ctx.GlobalY)
		s.setFromLocal(lx)
	}
	s.knob.OnDrag = drag
	s.knob.OnDragEnd = drag
	s.Node.AddChild(s.knob)

	s.minus = NewButton(name+"_minus", "-", -stepButton, 0, stepButton-6, stepButton-6, func() { s.StepBy(-1) })
	s.plus = NewButton(name+"_plus", "+", width+stepButton, 0, stepButton-6, stepButton-6, func() { s.StepBy(1) })
	s.Node.AddChild(s.minus.Node)
	s.Node.AddChild(s.plus.Node)

	s.text = recdeck.NewText(name+"_value", "", width/2, -22, 13, recdeck.Hex(0x2d3748))
	s.text.Align = recdeck.TextAlignCenter
	s.Node.AddChild(s.text)

	s.value = s.clamp(value)
	s.layout()
	return s
}

// Value returns the current value.
func (s *Slider) Value() int {
	return s.value
}

// SetValue clamps v to the range and, if it differs from the current value,
// moves the knob and calls OnChange.
func (s *Slider) SetValue(v int) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	s.value = v
	s.layout()
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

// StepBy moves the value by n steps.
func (s *Slider) StepBy(n int) {
	s.SetValue(s.value + n*s.Step)
}

// SetCaption replaces the text shown above the track.
func (s *Slider) SetCaption(c string) {
	s.caption = c
	s.layout()
}

// KnobPosition returns the knob center in scene coordinates.
func (s *Slider) KnobPosition() (float64, float64) {
	return s.Node.X + s.knob.X, s.Node.Y + s.knob.Y
}

// Buttons returns the decrement and increment buttons.
func (s *Slider) Buttons() (minus, plus *Button) {
	return s.minus, s.plus
}

func (s *Slider) setFromLocal(lx float64) {
	if s.Max == s.Min || s.width <= 0 {
		return
	}
	f := math.Max(0, math.Min(1, lx/s.width))
	s.SetValue(s.Min + int(math.Round(f*float64(s.Max-s.Min))))
}

func (s *Slider) clamp(v int) int {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

func (s *Slider) layout() {
	f := 0.0
	if s.Max > s.Min {
		f = float64(s.value-s.Min) / float64(s.Max-s.Min)
	}
	s.knob.SetPosition(f*s.width, 0)
	s.fill.Width = f * s.width
	s.fill.MarkDirty()
	if s.caption == "" {
		s.text.Text = strconv.Itoa(s.value)
	} else {
		s.text.Text = s.caption + ": " + strconv.Itoa(s.value)
	}
}
