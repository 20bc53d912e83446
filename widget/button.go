package widget

import (
	"time"

	"github.com/phanxgames/recdeck"
)

// Button colors.
var (
	ButtonFill  = recdeck.Hex(0x667eea)
	ButtonHover = recdeck.Hex(0x5a67d8)
	ButtonText  = recdeck.ColorWhite
)

const (
	pressScale    = 0.95
	pressFeedback = 100 * time.Millisecond
)

// Button is a rounded label that runs OnPress when clicked. A click shrinks
// it to 95% for 100ms.
type Button struct {
	Node    *recdeck.Node
	OnPress func()

	bg    *recdeck.Node
	label *recdeck.Node
	tl    recdeck.Timeline
}

// NewButton creates a button of size w x h centered on (x, y).
func NewButton(name, label string, x, y, w, h float64, onPress func()) *Button {
	b := &Button{OnPress: onPress}

	b.Node = recdeck.NewContainer(name)
	b.Node.SetPosition(x, y)
	b.Node.Interactable = true
	b.Node.OnUpdate = b.tl.Update

	b.bg = recdeck.NewRect(name+"_bg", 0, 0, w, h, ButtonFill)
	b.bg.Centered = true
	b.bg.Interactable = true
	b.bg.OnClick = func(recdeck.PointerContext) { b.Press() }
	b.bg.OnPointerEnter = func(recdeck.PointerContext) { b.bg.Fill = ButtonHover }
	b.bg.OnPointerLeave = func(recdeck.PointerContext) { b.bg.Fill = ButtonFill }
	b.Node.AddChild(b.bg)

	b.label = recdeck.NewText(name+"_label", label, 0, 0, 13, ButtonText)
	b.label.Align = recdeck.TextAlignCenter
	b.label.Bold = true
	b.Node.AddChild(b.label)

	return b
}

// Press runs the press feedback and the OnPress callback, exactly as a
// pointer click does.
func (b *Button) Press() {
	b.tl.Cancel()
	b.Node.SetScale(pressScale, pressScale)
	b.tl.After(pressFeedback, func() { b.Node.SetScale(1, 1) })
	if b.OnPress != nil {
		b.OnPress()
	}
}

// SetLabel replaces the button text.
func (b *Button) SetLabel(s string) {
	b.label.Text = s
}

// Label returns the button text.
func (b *Button) Label() string {
	return b.label.Text
}

// Update advances the press feedback. Scenes drive it through the frame
// hook; tests may call it directly.
func (b *Button) Update(dt float32) {
	b.tl.Update(dt)
}
