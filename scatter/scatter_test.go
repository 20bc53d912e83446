package scatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advance(c *Controller, d time.Duration) {
	for elapsed := time.Duration(0); elapsed <= d; elapsed += 10 * time.Millisecond {
		c.Update(0.01)
	}
}

func TestNewStartsAtBase(t *testing.T) {
	c := New(DefaultOptions())

	assert.Equal(t, 0, c.Level())
	assert.False(t, c.Alert())
	for _, p := range c.Points() {
		pos, ok := c.PositionOf(p.ID)
		require.True(t, ok)
		assert.Equal(t, p.Base, pos, p.ID)
	}
	assert.Equal(t, ZoneLeft, c.ZoneOf(LongTailUser))
	assert.Equal(t, ZoneNone, c.ZoneOf("bg1"))
}

func TestHighNoiseRaisesAlert(t *testing.T) {
	c := New(DefaultOptions())
	c.UpdateNoise(100)
	advance(c, 250*time.Millisecond)

	assert.True(t, c.Alert())
	assert.Equal(t, ZoneRight, c.ZoneOf(LongTailUser))
	assert.Equal(t, ZoneLeft, c.ZoneOf(PowerUser))
	assert.InDelta(t, 1, c.alertText.Alpha, 1e-3)
	assert.Equal(t, colorCrossed, c.views[LongTailUser].circle.Fill)
	assert.Equal(t, 3.0, c.views[LongTailUser].circle.StrokeWidth)
}

func TestReturningToZeroClearsAlert(t *testing.T) {
	c := New(DefaultOptions())
	c.UpdateNoise(100)
	advance(c, 250*time.Millisecond)

	c.UpdateNoise(0)
	assert.False(t, c.Alert())
	assert.Equal(t, colorTail, c.views[LongTailUser].circle.Fill)

	advance(c, 250*time.Millisecond)
	assert.InDelta(t, 0, c.alertText.Alpha, 1e-3)
}

func TestSnapBackIsSlowerThanFollow(t *testing.T) {
	c := New(DefaultOptions())
	base := c.toScreen(c.points[1].Base)

	c.UpdateNoise(100)
	advance(c, 60*time.Millisecond)
	far, _ := c.ScreenPosition(LongTailUser)
	want := c.toScreen(Position(c.points[1], 100, c.opts.Timing.Wobble))
	assert.InDelta(t, want.X, far.X, 1e-3, "follow transition finishes within 50ms")

	c.UpdateNoise(0)
	advance(c, 100*time.Millisecond)
	mid, _ := c.ScreenPosition(LongTailUser)
	assert.Greater(t, mid.X, base.X+0.5, "snap back still in flight")

	advance(c, 500*time.Millisecond)
	back, _ := c.ScreenPosition(LongTailUser)
	assert.InDelta(t, base.X, back.X, 1e-3)
	assert.InDelta(t, base.Y, back.Y, 1e-3)
	assert.True(t, c.Settled())
}

func TestRenderIsRepeatable(t *testing.T) {
	c := New(DefaultOptions())
	c.Render(63)
	first := map[string]any{}
	for _, p := range c.points {
		pos, _ := c.PositionOf(p.ID)
		first[p.ID] = pos
	}
	c.Render(12)
	c.Render(63)
	for _, p := range c.points {
		pos, _ := c.PositionOf(p.ID)
		assert.Equal(t, first[p.ID], pos, p.ID)
	}
}

func TestUpdateNoiseClamps(t *testing.T) {
	c := New(DefaultOptions())
	c.UpdateNoise(180)
	assert.Equal(t, 100, c.Level())
	c.UpdateNoise(-4)
	assert.Equal(t, 0, c.Level())
}

func TestSetCaptions(t *testing.T) {
	c := New(DefaultOptions())
	caps := DefaultOptions().Captions
	caps.Tail = "Usuario de nicho"
	c.SetCaptions(caps)
	assert.Equal(t, "Usuario de nicho", c.views[LongTailUser].label.Text)
}
