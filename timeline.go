package recdeck

import "time"

// Timeline drives a multi-step animation as an ordered list of
// (delay, mutation) steps plus the tweens those steps start. It replaces
// chains of nested timer callbacks: one Update call per frame advances the
// clock, runs every step that came due in order, and advances owned tweens.
//
// Cancel drops everything still pending. A step that was scheduled before
// Cancel can never run after it, which is what lets controllers snap to a
// reset state while an animation is in flight.
type Timeline struct {
	clock  time.Duration
	steps  []timelineStep
	tweens []Tween
	gen    uint64
}

type timelineStep struct {
	at time.Duration
	fn func()
}

// After schedules fn to run delay after the timeline's current time. Steps
// with equal due times run in scheduling order. A zero delay runs on the
// next Update.
func (t *Timeline) After(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	at := t.clock + delay
	i := len(t.steps)
	for i > 0 && t.steps[i-1].at > at {
		i--
	}
	t.steps = append(t.steps, timelineStep{})
	copy(t.steps[i+1:], t.steps[i:])
	t.steps[i] = timelineStep{at: at, fn: fn}
}

// Play attaches a tween to the timeline. It is advanced from the next
// Update on and dropped once finished or when the timeline is cancelled.
func (t *Timeline) Play(tw Tween) {
	if tw == nil {
		return
	}
	t.tweens = append(t.tweens, tw)
}

// Update advances the timeline by dt seconds.
func (t *Timeline) Update(dt float32) {
	gen := t.gen

	if len(t.tweens) > 0 {
		// Tweens played while these advance land in t.tweens and are kept.
		cur := t.tweens
		t.tweens = nil
		live := make([]Tween, 0, len(cur))
		for _, tw := range cur {
			tw.Update(dt)
			if t.gen != gen {
				return
			}
			if !tw.Finished() {
				live = append(live, tw)
			}
		}
		t.tweens = append(live, t.tweens...)
	}

	t.clock += time.Duration(float64(dt) * float64(time.Second))
	for len(t.steps) > 0 && t.steps[0].at <= t.clock {
		st := t.steps[0]
		t.steps[0] = timelineStep{}
		t.steps = t.steps[1:]
		st.fn()
		if t.gen != gen {
			// fn cancelled the timeline; anything left belongs to a run
			// that no longer exists.
			return
		}
	}
}

// Cancel drops every pending step and in-flight tween. Tweens are left at
// whatever value they last wrote; callers restore canonical state themselves.
func (t *Timeline) Cancel() {
	t.gen++
	for i := range t.steps {
		t.steps[i] = timelineStep{}
	}
	t.steps = t.steps[:0]
	for i := range t.tweens {
		t.tweens[i] = nil
	}
	t.tweens = t.tweens[:0]
}

// Idle reports whether nothing is scheduled and no tween is running.
func (t *Timeline) Idle() bool {
	return len(t.steps) == 0 && len(t.tweens) == 0
}

// Pending returns the number of scheduled steps that have not run yet.
func (t *Timeline) Pending() int {
	return len(t.steps)
}

// Now returns the timeline's clock.
func (t *Timeline) Now() time.Duration {
	return t.clock
}

// Generation increments on every Cancel. Controllers capture it when they
// start a sequence to recognise work from an older run.
func (t *Timeline) Generation() uint64 {
	return t.gen
}
