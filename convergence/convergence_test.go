package convergence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/phanxgames/recdeck"
)

func advance(c *Controller, d time.Duration) {
	for elapsed := time.Duration(0); elapsed <= d; elapsed += 10 * time.Millisecond {
		c.Update(0.01)
	}
}

func initial(c *Controller) []recdeck.Vec2 {
	var out []recdeck.Vec2
	for _, n := range c.Nodes() {
		out = append(out, n.Initial)
	}
	return out
}

func TestRolesFromConfig(t *testing.T) {
	c := New(DefaultOptions())
	nodes := c.Nodes()
	require.Len(t, nodes, 6)

	roles := make([]Role, len(nodes))
	pairs := make([]int, len(nodes))
	for i, n := range nodes {
		roles[i] = n.Role
		pairs[i] = n.Pair
	}
	assert.Equal(t, []Role{RoleAnchor, RolePositive, RoleAnchor, RolePositive, RoleNegative, RoleNegative}, roles)
	assert.Equal(t, []int{-1, 0, -1, 2, -1, -1}, pairs)
}

func TestNewStartsAtInitialLayout(t *testing.T) {
	c := New(DefaultOptions())
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, initial(c), c.Positions())
	assert.Equal(t, "Iteración 0 / 20", c.Counter())
	assert.False(t, c.Converged())

	advance(c, time.Second)
	assert.Equal(t, 0, c.Iteration(), "nothing moves before Start")
}

func TestLoopReachesTargetPausesAndRewinds(t *testing.T) {
	c := New(DefaultOptions())
	c.Start()
	c.Start()

	advance(c, 200*time.Millisecond)
	assert.Equal(t, 1, c.Iteration(), "a second Start must not double the step rate")
	assert.Equal(t, StateRunning, c.State())

	advance(c, 3100*time.Millisecond)
	require.Equal(t, 20, c.Iteration())
	assert.Equal(t, StatePaused, c.State())
	assert.Equal(t, "Iteración 20 / 20", c.Counter())
	assert.True(t, c.Converged())
	for i, n := range c.Nodes() {
		p := c.Positions()[i]
		assert.InDelta(t, n.Target.X, p.X, 1e-6, n.Label)
		assert.InDelta(t, n.Target.Y, p.Y, 1e-6, n.Label)
	}

	advance(c, 1500*time.Millisecond)
	assert.Equal(t, StateResetting, c.State())
	assert.Equal(t, 0, c.Iteration())
	assert.Equal(t, 1, c.Loops())
	assert.Equal(t, initial(c), c.Positions())
	assert.False(t, c.Converged())

	advance(c, 700*time.Millisecond)
	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 1, c.Iteration())
}

func TestConvergedLookFollowsThreshold(t *testing.T) {
	c := New(DefaultOptions())

	c.iteration = 8
	c.apply()
	assert.False(t, c.Converged())
	assert.InDelta(t, 0, c.caption.Alpha, 1e-9)

	c.iteration = 9
	c.apply()
	assert.True(t, c.Converged())
	assert.InDelta(t, 1, c.caption.Alpha, 1e-9)
	assert.True(t, c.dots[1].FindChild("dot").HasFlag(recdeck.FlagHighlighted))
	assert.False(t, c.dots[4].FindChild("dot").HasFlag(recdeck.FlagHighlighted))
}

func TestResetSnapsToInitial(t *testing.T) {
	c := New(DefaultOptions())
	c.Start()
	advance(c, time.Second)
	require.Positive(t, c.Iteration())

	c.Reset()
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 0, c.Iteration())
	assert.Equal(t, "Iteración 0 / 20", c.Counter())
	assert.Equal(t, initial(c), c.Positions())

	advance(c, time.Second)
	assert.Equal(t, 0, c.Iteration(), "no step from the cancelled run may fire")

	c.Start()
	advance(c, 200*time.Millisecond)
	assert.Equal(t, 1, c.Iteration())
}

func TestStopIsTerminal(t *testing.T) {
	c := New(DefaultOptions())
	c.Start()
	advance(c, 500*time.Millisecond)
	at := c.Iteration()

	c.Stop()
	advance(c, time.Second)
	assert.Equal(t, at, c.Iteration())
	assert.Equal(t, StateStopped, c.State())

	c.Start()
	c.Reset()
	assert.Equal(t, StateStopped, c.State())
	advance(c, time.Second)
	assert.Equal(t, 0, c.Iteration())
}

func TestPairLinesFollowNodes(t *testing.T) {
	c := New(DefaultOptions())
	c.iteration = 20
	c.apply()

	line := c.pairs[1]
	require.NotNil(t, line)
	a, b := c.Positions()[0], c.Positions()[1]
	assert.Equal(t, a, line.Position())
	assert.InDelta(t, b.X-a.X, line.LineEnd.X, 1e-9)
	assert.InDelta(t, b.Y-a.Y, line.LineEnd.Y, 1e-9)
	assert.Nil(t, c.pairs[4], "negatives have no pair line")
}

func TestProgressProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(1, 200).Draw(t, "total")
		i := rapid.IntRange(0, total-1).Draw(t, "i")

		p, next := Progress(i, total), Progress(i+1, total)
		if p < 0 || p > 1 {
			t.Fatalf("Progress(%d, %d) = %v outside [0, 1]", i, total, p)
		}
		if next < p {
			t.Fatalf("Progress decreases from %d to %d of %d: %v > %v", i, i+1, total, p, next)
		}
	})
}

func TestPositionEndpoints(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(1, 200).Draw(t, "total")
		n := Node{
			Initial: recdeck.Vec2{
				X: rapid.Float64Range(0, 800).Draw(t, "ix"),
				Y: rapid.Float64Range(0, 400).Draw(t, "iy"),
			},
			Target: recdeck.Vec2{
				X: rapid.Float64Range(0, 800).Draw(t, "tx"),
				Y: rapid.Float64Range(0, 400).Draw(t, "ty"),
			},
		}
		if got := PositionAt(n, 0, total); got != n.Initial {
			t.Fatalf("iteration 0 = %v, want %v", got, n.Initial)
		}
		end := PositionAt(n, total, total)
		if d := end.X - n.Target.X; d > 1e-9 || d < -1e-9 {
			t.Fatalf("iteration %d x = %v, want %v", total, end.X, n.Target.X)
		}
		if d := end.Y - n.Target.Y; d > 1e-9 || d < -1e-9 {
			t.Fatalf("iteration %d y = %v, want %v", total, end.Y, n.Target.Y)
		}
	})
}
