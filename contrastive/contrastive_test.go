package contrastive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/recdeck"
)

func advance(c *Controller, d time.Duration) {
	for elapsed := time.Duration(0); elapsed <= d; elapsed += 10 * time.Millisecond {
		c.Update(0.01)
	}
}

func count(root *recdeck.Node, name string) int {
	n := 0
	root.Walk(func(node *recdeck.Node) bool {
		if node.Name == name {
			n++
		}
		return true
	})
	return n
}

func TestNewShowsOnlyTheBase(t *testing.T) {
	c := New(DefaultOptions())

	assert.Equal(t, PhaseBase, c.Phase())
	assert.Empty(t, c.Views())
	assert.Equal(t, recdeck.Vec2{X: 450, Y: 180}, c.Base().Node.Position())
	assert.Equal(t, 4, count(c.Base().Node, "link"))
	assert.Equal(t, 0, count(c.Base().Node, "noise_ring"))
	assert.Empty(t, c.Status())
}

func TestShowAugmentedViews(t *testing.T) {
	c := New(DefaultOptions())
	c.ShowAugmentedViews()
	assert.Equal(t, PhaseShrinking, c.Phase())

	advance(c, 600*time.Millisecond)
	assert.Empty(t, c.Views(), "views appear after the delay")

	advance(c, 500*time.Millisecond)
	require.Equal(t, PhaseShown, c.Phase())
	views := c.Views()
	require.Len(t, views, 2)

	structure, feature := views[0], views[1]
	assert.Equal(t, VariantStructure, structure.Variant)
	assert.Equal(t, []int{droppedLink}, structure.Removed)
	assert.Equal(t, 3, count(structure.Node, "link"))
	assert.Equal(t, 1, count(structure.Node, "removed_mark"))
	assert.Equal(t, 1, count(structure.Node, "removed_x_a"))
	assert.Equal(t, 1, count(structure.Node, "removed_x_b"))
	assert.Equal(t, 0, structure.Noisy)

	assert.Equal(t, VariantFeature, feature.Variant)
	assert.Empty(t, feature.Removed)
	assert.Equal(t, 6, feature.Noisy)
	assert.Equal(t, 6, count(feature.Node, "noise_ring"))

	assert.InDelta(t, 1, structure.Node.Alpha, 1e-3)
	assert.InDelta(t, 0.7, feature.Node.ScaleX, 1e-9)
	assert.InDelta(t, 720, feature.Node.X, 1e-9)

	base := c.Base().Node
	assert.InDelta(t, 180, base.X, 1e-3)
	assert.InDelta(t, 0.65, base.ScaleX, 1e-3)
	assert.Equal(t, DefaultOptions().Captions.Status, c.Status())
	assert.True(t, c.Idle())
}

func TestShowIsSingleShot(t *testing.T) {
	c := New(DefaultOptions())
	c.ShowAugmentedViews()
	c.ShowAugmentedViews()
	advance(c, 1200*time.Millisecond)
	c.ShowAugmentedViews()
	advance(c, 1200*time.Millisecond)

	assert.Len(t, c.Views(), 2)
	assert.Equal(t, 4, c.Node.NumChildren(), "base, status and exactly two views")
}

func TestResetRestoresBase(t *testing.T) {
	c := New(DefaultOptions())
	c.ShowAugmentedViews()
	advance(c, 1200*time.Millisecond)
	views := c.Views()

	c.Reset()
	assert.Equal(t, PhaseBase, c.Phase())
	assert.Empty(t, c.Views())
	for _, v := range views {
		assert.True(t, v.Node.IsDisposed())
	}
	assert.Equal(t, recdeck.Vec2{X: 450, Y: 180}, c.Base().Node.Position())
	assert.Equal(t, 1.0, c.Base().Node.ScaleX)
	assert.Empty(t, c.Status())

	c.ShowAugmentedViews()
	advance(c, 1200*time.Millisecond)
	assert.Len(t, c.Views(), 2)
}

func TestResetMidTransitionDropsPendingViews(t *testing.T) {
	c := New(DefaultOptions())
	c.ShowAugmentedViews()
	advance(c, 300*time.Millisecond)

	c.Reset()
	advance(c, time.Second)

	assert.Empty(t, c.Views())
	assert.Equal(t, PhaseBase, c.Phase())
	assert.Equal(t, recdeck.Vec2{X: 450, Y: 180}, c.Base().Node.Position())
	assert.Equal(t, 1.0, c.Base().Node.ScaleY)
}
