package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameDT = 1.0 / 60.0

func gaps(segments []cp.Vector) []float64 {
	out := make([]float64, 0, len(segments)-1)
	for i := 1; i < len(segments); i++ {
		out = append(out, segments[i-1].Distance(segments[i]))
	}
	return out
}

func TestStepChainHeadInvariant(t *testing.T) {
	c := newChain(cp.Vector{X: 100, Y: 100}, 15, 5)
	targets := []cp.Vector{{X: 400, Y: 300}, {X: 50, Y: 420}, {X: 600, Y: 60}}

	for frame := 0; frame < 600; frame++ {
		if frame%40 == 0 {
			ApplyClick(c, targets[(frame/40)%len(targets)])
		}
		StepChain(c, frameDT)
		require.Equal(t, c.Head, c.Segments[0], "frame %d", frame)
		require.Equal(t, c.Head, c.Parts[0].(*fakeVisual).pos, "frame %d", frame)
	}
}

func TestStepChainGapBand(t *testing.T) {
	cases := []struct {
		name    string
		spacing float64
		want    float64
	}{
		{"stretched_snaps_to_max", 100, 20},
		{"bunched_snaps_to_min", 2, 10},
		{"in_band_stays_in_band", 15, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			chain := newChain(cp.Vector{X: 200, Y: 200}, c.spacing, 5)
			StepChain(chain, frameDT)
			for i, g := range gaps(chain.Segments) {
				if c.want >= 0 {
					assert.InDelta(t, c.want, g, 1e-9, "gap %d", i)
				}
				assert.GreaterOrEqual(t, g, 10-1e-9, "gap %d", i)
				assert.LessOrEqual(t, g, 20+1e-9, "gap %d", i)
			}
		})
	}
}

func TestStepChainGapStaysInBandWhileMoving(t *testing.T) {
	c := newChain(cp.Vector{X: 320, Y: 240}, 15, 5)
	c.Speed = 360
	c.Direction = cp.Vector{X: 1}

	for frame := 0; frame < 120; frame++ {
		StepChain(c, frameDT)
		for i, g := range gaps(c.Segments) {
			require.GreaterOrEqual(t, g, 10-1e-9, "frame %d gap %d", frame, i)
			require.LessOrEqual(t, g, 20+1e-9, "frame %d gap %d", frame, i)
		}
	}
}

func TestStepChainTailFollowsParts(t *testing.T) {
	c := newChain(cp.Vector{X: 0, Y: 0}, 15, 3)
	StepChain(c, frameDT)
	for i := range c.Segments {
		assert.Equal(t, c.Segments[i], c.Parts[i].(*fakeVisual).pos)
	}
}

func TestStepChainSpeedDecay(t *testing.T) {
	c := newChain(cp.Vector{X: 0, Y: 0}, 15, 2)
	c.Direction = cp.Vector{X: 1}
	c.Speed = 60

	stopped := -1
	for frame := 0; frame < 2000; frame++ {
		before := c.Speed
		StepChain(c, frameDT)
		require.GreaterOrEqual(t, c.Speed, 0.0)
		if before > 0 && c.Speed > 0 {
			require.InDelta(t, before*0.98, c.Speed, 1e-12)
		}
		if c.Speed == 0 && stopped < 0 {
			stopped = frame
			require.Less(t, before*0.98, 0.06)
		}
		if stopped >= 0 {
			require.Equal(t, 0.0, c.Speed, "speed must stay at zero without a click")
		}
	}
	require.GreaterOrEqual(t, stopped, 0, "speed never reached zero")
}

func TestApplyClick(t *testing.T) {
	t.Run("sets_destination_and_direction", func(t *testing.T) {
		c := newChain(cp.Vector{X: 10, Y: 10}, 15, 1)
		require.True(t, ApplyClick(c, cp.Vector{X: 13, Y: 14}))
		assert.Equal(t, cp.Vector{X: 13, Y: 14}, c.Destination)
		assert.InDelta(t, 0.6, c.Direction.X, 1e-12)
		assert.InDelta(t, 0.8, c.Direction.Y, 1e-12)
		assert.Equal(t, 60.0, c.Speed)
	})

	t.Run("click_on_head_is_noop", func(t *testing.T) {
		c := newChain(cp.Vector{X: 10, Y: 10}, 15, 1)
		c.Direction = cp.Vector{X: 0, Y: 1}
		c.Speed = 42
		c.Destination = cp.Vector{X: 99, Y: 99}

		require.False(t, ApplyClick(c, cp.Vector{X: 10, Y: 10}))
		assert.Equal(t, cp.Vector{X: 0, Y: 1}, c.Direction)
		assert.Equal(t, 42.0, c.Speed)
		assert.Equal(t, cp.Vector{X: 99, Y: 99}, c.Destination)
	})

	t.Run("impulse_soft_cap", func(t *testing.T) {
		c := newChain(cp.Vector{X: 0, Y: 0}, 15, 1)
		maxSpeed := 0.0
		for i := 0; i < 50; i++ {
			ApplyClick(c, cp.Vector{X: 1000, Y: float64(i)})
			maxSpeed = math.Max(maxSpeed, c.Speed)
			require.LessOrEqual(t, c.Speed, 360.0)
		}
		assert.Equal(t, 360.0, maxSpeed)
	})

	t.Run("no_impulse_above_cap", func(t *testing.T) {
		c := newChain(cp.Vector{X: 0, Y: 0}, 15, 1)
		c.Speed = 300.5
		ApplyClick(c, cp.Vector{X: 5, Y: 0})
		assert.Equal(t, 300.5, c.Speed)
	})
}
