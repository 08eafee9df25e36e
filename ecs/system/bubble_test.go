package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bubbleworm/ecs"
	"github.com/milk9111/bubbleworm/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBubbleSystemCollisionBoundary(t *testing.T) {
	const (
		baseRadius = 16.0
		reach      = baseRadius + 12.0
		eps        = 1e-6
	)

	cases := []struct {
		name      string
		distance  float64
		collected bool
	}{
		{"just_inside", reach - eps, true},
		{"just_outside", reach + eps, false},
		{"far", 200, false},
		{"on_head", 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addChain(w, newChain(cp.Vector{}, 15, 1))
			e, v := addBubble(w, cp.Vector{X: c.distance}, baseRadius)

			NewBubbleSystem().Update(w, 0.016)

			assert.Equal(t, !c.collected, ecs.IsAlive(w, e))
			if c.collected {
				assert.Equal(t, 1, v.released)
				events := w.Events().Drain()
				require.Len(t, events, 1)
				assert.Equal(t, ecs.EventBubbleCollected, events[0].Type)
			} else {
				assert.Equal(t, 0, v.released)
			}
		})
	}
}

func TestBubbleSystemUsesUpdatedHead(t *testing.T) {
	w := ecs.NewWorld()
	c := newChain(cp.Vector{X: 0, Y: 0}, 15, 1)
	c.Direction = cp.Vector{X: 1}
	c.Speed = 60 * 60 // one frame at 1/60 moves the head 60 units
	addChain(w, c)
	e, _ := addBubble(w, cp.Vector{X: 60}, 16)

	sched := ecs.NewScheduler(NewChainSystem(), NewBubbleSystem())
	sched.Update(w, frameDT)

	assert.False(t, ecs.IsAlive(w, e), "bubble at the new head position must be collected")
}

func TestBubbleSystemShrinkAndExpire(t *testing.T) {
	w := ecs.NewWorld()
	addChain(w, newChain(cp.Vector{X: -1000, Y: -1000}, 15, 1))
	e, v := addBubble(w, cp.Vector{X: 300, Y: 300}, 16)
	sys := NewBubbleSystem()

	prev := 16.0
	frames := 0
	for ecs.IsAlive(w, e) {
		b, ok := ecs.Get(w, e, component.BubbleComponent.Kind())
		require.True(t, ok)
		r := b.Radius()
		if frames > 0 {
			require.Less(t, r, prev, "radius must strictly decrease (frame %d)", frames)
		}
		prev = r

		sys.Update(w, frameDT)
		frames++
		require.LessOrEqual(t, frames, 8*60+2, "bubble outlived its shrink duration")
	}

	assert.GreaterOrEqual(t, frames, 8*60)
	assert.Equal(t, 1, v.released)
	assert.InDelta(t, 0.2, v.scale, 1e-9)

	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventBubbleExpired, events[0].Type)
	data := events[0].Data.(ecs.BubbleEvent)
	assert.InDelta(t, 16*0.2, data.Radius, 1e-9)
}

func TestBubbleSystemSpin(t *testing.T) {
	w := ecs.NewWorld()
	addChain(w, newChain(cp.Vector{X: -1000, Y: -1000}, 15, 1))
	e, v := addBubble(w, cp.Vector{X: 300, Y: 300}, 16)
	b, _ := ecs.Get(w, e, component.BubbleComponent.Kind())
	b.Angle = 10
	b.Spin = -3

	NewBubbleSystem().Update(w, 0.5)

	assert.InDelta(t, 8.5, b.Angle, 1e-12)
	assert.InDelta(t, 8.5, v.angle, 1e-12)
	assert.Equal(t, cp.Vector{X: 300, Y: 300}, b.Position, "bubbles never translate")
}

func TestDestroyBubbleOnlyOnce(t *testing.T) {
	w := ecs.NewWorld()
	e, v := addBubble(w, cp.Vector{X: 1, Y: 1}, 16)

	require.True(t, DestroyBubble(w, e, ecs.EventBubbleCollected))
	require.False(t, DestroyBubble(w, e, ecs.EventBubbleExpired))
	assert.Equal(t, 1, v.released)
	assert.Len(t, w.Events().Drain(), 1)
}

func TestBubbleSystemRemovesOnePerCollision(t *testing.T) {
	w := ecs.NewWorld()
	addChain(w, newChain(cp.Vector{}, 15, 1))
	addBubble(w, cp.Vector{X: 5}, 16)
	addBubble(w, cp.Vector{X: 300}, 16)
	addBubble(w, cp.Vector{X: 400}, 16)
	require.Equal(t, 3, ecs.Count(w, component.BubbleComponent.Kind()))

	NewBubbleSystem().Update(w, frameDT)

	assert.Equal(t, 2, ecs.Count(w, component.BubbleComponent.Kind()))
}
