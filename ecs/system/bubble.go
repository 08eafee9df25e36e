package system

import (
	"github.com/milk9111/bubbleworm/ecs"
	"github.com/milk9111/bubbleworm/ecs/component"
)

// BubbleSystem resolves head pickups, spins surviving bubbles, advances their
// shrink, and expires the ones that finished shrinking. It must run after
// ChainSystem so pickups use this frame's head position.
type BubbleSystem struct{}

func NewBubbleSystem() *BubbleSystem {
	return &BubbleSystem{}
}

func (s *BubbleSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	var chain *component.Chain
	if e, ok := ecs.First(w, component.ChainComponent.Kind()); ok {
		chain, _ = ecs.Get(w, e, component.ChainComponent.Kind())
	}

	ecs.ForEach(w, component.BubbleComponent.Kind(), func(e ecs.Entity, b *component.Bubble) {
		if chain != nil && Touches(b, chain) {
			DestroyBubble(w, e, ecs.EventBubbleCollected)
			return
		}

		b.Angle += b.Spin * dt

		visual, _ := ecs.Get(w, e, component.VisualComponent.Kind())
		if visual != nil && visual.Handle != nil {
			visual.Handle.SetAngle(b.Angle)
		}

		shrink, ok := ecs.Get(w, e, component.ShrinkComponent.Kind())
		if !ok {
			return
		}
		shrink.Elapsed += dt
		b.Scale = shrink.Value()
		if visual != nil && visual.Handle != nil {
			visual.Handle.SetScale(b.Scale)
		}
		if shrink.Done() {
			DestroyBubble(w, e, ecs.EventBubbleExpired)
		}
	})
}

// Touches reports whether the chain head overlaps the bubble.
func Touches(b *component.Bubble, c *component.Chain) bool {
	reach := b.Radius() + c.Params.CollisionRadius
	return b.Position.DistanceSq(c.Head) < reach*reach
}

// DestroyBubble releases the bubble's visual and destroys the entity. It is
// a no-op for an entity that is already gone, so collection and expiry can
// never both release the same visual.
func DestroyBubble(w *ecs.World, e ecs.Entity, reason string) bool {
	b, ok := ecs.Get(w, e, component.BubbleComponent.Kind())
	if !ok {
		return false
	}
	evt := ecs.BubbleEvent{Entity: e, X: b.Position.X, Y: b.Position.Y, Radius: b.Radius()}

	if visual, ok := ecs.Get(w, e, component.VisualComponent.Kind()); ok && visual.Handle != nil {
		visual.Handle.Release()
		visual.Handle = nil
	}
	if !ecs.DestroyEntity(w, e) {
		return false
	}

	w.Events().Push(ecs.Event{Type: reason, Data: evt})
	return true
}
