package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bubbleworm/ecs"
	"github.com/milk9111/bubbleworm/ecs/component"
)

type fakeVisual struct {
	pos      cp.Vector
	angle    float64
	scale    float64
	released int
}

func (v *fakeVisual) SetPosition(pos cp.Vector) { v.pos = pos }
func (v *fakeVisual) SetAngle(deg float64)      { v.angle = deg }
func (v *fakeVisual) SetScale(scale float64)    { v.scale = scale }
func (v *fakeVisual) Release()                  { v.released++ }

func newChain(head cp.Vector, spacing float64, n int) *component.Chain {
	c := &component.Chain{
		Head:        head,
		Destination: head,
		Params:      component.DefaultChainParams(),
	}
	for i := 0; i < n; i++ {
		c.Segments = append(c.Segments, cp.Vector{X: head.X + float64(i)*spacing, Y: head.Y})
		c.Parts = append(c.Parts, &fakeVisual{})
	}
	return c
}

func addChain(w *ecs.World, c *component.Chain) ecs.Entity {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ChainComponent.Kind(), c); err != nil {
		panic(err)
	}
	return e
}

func addBubble(w *ecs.World, pos cp.Vector, baseRadius float64) (ecs.Entity, *fakeVisual) {
	e := ecs.CreateEntity(w)
	v := &fakeVisual{}
	if err := ecs.Add(w, e, component.BubbleComponent.Kind(), &component.Bubble{Position: pos, Scale: 1, BaseRadius: baseRadius}); err != nil {
		panic(err)
	}
	if err := ecs.Add(w, e, component.ShrinkComponent.Kind(), &component.Shrink{Duration: 8, From: 1, To: 0.2}); err != nil {
		panic(err)
	}
	if err := ecs.Add(w, e, component.VisualComponent.Kind(), &component.Visual{Handle: v}); err != nil {
		panic(err)
	}
	return e, v
}
