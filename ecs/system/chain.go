package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bubbleworm/common"
	"github.com/milk9111/bubbleworm/ecs"
	"github.com/milk9111/bubbleworm/ecs/component"
)

// ChainSystem moves the head of every chain and drags the tail behind it.
type ChainSystem struct{}

func NewChainSystem() *ChainSystem {
	return &ChainSystem{}
}

func (s *ChainSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.ChainComponent.Kind(), func(e ecs.Entity, c *component.Chain) {
		StepChain(c, dt)
	})
}

// StepChain advances the chain by one frame.
func StepChain(c *component.Chain, dt float64) {
	if c == nil || len(c.Segments) == 0 {
		return
	}
	p := c.Params

	c.Head = c.Head.Add(c.Direction.Mult(c.Speed * dt))
	c.Segments[0] = c.Head
	setPartPosition(c, 0)

	for i := 1; i < len(c.Segments); i++ {
		dst := c.Segments[i-1]
		src := c.Segments[i].Lerp(dst, p.FollowFactor)

		gap := dst.Sub(src)
		lengthSq := gap.LengthSq()
		switch {
		case lengthSq > p.MaxGap*p.MaxGap:
			src = pushToGap(src, gap, p.MaxGap)
		case lengthSq < p.MinGap*p.MinGap:
			src = pushToGap(src, gap, p.MinGap)
		}

		c.Segments[i] = src
		setPartPosition(c, i)
	}

	// Per-frame decay; tuned for a fixed 60 TPS loop.
	if c.Speed > 0 {
		c.Speed *= p.SpeedDecay
		if c.Speed < p.SpeedFloor {
			c.Speed = 0
		}
	}
}

// pushToGap moves src along gap so that it ends up exactly length away from
// the predecessor. A zero gap has no direction and is left alone.
func pushToGap(src, gap cp.Vector, length float64) cp.Vector {
	scaled, ok := common.ScaleToLength(gap, length)
	if !ok {
		return src
	}
	return src.Add(gap.Sub(scaled))
}

func setPartPosition(c *component.Chain, i int) {
	if i < len(c.Parts) && c.Parts[i] != nil {
		c.Parts[i].SetPosition(c.Segments[i])
	}
}

// ApplyClick points the chain at p and adds a speed impulse. A click exactly
// on the head has no direction and leaves the chain untouched.
func ApplyClick(c *component.Chain, p cp.Vector) bool {
	if c == nil {
		return false
	}
	dir, ok := common.SafeNormalize(p.Sub(c.Head))
	if !ok {
		return false
	}

	c.Destination = p
	c.Direction = dir
	if c.Speed <= c.Params.ImpulseCap {
		c.Speed += c.Params.Impulse
	}
	return true
}
