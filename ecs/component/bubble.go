package component

import "github.com/jakecoffman/cp"

// Bubble is a transient collectible. It never moves; it spins and its scale
// is driven by a Shrink component.
type Bubble struct {
	Position   cp.Vector
	Angle      float64 // degrees
	Spin       float64 // degrees per time unit
	Scale      float64
	BaseRadius float64
}

// Radius is derived from the current scale and must not be cached.
func (b *Bubble) Radius() float64 {
	return b.BaseRadius * b.Scale
}

var BubbleComponent = NewComponent[Bubble]()
