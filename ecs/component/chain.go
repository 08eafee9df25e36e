package component

import "github.com/jakecoffman/cp"

// ChainParams tunes chain motion. The follow factor and speed decay are
// applied once per frame regardless of dt.
type ChainParams struct {
	FollowFactor    float64
	MinGap          float64
	MaxGap          float64
	SpeedDecay      float64
	SpeedFloor      float64
	Impulse         float64
	ImpulseCap      float64
	CollisionRadius float64
}

// DefaultChainParams matches prefabs/player.yaml.
func DefaultChainParams() ChainParams {
	return ChainParams{
		FollowFactor:    0.1,
		MinGap:          10,
		MaxGap:          20,
		SpeedDecay:      0.98,
		SpeedFloor:      0.06,
		Impulse:         60,
		ImpulseCap:      300,
		CollisionRadius: 12,
	}
}

// Chain is the player worm. Segments[0] mirrors Head after every step; the
// remaining segments trail it elastically.
type Chain struct {
	Segments    []cp.Vector
	Head        cp.Vector
	Destination cp.Vector
	Direction   cp.Vector
	Speed       float64
	Parts       []VisualHandle
	Params      ChainParams
}

var ChainComponent = NewComponent[Chain]()
