package sim

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bubbleworm/ecs/component"
	"github.com/milk9111/bubbleworm/prefabs"
)

var ErrInvalidTuning = errors.New("sim: invalid tuning")

// Rect is an axis-aligned spawn area.
type Rect struct {
	Min, Max cp.Vector
}

func (r Rect) valid() bool {
	return r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y
}

// Clamp returns p moved inside r.
func (r Rect) Clamp(p cp.Vector) cp.Vector {
	return cp.Vector{X: min(max(p.X, r.Min.X), r.Max.X), Y: min(max(p.Y, r.Min.Y), r.Max.Y)}
}

type Segment struct {
	Sprite string
	Offset cp.Vector
}

type ChainTuning struct {
	Params      component.ChainParams
	Spawn       Rect
	Segments    []Segment
	RenderLayer int
}

type BubbleTuning struct {
	Sprite         string
	ShrinkDuration float64
	ShrinkTo       float64
	SpinMax        float64
	SpawnDelayMin  float64
	SpawnDelayMax  float64
	Field          Rect
	RenderLayer    int
}

// Tuning is every number the simulation reads from prefab specs.
type Tuning struct {
	Chain  ChainTuning
	Bubble BubbleTuning
}

// DefaultTuning mirrors the embedded player.yaml and bubble.yaml.
func DefaultTuning() Tuning {
	return Tuning{
		Chain: ChainTuning{
			Params: component.DefaultChainParams(),
			Spawn:  Rect{Min: cp.Vector{X: 90, Y: 70}, Max: cp.Vector{X: 550, Y: 410}},
			Segments: []Segment{
				{Sprite: "slimeball_100"},
				{Sprite: "slimeball_80", Offset: cp.Vector{X: 18}},
				{Sprite: "slimeball_64", Offset: cp.Vector{X: 28}},
				{Sprite: "slimeball_51", Offset: cp.Vector{X: 38}},
				{Sprite: "slimeball_40", Offset: cp.Vector{X: 48}},
			},
			RenderLayer: 1,
		},
		Bubble: BubbleTuning{
			Sprite:         "normal_ball",
			ShrinkDuration: 8,
			ShrinkTo:       0.2,
			SpinMax:        3,
			SpawnDelayMin:  0.5,
			SpawnDelayMax:  2,
			Field:          Rect{Min: cp.Vector{X: 50, Y: 50}, Max: cp.Vector{X: 590, Y: 430}},
		},
	}
}

// TuningFromSpecs converts loaded prefab specs.
func TuningFromSpecs(player *prefabs.PlayerSpec, bubble *prefabs.BubbleSpec) (Tuning, error) {
	if player == nil || bubble == nil {
		return Tuning{}, fmt.Errorf("%w: missing spec", ErrInvalidTuning)
	}

	t := Tuning{
		Chain: ChainTuning{
			Params: component.ChainParams{
				FollowFactor:    player.FollowFactor,
				MinGap:          player.MinGap,
				MaxGap:          player.MaxGap,
				SpeedDecay:      player.SpeedDecay,
				SpeedFloor:      player.SpeedFloor,
				Impulse:         player.Impulse,
				ImpulseCap:      player.ImpulseCap,
				CollisionRadius: player.CollisionRadius,
			},
			Spawn:       rectFromSpec(player.Spawn),
			RenderLayer: player.RenderLayer.Index,
		},
		Bubble: BubbleTuning{
			Sprite:         bubble.Sprite,
			ShrinkDuration: bubble.ShrinkDuration,
			ShrinkTo:       bubble.ShrinkTo,
			SpinMax:        bubble.SpinMax,
			SpawnDelayMin:  bubble.SpawnDelayMin,
			SpawnDelayMax:  bubble.SpawnDelayMax,
			Field:          rectFromSpec(bubble.Field),
			RenderLayer:    bubble.RenderLayer.Index,
		},
	}
	for _, s := range player.Segments {
		t.Chain.Segments = append(t.Chain.Segments, Segment{Sprite: s.Sprite, Offset: cp.Vector{X: s.OffsetX, Y: s.OffsetY}})
	}

	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func rectFromSpec(r prefabs.RectSpec) Rect {
	return Rect{Min: cp.Vector{X: r.MinX, Y: r.MinY}, Max: cp.Vector{X: r.MaxX, Y: r.MaxY}}
}

func (t Tuning) Validate() error {
	p := t.Chain.Params
	switch {
	case len(t.Chain.Segments) == 0:
		return fmt.Errorf("%w: chain needs at least one segment", ErrInvalidTuning)
	case p.MinGap <= 0 || p.MaxGap < p.MinGap:
		return fmt.Errorf("%w: gap band [%g, %g]", ErrInvalidTuning, p.MinGap, p.MaxGap)
	case p.FollowFactor < 0 || p.FollowFactor > 1:
		return fmt.Errorf("%w: follow factor %g", ErrInvalidTuning, p.FollowFactor)
	case p.SpeedDecay < 0 || p.SpeedDecay >= 1:
		return fmt.Errorf("%w: speed decay %g", ErrInvalidTuning, p.SpeedDecay)
	case p.SpeedFloor < 0 || p.Impulse < 0 || p.ImpulseCap < 0 || p.CollisionRadius < 0:
		return fmt.Errorf("%w: negative chain parameter", ErrInvalidTuning)
	case !t.Chain.Spawn.valid():
		return fmt.Errorf("%w: chain spawn rect", ErrInvalidTuning)
	}

	b := t.Bubble
	switch {
	case b.Sprite == "":
		return fmt.Errorf("%w: bubble sprite", ErrInvalidTuning)
	case b.ShrinkDuration <= 0:
		return fmt.Errorf("%w: shrink duration %g", ErrInvalidTuning, b.ShrinkDuration)
	case b.ShrinkTo <= 0 || b.ShrinkTo >= 1:
		return fmt.Errorf("%w: shrink target %g", ErrInvalidTuning, b.ShrinkTo)
	case b.SpinMax < 0:
		return fmt.Errorf("%w: spin %g", ErrInvalidTuning, b.SpinMax)
	case b.SpawnDelayMin < 0 || b.SpawnDelayMax < b.SpawnDelayMin:
		return fmt.Errorf("%w: spawn delay [%g, %g]", ErrInvalidTuning, b.SpawnDelayMin, b.SpawnDelayMax)
	case !b.Field.valid():
		return fmt.Errorf("%w: bubble field", ErrInvalidTuning)
	}
	return nil
}
