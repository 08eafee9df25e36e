package sim

import (
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bubbleworm/common"
)

// Placement picks a bubble position from two unit randoms drawn by the
// controller, so placement stays reproducible under a fixed seed.
type Placement interface {
	Place(rx, ry float64) (cp.Vector, error)
}

// RectPlacement is uniform inside Field.
type RectPlacement struct {
	Field Rect
}

func (p RectPlacement) Place(rx, ry float64) (cp.Vector, error) {
	return cp.Vector{
		X: common.RandRange(rx, p.Field.Min.X, p.Field.Max.X),
		Y: common.RandRange(ry, p.Field.Min.Y, p.Field.Max.Y),
	}, nil
}

// ScriptPlacement runs a tengo script per spawn. The script sees rx, ry,
// min_x, min_y, max_x, max_y and must assign x and y. Results are clamped to
// the field.
type ScriptPlacement struct {
	name     string
	field    Rect
	compiled *tengo.Compiled
}

var placementInputs = []string{"rx", "ry", "min_x", "min_y", "max_x", "max_y"}

func NewScriptPlacement(name string, src []byte, field Rect) (*ScriptPlacement, error) {
	script := tengo.NewScript(src)
	for _, in := range placementInputs {
		_ = script.Add(in, 0.0)
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("sim: compile placement script %s: %w", name, err)
	}
	p := &ScriptPlacement{name: name, field: field, compiled: compiled}
	// Globals only become defined once the script has run.
	if err := p.run(0.5, 0.5); err != nil {
		return nil, err
	}
	if !compiled.IsDefined("x") || !compiled.IsDefined("y") {
		return nil, fmt.Errorf("sim: placement script %s must define x and y", name)
	}
	return p, nil
}

func (p *ScriptPlacement) Place(rx, ry float64) (cp.Vector, error) {
	if err := p.run(rx, ry); err != nil {
		return cp.Vector{}, err
	}

	x := p.compiled.Get("x").Float()
	y := p.compiled.Get("y").Float()
	if math.IsNaN(x) || math.IsNaN(y) {
		return cp.Vector{}, fmt.Errorf("sim: placement script %s produced NaN", p.name)
	}
	return p.field.Clamp(cp.Vector{X: x, Y: y}), nil
}

func (p *ScriptPlacement) run(rx, ry float64) error {
	values := []float64{rx, ry, p.field.Min.X, p.field.Min.Y, p.field.Max.X, p.field.Max.Y}
	for i, in := range placementInputs {
		if err := p.compiled.Set(in, values[i]); err != nil {
			return fmt.Errorf("sim: placement script %s: set %s: %w", p.name, in, err)
		}
	}
	if err := p.compiled.Run(); err != nil {
		return fmt.Errorf("sim: run placement script %s: %w", p.name, err)
	}
	return nil
}
