package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bubbleworm/ecs/component"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVisual struct {
	asset    string
	layer    int
	pos      cp.Vector
	angle    float64
	scale    float64
	released int
}

func (v *fakeVisual) SetPosition(pos cp.Vector) { v.pos = pos }
func (v *fakeVisual) SetAngle(deg float64)      { v.angle = deg }
func (v *fakeVisual) SetScale(scale float64)    { v.scale = scale }
func (v *fakeVisual) Release()                  { v.released++ }

type fakeFactory struct {
	radii   map[string]float64
	visuals []*fakeVisual
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{radii: map[string]float64{
		"normal_ball":   16,
		"slimeball_100": 12,
		"slimeball_80":  9.6,
		"slimeball_64":  7.7,
		"slimeball_51":  6.1,
		"slimeball_40":  4.8,
	}}
}

func (f *fakeFactory) NewVisual(asset string, layer int, pos cp.Vector, angle float64) (component.VisualHandle, error) {
	if _, ok := f.radii[asset]; !ok {
		return nil, fmt.Errorf("unknown asset %q", asset)
	}
	v := &fakeVisual{asset: asset, layer: layer, pos: pos, angle: angle, scale: 1}
	f.visuals = append(f.visuals, v)
	return v, nil
}

func (f *fakeFactory) Radius(asset string) (float64, bool) {
	r, ok := f.radii[asset]
	return r, ok
}

func (f *fakeFactory) byAsset(asset string) []*fakeVisual {
	var out []*fakeVisual
	for _, v := range f.visuals {
		if v.asset == asset {
			out = append(out, v)
		}
	}
	return out
}

type fixedPlacement struct {
	at cp.Vector
}

func (p fixedPlacement) Place(float64, float64) (cp.Vector, error) {
	return p.at, nil
}

type failingPlacement struct{}

func (failingPlacement) Place(float64, float64) (cp.Vector, error) {
	return cp.Vector{}, errors.New("boom")
}

// farCorner is outside the worm's spawn rect by more than the pickup reach.
var farCorner = cp.Vector{X: 50, Y: 50}

func newController(t *testing.T, seed uint64, placement Placement, logger *zap.Logger) (*Controller, *fakeFactory) {
	t.Helper()
	factory := newFakeFactory()
	c, err := New(Options{
		Tuning:    DefaultTuning(),
		Visuals:   factory,
		Placement: placement,
		Rand:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Logger:    logger,
	})
	require.NoError(t, err)
	return c, factory
}
