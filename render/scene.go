// Package render draws the simulation's procedural circle sprites with ebiten.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bubbleworm/ecs/component"
	"github.com/milk9111/bubbleworm/prefabs"
)

var ErrUnknownAsset = errors.New("render: unknown asset")

type circleAsset struct {
	radius float64
	fill   color.Color
	stroke color.Color
	img    *ebiten.Image
}

// Scene keeps live sprites in draw layers. It implements sim.VisualFactory.
type Scene struct {
	assets map[string]*circleAsset
	layers map[int][]*Sprite
}

func NewScene() *Scene {
	return &Scene{
		assets: make(map[string]*circleAsset),
		layers: make(map[int][]*Sprite),
	}
}

// NewSceneFromSpec registers every sprite in spec.
func NewSceneFromSpec(spec *prefabs.SpriteSetSpec) (*Scene, error) {
	s := NewScene()
	if spec == nil {
		return s, nil
	}
	for _, c := range spec.Sprites {
		if err := s.RegisterCircle(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RegisterCircle adds or replaces a circle asset. Replacing an asset keeps
// live sprites and redraws them with the new look.
func (s *Scene) RegisterCircle(c prefabs.CircleSpec) error {
	if c.Name == "" {
		return fmt.Errorf("render: circle asset needs a name")
	}
	if c.Radius <= 0 {
		return fmt.Errorf("render: circle %s: radius %g", c.Name, c.Radius)
	}

	asset := &circleAsset{radius: c.Radius, fill: color.White, stroke: color.Black}
	if c.Fill != nil && c.Fill.Color != nil {
		asset.fill = c.Fill.Color
	}
	if c.Stroke != nil && c.Stroke.Color != nil {
		asset.stroke = c.Stroke.Color
	}
	if old, ok := s.assets[c.Name]; ok && old.img != nil {
		old.img.Deallocate()
	}
	s.assets[c.Name] = asset
	return nil
}

func (s *Scene) Radius(asset string) (float64, bool) {
	a, ok := s.assets[asset]
	if !ok {
		return 0, false
	}
	return a.radius, true
}

func (s *Scene) NewVisual(asset string, layer int, pos cp.Vector, angle float64) (component.VisualHandle, error) {
	if _, ok := s.assets[asset]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	sp := &Sprite{
		scene: s,
		asset: asset,
		layer: layer,
		pos:   pos,
		angle: angle,
		scale: 1,
	}
	s.layers[layer] = append(s.layers[layer], sp)
	return sp, nil
}

// Len is the number of live sprites.
func (s *Scene) Len() int {
	n := 0
	for _, l := range s.layers {
		n += len(l)
	}
	return n
}

// Layer returns a copy of the live sprites in layer, in draw order.
func (s *Scene) Layer(layer int) []*Sprite {
	return append([]*Sprite(nil), s.layers[layer]...)
}

func (s *Scene) remove(sp *Sprite) bool {
	sprites := s.layers[sp.layer]
	for i, other := range sprites {
		if other != sp {
			continue
		}
		copy(sprites[i:], sprites[i+1:])
		sprites[len(sprites)-1] = nil
		sprites = sprites[:len(sprites)-1]
		if len(sprites) == 0 {
			delete(s.layers, sp.layer)
		} else {
			s.layers[sp.layer] = sprites
		}
		return true
	}
	return false
}

func (s *Scene) layerOrder() []int {
	order := make([]int, 0, len(s.layers))
	for layer := range s.layers {
		order = append(order, layer)
	}
	sort.Ints(order)
	return order
}

// Draw renders layers in ascending order.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s == nil || screen == nil {
		return
	}

	for _, layer := range s.layerOrder() {
		for _, sp := range s.layers[layer] {
			asset, ok := s.assets[sp.asset]
			if !ok {
				continue
			}
			img := asset.image()

			half := float64(img.Bounds().Dx()) / 2
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-half, -half)
			op.GeoM.Scale(sp.scale, sp.scale)
			op.GeoM.Rotate(sp.angle * math.Pi / 180)
			op.GeoM.Translate(sp.pos.X, sp.pos.Y)
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(img, op)
		}
	}
}

// image draws the circle once and caches it. The radial line makes the
// sprite's rotation visible.
func (a *circleAsset) image() *ebiten.Image {
	if a.img != nil {
		return a.img
	}

	size := int(math.Ceil(a.radius*2)) + 2
	c := float32(size) / 2
	r := float32(a.radius)

	img := ebiten.NewImage(size, size)
	vector.DrawFilledCircle(img, c, c, r, a.fill, true)
	vector.StrokeCircle(img, c, c, r-0.5, 1, a.stroke, true)
	vector.StrokeLine(img, c, c, c+r*0.7, c, 1, a.stroke, true)
	a.img = img
	return img
}
