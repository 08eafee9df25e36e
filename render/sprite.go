package render

import "github.com/jakecoffman/cp"

// Sprite is one drawn instance of a circle asset.
type Sprite struct {
	scene    *Scene
	asset    string
	layer    int
	pos      cp.Vector
	angle    float64 // degrees
	scale    float64
	released bool
}

func (s *Sprite) SetPosition(pos cp.Vector) { s.pos = pos }
func (s *Sprite) SetAngle(deg float64)      { s.angle = deg }
func (s *Sprite) SetScale(scale float64)    { s.scale = scale }

// Release removes the sprite from its scene. Later calls do nothing.
func (s *Sprite) Release() {
	if s.released {
		return
	}
	s.released = true
	s.scene.remove(s)
}

func (s *Sprite) Asset() string       { return s.asset }
func (s *Sprite) Layer() int          { return s.layer }
func (s *Sprite) Position() cp.Vector { return s.pos }
func (s *Sprite) Angle() float64      { return s.angle }
func (s *Sprite) Scale() float64      { return s.scale }
func (s *Sprite) Released() bool      { return s.released }
