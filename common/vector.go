package common

import "github.com/jakecoffman/cp"

// Vector arithmetic comes from cp.Vector (Add, Sub, Mult, Length, LengthSq,
// Lerp, Clamp). The helpers here cover the cases where a zero vector has no
// direction.

// V is shorthand for cp.Vector{X: x, Y: y}.
func V(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}

// SafeNormalize returns the unit vector of v. ok is false for the zero vector,
// in which case the result must not be used.
func SafeNormalize(v cp.Vector) (cp.Vector, bool) {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}, false
	}
	return v.Mult(1 / l), true
}

// ScaleToLength rescales v to exactly length. Unlike cp.Vector.Clamp it also
// grows short vectors. A zero vector is returned unchanged with ok == false.
func ScaleToLength(v cp.Vector, length float64) (cp.Vector, bool) {
	l := v.Length()
	if l == 0 {
		return v, false
	}
	return v.Mult(length / l), true
}
