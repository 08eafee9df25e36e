package common

const (
	BaseWidth  = 640
	BaseHeight = 480
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// RandRange maps a unit random r in [0, 1) onto [lo, hi).
func RandRange(r, lo, hi float64) float64 {
	return lo + r*(hi-lo)
}
