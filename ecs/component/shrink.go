package component

import "github.com/milk9111/bubbleworm/common"

// Shrink linearly interpolates a scale from From to To over Duration time
// units. It replaces a host tween with a pure function of elapsed time.
type Shrink struct {
	Elapsed  float64
	Duration float64
	From     float64
	To       float64
}

func (s *Shrink) Value() float64 {
	if s.Duration <= 0 {
		return s.To
	}
	return common.Lerp(s.From, s.To, common.Clamp01(s.Elapsed/s.Duration))
}

func (s *Shrink) Done() bool {
	return s.Elapsed >= s.Duration
}

var ShrinkComponent = NewComponent[Shrink]()
