package sim

import (
	"testing"

	"github.com/milk9111/bubbleworm/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuningFromEmbeddedSpecsMatchesDefault(t *testing.T) {
	prev := prefabs.Dir
	prefabs.Dir = t.TempDir()
	t.Cleanup(func() { prefabs.Dir = prev })

	player, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	bubble, err := prefabs.LoadBubbleSpec()
	require.NoError(t, err)

	tuning, err := TuningFromSpecs(player, bubble)
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), tuning)
}

func TestTuningValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"no_segments", func(t *Tuning) { t.Chain.Segments = nil }},
		{"inverted_gap", func(t *Tuning) { t.Chain.Params.MaxGap = 5 }},
		{"decay_not_below_one", func(t *Tuning) { t.Chain.Params.SpeedDecay = 1 }},
		{"follow_over_one", func(t *Tuning) { t.Chain.Params.FollowFactor = 1.5 }},
		{"negative_impulse", func(t *Tuning) { t.Chain.Params.Impulse = -1 }},
		{"zero_shrink", func(t *Tuning) { t.Bubble.ShrinkDuration = 0 }},
		{"shrink_to_one", func(t *Tuning) { t.Bubble.ShrinkTo = 1 }},
		{"inverted_delay", func(t *Tuning) { t.Bubble.SpawnDelayMax = 0.1 }},
		{"inverted_field", func(t *Tuning) { t.Bubble.Field.Max.X = 0 }},
		{"no_sprite", func(t *Tuning) { t.Bubble.Sprite = "" }},
	}

	require.NoError(t, DefaultTuning().Validate())
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tuning := DefaultTuning()
			c.mutate(&tuning)
			assert.ErrorIs(t, tuning.Validate(), ErrInvalidTuning)
		})
	}

	_, err := TuningFromSpecs(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTuning)
}
