package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleOnceReplacesSameKey(t *testing.T) {
	tm := New()
	fired := []string{}

	tm.ScheduleOnce("spawn", 1.0, func() { fired = append(fired, "first") })
	tm.ScheduleOnce("spawn", 2.0, func() { fired = append(fired, "second") })
	require.Equal(t, 1, tm.Pending())

	due, ok := tm.Due("spawn")
	require.True(t, ok)
	assert.Equal(t, 2.0, due)

	tm.Advance(1.5)
	assert.Empty(t, fired)
	tm.Advance(0.5)
	assert.Equal(t, []string{"second"}, fired)
	assert.Zero(t, tm.Pending())
}

func TestAdvanceFiresInDueOrder(t *testing.T) {
	tm := New()
	var fired []string
	tm.ScheduleOnce("c", 0.3, func() { fired = append(fired, "c") })
	tm.ScheduleOnce("b", 0.1, func() { fired = append(fired, "b") })
	tm.ScheduleOnce("a", 0.3, func() { fired = append(fired, "a") })

	tm.Advance(1)
	assert.Equal(t, []string{"b", "a", "c"}, fired)
	assert.Equal(t, 1.0, tm.Now())
}

func TestCallbackMayReschedule(t *testing.T) {
	tm := New()
	count := 0
	var tick func()
	tick = func() {
		count++
		tm.ScheduleOnce("loop", 0, tick)
	}
	tm.ScheduleOnce("loop", 0.5, tick)

	tm.Advance(0.5)
	assert.Equal(t, 1, count, "rescheduled timer must wait for the next advance")
	assert.Equal(t, 1, tm.Pending())

	tm.Advance(0)
	assert.Equal(t, 2, count)
}

func TestCancel(t *testing.T) {
	tm := New()
	fired := false
	tm.ScheduleOnce("x", 0.1, func() { fired = true })
	tm.ScheduleOnce("y", 0.1, func() { tm.Cancel("z") })
	tm.ScheduleOnce("z", 0.1, func() { fired = true })

	assert.True(t, tm.Cancel("x"))
	assert.False(t, tm.Cancel("x"))
	tm.Advance(1)
	assert.False(t, fired, "cancelled timers must not fire")
	assert.Zero(t, tm.Pending())
}
