// Package clock provides deterministic one-shot timers advanced by the frame
// loop rather than by wall time.
package clock

import (
	"cmp"
	"slices"
)

type timer struct {
	key string
	due float64
	fn  func()
}

// Timers holds keyed one-shot callbacks. At most one timer exists per key.
type Timers struct {
	now     float64
	pending map[string]*timer
}

func New() *Timers {
	return &Timers{pending: map[string]*timer{}}
}

// Now returns the accumulated clock time.
func (t *Timers) Now() float64 {
	return t.now
}

// ScheduleOnce runs fn after delay time units. Scheduling a key that is
// already pending replaces the earlier timer.
func (t *Timers) ScheduleOnce(key string, delay float64, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	if t.pending == nil {
		t.pending = map[string]*timer{}
	}
	t.pending[key] = &timer{key: key, due: t.now + delay, fn: fn}
}

// Cancel drops the timer for key and reports whether one was pending.
func (t *Timers) Cancel(key string) bool {
	if _, ok := t.pending[key]; !ok {
		return false
	}
	delete(t.pending, key)
	return true
}

// Pending returns the number of scheduled timers.
func (t *Timers) Pending() int {
	return len(t.pending)
}

// Due returns the clock time at which key fires.
func (t *Timers) Due(key string) (float64, bool) {
	tm, ok := t.pending[key]
	if !ok {
		return 0, false
	}
	return tm.due, true
}

// Advance moves the clock forward by dt and fires every timer that came due,
// ordered by due time then key. A timer is removed before its callback runs,
// so the callback may schedule the same key again; such a timer is not fired
// within the same Advance even if its delay is zero.
func (t *Timers) Advance(dt float64) {
	if dt > 0 {
		t.now += dt
	}

	var due []*timer
	for _, tm := range t.pending {
		if tm.due <= t.now {
			due = append(due, tm)
		}
	}
	if len(due) == 0 {
		return
	}
	slices.SortFunc(due, func(a, b *timer) int {
		if c := cmp.Compare(a.due, b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})

	for _, tm := range due {
		// An earlier callback may have cancelled or replaced this key.
		if t.pending[tm.key] != tm {
			continue
		}
		delete(t.pending, tm.key)
		tm.fn()
	}
}
