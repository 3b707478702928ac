package controller

import "time"

// Timer counts elapsed simulation time towards a duration.
// It works in whole nanoseconds so repeated ticks of the same frame length
// finish on the same tick on every run.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
}

// NewTimer returns a timer that finishes after d.
func NewTimer(d time.Duration) Timer {
	return Timer{duration: d}
}

// Tick advances the timer, saturating at its duration.
func (t *Timer) Tick(dt time.Duration) {
	t.elapsed += dt
	if t.elapsed > t.duration {
		t.elapsed = t.duration
	}
}

// Finished reports whether the elapsed time reached the duration.
func (t *Timer) Finished() bool {
	return t.elapsed >= t.duration
}

// Reset rewinds the timer to zero.
func (t *Timer) Reset() {
	t.elapsed = 0
}

// SetDuration changes the target duration without touching elapsed time.
func (t *Timer) SetDuration(d time.Duration) {
	t.duration = d
	if t.elapsed > d {
		t.elapsed = d
	}
}

// Elapsed returns the time counted so far.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}
