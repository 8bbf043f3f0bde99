package core

import "time"

// Clock is the time source for the loop, animations and scene timers.
// Scenes compute timers from Now() against a stored start, never from tick
// counts, so behavior does not depend on the frame rate.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep blocks the calling goroutine for d.
func (SystemClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// ManualClock is a deterministic clock for tests and replays.
// Sleep advances the clock instead of blocking.
type ManualClock struct {
	now    time.Time
	slept  time.Duration
	sleeps int
}

// NewManualClock creates a clock starting at the given time.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current simulated time.
func (c *ManualClock) Now() time.Time { return c.now }

// Sleep advances the simulated time by d.
func (c *ManualClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	c.now = c.now.Add(d)
	c.slept += d
	c.sleeps++
}

// Advance moves the clock forward without counting as a sleep.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Slept returns the total time spent in Sleep and the number of calls.
func (c *ManualClock) Slept() (time.Duration, int) {
	return c.slept, c.sleeps
}
