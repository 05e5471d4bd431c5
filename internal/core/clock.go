package core

import "time"

// DefaultTickInterval is the number of seconds between two logic ticks.
const DefaultTickInterval = 0.2

// Clock is a monotonic time source measured in seconds.
type Clock interface {
	Now() float64
}

// SystemClock reports seconds elapsed since it was created.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the seconds elapsed since the clock was created.
func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock is a clock that only moves when told to. Used by tests and replays.
type ManualClock struct {
	t float64
}

// Now returns the current manual time.
func (c *ManualClock) Now() float64 {
	return c.t
}

// Advance moves the clock forward by dt seconds.
func (c *ManualClock) Advance(dt float64) {
	c.t += dt
}

// Scheduler gates logic ticks on elapsed wall-clock time.
// It is polled once per rendered frame.
type Scheduler struct {
	clock    Clock
	interval float64
	last     float64
}

// NewScheduler creates a scheduler whose first tick is due one interval from now.
func NewScheduler(clock Clock, interval float64) *Scheduler {
	if clock == nil {
		clock = NewSystemClock()
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Scheduler{
		clock:    clock,
		interval: interval,
		last:     clock.Now(),
	}
}

// Due reports whether at least one interval has elapsed since the last tick.
// When it returns true the tick is consumed.
func (s *Scheduler) Due() bool {
	now := s.clock.Now()
	if now-s.last >= s.interval {
		s.last = now
		return true
	}
	return false
}

// Elapsed returns the seconds since the last tick.
func (s *Scheduler) Elapsed() float64 {
	return s.clock.Now() - s.last
}

// Interval returns the current tick interval in seconds.
func (s *Scheduler) Interval() float64 {
	return s.interval
}

// SetInterval changes the tick interval. Non-positive values are ignored.
func (s *Scheduler) SetInterval(interval float64) {
	if interval > 0 {
		s.interval = interval
	}
}
