package core

import "time"

// DefaultMaxDelta caps a single frame delta so a stall (debugger, suspended
// terminal) does not jump the animation.
const DefaultMaxDelta = 0.1

// Clock measures the time between frames in seconds.
type Clock struct {
	MaxDelta float64

	now     func() time.Time
	last    time.Time
	elapsed float64
	running bool
}

func NewClock() *Clock {
	return &Clock{MaxDelta: DefaultMaxDelta, now: time.Now}
}

// Start resets the clock.
func (c *Clock) Start() {
	c.last = c.now()
	c.elapsed = 0
	c.running = true
}

// Stop freezes the clock. Delta returns 0 until the next Start.
func (c *Clock) Stop() {
	c.running = false
}

// Delta returns the seconds since the previous call (or Start), capped at
// MaxDelta when MaxDelta is positive.
func (c *Clock) Delta() float64 {
	if !c.running {
		return 0
	}
	now := c.now()
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if c.MaxDelta > 0 && dt > c.MaxDelta {
		dt = c.MaxDelta
	}
	c.elapsed += dt
	return dt
}

// Elapsed returns the sum of all deltas since Start.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
