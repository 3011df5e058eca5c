// Package clock tracks frame deltas and elapsed time.
package clock

import "time"

// Clock measures time between frames. Times are reported in seconds.
type Clock struct {
	// AutoStart makes the first Delta call start a stopped clock.
	AutoStart bool

	now func() time.Time

	start   time.Time
	last    time.Time
	elapsed float64
	running bool
}

// New creates a stopped clock using the wall clock.
func New(autoStart bool) *Clock {
	return NewWithSource(autoStart, time.Now)
}

// NewWithSource creates a stopped clock reading time from now.
func NewWithSource(autoStart bool, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{AutoStart: autoStart, now: now}
}

// Start resets elapsed time to zero and starts measuring.
func (c *Clock) Start() {
	c.start = c.now()
	c.last = c.start
	c.elapsed = 0
	c.running = true
}

// Stop freezes elapsed time.
func (c *Clock) Stop() {
	c.Elapsed()
	c.running = false
	c.AutoStart = false
}

// Running reports whether the clock is measuring.
func (c *Clock) Running() bool {
	return c.running
}

// Delta returns seconds since the previous Delta call (or since Start) and
// accumulates them into the elapsed time. A stopped clock returns 0 unless
// AutoStart is set, in which case it starts and returns 0.
func (c *Clock) Delta() float64 {
	if c.AutoStart && !c.running {
		c.Start()
		return 0
	}
	if !c.running {
		return 0
	}

	t := c.now()
	d := t.Sub(c.last).Seconds()
	c.last = t
	c.elapsed += d
	return d
}

// Elapsed returns total seconds accumulated since Start.
func (c *Clock) Elapsed() float64 {
	c.Delta()
	return c.elapsed
}
