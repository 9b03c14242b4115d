// Package clock abstracts the time source behind plan session timestamps.
//
// Timestamps are persisted in plan files, so every Clock reports UTC without
// a monotonic reading: a time read back from JSON compares equal to the one
// that was written.
package clock

import "time"

// Clock provides an abstraction for time operations to enable deterministic testing.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current system time in UTC, without a monotonic reading.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Round(0)
}

// FakeClock implements Clock with a settable time for testing.
type FakeClock struct {
	current time.Time
}

// NewFakeClock creates a FakeClock reading t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t.UTC()}
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	return c.current
}

// Set moves the fake time to t.
func (c *FakeClock) Set(t time.Time) {
	c.current = t.UTC()
}

// Advance moves the fake time forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
