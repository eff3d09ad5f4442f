package poll

import "time"

// FakeClock is a virtual Clock for tests. Sleep advances the clock instantly
// and records the requested duration; no real time passes.
//
// FakeClock is not safe for concurrent use, matching the single-threaded
// callers it is designed to test.
type FakeClock struct {
	now    time.Time
	Sleeps []time.Duration

	// OnSleep, when non-nil, is invoked after each Sleep with the slept
	// duration. Tests use it to mutate fake transports between poll ticks.
	OnSleep func(d time.Duration)
}

// NewFakeClock creates a FakeClock starting at an arbitrary fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time { return c.now }

func (c *FakeClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
	c.Sleeps = append(c.Sleeps, d)
	if c.OnSleep != nil {
		c.OnSleep(d)
	}
}

// Advance moves the clock forward without recording a sleep.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
