package testing

import (
	"sync"
	"time"
)

// FakeClock is an animation clock that moves only when told to. Headless
// hosts step it one frame at a time so fades resolve the same way on every
// run. It is safe for concurrent use.
type FakeClock struct {
	mu     sync.Mutex
	origin time.Time
	now    time.Time
	frames int
}

// NewFakeClock returns a clock parked at the Unix epoch.
func NewFakeClock() *FakeClock {
	origin := time.Unix(0, 0).UTC()
	return &FakeClock{origin: origin, now: origin}
}

// Now implements animation.Clock.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d without counting a frame.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Step advances one FrameDuration and counts it as a frame. It has the
// shape engine.Runner.Settle expects for its advance callback.
func (c *FakeClock) Step() {
	c.mu.Lock()
	c.now = c.now.Add(FrameDuration)
	c.frames++
	c.mu.Unlock()
}

// Frames returns how many times Step has run.
func (c *FakeClock) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Elapsed returns the total time advanced.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(c.origin)
}
