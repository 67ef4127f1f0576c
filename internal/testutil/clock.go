package testutil

import (
	"sync"
	"time"
)

// FixedClock provides a thread-safe settable wall clock for tests.
//
// Unlike store.SystemClock, FixedClock only moves when told to. This
// pins "today" for the per-day attendance toggle and lets tests step
// across day boundaries without sleeping.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// Now returns the frozen time.
//
// Thread-safe: uses mutex to protect now access.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
//
// Thread-safe: uses mutex to protect now access.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d. Negative d moves it backward.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
