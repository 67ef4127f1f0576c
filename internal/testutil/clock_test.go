package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock_ReturnsFrozenTime(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	assert.Equal(t, start, clock.Now())

	// Does not move on its own
	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start, clock.Now())
}

func TestFixedClock_Set(t *testing.T) {
	clock := NewFixedClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	later := time.Date(2026, 4, 1, 12, 30, 0, 0, time.UTC)
	clock.Set(later)

	assert.Equal(t, later, clock.Now())
}

func TestFixedClock_Advance(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	clock.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clock.Now())

	// Negative durations move backward
	clock.Advance(-30 * time.Minute)
	assert.Equal(t, start.Add(60*time.Minute), clock.Now())
}

func TestFixedClock_DayBoundary(t *testing.T) {
	// Stepping 24h forward changes the calendar day, which is what the
	// attendance toggle keys on.
	clock := NewFixedClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, "2026-03-02", clock.Now().Format("2006-01-02"))

	clock.Advance(24 * time.Hour)
	assert.Equal(t, "2026-03-03", clock.Now().Format("2006-01-02"))
}

func TestFixedClock_ThreadSafe(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	const numGoroutines = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			clock.Advance(time.Millisecond)
			_ = clock.Now()
		}()
	}

	wg.Wait()

	// Every advance landed exactly once
	assert.Equal(t, start.Add(numGoroutines*time.Millisecond), clock.Now())
}
