package store

import "time"

// Clock supplies the wall time the recorder keys days and stamps
// check-ins with. Production code uses SystemClock; tests substitute a
// fixed clock to pin "today" and step across day boundaries.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
