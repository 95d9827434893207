package clientes

import "time"

// Clock supplies the current time to time-dependent validators.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time
}

// ClockFunc implements Clock interface
type ClockFunc func() time.Time

func (fn ClockFunc) Now() time.Time {
	return fn()
}

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)
