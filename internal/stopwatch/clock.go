package stopwatch

import "time"

// Clock is the time source of a Stopwatch. Tests inject a fake to drive the
// state machine and the display loop deterministically.
type Clock interface {
	// Now returns the current time. Only differences between readings are used.
	Now() time.Time
	// After delivers the time on the returned channel once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the default Clock implementation using the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
