package models

import (
	"fmt"
	"math"
	"time"
)

// Display interval bounds, inclusive.
const (
	DefaultDisplayInterval = time.Second
	MinDisplayInterval     = 100 * time.Millisecond
	MaxDisplayInterval     = 60 * time.Second
)

// Settings is the persisted stopwatch configuration
type Settings struct {
	// Seconds between automatic renders while the stopwatch runs
	DisplayInterval float64 `yaml:"display_interval" json:"display_interval"`
}

// DefaultSettings returns Settings with default values
func DefaultSettings() *Settings {
	return &Settings{
		DisplayInterval: DefaultDisplayInterval.Seconds(),
	}
}

// Interval returns the display interval as a duration
func (s *Settings) Interval() time.Duration {
	return IntervalFromSeconds(s.DisplayInterval)
}

// Validate checks the settings against the interval bounds
func (s *Settings) Validate() error {
	return ValidateInterval(s.Interval())
}

// IntervalFromSeconds converts a user-supplied number of seconds to a duration
func IntervalFromSeconds(seconds float64) time.Duration {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0
	}
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// ValidateInterval reports whether d lies within [MinDisplayInterval, MaxDisplayInterval]
func ValidateInterval(d time.Duration) error {
	if d < MinDisplayInterval || d > MaxDisplayInterval {
		return fmt.Errorf("interval %gs outside [%g, %g] seconds",
			d.Seconds(), MinDisplayInterval.Seconds(), MaxDisplayInterval.Seconds())
	}
	return nil
}
