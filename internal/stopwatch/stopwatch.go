// Package stopwatch implements the timekeeping state machine of the console
// stopwatch and the background loop that periodically renders it.
package stopwatch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/all-dot-files/stopwatch/internal/models"
	"github.com/all-dot-files/stopwatch/pkg/errors"
	"github.com/all-dot-files/stopwatch/pkg/logger"
)

const resetPrompt = "Are you sure you want to reset the stopwatch? (y/n): "

var (
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Option configures a Stopwatch
type Option func(*Stopwatch)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Stopwatch) {
		s.clock = c
	}
}

// WithOutput sets where notices and renders are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Stopwatch) {
		s.out = w
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Stopwatch) {
		s.log = l
	}
}

// WithDisplayInterval sets the initial display interval. Values outside the
// allowed bounds leave the default in place.
func WithDisplayInterval(d time.Duration) Option {
	return func(s *Stopwatch) {
		if models.ValidateInterval(d) == nil {
			s.interval = d
		}
	}
}

// Stopwatch tracks elapsed time across start/pause/stop cycles and records laps.
//
// mu guards the timekeeping fields and is held across each mutation together
// with the console output it produces, so renders from the display loop and
// caller notices never interleave. lifecycle serializes state transitions with
// starting and joining the display loop; the loop needs mu to render, so it is
// never joined while mu is held.
type Stopwatch struct {
	lifecycle sync.Mutex
	display   *scheduler

	mu       sync.Mutex
	clock    Clock
	out      io.Writer
	log      *slog.Logger
	state    RunState
	elapsed  time.Duration
	anchor   time.Time
	laps     []time.Duration
	interval time.Duration
}

// New creates a stopped Stopwatch
func New(opts ...Option) *Stopwatch {
	s := &Stopwatch{
		clock:    SystemClock,
		out:      os.Stdout,
		log:      logger.Log,
		interval: models.DefaultDisplayInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.display = newScheduler(s.clock, s.tick, s.log)
	return s
}

// Start starts a stopped stopwatch or resumes a paused one. Resuming does not
// restart the display loop.
func (s *Stopwatch) Start() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	switch s.state {
	case Running:
		s.notice("Stopwatch is already running.")
		s.mu.Unlock()
		return errors.New(errors.ErrInvalidState, "start", "stopwatch is already running")
	case Paused:
		s.anchor = s.clock.Now()
		s.state = Running
		fmt.Fprintln(s.out, "Stopwatch resumed.")
		s.log.Debug("stopwatch resumed", "elapsed", s.elapsed)
		s.mu.Unlock()
		return nil
	}
	s.anchor = s.clock.Now()
	s.state = Running
	fmt.Fprintln(s.out, "Stopwatch started.")
	s.log.Debug("stopwatch started", "elapsed", s.elapsed)
	s.mu.Unlock()

	s.display.start()
	return nil
}

// Pause freezes a running stopwatch and stops the display loop.
func (s *Stopwatch) Pause() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	switch s.state {
	case Paused:
		s.notice("Stopwatch is already paused.")
		s.mu.Unlock()
		return errors.New(errors.ErrInvalidState, "pause", "stopwatch is already paused")
	case Stopped:
		s.notice("Stopwatch is not running.")
		s.mu.Unlock()
		return errors.New(errors.ErrInvalidState, "pause", "stopwatch is not running")
	}
	s.accumulate()
	s.state = Paused
	fmt.Fprintf(s.out, "Elapsed time: %s (Stopwatch paused)\n", FormatElapsed(s.elapsed))
	s.log.Debug("stopwatch paused", "elapsed", s.elapsed)
	s.mu.Unlock()

	s.display.stop()
	return nil
}

// Stop stops a running stopwatch and the display loop. A paused stopwatch
// cannot be stopped; resume or reset it instead.
func (s *Stopwatch) Stop() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	if s.state != Running {
		s.notice("Stopwatch is not running.")
		s.mu.Unlock()
		return errors.New(errors.ErrInvalidState, "stop", "stopwatch is not running")
	}
	s.accumulate()
	s.state = Stopped
	fmt.Fprintf(s.out, "Elapsed time: %s (Stopwatch stopped)\n", FormatElapsed(s.elapsed))
	s.log.Debug("stopwatch stopped", "elapsed", s.elapsed)
	s.mu.Unlock()

	s.display.stop()
	return nil
}

// Reset zeroes the stopwatch and clears its laps once c confirms. The question
// is asked before any lock is taken so the display loop keeps running meanwhile.
func (s *Stopwatch) Reset(c Confirmer) error {
	if c == nil || !c.Confirm(resetPrompt) {
		s.mu.Lock()
		fmt.Fprintln(s.out, "Reset cancelled.")
		s.mu.Unlock()
		return errors.New(errors.ErrCancelled, "reset", "reset not confirmed")
	}

	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	s.elapsed = 0
	s.state = Stopped
	s.laps = nil
	fmt.Fprintln(s.out, "Stopwatch reset.")
	s.log.Debug("stopwatch reset")
	s.mu.Unlock()

	s.display.stop()
	return nil
}

// Lap records the current elapsed time. Only a running stopwatch records laps.
func (s *Stopwatch) Lap() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Running {
		s.notice("Cannot record lap: Stopwatch is not running.")
		return errors.New(errors.ErrInvalidState, "lap", "stopwatch is not running")
	}
	current := s.current()
	s.laps = append(s.laps, current)
	fmt.Fprintf(s.out, "Lap %d: Elapsed time: %s\n", len(s.laps), FormatElapsed(current))
	return nil
}

// DisplayLaps prints every recorded lap, 1-indexed.
func (s *Stopwatch) DisplayLaps() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.laps) == 0 {
		fmt.Fprintln(s.out, "No laps recorded.")
		return
	}
	fmt.Fprintln(s.out, "Recorded Laps:")
	for i, lap := range s.laps {
		fmt.Fprintf(s.out, "Lap %d: Elapsed time: %s\n", i+1, FormatElapsed(lap))
	}
}

// Display prints the current elapsed time, the state and the progress bar.
func (s *Stopwatch) Display() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.render()
}

// SetDisplayInterval changes the period of the display loop. It takes effect
// after the loop's current wait.
func (s *Stopwatch) SetDisplayInterval(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := models.ValidateInterval(d); err != nil {
		s.notice(fmt.Sprintf("Invalid interval. Please enter a number between %g and %g seconds.",
			models.MinDisplayInterval.Seconds(), models.MaxDisplayInterval.Seconds()))
		return errors.Wrap(err, errors.ErrInvalidInput, "set_interval", "display interval out of range")
	}
	s.interval = d
	fmt.Fprintf(s.out, "Display interval set to %g seconds.\n", d.Seconds())
	return nil
}

// DisplayInterval returns the current display interval.
func (s *Stopwatch) DisplayInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Elapsed returns the total elapsed time, including the running interval.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current()
}

// State returns the current run state.
func (s *Stopwatch) State() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Laps returns a copy of the recorded laps.
func (s *Stopwatch) Laps() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.laps...)
}

// Close stops the display loop. The timekeeping state is left untouched.
func (s *Stopwatch) Close() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	s.display.stop()
}

func (s *Stopwatch) displayActive() bool {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	return s.display.active()
}

// tick is one iteration of the display loop.
func (s *Stopwatch) tick() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running {
		s.render()
	}
	return s.interval
}

// Must be called with mu held.
func (s *Stopwatch) current() time.Duration {
	if s.state != Running {
		return s.elapsed
	}
	delta := s.clock.Now().Sub(s.anchor)
	if delta < 0 {
		delta = 0
	}
	return s.elapsed + delta
}

// Must be called with mu held.
func (s *Stopwatch) accumulate() {
	s.elapsed = s.current()
}

// Must be called with mu held.
func (s *Stopwatch) render() {
	total := s.current()
	fmt.Fprintf(s.out, "Elapsed time: %s %s\n", FormatElapsed(total), stateLabel(s.state))
	fmt.Fprintln(s.out, ProgressBar(total))
}

// Must be called with mu held.
func (s *Stopwatch) notice(msg string) {
	fmt.Fprintln(s.out, yellow(msg))
}

func stateLabel(state RunState) string {
	label := "(" + state.String() + ")"
	switch state {
	case Running:
		return green(label)
	case Paused:
		return yellow(label)
	default:
		return red(label)
	}
}
