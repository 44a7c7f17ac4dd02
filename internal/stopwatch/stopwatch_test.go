package stopwatch

import (
	"strings"
	"testing"
	"time"

	"github.com/all-dot-files/stopwatch/pkg/errors"
)

func TestNewStopwatchIsStopped(t *testing.T) {
	sw, _, _ := newTestStopwatch(t)

	if sw.State() != Stopped {
		t.Fatalf("expected Stopped, got %s", sw.State())
	}
	if sw.Elapsed() != 0 {
		t.Fatalf("expected zero elapsed, got %v", sw.Elapsed())
	}
	if sw.DisplayInterval() != time.Second {
		t.Fatalf("expected 1s interval, got %v", sw.DisplayInterval())
	}
	if sw.displayActive() {
		t.Fatal("display loop should not run before start")
	}
}

func TestLapPauseResumeStopScenario(t *testing.T) {
	sw, clock, out := newTestStopwatch(t)

	if err := sw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	clock.Advance(2500 * time.Millisecond)

	if err := sw.Lap(); err != nil {
		t.Fatalf("Lap failed: %v", err)
	}
	laps := sw.Laps()
	if len(laps) != 1 || laps[0] != 2500*time.Millisecond {
		t.Fatalf("expected laps [2.5s], got %v", laps)
	}

	if err := sw.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if sw.Elapsed() != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s after pause, got %v", sw.Elapsed())
	}
	if sw.displayActive() {
		t.Fatal("display loop should stop on pause")
	}

	if err := sw.Start(); err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	clock.Advance(time.Second)
	if err := sw.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if sw.Elapsed() != 3500*time.Millisecond {
		t.Fatalf("expected 3.5s after stop, got %v", sw.Elapsed())
	}
	if sw.State() != Stopped {
		t.Fatalf("expected Stopped, got %s", sw.State())
	}

	for _, want := range []string{
		"Stopwatch started.",
		"Lap 1: Elapsed time: 00:02.50",
		"Elapsed time: 00:02.50 (Stopwatch paused)",
		"Stopwatch resumed.",
		"Elapsed time: 00:03.50 (Stopwatch stopped)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestStartWhileRunningIsNoOp(t *testing.T) {
	sw, clock, out := newTestStopwatch(t)

	if err := sw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	clock.Advance(time.Second)

	err := sw.Start()
	if !errors.IsCode(err, errors.ErrInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
	if sw.State() != Running {
		t.Fatalf("expected Running, got %s", sw.State())
	}

	// The anchor must not move on the rejected start.
	clock.Advance(time.Second)
	if sw.Elapsed() != 2*time.Second {
		t.Fatalf("expected 2s, got %v", sw.Elapsed())
	}
	if !strings.Contains(out.String(), "Stopwatch is already running.") {
		t.Errorf("missing notice:\n%s", out.String())
	}
}

func TestInvalidTransitionsAreNoOps(t *testing.T) {
	sw, clock, out := newTestStopwatch(t)

	if err := sw.Pause(); !errors.IsCode(err, errors.ErrInvalidState) {
		t.Fatalf("pause while stopped: expected INVALID_STATE, got %v", err)
	}
	if err := sw.Stop(); !errors.IsCode(err, errors.ErrInvalidState) {
		t.Fatalf("stop while stopped: expected INVALID_STATE, got %v", err)
	}

	_ = sw.Start()
	clock.Advance(time.Second)
	_ = sw.Pause()

	if err := sw.Pause(); !errors.IsCode(err, errors.ErrInvalidState) {
		t.Fatalf("pause while paused: expected INVALID_STATE, got %v", err)
	}
	if !strings.Contains(out.String(), "Stopwatch is already paused.") {
		t.Errorf("missing already-paused notice:\n%s", out.String())
	}

	if err := sw.Stop(); !errors.IsCode(err, errors.ErrInvalidState) {
		t.Fatalf("stop while paused: expected INVALID_STATE, got %v", err)
	}
	if sw.State() != Paused {
		t.Fatalf("expected Paused, got %s", sw.State())
	}
	if sw.Elapsed() != time.Second {
		t.Fatalf("expected 1s, got %v", sw.Elapsed())
	}
}

func TestLapRequiresRunning(t *testing.T) {
	sw, clock, out := newTestStopwatch(t)

	if err := sw.Lap(); !errors.IsCode(err, errors.ErrInvalidState) {
		t.Fatalf("lap while stopped: expected INVALID_STATE, got %v", err)
	}
	if len(sw.Laps()) != 0 {
		t.Fatalf("lap while stopped recorded %v", sw.Laps())
	}

	_ = sw.Start()
	clock.Advance(time.Second)
	_ = sw.Lap()
	_ = sw.Pause()

	if err := sw.Lap(); !errors.IsCode(err, errors.ErrInvalidState) {
		t.Fatalf("lap while paused: expected INVALID_STATE, got %v", err)
	}
	if got := sw.Laps(); len(got) != 1 || got[0] != time.Second {
		t.Fatalf("expected laps [1s], got %v", got)
	}
	if !strings.Contains(out.String(), "Cannot record lap: Stopwatch is not running.") {
		t.Errorf("missing lap notice:\n%s", out.String())
	}
}

func TestLapsAreNonDecreasing(t *testing.T) {
	sw, clock, _ := newTestStopwatch(t)

	_ = sw.Start()
	for _, step := range []time.Duration{0, 300 * time.Millisecond, 0, 2 * time.Second} {
		clock.Advance(step)
		if err := sw.Lap(); err != nil {
			t.Fatalf("Lap failed: %v", err)
		}
	}

	laps := sw.Laps()
	if len(laps) != 4 {
		t.Fatalf("expected 4 laps, got %d", len(laps))
	}
	for i := 1; i < len(laps); i++ {
		if laps[i] < laps[i-1] {
			t.Fatalf("lap %d (%v) is before lap %d (%v)", i+1, laps[i], i, laps[i-1])
		}
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	sw, clock, out := newTestStopwatch(t)

	_ = sw.Start()
	clock.Advance(4 * time.Second)
	_ = sw.Lap()

	var asked string
	decline := ConfirmFunc(func(prompt string) bool {
		asked = prompt
		return false
	})

	if err := sw.Reset(decline); !errors.IsCode(err, errors.ErrCancelled) {
		t.Fatalf("expected CANCELLED, got %v", err)
	}
	if err := sw.Reset(nil); !errors.IsCode(err, errors.ErrCancelled) {
		t.Fatalf("expected CANCELLED for nil confirmer, got %v", err)
	}
	if !strings.Contains(asked, "(y/n)") {
		t.Fatalf("unexpected prompt %q", asked)
	}
	if sw.State() != Running || sw.Elapsed() != 4*time.Second || len(sw.Laps()) != 1 {
		t.Fatalf("declined reset changed state: %s %v %v", sw.State(), sw.Elapsed(), sw.Laps())
	}
	if !sw.displayActive() {
		t.Fatal("declined reset stopped the display loop")
	}
	if !strings.Contains(out.String(), "Reset cancelled.") {
		t.Errorf("missing cancel notice:\n%s", out.String())
	}

	accept := ConfirmFunc(func(string) bool { return true })
	if err := sw.Reset(accept); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if sw.State() != Stopped || sw.Elapsed() != 0 || len(sw.Laps()) != 0 {
		t.Fatalf("reset left state: %s %v %v", sw.State(), sw.Elapsed(), sw.Laps())
	}
	if sw.displayActive() {
		t.Fatal("reset should stop the display loop")
	}
}

func TestResetWhilePausedClearsEverything(t *testing.T) {
	sw, clock, _ := newTestStopwatch(t)

	_ = sw.Start()
	clock.Advance(time.Second)
	_ = sw.Lap()
	_ = sw.Pause()

	if err := sw.Reset(ConfirmFunc(func(string) bool { return true })); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if sw.State() != Stopped || sw.Elapsed() != 0 || len(sw.Laps()) != 0 {
		t.Fatalf("reset left state: %s %v %v", sw.State(), sw.Elapsed(), sw.Laps())
	}

	// A fresh start counts from zero.
	_ = sw.Start()
	clock.Advance(700 * time.Millisecond)
	if sw.Elapsed() != 700*time.Millisecond {
		t.Fatalf("expected 700ms, got %v", sw.Elapsed())
	}
}

func TestElapsedNeverDecreases(t *testing.T) {
	sw, clock, _ := newTestStopwatch(t)

	ops := []func() error{
		sw.Start, sw.Pause, sw.Start, sw.Stop, sw.Stop, sw.Start, sw.Start, sw.Pause, sw.Pause, sw.Start, sw.Stop,
	}

	var last time.Duration
	for i, op := range ops {
		_ = op()
		clock.Advance(time.Duration(i+1) * 100 * time.Millisecond)

		got := sw.Elapsed()
		if got < 0 {
			t.Fatalf("step %d: negative elapsed %v", i, got)
		}
		if got < last {
			t.Fatalf("step %d: elapsed went from %v to %v", i, last, got)
		}
		last = got
	}
}

func TestSetDisplayIntervalBounds(t *testing.T) {
	sw, _, out := newTestStopwatch(t)

	cases := []struct {
		in       time.Duration
		accepted bool
	}{
		{50 * time.Millisecond, false},
		{61 * time.Second, false},
		{100 * time.Millisecond, true},
		{60 * time.Second, true},
	}

	for _, tc := range cases {
		before := sw.DisplayInterval()
		err := sw.SetDisplayInterval(tc.in)
		if tc.accepted {
			if err != nil {
				t.Errorf("%v: expected accepted, got %v", tc.in, err)
			}
			if sw.DisplayInterval() != tc.in {
				t.Errorf("%v: interval is %v", tc.in, sw.DisplayInterval())
			}
			continue
		}
		if !errors.IsCode(err, errors.ErrInvalidInput) {
			t.Errorf("%v: expected INVALID_INPUT, got %v", tc.in, err)
		}
		if sw.DisplayInterval() != before {
			t.Errorf("%v: rejected value changed interval to %v", tc.in, sw.DisplayInterval())
		}
	}

	if !strings.Contains(out.String(), "Invalid interval. Please enter a number between 0.1 and 60 seconds.") {
		t.Errorf("missing rejection notice:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Display interval set to 0.1 seconds.") {
		t.Errorf("missing acceptance notice:\n%s", out.String())
	}
}

func TestWithDisplayIntervalIgnoresOutOfRange(t *testing.T) {
	if got := New(WithDisplayInterval(2 * time.Second)).DisplayInterval(); got != 2*time.Second {
		t.Fatalf("expected 2s, got %v", got)
	}
	if got := New(WithDisplayInterval(time.Hour)).DisplayInterval(); got != time.Second {
		t.Fatalf("expected default for out of range value, got %v", got)
	}
}

func TestDisplayShowsStateAndBar(t *testing.T) {
	sw, clock, out := newTestStopwatch(t)

	sw.Display()
	if !strings.Contains(out.String(), "Elapsed time: 00:00.00 (Stopped)\n[>") {
		t.Fatalf("unexpected stopped display:\n%s", out.String())
	}

	_ = sw.Start()
	clock.Advance(30 * time.Second)
	_ = sw.Pause()
	sw.Display()

	want := "Elapsed time: 00:30.00 (Paused)\n[" + strings.Repeat("=", 25) + ">" + strings.Repeat(" ", 24) + "] 30s\n"
	if !strings.Contains(out.String(), want) {
		t.Fatalf("unexpected paused display:\n%s", out.String())
	}
}

func TestDisplayLaps(t *testing.T) {
	sw, clock, out := newTestStopwatch(t)

	sw.DisplayLaps()
	if !strings.Contains(out.String(), "No laps recorded.") {
		t.Fatalf("expected empty notice:\n%s", out.String())
	}

	_ = sw.Start()
	clock.Advance(1500 * time.Millisecond)
	_ = sw.Lap()
	clock.Advance(65 * time.Second)
	_ = sw.Lap()
	sw.DisplayLaps()

	want := "Recorded Laps:\nLap 1: Elapsed time: 00:01.50\nLap 2: Elapsed time: 01:06.50\n"
	if !strings.Contains(out.String(), want) {
		t.Fatalf("unexpected laps listing:\n%s", out.String())
	}
}
