package stopwatch

import (
	"context"
	"log/slog"
	"time"
)

// scheduler runs the periodic display loop. Its fields are guarded by the
// owning Stopwatch's lifecycle mutex.
type scheduler struct {
	clock Clock
	tick  func() time.Duration
	log   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func newScheduler(clock Clock, tick func() time.Duration, log *slog.Logger) *scheduler {
	return &scheduler{clock: clock, tick: tick, log: log}
}

// start joins any previous loop before launching a new one.
func (d *scheduler) start() {
	d.stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done

	go d.run(ctx, done)
	d.log.Debug("display loop started")
}

func (d *scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		if ctx.Err() != nil {
			return
		}
		interval := d.tick()

		select {
		case <-ctx.Done():
			return
		case <-d.clock.After(interval):
		}
	}
}

// stop blocks until the loop has observed cancellation and exited.
func (d *scheduler) stop() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	<-d.done
	d.cancel = nil
	d.done = nil
	d.log.Debug("display loop stopped")
}

func (d *scheduler) active() bool {
	return d.cancel != nil
}
