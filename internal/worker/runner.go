package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner drives a job on a fixed interval until stopped.
type Runner struct {
	name     string
	interval time.Duration
	job      func(ctx context.Context)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(name string, interval time.Duration, job func(ctx context.Context)) *Runner {
	return &Runner{name: name, interval: interval, job: job}
}

func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(ctx)
	}()
	slog.Info("worker started", "worker", r.name, "interval", r.interval)
}

// Stop waits for the in-flight tick or until ctx is done.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel == nil {
		return nil
	}
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("worker stopped", "worker", r.name)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run fires once right away so work left over from before a restart is picked up without waiting a full interval.
func (r *Runner) run(ctx context.Context) {
	r.job(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.job(ctx)
		case <-ctx.Done():
			return
		}
	}
}
