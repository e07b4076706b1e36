package ingest

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	stateIdle int32 = iota
	stateRunning
)

// Job is the unit of work a Scheduler drives.
type Job interface {
	RunOnce(ctx context.Context) (Report, error)
}

// Scheduler triggers the job immediately on Start and then on every
// tick. A tick that arrives while a run is still in flight is
// dropped, not queued.
type Scheduler struct {
	job      Job
	interval time.Duration
	logger   *slog.Logger

	state atomic.Int32
	stop  chan struct{}
}

func NewScheduler(job Job, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{job: job, interval: interval, logger: logger}
}

// Start launches the ticker goroutine. Calling Start twice is a
// no-op.
func (s *Scheduler) Start(ctx context.Context) {
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	stop := s.stop

	s.logger.Info("ingest scheduler started", "interval", s.interval)
	s.trigger(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.trigger(ctx)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the ticker. A run already in flight finishes on its
// own.
func (s *Scheduler) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.stop = nil
}

// trigger starts a run unless one is already in flight.
func (s *Scheduler) trigger(ctx context.Context) {
	if !s.state.CompareAndSwap(stateIdle, stateRunning) {
		s.logger.Debug("ingest tick dropped, run in flight")
		return
	}
	go func() {
		defer s.state.Store(stateIdle)
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("ingest run panicked", "panic", r)
			}
		}()
		if _, err := s.job.RunOnce(ctx); err != nil {
			s.logger.Error("ingest run failed", "error", err)
		}
	}()
}
