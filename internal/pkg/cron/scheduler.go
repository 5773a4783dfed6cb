// Package cron runs periodic maintenance jobs on fixed intervals.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// JobFunc is one unit of scheduled work. The context is cancelled when
// the scheduler shuts down, so long jobs should honor it.
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration
	fn       JobFunc
}

// Scheduler fires registered jobs on their intervals until stopped.
// Each job also fires once immediately on Start, so a restart never
// delays maintenance by a full interval.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	done   sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job. Register everything before Start; jobs added
// later do not fire until the next Start.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{name: name, interval: interval, fn: fn})
	slog.Info("Scheduled job registered", "job", name, "interval", interval)
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.done.Add(1)
		go s.loop(j)
	}
	slog.Info("Job scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish. It
// returns the context error when ctx expires before they do.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()

	finished := make(chan struct{})
	go func() {
		s.done.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		slog.Info("Job scheduler stopped")
		return nil
	case <-ctx.Done():
		slog.Warn("Job scheduler shutdown timed out")
		return ctx.Err()
	}
}

func (s *Scheduler) loop(j job) {
	defer s.done.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.fire(j)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.fire(j)
		}
	}
}

func (s *Scheduler) fire(j job) {
	start := time.Now()
	if err := j.fn(s.ctx); err != nil {
		slog.Error("Scheduled job failed", "job", j.name, "error", err, "took", time.Since(start))
		return
	}
	slog.Debug("Scheduled job finished", "job", j.name, "took", time.Since(start))
}

// RunOnce fires every registered job a single time with the given
// context, bypassing the schedule.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if err := j.fn(ctx); err != nil {
			slog.Error("Scheduled job failed", "job", j.name, "error", err)
		}
	}
}
