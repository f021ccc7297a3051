package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// ErrJobRunning is returned for a run attempted while the same job is still in flight.
var ErrJobRunning = errors.New("job still running")

// Job is a named function run on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

type scheduledJob struct {
	Job
	running atomic.Bool
}

// Scheduler runs maintenance jobs in the background. Every run gets its own
// deadline and a job never overlaps with itself, whether triggered by its
// ticker or by RunOnce.
type Scheduler struct {
	ctx        context.Context
	cancel     context.CancelFunc
	jobTimeout time.Duration
	wg         sync.WaitGroup

	mu      sync.Mutex
	jobs    []*scheduledJob
	started bool
}

// NewScheduler creates a scheduler whose jobs stop when parent is done or
// Stop is called. A zero jobTimeout leaves runs bounded only by parent.
func NewScheduler(parent context.Context, jobTimeout time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(parent)
	return &Scheduler{
		ctx:        ctx,
		cancel:     cancel,
		jobTimeout: jobTimeout,
	}
}

// AddJob registers fn. Jobs added after Start begin right away.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	j := &scheduledJob{Job: Job{Name: name, Interval: interval, Fn: fn}}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, j)
	if s.started {
		s.wg.Add(1)
		go s.loop(j)
	}
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Start launches one ticker loop per job. Calling it twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}
	slog.Info("Cron scheduler started", "job_count", len(s.jobs), "job_timeout", s.jobTimeout)
}

// Stop cancels in-flight runs and waits for every loop to exit.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) loop(j *scheduledJob) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	_ = s.run(s.ctx, j)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			_ = s.run(s.ctx, j)
		}
	}
}

// run executes j under the per-run deadline unless a previous run is still going.
func (s *Scheduler) run(ctx context.Context, j *scheduledJob) error {
	if !j.running.CompareAndSwap(false, true) {
		slog.Warn("Cron job skipped, previous run still in progress", "name", j.Name)
		return fmt.Errorf("%s: %w", j.Name, ErrJobRunning)
	}
	defer j.running.Store(false)

	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := j.Fn(ctx); err != nil {
		slog.Error("Cron job failed", "name", j.Name, "error", err, "duration", time.Since(start))
		return fmt.Errorf("%s: %w", j.Name, err)
	}
	slog.Debug("Cron job completed", "name", j.Name, "duration", time.Since(start))
	return nil
}

// RunOnce runs every registered job once, in registration order, and joins
// their errors. The job list is snapshotted so jobs may register others.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	jobs := slices.Clone(s.jobs)
	s.mu.Unlock()

	var errs []error
	for _, j := range jobs {
		if err := s.run(ctx, j); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
