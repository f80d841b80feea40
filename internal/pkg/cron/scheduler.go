package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type job struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
}

// Scheduler runs the background accrual jobs on fixed intervals. Each job
// gets its own goroutine and fires once immediately on Start, so a freshly
// deployed instance reconciles balances without waiting a full interval.
// Jobs must be idempotent; the scheduler makes no effort to suppress a run
// that overlaps a previous one still in flight on another instance.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []job
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddJob registers a named job. Registration after Start is ignored.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		slog.Warn("job registered after scheduler start, ignoring", "job", name)
		return
	}
	s.jobs = append(s.jobs, job{name: name, interval: interval, fn: fn})
}

// Start launches one ticker loop per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, j := range s.jobs {
		s.wg.Add(1)
		go func(j job) {
			defer s.wg.Done()

			run(ctx, j)

			ticker := time.NewTicker(j.interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					run(ctx, j)
				}
			}
		}(j)
	}

	slog.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all job loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	slog.Info("scheduler stopped")
}

// RunOnce fires every registered job a single time on the caller's context,
// sequentially in registration order. Used by one-shot invocations.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := make([]job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, j := range jobs {
		run(ctx, j)
	}
}

func run(ctx context.Context, j job) {
	start := time.Now()
	if err := j.fn(ctx); err != nil {
		slog.Error("scheduled job failed", "job", j.name, "duration", time.Since(start), "error", err)
		return
	}
	slog.Debug("scheduled job finished", "job", j.name, "duration", time.Since(start))
}
