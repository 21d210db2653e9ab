package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	appbooking "github.com/tourdesk/backend/internal/application/booking"
)

// RecomputeRunner is the part of the recompute service the scheduler drives.
type RecomputeRunner interface {
	Run(ctx context.Context) (*appbooking.RecomputeReport, error)
	IsRunning() bool
	LastReport() *appbooking.RecomputeReport
}

// RecomputeSchedulerConfig holds configuration for the recompute scheduler
type RecomputeSchedulerConfig struct {
	// Interval is how often to kick off a recompute run
	Interval time.Duration
}

// RecomputeScheduler periodically triggers bounded recompute runs so a large
// backlog drains over time without anyone calling the admin endpoint. Manual
// triggers and scheduled runs share the service's run lock, so they never
// overlap.
type RecomputeScheduler struct {
	config RecomputeSchedulerConfig
	runner RecomputeRunner
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRunAt time.Time
}

// NewRecomputeScheduler creates a new RecomputeScheduler
func NewRecomputeScheduler(config RecomputeSchedulerConfig, runner RecomputeRunner, logger *zap.Logger) *RecomputeScheduler {
	return &RecomputeScheduler{
		config: config,
		runner: runner,
		logger: logger,
	}
}

// Start starts the scheduler loop
func (s *RecomputeScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Recompute scheduler started",
		zap.Duration("interval", s.config.Interval))
	return nil
}

// Stop stops the scheduler, waiting for an in-flight run to finish or the
// given context to expire
func (s *RecomputeScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Recompute scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *RecomputeScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

func (s *RecomputeScheduler) trigger(ctx context.Context) {
	s.mu.Lock()
	s.lastRunAt = time.Now()
	s.mu.Unlock()

	report, err := s.runner.Run(ctx)
	if err != nil {
		if errors.Is(err, appbooking.ErrRecomputeInProgress) {
			s.logger.Debug("Recompute scheduler: run skipped, manual run in progress")
			return
		}
		s.logger.Error("Recompute scheduler: run failed", zap.Error(err))
		return
	}

	if report.ProcessedThisRun > 0 {
		s.logger.Info("Recompute scheduler: run completed",
			zap.Int("updated", report.UpdatedCount),
			zap.Int("errors", report.ErrorCount),
			zap.Int("remaining", report.Remaining))
	}
}

// Status describes the scheduler's current state
type Status struct {
	Enabled   bool                        `json:"enabled"`
	Interval  string                      `json:"interval"`
	Running   bool                        `json:"running"`
	LastRunAt *time.Time                  `json:"last_run_at,omitempty"`
	LastRun   *appbooking.RecomputeReport `json:"last_run,omitempty"`
}

// Status reports whether the loop is active, when it last fired and the
// outcome of the most recent run
func (s *RecomputeScheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		Enabled:  s.isRunning,
		Interval: s.config.Interval.String(),
		Running:  s.runner.IsRunning(),
		LastRun:  s.runner.LastReport(),
	}
	if !s.lastRunAt.IsZero() {
		t := s.lastRunAt
		status.LastRunAt = &t
	}
	return status
}
