package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tourdesk/backend/internal/domain/booking"
	"github.com/tourdesk/backend/internal/domain/tour"
)

// maxReportedErrors caps the errors list in a report so the payload stays
// small; ErrorCount always carries the true total.
const maxReportedErrors = 20

// RecomputeConfig bounds and paces one recompute run.
type RecomputeConfig struct {
	MaxOrders       int
	BatchSize       int
	InterItemDelay  time.Duration
	InterBatchDelay time.Duration
	FailureBackoff  time.Duration
}

// RecomputeReport is the outcome of one run, returned to the caller and kept
// as the last-run status.
type RecomputeReport struct {
	Success          bool      `json:"success"`
	UpdatedCount     int       `json:"updated_count"`
	ErrorCount       int       `json:"error_count"`
	ProcessedThisRun int       `json:"processed_this_run"`
	Remaining        int       `json:"remaining"`
	Errors           []string  `json:"errors"`
	Note             string    `json:"note,omitempty"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
}

// RecomputeService walks stored orders and refreshes the ones whose profit
// fields are missing or were produced by the retired formula. Runs are
// bounded and throttled, so draining a large backlog takes repeated
// invocations.
type RecomputeService struct {
	orderRepo booking.OrderRepository
	margins   tour.MarginTable
	config    RecomputeConfig
	logger    *zap.Logger

	// sleep is swapped out in tests so throttling stays observable without
	// real delays.
	sleep func(ctx context.Context, d time.Duration) error

	mu         sync.Mutex
	running    bool
	lastReport *RecomputeReport
}

// NewRecomputeService creates a new RecomputeService.
func NewRecomputeService(
	orderRepo booking.OrderRepository,
	margins tour.MarginTable,
	config RecomputeConfig,
	logger *zap.Logger,
) *RecomputeService {
	return &RecomputeService{
		orderRepo: orderRepo,
		margins:   margins,
		config:    config,
		logger:    logger,
		sleep:     sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsRunning reports whether a run is currently in progress.
func (s *RecomputeService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastReport returns the report of the most recent completed run, or nil if
// none has run yet.
func (s *RecomputeService) LastReport() *RecomputeReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport
}

// Run executes one bounded recompute pass. Runs are serialized: a second
// caller gets an error instead of a concurrent pass. The context cancels the
// run between items; work already persisted stays persisted since each order
// commits independently.
func (s *RecomputeService) Run(ctx context.Context) (*RecomputeReport, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrRecomputeInProgress
	}
	s.running = true
	s.mu.Unlock()

	report, err := s.run(ctx)

	s.mu.Lock()
	s.running = false
	if report != nil {
		s.lastReport = report
	}
	s.mu.Unlock()
	return report, err
}

func (s *RecomputeService) run(ctx context.Context) (*RecomputeReport, error) {
	report := &RecomputeReport{StartedAt: time.Now()}
	defer func() { report.FinishedAt = time.Now() }()

	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		// The one fatal case: no candidates were even read, so no partial
		// work happened.
		s.logger.Error("recompute: candidate query failed", zap.Error(err))
		return nil, fmt.Errorf("candidate query failed: %w", err)
	}

	candidates := make([]*booking.Order, 0)
	for _, o := range orders {
		if booking.IsRecomputeCandidate(o) {
			candidates = append(candidates, o)
		}
	}
	total := len(candidates)
	if total > s.config.MaxOrders {
		candidates = candidates[:s.config.MaxOrders]
	}
	report.Remaining = total - len(candidates)

	s.logger.Info("recompute: starting run",
		zap.Int("candidates", total),
		zap.Int("this_run", len(candidates)),
		zap.Int("max_orders", s.config.MaxOrders))

	var allErrors []string
	for i, order := range candidates {
		if ctx.Err() != nil {
			report.Note = fmt.Sprintf("cancelled after %d of %d orders", i, len(candidates))
			break
		}

		report.ProcessedThisRun++
		if err := s.recomputeOne(ctx, order); err != nil {
			report.ErrorCount++
			allErrors = append(allErrors, fmt.Sprintf("%s: %v", order.DisplayID(), err))
			s.logger.Warn("recompute: order failed",
				zap.String("order", order.DisplayID()), zap.Error(err))
			if s.sleep(ctx, s.config.FailureBackoff) != nil {
				continue
			}
		} else {
			report.UpdatedCount++
		}

		if i == len(candidates)-1 {
			break
		}
		if s.sleep(ctx, s.config.InterItemDelay) != nil {
			continue
		}
		if s.config.BatchSize > 0 && (i+1)%s.config.BatchSize == 0 {
			if s.sleep(ctx, s.config.InterBatchDelay) != nil {
				continue
			}
		}
	}

	report.Success = true
	report.Errors = firstN(allErrors, maxReportedErrors)
	if report.Note == "" && report.Remaining > 0 {
		report.Note = fmt.Sprintf("%d candidates remaining, run again to continue", report.Remaining)
	}

	s.logger.Info("recompute: run finished",
		zap.Int("updated", report.UpdatedCount),
		zap.Int("errors", report.ErrorCount),
		zap.Int("remaining", report.Remaining))
	return report, nil
}

func (s *RecomputeService) recomputeOne(ctx context.Context, order *booking.Order) error {
	pb := booking.ComputeProfit(order, s.margins)
	if err := s.orderRepo.UpdateProfitFields(ctx, order.ID.String(), pb.TicketCost, pb.ProjectedProfit); err != nil {
		return err
	}
	order.ApplyProfit(pb)
	return nil
}

func firstN(errs []string, n int) []string {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) > n {
		return errs[:n]
	}
	return errs
}
