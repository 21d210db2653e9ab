package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appbooking "github.com/tourdesk/backend/internal/application/booking"
)

type fakeRunner struct {
	mu      sync.Mutex
	runs    int
	report  *appbooking.RecomputeReport
	err     error
	running bool
}

func (r *fakeRunner) Run(ctx context.Context) (*appbooking.RecomputeReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs++
	if r.err != nil {
		return nil, r.err
	}
	return r.report, nil
}

func (r *fakeRunner) IsRunning() bool { return r.running }

func (r *fakeRunner) LastReport() *appbooking.RecomputeReport { return r.report }

func (r *fakeRunner) runCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}

func TestRecomputeScheduler_TriggersRuns(t *testing.T) {
	runner := &fakeRunner{report: &appbooking.RecomputeReport{Success: true, ProcessedThisRun: 1}}
	s := NewRecomputeScheduler(RecomputeSchedulerConfig{Interval: 10 * time.Millisecond}, runner, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return runner.runCount() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestRecomputeScheduler_StartIsIdempotent(t *testing.T) {
	runner := &fakeRunner{report: &appbooking.RecomputeReport{Success: true}}
	s := NewRecomputeScheduler(RecomputeSchedulerConfig{Interval: time.Hour}, runner, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}

func TestRecomputeScheduler_StopWithoutStart(t *testing.T) {
	runner := &fakeRunner{}
	s := NewRecomputeScheduler(RecomputeSchedulerConfig{Interval: time.Hour}, runner, zap.NewNop())
	assert.NoError(t, s.Stop(context.Background()))
}

func TestRecomputeScheduler_SkipsWhenRunInProgress(t *testing.T) {
	runner := &fakeRunner{err: appbooking.ErrRecomputeInProgress}
	s := NewRecomputeScheduler(RecomputeSchedulerConfig{Interval: 10 * time.Millisecond}, runner, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	// Overlap errors are swallowed, the loop keeps ticking.
	assert.Eventually(t, func() bool {
		return runner.runCount() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestRecomputeScheduler_Status(t *testing.T) {
	report := &appbooking.RecomputeReport{Success: true, Remaining: 3}
	runner := &fakeRunner{report: report}
	s := NewRecomputeScheduler(RecomputeSchedulerConfig{Interval: time.Minute}, runner, zap.NewNop())

	status := s.Status()
	assert.False(t, status.Enabled)
	assert.Nil(t, status.LastRunAt)
	assert.Equal(t, report, status.LastRun)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	status = s.Status()
	assert.True(t, status.Enabled)
	assert.Equal(t, "1m0s", status.Interval)
}
