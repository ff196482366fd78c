package task

import (
	"context"
	"time"

	"github.com/spacekeep/capture-service/internal/coordinator"

	"go.uber.org/zap"
)

// DeletionSweepTask re-drives committed deletions whose store mutation
// failed. Such items are already gone from the working set; leaving the
// store row or the counter behind would be a silent inconsistency, so
// the sweep retries until both mutations land and logs what stays stuck.
type DeletionSweepTask struct {
	deletions *coordinator.DeletionCoordinator
	interval  time.Duration
	logger    *zap.Logger
}

func NewDeletionSweepTask(deletions *coordinator.DeletionCoordinator, interval time.Duration, logger *zap.Logger) *DeletionSweepTask {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeletionSweepTask{deletions: deletions, interval: interval, logger: logger}
}

func (t *DeletionSweepTask) Name() string {
	return "deletion-sweep"
}

func (t *DeletionSweepTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *DeletionSweepTask) IsStartupRun() bool {
	return false
}

func (t *DeletionSweepTask) Run(ctx context.Context) error {
	if t.deletions.FailedCount() == 0 {
		return nil
	}
	t.logger.Info("retrying stuck deletion commits",
		zap.Int("count", t.deletions.FailedCount()))
	t.deletions.RetryFailedCommits(ctx)
	return nil
}

var _ Task = (*DeletionSweepTask)(nil)
