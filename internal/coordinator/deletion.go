package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/spacekeep/capture-service/internal/domain"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DeletionConfig carries the deletion timing parameters.
type DeletionConfig struct {
	// Grace is the undo window before a deletion commits.
	Grace time.Duration
	// CommitTimeout bounds the store mutation of a single commit.
	CommitTimeout time.Duration
}

const (
	defaultGrace         = 5 * time.Second
	defaultCommitTimeout = 30 * time.Second
)

type pendingDeletion struct {
	intent *domain.DeletionIntent
	timer  *time.Timer
}

// failedCommit records a commit whose store mutation did not complete.
// The sweep task retries these instead of silently swallowing them.
type failedCommit struct {
	intent       *domain.DeletionIntent
	storeDeleted bool
	attempts     int
	lastErr      error
}

// DeletionCoordinator makes deletions reversible for a grace window.
// On Delete the item leaves the working set at once while the store is
// untouched; the commit runs when the grace timer fires, undo cancels it
// and restores the snapshot. The coordinator is owned by the application,
// not by any edit session, so a pending commit survives UI teardown.
type DeletionCoordinator struct {
	mu      sync.Mutex
	pending map[string]*pendingDeletion
	failed  map[string]*failedCommit

	store    ContentStore
	counters CounterStore
	signals  Signals
	logger   *zap.Logger
	cfg      DeletionConfig

	commitWg sync.WaitGroup
}

func NewDeletionCoordinator(store ContentStore, counters CounterStore, signals Signals, cfg DeletionConfig, logger *zap.Logger) *DeletionCoordinator {
	if cfg.Grace <= 0 {
		cfg.Grace = defaultGrace
	}
	if cfg.CommitTimeout <= 0 {
		cfg.CommitTimeout = defaultCommitTimeout
	}
	if signals == nil {
		signals = NopSignals{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeletionCoordinator{
		pending:  make(map[string]*pendingDeletion),
		failed:   make(map[string]*failedCommit),
		store:    store,
		counters: counters,
		signals:  signals,
		logger:   logger,
		cfg:      cfg,
	}
}

// Delete starts a reversible deletion for item. The returned intent is
// PendingUndo; the caller must stop showing the item immediately. A
// second delete while one is pending returns ErrDeletePending.
func (c *DeletionCoordinator) Delete(item *domain.Item) (*domain.DeletionIntent, error) {
	snapshot := &domain.Item{}
	if err := copier.CopyWithOption(snapshot, item, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrap(err, "snapshot item")
	}

	c.mu.Lock()
	if _, ok := c.pending[item.ID]; ok {
		c.mu.Unlock()
		return nil, ErrDeletePending
	}
	intent := &domain.DeletionIntent{
		ID:       uuid.NewString(),
		ItemID:   item.ID,
		SpaceID:  item.SpaceID,
		Snapshot: snapshot,
		Status:   domain.IntentPendingUndo,
		Deadline: time.Now().Add(c.cfg.Grace),
	}
	p := &pendingDeletion{intent: intent}
	c.pending[item.ID] = p
	c.commitWg.Add(1)
	p.timer = time.AfterFunc(c.cfg.Grace, func() {
		c.commit(intent)
	})
	c.mu.Unlock()

	c.logger.Info("deletion pending",
		zap.String("itemId", item.ID),
		zap.String("intentId", intent.ID),
		zap.Duration("grace", c.cfg.Grace))
	c.signals.DeletionPending(item.ID, c.cfg.Grace)
	return intent, nil
}

// Undo cancels a pending deletion and restores the snapshot, identity
// included. Undoing an item with no pending deletion, or one whose grace
// timer already fired, is a no-op returning (nil, nil) — never an error
// and never a double effect.
func (c *DeletionCoordinator) Undo(ctx context.Context, itemID string) (*domain.Item, error) {
	c.mu.Lock()
	p, ok := c.pending[itemID]
	if !ok {
		c.mu.Unlock()
		return nil, nil
	}
	if !p.timer.Stop() {
		// The timer fired already; the commit owns this intent now.
		c.mu.Unlock()
		return nil, nil
	}
	delete(c.pending, itemID)
	p.intent.Status = domain.IntentCancelled
	c.mu.Unlock()
	c.commitWg.Done()

	restored, err := c.store.Create(ctx, p.intent.Snapshot)
	if err != nil {
		c.logger.Error("deletion undo restore failed",
			zap.String("itemId", itemID),
			zap.Error(err))
		return nil, errors.Wrap(err, "restore snapshot")
	}

	c.logger.Info("deletion cancelled",
		zap.String("itemId", itemID),
		zap.String("intentId", p.intent.ID))
	c.signals.DeletionCancelled(itemID)
	return restored, nil
}

// commit runs when the grace timer fires uninterrupted. Order per
// contract: store delete first, counter decrement second. The counter is
// never touched before this point.
func (c *DeletionCoordinator) commit(intent *domain.DeletionIntent) {
	c.mu.Lock()
	p, ok := c.pending[intent.ItemID]
	if !ok || p.intent != intent {
		// Undone between timer fire and lock acquisition.
		c.mu.Unlock()
		return
	}
	delete(c.pending, intent.ItemID)
	intent.Status = domain.IntentCommitted
	c.mu.Unlock()
	defer c.commitWg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.CommitTimeout)
	defer cancel()

	if err := c.store.Delete(ctx, intent.ItemID); err != nil {
		c.logger.Error("deletion commit failed, store delete pending retry",
			zap.String("itemId", intent.ItemID),
			zap.Error(err))
		c.recordFailed(intent, false, err)
		return
	}
	if err := c.counters.Decrement(ctx, intent.SpaceID); err != nil {
		c.logger.Error("deletion commit failed, counter decrement pending retry",
			zap.String("itemId", intent.ItemID),
			zap.String("spaceId", intent.SpaceID),
			zap.Error(err))
		c.recordFailed(intent, true, err)
		return
	}

	c.logger.Info("deletion committed",
		zap.String("itemId", intent.ItemID),
		zap.String("intentId", intent.ID))
	c.signals.DeletionCommitted(intent.ItemID)
}

func (c *DeletionCoordinator) recordFailed(intent *domain.DeletionIntent, storeDeleted bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed[intent.ItemID] = &failedCommit{
		intent:       intent,
		storeDeleted: storeDeleted,
		attempts:     1,
		lastErr:      err,
	}
}

// RetryFailedCommits re-drives commits whose store mutation failed. The
// item is already logically deleted, so retrying is always safe; each
// mutation is applied at most once. Called by the background sweep task.
func (c *DeletionCoordinator) RetryFailedCommits(ctx context.Context) {
	c.mu.Lock()
	stuck := make([]*failedCommit, 0, len(c.failed))
	for _, f := range c.failed {
		stuck = append(stuck, f)
	}
	c.mu.Unlock()

	for _, f := range stuck {
		if !f.storeDeleted {
			if err := c.store.Delete(ctx, f.intent.ItemID); err != nil {
				c.noteRetryFailure(f, err)
				continue
			}
			f.storeDeleted = true
		}
		if err := c.counters.Decrement(ctx, f.intent.SpaceID); err != nil {
			c.noteRetryFailure(f, err)
			continue
		}

		c.mu.Lock()
		delete(c.failed, f.intent.ItemID)
		c.mu.Unlock()

		c.logger.Info("stuck deletion commit recovered",
			zap.String("itemId", f.intent.ItemID),
			zap.Int("attempts", f.attempts))
		c.signals.DeletionCommitted(f.intent.ItemID)
	}
}

func (c *DeletionCoordinator) noteRetryFailure(f *failedCommit, err error) {
	c.mu.Lock()
	f.attempts++
	f.lastErr = err
	attempts := f.attempts
	c.mu.Unlock()
	c.logger.Warn("deletion commit still stuck",
		zap.String("itemId", f.intent.ItemID),
		zap.Int("attempts", attempts),
		zap.Error(err))
}

// IsPending reports whether itemID currently has a live pending
// deletion. The working set must hide such items.
func (c *DeletionCoordinator) IsPending(itemID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[itemID]
	return ok
}

// Pending returns the live intent for itemID, if any.
func (c *DeletionCoordinator) Pending(itemID string) (*domain.DeletionIntent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[itemID]
	if !ok {
		return nil, false
	}
	return p.intent, true
}

// PendingCount returns the number of live pending deletions.
func (c *DeletionCoordinator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// FailedCount returns the number of commits awaiting retry.
func (c *DeletionCoordinator) FailedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.failed)
}

// WaitPending blocks until every pending deletion resolved (committed or
// undone) or ctx expires. Used on graceful shutdown so a close to the
// process does not drop a commitment the grace timer still owes.
func (c *DeletionCoordinator) WaitPending(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.commitWg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
