package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/spacekeep/capture-service/internal/domain"

	"go.uber.org/zap"
)

// DraftConfig carries the per-draft timing parameters. Delay is the
// debounce quiet period; it is configuration because structured item
// fields and long-form text use different delays.
type DraftConfig struct {
	Delay        time.Duration
	WriteTimeout time.Duration
}

const defaultWriteTimeout = 30 * time.Second

// DraftCoordinator owns the edit buffer for one open item. It debounces
// bursts of edits, gates saves through the policy and issues at most one
// in-flight store write per settled burst. Edits arriving during a write
// are buffered and trigger a follow-up cycle, never dropped.
type DraftCoordinator struct {
	mu         sync.Mutex
	item       *domain.Item
	fields     map[string]string
	baseline   map[string]string
	status     domain.DraftStatus
	failReason string
	inFlight   bool
	closed     bool
	discarded  bool

	cfg     DraftConfig
	deb     *Debouncer
	store   ContentStore
	policy  Policy
	signals Signals
	logger  *zap.Logger

	writeWg sync.WaitGroup
}

// NewDraftCoordinator opens a draft over the persisted state of item.
func NewDraftCoordinator(item *domain.Item, cfg DraftConfig, store ContentStore, policy Policy, signals Signals, logger *zap.Logger) *DraftCoordinator {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if policy == nil {
		policy = TitlePolicy{}
	}
	if signals == nil {
		signals = NopSignals{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	base := item.Fields()
	snapshot := *item
	return &DraftCoordinator{
		item:     &snapshot,
		fields:   domain.CloneFields(base),
		baseline: domain.CloneFields(base),
		status:   domain.DraftClean,
		cfg:      cfg,
		deb:      NewDebouncer(),
		store:    store,
		policy:   policy,
		signals:  signals,
		logger:   logger,
	}
}

// ItemID returns the identity of the item under edit.
func (c *DraftCoordinator) ItemID() string {
	return c.item.ID
}

// Edit records a single field change.
func (c *DraftCoordinator) Edit(field, value string) error {
	return c.EditFields(map[string]string{field: value})
}

// EditFields records a batch of field changes from one input event.
// Entering the dirty state (re)arms the debounce timer; while a write is
// in flight the changes are only buffered and the write's completion
// starts the next cycle.
func (c *DraftCoordinator) EditFields(fields map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrSessionClosed
	}
	for k, v := range fields {
		c.fields[k] = v
	}
	if c.inFlight {
		c.setStatusLocked(domain.DraftDirty, "")
		return nil
	}
	if domain.FieldsEqual(c.fields, c.baseline) {
		// The burst returned to the persisted state, nothing to save.
		c.deb.Cancel()
		c.setStatusLocked(domain.DraftClean, "")
		return nil
	}
	c.setStatusLocked(domain.DraftDebouncing, "")
	c.deb.Schedule(c.cfg.Delay, c.onTimer)
	return nil
}

// SaveNow persists the current buffer immediately, as a keyboard
// shortcut would. Unlike a timer fire, a policy rejection is reported to
// the caller.
func (c *DraftCoordinator) SaveNow() error {
	c.deb.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrSessionClosed
	}
	if c.inFlight {
		// Buffered edits follow the in-flight write automatically.
		return nil
	}
	if domain.FieldsEqual(c.fields, c.baseline) {
		return nil
	}
	if !c.policy.IsSavable(c.fields) {
		return ErrNotSavable
	}
	c.beginWriteLocked()
	return nil
}

// Close tears the draft down. A savable dirty buffer is flushed in one
// final write; an unsavable one is discarded. Afterwards every edit
// returns ErrSessionClosed. An in-flight write is never cancelled.
func (c *DraftCoordinator) Close() {
	c.deb.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if !c.inFlight && !domain.FieldsEqual(c.fields, c.baseline) && c.policy.IsSavable(c.fields) {
		c.beginWriteLocked()
	}
}

// Wait blocks until no store write is running. Meaningful after Close,
// where it waits out the final flush.
func (c *DraftCoordinator) Wait() {
	c.writeWg.Wait()
}

// Discard tears the draft down without a final flush. Used when the
// underlying item was deleted and the buffer no longer has a target.
func (c *DraftCoordinator) Discard() {
	c.deb.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.discarded = true
}

// Draft returns a snapshot of the current edit state.
func (c *DraftCoordinator) Draft() *domain.EditableDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &domain.EditableDraft{
		ItemID:     c.item.ID,
		Fields:     domain.CloneFields(c.fields),
		Baseline:   domain.CloneFields(c.baseline),
		Status:     c.status,
		FailReason: c.failReason,
	}
}

// Status returns the current draft status.
func (c *DraftCoordinator) Status() domain.DraftStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// onTimer runs when the debounce quiet period elapsed.
func (c *DraftCoordinator) onTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.inFlight {
		return
	}
	if domain.FieldsEqual(c.fields, c.baseline) {
		c.setStatusLocked(domain.DraftClean, "")
		return
	}
	if !c.policy.IsSavable(c.fields) {
		// Save suppressed, not an error. The buffer stays dirty and the
		// next edit re-arms the timer.
		c.setStatusLocked(domain.DraftDirty, "")
		return
	}
	c.beginWriteLocked()
}

// beginWriteLocked launches the store write for the current buffer.
// Caller holds c.mu.
func (c *DraftCoordinator) beginWriteLocked() {
	snapshot := domain.CloneFields(c.fields)
	upd := *c.item
	upd.ApplyFields(snapshot)
	c.inFlight = true
	c.setStatusLocked(domain.DraftSaving, "")
	c.writeWg.Add(1)
	go c.write(&upd, snapshot)
}

func (c *DraftCoordinator) write(item *domain.Item, snapshot map[string]string) {
	defer c.writeWg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.WriteTimeout)
	defer cancel()
	_, err := c.store.Update(ctx, item)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.logger.Error("draft save failed",
			zap.String("itemId", item.ID),
			zap.Error(err))
		c.setStatusLocked(domain.DraftFailed, err.Error())
		// The baseline is untouched, so the next attempt re-sends the
		// full buffer. Edits that arrived mid-flight start a new cycle
		// right away, they must not wait for another keystroke.
		if !domain.FieldsEqual(c.fields, snapshot) {
			c.restartLocked()
		}
		return
	}

	c.item = item
	c.baseline = snapshot
	if !domain.FieldsEqual(c.fields, c.baseline) {
		// A newer edit was buffered behind the write.
		c.setStatusLocked(domain.DraftDebouncing, "")
		c.restartLocked()
		return
	}
	c.setStatusLocked(domain.DraftSaved, "")
}

// restartLocked starts the next save cycle for buffered edits. After
// teardown no new timers may be armed, so the buffer is either flushed
// in one immediate write or discarded per policy. Caller holds c.mu.
func (c *DraftCoordinator) restartLocked() {
	if c.closed {
		if !c.discarded && c.policy.IsSavable(c.fields) {
			c.beginWriteLocked()
		}
		return
	}
	c.deb.Schedule(c.cfg.Delay, c.onTimer)
}

func (c *DraftCoordinator) setStatusLocked(status domain.DraftStatus, reason string) {
	if c.status == status && c.failReason == reason {
		return
	}
	c.status = status
	c.failReason = reason
	c.signals.DraftStatusChanged(c.item.ID, status, reason)
}
