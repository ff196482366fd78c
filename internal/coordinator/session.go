package coordinator

import (
	"sync"
	"time"

	"github.com/spacekeep/capture-service/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionConfig carries the per-session timing parameters. Structured
// item fields settle fast; long-form note bodies get a longer quiet
// period so typing is not interrupted by writes.
type SessionConfig struct {
	StructuredDelay time.Duration
	LongformDelay   time.Duration
	WriteTimeout    time.Duration
}

const (
	defaultStructuredDelay = 500 * time.Millisecond
	defaultLongformDelay   = 2 * time.Second
)

// Session is the lifecycle guard for one editing surface. It owns the
// draft coordinators opened through it: closing the session flushes
// savable dirty drafts, discards unsavable ones and refuses any further
// scheduling. Deletion countdowns are deliberately NOT owned here — a
// pending deletion must commit even after its originating surface is
// gone.
type Session struct {
	mu     sync.Mutex
	id     string
	closed bool
	drafts map[string]*DraftCoordinator

	cfg     SessionConfig
	store   ContentStore
	policy  Policy
	signals Signals
	logger  *zap.Logger
}

func NewSession(cfg SessionConfig, store ContentStore, policy Policy, signals Signals, logger *zap.Logger) *Session {
	if cfg.StructuredDelay <= 0 {
		cfg.StructuredDelay = defaultStructuredDelay
	}
	if cfg.LongformDelay <= 0 {
		cfg.LongformDelay = defaultLongformDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		id:      uuid.NewString(),
		drafts:  make(map[string]*DraftCoordinator),
		cfg:     cfg,
		store:   store,
		policy:  policy,
		signals: signals,
		logger:  logger,
	}
}

func (s *Session) ID() string {
	return s.id
}

// Open creates (or returns the already open) draft coordinator for an
// item. The debounce delay follows the item kind: notes edit long-form
// text, everything else edits structured fields.
func (s *Session) Open(item *domain.Item) (*DraftCoordinator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if d, ok := s.drafts[item.ID]; ok {
		return d, nil
	}
	delay := s.cfg.StructuredDelay
	if item.Kind == domain.ItemKindNote {
		delay = s.cfg.LongformDelay
	}
	d := NewDraftCoordinator(item, DraftConfig{
		Delay:        delay,
		WriteTimeout: s.cfg.WriteTimeout,
	}, s.store, s.policy, s.signals, s.logger)
	s.drafts[item.ID] = d
	s.logger.Debug("draft opened",
		zap.String("sessionId", s.id),
		zap.String("itemId", item.ID),
		zap.Duration("delay", delay))
	return d, nil
}

// Draft returns the open draft coordinator for itemID, if any.
func (s *Session) Draft(itemID string) (*DraftCoordinator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[itemID]
	return d, ok
}

// Discard drops the draft for a deleted item without flushing it.
func (s *Session) Discard(itemID string) {
	s.mu.Lock()
	d, ok := s.drafts[itemID]
	if ok {
		delete(s.drafts, itemID)
	}
	s.mu.Unlock()
	if ok {
		d.Discard()
	}
}

// Close tears the session down. Every savable dirty draft is flushed in
// one final write, unsavable buffers are discarded, and new opens or
// edits return ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	drafts := make([]*DraftCoordinator, 0, len(s.drafts))
	for _, d := range s.drafts {
		drafts = append(drafts, d)
	}
	s.mu.Unlock()

	for _, d := range drafts {
		d.Close()
	}
	for _, d := range drafts {
		d.Wait()
	}
	s.logger.Debug("session closed",
		zap.String("sessionId", s.id),
		zap.Int("drafts", len(drafts)))
}

// Closed reports whether the session was torn down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
