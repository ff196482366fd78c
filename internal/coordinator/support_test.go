package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/spacekeep/capture-service/internal/domain"

	"github.com/pkg/errors"
)

// fakeStore is an in-memory ContentStore recording every mutation in
// arrival order. Writes can be gated to simulate slow stores and made
// to fail a fixed number of times.
type fakeStore struct {
	mu    sync.Mutex
	items map[string]*domain.Item

	updates []*domain.Item
	creates []*domain.Item
	deletes []string

	updateAttempts int
	failUpdates    int
	failDeletes    int
	failCreates    int

	// log is shared with fakeCounters to assert cross-store ordering.
	log *opLog

	updateStarted chan struct{}
	updateRelease chan struct{}
}

type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(op string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.ops = append(l.ops, op)
	l.mu.Unlock()
}

func (l *opLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ops...)
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]*domain.Item)}
}

func (s *fakeStore) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreates > 0 {
		s.failCreates--
		return nil, errors.New("create failed")
	}
	cp := *item
	s.items[item.ID] = &cp
	s.creates = append(s.creates, &cp)
	s.log.add("create:" + item.ID)
	return &cp, nil
}

func (s *fakeStore) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	s.mu.Lock()
	started, release := s.updateStarted, s.updateRelease
	s.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateAttempts++
	if s.failUpdates > 0 {
		s.failUpdates--
		return nil, errors.New("update failed")
	}
	cp := *item
	s.items[item.ID] = &cp
	s.updates = append(s.updates, &cp)
	s.log.add("update:" + item.ID)
	return &cp, nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDeletes > 0 {
		s.failDeletes--
		return errors.New("delete failed")
	}
	delete(s.items, id)
	s.deletes = append(s.deletes, id)
	s.log.add("delete:" + id)
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (s *fakeStore) updateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.updates)
}

func (s *fakeStore) lastUpdate() *domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.updates) == 0 {
		return nil
	}
	return s.updates[len(s.updates)-1]
}

func (s *fakeStore) createCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.creates)
}

func (s *fakeStore) deleteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deletes)
}

var _ ContentStore = (*fakeStore)(nil)

// fakeCounters is an in-memory CounterStore.
type fakeCounters struct {
	mu       sync.Mutex
	incs     []string
	decs     []string
	failDecs int
	log      *opLog
}

func (c *fakeCounters) Increment(ctx context.Context, spaceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.incs = append(c.incs, spaceID)
	c.log.add("inc:" + spaceID)
	return nil
}

func (c *fakeCounters) Decrement(ctx context.Context, spaceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failDecs > 0 {
		c.failDecs--
		return errors.New("decrement failed")
	}
	c.decs = append(c.decs, spaceID)
	c.log.add("dec:" + spaceID)
	return nil
}

func (c *fakeCounters) decCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.decs)
}

var _ CounterStore = (*fakeCounters)(nil)

// recSignals records every notification.
type recSignals struct {
	mu       sync.Mutex
	statuses []domain.DraftStatus
	events   []string
}

func (r *recSignals) DraftStatusChanged(itemID string, status domain.DraftStatus, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
	r.events = append(r.events, "draft:"+string(status))
}

func (r *recSignals) DeletionPending(itemID string, remaining time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "pending:"+itemID)
}

func (r *recSignals) DeletionCommitted(itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "committed:"+itemID)
}

func (r *recSignals) DeletionCancelled(itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "cancelled:"+itemID)
}

func (r *recSignals) statusHistory() []domain.DraftStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.DraftStatus(nil), r.statuses...)
}

var _ Signals = (*recSignals)(nil)

func newTestItem() *domain.Item {
	return &domain.Item{
		ID:      "item-1",
		SpaceID: "space-1",
		Kind:    domain.ItemKindTask,
		Title:   "Buy milk",
		Body:    "2 liters",
		Tags:    []string{"errands"},
	}
}
