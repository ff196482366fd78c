package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/spacekeep/capture-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func newTestDeletion(store *fakeStore, counters *fakeCounters, grace time.Duration) *DeletionCoordinator {
	return NewDeletionCoordinator(store, counters, nil, DeletionConfig{Grace: grace}, nil)
}

func TestDeletionCommitsAfterGrace(t *testing.T) {
	log := &opLog{}
	store := newFakeStore()
	store.log = log
	counters := &fakeCounters{log: log}
	c := newTestDeletion(store, counters, 30*time.Millisecond)

	item := newTestItem()
	intent, err := c.Delete(item)
	require.NoError(t, err)
	require.Equal(t, domain.IntentPendingUndo, intent.Status)
	require.True(t, c.IsPending(item.ID))

	// The store is untouched while the grace window runs.
	require.Equal(t, 0, store.deleteCount())
	require.Equal(t, 0, counters.decCount())

	require.Eventually(t, func() bool {
		return !c.IsPending(item.ID)
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return counters.decCount() == 1
	}, time.Second, 5*time.Millisecond)

	// Store delete strictly before counter decrement.
	require.Equal(t, []string{"delete:item-1", "dec:space-1"}, log.snapshot())
	require.Equal(t, domain.IntentCommitted, intent.Status)
}

func TestDeletionUndoRestoresExactSnapshot(t *testing.T) {
	store := newFakeStore()
	counters := &fakeCounters{}
	c := newTestDeletion(store, counters, time.Hour)

	item := newTestItem()
	_, err := c.Delete(item)
	require.NoError(t, err)

	// Later mutation of the caller's item must not leak into the
	// snapshot.
	item.Title = "mutated after delete"
	item.Tags[0] = "mutated"

	restored, err := c.Undo(context.Background(), "item-1")
	require.NoError(t, err)
	require.NotNil(t, restored)
	require.Equal(t, "item-1", restored.ID)
	require.Equal(t, "Buy milk", restored.Title)
	require.Equal(t, []string{"errands"}, restored.Tags)

	require.False(t, c.IsPending("item-1"))
	require.Equal(t, 1, store.createCount())
	// Undo never touches counters.
	require.Equal(t, 0, counters.decCount())
	require.Equal(t, 0, store.deleteCount())
}

func TestDeletionUndoWithoutPendingIsNoop(t *testing.T) {
	store := newFakeStore()
	c := newTestDeletion(store, &fakeCounters{}, time.Hour)

	restored, err := c.Undo(context.Background(), "nothing-here")
	require.NoError(t, err)
	require.Nil(t, restored)
	require.Equal(t, 0, store.createCount())
}

func TestDeletionDoubleUndoIsIdempotent(t *testing.T) {
	store := newFakeStore()
	c := newTestDeletion(store, &fakeCounters{}, time.Hour)

	_, err := c.Delete(newTestItem())
	require.NoError(t, err)

	first, err := c.Undo(context.Background(), "item-1")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := c.Undo(context.Background(), "item-1")
	require.NoError(t, err)
	require.Nil(t, second)
	require.Equal(t, 1, store.createCount())
}

func TestDeletionUndoAfterCommitIsNoop(t *testing.T) {
	store := newFakeStore()
	counters := &fakeCounters{}
	c := newTestDeletion(store, counters, 10*time.Millisecond)

	_, err := c.Delete(newTestItem())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return counters.decCount() == 1
	}, time.Second, 5*time.Millisecond)

	restored, err := c.Undo(context.Background(), "item-1")
	require.NoError(t, err)
	require.Nil(t, restored)
	require.Equal(t, 0, store.createCount())
	// Exactly one decrement, never a second effect.
	require.Equal(t, 1, counters.decCount())
	require.Equal(t, 1, store.deleteCount())
}

func TestDeletionSecondDeleteWhilePendingRejected(t *testing.T) {
	c := newTestDeletion(newFakeStore(), &fakeCounters{}, time.Hour)

	_, err := c.Delete(newTestItem())
	require.NoError(t, err)
	_, err = c.Delete(newTestItem())
	require.ErrorIs(t, err, ErrDeletePending)
}

func TestDeletionRapidDeleteUndoCycles(t *testing.T) {
	store := newFakeStore()
	counters := &fakeCounters{}
	c := newTestDeletion(store, counters, 50*time.Millisecond)

	for i := 0; i < 5; i++ {
		_, err := c.Delete(newTestItem())
		require.NoError(t, err)
		restored, err := c.Undo(context.Background(), "item-1")
		require.NoError(t, err)
		require.NotNil(t, restored)
	}

	time.Sleep(120 * time.Millisecond)
	require.Equal(t, 5, store.createCount())
	require.Equal(t, 0, store.deleteCount())
	require.Equal(t, 0, counters.decCount())
}

func TestDeletionCommitRetriesAfterStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failDeletes = 1
	counters := &fakeCounters{}
	c := newTestDeletion(store, counters, 10*time.Millisecond)

	_, err := c.Delete(newTestItem())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return c.FailedCount() == 1
	}, time.Second, 5*time.Millisecond)
	// The counter must not move before the store delete succeeded.
	require.Equal(t, 0, counters.decCount())

	c.RetryFailedCommits(context.Background())
	require.Equal(t, 0, c.FailedCount())
	require.Equal(t, 1, store.deleteCount())
	require.Equal(t, 1, counters.decCount())
}

func TestDeletionCommitRetriesAfterCounterFailure(t *testing.T) {
	store := newFakeStore()
	counters := &fakeCounters{failDecs: 1}
	c := newTestDeletion(store, counters, 10*time.Millisecond)

	_, err := c.Delete(newTestItem())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return c.FailedCount() == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, 1, store.deleteCount())

	c.RetryFailedCommits(context.Background())
	require.Equal(t, 0, c.FailedCount())
	// The store delete is not repeated, only the missing decrement.
	require.Equal(t, 1, store.deleteCount())
	require.Equal(t, 1, counters.decCount())
}

func TestDeletionWaitPending(t *testing.T) {
	counters := &fakeCounters{}
	c := newTestDeletion(newFakeStore(), counters, 20*time.Millisecond)

	_, err := c.Delete(newTestItem())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.WaitPending(ctx))
	require.Equal(t, 1, counters.decCount())
}

func TestDeletionWaitPendingTimesOut(t *testing.T) {
	c := newTestDeletion(newFakeStore(), &fakeCounters{}, time.Hour)

	_, err := c.Delete(newTestItem())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, c.WaitPending(ctx), context.DeadlineExceeded)

	// Clean up so no timer fires into a dead test.
	_, err = c.Undo(context.Background(), "item-1")
	require.NoError(t, err)
}

func TestDeletionPendingAccessors(t *testing.T) {
	c := newTestDeletion(newFakeStore(), &fakeCounters{}, time.Hour)

	require.Equal(t, 0, c.PendingCount())
	_, ok := c.Pending("item-1")
	require.False(t, ok)

	intent, err := c.Delete(newTestItem())
	require.NoError(t, err)
	require.Equal(t, 1, c.PendingCount())

	got, ok := c.Pending("item-1")
	require.True(t, ok)
	require.Equal(t, intent.ID, got.ID)
	require.Positive(t, got.Remaining(time.Now()))
}
