package coordinator

import (
	"context"
	"errors"

	"github.com/spacekeep/capture-service/internal/domain"
)

// ContentStore is the persistence collaborator consumed by both
// coordinators. Create must preserve the caller-provided identity; that
// is what makes an undone deletion restore the exact original item.
type ContentStore interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
}

// CounterStore is the aggregate counter collaborator. The deletion
// coordinator decrements only on commit, never speculatively.
type CounterStore interface {
	Increment(ctx context.Context, spaceID string) error
	Decrement(ctx context.Context, spaceID string) error
}

var (
	// ErrSessionClosed is returned for edits or saves after the owning
	// edit session was torn down.
	ErrSessionClosed = errors.New("edit session is closed")

	// ErrNotSavable is returned by an explicit save when the policy
	// rejects the draft. Timer-triggered saves suppress silently instead.
	ErrNotSavable = errors.New("draft is not savable")

	// ErrDeletePending is returned when a deletion is requested for an
	// item that already has a live pending deletion.
	ErrDeletePending = errors.New("item already has a pending deletion")
)
