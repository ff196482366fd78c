package domain

import "context"

// ItemRepository is the persistence contract for items.
type ItemRepository interface {
	// GetByID returns the item or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id string) (*Item, error)

	// Create inserts an item. The caller-provided ID is preserved, which
	// is what lets an undone deletion restore the original identity.
	Create(ctx context.Context, item *Item) (*Item, error)

	// Update persists the full current state of an existing item.
	Update(ctx context.Context, item *Item) (*Item, error)

	// Delete removes the item permanently.
	Delete(ctx context.Context, id string) error

	// ListBySpace returns all items of a space ordered by update time.
	ListBySpace(ctx context.Context, spaceID string) ([]*Item, error)
}

// SpaceRepository is the persistence contract for spaces and their
// aggregate item counters.
type SpaceRepository interface {
	// GetByID returns the space or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id string) (*Space, error)

	// Create inserts a space.
	Create(ctx context.Context, space *Space) (*Space, error)

	// List returns all spaces.
	List(ctx context.Context) ([]*Space, error)

	// AddItemCount adjusts the aggregate item counter by delta, which may
	// be negative. The update is a single SQL expression so concurrent
	// adjustments do not lose increments.
	AddItemCount(ctx context.Context, spaceID string, delta int64) error
}
