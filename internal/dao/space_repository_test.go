package dao

import (
	"context"
	"testing"

	"github.com/spacekeep/capture-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestSpaceRepositoryCreateAndGet(t *testing.T) {
	r := NewSpaceRepository(newTestDao(t))
	ctx := context.Background()

	created, err := r.Create(ctx, &domain.Space{ID: "space-1", Name: "Inbox"})
	require.NoError(t, err)
	require.Equal(t, "space-1", created.ID)
	require.Zero(t, created.ItemCount)

	got, err := r.GetByID(ctx, "space-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Inbox", got.Name)

	missing, err := r.GetByID(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestSpaceRepositoryAddItemCount(t *testing.T) {
	r := NewSpaceRepository(newTestDao(t))
	ctx := context.Background()

	_, err := r.Create(ctx, &domain.Space{ID: "space-1", Name: "Inbox"})
	require.NoError(t, err)

	require.NoError(t, r.AddItemCount(ctx, "space-1", 1))
	require.NoError(t, r.AddItemCount(ctx, "space-1", 1))
	require.NoError(t, r.AddItemCount(ctx, "space-1", -1))

	got, err := r.GetByID(ctx, "space-1")
	require.NoError(t, err)
	require.EqualValues(t, 1, got.ItemCount)
}

func TestSpaceRepositoryAddItemCountMissingSpace(t *testing.T) {
	r := NewSpaceRepository(newTestDao(t))

	err := r.AddItemCount(context.Background(), "ghost", 1)
	require.Error(t, err)
}

func TestSpaceRepositoryList(t *testing.T) {
	r := NewSpaceRepository(newTestDao(t))
	ctx := context.Background()

	_, err := r.Create(ctx, &domain.Space{ID: "a", Name: "Inbox"})
	require.NoError(t, err)
	_, err = r.Create(ctx, &domain.Space{ID: "b", Name: "Work"})
	require.NoError(t, err)

	spaces, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, spaces, 2)
}
