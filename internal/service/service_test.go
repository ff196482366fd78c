package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spacekeep/capture-service/internal/dao"
	"github.com/spacekeep/capture-service/internal/domain"
	"github.com/spacekeep/capture-service/pkg/code"

	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) (ItemService, SpaceService) {
	t.Helper()
	db, err := dao.NewDBEngine(&dao.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "capture.sqlite3"),
		AutoMigrate: true,
	}, nil)
	require.NoError(t, err)
	d := dao.New(db, nil)

	spaceSvc := NewSpaceService(dao.NewSpaceRepository(d), nil)
	itemSvc := NewItemService(dao.NewItemRepository(d), spaceSvc, nil)
	return itemSvc, spaceSvc
}

func TestSpaceServiceLifecycle(t *testing.T) {
	_, spaces := newTestServices(t)
	ctx := context.Background()

	created, err := spaces.Create(ctx, "Inbox")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := spaces.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Inbox", got.Name)

	_, err = spaces.Get(ctx, "missing")
	require.ErrorIs(t, err, code.ErrorSpaceNotFound)

	all, err := spaces.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSpaceServiceCounter(t *testing.T) {
	_, spaces := newTestServices(t)
	ctx := context.Background()

	created, err := spaces.Create(ctx, "Inbox")
	require.NoError(t, err)

	require.NoError(t, spaces.Increment(ctx, created.ID))
	require.NoError(t, spaces.Increment(ctx, created.ID))
	require.NoError(t, spaces.Decrement(ctx, created.ID))

	got, err := spaces.Get(ctx, created.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.ItemCount)

	require.Error(t, spaces.Increment(ctx, "ghost"))
}

func TestItemServiceNewItemIncrementsCounter(t *testing.T) {
	items, spaces := newTestServices(t)
	ctx := context.Background()

	space, err := spaces.Create(ctx, "Inbox")
	require.NoError(t, err)

	created, err := items.NewItem(ctx, &domain.Item{
		SpaceID: space.ID,
		Kind:    domain.ItemKindTask,
		Title:   "Buy milk",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := spaces.Get(ctx, space.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.ItemCount)
}

func TestItemServiceNewItemRejectsUnknownSpace(t *testing.T) {
	items, _ := newTestServices(t)

	_, err := items.NewItem(context.Background(), &domain.Item{
		SpaceID: "ghost",
		Kind:    domain.ItemKindTask,
		Title:   "orphan",
	})
	require.ErrorIs(t, err, code.ErrorSpaceNotFound)
}

func TestItemServiceStoreContractKeepsCountersUntouched(t *testing.T) {
	items, spaces := newTestServices(t)
	ctx := context.Background()

	space, err := spaces.Create(ctx, "Inbox")
	require.NoError(t, err)

	// The plain store operations never move the counter; that is the
	// contract the coordinators rely on.
	created, err := items.Create(ctx, &domain.Item{
		ID:      "restored-1",
		SpaceID: space.ID,
		Kind:    domain.ItemKindNote,
		Title:   "restored",
	})
	require.NoError(t, err)
	require.Equal(t, "restored-1", created.ID)

	require.NoError(t, items.Delete(ctx, "restored-1"))

	got, err := spaces.Get(ctx, space.ID)
	require.NoError(t, err)
	require.Zero(t, got.ItemCount)
}

func TestItemServiceListBySpace(t *testing.T) {
	items, spaces := newTestServices(t)
	ctx := context.Background()

	space, err := spaces.Create(ctx, "Inbox")
	require.NoError(t, err)

	for _, title := range []string{"one", "two"} {
		_, err := items.NewItem(ctx, &domain.Item{
			SpaceID: space.ID,
			Kind:    domain.ItemKindTask,
			Title:   title,
		})
		require.NoError(t, err)
	}

	list, err := items.ListBySpace(ctx, space.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
