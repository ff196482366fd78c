package service

import (
	"context"

	"github.com/spacekeep/capture-service/internal/coordinator"
	"github.com/spacekeep/capture-service/internal/domain"
	"github.com/spacekeep/capture-service/pkg/code"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ItemService is the content store of the application. Its Create,
// Update, Delete and GetByID form the store contract consumed by the
// coordinators: Create preserves a caller-provided identity so a
// cancelled deletion restores the exact original item, and none of the
// four touch aggregate counters. Counter bookkeeping belongs to the
// creation flow (NewItem) and to committed deletions.
type ItemService interface {
	coordinator.ContentStore

	// NewItem is the user-facing creation flow: assigns identity,
	// persists the item and increments the space counter.
	NewItem(ctx context.Context, item *domain.Item) (*domain.Item, error)

	// ListBySpace returns the items of a space.
	ListBySpace(ctx context.Context, spaceID string) ([]*domain.Item, error)
}

type itemService struct {
	itemRepo domain.ItemRepository
	spaceSvc SpaceService
	logger   *zap.Logger
}

func NewItemService(itemRepo domain.ItemRepository, spaceSvc SpaceService, logger *zap.Logger) ItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &itemService{itemRepo: itemRepo, spaceSvc: spaceSvc, logger: logger}
}

func (s *itemService) NewItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if _, err := s.spaceSvc.Get(ctx, item.SpaceID); err != nil {
		return nil, err
	}
	item.ID = uuid.NewString()
	created, err := s.itemRepo.Create(ctx, item)
	if err != nil {
		s.logger.Error("failed to create item",
			zap.String("spaceId", item.SpaceID),
			zap.Error(err))
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if err := s.spaceSvc.Increment(ctx, item.SpaceID); err != nil {
		s.logger.Error("failed to increment space counter",
			zap.String("spaceId", item.SpaceID),
			zap.Error(err))
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return created, nil
}

func (s *itemService) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	return s.itemRepo.Create(ctx, item)
}

func (s *itemService) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	return s.itemRepo.Update(ctx, item)
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	return s.itemRepo.Delete(ctx, id)
}

func (s *itemService) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *itemService) ListBySpace(ctx context.Context, spaceID string) ([]*domain.Item, error) {
	items, err := s.itemRepo.ListBySpace(ctx, spaceID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return items, nil
}

var _ ItemService = (*itemService)(nil)
