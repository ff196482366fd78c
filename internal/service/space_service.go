// Package service implements the business logic layer.
package service

import (
	"context"

	"github.com/spacekeep/capture-service/internal/domain"
	"github.com/spacekeep/capture-service/pkg/code"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SpaceService manages spaces and their aggregate item counters. It is
// the counter collaborator of the deletion coordinator: Decrement runs
// only for committed deletions, Increment only for item creation.
type SpaceService interface {
	Create(ctx context.Context, name string) (*domain.Space, error)
	Get(ctx context.Context, id string) (*domain.Space, error)
	List(ctx context.Context) ([]*domain.Space, error)

	Increment(ctx context.Context, spaceID string) error
	Decrement(ctx context.Context, spaceID string) error
}

type spaceService struct {
	spaceRepo domain.SpaceRepository
	logger    *zap.Logger
}

func NewSpaceService(spaceRepo domain.SpaceRepository, logger *zap.Logger) SpaceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &spaceService{spaceRepo: spaceRepo, logger: logger}
}

func (s *spaceService) Create(ctx context.Context, name string) (*domain.Space, error) {
	space := &domain.Space{
		ID:   uuid.NewString(),
		Name: name,
	}
	created, err := s.spaceRepo.Create(ctx, space)
	if err != nil {
		s.logger.Error("failed to create space", zap.String("name", name), zap.Error(err))
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return created, nil
}

func (s *spaceService) Get(ctx context.Context, id string) (*domain.Space, error) {
	space, err := s.spaceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if space == nil {
		return nil, code.ErrorSpaceNotFound
	}
	return space, nil
}

func (s *spaceService) List(ctx context.Context) ([]*domain.Space, error) {
	spaces, err := s.spaceRepo.List(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return spaces, nil
}

func (s *spaceService) Increment(ctx context.Context, spaceID string) error {
	return s.spaceRepo.AddItemCount(ctx, spaceID, 1)
}

func (s *spaceService) Decrement(ctx context.Context, spaceID string) error {
	return s.spaceRepo.AddItemCount(ctx, spaceID, -1)
}

var _ SpaceService = (*spaceService)(nil)
