package dao

import (
	"context"

	"github.com/spacekeep/capture-service/internal/domain"
	"github.com/spacekeep/capture-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// spaceRepository implements domain.SpaceRepository.
type spaceRepository struct {
	dao *Dao
}

func NewSpaceRepository(dao *Dao) domain.SpaceRepository {
	return &spaceRepository{dao: dao}
}

func (r *spaceRepository) toDomain(m *model.Space) *domain.Space {
	if m == nil {
		return nil
	}
	return &domain.Space{
		ID:        m.ID,
		Name:      m.Name,
		ItemCount: m.ItemCount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *spaceRepository) GetByID(ctx context.Context, id string) (*domain.Space, error) {
	var m model.Space
	err := r.dao.DB().WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get space")
	}
	return r.toDomain(&m), nil
}

func (r *spaceRepository) Create(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	m := &model.Space{
		ID:        space.ID,
		Name:      space.Name,
		ItemCount: space.ItemCount,
	}
	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "create space")
	}
	return r.toDomain(m), nil
}

func (r *spaceRepository) List(ctx context.Context) ([]*domain.Space, error) {
	var ms []*model.Space
	if err := r.dao.DB().WithContext(ctx).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "list spaces")
	}
	spaces := make([]*domain.Space, 0, len(ms))
	for _, m := range ms {
		spaces = append(spaces, r.toDomain(m))
	}
	return spaces, nil
}

func (r *spaceRepository) AddItemCount(ctx context.Context, spaceID string, delta int64) error {
	res := r.dao.DB().WithContext(ctx).
		Model(&model.Space{}).
		Where("id = ?", spaceID).
		UpdateColumn("item_count", gorm.Expr("item_count + ?", delta))
	if res.Error != nil {
		return errors.Wrap(res.Error, "adjust item count")
	}
	if res.RowsAffected == 0 {
		return errors.Errorf("adjust item count: space %s not found", spaceID)
	}
	return nil
}

var _ domain.SpaceRepository = (*spaceRepository)(nil)
