package dao

import (
	"context"
	"strings"

	"github.com/spacekeep/capture-service/internal/domain"
	"github.com/spacekeep/capture-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// itemRepository implements domain.ItemRepository.
type itemRepository struct {
	dao *Dao
}

func NewItemRepository(dao *Dao) domain.ItemRepository {
	return &itemRepository{dao: dao}
}

func (r *itemRepository) toDomain(m *model.Item) *domain.Item {
	if m == nil {
		return nil
	}
	var tags []string
	if m.Tags != "" {
		tags = strings.Split(m.Tags, ",")
	}
	return &domain.Item{
		ID:        m.ID,
		SpaceID:   m.SpaceID,
		Kind:      domain.ItemKind(m.Kind),
		Title:     m.Title,
		Body:      m.Body,
		Due:       m.Due,
		Tags:      tags,
		Done:      m.Done,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *itemRepository) toModel(item *domain.Item) *model.Item {
	if item == nil {
		return nil
	}
	return &model.Item{
		ID:        item.ID,
		SpaceID:   item.SpaceID,
		Kind:      string(item.Kind),
		Title:     item.Title,
		Body:      item.Body,
		Due:       item.Due,
		Tags:      strings.Join(item.Tags, ","),
		Done:      item.Done,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	var m model.Item
	err := r.dao.DB().WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get item")
	}
	return r.toDomain(&m), nil
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	m := r.toModel(item)
	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "create item")
	}
	return r.toDomain(m), nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	m := r.toModel(item)
	res := r.dao.DB().WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", m.ID).
		Select("space_id", "kind", "title", "body", "due", "tags", "done").
		Updates(m)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update item")
	}
	if res.RowsAffected == 0 {
		return nil, errors.Errorf("update item: %s not found", m.ID)
	}
	return r.GetByID(ctx, m.ID)
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.DB().WithContext(ctx).Where("id = ?", id).Delete(&model.Item{}).Error; err != nil {
		return errors.Wrap(err, "delete item")
	}
	return nil
}

func (r *itemRepository) ListBySpace(ctx context.Context, spaceID string) ([]*domain.Item, error) {
	var ms []*model.Item
	err := r.dao.DB().WithContext(ctx).
		Where("space_id = ?", spaceID).
		Order("updated_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "list items")
	}
	items := make([]*domain.Item, 0, len(ms))
	for _, m := range ms {
		items = append(items, r.toDomain(m))
	}
	return items, nil
}

var _ domain.ItemRepository = (*itemRepository)(nil)
