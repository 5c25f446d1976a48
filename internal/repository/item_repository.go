package repository

import (
	"context"
	"errors"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
	"gorm.io/gorm"
)

// ItemRepository persists items.
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates an item repository.
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// FindByID loads one item by id.
func (r *ItemRepository) FindByID(ctx context.Context, id string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts an item.
func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateBatch inserts several items in one statement. Backs the bulk-create
// endpoint.
func (r *ItemRepository) CreateBatch(ctx context.Context, items []entity.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// UpdateFields applies a partial update to one item.
func (r *ItemRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an item. There is no soft-delete for items; undo is
// implemented client-side by re-creating equivalent records.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByProject returns a project's items, newest first, optionally filtered
// to a status set.
func (r *ItemRepository) ListByProject(ctx context.Context, projectID string, statuses []string) ([]entity.Item, error) {
	var items []entity.Item
	query := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

// CountByRoom returns how many items reference a room.
func (r *ItemRepository) CountByRoom(ctx context.Context, roomID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}
