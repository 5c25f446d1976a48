package repository

import (
	"context"
	"errors"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
	"gorm.io/gorm"
)

// RoomRepository persists rooms.
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a room repository.
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// FindByID loads one room by id.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*entity.Room, error) {
	var room entity.Room
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

// Create inserts a room.
func (r *RoomRepository) Create(ctx context.Context, room *entity.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// CreateBatch inserts several rooms in one statement. Used by the
// questionnaire fan-out.
func (r *RoomRepository) CreateBatch(ctx context.Context, rooms []entity.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rooms).Error
}

// Update saves a room.
func (r *RoomRepository) Update(ctx context.Context, room *entity.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// DeleteWithItems deletes a room and all items referencing it in one
// transaction.
func (r *RoomRepository) DeleteWithItems(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&entity.Item{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Room{}).Error
	})
}

// ListByProject returns all rooms of a project, newest first to match the
// item list contract.
func (r *RoomRepository) ListByProject(ctx context.Context, projectID string) ([]entity.Room, error) {
	var rooms []entity.Room
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&rooms).Error
	return rooms, err
}
