package service

import (
	"context"
	"fmt"
	"time"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
	"github.com/estdesignco/walkthrough-app/internal/repository"
	"github.com/redis/go-redis/v9"
)

// RoomService owns rooms. Deleting a room deletes the items referencing it.
type RoomService struct {
	roomRepo    *repository.RoomRepository
	projectRepo *repository.ProjectRepository
	itemRepo    *repository.ItemRepository
	rdb         *redis.Client
}

// NewRoomService creates a room service.
func NewRoomService(
	roomRepo *repository.RoomRepository,
	projectRepo *repository.ProjectRepository,
	itemRepo *repository.ItemRepository,
	rdb *redis.Client,
) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		projectRepo: projectRepo,
		itemRepo:    itemRepo,
		rdb:         rdb,
	}
}

// CreateRoomRequest adds one room to a project.
type CreateRoomRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Notes     string `json:"notes"`
}

// UpdateRoomRequest patches room fields.
type UpdateRoomRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

// ListByProject returns a project's rooms.
func (s *RoomService) ListByProject(ctx context.Context, projectID string) ([]entity.Room, error) {
	rooms, err := s.roomRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// Get returns one room.
func (s *RoomService) Get(ctx context.Context, id string) (*entity.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	return room, nil
}

// Create adds a room to an existing project.
func (s *RoomService) Create(ctx context.Context, userID string, req *CreateRoomRequest) (*entity.Room, error) {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	now := time.Now()
	room := &entity.Room{
		ID:        newID(),
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Notes:     req.Notes,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

// Update patches a room.
func (s *RoomService) Update(ctx context.Context, id string, req *UpdateRoomRequest) (*entity.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}

	if req.Name != "" {
		room.Name = req.Name
	}
	if req.Notes != "" {
		room.Notes = req.Notes
	}
	room.UpdatedAt = time.Now()

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	return room, nil
}

// Delete removes a room and all its items in one transaction, then drops the
// project's cached item list.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find room: %w", err)
	}
	if err := s.roomRepo.DeleteWithItems(ctx, id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	invalidateItemCache(ctx, s.rdb, room.ProjectID)
	return nil
}
