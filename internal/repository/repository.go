package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist or is soft-deleted.
var ErrNotFound = errors.New("record not found")

// Repositories bundles all repositories for dependency injection.
type Repositories struct {
	Project *ProjectRepository
	Room    *RoomRepository
	Item    *ItemRepository
}

// NewRepositories creates all repositories over one gorm connection.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Project: NewProjectRepository(db),
		Room:    NewRoomRepository(db),
		Item:    NewItemRepository(db),
	}
}
