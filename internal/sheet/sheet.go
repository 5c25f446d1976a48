// Package sheet implements the grouped-spreadsheet engine behind the
// Walkthrough, Checklist and FF&E views: a flat item cache, a pure grouping
// projection, chunked bulk mutations, a one-slot undo buffer and CSV export.
// It talks to the backend only through the Backend interface.
package sheet

import (
	"context"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
)

// Backend is the subset of the REST contract the sheet engine calls.
type Backend interface {
	ListRooms(ctx context.Context, projectID string) ([]entity.Room, error)
	ListItems(ctx context.Context, projectID string, statuses []string) ([]entity.Item, error)
	CreateRoom(ctx context.Context, room *entity.Room) (*entity.Room, error)
	CreateItems(ctx context.Context, items []entity.Item) ([]entity.Item, error)
	UpdateItem(ctx context.Context, id string, fields map[string]interface{}) (*entity.Item, error)
	DeleteItem(ctx context.Context, id string) error
	DeleteRoom(ctx context.Context, id string) error
}

// Kind identifies one of the three sheet views. Membership is determined
// solely by item status.
type Kind string

const (
	KindWalkthrough Kind = "walkthrough"
	KindChecklist   Kind = "checklist"
	KindFFE         Kind = "ffe"
)

// Statuses returns the status set whose items appear on this sheet.
func (k Kind) Statuses() []string {
	switch k {
	case KindWalkthrough:
		return []string{entity.StatusWalkthrough}
	case KindChecklist:
		return []string{entity.StatusPicked}
	default:
		statuses := make([]string, len(entity.FFEStatuses))
		copy(statuses, entity.FFEStatuses)
		return statuses
	}
}
