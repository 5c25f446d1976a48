package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
)

// Store is the in-memory room and item cache for one project view. Its
// lifetime is one page view: it is populated by Refresh, patched optimistically
// on single-cell edits and thrown away with the session.
type Store struct {
	mu        sync.Mutex
	backend   Backend
	projectID string
	rooms     []entity.Room
	items     []entity.Item
	dirty     map[string]bool
}

// NewStore creates an empty store for a project.
func NewStore(backend Backend, projectID string) *Store {
	return &Store{
		backend:   backend,
		projectID: projectID,
		dirty:     make(map[string]bool),
	}
}

// ProjectID returns the project this store caches.
func (s *Store) ProjectID() string {
	return s.projectID
}

// Refresh replaces the cached rooms and items with the server's current
// state, restricted to the given status set. Dirty marks are dropped; the
// server is the source of truth again.
func (s *Store) Refresh(ctx context.Context, statuses []string) error {
	rooms, err := s.backend.ListRooms(ctx, s.projectID)
	if err != nil {
		return fmt.Errorf("list rooms: %w", err)
	}
	items, err := s.backend.ListItems(ctx, s.projectID, statuses)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	s.mu.Lock()
	s.rooms = rooms
	s.items = items
	s.dirty = make(map[string]bool)
	s.mu.Unlock()
	return nil
}

// Rooms returns a copy of the cached room list.
func (s *Store) Rooms() []entity.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// Items returns a copy of the cached item list.
func (s *Store) Items() []entity.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the cached item by id.
func (s *Store) Item(id string) (entity.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return entity.Item{}, false
}

// Group derives the render tree from the current cache.
func (s *Store) Group(f Filter) Grouped {
	s.mu.Lock()
	rooms := make([]entity.Room, len(s.rooms))
	copy(rooms, s.rooms)
	items := make([]entity.Item, len(s.items))
	copy(items, s.items)
	s.mu.Unlock()
	return Group(rooms, items, f)
}

// PatchField applies a single-field edit: the cache is updated first, then
// the change is sent to the backend. On failure the attempted value stays in
// the cache and the item is marked dirty rather than silently reverted; the
// next Refresh resynchronizes.
func (s *Store) PatchField(ctx context.Context, itemID, field string, value interface{}) error {
	s.mu.Lock()
	idx := -1
	for i := range s.items {
		if s.items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("item %s not in store", itemID)
	}
	if err := applyField(&s.items[idx], field, value); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("apply %s: %w", field, err)
	}
	s.mu.Unlock()

	if _, err := s.backend.UpdateItem(ctx, itemID, map[string]interface{}{field: value}); err != nil {
		s.mu.Lock()
		s.dirty[itemID] = true
		s.mu.Unlock()
		return fmt.Errorf("update item %s: %w", itemID, err)
	}
	return nil
}

// Dirty returns the ids of items whose last edit was not acknowledged by the
// backend, in sorted order.
func (s *Store) Dirty() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.dirty))
	for id := range s.dirty {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// applyField sets one json-named field on an item through a map round-trip,
// so the store accepts the same field names the wire does.
func applyField(item *entity.Item, field string, value interface{}) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	m[field] = value
	patched, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(patched, item)
}
