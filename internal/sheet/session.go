package sheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
)

// Session ties one sheet view together: the item cache, the checkbox
// selection, collapse state, the batch mutator and the undo buffer. All bulk
// flows go through here so their bookkeeping (clear selection, record undo,
// refetch) stays in one place.
type Session struct {
	Store     *Store
	Selection *Selection
	Collapse  *Collapse

	backend Backend
	mutator *Mutator
	undo    UndoBuffer
	kind    Kind
}

// NewSession creates a session for one project and sheet view.
func NewSession(backend Backend, projectID string, kind Kind, opts ...MutatorOption) *Session {
	return &Session{
		Store:     NewStore(backend, projectID),
		Selection: NewSelection(),
		Collapse:  NewCollapse(),
		backend:   backend,
		mutator:   NewMutator(backend, opts...),
		kind:      kind,
	}
}

// Kind returns the sheet view this session drives.
func (s *Session) Kind() Kind {
	return s.kind
}

// Refresh refetches rooms and items for the session's sheet.
func (s *Session) Refresh(ctx context.Context) error {
	return s.Store.Refresh(ctx, s.kind.Statuses())
}

// MoveSelected bulk-moves every selected item to the given status, e.g.
// Walkthrough -> PICKED to push picks onto the Checklist. On success the
// selection is cleared unconditionally. The cache is refetched even when some
// calls failed: the mutator kept going, so part of the batch is already live
// on the server.
func (s *Session) MoveSelected(ctx context.Context, status string) error {
	ids := s.Selection.IDs()
	if len(ids) == 0 {
		return nil
	}
	if !entity.ValidStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	moveErr := s.mutator.SetStatus(ctx, ids, status)
	if moveErr == nil {
		s.Selection.Clear()
	}
	return errors.Join(moveErr, s.Refresh(ctx))
}

// DeleteItems bulk-deletes the given items, records them in the undo buffer
// and refetches. The snapshots are taken from the cache before the first
// delete goes out. Both happen even on a partial failure: the surviving calls
// really deleted their items, so the snapshot is the only way back and the
// cache must not keep listing them.
func (s *Session) DeleteItems(ctx context.Context, ids []string) error {
	snapshots := make([]entity.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := s.Store.Item(id); ok {
			snapshots = append(snapshots, item)
		}
	}
	delErr := s.mutator.Delete(ctx, ids)
	s.undo.Record(snapshots)
	return errors.Join(delErr, s.Refresh(ctx))
}

// DeleteSelected deletes the selection and clears it.
func (s *Session) DeleteSelected(ctx context.Context) error {
	ids := s.Selection.IDs()
	if len(ids) == 0 {
		return nil
	}
	if err := s.DeleteItems(ctx, ids); err != nil {
		return err
	}
	s.Selection.Clear()
	return nil
}

// DeleteRoom deletes a room; the backend cascades to the room's items. The
// room and its cached items are snapshotted so the whole batch can be undone.
func (s *Session) DeleteRoom(ctx context.Context, roomID string) error {
	var room *entity.Room
	for _, r := range s.Store.Rooms() {
		if r.ID == roomID {
			r := r
			room = &r
			break
		}
	}
	if room == nil {
		return fmt.Errorf("room %s not in store", roomID)
	}

	var snapshots []entity.Item
	for _, item := range s.Store.Items() {
		if item.RoomID == roomID {
			snapshots = append(snapshots, item)
		}
	}

	if err := s.backend.DeleteRoom(ctx, roomID); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	s.undo.RecordRoom(*room, snapshots)
	return s.Refresh(ctx)
}

// Undo reverses the most recent destructive batch and refetches.
func (s *Session) Undo(ctx context.Context) error {
	if err := s.undo.Undo(ctx, s.backend, s.mutator); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// CanUndo reports whether an undoable batch is buffered.
func (s *Session) CanUndo() bool {
	return s.undo.Pending()
}
