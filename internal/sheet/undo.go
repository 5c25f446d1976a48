package sheet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
)

// ErrNothingToUndo is returned when the buffer is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// Snapshot is the record of one destructive batch. Room is set only when the
// batch deleted a whole room along with its items.
type Snapshot struct {
	Room  *entity.Room
	Items []entity.Item
}

// UndoBuffer holds the single most recent destructive batch. Each new
// destructive action overwrites the previous contents; there is no history
// stack and nothing survives the session.
type UndoBuffer struct {
	mu   sync.Mutex
	snap *Snapshot
}

// Record stores item snapshots, replacing any previous buffer contents.
func (b *UndoBuffer) Record(items []entity.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap = &Snapshot{Items: cloneItems(items)}
}

// RecordRoom stores a deleted room together with its item snapshots.
func (b *UndoBuffer) RecordRoom(room entity.Room, items []entity.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap = &Snapshot{Room: &room, Items: cloneItems(items)}
}

// Pending reports whether there is a batch to undo.
func (b *UndoBuffer) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap != nil
}

// Undo re-creates the buffered records and clears the buffer on success.
//
// When the batch deleted a room, the room is restored first and the item
// snapshots are remapped to the new room id; recreating them against the old
// id would leave them referencing a room that no longer exists.
func (b *UndoBuffer) Undo(ctx context.Context, backend Backend, m *Mutator) error {
	b.mu.Lock()
	snap := b.snap
	b.mu.Unlock()
	if snap == nil {
		return ErrNothingToUndo
	}

	items := cloneItems(snap.Items)
	if snap.Room != nil {
		room := *snap.Room
		room.ID = ""
		room.CreatedBy = ""
		created, err := backend.CreateRoom(ctx, &room)
		if err != nil {
			return fmt.Errorf("restore room: %w", err)
		}
		for i := range items {
			items[i].RoomID = created.ID
		}
	}

	if err := m.Recreate(ctx, items); err != nil {
		return fmt.Errorf("recreate items: %w", err)
	}

	b.mu.Lock()
	b.snap = nil
	b.mu.Unlock()
	return nil
}

func cloneItems(items []entity.Item) []entity.Item {
	out := make([]entity.Item, len(items))
	copy(out, items)
	return out
}
