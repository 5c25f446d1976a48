package sheet

import (
	"context"
	"errors"
	"testing"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
)

func newTestSession(t *testing.T, backend *fakeBackend, kind Kind) *Session {
	t.Helper()
	s := NewSession(backend, "proj-1", kind, WithChunkDelay(0))
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return s
}

func TestMoveSelectedClearsSelection(t *testing.T) {
	backend := newFakeBackend()
	backend.addRoom("proj-1", "Kitchen")
	a := backend.addItem(entity.Item{ProjectID: "proj-1", RoomID: "r1", Name: "Stool", Status: entity.StatusWalkthrough})
	b := backend.addItem(entity.Item{ProjectID: "proj-1", RoomID: "r1", Name: "Pendant", Status: entity.StatusWalkthrough})

	s := newTestSession(t, backend, KindWalkthrough)
	s.Selection.Toggle(a.ID)
	s.Selection.Toggle(b.ID)

	if err := s.MoveSelected(context.Background(), entity.StatusPicked); err != nil {
		t.Fatalf("MoveSelected: %v", err)
	}

	if s.Selection.Len() != 0 {
		t.Fatalf("selection should be empty after successful bulk move, has %d", s.Selection.Len())
	}
	for _, id := range []string{a.ID, b.ID} {
		if item, _ := backend.item(id); item.Status != entity.StatusPicked {
			t.Errorf("item %s status = %q, want PICKED", id, item.Status)
		}
	}
	// The moved items left the Walkthrough sheet on refetch.
	if n := len(s.Store.Items()); n != 0 {
		t.Errorf("walkthrough store should be empty after move, has %d", n)
	}
}

func TestMoveSelectedRejectsUnknownStatus(t *testing.T) {
	backend := newFakeBackend()
	a := backend.addItem(entity.Item{ProjectID: "proj-1", RoomID: "r1", Name: "Stool", Status: entity.StatusWalkthrough})

	s := newTestSession(t, backend, KindWalkthrough)
	s.Selection.Toggle(a.ID)

	if err := s.MoveSelected(context.Background(), "Lost In Transit"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if s.Selection.Len() != 1 {
		t.Fatal("selection must survive a failed move")
	}
}

func TestDeleteSelectedRecordsUndo(t *testing.T) {
	backend := newFakeBackend()
	backend.addRoom("proj-1", "Kitchen")
	a := backend.addItem(entity.Item{ProjectID: "proj-1", RoomID: "r1", Name: "Stool", Status: entity.StatusPicked})

	s := newTestSession(t, backend, KindChecklist)
	s.Selection.Toggle(a.ID)

	if err := s.DeleteSelected(context.Background()); err != nil {
		t.Fatalf("DeleteSelected: %v", err)
	}
	if !s.CanUndo() {
		t.Fatal("undo should be available after a destructive batch")
	}
	if backend.itemCount() != 0 {
		t.Fatal("item should be deleted")
	}

	if err := s.Undo(context.Background()); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if backend.itemCount() != 1 {
		t.Fatal("item should be recreated by undo")
	}
	if s.CanUndo() {
		t.Fatal("undo buffer should be cleared after a successful undo")
	}
}

func TestDeleteItemsPartialFailureKeepsBookkeeping(t *testing.T) {
	backend := newFakeBackend()
	backend.addRoom("proj-1", "Kitchen")
	a := backend.addItem(entity.Item{ProjectID: "proj-1", RoomID: "r1", Name: "Stool", Status: entity.StatusPicked})
	b := backend.addItem(entity.Item{ProjectID: "proj-1", RoomID: "r1", Name: "Pendant", Status: entity.StatusPicked})
	backend.failDelete[b.ID] = errors.New("503")

	s := newTestSession(t, backend, KindChecklist)

	err := s.DeleteItems(context.Background(), []string{a.ID, b.ID})
	if err == nil {
		t.Fatal("expected aggregate error from the failed delete")
	}

	// The first delete really happened server-side, so the cache must drop it
	// and undo must be available even though the batch partially failed.
	for _, it := range s.Store.Items() {
		if it.ID == a.ID {
			t.Fatal("cache still lists the deleted item after a partial failure")
		}
	}
	if !s.CanUndo() {
		t.Fatal("undo must be recorded even when part of the batch failed")
	}

	if err := s.Undo(context.Background()); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	names := make(map[string]bool)
	for _, it := range backend.allItems() {
		names[it.Name] = true
	}
	if !names["Stool"] {
		t.Fatal("undo should recreate the item that was really deleted")
	}
}

func TestMoveSelectedPartialFailureRefetches(t *testing.T) {
	backend := newFakeBackend()
	backend.addRoom("proj-1", "Kitchen")
	a := backend.addItem(entity.Item{ProjectID: "proj-1", RoomID: "r1", Name: "Stool", Status: entity.StatusWalkthrough})
	b := backend.addItem(entity.Item{ProjectID: "proj-1", RoomID: "r1", Name: "Pendant", Status: entity.StatusWalkthrough})
	backend.failUpdate[b.ID] = errors.New("503")

	s := newTestSession(t, backend, KindWalkthrough)
	s.Selection.Toggle(a.ID)
	s.Selection.Toggle(b.ID)

	if err := s.MoveSelected(context.Background(), entity.StatusPicked); err == nil {
		t.Fatal("expected aggregate error from the failed update")
	}

	// The moved item left the Walkthrough sheet on refetch; the failed one
	// stayed. Selection survives so the user can retry.
	for _, it := range s.Store.Items() {
		if it.ID == a.ID {
			t.Fatal("moved item should have left the sheet after the refetch")
		}
	}
	if !s.Selection.Has(b.ID) {
		t.Fatal("selection must survive a failed move")
	}
}

func TestDeleteRoomUndoRestoresEverything(t *testing.T) {
	backend := newFakeBackend()
	kitchen := backend.addRoom("proj-1", "Kitchen")
	backend.addItem(entity.Item{ProjectID: "proj-1", RoomID: kitchen.ID, Name: "Range", Status: entity.StatusApproved})
	backend.addItem(entity.Item{ProjectID: "proj-1", RoomID: kitchen.ID, Name: "Hood", Status: entity.StatusOrdered})

	s := newTestSession(t, backend, KindFFE)

	if err := s.DeleteRoom(context.Background(), kitchen.ID); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	if backend.itemCount() != 0 {
		t.Fatal("room delete should cascade to items")
	}

	if err := s.Undo(context.Background()); err != nil {
		t.Fatalf("Undo: %v", err)
	}

	rooms := s.Store.Rooms()
	if len(rooms) != 1 || rooms[0].Name != "Kitchen" {
		t.Fatalf("room not restored: %+v", rooms)
	}
	items := s.Store.Items()
	if len(items) != 2 {
		t.Fatalf("items not restored: %+v", items)
	}
	for _, it := range items {
		if it.RoomID != rooms[0].ID {
			t.Errorf("restored item %q points at room %s, want %s", it.Name, it.RoomID, rooms[0].ID)
		}
	}
}
