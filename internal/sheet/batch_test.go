package sheet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
)

func seedItems(b *fakeBackend, n int) []string {
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		created := b.addItem(entity.Item{
			ProjectID: "proj-1",
			RoomID:    "r1",
			Name:      fmt.Sprintf("Item %d", i),
			Status:    entity.StatusWalkthrough,
		})
		ids[i] = created.ID
	}
	return ids
}

func TestSetStatusChunking(t *testing.T) {
	backend := newFakeBackend()
	ids := seedItems(backend, 45)

	const delay = 60 * time.Millisecond
	m := NewMutator(backend, WithChunkSize(20), WithChunkDelay(delay))

	if err := m.SetStatus(context.Background(), ids, entity.StatusPicked); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	backend.mu.Lock()
	times := append([]time.Time(nil), backend.updateTimes...)
	backend.mu.Unlock()

	if len(times) != 45 {
		t.Fatalf("expected 45 update calls, got %d", len(times))
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	// Chunk boundaries at 20 and 40: the next chunk must start at least one
	// delay after the previous one.
	if gap := times[20].Sub(times[19]); gap < delay {
		t.Errorf("gap between chunk 1 and 2 = %v, want >= %v", gap, delay)
	}
	if gap := times[40].Sub(times[39]); gap < delay {
		t.Errorf("gap between chunk 2 and 3 = %v, want >= %v", gap, delay)
	}

	for _, id := range ids {
		item, ok := backend.item(id)
		if !ok || item.Status != entity.StatusPicked {
			t.Fatalf("item %s status = %q, want PICKED", id, item.Status)
		}
	}
}

func TestDeleteContinuesPastFailures(t *testing.T) {
	backend := newFakeBackend()
	ids := seedItems(backend, 25)
	backend.failDelete[ids[6]] = errors.New("boom")

	m := NewMutator(backend, WithChunkSize(10), WithChunkDelay(0))
	err := m.Delete(context.Background(), ids)
	if err == nil {
		t.Fatal("expected aggregate error from failed delete")
	}

	// Every other item must still have been deleted; no rollback, no retry.
	if got := backend.itemCount(); got != 1 {
		t.Fatalf("remaining items = %d, want 1", got)
	}
	if _, ok := backend.item(ids[6]); !ok {
		t.Fatal("failed item should remain")
	}
}

func TestDeleteAbortsOnContextCancel(t *testing.T) {
	backend := newFakeBackend()
	ids := seedItems(backend, 40)

	ctx, cancel := context.WithCancel(context.Background())
	m := NewMutator(backend, WithChunkSize(20), WithChunkDelay(200*time.Millisecond))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := m.Delete(ctx, ids)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	backend.mu.Lock()
	calls := len(backend.deleteTimes)
	backend.mu.Unlock()
	if calls != 20 {
		t.Fatalf("delete calls = %d, want only the first chunk (20)", calls)
	}
}

func TestRecreateStripsServerFields(t *testing.T) {
	backend := newFakeBackend()
	m := NewMutator(backend, WithChunkSize(20), WithChunkDelay(0))

	when := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	snapshots := make([]entity.Item, 25)
	for i := range snapshots {
		snapshots[i] = entity.Item{
			ID:         fmt.Sprintf("old-%d", i),
			ProjectID:  "proj-1",
			RoomID:     "r1",
			Name:       fmt.Sprintf("Item %d", i),
			Status:     entity.StatusApproved,
			Quantity:   2,
			VendorSKU:  "SKU-1",
			ActualCost: 99.5,
			CreatedBy:  "user-1",
			CreatedAt:  when,
			UpdatedAt:  when,
		}
	}

	if err := m.Recreate(context.Background(), snapshots); err != nil {
		t.Fatalf("Recreate: %v", err)
	}

	backend.mu.Lock()
	batches := backend.createBatches
	backend.mu.Unlock()

	if len(batches) != 2 || len(batches[0]) != 20 || len(batches[1]) != 5 {
		t.Fatalf("batch sizes wrong: %v", batchSizes(batches))
	}
	for _, batch := range batches {
		for _, sent := range batch {
			if sent.ID != "" || sent.CreatedBy != "" || !sent.CreatedAt.IsZero() || !sent.UpdatedAt.IsZero() {
				t.Fatalf("server-assigned fields not stripped: %+v", sent)
			}
			if sent.RoomID != "r1" || sent.Status != entity.StatusApproved || sent.Quantity != 2 {
				t.Fatalf("domain fields must be preserved verbatim: %+v", sent)
			}
		}
	}
}

func batchSizes(batches [][]entity.Item) []int {
	sizes := make([]int, len(batches))
	for i, b := range batches {
		sizes[i] = len(b)
	}
	return sizes
}
