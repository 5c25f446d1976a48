package sheet

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
)

// fakeBackend is an in-memory Backend with call recording and error
// injection. List order matches the server: newest first.
type fakeBackend struct {
	mu    sync.Mutex
	seq   int
	rooms map[string]entity.Room
	items map[string]entity.Item
	// creation sequence per id, for reverse-chronological listing
	created map[string]int

	updateTimes   []time.Time
	deleteTimes   []time.Time
	createBatches [][]entity.Item

	failUpdate map[string]error
	failDelete map[string]error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		rooms:      make(map[string]entity.Room),
		items:      make(map[string]entity.Item),
		created:    make(map[string]int),
		failUpdate: make(map[string]error),
		failDelete: make(map[string]error),
	}
}

func (b *fakeBackend) nextID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s-%04d", prefix, b.seq)
}

func (b *fakeBackend) addRoom(projectID, name string) entity.Room {
	b.mu.Lock()
	defer b.mu.Unlock()
	room := entity.Room{ID: b.nextID("room"), ProjectID: projectID, Name: name}
	b.rooms[room.ID] = room
	b.created[room.ID] = b.seq
	return room
}

func (b *fakeBackend) addItem(item entity.Item) entity.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	if item.ID == "" {
		item.ID = b.nextID("item")
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	b.items[item.ID] = item
	b.created[item.ID] = b.seq
	return item
}

func (b *fakeBackend) ListRooms(ctx context.Context, projectID string) ([]entity.Room, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []entity.Room
	for _, room := range b.rooms {
		if room.ProjectID == projectID {
			out = append(out, room)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return b.created[out[i].ID] > b.created[out[j].ID]
	})
	return out, nil
}

func (b *fakeBackend) ListItems(ctx context.Context, projectID string, statuses []string) ([]entity.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []entity.Item
	for _, item := range b.items {
		if item.ProjectID != projectID {
			continue
		}
		if len(statuses) > 0 && !allowed[item.Status] {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return b.created[out[i].ID] > b.created[out[j].ID]
	})
	return out, nil
}

func (b *fakeBackend) CreateRoom(ctx context.Context, room *entity.Room) (*entity.Room, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	created := *room
	created.ID = b.nextID("room")
	b.rooms[created.ID] = created
	b.created[created.ID] = b.seq
	return &created, nil
}

func (b *fakeBackend) CreateItems(ctx context.Context, items []entity.Item) ([]entity.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch := make([]entity.Item, len(items))
	copy(batch, items)
	b.createBatches = append(b.createBatches, batch)

	out := make([]entity.Item, len(items))
	for i, item := range items {
		item.ID = b.nextID("item")
		b.items[item.ID] = item
		b.created[item.ID] = b.seq
		out[i] = item
	}
	return out, nil
}

func (b *fakeBackend) UpdateItem(ctx context.Context, id string, fields map[string]interface{}) (*entity.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updateTimes = append(b.updateTimes, time.Now())
	if err := b.failUpdate[id]; err != nil {
		return nil, err
	}
	item, ok := b.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s not found", id)
	}
	if status, ok := fields["status"].(string); ok {
		item.Status = status
	}
	if name, ok := fields["name"].(string); ok {
		item.Name = name
	}
	if sku, ok := fields["vendor_sku"].(string); ok {
		item.VendorSKU = sku
	}
	b.items[id] = item
	return &item, nil
}

func (b *fakeBackend) DeleteItem(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleteTimes = append(b.deleteTimes, time.Now())
	if err := b.failDelete[id]; err != nil {
		return err
	}
	if _, ok := b.items[id]; !ok {
		return fmt.Errorf("item %s not found", id)
	}
	delete(b.items, id)
	return nil
}

func (b *fakeBackend) DeleteRoom(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.rooms[id]; !ok {
		return fmt.Errorf("room %s not found", id)
	}
	delete(b.rooms, id)
	for itemID, item := range b.items {
		if item.RoomID == id {
			delete(b.items, itemID)
		}
	}
	return nil
}

func (b *fakeBackend) itemCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

func (b *fakeBackend) item(id string) (entity.Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	item, ok := b.items[id]
	return item, ok
}

func (b *fakeBackend) allItems() []entity.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.Item, 0, len(b.items))
	for _, item := range b.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
