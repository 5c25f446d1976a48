package sheet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
)

// Bulk operation defaults. The chunk size and delay exist to stay under the
// backend's rate limit; both are configurable per mutator.
const (
	DefaultChunkSize  = 20
	DefaultChunkDelay = time.Second
)

// Mutator applies a state-changing operation to many items in fixed-size
// chunks with a fixed pause between chunks. Calls within a chunk are issued
// together and awaited together. There is no rollback and no retry: per-call
// failures are collected and returned as one aggregate error after every
// chunk has run.
type Mutator struct {
	backend   Backend
	chunkSize int
	delay     time.Duration
}

// MutatorOption configures a Mutator.
type MutatorOption func(*Mutator)

// WithChunkSize overrides the per-chunk id count.
func WithChunkSize(n int) MutatorOption {
	return func(m *Mutator) {
		if n > 0 {
			m.chunkSize = n
		}
	}
}

// WithChunkDelay overrides the pause between chunks.
func WithChunkDelay(d time.Duration) MutatorOption {
	return func(m *Mutator) {
		if d >= 0 {
			m.delay = d
		}
	}
}

// NewMutator creates a mutator over the backend.
func NewMutator(backend Backend, opts ...MutatorOption) *Mutator {
	m := &Mutator{
		backend:   backend,
		chunkSize: DefaultChunkSize,
		delay:     DefaultChunkDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetStatus moves every identified item to the given status.
func (m *Mutator) SetStatus(ctx context.Context, ids []string, status string) error {
	return m.eachID(ctx, ids, func(ctx context.Context, id string) error {
		_, err := m.backend.UpdateItem(ctx, id, map[string]interface{}{"status": status})
		return err
	})
}

// Delete removes every identified item. The contract has no bulk-delete
// endpoint, so deletes are issued one call per item.
func (m *Mutator) Delete(ctx context.Context, ids []string) error {
	return m.eachID(ctx, ids, func(ctx context.Context, id string) error {
		return m.backend.DeleteItem(ctx, id)
	})
}

// Recreate bulk-creates equivalent records from snapshots of previously
// deleted items. Server-assigned fields are stripped first; everything else,
// including room_id, is sent verbatim. The new records necessarily receive
// new identifiers.
func (m *Mutator) Recreate(ctx context.Context, snapshots []entity.Item) error {
	var errs []error
	for i := 0; i < len(snapshots); i += m.chunkSize {
		if i > 0 {
			if err := m.pause(ctx); err != nil {
				return errors.Join(append(errs, err)...)
			}
		}
		end := i + m.chunkSize
		if end > len(snapshots) {
			end = len(snapshots)
		}
		chunk := make([]entity.Item, end-i)
		for j, snap := range snapshots[i:end] {
			chunk[j] = StripServerFields(snap)
		}
		if _, err := m.backend.CreateItems(ctx, chunk); err != nil {
			errs = append(errs, fmt.Errorf("recreate chunk at %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// StripServerFields clears the fields the server assigns on create.
func StripServerFields(item entity.Item) entity.Item {
	item.ID = ""
	item.CreatedBy = ""
	item.CreatedAt = time.Time{}
	item.UpdatedAt = time.Time{}
	return item
}

func (m *Mutator) eachID(ctx context.Context, ids []string, op func(context.Context, string) error) error {
	var (
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < len(ids); i += m.chunkSize {
		if i > 0 {
			if err := m.pause(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				break
			}
		}
		end := i + m.chunkSize
		if end > len(ids) {
			end = len(ids)
		}

		var wg sync.WaitGroup
		for _, id := range ids[i:end] {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				if err := op(ctx, id); err != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("item %s: %w", id, err))
					mu.Unlock()
				}
			}(id)
		}
		wg.Wait()
	}
	return errors.Join(errs...)
}

func (m *Mutator) pause(ctx context.Context) error {
	if m.delay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
