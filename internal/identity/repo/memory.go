package repo

import (
	"context"
	"sync"
)

// MemorySlot is an in-memory Slot used by tests.
type MemorySlot struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemorySlot returns an empty in-memory slot store.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{data: make(map[string][]byte)}
}

func (r *MemorySlot) Load(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payload, ok := r.data[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (r *MemorySlot) Save(ctx context.Context, key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]byte, len(payload))
	copy(out, payload)
	r.data[key] = out
	return nil
}

func (r *MemorySlot) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}
