package storage

import "sync"

// MemStore is an in-process SlotStore backed by a map.
//
// It is safe for concurrent use and is the default backend for tests and for
// daemons that do not need persistence across restarts.
type MemStore struct {
	mu    sync.RWMutex
	slots map[string][]byte

	// MaxBytes caps the size of a stored buffer when non-zero.
	MaxBytes int
}

// NewMemStore constructs an empty MemStore with no size cap.
func NewMemStore() *MemStore {
	return &MemStore{slots: map[string][]byte{}}
}

func (m *MemStore) Load(slot string) ([]byte, error) {
	if err := CheckSlot(slot); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.slots[slot]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (m *MemStore) Store(slot string, b []byte) error {
	if err := CheckSlot(slot); err != nil {
		return err
	}
	if m.MaxBytes > 0 && len(b) > m.MaxBytes {
		return ErrTooLarge
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slots == nil {
		m.slots = map[string][]byte{}
	}
	m.slots[slot] = cp
	return nil
}

func (m *MemStore) Has(slot string) bool {
	if CheckSlot(slot) != nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.slots[slot]
	return ok
}
