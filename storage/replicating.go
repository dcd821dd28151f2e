package storage

import "fmt"

// NamedStore associates a SlotStore with a stable backend name.
//
// This is used for multi-backend orchestration where callers need to retain
// per-backend metadata (e.g., for reporting or auditing).
type NamedStore struct {
	Name  string
	Store SlotStore
}

// ReplicatingStore writes to all configured backends.
//
// Store goes to every backend and fails on the first error; because slots are
// mutable, a partial write leaves replicas divergent until the next
// successful Store of the same slot. Load falls back in backend order and
// returns the first hit, so earlier backends are authoritative for reads.
type ReplicatingStore struct {
	Backends []NamedStore
}

var _ SlotStore = (*ReplicatingStore)(nil)

func (r ReplicatingStore) Store(slot string, b []byte) error {
	if err := CheckSlot(slot); err != nil {
		return err
	}
	if len(r.Backends) == 0 {
		return fmt.Errorf("storage: ReplicatingStore has no backends")
	}
	for _, be := range r.Backends {
		if be.Store == nil {
			return fmt.Errorf("storage: nil store for backend %q", be.Name)
		}
		if err := be.Store.Store(slot, b); err != nil {
			return fmt.Errorf("storage: backend %q: %w", be.Name, err)
		}
	}
	return nil
}

func (r ReplicatingStore) Load(slot string) ([]byte, error) {
	if err := CheckSlot(slot); err != nil {
		return nil, err
	}
	var sawNotFound bool
	for _, be := range r.Backends {
		if be.Store == nil {
			continue
		}
		b, err := be.Store.Load(slot)
		if err == nil {
			return b, nil
		}
		if IsNotFound(err) {
			sawNotFound = true
			continue
		}
		return nil, err
	}
	if sawNotFound {
		return nil, ErrNotFound
	}
	return nil, ErrNotFound
}

func (r ReplicatingStore) Has(slot string) bool {
	for _, be := range r.Backends {
		if be.Store != nil && be.Store.Has(slot) {
			return true
		}
	}
	return false
}
