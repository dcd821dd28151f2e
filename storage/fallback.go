package storage

import "fmt"

// FallbackStore provides deterministic, ordered fallback across multiple slot
// stores.
//
// Load order is the slice order in Backends; callers MUST supply a fixed
// order. This avoids map-iteration nondeterminism and makes the retrieval
// strategy explicit.
//
// Store is defined to write only to the first backend.
type FallbackStore struct {
	Backends []SlotStore
}

var _ SlotStore = (*FallbackStore)(nil)

func (f FallbackStore) Store(slot string, b []byte) error {
	if len(f.Backends) == 0 {
		return fmt.Errorf("storage: FallbackStore has no backends")
	}
	return f.Backends[0].Store(slot, b)
}

func (f FallbackStore) Load(slot string) ([]byte, error) {
	if err := CheckSlot(slot); err != nil {
		return nil, err
	}
	var sawNotFound bool
	for _, be := range f.Backends {
		b, err := be.Load(slot)
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

func (f FallbackStore) Has(slot string) bool {
	for _, be := range f.Backends {
		if be.Has(slot) {
			return true
		}
	}
	return false
}
