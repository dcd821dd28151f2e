package storage

import "strings"

// SlotStore is a minimal named-slot storage interface.
//
// Contract:
// - Slots are mutable: Store replaces the slot's bytes wholesale (there is no
//   partial update).
// - Load MUST return ErrNotFound when the slot has never been stored.
// - Slot names MUST satisfy CheckSlot; implementations reject others with
//   ErrInvalidSlot.
// - Ordering and mutual exclusion between concurrent Store/Load calls on the
//   same slot are the implementation's concern; callers get last-writer-wins.
type SlotStore interface {
	Load(slot string) ([]byte, error)
	Store(slot string, b []byte) error
	Has(slot string) bool
}

// CheckSlot validates a slot name.
//
// Names are opaque identifiers chosen by the surrounding system; the rules
// here only exclude names that cannot be represented safely by every backend
// (the filesystem backend uses the name as a file name).
func CheckSlot(slot string) error {
	if slot == "" {
		return ErrInvalidSlot
	}
	if slot == "." || slot == ".." {
		return ErrInvalidSlot
	}
	if strings.ContainsAny(slot, "/\\\x00") {
		return ErrInvalidSlot
	}
	return nil
}
