package storage_test

import (
	"testing"

	"xdao.co/sealbox/storage"
	"xdao.co/sealbox/storage/testkit"
)

func TestMemStore_Conformance(t *testing.T) {
	testkit.RunSlotStoreConformance(t, func(t *testing.T) storage.SlotStore {
		t.Helper()
		return storage.NewMemStore()
	})
}

func TestMemStore_SizeCap(t *testing.T) {
	st := storage.NewMemStore()
	st.MaxBytes = 4
	if err := st.Store("ok", []byte("1234")); err != nil {
		t.Fatalf("Store at cap failed: %v", err)
	}
	if err := st.Store("big", []byte("12345")); err != storage.ErrTooLarge {
		t.Fatalf("Store over cap: got %v want %v", err, storage.ErrTooLarge)
	}
}

func TestMemStore_LoadReturnsCopy(t *testing.T) {
	st := storage.NewMemStore()
	if err := st.Store("slot", []byte("abc")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	b, err := st.Load("slot")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	b[0] = 'x'
	again, err := st.Load("slot")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(again) != "abc" {
		t.Fatalf("stored bytes aliased by Load: got %q", again)
	}
}

func TestReplicatingStore_WriteAllReadFallback(t *testing.T) {
	primary := storage.NewMemStore()
	secondary := storage.NewMemStore()
	rep := storage.ReplicatingStore{Backends: []storage.NamedStore{
		{Name: "primary", Store: primary},
		{Name: "secondary", Store: secondary},
	}}

	if err := rep.Store("record", []byte("payload")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	for name, st := range map[string]*storage.MemStore{"primary": primary, "secondary": secondary} {
		got, err := st.Load("record")
		if err != nil {
			t.Fatalf("%s Load failed: %v", name, err)
		}
		if string(got) != "payload" {
			t.Fatalf("%s: got %q", name, got)
		}
	}

	// Reads fall back when the primary loses the slot.
	if err := secondary.Store("only-secondary", []byte("fallback")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	got, err := rep.Load("only-secondary")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != "fallback" {
		t.Fatalf("fallback read: got %q", got)
	}

	if _, err := rep.Load("missing"); !storage.IsNotFound(err) {
		t.Fatalf("Load missing: got %v want ErrNotFound", err)
	}
	if !rep.Has("only-secondary") || rep.Has("missing") {
		t.Fatalf("Has results inconsistent")
	}
}
