package testkit

import (
	"bytes"
	"testing"

	"xdao.co/sealbox/storage"
)

// NewStore constructs a fresh, empty SlotStore instance for a test.
// The returned store MUST be isolated from other tests.
type NewStore func(t *testing.T) storage.SlotStore

// RunSlotStoreConformance exercises the SlotStore contract against a backend.
func RunSlotStoreConformance(t *testing.T, newStore NewStore) {
	t.Helper()

	t.Run("StoreLoadRoundTrip", func(t *testing.T) {
		st := newStore(t)
		want := []byte("hello, sealbox storage")

		if err := st.Store("record", want); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
		got, err := st.Load("record")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Load bytes mismatch: got %q want %q", got, want)
		}
	})

	t.Run("StoreReplacesWholesale", func(t *testing.T) {
		st := newStore(t)
		if err := st.Store("record", []byte("first")); err != nil {
			t.Fatalf("Store(1) failed: %v", err)
		}
		if err := st.Store("record", []byte("second, longer value")); err != nil {
			t.Fatalf("Store(2) failed: %v", err)
		}
		got, err := st.Load("record")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if string(got) != "second, longer value" {
			t.Fatalf("Load after replace: got %q", got)
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		st := newStore(t)
		if st.Has("missing") {
			t.Fatalf("Has returned true for missing slot")
		}
		_, err := st.Load("missing")
		if !storage.IsNotFound(err) {
			t.Fatalf("Load missing: got err=%v want ErrNotFound", err)
		}
		if err := st.Store("missing", []byte("now present")); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
		if !st.Has("missing") {
			t.Fatalf("Has returned false after Store")
		}
	})

	t.Run("EmptyBytesAreStorable", func(t *testing.T) {
		st := newStore(t)
		if err := st.Store("empty", nil); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
		got, err := st.Load("empty")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("Load: got %q want empty", got)
		}
	})

	t.Run("RejectInvalidSlotNames", func(t *testing.T) {
		st := newStore(t)
		for _, slot := range []string{"", ".", "..", "a/b", "a\\b", "nul\x00"} {
			if err := st.Store(slot, []byte("x")); err == nil {
				t.Fatalf("Store(%q) should fail", slot)
			}
			if _, err := st.Load(slot); err == nil {
				t.Fatalf("Load(%q) should fail", slot)
			}
			if st.Has(slot) {
				t.Fatalf("Has(%q) should be false", slot)
			}
		}
	})

	t.Run("SlotsAreIndependent", func(t *testing.T) {
		st := newStore(t)
		if err := st.Store("a", []byte("alpha")); err != nil {
			t.Fatalf("Store(a) failed: %v", err)
		}
		if err := st.Store("b", []byte("beta")); err != nil {
			t.Fatalf("Store(b) failed: %v", err)
		}
		a, err := st.Load("a")
		if err != nil {
			t.Fatalf("Load(a) failed: %v", err)
		}
		b, err := st.Load("b")
		if err != nil {
			t.Fatalf("Load(b) failed: %v", err)
		}
		if string(a) != "alpha" || string(b) != "beta" {
			t.Fatalf("slot isolation broken: a=%q b=%q", a, b)
		}
	})
}
