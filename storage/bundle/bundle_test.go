package bundle

import (
	"archive/tar"
	"bytes"
	"io"
	"strings"
	"testing"

	"xdao.co/sealbox/storage"
)

func seed(t *testing.T) *storage.MemStore {
	t.Helper()
	st := storage.NewMemStore()
	for slot, b := range map[string][]byte{
		"record-a": []byte("first record bytes"),
		"record-b": []byte("second record bytes"),
		"input":    []byte("payload buffer"),
	} {
		if err := st.Store(slot, b); err != nil {
			t.Fatalf("Store(%s) failed: %v", slot, err)
		}
	}
	return st
}

func TestBundle_ExportImportRoundTrip(t *testing.T) {
	src := seed(t)
	var buf bytes.Buffer
	if err := Export(&buf, src, []string{"record-a", "record-b", "input"}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst := storage.NewMemStore()
	if err := Import(bytes.NewReader(buf.Bytes()), dst); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	for _, slot := range []string{"record-a", "record-b", "input"} {
		want, _ := src.Load(slot)
		got, err := dst.Load(slot)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", slot, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("slot %s mismatch", slot)
		}
	}
}

func TestBundle_ExportDeterministic(t *testing.T) {
	src := seed(t)

	var a, b bytes.Buffer
	if err := Export(&a, src, []string{"record-b", "record-a"}); err != nil {
		t.Fatalf("Export(1) failed: %v", err)
	}
	// Different argument order and duplicates must not change the bytes.
	if err := Export(&b, src, []string{"record-a", "record-b", "record-a"}); err != nil {
		t.Fatalf("Export(2) failed: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("export bytes not deterministic")
	}
}

func TestBundle_ExportMissingSlot(t *testing.T) {
	src := seed(t)
	var buf bytes.Buffer
	err := Export(&buf, src, []string{"absent"})
	if err == nil || !strings.Contains(err.Error(), "absent") {
		t.Fatalf("Export of missing slot: got %v", err)
	}
}

func TestBundle_ImportRejectsTamperedBytes(t *testing.T) {
	src := seed(t)
	var buf bytes.Buffer
	if err := Export(&buf, src, []string{"record-a"}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// Rewrite the slot entry with different bytes of the same length,
	// leaving the index untouched.
	tampered := rewriteEntry(t, buf.Bytes(), "slots/record-a", []byte("XXXXX record bytes"))

	dst := storage.NewMemStore()
	if err := Import(bytes.NewReader(tampered), dst); err != storage.ErrChecksumMismatch {
		t.Fatalf("Import of tampered bundle: got %v want ErrChecksumMismatch", err)
	}
	if dst.Has("record-a") {
		t.Fatalf("tampered import must not write any slot")
	}
}

func TestBundle_ImportRejectsMissingIndex(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := writeFile(tw, "slots/orphan", []byte("no index")); err != nil {
		t.Fatalf("writeFile failed: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	dst := storage.NewMemStore()
	if err := Import(bytes.NewReader(buf.Bytes()), dst); err == nil {
		t.Fatalf("expected missing-index error")
	}
}

func TestBundle_ImportRejectsUnknownEntries(t *testing.T) {
	src := seed(t)
	var buf bytes.Buffer
	if err := Export(&buf, src, []string{"record-a"}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var extended bytes.Buffer
	copyAllEntries(t, &extended, buf.Bytes(), func(tw *tar.Writer) {
		if err := writeFile(tw, "evil/entry", []byte("surprise")); err != nil {
			t.Fatalf("writeFile failed: %v", err)
		}
	})

	dst := storage.NewMemStore()
	if err := Import(bytes.NewReader(extended.Bytes()), dst); err == nil {
		t.Fatalf("expected unknown-entry error")
	}
	if err := ImportWithOptions(bytes.NewReader(extended.Bytes()), dst, ImportOptions{IgnoreUnknown: true}); err != nil {
		t.Fatalf("ImportWithOptions(IgnoreUnknown) failed: %v", err)
	}
	if !dst.Has("record-a") {
		t.Fatalf("slot missing after lenient import")
	}
}

// rewriteEntry rebuilds the bundle with the named entry's content replaced.
func rewriteEntry(t *testing.T, in []byte, name string, content []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	tw := tar.NewWriter(&out)
	tr := tar.NewReader(bytes.NewReader(in))
	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		b, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("ReadAll failed: %v", err)
		}
		if h.Name == name {
			b = content
		}
		if err := writeFile(tw, h.Name, b); err != nil {
			t.Fatalf("writeFile failed: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return out.Bytes()
}

// copyAllEntries copies every entry from in to a new bundle, then invokes
// extra to append additional entries before closing.
func copyAllEntries(t *testing.T, out *bytes.Buffer, in []byte, extra func(tw *tar.Writer)) {
	t.Helper()
	tw := tar.NewWriter(out)
	tr := tar.NewReader(bytes.NewReader(in))
	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		b, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("ReadAll failed: %v", err)
		}
		if err := writeFile(tw, h.Name, b); err != nil {
			t.Fatalf("writeFile failed: %v", err)
		}
	}
	extra(tw)
	if err := tw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
