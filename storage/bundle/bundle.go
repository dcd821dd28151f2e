// Package bundle exports and imports slot sets as deterministic TAR bundles.
//
// A bundle carries one entry per slot under "slots/", plus a canonical
// index.json recording each slot's size and content CID. Import is
// fail-closed: a bundle without an index, an entry missing from the index, or
// bytes that do not match the indexed CID all abort the import before any
// slot is written.
package bundle

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"xdao.co/sealbox/cidutil"
	"xdao.co/sealbox/storage"
)

// FormatVersion is the current bundle index schema version.
const FormatVersion = 1

var epoch0 = time.Unix(0, 0).UTC()

// Export writes a deterministic TAR bundle containing the named slots.
//
// The bundle bytes are deterministic: entry order is lexicographic, TAR
// headers are normalized, and index.json is canonical. Slot names are
// deduplicated; every slot must exist in the store.
func Export(w io.Writer, store storage.SlotStore, slots []string) error {
	if store == nil {
		return fmt.Errorf("bundle: nil store")
	}

	uniq := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if err := storage.CheckSlot(s); err != nil {
			return err
		}
		uniq[s] = struct{}{}
	}
	names := make([]string, 0, len(uniq))
	for s := range uniq {
		names = append(names, s)
	}
	sort.Strings(names)

	tw := tar.NewWriter(w)

	entries := make([]indexSlot, 0, len(names))
	for _, name := range names {
		b, err := store.Load(name)
		if err != nil {
			_ = tw.Close()
			return fmt.Errorf("bundle: load slot %q: %w", name, err)
		}
		if err := writeFile(tw, "slots/"+name, b); err != nil {
			_ = tw.Close()
			return err
		}
		entries = append(entries, indexSlot{
			Slot: name,
			Size: len(b),
			CID:  cidutil.ContentCIDString(b),
		})
	}

	idx := indexJSON{
		Version:   FormatVersion,
		CIDCodec:  "raw",
		Multihash: "sha2-256",
		Slots:     entries,
	}
	b, err := marshalCanonicalIndexJSON(idx)
	if err != nil {
		_ = tw.Close()
		return err
	}
	if err := writeFile(tw, "index.json", b); err != nil {
		_ = tw.Close()
		return err
	}

	return tw.Close()
}

// ImportOptions controls bundle import behavior.
type ImportOptions struct {
	// IgnoreUnknown controls whether unknown TAR entries are ignored.
	//
	// Default (false) is fail-closed: unknown entries cause Import to return an error.
	IgnoreUnknown bool
}

// Import reads a bundle from r and stores every indexed slot into store.
//
// Nothing is written until the whole bundle has been read and verified
// against its index, so a corrupt bundle cannot partially overwrite slots.
func Import(r io.Reader, store storage.SlotStore) error {
	return ImportWithOptions(r, store, ImportOptions{})
}

// ImportWithOptions reads a bundle from r and stores every indexed slot into store.
func ImportWithOptions(r io.Reader, store storage.SlotStore, opts ImportOptions) error {
	if store == nil {
		return fmt.Errorf("bundle: nil store")
	}

	tr := tar.NewReader(r)
	contents := map[string][]byte{}
	var idx *indexJSON

	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		name := cleanTarPath(h.Name)
		if name == "" {
			return fmt.Errorf("bundle: invalid entry path: %q", h.Name)
		}

		if h.Typeflag != tar.TypeReg {
			if opts.IgnoreUnknown {
				continue
			}
			return fmt.Errorf("bundle: unexpected tar entry type: %v (%s)", h.Typeflag, name)
		}

		if name == "index.json" {
			b, rerr := io.ReadAll(tr)
			if rerr != nil {
				return rerr
			}
			var parsed indexJSON
			if jerr := json.Unmarshal(b, &parsed); jerr != nil {
				return fmt.Errorf("bundle: malformed index.json: %w", jerr)
			}
			if parsed.Version != FormatVersion {
				return fmt.Errorf("bundle: unsupported index version %d", parsed.Version)
			}
			idx = &parsed
			continue
		}

		if !strings.HasPrefix(name, "slots/") {
			if opts.IgnoreUnknown {
				_, _ = io.Copy(io.Discard, tr)
				continue
			}
			return fmt.Errorf("bundle: unknown entry: %s", name)
		}

		slot := strings.TrimPrefix(name, "slots/")
		if err := storage.CheckSlot(slot); err != nil {
			return err
		}
		if _, ok := contents[slot]; ok {
			return fmt.Errorf("bundle: duplicate slot entry: %s", slot)
		}
		b, rerr := io.ReadAll(tr)
		if rerr != nil {
			return rerr
		}
		contents[slot] = b
	}

	if idx == nil {
		return fmt.Errorf("bundle: missing index.json")
	}

	indexed := make(map[string]indexSlot, len(idx.Slots))
	for _, e := range idx.Slots {
		indexed[e.Slot] = e
	}
	if len(indexed) != len(contents) {
		return fmt.Errorf("bundle: index lists %d slots, bundle has %d", len(indexed), len(contents))
	}
	for slot, b := range contents {
		e, ok := indexed[slot]
		if !ok {
			return fmt.Errorf("bundle: slot %q not in index", slot)
		}
		if e.Size != len(b) {
			return fmt.Errorf("bundle: slot %q size mismatch", slot)
		}
		if cidutil.ContentCIDString(b) != e.CID {
			return storage.ErrChecksumMismatch
		}
	}

	// Deterministic store order.
	slots := make([]string, 0, len(contents))
	for s := range contents {
		slots = append(slots, s)
	}
	sort.Strings(slots)
	for _, s := range slots {
		if err := store.Store(s, contents[s]); err != nil {
			return fmt.Errorf("bundle: store slot %q: %w", s, err)
		}
	}
	return nil
}

type indexJSON struct {
	Version   int         `json:"version"`
	CIDCodec  string      `json:"cidCodec"`
	Multihash string      `json:"multihash"`
	Slots     []indexSlot `json:"slots"`
}

type indexSlot struct {
	Slot string `json:"slot"`
	Size int    `json:"size"`
	CID  string `json:"cid"`
}

func marshalCanonicalIndexJSON(idx indexJSON) ([]byte, error) {
	// indexJSON is composed only of structs + slices; encoding/json will be deterministic.
	b, err := json.Marshal(idx)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func writeFile(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		Uid:      0,
		Gid:      0,
		Uname:    "",
		Gname:    "",
		ModTime:  epoch0,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := io.Copy(tw, bytes.NewReader(content))
	return err
}

func cleanTarPath(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return ""
	}

	parts := strings.Split(name, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			return ""
		}
		if part == ".." {
			return ""
		}
		out = append(out, part)
	}
	return strings.Join(out, "/")
}
