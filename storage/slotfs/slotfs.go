package slotfs

import (
	"errors"
	"os"
	"path/filepath"

	"xdao.co/sealbox/cidutil"
	"xdao.co/sealbox/storage"
)

// Store is a local filesystem-backed slot store.
//
// Each slot is a single file replaced wholesale on Store (temp file + rename,
// so readers never observe a half-written slot). Next to every slot file a
// sidecar records the CIDv1 (raw + sha2-256) of the stored bytes; Load
// verifies the sidecar and reports corruption as ErrChecksumMismatch.
//
// This implementation is offline and deterministic: it never uses the network
// and never depends on wall-clock time.
type Store struct {
	root string

	// MaxBytes caps the size of a stored buffer when non-zero.
	MaxBytes int
}

const (
	dataSuffix = ".slot"
	cidSuffix  = ".cid"
)

// New constructs a filesystem store rooted at root. The directory will be created if needed.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("slotfs: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

func (s *Store) Store(slot string, b []byte) error {
	if err := storage.CheckSlot(slot); err != nil {
		return err
	}
	if s.MaxBytes > 0 && len(b) > s.MaxBytes {
		return storage.ErrTooLarge
	}

	if err := writeAtomic(s.dataPath(slot), b); err != nil {
		return err
	}
	return writeAtomic(s.cidPath(slot), []byte(cidutil.ContentCIDString(b)))
}

func (s *Store) Load(slot string) ([]byte, error) {
	if err := storage.CheckSlot(slot); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.dataPath(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	want, err := os.ReadFile(s.cidPath(slot))
	if err != nil {
		if os.IsNotExist(err) {
			// A slot file without its sidecar is a torn or tampered write.
			return nil, storage.ErrChecksumMismatch
		}
		return nil, err
	}
	if cidutil.ContentCIDString(b) != string(want) {
		return nil, storage.ErrChecksumMismatch
	}
	return b, nil
}

func (s *Store) Has(slot string) bool {
	if storage.CheckSlot(slot) != nil {
		return false
	}
	_, err := os.Stat(s.dataPath(slot))
	return err == nil
}

func (s *Store) dataPath(slot string) string { return filepath.Join(s.root, slot+dataSuffix) }
func (s *Store) cidPath(slot string) string  { return filepath.Join(s.root, slot+cidSuffix) }

func writeAtomic(path string, b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
