package slotconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"xdao.co/sealbox/storage"
	"xdao.co/sealbox/storage/slotregistry"

	_ "xdao.co/sealbox/storage/slotfs"
)

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"Empty", Config{}, false},
		{"MissingName", Config{Backends: []BackendConfig{{}}}, false},
		{"DuplicateID", Config{Backends: []BackendConfig{{Name: "slotfs"}, {Name: "slotfs"}}}, false},
		{"DistinctIDs", Config{Backends: []BackendConfig{{Name: "slotfs", ID: "a"}, {Name: "slotfs", ID: "b"}}}, true},
		{"BadPolicy", Config{WritePolicy: "quorum", Backends: []BackendConfig{{Name: "slotfs"}}}, false},
		{"AllPolicy", Config{WritePolicy: "all", Backends: []BackendConfig{{Name: "slotfs"}}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("Validate should fail")
			}
		})
	}
}

func TestConfig_LoadFileAndOpen(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "slots.json")
	cfgJSON := `{
  "write_policy": "all",
  "backends": [
    {"name":"slotfs", "id":"a", "config":{"slotfs-dir":` + quote(dirA) + `}},
    {"name":"slotfs", "id":"b", "config":{"slotfs-dir":` + quote(dirB) + `}}
  ]
}`
	if err := os.WriteFile(cfgPath, []byte(cfgJSON), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	st, closeFn, err := cfg.Open(slotregistry.UsageCLI, "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if closeFn != nil {
		defer func() { _ = closeFn() }()
	}

	if err := st.Store("record", []byte("replicated")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	// write_policy=all replicates to both directories.
	for _, dir := range []string{dirA, dirB} {
		single, err := openSingle(dir)
		if err != nil {
			t.Fatalf("open %s: %v", dir, err)
		}
		got, err := single.Load("record")
		if err != nil {
			t.Fatalf("Load from %s failed: %v", dir, err)
		}
		if string(got) != "replicated" {
			t.Fatalf("replica %s: got %q", dir, got)
		}
	}
}

func TestConfig_OpenPreferredBackendMissing(t *testing.T) {
	cfg := Config{Backends: []BackendConfig{{Name: "slotfs", Config: map[string]string{"slotfs-dir": "x"}}}}
	if _, _, err := cfg.Open(slotregistry.UsageCLI, "nope"); err == nil {
		t.Fatalf("expected error for unknown preferred backend")
	}
}

func openSingle(dir string) (storage.SlotStore, error) {
	st, _, err := slotregistry.OpenWithConfig("slotfs", slotregistry.UsageCLI, map[string]string{"slotfs-dir": dir})
	return st, err
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
