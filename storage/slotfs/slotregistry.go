package slotfs

import (
	"flag"
	"fmt"
	"strconv"

	"xdao.co/sealbox/storage"
	"xdao.co/sealbox/storage/slotregistry"
)

var (
	flagDir      string
	flagMaxBytes int
)

func init() {
	slotregistry.MustRegister(slotregistry.Backend{
		Name:        "slotfs",
		Description: "Local filesystem slots (directory)",
		Usage:       slotregistry.UsageCLI | slotregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagDir, "slotfs-dir", "", "SlotFS directory (for --backend=slotfs)")
			fs.IntVar(&flagMaxBytes, "slotfs-max-bytes", 0, "Per-slot size cap in bytes (0 = unlimited)")
		},
		Open: func() (storage.SlotStore, func() error, error) {
			return open(flagDir, flagMaxBytes)
		},
		OpenConfig: func(cfg map[string]string) (storage.SlotStore, func() error, error) {
			maxBytes := 0
			if v := cfg["slotfs-max-bytes"]; v != "" {
				n, err := strconv.Atoi(v)
				if err != nil {
					return nil, nil, fmt.Errorf("slotfs: invalid slotfs-max-bytes %q", v)
				}
				maxBytes = n
			}
			return open(cfg["slotfs-dir"], maxBytes)
		},
	})
}

func open(dir string, maxBytes int) (storage.SlotStore, func() error, error) {
	if dir == "" {
		return nil, nil, fmt.Errorf("missing --slotfs-dir")
	}
	st, err := New(dir)
	if err != nil {
		return nil, nil, err
	}
	st.MaxBytes = maxBytes
	return st, nil, nil
}
