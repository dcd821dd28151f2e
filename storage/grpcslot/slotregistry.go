package grpcslot

import (
	"flag"
	"fmt"
	"time"

	"xdao.co/sealbox/storage"
	"xdao.co/sealbox/storage/slotregistry"
)

var (
	flagTarget  string
	flagTimeout time.Duration
)

func init() {
	slotregistry.MustRegister(slotregistry.Backend{
		Name:        "grpc",
		Description: "Remote slot store over gRPC (xdao-sealgrpcd or compatible)",
		Usage:       slotregistry.UsageCLI,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagTarget, "grpc-target", "", "Slot gRPC server address (for --backend=grpc)")
			fs.DurationVar(&flagTimeout, "grpc-timeout", 5*time.Second, "Per-RPC timeout for the gRPC backend")
		},
		Open: func() (storage.SlotStore, func() error, error) {
			return open(flagTarget, flagTimeout)
		},
		OpenConfig: func(cfg map[string]string) (storage.SlotStore, func() error, error) {
			timeout := 5 * time.Second
			if v := cfg["grpc-timeout"]; v != "" {
				d, err := time.ParseDuration(v)
				if err != nil {
					return nil, nil, fmt.Errorf("grpcslot: invalid grpc-timeout %q", v)
				}
				timeout = d
			}
			return open(cfg["grpc-target"], timeout)
		},
	})
}

func open(target string, timeout time.Duration) (storage.SlotStore, func() error, error) {
	if target == "" {
		return nil, nil, fmt.Errorf("missing --grpc-target")
	}
	c, err := Dial(target, DialOptions{Timeout: timeout})
	if err != nil {
		return nil, nil, err
	}
	c.Timeout = timeout
	return c, c.Close, nil
}
