package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"xdao.co/sealbox/dispatch"
	"xdao.co/sealbox/gategrpc"
	"xdao.co/sealbox/storage"
	"xdao.co/sealbox/storage/grpcslot"
	"xdao.co/sealbox/storage/slotconfig"
	"xdao.co/sealbox/storage/slotregistry"

	_ "xdao.co/sealbox/storage/slotfs"
)

func main() {
	fs := flag.NewFlagSet("xdao-sealgrpcd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7778", "listen address")
	backend := fs.String("backend", "slotfs", "slot backend name")
	configPath := fs.String("slot-config", "", "JSON slot backend config (overrides --backend)")
	maxRecordBytes := fs.Int("max-record-bytes", 0, "refuse encoded records above this size (0 = unlimited)")
	listBackends := fs.Bool("list-backends", false, "List supported backends and exit")

	slotregistry.RegisterFlags(fs, slotregistry.UsageDaemon)

	_ = fs.Parse(os.Args[1:])
	if *listBackends {
		for _, b := range slotregistry.List(slotregistry.UsageDaemon) {
			if b.Description == "" {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return
	}

	var (
		slots   storage.SlotStore
		closeFn func() error
		err     error
	)
	if *configPath != "" {
		var cfg slotconfig.Config
		cfg, err = slotconfig.LoadFile(*configPath)
		if err == nil {
			slots, closeFn, err = cfg.Open(slotregistry.UsageDaemon, "")
		}
	} else {
		slots, closeFn, err = slotregistry.Open(*backend, slotregistry.UsageDaemon)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if closeFn != nil {
		defer closeFn()
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	gategrpc.RegisterGateServer(s, &gategrpc.Server{
		Dispatcher: &dispatch.Dispatcher{Store: slots, MaxRecordBytes: *maxRecordBytes},
	})
	grpcslot.RegisterSlotServer(s, &grpcslot.Server{Slots: slots})

	fmt.Fprintf(os.Stderr, "xdao-sealgrpcd listening on %s (backend=%s)\n", lis.Addr().String(), *backend)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
