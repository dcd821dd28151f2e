package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"xdao.co/sealbox/dispatch"
	"xdao.co/sealbox/gategrpc"
	"xdao.co/sealbox/model"
	"xdao.co/sealbox/storage"
	"xdao.co/sealbox/storage/bundle"
	"xdao.co/sealbox/storage/slotregistry"
	"xdao.co/sealbox/wire"

	_ "xdao.co/sealbox/storage/grpcslot"
	_ "xdao.co/sealbox/storage/slotfs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "put":
		return cmdPut(args[1:], out, errOut)
	case "seal":
		return cmdGate(wire.OpSeal, args[1:], out, errOut)
	case "unseal":
		return cmdGate(wire.OpUnseal, args[1:], out, errOut)
	case "exec":
		return cmdExec(args[1:], out, errOut)
	case "export":
		return cmdExport(args[1:], out, errOut)
	case "import":
		return cmdImport(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "sealcli: minimal gated-record tool for walkthroughs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  sealcli put --backend slotfs --slotfs-dir <dir> --slot <slot> <file>")
	fmt.Fprintln(w, "  sealcli seal --backend slotfs --slotfs-dir <dir> --input-slot <slot> --record-slot <slot> --password <pw>")
	fmt.Fprintln(w, "  sealcli unseal --backend slotfs --slotfs-dir <dir> --record-slot <slot> --password <pw>")
	fmt.Fprintln(w, "  sealcli exec --gate-target <host:port> --op <0|1> --record-slot <slot> [--input-slot <slot>] --password <pw>")
	fmt.Fprintln(w, "  sealcli export --backend slotfs --slotfs-dir <dir> --out <file> <slot> [<slot> ...]")
	fmt.Fprintln(w, "  sealcli import --backend slotfs --slotfs-dir <dir> <file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --password-file reads the password bytes from a file (overrides --password)")
	fmt.Fprintln(w, "  - grpc backend talks to xdao-sealgrpcd's slot service; exec talks to its gate service")
	fmt.Fprintln(w, "  - export/import move slots as deterministic TAR bundles")
}

type commonFlags struct {
	backend      string
	listBackends bool
}

func (c *commonFlags) add(fs *flag.FlagSet) {
	fs.StringVar(&c.backend, "backend", "slotfs", "slot backend name")
	fs.BoolVar(&c.listBackends, "list-backends", false, "List supported backends and exit")
	slotregistry.RegisterFlags(fs, slotregistry.UsageCLI)
}

func (c *commonFlags) openStore() (storage.SlotStore, func() error, error) {
	return slotregistry.Open(c.backend, slotregistry.UsageCLI)
}

func printBackends(w io.Writer) {
	for _, b := range slotregistry.List(slotregistry.UsageCLI) {
		if b.Description == "" {
			_, _ = fmt.Fprintf(w, "%s\n", b.Name)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", b.Name, b.Description)
	}
}

type passwordFlags struct {
	password     string
	passwordFile string
}

func (p *passwordFlags) add(fs *flag.FlagSet) {
	fs.StringVar(&p.password, "password", "", "password string")
	fs.StringVar(&p.passwordFile, "password-file", "", "read password bytes from file (overrides --password)")
}

func (p *passwordFlags) bytes() ([]byte, error) {
	if p.passwordFile != "" {
		return os.ReadFile(p.passwordFile)
	}
	return []byte(p.password), nil
}

func cmdPut(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("put", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.add(fs)
	slot := fs.String("slot", "", "destination slot name")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if *slot == "" || fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: sealcli put [common flags] --slot <slot> <file>")
		return 2
	}

	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	st, closeFn, err := common.openStore()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	if err := st.Store(*slot, b); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintf(out, "stored %d bytes in slot %s\n", len(b), *slot)
	return 0
}

func cmdGate(op wire.Op, args []string, out io.Writer, errOut io.Writer) int {
	name := op.String()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.add(fs)
	var pw passwordFlags
	pw.add(fs)
	inputSlot := fs.String("input-slot", "", "slot holding the payload to seal")
	recordSlot := fs.String("record-slot", "", "slot holding the encoded record")
	maxRecordBytes := fs.Int("max-record-bytes", 0, "refuse encoded records above this size (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if *recordSlot == "" {
		fmt.Fprintf(errOut, "usage: sealcli %s [common flags] --record-slot <slot> --password <pw>\n", name)
		return 2
	}

	password, err := pw.bytes()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	st, closeFn, err := common.openStore()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	d := &dispatch.Dispatcher{Store: st, MaxRecordBytes: *maxRecordBytes}
	res, err := d.Execute(wire.Request{Op: op, Password: password}, *inputSlot, *recordSlot)
	if err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintln(out, res.Message)
	return 0
}

func cmdExec(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("exec", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var pw passwordFlags
	pw.add(fs)
	target := fs.String("gate-target", "", "Gate gRPC server address")
	op := fs.Int("op", -1, "operation selector byte (0 = seal, 1 = unseal)")
	inputSlot := fs.String("input-slot", "", "slot holding the payload to seal")
	recordSlot := fs.String("record-slot", "", "slot holding the encoded record")
	timeout := fs.Duration("timeout", 5*time.Second, "per-RPC timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *target == "" || *recordSlot == "" || *op < 0 || *op > 255 {
		fmt.Fprintln(errOut, "usage: sealcli exec --gate-target <host:port> --op <0|1> --record-slot <slot> [--input-slot <slot>] --password <pw>")
		return 2
	}

	password, err := pw.bytes()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	client, err := gategrpc.Dial(*target, gategrpc.DialOptions{Timeout: *timeout})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()
	client.Timeout = *timeout

	// The instruction frame goes over the wire untouched; unknown selectors
	// are the server's call to reject.
	instruction := append([]byte{byte(*op)}, password...)
	msg, err := client.Execute(context.Background(), instruction, *inputSlot, *recordSlot)
	if err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintln(out, msg)
	return 0
}

func cmdExport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.add(fs)
	outPath := fs.String("out", "", "bundle output file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if *outPath == "" || fs.NArg() == 0 {
		fmt.Fprintln(errOut, "usage: sealcli export [common flags] --out <file> <slot> [<slot> ...]")
		return 2
	}

	st, closeFn, err := common.openStore()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer f.Close()

	if err := bundle.Export(f, st, fs.Args()); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintf(out, "exported %d slot(s) to %s\n", fs.NArg(), *outPath)
	return 0
}

func cmdImport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.add(fs)
	ignoreUnknown := fs.Bool("ignore-unknown", false, "ignore unknown bundle entries")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: sealcli import [common flags] <file>")
		return 2
	}

	st, closeFn, err := common.openStore()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer f.Close()

	if err := bundle.ImportWithOptions(f, st, bundle.ImportOptions{IgnoreUnknown: *ignoreUnknown}); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintf(out, "imported %s\n", fs.Arg(0))
	return 0
}

// fail prints the stable surface code alongside the message so scripts can
// branch on failures.
func fail(errOut io.Writer, err error) int {
	var coded *model.CodedError
	if !errors.As(err, &coded) {
		coded = model.FromError(err)
	}
	fmt.Fprintln(errOut, coded.Error())
	return 1
}
