package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCLI_PutSealUnseal(t *testing.T) {
	dir := t.TempDir()
	payloadFile := filepath.Join(t.TempDir(), "payload")
	if err := os.WriteFile(payloadFile, []byte("AB"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	code, _, errOut := runCLI(t, "put", "--slotfs-dir", dir, "--slot", "input", payloadFile)
	if code != 0 {
		t.Fatalf("put failed (%d): %s", code, errOut)
	}

	code, _, errOut = runCLI(t, "seal",
		"--slotfs-dir", dir,
		"--input-slot", "input",
		"--record-slot", "record",
		"--password", "secret",
	)
	if code != 0 {
		t.Fatalf("seal failed (%d): %s", code, errOut)
	}

	code, out, errOut := runCLI(t, "unseal",
		"--slotfs-dir", dir,
		"--record-slot", "record",
		"--password", "secret",
	)
	if code != 0 {
		t.Fatalf("unseal failed (%d): %s", code, errOut)
	}
	if !strings.Contains(out, "AB") {
		t.Fatalf("unseal output must carry the payload, got %q", out)
	}

	code, _, errOut = runCLI(t, "unseal",
		"--slotfs-dir", dir,
		"--record-slot", "record",
		"--password", "Secret",
	)
	if code == 0 {
		t.Fatalf("unseal with wrong password must fail")
	}
	if !strings.Contains(errOut, "AUTH_FAILED") {
		t.Fatalf("expected AUTH_FAILED on stderr, got %q", errOut)
	}
}

func TestCLI_ExportImport(t *testing.T) {
	dir := t.TempDir()
	payloadFile := filepath.Join(t.TempDir(), "payload")
	if err := os.WriteFile(payloadFile, []byte("bundle me"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if code, _, errOut := runCLI(t, "put", "--slotfs-dir", dir, "--slot", "input", payloadFile); code != 0 {
		t.Fatalf("put failed: %s", errOut)
	}

	bundlePath := filepath.Join(t.TempDir(), "slots.tar")
	if code, _, errOut := runCLI(t, "export", "--slotfs-dir", dir, "--out", bundlePath, "input"); code != 0 {
		t.Fatalf("export failed: %s", errOut)
	}

	restoreDir := t.TempDir()
	if code, _, errOut := runCLI(t, "import", "--slotfs-dir", restoreDir, bundlePath); code != 0 {
		t.Fatalf("import failed: %s", errOut)
	}

	code, out, errOut := runCLI(t, "seal",
		"--slotfs-dir", restoreDir,
		"--input-slot", "input",
		"--record-slot", "record",
		"--password", "pw",
	)
	if code != 0 {
		t.Fatalf("seal on imported slots failed (%d): %s", code, errOut)
	}
	if out == "" {
		t.Fatalf("expected a status line")
	}
}

func TestCLI_UnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "frobnicate")
	if code != 2 {
		t.Fatalf("exit code: got %d want 2", code)
	}
	if !strings.Contains(errOut, "unknown command") {
		t.Fatalf("stderr: %q", errOut)
	}
}
