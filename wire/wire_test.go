package wire

import (
	"bytes"
	"testing"

	"xdao.co/sealbox/sealbox"
)

func TestParseRequest_Seal(t *testing.T) {
	req, err := ParseRequest(append([]byte{0}, "secret"...))
	if err != nil {
		t.Fatalf("ParseRequest failed: %v", err)
	}
	if req.Op != OpSeal {
		t.Fatalf("op: got %s want seal", req.Op)
	}
	if !bytes.Equal(req.Password, []byte("secret")) {
		t.Fatalf("password: got %q", req.Password)
	}
}

func TestParseRequest_Unseal(t *testing.T) {
	req, err := ParseRequest([]byte{1})
	if err != nil {
		t.Fatalf("ParseRequest failed: %v", err)
	}
	if req.Op != OpUnseal {
		t.Fatalf("op: got %s want unseal", req.Op)
	}
	if len(req.Password) != 0 {
		t.Fatalf("password: got %q want empty", req.Password)
	}
}

func TestParseRequest_PasswordBytesPassThrough(t *testing.T) {
	// Invalid UTF-8 must survive framing untouched; rejection is the
	// engine's job, not the parser's.
	raw := []byte{0, 0xff, 0xfe}
	req, err := ParseRequest(raw)
	if err != nil {
		t.Fatalf("ParseRequest failed: %v", err)
	}
	if !bytes.Equal(req.Password, []byte{0xff, 0xfe}) {
		t.Fatalf("password: got %x", req.Password)
	}
}

func TestParseRequest_UnknownSelector(t *testing.T) {
	for _, sel := range []byte{2, 3, 0x7f, 0xff} {
		_, err := ParseRequest([]byte{sel, 'p', 'w'})
		if err == nil {
			t.Fatalf("selector %d: expected error", sel)
		}
		if !sealbox.IsKind(err, sealbox.KindProtocol) {
			t.Fatalf("selector %d: expected KindProtocol, got %v", sel, err)
		}
		if got := sealbox.RuleID(err); got != "SEAL-OP-002" {
			t.Fatalf("selector %d: RuleID got %s want SEAL-OP-002", sel, got)
		}
	}
}

func TestParseRequest_EmptyFrame(t *testing.T) {
	_, err := ParseRequest(nil)
	if !sealbox.IsKind(err, sealbox.KindProtocol) {
		t.Fatalf("expected KindProtocol, got %v", err)
	}
	if got := sealbox.RuleID(err); got != "SEAL-OP-001" {
		t.Fatalf("RuleID: got %s want SEAL-OP-001", got)
	}
}
