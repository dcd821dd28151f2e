package cidutil

import "testing"

func TestContentCID_Deterministic(t *testing.T) {
	a, err := ContentCID([]byte("same bytes"))
	if err != nil {
		t.Fatalf("ContentCID failed: %v", err)
	}
	b, err := ContentCID([]byte("same bytes"))
	if err != nil {
		t.Fatalf("ContentCID failed: %v", err)
	}
	if a != b {
		t.Fatalf("ContentCID not deterministic: %s vs %s", a, b)
	}
	if !a.Defined() {
		t.Fatalf("expected defined CID")
	}
}

func TestContentCID_DistinguishesContent(t *testing.T) {
	a, _ := ContentCID([]byte("one"))
	b, _ := ContentCID([]byte("two"))
	if a == b {
		t.Fatalf("distinct bytes produced the same CID")
	}
}

func TestContentCIDString_MatchesCID(t *testing.T) {
	data := []byte("hello, cidutil")
	id, err := ContentCID(data)
	if err != nil {
		t.Fatalf("ContentCID failed: %v", err)
	}
	if got := ContentCIDString(data); got != id.String() {
		t.Fatalf("string form mismatch: %s vs %s", got, id.String())
	}
}
