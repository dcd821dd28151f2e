package model

import (
	"errors"
	"fmt"
	"testing"

	"xdao.co/sealbox/sealbox"
	"xdao.co/sealbox/storage"
)

func TestFromError_KeepsKindsDistinct(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"Credential", sealbox.NewError(sealbox.KindCredential, "SEAL-CRED-001", "bad text"), ErrInvalidCredentialEncoding},
		{"Record", sealbox.NewError(sealbox.KindRecord, "SEAL-REC-001", "short"), ErrMalformedRecord},
		{"Auth", sealbox.NewError(sealbox.KindAuth, "SEAL-AUTH-001", "mismatch"), ErrAuthFailed},
		{"Protocol", sealbox.NewError(sealbox.KindProtocol, "SEAL-OP-002", "unknown"), ErrUnknownOperation},
		{"NotFound", storage.ErrNotFound, ErrNotFound},
		{"TooLarge", storage.ErrTooLarge, ErrSlotTooLarge},
		{"WrappedNotFound", fmt.Errorf("load input: %w", storage.ErrNotFound), ErrNotFound},
		{"Unanticipated", errors.New("disk on fire"), ErrInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromError(tc.err)
			if got.Code != tc.code {
				t.Fatalf("code: got %s want %s", got.Code, tc.code)
			}
			if got.Message == "" {
				t.Fatalf("message must not be empty")
			}
		})
	}
}

func TestFromError_PassesThroughCodedError(t *testing.T) {
	orig := NewError(ErrSlotTooLarge, "too big")
	got := FromError(fmt.Errorf("wrapped: %w", orig))
	if got != orig {
		t.Fatalf("expected the original *CodedError, got %+v", got)
	}
}

func TestFromError_Nil(t *testing.T) {
	if FromError(nil) != nil {
		t.Fatalf("FromError(nil) must be nil")
	}
	if Code(nil) != "" {
		t.Fatalf("Code(nil) must be empty")
	}
}
