package sealbox

import (
	"crypto/sha256"
	"crypto/subtle"
	"unicode/utf8"
)

// Seal creates a new gated record binding payload to the digest of password.
//
// The password must be valid UTF-8; validation happens before any hashing.
// The digest is a single unsalted SHA-256 pass over the password bytes (see
// the package comment for the security implications). Seal is pure: the same
// (payload, password) pair always yields a bitwise-identical record, and
// nothing is persisted here.
func Seal(payload string, password []byte) (Record, error) {
	if !utf8.Valid(password) {
		return Record{}, newError(KindCredential, "SEAL-CRED-001", "password is not valid UTF-8")
	}
	return Record{
		Payload: payload,
		Digest:  sha256.Sum256(password),
	}, nil
}

// Unseal returns the payload of rec if password matches the password the
// record was sealed with, and a KindAuth error otherwise.
//
// The digest comparison is constant-time over all 32 bytes, so a failed
// attempt reveals nothing about how many leading bytes matched. Unseal never
// mutates rec.
func Unseal(rec Record, password []byte) (string, error) {
	if !utf8.Valid(password) {
		return "", newError(KindCredential, "SEAL-CRED-001", "password is not valid UTF-8")
	}
	attempt := sha256.Sum256(password)
	if subtle.ConstantTimeCompare(attempt[:], rec.Digest[:]) != 1 {
		return "", newError(KindAuth, "SEAL-AUTH-001", "password digest mismatch")
	}
	return rec.Payload, nil
}
