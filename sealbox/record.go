package sealbox

import (
	"encoding/binary"
	"unicode/utf8"
)

// DigestSize is the width of a credential digest in bytes (SHA-256).
const DigestSize = 32

// lenPrefixSize is the width of the payload length prefix.
const lenPrefixSize = 8

// Record is a sealed, password-gated record. It is immutable after creation:
// the only way to change a stored record is to replace it wholesale with a
// new Seal result.
type Record struct {
	// Payload is the protected content, opaque to this package beyond being
	// valid text.
	Payload string
	// Digest is the SHA-256 digest of the password supplied at seal time.
	// It is never derived from anything but the exact password bytes, and
	// the clear password is never stored alongside it.
	Digest [DigestSize]byte
}

// EncodedSize returns the exact length of Encode's output for r.
func (r Record) EncodedSize() int {
	return lenPrefixSize + len(r.Payload) + DigestSize
}

// Encode serializes r to its persisted binary form:
//
//	u64 little-endian payload length || payload bytes || 32 digest bytes
//
// The layout is wire-compatible with the original system's record encoding
// (struct fields in declaration order, strings length-prefixed). Encoding is
// deterministic: the same record always yields the same bytes.
func Encode(r Record) []byte {
	out := make([]byte, 0, r.EncodedSize())
	var hdr [lenPrefixSize]byte
	binary.LittleEndian.PutUint64(hdr[:], uint64(len(r.Payload)))
	out = append(out, hdr[:]...)
	out = append(out, r.Payload...)
	out = append(out, r.Digest[:]...)
	return out
}

// Decode parses the persisted binary form back into a Record.
//
// Framing is exact-length: the length prefix must account for every byte
// between the prefix and the trailing 32-byte digest, so truncated buffers,
// overrunning prefixes, and trailing garbage are all rejected with a
// KindRecord error.
func Decode(b []byte) (Record, error) {
	if len(b) < lenPrefixSize+DigestSize {
		return Record{}, newError(KindRecord, "SEAL-REC-001", "record too short for framing")
	}
	payloadLen := binary.LittleEndian.Uint64(b[:lenPrefixSize])
	if payloadLen != uint64(len(b)-lenPrefixSize-DigestSize) {
		return Record{}, newError(KindRecord, "SEAL-REC-002", "payload length prefix inconsistent with buffer")
	}
	payload := b[lenPrefixSize : lenPrefixSize+int(payloadLen)]
	if !utf8.Valid(payload) {
		return Record{}, newError(KindRecord, "SEAL-REC-003", "record payload is not valid UTF-8")
	}

	var r Record
	r.Payload = string(payload)
	copy(r.Digest[:], b[len(b)-DigestSize:])
	return r, nil
}
