// Package sealbox implements the password-gated record core: a record binds
// an opaque text payload to the SHA-256 digest of a password chosen at seal
// time, and the payload is only readable back through an unseal call carrying
// the same password.
//
// The package has two halves:
//
//   - the record codec: Record, Encode, Decode — the persisted binary shape
//     of a gated record (fixed 32-byte digest plus length-prefixed payload).
//   - the gate engine: Seal, Unseal — the only two transitions a record
//     supports. Both are pure functions of their inputs; persistence and slot
//     coordination belong to the caller (see the storage and dispatch
//     packages).
//
// Digest scheme: a single unsalted SHA-256 pass over the UTF-8 password
// bytes. This matches the system this package is compatible with; it is
// deliberately NOT a password-stretching KDF, and an exposed stored digest is
// weak against offline brute force. Do not feed records to adversaries.
package sealbox
