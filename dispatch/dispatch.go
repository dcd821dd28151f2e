// Package dispatch executes decoded gate requests against a slot store.
//
// The dispatcher owns everything the engine deliberately does not: fetching
// the payload source, persisting encoded records, and turning outcomes into
// the human-readable status messages the surrounding system surfaces.
package dispatch

import (
	"fmt"
	"unicode/utf8"

	"xdao.co/sealbox/sealbox"
	"xdao.co/sealbox/storage"
	"xdao.co/sealbox/wire"
)

// Dispatcher routes seal/unseal requests to a slot store.
type Dispatcher struct {
	Store storage.SlotStore

	// MaxRecordBytes refuses encoded records above this size before they
	// reach the store, when non-zero. The store may impose its own cap.
	MaxRecordBytes int
}

// Result is the outcome of a successfully dispatched request.
type Result struct {
	Op wire.Op

	// Message is the human-readable status line. On unseal it carries the
	// recovered payload; there is no other structured return channel.
	Message string

	// Payload is the recovered payload on unseal, empty on seal.
	Payload string
}

// Dispatch parses a raw instruction frame and executes it.
//
// inputSlot names the stored buffer holding the payload to seal (seal only);
// recordSlot names where the encoded record lives. A frame that fails to
// parse touches no slot.
func (d *Dispatcher) Dispatch(instruction []byte, inputSlot, recordSlot string) (Result, error) {
	req, err := wire.ParseRequest(instruction)
	if err != nil {
		return Result{}, err
	}
	return d.Execute(req, inputSlot, recordSlot)
}

// Execute runs an already-decoded request.
func (d *Dispatcher) Execute(req wire.Request, inputSlot, recordSlot string) (Result, error) {
	switch req.Op {
	case wire.OpSeal:
		return d.seal(req.Password, inputSlot, recordSlot)
	case wire.OpUnseal:
		return d.unseal(req.Password, recordSlot)
	default:
		return Result{}, sealbox.NewError(sealbox.KindProtocol, "SEAL-OP-002", "unknown operation selector")
	}
}

func (d *Dispatcher) seal(password []byte, inputSlot, recordSlot string) (Result, error) {
	src, err := d.Store.Load(inputSlot)
	if err != nil {
		return Result{}, fmt.Errorf("load payload source %q: %w", inputSlot, err)
	}
	if !utf8.Valid(src) {
		return Result{}, sealbox.NewError(sealbox.KindCredential, "SEAL-CRED-002", "payload source is not valid UTF-8")
	}

	rec, err := sealbox.Seal(string(src), password)
	if err != nil {
		return Result{}, err
	}
	encoded := sealbox.Encode(rec)
	if d.MaxRecordBytes > 0 && len(encoded) > d.MaxRecordBytes {
		return Result{}, fmt.Errorf("encoded record (%d bytes): %w", len(encoded), storage.ErrTooLarge)
	}
	if err := d.Store.Store(recordSlot, encoded); err != nil {
		return Result{}, fmt.Errorf("store record %q: %w", recordSlot, err)
	}
	return Result{Op: wire.OpSeal, Message: "record sealed successfully"}, nil
}

func (d *Dispatcher) unseal(password []byte, recordSlot string) (Result, error) {
	b, err := d.Store.Load(recordSlot)
	if err != nil {
		return Result{}, fmt.Errorf("load record %q: %w", recordSlot, err)
	}
	rec, err := sealbox.Decode(b)
	if err != nil {
		return Result{}, err
	}
	payload, err := sealbox.Unseal(rec, password)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Op:      wire.OpUnseal,
		Message: "authorized access: " + payload,
		Payload: payload,
	}, nil
}
