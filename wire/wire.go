// Package wire decodes the instruction framing of the gate protocol.
//
// A request frame is:
//
//	byte 0:  operation selector (0 = seal, 1 = unseal)
//	rest:    password bytes
//
// The selector is decoded exactly once, here at the boundary, into the closed
// Op variant; downstream code never branches on the raw byte. Password bytes
// pass through untouched — text validation is the engine's job, so the
// credential-encoding failure surfaces from exactly one place.
package wire

import "xdao.co/sealbox/sealbox"

// Op selects one of the two gate operations.
type Op uint8

const (
	// OpSeal creates a record from a payload and a password.
	OpSeal Op = iota
	// OpUnseal recovers a sealed payload given the original password.
	OpUnseal
)

func (o Op) String() string {
	switch o {
	case OpSeal:
		return "seal"
	case OpUnseal:
		return "unseal"
	default:
		return "unknown"
	}
}

// Request is a decoded instruction frame.
type Request struct {
	Op       Op
	Password []byte
}

// ParseRequest decodes an instruction frame.
//
// An empty frame and selectors outside {0, 1} fail with KindProtocol errors;
// no record is touched in either case.
func ParseRequest(instruction []byte) (Request, error) {
	if len(instruction) == 0 {
		return Request{}, sealbox.NewError(sealbox.KindProtocol, "SEAL-OP-001", "empty instruction: missing operation selector")
	}
	switch instruction[0] {
	case 0:
		return Request{Op: OpSeal, Password: instruction[1:]}, nil
	case 1:
		return Request{Op: OpUnseal, Password: instruction[1:]}, nil
	default:
		return Request{}, sealbox.NewError(sealbox.KindProtocol, "SEAL-OP-002", "unknown operation selector")
	}
}
