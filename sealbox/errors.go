package sealbox

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/RuleID rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindCredential: password (or payload source) bytes are not valid UTF-8
	// where text is required.
	KindCredential Kind = "Credential"
	// KindRecord: stored bytes do not decode into a well-formed record.
	KindRecord Kind = "Record"
	// KindAuth: digest mismatch during unseal.
	KindAuth Kind = "Auth"
	// KindProtocol: operation selector outside the defined set.
	KindProtocol Kind = "Protocol"
)

// Error is the library's structured error type.
//
// RuleID is a stable identifier (e.g., SEAL-CRED-001, SEAL-REC-003) that
// names the violated rule.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// NewError constructs a structured error. It exists for the boundary packages
// (wire framing, dispatch) that surface rules belonging to this taxonomy.
func NewError(kind Kind, ruleID, msg string) error {
	return newError(kind, ruleID, msg)
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
