// Package model defines the stable surface types shared by the gate's
// external interfaces (gRPC service, CLI): machine-readable error codes and
// the dispatch result shape.
package model

import (
	"errors"
	"fmt"

	"xdao.co/sealbox/sealbox"
	"xdao.co/sealbox/storage"
)

type ErrorCode string

const (
	ErrInvalidCredentialEncoding ErrorCode = "INVALID_CREDENTIAL_ENCODING"
	ErrMalformedRecord           ErrorCode = "MALFORMED_RECORD"
	ErrAuthFailed                ErrorCode = "AUTH_FAILED"
	ErrUnknownOperation          ErrorCode = "UNKNOWN_OPERATION"
	ErrNotFound                  ErrorCode = "NOT_FOUND"
	ErrSlotTooLarge              ErrorCode = "SLOT_TOO_LARGE"
	ErrInternal                  ErrorCode = "INTERNAL"
)

// CodedError is a stable error with a machine-readable code and a human message.
type CodedError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// FromError maps a gate or storage error to its surface code.
//
// Every error kind keeps its own code; nothing is collapsed into INTERNAL
// except genuinely unanticipated failures.
func FromError(err error) *CodedError {
	if err == nil {
		return nil
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	switch {
	case sealbox.IsKind(err, sealbox.KindCredential):
		return NewError(ErrInvalidCredentialEncoding, err.Error())
	case sealbox.IsKind(err, sealbox.KindRecord):
		return NewError(ErrMalformedRecord, err.Error())
	case sealbox.IsKind(err, sealbox.KindAuth):
		return NewError(ErrAuthFailed, err.Error())
	case sealbox.IsKind(err, sealbox.KindProtocol):
		return NewError(ErrUnknownOperation, err.Error())
	case storage.IsNotFound(err):
		return NewError(ErrNotFound, err.Error())
	case errors.Is(err, storage.ErrTooLarge):
		return NewError(ErrSlotTooLarge, err.Error())
	default:
		return NewError(ErrInternal, err.Error())
	}
}

// Code returns the surface code for err, or "" for nil.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return FromError(err).Code
}
