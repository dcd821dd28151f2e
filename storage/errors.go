package storage

import "errors"

var (
	ErrNotFound         = errors.New("storage: slot not found")
	ErrInvalidSlot      = errors.New("storage: invalid slot name")
	ErrTooLarge         = errors.New("storage: slot bytes exceed size limit")
	ErrChecksumMismatch = errors.New("storage: stored bytes do not match checksum")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
