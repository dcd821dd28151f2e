package grpcslot

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/sealbox/storage"
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return storage.ErrNotFound
	case codes.InvalidArgument:
		// Server uses InvalidArgument for malformed slot names.
		return storage.ErrInvalidSlot
	case codes.ResourceExhausted:
		return storage.ErrTooLarge
	case codes.DataLoss:
		// Server uses DataLoss when stored bytes fail checksum verification.
		return storage.ErrChecksumMismatch
	default:
		// Best-effort: if the server sent a known storage error message, preserve it.
		switch st.Message() {
		case storage.ErrNotFound.Error():
			return storage.ErrNotFound
		case storage.ErrInvalidSlot.Error():
			return storage.ErrInvalidSlot
		case storage.ErrTooLarge.Error():
			return storage.ErrTooLarge
		case storage.ErrChecksumMismatch.Error():
			return storage.ErrChecksumMismatch
		default:
			return err
		}
	}
}
