package gategrpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/sealbox/model"
)

// Each surface error code keeps its own gRPC status code, so remote callers
// can branch on failures exactly like local ones (nothing collapses into
// Internal except genuinely unanticipated errors).
var codeToGRPC = map[model.ErrorCode]codes.Code{
	model.ErrInvalidCredentialEncoding: codes.InvalidArgument,
	model.ErrMalformedRecord:           codes.DataLoss,
	model.ErrAuthFailed:                codes.PermissionDenied,
	model.ErrUnknownOperation:          codes.Unimplemented,
	model.ErrNotFound:                  codes.NotFound,
	model.ErrSlotTooLarge:              codes.ResourceExhausted,
	model.ErrInternal:                  codes.Internal,
}

var grpcToCode = map[codes.Code]model.ErrorCode{
	codes.InvalidArgument:   model.ErrInvalidCredentialEncoding,
	codes.DataLoss:          model.ErrMalformedRecord,
	codes.PermissionDenied:  model.ErrAuthFailed,
	codes.Unimplemented:     model.ErrUnknownOperation,
	codes.NotFound:          model.ErrNotFound,
	codes.ResourceExhausted: model.ErrSlotTooLarge,
}

func toStatus(err error) error {
	if err == nil {
		return nil
	}
	coded := model.FromError(err)
	gc, ok := codeToGRPC[coded.Code]
	if !ok {
		gc = codes.Internal
	}
	return status.Error(gc, coded.Message)
}

func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	code, ok := grpcToCode[st.Code()]
	if !ok {
		code = model.ErrInternal
	}
	return model.NewError(code, st.Message())
}
