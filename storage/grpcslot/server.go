package grpcslot

import (
	"context"
	"encoding/base64"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/sealbox/storage"
)

// Server exposes a storage.SlotStore over the Slot gRPC service.
//
// The backing store field is named Slots because Store is taken by the RPC
// method of the same name.
type Server struct {
	UnimplementedSlotServer
	Slots storage.SlotStore
}

func (s *Server) Load(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Slots == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing slot store")
	}
	slot := in.GetValue()
	if err := storage.CheckSlot(slot); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	b, err := s.Slots.Load(slot)
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bytes(b), nil
}

func (s *Server) Store(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	_ = ctx
	if s == nil || s.Slots == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing slot store")
	}
	slot := in.GetFields()["slot"].GetStringValue()
	if err := storage.CheckSlot(slot); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	data, err := base64.StdEncoding.DecodeString(in.GetFields()["data"].GetStringValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "data is not valid base64")
	}
	if err := s.Slots.Store(slot, data); err != nil {
		return nil, mapErr(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) Has(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if s == nil || s.Slots == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing slot store")
	}
	return wrapperspb.Bool(s.Slots.Has(in.GetValue())), nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case storage.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, storage.ErrInvalidSlot):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, storage.ErrTooLarge):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, storage.ErrChecksumMismatch):
		return status.Error(codes.DataLoss, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
