package gategrpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/sealbox/dispatch"
)

// Server exposes a dispatch.Dispatcher over the Gate gRPC service.
type Server struct {
	UnimplementedGateServer
	Dispatcher *dispatch.Dispatcher
}

func (s *Server) Execute(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	if s == nil || s.Dispatcher == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing dispatcher")
	}

	md, _ := metadata.FromIncomingContext(ctx)
	inputSlot := firstValue(md, MetadataInputSlot)
	recordSlot := firstValue(md, MetadataRecordSlot)
	if recordSlot == "" {
		return nil, status.Errorf(codes.InvalidArgument, "missing %s metadata", MetadataRecordSlot)
	}

	res, err := s.Dispatcher.Dispatch(in.GetValue(), inputSlot, recordSlot)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(res.Message), nil
}

func firstValue(md metadata.MD, key string) string {
	vs := md.Get(key)
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}
