// Package gategrpc exposes the gate dispatcher over gRPC.
//
// The service carries the raw instruction framing of the gate protocol: the
// request value is exactly the frame the dispatcher consumes (operation
// selector byte followed by password bytes), and the slot designations ride
// request metadata. The reply is the dispatcher's status message; on unseal
// success that message carries the recovered payload, matching the original
// system where the payload is surfaced on the log/message channel.
package gategrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Metadata keys designating the storage slots for a request.
const (
	// MetadataInputSlot names the slot holding the payload buffer to seal.
	// Required for seal, ignored for unseal.
	MetadataInputSlot = "sealbox-input-slot"
	// MetadataRecordSlot names the slot holding the encoded record.
	// Required for both operations.
	MetadataRecordSlot = "sealbox-record-slot"
)

// GateServer is the server API for the Gate gRPC service.
//
// We intentionally use protobuf well-known wrapper types so this package does
// not require a protoc/codegen toolchain.
//
// Proto definition: gate.proto.
type GateServer interface {
	Execute(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
}

// UnimplementedGateServer can be embedded to have forward compatible implementations.
type UnimplementedGateServer struct{}

func (UnimplementedGateServer) Execute(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Execute not implemented")
}

// RegisterGateServer registers the Gate service on a gRPC server.
func RegisterGateServer(s grpc.ServiceRegistrar, srv GateServer) {
	s.RegisterService(&Gate_ServiceDesc, srv)
}

// GateClient is the client API for the Gate gRPC service.
type GateClient interface {
	Execute(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type gateClient struct{ cc grpc.ClientConnInterface }

func NewGateClient(cc grpc.ClientConnInterface) GateClient { return &gateClient{cc: cc} }

func (c *gateClient) Execute(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/xdao.sealbox.v1.Gate/Execute", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _Gate_Execute_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GateServer).Execute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.sealbox.v1.Gate/Execute"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GateServer).Execute(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Gate_ServiceDesc is the grpc.ServiceDesc for the Gate service.
var Gate_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "xdao.sealbox.v1.Gate",
	HandlerType: (*GateServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Execute", Handler: _Gate_Execute_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gate.proto",
}
