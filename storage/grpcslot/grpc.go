package grpcslot

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// SlotServer is the server API for the SlotStore gRPC service.
//
// We intentionally use protobuf well-known types so this package does not
// require a protoc/codegen toolchain. Store takes a Struct with "slot"
// (string) and "data" (standard base64 string) fields because the wrapper
// types carry a single scalar each.
//
// Proto definition: slotstore.proto.
type SlotServer interface {
	Load(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Store(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
}

// UnimplementedSlotServer can be embedded to have forward compatible implementations.
type UnimplementedSlotServer struct{}

func (UnimplementedSlotServer) Load(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Load not implemented")
}
func (UnimplementedSlotServer) Store(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Store not implemented")
}
func (UnimplementedSlotServer) Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Has not implemented")
}

// RegisterSlotServer registers the SlotStore service on a gRPC server.
func RegisterSlotServer(s grpc.ServiceRegistrar, srv SlotServer) {
	s.RegisterService(&Slot_ServiceDesc, srv)
}

// SlotClient is the client API for the SlotStore gRPC service.
type SlotClient interface {
	Load(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Store(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type slotClient struct{ cc grpc.ClientConnInterface }

func NewSlotClient(cc grpc.ClientConnInterface) SlotClient { return &slotClient{cc: cc} }

func (c *slotClient) Load(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.sealbox.storage.v1.Slot/Load", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *slotClient) Store(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	err := c.cc.Invoke(ctx, "/xdao.sealbox.storage.v1.Slot/Store", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *slotClient) Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	err := c.cc.Invoke(ctx, "/xdao.sealbox.storage.v1.Slot/Has", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _Slot_Load_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SlotServer).Load(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.sealbox.storage.v1.Slot/Load"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SlotServer).Load(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Slot_Store_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SlotServer).Store(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.sealbox.storage.v1.Slot/Store"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SlotServer).Store(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Slot_Has_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SlotServer).Has(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.sealbox.storage.v1.Slot/Has"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SlotServer).Has(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Slot_ServiceDesc is the grpc.ServiceDesc for the Slot service.
var Slot_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "xdao.sealbox.storage.v1.Slot",
	HandlerType: (*SlotServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Load", Handler: _Slot_Load_Handler},
		{MethodName: "Store", Handler: _Slot_Store_Handler},
		{MethodName: "Has", Handler: _Slot_Has_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "slotstore.proto",
}
