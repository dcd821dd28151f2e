package grpcslot

import (
	"context"
	"encoding/base64"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/sealbox/storage"
)

// Client implements storage.SlotStore over a Slot gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client SlotClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var _ storage.SlotStore = (*Client)(nil)

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewSlotClient(cc), Timeout: 0}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) Load(slot string) ([]byte, error) {
	if err := storage.CheckSlot(slot); err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Load(ctx, wrapperspb.String(slot))
	if err != nil {
		return nil, mapRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) Store(slot string, b []byte) error {
	if err := storage.CheckSlot(slot); err != nil {
		return err
	}
	ctx, cancel := c.ctx()
	defer cancel()

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"slot": structpb.NewStringValue(slot),
		"data": structpb.NewStringValue(base64.StdEncoding.EncodeToString(b)),
	}}
	if _, err := c.client.Store(ctx, req); err != nil {
		return mapRPC(err)
	}
	return nil
}

func (c *Client) Has(slot string) bool {
	if storage.CheckSlot(slot) != nil {
		return false
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Has(ctx, wrapperspb.String(slot))
	if err != nil {
		return false
	}
	return reply.GetValue()
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
