package gategrpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls a remote Gate service.
type Client struct {
	cc     *grpc.ClientConn
	client GateClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration
}

func Dial(target string, opts DialOptions) (*Client, error) {
	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewGateClient(cc)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Execute sends a raw instruction frame for dispatch against the named slots.
// It returns the status message; on unseal success the message carries the
// recovered payload. Failures come back as *model.CodedError.
func (c *Client) Execute(ctx context.Context, instruction []byte, inputSlot, recordSlot string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	if inputSlot != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, MetadataInputSlot, inputSlot)
	}
	ctx = metadata.AppendToOutgoingContext(ctx, MetadataRecordSlot, recordSlot)

	reply, err := c.client.Execute(ctx, wrapperspb.Bytes(instruction))
	if err != nil {
		return "", fromStatus(err)
	}
	return reply.GetValue(), nil
}
