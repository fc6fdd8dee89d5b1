// Package grpcclient is a typed client for the sequencer gRPC service.
package grpcclient

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"sequencer/api/sequencerpb"
	"sequencer/domain/preblock"
)

type Client struct {
	conn *grpc.ClientConn
	rpc  sequencerpb.SequencerClient
}

// Dial connects to target. Extra options are applied after the default
// plaintext transport.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", target)
	}
	return &Client{conn: conn, rpc: sequencerpb.NewSequencerClient(conn)}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Head(ctx context.Context) (preblock.Header, error) {
	h, err := c.rpc.GetHead(ctx, &sequencerpb.Empty{})
	if err != nil {
		return preblock.Header{}, err
	}
	return h.ToHeader(), nil
}

// Range fetches up to maxCount pre-blocks from fromID. The server caps
// maxCount; 0 asks for the cap.
func (c *Client) Range(ctx context.Context, fromID uint64, maxCount uint32) ([]preblock.PreBlock, error) {
	list, err := c.rpc.GetPreBlocksRange(ctx, &sequencerpb.RangeRequest{FromId: fromID, MaxCount: maxCount})
	if err != nil {
		return nil, err
	}
	return list.ToPreBlocks(), nil
}

func (c *Client) Submit(ctx context.Context, tx preblock.Transaction) error {
	_, err := c.rpc.SubmitTransaction(ctx, &sequencerpb.Transaction{Data: tx})
	return err
}

// SubmitStream is an open SubmitTransactionStream call.
type SubmitStream struct {
	stream grpc.ClientStreamingClient[sequencerpb.Transaction, sequencerpb.Empty]
}

// OpenSubmitStream starts a transaction stream that stays open until Close.
func (c *Client) OpenSubmitStream(ctx context.Context) (*SubmitStream, error) {
	stream, err := c.rpc.SubmitTransactionStream(ctx)
	if err != nil {
		return nil, err
	}
	return &SubmitStream{stream: stream}, nil
}

// Send queues tx. io.EOF means the server ended the call; Close reports why.
func (s *SubmitStream) Send(tx preblock.Transaction) error {
	return s.stream.Send(&sequencerpb.Transaction{Data: tx})
}

// Close half-closes the stream and returns the server's final status.
func (s *SubmitStream) Close() error {
	_, err := s.stream.CloseAndRecv()
	return err
}

// SubmitAll streams txs in order over one call.
func (c *Client) SubmitAll(ctx context.Context, txs []preblock.Transaction) error {
	stream, err := c.OpenSubmitStream(ctx)
	if err != nil {
		return err
	}
	for _, tx := range txs {
		if err := stream.Send(tx); err != nil {
			// The server ended the call; its status is in Close
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
	}
	return stream.Close()
}

// Tail calls fn for every pre-block from fromID on until ctx is done, fn
// returns an error, or the server ends the stream.
func (c *Client) Tail(ctx context.Context, fromID uint64, fn func(preblock.PreBlock) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := c.rpc.LiveQueryPreBlocks(ctx, &sequencerpb.LiveQueryRequest{FromId: fromID})
	if err != nil {
		return err
	}
	for {
		p, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := fn(p.ToPreBlock()); err != nil {
			return err
		}
	}
}
