package service

import (
	"context"

	"github.com/cockroachdb/errors"

	"sequencer/domain/preblock"
	"sequencer/infra/fanout"
	"sequencer/ledger"
)

// Client is a handle on a running sequencer. Reads and submissions are safe
// for concurrent use; the live feed methods (NextPreBlock, ClearQueue) belong
// to one consumer, so give each consumer its own Clone.
type Client struct {
	state   *ledger.State
	mempool chan<- preblock.Transaction
	done    <-chan struct{}
	feed    *fanout.Feed[preblock.PreBlock]
	sub     *fanout.Subscription[preblock.PreBlock]
}

// Clone returns a client sharing everything but the live feed cursor, which
// starts at "now".
func (c *Client) Clone() *Client {
	clone := *c
	clone.sub = c.feed.Subscribe()
	return &clone
}

// SubmitTransaction enqueues tx. It blocks while the mempool is full and
// fails with ErrShutdownInProgress once the runner has stopped.
func (c *Client) SubmitTransaction(ctx context.Context, tx preblock.Transaction) error {
	select {
	case <-c.done:
		return ErrShutdownInProgress
	default:
	}

	select {
	case c.mempool <- tx:
		return nil
	case <-c.done:
		return ErrShutdownInProgress
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the runner has stopped.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Pending returns the number of submitted transactions the runner has not
// picked up yet.
func (c *Client) Pending() int {
	return len(c.mempool)
}

// GetHead returns the latest committed header, or ErrNotFound.
func (c *Client) GetHead(ctx context.Context) (preblock.Header, error) {
	if err := ctx.Err(); err != nil {
		return preblock.Header{}, err
	}
	h, err := c.state.GetHead()
	if errors.Is(err, ledger.ErrMissingHead) {
		return preblock.Header{}, ErrNotFound
	}
	return h, err
}

// GetPreBlocks returns up to maxCount committed pre-blocks from fromID on.
// See ledger.State.GetPreBlocks for the miss rules.
func (c *Client) GetPreBlocks(ctx context.Context, fromID uint64, maxCount int) ([]preblock.PreBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.state.GetPreBlocks(fromID, maxCount)
}

// NextPreBlock waits for the next published pre-block. It returns a
// *LaggedError if this client fell too far behind, and ErrShutdownInProgress
// once the runner has stopped and the backlog is drained.
func (c *Client) NextPreBlock(ctx context.Context) (preblock.PreBlock, error) {
	p, err := c.sub.Recv(ctx)
	if errors.Is(err, fanout.ErrClosed) {
		return preblock.PreBlock{}, ErrShutdownInProgress
	}
	return p, err
}

// ClearQueue drops everything published but not yet received.
func (c *Client) ClearQueue() {
	c.sub.Reset()
}
