package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sequencer/domain/preblock"
	"sequencer/infra/storage/memory"
)

func TestClientEmptyLedger(t *testing.T) {
	_, client := New(memory.New(), Config{}, nil, nil)
	ctx := context.Background()

	_, err := client.GetHead(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = client.GetPreBlocks(ctx, 0, 10)
	require.ErrorIs(t, err, ErrPreBlockNotFound)
}

func TestClientSubmitBlocksWhenFull(t *testing.T) {
	_, client := New(memory.New(), Config{MempoolCapacity: 1}, nil, nil)

	require.NoError(t, client.SubmitTransaction(context.Background(), preblock.Transaction("a")))
	require.Equal(t, 1, client.Pending())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := client.SubmitTransaction(ctx, preblock.Transaction("b"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientCancelledReads(t *testing.T) {
	_, client := New(memory.New(), Config{}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetHead(ctx)
	require.ErrorIs(t, err, context.Canceled)
	_, err = client.NextPreBlock(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClientClonesHaveOwnCursor(t *testing.T) {
	h := newHarness(t, memory.New(), Config{}).start()
	a, b := h.client.Clone(), h.client.Clone()
	h.waitHead(0)

	ctx := context.Background()
	pa, err := a.NextPreBlock(ctx)
	require.NoError(t, err)
	pb, err := b.NextPreBlock(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(0), pa.Header.ID)
	require.Equal(t, pa, pb)

	// A clone made now does not see the past
	late := h.client.Clone()
	h.waitHead(pa.Header.ID + 2)
	p, err := late.NextPreBlock(ctx)
	require.NoError(t, err)
	require.Greater(t, p.Header.ID, pa.Header.ID)
}

func TestClientClearQueue(t *testing.T) {
	h := newHarness(t, memory.New(), Config{}).start()
	sub := h.client.Clone()
	h.waitHead(3)

	head, err := sub.GetHead(context.Background())
	require.NoError(t, err)
	sub.ClearQueue()

	h.waitHead(head.ID + 1)
	p, err := sub.NextPreBlock(context.Background())
	require.NoError(t, err)
	require.Greater(t, p.Header.ID, head.ID)
}

func TestClientLagged(t *testing.T) {
	h := newHarness(t, memory.New(), Config{FeedCapacity: 2}).start()
	sub := h.client.Clone()
	h.waitHead(5)
	// Retained entries stay readable after shutdown
	require.NoError(t, h.stop())

	_, err := sub.NextPreBlock(context.Background())
	var lagged *LaggedError
	require.ErrorAs(t, err, &lagged)
	require.NotZero(t, lagged.Skipped)

	// The cursor moved to the oldest retained pre-block
	p, err := sub.NextPreBlock(context.Background())
	require.NoError(t, err)
	require.Equal(t, lagged.Skipped, p.Header.ID)
}
