package service

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"sequencer/domain/preblock"
	"sequencer/infra/metrics"
	"sequencer/infra/storage"
	"sequencer/infra/storage/memory"
	"sequencer/ledger"
)

func requireContiguous(t *testing.T, blocks []preblock.PreBlock, from uint64) {
	t.Helper()
	for i, p := range blocks {
		require.Equal(t, from+uint64(i), p.Header.ID)
		if i > 0 {
			require.False(t, p.Header.Timestamp.Before(blocks[i-1].Header.Timestamp))
		}
	}
}

func TestRunnerBatchesInSubmissionOrder(t *testing.T) {
	h := newHarness(t, memory.New(), Config{}).start()

	txs := numbered(30, 1)
	for _, tx := range txs {
		h.submit(tx)
		h.clock.Add(100 * time.Millisecond)
	}

	blocks := h.waitTxs(30)
	requireContiguous(t, blocks, 0)
	require.Equal(t, txs, flatten(blocks))
	require.Equal(t, float64(30), testutil.ToFloat64(h.metrics.TransactionsSequenced))
}

func TestRunnerEmptyWindows(t *testing.T) {
	h := newHarness(t, memory.New(), Config{}).start()
	h.waitHead(2)

	blocks := h.ledger()
	require.GreaterOrEqual(t, len(blocks), 3)
	requireContiguous(t, blocks, 0)
	for _, p := range blocks {
		require.Empty(t, p.Transactions)
	}
}

func TestRunnerCountCeiling(t *testing.T) {
	h := newHarness(t, memory.New(), Config{MaxTxsCount: 10})

	// Queue everything before the runner starts, so the first window fills
	// up before the timer can fire
	txs := numbered(45, 2)
	h.submit(txs...)
	h.start()

	require.Eventually(t, func() bool { return h.client.Pending() == 35 }, waitFor, time.Millisecond)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(h.metrics.AdmissionDeferrals.WithLabelValues(metrics.ReasonCount)) == 1
	}, waitFor, time.Millisecond)

	blocks := h.waitTxs(45)
	require.Len(t, blocks[0].Transactions, 10)
	for _, p := range blocks {
		require.LessOrEqual(t, len(p.Transactions), 10)
	}
	// Nothing dropped, nothing reordered
	require.Equal(t, txs, flatten(blocks))
}

func TestRunnerSizeCeiling(t *testing.T) {
	h := newHarness(t, memory.New(), Config{MaxTxsSize: 10})

	txs := numbered(9, 4)
	h.submit(txs...)
	h.start()

	// 4 + 4 + 4 overshoots 10 by the last admitted transaction
	require.Eventually(t, func() bool { return h.client.Pending() == 6 }, waitFor, time.Millisecond)

	blocks := h.waitTxs(9)
	require.Len(t, blocks[0].Transactions, 3)
	for _, p := range blocks {
		require.Less(t, p.Size(), 10+4)
	}
	require.Equal(t, txs, flatten(blocks))
	require.GreaterOrEqual(t,
		testutil.ToFloat64(h.metrics.AdmissionDeferrals.WithLabelValues(metrics.ReasonSize)), float64(1))
}

func TestRunnerResumesFromHead(t *testing.T) {
	backend := memory.New()
	state := ledger.New(backend)
	for id := uint64(0); id < 3; id++ {
		require.NoError(t, state.UpdateHead(preblock.PreBlock{
			Header: preblock.Header{ID: id, Timestamp: time.Unix(int64(id), 0).UTC()},
		}))
	}

	h := newHarness(t, backend, Config{}).start()
	h.submit(preblock.Transaction("after restart"))
	h.waitTxs(1)

	blocks := h.ledger()
	requireContiguous(t, blocks[:3], 0)
	require.Equal(t, uint64(3), blocks[3].Header.ID)

	_, err := state.Verify(context.Background())
	require.NoError(t, err)
}

func TestRunnerShutdownDropsBuffered(t *testing.T) {
	backend := memory.New()
	h := newHarness(t, backend, Config{}).start()

	h.submit(numbered(5, 8)...)
	require.Eventually(t, func() bool { return h.client.Pending() == 0 }, waitFor, time.Millisecond)

	require.NoError(t, h.stop())
	<-h.runner.Done()

	_, err := h.client.GetHead(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, backend.Len())

	err = h.client.SubmitTransaction(context.Background(), preblock.Transaction("late"))
	require.ErrorIs(t, err, ErrShutdownInProgress)

	_, err = h.client.NextPreBlock(context.Background())
	require.ErrorIs(t, err, ErrShutdownInProgress)
}

func TestRunnerRestartKeepsCommitted(t *testing.T) {
	backend := memory.New()
	h := newHarness(t, backend, Config{}).start()
	h.submit(preblock.Transaction("a"))
	h.waitTxs(1)

	h.submit(preblock.Transaction("lost"))
	require.NoError(t, h.stop())

	head, err := ledger.New(backend).Verify(context.Background())
	require.NoError(t, err)

	h2 := newHarness(t, backend, Config{})
	h2.clock.Set(h.clock.Now())
	h2.start()
	h2.waitHead(head.ID + 1)
	requireContiguous(t, h2.ledger(), 0)
}

type failingBackend struct {
	storage.Backend
}

func (failingBackend) Write(storage.WriteBatch) error {
	return storage.Internal("write batch", errors.New("disk full"))
}

func TestRunnerStopsOnStorageFailure(t *testing.T) {
	h := newHarness(t, failingBackend{memory.New()}, Config{}).start()
	sub := h.client.Clone()

	var runErr error
	require.Eventually(t, func() bool {
		select {
		case runErr = <-h.errc:
			return true
		default:
			h.tick()
			return false
		}
	}, waitFor, 5*time.Millisecond)
	close(h.errc)

	require.Error(t, runErr)
	require.ErrorIs(t, runErr, storage.ErrStorage)
	require.Contains(t, runErr.Error(), "persist pre-block")

	<-h.runner.Done()
	err := h.client.SubmitTransaction(context.Background(), preblock.Transaction("x"))
	require.ErrorIs(t, err, ErrShutdownInProgress)

	// Nothing was published for the failed commit
	_, err = sub.NextPreBlock(context.Background())
	require.ErrorIs(t, err, ErrShutdownInProgress)
}

func TestRunnerPersistsBeforePublishing(t *testing.T) {
	h := newHarness(t, memory.New(), Config{}).start()
	sub := h.client.Clone()

	for i := 0; i < 5; i++ {
		var p preblock.PreBlock
		require.Eventually(t, func() bool {
			h.tick()
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()
			var err error
			p, err = sub.NextPreBlock(ctx)
			return err == nil
		}, waitFor, time.Millisecond)

		got, err := sub.GetPreBlocks(context.Background(), p.Header.ID, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
	}
}

func TestRunnerRunsOnce(t *testing.T) {
	h := newHarness(t, memory.New(), Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, h.runner.Run(ctx))
	<-h.runner.Done()

	// A stopped runner cannot be restarted either
	err := h.runner.Run(context.Background())
	require.ErrorContains(t, err, "already started")
}

func BenchmarkRunnerCommit(b *testing.B) {
	runner, client := New(memory.New(), Config{CommitDelay: time.Millisecond}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = runner.Run(ctx) }()

	tx := make(preblock.Transaction, 128)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = client.SubmitTransaction(ctx, tx)
		}
	})
}
