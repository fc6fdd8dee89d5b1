package service

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sequencer/domain/preblock"
	"sequencer/infra/metrics"
	"sequencer/infra/storage"
)

const waitFor = 5 * time.Second

type harness struct {
	t       *testing.T
	cfg     Config
	clock   *clock.Mock
	metrics *metrics.Metrics
	runner  *Runner
	client  *Client

	cancel context.CancelFunc
	errc   chan error
}

func newHarness(t *testing.T, backend storage.Backend, cfg Config) *harness {
	t.Helper()
	mock := clock.NewMock()
	cfg.Clock = mock
	m := metrics.New(nil)

	runner, client := New(backend, cfg, zaptest.NewLogger(t), m)
	return &harness{
		t:       t,
		cfg:     runner.cfg,
		clock:   mock,
		metrics: m,
		runner:  runner,
		client:  client,
	}
}

// start runs the runner in the background until the test ends.
func (h *harness) start() *harness {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.errc = make(chan error, 1)
	go func() { h.errc <- h.runner.Run(ctx) }()
	h.t.Cleanup(func() { _ = h.stop() })
	return h
}

// stop cancels the runner and returns what Run returned. It is idempotent.
func (h *harness) stop() error {
	h.cancel()
	select {
	case err, ok := <-h.errc:
		if ok {
			close(h.errc)
		}
		return err
	case <-time.After(waitFor):
		h.t.Fatal("runner did not stop")
		return nil
	}
}

// tick closes the current batching window.
func (h *harness) tick() {
	h.clock.Add(h.cfg.CommitDelay)
}

// waitHead ticks until a pre-block with at least id is committed.
func (h *harness) waitHead(id uint64) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		head, err := h.client.GetHead(context.Background())
		if err == nil && head.ID >= id {
			return true
		}
		h.tick()
		return false
	}, waitFor, 5*time.Millisecond)
}

// waitTxs ticks until n transactions are committed and returns the ledger.
func (h *harness) waitTxs(n int) []preblock.PreBlock {
	h.t.Helper()
	var blocks []preblock.PreBlock
	require.Eventually(h.t, func() bool {
		blocks = h.ledger()
		if countTxs(blocks) >= n {
			return true
		}
		h.tick()
		return false
	}, waitFor, 5*time.Millisecond)
	return blocks
}

func (h *harness) ledger() []preblock.PreBlock {
	blocks, err := h.client.GetPreBlocks(context.Background(), 0, 1<<20)
	if err != nil {
		require.ErrorIs(h.t, err, ErrPreBlockNotFound)
	}
	return blocks
}

func (h *harness) submit(txs ...preblock.Transaction) {
	h.t.Helper()
	for _, tx := range txs {
		require.NoError(h.t, h.client.SubmitTransaction(context.Background(), tx))
	}
}

func countTxs(blocks []preblock.PreBlock) int {
	n := 0
	for _, p := range blocks {
		n += len(p.Transactions)
	}
	return n
}

func flatten(blocks []preblock.PreBlock) []preblock.Transaction {
	var out []preblock.Transaction
	for _, p := range blocks {
		out = append(out, p.Transactions...)
	}
	return out
}

func numbered(n, size int) []preblock.Transaction {
	out := make([]preblock.Transaction, n)
	for i := range out {
		tx := make(preblock.Transaction, size)
		tx[0] = byte(i)
		if size > 1 {
			tx[1] = byte(i >> 8)
		}
		out[i] = tx
	}
	return out
}
