package service

import (
	"go.uber.org/zap"

	"sequencer/domain/preblock"
	"sequencer/infra/fanout"
	"sequencer/infra/metrics"
	"sequencer/infra/storage"
	"sequencer/ledger"
)

// New wires a runner and a client over backend. The runner does nothing until
// Run is called; transactions submitted before then wait in the mempool.
// nil log and m are replaced with no-op instances.
func New(
	backend storage.Backend,
	cfg Config,
	log *zap.Logger,
	m *metrics.Metrics,
) (*Runner, *Client) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}

	state := ledger.New(backend)
	mempool := make(chan preblock.Transaction, cfg.MempoolCapacity)
	feed := fanout.New[preblock.PreBlock](cfg.FeedCapacity)
	done := make(chan struct{})

	runner := &Runner{
		state:   state,
		feed:    feed,
		mempool: mempool,
		done:    done,
		cfg:     cfg,
		log:     log.Named("runner"),
		metrics: m,
	}

	client := &Client{
		state:   state,
		mempool: mempool,
		done:    done,
		feed:    feed,
		sub:     feed.Subscribe(),
	}

	return runner, client
}
