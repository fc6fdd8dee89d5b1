package service

import (
	"context"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"sequencer/domain/preblock"
	"sequencer/infra/fanout"
	"sequencer/infra/metrics"
	"sequencer/infra/sequence"
	"sequencer/ledger"
)

// Runner is the single writer of the ledger. It owns the batching loop.
type Runner struct {
	state   *ledger.State
	feed    *fanout.Feed[preblock.PreBlock]
	mempool <-chan preblock.Transaction
	done    chan struct{}
	cfg     Config
	log     *zap.Logger
	metrics *metrics.Metrics
	started atomic.Bool
}

// Done is closed once Run has returned.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Run resumes from the ledger head and sequences transactions until ctx is
// cancelled (returns nil) or persisting a pre-block fails (returns the
// error). Transactions still buffered at that point are dropped. Either way
// the feed is closed and every client observes ErrShutdownInProgress.
//
// Run may only be called once.
func (r *Runner) Run(ctx context.Context) (err error) {
	if !r.started.CompareAndSwap(false, true) {
		return errors.New("runner already started")
	}
	defer func() {
		r.feed.Close()
		close(r.done)
		if err != nil {
			r.log.Error("runner stopped", zap.Error(err))
			return
		}
		r.log.Info("runner stopped")
	}()

	start, err := r.resume()
	if err != nil {
		return err
	}
	seq := sequence.New(start)

	r.log.Info("runner started",
		zap.Uint64("next_id", start),
		zap.Duration("commit_delay", r.cfg.CommitDelay),
		zap.Int("max_txs_count", r.cfg.MaxTxsCount),
		zap.Int("max_txs_size", r.cfg.MaxTxsSize),
	)

	timer := r.cfg.Clock.Timer(r.cfg.CommitDelay)
	defer timer.Stop()

	var (
		txs      = make([]preblock.Transaction, 0, r.cfg.MaxTxsCount)
		size     int
		deferred bool
	)

	for {
		// A nil channel is never ready: once a ceiling is reached the
		// mempool is left alone until the next window.
		mempool := r.mempool
		if reason := r.ceiling(len(txs), size); reason != "" {
			mempool = nil
			if !deferred {
				deferred = true
				r.metrics.AdmissionDeferrals.WithLabelValues(reason).Inc()
				r.log.Warn("pre-block full, deferring admission",
					zap.String("reason", reason),
					zap.Uint64("id", seq.Next()),
					zap.Int("txs", len(txs)),
					zap.Int("size", size),
				)
			}
		}

		select {
		case <-ctx.Done():
			if len(txs) > 0 {
				r.log.Info("dropping buffered transactions", zap.Int("txs", len(txs)))
			}
			return nil

		case tx := <-mempool:
			txs = append(txs, tx)
			size += tx.Size()

		case <-timer.C:
			if err := r.commit(seq, txs, size); err != nil {
				return err
			}
			txs = make([]preblock.Transaction, 0, r.cfg.MaxTxsCount)
			size = 0
			deferred = false
			timer.Reset(r.cfg.CommitDelay)
		}
	}
}

func (r *Runner) resume() (uint64, error) {
	head, err := r.state.GetHead()
	switch {
	case errors.Is(err, ledger.ErrMissingHead):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "read ledger head")
	}
	r.metrics.HeadID.Set(float64(head.ID))
	return head.ID + 1, nil
}

// ceiling reports which admission limit, if any, the window has reached.
// The count limit is checked before admission and is never exceeded; the
// size limit may be overshot by the last admitted transaction.
func (r *Runner) ceiling(count, size int) string {
	switch {
	case count >= r.cfg.MaxTxsCount:
		return metrics.ReasonCount
	case size >= r.cfg.MaxTxsSize:
		return metrics.ReasonSize
	}
	return ""
}

// commit seals the window into a pre-block, persists it and only then
// publishes it.
func (r *Runner) commit(seq *sequence.Sequencer, txs []preblock.Transaction, size int) error {
	p := preblock.PreBlock{
		Header: preblock.Header{
			ID:        seq.Next(),
			Timestamp: r.cfg.Clock.Now().UTC(),
		},
		Transactions: txs,
	}

	start := r.cfg.Clock.Now()
	if err := r.state.UpdateHead(p); err != nil {
		return errors.Wrap(err, "persist pre-block")
	}
	r.metrics.CommitSeconds.Observe(r.cfg.Clock.Since(start).Seconds())

	r.feed.Publish(p)
	seq.Advance()

	r.metrics.PreBlocksCommitted.Inc()
	r.metrics.TransactionsSequenced.Add(float64(len(txs)))
	r.metrics.PreBlockTxs.Observe(float64(len(txs)))
	r.metrics.HeadID.Set(float64(p.Header.ID))

	r.log.Debug("pre-block committed",
		zap.Uint64("id", p.Header.ID),
		zap.Int("txs", len(txs)),
		zap.Int("size", size),
	)
	return nil
}
