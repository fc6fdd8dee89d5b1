package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sequencer/domain/preblock"
	"sequencer/infra/metrics"
	"sequencer/ledger"
)

// CatchUpBatch is how many pre-blocks one catch-up read fetches.
const CatchUpBatch = 1024

// PreBlocksAPI is what a live query needs from a client.
type PreBlocksAPI interface {
	GetPreBlocks(ctx context.Context, fromID uint64, maxCount int) ([]preblock.PreBlock, error)
	NextPreBlock(ctx context.Context) (preblock.PreBlock, error)
	ClearQueue()
}

// Result is one item of a live query stream. A non-nil Err is always the
// last item.
type Result struct {
	PreBlock preblock.PreBlock
	Err      error
}

// LiveQuery streams every pre-block from FromID onwards, first from the
// ledger and then from the live feed, with no gaps and no duplicates.
type LiveQuery struct {
	id      string
	fromID  uint64
	client  PreBlocksAPI
	sink    chan<- Result
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewLiveQuery prepares a query. client must be a fresh Clone subscribed
// before the query starts, and must not be shared.
func NewLiveQuery(
	fromID uint64,
	client PreBlocksAPI,
	sink chan<- Result,
	log *zap.Logger,
	m *metrics.Metrics,
) *LiveQuery {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	id := uuid.NewString()
	return &LiveQuery{
		id:      id,
		fromID:  fromID,
		client:  client,
		sink:    sink,
		log:     log.With(zap.String("query_id", id), zap.Uint64("from_id", fromID)),
		metrics: m,
	}
}

func (q *LiveQuery) ID() string { return q.id }

// Run feeds the sink until ctx is done or an error occurs, then closes it.
// Errors are delivered as a final Result; a cancelled ctx ends the stream
// without one.
func (q *LiveQuery) Run(ctx context.Context) {
	defer close(q.sink)

	q.metrics.LiveQueriesActive.Inc()
	defer q.metrics.LiveQueriesActive.Dec()

	q.log.Debug("live query started")

	err := q.run(ctx)
	if ctx.Err() != nil {
		q.log.Debug("live query closed by subscriber")
		return
	}

	q.log.Warn("live query terminated", zap.Error(err))
	select {
	case q.sink <- Result{Err: err}:
	case <-ctx.Done():
	}
}

func (q *LiveQuery) run(ctx context.Context) error {
	next := q.fromID
	for {
		var err error
		if next, err = q.catchUp(ctx, next); err != nil {
			return err
		}

		next, err = q.follow(ctx, next)

		var lagged *LaggedError
		if !errors.As(err, &lagged) {
			return err
		}
		q.metrics.LiveQueryLagRecovered.Inc()
		q.log.Info("live query lagged, catching up from storage",
			zap.Uint64("next_id", next),
			zap.Uint64("skipped", lagged.Skipped),
		)
		q.client.ClearQueue()
	}
}

// catchUp forwards committed pre-blocks from next until a short read, and
// returns the next id to expect.
func (q *LiveQuery) catchUp(ctx context.Context, next uint64) (uint64, error) {
	for {
		blocks, err := q.client.GetPreBlocks(ctx, next, CatchUpBatch)
		if err != nil && !(errors.Is(err, ErrPreBlockNotFound) && !errors.Is(err, ledger.ErrCorrupt)) {
			return next, errors.Wrapf(err, "catch up from %d", next)
		}

		for _, p := range blocks {
			if err := q.send(ctx, p); err != nil {
				return next, err
			}
			next = p.Header.ID + 1
		}

		if len(blocks) < CatchUpBatch {
			return next, nil
		}
		// More history may exist. Drop the feed backlog, which the next
		// read covers.
		q.client.ClearQueue()
	}
}

// follow forwards live pre-blocks, discarding those already sent.
func (q *LiveQuery) follow(ctx context.Context, next uint64) (uint64, error) {
	for {
		p, err := q.client.NextPreBlock(ctx)
		if err != nil {
			return next, err
		}

		switch id := p.Header.ID; {
		case id < next:
			continue
		case id > next:
			q.metrics.LiveQueryGaps.Inc()
			return next, errors.Wrapf(ErrNonSequential, "expected pre-block %d, received %d", next, id)
		}

		if err := q.send(ctx, p); err != nil {
			return next, err
		}
		next++
	}
}

func (q *LiveQuery) send(ctx context.Context, p preblock.PreBlock) error {
	select {
	case q.sink <- Result{PreBlock: p}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
