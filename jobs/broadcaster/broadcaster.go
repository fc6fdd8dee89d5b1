// Package broadcaster mirrors committed pre-blocks to a message broker.
//
// The mirror is at-least-once. It keeps a cursor (the next id to publish) in
// the ledger backend and advances it only after the broker acknowledges a
// pre-block, so a crash between the two republishes that one pre-block.
package broadcaster

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"sequencer/infra/codec"
	"sequencer/infra/metrics"
	"sequencer/infra/storage"
	"sequencer/ledger"
)

// Scope holds one cursor per mirror name.
const Scope = "broadcast"

// Publisher delivers one keyed message and returns once it is acknowledged.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
	Close() error
}

type Config struct {
	// Name keys the cursor, so several mirrors can share a backend.
	Name     string
	Interval time.Duration
	Batch    int

	// Clock drives the interval ticker. Nil means the wall clock.
	Clock clock.Clock
}

type Broadcaster struct {
	backend storage.Backend
	state   *ledger.State
	pub     Publisher
	cfg     Config
	log     *zap.Logger
	metrics *metrics.Metrics
}

// ------------------------------------------------
// CONSTRUCTOR
// ------------------------------------------------

func New(
	backend storage.Backend,
	pub Publisher,
	cfg Config,
	log *zap.Logger,
	m *metrics.Metrics,
) *Broadcaster {
	if cfg.Name == "" {
		cfg.Name = "kafka"
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 250 * time.Millisecond
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 256
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &Broadcaster{
		backend: backend,
		state:   ledger.New(backend),
		pub:     pub,
		cfg:     cfg,
		log:     log.Named("broadcaster").With(zap.String("mirror", cfg.Name)),
		metrics: m,
	}
}

// ------------------------------------------------
// LOOP
// ------------------------------------------------

// Run mirrors on every interval until ctx is done. Failed rounds are logged
// and retried on the next tick.
func (b *Broadcaster) Run(ctx context.Context) error {
	next, err := b.Cursor()
	if err != nil {
		return err
	}
	b.log.Info("broadcaster started", zap.Uint64("next_id", next))

	ticker := b.cfg.Clock.Ticker(b.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.log.Info("broadcaster stopped")
			return nil

		case <-ticker.C:
			n, err := b.replayOnce(ctx)
			if err != nil && ctx.Err() == nil {
				b.log.Warn("mirror round failed", zap.Int("published", n), zap.Error(err))
			}
		}
	}
}

// ------------------------------------------------
// REPLAY
// ------------------------------------------------

// Cursor returns the next id to publish.
func (b *Broadcaster) Cursor() (uint64, error) {
	snap, err := b.backend.Snapshot(Scope)
	if err != nil {
		return 0, err
	}
	defer snap.Close()

	v, ok, err := snap.Get(Scope, []byte(b.cfg.Name))
	switch {
	case err != nil:
		return 0, err
	case !ok:
		return 0, nil
	case len(v) != 8:
		return 0, errors.Wrapf(ledger.ErrCorrupt, "mirror cursor has %d bytes", len(v))
	}
	return binary.BigEndian.Uint64(v), nil
}

// replayOnce publishes one batch from the cursor and returns how many
// pre-blocks were acknowledged. The first failure ends the round.
func (b *Broadcaster) replayOnce(ctx context.Context) (int, error) {
	next, err := b.Cursor()
	if err != nil {
		return 0, err
	}

	blocks, err := b.state.GetPreBlocks(next, b.cfg.Batch)
	if errors.Is(err, ledger.ErrPreBlockNotFound) && !errors.Is(err, ledger.ErrCorrupt) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	for i, p := range blocks {
		id := p.Header.ID
		if err := b.pub.Publish(ctx, ledger.Key(id), codec.MarshalPreBlock(p)); err != nil {
			b.metrics.BroadcastFailures.Inc()
			return i, errors.Wrapf(err, "publish pre-block %d", id)
		}

		wb := b.backend.Batch()
		wb.Insert(Scope, []byte(b.cfg.Name), ledger.Key(id+1))
		if err := b.backend.Write(wb); err != nil {
			return i, errors.Wrapf(err, "advance mirror cursor past %d", id)
		}
		b.metrics.BroadcastPublished.Inc()
	}

	if len(blocks) > 0 {
		b.log.Debug("mirrored pre-blocks",
			zap.Uint64("from_id", next),
			zap.Int("count", len(blocks)),
		)
	}
	return len(blocks), nil
}

func (b *Broadcaster) Close() error {
	return b.pub.Close()
}
