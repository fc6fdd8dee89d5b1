// Package metrics defines the sequencer's Prometheus collectors.
package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sequencer"

// Admission deferral reasons.
const (
	ReasonCount = "count"
	ReasonSize  = "size"
)

// Metrics groups every collector. Construct it with New; a nil registerer
// yields working but unregistered collectors.
type Metrics struct {
	PreBlocksCommitted    prometheus.Counter
	TransactionsSequenced prometheus.Counter
	AdmissionDeferrals    *prometheus.CounterVec
	HeadID                prometheus.Gauge
	PreBlockTxs           prometheus.Histogram
	CommitSeconds         prometheus.Histogram

	LiveQueriesActive     prometheus.Gauge
	LiveQueryLagRecovered prometheus.Counter
	LiveQueryGaps         prometheus.Counter

	BroadcastPublished prometheus.Counter
	BroadcastFailures  prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PreBlocksCommitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pre_blocks_committed_total",
			Help:      "Pre-blocks persisted by the runner.",
		}),
		TransactionsSequenced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_sequenced_total",
			Help:      "Transactions included in committed pre-blocks.",
		}),
		AdmissionDeferrals: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admission_deferrals_total",
			Help:      "Batching windows in which admission was paused by a ceiling.",
		}, []string{"reason"}),
		HeadID: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "head_id",
			Help:      "ID of the highest committed pre-block.",
		}),
		PreBlockTxs: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pre_block_transactions",
			Help:      "Transactions per committed pre-block.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200, 500},
		}),
		CommitSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "commit_seconds",
			Help:      "Time spent persisting a pre-block.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		LiveQueriesActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_queries_active",
			Help:      "Open live-query subscriptions.",
		}),
		LiveQueryLagRecovered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_query_lag_recoveries_total",
			Help:      "Times a live query overran the fan-out and re-entered catch-up.",
		}),
		LiveQueryGaps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_query_gaps_total",
			Help:      "Live queries terminated by a non-sequential stream.",
		}),
		BroadcastPublished: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_published_total",
			Help:      "Pre-blocks mirrored to the message broker.",
		}),
		BroadcastFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_failures_total",
			Help:      "Failed mirror publish attempts.",
		}),
	}
}

// Serve exposes g on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "metrics: listen on %s", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "metrics: serve")
	}
	return nil
}
