package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"sequencer/api/grpcserver"
	"sequencer/config"
	"sequencer/infra/kafka"
	"sequencer/infra/logging"
	"sequencer/infra/metrics"
	"sequencer/infra/storage"
	"sequencer/infra/storage/memory"
	"sequencer/infra/storage/pebblestore"
	"sequencer/jobs/broadcaster"
	"sequencer/ledger"
	"sequencer/service"
)

func newServeCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the sequencer and its gRPC API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, nil)
		},
	}
}

// serve runs every component until ctx is done or one of them fails. ready,
// if not nil, receives the RPC listen address once it is bound.
func serve(ctx context.Context, cfg config.Config, ready chan<- string) error {
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// ---------------- Metrics ----------------

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// ---------------- Storage ----------------

	backend, err := openStorage(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("close storage", zap.Error(err))
		}
	}()

	if cfg.VerifyOnStart {
		head, err := ledger.New(backend).Verify(ctx)
		switch {
		case errors.Is(err, ledger.ErrMissingHead):
			log.Info("ledger is empty")
		case err != nil:
			return errors.Wrap(err, "verify ledger")
		default:
			log.Info("ledger verified", zap.Uint64("head_id", head.ID))
		}
	}

	// ---------------- Sequencer ----------------

	runner, client := service.New(backend, cfg.Service(), log, m)

	lis, err := net.Listen("tcp", cfg.RPCAddr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", cfg.RPCAddr)
	}
	srv := grpcserver.New(client, log.Named("rpc"), m)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runner.Run(ctx)
	})

	g.Go(func() error {
		log.Info("gRPC listening", zap.String("addr", lis.Addr().String()))
		if ready != nil {
			ready <- lis.Addr().String()
		}
		return srv.Serve(lis)
	})

	g.Go(func() error {
		// Live streams end once the runner closes the feed
		<-ctx.Done()
		<-runner.Done()
		stopServer(srv, cfg.ShutdownTimeout, log)
		return nil
	})

	if cfg.Metrics.Addr != "" {
		g.Go(func() error {
			log.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
			return metrics.Serve(ctx, cfg.Metrics.Addr, reg)
		})
	}

	// ---------------- Background Jobs ----------------

	if cfg.Broadcast.Enabled {
		pub, err := newPublisher(cfg.Broadcast)
		if err != nil {
			return err
		}
		bc := broadcaster.New(backend, pub, cfg.Mirror(), log, m)
		defer func() { _ = bc.Close() }()

		g.Go(func() error {
			return bc.Run(ctx)
		})
	}

	err = g.Wait()
	if err != nil {
		log.Error("sequencer stopped", zap.Error(err))
	} else {
		log.Info("sequencer stopped")
	}
	return err
}

// stopServer drains open calls for up to timeout, then closes every
// connection. Handlers that ignore cancellation are not waited for after
// that.
func stopServer(srv *grpc.Server, timeout time.Duration, log *zap.Logger) {
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-stopped:
	case <-t.C:
		log.Warn("graceful stop timed out, closing connections", zap.Duration("timeout", timeout))
		srv.Stop()
	}
}

func openStorage(cfg config.Storage) (storage.Backend, error) {
	switch cfg.Engine {
	case config.EngineMemory:
		return memory.New(), nil
	case config.EnginePebble:
		s, err := pebblestore.Open(pebblestore.Config{Dir: cfg.Dir})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.Newf("unknown storage engine %q", cfg.Engine)
}

func newPublisher(cfg config.Broadcast) (broadcaster.Publisher, error) {
	switch cfg.Driver {
	case config.DriverSarama:
		return broadcaster.NewSarama(cfg.Brokers, cfg.Topic)
	case config.DriverKafkaGo:
		return kafka.NewProducer(cfg.Brokers, cfg.Topic), nil
	}
	return nil, errors.Newf("unknown broadcast driver %q", cfg.Driver)
}

func newVerifyCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the stored ledger for gaps and corruption",
		Long:  "Check the stored ledger for gaps and corruption. The pebble engine allows one process per directory, so stop the server first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			backend, err := openStorage(cfg.Storage)
			if err != nil {
				return err
			}
			defer backend.Close()

			head, err := ledger.New(backend).Verify(cmd.Context())
			if errors.Is(err, ledger.ErrMissingHead) {
				fmt.Fprintln(cmd.OutOrStdout(), "ledger is empty")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ledger ok: %d pre-blocks, head %d\n", head.ID+1, head.ID)
			return nil
		},
	}
}
