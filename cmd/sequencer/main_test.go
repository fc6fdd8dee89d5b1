package main

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"

	"sequencer/api/grpcclient"
	"sequencer/api/sequencerpb"
	"sequencer/config"
	"sequencer/domain/preblock"
	"sequencer/infra/storage/pebblestore"
	"sequencer/ledger"
)

func run(ctx context.Context, stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	store, err := pebblestore.Open(pebblestore.Config{Dir: dir})
	require.NoError(t, err)
	state := ledger.New(store)
	for id := uint64(0); id < 3; id++ {
		require.NoError(t, state.UpdateHead(preblock.PreBlock{Header: preblock.Header{ID: id}}))
	}
	require.NoError(t, store.Close())

	out, err := run(context.Background(), "", "verify", "--data-dir", dir)
	require.NoError(t, err)
	require.Equal(t, "ledger ok: 3 pre-blocks, head 2\n", out)
}

func TestVerifyEmpty(t *testing.T) {
	t.Setenv("SEQUENCER_STORAGE_ENGINE", "memory")
	out, err := run(context.Background(), "", "verify")
	require.NoError(t, err)
	require.Equal(t, "ledger is empty\n", out)
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("SEQUENCER_MAX_PRE_BLOCK_TXS_COUNT", "0")
	_, err := run(context.Background(), "", "verify")
	require.ErrorContains(t, err, "invalid config")
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	cfg.Storage.Engine = config.EngineMemory
	cfg.RPCAddr = "127.0.0.1:0"
	cfg.Metrics.Addr = ""
	cfg.CommitDelayMs = 10
	cfg.Log.Level = "warn"
	return cfg
}

// startServe runs serve in the background and returns its RPC address and a
// channel with its result.
func startServe(t *testing.T, ctx context.Context, cfg config.Config) (string, <-chan error) {
	t.Helper()
	ready := make(chan string, 1)
	errc := make(chan error, 1)
	go func() { errc <- serve(ctx, cfg, ready) }()

	select {
	case addr := <-ready:
		return addr, errc
	case err := <-errc:
		t.Fatalf("serve failed: %v", err)
		return "", nil
	}
}

func requireStops(t *testing.T, errc <-chan error) {
	t.Helper()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe(t *testing.T) {
	cfg := testConfig(t)
	cfg.VerifyOnStart = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	addr, errc := startServe(t, ctx, cfg)

	out, err := run(ctx, "", "submit", "alpha", "beta", "--rpc-addr", addr)
	require.NoError(t, err)
	require.Equal(t, "submitted 2 transactions\n", out)

	out, err = run(ctx, "gamma\n", "submit", "--rpc-addr", addr)
	require.NoError(t, err)
	require.Equal(t, "submitted 1 transactions\n", out)

	require.Eventually(t, func() bool {
		out, err = run(ctx, "", "range", "-v", "--rpc-addr", addr)
		return err == nil && strings.Contains(out, `"gamma"`)
	}, 5*time.Second, 20*time.Millisecond)
	require.Less(t, strings.Index(out, `"alpha"`), strings.Index(out, `"beta"`))
	require.Less(t, strings.Index(out, `"beta"`), strings.Index(out, `"gamma"`))

	out, err = run(ctx, "", "head", "--rpc-addr", addr)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "id="), out)

	tailCtx, stopTail := context.WithTimeout(ctx, 300*time.Millisecond)
	defer stopTail()
	out, err = run(tailCtx, "", "tail", "--rpc-addr", addr)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "id=0 "), out)

	cancel()
	requireStops(t, errc)
}

func TestServeStopsWithIdleSubmitStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	addr, errc := startServe(t, ctx, testConfig(t))

	client, err := grpcclient.Dial(addr)
	require.NoError(t, err)
	defer client.Close()

	stream, err := client.OpenSubmitStream(context.Background())
	require.NoError(t, err)
	require.NoError(t, stream.Send(preblock.Transaction("one")))

	cancel()
	requireStops(t, errc)
	require.Error(t, stream.Close())
}

type stuckSequencer struct {
	sequencerpb.UnimplementedSequencerServer
	entered chan struct{}
	release chan struct{}
}

func (s *stuckSequencer) SubmitTransactionStream(grpc.ClientStreamingServer[sequencerpb.Transaction, sequencerpb.Empty]) error {
	close(s.entered)
	<-s.release
	return nil
}

func TestStopServerCutsStuckCalls(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := grpc.NewServer()
	stuck := &stuckSequencer{entered: make(chan struct{}), release: make(chan struct{})}
	sequencerpb.RegisterSequencerServer(srv, stuck)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() { close(stuck.release) })

	client, err := grpcclient.Dial(lis.Addr().String())
	require.NoError(t, err)
	defer client.Close()

	stream, err := client.OpenSubmitStream(context.Background())
	require.NoError(t, err)
	require.NoError(t, stream.Send(preblock.Transaction("one")))
	select {
	case <-stuck.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("handler never ran")
	}

	stopped := make(chan struct{})
	go func() {
		stopServer(srv, 50*time.Millisecond, zaptest.NewLogger(t))
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("stopServer waited for a stuck handler")
	}
	require.Error(t, stream.Close())
}
