package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	require.Equal(t, uint64(500), cfg.CommitDelayMs)
	require.Equal(t, 500*time.Millisecond, cfg.CommitDelay())
	require.Equal(t, 200, cfg.MaxPreBlockTxsCount)
	require.Equal(t, 86400, cfg.MaxPreBlockTxsSize)
	require.Equal(t, 128, cfg.PreBlocksChannelCapacity)
	require.Equal(t, 1024, cfg.MempoolChannelCapacity)
	require.Equal(t, "127.0.0.1:8998", cfg.RPCAddr)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, EnginePebble, cfg.Storage.Engine)
	require.Equal(t, "./data", cfg.Storage.Dir)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "127.0.0.1:9898", cfg.Metrics.Addr)
	require.False(t, cfg.Broadcast.Enabled)
	require.Equal(t, []string{"localhost:9092"}, cfg.Broadcast.Brokers)
	require.Equal(t, 250*time.Millisecond, cfg.Broadcast.Interval)

	svc := cfg.Service()
	require.Equal(t, 500*time.Millisecond, svc.CommitDelay)
	require.Equal(t, 200, svc.MaxTxsCount)
	require.Equal(t, 86400, svc.MaxTxsSize)
	require.Equal(t, 128, svc.FeedCapacity)
	require.Equal(t, 1024, svc.MempoolCapacity)

	mirror := cfg.Mirror()
	require.Equal(t, "pre-blocks", mirror.Name)
	require.Equal(t, 256, mirror.Batch)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SEQUENCER_COMMIT_DELAY_MS", "50")
	t.Setenv("SEQUENCER_STORAGE_ENGINE", "memory")
	t.Setenv("SEQUENCER_BROADCAST_INTERVAL", "1s")
	t.Setenv("SEQUENCER_METRICS_ADDR", "")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, 50*time.Millisecond, cfg.CommitDelay())
	require.Equal(t, EngineMemory, cfg.Storage.Engine)
	require.Equal(t, time.Second, cfg.Broadcast.Interval)
	require.Empty(t, cfg.Metrics.Addr)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequencer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
max_pre_block_txs_count: 10
rpc_addr: 0.0.0.0:7000
log:
  level: debug
  format: json
broadcast:
  enabled: true
  driver: kafka-go
  brokers: [kafka-1:9092, kafka-2:9092]
`), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.MaxPreBlockTxsCount)
	require.Equal(t, "0.0.0.0:7000", cfg.RPCAddr)
	require.Equal(t, "json", cfg.Log.Format)
	require.True(t, cfg.Broadcast.Enabled)
	require.Equal(t, DriverKafkaGo, cfg.Broadcast.Driver)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Broadcast.Brokers)

	// Environment beats the file
	t.Setenv("SEQUENCER_MAX_PRE_BLOCK_TXS_COUNT", "20")
	cfg, err = Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, 20, cfg.MaxPreBlockTxsCount)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "read config")
}

func TestValidation(t *testing.T) {
	valid, err := Load(viper.New(), "")
	require.NoError(t, err)

	cases := map[string]func(*Config){
		"zero delay":     func(c *Config) { c.CommitDelayMs = 0 },
		"zero count":     func(c *Config) { c.MaxPreBlockTxsCount = 0 },
		"negative size":  func(c *Config) { c.MaxPreBlockTxsSize = -1 },
		"bad rpc addr":   func(c *Config) { c.RPCAddr = "nowhere" },
		"unknown engine": func(c *Config) { c.Storage.Engine = "rocksdb" },
		"pebble no dir":  func(c *Config) { c.Storage.Dir = "" },
		"bad level":      func(c *Config) { c.Log.Level = "loud" },
		"bad driver":     func(c *Config) { c.Broadcast.Driver = "nats" },
		"no brokers": func(c *Config) {
			c.Broadcast.Enabled = true
			c.Broadcast.Brokers = nil
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			cfg.Broadcast.Brokers = append([]string(nil), valid.Broadcast.Brokers...)
			mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), "invalid config")
		})
	}

	memory := valid
	memory.Storage = Storage{Engine: EngineMemory}
	require.NoError(t, memory.Validate())
}
