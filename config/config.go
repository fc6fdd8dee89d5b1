// Package config loads the sequencer's settings from defaults, an optional
// file and SEQUENCER_* environment variables, in increasing precedence.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"sequencer/jobs/broadcaster"
	"sequencer/service"
)

const EnvPrefix = "SEQUENCER"

const (
	EnginePebble = "pebble"
	EngineMemory = "memory"

	DriverSarama  = "sarama"
	DriverKafkaGo = "kafka-go"
)

type Config struct {
	CommitDelayMs            uint64 `mapstructure:"commit_delay_ms" validate:"gt=0"`
	MaxPreBlockTxsCount      int    `mapstructure:"max_pre_block_txs_count" validate:"gt=0"`
	MaxPreBlockTxsSize       int    `mapstructure:"max_pre_block_txs_size" validate:"gt=0"`
	PreBlocksChannelCapacity int    `mapstructure:"pre_blocks_channel_capacity" validate:"gt=0"`
	MempoolChannelCapacity   int    `mapstructure:"mempool_channel_capacity" validate:"gt=0"`

	RPCAddr       string `mapstructure:"rpc_addr" validate:"required,hostname_port"`
	VerifyOnStart bool   `mapstructure:"verify_on_start"`

	// ShutdownTimeout bounds the graceful drain of open RPCs after the
	// runner stops. Calls still open after it are cut.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	Storage   Storage   `mapstructure:"storage"`
	Log       Log       `mapstructure:"log"`
	Metrics   Metrics   `mapstructure:"metrics"`
	Broadcast Broadcast `mapstructure:"broadcast"`
}

type Storage struct {
	Engine string `mapstructure:"engine" validate:"oneof=pebble memory"`
	Dir    string `mapstructure:"dir" validate:"required_if=Engine pebble"`
}

type Log struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

type Metrics struct {
	// Addr is where /metrics is served. Empty disables the endpoint.
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
}

type Broadcast struct {
	Enabled  bool          `mapstructure:"enabled"`
	Driver   string        `mapstructure:"driver" validate:"oneof=sarama kafka-go"`
	Brokers  []string      `mapstructure:"brokers" validate:"required_if=Enabled true,dive,hostname_port"`
	Topic    string        `mapstructure:"topic" validate:"required"`
	Interval time.Duration `mapstructure:"interval" validate:"gt=0"`
	Batch    int           `mapstructure:"batch" validate:"gt=0"`
}

// SetDefaults registers every key with its default, which also makes each
// key visible to environment lookup.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("commit_delay_ms", uint64(service.DefaultCommitDelay/time.Millisecond))
	v.SetDefault("max_pre_block_txs_count", service.DefaultMaxTxsCount)
	v.SetDefault("max_pre_block_txs_size", service.DefaultMaxTxsSize)
	v.SetDefault("pre_blocks_channel_capacity", service.DefaultFeedCapacity)
	v.SetDefault("mempool_channel_capacity", service.DefaultMempoolCapacity)
	v.SetDefault("rpc_addr", "127.0.0.1:8998")
	v.SetDefault("verify_on_start", false)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetDefault("storage.engine", EnginePebble)
	v.SetDefault("storage.dir", "./data")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("metrics.addr", "127.0.0.1:9898")

	v.SetDefault("broadcast.enabled", false)
	v.SetDefault("broadcast.driver", DriverSarama)
	v.SetDefault("broadcast.brokers", []string{"localhost:9092"})
	v.SetDefault("broadcast.topic", "pre-blocks")
	v.SetDefault("broadcast.interval", 250*time.Millisecond)
	v.SetDefault("broadcast.batch", 256)
}

// Load reads configuration into a fresh struct and validates it. file may be
// empty; its format follows its extension.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", file)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func (c Config) CommitDelay() time.Duration {
	return time.Duration(c.CommitDelayMs) * time.Millisecond
}

// Service returns the runner settings.
func (c Config) Service() service.Config {
	return service.Config{
		CommitDelay:     c.CommitDelay(),
		MaxTxsCount:     c.MaxPreBlockTxsCount,
		MaxTxsSize:      c.MaxPreBlockTxsSize,
		FeedCapacity:    c.PreBlocksChannelCapacity,
		MempoolCapacity: c.MempoolChannelCapacity,
	}
}

// Mirror returns the Kafka mirror settings.
func (c Config) Mirror() broadcaster.Config {
	return broadcaster.Config{
		Name:     c.Broadcast.Topic,
		Interval: c.Broadcast.Interval,
		Batch:    c.Broadcast.Batch,
	}
}
