package service

import (
	"time"

	"github.com/benbjohnson/clock"
)

const (
	DefaultCommitDelay     = 500 * time.Millisecond
	DefaultMaxTxsCount     = 200
	DefaultMaxTxsSize      = 86400
	DefaultFeedCapacity    = 128
	DefaultMempoolCapacity = 1024
)

// Config tunes the runner. Zero fields take their defaults.
type Config struct {
	// CommitDelay is the batching window.
	CommitDelay time.Duration

	// MaxTxsCount and MaxTxsSize are the per-window admission ceilings.
	MaxTxsCount int
	MaxTxsSize  int

	// FeedCapacity is how many undelivered pre-blocks a subscriber may fall
	// behind before it is told it lagged.
	FeedCapacity int

	// MempoolCapacity bounds the inbound queue; submitters block when full.
	MempoolCapacity int

	Clock clock.Clock
}

func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.CommitDelay <= 0 {
		c.CommitDelay = DefaultCommitDelay
	}
	if c.MaxTxsCount <= 0 {
		c.MaxTxsCount = DefaultMaxTxsCount
	}
	if c.MaxTxsSize <= 0 {
		c.MaxTxsSize = DefaultMaxTxsSize
	}
	if c.FeedCapacity <= 0 {
		c.FeedCapacity = DefaultFeedCapacity
	}
	if c.MempoolCapacity <= 0 {
		c.MempoolCapacity = DefaultMempoolCapacity
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	return c
}
