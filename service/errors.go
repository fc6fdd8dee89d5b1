package service

import (
	"github.com/cockroachdb/errors"

	"sequencer/infra/fanout"
	"sequencer/ledger"
)

var (
	// ErrNotFound is returned by GetHead on an empty ledger.
	ErrNotFound = errors.New("not found")

	// ErrShutdownInProgress means the runner has stopped; retry against a
	// restarted process.
	ErrShutdownInProgress = errors.New("shutdown in progress")

	// ErrNonSequential terminates a live query that observed a gap.
	ErrNonSequential = errors.New("non-sequential pre-block stream")

	// ErrPreBlockNotFound is returned by GetPreBlocks on an empty ledger.
	ErrPreBlockNotFound = ledger.ErrPreBlockNotFound
)

// LaggedError is returned by NextPreBlock when the subscriber was overrun.
// Pre-blocks were skipped; recover them with GetPreBlocks.
type LaggedError = fanout.LaggedError
