package sequence

import "sync/atomic"

// Sequencer hands out strictly monotonic pre-block IDs.
// Only the runner advances it; anyone may read it.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer whose next ID is start.
// On an empty ledger start = 0; otherwise start = head + 1.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the ID the next pre-block will carry.
func (s *Sequencer) Next() uint64 {
	return s.next.Load()
}

// Advance consumes the current ID. Call it only once the pre-block carrying
// it is committed.
func (s *Sequencer) Advance() uint64 {
	return s.next.Add(1)
}
