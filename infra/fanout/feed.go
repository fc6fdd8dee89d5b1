// Package fanout is a bounded, multi-subscriber broadcast ring.
//
// The publisher writes into one fixed-size ring; every subscriber holds only a
// cursor into it. Publishing never blocks: when a subscriber falls more than a
// ring's length behind, the entries it missed are overwritten and its next
// Recv reports a LaggedError. Delivery is order-preserving and at-most-once.
package fanout

import (
	"context"
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrClosed is returned by Recv once the feed is closed and the subscriber
// has drained everything still retained.
var ErrClosed = errors.New("feed closed")

// LaggedError reports entries a subscriber missed. The subscriber has been
// moved to the oldest retained entry.
type LaggedError struct {
	Skipped uint64
}

func (e *LaggedError) Error() string {
	return fmt.Sprintf("subscriber lagged behind by %d entries", e.Skipped)
}

// Feed is a broadcast ring of T.
type Feed[T any] struct {
	mu     sync.Mutex
	buf    []T
	head   uint64 // sequence number of the next published entry
	closed bool
	notify chan struct{}
}

// New creates a feed retaining up to capacity entries.
func New[T any](capacity int) *Feed[T] {
	if capacity <= 0 {
		panic("fanout: capacity must be positive")
	}
	return &Feed[T]{
		buf:    make([]T, capacity),
		notify: make(chan struct{}),
	}
}

// Publish appends v and wakes every waiting subscriber. Publishing to a
// closed feed is a no-op and returns false.
func (f *Feed[T]) Publish(v T) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.buf[f.head%uint64(len(f.buf))] = v
	f.head++
	f.wakeLocked()
	return true
}

// Close stops the feed. Subscribers still receive what is retained, then ErrClosed.
func (f *Feed[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.wakeLocked()
}

func (f *Feed[T]) wakeLocked() {
	close(f.notify)
	f.notify = make(chan struct{})
}

// Subscribe returns a subscriber positioned at "now": it receives only
// entries published after this call.
func (f *Feed[T]) Subscribe() *Subscription[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &Subscription[T]{feed: f, cursor: f.head}
}

// Subscription is one consumer's cursor. It is not safe for concurrent use.
type Subscription[T any] struct {
	feed   *Feed[T]
	cursor uint64
}

// Recv returns the next entry, blocking until one is published, the feed is
// closed or ctx is done.
func (s *Subscription[T]) Recv(ctx context.Context) (T, error) {
	f := s.feed
	for {
		f.mu.Lock()
		if s.cursor < f.head {
			oldest := uint64(0)
			if n := uint64(len(f.buf)); f.head > n {
				oldest = f.head - n
			}
			if s.cursor < oldest {
				skipped := oldest - s.cursor
				s.cursor = oldest
				f.mu.Unlock()
				var zero T
				return zero, &LaggedError{Skipped: skipped}
			}

			v := f.buf[s.cursor%uint64(len(f.buf))]
			s.cursor++
			f.mu.Unlock()
			return v, nil
		}
		if f.closed {
			f.mu.Unlock()
			var zero T
			return zero, ErrClosed
		}
		wait := f.notify
		f.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Reset moves the cursor to "now", dropping any backlog.
func (s *Subscription[T]) Reset() {
	s.feed.mu.Lock()
	defer s.feed.mu.Unlock()
	s.cursor = s.feed.head
}

// Pending returns how many retained entries the subscriber has not read yet.
func (s *Subscription[T]) Pending() int {
	s.feed.mu.Lock()
	defer s.feed.mu.Unlock()
	n := s.feed.head - s.cursor
	if c := uint64(len(s.feed.buf)); n > c {
		n = c
	}
	return int(n)
}
