// Package storage defines the key-value contract every ledger backend
// implements: point-in-time snapshots over named scopes and atomic write
// batches.
//
// The contract is shaped for a single writer and many concurrent readers.
// Backends apply a batch all-or-nothing, and a snapshot taken after Write
// returns either reflects the whole batch or none of it.
package storage

import (
	"github.com/cockroachdb/errors"
)

// ErrStorage is wrapped by every failure coming out of a backend. Engine
// errors are reduced to their message so callers cannot depend on
// engine-specific types.
var ErrStorage = errors.New("storage failure")

// ErrClosed is returned by a backend after Close.
var ErrClosed = errors.Wrap(ErrStorage, "backend closed")

// Backend is an atomic key-value store partitioned into scopes.
type Backend interface {
	// Snapshot opens a read view restricted to the given scopes. The caller
	// must Close it.
	Snapshot(scopes ...string) (Snapshot, error)

	// Batch starts an empty write batch bound to this backend.
	Batch() WriteBatch

	// Write commits the batch atomically.
	Write(b WriteBatch) error

	Close() error
}

// Snapshot is a consistent, point-in-time view.
type Snapshot interface {
	// Get returns the value stored under key, or found=false if none.
	Get(scope string, key []byte) (value []byte, found bool, err error)

	Close() error
}

// WriteBatch accumulates mutations. Operations apply in the order they were
// added; nothing is visible until Backend.Write returns. Insert and Remove
// copy their arguments.
type WriteBatch interface {
	Insert(scope string, key, value []byte)
	Remove(scope string, key []byte)
	Len() int
}

// Internal converts an engine error into a storage error. The engine error is
// kept only for its message and safe details.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	return errors.WithSecondaryError(errors.Wrapf(ErrStorage, "%s: %s", op, err.Error()), errors.Handled(err))
}

// ScopeNotInSnapshot reports a read from a scope the snapshot was not opened for.
func ScopeNotInSnapshot(scope string) error {
	return errors.Wrapf(ErrStorage, "scope %q is not part of this snapshot", scope)
}

// ForeignBatch reports a batch created by another backend.
func ForeignBatch(b WriteBatch) error {
	return errors.Wrapf(ErrStorage, "batch of type %T does not belong to this backend", b)
}

// ScopeSet is a set of scope names.
type ScopeSet map[string]struct{}

// NewScopeSet builds a set from scope names.
func NewScopeSet(scopes ...string) ScopeSet {
	s := make(ScopeSet, len(scopes))
	for _, scope := range scopes {
		s[scope] = struct{}{}
	}
	return s
}

// Has reports whether scope is in the set.
func (s ScopeSet) Has(scope string) bool {
	_, ok := s[scope]
	return ok
}
