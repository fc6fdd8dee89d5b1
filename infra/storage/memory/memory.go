// Package memory is a non-persistent storage backend for tests and local
// runs. All scopes live in one ordered tree guarded by a single lock;
// snapshots are copy-on-write copies of that tree, so readers never block
// the writer for longer than the copy itself.
package memory

import (
	"bytes"
	"sync"

	"github.com/tidwall/btree"

	"sequencer/infra/storage"
)

type entry struct {
	scope string
	key   []byte
	value []byte
}

func less(a, b entry) bool {
	if a.scope != b.scope {
		return a.scope < b.scope
	}
	return bytes.Compare(a.key, b.key) < 0
}

// Store is an in-memory storage.Backend.
type Store struct {
	mu     sync.RWMutex
	tree   *btree.BTreeG[entry]
	closed bool
}

var _ storage.Backend = (*Store)(nil)

func New() *Store {
	return &Store{tree: btree.NewBTreeG(less)}
}

// Snapshot copies the tree under the read lock. The copy is lazy; pages are
// cloned only when the writer later touches them.
func (s *Store) Snapshot(scopes ...string) (storage.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storage.ErrClosed
	}
	return &snapshot{tree: s.tree.Copy(), scopes: storage.NewScopeSet(scopes...)}, nil
}

func (s *Store) Batch() storage.WriteBatch {
	return &batch{}
}

func (s *Store) Write(wb storage.WriteBatch) error {
	b, ok := wb.(*batch)
	if !ok {
		return storage.ForeignBatch(wb)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrClosed
	}

	for _, op := range b.ops {
		if op.remove {
			s.tree.Delete(op.entry)
		} else {
			s.tree.Set(op.entry)
		}
	}
	return nil
}

// Len returns the number of stored keys across all scopes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Len()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type snapshot struct {
	tree   *btree.BTreeG[entry]
	scopes storage.ScopeSet
}

func (s *snapshot) Get(scope string, key []byte) ([]byte, bool, error) {
	if s.tree == nil {
		return nil, false, storage.ErrClosed
	}
	if !s.scopes.Has(scope) {
		return nil, false, storage.ScopeNotInSnapshot(scope)
	}
	e, ok := s.tree.Get(entry{scope: scope, key: key})
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(e.value), true, nil
}

func (s *snapshot) Close() error {
	s.tree = nil
	return nil
}

type op struct {
	entry  entry
	remove bool
}

type batch struct {
	ops []op
}

func (b *batch) Insert(scope string, key, value []byte) {
	b.ops = append(b.ops, op{entry: entry{
		scope: scope,
		key:   bytes.Clone(key),
		value: bytes.Clone(value),
	}})
}

func (b *batch) Remove(scope string, key []byte) {
	b.ops = append(b.ops, op{entry: entry{scope: scope, key: bytes.Clone(key)}, remove: true})
}

func (b *batch) Len() int {
	return len(b.ops)
}
