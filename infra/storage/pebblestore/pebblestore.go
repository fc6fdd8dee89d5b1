// Package pebblestore is the durable storage backend. Scopes are key
// namespaces inside one pebble database; batches commit through pebble's
// write-ahead log and snapshots are pebble snapshots.
package pebblestore

import (
	"bytes"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"sequencer/infra/storage"
)

// Config configures a Store.
type Config struct {
	Dir string

	// FS overrides the filesystem, e.g. vfs.NewMem() in tests.
	FS vfs.FS

	// NoSync skips the fsync on commit. Committed batches are still atomic
	// but the most recent ones may be lost on power failure.
	NoSync bool
}

// Store is a pebble-backed storage.Backend.
type Store struct {
	db        *pebble.DB
	writeOpts *pebble.WriteOptions

	mu     sync.RWMutex
	closed bool
}

var _ storage.Backend = (*Store)(nil)

func Open(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("pebblestore: empty directory")
	}

	opts := &pebble.Options{
		DisableWAL: false, // commits must survive a crash
	}
	if cfg.FS != nil {
		opts.FS = cfg.FS
	}

	db, err := pebble.Open(cfg.Dir, opts)
	if err != nil {
		return nil, storage.Internal("pebble: open "+cfg.Dir, err)
	}

	wo := pebble.Sync
	if cfg.NoSync {
		wo = pebble.NoSync
	}
	return &Store{db: db, writeOpts: wo}, nil
}

func (s *Store) Snapshot(scopes ...string) (storage.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storage.ErrClosed
	}
	return &snapshot{snap: s.db.NewSnapshot(), scopes: storage.NewScopeSet(scopes...)}, nil
}

func (s *Store) Batch() storage.WriteBatch {
	return &batch{}
}

// Write replays the batch into a pebble batch and commits it in one shot.
func (s *Store) Write(wb storage.WriteBatch) error {
	b, ok := wb.(*batch)
	if !ok {
		return storage.ForeignBatch(wb)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return storage.ErrClosed
	}

	pb := s.db.NewBatch()
	defer pb.Close()

	for _, op := range b.ops {
		var err error
		if op.remove {
			err = pb.Delete(op.key, nil)
		} else {
			err = pb.Set(op.key, op.value, nil)
		}
		if err != nil {
			return storage.Internal("pebble: stage batch", err)
		}
	}

	if err := pb.Commit(s.writeOpts); err != nil {
		return storage.Internal("pebble: commit batch", err)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return storage.Internal("pebble: close", s.db.Close())
}

// -------------------- Snapshot --------------------

type snapshot struct {
	snap   *pebble.Snapshot
	scopes storage.ScopeSet
}

func (s *snapshot) Get(scope string, key []byte) ([]byte, bool, error) {
	if s.snap == nil {
		return nil, false, storage.ErrClosed
	}
	if !s.scopes.Has(scope) {
		return nil, false, storage.ScopeNotInSnapshot(scope)
	}

	val, closer, err := s.snap.Get(keyFor(scope, key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storage.Internal("pebble: get", err)
	}
	defer closer.Close()

	// val is only valid until closer.Close
	return bytes.Clone(val), true, nil
}

func (s *snapshot) Close() error {
	if s.snap == nil {
		return nil
	}
	err := s.snap.Close()
	s.snap = nil
	return storage.Internal("pebble: release snapshot", err)
}

// -------------------- Batch --------------------

type op struct {
	key    []byte
	value  []byte
	remove bool
}

type batch struct {
	ops []op
}

func (b *batch) Insert(scope string, key, value []byte) {
	b.ops = append(b.ops, op{key: keyFor(scope, key), value: bytes.Clone(value)})
}

func (b *batch) Remove(scope string, key []byte) {
	b.ops = append(b.ops, op{key: keyFor(scope, key), remove: true})
}

func (b *batch) Len() int {
	return len(b.ops)
}

// -------------------- Helpers --------------------

// keyFor namespaces key under scope: [len(scope):1][scope][key].
// The length prefix keeps one scope from being a prefix of another.
func keyFor(scope string, key []byte) []byte {
	if len(scope) > 0xff {
		panic("pebblestore: scope name longer than 255 bytes")
	}
	buf := make([]byte, 0, 1+len(scope)+len(key))
	buf = append(buf, byte(len(scope)))
	buf = append(buf, scope...)
	return append(buf, key...)
}
