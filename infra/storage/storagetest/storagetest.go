// Package storagetest is a conformance suite for storage.Backend
// implementations.
package storagetest

import (
	"encoding/binary"
	"fmt"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"sequencer/infra/storage"
)

// Opener opens a backend. Calling it again after the previous backend was
// closed must return a backend over the same data if the backend is durable.
type Opener = func(t testing.TB) storage.Backend

// Options tunes which tests apply to a backend.
type Options struct {
	// Durable backends retain data across Close and a fresh Opener call.
	Durable bool
}

// Run runs every conformance test against the backend.
func Run(t *testing.T, open Opener, opts Options) {
	t.Run("RoundTrip", func(t *testing.T) { TestRoundTrip(t, open) })
	t.Run("ScopeIsolation", func(t *testing.T) { TestScopeIsolation(t, open) })
	t.Run("Remove", func(t *testing.T) { TestRemove(t, open) })
	t.Run("LastOpWins", func(t *testing.T) { TestLastOpWins(t, open) })
	t.Run("InsertCopies", func(t *testing.T) { TestInsertCopies(t, open) })
	t.Run("SnapshotIsolation", func(t *testing.T) { TestSnapshotIsolation(t, open) })
	t.Run("RestrictedScopes", func(t *testing.T) { TestRestrictedScopes(t, open) })
	t.Run("ForeignBatch", func(t *testing.T) { TestForeignBatch(t, open) })
	t.Run("AtomicVisibility", func(t *testing.T) { TestAtomicVisibility(t, open) })
	t.Run("Closed", func(t *testing.T) { TestClosed(t, open) })
	if opts.Durable {
		t.Run("Reopen", func(t *testing.T) { TestReopen(t, open) })
	}
}

func openBackend(t testing.TB, open Opener) storage.Backend {
	b := open(t)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func get(t testing.TB, b storage.Backend, scope string, key []byte) ([]byte, bool) {
	snap, err := b.Snapshot(scope)
	require.NoError(t, err)
	defer snap.Close()
	v, ok, err := snap.Get(scope, key)
	require.NoError(t, err)
	return v, ok
}

// TestInsertCopies checks the batch owns what it was given.
func TestInsertCopies(t *testing.T, open Opener) {
	db := openBackend(t, open)

	key := []byte("key")
	value := []byte("original")
	batch := db.Batch()
	batch.Insert("scope", key, value)
	copy(key, "KEY")
	copy(value, "mutated!")
	require.NoError(t, db.Write(batch))

	v, ok := get(t, db, "scope", []byte("key"))
	require.True(t, ok)
	require.Equal(t, "original", string(v))
}

func TestRoundTrip(t *testing.T, open Opener) {
	const N = 1000
	db := openBackend(t, open)

	// Read when nothing exists
	_, ok := get(t, db, "answer", []byte("0"))
	require.False(t, ok)

	batch := db.Batch()
	for i := 0; i < N; i++ {
		batch.Insert("answer", []byte(fmt.Sprint(i)), []byte(fmt.Sprintf("%x this much data", i)))
	}
	require.Equal(t, N, batch.Len())
	require.NoError(t, db.Write(batch))

	snap, err := db.Snapshot("answer")
	require.NoError(t, err)
	defer snap.Close()
	for i := 0; i < N; i++ {
		v, ok, err := snap.Get("answer", []byte(fmt.Sprint(i)))
		require.NoError(t, err)
		require.True(t, ok, "key %d", i)
		require.Equal(t, fmt.Sprintf("%x this much data", i), string(v))
	}
}

func TestScopeIsolation(t *testing.T, open Opener) {
	db := openBackend(t, open)

	batch := db.Batch()
	batch.Insert("a", []byte("key"), []byte("in a"))
	batch.Insert("ab", []byte("key"), []byte("in ab"))
	batch.Insert("a", []byte("bkey"), []byte("in a, bkey"))
	require.NoError(t, db.Write(batch))

	v, ok := get(t, db, "a", []byte("key"))
	require.True(t, ok)
	require.Equal(t, "in a", string(v))

	v, ok = get(t, db, "ab", []byte("key"))
	require.True(t, ok)
	require.Equal(t, "in ab", string(v))

	_, ok = get(t, db, "b", []byte("key"))
	require.False(t, ok)
}

func TestRemove(t *testing.T, open Opener) {
	db := openBackend(t, open)

	batch := db.Batch()
	batch.Insert("foo", []byte("bar"), []byte("baz"))
	require.NoError(t, db.Write(batch))

	batch = db.Batch()
	batch.Remove("foo", []byte("bar"))
	require.NoError(t, db.Write(batch))

	_, ok := get(t, db, "foo", []byte("bar"))
	require.False(t, ok)

	// Removing a missing key is not an error
	batch = db.Batch()
	batch.Remove("foo", []byte("missing"))
	require.NoError(t, db.Write(batch))
}

func TestLastOpWins(t *testing.T, open Opener) {
	db := openBackend(t, open)

	batch := db.Batch()
	batch.Insert("s", []byte("k1"), []byte("first"))
	batch.Insert("s", []byte("k1"), []byte("second"))
	batch.Insert("s", []byte("k2"), []byte("kept"))
	batch.Remove("s", []byte("k2"))
	batch.Remove("s", []byte("k3"))
	batch.Insert("s", []byte("k3"), []byte("revived"))
	require.NoError(t, db.Write(batch))

	v, ok := get(t, db, "s", []byte("k1"))
	require.True(t, ok)
	require.Equal(t, "second", string(v))

	_, ok = get(t, db, "s", []byte("k2"))
	require.False(t, ok)

	v, ok = get(t, db, "s", []byte("k3"))
	require.True(t, ok)
	require.Equal(t, "revived", string(v))
}

func TestSnapshotIsolation(t *testing.T, open Opener) {
	db := openBackend(t, open)

	batch := db.Batch()
	batch.Insert("s", []byte("key"), []byte("value"))
	require.NoError(t, db.Write(batch))

	snap, err := db.Snapshot("s")
	require.NoError(t, err)
	defer snap.Close()

	batch = db.Batch()
	batch.Remove("s", []byte("key"))
	batch.Insert("s", []byte("new"), []byte("value"))
	require.NoError(t, db.Write(batch))

	// The old snapshot does not see the change
	v, ok, err := snap.Get("s", []byte("key"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "value", string(v))
	_, ok, err = snap.Get("s", []byte("new"))
	require.NoError(t, err)
	require.False(t, ok)

	// A new one does
	_, ok = get(t, db, "s", []byte("key"))
	require.False(t, ok)
	_, ok = get(t, db, "s", []byte("new"))
	require.True(t, ok)
}

func TestRestrictedScopes(t *testing.T, open Opener) {
	db := openBackend(t, open)

	snap, err := db.Snapshot("allowed")
	require.NoError(t, err)
	defer snap.Close()

	_, _, err = snap.Get("other", []byte("key"))
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrStorage)
}

type foreignBatch struct{}

func (foreignBatch) Insert(string, []byte, []byte) {}
func (foreignBatch) Remove(string, []byte)         {}
func (foreignBatch) Len() int                      { return 0 }

func TestForeignBatch(t *testing.T, open Opener) {
	db := openBackend(t, open)
	err := db.Write(foreignBatch{})
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrStorage)
}

// TestAtomicVisibility writes pairs of keys in one batch while readers check
// that no snapshot ever sees one half of a pair without the other.
func TestAtomicVisibility(t *testing.T, open Opener) {
	const N = 300
	db := openBackend(t, open)

	u64 := func(v uint64) []byte {
		return binary.BigEndian.AppendUint64(nil, v)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	errs := make(chan error, 4)

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if err := checkPairs(db, u64); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	for i := uint64(0); i < N; i++ {
		batch := db.Batch()
		batch.Insert("body", u64(i), u64(i))
		batch.Insert("ptr", []byte{0}, u64(i))
		require.NoError(t, db.Write(batch))
	}
	close(done)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func checkPairs(db storage.Backend, u64 func(uint64) []byte) error {
	snap, err := db.Snapshot("body", "ptr")
	if err != nil {
		return err
	}
	defer snap.Close()

	ptr, ok, err := snap.Get("ptr", []byte{0})
	if err != nil || !ok {
		return err
	}
	head := binary.BigEndian.Uint64(ptr)

	if _, ok, err := snap.Get("body", u64(head)); err != nil || !ok {
		return errors.Newf("pointer %d visible without its body (err=%v)", head, err)
	}
	if _, ok, err := snap.Get("body", u64(head+1)); err != nil || ok {
		return errors.Newf("body %d visible before its pointer (err=%v)", head+1, err)
	}
	return nil
}

func TestClosed(t *testing.T, open Opener) {
	db := open(t)
	require.NoError(t, db.Close())

	_, err := db.Snapshot("s")
	require.ErrorIs(t, err, storage.ErrStorage)

	err = db.Write(db.Batch())
	require.ErrorIs(t, err, storage.ErrStorage)
}

func TestReopen(t *testing.T, open Opener) {
	db := open(t)
	batch := db.Batch()
	batch.Insert("s", []byte("key"), []byte("value"))
	require.NoError(t, db.Write(batch))
	require.NoError(t, db.Close())

	db = openBackend(t, open)
	v, ok := get(t, db, "s", []byte("key"))
	require.True(t, ok)
	require.Equal(t, "value", string(v))
}
