// Package ledger is the typed pre-block ledger on top of a storage backend:
// the committed pre-block sequence and the head pointer to its last element.
//
// UpdateHead is the only mutation. It writes a pre-block and the head record
// in one batch, so no reader can see one without the other.
package ledger

import (
	"context"
	"encoding/binary"

	"github.com/cockroachdb/errors"

	"sequencer/domain/preblock"
	"sequencer/infra/codec"
	"sequencer/infra/pool"
	"sequencer/infra/storage"
)

const (
	PreBlocksScope = "pre_blocks"
	HeadScope      = "head"
)

var headKey = []byte{0}

// Encode buffers. Backends copy on Insert, so a buffer is free once staged.
var buffers = pool.NewBuffers(4<<10, 1<<20)

var (
	// ErrMissingHead means nothing was ever committed. It is expected on a
	// fresh ledger.
	ErrMissingHead = errors.New("pre-block head is missing")

	// ErrPreBlockNotFound means the requested starting pre-block does not exist.
	ErrPreBlockNotFound = errors.New("pre-block not found")

	// ErrCorrupt is matched by errors for stored data that fails to decode or
	// verify. Such errors still unwrap to their cause.
	ErrCorrupt = errors.New("ledger data is corrupt")
)

// State gives typed access to the ledger. It is cheap to copy and safe for
// concurrent use; all synchronization is the backend's.
type State struct {
	storage storage.Backend
}

func New(backend storage.Backend) *State {
	return &State{storage: backend}
}

// Key encodes a pre-block id as its storage key.
func Key(id uint64) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, 8), id)
}

func notFound(id uint64) error {
	return errors.Wrapf(ErrPreBlockNotFound, "pre-block %d", id)
}

// corruptError adds ErrCorrupt to the classes of its cause.
type corruptError struct {
	cause error
}

func (e *corruptError) Error() string { return e.cause.Error() }

func (e *corruptError) Unwrap() error { return e.cause }

func (e *corruptError) Is(target error) bool { return target == ErrCorrupt }

func corrupt(err error, format string, args ...any) error {
	return &corruptError{cause: errors.Wrapf(err, format, args...)}
}

// hole reports an id missing below the head.
func hole(id uint64) error {
	return &corruptError{cause: notFound(id)}
}

// GetHead returns the header of the highest committed pre-block.
func (s *State) GetHead() (preblock.Header, error) {
	snap, err := s.storage.Snapshot(HeadScope)
	if err != nil {
		return preblock.Header{}, err
	}
	defer snap.Close()

	return readHead(snap)
}

func readHead(snap storage.Snapshot) (preblock.Header, error) {
	frame, ok, err := snap.Get(HeadScope, headKey)
	if err != nil {
		return preblock.Header{}, err
	}
	if !ok {
		return preblock.Header{}, ErrMissingHead
	}

	payload, err := codec.Open(frame)
	if err != nil {
		return preblock.Header{}, corrupt(err, "head record")
	}
	h, err := codec.UnmarshalHeader(payload)
	if err != nil {
		return preblock.Header{}, corrupt(err, "head record")
	}
	return h, nil
}

func readPreBlock(snap storage.Snapshot, id uint64) (preblock.PreBlock, bool, error) {
	frame, ok, err := snap.Get(PreBlocksScope, Key(id))
	if err != nil || !ok {
		return preblock.PreBlock{}, false, err
	}

	payload, err := codec.Open(frame)
	if err != nil {
		return preblock.PreBlock{}, false, corrupt(err, "pre-block %d", id)
	}
	p, err := codec.UnmarshalPreBlock(payload)
	if err != nil {
		return preblock.PreBlock{}, false, corrupt(err, "pre-block %d", id)
	}
	if p.Header.ID != id {
		return preblock.PreBlock{}, false, errors.Wrapf(ErrCorrupt,
			"pre-block stored under %d carries id %d", id, p.Header.ID)
	}
	return p, true, nil
}

// GetPreBlocks returns up to maxCount contiguous pre-blocks starting at
// fromID, stopping at the first missing id.
//
// A missing fromID is ErrPreBlockNotFound on an empty ledger, and an empty
// result when fromID lies beyond the head: a reader that is caught up simply
// gets nothing new.
func (s *State) GetPreBlocks(fromID uint64, maxCount int) ([]preblock.PreBlock, error) {
	if maxCount <= 0 {
		return nil, nil
	}

	snap, err := s.storage.Snapshot(PreBlocksScope, HeadScope)
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	res := make([]preblock.PreBlock, 0, min(maxCount, 64))
	for id := fromID; len(res) < maxCount; id++ {
		p, ok, err := readPreBlock(snap, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		res = append(res, p)
	}
	if len(res) > 0 {
		return res, nil
	}

	head, err := readHead(snap)
	switch {
	case errors.Is(err, ErrMissingHead):
		return nil, notFound(fromID)
	case err != nil:
		return nil, err
	case fromID > head.ID:
		return res, nil
	default:
		// Below the head nothing may be missing
		return nil, hole(fromID)
	}
}

// UpdateHead commits p and moves the head to it, atomically.
func (s *State) UpdateHead(p preblock.PreBlock) error {
	buf := buffers.Get()
	defer buffers.Put(buf)

	batch := s.storage.Batch()
	*buf = codec.AppendChecksum(codec.AppendPreBlock(*buf, p))
	batch.Insert(PreBlocksScope, Key(p.Header.ID), *buf)
	*buf = codec.AppendChecksum(codec.AppendHeader((*buf)[:0], p.Header))
	batch.Insert(HeadScope, headKey, *buf)

	if err := s.storage.Write(batch); err != nil {
		return errors.Wrapf(err, "commit pre-block %d", p.Header.ID)
	}
	return nil
}

// Verify walks the whole ledger and checks that every id from 0 to the head
// is present, intact and stored under its own id. It returns the head, or
// ErrMissingHead for an empty ledger.
func (s *State) Verify(ctx context.Context) (preblock.Header, error) {
	snap, err := s.storage.Snapshot(PreBlocksScope, HeadScope)
	if err != nil {
		return preblock.Header{}, err
	}
	defer snap.Close()

	head, err := readHead(snap)
	if err != nil {
		return preblock.Header{}, err
	}

	for id := uint64(0); id <= head.ID; id++ {
		if id%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return preblock.Header{}, err
			}
		}
		_, ok, err := readPreBlock(snap, id)
		if err != nil {
			return preblock.Header{}, err
		}
		if !ok {
			return preblock.Header{}, hole(id)
		}
	}

	if _, ok, err := readPreBlock(snap, head.ID+1); err != nil {
		return preblock.Header{}, err
	} else if ok {
		return preblock.Header{}, errors.Wrapf(ErrCorrupt,
			"pre-block %d exists beyond head %d", head.ID+1, head.ID)
	}
	return head, nil
}
