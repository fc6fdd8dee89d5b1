// Package codec is the deterministic binary encoding of pre-blocks, shared by
// the ledger and the RPC wire. The layout is protobuf-compatible:
//
//	message PreBlockHeader { uint64 id = 1; int64 timestamp_unix_nano = 2; }
//	message PreBlock { PreBlockHeader header = 1; repeated bytes transactions = 2; }
//
// Fields are always written in field-number order and defaults are omitted,
// so equal values always encode to equal bytes.
package codec

import (
	"time"

	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"sequencer/domain/preblock"
)

// ErrMalformed is wrapped by every decode failure.
var ErrMalformed = errors.New("malformed encoding")

const (
	headerID        protowire.Number = 1
	headerTimestamp protowire.Number = 2

	preBlockHeader       protowire.Number = 1
	preBlockTransactions protowire.Number = 2
)

// AppendHeader appends the encoding of h to b.
func AppendHeader(b []byte, h preblock.Header) []byte {
	if h.ID != 0 {
		b = protowire.AppendTag(b, headerID, protowire.VarintType)
		b = protowire.AppendVarint(b, h.ID)
	}
	if !h.Timestamp.IsZero() {
		b = protowire.AppendTag(b, headerTimestamp, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(h.Timestamp.UnixNano()))
	}
	return b
}

func MarshalHeader(h preblock.Header) []byte {
	return AppendHeader(nil, h)
}

func UnmarshalHeader(b []byte) (preblock.Header, error) {
	var h preblock.Header
	err := WalkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == headerID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			h.ID = v
			return n, nil
		case num == headerTimestamp && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			h.Timestamp = time.Unix(0, int64(v)).UTC()
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return preblock.Header{}, errors.Wrap(err, "decode pre-block header")
	}
	return h, nil
}

// AppendPreBlock appends the encoding of p to b.
func AppendPreBlock(b []byte, p preblock.PreBlock) []byte {
	if hdr := MarshalHeader(p.Header); len(hdr) > 0 {
		b = protowire.AppendTag(b, preBlockHeader, protowire.BytesType)
		b = protowire.AppendBytes(b, hdr)
	}
	for _, tx := range p.Transactions {
		b = protowire.AppendTag(b, preBlockTransactions, protowire.BytesType)
		b = protowire.AppendBytes(b, tx)
	}
	return b
}

func MarshalPreBlock(p preblock.PreBlock) []byte {
	return AppendPreBlock(make([]byte, 0, 16+p.Size()+4*len(p.Transactions)), p)
}

func UnmarshalPreBlock(b []byte) (preblock.PreBlock, error) {
	var p preblock.PreBlock
	err := WalkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType || (num != preBlockHeader && num != preBlockTransactions) {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n, nil
		}
		if num == preBlockHeader {
			h, err := UnmarshalHeader(v)
			if err != nil {
				return 0, err
			}
			p.Header = h
		} else {
			p.Transactions = append(p.Transactions, preblock.Transaction(append([]byte{}, v...)))
		}
		return n, nil
	})
	if err != nil {
		return preblock.PreBlock{}, errors.Wrap(err, "decode pre-block")
	}
	return p, nil
}

// WalkFields calls fn for every field in b. fn consumes the field value and
// returns its length, or a negative protowire error code.
func WalkFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Wrapf(ErrMalformed, "%v", protowire.ParseError(n))
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			return errors.Wrapf(ErrMalformed, "%v", protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}
