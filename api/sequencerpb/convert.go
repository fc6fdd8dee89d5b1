// Package sequencerpb holds the protobuf bindings generated from
// api/proto/sequencer.proto and their conversions to domain types.
//
// PreBlock shares its field layout with the ledger codec, so a stored
// pre-block parses as a PreBlock message unchanged.
package sequencerpb

//go:generate protoc -I ../proto --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative sequencer.proto

import (
	"time"

	"sequencer/domain/preblock"
)

func FromHeader(h preblock.Header) *PreBlockHeader {
	m := &PreBlockHeader{Id: h.ID}
	if !h.Timestamp.IsZero() {
		m.TimestampUnixNano = h.Timestamp.UnixNano()
	}
	return m
}

func (x *PreBlockHeader) ToHeader() preblock.Header {
	h := preblock.Header{ID: x.GetId()}
	if ns := x.GetTimestampUnixNano(); ns != 0 {
		h.Timestamp = time.Unix(0, ns).UTC()
	}
	return h
}

// FromPreBlock converts p without copying transaction bytes. A zero header is
// left unset, as the ledger codec does.
func FromPreBlock(p preblock.PreBlock) *PreBlock {
	m := &PreBlock{}
	if !p.Header.Timestamp.IsZero() || p.Header.ID != 0 {
		m.Header = FromHeader(p.Header)
	}
	if len(p.Transactions) > 0 {
		m.Transactions = make([][]byte, len(p.Transactions))
		for i, tx := range p.Transactions {
			m.Transactions[i] = tx
		}
	}
	return m
}

func (x *PreBlock) ToPreBlock() preblock.PreBlock {
	p := preblock.PreBlock{Header: x.GetHeader().ToHeader()}
	if txs := x.GetTransactions(); len(txs) > 0 {
		p.Transactions = make([]preblock.Transaction, len(txs))
		for i, tx := range txs {
			p.Transactions[i] = tx
		}
	}
	return p
}

func FromPreBlocks(ps []preblock.PreBlock) *PreBlockList {
	m := &PreBlockList{PreBlocks: make([]*PreBlock, len(ps))}
	for i, p := range ps {
		m.PreBlocks[i] = FromPreBlock(p)
	}
	return m
}

func (x *PreBlockList) ToPreBlocks() []preblock.PreBlock {
	msgs := x.GetPreBlocks()
	if len(msgs) == 0 {
		return nil
	}
	out := make([]preblock.PreBlock, len(msgs))
	for i, m := range msgs {
		out[i] = m.ToPreBlock()
	}
	return out
}
