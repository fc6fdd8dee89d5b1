// Package preblock holds the value types produced by the sequencer: opaque
// transactions and the time-boxed, strictly ordered batches built from them.
package preblock

import "time"

// Transaction is an opaque payload. The sequencer never looks inside it.
type Transaction []byte

// Size is the byte cost counted against a pre-block's size budget.
func (t Transaction) Size() int {
	return len(t)
}

// Header identifies a pre-block. IDs start at 0 and grow by exactly one.
type Header struct {
	ID        uint64
	Timestamp time.Time
}

// PreBlock is an immutable batch of transactions in submission order.
type PreBlock struct {
	Header       Header
	Transactions []Transaction
}

// Size returns the cumulative size of all transactions.
func (p PreBlock) Size() int {
	n := 0
	for _, tx := range p.Transactions {
		n += tx.Size()
	}
	return n
}
