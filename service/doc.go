// Package service is the sequencing engine and its client facade.
//
// New wires one Runner and one Client over a shared ledger. The Runner is the
// only writer: it batches submitted transactions into pre-blocks on a timer,
// persists each one and then publishes it to every subscriber. Clients submit
// transactions, read the ledger, and follow the live feed; LiveQuery combines
// both into one gap-free stream for a subscriber.
package service
