// Package header holds the per-ledger metadata carried alongside the state
// map.
package header

import (
	"time"
)

// Header describes one closed (or open) ledger.
type Header struct {
	// Sequence is the ledger index, starting at 1 for genesis.
	Sequence uint32

	// ParentHash is the state hash of the previous ledger, zero for genesis.
	ParentHash [32]byte

	// StateHash commits to the full entry map at close time.
	StateHash [32]byte

	// TxCount is the number of transactions applied in this ledger.
	TxCount uint32

	// CloseTime is when the ledger closed. Zero for the open ledger.
	CloseTime time.Time

	Closed bool
}

// Next returns the open header following a closed one.
func (h Header) Next() Header {
	return Header{
		Sequence:   h.Sequence + 1,
		ParentHash: h.StateHash,
	}
}
