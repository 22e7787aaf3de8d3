// Package entries contains the concrete ledger entry types.
package entries

import (
	"encoding/binary"
)

// BaseEntry contains fields common to all entries.
type BaseEntry struct {
	// PreviousTxnID is the hash of the transaction that last touched this
	// entry; PreviousTxnSeq is the ledger sequence it was applied in.
	PreviousTxnID  [32]byte
	PreviousTxnSeq uint32
	Flags          uint32
}

// Thread records the transaction that is modifying this entry.
func (b *BaseEntry) Thread(txHash [32]byte, seq uint32) {
	b.PreviousTxnID = txHash
	b.PreviousTxnSeq = seq
}

// Hash mixes the base fields into a 32-byte digest seed.
func (b *BaseEntry) Hash() [32]byte {
	var result [32]byte
	binary.BigEndian.PutUint32(result[:4], b.PreviousTxnSeq)
	binary.BigEndian.PutUint32(result[4:8], b.Flags)
	copy(result[8:], b.PreviousTxnID[:8])
	return result
}
