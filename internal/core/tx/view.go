package tx

import "nftswapd/internal/core/ledger/keylet"

// LedgerView provides read/write access to ledger state.
type LedgerView interface {
	// Read reads a serialized ledger entry. Returns nil without error if the
	// entry does not exist.
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists.
	Exists(k keylet.Keylet) (bool, error)

	// Insert adds a new entry.
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry.
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry.
	Erase(k keylet.Keylet) error

	// ForEach iterates over all state entries. If fn returns false,
	// iteration stops early.
	ForEach(fn func(key [32]byte, data []byte) bool) error
}
