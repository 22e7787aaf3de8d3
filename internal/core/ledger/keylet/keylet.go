// Package keylet derives the 256-bit state keys under which ledger entries
// are stored. Each entry family has its own space identifier, so keys from
// different families cannot collide even for identical inputs.
package keylet

import (
	"crypto/sha256"
	"encoding/binary"

	"nftswapd/internal/core/ledger/entry"
)

// Space identifiers for keylet generation.
const (
	spaceAccount        uint16 = 'a' // Account root
	spaceItemOwnership  uint16 = 'n' // Item ownership
	spacePool           uint16 = 'A' // Pool
	spaceSharePosition  uint16 = 'L' // Liquidity share position
	spaceRoyaltyTable   uint16 = 'R' // Royalty table
	spacePendingRoyalty uint16 = 'P' // Pending royalty balance
)

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
// Variable-length string inputs are length-prefixed so that adjacent fields
// cannot alias each other ("ab"+"c" vs "a"+"bc").
func indexHash(space uint16, fields ...string) [32]byte {
	h := sha256.New()

	var buf [8]byte
	binary.BigEndian.PutUint16(buf[:2], space)
	h.Write(buf[:2])

	for _, f := range fields {
		binary.BigEndian.PutUint32(buf[:4], uint32(len(f)))
		h.Write(buf[:4])
		h.Write([]byte(f))
	}

	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

// Account returns the keylet for an account root entry.
func Account(account string) Keylet {
	return Keylet{
		Type: entry.TypeAccountRoot,
		Key:  indexHash(spaceAccount, account),
	}
}

// Pool returns the keylet for the pool of a (collection, currency) pair.
// There is at most one pool per pair.
func Pool(collection, currency string) Keylet {
	return Keylet{
		Type: entry.TypePool,
		Key:  indexHash(spacePool, collection, currency),
	}
}

// SharePosition returns the keylet for a provider's share position in the
// (collection, currency) pool.
func SharePosition(collection, currency, provider string) Keylet {
	return Keylet{
		Type: entry.TypeSharePosition,
		Key:  indexHash(spaceSharePosition, collection, currency, provider),
	}
}

// RoyaltyTable returns the keylet for a royalty table. An empty item id
// addresses the collection-level table; a non-empty id addresses the
// per-item override.
func RoyaltyTable(collection, item string) Keylet {
	return Keylet{
		Type: entry.TypeRoyaltyTable,
		Key:  indexHash(spaceRoyaltyTable, collection, item),
	}
}

// PendingRoyalty returns the keylet for a recipient's accrued royalty
// balance in one currency.
func PendingRoyalty(recipient, currency string) Keylet {
	return Keylet{
		Type: entry.TypePendingRoyalty,
		Key:  indexHash(spacePendingRoyalty, recipient, currency),
	}
}

// ItemOwnership returns the keylet for the ownership record of one item.
func ItemOwnership(collection, item string) Keylet {
	return Keylet{
		Type: entry.TypeItemOwnership,
		Key:  indexHash(spaceItemOwnership, collection, item),
	}
}
