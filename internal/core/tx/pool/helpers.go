package pool

import (
	"encoding/hex"

	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/keylet"
	"nftswapd/internal/core/tx"
)

// PoolAccount derives the pool's pseudo-account address from its keylet.
// The address is outside any user address space, so nothing but the pool
// transactors can move its holdings.
func PoolAccount(collection, currency string) string {
	k := keylet.Pool(collection, currency)
	return "pool:" + hex.EncodeToString(k.Key[:20])
}

// loadPool reads a pool. A missing pool is tecNO_POOL.
func loadPool(view *tx.ApplyStateTable, collection, currency string) (*entries.Pool, tx.Result) {
	e, err := view.ReadEntry(keylet.Pool(collection, currency))
	if err != nil {
		return nil, tx.TefINTERNAL
	}
	if e == nil {
		return nil, tx.TecNO_POOL
	}
	p, ok := e.(*entries.Pool)
	if !ok {
		return nil, tx.TefINTERNAL
	}
	return p, tx.TesSUCCESS
}

func savePool(view *tx.ApplyStateTable, p *entries.Pool) tx.Result {
	if err := view.UpdateEntry(keylet.Pool(p.Collection, p.Currency), p); err != nil {
		return tx.TefINTERNAL
	}
	return tx.TesSUCCESS
}

// loadPosition reads a provider's share position. Returns nil when the
// provider holds no position.
func loadPosition(view *tx.ApplyStateTable, collection, currency, provider string) (*entries.SharePosition, tx.Result) {
	e, err := view.ReadEntry(keylet.SharePosition(collection, currency, provider))
	if err != nil {
		return nil, tx.TefINTERNAL
	}
	if e == nil {
		return nil, tx.TesSUCCESS
	}
	p, ok := e.(*entries.SharePosition)
	if !ok {
		return nil, tx.TefINTERNAL
	}
	return p, tx.TesSUCCESS
}
