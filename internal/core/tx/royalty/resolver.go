// Package royalty contains the royalty table transactors and the resolver
// that turns a sale value into per-recipient obligations.
package royalty

import (
	"nftswapd/internal/core/amount"
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/keylet"
	"nftswapd/internal/core/tx"
)

// Resolve computes the royalty obligations for a sale. The waterfall is:
// per-item table, then the collection-level table, then the configured
// external delegate. With no source at all the sale carries no royalty.
//
// The resolved total must never exceed the sale value; an excess is an
// invariant breach that fails the operation rather than being clamped.
func Resolve(view *tx.ApplyStateTable, cfg tx.EngineConfig, collection, item string, saleValue uint64) ([]tx.RoyaltyShare, tx.Result) {
	table, res := lookupTable(view, collection, item)
	if !res.IsSuccess() {
		return nil, res
	}

	var shares []tx.RoyaltyShare
	if table != nil {
		entries := table.Entries
		if cfg.RoyaltySingleRecipient && len(entries) > 1 {
			entries = entries[:1]
		}
		for _, e := range entries {
			amt, err := amount.New(saleValue).MulDiv(uint64(e.Bps), 10000)
			if err != nil {
				return nil, tx.TecINTERNAL
			}
			if amt.IsZero() {
				continue
			}
			shares = append(shares, tx.RoyaltyShare{Recipient: e.Recipient, Amount: amt.Uint64()})
		}
	} else if cfg.RoyaltyDelegate != nil {
		delegated, err := cfg.RoyaltyDelegate.Royalties(collection, item, saleValue)
		if err != nil {
			return nil, tx.TefINTERNAL
		}
		if cfg.RoyaltySingleRecipient && len(delegated) > 1 {
			delegated = delegated[:1]
		}
		shares = delegated
	}

	var total uint64
	for _, s := range shares {
		sum, err := amount.New(total).Add(amount.New(s.Amount))
		if err != nil {
			return nil, tx.TecROYALTY_OVERFLOW
		}
		total = sum.Uint64()
	}
	if total > saleValue {
		return nil, tx.TecROYALTY_OVERFLOW
	}

	return shares, tx.TesSUCCESS
}

// lookupTable finds the applicable royalty table: the per-item override if
// one is bound, else the collection-level table, else nil.
func lookupTable(view *tx.ApplyStateTable, collection, item string) (*entries.RoyaltyTable, tx.Result) {
	if item != "" {
		t, res := readTable(view, keylet.RoyaltyTable(collection, item))
		if !res.IsSuccess() || t != nil {
			return t, res
		}
	}
	return readTable(view, keylet.RoyaltyTable(collection, ""))
}

func readTable(view *tx.ApplyStateTable, k keylet.Keylet) (*entries.RoyaltyTable, tx.Result) {
	e, err := view.ReadEntry(k)
	if err != nil {
		return nil, tx.TefINTERNAL
	}
	if e == nil {
		return nil, tx.TesSUCCESS
	}
	t, ok := e.(*entries.RoyaltyTable)
	if !ok {
		return nil, tx.TefINTERNAL
	}
	return t, tx.TesSUCCESS
}

// creditPending accrues an amount into a recipient's withdrawable balance,
// creating the entry on first credit.
func creditPending(view *tx.ApplyStateTable, recipient, currency string, amt uint64) tx.Result {
	if amt == 0 {
		return tx.TesSUCCESS
	}
	k := keylet.PendingRoyalty(recipient, currency)
	e, err := view.ReadEntry(k)
	if err != nil {
		return tx.TefINTERNAL
	}
	if e == nil {
		pending := &entries.PendingRoyalty{
			Recipient: recipient,
			Currency:  currency,
			Amount:    amt,
		}
		if err := view.InsertEntry(k, pending); err != nil {
			return tx.TefINTERNAL
		}
		return tx.TesSUCCESS
	}
	pending, ok := e.(*entries.PendingRoyalty)
	if !ok {
		return tx.TefINTERNAL
	}
	sum, aerr := amount.New(pending.Amount).Add(amount.New(amt))
	if aerr != nil {
		return tx.TecINTERNAL
	}
	pending.Amount = sum.Uint64()
	if err := view.UpdateEntry(k, pending); err != nil {
		return tx.TefINTERNAL
	}
	return tx.TesSUCCESS
}
