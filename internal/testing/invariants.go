package testing

import (
	"nftswapd/internal/core/ledger/entry"
	"nftswapd/internal/core/ledger/entry/entries"
)

// CheckInvariants audits the full ledger state:
//
//   - every pool passes its own consistency checks
//   - every item in a pool's inventory is owned by the pool account
//   - a pool's TotalShares equals the sum of its share positions
//   - per currency, account balances plus pool reserves, accumulated fees
//     and pending royalties add up to the amount minted through Fund
//
// Call it after a scenario; any breach is a bug in a transactor, not in the
// scenario.
func (e *TestEnv) CheckInvariants() {
	e.t.Helper()

	var pools []*entries.Pool
	shareSums := make(map[string]uint64)    // pool key -> sum of positions
	circulating := make(map[string]uint64)  // currency -> account balances
	poolHoldings := make(map[string]uint64) // currency -> reserves + fees
	royalties := make(map[string]uint64)    // currency -> pending royalties

	err := e.ledger.ForEach(func(key [32]byte, data []byte) bool {
		decoded, err := entry.Decode(data)
		if err != nil {
			e.t.Errorf("invariant: undecodable entry: %v", err)
			return true
		}
		switch v := decoded.(type) {
		case *entries.Pool:
			pools = append(pools, v)
			poolHoldings[v.Currency] += v.CurrencyReserve + v.AccumulatedFees
		case *entries.SharePosition:
			shareSums[v.Collection+"/"+v.Currency] += v.Shares
		case *entries.AccountRoot:
			for currency, amt := range v.Balances {
				circulating[currency] += amt
			}
		case *entries.PendingRoyalty:
			royalties[v.Currency] += v.Amount
		}
		return true
	})
	if err != nil {
		e.t.Fatalf("invariant: ledger scan: %v", err)
	}

	for _, p := range pools {
		if err := p.CheckInvariants(); err != nil {
			e.t.Errorf("invariant: pool %s/%s: %v", p.Collection, p.Currency, err)
		}
		for _, id := range p.Items {
			if owner := e.ItemOwner(p.Collection, id); owner != p.Account {
				e.t.Errorf("invariant: pool %s/%s holds %s but owner is %q",
					p.Collection, p.Currency, id, owner)
			}
		}
		if sum := shareSums[p.Collection+"/"+p.Currency]; sum != p.TotalShares {
			e.t.Errorf("invariant: pool %s/%s TotalShares=%d but positions sum to %d",
				p.Collection, p.Currency, p.TotalShares, sum)
		}
	}

	for currency, minted := range e.minted {
		total := circulating[currency] + poolHoldings[currency] + royalties[currency]
		if total != minted {
			e.t.Errorf("invariant: currency %s: minted %d but ledger accounts for %d "+
				"(balances %d, pools %d, royalties %d)",
				currency, minted, total,
				circulating[currency], poolHoldings[currency], royalties[currency])
		}
	}
}
