// Package pool contains the pool transactors: creation, liquidity and item
// deposits, withdrawals, swaps, and fee administration.
package pool

import (
	"nftswapd/internal/core/amount"
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/tx"
)

// Quote is the priced breakdown of a single-item swap. For a sell, Gross
// leaves the reserve, Net goes to the seller and Fee to the fee pool. For a
// buy, Gross is charged to the buyer, Net enters the reserve and Fee the fee
// pool. Gross == Net + Fee on both sides.
type Quote struct {
	Gross uint64
	Fee   uint64
	Net   uint64
}

// SellQuote prices selling one item into a pool holding reserve T and N
// items: gross = floor(T/(N+1)), fee floored from gross. A pool that cannot
// price the item (empty reserve, or gross rounding to zero) is dry. A fee
// consuming the whole gross is not an error: the trade executes with a zero
// payout.
func SellQuote(reserve, itemCount uint64, feeBps uint16) (Quote, tx.Result) {
	if reserve == 0 {
		return Quote{}, tx.TecDRY
	}
	gross := reserve / (itemCount + 1)
	if gross == 0 {
		return Quote{}, tx.TecDRY
	}
	fee, err := amount.New(gross).MulDiv(uint64(feeBps), entries.MaxFeeBps)
	if err != nil {
		return Quote{}, tx.TecINTERNAL
	}
	return Quote{
		Gross: gross,
		Fee:   fee.Uint64(),
		Net:   gross - fee.Uint64(),
	}, tx.TesSUCCESS
}

// BuyQuote prices buying one item out of a pool holding reserve T and N
// items. Requires N > 1: selling the pool's last item has no defined price
// under this formula. The buyer's charge is grossed up from the net price,
// floored; this deliberately rounds differently from the sell side. A
// full-scale fee makes the gross-up unbounded and is rejected.
func BuyQuote(reserve, itemCount uint64, feeBps uint16) (Quote, tx.Result) {
	if itemCount <= 1 {
		return Quote{}, tx.TecNEEDS_INVENTORY
	}
	net := reserve / (itemCount - 1)
	if net == 0 {
		return Quote{}, tx.TecDRY
	}
	if feeBps >= entries.MaxFeeBps {
		return Quote{}, tx.TecDRY
	}
	gross, err := amount.New(net).MulDiv(entries.MaxFeeBps, entries.MaxFeeBps-uint64(feeBps))
	if err != nil {
		return Quote{}, tx.TecINTERNAL
	}
	return Quote{
		Gross: gross.Uint64(),
		Fee:   gross.Uint64() - net,
		Net:   net,
	}, tx.TesSUCCESS
}

// SharesForDeposit converts a currency deposit to minted shares. The first
// deposit (no shares outstanding, or an empty reserve) bootstraps 1:1;
// afterwards shares are floored pro rata. A deposit that would mint zero
// shares is dust.
func SharesForDeposit(amountIn, totalShares, reserve uint64) (uint64, tx.Result) {
	if amountIn == 0 {
		return 0, tx.TemBAD_AMOUNT
	}
	if totalShares == 0 || reserve == 0 {
		return amountIn, tx.TesSUCCESS
	}
	shares, err := amount.New(amountIn).MulDiv(totalShares, reserve)
	if err != nil {
		return 0, tx.TecINTERNAL
	}
	if shares.IsZero() {
		return 0, tx.TecDUST
	}
	return shares.Uint64(), tx.TesSUCCESS
}

// WithdrawAmounts computes the floored pro-rata payout for burning shares:
// the reserve portion and the fee-pool portion, each floored independently.
func WithdrawAmounts(shares, totalShares, reserve, fees uint64) (fromReserve, fromFees uint64, res tx.Result) {
	if totalShares == 0 || shares > totalShares {
		return 0, 0, tx.TecINSUFFICIENT_SHARES
	}
	r, err := amount.New(reserve).MulDiv(shares, totalShares)
	if err != nil {
		return 0, 0, tx.TecINTERNAL
	}
	f, err := amount.New(fees).MulDiv(shares, totalShares)
	if err != nil {
		return 0, 0, tx.TecINTERNAL
	}
	return r.Uint64(), f.Uint64(), tx.TesSUCCESS
}

// FeeShare computes a holder's floored pro-rata share of the accumulated fee
// pool without burning anything.
func FeeShare(shares, totalShares, fees uint64) (uint64, tx.Result) {
	if totalShares == 0 || shares > totalShares {
		return 0, tx.TecINSUFFICIENT_SHARES
	}
	f, err := amount.New(fees).MulDiv(shares, totalShares)
	if err != nil {
		return 0, tx.TecINTERNAL
	}
	return f.Uint64(), tx.TesSUCCESS
}
