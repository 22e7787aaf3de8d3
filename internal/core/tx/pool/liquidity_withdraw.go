package pool

import (
	"nftswapd/internal/core/ledger/keylet"
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeLiquidityWithdraw, func() tx.Transaction {
		return &LiquidityWithdraw{BaseTx: *tx.NewBaseTx(tx.TypeLiquidityWithdraw, "")}
	})
}

// LiquidityWithdraw burns shares and pays the holder their floored pro-rata
// portion of both the currency reserve and the accumulated fee pool.
type LiquidityWithdraw struct {
	tx.BaseTx

	Collection string `json:"Collection"`
	Currency   string `json:"Currency"`

	// Shares is the number of shares to burn.
	Shares uint64 `json:"Shares"`
}

// NewLiquidityWithdraw creates a new LiquidityWithdraw transaction.
func NewLiquidityWithdraw(account, collection, currency string, shares uint64) *LiquidityWithdraw {
	return &LiquidityWithdraw{
		BaseTx:     *tx.NewBaseTx(tx.TypeLiquidityWithdraw, account),
		Collection: collection,
		Currency:   currency,
		Shares:     shares,
	}
}

func (w *LiquidityWithdraw) TxType() tx.Type {
	return tx.TypeLiquidityWithdraw
}

// Validate validates the LiquidityWithdraw transaction.
func (w *LiquidityWithdraw) Validate() error {
	if err := w.BaseTx.Validate(); err != nil {
		return err
	}
	if w.Collection == "" || w.Currency == "" {
		return tx.ErrInvalidID
	}
	if w.Shares == 0 {
		return tx.ErrInvalidAmount
	}
	return nil
}

// Apply applies the LiquidityWithdraw transaction to ledger state.
func (w *LiquidityWithdraw) Apply(ctx *tx.ApplyContext) tx.Result {
	p, res := loadPool(ctx.View, w.Collection, w.Currency)
	if !res.IsSuccess() {
		return res
	}

	posKey := keylet.SharePosition(w.Collection, w.Currency, w.Account)
	pos, res := loadPosition(ctx.View, w.Collection, w.Currency, w.Account)
	if !res.IsSuccess() {
		return res
	}
	if pos == nil || pos.Shares < w.Shares {
		return tx.TecINSUFFICIENT_SHARES
	}

	fromReserve, fromFees, res := WithdrawAmounts(w.Shares, p.TotalShares, p.CurrencyReserve, p.AccumulatedFees)
	if !res.IsSuccess() {
		return res
	}
	payout := fromReserve + fromFees
	if payout == 0 {
		return tx.TecDRY
	}

	p.CurrencyReserve -= fromReserve
	p.AccumulatedFees -= fromFees
	p.TotalShares -= w.Shares
	if res := savePool(ctx.View, p); !res.IsSuccess() {
		return res
	}

	pos.Shares -= w.Shares
	if pos.Shares == 0 {
		if err := ctx.View.Erase(posKey); err != nil {
			return tx.TefINTERNAL
		}
	} else {
		if err := ctx.View.UpdateEntry(posKey, pos); err != nil {
			return tx.TefINTERNAL
		}
	}

	return tx.Credit(ctx.View, w.Account, w.Currency, payout)
}
