package pool

import (
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeFeeWithdraw, func() tx.Transaction {
		return &FeeWithdraw{BaseTx: *tx.NewBaseTx(tx.TypeFeeWithdraw, "")}
	})
}

// FeeWithdraw pays a share holder their floored pro-rata portion of the
// accumulated fee pool without burning any shares.
type FeeWithdraw struct {
	tx.BaseTx

	Collection string `json:"Collection"`
	Currency   string `json:"Currency"`
}

// NewFeeWithdraw creates a new FeeWithdraw transaction.
func NewFeeWithdraw(account, collection, currency string) *FeeWithdraw {
	return &FeeWithdraw{
		BaseTx:     *tx.NewBaseTx(tx.TypeFeeWithdraw, account),
		Collection: collection,
		Currency:   currency,
	}
}

func (f *FeeWithdraw) TxType() tx.Type {
	return tx.TypeFeeWithdraw
}

// Validate validates the FeeWithdraw transaction.
func (f *FeeWithdraw) Validate() error {
	if err := f.BaseTx.Validate(); err != nil {
		return err
	}
	if f.Collection == "" || f.Currency == "" {
		return tx.ErrInvalidID
	}
	return nil
}

// Apply applies the FeeWithdraw transaction to ledger state.
func (f *FeeWithdraw) Apply(ctx *tx.ApplyContext) tx.Result {
	p, res := loadPool(ctx.View, f.Collection, f.Currency)
	if !res.IsSuccess() {
		return res
	}

	pos, res := loadPosition(ctx.View, f.Collection, f.Currency, f.Account)
	if !res.IsSuccess() {
		return res
	}
	if pos == nil || pos.Shares == 0 {
		return tx.TecINSUFFICIENT_SHARES
	}

	share, res := FeeShare(pos.Shares, p.TotalShares, p.AccumulatedFees)
	if !res.IsSuccess() {
		return res
	}
	if share == 0 {
		return tx.TecDRY
	}

	p.AccumulatedFees -= share
	if res := savePool(ctx.View, p); !res.IsSuccess() {
		return res
	}

	return tx.Credit(ctx.View, f.Account, f.Currency, share)
}
