package pool

import (
	"nftswapd/internal/core/amount"
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/keylet"
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeLiquidityDeposit, func() tx.Transaction {
		return &LiquidityDeposit{BaseTx: *tx.NewBaseTx(tx.TypeLiquidityDeposit, "")}
	})
}

// LiquidityDeposit adds currency to a pool's reserve and mints shares to the
// depositor.
type LiquidityDeposit struct {
	tx.BaseTx

	Collection string `json:"Collection"`
	Currency   string `json:"Currency"`

	// Amount is the currency amount to deposit.
	Amount uint64 `json:"Amount"`
}

// NewLiquidityDeposit creates a new LiquidityDeposit transaction.
func NewLiquidityDeposit(account, collection, currency string, amt uint64) *LiquidityDeposit {
	return &LiquidityDeposit{
		BaseTx:     *tx.NewBaseTx(tx.TypeLiquidityDeposit, account),
		Collection: collection,
		Currency:   currency,
		Amount:     amt,
	}
}

func (d *LiquidityDeposit) TxType() tx.Type {
	return tx.TypeLiquidityDeposit
}

// Validate validates the LiquidityDeposit transaction.
func (d *LiquidityDeposit) Validate() error {
	if err := d.BaseTx.Validate(); err != nil {
		return err
	}
	if d.Collection == "" || d.Currency == "" {
		return tx.ErrInvalidID
	}
	if d.Amount == 0 {
		return tx.ErrInvalidAmount
	}
	return nil
}

// Apply applies the LiquidityDeposit transaction to ledger state.
func (d *LiquidityDeposit) Apply(ctx *tx.ApplyContext) tx.Result {
	p, res := loadPool(ctx.View, d.Collection, d.Currency)
	if !res.IsSuccess() {
		return res
	}

	shares, res := SharesForDeposit(d.Amount, p.TotalShares, p.CurrencyReserve)
	if !res.IsSuccess() {
		return res
	}

	// Effects on pool state first, custody transfer last.
	reserve, err := amount.New(p.CurrencyReserve).Add(amount.New(d.Amount))
	if err != nil {
		return tx.TecINTERNAL
	}
	total, err := amount.New(p.TotalShares).Add(amount.New(shares))
	if err != nil {
		return tx.TecINTERNAL
	}
	p.CurrencyReserve = reserve.Uint64()
	p.TotalShares = total.Uint64()
	if res := savePool(ctx.View, p); !res.IsSuccess() {
		return res
	}

	posKey := keylet.SharePosition(d.Collection, d.Currency, d.Account)
	pos, res := loadPosition(ctx.View, d.Collection, d.Currency, d.Account)
	if !res.IsSuccess() {
		return res
	}
	if pos == nil {
		pos = &entries.SharePosition{
			Collection: d.Collection,
			Currency:   d.Currency,
			Provider:   d.Account,
			Shares:     shares,
		}
		if err := ctx.View.InsertEntry(posKey, pos); err != nil {
			return tx.TefINTERNAL
		}
	} else {
		held, err := amount.New(pos.Shares).Add(amount.New(shares))
		if err != nil {
			return tx.TecINTERNAL
		}
		pos.Shares = held.Uint64()
		if err := ctx.View.UpdateEntry(posKey, pos); err != nil {
			return tx.TefINTERNAL
		}
	}

	return tx.Debit(ctx.View, d.Account, d.Currency, d.Amount)
}
