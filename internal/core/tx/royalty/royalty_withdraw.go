package royalty

import (
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/keylet"
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeRoyaltyWithdraw, func() tx.Transaction {
		return &RoyaltyWithdraw{BaseTx: *tx.NewBaseTx(tx.TypeRoyaltyWithdraw, "")}
	})
}

// RoyaltyWithdraw pays out the caller's full pending royalty balance in one
// currency. There is no partial withdrawal; the entry is zeroed and kept.
type RoyaltyWithdraw struct {
	tx.BaseTx

	Currency string `json:"Currency"`
}

// NewRoyaltyWithdraw creates a new RoyaltyWithdraw transaction.
func NewRoyaltyWithdraw(account, currency string) *RoyaltyWithdraw {
	return &RoyaltyWithdraw{
		BaseTx:   *tx.NewBaseTx(tx.TypeRoyaltyWithdraw, account),
		Currency: currency,
	}
}

func (w *RoyaltyWithdraw) TxType() tx.Type {
	return tx.TypeRoyaltyWithdraw
}

// Validate validates the RoyaltyWithdraw transaction.
func (w *RoyaltyWithdraw) Validate() error {
	if err := w.BaseTx.Validate(); err != nil {
		return err
	}
	if w.Currency == "" {
		return tx.ErrInvalidID
	}
	return nil
}

// Apply applies the RoyaltyWithdraw transaction to ledger state.
func (w *RoyaltyWithdraw) Apply(ctx *tx.ApplyContext) tx.Result {
	k := keylet.PendingRoyalty(w.Account, w.Currency)
	e, err := ctx.View.ReadEntry(k)
	if err != nil {
		return tx.TefINTERNAL
	}
	if e == nil {
		return tx.TecNO_ENTRY
	}
	pending, ok := e.(*entries.PendingRoyalty)
	if !ok {
		return tx.TefINTERNAL
	}
	if pending.Amount == 0 {
		return tx.TecDRY
	}

	payout := pending.Amount
	pending.Amount = 0
	if err := ctx.View.UpdateEntry(k, pending); err != nil {
		return tx.TefINTERNAL
	}

	return tx.Credit(ctx.View, w.Account, w.Currency, payout)
}
