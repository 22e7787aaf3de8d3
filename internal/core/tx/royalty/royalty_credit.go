package royalty

import (
	"nftswapd/internal/core/amount"
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/keylet"
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeRoyaltyCredit, func() tx.Transaction {
		return &RoyaltyCredit{BaseTx: *tx.NewBaseTx(tx.TypeRoyaltyCredit, "")}
	})
}

// RoyaltyCredit settles a sale's royalty obligation through the pool: the
// declared amount is taken from the caller, the resolved per-recipient
// splits accrue as pending royalties, and the unclaimed remainder joins the
// pool's currency reserve without minting any shares, raising the value of
// every outstanding share.
type RoyaltyCredit struct {
	tx.BaseTx

	Collection string `json:"Collection"`
	Currency   string `json:"Currency"`

	// Item selects the per-item royalty table when set.
	Item string `json:"Item,omitempty"`

	// Amount is the sale value the royalty is resolved against.
	Amount uint64 `json:"Amount"`
}

// NewRoyaltyCredit creates a new RoyaltyCredit transaction.
func NewRoyaltyCredit(account, collection, currency, item string, amt uint64) *RoyaltyCredit {
	return &RoyaltyCredit{
		BaseTx:     *tx.NewBaseTx(tx.TypeRoyaltyCredit, account),
		Collection: collection,
		Currency:   currency,
		Item:       item,
		Amount:     amt,
	}
}

func (c *RoyaltyCredit) TxType() tx.Type {
	return tx.TypeRoyaltyCredit
}

// Validate validates the RoyaltyCredit transaction.
func (c *RoyaltyCredit) Validate() error {
	if err := c.BaseTx.Validate(); err != nil {
		return err
	}
	if c.Collection == "" || c.Currency == "" {
		return tx.ErrInvalidID
	}
	if c.Amount == 0 {
		return tx.ErrInvalidAmount
	}
	return nil
}

// Apply applies the RoyaltyCredit transaction to ledger state.
func (c *RoyaltyCredit) Apply(ctx *tx.ApplyContext) tx.Result {
	poolKey := keylet.Pool(c.Collection, c.Currency)
	e, err := ctx.View.ReadEntry(poolKey)
	if err != nil {
		return tx.TefINTERNAL
	}
	if e == nil {
		return tx.TecNO_POOL
	}
	p, ok := e.(*entries.Pool)
	if !ok {
		return tx.TefINTERNAL
	}

	shares, res := Resolve(ctx.View, ctx.Config, c.Collection, c.Item, c.Amount)
	if !res.IsSuccess() {
		return res
	}

	// The caller must actually hold what the receipt declares.
	if res := tx.Debit(ctx.View, c.Account, c.Currency, c.Amount); !res.IsSuccess() {
		return res
	}

	remainder := amount.New(c.Amount)
	for _, s := range shares {
		left, err := remainder.Sub(amount.New(s.Amount))
		if err != nil {
			return tx.TecROYALTY_OVERFLOW
		}
		remainder = left
		if res := creditPending(ctx.View, s.Recipient, c.Currency, s.Amount); !res.IsSuccess() {
			return res
		}
	}

	// The remainder joins the reserve with zero shares minted.
	if remainder.IsPositive() {
		sum, err := amount.New(p.CurrencyReserve).Add(remainder)
		if err != nil {
			return tx.TecINTERNAL
		}
		p.CurrencyReserve = sum.Uint64()
		if err := ctx.View.UpdateEntry(poolKey, p); err != nil {
			return tx.TefINTERNAL
		}
	}

	return tx.TesSUCCESS
}
