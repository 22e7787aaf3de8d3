package pool

import (
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeItemDeposit, func() tx.Transaction {
		return &ItemDeposit{BaseTx: *tx.NewBaseTx(tx.TypeItemDeposit, "")}
	})
}

// ItemDeposit moves items the depositor owns into the pool's inventory,
// all-or-nothing. No shares are minted: item-side liquidity earns through
// swap flow, not through the share supply.
type ItemDeposit struct {
	tx.BaseTx

	Collection string   `json:"Collection"`
	Currency   string   `json:"Currency"`
	Items      []string `json:"Items"`
}

// NewItemDeposit creates a new ItemDeposit transaction.
func NewItemDeposit(account, collection, currency string, items ...string) *ItemDeposit {
	return &ItemDeposit{
		BaseTx:     *tx.NewBaseTx(tx.TypeItemDeposit, account),
		Collection: collection,
		Currency:   currency,
		Items:      items,
	}
}

func (d *ItemDeposit) TxType() tx.Type {
	return tx.TypeItemDeposit
}

// Validate validates the ItemDeposit transaction.
func (d *ItemDeposit) Validate() error {
	if err := d.BaseTx.Validate(); err != nil {
		return err
	}
	if d.Collection == "" || d.Currency == "" {
		return tx.ErrInvalidID
	}
	if len(d.Items) == 0 {
		return tx.ErrEmptySet
	}
	seen := make(map[string]struct{}, len(d.Items))
	for _, id := range d.Items {
		if id == "" {
			return tx.ErrInvalidID
		}
		if _, dup := seen[id]; dup {
			return tx.ErrInvalidID
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Preclaim checks the batch size, the pool, and the depositor's title to
// every item in the set.
func (d *ItemDeposit) Preclaim(ctx *tx.ApplyContext) tx.Result {
	if len(d.Items) > ctx.MaxBatchSize() {
		return tx.TemOVERSIZE
	}
	if _, res := loadPool(ctx.View, d.Collection, d.Currency); !res.IsSuccess() {
		return res
	}
	for _, id := range d.Items {
		owner, res := tx.ItemOwner(ctx.View, d.Collection, id)
		if !res.IsSuccess() {
			return res
		}
		if owner != d.Account {
			return tx.TecNOT_OWNER
		}
	}
	return tx.TesSUCCESS
}

// Apply applies the ItemDeposit transaction to ledger state.
func (d *ItemDeposit) Apply(ctx *tx.ApplyContext) tx.Result {
	p, res := loadPool(ctx.View, d.Collection, d.Currency)
	if !res.IsSuccess() {
		return res
	}

	for _, id := range d.Items {
		if p.HasItem(id) {
			return tx.TecDUPLICATE
		}
		if err := p.InsertItem(id); err != nil {
			return tx.TecDUPLICATE
		}
	}
	if res := savePool(ctx.View, p); !res.IsSuccess() {
		return res
	}

	for _, id := range d.Items {
		if res := tx.TransferItem(ctx.View, d.Collection, id, d.Account, p.Account); !res.IsSuccess() {
			return res
		}
	}
	return tx.TesSUCCESS
}
