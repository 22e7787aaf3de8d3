// Package item contains the discrete-asset transactors: issuance and direct
// transfer of items outside any pool.
package item

import (
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeItemMint, func() tx.Transaction {
		return &ItemMint{BaseTx: *tx.NewBaseTx(tx.TypeItemMint, "")}
	})
}

// ItemMint issues a new item into a collection. Admin-gated: item issuance
// is an operator capability, like fee administration.
type ItemMint struct {
	tx.BaseTx

	Collection string `json:"Collection"`
	Item       string `json:"Item"`

	// Owner receives the item; empty defaults to the submitting account.
	Owner string `json:"Owner,omitempty"`
}

// NewItemMint creates a new ItemMint transaction.
func NewItemMint(account, collection, item, owner string) *ItemMint {
	return &ItemMint{
		BaseTx:     *tx.NewBaseTx(tx.TypeItemMint, account),
		Collection: collection,
		Item:       item,
		Owner:      owner,
	}
}

func (m *ItemMint) TxType() tx.Type {
	return tx.TypeItemMint
}

// Validate validates the ItemMint transaction.
func (m *ItemMint) Validate() error {
	if err := m.BaseTx.Validate(); err != nil {
		return err
	}
	if m.Collection == "" || m.Item == "" {
		return tx.ErrInvalidID
	}
	return nil
}

// Apply applies the ItemMint transaction to ledger state.
func (m *ItemMint) Apply(ctx *tx.ApplyContext) tx.Result {
	if !ctx.IsAdmin() {
		return tx.TecNO_PERMISSION
	}
	owner := m.Owner
	if owner == "" {
		owner = m.Account
	}
	return tx.MintItem(ctx.View, m.Collection, m.Item, owner)
}
