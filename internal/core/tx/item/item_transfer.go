package item

import (
	"errors"

	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeItemTransfer, func() tx.Transaction {
		return &ItemTransfer{BaseTx: *tx.NewBaseTx(tx.TypeItemTransfer, "")}
	})
}

// ItemTransfer moves an item the sender owns to another account.
type ItemTransfer struct {
	tx.BaseTx

	Collection  string `json:"Collection"`
	Item        string `json:"Item"`
	Destination string `json:"Destination"`
}

// NewItemTransfer creates a new ItemTransfer transaction.
func NewItemTransfer(account, collection, item, destination string) *ItemTransfer {
	return &ItemTransfer{
		BaseTx:      *tx.NewBaseTx(tx.TypeItemTransfer, account),
		Collection:  collection,
		Item:        item,
		Destination: destination,
	}
}

func (t *ItemTransfer) TxType() tx.Type {
	return tx.TypeItemTransfer
}

// Validate validates the ItemTransfer transaction.
func (t *ItemTransfer) Validate() error {
	if err := t.BaseTx.Validate(); err != nil {
		return err
	}
	if t.Collection == "" || t.Item == "" || t.Destination == "" {
		return tx.ErrInvalidID
	}
	if t.Destination == t.Account {
		return errors.New("temMALFORMED: destination may not be source")
	}
	return nil
}

// Apply applies the ItemTransfer transaction to ledger state.
func (t *ItemTransfer) Apply(ctx *tx.ApplyContext) tx.Result {
	return tx.TransferItem(ctx.View, t.Collection, t.Item, t.Account, t.Destination)
}
