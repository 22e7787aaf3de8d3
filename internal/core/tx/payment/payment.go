// Package payment contains the plain currency transfer transactor.
package payment

import (
	"errors"

	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypePayment, func() tx.Transaction {
		return &Payment{BaseTx: *tx.NewBaseTx(tx.TypePayment, "")}
	})
}

// Payment transfers currency between two accounts.
type Payment struct {
	tx.BaseTx

	Destination string `json:"Destination"`
	Currency    string `json:"Currency"`
	Amount      uint64 `json:"Amount"`
}

// NewPayment creates a new Payment transaction.
func NewPayment(account, destination, currency string, amt uint64) *Payment {
	return &Payment{
		BaseTx:      *tx.NewBaseTx(tx.TypePayment, account),
		Destination: destination,
		Currency:    currency,
		Amount:      amt,
	}
}

func (p *Payment) TxType() tx.Type {
	return tx.TypePayment
}

// Validate validates the Payment transaction.
func (p *Payment) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.Destination == "" || p.Currency == "" {
		return tx.ErrInvalidID
	}
	if p.Destination == p.Account {
		return errors.New("temMALFORMED: destination may not be source")
	}
	if p.Amount == 0 {
		return tx.ErrInvalidAmount
	}
	return nil
}

// Apply applies the Payment transaction to ledger state.
func (p *Payment) Apply(ctx *tx.ApplyContext) tx.Result {
	return tx.Transfer(ctx.View, p.Account, p.Destination, p.Currency, p.Amount)
}
