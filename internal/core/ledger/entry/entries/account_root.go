package entries

import (
	"errors"

	"nftswapd/internal/core/ledger/entry"
)

func init() {
	entry.RegisterType(entry.TypeAccountRoot, func() entry.Entry { return &AccountRoot{} })
}

// AccountRoot holds an account's per-currency balances. It is the custody
// substrate: every currency transfer debits one AccountRoot and credits
// another, atomically within the operation's state table.
type AccountRoot struct {
	BaseEntry

	Account  string
	Balances map[string]uint64
}

// NewAccountRoot creates an account with no balances.
func NewAccountRoot(account string) *AccountRoot {
	return &AccountRoot{
		Account:  account,
		Balances: make(map[string]uint64),
	}
}

func (a *AccountRoot) Type() entry.Type {
	return entry.TypeAccountRoot
}

func (a *AccountRoot) Validate() error {
	if a.Account == "" {
		return errors.New("account address is required")
	}
	return nil
}

// Balance returns the account's balance in the given currency.
func (a *AccountRoot) Balance(currency string) uint64 {
	return a.Balances[currency]
}

// Credit adds funds. Overflow is an error.
func (a *AccountRoot) Credit(currency string, amt uint64) error {
	if a.Balances == nil {
		a.Balances = make(map[string]uint64)
	}
	cur := a.Balances[currency]
	if cur+amt < cur {
		return errors.New("balance overflow")
	}
	a.Balances[currency] = cur + amt
	return nil
}

// Debit removes funds. Insufficient balance is an error and leaves the
// account untouched.
func (a *AccountRoot) Debit(currency string, amt uint64) error {
	cur := a.Balances[currency]
	if amt > cur {
		return errors.New("insufficient balance")
	}
	if a.Balances == nil {
		a.Balances = make(map[string]uint64)
	}
	a.Balances[currency] = cur - amt
	return nil
}
