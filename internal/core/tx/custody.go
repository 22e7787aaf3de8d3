package tx

import (
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/keylet"
)

// Custody helpers. All currency and item movement in transactors goes
// through these, against the buffered view, after every precondition has
// been checked. The pattern is checks first, then effects: by the time a
// helper fails with tefINTERNAL something is already inconsistent.

// ReadAccount reads an account root. Returns nil without error if the
// account does not exist.
func ReadAccount(view *ApplyStateTable, account string) (*entries.AccountRoot, error) {
	e, err := view.ReadEntry(keylet.Account(account))
	if err != nil || e == nil {
		return nil, err
	}
	root, ok := e.(*entries.AccountRoot)
	if !ok {
		return nil, nil
	}
	return root, nil
}

// Balance returns an account's balance in the given currency. A missing
// account has a zero balance.
func Balance(view *ApplyStateTable, account, currency string) (uint64, error) {
	root, err := ReadAccount(view, account)
	if err != nil || root == nil {
		return 0, err
	}
	return root.Balance(currency), nil
}

// Credit adds funds to an account, creating the account root on first
// credit.
func Credit(view *ApplyStateTable, account, currency string, amt uint64) Result {
	if amt == 0 {
		return TesSUCCESS
	}
	k := keylet.Account(account)
	root, err := ReadAccount(view, account)
	if err != nil {
		return TefINTERNAL
	}
	if root == nil {
		root = entries.NewAccountRoot(account)
		if err := root.Credit(currency, amt); err != nil {
			return TefINTERNAL
		}
		if err := view.InsertEntry(k, root); err != nil {
			return TefINTERNAL
		}
		return TesSUCCESS
	}
	if err := root.Credit(currency, amt); err != nil {
		return TefINTERNAL
	}
	if err := view.UpdateEntry(k, root); err != nil {
		return TefINTERNAL
	}
	return TesSUCCESS
}

// Debit removes funds from an account. Insufficient balance is tecUNFUNDED.
func Debit(view *ApplyStateTable, account, currency string, amt uint64) Result {
	if amt == 0 {
		return TesSUCCESS
	}
	root, err := ReadAccount(view, account)
	if err != nil {
		return TefINTERNAL
	}
	if root == nil || root.Balance(currency) < amt {
		return TecUNFUNDED
	}
	if err := root.Debit(currency, amt); err != nil {
		return TecUNFUNDED
	}
	if err := view.UpdateEntry(keylet.Account(account), root); err != nil {
		return TefINTERNAL
	}
	return TesSUCCESS
}

// Transfer moves funds between accounts.
func Transfer(view *ApplyStateTable, from, to, currency string, amt uint64) Result {
	if res := Debit(view, from, currency, amt); !res.IsSuccess() {
		return res
	}
	return Credit(view, to, currency, amt)
}

// ItemOwner returns the recorded owner of an item. A missing ownership
// record is tecNO_ENTRY.
func ItemOwner(view *ApplyStateTable, collection, item string) (string, Result) {
	e, err := view.ReadEntry(keylet.ItemOwnership(collection, item))
	if err != nil {
		return "", TefINTERNAL
	}
	if e == nil {
		return "", TecNO_ENTRY
	}
	own, ok := e.(*entries.ItemOwnership)
	if !ok {
		return "", TefINTERNAL
	}
	return own.Owner, TesSUCCESS
}

// TransferItem rewrites an item's ownership record, enforcing that the
// current owner matches.
func TransferItem(view *ApplyStateTable, collection, item, from, to string) Result {
	k := keylet.ItemOwnership(collection, item)
	e, err := view.ReadEntry(k)
	if err != nil {
		return TefINTERNAL
	}
	if e == nil {
		return TecNO_ENTRY
	}
	own, ok := e.(*entries.ItemOwnership)
	if !ok {
		return TefINTERNAL
	}
	if own.Owner != from {
		return TecNOT_OWNER
	}
	own.Owner = to
	if err := view.UpdateEntry(k, own); err != nil {
		return TefINTERNAL
	}
	return TesSUCCESS
}

// MintItem creates an ownership record for a new item. An existing record
// is tecDUPLICATE.
func MintItem(view *ApplyStateTable, collection, item, owner string) Result {
	k := keylet.ItemOwnership(collection, item)
	exists, err := view.Exists(k)
	if err != nil {
		return TefINTERNAL
	}
	if exists {
		return TecDUPLICATE
	}
	own := &entries.ItemOwnership{
		Collection: collection,
		Item:       item,
		Owner:      owner,
	}
	if err := view.InsertEntry(k, own); err != nil {
		return TefINTERNAL
	}
	return TesSUCCESS
}
