// Package genesis builds the initial ledger from a declarative config.
package genesis

import (
	"fmt"

	"nftswapd/internal/core/ledger"
	"nftswapd/internal/core/ledger/entry"
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/keylet"
)

// FundedAccount seeds one account with initial balances.
type FundedAccount struct {
	Address  string            `json:"address" mapstructure:"address"`
	Balances map[string]uint64 `json:"balances" mapstructure:"balances"`
}

// SeedItem pre-mints one item into a collection.
type SeedItem struct {
	Collection string `json:"collection" mapstructure:"collection"`
	Item       string `json:"item" mapstructure:"item"`
	Owner      string `json:"owner" mapstructure:"owner"`
}

// Config describes the genesis state.
type Config struct {
	// Admin is the operator account allowed to mint items, set fees and
	// bind royalty tables.
	Admin string `json:"admin" mapstructure:"admin"`

	Accounts []FundedAccount `json:"accounts" mapstructure:"accounts"`
	Items    []SeedItem      `json:"items" mapstructure:"items"`
}

// Create builds a fresh ledger holding the configured accounts and items.
func Create(cfg Config) (*ledger.Ledger, error) {
	l := ledger.New()

	for _, fa := range cfg.Accounts {
		if fa.Address == "" {
			return nil, fmt.Errorf("genesis: account with empty address")
		}
		root := entries.NewAccountRoot(fa.Address)
		for currency, amt := range fa.Balances {
			if err := root.Credit(currency, amt); err != nil {
				return nil, fmt.Errorf("genesis: fund %s: %w", fa.Address, err)
			}
		}
		data, err := entry.Encode(root)
		if err != nil {
			return nil, fmt.Errorf("genesis: %w", err)
		}
		if err := l.Insert(keylet.Account(fa.Address), data); err != nil {
			return nil, fmt.Errorf("genesis: duplicate account %s", fa.Address)
		}
	}

	for _, it := range cfg.Items {
		if it.Collection == "" || it.Item == "" || it.Owner == "" {
			return nil, fmt.Errorf("genesis: item with empty field")
		}
		own := &entries.ItemOwnership{
			Collection: it.Collection,
			Item:       it.Item,
			Owner:      it.Owner,
		}
		data, err := entry.Encode(own)
		if err != nil {
			return nil, fmt.Errorf("genesis: %w", err)
		}
		k := keylet.ItemOwnership(it.Collection, it.Item)
		if err := l.Insert(k, data); err != nil {
			return nil, fmt.Errorf("genesis: duplicate item %s/%s", it.Collection, it.Item)
		}
	}

	return l, nil
}
