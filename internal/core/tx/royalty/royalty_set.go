package royalty

import (
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/keylet"
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeRoyaltySet, func() tx.Transaction {
		return &RoyaltySet{BaseTx: *tx.NewBaseTx(tx.TypeRoyaltySet, "")}
	})
}

// RoyaltyEntryParam is one (recipient, basis points) pair in a RoyaltySet.
type RoyaltyEntryParam struct {
	Recipient string `json:"Recipient"`
	Bps       uint16 `json:"Bps"`
}

// RoyaltySet binds a royalty table to a collection, or to a single item when
// Item is set. An empty entry list removes the table. Admin-gated.
type RoyaltySet struct {
	tx.BaseTx

	Collection string              `json:"Collection"`
	Item       string              `json:"Item,omitempty"`
	Entries    []RoyaltyEntryParam `json:"Entries"`
}

// NewRoyaltySet creates a new RoyaltySet transaction.
func NewRoyaltySet(account, collection, item string, royalties []RoyaltyEntryParam) *RoyaltySet {
	return &RoyaltySet{
		BaseTx:     *tx.NewBaseTx(tx.TypeRoyaltySet, account),
		Collection: collection,
		Item:       item,
		Entries:    royalties,
	}
}

func (r *RoyaltySet) TxType() tx.Type {
	return tx.TypeRoyaltySet
}

// Validate validates the RoyaltySet transaction.
func (r *RoyaltySet) Validate() error {
	if err := r.BaseTx.Validate(); err != nil {
		return err
	}
	if r.Collection == "" {
		return tx.ErrInvalidID
	}
	var total uint32
	for _, e := range r.Entries {
		if e.Recipient == "" {
			return tx.ErrInvalidID
		}
		if e.Bps > entries.MaxFeeBps {
			return tx.ErrInvalidFee
		}
		total += uint32(e.Bps)
	}
	if total > entries.MaxFeeBps {
		return tx.ErrInvalidFee
	}
	return nil
}

// Apply applies the RoyaltySet transaction to ledger state.
func (r *RoyaltySet) Apply(ctx *tx.ApplyContext) tx.Result {
	if !ctx.IsAdmin() {
		return tx.TecNO_PERMISSION
	}

	k := keylet.RoyaltyTable(r.Collection, r.Item)
	exists, err := ctx.View.Exists(k)
	if err != nil {
		return tx.TefINTERNAL
	}

	// An empty entry list unbinds the table.
	if len(r.Entries) == 0 {
		if !exists {
			return tx.TecNO_ENTRY
		}
		if err := ctx.View.Erase(k); err != nil {
			return tx.TefINTERNAL
		}
		return tx.TesSUCCESS
	}

	table := &entries.RoyaltyTable{
		Collection: r.Collection,
		Item:       r.Item,
		Entries:    make([]entries.RoyaltyEntry, 0, len(r.Entries)),
	}
	for _, e := range r.Entries {
		table.Entries = append(table.Entries, entries.RoyaltyEntry{
			Recipient: e.Recipient,
			Bps:       e.Bps,
		})
	}

	if exists {
		if err := ctx.View.UpdateEntry(k, table); err != nil {
			return tx.TefINTERNAL
		}
	} else {
		if err := ctx.View.InsertEntry(k, table); err != nil {
			return tx.TefINTERNAL
		}
	}

	return tx.TesSUCCESS
}
