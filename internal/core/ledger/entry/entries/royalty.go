package entries

import (
	"errors"
	"fmt"

	"nftswapd/internal/core/ledger/entry"
)

func init() {
	entry.RegisterType(entry.TypeRoyaltyTable, func() entry.Entry { return &RoyaltyTable{} })
	entry.RegisterType(entry.TypePendingRoyalty, func() entry.Entry { return &PendingRoyalty{} })
}

// RoyaltyEntry is one (recipient, basis points) pair in a royalty table.
type RoyaltyEntry struct {
	Recipient string
	Bps       uint16
}

// RoyaltyTable holds the ordered royalty split for a collection, or for a
// single item when Item is non-empty (the per-item table overrides the
// collection-level one).
type RoyaltyTable struct {
	BaseEntry

	Collection string
	Item       string
	Entries    []RoyaltyEntry
}

func (r *RoyaltyTable) Type() entry.Type {
	return entry.TypeRoyaltyTable
}

func (r *RoyaltyTable) Validate() error {
	if r.Collection == "" {
		return errors.New("collection is required")
	}
	var total uint32
	for i, e := range r.Entries {
		if e.Recipient == "" {
			return fmt.Errorf("royalty entry %d: recipient is required", i)
		}
		if e.Bps > MaxFeeBps {
			return fmt.Errorf("royalty entry %d: %d exceeds %d basis points", i, e.Bps, MaxFeeBps)
		}
		total += uint32(e.Bps)
	}
	if total > MaxFeeBps {
		return fmt.Errorf("royalty total %d exceeds %d basis points", total, MaxFeeBps)
	}
	return nil
}

// TotalBps returns the sum of all entries' basis points.
func (r *RoyaltyTable) TotalBps() uint32 {
	var total uint32
	for _, e := range r.Entries {
		total += uint32(e.Bps)
	}
	return total
}

// PendingRoyalty accrues a recipient's withdrawable royalty balance in one
// currency. The entry is created on first credit and kept (at zero) after
// withdrawal, so the balance can be credited again.
type PendingRoyalty struct {
	BaseEntry

	Recipient string
	Currency  string
	Amount    uint64
}

func (p *PendingRoyalty) Type() entry.Type {
	return entry.TypePendingRoyalty
}

func (p *PendingRoyalty) Validate() error {
	if p.Recipient == "" {
		return errors.New("recipient is required")
	}
	if p.Currency == "" {
		return errors.New("currency is required")
	}
	return nil
}
