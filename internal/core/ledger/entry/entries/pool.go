package entries

import (
	"errors"
	"fmt"

	"nftswapd/internal/core/ledger/entry"
)

// MaxFeeBps is the full fee scale: 10000 basis points == 100%.
const MaxFeeBps = 10000

func init() {
	entry.RegisterType(entry.TypePool, func() entry.Entry { return &Pool{} })
}

// Pool is the reserve ledger of one (collection, currency) pair. It is the
// single source of truth for that pair: currency reserve, accumulated swap
// fees (tracked separately so share withdrawal math stays exact), total
// liquidity-share supply, and the ordered item inventory.
type Pool struct {
	BaseEntry

	// Collection and Currency identify the pool; the pair is unique.
	Collection string
	Currency   string

	// Account is the pool's pseudo-account. It owns the items held in
	// inventory.
	Account string

	// CurrencyReserve is the currency backing liquidity shares. It excludes
	// AccumulatedFees.
	CurrencyReserve uint64

	// AccumulatedFees is the fee pool owed to current share holders,
	// disjoint from CurrencyReserve.
	AccumulatedFees uint64

	// TotalShares is the outstanding liquidity-share supply. The sum of all
	// SharePosition entries for this pool must equal it.
	TotalShares uint64

	// FeeBps is the swap fee in basis points.
	FeeBps uint16

	// Items is the ordered inventory. itemIndex maps an item id to its
	// position in Items and is rebuilt after decoding.
	Items []string

	itemIndex map[string]int `codec:"-"`
}

func (p *Pool) Type() entry.Type {
	return entry.TypePool
}

func (p *Pool) Validate() error {
	if p.Collection == "" {
		return errors.New("collection is required")
	}
	if p.Currency == "" {
		return errors.New("currency is required")
	}
	if p.Account == "" {
		return errors.New("pool account is required")
	}
	if p.FeeBps > MaxFeeBps {
		return fmt.Errorf("fee %d exceeds %d basis points", p.FeeBps, MaxFeeBps)
	}
	return nil
}

// Reindex rebuilds the item position index from the ordered inventory.
// Called automatically after decoding.
func (p *Pool) Reindex() {
	p.itemIndex = make(map[string]int, len(p.Items))
	for i, id := range p.Items {
		p.itemIndex[id] = i
	}
}

// ItemCount returns the number of items held by the pool.
func (p *Pool) ItemCount() uint64 {
	return uint64(len(p.Items))
}

// HasItem reports whether the item is in the pool's inventory.
func (p *Pool) HasItem(id string) bool {
	if p.itemIndex == nil {
		p.Reindex()
	}
	_, ok := p.itemIndex[id]
	return ok
}

// InsertItem appends an item to the inventory and records its position.
// Inserting an id already present is an error.
func (p *Pool) InsertItem(id string) error {
	if id == "" {
		return errors.New("item id is required")
	}
	if p.itemIndex == nil {
		p.Reindex()
	}
	if _, ok := p.itemIndex[id]; ok {
		return fmt.Errorf("item %s already in pool", id)
	}
	p.itemIndex[id] = len(p.Items)
	p.Items = append(p.Items, id)
	return nil
}

// RemoveItem removes an item in O(1): the target is swapped with the last
// element (updating the moved element's recorded position) and the sequence
// is truncated. Removing an absent id is an error.
func (p *Pool) RemoveItem(id string) error {
	if p.itemIndex == nil {
		p.Reindex()
	}
	pos, ok := p.itemIndex[id]
	if !ok {
		return fmt.Errorf("item %s not in pool", id)
	}
	last := len(p.Items) - 1
	if pos != last {
		moved := p.Items[last]
		p.Items[pos] = moved
		p.itemIndex[moved] = pos
	}
	p.Items = p.Items[:last]
	delete(p.itemIndex, id)
	return nil
}

// CheckInvariants verifies the pool's structural invariants: the position
// index matches the ordered sequence exactly, with no duplicates.
func (p *Pool) CheckInvariants() error {
	if p.itemIndex == nil {
		p.Reindex()
	}
	if len(p.itemIndex) != len(p.Items) {
		return fmt.Errorf("item index size %d != inventory size %d", len(p.itemIndex), len(p.Items))
	}
	for i, id := range p.Items {
		pos, ok := p.itemIndex[id]
		if !ok {
			return fmt.Errorf("item %s missing from index", id)
		}
		if pos != i {
			return fmt.Errorf("item %s indexed at %d, actual position %d", id, pos, i)
		}
	}
	return nil
}
