package entries

import (
	"errors"

	"nftswapd/internal/core/ledger/entry"
)

func init() {
	entry.RegisterType(entry.TypeSharePosition, func() entry.Entry { return &SharePosition{} })
}

// SharePosition records one provider's liquidity shares in one pool.
// Positions are separate entries rather than a map inside the pool so a
// pool's size does not grow with its provider count; the pool's TotalShares
// must equal the sum of its positions.
type SharePosition struct {
	BaseEntry

	Collection string
	Currency   string
	Provider   string
	Shares     uint64
}

func (s *SharePosition) Type() entry.Type {
	return entry.TypeSharePosition
}

func (s *SharePosition) Validate() error {
	if s.Collection == "" {
		return errors.New("collection is required")
	}
	if s.Currency == "" {
		return errors.New("currency is required")
	}
	if s.Provider == "" {
		return errors.New("provider is required")
	}
	return nil
}
