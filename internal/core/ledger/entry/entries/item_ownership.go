package entries

import (
	"errors"

	"nftswapd/internal/core/ledger/entry"
)

func init() {
	entry.RegisterType(entry.TypeItemOwnership, func() entry.Entry { return &ItemOwnership{} })
}

// ItemOwnership records the current owner of one discrete item. Item
// transfer is a rewrite of this entry; the transfer helper enforces the
// ownership precondition before rewriting.
type ItemOwnership struct {
	BaseEntry

	Collection string
	Item       string
	Owner      string
}

func (o *ItemOwnership) Type() entry.Type {
	return entry.TypeItemOwnership
}

func (o *ItemOwnership) Validate() error {
	if o.Collection == "" {
		return errors.New("collection is required")
	}
	if o.Item == "" {
		return errors.New("item id is required")
	}
	if o.Owner == "" {
		return errors.New("owner is required")
	}
	return nil
}
