package pool

import (
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/keylet"
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypePoolCreate, func() tx.Transaction {
		return &PoolCreate{BaseTx: *tx.NewBaseTx(tx.TypePoolCreate, "")}
	})
}

// PoolCreate creates the pool for a (collection, currency) pair and seeds it
// in the same transaction: the initial items move into inventory and the
// initial amount enters the reserve with shares minted 1:1 to the creator.
// Both seeds may be empty, in which case liquidity arrives later through
// LiquidityDeposit and ItemDeposit. At most one pool exists per pair.
type PoolCreate struct {
	tx.BaseTx

	// Collection and Currency identify the pool.
	Collection string `json:"Collection"`
	Currency   string `json:"Currency"`

	// FeeBps is the swap fee in basis points.
	FeeBps uint16 `json:"FeeBps"`

	// InitialItems seed the inventory. The creator must own every id.
	InitialItems []string `json:"InitialItems,omitempty"`

	// InitialAmount seeds the reserve. Shares are minted 1:1 against it.
	InitialAmount uint64 `json:"InitialAmount,omitempty"`
}

// NewPoolCreate creates a new unseeded PoolCreate transaction.
func NewPoolCreate(account, collection, currency string, feeBps uint16) *PoolCreate {
	return &PoolCreate{
		BaseTx:     *tx.NewBaseTx(tx.TypePoolCreate, account),
		Collection: collection,
		Currency:   currency,
		FeeBps:     feeBps,
	}
}

// NewPoolCreateSeeded creates a PoolCreate transaction carrying initial
// inventory and reserve.
func NewPoolCreateSeeded(account, collection, currency string, feeBps uint16, items []string, amt uint64) *PoolCreate {
	p := NewPoolCreate(account, collection, currency, feeBps)
	p.InitialItems = items
	p.InitialAmount = amt
	return p
}

func (p *PoolCreate) TxType() tx.Type {
	return tx.TypePoolCreate
}

// Validate validates the PoolCreate transaction.
func (p *PoolCreate) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.Collection == "" || p.Currency == "" {
		return tx.ErrInvalidID
	}
	if p.FeeBps > entries.MaxFeeBps {
		return tx.ErrInvalidFee
	}
	seen := make(map[string]struct{}, len(p.InitialItems))
	for _, id := range p.InitialItems {
		if id == "" {
			return tx.ErrInvalidID
		}
		if _, dup := seen[id]; dup {
			return tx.ErrInvalidID
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Preclaim checks the seed size and the creator's title to every initial
// item. The pool itself must not exist yet; Apply checks that.
func (p *PoolCreate) Preclaim(ctx *tx.ApplyContext) tx.Result {
	if len(p.InitialItems) > ctx.MaxBatchSize() {
		return tx.TemOVERSIZE
	}
	for _, id := range p.InitialItems {
		owner, res := tx.ItemOwner(ctx.View, p.Collection, id)
		if !res.IsSuccess() {
			return res
		}
		if owner != p.Account {
			return tx.TecNOT_OWNER
		}
	}
	return tx.TesSUCCESS
}

// Apply applies the PoolCreate transaction to ledger state.
func (p *PoolCreate) Apply(ctx *tx.ApplyContext) tx.Result {
	// Configured fee bounds. A zero MaxFeeBps means the full scale.
	maxFee := ctx.Config.MaxFeeBps
	if maxFee == 0 {
		maxFee = entries.MaxFeeBps
	}
	if p.FeeBps < ctx.Config.MinFeeBps || p.FeeBps > maxFee {
		return tx.TemBAD_FEE
	}

	poolKey := keylet.Pool(p.Collection, p.Currency)
	exists, err := ctx.View.Exists(poolKey)
	if err != nil {
		return tx.TefINTERNAL
	}
	if exists {
		return tx.TecDUPLICATE
	}

	entry := &entries.Pool{
		Collection:      p.Collection,
		Currency:        p.Currency,
		Account:         PoolAccount(p.Collection, p.Currency),
		CurrencyReserve: p.InitialAmount,
		TotalShares:     p.InitialAmount,
		FeeBps:          p.FeeBps,
	}
	entry.Reindex()
	for _, id := range p.InitialItems {
		if err := entry.InsertItem(id); err != nil {
			return tx.TecDUPLICATE
		}
	}

	if err := ctx.View.InsertEntry(poolKey, entry); err != nil {
		return tx.TefINTERNAL
	}

	if p.InitialAmount > 0 {
		pos := &entries.SharePosition{
			Collection: p.Collection,
			Currency:   p.Currency,
			Provider:   p.Account,
			Shares:     p.InitialAmount,
		}
		posKey := keylet.SharePosition(p.Collection, p.Currency, p.Account)
		if err := ctx.View.InsertEntry(posKey, pos); err != nil {
			return tx.TefINTERNAL
		}
	}

	// Custody moves last.
	for _, id := range p.InitialItems {
		if res := tx.TransferItem(ctx.View, p.Collection, id, p.Account, entry.Account); !res.IsSuccess() {
			return res
		}
	}
	if p.InitialAmount > 0 {
		if res := tx.Debit(ctx.View, p.Account, p.Currency, p.InitialAmount); !res.IsSuccess() {
			return res
		}
	}

	return tx.TesSUCCESS
}
