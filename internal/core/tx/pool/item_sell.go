package pool

import (
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeItemSell, func() tx.Transaction {
		return &ItemSell{BaseTx: *tx.NewBaseTx(tx.TypeItemSell, "")}
	})
}

// ItemSell sells one item into the pool at the current discrete-inventory
// price. The full gross leaves the reserve: the net goes to the seller and
// the fee to the accumulated fee pool.
type ItemSell struct {
	tx.BaseTx

	Collection string `json:"Collection"`
	Currency   string `json:"Currency"`
	Item       string `json:"Item"`

	// MinOut is the seller's slippage bound on the net payout. Zero means
	// no bound; a zero-payout trade is then accepted.
	MinOut uint64 `json:"MinOut,omitempty"`
}

// NewItemSell creates a new ItemSell transaction.
func NewItemSell(account, collection, currency, item string, minOut uint64) *ItemSell {
	return &ItemSell{
		BaseTx:     *tx.NewBaseTx(tx.TypeItemSell, account),
		Collection: collection,
		Currency:   currency,
		Item:       item,
		MinOut:     minOut,
	}
}

func (s *ItemSell) TxType() tx.Type {
	return tx.TypeItemSell
}

// Validate validates the ItemSell transaction.
func (s *ItemSell) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.Collection == "" || s.Currency == "" || s.Item == "" {
		return tx.ErrInvalidID
	}
	return nil
}

// Preclaim checks the pool and the seller's title.
func (s *ItemSell) Preclaim(ctx *tx.ApplyContext) tx.Result {
	if _, res := loadPool(ctx.View, s.Collection, s.Currency); !res.IsSuccess() {
		return res
	}
	owner, res := tx.ItemOwner(ctx.View, s.Collection, s.Item)
	if !res.IsSuccess() {
		return res
	}
	if owner != s.Account {
		return tx.TecNOT_OWNER
	}
	return tx.TesSUCCESS
}

// Apply applies the ItemSell transaction to ledger state.
func (s *ItemSell) Apply(ctx *tx.ApplyContext) tx.Result {
	p, res := loadPool(ctx.View, s.Collection, s.Currency)
	if !res.IsSuccess() {
		return res
	}
	if p.HasItem(s.Item) {
		return tx.TecDUPLICATE
	}

	quote, res := SellQuote(p.CurrencyReserve, p.ItemCount(), p.FeeBps)
	if !res.IsSuccess() {
		return res
	}
	if s.MinOut > 0 && quote.Net < s.MinOut {
		return tx.TecSLIPPAGE
	}

	// Pool effects first, custody transfers last.
	p.CurrencyReserve -= quote.Gross
	p.AccumulatedFees += quote.Fee
	if err := p.InsertItem(s.Item); err != nil {
		return tx.TecDUPLICATE
	}
	if res := savePool(ctx.View, p); !res.IsSuccess() {
		return res
	}

	if res := tx.TransferItem(ctx.View, s.Collection, s.Item, s.Account, p.Account); !res.IsSuccess() {
		return res
	}
	if res := tx.Credit(ctx.View, s.Account, s.Currency, quote.Net); !res.IsSuccess() {
		return res
	}

	ctx.RecordTrade(tx.Trade{
		Collection: s.Collection,
		Currency:   s.Currency,
		Item:       s.Item,
		Trader:     s.Account,
		Side:       "sell",
		Gross:      quote.Gross,
		Fee:        quote.Fee,
		Net:        quote.Net,
	})

	return tx.TesSUCCESS
}
