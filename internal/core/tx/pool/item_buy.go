package pool

import (
	"nftswapd/internal/core/amount"
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeItemBuy, func() tx.Transaction {
		return &ItemBuy{BaseTx: *tx.NewBaseTx(tx.TypeItemBuy, "")}
	})
}

// ItemBuy buys a specific item out of the pool. The buyer is charged exactly
// the grossed-up price: the net enters the reserve and the fee the
// accumulated fee pool. The pool must retain at least one item afterwards.
type ItemBuy struct {
	tx.BaseTx

	Collection string `json:"Collection"`
	Currency   string `json:"Currency"`
	Item       string `json:"Item"`

	// MaxIn is the buyer's slippage bound on the gross charge. Zero means
	// no bound.
	MaxIn uint64 `json:"MaxIn,omitempty"`
}

// NewItemBuy creates a new ItemBuy transaction.
func NewItemBuy(account, collection, currency, item string, maxIn uint64) *ItemBuy {
	return &ItemBuy{
		BaseTx:     *tx.NewBaseTx(tx.TypeItemBuy, account),
		Collection: collection,
		Currency:   currency,
		Item:       item,
		MaxIn:      maxIn,
	}
}

func (b *ItemBuy) TxType() tx.Type {
	return tx.TypeItemBuy
}

// Validate validates the ItemBuy transaction.
func (b *ItemBuy) Validate() error {
	if err := b.BaseTx.Validate(); err != nil {
		return err
	}
	if b.Collection == "" || b.Currency == "" || b.Item == "" {
		return tx.ErrInvalidID
	}
	return nil
}

// Preclaim checks the pool and that it holds the requested item.
func (b *ItemBuy) Preclaim(ctx *tx.ApplyContext) tx.Result {
	p, res := loadPool(ctx.View, b.Collection, b.Currency)
	if !res.IsSuccess() {
		return res
	}
	if !p.HasItem(b.Item) {
		return tx.TecITEM_NOT_IN_POOL
	}
	return tx.TesSUCCESS
}

// Apply applies the ItemBuy transaction to ledger state.
func (b *ItemBuy) Apply(ctx *tx.ApplyContext) tx.Result {
	p, res := loadPool(ctx.View, b.Collection, b.Currency)
	if !res.IsSuccess() {
		return res
	}
	if !p.HasItem(b.Item) {
		return tx.TecITEM_NOT_IN_POOL
	}

	quote, res := BuyQuote(p.CurrencyReserve, p.ItemCount(), p.FeeBps)
	if !res.IsSuccess() {
		return res
	}
	if b.MaxIn > 0 && quote.Gross > b.MaxIn {
		return tx.TecSLIPPAGE
	}

	reserve, err := amount.New(p.CurrencyReserve).Add(amount.New(quote.Net))
	if err != nil {
		return tx.TecINTERNAL
	}
	fees, err := amount.New(p.AccumulatedFees).Add(amount.New(quote.Fee))
	if err != nil {
		return tx.TecINTERNAL
	}
	p.CurrencyReserve = reserve.Uint64()
	p.AccumulatedFees = fees.Uint64()
	if err := p.RemoveItem(b.Item); err != nil {
		return tx.TefINTERNAL
	}
	if res := savePool(ctx.View, p); !res.IsSuccess() {
		return res
	}

	if res := tx.Debit(ctx.View, b.Account, b.Currency, quote.Gross); !res.IsSuccess() {
		return res
	}
	if res := tx.TransferItem(ctx.View, b.Collection, b.Item, p.Account, b.Account); !res.IsSuccess() {
		return res
	}

	ctx.RecordTrade(tx.Trade{
		Collection: b.Collection,
		Currency:   b.Currency,
		Item:       b.Item,
		Trader:     b.Account,
		Side:       "buy",
		Gross:      quote.Gross,
		Fee:        quote.Fee,
		Net:        quote.Net,
	})

	return tx.TesSUCCESS
}
