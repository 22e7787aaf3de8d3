package pool

import (
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeItemBatchSell, func() tx.Transaction {
		return &ItemBatchSell{BaseTx: *tx.NewBaseTx(tx.TypeItemBatchSell, "")}
	})
}

// ItemBatchSell sells a set of items into the pool in order, repricing each
// sale against the already-updated reserve, so a batch of k items pays
// exactly what k sequential single sells would. The slippage bound is on the
// aggregate payout, and the batch is all-or-nothing.
type ItemBatchSell struct {
	tx.BaseTx

	Collection string   `json:"Collection"`
	Currency   string   `json:"Currency"`
	Items      []string `json:"Items"`

	// MinTotalOut is the aggregate slippage bound. Zero means no bound.
	MinTotalOut uint64 `json:"MinTotalOut,omitempty"`
}

// NewItemBatchSell creates a new ItemBatchSell transaction.
func NewItemBatchSell(account, collection, currency string, items []string, minTotalOut uint64) *ItemBatchSell {
	return &ItemBatchSell{
		BaseTx:      *tx.NewBaseTx(tx.TypeItemBatchSell, account),
		Collection:  collection,
		Currency:    currency,
		Items:       items,
		MinTotalOut: minTotalOut,
	}
}

func (s *ItemBatchSell) TxType() tx.Type {
	return tx.TypeItemBatchSell
}

// Validate validates the ItemBatchSell transaction.
func (s *ItemBatchSell) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.Collection == "" || s.Currency == "" {
		return tx.ErrInvalidID
	}
	if len(s.Items) == 0 {
		return tx.ErrEmptySet
	}
	seen := make(map[string]struct{}, len(s.Items))
	for _, id := range s.Items {
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

// Preclaim checks the batch size, the pool, and the seller's title to every
// item in the set.
func (s *ItemBatchSell) Preclaim(ctx *tx.ApplyContext) tx.Result {
	if len(s.Items) > ctx.MaxBatchSize() {
		return tx.TemOVERSIZE
	}
	if _, res := loadPool(ctx.View, s.Collection, s.Currency); !res.IsSuccess() {
		return res
	}
	for _, id := range s.Items {
		owner, res := tx.ItemOwner(ctx.View, s.Collection, id)
		if !res.IsSuccess() {
			return res
		}
		if owner != s.Account {
			return tx.TecNOT_OWNER
		}
	}
	return tx.TesSUCCESS
}

// Apply applies the ItemBatchSell transaction to ledger state.
func (s *ItemBatchSell) Apply(ctx *tx.ApplyContext) tx.Result {
	p, res := loadPool(ctx.View, s.Collection, s.Currency)
	if !res.IsSuccess() {
		return res
	}

	var total uint64
	trades := make([]tx.Trade, 0, len(s.Items))

	for _, id := range s.Items {
		if p.HasItem(id) {
			return tx.TecDUPLICATE
		}
		quote, res := SellQuote(p.CurrencyReserve, p.ItemCount(), p.FeeBps)
		if !res.IsSuccess() {
			return res
		}

		p.CurrencyReserve -= quote.Gross
		p.AccumulatedFees += quote.Fee
		if err := p.InsertItem(id); err != nil {
			return tx.TecDUPLICATE
		}
		total += quote.Net

		trades = append(trades, tx.Trade{
			Collection: s.Collection,
			Currency:   s.Currency,
			Item:       id,
			Trader:     s.Account,
			Side:       "sell",
			Gross:      quote.Gross,
			Fee:        quote.Fee,
			Net:        quote.Net,
		})
	}

	if s.MinTotalOut > 0 && total < s.MinTotalOut {
		return tx.TecSLIPPAGE
	}

	if res := savePool(ctx.View, p); !res.IsSuccess() {
		return res
	}

	for _, id := range s.Items {
		if res := tx.TransferItem(ctx.View, s.Collection, id, s.Account, p.Account); !res.IsSuccess() {
			return res
		}
	}
	if res := tx.Credit(ctx.View, s.Account, s.Currency, total); !res.IsSuccess() {
		return res
	}

	for _, t := range trades {
		ctx.RecordTrade(t)
	}

	return tx.TesSUCCESS
}
