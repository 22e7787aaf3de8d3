package pool

import (
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypePoolFeeSet, func() tx.Transaction {
		return &PoolFeeSet{BaseTx: *tx.NewBaseTx(tx.TypePoolFeeSet, "")}
	})
}

// PoolFeeSet changes a pool's swap fee. Gated by the configured
// administrator account: the capability is a configuration fact, not
// ambient ledger state.
type PoolFeeSet struct {
	tx.BaseTx

	Collection string `json:"Collection"`
	Currency   string `json:"Currency"`
	FeeBps     uint16 `json:"FeeBps"`
}

// NewPoolFeeSet creates a new PoolFeeSet transaction.
func NewPoolFeeSet(account, collection, currency string, feeBps uint16) *PoolFeeSet {
	return &PoolFeeSet{
		BaseTx:     *tx.NewBaseTx(tx.TypePoolFeeSet, account),
		Collection: collection,
		Currency:   currency,
		FeeBps:     feeBps,
	}
}

func (f *PoolFeeSet) TxType() tx.Type {
	return tx.TypePoolFeeSet
}

// Validate validates the PoolFeeSet transaction.
func (f *PoolFeeSet) Validate() error {
	if err := f.BaseTx.Validate(); err != nil {
		return err
	}
	if f.Collection == "" || f.Currency == "" {
		return tx.ErrInvalidID
	}
	if f.FeeBps > entries.MaxFeeBps {
		return tx.ErrInvalidFee
	}
	return nil
}

// Apply applies the PoolFeeSet transaction to ledger state.
func (f *PoolFeeSet) Apply(ctx *tx.ApplyContext) tx.Result {
	if !ctx.IsAdmin() {
		return tx.TecNO_PERMISSION
	}

	maxFee := ctx.Config.MaxFeeBps
	if maxFee == 0 {
		maxFee = entries.MaxFeeBps
	}
	if f.FeeBps < ctx.Config.MinFeeBps || f.FeeBps > maxFee {
		return tx.TemBAD_FEE
	}

	p, res := loadPool(ctx.View, f.Collection, f.Currency)
	if !res.IsSuccess() {
		return res
	}

	p.FeeBps = f.FeeBps
	return savePool(ctx.View, p)
}
