package tx

// ApplyContext provides the state and helpers needed to apply a transaction.
// It is passed to Appliable.Apply() instead of individual parameters.
type ApplyContext struct {
	// View is the buffered state table. All reads and writes go through it;
	// the engine commits it only on success.
	View *ApplyStateTable

	// Account is the submitting account.
	Account string

	// Config holds engine configuration (admin account, fee bounds, batch
	// limit, royalty policy).
	Config EngineConfig

	// TxHash is the hash of the current transaction.
	TxHash [32]byte

	// Seq is the apply sequence the transaction executes in.
	Seq uint32

	// Metadata collects trades and affected entries for the result.
	Metadata *Metadata
}

// MaxBatchSize returns the configured batch sell limit.
func (ctx *ApplyContext) MaxBatchSize() int {
	if ctx.Config.MaxBatchSize <= 0 {
		return DefaultMaxBatchSize
	}
	return ctx.Config.MaxBatchSize
}

// IsAdmin reports whether the submitting account is the configured admin.
func (ctx *ApplyContext) IsAdmin() bool {
	return ctx.Config.AdminAccount != "" && ctx.Account == ctx.Config.AdminAccount
}

// RecordTrade appends an executed swap leg to the transaction metadata.
func (ctx *ApplyContext) RecordTrade(t Trade) {
	ctx.Metadata.Trades = append(ctx.Metadata.Trades, t)
}
