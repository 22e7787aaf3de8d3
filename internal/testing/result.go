package testing

import "nftswapd/internal/core/tx"

// TxResult is the outcome of one submitted transaction.
type TxResult struct {
	// Code is the result code name, e.g. "tesSUCCESS" or "tecDRY".
	Code string

	// Success is true only for tesSUCCESS.
	Success bool

	// Applied reports whether the transaction changed ledger state.
	Applied bool

	// Message is the human-readable result message.
	Message string

	// Metadata carries the affected nodes and executed trades.
	Metadata *tx.Metadata
}

// Trades returns the swap legs executed by the transaction.
func (r TxResult) Trades() []tx.Trade {
	if r.Metadata == nil {
		return nil
	}
	return r.Metadata.Trades
}
