// Package pricefeed persists executed trades for the external price oracle.
// The engine notifies it after each applied swap; aggregation and staleness
// handling live in the oracle, not here.
package pricefeed

import (
	"nftswapd/internal/core/tx"
)

// Recorder receives trades from applied transactions and can be queried for
// recent history. It extends the engine's TradeRecorder with a lifecycle.
type Recorder interface {
	tx.TradeRecorder

	// Recent returns up to limit trades for a pool, newest first.
	Recent(collection, currency string, limit int) ([]RecordedTrade, error)

	// Close flushes pending writes and releases resources.
	Close() error
}

// RecordedTrade is one persisted trade row.
type RecordedTrade struct {
	Collection string `json:"collection"`
	Currency   string `json:"currency"`
	Item       string `json:"item"`
	Trader     string `json:"trader"`
	Side       string `json:"side"`
	Gross      uint64 `json:"gross"`
	Fee        uint64 `json:"fee"`
	Net        uint64 `json:"net"`
	Sequence   uint32 `json:"sequence"`
	RecordedAt int64  `json:"recorded_at"`
}

// Noop discards all trades. Used when the feed is disabled in config.
type Noop struct{}

func (Noop) Record(trades []tx.Trade) {}

func (Noop) Recent(collection, currency string, limit int) ([]RecordedTrade, error) {
	return nil, nil
}

func (Noop) Close() error { return nil }
