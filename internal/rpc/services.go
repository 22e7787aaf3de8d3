package rpc

import (
	"time"

	"nftswapd/internal/core/ledger"
	"nftswapd/internal/core/ledger/manager"
	"nftswapd/internal/core/tx"
	"nftswapd/internal/pricefeed"
)

// Services bundles everything the method handlers read from. Snapshots,
// Feed and Cache may be nil when the corresponding subsystem is disabled.
type Services struct {
	Ledger    *ledger.Ledger
	Engine    *tx.Engine
	Feed      pricefeed.Recorder
	Snapshots *manager.SnapshotStore

	// Cache holds decoded entries for the query methods. Submit invalidates
	// every key its transaction touched.
	Cache *manager.EntryCache

	Version   string
	StartTime time.Time
}
