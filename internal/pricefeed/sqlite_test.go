package pricefeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nftswapd/internal/core/tx"
)

func TestSQLiteRecorderRoundtrip(t *testing.T) {
	r, err := NewSQLiteRecorder(":memory:")
	require.NoError(t, err)
	defer r.Close()

	r.Record([]tx.Trade{
		{Collection: "punks", Currency: "USD", Item: "p1", Trader: "alice", Side: "sell", Gross: 1000, Fee: 30, Net: 970},
		{Collection: "punks", Currency: "USD", Item: "p2", Trader: "bob", Side: "buy", Gross: 1030, Fee: 30, Net: 1000},
	})

	require.Eventually(t, func() bool {
		trades, err := r.Recent("punks", "USD", 10)
		return err == nil && len(trades) == 2
	}, 2*time.Second, 10*time.Millisecond)

	trades, err := r.Recent("punks", "USD", 10)
	require.NoError(t, err)
	// Newest first.
	assert.Equal(t, "p2", trades[0].Item)
	assert.Equal(t, "buy", trades[0].Side)
	assert.Equal(t, uint64(1030), trades[0].Gross)
	assert.Equal(t, "p1", trades[1].Item)
	assert.Equal(t, uint64(970), trades[1].Net)
}

func TestSQLiteRecorderFiltersPool(t *testing.T) {
	r, err := NewSQLiteRecorder(":memory:")
	require.NoError(t, err)
	defer r.Close()

	r.Record([]tx.Trade{
		{Collection: "punks", Currency: "USD", Item: "p1", Trader: "a", Side: "sell", Gross: 10, Fee: 1, Net: 9},
		{Collection: "cats", Currency: "USD", Item: "c1", Trader: "a", Side: "sell", Gross: 20, Fee: 1, Net: 19},
	})

	require.Eventually(t, func() bool {
		trades, err := r.Recent("cats", "USD", 10)
		return err == nil && len(trades) == 1
	}, 2*time.Second, 10*time.Millisecond)

	trades, err := r.Recent("punks", "EUR", 10)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestSQLiteRecorderCloseFlushes(t *testing.T) {
	r, err := NewSQLiteRecorder(":memory:")
	require.NoError(t, err)

	r.Record([]tx.Trade{
		{Collection: "punks", Currency: "USD", Item: "p1", Trader: "a", Side: "sell", Gross: 10, Fee: 1, Net: 9},
	})

	// Close drains the queue before shutting the db.
	require.NoError(t, r.Close())
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = Noop{}
	r.Record([]tx.Trade{{Collection: "x"}})
	trades, err := r.Recent("x", "USD", 10)
	require.NoError(t, err)
	assert.Empty(t, trades)
	assert.NoError(t, r.Close())
}
