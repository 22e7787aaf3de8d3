package entries

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nftswapd/internal/core/ledger/entry"
)

func newTestPool() *Pool {
	p := &Pool{
		Collection: "kittens",
		Currency:   "USD",
		Account:    "pool-kittens-usd",
		FeeBps:     300,
	}
	p.Reindex()
	return p
}

func TestPoolInsertRemove(t *testing.T) {
	p := newTestPool()

	require.NoError(t, p.InsertItem("a"))
	require.NoError(t, p.InsertItem("b"))
	require.NoError(t, p.InsertItem("c"))
	assert.Equal(t, uint64(3), p.ItemCount())
	require.NoError(t, p.CheckInvariants())

	// Removing the middle element swaps the last into its slot.
	require.NoError(t, p.RemoveItem("b"))
	assert.Equal(t, []string{"a", "c"}, p.Items)
	require.NoError(t, p.CheckInvariants())

	// Removing an absent id fails.
	assert.Error(t, p.RemoveItem("b"))

	// Re-inserting a previously removed id is permitted.
	require.NoError(t, p.InsertItem("b"))
	assert.True(t, p.HasItem("b"))
	require.NoError(t, p.CheckInvariants())

	// Duplicates are rejected.
	assert.Error(t, p.InsertItem("a"))
}

func TestPoolRemoveLast(t *testing.T) {
	p := newTestPool()
	require.NoError(t, p.InsertItem("only"))
	require.NoError(t, p.RemoveItem("only"))
	assert.Equal(t, uint64(0), p.ItemCount())
	assert.False(t, p.HasItem("only"))
	require.NoError(t, p.CheckInvariants())
}

func TestPoolIndexAfterManyOperations(t *testing.T) {
	p := newTestPool()
	for i := 0; i < 100; i++ {
		require.NoError(t, p.InsertItem(fmt.Sprintf("item-%d", i)))
	}
	// Remove every third item, then reinsert a few.
	for i := 0; i < 100; i += 3 {
		require.NoError(t, p.RemoveItem(fmt.Sprintf("item-%d", i)))
	}
	for i := 0; i < 30; i += 3 {
		require.NoError(t, p.InsertItem(fmt.Sprintf("item-%d", i)))
	}
	require.NoError(t, p.CheckInvariants())
	assert.Equal(t, uint64(len(p.Items)), p.ItemCount())
}

func TestPoolCodecRoundTrip(t *testing.T) {
	p := newTestPool()
	p.CurrencyReserve = 1000
	p.AccumulatedFees = 30
	p.TotalShares = 500
	require.NoError(t, p.InsertItem("x"))
	require.NoError(t, p.InsertItem("y"))

	data, err := entry.Encode(p)
	require.NoError(t, err)
	assert.Equal(t, entry.TypePool, entry.TypeOf(data))

	decoded, err := entry.Decode(data)
	require.NoError(t, err)
	got, ok := decoded.(*Pool)
	require.True(t, ok)

	assert.Equal(t, p.Collection, got.Collection)
	assert.Equal(t, p.Currency, got.Currency)
	assert.Equal(t, p.CurrencyReserve, got.CurrencyReserve)
	assert.Equal(t, p.AccumulatedFees, got.AccumulatedFees)
	assert.Equal(t, p.TotalShares, got.TotalShares)
	assert.Equal(t, p.FeeBps, got.FeeBps)
	assert.Equal(t, p.Items, got.Items)

	// The position index is rebuilt on decode.
	require.NoError(t, got.CheckInvariants())
	assert.True(t, got.HasItem("x"))
	require.NoError(t, got.RemoveItem("x"))
	require.NoError(t, got.CheckInvariants())
}

func TestPoolValidate(t *testing.T) {
	p := newTestPool()
	require.NoError(t, p.Validate())

	p.FeeBps = MaxFeeBps + 1
	assert.Error(t, p.Validate())

	p = newTestPool()
	p.Collection = ""
	assert.Error(t, p.Validate())
}
