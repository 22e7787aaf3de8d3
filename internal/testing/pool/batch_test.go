package pool

import (
	"testing"

	"nftswapd/internal/core/tx"
	pooltx "nftswapd/internal/core/tx/pool"
	nftest "nftswapd/internal/testing"
)

// mintToSeller mints items straight to bob without touching the pool.
func mintToSeller(t *testing.T, env *nftest.TestEnv, items ...string) {
	t.Helper()
	for _, id := range items {
		env.MintItem(collection, id, "bob")
	}
}

func TestBatchSellMatchesSequentialSells(t *testing.T) {
	batch := newPoolEnv(t, 300, 10000)
	seedInventory(t, batch, "seed-1", "seed-2", "seed-3", "seed-4", "seed-5")
	mintToSeller(t, batch, "punk-1", "punk-2", "punk-3")

	sequential := newPoolEnv(t, 300, 10000)
	seedInventory(t, sequential, "seed-1", "seed-2", "seed-3", "seed-4", "seed-5")
	mintToSeller(t, sequential, "punk-1", "punk-2", "punk-3")

	items := []string{"punk-1", "punk-2", "punk-3"}
	batch.RequireSuccess(batch.Submit(pooltx.NewItemBatchSell("bob", collection, currency, items, 0)))
	for _, id := range items {
		sequential.RequireSuccess(sequential.Submit(pooltx.NewItemSell("bob", collection, currency, id, 0)))
	}

	bp, sp := batch.Pool(collection, currency), sequential.Pool(collection, currency)
	if bp.CurrencyReserve != sp.CurrencyReserve || bp.AccumulatedFees != sp.AccumulatedFees {
		t.Fatalf("batch diverges from sequential: batch reserve=%d fees=%d, sequential reserve=%d fees=%d",
			bp.CurrencyReserve, bp.AccumulatedFees, sp.CurrencyReserve, sp.AccumulatedFees)
	}
	if got, want := batch.Balance("bob", currency), sequential.Balance("bob", currency); got != want {
		t.Fatalf("batch payout %d, sequential payout %d", got, want)
	}
	batch.CheckInvariants()
	sequential.CheckInvariants()
}

func TestBatchSellAllOrNothing(t *testing.T) {
	env := newPoolEnv(t, 300, 10000)
	seedInventory(t, env, "seed-1", "seed-2")
	mintToSeller(t, env, "punk-1", "punk-2")

	items := []string{"punk-1", "punk-2"}
	result := env.Submit(pooltx.NewItemBatchSell("bob", collection, currency, items, 100000))
	env.RequireResult(result, "tecSLIPPAGE")

	// Nothing moved: title, balances and the pool are untouched.
	env.ExpectOwner(collection, "punk-1", "bob")
	env.ExpectOwner(collection, "punk-2", "bob")
	env.ExpectBalance("bob", currency, 0)
	p := env.Pool(collection, currency)
	if p.CurrencyReserve != 10000 || p.AccumulatedFees != 0 || p.ItemCount() != 2 {
		t.Fatalf("failed batch left state: %+v", p)
	}
	env.CheckInvariants()
}

func TestBatchSellRejectsForeignItem(t *testing.T) {
	env := newPoolEnv(t, 300, 10000)
	mintToSeller(t, env, "punk-1")
	env.MintItem(collection, "punk-2", "carol")

	items := []string{"punk-1", "punk-2"}
	env.RequireResult(env.Submit(pooltx.NewItemBatchSell("bob", collection, currency, items, 0)), "tecNOT_OWNER")
	env.ExpectOwner(collection, "punk-1", "bob")
	env.ExpectBalance("bob", currency, 0)
	env.CheckInvariants()
}

func TestBatchSellSizeLimit(t *testing.T) {
	env := newPoolEnvWithConfig(t, tx.EngineConfig{MaxBatchSize: 2}, 300, 10000)
	mintToSeller(t, env, "punk-1", "punk-2", "punk-3")

	over := []string{"punk-1", "punk-2", "punk-3"}
	env.RequireResult(env.Submit(pooltx.NewItemBatchSell("bob", collection, currency, over, 0)), "temOVERSIZE")

	within := []string{"punk-1", "punk-2"}
	env.RequireSuccess(env.Submit(pooltx.NewItemBatchSell("bob", collection, currency, within, 0)))
	env.CheckInvariants()
}

func TestBatchSellMalformedSets(t *testing.T) {
	env := newPoolEnv(t, 300, 10000)
	mintToSeller(t, env, "punk-1")

	env.RequireResult(env.Submit(pooltx.NewItemBatchSell("bob", collection, currency, nil, 0)), "temEMPTY_SET")
	env.RequireResult(env.Submit(
		pooltx.NewItemBatchSell("bob", collection, currency, []string{"punk-1", "punk-1"}, 0)), "temBAD_ID")
	env.RequireResult(env.Submit(
		pooltx.NewItemBatchSell("bob", collection, currency, []string{"punk-1", ""}, 0)), "temBAD_ID")
}

func TestBatchSellAggregateSlippageBound(t *testing.T) {
	env := newPoolEnv(t, 300, 10000)
	seedInventory(t, env, "seed-1", "seed-2", "seed-3", "seed-4", "seed-5")
	mintToSeller(t, env, "punk-1", "punk-2", "punk-3")

	// Aggregate payout for the three sells against N=5..7:
	// 1666-49=1617, 1190-35=1155, 893-26=867, total 3639.
	items := []string{"punk-1", "punk-2", "punk-3"}
	env.RequireResult(env.Submit(pooltx.NewItemBatchSell("bob", collection, currency, items, 3640)), "tecSLIPPAGE")
	env.RequireSuccess(env.Submit(pooltx.NewItemBatchSell("bob", collection, currency, items, 3639)))
	env.ExpectBalance("bob", currency, 3639)
	env.CheckInvariants()
}
