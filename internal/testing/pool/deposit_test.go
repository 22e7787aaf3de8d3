package pool

import (
	"testing"

	"nftswapd/internal/core/tx"
	pooltx "nftswapd/internal/core/tx/pool"
	nftest "nftswapd/internal/testing"
)

func TestItemDepositMovesInventory(t *testing.T) {
	env := newPoolEnv(t, 300, 1000)
	env.MintItem(collection, "punk-1", "bob")
	env.MintItem(collection, "punk-2", "bob")
	env.MintItem(collection, "punk-3", "bob")

	env.RequireSuccess(env.Submit(pooltx.NewItemDeposit(
		"bob", collection, currency, "punk-1", "punk-2", "punk-3")))

	p := env.Pool(collection, currency)
	if p.ItemCount() != 3 {
		t.Fatalf("expected 3 items in inventory, got %d", p.ItemCount())
	}
	// Item deposits mint nothing: the share supply stays alice's.
	if p.TotalShares != 1000 {
		t.Fatalf("deposit touched share supply: %d", p.TotalShares)
	}
	env.ExpectShares(collection, currency, "bob", 0)
	env.ExpectOwner(collection, "punk-1", p.Account)
	env.ExpectOwner(collection, "punk-2", p.Account)
	env.ExpectOwner(collection, "punk-3", p.Account)
	env.CheckInvariants()
}

func TestItemDepositAllOrNothing(t *testing.T) {
	env := newPoolEnv(t, 300, 1000)
	env.MintItem(collection, "punk-1", "bob")
	env.MintItem(collection, "punk-2", "carol")

	env.RequireResult(env.Submit(pooltx.NewItemDeposit(
		"bob", collection, currency, "punk-1", "punk-2")), "tecNOT_OWNER")

	// Nothing moved, including the item bob does own.
	env.ExpectOwner(collection, "punk-1", "bob")
	env.ExpectOwner(collection, "punk-2", "carol")
	if p := env.Pool(collection, currency); p.ItemCount() != 0 {
		t.Fatalf("failed deposit left inventory: %v", p.Items)
	}
	env.CheckInvariants()
}

func TestItemDepositMalformedSets(t *testing.T) {
	env := newPoolEnv(t, 300, 1000)
	env.MintItem(collection, "punk-1", "bob")

	env.RequireResult(env.Submit(pooltx.NewItemDeposit("bob", collection, currency)), "temEMPTY_SET")
	env.RequireResult(env.Submit(
		pooltx.NewItemDeposit("bob", collection, currency, "punk-1", "punk-1")), "temBAD_ID")
	env.RequireResult(env.Submit(
		pooltx.NewItemDeposit("bob", collection, currency, "punk-1", "")), "temBAD_ID")
}

func TestItemDepositSizeLimit(t *testing.T) {
	env := newPoolEnvWithConfig(t, tx.EngineConfig{MaxBatchSize: 2}, 300, 1000)
	env.MintItem(collection, "punk-1", "bob")
	env.MintItem(collection, "punk-2", "bob")
	env.MintItem(collection, "punk-3", "bob")

	env.RequireResult(env.Submit(pooltx.NewItemDeposit(
		"bob", collection, currency, "punk-1", "punk-2", "punk-3")), "temOVERSIZE")

	env.RequireSuccess(env.Submit(pooltx.NewItemDeposit(
		"bob", collection, currency, "punk-1", "punk-2")))
	env.CheckInvariants()
}

func TestItemDepositNoPool(t *testing.T) {
	env := nftest.NewTestEnv(t)
	env.MintItem(collection, "punk-1", "bob")

	env.RequireResult(env.Submit(
		pooltx.NewItemDeposit("bob", collection, currency, "punk-1")), "tecNO_POOL")
	env.ExpectOwner(collection, "punk-1", "bob")
}
