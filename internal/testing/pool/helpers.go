// Package pool contains whole-scenario tests for the pool transactors:
// creation, liquidity, swaps, batch sells and fee administration.
package pool

import (
	"testing"

	"nftswapd/internal/core/tx"
	pooltx "nftswapd/internal/core/tx/pool"
	nftest "nftswapd/internal/testing"
)

const (
	collection = "punks"
	currency   = "USD"
)

// newPoolEnv creates an environment with a punks/USD pool at the given fee
// and alice's deposit as the initial reserve.
func newPoolEnv(t *testing.T, feeBps uint16, reserve uint64) *nftest.TestEnv {
	t.Helper()
	return newPoolEnvWithConfig(t, tx.EngineConfig{}, feeBps, reserve)
}

func newPoolEnvWithConfig(t *testing.T, cfg tx.EngineConfig, feeBps uint16, reserve uint64) *nftest.TestEnv {
	t.Helper()

	env := nftest.NewTestEnvWithConfig(t, cfg)
	env.Fund("alice", currency, reserve)
	env.RequireSuccess(env.Submit(pooltx.NewPoolCreate("alice", collection, currency, feeBps)))
	if reserve > 0 {
		env.RequireSuccess(env.Submit(pooltx.NewLiquidityDeposit("alice", collection, currency, reserve)))
	}
	return env
}

// seedInventory mints items to alice and deposits them into the pool.
func seedInventory(t *testing.T, env *nftest.TestEnv, items ...string) {
	t.Helper()
	for _, id := range items {
		env.MintItem(collection, id, "alice")
		env.RequireSuccess(env.Submit(pooltx.NewItemDeposit("alice", collection, currency, id)))
	}
}
