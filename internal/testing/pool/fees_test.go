package pool

import (
	"testing"

	pooltx "nftswapd/internal/core/tx/pool"
	nftest "nftswapd/internal/testing"
)

// accrueFees drives one sell through the pool so the fee pool is non-empty.
func accrueFees(t *testing.T, env *nftest.TestEnv, item string) {
	t.Helper()
	env.MintItem(collection, item, "carol")
	env.RequireSuccess(env.Submit(pooltx.NewItemSell("carol", collection, currency, item, 0)))
}

func TestFeeWithdrawSoleHolder(t *testing.T) {
	env := newPoolEnv(t, 300, 1000)
	accrueFees(t, env, "punk-1")

	env.RequireSuccess(env.Submit(pooltx.NewFeeWithdraw("alice", collection, currency)))

	env.ExpectBalance("alice", currency, 30)
	p := env.Pool(collection, currency)
	if p.AccumulatedFees != 0 {
		t.Fatalf("fee pool not drained: %d", p.AccumulatedFees)
	}
	// Shares were not burned.
	env.ExpectShares(collection, currency, "alice", 1000)
	env.CheckInvariants()
}

func TestFeeWithdrawProRata(t *testing.T) {
	env := newPoolEnv(t, 300, 750)
	env.Fund("bob", currency, 250)
	env.RequireSuccess(env.Submit(pooltx.NewLiquidityDeposit("bob", collection, currency, 250)))
	accrueFees(t, env, "punk-1")

	// Fee pool is 30 against 1000 shares. Withdrawals floor independently
	// and leave the remainder for later holders.
	env.RequireSuccess(env.Submit(pooltx.NewFeeWithdraw("alice", collection, currency)))
	env.ExpectBalance("alice", currency, 22) // floor(30*750/1000)

	env.RequireSuccess(env.Submit(pooltx.NewFeeWithdraw("bob", collection, currency)))
	env.ExpectBalance("bob", currency, 2) // floor(8*250/1000)

	p := env.Pool(collection, currency)
	if p.AccumulatedFees != 6 {
		t.Fatalf("unexpected fee remainder: %d", p.AccumulatedFees)
	}
	env.CheckInvariants()
}

func TestFeeWithdrawWithoutShares(t *testing.T) {
	env := newPoolEnv(t, 300, 1000)
	accrueFees(t, env, "punk-1")

	env.RequireResult(env.Submit(pooltx.NewFeeWithdraw("bob", collection, currency)), "tecINSUFFICIENT_SHARES")
	env.CheckInvariants()
}

func TestFeeWithdrawEmptyFeePool(t *testing.T) {
	env := newPoolEnv(t, 300, 1000)

	env.RequireResult(env.Submit(pooltx.NewFeeWithdraw("alice", collection, currency)), "tecDRY")
	env.CheckInvariants()
}

func TestPoolFeeSetAdminGated(t *testing.T) {
	env := newPoolEnv(t, 300, 1000)

	env.RequireResult(env.Submit(pooltx.NewPoolFeeSet("alice", collection, currency, 500)), "tecNO_PERMISSION")
	env.RequireSuccess(env.Submit(pooltx.NewPoolFeeSet(nftest.AdminAccount, collection, currency, 500)))

	if got := env.Pool(collection, currency).FeeBps; got != 500 {
		t.Fatalf("fee not updated: %d", got)
	}

	// The new rate applies to subsequent swaps.
	env.MintItem(collection, "punk-1", "bob")
	env.RequireSuccess(env.Submit(pooltx.NewItemSell("bob", collection, currency, "punk-1", 0)))
	env.ExpectBalance("bob", currency, 950)
	env.CheckInvariants()
}

func TestPoolFeeSetBounds(t *testing.T) {
	env := newPoolEnv(t, 300, 1000)

	env.RequireResult(env.Submit(pooltx.NewPoolFeeSet(nftest.AdminAccount, collection, currency, 10001)), "temBAD_FEE")
	env.RequireResult(env.Submit(pooltx.NewPoolFeeSet(nftest.AdminAccount, "ghost", currency, 100)), "tecNO_POOL")
}
