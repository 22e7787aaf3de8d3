// Package royalty contains whole-scenario tests for royalty tables, the
// waterfall credit split and pending-balance withdrawal.
package royalty

import (
	"testing"

	"nftswapd/internal/core/tx"
	pooltx "nftswapd/internal/core/tx/pool"
	royaltytx "nftswapd/internal/core/tx/royalty"
	nftest "nftswapd/internal/testing"
)

const (
	collection = "punks"
	currency   = "USD"
)

func newRoyaltyEnv(t *testing.T, cfg tx.EngineConfig) *nftest.TestEnv {
	t.Helper()

	env := nftest.NewTestEnvWithConfig(t, cfg)
	env.Fund("alice", currency, 1000)
	env.RequireSuccess(env.Submit(pooltx.NewPoolCreate("alice", collection, currency, 300)))
	env.RequireSuccess(env.Submit(pooltx.NewLiquidityDeposit("alice", collection, currency, 1000)))
	return env
}

func setCollectionTable(t *testing.T, env *nftest.TestEnv, entries []royaltytx.RoyaltyEntryParam) {
	t.Helper()
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltySet(nftest.AdminAccount, collection, "", entries)))
}

func TestRoyaltySetAdminGated(t *testing.T) {
	env := newRoyaltyEnv(t, tx.EngineConfig{})

	entries := []royaltytx.RoyaltyEntryParam{{Recipient: "artist", Bps: 500}}
	env.RequireResult(env.Submit(royaltytx.NewRoyaltySet("alice", collection, "", entries)), "tecNO_PERMISSION")
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltySet(nftest.AdminAccount, collection, "", entries)))
}

func TestRoyaltySetValidation(t *testing.T) {
	env := newRoyaltyEnv(t, tx.EngineConfig{})

	over := []royaltytx.RoyaltyEntryParam{
		{Recipient: "a", Bps: 6000},
		{Recipient: "b", Bps: 5000},
	}
	env.RequireResult(env.Submit(royaltytx.NewRoyaltySet(nftest.AdminAccount, collection, "", over)), "temBAD_FEE")

	unnamed := []royaltytx.RoyaltyEntryParam{{Recipient: "", Bps: 100}}
	env.RequireResult(env.Submit(royaltytx.NewRoyaltySet(nftest.AdminAccount, collection, "", unnamed)), "temBAD_ID")
}

func TestRoyaltyCreditWaterfall(t *testing.T) {
	env := newRoyaltyEnv(t, tx.EngineConfig{})
	setCollectionTable(t, env, []royaltytx.RoyaltyEntryParam{
		{Recipient: "artistA", Bps: 600},
		{Recipient: "artistB", Bps: 400},
	})

	env.Fund("carol", currency, 1000)
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyCredit("carol", collection, currency, "", 1000)))

	// 6% to A, 4% to B, the 900 remainder joins the reserve with the share
	// supply unchanged.
	if got := env.PendingRoyalty("artistA", currency); got != 60 {
		t.Fatalf("artistA pending: %d", got)
	}
	if got := env.PendingRoyalty("artistB", currency); got != 40 {
		t.Fatalf("artistB pending: %d", got)
	}
	p := env.Pool(collection, currency)
	if p.CurrencyReserve != 1900 || p.TotalShares != 1000 {
		t.Fatalf("post-credit pool: reserve=%d shares=%d", p.CurrencyReserve, p.TotalShares)
	}
	env.ExpectBalance("carol", currency, 0)
	env.CheckInvariants()
}

func TestRoyaltyCreditPerItemOverride(t *testing.T) {
	env := newRoyaltyEnv(t, tx.EngineConfig{})
	setCollectionTable(t, env, []royaltytx.RoyaltyEntryParam{{Recipient: "artistA", Bps: 600}})
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltySet(
		nftest.AdminAccount, collection, "punk-1",
		[]royaltytx.RoyaltyEntryParam{{Recipient: "artistB", Bps: 100}})))

	env.Fund("carol", currency, 2000)
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyCredit("carol", collection, currency, "punk-1", 1000)))
	if got := env.PendingRoyalty("artistB", currency); got != 10 {
		t.Fatalf("per-item override not used: artistB pending %d", got)
	}
	if got := env.PendingRoyalty("artistA", currency); got != 0 {
		t.Fatalf("collection table used despite override: artistA pending %d", got)
	}

	// An item without an override falls back to the collection table.
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyCredit("carol", collection, currency, "punk-2", 1000)))
	if got := env.PendingRoyalty("artistA", currency); got != 60 {
		t.Fatalf("collection fallback: artistA pending %d", got)
	}
	env.CheckInvariants()
}

func TestRoyaltyCreditNoTable(t *testing.T) {
	env := newRoyaltyEnv(t, tx.EngineConfig{})

	env.Fund("carol", currency, 1000)
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyCredit("carol", collection, currency, "", 1000)))

	p := env.Pool(collection, currency)
	if p.CurrencyReserve != 2000 || p.TotalShares != 1000 {
		t.Fatalf("creditless royalty: reserve=%d shares=%d", p.CurrencyReserve, p.TotalShares)
	}
	env.CheckInvariants()
}

func TestRoyaltyCreditSingleRecipientVariant(t *testing.T) {
	env := newRoyaltyEnv(t, tx.EngineConfig{RoyaltySingleRecipient: true})
	setCollectionTable(t, env, []royaltytx.RoyaltyEntryParam{
		{Recipient: "artistA", Bps: 600},
		{Recipient: "artistB", Bps: 400},
	})

	env.Fund("carol", currency, 1000)
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyCredit("carol", collection, currency, "", 1000)))

	// The table is truncated to its first entry; B's cut stays in the pool.
	if got := env.PendingRoyalty("artistA", currency); got != 60 {
		t.Fatalf("artistA pending: %d", got)
	}
	if got := env.PendingRoyalty("artistB", currency); got != 0 {
		t.Fatalf("artistB should be truncated, pending %d", got)
	}
	if got := env.Pool(collection, currency).CurrencyReserve; got != 1940 {
		t.Fatalf("reserve: %d", got)
	}
	env.CheckInvariants()
}

// fixedDelegate returns the same distribution for every sale.
type fixedDelegate struct {
	shares []tx.RoyaltyShare
}

func (d fixedDelegate) Royalties(collection, item string, saleValue uint64) ([]tx.RoyaltyShare, error) {
	return d.shares, nil
}

func TestRoyaltyCreditDelegate(t *testing.T) {
	delegate := fixedDelegate{shares: []tx.RoyaltyShare{{Recipient: "artistC", Amount: 75}}}
	env := newRoyaltyEnv(t, tx.EngineConfig{RoyaltyDelegate: delegate})

	env.Fund("carol", currency, 1000)
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyCredit("carol", collection, currency, "", 1000)))

	if got := env.PendingRoyalty("artistC", currency); got != 75 {
		t.Fatalf("delegate distribution: %d", got)
	}
	if got := env.Pool(collection, currency).CurrencyReserve; got != 1925 {
		t.Fatalf("reserve: %d", got)
	}
	env.CheckInvariants()
}

func TestRoyaltyCreditDelegateLosesToLedgerTable(t *testing.T) {
	delegate := fixedDelegate{shares: []tx.RoyaltyShare{{Recipient: "artistC", Amount: 75}}}
	env := newRoyaltyEnv(t, tx.EngineConfig{RoyaltyDelegate: delegate})
	setCollectionTable(t, env, []royaltytx.RoyaltyEntryParam{{Recipient: "artistA", Bps: 600}})

	env.Fund("carol", currency, 1000)
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyCredit("carol", collection, currency, "", 1000)))

	if got := env.PendingRoyalty("artistA", currency); got != 60 {
		t.Fatalf("ledger table should win: artistA pending %d", got)
	}
	if got := env.PendingRoyalty("artistC", currency); got != 0 {
		t.Fatalf("delegate consulted despite table: artistC pending %d", got)
	}
	env.CheckInvariants()
}

func TestRoyaltyCreditOverflowingDelegate(t *testing.T) {
	delegate := fixedDelegate{shares: []tx.RoyaltyShare{{Recipient: "artistC", Amount: 1001}}}
	env := newRoyaltyEnv(t, tx.EngineConfig{RoyaltyDelegate: delegate})

	env.Fund("carol", currency, 1000)
	result := env.Submit(royaltytx.NewRoyaltyCredit("carol", collection, currency, "", 1000))
	env.RequireResult(result, "tecROYALTY_OVERFLOW")

	// The breach is fatal to the operation, never clamped.
	env.ExpectBalance("carol", currency, 1000)
	if got := env.Pool(collection, currency).CurrencyReserve; got != 1000 {
		t.Fatalf("reserve changed on failed credit: %d", got)
	}
	env.CheckInvariants()
}

func TestRoyaltyCreditUnfunded(t *testing.T) {
	env := newRoyaltyEnv(t, tx.EngineConfig{})

	env.Fund("carol", currency, 10)
	env.RequireResult(env.Submit(royaltytx.NewRoyaltyCredit("carol", collection, currency, "", 1000)), "tecUNFUNDED")
	env.RequireResult(env.Submit(royaltytx.NewRoyaltyCredit("carol", "ghost", currency, "", 10)), "tecNO_POOL")
	env.CheckInvariants()
}

func TestRoyaltyWithdraw(t *testing.T) {
	env := newRoyaltyEnv(t, tx.EngineConfig{})
	setCollectionTable(t, env, []royaltytx.RoyaltyEntryParam{{Recipient: "artistA", Bps: 600}})

	env.Fund("carol", currency, 1000)
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyCredit("carol", collection, currency, "", 1000)))

	// Full-balance payout, no partial withdrawal.
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyWithdraw("artistA", currency)))
	env.ExpectBalance("artistA", currency, 60)
	if got := env.PendingRoyalty("artistA", currency); got != 0 {
		t.Fatalf("pending not zeroed: %d", got)
	}

	// The zeroed entry survives and rejects a second withdrawal.
	env.RequireResult(env.Submit(royaltytx.NewRoyaltyWithdraw("artistA", currency)), "tecDRY")

	// It can accrue and pay out again.
	env.Fund("dave", currency, 500)
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyCredit("dave", collection, currency, "", 500)))
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyWithdraw("artistA", currency)))
	env.ExpectBalance("artistA", currency, 90)
	env.CheckInvariants()
}

func TestRoyaltyWithdrawNoEntry(t *testing.T) {
	env := newRoyaltyEnv(t, tx.EngineConfig{})
	env.RequireResult(env.Submit(royaltytx.NewRoyaltyWithdraw("nobody", currency)), "tecNO_ENTRY")
}

func TestRoyaltySetUnbind(t *testing.T) {
	env := newRoyaltyEnv(t, tx.EngineConfig{})
	setCollectionTable(t, env, []royaltytx.RoyaltyEntryParam{{Recipient: "artistA", Bps: 600}})

	// Unbinding an absent table is an error; unbinding the bound one works.
	env.RequireResult(env.Submit(royaltytx.NewRoyaltySet(nftest.AdminAccount, collection, "punk-1", nil)), "tecNO_ENTRY")
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltySet(nftest.AdminAccount, collection, "", nil)))

	// With the table gone the full credit joins the reserve.
	env.Fund("carol", currency, 1000)
	env.RequireSuccess(env.Submit(royaltytx.NewRoyaltyCredit("carol", collection, currency, "", 1000)))
	if got := env.Pool(collection, currency).CurrencyReserve; got != 2000 {
		t.Fatalf("reserve: %d", got)
	}
	if got := env.PendingRoyalty("artistA", currency); got != 0 {
		t.Fatalf("unbound table still paying: %d", got)
	}
	env.CheckInvariants()
}
