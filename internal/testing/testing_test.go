package testing

import (
	"testing"

	"nftswapd/internal/core/tx/payment"
	"nftswapd/internal/core/tx/pool"
)

func TestFundAndBalance(t *testing.T) {
	env := NewTestEnv(t)

	env.Fund("alice", "USD", 1000)
	env.Fund("alice", "USD", 500)
	env.Fund("alice", "EUR", 10)

	env.ExpectBalance("alice", "USD", 1500)
	env.ExpectBalance("alice", "EUR", 10)
	env.ExpectBalance("alice", "JPY", 0)
	env.ExpectBalance("nobody", "USD", 0)
	env.CheckInvariants()
}

func TestMintItemAndOwnership(t *testing.T) {
	env := NewTestEnv(t)

	env.MintItem("punks", "punk-1", "alice")
	env.ExpectOwner("punks", "punk-1", "alice")
	env.ExpectOwner("punks", "punk-2", "")
	env.CheckInvariants()
}

func TestSubmitReportsResultCode(t *testing.T) {
	env := NewTestEnv(t)
	env.Fund("alice", "USD", 100)

	result := env.Submit(payment.NewPayment("alice", "bob", "USD", 40))
	env.RequireSuccess(result)
	if !result.Applied {
		t.Fatal("successful payment not applied")
	}
	env.ExpectBalance("alice", "USD", 60)
	env.ExpectBalance("bob", "USD", 40)

	result = env.Submit(payment.NewPayment("alice", "bob", "USD", 1000))
	env.RequireResult(result, "tecUNFUNDED")
	if result.Applied {
		t.Fatal("failed payment reported as applied")
	}
	env.CheckInvariants()
}

func TestInvariantsCoverPoolHoldings(t *testing.T) {
	env := NewTestEnv(t)
	env.Fund("alice", "USD", 1000)

	env.RequireSuccess(env.Submit(pool.NewPoolCreate("alice", "punks", "USD", 300)))
	env.RequireSuccess(env.Submit(pool.NewLiquidityDeposit("alice", "punks", "USD", 1000)))

	env.ExpectBalance("alice", "USD", 0)
	env.ExpectShares("punks", "USD", "alice", 1000)
	env.CheckInvariants()
}
