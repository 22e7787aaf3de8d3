package testing

import (
	"testing"

	"nftswapd/internal/core/ledger"
	"nftswapd/internal/core/ledger/entry"
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/genesis"
	"nftswapd/internal/core/ledger/keylet"
	"nftswapd/internal/core/tx"
	"nftswapd/internal/core/tx/item"
)

// AdminAccount is the operator account every test environment is configured
// with.
const AdminAccount = "admin"

// TestEnv manages a ledger and engine for transaction testing. Fund and
// MintItem set up state; Submit drives the engine; the typed readers and
// CheckInvariants audit the outcome.
type TestEnv struct {
	t      *testing.T
	ledger *ledger.Ledger
	engine *tx.Engine

	// minted tracks the currency issued through Fund per currency, so the
	// conservation check knows the expected total supply.
	minted map[string]uint64
}

// NewTestEnv creates a test environment with an empty genesis ledger and a
// default engine configuration.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return NewTestEnvWithConfig(t, tx.EngineConfig{AdminAccount: AdminAccount})
}

// NewTestEnvWithConfig creates a test environment with a custom engine
// configuration. An empty AdminAccount is filled with the default so admin
// helpers keep working.
func NewTestEnvWithConfig(t *testing.T, cfg tx.EngineConfig) *TestEnv {
	t.Helper()

	if cfg.AdminAccount == "" {
		cfg.AdminAccount = AdminAccount
	}
	l, err := genesis.Create(genesis.Config{Admin: cfg.AdminAccount})
	if err != nil {
		t.Fatalf("Failed to create genesis ledger: %v", err)
	}

	return &TestEnv{
		t:      t,
		ledger: l,
		engine: tx.NewEngine(l, cfg),
		minted: make(map[string]uint64),
	}
}

// Ledger returns the underlying ledger.
func (e *TestEnv) Ledger() *ledger.Ledger {
	return e.ledger
}

// Engine returns the transaction engine.
func (e *TestEnv) Engine() *tx.Engine {
	return e.engine
}

// Fund credits currency to an account by writing ledger state directly,
// creating the account root on first use.
func (e *TestEnv) Fund(account, currency string, amt uint64) {
	e.t.Helper()

	k := keylet.Account(account)
	data, err := e.ledger.Read(k)
	if err != nil {
		e.t.Fatalf("Fund %s: read account: %v", account, err)
	}

	var root *entries.AccountRoot
	if data == nil {
		root = entries.NewAccountRoot(account)
	} else {
		decoded, err := entry.Decode(data)
		if err != nil {
			e.t.Fatalf("Fund %s: decode account: %v", account, err)
		}
		root = decoded.(*entries.AccountRoot)
	}
	if err := root.Credit(currency, amt); err != nil {
		e.t.Fatalf("Fund %s: credit: %v", account, err)
	}

	encoded, err := entry.Encode(root)
	if err != nil {
		e.t.Fatalf("Fund %s: encode account: %v", account, err)
	}
	if data == nil {
		err = e.ledger.Insert(k, encoded)
	} else {
		err = e.ledger.Update(k, encoded)
	}
	if err != nil {
		e.t.Fatalf("Fund %s: write account: %v", account, err)
	}

	e.minted[currency] += amt
}

// MintItem issues an item to the given owner through the admin account.
func (e *TestEnv) MintItem(collection, itemID, owner string) {
	e.t.Helper()
	admin := e.engine.Config().AdminAccount
	e.RequireSuccess(e.Submit(item.NewItemMint(admin, collection, itemID, owner)))
}

// Submit applies a transaction and returns its result.
func (e *TestEnv) Submit(transaction tx.Transaction) TxResult {
	e.t.Helper()

	applied := e.engine.Apply(transaction)
	return TxResult{
		Code:     applied.Result.String(),
		Success:  applied.Result.IsSuccess(),
		Applied:  applied.Applied,
		Message:  applied.Message,
		Metadata: applied.Metadata,
	}
}

// Balance returns an account's balance in the given currency. Missing
// accounts have a zero balance.
func (e *TestEnv) Balance(account, currency string) uint64 {
	e.t.Helper()

	root := readTyped[*entries.AccountRoot](e, keylet.Account(account))
	if root == nil {
		return 0
	}
	return root.Balance(currency)
}

// Pool returns the decoded pool entry, or nil when no pool exists.
func (e *TestEnv) Pool(collection, currency string) *entries.Pool {
	e.t.Helper()
	return readTyped[*entries.Pool](e, keylet.Pool(collection, currency))
}

// Shares returns a provider's share balance in a pool.
func (e *TestEnv) Shares(collection, currency, provider string) uint64 {
	e.t.Helper()

	pos := readTyped[*entries.SharePosition](e, keylet.SharePosition(collection, currency, provider))
	if pos == nil {
		return 0
	}
	return pos.Shares
}

// PendingRoyalty returns a recipient's accrued royalty balance.
func (e *TestEnv) PendingRoyalty(recipient, currency string) uint64 {
	e.t.Helper()

	pending := readTyped[*entries.PendingRoyalty](e, keylet.PendingRoyalty(recipient, currency))
	if pending == nil {
		return 0
	}
	return pending.Amount
}

// ItemOwner returns the recorded owner of an item, or "" when the item does
// not exist.
func (e *TestEnv) ItemOwner(collection, item string) string {
	e.t.Helper()

	own := readTyped[*entries.ItemOwnership](e, keylet.ItemOwnership(collection, item))
	if own == nil {
		return ""
	}
	return own.Owner
}

func readTyped[T entry.Entry](e *TestEnv, k keylet.Keylet) T {
	e.t.Helper()

	var zero T
	data, err := e.ledger.Read(k)
	if err != nil {
		e.t.Fatalf("Failed to read ledger entry: %v", err)
	}
	if data == nil {
		return zero
	}
	decoded, err := entry.Decode(data)
	if err != nil {
		e.t.Fatalf("Failed to decode ledger entry: %v", err)
	}
	typed, ok := decoded.(T)
	if !ok {
		e.t.Fatalf("Ledger entry has unexpected type %s", decoded.Type())
	}
	return typed
}
