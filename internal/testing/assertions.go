package testing

// RequireSuccess fails the test immediately unless the result is tesSUCCESS.
func (e *TestEnv) RequireSuccess(result TxResult) TxResult {
	e.t.Helper()
	if !result.Success {
		e.t.Fatalf("Expected tesSUCCESS, got %s: %s", result.Code, result.Message)
	}
	return result
}

// RequireResult fails the test immediately unless the result code matches.
func (e *TestEnv) RequireResult(result TxResult, code string) TxResult {
	e.t.Helper()
	if result.Code != code {
		e.t.Fatalf("Expected %s, got %s: %s", code, result.Code, result.Message)
	}
	return result
}

// ExpectBalance fails the test if the account's balance differs.
func (e *TestEnv) ExpectBalance(account, currency string, want uint64) {
	e.t.Helper()
	if got := e.Balance(account, currency); got != want {
		e.t.Errorf("Balance of %s in %s: got %d, want %d", account, currency, got, want)
	}
}

// ExpectShares fails the test if the provider's share balance differs.
func (e *TestEnv) ExpectShares(collection, currency, provider string, want uint64) {
	e.t.Helper()
	if got := e.Shares(collection, currency, provider); got != want {
		e.t.Errorf("Shares of %s in %s/%s: got %d, want %d", provider, collection, currency, got, want)
	}
}

// ExpectOwner fails the test if the item's recorded owner differs.
func (e *TestEnv) ExpectOwner(collection, item, want string) {
	e.t.Helper()
	if got := e.ItemOwner(collection, item); got != want {
		e.t.Errorf("Owner of %s/%s: got %q, want %q", collection, item, got, want)
	}
}
