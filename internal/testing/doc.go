// Package testing provides the transaction test environment: a genesis
// ledger, an engine wired to it, funding and minting helpers, typed state
// readers, and an invariant checker that audits pool accounting after a
// scenario runs.
//
// Feature tests live in subpackages (pool, royalty) and drive the engine
// through whole scenarios, asserting on result codes and resulting state.
package testing
