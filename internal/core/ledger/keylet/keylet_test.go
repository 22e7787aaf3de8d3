package keylet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nftswapd/internal/core/ledger/entry"
)

func TestKeyletDeterminism(t *testing.T) {
	a := Pool("kittens", "USD")
	b := Pool("kittens", "USD")
	assert.Equal(t, a, b)
	assert.Equal(t, entry.TypePool, a.Type)
}

func TestKeyletDistinctness(t *testing.T) {
	keys := map[[32]byte]string{}
	add := func(name string, k Keylet) {
		if prev, dup := keys[k.Key]; dup {
			t.Fatalf("keylet collision: %s vs %s", name, prev)
		}
		keys[k.Key] = name
	}

	add("pool", Pool("kittens", "USD"))
	add("pool-other-currency", Pool("kittens", "EUR"))
	add("pool-other-collection", Pool("puppies", "USD"))
	add("account", Account("alice"))
	add("share", SharePosition("kittens", "USD", "alice"))
	add("royalty-collection", RoyaltyTable("kittens", ""))
	add("royalty-item", RoyaltyTable("kittens", "item-1"))
	add("pending", PendingRoyalty("alice", "USD"))
	add("ownership", ItemOwnership("kittens", "item-1"))
}

func TestKeyletFieldBoundaries(t *testing.T) {
	// Concatenation across field boundaries must not alias.
	assert.NotEqual(t, Pool("ab", "c").Key, Pool("a", "bc").Key)
	assert.NotEqual(t, SharePosition("a", "b", "c").Key, SharePosition("a", "bc", "").Key)
}

func TestKeyletSpaceSeparation(t *testing.T) {
	// Same fields in different spaces yield different keys.
	assert.NotEqual(t, Pool("x", "y").Key, RoyaltyTable("x", "y").Key)
	assert.NotEqual(t, Pool("x", "y").Key, ItemOwnership("x", "y").Key)
	assert.NotEqual(t, PendingRoyalty("x", "y").Key, ItemOwnership("x", "y").Key)
}
