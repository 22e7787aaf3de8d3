// Package manager fronts the ledger with a decoded-entry cache and persists
// closed-ledger snapshots through the storage layer.
package manager

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"nftswapd/internal/core/ledger/entry"
)

// EntryCache keeps recently decoded entries so read paths skip repeated
// CBOR decoding. Writers must invalidate keys they touch.
type EntryCache struct {
	mu sync.RWMutex

	// Decoded entries keyed by the 32-byte keylet key.
	recent *lru.Cache[[32]byte, entry.Entry]

	hits   uint64
	misses uint64
}

// EntryCacheConfig holds configuration for the cache.
type EntryCacheConfig struct {
	// MaxEntries is the number of decoded entries to keep in memory.
	MaxEntries int
}

// NewEntryCache creates an entry cache.
func NewEntryCache(config EntryCacheConfig) (*EntryCache, error) {
	if config.MaxEntries <= 0 {
		config.MaxEntries = 4096
	}
	cache, err := lru.New[[32]byte, entry.Entry](config.MaxEntries)
	if err != nil {
		return nil, err
	}
	return &EntryCache{recent: cache}, nil
}

// Get retrieves a decoded entry by key.
func (c *EntryCache) Get(key [32]byte) (entry.Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, found := c.recent.Get(key)
	if found {
		c.hits++
		return e, true
	}
	c.misses++
	return nil, false
}

// Put stores a decoded entry.
func (c *EntryCache) Put(key [32]byte, e entry.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recent.Add(key, e)
}

// Invalidate drops a key after its entry was modified or erased.
func (c *EntryCache) Invalidate(key [32]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recent.Remove(key)
}

// Purge drops all cached entries.
func (c *EntryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recent.Purge()
}

// Stats returns cache performance counters.
func (c *EntryCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return CacheStats{
		Hits:    c.hits,
		Misses:  c.misses,
		HitRate: hitRate,
		Len:     c.recent.Len(),
	}
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	HitRate float64
	Len     int
}
