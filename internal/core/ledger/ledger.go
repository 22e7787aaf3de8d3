// Package ledger holds the single-node state map the transaction engine
// reads and writes: typed entries addressed by 32-byte keylets, plus a
// header tracking sequence and close time.
package ledger

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"nftswapd/internal/core/ledger/header"
	"nftswapd/internal/core/ledger/keylet"
)

// Ledger is the mutable in-memory state map. It satisfies the engine's
// LedgerView interface; the engine buffers its writes and commits them here
// only on success.
type Ledger struct {
	mu     sync.RWMutex
	state  map[[32]byte][]byte
	header header.Header
}

// New creates an empty open ledger at sequence 1.
func New() *Ledger {
	return &Ledger{
		state:  make(map[[32]byte][]byte),
		header: header.Header{Sequence: 1},
	}
}

// Restore rebuilds a ledger from a persisted snapshot. The returned ledger
// is open at the sequence after the snapshot's header.
func Restore(h header.Header, state map[[32]byte][]byte) *Ledger {
	copied := make(map[[32]byte][]byte, len(state))
	for k, v := range state {
		copied[k] = append([]byte(nil), v...)
	}
	open := h
	if h.Closed {
		open = h.Next()
	}
	return &Ledger{state: copied, header: open}
}

// Sequence returns the current ledger sequence.
func (l *Ledger) Sequence() uint32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.header.Sequence
}

// Header returns a copy of the current header.
func (l *Ledger) Header() header.Header {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.header
}

// EntryCount returns the number of state entries.
func (l *Ledger) EntryCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.state)
}

// Read returns the serialized entry at k, or nil if absent.
func (l *Ledger) Read(k keylet.Keylet) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, ok := l.state[k.Key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Exists checks if an entry exists at k.
func (l *Ledger) Exists(k keylet.Keylet) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.state[k.Key]
	return ok, nil
}

// Insert adds a new entry. Inserting over an existing key is an error.
func (l *Ledger) Insert(k keylet.Keylet, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.state[k.Key]; ok {
		return fmt.Errorf("insert: entry %x already exists", k.Key[:8])
	}
	l.state[k.Key] = append([]byte(nil), data...)
	return nil
}

// Update replaces an existing entry. Updating a missing key is an error.
func (l *Ledger) Update(k keylet.Keylet, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.state[k.Key]; !ok {
		return fmt.Errorf("update: entry %x does not exist", k.Key[:8])
	}
	l.state[k.Key] = append([]byte(nil), data...)
	return nil
}

// Erase removes an entry. Erasing a missing key is an error.
func (l *Ledger) Erase(k keylet.Keylet) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.state[k.Key]; !ok {
		return fmt.Errorf("erase: entry %x does not exist", k.Key[:8])
	}
	delete(l.state, k.Key)
	return nil
}

// ForEach iterates the state map in key order. If fn returns false,
// iteration stops early.
func (l *Ledger) ForEach(fn func(key [32]byte, data []byte) bool) error {
	l.mu.RLock()
	keys := l.sortedKeysLocked()
	entries := make([][]byte, len(keys))
	for i, k := range keys {
		entries[i] = l.state[k]
	}
	l.mu.RUnlock()

	for i, k := range keys {
		if !fn(k, entries[i]) {
			return nil
		}
	}
	return nil
}

// Close seals the current ledger: stamps the close time, computes the state
// hash, and opens the next ledger. Returns the closed header.
func (l *Ledger) Close(txCount uint32) header.Header {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.header.TxCount = txCount
	l.header.CloseTime = time.Now().UTC()
	l.header.StateHash = l.stateHashLocked()
	l.header.Closed = true
	closed := l.header
	l.header = closed.Next()
	return closed
}

// StateHash computes the hash committing to the full entry map.
func (l *Ledger) StateHash() [32]byte {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stateHashLocked()
}

func (l *Ledger) stateHashLocked() [32]byte {
	h := sha256.New()
	for _, k := range l.sortedKeysLocked() {
		h.Write(k[:])
		h.Write(l.state[k])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (l *Ledger) sortedKeysLocked() [][32]byte {
	keys := make([][32]byte, 0, len(l.state))
	for k := range l.state {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return string(keys[i][:]) < string(keys[j][:])
	})
	return keys
}
