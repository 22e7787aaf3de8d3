package tx

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"nftswapd/internal/core/ledger/entry"
	"nftswapd/internal/core/ledger/keylet"
)

// Action represents the type of modification to a ledger entry.
type Action int

const (
	// ActionCache means the entry was read but not modified.
	ActionCache Action = iota
	// ActionInsert means a new entry was created.
	ActionInsert
	// ActionModify means an existing entry was modified.
	ActionModify
	// ActionErase means an entry was deleted.
	ActionErase
)

// TrackedEntry represents a ledger entry being tracked for changes.
type TrackedEntry struct {
	Action   Action
	Original []byte // Original state (nil for inserts)
	Current  []byte // Current state (state before deletion for erases)
}

// Threader is implemented by entries that record the transaction which last
// touched them.
type Threader interface {
	Thread(txHash [32]byte, seq uint32)
}

// ApplyStateTable wraps a LedgerView and buffers all modifications. Nothing
// reaches the base view until Apply, so a failed transaction leaves no trace.
type ApplyStateTable struct {
	base   LedgerView
	items  map[[32]byte]*TrackedEntry
	txHash [32]byte
	txSeq  uint32
}

// NewApplyStateTable creates a new ApplyStateTable wrapping the given base view.
func NewApplyStateTable(base LedgerView, txHash [32]byte, txSeq uint32) *ApplyStateTable {
	return &ApplyStateTable{
		base:   base,
		items:  make(map[[32]byte]*TrackedEntry),
		txHash: txHash,
		txSeq:  txSeq,
	}
}

// Read reads a ledger entry, tracking it as cached.
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if tracked, exists := t.items[k.Key]; exists {
		if tracked.Action == ActionErase {
			return nil, nil
		}
		return tracked.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}

	if data != nil {
		t.items[k.Key] = &TrackedEntry{
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}

	return data, nil
}

// Exists checks if an entry exists.
func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if tracked, exists := t.items[k.Key]; exists {
		return tracked.Action != ActionErase, nil
	}
	return t.base.Exists(k)
}

// Insert adds a new entry.
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if tracked, exists := t.items[k.Key]; exists {
		if tracked.Action != ActionErase {
			return fmt.Errorf("entry already exists")
		}
		// Re-inserting a deleted entry becomes a modify.
		tracked.Action = ActionModify
		tracked.Current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("entry already exists")
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionInsert,
		Original: nil,
		Current:  data,
	}

	return nil
}

// Update modifies an existing entry.
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if tracked, exists := t.items[k.Key]; exists {
		if tracked.Action == ActionErase {
			return fmt.Errorf("entry not found (deleted)")
		}
		if tracked.Action == ActionCache {
			tracked.Action = ActionModify
		}
		// An insert stays an insert with new data.
		tracked.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("entry not found")
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}

	return nil
}

// Erase removes an entry.
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if tracked, exists := t.items[k.Key]; exists {
		if tracked.Action == ActionErase {
			return fmt.Errorf("entry already deleted")
		}
		if tracked.Action == ActionInsert {
			// Inserting then deleting is a no-op; drop the tracking.
			delete(t.items, k.Key)
			return nil
		}
		// Current keeps the state before deletion.
		tracked.Action = ActionErase
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("entry not found")
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}

	return nil
}

// ForEach iterates over all state entries, overlaying buffered changes on
// the base view.
func (t *ApplyStateTable) ForEach(fn func(key [32]byte, data []byte) bool) error {
	stop := false
	err := t.base.ForEach(func(key [32]byte, data []byte) bool {
		if tracked, exists := t.items[key]; exists {
			switch tracked.Action {
			case ActionErase:
				return true
			case ActionModify:
				data = tracked.Current
			}
		}
		if !fn(key, data) {
			stop = true
			return false
		}
		return true
	})
	if err != nil || stop {
		return err
	}
	for key, tracked := range t.items {
		if tracked.Action == ActionInsert {
			if !fn(key, tracked.Current) {
				return nil
			}
		}
	}
	return nil
}

// ReadEntry reads and decodes a ledger entry. Returns nil without error if
// the entry does not exist.
func (t *ApplyStateTable) ReadEntry(k keylet.Keylet) (entry.Entry, error) {
	data, err := t.Read(k)
	if err != nil || data == nil {
		return nil, err
	}
	return entry.Decode(data)
}

// InsertEntry threads, encodes and inserts a typed entry.
func (t *ApplyStateTable) InsertEntry(k keylet.Keylet, e entry.Entry) error {
	if th, ok := e.(Threader); ok {
		th.Thread(t.txHash, t.txSeq)
	}
	data, err := entry.Encode(e)
	if err != nil {
		return err
	}
	return t.Insert(k, data)
}

// UpdateEntry threads, encodes and updates a typed entry.
func (t *ApplyStateTable) UpdateEntry(k keylet.Keylet, e entry.Entry) error {
	if th, ok := e.(Threader); ok {
		th.Thread(t.txHash, t.txSeq)
	}
	data, err := entry.Encode(e)
	if err != nil {
		return err
	}
	return t.Update(k, data)
}

// Apply commits all buffered changes to the base view and returns generated
// metadata describing the affected entries.
func (t *ApplyStateTable) Apply() (*Metadata, error) {
	metadata := &Metadata{
		AffectedNodes: make([]AffectedNode, 0, len(t.items)),
	}

	for key, tracked := range t.items {
		switch tracked.Action {
		case ActionCache:
			continue

		case ActionInsert:
			metadata.AffectedNodes = append(metadata.AffectedNodes,
				affectedNode("CreatedNode", key, tracked.Current))
			if err := t.base.Insert(keylet.Keylet{Key: key}, tracked.Current); err != nil {
				return nil, err
			}

		case ActionModify:
			if bytes.Equal(tracked.Original, tracked.Current) {
				continue
			}
			metadata.AffectedNodes = append(metadata.AffectedNodes,
				affectedNode("ModifiedNode", key, tracked.Current))
			if err := t.base.Update(keylet.Keylet{Key: key}, tracked.Current); err != nil {
				return nil, err
			}

		case ActionErase:
			metadata.AffectedNodes = append(metadata.AffectedNodes,
				affectedNode("DeletedNode", key, tracked.Current))
			if err := t.base.Erase(keylet.Keylet{Key: key}); err != nil {
				return nil, err
			}
		}
	}

	return metadata, nil
}

func affectedNode(nodeType string, key [32]byte, data []byte) AffectedNode {
	return AffectedNode{
		NodeType:        nodeType,
		LedgerEntryType: entry.TypeOf(data).String(),
		LedgerIndex:     strings.ToUpper(hex.EncodeToString(key[:])),
	}
}
