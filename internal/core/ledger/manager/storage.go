package manager

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/ugorji/go/codec"

	"nftswapd/internal/core/ledger"
	"nftswapd/internal/core/ledger/header"
	"nftswapd/internal/storage"
)

// Key layout in the snapshot store:
//
//	meta:latest            -> 4-byte BE sequence of the newest snapshot
//	hdr:<seq>              -> CBOR header
//	ent:<seq><32-byte key> -> serialized entry
const (
	keyLatest    = "meta:latest"
	headerPrefix = "hdr:"
	entryPrefix  = "ent:"
)

var snapshotHandle = func() *codec.CborHandle {
	h := new(codec.CborHandle)
	h.Canonical = true
	return h
}()

// SnapshotStore persists closed-ledger snapshots through the storage layer
// and tracks which sequences are available.
type SnapshotStore struct {
	mu        sync.Mutex
	db        storage.DB
	snapshots *SnapshotSet
}

// NewSnapshotStore wraps db, scanning existing headers to rebuild the set of
// persisted sequences.
func NewSnapshotStore(db storage.DB) (*SnapshotStore, error) {
	s := &SnapshotStore{db: db, snapshots: NewSnapshotSet()}

	// "hdr;" is the key immediately after the "hdr:" prefix space.
	it, err := db.Iterator([]byte(headerPrefix), []byte("hdr;"))
	if err != nil {
		return nil, fmt.Errorf("snapshot scan: %w", err)
	}
	defer it.Close()
	for it.Next() {
		key := it.Key()
		if len(key) != len(headerPrefix)+4 {
			continue
		}
		s.snapshots.Add(binary.BigEndian.Uint32(key[len(headerPrefix):]))
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("snapshot scan: %w", err)
	}
	return s, nil
}

// Save persists the ledger state under the closed header's sequence. Call it
// right after Close, before the next transaction applies.
func (s *SnapshotStore) Save(h header.Header, l *ledger.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var headerBytes []byte
	enc := codec.NewEncoderBytes(&headerBytes, snapshotHandle)
	if err := enc.Encode(h); err != nil {
		return fmt.Errorf("snapshot save: encode header: %w", err)
	}

	ops := []storage.BatchOperation{
		{Type: storage.BatchPut, Key: headerKey(h.Sequence), Value: headerBytes},
		{Type: storage.BatchPut, Key: []byte(keyLatest), Value: seqBytes(h.Sequence)},
	}
	if err := l.ForEach(func(key [32]byte, data []byte) bool {
		ops = append(ops, storage.BatchOperation{
			Type:  storage.BatchPut,
			Key:   entryKey(h.Sequence, key),
			Value: data,
		})
		return true
	}); err != nil {
		return fmt.Errorf("snapshot save: %w", err)
	}

	if err := s.db.Batch(ops); err != nil {
		return fmt.Errorf("snapshot save: %w", err)
	}
	s.snapshots.Add(h.Sequence)
	return nil
}

// Load rebuilds the ledger persisted at seq.
func (s *SnapshotStore) Load(seq uint32) (*ledger.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	headerBytes, err := s.db.Read(headerKey(seq))
	if err == storage.ErrNotFound {
		return nil, fmt.Errorf("snapshot %d not found", seq)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot load: %w", err)
	}

	var h header.Header
	dec := codec.NewDecoderBytes(headerBytes, snapshotHandle)
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("snapshot load: decode header: %w", err)
	}

	prefix := entrySeqPrefix(seq)
	it, err := s.db.Iterator(prefix, entrySeqPrefix(seq+1))
	if err != nil {
		return nil, fmt.Errorf("snapshot load: %w", err)
	}
	defer it.Close()

	state := make(map[[32]byte][]byte)
	for it.Next() {
		key := it.Key()
		if len(key) != len(prefix)+32 {
			continue
		}
		var entryKey [32]byte
		copy(entryKey[:], key[len(prefix):])
		state[entryKey] = append([]byte(nil), it.Value()...)
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("snapshot load: %w", err)
	}

	return ledger.Restore(h, state), nil
}

// LoadLatest rebuilds the newest persisted ledger, or returns (nil, nil)
// when no snapshot exists.
func (s *SnapshotStore) LoadLatest() (*ledger.Ledger, error) {
	s.mu.Lock()
	latest, err := s.db.Read([]byte(keyLatest))
	s.mu.Unlock()
	if err == storage.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot load: %w", err)
	}
	if len(latest) != 4 {
		return nil, fmt.Errorf("snapshot load: corrupt latest marker")
	}
	return s.Load(binary.BigEndian.Uint32(latest))
}

// Contains reports whether a snapshot exists for seq.
func (s *SnapshotStore) Contains(seq uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots.Contains(seq)
}

// Range returns the min and max persisted sequences.
func (s *SnapshotStore) Range() (min, max uint32, hasAny bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots.Range()
}

// Ranges renders the persisted sequence ranges for status reporting.
func (s *SnapshotStore) Ranges() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots.String()
}

func seqBytes(seq uint32) []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, seq)
	return out
}

func headerKey(seq uint32) []byte {
	return append([]byte(headerPrefix), seqBytes(seq)...)
}

func entrySeqPrefix(seq uint32) []byte {
	return append([]byte(entryPrefix), seqBytes(seq)...)
}

func entryKey(seq uint32, key [32]byte) []byte {
	return append(entrySeqPrefix(seq), key[:]...)
}
