// Package storage provides the key-value layer ledger snapshots and the
// trade feed persist through. Backends register themselves by name; the
// daemon selects one from config.
package storage

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrClosed is returned when operating on a closed database.
	ErrClosed = errors.New("storage: database is closed")

	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("storage: key not found")
)

// DB is the operation set every backend must support.
type DB interface {
	// Read returns the value for key, or ErrNotFound.
	Read(key []byte) ([]byte, error)

	// Has reports whether key exists.
	Has(key []byte) (bool, error)

	// Write stores a key-value pair.
	Write(key, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key []byte) error

	// Batch applies all operations atomically.
	Batch(ops []BatchOperation) error

	// Iterator iterates keys in [start, end). A nil end means no upper
	// bound; nil start means from the beginning.
	Iterator(start, end []byte) (Iterator, error)

	// Sync flushes pending writes to stable storage.
	Sync() error

	// Close releases the backend.
	Close() error
}

// Iterator walks key-value pairs in key order.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

// BatchOpType distinguishes puts from deletes within a batch.
type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)

// BatchOperation is a single operation in a batch.
type BatchOperation struct {
	Type  BatchOpType
	Key   []byte
	Value []byte
}

// Config selects and parameterizes a backend.
type Config struct {
	// Backend names a registered backend: "pebble", "leveldb" or "memory".
	Backend string

	// Path is the on-disk location for persistent backends.
	Path string

	// Compression names a compressor applied to values: "lz4" or "none".
	// Empty means no compression wrapper.
	Compression string
}

// Factory creates a backend from config.
type Factory func(cfg Config) (DB, error)

var (
	factoryMu sync.RWMutex
	factories = make(map[string]Factory)
)

// RegisterBackend registers a backend factory under name. Called from init()
// in the backend files.
func RegisterBackend(name string, factory Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[name] = factory
}

// AvailableBackends returns the registered backend names.
func AvailableBackends() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// Open creates the configured backend, wrapped in a compressing layer when
// config asks for one.
func Open(cfg Config) (DB, error) {
	factoryMu.RLock()
	factory, ok := factories[cfg.Backend]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
	db, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Compression != "" && cfg.Compression != "none" {
		wrapped, err := WithCompression(db, cfg.Compression)
		if err != nil {
			db.Close()
			return nil, err
		}
		return wrapped, nil
	}
	return db, nil
}
