package storage

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/cockroachdb/pebble"
)

// PebbleDB is the default persistent backend.
type PebbleDB struct {
	db   *pebble.DB
	open int64
}

// NewPebbleDB opens (creating if missing) a pebble database at path.
func NewPebbleDB(path string) (*PebbleDB, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", path, err)
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("storage: open pebble at %s: %w", path, err)
	}
	p := &PebbleDB{db: db}
	atomic.StoreInt64(&p.open, 1)
	return p, nil
}

func (p *PebbleDB) isOpen() bool {
	return atomic.LoadInt64(&p.open) != 0
}

func (p *PebbleDB) Read(key []byte) ([]byte, error) {
	if !p.isOpen() {
		return nil, ErrClosed
	}
	value, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), value...)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PebbleDB) Has(key []byte) (bool, error) {
	_, err := p.Read(key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *PebbleDB) Write(key, value []byte) error {
	if !p.isOpen() {
		return ErrClosed
	}
	return p.db.Set(key, value, pebble.NoSync)
}

func (p *PebbleDB) Delete(key []byte) error {
	if !p.isOpen() {
		return ErrClosed
	}
	return p.db.Delete(key, pebble.NoSync)
}

func (p *PebbleDB) Batch(ops []BatchOperation) error {
	if !p.isOpen() {
		return ErrClosed
	}
	batch := p.db.NewBatch()
	defer batch.Close()
	for _, op := range ops {
		var err error
		switch op.Type {
		case BatchPut:
			err = batch.Set(op.Key, op.Value, nil)
		case BatchDelete:
			err = batch.Delete(op.Key, nil)
		}
		if err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

func (p *PebbleDB) Iterator(start, end []byte) (Iterator, error) {
	if !p.isOpen() {
		return nil, ErrClosed
	}
	it, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, err
	}
	return &pebbleIterator{it: it}, nil
}

func (p *PebbleDB) Sync() error {
	if !p.isOpen() {
		return ErrClosed
	}
	return p.db.Flush()
}

func (p *PebbleDB) Close() error {
	if !atomic.CompareAndSwapInt64(&p.open, 1, 0) {
		return nil
	}
	return p.db.Close()
}

type pebbleIterator struct {
	it      *pebble.Iterator
	started bool
}

func (it *pebbleIterator) Next() bool {
	if !it.started {
		it.started = true
		return it.it.First()
	}
	return it.it.Next()
}

func (it *pebbleIterator) Key() []byte   { return it.it.Key() }
func (it *pebbleIterator) Value() []byte { return it.it.Value() }
func (it *pebbleIterator) Error() error  { return it.it.Error() }
func (it *pebbleIterator) Close() error  { return it.it.Close() }

func init() {
	RegisterBackend("pebble", func(cfg Config) (DB, error) {
		return NewPebbleDB(cfg.Path)
	})
}
