package storage

import (
	"fmt"
	"sync/atomic"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDB is an alternative persistent backend.
type LevelDB struct {
	db   *leveldb.DB
	open int64
}

// NewLevelDB opens (creating if missing) a leveldb database at path.
func NewLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open leveldb at %s: %w", path, err)
	}
	l := &LevelDB{db: db}
	atomic.StoreInt64(&l.open, 1)
	return l, nil
}

func (l *LevelDB) isOpen() bool {
	return atomic.LoadInt64(&l.open) != 0
}

func (l *LevelDB) Read(key []byte) ([]byte, error) {
	if !l.isOpen() {
		return nil, ErrClosed
	}
	value, err := l.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), value...), nil
}

func (l *LevelDB) Has(key []byte) (bool, error) {
	if !l.isOpen() {
		return false, ErrClosed
	}
	return l.db.Has(key, nil)
}

func (l *LevelDB) Write(key, value []byte) error {
	if !l.isOpen() {
		return ErrClosed
	}
	return l.db.Put(key, value, nil)
}

func (l *LevelDB) Delete(key []byte) error {
	if !l.isOpen() {
		return ErrClosed
	}
	return l.db.Delete(key, nil)
}

func (l *LevelDB) Batch(ops []BatchOperation) error {
	if !l.isOpen() {
		return ErrClosed
	}
	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			batch.Put(op.Key, op.Value)
		case BatchDelete:
			batch.Delete(op.Key)
		}
	}
	return l.db.Write(batch, nil)
}

func (l *LevelDB) Iterator(start, end []byte) (Iterator, error) {
	if !l.isOpen() {
		return nil, ErrClosed
	}
	it := l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return &leveldbIterator{it: it}, nil
}

func (l *LevelDB) Sync() error {
	if !l.isOpen() {
		return ErrClosed
	}
	// goleveldb has no explicit flush; writes are durable per Put options.
	return nil
}

func (l *LevelDB) Close() error {
	if !atomic.CompareAndSwapInt64(&l.open, 1, 0) {
		return nil
	}
	return l.db.Close()
}

type leveldbIterator struct {
	it iterator.Iterator
}

func (it *leveldbIterator) Next() bool    { return it.it.Next() }
func (it *leveldbIterator) Key() []byte   { return it.it.Key() }
func (it *leveldbIterator) Value() []byte { return it.it.Value() }
func (it *leveldbIterator) Error() error  { return it.it.Error() }

func (it *leveldbIterator) Close() error {
	it.it.Release()
	return it.it.Error()
}

func init() {
	RegisterBackend("leveldb", func(cfg Config) (DB, error) {
		return NewLevelDB(cfg.Path)
	})
}
