package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDBBasicOps(t *testing.T) {
	db := NewMemoryDB()
	defer db.Close()

	_, err := db.Read([]byte("missing"))
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, db.Write([]byte("k1"), []byte("v1")))
	value, err := db.Read([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value)

	ok, err := db.Has([]byte("k1"))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, db.Delete([]byte("k1")))
	ok, err = db.Has([]byte("k1"))
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is not an error.
	assert.NoError(t, db.Delete([]byte("k1")))
}

func TestMemoryDBBatch(t *testing.T) {
	db := NewMemoryDB()
	defer db.Close()

	require.NoError(t, db.Write([]byte("gone"), []byte("x")))
	require.NoError(t, db.Batch([]BatchOperation{
		{Type: BatchPut, Key: []byte("a"), Value: []byte("1")},
		{Type: BatchPut, Key: []byte("b"), Value: []byte("2")},
		{Type: BatchDelete, Key: []byte("gone")},
	}))

	assert.Equal(t, 2, db.Len())
	value, err := db.Read([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), value)
}

func TestMemoryDBIteratorRange(t *testing.T) {
	db := NewMemoryDB()
	defer db.Close()

	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, db.Write([]byte(k), []byte("v"+k)))
	}

	it, err := db.Iterator([]byte("b"), []byte("d"))
	require.NoError(t, err)
	defer it.Close()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Error())
	assert.Equal(t, []string{"b", "c"}, keys)
}

func TestMemoryDBClosed(t *testing.T) {
	db := NewMemoryDB()
	require.NoError(t, db.Close())

	assert.Equal(t, ErrClosed, db.Write([]byte("k"), []byte("v")))
	_, err := db.Read([]byte("k"))
	assert.Equal(t, ErrClosed, err)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Config{Backend: "nope"})
	assert.Error(t, err)
}

func TestOpenMemoryBackend(t *testing.T) {
	db, err := Open(Config{Backend: "memory"})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Write([]byte("k"), []byte("v")))
	value, err := db.Read([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

func TestCompressedRoundtrip(t *testing.T) {
	db, err := Open(Config{Backend: "memory", Compression: "lz4"})
	require.NoError(t, err)
	defer db.Close()

	// Highly repetitive value compresses; the read must restore it exactly.
	big := bytes.Repeat([]byte("poolstate"), 500)
	require.NoError(t, db.Write([]byte("big"), big))
	value, err := db.Read([]byte("big"))
	require.NoError(t, err)
	assert.Equal(t, big, value)

	// Tiny values fall back to the raw frame.
	require.NoError(t, db.Write([]byte("small"), []byte("x")))
	value, err = db.Read([]byte("small"))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), value)
}

func TestCompressedIterator(t *testing.T) {
	db, err := Open(Config{Backend: "memory", Compression: "lz4"})
	require.NoError(t, err)
	defer db.Close()

	big := bytes.Repeat([]byte("z"), 4096)
	require.NoError(t, db.Write([]byte("a"), big))
	require.NoError(t, db.Write([]byte("b"), []byte("tiny")))

	it, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	defer it.Close()

	got := make(map[string][]byte)
	for it.Next() {
		got[string(it.Key())] = append([]byte(nil), it.Value()...)
	}
	require.NoError(t, it.Error())
	assert.Equal(t, big, got["a"])
	assert.Equal(t, []byte("tiny"), got["b"])
}

func TestCompressedBatch(t *testing.T) {
	db, err := Open(Config{Backend: "memory", Compression: "lz4"})
	require.NoError(t, err)
	defer db.Close()

	big := bytes.Repeat([]byte("entry"), 1000)
	require.NoError(t, db.Batch([]BatchOperation{
		{Type: BatchPut, Key: []byte("k"), Value: big},
	}))
	value, err := db.Read([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, big, value)
}

func TestAvailableBackends(t *testing.T) {
	names := AvailableBackends()
	assert.Contains(t, names, "memory")
	assert.Contains(t, names, "pebble")
	assert.Contains(t, names, "leveldb")
}
