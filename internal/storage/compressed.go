package storage

import (
	"encoding/binary"
	"fmt"

	"nftswapd/internal/storage/compression"
)

// Value framing for the compressing wrapper. Raw values are prefixed with a
// single zero byte; compressed values carry flag 1 and the original size so
// block decompression can allocate exactly.
const (
	frameRaw        = 0x00
	frameCompressed = 0x01
)

type compressedDB struct {
	inner      DB
	compressor compression.Compressor
}

// WithCompression wraps db so values are transparently compressed on write
// and decompressed on read. Values that do not shrink are stored raw.
func WithCompression(db DB, algorithm string) (DB, error) {
	c, err := compression.Get(algorithm)
	if err != nil {
		return nil, err
	}
	return &compressedDB{inner: db, compressor: c}, nil
}

func (c *compressedDB) encode(value []byte) ([]byte, error) {
	compressed, err := c.compressor.Compress(value)
	if err != nil {
		if compression.IsIncompressible(err) {
			out := make([]byte, 1+len(value))
			out[0] = frameRaw
			copy(out[1:], value)
			return out, nil
		}
		return nil, err
	}
	if len(compressed)+4 >= len(value) {
		out := make([]byte, 1+len(value))
		out[0] = frameRaw
		copy(out[1:], value)
		return out, nil
	}
	out := make([]byte, 5+len(compressed))
	out[0] = frameCompressed
	binary.BigEndian.PutUint32(out[1:5], uint32(len(value)))
	copy(out[5:], compressed)
	return out, nil
}

func (c *compressedDB) decode(stored []byte) ([]byte, error) {
	if len(stored) == 0 {
		return nil, fmt.Errorf("storage: empty framed value")
	}
	switch stored[0] {
	case frameRaw:
		return append([]byte(nil), stored[1:]...), nil
	case frameCompressed:
		if len(stored) < 5 {
			return nil, fmt.Errorf("storage: truncated compressed value")
		}
		size := int(binary.BigEndian.Uint32(stored[1:5]))
		return c.compressor.Decompress(stored[5:], size)
	default:
		return nil, fmt.Errorf("storage: unknown value frame 0x%02x", stored[0])
	}
}

func (c *compressedDB) Read(key []byte) ([]byte, error) {
	stored, err := c.inner.Read(key)
	if err != nil {
		return nil, err
	}
	return c.decode(stored)
}

func (c *compressedDB) Has(key []byte) (bool, error) {
	return c.inner.Has(key)
}

func (c *compressedDB) Write(key, value []byte) error {
	framed, err := c.encode(value)
	if err != nil {
		return err
	}
	return c.inner.Write(key, framed)
}

func (c *compressedDB) Delete(key []byte) error {
	return c.inner.Delete(key)
}

func (c *compressedDB) Batch(ops []BatchOperation) error {
	framed := make([]BatchOperation, len(ops))
	for i, op := range ops {
		framed[i] = op
		if op.Type == BatchPut {
			value, err := c.encode(op.Value)
			if err != nil {
				return err
			}
			framed[i].Value = value
		}
	}
	return c.inner.Batch(framed)
}

func (c *compressedDB) Iterator(start, end []byte) (Iterator, error) {
	it, err := c.inner.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return &compressedIterator{inner: it, db: c}, nil
}

func (c *compressedDB) Sync() error  { return c.inner.Sync() }
func (c *compressedDB) Close() error { return c.inner.Close() }

type compressedIterator struct {
	inner Iterator
	db    *compressedDB
	value []byte
	err   error
}

func (it *compressedIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.inner.Next() {
		return false
	}
	it.value, it.err = it.db.decode(it.inner.Value())
	return it.err == nil
}

func (it *compressedIterator) Key() []byte   { return it.inner.Key() }
func (it *compressedIterator) Value() []byte { return it.value }

func (it *compressedIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.inner.Error()
}

func (it *compressedIterator) Close() error { return it.inner.Close() }
