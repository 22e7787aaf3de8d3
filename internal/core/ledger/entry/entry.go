// Package entry defines the typed ledger entries that make up pool state,
// together with their binary codec. Every object the engine persists is an
// Entry: pools, share positions, royalty tables, accounts, item ownership.
package entry

import (
	"encoding/binary"
	"fmt"

	"github.com/ugorji/go/codec"
)

// Type identifies a ledger entry type.
type Type uint16

const (
	// TypeAccountRoot holds an account's currency balances.
	TypeAccountRoot Type = 0x0061

	// TypeItemOwnership records the current owner of a discrete item.
	TypeItemOwnership Type = 0x0050

	// TypeRoyaltyTable holds the (recipient, basis points) royalty split for
	// a collection or a single item.
	TypeRoyaltyTable Type = 0x0052

	// TypePendingRoyalty accrues a recipient's withdrawable royalty balance
	// in one currency.
	TypePendingRoyalty Type = 0x0053

	// TypeSharePosition records one provider's liquidity shares in one pool.
	TypeSharePosition Type = 0x0072

	// TypePool is the reserve ledger of one (collection, currency) pool.
	TypePool Type = 0x0079
)

// String returns the name of the entry type.
func (t Type) String() string {
	switch t {
	case TypeAccountRoot:
		return "AccountRoot"
	case TypeItemOwnership:
		return "ItemOwnership"
	case TypeRoyaltyTable:
		return "RoyaltyTable"
	case TypePendingRoyalty:
		return "PendingRoyalty"
	case TypeSharePosition:
		return "SharePosition"
	case TypePool:
		return "Pool"
	default:
		return fmt.Sprintf("Unknown(0x%04x)", uint16(t))
	}
}

// Entry is implemented by every ledger entry type.
type Entry interface {
	Type() Type
	Validate() error
}

// Reindexer is implemented by entries that carry derived in-memory state
// (such as the pool's item position index) which must be rebuilt after
// decoding.
type Reindexer interface {
	Reindex()
}

// cborHandle is the codec handle shared by all entry serialization.
// Canonical mode gives deterministic bytes for identical logical state.
var cborHandle = func() *codec.CborHandle {
	h := new(codec.CborHandle)
	h.Canonical = true
	return h
}()

var factories = make(map[Type]func() Entry)

// RegisterType registers a factory for decoding entries of the given type.
// Called from init() in the entries package.
func RegisterType(t Type, factory func() Entry) {
	factories[t] = factory
}

// Encode serializes an entry: a 2-byte big-endian type tag followed by the
// canonical CBOR body.
func Encode(e Entry) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Type(), err)
	}
	var body []byte
	enc := codec.NewEncoderBytes(&body, cborHandle)
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Type(), err)
	}
	out := make([]byte, 2, 2+len(body))
	binary.BigEndian.PutUint16(out, uint16(e.Type()))
	return append(out, body...), nil
}

// Decode deserializes an entry, dispatching on the leading type tag.
func Decode(data []byte) (Entry, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("entry too short: %d bytes", len(data))
	}
	t := Type(binary.BigEndian.Uint16(data[:2]))
	factory, ok := factories[t]
	if !ok {
		return nil, fmt.Errorf("unknown entry type %s", t)
	}
	e := factory()
	dec := codec.NewDecoderBytes(data[2:], cborHandle)
	if err := dec.Decode(e); err != nil {
		return nil, fmt.Errorf("decode %s: %w", t, err)
	}
	if r, ok := e.(Reindexer); ok {
		r.Reindex()
	}
	return e, nil
}

// TypeOf reads the type tag of a serialized entry without decoding the body.
func TypeOf(data []byte) Type {
	if len(data) < 2 {
		return 0
	}
	return Type(binary.BigEndian.Uint16(data[:2]))
}
