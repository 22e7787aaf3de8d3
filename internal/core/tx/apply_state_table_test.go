package tx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"nftswapd/internal/core/ledger/entry"
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/keylet"
)

var errMapView = errors.New("map view: entry state conflict")

// mapView is a minimal in-memory LedgerView for exercising the buffer.
type mapView struct {
	state map[[32]byte][]byte
}

func newMapView() *mapView {
	return &mapView{state: make(map[[32]byte][]byte)}
}

func (v *mapView) Read(k keylet.Keylet) ([]byte, error) {
	return v.state[k.Key], nil
}

func (v *mapView) Exists(k keylet.Keylet) (bool, error) {
	_, ok := v.state[k.Key]
	return ok, nil
}

func (v *mapView) Insert(k keylet.Keylet, data []byte) error {
	if _, ok := v.state[k.Key]; ok {
		return errMapView
	}
	v.state[k.Key] = data
	return nil
}

func (v *mapView) Update(k keylet.Keylet, data []byte) error {
	if _, ok := v.state[k.Key]; !ok {
		return errMapView
	}
	v.state[k.Key] = data
	return nil
}

func (v *mapView) Erase(k keylet.Keylet) error {
	if _, ok := v.state[k.Key]; !ok {
		return errMapView
	}
	delete(v.state, k.Key)
	return nil
}

func (v *mapView) ForEach(fn func(key [32]byte, data []byte) bool) error {
	for k, d := range v.state {
		if !fn(k, d) {
			return nil
		}
	}
	return nil
}

func testKey(b byte) keylet.Keylet {
	var k keylet.Keylet
	k.Key[0] = b
	return k
}

// encodedAccount builds a serialized AccountRoot carrying one balance.
func encodedAccount(t *testing.T, account string, amt uint64) []byte {
	t.Helper()
	root := entries.NewAccountRoot(account)
	require.NoError(t, root.Credit("USD", amt))
	data, err := entry.Encode(root)
	require.NoError(t, err)
	return data
}

func newTestTable(base LedgerView) *ApplyStateTable {
	return NewApplyStateTable(base, [32]byte{0xAA}, 1)
}

func TestApplyStateTableBuffersUntilApply(t *testing.T) {
	base := newMapView()
	table := newTestTable(base)
	k := testKey(1)
	data := encodedAccount(t, "alice", 100)

	require.NoError(t, table.Insert(k, data))

	// The write is visible through the buffer but not in the base.
	got, err := table.Read(k)
	require.NoError(t, err)
	require.Equal(t, data, got)
	require.Empty(t, base.state)

	meta, err := table.Apply()
	require.NoError(t, err)
	require.Len(t, meta.AffectedNodes, 1)
	require.Equal(t, "CreatedNode", meta.AffectedNodes[0].NodeType)
	require.Equal(t, data, base.state[k.Key])
}

func TestApplyStateTableInsertConflicts(t *testing.T) {
	base := newMapView()
	k := testKey(1)
	base.state[k.Key] = encodedAccount(t, "alice", 100)

	table := newTestTable(base)
	require.Error(t, table.Insert(k, encodedAccount(t, "bob", 1)))

	// A buffered insert also blocks a second insert at the same key.
	k2 := testKey(2)
	require.NoError(t, table.Insert(k2, encodedAccount(t, "bob", 1)))
	require.Error(t, table.Insert(k2, encodedAccount(t, "carol", 2)))
}

func TestApplyStateTableUpdateAndEraseRequireEntry(t *testing.T) {
	table := newTestTable(newMapView())
	k := testKey(1)

	require.Error(t, table.Update(k, encodedAccount(t, "alice", 1)))
	require.Error(t, table.Erase(k))
}

func TestApplyStateTableInsertThenEraseIsNoop(t *testing.T) {
	base := newMapView()
	table := newTestTable(base)
	k := testKey(1)

	require.NoError(t, table.Insert(k, encodedAccount(t, "alice", 1)))
	require.NoError(t, table.Erase(k))

	exists, err := table.Exists(k)
	require.NoError(t, err)
	require.False(t, exists)

	meta, err := table.Apply()
	require.NoError(t, err)
	require.Empty(t, meta.AffectedNodes)
	require.Empty(t, base.state)
}

func TestApplyStateTableEraseThenInsertBecomesModify(t *testing.T) {
	base := newMapView()
	k := testKey(1)
	base.state[k.Key] = encodedAccount(t, "alice", 100)

	table := newTestTable(base)
	require.NoError(t, table.Erase(k))
	replacement := encodedAccount(t, "alice", 250)
	require.NoError(t, table.Insert(k, replacement))

	meta, err := table.Apply()
	require.NoError(t, err)
	require.Len(t, meta.AffectedNodes, 1)
	require.Equal(t, "ModifiedNode", meta.AffectedNodes[0].NodeType)
	require.Equal(t, replacement, base.state[k.Key])
}

func TestApplyStateTableUnchangedWriteEmitsNothing(t *testing.T) {
	base := newMapView()
	k := testKey(1)
	data := encodedAccount(t, "alice", 100)
	base.state[k.Key] = data

	table := newTestTable(base)
	require.NoError(t, table.Update(k, data))

	meta, err := table.Apply()
	require.NoError(t, err)
	require.Empty(t, meta.AffectedNodes)
}

func TestApplyStateTableReadAfterErase(t *testing.T) {
	base := newMapView()
	k := testKey(1)
	base.state[k.Key] = encodedAccount(t, "alice", 100)

	table := newTestTable(base)
	require.NoError(t, table.Erase(k))

	got, err := table.Read(k)
	require.NoError(t, err)
	require.Nil(t, got)

	meta, err := table.Apply()
	require.NoError(t, err)
	require.Len(t, meta.AffectedNodes, 1)
	require.Equal(t, "DeletedNode", meta.AffectedNodes[0].NodeType)
	require.Empty(t, base.state)
}

func TestApplyStateTableForEachOverlay(t *testing.T) {
	base := newMapView()
	erased, modified, inserted := testKey(1), testKey(2), testKey(3)
	base.state[erased.Key] = encodedAccount(t, "alice", 1)
	base.state[modified.Key] = encodedAccount(t, "bob", 2)

	table := newTestTable(base)
	require.NoError(t, table.Erase(erased))
	updated := encodedAccount(t, "bob", 99)
	require.NoError(t, table.Update(modified, updated))
	fresh := encodedAccount(t, "carol", 3)
	require.NoError(t, table.Insert(inserted, fresh))

	seen := make(map[[32]byte][]byte)
	require.NoError(t, table.ForEach(func(key [32]byte, data []byte) bool {
		seen[key] = data
		return true
	}))

	require.Len(t, seen, 2)
	require.Equal(t, updated, seen[modified.Key])
	require.Equal(t, fresh, seen[inserted.Key])
}

func TestApplyStateTableTypedRoundtrip(t *testing.T) {
	base := newMapView()
	table := newTestTable(base)
	k := testKey(1)

	root := entries.NewAccountRoot("alice")
	require.NoError(t, root.Credit("USD", 500))
	require.NoError(t, table.InsertEntry(k, root))

	e, err := table.ReadEntry(k)
	require.NoError(t, err)
	decoded, ok := e.(*entries.AccountRoot)
	require.True(t, ok)
	require.Equal(t, uint64(500), decoded.Balance("USD"))

	// A missing key decodes to nil without error.
	e, err = table.ReadEntry(testKey(9))
	require.NoError(t, err)
	require.Nil(t, e)
}
