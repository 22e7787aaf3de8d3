package tx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// stubTx is a minimal transaction for driving the engine pipeline. It
// borrows the Payment type name so preflight accepts it.
type stubTx struct {
	BaseTx
	validateErr error
	apply       func(ctx *ApplyContext) Result
}

func newStubTx(account string) *stubTx {
	return &stubTx{BaseTx: *NewBaseTx(TypePayment, account)}
}

func (s *stubTx) TxType() Type { return TypePayment }

func (s *stubTx) Validate() error { return s.validateErr }

func (s *stubTx) Apply(ctx *ApplyContext) Result {
	if s.apply != nil {
		return s.apply(ctx)
	}
	return TesSUCCESS
}

func TestEnginePreflightRejections(t *testing.T) {
	engine := NewEngine(newMapView(), EngineConfig{})

	missing := newStubTx("")
	res := engine.Apply(missing)
	require.Equal(t, TemBAD_ID, res.Result)
	require.False(t, res.Applied)

	unknown := newStubTx("alice")
	unknown.TransactionType = "NoSuchType"
	require.Equal(t, TemINVALID, engine.Apply(unknown).Result)

	malformed := newStubTx("alice")
	malformed.validateErr = ErrInvalidAmount
	require.Equal(t, TemBAD_AMOUNT, engine.Apply(malformed).Result)

	// Preflight failures never consume a sequence number.
	require.Equal(t, uint32(0), engine.Sequence())
}

func TestEngineCommitsOnlyOnSuccess(t *testing.T) {
	base := newMapView()
	engine := NewEngine(base, EngineConfig{})
	k := testKey(1)

	// A tec after staging a write leaves the base untouched.
	rejected := newStubTx("alice")
	rejected.apply = func(ctx *ApplyContext) Result {
		if err := ctx.View.Insert(k, encodedAccount(t, "alice", 100)); err != nil {
			return TefINTERNAL
		}
		return TecDRY
	}
	res := engine.Apply(rejected)
	require.Equal(t, TecDRY, res.Result)
	require.False(t, res.Applied)
	require.Empty(t, base.state)

	// The same write commits on success and shows up in metadata.
	accepted := newStubTx("alice")
	accepted.apply = func(ctx *ApplyContext) Result {
		if err := ctx.View.Insert(k, encodedAccount(t, "alice", 100)); err != nil {
			return TefINTERNAL
		}
		return TesSUCCESS
	}
	res = engine.Apply(accepted)
	require.Equal(t, TesSUCCESS, res.Result)
	require.True(t, res.Applied)
	require.Len(t, res.Metadata.AffectedNodes, 1)
	require.Contains(t, base.state, k.Key)

	// Both transactions passed preflight, both consumed a sequence number.
	require.Equal(t, uint32(2), engine.Sequence())
}

func TestEngineRejectsOverlappingApply(t *testing.T) {
	engine := NewEngine(newMapView(), EngineConfig{})

	engine.applying = true
	res := engine.Apply(newStubTx("alice"))
	require.Equal(t, TefFAILURE, res.Result)
	require.False(t, res.Applied)
	require.Equal(t, "re-entrant apply rejected", res.Message)

	engine.applying = false
	require.Equal(t, TesSUCCESS, engine.Apply(newStubTx("alice")).Result)
}

type captureRecorder struct {
	trades []Trade
}

func (r *captureRecorder) Record(trades []Trade) {
	r.trades = append(r.trades, trades...)
}

func TestEngineForwardsTradesOnCommit(t *testing.T) {
	engine := NewEngine(newMapView(), EngineConfig{})
	recorder := &captureRecorder{}
	engine.SetRecorder(recorder)

	trade := Trade{Collection: "punks", Currency: "USD", Item: "punk-1", Side: "sell", Gross: 100, Net: 97, Fee: 3}

	failed := newStubTx("alice")
	failed.apply = func(ctx *ApplyContext) Result {
		ctx.Metadata.Trades = append(ctx.Metadata.Trades, trade)
		return TecSLIPPAGE
	}
	engine.Apply(failed)
	require.Empty(t, recorder.trades)

	succeeded := newStubTx("alice")
	succeeded.apply = func(ctx *ApplyContext) Result {
		ctx.Metadata.Trades = append(ctx.Metadata.Trades, trade)
		return TesSUCCESS
	}
	engine.Apply(succeeded)
	require.Equal(t, []Trade{trade}, recorder.trades)
}

func TestEngineBatchSizeDefault(t *testing.T) {
	engine := NewEngine(newMapView(), EngineConfig{})
	require.Equal(t, DefaultMaxBatchSize, engine.Config().MaxBatchSize)

	bounded := NewEngine(newMapView(), EngineConfig{MaxBatchSize: 4})
	require.Equal(t, 4, bounded.Config().MaxBatchSize)
}

func TestParseValidationError(t *testing.T) {
	require.Equal(t, TemBAD_AMOUNT, parseValidationError(ErrInvalidAmount))
	require.Equal(t, TemBAD_FEE, parseValidationError(ErrInvalidFee))
	require.Equal(t, TemBAD_ID, parseValidationError(ErrInvalidID))
	require.Equal(t, TemEMPTY_SET, parseValidationError(ErrEmptySet))
	require.Equal(t, TemINVALID, parseValidationError(ErrMissingRequiredField))
}
