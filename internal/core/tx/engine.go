package tx

import (
	"crypto/sha256"
	"encoding/json"
	"sync"
)

// DefaultMaxBatchSize bounds the item set of a batch sell when the
// configuration does not override it.
const DefaultMaxBatchSize = 32

// Engine processes transactions against a ledger. Apply is serialized: each
// transaction observes the final state of the previous one and commits its
// buffered changes atomically or not at all.
type Engine struct {
	view     LedgerView
	config   EngineConfig
	recorder TradeRecorder

	mu       sync.Mutex
	applying bool
	seq      uint32
}

// EngineConfig holds configuration for the transaction engine.
type EngineConfig struct {
	// AdminAccount may perform privileged operations (pool fee changes,
	// item minting). Empty disables the privileged surface.
	AdminAccount string

	// MaxBatchSize bounds the item set of a batch sell. Zero means
	// DefaultMaxBatchSize.
	MaxBatchSize int

	// MinFeeBps and MaxFeeBps bound the swap fee accepted at pool creation
	// and fee changes. MaxFeeBps zero means the full scale (10000).
	MinFeeBps uint16
	MaxFeeBps uint16

	// RoyaltySingleRecipient truncates resolved royalty tables to their
	// first entry.
	RoyaltySingleRecipient bool

	// RoyaltyDelegate, when set, is consulted for items with no royalty
	// table bound in the ledger.
	RoyaltyDelegate RoyaltyDelegate
}

// RoyaltyShare is one recipient's resolved royalty obligation for a sale.
type RoyaltyShare struct {
	Recipient string
	Amount    uint64
}

// RoyaltyDelegate computes royalty obligations for items whose collection
// has no royalty table in the ledger. Implementations are trusted: the
// engine asserts the returned total never exceeds the sale value but does
// not otherwise second-guess them.
type RoyaltyDelegate interface {
	Royalties(collection, item string, saleValue uint64) ([]RoyaltyShare, error)
}

// Trade describes one executed swap leg, emitted in metadata for price
// recording.
type Trade struct {
	Collection string `json:"collection"`
	Currency   string `json:"currency"`
	Item       string `json:"item"`
	Trader     string `json:"trader"`
	Side       string `json:"side"` // "sell" or "buy"
	Gross      uint64 `json:"gross"`
	Fee        uint64 `json:"fee"`
	Net        uint64 `json:"net"`
	Royalty    uint64 `json:"royalty"`
}

// TradeRecorder receives trades from successfully applied transactions.
type TradeRecorder interface {
	Record(trades []Trade)
}

// ApplyResult contains the result of applying a transaction.
type ApplyResult struct {
	// Result is the transaction result code.
	Result Result

	// Applied indicates if the transaction changed ledger state.
	Applied bool

	// Metadata contains the changes made by the transaction.
	Metadata *Metadata

	// Message is a human-readable result message.
	Message string
}

// Metadata tracks changes made by a transaction.
type Metadata struct {
	// AffectedNodes lists all entries that were created, modified, or
	// deleted.
	AffectedNodes []AffectedNode `json:"AffectedNodes"`

	// TransactionResult is the result code.
	TransactionResult Result `json:"TransactionResult"`

	// Trades lists the swap legs executed by the transaction.
	Trades []Trade `json:"Trades,omitempty"`
}

// AffectedNode describes one created, modified or deleted ledger entry.
type AffectedNode struct {
	NodeType        string `json:"NodeType"`
	LedgerEntryType string `json:"LedgerEntryType"`
	LedgerIndex     string `json:"LedgerIndex"`
}

// MarshalJSON renders the result code as its string name.
func (m Metadata) MarshalJSON() ([]byte, error) {
	type alias struct {
		AffectedNodes     []AffectedNode `json:"AffectedNodes"`
		TransactionResult string         `json:"TransactionResult"`
		Trades            []Trade        `json:"Trades,omitempty"`
	}
	return json.Marshal(alias{
		AffectedNodes:     m.AffectedNodes,
		TransactionResult: m.TransactionResult.String(),
		Trades:            m.Trades,
	})
}

// NewEngine creates a new transaction engine.
func NewEngine(view LedgerView, config EngineConfig) *Engine {
	if config.MaxBatchSize <= 0 {
		config.MaxBatchSize = DefaultMaxBatchSize
	}
	return &Engine{
		view:   view,
		config: config,
	}
}

// SetRecorder installs a trade recorder. Trades from successfully applied
// transactions are forwarded to it after commit.
func (e *Engine) SetRecorder(r TradeRecorder) {
	e.recorder = r
}

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// Sequence returns the number of transactions that reached apply.
func (e *Engine) Sequence() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq
}

// computeTransactionHash computes the hash of a transaction: SHA-256 of the
// "TXN\x00" prefix and the canonical JSON encoding.
func computeTransactionHash(tx Transaction) ([32]byte, error) {
	var hash [32]byte
	data, err := json.Marshal(tx)
	if err != nil {
		return hash, err
	}
	h := sha256.New()
	h.Write([]byte{0x54, 0x58, 0x4E, 0x00})
	h.Write(data)
	copy(hash[:], h.Sum(nil))
	return hash, nil
}

// Apply processes a transaction and applies it to the ledger. Transactions
// are serialized; nothing observable escapes a failed transaction.
func (e *Engine) Apply(tx Transaction) ApplyResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	// The mutex serializes submissions; the flag rejects a re-entrant call
	// issued from inside an Apply (a custody hook must not submit).
	if e.applying {
		return ApplyResult{
			Result:  TefFAILURE,
			Applied: false,
			Message: "re-entrant apply rejected",
		}
	}
	e.applying = true
	defer func() { e.applying = false }()

	// Step 1: Preflight checks (state-independent validation).
	result := e.preflight(tx)
	if !result.IsSuccess() {
		return ApplyResult{
			Result:  result,
			Applied: false,
			Message: result.Message(),
		}
	}

	// Step 2: Compute transaction hash for entry threading.
	txHash, err := computeTransactionHash(tx)
	if err != nil {
		return ApplyResult{
			Result:  TefINTERNAL,
			Applied: false,
			Message: "failed to compute transaction hash: " + err.Error(),
		}
	}

	e.seq++

	// Step 3: Apply against a buffered view.
	metadata := &Metadata{
		AffectedNodes:     make([]AffectedNode, 0),
		TransactionResult: TesSUCCESS,
	}

	table := NewApplyStateTable(e.view, txHash, e.seq)
	ctx := &ApplyContext{
		View:     table,
		Account:  tx.GetCommon().Account,
		Config:   e.config,
		TxHash:   txHash,
		Seq:      e.seq,
		Metadata: metadata,
	}

	// Step 3a: Preclaim checks (validation against current state).
	if preclaimer, ok := tx.(Preclaimer); ok {
		result = preclaimer.Preclaim(ctx)
	}

	// Step 3b: doApply.
	if result.IsSuccess() {
		if appliable, ok := tx.(Appliable); ok {
			result = appliable.Apply(ctx)
		}
	}

	metadata.TransactionResult = result

	// Step 4: Commit the buffer only on success. Every failure, tec
	// included, discards the buffer wholesale.
	if result.IsSuccess() {
		generated, err := table.Apply()
		if err != nil {
			return ApplyResult{
				Result:   TefINTERNAL,
				Applied:  false,
				Metadata: metadata,
				Message:  "failed to apply state changes: " + err.Error(),
			}
		}
		metadata.AffectedNodes = generated.AffectedNodes

		if e.recorder != nil && len(metadata.Trades) > 0 {
			e.recorder.Record(metadata.Trades)
		}
	}

	return ApplyResult{
		Result:   result,
		Applied:  result.IsApplied(),
		Metadata: metadata,
		Message:  result.Message(),
	}
}

// preflight performs state-independent validation on the transaction.
func (e *Engine) preflight(tx Transaction) Result {
	common := tx.GetCommon()

	if common.Account == "" {
		return TemBAD_ID
	}
	if common.TransactionType == "" {
		return TemINVALID
	}
	if _, ok := TypeFromName(common.TransactionType); !ok {
		return TemINVALID
	}

	if err := tx.Validate(); err != nil {
		return parseValidationError(err)
	}

	return TesSUCCESS
}

// parseValidationError extracts a result code from a validation error
// message. Validate implementations prefix the code (e.g. "temBAD_AMOUNT:
// message"); unprefixed errors map to temINVALID.
func parseValidationError(err error) Result {
	msg := err.Error()

	codes := map[string]Result{
		"temMALFORMED":  TemMALFORMED,
		"temBAD_AMOUNT": TemBAD_AMOUNT,
		"temBAD_FEE":    TemBAD_FEE,
		"temBAD_ID":     TemBAD_ID,
		"temEMPTY_SET":  TemEMPTY_SET,
		"temOVERSIZE":   TemOVERSIZE,
		"temINVALID":    TemINVALID,
	}

	for code, result := range codes {
		if len(msg) >= len(code) && msg[:len(code)] == code {
			if len(msg) == len(code) || msg[len(code)] == ':' || msg[len(code)] == ' ' {
				return result
			}
		}
	}

	return TemINVALID
}
