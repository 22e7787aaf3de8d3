package tx

import "errors"

// Common errors shared by transaction validation.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidAmount        = errors.New("temBAD_AMOUNT: invalid amount")
	ErrInvalidFee           = errors.New("temBAD_FEE: fee out of range")
	ErrInvalidID            = errors.New("temBAD_ID: invalid identifier")
	ErrEmptySet             = errors.New("temEMPTY_SET: empty item set")
)

// Transaction is the interface that all transaction types must implement.
type Transaction interface {
	// TxType returns the transaction type.
	TxType() Type

	// GetCommon returns the common transaction fields.
	GetCommon() *Common

	// Validate checks if the transaction is well formed. State-independent
	// checks only; anything that needs the ledger belongs in Apply.
	Validate() error
}

// Appliable is implemented by transaction types that can apply themselves to
// ledger state. Apply operates on the buffered view in the context; the
// engine commits the buffer only on tesSUCCESS.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// Preclaimer is optionally implemented by transaction types with checks
// against current ledger state that can fail before any effect is staged.
// The engine runs Preclaim after preflight and before Apply.
type Preclaimer interface {
	Preclaim(ctx *ApplyContext) Result
}

// Common contains fields common to all transaction types.
type Common struct {
	// Account is the submitting account.
	Account string `json:"Account"`

	// TransactionType names the operation.
	TransactionType string `json:"TransactionType"`
}

// Validate validates the common fields.
func (c *Common) Validate() error {
	if c.Account == "" {
		return errors.New("Account is required")
	}
	if c.TransactionType == "" {
		return errors.New("TransactionType is required")
	}
	return nil
}

// BaseTx provides the common implementation embedded by all transaction
// types.
type BaseTx struct {
	Common
}

// NewBaseTx creates a BaseTx for the given type and account.
func NewBaseTx(txType Type, account string) *BaseTx {
	return &BaseTx{
		Common: Common{
			Account:         account,
			TransactionType: txType.String(),
		},
	}
}

// GetCommon returns the common transaction fields.
func (b *BaseTx) GetCommon() *Common {
	return &b.Common
}
