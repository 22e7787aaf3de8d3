package tx

import "fmt"

// Result represents a transaction result code.
type Result int

// Transaction result codes, organized by category: tes (success), tec
// (rejected against state, nothing applied), tem (malformed), tef (internal
// failure), ter (retry).
const (
	// tesSUCCESS (0)
	TesSUCCESS Result = 0

	// tec codes (100-199): the transaction was well formed but cannot be
	// applied against the current state. No state changes are kept.
	TecNO_POOL              Result = 100
	TecDUPLICATE            Result = 101
	TecUNFUNDED             Result = 102
	TecNOT_OWNER            Result = 103
	TecINSUFFICIENT_SHARES  Result = 104
	TecDUST                 Result = 105
	TecDRY                  Result = 106
	TecNEEDS_INVENTORY      Result = 107
	TecSLIPPAGE             Result = 108
	TecROYALTY_OVERFLOW     Result = 109
	TecNO_PERMISSION        Result = 110
	TecNO_ENTRY             Result = 111
	TecITEM_NOT_IN_POOL     Result = 112
	TecHAS_SHARES           Result = 113
	TecINVARIANT_FAILED     Result = 114
	TecINTERNAL             Result = 115

	// tef codes (-199 to -100): internal failure.
	TefFAILURE  Result = -199
	TefINTERNAL Result = -192

	// tem codes (-299 to -200): malformed transaction.
	TemMALFORMED   Result = -299
	TemBAD_AMOUNT  Result = -298
	TemBAD_FEE     Result = -295
	TemBAD_ID      Result = -290
	TemEMPTY_SET   Result = -289
	TemOVERSIZE    Result = -288
	TemINVALID     Result = -277

	// ter codes (-99 to -1): retry later.
	TerRETRY      Result = -99
	TerNO_ACCOUNT Result = -96
)

// String returns the string representation of the result code.
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecNO_POOL:
		return "tecNO_POOL"
	case TecDUPLICATE:
		return "tecDUPLICATE"
	case TecUNFUNDED:
		return "tecUNFUNDED"
	case TecNOT_OWNER:
		return "tecNOT_OWNER"
	case TecINSUFFICIENT_SHARES:
		return "tecINSUFFICIENT_SHARES"
	case TecDUST:
		return "tecDUST"
	case TecDRY:
		return "tecDRY"
	case TecNEEDS_INVENTORY:
		return "tecNEEDS_INVENTORY"
	case TecSLIPPAGE:
		return "tecSLIPPAGE"
	case TecROYALTY_OVERFLOW:
		return "tecROYALTY_OVERFLOW"
	case TecNO_PERMISSION:
		return "tecNO_PERMISSION"
	case TecNO_ENTRY:
		return "tecNO_ENTRY"
	case TecITEM_NOT_IN_POOL:
		return "tecITEM_NOT_IN_POOL"
	case TecHAS_SHARES:
		return "tecHAS_SHARES"
	case TecINVARIANT_FAILED:
		return "tecINVARIANT_FAILED"
	case TecINTERNAL:
		return "tecINTERNAL"
	case TefFAILURE:
		return "tefFAILURE"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TemMALFORMED:
		return "temMALFORMED"
	case TemBAD_AMOUNT:
		return "temBAD_AMOUNT"
	case TemBAD_FEE:
		return "temBAD_FEE"
	case TemBAD_ID:
		return "temBAD_ID"
	case TemEMPTY_SET:
		return "temEMPTY_SET"
	case TemOVERSIZE:
		return "temOVERSIZE"
	case TemINVALID:
		return "temINVALID"
	case TerRETRY:
		return "terRETRY"
	case TerNO_ACCOUNT:
		return "terNO_ACCOUNT"
	default:
		return fmt.Sprintf("Unknown(%d)", r)
	}
}

// IsSuccess returns true if the result indicates success.
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec (rejected against state) code.
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (internal failure) code.
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) code.
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// IsTer returns true if this is a ter (retry) code.
func (r Result) IsTer() bool {
	return r >= -99 && r <= -1
}

// IsApplied returns true if the transaction changed ledger state. Operations
// are all-or-nothing: only success applies, every failure leaves state
// untouched.
func (r Result) IsApplied() bool {
	return r.IsSuccess()
}

// Message returns a human-readable message for the result.
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The transaction was applied."
	case TecNO_POOL:
		return "No pool exists for the collection and currency pair."
	case TecDUPLICATE:
		return "The entry already exists."
	case TecUNFUNDED:
		return "Insufficient balance for the requested operation."
	case TecNOT_OWNER:
		return "The account does not own the item."
	case TecINSUFFICIENT_SHARES:
		return "The account holds fewer shares than requested."
	case TecDUST:
		return "The amount is too small to mint any shares."
	case TecDRY:
		return "The pool reserve cannot fund the operation."
	case TecNEEDS_INVENTORY:
		return "The pool must retain at least one item after a buy."
	case TecSLIPPAGE:
		return "The execution price violated the stated bound."
	case TecROYALTY_OVERFLOW:
		return "The royalty obligation exceeds the sale value."
	case TecNO_PERMISSION:
		return "The account is not permitted to perform this operation."
	case TecNO_ENTRY:
		return "The referenced entry does not exist."
	case TecITEM_NOT_IN_POOL:
		return "The item is not in the pool's inventory."
	case TecHAS_SHARES:
		return "Shares are still outstanding."
	case TecINVARIANT_FAILED:
		return "A state invariant would be violated."
	case TecINTERNAL:
		return "An arithmetic bound was exceeded."
	case TemBAD_AMOUNT:
		return "Amounts must be positive."
	case TemBAD_FEE:
		return "The fee is outside the permitted basis-point range."
	case TemBAD_ID:
		return "A required identifier is missing or malformed."
	case TemEMPTY_SET:
		return "The item set must not be empty."
	case TemOVERSIZE:
		return "The item set exceeds the batch limit."
	case TemINVALID:
		return "The transaction is ill-formed."
	case TerNO_ACCOUNT:
		return "The source account does not exist."
	default:
		return r.String()
	}
}
