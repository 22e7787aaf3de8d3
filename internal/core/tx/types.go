package tx

import "fmt"

// Type represents a transaction type code.
type Type uint16

// Transaction type codes.
const (
	TypeInvalid Type = 0xFFFF

	TypePayment           Type = 0  // ttPAYMENT
	TypeItemMint          Type = 5  // ttITEM_MINT
	TypeItemTransfer      Type = 6  // ttITEM_TRANSFER
	TypePoolCreate        Type = 35 // ttPOOL_CREATE
	TypeLiquidityDeposit  Type = 36 // ttLIQUIDITY_DEPOSIT
	TypeLiquidityWithdraw Type = 37 // ttLIQUIDITY_WITHDRAW
	TypeItemDeposit       Type = 38 // ttITEM_DEPOSIT
	TypeItemSell          Type = 39 // ttITEM_SELL
	TypeItemBuy           Type = 40 // ttITEM_BUY
	TypeItemBatchSell     Type = 41 // ttITEM_BATCH_SELL
	TypeFeeWithdraw       Type = 42 // ttFEE_WITHDRAW
	TypePoolFeeSet        Type = 43 // ttPOOL_FEE_SET
	TypeRoyaltySet        Type = 50 // ttROYALTY_SET
	TypeRoyaltyCredit     Type = 51 // ttROYALTY_CREDIT
	TypeRoyaltyWithdraw   Type = 52 // ttROYALTY_WITHDRAW
)

// String returns the string name of the transaction type.
func (t Type) String() string {
	switch t {
	case TypePayment:
		return "Payment"
	case TypeItemMint:
		return "ItemMint"
	case TypeItemTransfer:
		return "ItemTransfer"
	case TypePoolCreate:
		return "PoolCreate"
	case TypeLiquidityDeposit:
		return "LiquidityDeposit"
	case TypeLiquidityWithdraw:
		return "LiquidityWithdraw"
	case TypeItemDeposit:
		return "ItemDeposit"
	case TypeItemSell:
		return "ItemSell"
	case TypeItemBuy:
		return "ItemBuy"
	case TypeItemBatchSell:
		return "ItemBatchSell"
	case TypeFeeWithdraw:
		return "FeeWithdraw"
	case TypePoolFeeSet:
		return "PoolFeeSet"
	case TypeRoyaltySet:
		return "RoyaltySet"
	case TypeRoyaltyCredit:
		return "RoyaltyCredit"
	case TypeRoyaltyWithdraw:
		return "RoyaltyWithdraw"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(t))
	}
}

// TypeFromName returns the transaction type for a name.
func TypeFromName(name string) (Type, bool) {
	switch name {
	case "Payment":
		return TypePayment, true
	case "ItemMint":
		return TypeItemMint, true
	case "ItemTransfer":
		return TypeItemTransfer, true
	case "PoolCreate":
		return TypePoolCreate, true
	case "LiquidityDeposit":
		return TypeLiquidityDeposit, true
	case "LiquidityWithdraw":
		return TypeLiquidityWithdraw, true
	case "ItemDeposit":
		return TypeItemDeposit, true
	case "ItemSell":
		return TypeItemSell, true
	case "ItemBuy":
		return TypeItemBuy, true
	case "ItemBatchSell":
		return TypeItemBatchSell, true
	case "FeeWithdraw":
		return TypeFeeWithdraw, true
	case "PoolFeeSet":
		return TypePoolFeeSet, true
	case "RoyaltySet":
		return TypeRoyaltySet, true
	case "RoyaltyCredit":
		return TypeRoyaltyCredit, true
	case "RoyaltyWithdraw":
		return TypeRoyaltyWithdraw, true
	default:
		return TypeInvalid, false
	}
}
