// Package amount provides the unsigned currency amount type used across the
// ledger. All arithmetic is checked: overflow and underflow are reported as
// errors so that a mis-sized operation aborts instead of corrupting reserves.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
)

// Amount is a quantity of settlement currency in its smallest unit.
type Amount uint64

var (
	ErrOverflow  = errors.New("amount overflow")
	ErrUnderflow = errors.New("amount underflow")
	ErrDivZero   = errors.New("division by zero")
)

// New creates an Amount from a raw unsigned value.
func New(v uint64) Amount {
	return Amount(v)
}

// Uint64 returns the raw unsigned value.
func (a Amount) Uint64() uint64 {
	return uint64(a)
}

// Add returns a+b, or ErrOverflow.
func (a Amount) Add(b Amount) (Amount, error) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return Amount(sum), nil
}

// Sub returns a-b, or ErrUnderflow when b > a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// MulDiv returns floor(a*num/den) using a 128-bit intermediate, so the
// product cannot overflow. Returns ErrDivZero when den == 0 and ErrOverflow
// when the quotient does not fit in 64 bits.
func (a Amount) MulDiv(num, den uint64) (Amount, error) {
	if den == 0 {
		return 0, ErrDivZero
	}
	hi, lo := bits.Mul64(uint64(a), num)
	if hi >= den {
		return 0, ErrOverflow
	}
	quo, _ := bits.Div64(hi, lo, den)
	return Amount(quo), nil
}

// MulDivBig is the big.Int reference implementation of MulDiv. It exists for
// cross-checking the bits-based fast path in tests.
func (a Amount) MulDivBig(num, den uint64) (Amount, error) {
	if den == 0 {
		return 0, ErrDivZero
	}
	p := new(big.Int).Mul(new(big.Int).SetUint64(uint64(a)), new(big.Int).SetUint64(num))
	p.Quo(p, new(big.Int).SetUint64(den))
	if !p.IsUint64() {
		return 0, ErrOverflow
	}
	return Amount(p.Uint64()), nil
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a == 0
}

// IsPositive reports whether the amount is greater than zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

func (a Amount) String() string {
	return fmt.Sprintf("%d", uint64(a))
}
