package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// Decimals is the number of fractional digits carried by every Amount.
const Decimals = 18

// Arithmetic errors returned by Amount operations.
var (
	ErrOverflow       = errors.New("amount: arithmetic overflow")
	ErrUnderflow      = errors.New("amount: arithmetic underflow")
	ErrDivisionByZero = errors.New("amount: division by zero")
	ErrInvalidAmount  = errors.New("amount: invalid decimal")
)

var scale = uint256.NewInt(1_000_000_000_000_000_000)

// Amount is an unsigned 18-decimal fixed-point quantity backed by a 256-bit
// integer. The zero value is 0.
//
// Examples:
//   - Units(1000) = 1000.0 (1000 * 10^18 base units)
//   - MustParseAmount("0.1") = 0.1 (10^17 base units)
//
// All arithmetic is overflow checked; no operation wraps silently.
type Amount struct {
	v uint256.Int
}

// Zero returns the zero Amount.
func Zero() Amount { return Amount{} }

// One returns 1.0, the fixed-point unit.
func One() Amount {
	var a Amount
	a.v.Set(scale)
	return a
}

// MaxAmount returns the largest representable Amount (2^256-1 base units),
// the conventional "unlimited" allowance.
func MaxAmount() Amount {
	var a Amount
	a.v.SetAllOne()
	return a
}

// BaseUnits returns an Amount of n base units (10^-18 of a whole unit).
func BaseUnits(n uint64) Amount {
	var a Amount
	a.v.SetUint64(n)
	return a
}

// Units returns an Amount of n whole units.
func Units(n uint64) Amount {
	var a Amount
	// n < 2^64 and scale < 2^60, so the product always fits.
	a.v.Mul(uint256.NewInt(n), scale)
	return a
}

// ParseAmount parses a human decimal such as "1000", "0.1" or "2000.25".
// At most Decimals fractional digits are accepted.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return Amount{}, fmt.Errorf("%w: %q: sign not allowed", ErrInvalidAmount, s)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > Decimals {
		return Amount{}, fmt.Errorf("%w: %q: more than %d fractional digits", ErrInvalidAmount, s, Decimals)
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return ParseBaseUnits(whole + frac + strings.Repeat("0", Decimals-len(frac)))
}

// ParseBaseUnits parses a plain integer string of base units, the storage
// representation produced by Amount.BaseUnits.
func ParseBaseUnits(s string) (Amount, error) {
	if !isDigits(s) {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return Amount{}, nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}
	return Amount{v: *v}, nil
}

// MustParseAmount is like ParseAmount but panics on error. Use for literals.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Arithmetic operations

// Add returns a+b.
func (a Amount) Add(b Amount) (Amount, error) {
	var r Amount
	if _, overflow := r.v.AddOverflow(&a.v, &b.v); overflow {
		return Amount{}, ErrOverflow
	}
	return r, nil
}

// Sub returns a-b.
func (a Amount) Sub(b Amount) (Amount, error) {
	var r Amount
	if _, underflow := r.v.SubOverflow(&a.v, &b.v); underflow {
		return Amount{}, ErrUnderflow
	}
	return r, nil
}

// SaturatingSub returns a-b, or zero when b > a.
func (a Amount) SaturatingSub(b Amount) Amount {
	if a.v.Lt(&b.v) {
		return Amount{}
	}
	var r Amount
	r.v.Sub(&a.v, &b.v)
	return r
}

// Mul returns the fixed-point product a*b (rounded down).
func (a Amount) Mul(b Amount) (Amount, error) {
	return a.MulDiv(b, One())
}

// Div returns the fixed-point quotient a/b (rounded down).
func (a Amount) Div(b Amount) (Amount, error) {
	if b.IsZero() {
		return Amount{}, ErrDivisionByZero
	}
	return a.MulDiv(One(), b)
}

// MulDiv returns a*b/d computed with a 512-bit intermediate, rounded down.
func (a Amount) MulDiv(b, d Amount) (Amount, error) {
	if d.IsZero() {
		return Amount{}, ErrDivisionByZero
	}
	var r Amount
	if _, overflow := r.v.MulDivOverflow(&a.v, &b.v, &d.v); overflow {
		return Amount{}, ErrOverflow
	}
	return r, nil
}

// Comparison methods

// Cmp compares a and b and returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int { return a.v.Cmp(&b.v) }

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool { return a.v.IsZero() }

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool { return !a.v.IsZero() }

// Equal returns true if both amounts are equal.
func (a Amount) Equal(b Amount) bool { return a.v.Eq(&b.v) }

// LessThan returns true if a < b.
func (a Amount) LessThan(b Amount) bool { return a.v.Lt(&b.v) }

// GreaterThan returns true if a > b.
func (a Amount) GreaterThan(b Amount) bool { return a.v.Gt(&b.v) }

// Min returns the smaller of a and b.
func (a Amount) Min(b Amount) Amount {
	if a.v.Lt(&b.v) {
		return a
	}
	return b
}

// Formatting methods

// BaseUnits returns the integer base-unit representation used for storage.
func (a Amount) BaseUnits() string { return a.v.Dec() }

// String returns the exact human decimal, e.g. "2000" or "0.1".
func (a Amount) String() string {
	s := a.v.Dec()
	if len(s) <= Decimals {
		s = strings.Repeat("0", Decimals-len(s)+1) + s
	}
	whole, frac := s[:len(s)-Decimals], strings.TrimRight(s[len(s)-Decimals:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// Float64 returns an approximation suitable for metrics only.
func (a Amount) Float64() float64 {
	f, err := strconv.ParseFloat(a.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// MarshalText implements encoding.TextMarshaler using the human decimal.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(data []byte) error {
	parsed, err := ParseAmount(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
