// Package num provides the exact-arithmetic numeric type used for prices and
// quantities throughout the book. It exists so that the matching core never
// has to reason about floating point tolerance: every comparison (<, >, ==)
// is exact, and "fully filled" is a plain zero check.
package num

import (
	"github.com/shopspring/decimal"
)

// Decimal is an arbitrary-precision decimal, suitable for both price and
// quantity fields. Aliasing decimal.Decimal directly (rather than wrapping
// it in a struct) keeps every method of the underlying library available
// without a forwarding layer.
type Decimal = decimal.Decimal

var zero = decimal.Zero

// Zero returns the additive identity.
func Zero() Decimal { return zero }

// FromFloat builds a Decimal from a float64. Only meant for literals in
// tests and conditional-order trigger math that originates as a float
// signal (e.g. an external mark price feed); never round-trip a Decimal
// through float64 on the hot matching path.
func FromFloat(f float64) Decimal { return decimal.NewFromFloat(f) }

// FromInt builds a Decimal from an int64.
func FromInt(i int64) Decimal { return decimal.NewFromInt(i) }

// FromString parses a Decimal from its string form.
func FromString(s string) (Decimal, error) { return decimal.NewFromString(s) }

// Min returns the smaller of a and b.
func Min(a, b Decimal) Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Decimal) Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// IsPositive reports whether d > 0.
func IsPositive(d Decimal) bool { return d.GreaterThan(zero) }

// IsZero reports whether d == 0.
func IsZero(d Decimal) bool { return d.Equal(zero) }
