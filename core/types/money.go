// Package types - Monetary arithmetic helpers
// All money flows through shopspring/decimal; the remainder-distribution
// step works on integer cents because it depends on exact equality.
package types

import "github.com/shopspring/decimal"

// CentsPlaces is the number of decimal places in the smallest currency unit
const CentsPlaces = 2

// BreakdownTolerance is the maximum absolute drift allowed between a
// breakdown total and the sum of its components (half a cent).
var BreakdownTolerance = decimal.New(5, -3)

// ReconcileTolerance is the maximum absolute drift allowed between an
// allocation total and the sum of its per-tenant shares (one cent).
var ReconcileTolerance = decimal.New(1, -2)

// RoundCents rounds a monetary amount to the smallest currency unit
// using round-half-up.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentsPlaces)
}

// Cents converts a monetary amount to integer cents after rounding.
func Cents(d decimal.Decimal) int64 {
	return RoundCents(d).Shift(CentsPlaces).IntPart()
}

// FromCents converts integer cents back to a decimal amount.
func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -CentsPlaces)
}

// SplitEven divides a total among n parties so the parts sum to the total
// exactly. The total is rounded to cents first; any remainder after integer
// division is handed out one cent at a time in input order, which keeps the
// split deterministic across runs.
func SplitEven(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}

	cents := Cents(total)
	base := cents / int64(n)
	rem := cents - base*int64(n)

	step := int64(1)
	if rem < 0 {
		step = -1
		rem = -rem
	}

	parts := make([]decimal.Decimal, n)
	for i := range parts {
		share := base
		if int64(i) < rem {
			share += step
		}
		parts[i] = FromCents(share)
	}
	return parts
}

// WithinTolerance reports whether two amounts differ by no more than tol.
func WithinTolerance(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}
