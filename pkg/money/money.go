// Package money holds the 2-decimal-place arithmetic used across the ledger.
// All amounts are a single fixed-point currency; binary floats never touch
// ledger math.
package money

import "github.com/shopspring/decimal"

var (
	Zero    = decimal.Zero
	hundred = decimal.NewFromInt(100)
)

// FromString parses an amount; invalid input surfaces the decimal error.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString is for constants and tests.
func MustFromString(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Split returns the per-part amount of total divided into n parts, rounded to
// 2 decimal places. The caller gives the remainder to the last part.
func Split(total decimal.Decimal, n int) decimal.Decimal {
	return total.DivRound(decimal.NewFromInt(int64(n)), 2)
}

// Percent returns base*pct/100 at 2 decimal places.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).DivRound(hundred, 2)
}

// Times returns amount*n at 2 decimal places (n is a day count or similar).
func Times(amount decimal.Decimal, n int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(n))).Round(2)
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThanOrEqual(b) {
		return a
	}
	return b
}

// IsPositive reports amount > 0.
func IsPositive(a decimal.Decimal) bool { return a.IsPositive() }
