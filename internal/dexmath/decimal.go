// Package dexmath holds the pure pricing math of the engine: decimal
// primitives, tick/sqrt-price conversion, liquidity sizing, and the
// single-step swap computation. Nothing in this package touches state.
package dexmath

import "github.com/shopspring/decimal"

// divPrecision is the number of decimal places kept by every division in
// the engine. Amounts are held at full precision until settlement, so this
// only bounds irrational intermediate quotients.
const divPrecision = 38

var (
	one      = decimal.NewFromInt(1)
	two      = decimal.NewFromInt(2)
	feeDenom = decimal.NewFromInt(1_000_000)
)

// Div divides a by b at the engine's working precision.
func Div(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, divPrecision)
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// FeeRate converts a fee in parts per million to a decimal fraction.
func FeeRate(feePPM uint32) decimal.Decimal {
	return Div(decimal.NewFromInt(int64(feePPM)), feeDenom)
}
