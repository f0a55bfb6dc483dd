package dexmath

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrPriceOverrun is returned when a requested output cannot be produced
// within the current price range.
var ErrPriceOverrun = errors.New("requested output exceeds range capacity")

// Amount0Delta returns the token0 amount spanned by liquidity between two
// sqrt prices: L * (upper - lower) / (upper * lower). Bounds are normalized
// so callers never need to pre-sort.
func Amount0Delta(sqrtPriceA, sqrtPriceB, liquidity decimal.Decimal) decimal.Decimal {
	if sqrtPriceA.GreaterThan(sqrtPriceB) {
		sqrtPriceA, sqrtPriceB = sqrtPriceB, sqrtPriceA
	}
	return Div(liquidity.Mul(sqrtPriceB.Sub(sqrtPriceA)), sqrtPriceA.Mul(sqrtPriceB))
}

// Amount1Delta returns the token1 amount spanned by liquidity between two
// sqrt prices: L * (upper - lower).
func Amount1Delta(sqrtPriceA, sqrtPriceB, liquidity decimal.Decimal) decimal.Decimal {
	if sqrtPriceA.GreaterThan(sqrtPriceB) {
		sqrtPriceA, sqrtPriceB = sqrtPriceB, sqrtPriceA
	}
	return liquidity.Mul(sqrtPriceB.Sub(sqrtPriceA))
}

// NextSqrtPriceFromInput returns the price after consuming amountIn of the
// input token at the given liquidity. zeroForOne means token0 is the input
// and the price moves down.
func NextSqrtPriceFromInput(sqrtPrice, liquidity, amountIn decimal.Decimal, zeroForOne bool) (decimal.Decimal, error) {
	if !sqrtPrice.IsPositive() || !liquidity.IsPositive() {
		return decimal.Zero, errors.New("sqrt price and liquidity must be positive")
	}
	if zeroForOne {
		// L * p / (L + in * p)
		return Div(liquidity.Mul(sqrtPrice), liquidity.Add(amountIn.Mul(sqrtPrice))), nil
	}
	// p + in / L
	return sqrtPrice.Add(Div(amountIn, liquidity)), nil
}

// NextSqrtPriceFromOutput returns the price after producing amountOut of the
// output token at the given liquidity. zeroForOne means token1 is the output
// and the price moves down.
func NextSqrtPriceFromOutput(sqrtPrice, liquidity, amountOut decimal.Decimal, zeroForOne bool) (decimal.Decimal, error) {
	if !sqrtPrice.IsPositive() || !liquidity.IsPositive() {
		return decimal.Zero, errors.New("sqrt price and liquidity must be positive")
	}
	if zeroForOne {
		// p - out / L
		next := sqrtPrice.Sub(Div(amountOut, liquidity))
		if !next.IsPositive() {
			return decimal.Zero, ErrPriceOverrun
		}
		return next, nil
	}
	// L * p / (L - out * p)
	denominator := liquidity.Sub(amountOut.Mul(sqrtPrice))
	if !denominator.IsPositive() {
		return decimal.Zero, ErrPriceOverrun
	}
	return Div(liquidity.Mul(sqrtPrice), denominator), nil
}
