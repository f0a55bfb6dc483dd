package dexmath

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrLiquidityUnderflow is returned when a negative delta exceeds the
// liquidity it is applied to.
var ErrLiquidityUnderflow = errors.New("liquidity delta underflow")

// LiquidityFromAmount0 returns the liquidity implied by committing amount0
// of token0 across a sqrt-price range. Bounds are normalized internally.
func LiquidityFromAmount0(amount0, sqrtPriceA, sqrtPriceB decimal.Decimal) decimal.Decimal {
	if sqrtPriceA.GreaterThan(sqrtPriceB) {
		sqrtPriceA, sqrtPriceB = sqrtPriceB, sqrtPriceA
	}
	intermediate := sqrtPriceA.Mul(sqrtPriceB)
	return Div(amount0.Mul(intermediate), sqrtPriceB.Sub(sqrtPriceA))
}

// LiquidityFromAmount1 returns the liquidity implied by committing amount1
// of token1 across a sqrt-price range.
func LiquidityFromAmount1(amount1, sqrtPriceA, sqrtPriceB decimal.Decimal) decimal.Decimal {
	if sqrtPriceA.GreaterThan(sqrtPriceB) {
		sqrtPriceA, sqrtPriceB = sqrtPriceB, sqrtPriceA
	}
	return Div(amount1, sqrtPriceB.Sub(sqrtPriceA))
}

// AmountsForLiquidity returns the (amount0, amount1) a liquidity value spans
// over a range, split at the current price: below the range only token0,
// above it only token1, inside it both.
func AmountsForLiquidity(sqrtPriceCurrent, sqrtPriceLower, sqrtPriceUpper, liquidity decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if sqrtPriceLower.GreaterThan(sqrtPriceUpper) {
		sqrtPriceLower, sqrtPriceUpper = sqrtPriceUpper, sqrtPriceLower
	}

	switch {
	case sqrtPriceCurrent.LessThanOrEqual(sqrtPriceLower):
		return Amount0Delta(sqrtPriceLower, sqrtPriceUpper, liquidity), decimal.Zero
	case sqrtPriceCurrent.LessThan(sqrtPriceUpper):
		amount0 := Amount0Delta(sqrtPriceCurrent, sqrtPriceUpper, liquidity)
		amount1 := Amount1Delta(sqrtPriceLower, sqrtPriceCurrent, liquidity)
		return amount0, amount1
	default:
		return decimal.Zero, Amount1Delta(sqrtPriceLower, sqrtPriceUpper, liquidity)
	}
}

// LiquidityForAmounts returns the maximum liquidity obtainable without
// exceeding either supplied amount. Inside the range the binding constraint
// wins: the result is the minimum of the two single-token liquidities.
func LiquidityForAmounts(sqrtPriceCurrent, sqrtPriceLower, sqrtPriceUpper, amount0, amount1 decimal.Decimal) decimal.Decimal {
	if sqrtPriceLower.GreaterThan(sqrtPriceUpper) {
		sqrtPriceLower, sqrtPriceUpper = sqrtPriceUpper, sqrtPriceLower
	}

	switch {
	case sqrtPriceCurrent.LessThanOrEqual(sqrtPriceLower):
		return LiquidityFromAmount0(amount0, sqrtPriceLower, sqrtPriceUpper)
	case sqrtPriceCurrent.LessThan(sqrtPriceUpper):
		liquidity0 := LiquidityFromAmount0(amount0, sqrtPriceCurrent, sqrtPriceUpper)
		liquidity1 := LiquidityFromAmount1(amount1, sqrtPriceLower, sqrtPriceCurrent)
		return Min(liquidity0, liquidity1)
	default:
		return LiquidityFromAmount1(amount1, sqrtPriceLower, sqrtPriceUpper)
	}
}

// AddLiquidityDelta applies a signed delta to a non-negative liquidity
// value, rejecting underflow before any caller-visible mutation.
func AddLiquidityDelta(liquidity, delta decimal.Decimal) (decimal.Decimal, error) {
	if delta.IsNegative() {
		if delta.Neg().GreaterThan(liquidity) {
			return decimal.Zero, ErrLiquidityUnderflow
		}
	}
	return liquidity.Add(delta), nil
}
