package dexmath

import "github.com/shopspring/decimal"

// SwapStep is the result of moving the price across one tick-to-tick leg.
type SwapStep struct {
	SqrtPriceNext decimal.Decimal
	AmountIn      decimal.Decimal
	AmountOut     decimal.Decimal
	FeeAmount     decimal.Decimal
}

// ComputeSwapStep advances the price from sqrtPriceCurrent toward
// sqrtPriceTarget, consuming at most amountRemaining. A non-negative
// amountRemaining is an exact input (fee deducted up front); a negative one
// is an exact output (capped so it is never exceeded). When liquidity is
// zero the step degenerates to a free jump to the target.
func ComputeSwapStep(sqrtPriceCurrent, sqrtPriceTarget, liquidity, amountRemaining decimal.Decimal, feePPM uint32) (SwapStep, error) {
	var step SwapStep

	zeroForOne := sqrtPriceCurrent.GreaterThanOrEqual(sqrtPriceTarget)
	exactIn := !amountRemaining.IsNegative()

	fee := decimal.NewFromInt(int64(feePPM))

	if exactIn {
		amountRemainingLessFee := Div(amountRemaining.Mul(feeDenom.Sub(fee)), feeDenom)
		if zeroForOne {
			step.AmountIn = Amount0Delta(sqrtPriceTarget, sqrtPriceCurrent, liquidity)
		} else {
			step.AmountIn = Amount1Delta(sqrtPriceCurrent, sqrtPriceTarget, liquidity)
		}
		if amountRemainingLessFee.GreaterThanOrEqual(step.AmountIn) {
			step.SqrtPriceNext = sqrtPriceTarget
		} else {
			next, err := NextSqrtPriceFromInput(sqrtPriceCurrent, liquidity, amountRemainingLessFee, zeroForOne)
			if err != nil {
				return SwapStep{}, err
			}
			step.SqrtPriceNext = next
		}
	} else {
		amountOutRequested := amountRemaining.Neg()
		if zeroForOne {
			step.AmountOut = Amount1Delta(sqrtPriceTarget, sqrtPriceCurrent, liquidity)
		} else {
			step.AmountOut = Amount0Delta(sqrtPriceCurrent, sqrtPriceTarget, liquidity)
		}
		if amountOutRequested.GreaterThanOrEqual(step.AmountOut) {
			step.SqrtPriceNext = sqrtPriceTarget
		} else {
			next, err := NextSqrtPriceFromOutput(sqrtPriceCurrent, liquidity, amountOutRequested, zeroForOne)
			if err != nil {
				return SwapStep{}, err
			}
			step.SqrtPriceNext = next
		}
	}

	reachedTarget := sqrtPriceTarget.Equal(step.SqrtPriceNext)

	// Recompute both legs against the price actually reached.
	if zeroForOne {
		if !(reachedTarget && exactIn) {
			step.AmountIn = Amount0Delta(step.SqrtPriceNext, sqrtPriceCurrent, liquidity)
		}
		if !(reachedTarget && !exactIn) {
			step.AmountOut = Amount1Delta(step.SqrtPriceNext, sqrtPriceCurrent, liquidity)
		}
	} else {
		if !(reachedTarget && exactIn) {
			step.AmountIn = Amount1Delta(sqrtPriceCurrent, step.SqrtPriceNext, liquidity)
		}
		if !(reachedTarget && !exactIn) {
			step.AmountOut = Amount0Delta(sqrtPriceCurrent, step.SqrtPriceNext, liquidity)
		}
	}

	if !exactIn && step.AmountOut.GreaterThan(amountRemaining.Neg()) {
		step.AmountOut = amountRemaining.Neg()
	}

	if exactIn && !reachedTarget {
		// Whatever input the partial step did not consume is the fee.
		step.FeeAmount = amountRemaining.Sub(step.AmountIn)
	} else {
		step.FeeAmount = Div(step.AmountIn.Mul(fee), feeDenom.Sub(fee))
	}

	return step, nil
}
