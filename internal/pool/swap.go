package pool

import (
	"github.com/shopspring/decimal"

	"liquidityEngine/internal/dexmath"
)

// SwapResult reports a completed swap in pool-relative terms: a positive
// amount is owed to the pool by the trader, a negative amount is owed by
// the pool to the trader.
type SwapResult struct {
	Amount0 decimal.Decimal
	Amount1 decimal.Decimal

	// FeeTotal and ProtocolFee are the input-token fee charged across all
	// steps and the slice of it diverted to the protocol.
	FeeTotal    decimal.Decimal
	ProtocolFee decimal.Decimal
}

// swapState is the transient working set of one swap call. Never persisted.
type swapState struct {
	remaining       decimal.Decimal
	calculated      decimal.Decimal
	sqrtPrice       decimal.Decimal
	tick            int32
	liquidity       decimal.Decimal
	feeGrowthGlobal decimal.Decimal
	protocolFee     decimal.Decimal
	feeTotal        decimal.Decimal
}

// stepComputation is the working set of one tick-to-tick leg.
type stepComputation struct {
	sqrtPriceStart decimal.Decimal
	tickNext       int32
	initialized    bool
	sqrtPriceNext  decimal.Decimal
}

// Swap walks the price from the current tick toward sqrtPriceLimit until
// amountSpecified is satisfied or the limit is reached. amountSpecified is
// signed: non-negative means exact input, negative exact output. Running
// out of liquidity before the limit simply ends the walk with a partial
// fill; callers compare realized against requested.
func (s *State) Swap(amountSpecified, sqrtPriceLimit decimal.Decimal) (SwapResult, error) {
	p := s.Pool
	zeroForOne := sqrtPriceLimit.LessThan(p.SqrtPrice)
	exactInput := !amountSpecified.IsNegative()

	state := swapState{
		remaining:  amountSpecified,
		calculated: decimal.Zero,
		sqrtPrice:  p.SqrtPrice,
		tick:       p.Tick,
		liquidity:  p.Liquidity,
	}
	if zeroForOne {
		state.feeGrowthGlobal = p.FeeGrowthGlobal0
	} else {
		state.feeGrowthGlobal = p.FeeGrowthGlobal1
	}

	for !state.remaining.IsZero() && !state.sqrtPrice.Equal(sqrtPriceLimit) {
		var step stepComputation
		step.sqrtPriceStart = state.sqrtPrice
		step.tickNext, step.initialized = NextInitializedTickWithinWord(p, state.tick, zeroForOne)

		if step.tickNext < dexmath.MinTick {
			step.tickNext = dexmath.MinTick
		} else if step.tickNext > dexmath.MaxTick {
			step.tickNext = dexmath.MaxTick
		}
		step.sqrtPriceNext = dexmath.SqrtPriceAtTick(step.tickNext)

		// The step target is whichever bound is closer: the next tick's
		// price or the caller's limit.
		target := step.sqrtPriceNext
		if zeroForOne {
			if step.sqrtPriceNext.LessThan(sqrtPriceLimit) {
				target = sqrtPriceLimit
			}
		} else {
			if step.sqrtPriceNext.GreaterThan(sqrtPriceLimit) {
				target = sqrtPriceLimit
			}
		}

		result, err := dexmath.ComputeSwapStep(state.sqrtPrice, target, state.liquidity, state.remaining, uint32(p.Fee))
		if err != nil {
			return SwapResult{}, err
		}
		state.sqrtPrice = result.SqrtPriceNext

		if exactInput {
			state.remaining = state.remaining.Sub(result.AmountIn.Add(result.FeeAmount))
			state.calculated = state.calculated.Sub(result.AmountOut)
		} else {
			state.remaining = state.remaining.Add(result.AmountOut)
			state.calculated = state.calculated.Add(result.AmountIn.Add(result.FeeAmount))
		}

		if result.FeeAmount.IsPositive() {
			state.feeTotal = state.feeTotal.Add(result.FeeAmount)
			protocolCut := result.FeeAmount.Mul(p.ProtocolFeeRate)
			state.protocolFee = state.protocolFee.Add(protocolCut)
			if state.liquidity.IsPositive() {
				lpCut := result.FeeAmount.Sub(protocolCut)
				state.feeGrowthGlobal = state.feeGrowthGlobal.Add(dexmath.Div(lpCut, state.liquidity))
			}
		}

		// A residue too small to move the price at division precision
		// repeats the iteration without progress. Exact input absorbs it
		// as fee; exact output leaves it unfilled and ends the walk.
		if state.sqrtPrice.Equal(step.sqrtPriceStart) &&
			!state.sqrtPrice.Equal(step.sqrtPriceNext) &&
			result.FeeAmount.IsZero() {
			break
		}

		if state.sqrtPrice.Equal(step.sqrtPriceNext) {
			if step.initialized {
				tick, err := s.Tick(step.tickNext)
				if err != nil {
					return SwapResult{}, err
				}

				// The in-flight accumulator stands in for the global of
				// the input token while crossing.
				global0, global1 := p.FeeGrowthGlobal0, p.FeeGrowthGlobal1
				if zeroForOne {
					global0 = state.feeGrowthGlobal
				} else {
					global1 = state.feeGrowthGlobal
				}
				liquidityNet := CrossTick(tick, global0, global1)
				s.markDirty(step.tickNext)

				if zeroForOne {
					liquidityNet = liquidityNet.Neg()
				}
				liquidityNext, err := dexmath.AddLiquidityDelta(state.liquidity, liquidityNet)
				if err != nil {
					return SwapResult{}, err
				}
				state.liquidity = liquidityNext
			}
			if zeroForOne {
				state.tick = step.tickNext - 1
				if state.tick < dexmath.MinTick {
					state.tick = dexmath.MinTick
				}
			} else {
				state.tick = step.tickNext
			}
		} else if !state.sqrtPrice.Equal(step.sqrtPriceStart) {
			state.tick = dexmath.TickAtSqrtPrice(state.sqrtPrice)
		}
	}

	p.SqrtPrice = state.sqrtPrice
	p.Tick = state.tick
	p.Liquidity = state.liquidity
	if zeroForOne {
		p.FeeGrowthGlobal0 = state.feeGrowthGlobal
		p.ProtocolFees0 = p.ProtocolFees0.Add(state.protocolFee)
	} else {
		p.FeeGrowthGlobal1 = state.feeGrowthGlobal
		p.ProtocolFees1 = p.ProtocolFees1.Add(state.protocolFee)
	}

	result := SwapResult{
		FeeTotal:    state.feeTotal,
		ProtocolFee: state.protocolFee,
	}
	if zeroForOne == exactInput {
		result.Amount0 = amountSpecified.Sub(state.remaining)
		result.Amount1 = state.calculated
	} else {
		result.Amount0 = state.calculated
		result.Amount1 = amountSpecified.Sub(state.remaining)
	}
	return result, nil
}
