package pool

import (
	"github.com/shopspring/decimal"

	"liquidityEngine/internal/dexmath"
	"liquidityEngine/internal/model"
)

// UpdateTick applies a liquidity delta to one boundary and reports whether
// the tick flipped between initialized and uninitialized. On first
// reference at or below the current tick the fee-growth-outside snapshot is
// seeded with the global accumulators, the convention every later crossing
// relies on.
func UpdateTick(t *model.Tick, tickCurrent int32, liquidityDelta, feeGrowthGlobal0, feeGrowthGlobal1 decimal.Decimal, upper bool) (bool, error) {
	grossBefore := t.LiquidityGross
	grossAfter, err := dexmath.AddLiquidityDelta(grossBefore, liquidityDelta)
	if err != nil {
		return false, err
	}

	flipped := grossAfter.IsZero() != grossBefore.IsZero()

	if grossBefore.IsZero() && t.Index <= tickCurrent {
		t.FeeGrowthOutside0 = feeGrowthGlobal0
		t.FeeGrowthOutside1 = feeGrowthGlobal1
	}

	t.LiquidityGross = grossAfter
	if upper {
		t.LiquidityNet = t.LiquidityNet.Sub(liquidityDelta)
	} else {
		t.LiquidityNet = t.LiquidityNet.Add(liquidityDelta)
	}
	return flipped, nil
}

// CrossTick records a price crossing by flipping the fee-growth-outside
// snapshots to (global - outside). Crossing twice with the same globals
// restores the original values. Returns the tick's net liquidity.
func CrossTick(t *model.Tick, feeGrowthGlobal0, feeGrowthGlobal1 decimal.Decimal) decimal.Decimal {
	t.FeeGrowthOutside0 = feeGrowthGlobal0.Sub(t.FeeGrowthOutside0)
	t.FeeGrowthOutside1 = feeGrowthGlobal1.Sub(t.FeeGrowthOutside1)
	return t.LiquidityNet
}

// FeeGrowthInside computes the fee growth accumulated strictly between two
// boundaries. Which side of each boundary counts as "outside" depends on
// where the current tick sits relative to it.
func FeeGrowthInside(lower, upper *model.Tick, tickCurrent int32, feeGrowthGlobal0, feeGrowthGlobal1 decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	var below0, below1 decimal.Decimal
	if tickCurrent >= lower.Index {
		below0 = lower.FeeGrowthOutside0
		below1 = lower.FeeGrowthOutside1
	} else {
		below0 = feeGrowthGlobal0.Sub(lower.FeeGrowthOutside0)
		below1 = feeGrowthGlobal1.Sub(lower.FeeGrowthOutside1)
	}

	var above0, above1 decimal.Decimal
	if tickCurrent < upper.Index {
		above0 = upper.FeeGrowthOutside0
		above1 = upper.FeeGrowthOutside1
	} else {
		above0 = feeGrowthGlobal0.Sub(upper.FeeGrowthOutside0)
		above1 = feeGrowthGlobal1.Sub(upper.FeeGrowthOutside1)
	}

	inside0 := feeGrowthGlobal0.Sub(below0).Sub(above0)
	inside1 := feeGrowthGlobal1.Sub(below1).Sub(above1)
	return inside0, inside1
}
