package pool

import (
	"github.com/shopspring/decimal"

	"liquidityEngine/internal/dexmath"
	"liquidityEngine/internal/model"
)

// UpdatePosition settles accrued fees into the position and applies a
// liquidity delta. The fee snapshot is advanced unconditionally, even for a
// zero delta; skipping it would attribute this period's fees to the next
// touch. Over-removal is rejected before any field changes.
func UpdatePosition(pos *model.Position, liquidityDelta, feeGrowthInside0, feeGrowthInside1 decimal.Decimal) error {
	liquidityNext, err := dexmath.AddLiquidityDelta(pos.Liquidity, liquidityDelta)
	if err != nil {
		return model.ErrInsufficientLiquidity
	}

	owed0 := feeGrowthInside0.Sub(pos.FeeGrowthInside0Last).Mul(pos.Liquidity)
	owed1 := feeGrowthInside1.Sub(pos.FeeGrowthInside1Last).Mul(pos.Liquidity)

	pos.Liquidity = liquidityNext
	pos.FeeGrowthInside0Last = feeGrowthInside0
	pos.FeeGrowthInside1Last = feeGrowthInside1
	pos.TokensOwed0 = pos.TokensOwed0.Add(owed0)
	pos.TokensOwed1 = pos.TokensOwed1.Add(owed1)
	return nil
}
