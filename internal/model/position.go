package model

import "github.com/shopspring/decimal"

// Position is a per-owner, per-range liquidity record.
// TokensOwed holds accrued but uncollected trading fees; principal released
// by liquidity removal is paid out immediately and never parked here.
type Position struct {
	PoolID               string          `json:"pool_id"`
	Owner                string          `json:"owner"`
	TickLower            int32           `json:"tick_lower"`
	TickUpper            int32           `json:"tick_upper"`
	Liquidity            decimal.Decimal `json:"liquidity"`
	FeeGrowthInside0Last decimal.Decimal `json:"fee_growth_inside0_last"`
	FeeGrowthInside1Last decimal.Decimal `json:"fee_growth_inside1_last"`
	TokensOwed0          decimal.Decimal `json:"tokens_owed0"`
	TokensOwed1          decimal.Decimal `json:"tokens_owed1"`
}

// NewPosition returns an empty position for the given owner and range.
func NewPosition(poolID, owner string, tickLower, tickUpper int32) *Position {
	return &Position{
		PoolID:    poolID,
		Owner:     owner,
		TickLower: tickLower,
		TickUpper: tickUpper,
	}
}
