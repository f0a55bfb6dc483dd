package model

import "github.com/shopspring/decimal"

// Tick is the per-boundary state keyed by (pool, tick index).
// A tick is lazily created on first reference and never physically removed;
// it is "initialized" while LiquidityGross is positive.
type Tick struct {
	PoolID            string          `json:"pool_id"`
	Index             int32           `json:"index"`
	LiquidityGross    decimal.Decimal `json:"liquidity_gross"`
	LiquidityNet      decimal.Decimal `json:"liquidity_net"`
	FeeGrowthOutside0 decimal.Decimal `json:"fee_growth_outside0"`
	FeeGrowthOutside1 decimal.Decimal `json:"fee_growth_outside1"`
}

// NewTick returns an empty tick record for the given boundary.
func NewTick(poolID string, index int32) *Tick {
	return &Tick{PoolID: poolID, Index: index}
}

// Initialized reports whether any position still references this boundary.
func (t *Tick) Initialized() bool {
	return t.LiquidityGross.IsPositive()
}
