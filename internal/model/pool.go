package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FeeTier is a trading fee expressed in parts per million.
type FeeTier uint32

const (
	FeeTier500   FeeTier = 500
	FeeTier3000  FeeTier = 3000
	FeeTier10000 FeeTier = 10000
)

// Valid reports whether the fee tier is one of the supported tiers.
func (f FeeTier) Valid() bool {
	switch f {
	case FeeTier500, FeeTier3000, FeeTier10000:
		return true
	}
	return false
}

// Pool is the aggregate state of one (token0, token1, fee) market.
// Token0 is always the lexically smaller token key; the pair ordering is a
// lookup invariant enforced at creation.
type Pool struct {
	Token0           string            `json:"token0"`
	Token1           string            `json:"token1"`
	Fee              FeeTier           `json:"fee"`
	SqrtPrice        decimal.Decimal   `json:"sqrt_price"`
	Tick             int32             `json:"tick"`
	Liquidity        decimal.Decimal   `json:"liquidity"`
	FeeGrowthGlobal0 decimal.Decimal   `json:"fee_growth_global0"`
	FeeGrowthGlobal1 decimal.Decimal   `json:"fee_growth_global1"`
	ProtocolFeeRate  decimal.Decimal   `json:"protocol_fee_rate"`
	ProtocolFees0    decimal.Decimal   `json:"protocol_fees0"`
	ProtocolFees1    decimal.Decimal   `json:"protocol_fees1"`
	Authorities      []string          `json:"authorities"`
	Bitmap           map[string]string `json:"bitmap"`
	CreatedAt        string            `json:"created_at,omitempty"`
}

// ID returns the canonical pool identifier.
func (p *Pool) ID() string {
	return PoolID(p.Token0, p.Token1, p.Fee)
}

// Account returns the ledger account that holds the pool's token balances.
func (p *Pool) Account() string {
	return "pool:" + p.ID()
}

// HasAuthority reports whether the account may collect protocol fees.
func (p *Pool) HasAuthority(account string) bool {
	for _, a := range p.Authorities {
		if a == account {
			return true
		}
	}
	return false
}

// CanonicalPair orders two token keys so the lexically smaller one is first.
// It reports whether the input order was already canonical.
func CanonicalPair(tokenA, tokenB string) (token0, token1 string, ordered bool) {
	if tokenA < tokenB {
		return tokenA, tokenB, true
	}
	return tokenB, tokenA, false
}

// PoolID builds the canonical pool identifier for an ordered pair.
func PoolID(token0, token1 string, fee FeeTier) string {
	return fmt.Sprintf("%s:%s:%d", token0, token1, fee)
}
