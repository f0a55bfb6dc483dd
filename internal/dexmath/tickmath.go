package dexmath

import (
	"math"
	"sync"

	"github.com/shopspring/decimal"
)

// Tick bounds. A tick t represents sqrt(1.0001^t); these bounds keep the
// price within the representable decimal range.
const (
	MinTick int32 = -887272
	MaxTick int32 = 887272
)

var (
	sqrtBase = decimal.NewFromFloat(1.0001)

	// lnSqrtBase = ln(1.0001)/2, the float seed for tick lookup.
	lnSqrtBase = math.Log(1.0001) / 2

	sqrtPriceCacheMu sync.RWMutex
	sqrtPriceCache   = map[int32]decimal.Decimal{}

	// MinSqrtPrice and MaxSqrtPrice bound every pool price and price limit.
	MinSqrtPrice = SqrtPriceAtTick(MinTick)
	MaxSqrtPrice = SqrtPriceAtTick(MaxTick)
)

// SqrtPriceAtTick returns sqrt(1.0001^tick) = 1.0001^(tick/2).
// Results are cached; swap loops revisit the same boundaries constantly.
func SqrtPriceAtTick(tick int32) decimal.Decimal {
	sqrtPriceCacheMu.RLock()
	cached, ok := sqrtPriceCache[tick]
	sqrtPriceCacheMu.RUnlock()
	if ok {
		return cached
	}

	exponent := Div(decimal.NewFromInt(int64(tick)), two)
	price, _ := sqrtBase.PowWithPrecision(exponent, divPrecision)

	sqrtPriceCacheMu.Lock()
	sqrtPriceCache[tick] = price
	sqrtPriceCacheMu.Unlock()
	return price
}

// TickAtSqrtPrice returns the largest tick whose sqrt price does not exceed
// sqrtPrice, keeping pool.Tick and pool.SqrtPrice mutually consistent.
// A float logarithm seeds the answer; decimal comparisons settle it.
func TickAtSqrtPrice(sqrtPrice decimal.Decimal) int32 {
	f, _ := sqrtPrice.Float64()
	tick := int32(math.Floor(math.Log(f) / lnSqrtBase))
	if tick < MinTick {
		tick = MinTick
	}
	if tick > MaxTick {
		tick = MaxTick
	}

	for tick < MaxTick && SqrtPriceAtTick(tick+1).LessThanOrEqual(sqrtPrice) {
		tick++
	}
	for tick > MinTick && SqrtPriceAtTick(tick).GreaterThan(sqrtPrice) {
		tick--
	}
	return tick
}
