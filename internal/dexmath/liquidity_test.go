package dexmath

import (
	"testing"

	"github.com/shopspring/decimal"
)

var tolerance = decimal.New(1, -18)

func closeTo(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

func TestAmountsForLiquidityRegions(t *testing.T) {
	lower := SqrtPriceAtTick(-100)
	upper := SqrtPriceAtTick(100)
	liquidity := decimal.NewFromInt(1000)

	cases := []struct {
		name       string
		current    decimal.Decimal
		wantZero0  bool
		wantZero1  bool
	}{
		{"below range", SqrtPriceAtTick(-200), false, true},
		{"inside range", decimal.NewFromInt(1), false, false},
		{"above range", SqrtPriceAtTick(200), true, false},
	}

	for _, tc := range cases {
		amount0, amount1 := AmountsForLiquidity(tc.current, lower, upper, liquidity)
		if amount0.IsZero() != tc.wantZero0 {
			t.Fatalf("%s: amount0 = %s, zero want %v", tc.name, amount0, tc.wantZero0)
		}
		if amount1.IsZero() != tc.wantZero1 {
			t.Fatalf("%s: amount1 = %s, zero want %v", tc.name, amount1, tc.wantZero1)
		}
	}
}

func TestAmountsForLiquidityNormalizesBounds(t *testing.T) {
	current := decimal.NewFromInt(1)
	liquidity := decimal.NewFromInt(500)
	a0, a1 := AmountsForLiquidity(current, SqrtPriceAtTick(-60), SqrtPriceAtTick(60), liquidity)
	b0, b1 := AmountsForLiquidity(current, SqrtPriceAtTick(60), SqrtPriceAtTick(-60), liquidity)
	if !a0.Equal(b0) || !a1.Equal(b1) {
		t.Fatalf("bound order changed result: (%s,%s) vs (%s,%s)", a0, a1, b0, b1)
	}
}

func TestLiquidityForAmountsInverseLaw(t *testing.T) {
	// With the price strictly inside the range, sizing a deposit from the
	// amounts a liquidity value spans must return that liquidity.
	lower := SqrtPriceAtTick(-887220)
	upper := SqrtPriceAtTick(887220)

	liquidities := []decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.NewFromInt(1000),
		decimal.RequireFromString("123456.789"),
	}
	currents := []decimal.Decimal{
		decimal.RequireFromString("0.5"),
		decimal.NewFromInt(1),
		decimal.RequireFromString("3.25"),
	}

	for _, liquidity := range liquidities {
		for _, current := range currents {
			amount0, amount1 := AmountsForLiquidity(current, lower, upper, liquidity)
			got := LiquidityForAmounts(current, lower, upper, amount0, amount1)
			if !closeTo(got, liquidity) {
				t.Fatalf("inverse law: liquidity %s at price %s came back as %s",
					liquidity, current, got)
			}
		}
	}
}

func TestLiquidityForAmountsBindingConstraint(t *testing.T) {
	lower := SqrtPriceAtTick(-1000)
	upper := SqrtPriceAtTick(1000)
	current := decimal.NewFromInt(1)

	// Starve token1: the result must match what amount1 alone supports.
	amount0 := decimal.NewFromInt(1_000_000)
	amount1 := decimal.NewFromInt(1)
	got := LiquidityForAmounts(current, lower, upper, amount0, amount1)
	want := LiquidityFromAmount1(amount1, lower, current)
	if !got.Equal(want) {
		t.Fatalf("binding constraint: got %s, want %s", got, want)
	}
}

func TestAddLiquidityDelta(t *testing.T) {
	base := decimal.NewFromInt(100)

	got, err := AddLiquidityDelta(base, decimal.NewFromInt(-40))
	if err != nil {
		t.Fatalf("delta within bounds: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("delta result = %s, want 60", got)
	}

	if _, err := AddLiquidityDelta(base, decimal.NewFromInt(-101)); err == nil {
		t.Fatalf("expected underflow error")
	}
}
