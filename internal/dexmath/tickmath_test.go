package dexmath

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSqrtPriceAtTickZero(t *testing.T) {
	if !SqrtPriceAtTick(0).Equal(decimal.NewFromInt(1)) {
		t.Fatalf("sqrt price at tick 0 = %s, want 1", SqrtPriceAtTick(0))
	}
}

func TestSqrtPriceAtTickMonotonic(t *testing.T) {
	ticks := []int32{-887272, -100000, -100, -1, 0, 1, 100, 100000, 887272}
	for i := 1; i < len(ticks); i++ {
		lower := SqrtPriceAtTick(ticks[i-1])
		upper := SqrtPriceAtTick(ticks[i])
		if !lower.LessThan(upper) {
			t.Fatalf("sqrt price not increasing between ticks %d and %d: %s >= %s",
				ticks[i-1], ticks[i], lower, upper)
		}
	}
}

func TestTickAtSqrtPriceRoundTrip(t *testing.T) {
	ticks := []int32{-887272, -443636, -100, -23, -1, 0, 1, 23, 100, 443636, 887272}
	for _, tick := range ticks {
		got := TickAtSqrtPrice(SqrtPriceAtTick(tick))
		if got != tick {
			t.Fatalf("round trip for tick %d returned %d", tick, got)
		}
	}
}

func TestTickAtSqrtPriceBetweenBoundaries(t *testing.T) {
	// A price strictly between tick 10 and tick 11 resolves to tick 10.
	mid := SqrtPriceAtTick(10).Add(SqrtPriceAtTick(11)).Div(decimal.NewFromInt(2))
	if got := TickAtSqrtPrice(mid); got != 10 {
		t.Fatalf("tick at mid price = %d, want 10", got)
	}
}

func TestTickAtSqrtPriceInverseIdentity(t *testing.T) {
	// Price 1.0 sits exactly on tick 0; its inverse does too.
	inverse := Div(decimal.NewFromInt(1), decimal.NewFromInt(1))
	if got := TickAtSqrtPrice(inverse); got != 0 {
		t.Fatalf("tick at inverse unit price = %d, want 0", got)
	}
}
