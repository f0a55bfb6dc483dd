package pool

import (
	"testing"

	"github.com/shopspring/decimal"

	"liquidityEngine/internal/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUpdateTickSeedsOutsideBelowCurrent(t *testing.T) {
	tick := model.NewTick("p", -10)
	g0, g1 := d("7"), d("3")

	flipped, err := UpdateTick(tick, 0, d("100"), g0, g1, false)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !flipped {
		t.Fatal("0 -> 100 gross should flip")
	}
	if !tick.FeeGrowthOutside0.Equal(g0) || !tick.FeeGrowthOutside1.Equal(g1) {
		t.Fatalf("outside not seeded with globals: %s / %s", tick.FeeGrowthOutside0, tick.FeeGrowthOutside1)
	}
	if !tick.LiquidityNet.Equal(d("100")) {
		t.Fatalf("lower boundary net = %s, want 100", tick.LiquidityNet)
	}
}

func TestUpdateTickAboveCurrentNotSeeded(t *testing.T) {
	tick := model.NewTick("p", 10)

	flipped, err := UpdateTick(tick, 0, d("100"), d("7"), d("3"), true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !flipped {
		t.Fatal("0 -> 100 gross should flip")
	}
	if !tick.FeeGrowthOutside0.IsZero() || !tick.FeeGrowthOutside1.IsZero() {
		t.Fatal("ticks above current must keep zero outside")
	}
	if !tick.LiquidityNet.Equal(d("-100")) {
		t.Fatalf("upper boundary net = %s, want -100", tick.LiquidityNet)
	}
}

func TestUpdateTickSeedsOnlyOnce(t *testing.T) {
	tick := model.NewTick("p", -10)

	if _, err := UpdateTick(tick, 0, d("100"), d("7"), d("3"), false); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if _, err := UpdateTick(tick, 0, d("50"), d("99"), d("99"), false); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if !tick.FeeGrowthOutside0.Equal(d("7")) {
		t.Fatalf("outside reseeded on an already-referenced tick: %s", tick.FeeGrowthOutside0)
	}
	if !tick.LiquidityGross.Equal(d("150")) {
		t.Fatalf("gross = %s, want 150", tick.LiquidityGross)
	}
}

func TestUpdateTickUnderflow(t *testing.T) {
	tick := model.NewTick("p", 5)
	if _, err := UpdateTick(tick, 0, d("10"), decimal.Zero, decimal.Zero, false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := UpdateTick(tick, 0, d("-11"), decimal.Zero, decimal.Zero, false); err == nil {
		t.Fatal("removing more gross than exists must fail")
	}
}

func TestCrossTickTwiceRestores(t *testing.T) {
	tick := model.NewTick("p", -10)
	tick.LiquidityGross = d("100")
	tick.LiquidityNet = d("100")
	tick.FeeGrowthOutside0 = d("2")
	tick.FeeGrowthOutside1 = d("5")

	g0, g1 := d("9"), d("11")

	net := CrossTick(tick, g0, g1)
	if !net.Equal(d("100")) {
		t.Fatalf("net = %s, want 100", net)
	}
	if !tick.FeeGrowthOutside0.Equal(d("7")) || !tick.FeeGrowthOutside1.Equal(d("6")) {
		t.Fatalf("first cross: outside = %s / %s", tick.FeeGrowthOutside0, tick.FeeGrowthOutside1)
	}

	CrossTick(tick, g0, g1)
	if !tick.FeeGrowthOutside0.Equal(d("2")) || !tick.FeeGrowthOutside1.Equal(d("5")) {
		t.Fatalf("double cross did not restore: %s / %s", tick.FeeGrowthOutside0, tick.FeeGrowthOutside1)
	}
}

func TestFeeGrowthInside(t *testing.T) {
	lower := model.NewTick("p", -100)
	upper := model.NewTick("p", 100)
	lower.FeeGrowthOutside0 = d("3")
	upper.FeeGrowthOutside0 = d("2")
	global := d("10")

	cases := []struct {
		name    string
		current int32
		want    string
	}{
		// below = outside(lower) when current >= lower, else global - outside.
		{"current inside", 0, "5"},    // 10 - 3 - 2
		{"current below range", -200, "1"}, // 10 - (10-3) - 2
		{"current above range", 200, "-1"}, // 10 - 3 - (10-2)
	}

	for _, tc := range cases {
		inside0, inside1 := FeeGrowthInside(lower, upper, tc.current, global, decimal.Zero)
		if !inside0.Equal(d(tc.want)) {
			t.Fatalf("%s: inside0 = %s, want %s", tc.name, inside0, tc.want)
		}
		if !inside1.IsZero() {
			t.Fatalf("%s: inside1 = %s, want 0", tc.name, inside1)
		}
	}
}
