package pool

import (
	"testing"

	"github.com/shopspring/decimal"

	"liquidityEngine/internal/model"
)

func TestUpdatePositionSettlesFees(t *testing.T) {
	pos := model.NewPosition("p", "alice", -100, 100)
	pos.Liquidity = d("1000")
	pos.FeeGrowthInside0Last = d("0.5")

	if err := UpdatePosition(pos, decimal.Zero, d("0.75"), d("0.25")); err != nil {
		t.Fatalf("update: %v", err)
	}

	// (0.75 - 0.5) * 1000 and (0.25 - 0) * 1000.
	if !pos.TokensOwed0.Equal(d("250")) {
		t.Fatalf("owed0 = %s, want 250", pos.TokensOwed0)
	}
	if !pos.TokensOwed1.Equal(d("250")) {
		t.Fatalf("owed1 = %s, want 250", pos.TokensOwed1)
	}
	if !pos.FeeGrowthInside0Last.Equal(d("0.75")) || !pos.FeeGrowthInside1Last.Equal(d("0.25")) {
		t.Fatal("snapshot not advanced")
	}
}

func TestUpdatePositionZeroDeltaAdvancesSnapshot(t *testing.T) {
	pos := model.NewPosition("p", "alice", -100, 100)
	pos.Liquidity = d("10")

	if err := UpdatePosition(pos, decimal.Zero, d("1"), decimal.Zero); err != nil {
		t.Fatalf("first touch: %v", err)
	}
	if err := UpdatePosition(pos, decimal.Zero, d("1"), decimal.Zero); err != nil {
		t.Fatalf("second touch: %v", err)
	}
	if !pos.TokensOwed0.Equal(d("10")) {
		t.Fatalf("fees double-counted: owed0 = %s, want 10", pos.TokensOwed0)
	}
}

func TestUpdatePositionOverRemoval(t *testing.T) {
	pos := model.NewPosition("p", "alice", -100, 100)
	pos.Liquidity = d("10")
	pos.FeeGrowthInside0Last = d("1")

	err := UpdatePosition(pos, d("-11"), d("2"), decimal.Zero)
	if err != model.ErrInsufficientLiquidity {
		t.Fatalf("err = %v, want ErrInsufficientLiquidity", err)
	}
	if !pos.Liquidity.Equal(d("10")) || !pos.FeeGrowthInside0Last.Equal(d("1")) || !pos.TokensOwed0.IsZero() {
		t.Fatal("rejected update must leave the position untouched")
	}
}
