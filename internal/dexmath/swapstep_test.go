package dexmath

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeSwapStepExactInReachesTarget(t *testing.T) {
	current := decimal.NewFromInt(1)
	target := decimal.RequireFromString("0.99")
	liquidity := decimal.NewFromInt(1000)
	remaining := decimal.NewFromInt(20)

	step, err := ComputeSwapStep(current, target, liquidity, remaining, 3000)
	if err != nil {
		t.Fatalf("compute step: %v", err)
	}

	if !step.SqrtPriceNext.Equal(target) {
		t.Fatalf("next price = %s, want target %s", step.SqrtPriceNext, target)
	}
	wantIn := Amount0Delta(target, current, liquidity)
	if !closeTo(step.AmountIn, wantIn) {
		t.Fatalf("amount in = %s, want %s", step.AmountIn, wantIn)
	}
	wantOut := Amount1Delta(target, current, liquidity)
	if !closeTo(step.AmountOut, wantOut) {
		t.Fatalf("amount out = %s, want %s", step.AmountOut, wantOut)
	}
	wantFee := Div(wantIn.Mul(decimal.NewFromInt(3000)), decimal.NewFromInt(997000))
	if !closeTo(step.FeeAmount, wantFee) {
		t.Fatalf("fee = %s, want %s", step.FeeAmount, wantFee)
	}
}

func TestComputeSwapStepExactInPartial(t *testing.T) {
	current := decimal.NewFromInt(1)
	target := decimal.RequireFromString("0.99")
	liquidity := decimal.NewFromInt(1000)
	remaining := decimal.NewFromInt(5)

	step, err := ComputeSwapStep(current, target, liquidity, remaining, 3000)
	if err != nil {
		t.Fatalf("compute step: %v", err)
	}

	if !step.SqrtPriceNext.GreaterThan(target) || !step.SqrtPriceNext.LessThan(current) {
		t.Fatalf("partial step price %s outside (%s, %s)", step.SqrtPriceNext, target, current)
	}
	// The whole remaining amount is consumed: input plus fee.
	if !closeTo(step.AmountIn.Add(step.FeeAmount), remaining) {
		t.Fatalf("amountIn+fee = %s, want %s", step.AmountIn.Add(step.FeeAmount), remaining)
	}
	// Fee equals the ppm fraction of the gross input.
	wantFee := Div(remaining.Mul(decimal.NewFromInt(3000)), decimal.NewFromInt(1_000_000))
	if !closeTo(step.FeeAmount, wantFee) {
		t.Fatalf("fee = %s, want %s", step.FeeAmount, wantFee)
	}
}

func TestComputeSwapStepExactOutCapped(t *testing.T) {
	current := decimal.NewFromInt(1)
	target := decimal.RequireFromString("0.9")
	liquidity := decimal.NewFromInt(1000)
	// Request far less output than the leg can produce.
	remaining := decimal.NewFromInt(-2)

	step, err := ComputeSwapStep(current, target, liquidity, remaining, 500)
	if err != nil {
		t.Fatalf("compute step: %v", err)
	}

	if step.AmountOut.GreaterThan(remaining.Neg()) {
		t.Fatalf("amount out %s exceeds requested %s", step.AmountOut, remaining.Neg())
	}
	if !closeTo(step.AmountOut, remaining.Neg()) {
		t.Fatalf("amount out = %s, want %s", step.AmountOut, remaining.Neg())
	}
	if step.SqrtPriceNext.Equal(target) {
		t.Fatalf("small output should not have reached the target price")
	}
}

func TestComputeSwapStepExactOutReachesTarget(t *testing.T) {
	current := decimal.NewFromInt(1)
	target := decimal.RequireFromString("0.999")
	liquidity := decimal.NewFromInt(1000)
	available := Amount1Delta(target, current, liquidity)
	remaining := available.Add(decimal.NewFromInt(5)).Neg()

	step, err := ComputeSwapStep(current, target, liquidity, remaining, 500)
	if err != nil {
		t.Fatalf("compute step: %v", err)
	}

	if !step.SqrtPriceNext.Equal(target) {
		t.Fatalf("next price = %s, want target %s", step.SqrtPriceNext, target)
	}
	if !closeTo(step.AmountOut, available) {
		t.Fatalf("amount out = %s, want available %s", step.AmountOut, available)
	}
}

func TestComputeSwapStepZeroLiquidity(t *testing.T) {
	current := decimal.NewFromInt(1)
	target := decimal.RequireFromString("0.5")

	step, err := ComputeSwapStep(current, target, decimal.Zero, decimal.NewFromInt(100), 3000)
	if err != nil {
		t.Fatalf("compute step: %v", err)
	}

	if !step.SqrtPriceNext.Equal(target) {
		t.Fatalf("zero liquidity should jump to target, got %s", step.SqrtPriceNext)
	}
	if !step.AmountIn.IsZero() || !step.AmountOut.IsZero() || !step.FeeAmount.IsZero() {
		t.Fatalf("zero liquidity step moved value: in=%s out=%s fee=%s",
			step.AmountIn, step.AmountOut, step.FeeAmount)
	}
}
