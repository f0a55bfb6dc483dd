package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"liquidityEngine/internal/engine"
	"liquidityEngine/internal/model"
)

func opContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return decimal.Zero, err
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse --%s: %w", name, err)
	}
	return value, nil
}

func pairFlags(cmd *cobra.Command) (tokenA, tokenB string, fee model.FeeTier, err error) {
	tokenA, _ = cmd.Flags().GetString("token-a")
	tokenB, _ = cmd.Flags().GetString("token-b")
	feePPM, _ := cmd.Flags().GetUint32("fee")
	if tokenA == "" || tokenB == "" {
		return "", "", 0, fmt.Errorf("token-a and token-b are required")
	}
	return tokenA, tokenB, model.FeeTier(feePPM), nil
}

func runCreatePool(cmd *cobra.Command, _ []string) error {
	ctx, stop := opContext()
	defer stop()

	eng, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	tokenA, tokenB, fee, err := pairFlags(cmd)
	if err != nil {
		return err
	}
	caller, _ := cmd.Flags().GetString("caller")
	sqrtPrice, err := decimalFlag(cmd, "sqrt-price")
	if err != nil {
		return err
	}

	p, err := eng.CreatePool(ctx, engine.CreatePoolParams{
		Caller:    caller,
		TokenA:    tokenA,
		TokenB:    tokenB,
		Fee:       fee,
		SqrtPrice: sqrtPrice,
	})
	if err != nil {
		return err
	}
	return printJSON(p)
}

func runShowPool(cmd *cobra.Command, _ []string) error {
	ctx, stop := opContext()
	defer stop()

	eng, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	tokenA, tokenB, fee, err := pairFlags(cmd)
	if err != nil {
		return err
	}
	p, err := eng.GetPool(ctx, tokenA, tokenB, fee)
	if err != nil {
		return err
	}
	return printJSON(p)
}

func runPositions(cmd *cobra.Command, _ []string) error {
	ctx, stop := opContext()
	defer stop()

	eng, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	tokenA, tokenB, fee, err := pairFlags(cmd)
	if err != nil {
		return err
	}
	owner, _ := cmd.Flags().GetString("owner")
	positions, err := eng.ListPositions(ctx, tokenA, tokenB, fee, owner)
	if err != nil {
		return err
	}
	return printJSON(positions)
}
