package main

import (
	"github.com/spf13/cobra"

	"liquidityEngine/internal/engine"
)

func runAddLiquidity(cmd *cobra.Command, _ []string) error {
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
	tickLower, _ := cmd.Flags().GetInt32("tick-lower")
	tickUpper, _ := cmd.Flags().GetInt32("tick-upper")
	amount0, err := decimalFlag(cmd, "amount0")
	if err != nil {
		return err
	}
	amount1, err := decimalFlag(cmd, "amount1")
	if err != nil {
		return err
	}

	res, err := eng.AddLiquidity(ctx, engine.AddLiquidityParams{
		Owner:          owner,
		TokenA:         tokenA,
		TokenB:         tokenB,
		Fee:            fee,
		TickLower:      tickLower,
		TickUpper:      tickUpper,
		Amount0Desired: amount0,
		Amount1Desired: amount1,
	})
	if err != nil {
		return err
	}
	return printJSON(res)
}

func runRemoveLiquidity(cmd *cobra.Command, _ []string) error {
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
	tickLower, _ := cmd.Flags().GetInt32("tick-lower")
	tickUpper, _ := cmd.Flags().GetInt32("tick-upper")
	liquidity, err := decimalFlag(cmd, "liquidity")
	if err != nil {
		return err
	}

	res, err := eng.RemoveLiquidity(ctx, engine.RemoveLiquidityParams{
		Owner:     owner,
		TokenA:    tokenA,
		TokenB:    tokenB,
		Fee:       fee,
		TickLower: tickLower,
		TickUpper: tickUpper,
		Liquidity: liquidity,
	})
	if err != nil {
		return err
	}
	return printJSON(res)
}

func runCollectFees(cmd *cobra.Command, _ []string) error {
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
	owner, _ := cmd.Flags().GetString("owner")
	recipient, _ := cmd.Flags().GetString("recipient")
	if recipient == "" {
		recipient = caller
	}
	if owner == "" {
		owner = caller
	}
	tickLower, _ := cmd.Flags().GetInt32("tick-lower")
	tickUpper, _ := cmd.Flags().GetInt32("tick-upper")

	res, err := eng.CollectTradingFees(ctx, engine.CollectTradingFeesParams{
		Caller:    caller,
		Owner:     owner,
		Recipient: recipient,
		TokenA:    tokenA,
		TokenB:    tokenB,
		Fee:       fee,
		TickLower: tickLower,
		TickUpper: tickUpper,
	})
	if err != nil {
		return err
	}
	return printJSON(res)
}

func runCollectProtocolFees(cmd *cobra.Command, _ []string) error {
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
	recipient, _ := cmd.Flags().GetString("recipient")
	if recipient == "" {
		recipient = caller
	}

	res, err := eng.CollectProtocolFees(ctx, engine.CollectProtocolFeesParams{
		Caller:    caller,
		Recipient: recipient,
		TokenA:    tokenA,
		TokenB:    tokenB,
		Fee:       fee,
	})
	if err != nil {
		return err
	}
	return printJSON(res)
}
