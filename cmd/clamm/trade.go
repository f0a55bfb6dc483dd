package main

import (
	"github.com/spf13/cobra"

	"liquidityEngine/internal/engine"
)

func swapParams(cmd *cobra.Command) (engine.SwapParams, error) {
	tokenA, tokenB, fee, err := pairFlags(cmd)
	if err != nil {
		return engine.SwapParams{}, err
	}
	caller, _ := cmd.Flags().GetString("caller")
	recipient, _ := cmd.Flags().GetString("recipient")
	if recipient == "" {
		recipient = caller
	}
	zeroForOne, _ := cmd.Flags().GetBool("zero-for-one")
	amount, err := decimalFlag(cmd, "amount")
	if err != nil {
		return engine.SwapParams{}, err
	}
	limit, err := decimalFlag(cmd, "price-limit")
	if err != nil {
		return engine.SwapParams{}, err
	}

	return engine.SwapParams{
		Caller:          caller,
		Recipient:       recipient,
		TokenA:          tokenA,
		TokenB:          tokenB,
		Fee:             fee,
		ZeroForOne:      zeroForOne,
		AmountSpecified: amount,
		SqrtPriceLimit:  limit,
	}, nil
}

func runSwap(cmd *cobra.Command, _ []string) error {
	ctx, stop := opContext()
	defer stop()

	eng, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	params, err := swapParams(cmd)
	if err != nil {
		return err
	}
	out, err := eng.Swap(ctx, params)
	if err != nil {
		return err
	}
	return printJSON(out)
}

func runQuote(cmd *cobra.Command, _ []string) error {
	ctx, stop := opContext()
	defer stop()

	eng, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	params, err := swapParams(cmd)
	if err != nil {
		return err
	}
	out, err := eng.Quote(ctx, params)
	if err != nil {
		return err
	}
	return printJSON(out)
}
