package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runMint(cmd *cobra.Command, _ []string) error {
	ctx, stop := opContext()
	defer stop()

	eng, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	account, _ := cmd.Flags().GetString("account")
	token, _ := cmd.Flags().GetString("token")
	amount, err := decimalFlag(cmd, "amount")
	if err != nil {
		return err
	}

	if err := eng.Book().Mint(ctx, account, token, amount); err != nil {
		return err
	}
	balance, err := eng.Book().Balance(ctx, account, token)
	if err != nil {
		return err
	}
	return printJSON(map[string]string{
		"account": account,
		"token":   token,
		"balance": balance.String(),
	})
}

func runBalance(cmd *cobra.Command, _ []string) error {
	ctx, stop := opContext()
	defer stop()

	eng, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	account, _ := cmd.Flags().GetString("account")
	token, _ := cmd.Flags().GetString("token")
	balance, err := eng.Book().Balance(ctx, account, token)
	if err != nil {
		return err
	}
	return printJSON(map[string]string{
		"account": account,
		"token":   token,
		"balance": balance.String(),
	})
}

func runGrantRole(cmd *cobra.Command, _ []string) error {
	ctx, stop := opContext()
	defer stop()

	eng, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	role, _ := cmd.Flags().GetString("role")
	account, _ := cmd.Flags().GetString("account")
	if err := eng.Authorizer().Grant(ctx, role, account); err != nil {
		return err
	}
	fmt.Printf("granted %s to %s\n", role, account)
	return nil
}

func runRevokeRole(cmd *cobra.Command, _ []string) error {
	ctx, stop := opContext()
	defer stop()

	eng, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	role, _ := cmd.Flags().GetString("role")
	account, _ := cmd.Flags().GetString("account")
	if err := eng.Authorizer().Revoke(ctx, role, account); err != nil {
		return err
	}
	fmt.Printf("revoked %s from %s\n", role, account)
	return nil
}
