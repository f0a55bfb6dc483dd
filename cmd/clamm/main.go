package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"liquidityEngine/internal/config"
	"liquidityEngine/internal/engine"
	"liquidityEngine/internal/journal"
	"liquidityEngine/internal/ledger"
	"liquidityEngine/internal/ledger/memory"
	"liquidityEngine/internal/ledger/pebbledb"
	"liquidityEngine/internal/ledger/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "clamm",
		Short:        "Concentrated-liquidity AMM engine",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("ledger", "memory", "ledger backend (memory, pebble, postgres)")
	root.PersistentFlags().String("pebble-path", "./data/ledger", "pebble database directory")
	root.PersistentFlags().String("pg-dsn", "", "Postgres DSN")
	root.PersistentFlags().String("journal", "./data/journal.jsonl", "event journal JSONL path")
	root.PersistentFlags().String("protocol-fee-rate", "0", "protocol share of swap fees for new pools")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	createPoolCmd := &cobra.Command{
		Use:   "create-pool",
		Short: "Create a pool for a token pair and fee tier",
		RunE:  runCreatePool,
	}
	createPoolCmd.Flags().String("caller", "", "creating account (becomes fee authority)")
	createPoolCmd.Flags().String("token-a", "", "one pair token")
	createPoolCmd.Flags().String("token-b", "", "other pair token")
	createPoolCmd.Flags().Uint32("fee", 3000, "fee tier in ppm (500, 3000, 10000)")
	createPoolCmd.Flags().String("sqrt-price", "1", "initial sqrt price (token1 per token0)")
	root.AddCommand(createPoolCmd)

	showPoolCmd := &cobra.Command{
		Use:   "show-pool",
		Short: "Print a pool record",
		RunE:  runShowPool,
	}
	showPoolCmd.Flags().String("token-a", "", "one pair token")
	showPoolCmd.Flags().String("token-b", "", "other pair token")
	showPoolCmd.Flags().Uint32("fee", 3000, "fee tier in ppm")
	root.AddCommand(showPoolCmd)

	positionsCmd := &cobra.Command{
		Use:   "positions",
		Short: "List an owner's positions in a pool",
		RunE:  runPositions,
	}
	positionsCmd.Flags().String("owner", "", "position owner")
	positionsCmd.Flags().String("token-a", "", "one pair token")
	positionsCmd.Flags().String("token-b", "", "other pair token")
	positionsCmd.Flags().Uint32("fee", 3000, "fee tier in ppm")
	root.AddCommand(positionsCmd)

	addLiquidityCmd := &cobra.Command{
		Use:   "add-liquidity",
		Short: "Provide liquidity across a tick range",
		RunE:  runAddLiquidity,
	}
	addLiquidityCmd.Flags().String("owner", "", "liquidity owner account")
	addLiquidityCmd.Flags().String("token-a", "", "one pair token")
	addLiquidityCmd.Flags().String("token-b", "", "other pair token")
	addLiquidityCmd.Flags().Uint32("fee", 3000, "fee tier in ppm")
	addLiquidityCmd.Flags().Int32("tick-lower", 0, "lower tick bound")
	addLiquidityCmd.Flags().Int32("tick-upper", 0, "upper tick bound")
	addLiquidityCmd.Flags().String("amount0", "0", "desired token0 amount")
	addLiquidityCmd.Flags().String("amount1", "0", "desired token1 amount")
	root.AddCommand(addLiquidityCmd)

	removeLiquidityCmd := &cobra.Command{
		Use:   "remove-liquidity",
		Short: "Burn liquidity and withdraw principal",
		RunE:  runRemoveLiquidity,
	}
	removeLiquidityCmd.Flags().String("owner", "", "liquidity owner account")
	removeLiquidityCmd.Flags().String("token-a", "", "one pair token")
	removeLiquidityCmd.Flags().String("token-b", "", "other pair token")
	removeLiquidityCmd.Flags().Uint32("fee", 3000, "fee tier in ppm")
	removeLiquidityCmd.Flags().Int32("tick-lower", 0, "lower tick bound")
	removeLiquidityCmd.Flags().Int32("tick-upper", 0, "upper tick bound")
	removeLiquidityCmd.Flags().String("liquidity", "0", "liquidity to burn")
	root.AddCommand(removeLiquidityCmd)

	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Execute a swap",
		RunE:  runSwap,
	}
	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute a swap without settling it",
		RunE:  runQuote,
	}
	for _, cmd := range []*cobra.Command{swapCmd, quoteCmd} {
		cmd.Flags().String("caller", "", "trading account")
		cmd.Flags().String("recipient", "", "output recipient (defaults to caller)")
		cmd.Flags().String("token-a", "", "one pair token")
		cmd.Flags().String("token-b", "", "other pair token")
		cmd.Flags().Uint32("fee", 3000, "fee tier in ppm")
		cmd.Flags().String("amount", "0", "signed amount: positive exact input, negative exact output")
		cmd.Flags().Bool("zero-for-one", true, "sell token0 for token1")
		cmd.Flags().String("price-limit", "0", "sqrt price limit, 0 for no limit")
		root.AddCommand(cmd)
	}

	collectFeesCmd := &cobra.Command{
		Use:   "collect-fees",
		Short: "Collect a position's accrued trading fees",
		RunE:  runCollectFees,
	}
	collectFeesCmd.Flags().String("caller", "", "calling account (owner or delegate)")
	collectFeesCmd.Flags().String("owner", "", "position owner")
	collectFeesCmd.Flags().String("recipient", "", "payout account (defaults to caller)")
	collectFeesCmd.Flags().String("token-a", "", "one pair token")
	collectFeesCmd.Flags().String("token-b", "", "other pair token")
	collectFeesCmd.Flags().Uint32("fee", 3000, "fee tier in ppm")
	collectFeesCmd.Flags().Int32("tick-lower", 0, "lower tick bound")
	collectFeesCmd.Flags().Int32("tick-upper", 0, "upper tick bound")
	root.AddCommand(collectFeesCmd)

	collectProtocolCmd := &cobra.Command{
		Use:   "collect-protocol-fees",
		Short: "Collect a pool's accumulated protocol fees",
		RunE:  runCollectProtocolFees,
	}
	collectProtocolCmd.Flags().String("caller", "", "calling account (pool authority)")
	collectProtocolCmd.Flags().String("recipient", "", "payout account (defaults to caller)")
	collectProtocolCmd.Flags().String("token-a", "", "one pair token")
	collectProtocolCmd.Flags().String("token-b", "", "other pair token")
	collectProtocolCmd.Flags().Uint32("fee", 3000, "fee tier in ppm")
	root.AddCommand(collectProtocolCmd)

	mintCmd := &cobra.Command{
		Use:   "mint",
		Short: "Credit an account balance (genesis/test funding)",
		RunE:  runMint,
	}
	mintCmd.Flags().String("account", "", "account to credit")
	mintCmd.Flags().String("token", "", "token key")
	mintCmd.Flags().String("amount", "0", "amount to credit")
	root.AddCommand(mintCmd)

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Print an account's token balance",
		RunE:  runBalance,
	}
	balanceCmd.Flags().String("account", "", "account to read")
	balanceCmd.Flags().String("token", "", "token key")
	root.AddCommand(balanceCmd)

	grantRoleCmd := &cobra.Command{
		Use:   "grant-role",
		Short: "Grant a role to an account",
		RunE:  runGrantRole,
	}
	revokeRoleCmd := &cobra.Command{
		Use:   "revoke-role",
		Short: "Revoke a role from an account",
		RunE:  runRevokeRole,
	}
	for _, cmd := range []*cobra.Command{grantRoleCmd, revokeRoleCmd} {
		cmd.Flags().String("role", "", "role name")
		cmd.Flags().String("account", "", "account")
		root.AddCommand(cmd)
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads config, builds the logger, opens the configured ledger
// backend, and wires the engine. The returned func releases the backend.
func setup(ctx context.Context, cmd *cobra.Command) (*engine.Engine, func(), error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	state, closeLedger, err := openLedger(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(engine.Config{ProtocolFeeRate: cfg.ProtocolFeeRate},
		state, journal.NewJsonl(cfg.JournalPath), logger)

	cleanup := func() {
		closeLedger()
		logger.Sync()
	}
	return eng, cleanup, nil
}

func openLedger(ctx context.Context, cfg config.Config) (ledger.Ledger, func(), error) {
	switch cfg.LedgerBackend {
	case config.BackendMemory:
		return memory.NewStore(), func() {}, nil
	case config.BackendPebble:
		store, err := pebbledb.Open(cfg.PebblePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case config.BackendPostgres:
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
