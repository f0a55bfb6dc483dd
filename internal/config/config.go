package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Ledger backend names accepted by the ledger flag.
const (
	BackendMemory   = "memory"
	BackendPebble   = "pebble"
	BackendPostgres = "postgres"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	LedgerBackend   string
	PebblePath      string
	PGDSN           string
	JournalPath     string
	ProtocolFeeRate decimal.Decimal
	LogLevel        string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAMM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("ledger", BackendMemory)
	v.SetDefault("pebble-path", "./data/ledger")
	v.SetDefault("journal", "./data/journal.jsonl")
	v.SetDefault("protocol-fee-rate", "0")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	rate, err := decimal.NewFromString(v.GetString("protocol-fee-rate"))
	if err != nil {
		return Config{}, fmt.Errorf("parse protocol-fee-rate: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return Config{}, fmt.Errorf("protocol-fee-rate must be in [0, 1), got %s", rate)
	}

	cfg := Config{
		LedgerBackend:   v.GetString("ledger"),
		PebblePath:      v.GetString("pebble-path"),
		PGDSN:           v.GetString("pg-dsn"),
		JournalPath:     v.GetString("journal"),
		ProtocolFeeRate: rate,
		LogLevel:        v.GetString("log-level"),
	}

	switch cfg.LedgerBackend {
	case BackendMemory, BackendPebble, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}

	return cfg, nil
}
