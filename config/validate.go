// Package config holds runtime configuration for embedding the
// marketplace components: store locations, the market's ledger account
// and the settlement limits. Values load from the environment and are
// validated before use.
package config

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the runtime configuration.
type Config struct {
	// DataDir is the base directory for the ledger and market databases.
	// Empty means .tokenmart under the user's home directory.
	DataDir string `env:"TOKENMART_DATA_DIR"`

	// MarketAccount is the ledger account the market acts as when it
	// transfers tokens on an owner's behalf.
	MarketAccount string `env:"TOKENMART_MARKET_ACCOUNT" envDefault:"market"`

	// MaxPayoutRecipients caps payout entries on remote transfers.
	MaxPayoutRecipients uint32 `env:"TOKENMART_MAX_PAYOUT" envDefault:"10"`

	// StorageByteCost is the currency price per stored byte, as a
	// decimal integer.
	StorageByteCost string `env:"TOKENMART_STORAGE_BYTE_COST" envDefault:"0"`
}

// FromEnv loads configuration from environment variables and validates
// it.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	// Tilde paths are shell syntax; the default is resolved here instead.
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".tokenmart")
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig checks that all configuration values are within
// acceptable ranges and returns the first error encountered, or nil if
// valid.
func ValidateConfig(cfg *Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}
	if cfg.MaxPayoutRecipients < 1 {
		return ErrInvalidMaxPayout
	}
	if _, err := cfg.ByteCost(); err != nil {
		return err
	}
	return nil
}

// ByteCost parses StorageByteCost into an amount.
func (cfg *Config) ByteCost() (*big.Int, error) {
	cost, ok := new(big.Int).SetString(cfg.StorageByteCost, 10)
	if !ok || cost.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidByteCost, cfg.StorageByteCost)
	}
	return cost, nil
}
