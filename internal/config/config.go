package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/manifest-network/tmpcoin/internal/ledger"
	"github.com/manifest-network/tmpcoin/internal/output"
)

// SimulateConfig drives a simulation run.
type SimulateConfig struct {
	Blocks               uint
	TransactionsPerBlock uint
	Wallets              uint
	Miners               uint
	Difficulty           int
	Seed                 int64
	MinAmount            float64
	MaxAmount            float64
	StrictAmounts        bool
	Live                 bool
	BlockTime            uint
	MineTimeout          time.Duration
	Output               string
	MetricsAddr          string
}

// LoadSimulateConfigFromCLI reads the simulate settings bound into viper.
func LoadSimulateConfigFromCLI() SimulateConfig {
	return SimulateConfig{
		Blocks:               viper.GetUint("blocks"),
		TransactionsPerBlock: viper.GetUint("transactions"),
		Wallets:              viper.GetUint("wallets"),
		Miners:               viper.GetUint("miners"),
		Difficulty:           viper.GetInt("difficulty"),
		Seed:                 viper.GetInt64("seed"),
		MinAmount:            viper.GetFloat64("min-amount"),
		MaxAmount:            viper.GetFloat64("max-amount"),
		StrictAmounts:        viper.GetBool("strict-amounts"),
		Live:                 viper.GetBool("live"),
		BlockTime:            viper.GetUint("block-time"),
		MineTimeout:          viper.GetDuration("mine-timeout"),
		Output:               viper.GetString("output"),
		MetricsAddr:          viper.GetString("metrics-addr"),
	}
}

// Validate checks the configuration for impossible combinations.
func (c SimulateConfig) Validate() error {
	if !c.Live && c.Blocks == 0 {
		return errors.New("blocks must be greater than 0")
	}
	if c.Wallets == 0 {
		return errors.New("wallets must be greater than 0")
	}
	if c.Miners == 0 {
		return errors.New("miners must be greater than 0")
	}
	if err := ledger.ValidateDifficulty(c.Difficulty); err != nil {
		return errors.WithMessage(err, "invalid difficulty")
	}
	if c.MinAmount > c.MaxAmount {
		return errors.Errorf("min-amount (%v) must not exceed max-amount (%v)", c.MinAmount, c.MaxAmount)
	}
	if c.StrictAmounts && c.MinAmount < 0 {
		return errors.New("min-amount must not be negative when strict-amounts is set")
	}
	if c.MineTimeout < 0 {
		return errors.New("mine-timeout must not be negative")
	}
	if c.Output != output.KindConsole && c.Output != output.KindLog {
		return errors.Errorf("output must be %q or %q, got %q", output.KindConsole, output.KindLog, c.Output)
	}
	return nil
}

// ChainOptions returns the ledger options implied by the configuration.
func (c SimulateConfig) ChainOptions() []ledger.Option {
	opts := []ledger.Option{ledger.WithDifficulty(c.Difficulty)}
	if c.StrictAmounts {
		opts = append(opts, ledger.WithStrictAmounts())
	}
	return opts
}
