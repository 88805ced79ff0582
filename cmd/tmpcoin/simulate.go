package tmpcoin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/manifest-network/tmpcoin/internal/config"
	"github.com/manifest-network/tmpcoin/internal/ledger"
	"github.com/manifest-network/tmpcoin/internal/metrics"
	"github.com/manifest-network/tmpcoin/internal/output"
	"github.com/manifest-network/tmpcoin/internal/simulator"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Issue random transfers and mine them into blocks",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadSimulateConfigFromCLI()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runSimulation(ctx, cfg)
	},
}

func init() {
	flags := simulateCmd.Flags()
	flags.Uint("blocks", 10, "Number of blocks to mine")
	flags.Uint("transactions", 20, "Transactions recorded per block")
	flags.Uint("wallets", 4, "Wallets issuing transfers concurrently")
	flags.Uint("miners", 2, "Miners racing to seal each block")
	flags.Int("difficulty", ledger.DefaultDifficulty, "Trailing zero hex digits a proof hash must carry")
	flags.Int64("seed", 1, "Seed for the transfer generators")
	flags.Float64("min-amount", 1, "Smallest generated transfer amount")
	flags.Float64("max-amount", 100, "Largest generated transfer amount (exclusive)")
	flags.Bool("strict-amounts", false, "Reject negative transfer amounts")
	flags.Bool("live", false, "Keep mining until interrupted")
	flags.Uint("block-time", 1, "Seconds between blocks in live mode")
	flags.Duration("mine-timeout", 0, "Give up on a block after this long (0 disables)")
	flags.StringP("output", "o", output.KindConsole, "Output: console or log")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address")
}

func runSimulation(ctx context.Context, cfg config.SimulateConfig) error {
	outputHandler, err := output.New(cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		if err := outputHandler.Close(); err != nil {
			slog.Error("Failed to close output handler", "error", err)
		}
	}()

	m := metrics.New()
	chain := ledger.NewChain(cfg.ChainOptions()...)
	sim := simulator.New(chain, outputHandler, m, cfg)

	eg, ctx := errgroup.WithContext(ctx)
	simCtx, simDone := context.WithCancel(ctx)
	defer simDone()

	if cfg.MetricsAddr != "" {
		eg.Go(func() error {
			return m.Serve(simCtx, cfg.MetricsAddr)
		})
	}
	eg.Go(func() error {
		defer simDone()
		return sim.Run(simCtx)
	})

	return eg.Wait()
}
