package tmpcoin

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/tmpcoin/internal/utils"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tmpcoin",
	Short: "An in-memory proof-of-work ledger",
	Long:  "tmpcoin records value transfers into hash-linked blocks admitted by a proof-of-work search.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
			return errors.Wrap(err, "failed to bind persistent flags")
		}
		if err := initConfig(); err != nil {
			return err
		}
		return initLogger()
	},
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (yaml, toml or json)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(simulateCmd, proveCmd, versionCmd)
}

func initConfig() error {
	viper.SetEnvPrefix("tmpcoin")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", cfgFile)
	}
	slog.Debug("Using config file", "path", viper.ConfigFileUsed())
	return nil
}

func initLogger() error {
	level, err := utils.ParseLogLevel(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
