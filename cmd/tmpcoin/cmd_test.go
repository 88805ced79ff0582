package tmpcoin

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifest-network/tmpcoin/internal/ledger"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
		viper.Reset()
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags puts every flag of cmd and its subcommands back to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestProveCommand(t *testing.T) {
	out, err := execute(t, "prove", "100", "--difficulty", "2")
	require.NoError(t, err)

	prover := ledger.NewProver(2)
	proof := prover.Search(100)
	assert.Contains(t, out, fmt.Sprintf("proof=%d digest=%s attempts=%d", proof, prover.Digest(100, proof), proof+1))
}

func TestProveCommandErrors(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "not a number", args: []string{"prove", "abc"}, wantErr: "error parsing last proof"},
		{name: "missing argument", args: []string{"prove"}, wantErr: "accepts 1 arg(s)"},
		{name: "bad difficulty", args: []string{"prove", "1", "--difficulty", "0"}, wantErr: "difficulty must be between"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	t.Run("invalid difficulty", func(t *testing.T) {
		_, err := execute(t, "prove", "1", "--difficulty", "0")
		require.Error(t, err)
	})

	t.Run("default difficulty", func(t *testing.T) {
		out, err := execute(t, "prove", "1")
		require.NoError(t, err)

		prover := ledger.NewProver(ledger.DefaultDifficulty)
		assert.Contains(t, out, fmt.Sprintf("digest=%s", prover.Digest(1, prover.Search(1))))
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestSimulateCommand(t *testing.T) {
	_, err := execute(t, "simulate",
		"--blocks", "2",
		"--transactions", "3",
		"--wallets", "2",
		"--miners", "2",
		"--difficulty", "1",
		"--output", "log",
		"--log-level", "warn")
	assert.NoError(t, err)
}

func TestSimulateCommandInvalidConfig(t *testing.T) {
	_, err := execute(t, "simulate", "--output", "xml", "--log-level", "warn")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
