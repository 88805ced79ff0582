package utils

import (
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferGeneratorIsDeterministic(t *testing.T) {
	a := NewTransferGenerator(7, 1, 100)
	b := NewTransferGenerator(7, 1, 100)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestTransferGeneratorRanges(t *testing.T) {
	g := NewTransferGenerator(1, 1, 100)

	for i := 0; i < 1000; i++ {
		tr := g.Next()
		for _, addr := range []string{tr.Sender, tr.Receiver} {
			require.Len(t, addr, 9)
			n, err := strconv.Atoi(addr)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, minAddress)
			assert.LessOrEqual(t, n, maxAddress)
		}
		assert.GreaterOrEqual(t, tr.Amount, 1.0)
		assert.Less(t, tr.Amount, 100.0)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		input   string
		want    slog.Level
		wantErr string
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", wantErr: `invalid log level "loud"`},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLogLevel(tc.input)
			if tc.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, level)
		})
	}
}
