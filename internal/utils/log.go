package utils

import (
	"log/slog"

	"github.com/pkg/errors"
)

// ParseLogLevel parses debug, info, warn or error (case insensitive).
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.WithMessagef(err, "invalid log level %q", s)
	}
	return level, nil
}
