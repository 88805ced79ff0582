package output

import (
	"context"
	"fmt"

	"github.com/manifest-network/tmpcoin/internal/models"
)

const (
	KindConsole = "console"
	KindLog     = "log"
)

type OutputHandler interface {
	// WriteSealedBlock reports a block that has just been sealed.
	WriteSealedBlock(ctx context.Context, block *models.SealedBlock) error

	// WriteBalances reports the balances of the given parties over the sealed ledger.
	WriteBalances(ctx context.Context, balances []models.Balance) error

	// Close closes the output handler.
	Close() error
}

// New returns the output handler registered under kind.
func New(kind string) (OutputHandler, error) {
	switch kind {
	case KindConsole:
		return NewConsoleHandler(nil), nil
	case KindLog:
		return NewLogHandler(nil), nil
	default:
		return nil, fmt.Errorf("unknown output %q", kind)
	}
}
