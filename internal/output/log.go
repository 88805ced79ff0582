package output

import (
	"context"
	"log/slog"

	"github.com/manifest-network/tmpcoin/internal/models"
)

// LogHandler writes the ledger as structured log records.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler returns a handler using logger, or slog.Default() if logger is nil.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHandler{logger: logger}
}

func (h *LogHandler) WriteSealedBlock(ctx context.Context, block *models.SealedBlock) error {
	h.logger.InfoContext(ctx, "Block sealed",
		"index", block.Index,
		"timestamp", block.Timestamp,
		"proof", block.Proof,
		"sealProof", block.SealProof,
		"transactions", block.Transactions,
		"previousHash", block.PreviousHash,
		"hash", block.Hash,
		"miner", block.Miner)
	return nil
}

func (h *LogHandler) WriteBalances(ctx context.Context, balances []models.Balance) error {
	for _, b := range balances {
		h.logger.InfoContext(ctx, "Balance", "party", b.Party, "amount", b.Amount)
	}
	return nil
}

func (h *LogHandler) Close() error {
	return nil
}
