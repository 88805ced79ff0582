package output

import (
	"context"
	"sync"

	"github.com/manifest-network/tmpcoin/internal/models"
)

// MemoryHandler keeps everything written to it.
type MemoryHandler struct {
	mu       sync.Mutex
	blocks   []models.SealedBlock
	balances []models.Balance
	closed   bool
}

func NewMemoryHandler() *MemoryHandler {
	return &MemoryHandler{}
}

func (h *MemoryHandler) WriteSealedBlock(_ context.Context, block *models.SealedBlock) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.blocks = append(h.blocks, *block)
	return nil
}

func (h *MemoryHandler) WriteBalances(_ context.Context, balances []models.Balance) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.balances = append(h.balances[:0], balances...)
	return nil
}

// Blocks returns the sealed blocks written so far.
func (h *MemoryHandler) Blocks() []models.SealedBlock {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]models.SealedBlock(nil), h.blocks...)
}

// Balances returns the most recently written balances.
func (h *MemoryHandler) Balances() []models.Balance {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]models.Balance(nil), h.balances...)
}

// Closed reports whether Close has been called.
func (h *MemoryHandler) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.closed
}

func (h *MemoryHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	return nil
}
