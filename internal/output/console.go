package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/manifest-network/tmpcoin/internal/models"
)

// ConsoleHandler narrates the ledger on a terminal.
type ConsoleHandler struct {
	w io.Writer
}

// NewConsoleHandler returns a handler writing to w, or to stdout if w is nil.
func NewConsoleHandler(w io.Writer) *ConsoleHandler {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleHandler{w: w}
}

func (h *ConsoleHandler) WriteSealedBlock(_ context.Context, block *models.SealedBlock) error {
	line := pterm.Success.Sprintfln("block %d sealed by miner %d: proof=%d seal=%d txs=%d hash=%s",
		block.Index, block.Miner, block.Proof, block.SealProof, block.Transactions, shortHash(block.Hash))
	_, err := fmt.Fprint(h.w, line)
	return err
}

func (h *ConsoleHandler) WriteBalances(_ context.Context, balances []models.Balance) error {
	data := pterm.TableData{{"Party", "Balance"}}
	for _, b := range balances {
		data = append(data, []string{b.Party, strconv.FormatFloat(b.Amount, 'f', 2, 64)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render balances: %w", err)
	}
	_, err = fmt.Fprintln(h.w, table)
	return err
}

func (h *ConsoleHandler) Close() error {
	return nil
}

func shortHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}
