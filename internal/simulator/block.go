package simulator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// runBatch produces the configured number of blocks.
func (s *Simulator) runBatch(ctx context.Context) error {
	displayProgress := s.cfg.Blocks > 1
	slog.Info("Producing blocks",
		"blocks", s.cfg.Blocks,
		"transactionsPerBlock", s.cfg.TransactionsPerBlock,
		"wallets", s.cfg.Wallets,
		"miners", s.cfg.Miners,
		"difficulty", s.chain.Difficulty())

	var bar *progressbar.ProgressBar
	if displayProgress {
		bar = progressbar.NewOptions64(
			int64(s.cfg.Blocks),
			progressbar.OptionSetWriter(s.progress),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetDescription("Mining blocks..."),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		if err := bar.RenderBlank(); err != nil {
			return fmt.Errorf("failed to render progress bar: %w", err)
		}
	}

	for i := uint(0); i < s.cfg.Blocks; i++ {
		if ctx.Err() != nil {
			slog.Info("Mining cancelled by user")
			return ctx.Err()
		}

		if err := s.produceBlock(ctx); err != nil {
			return fmt.Errorf("failed to produce block: %w", err)
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	if bar != nil {
		if err := bar.Finish(); err != nil {
			return fmt.Errorf("failed to finish progress bar: %w", err)
		}
	}

	return nil
}
