package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// runLive keeps producing blocks, one every BlockTime seconds, until ctx is done.
func (s *Simulator) runLive(ctx context.Context) error {
	slog.Info("Producing blocks until interrupted", "blockTime", s.cfg.BlockTime)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			if err := s.produceBlock(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return fmt.Errorf("failed to produce block: %w", err)
			}

			// Sleep before producing the next block
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Duration(s.cfg.BlockTime) * time.Second):
			}
		}
	}
}
