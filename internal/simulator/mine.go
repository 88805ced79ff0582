package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/manifest-network/tmpcoin/internal/ledger"
	"github.com/manifest-network/tmpcoin/internal/models"
)

// mineBlock races the configured miners on the pending block. The first miner
// to seal wins and the others are cancelled.
func (s *Simulator) mineBlock(ctx context.Context) (*models.SealedBlock, error) {
	head := s.chain.Head()
	prover := s.chain.Prover()

	mineCtx, cancel := s.mineContext(ctx)
	defer cancel()

	var (
		sealed    atomic.Bool
		winner    atomic.Int64
		sealProof atomic.Int64
	)

	eg, egCtx := errgroup.WithContext(mineCtx)
	for miner := 0; miner < int(s.cfg.Miners); miner++ {
		eg.Go(func() error {
			start := time.Now()
			proof, err := prover.SearchContext(egCtx, head.Proof)
			if err != nil {
				if sealed.Load() {
					return nil
				}
				return err
			}

			if err := s.chain.SealHead(head, proof); err != nil {
				if errors.Is(err, ledger.ErrStaleHead) {
					s.metrics.StaleSeals.Inc()
					slog.Debug("Lost mining race", "miner", miner, "index", head.Index)
					return nil
				}
				return err
			}

			winner.Store(int64(miner))
			sealProof.Store(proof)
			sealed.Store(true)
			cancel()

			s.metrics.ProofAttempts.Add(float64(proof + 1))
			s.metrics.ProofDuration.Observe(time.Since(start).Seconds())
			return nil
		})
	}

	block, err := s.sealedBlock(head, eg.Wait())
	if err != nil {
		return nil, err
	}

	s.metrics.BlocksSealed.Inc()
	s.metrics.ChainLength.Set(float64(s.chain.Len()))

	return &models.SealedBlock{
		Index:        block.Index(),
		Timestamp:    block.Timestamp(),
		PreviousHash: block.PreviousHash(),
		Hash:         block.ContentHash(),
		Proof:        block.Proof(),
		Transactions: block.Len(),
		SealProof:    sealProof.Load(),
		Miner:        int(winner.Load()),
	}, nil
}

// sealedBlock returns the block head described once mining has stopped. A
// miner can seal just as the deadline fires, leaving the others to fail with
// a context error; the seal on the chain is what decides the outcome.
func (s *Simulator) sealedBlock(head ledger.Head, mineErr error) (*ledger.Block, error) {
	block, ok := s.chain.BlockByIndex(head.Index)
	if ok {
		if mineErr != nil {
			slog.Debug("Block sealed while mining was being stopped", "index", head.Index, "error", mineErr)
		}
		return block, nil
	}
	if mineErr != nil {
		return nil, fmt.Errorf("failed to mine block %d: %w", head.Index, mineErr)
	}
	return nil, fmt.Errorf("block %d was not sealed", head.Index)
}

func (s *Simulator) mineContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.MineTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.MineTimeout)
	}
	return context.WithCancel(ctx)
}
