package simulator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/manifest-network/tmpcoin/internal/config"
	"github.com/manifest-network/tmpcoin/internal/ledger"
	"github.com/manifest-network/tmpcoin/internal/metrics"
	"github.com/manifest-network/tmpcoin/internal/models"
	"github.com/manifest-network/tmpcoin/internal/output"
	"github.com/manifest-network/tmpcoin/internal/utils"
)

// Simulator drives a chain with concurrent wallets issuing transfers and
// concurrent miners racing to seal each block.
type Simulator struct {
	chain         *ledger.Chain
	outputHandler output.OutputHandler
	metrics       *metrics.Metrics
	cfg           config.SimulateConfig
	progress      io.Writer

	wallets []*utils.TransferGenerator

	mu      sync.Mutex
	parties map[string]struct{}
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithProgressWriter sets where the progress bar is drawn. Defaults to stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(s *Simulator) {
		s.progress = w
	}
}

// New returns a simulator for chain. Each wallet gets its own generator seeded
// from cfg.Seed so that runs are reproducible per wallet.
func New(chain *ledger.Chain, outputHandler output.OutputHandler, m *metrics.Metrics, cfg config.SimulateConfig, opts ...Option) *Simulator {
	s := &Simulator{
		chain:         chain,
		outputHandler: outputHandler,
		metrics:       m,
		cfg:           cfg,
		progress:      os.Stderr,
		parties:       make(map[string]struct{}),
	}
	for w := uint(0); w < cfg.Wallets; w++ {
		s.wallets = append(s.wallets, utils.NewTransferGenerator(cfg.Seed+int64(w), cfg.MinAmount, cfg.MaxAmount))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run produces blocks until the configured count is reached, or until ctx is
// cancelled in live mode, then reports balances and verifies the chain.
func (s *Simulator) Run(ctx context.Context) error {
	var err error
	if s.cfg.Live {
		err = s.runLive(ctx)
	} else {
		err = s.runBatch(ctx)
	}
	if err != nil {
		return err
	}
	return s.finish(ctx)
}

// produceBlock fills the pending block, mines it and reports the result.
func (s *Simulator) produceBlock(ctx context.Context) error {
	if err := s.issueTransfers(ctx); err != nil {
		return fmt.Errorf("failed to issue transfers: %w", err)
	}

	block, err := s.mineBlock(ctx)
	if err != nil {
		return err
	}

	if err := s.outputHandler.WriteSealedBlock(ctx, block); err != nil {
		return fmt.Errorf("failed to write sealed block: %w", err)
	}
	return nil
}

// issueTransfers spreads the block's transfers over the wallets, which record
// them concurrently.
func (s *Simulator) issueTransfers(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	total := s.cfg.TransactionsPerBlock
	n := uint(len(s.wallets))
	if n == 0 {
		return nil
	}

	for w, wallet := range s.wallets {
		count := total / n
		if uint(w) < total%n {
			count++
		}

		eg.Go(func() error {
			for i := uint(0); i < count; i++ {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				tr := wallet.Next()
				if err := s.chain.RecordTransaction(tr.Sender, tr.Receiver, tr.Amount); err != nil {
					return fmt.Errorf("wallet %d: %w", w, err)
				}
				s.metrics.TransactionsRecorded.Inc()
				s.remember(tr)
			}
			return nil
		})
	}

	return eg.Wait()
}

func (s *Simulator) remember(tr models.Transfer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.parties[tr.Sender] = struct{}{}
	s.parties[tr.Receiver] = struct{}{}
}

// Balances returns the balance of every party seen so far, ordered by party.
func (s *Simulator) Balances() []models.Balance {
	s.mu.Lock()
	parties := make([]string, 0, len(s.parties))
	for party := range s.parties {
		parties = append(parties, party)
	}
	s.mu.Unlock()

	sort.Strings(parties)
	balances := make([]models.Balance, 0, len(parties))
	for _, party := range parties {
		balances = append(balances, models.Balance{Party: party, Amount: s.chain.BalanceOf(party)})
	}
	return balances
}

func (s *Simulator) finish(ctx context.Context) error {
	if err := s.outputHandler.WriteBalances(ctx, s.Balances()); err != nil {
		return fmt.Errorf("failed to write balances: %w", err)
	}
	if err := s.chain.Verify(); err != nil {
		return fmt.Errorf("chain verification failed: %w", err)
	}
	slog.Info("Simulation finished", "blocks", s.chain.Len(), "pending", s.chain.PendingLen())
	return nil
}
