package ledger

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Head identifies the pending block at a point in time.
type Head struct {
	Index        int64
	Proof        int64
	PreviousHash string
}

// Option configures a Chain.
type Option func(*Chain)

// WithDifficulty sets the number of trailing zero hex digits a proof must produce.
// Like NewProver it clamps difficulty to [1, MaxDifficulty]; callers taking the
// value from users should check it with ValidateDifficulty first.
func WithDifficulty(difficulty int) Option {
	return func(c *Chain) {
		c.prover = NewProver(difficulty)
	}
}

// WithClock replaces the clock used to timestamp new blocks.
func WithClock(now func() time.Time) Option {
	return func(c *Chain) {
		c.now = now
	}
}

// WithStrictAmounts makes RecordTransaction reject negative amounts.
func WithStrictAmounts() Option {
	return func(c *Chain) {
		c.strictAmounts = true
	}
}

// WithTrustedProofs makes SealBlock accept any proof without checking it.
func WithTrustedProofs() Option {
	return func(c *Chain) {
		c.trustProofs = true
	}
}

// Chain is an append-only sequence of sealed blocks plus one pending block
// that accepts transactions. It is safe for concurrent use.
type Chain struct {
	mu        sync.RWMutex
	sealed    []*Block
	pending   *Block
	nextIndex int64

	prover        Prover
	now           func() time.Time
	strictAmounts bool
	trustProofs   bool
}

// NewChain returns a chain whose genesis block is pending, linked to
// GenesisPreviousHash with proof 0. Genesis has index 0; the first block after
// it has index 1.
func NewChain(opts ...Option) *Chain {
	c := &Chain{
		prover: NewProver(DefaultDifficulty),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.pending = c.openBlock(GenesisPreviousHash, 0)
	return c
}

// openBlock must be called with mu held or before the chain is shared.
func (c *Chain) openBlock(previousHash string, proof int64) *Block {
	index := c.nextIndex
	c.nextIndex++
	return newBlock(index, c.now().Unix(), previousHash, proof)
}

// Difficulty returns the proof-of-work difficulty of the chain.
func (c *Chain) Difficulty() int {
	return c.prover.Difficulty()
}

// Prover returns the proof-of-work predicate used by the chain.
func (c *Chain) Prover() Prover {
	return c.prover
}

// RecordTransaction appends a transfer to the pending block. Balances are not
// checked: the ledger records intent, not settlement. Chains built
// WithStrictAmounts reject negative, NaN and infinite amounts.
func (c *Chain) RecordTransaction(sender, receiver string, amount float64) error {
	if c.strictAmounts && (amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0)) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending.appendTransaction(sender, receiver, amount)
	return nil
}

// SealBlock moves the pending block to the end of the ledger and opens a new
// pending block linked to its hash, carrying proof.
func (c *Chain) SealBlock(proof int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sealLocked(proof)
}

// SealHead seals the pending block only if it is still the one head describes.
// Miners racing on the same block use it so that exactly one of them wins.
func (c *Chain) SealHead(head Head, proof int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending.index != head.Index {
		return fmt.Errorf("%w: block %d, pending is %d", ErrStaleHead, head.Index, c.pending.index)
	}
	return c.sealLocked(proof)
}

func (c *Chain) sealLocked(proof int64) error {
	if !c.trustProofs && !c.prover.Valid(c.pending.proof, proof) {
		return fmt.Errorf("%w: %d after %d", ErrInvalidProof, proof, c.pending.proof)
	}

	previousHash := c.pending.ContentHash()
	c.sealed = append(c.sealed, c.pending)
	c.pending = c.openBlock(previousHash, proof)
	return nil
}

// ProofOfWork returns the smallest non-negative proof valid after lastProof.
// It does not touch chain state and may run without holding any lock.
func (c *Chain) ProofOfWork(lastProof int64) int64 {
	return c.prover.Search(lastProof)
}

// IsValidProof reports whether candidate is a valid proof following lastProof.
func (c *Chain) IsValidProof(lastProof, candidate int64) bool {
	return c.prover.Valid(lastProof, candidate)
}

// CurrentProof returns the proof of the pending block.
func (c *Chain) CurrentProof() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.pending.proof
}

// Head returns a snapshot of the pending block's identity.
func (c *Chain) Head() Head {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Head{
		Index:        c.pending.index,
		Proof:        c.pending.proof,
		PreviousHash: c.pending.previousHash,
	}
}

// PendingLen returns the number of transactions waiting in the pending block.
func (c *Chain) PendingLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.pending.transactions)
}

// Len returns the number of sealed blocks.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.sealed)
}

// Blocks returns the sealed blocks in chain order. Sealed blocks are never
// mutated, so the returned blocks may be read without further locking.
func (c *Chain) Blocks() []*Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	blocks := make([]*Block, len(c.sealed))
	copy(blocks, c.sealed)
	return blocks
}

// BlockByIndex returns the sealed block with the given index.
func (c *Chain) BlockByIndex(index int64) (*Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Indices start at 0 with genesis and grow by one per sealed block.
	if index < 0 || index >= int64(len(c.sealed)) {
		return nil, false
	}
	return c.sealed[index], true
}

// BalanceOf sums party's contributions over every sealed block. Transactions
// still in the pending block are not counted.
func (c *Chain) BalanceOf(party string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var balance float64
	for _, block := range c.sealed {
		balance += block.BalanceContribution(party)
	}
	return balance
}

// Verify checks index continuity and hash linkage across the sealed blocks and
// the pending block.
func (c *Chain) Verify() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	previousHash := GenesisPreviousHash
	for i, block := range c.sealed {
		if block.previousHash != previousHash {
			return fmt.Errorf("block %d: %w: expected previous hash %s, got %s", i, ErrBrokenLink, previousHash, block.previousHash)
		}
		if block.index != int64(i) {
			return fmt.Errorf("block %d: %w: expected index %d, got %d", i, ErrBrokenLink, i, block.index)
		}
		previousHash = block.ContentHash()
	}

	if c.pending.previousHash != previousHash {
		return fmt.Errorf("pending block: %w: expected previous hash %s, got %s", ErrBrokenLink, previousHash, c.pending.previousHash)
	}
	return nil
}
