package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultDifficulty is the number of trailing '0' hex digits a proof hash must carry.
	DefaultDifficulty = 3

	// MaxDifficulty is the length of a hex encoded SHA-256 digest.
	MaxDifficulty = sha256.Size * 2

	// cancelCheckInterval is how many candidates SearchContext tries between context checks.
	cancelCheckInterval = 1024
)

// ValidateDifficulty reports whether difficulty can be used for a proof search.
func ValidateDifficulty(difficulty int) error {
	if difficulty < 1 || difficulty > MaxDifficulty {
		return fmt.Errorf("difficulty must be between 1 and %d, got %d", MaxDifficulty, difficulty)
	}
	return nil
}

// Prover implements the proof-of-work predicate and the search for it.
// A Prover holds no mutable state and is safe for concurrent use.
type Prover struct {
	suffix string
}

// NewProver returns a prover requiring difficulty trailing zero hex digits.
// Out of range values are clamped to [1, MaxDifficulty].
func NewProver(difficulty int) Prover {
	difficulty = max(1, min(difficulty, MaxDifficulty))
	return Prover{suffix: strings.Repeat("0", difficulty)}
}

// Difficulty returns the number of trailing zero hex digits required.
func (p Prover) Difficulty() int {
	return len(p.suffix)
}

// Digest returns the hex SHA-256 digest of lastProof and candidate written as
// decimal text with no separator.
func (p Prover) Digest(lastProof, candidate int64) string {
	buf := make([]byte, 0, 40)
	buf = strconv.AppendInt(buf, lastProof, 10)
	buf = strconv.AppendInt(buf, candidate, 10)

	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// Valid reports whether candidate is a valid proof following lastProof.
func (p Prover) Valid(lastProof, candidate int64) bool {
	return strings.HasSuffix(p.Digest(lastProof, candidate), p.suffix)
}

// Search returns the smallest non-negative candidate that is valid after lastProof.
// The search is unbounded.
func (p Prover) Search(lastProof int64) int64 {
	for candidate := int64(0); ; candidate++ {
		if p.Valid(lastProof, candidate) {
			return candidate
		}
	}
}

// SearchContext is Search with cancellation. It returns ctx.Err() if the
// context ends before a proof is found.
func (p Prover) SearchContext(ctx context.Context, lastProof int64) (int64, error) {
	for candidate := int64(0); ; candidate++ {
		if candidate%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if p.Valid(lastProof, candidate) {
			return candidate, nil
		}
	}
}

// ProofTask is a proof search running in its own goroutine.
type ProofTask struct {
	done  chan struct{}
	proof int64
	err   error
}

// Go starts a proof search for lastProof and returns immediately.
// Cancelling ctx stops the search.
func (p Prover) Go(ctx context.Context, lastProof int64) *ProofTask {
	task := &ProofTask{done: make(chan struct{})}
	go func() {
		defer close(task.done)
		task.proof, task.err = p.SearchContext(ctx, lastProof)
	}()
	return task
}

// Done is closed once the search has finished.
func (t *ProofTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the search finishes and returns its result.
func (t *ProofTask) Wait() (int64, error) {
	<-t.done
	return t.proof, t.err
}
