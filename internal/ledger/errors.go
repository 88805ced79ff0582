package ledger

import "errors"

var (
	// ErrInvalidProof is returned when a sealing proof does not satisfy the
	// proof-of-work predicate against the pending block's proof.
	ErrInvalidProof = errors.New("invalid proof of work")

	// ErrInvalidAmount is returned for negative amounts on chains built WithStrictAmounts.
	ErrInvalidAmount = errors.New("invalid transaction amount")

	// ErrStaleHead is returned by SealHead when another seal got there first.
	ErrStaleHead = errors.New("pending block has already been sealed")

	// ErrBrokenLink is returned by Verify when the hash linkage does not hold.
	ErrBrokenLink = errors.New("broken chain link")
)
