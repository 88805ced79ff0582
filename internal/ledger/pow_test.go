package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProverValid(t *testing.T) {
	p := NewProver(DefaultDifficulty)

	for candidate := int64(0); candidate < 2000; candidate++ {
		sum := sha256.Sum256([]byte("0" + strconv.FormatInt(candidate, 10)))
		want := strings.HasSuffix(hex.EncodeToString(sum[:]), "000")
		assert.Equal(t, want, p.Valid(0, candidate), "candidate %d", candidate)
		assert.Equal(t, p.Valid(0, candidate), p.Valid(0, candidate), "predicate must be deterministic")
	}
}

func TestProverSearchReturnsSmallestProof(t *testing.T) {
	cases := []struct {
		name       string
		difficulty int
		lastProof  int64
	}{
		{name: "difficulty 1 from genesis", difficulty: 1, lastProof: 0},
		{name: "difficulty 2", difficulty: 2, lastProof: 100},
		{name: "default difficulty from genesis", difficulty: DefaultDifficulty, lastProof: 0},
		{name: "default difficulty", difficulty: DefaultDifficulty, lastProof: 35293},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProver(tc.difficulty)
			proof := p.Search(tc.lastProof)

			require.True(t, p.Valid(tc.lastProof, proof))
			assert.True(t, strings.HasSuffix(p.Digest(tc.lastProof, proof), strings.Repeat("0", tc.difficulty)))
			for candidate := int64(0); candidate < proof; candidate++ {
				assert.False(t, p.Valid(tc.lastProof, candidate), "candidate %d is smaller and valid", candidate)
			}
		})
	}
}

func TestProverSearchContext(t *testing.T) {
	p := NewProver(DefaultDifficulty)

	proof, err := p.SearchContext(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, p.Search(0), proof)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.SearchContext(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProverSearchContextDeadline(t *testing.T) {
	// A full-digest difficulty will not be met before the deadline.
	p := NewProver(MaxDifficulty)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.SearchContext(ctx, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProofTask(t *testing.T) {
	p := NewProver(2)

	task := p.Go(context.Background(), 7)
	select {
	case <-task.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("proof search did not finish")
	}

	proof, err := task.Wait()
	require.NoError(t, err)
	assert.Equal(t, p.Search(7), proof)
}

func TestProofTaskCancel(t *testing.T) {
	p := NewProver(MaxDifficulty)

	ctx, cancel := context.WithCancel(context.Background())
	task := p.Go(ctx, 0)
	cancel()

	_, err := task.Wait()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateDifficulty(t *testing.T) {
	cases := []struct {
		difficulty int
		wantErr    bool
	}{
		{difficulty: -1, wantErr: true},
		{difficulty: 0, wantErr: true},
		{difficulty: 1},
		{difficulty: DefaultDifficulty},
		{difficulty: MaxDifficulty},
		{difficulty: MaxDifficulty + 1, wantErr: true},
	}

	for _, tc := range cases {
		err := ValidateDifficulty(tc.difficulty)
		if tc.wantErr {
			assert.Error(t, err, "difficulty %d", tc.difficulty)
		} else {
			assert.NoError(t, err, "difficulty %d", tc.difficulty)
		}
	}
}

func TestNewProverClampsDifficulty(t *testing.T) {
	assert.Equal(t, 1, NewProver(0).Difficulty())
	assert.Equal(t, MaxDifficulty, NewProver(1000).Difficulty())
	assert.Equal(t, DefaultDifficulty, NewProver(DefaultDifficulty).Difficulty())
}
