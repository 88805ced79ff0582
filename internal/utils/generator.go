package utils

import (
	"math/rand"
	"strconv"

	"github.com/manifest-network/tmpcoin/internal/models"
)

// Addresses are nine digit decimal numbers.
const (
	minAddress = 100000000
	maxAddress = 999999999
)

// TransferGenerator produces pseudo-random transfers from a fixed seed.
// It is not safe for concurrent use; give each wallet its own generator.
type TransferGenerator struct {
	rng       *rand.Rand
	minAmount float64
	maxAmount float64
}

// NewTransferGenerator returns a generator whose amounts fall in [minAmount, maxAmount).
func NewTransferGenerator(seed int64, minAmount, maxAmount float64) *TransferGenerator {
	return &TransferGenerator{
		rng:       rand.New(rand.NewSource(seed)),
		minAmount: minAmount,
		maxAmount: maxAmount,
	}
}

// Address returns a random nine digit address.
func (g *TransferGenerator) Address() string {
	return strconv.Itoa(minAddress + g.rng.Intn(maxAddress-minAddress+1))
}

// Amount returns a random amount in the generator's range.
func (g *TransferGenerator) Amount() float64 {
	return g.minAmount + g.rng.Float64()*(g.maxAmount-g.minAmount)
}

// Next returns a transfer between two random addresses.
func (g *TransferGenerator) Next() models.Transfer {
	return models.Transfer{
		Sender:   g.Address(),
		Receiver: g.Address(),
		Amount:   g.Amount(),
	}
}
