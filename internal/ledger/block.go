package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// GenesisPreviousHash links the first block of every chain.
const GenesisPreviousHash = "0"

// Block is an ordered collection of transactions plus its chain linkage.
// Only the owning Chain mutates a block, and only while it is pending.
type Block struct {
	index        int64
	timestamp    int64
	previousHash string
	proof        int64
	transactions []Transaction
}

func newBlock(index, timestamp int64, previousHash string, proof int64) *Block {
	return &Block{
		index:        index,
		timestamp:    timestamp,
		previousHash: previousHash,
		proof:        proof,
	}
}

func (b *Block) appendTransaction(sender, receiver string, amount float64) {
	b.transactions = append(b.transactions, NewTransaction(sender, receiver, amount))
}

func (b *Block) Index() int64 { return b.index }
func (b *Block) Timestamp() int64 { return b.timestamp }
func (b *Block) PreviousHash() string { return b.previousHash }
func (b *Block) Proof() int64 { return b.proof }
func (b *Block) Len() int { return len(b.transactions) }

// Transactions returns a copy of the block's transactions in insertion order.
func (b *Block) Transactions() []Transaction {
	txs := make([]Transaction, len(b.transactions))
	copy(txs, b.transactions)
	return txs
}

// ContentHash returns the hex SHA-256 digest of index, timestamp, proof and
// transaction count written as decimal text with no separators.
//
// The digest does not cover transaction contents: two blocks that differ only
// in what their transactions say hash the same.
func (b *Block) ContentHash() string {
	buf := make([]byte, 0, 64)
	buf = strconv.AppendInt(buf, b.index, 10)
	buf = strconv.AppendInt(buf, b.timestamp, 10)
	buf = strconv.AppendInt(buf, b.proof, 10)
	buf = strconv.AppendInt(buf, int64(len(b.transactions)), 10)

	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// BalanceContribution sums the contribution of every held transaction to party.
func (b *Block) BalanceContribution(party string) float64 {
	var total float64
	for _, tx := range b.transactions {
		total += tx.Contribution(party)
	}
	return total
}
