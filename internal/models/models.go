package models

// Transfer is a value transfer issued by a wallet before it is recorded on a chain.
type Transfer struct {
	Sender   string
	Receiver string
	Amount   float64
}

// SealedBlock summarises a block once it has been sealed into the ledger.
// Hash is the block's content hash, which the next block links to.
type SealedBlock struct {
	Index        int64
	Timestamp    int64
	PreviousHash string
	Hash         string
	Proof        int64
	Transactions int

	// SealProof is the proof found for Proof; it opens the next block.
	SealProof int64
	// Miner is the id of the miner that found SealProof.
	Miner     int
}

// Balance is a party's net position over the sealed ledger.
type Balance struct {
	Party  string
	Amount float64
}
