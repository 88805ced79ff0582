package ledger

// Transaction is an immutable record of a value transfer between two parties.
type Transaction struct {
	sender   string
	receiver string
	amount   float64
}

// NewTransaction creates a transaction. Parties are opaque identifiers.
func NewTransaction(sender, receiver string, amount float64) Transaction {
	return Transaction{sender: sender, receiver: receiver, amount: amount}
}

func (t Transaction) Sender() string { return t.sender }
func (t Transaction) Receiver() string { return t.receiver }
func (t Transaction) Amount() float64 { return t.amount }

// Contribution returns the signed effect of the transaction on party's balance.
// A self-transfer debits and credits the same party and so nets to zero.
func (t Transaction) Contribution(party string) float64 {
	var delta float64
	if party == t.sender {
		delta -= t.amount
	}
	if party == t.receiver {
		delta += t.amount
	}
	return delta
}
