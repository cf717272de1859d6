package ledger

import (
	"sync"

	"wsb.com/evochain/internals/helpers"
)

// Transaction is a signed transfer record. It is immutable once created;
// validity is purely a function of its own fields.
type Transaction struct {
	Sender    string  `json:"sender"`
	Receiver  string  `json:"receiver"`
	Amount    float64 `json:"amount"`
	Signature string  `json:"signature"`
}

// Sign derives the deterministic signature of a transfer: the digest of the
// fields concatenated without a delimiter. The missing delimiter makes the
// scheme collision-prone; it is kept as part of the chain's simplified
// trust model, not fixed here.
func Sign(sender, receiver string, amount float64) string {
	return helpers.SerializeSHA256(sender + receiver + helpers.FormatAmount(amount))
}

// NewTransaction builds a signed transfer.
func NewTransaction(sender, receiver string, amount float64) Transaction {
	return Transaction{
		Sender:    sender,
		Receiver:  receiver,
		Amount:    amount,
		Signature: Sign(sender, receiver, amount),
	}
}

// Verify recomputes the signature from the stored fields.
func (t Transaction) Verify() bool {
	return t.Signature == Sign(t.Sender, t.Receiver, t.Amount)
}

// VerifyAll accepts a transaction list only if every signature checks out.
func VerifyAll(txs []Transaction) bool {
	for _, tx := range txs {
		if !tx.Verify() {
			return false
		}
	}
	return true
}

// Pool holds transactions queued for the next mined block. Drain hands the
// whole pool to exactly one caller; the mutex keeps that invariant intact
// if a concurrent driver is ever added.
type Pool struct {
	mu  sync.Mutex
	txs []Transaction
}

func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) Add(tx Transaction) {
	p.mu.Lock()
	p.txs = append(p.txs, tx)
	p.mu.Unlock()
}

func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.txs)
}

// Drain returns all pending transactions and clears the pool.
func (p *Pool) Drain() []Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.txs
	p.txs = nil
	return out
}
