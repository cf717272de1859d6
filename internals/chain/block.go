package chain

import (
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"wsb.com/evochain/internals/grid"
	"wsb.com/evochain/internals/helpers"
	"wsb.com/evochain/internals/ledger"
	"wsb.com/evochain/internals/lsystem"
)

// Block aggregates the hash linkage, the mutable rule set the mining search
// varies, the fixed puzzle grid, and the transaction snapshot drained from
// the pool at construction time. A block exclusively owns its rules, grid
// and transactions.
type Block struct {
	ID         string               `json:"id"`
	Timestamp  int64                `json:"timestamp"`
	Data       string               `json:"data"`
	PrevHash   string               `json:"previous_hash"`
	Nonce      int64                `json:"nonce"`
	Difficulty int                  `json:"difficulty"`
	Hash       string               `json:"hash"`
	Rules      *lsystem.RuleSet     `json:"rules"`
	Grid       grid.Grid            `json:"grid"`
	Txs        []ledger.Transaction `json:"transactions"`
}

// hashView fixes the serialization the digest runs over. Field order
// matters: reordering changes every block hash. The stored hash itself is
// deliberately excluded so the digest never depends on its own prior value.
type hashView struct {
	ID               string               `json:"id"`
	Timestamp        int64                `json:"timestamp"`
	Data             string               `json:"data"`
	PrevHash         string               `json:"previous_hash"`
	Nonce            int64                `json:"nonce"`
	Difficulty       int                  `json:"difficulty"`
	Rules            []string             `json:"rules"`
	Grid             grid.Grid            `json:"grid"`
	Txs              []ledger.Transaction `json:"transactions"`
	FractalDimension float64              `json:"fractal_dimension"`
	Fitness          float64              `json:"fitness"`
}

// newBlock builds a candidate with a fresh rule set, the deterministic grid
// fill and a random nonce. The nonce is fixed for the block's lifetime; the
// mining search varies the rule set instead.
func newBlock(rng *rand.Rand, ts time.Time, data, prevHash string, difficulty int, txs []ledger.Transaction) *Block {
	b := &Block{
		ID:         helpers.RandomHex(8),
		Timestamp:  ts.UnixNano(),
		Data:       data,
		PrevHash:   prevHash,
		Nonce:      rng.Int63(),
		Difficulty: difficulty,
		Rules:      lsystem.New(rng),
		Grid:       grid.New(),
		Txs:        txs,
	}
	b.RefreshHash()
	return b
}

// ComputeHash digests the block's current state. A marshal failure degrades
// to the empty string, which no difficulty prefix ever accepts.
func (b *Block) ComputeHash() string {
	view := hashView{
		ID:               b.ID,
		Timestamp:        b.Timestamp,
		Data:             b.Data,
		PrevHash:         b.PrevHash,
		Nonce:            b.Nonce,
		Difficulty:       b.Difficulty,
		Rules:            b.Rules.Serialize(),
		Grid:             b.Grid,
		Txs:              b.Txs,
		FractalDimension: b.Rules.FractalDimension,
		Fitness:          b.Rules.Fitness,
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return ""
	}
	return helpers.SerializeSHA256(string(raw))
}

// RefreshHash recomputes the cached hash. Must be called after any change
// to the rules, grid or transactions; the stored hash is a cache of the
// digest, never an independent field.
func (b *Block) RefreshHash() {
	b.Hash = b.ComputeHash()
}

// hashMeetsDifficulty checks the leading-zero-character prefix.
func hashMeetsDifficulty(hash string, difficulty int) bool {
	if hash == "" || difficulty > len(hash) {
		return false
	}
	return hash[:difficulty] == strings.Repeat("0", difficulty)
}
