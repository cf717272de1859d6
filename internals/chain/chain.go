package chain

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"wsb.com/evochain/internals/helpers"
	"wsb.com/evochain/internals/ledger"
)

const (
	// DefaultDifficulty is the initial leading-zero prefix length.
	DefaultDifficulty = 4
	// DefaultMineAttemptLimit bounds the addBlock/validate retry loop.
	DefaultMineAttemptLimit = 10000
	// DefaultGenesisAttemptLimit bounds the genesis mutation search, which
	// would otherwise have no termination guarantee.
	DefaultGenesisAttemptLimit = 1000000
	// initialGeneticThreshold is the starting fitness bar for the
	// evolutionary override. A freshly seeded rule set scores roughly 180,
	// so the bar sits well above that: only exceptional mutants escape.
	// Every override raises the bar by 10%.
	initialGeneticThreshold = 1000.0
)

var (
	ErrGenesisExhausted = errors.New("chain: genesis search exhausted its attempt limit")
	ErrMiningExhausted  = errors.New("chain: mining exhausted its attempt limit without a valid block")
)

// acceptReason names the exit a candidate block left the mining state
// machine through.
type acceptReason int

const (
	// acceptHashGate: the hash met the difficulty prefix and the grid
	// validated.
	acceptHashGate acceptReason = iota
	// acceptFitnessEscape: the rule set's fitness beat the genetic
	// threshold, an evolutionary override of the hash/grid gate. Blocks
	// accepted this way are tentative and usually fail whole-chain
	// validation.
	acceptFitnessEscape
)

// Options configures a new chain. Zero values fall back to defaults; Rand
// and Now are injectable so mining runs deterministically under test.
type Options struct {
	InitialDifficulty   int
	TargetBlockTime     time.Duration
	MineAttemptLimit    int
	GenesisAttemptLimit int
	Rand                *rand.Rand
	Now                 func() time.Time
}

// Chain owns the block sequence, the pending pool and the acceptance
// thresholds. Methods are single-owner; only the pool is safe for
// concurrent use.
type Chain struct {
	nodeID           string
	blocks           []*Block
	pool             *ledger.Pool
	difficulty       int
	geneticThreshold float64
	controller       *DifficultyController

	mineAttemptLimit    int
	genesisAttemptLimit int

	rng *rand.Rand
	now func() time.Time
}

// New builds a chain and mines its genesis block, which goes through the
// same rule-mutation search as any other block.
func New(opts Options) (*Chain, error) {
	if opts.InitialDifficulty < MinDifficulty {
		opts.InitialDifficulty = DefaultDifficulty
	}
	if opts.MineAttemptLimit <= 0 {
		opts.MineAttemptLimit = DefaultMineAttemptLimit
	}
	if opts.GenesisAttemptLimit <= 0 {
		opts.GenesisAttemptLimit = DefaultGenesisAttemptLimit
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Chain{
		nodeID:              helpers.NewNodeID(),
		pool:                ledger.NewPool(),
		difficulty:          opts.InitialDifficulty,
		geneticThreshold:    initialGeneticThreshold,
		controller:          NewDifficultyController(opts.TargetBlockTime),
		mineAttemptLimit:    opts.MineAttemptLimit,
		genesisAttemptLimit: opts.GenesisAttemptLimit,
		rng:                 opts.Rand,
		now:                 opts.Now,
	}
	if err := c.mineGenesis(); err != nil {
		return nil, err
	}
	return c, nil
}

// mineGenesis searches for an acceptable genesis block by rule mutation
// alone, bounded by the configured attempt limit.
func (c *Chain) mineGenesis() error {
	b := newBlock(c.rng, c.now(), "Genesis Block", "0", c.difficulty, nil)
	for attempt := 0; attempt < c.genesisAttemptLimit; attempt++ {
		if hashMeetsDifficulty(b.Hash, c.difficulty) {
			c.blocks = append(c.blocks, b)
			logrus.WithFields(logrus.Fields{
				"hash":     b.Hash[:12],
				"attempts": attempt,
			}).Info("genesis block mined")
			return nil
		}
		b.Rules.Mutate()
		b.RefreshHash()
	}
	return ErrGenesisExhausted
}

// QueueTransaction signs a transfer and adds it to the pending pool.
func (c *Chain) QueueTransaction(sender, receiver string, amount float64) {
	c.pool.Add(ledger.NewTransaction(sender, receiver, amount))
}

// addBlock drains the entire pending pool into a candidate block and runs
// the mutation search until an exit condition fires. The pool is drained
// unconditionally, even when the candidate is later discarded; repeated
// failed attempts therefore mine empty follow-up candidates.
//
// The returned block has already been appended and is tentative: the
// fitness escape can accept a candidate that never satisfied the hash/grid
// gate, so callers must re-check the whole chain.
func (c *Chain) addBlock(ctx context.Context, data string) (*Block, acceptReason, error) {
	last := c.blocks[len(c.blocks)-1]
	b := newBlock(c.rng, c.now(), data, last.Hash, c.difficulty, c.pool.Drain())

	for {
		if hashMeetsDifficulty(b.Hash, c.difficulty) && b.Grid.Validate() {
			c.blocks = append(c.blocks, b)
			return b, acceptHashGate, nil
		}
		if b.Rules.Fitness > c.geneticThreshold {
			c.geneticThreshold = b.Rules.Fitness * 1.1
			logrus.WithFields(logrus.Fields{
				"fitness":   b.Rules.Fitness,
				"threshold": c.geneticThreshold,
			}).Debug("fitness escape triggered, threshold raised")
			c.blocks = append(c.blocks, b)
			return b, acceptFitnessEscape, nil
		}
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		default:
		}
		b.Rules.Mutate()
		b.RefreshHash()
	}
}

// MineResult reports an accepted block together with search statistics.
type MineResult struct {
	Block    *Block
	Attempts int
	Elapsed  time.Duration
	Escaped  bool
}

// MineBlock repeatedly builds tentative candidates and keeps the first one
// that leaves the whole chain valid, up to the attempt limit. Either way
// the elapsed time feeds the difficulty controller for the next round.
func (c *Chain) MineBlock(ctx context.Context, data string) (*MineResult, error) {
	start := c.now()
	for attempt := 1; attempt <= c.mineAttemptLimit; attempt++ {
		b, reason, err := c.addBlock(ctx, data)
		if err != nil {
			return nil, err
		}
		if c.IsValid() {
			elapsed := c.now().Sub(start)
			c.difficulty = c.controller.Adjust(c.difficulty, elapsed)
			logrus.WithFields(logrus.Fields{
				"hash":     b.Hash[:12],
				"attempts": attempt,
				"elapsed":  elapsed,
				"escaped":  reason == acceptFitnessEscape,
				"txs":      len(b.Txs),
			}).Info("block mined")
			return &MineResult{
				Block:    b,
				Attempts: attempt,
				Elapsed:  elapsed,
				Escaped:  reason == acceptFitnessEscape,
			}, nil
		}
		// Tentative block failed whole-chain validation; discard and retry.
		c.blocks = c.blocks[:len(c.blocks)-1]
	}
	elapsed := c.now().Sub(start)
	c.difficulty = c.controller.Adjust(c.difficulty, elapsed)
	return nil, ErrMiningExhausted
}

// IsValid replays every per-block invariant from the second block onward.
// Each block is checked against the difficulty it was mined at, so a later
// retarget never invalidates history.
func (c *Chain) IsValid() bool {
	for i := 1; i < len(c.blocks); i++ {
		b, prev := c.blocks[i], c.blocks[i-1]
		if b.Hash != b.ComputeHash() {
			return false
		}
		if b.PrevHash != prev.Hash {
			return false
		}
		if !b.Grid.Validate() {
			return false
		}
		if !hashMeetsDifficulty(b.Hash, b.Difficulty) {
			return false
		}
		if !ledger.VerifyAll(b.Txs) {
			return false
		}
		if b.Timestamp <= prev.Timestamp {
			return false
		}
	}
	return true
}

// Block fetches a block by its identifier.
func (c *Chain) Block(id string) (*Block, bool) {
	for _, b := range c.blocks {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

func (c *Chain) NodeID() string    { return c.nodeID }
func (c *Chain) Len() int          { return len(c.blocks) }
func (c *Chain) Difficulty() int   { return c.difficulty }
func (c *Chain) PendingCount() int { return c.pool.Len() }
func (c *Chain) Tip() *Block       { return c.blocks[len(c.blocks)-1] }
