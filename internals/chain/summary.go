package chain

// BlockSummary is the per-block slice of the printable chain summary. Hash
// prefixes are truncated for display only; full digests stay on the block.
type BlockSummary struct {
	ID               string  `json:"id"`
	Timestamp        int64   `json:"timestamp"`
	HashPrefix       string  `json:"hash_prefix"`
	PrevHashPrefix   string  `json:"previous_hash_prefix"`
	Fitness          float64 `json:"fitness"`
	FractalDimension float64 `json:"fractal_dimension"`
	TxCount          int     `json:"tx_count"`
}

// Summary is the queryable chain overview. The field set is the contract;
// how a caller renders it is not.
type Summary struct {
	NodeID     string         `json:"node_id"`
	Difficulty int            `json:"difficulty"`
	Length     int            `json:"length"`
	Blocks     []BlockSummary `json:"blocks"`
}

const summaryPrefixLen = 12

func (c *Chain) Summary() Summary {
	s := Summary{
		NodeID:     c.nodeID,
		Difficulty: c.difficulty,
		Length:     len(c.blocks),
		Blocks:     make([]BlockSummary, 0, len(c.blocks)),
	}
	for _, b := range c.blocks {
		s.Blocks = append(s.Blocks, BlockSummary{
			ID:               b.ID,
			Timestamp:        b.Timestamp,
			HashPrefix:       prefix(b.Hash),
			PrevHashPrefix:   prefix(b.PrevHash),
			Fitness:          b.Rules.Fitness,
			FractalDimension: b.Rules.FractalDimension,
			TxCount:          len(b.Txs),
		})
	}
	return s
}

func prefix(hash string) string {
	if len(hash) <= summaryPrefixLen {
		return hash
	}
	return hash[:summaryPrefixLen]
}
