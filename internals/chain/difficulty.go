package chain

import (
	"time"

	"github.com/sirupsen/logrus"
)

// MinDifficulty is the floor the controller never drops below.
const MinDifficulty = 2

// DefaultTargetBlockTime is the mining duration the controller steers
// towards.
const DefaultTargetBlockTime = 5 * time.Second

// DifficultyController retargets the proof-of-work prefix length from
// observed mining durations. Adjustments only apply to subsequent rounds;
// already-mined blocks keep the difficulty they were built against.
type DifficultyController struct {
	Target time.Duration
}

func NewDifficultyController(target time.Duration) *DifficultyController {
	if target <= 0 {
		target = DefaultTargetBlockTime
	}
	return &DifficultyController{Target: target}
}

// Adjust returns the difficulty for the next round: one step down when the
// round ran over 1.5x the target, one step up when it ran under target/1.5,
// unchanged in the band between.
func (dc *DifficultyController) Adjust(current int, elapsed time.Duration) int {
	next := current
	switch {
	case elapsed > time.Duration(1.5*float64(dc.Target)):
		next = current - 1
		if next < MinDifficulty {
			next = MinDifficulty
		}
	case elapsed < time.Duration(float64(dc.Target)/1.5):
		next = current + 1
	}
	if next != current {
		logrus.WithFields(logrus.Fields{
			"elapsed": elapsed,
			"target":  dc.Target,
			"from":    current,
			"to":      next,
		}).Info("difficulty retargeted")
	}
	return next
}
