package lsystem

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeded(seed int64) *RuleSet {
	return New(rand.New(rand.NewSource(seed)))
}

// expectedDimension mirrors the metric definition, guards included.
func expectedDimension(rs *RuleSet) float64 {
	expanded := rs.Expand(3)
	if len(expanded) == 0 {
		return 1.0
	}
	distinct := distinctSymbols(expanded)
	if distinct <= 1 {
		return 1.0
	}
	return math.Log(float64(len(expanded))) / math.Log(float64(distinct))
}

func expectedFitness(rs *RuleSet) float64 {
	expanded := rs.Expand(2)
	complexity := 0
	for _, sym := range expanded {
		if sym == '[' || sym == ']' {
			complexity += 2
		} else {
			complexity++
		}
	}
	return float64(complexity) * float64(distinctSymbols(expanded)) * expectedDimension(rs)
}

func TestExpandDefaultRule(t *testing.T) {
	rs := newSeeded(1)
	assert.Equal(t, "F", rs.Expand(0))
	assert.Equal(t, "F+F-F", rs.Expand(1))
	assert.Equal(t, "F+F-F+F+F-F-F+F-F", rs.Expand(2))
}

func TestExpandIsPure(t *testing.T) {
	rs := newSeeded(2)
	first := rs.Expand(3)
	second := rs.Expand(3)
	assert.Equal(t, first, second)
	assert.Equal(t, map[string]string{"F": "F+F-F"}, rs.Rules)
}

func TestExpandUnknownSymbolsMapToThemselves(t *testing.T) {
	rs := newSeeded(3)
	rs.Rules = map[string]string{"F": "AB+"}
	assert.Equal(t, "AB+", rs.Expand(1))
	assert.Equal(t, "AB+", rs.Expand(2))
}

func TestRemoveNeverEmptiesRuleSet(t *testing.T) {
	rs := newSeeded(42)
	for i := 0; i < 500; i++ {
		rs.Mutate()
		require.NotEmpty(t, rs.Rules)
	}

	single := newSeeded(42)
	single.removeRule()
	assert.Len(t, single.Rules, 1)
}

func TestSwapNeedsTwoEntries(t *testing.T) {
	rs := newSeeded(4)
	before := map[string]string{"F": rs.Rules["F"]}
	rs.swapRules()
	assert.Equal(t, before, rs.Rules)
}

func TestSwapExchangesReplacements(t *testing.T) {
	rs := newSeeded(5)
	rs.Rules = map[string]string{"A": "one", "B": "two"}
	rs.swapRules()
	assert.Equal(t, map[string]string{"A": "two", "B": "one"}, rs.Rules)
}

func TestReverseFlipsEveryReplacement(t *testing.T) {
	rs := newSeeded(6)
	rs.Rules = map[string]string{"F": "F+[", "X": "-]"}
	rs.reverseRules()
	assert.Equal(t, map[string]string{"F": "[+F", "X": "]-"}, rs.Rules)
}

func TestRandomReplacementBounds(t *testing.T) {
	rs := newSeeded(7)
	for i := 0; i < 200; i++ {
		s := rs.randomReplacement()
		require.GreaterOrEqual(t, len(s), minReplacementLen)
		require.LessOrEqual(t, len(s), maxReplacementLen)
		for _, sym := range s {
			require.True(t, strings.ContainsRune("F+-[]", sym), "unexpected symbol %q", sym)
		}
	}
}

func TestFractalDimensionGuards(t *testing.T) {
	rs := newSeeded(8)

	rs.Rules = map[string]string{"F": ""}
	assert.Equal(t, 1.0, rs.computeFractalDimension())

	rs.Rules = map[string]string{"F": "FF"}
	assert.Equal(t, 1.0, rs.computeFractalDimension())
}

func TestMetricsMatchDefinitions(t *testing.T) {
	rs := newSeeded(9)
	assert.InDelta(t, expectedDimension(rs), rs.FractalDimension, 1e-9)
	assert.InDelta(t, expectedFitness(rs), rs.Fitness, 1e-9)
}

func TestMutateRefreshesMetrics(t *testing.T) {
	rs := newSeeded(10)
	for i := 0; i < 50; i++ {
		rs.Mutate()
		require.InDelta(t, expectedDimension(rs), rs.FractalDimension, 1e-9)
		require.InDelta(t, expectedFitness(rs), rs.Fitness, 1e-9)
	}
}

func TestSerializeIsSortedAndStable(t *testing.T) {
	rs := newSeeded(11)
	rs.Rules = map[string]string{"B": "2", "A": "1", "F": "F+F"}
	assert.Equal(t, []string{"A=1", "B=2", "F=F+F"}, rs.Serialize())
	assert.Equal(t, rs.Serialize(), rs.Serialize())
}
