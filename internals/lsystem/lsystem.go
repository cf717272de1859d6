package lsystem

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// Axiom is the single symbol every expansion starts from.
const Axiom = "F"

const (
	fractalDimensionDepth = 3
	fitnessDepth          = 2

	minReplacementLen = 2
	maxReplacementLen = 8
)

// replacementAlphabet is the symbol set random replacement strings draw from.
var replacementAlphabet = []rune{'F', '+', '-', '[', ']'}

// RuleSet is a mutable string-rewriting system. It always holds at least one
// rule; the derived metrics are refreshed after every mutation.
type RuleSet struct {
	Rules map[string]string

	FractalDimension float64
	Fitness          float64

	rng *rand.Rand
}

// New seeds a rule set with the default rule and the given random source.
// A nil source falls back to a time-seeded one.
func New(rng *rand.Rand) *RuleSet {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rs := &RuleSet{
		Rules: map[string]string{"F": "F+F-F"},
		rng:   rng,
	}
	rs.refreshMetrics()
	return rs
}

// Expand rewrites the axiom for the given number of rounds. Symbols without
// a rule map to themselves. Pure: repeated calls on an unmutated rule set
// return the same string.
func (rs *RuleSet) Expand(iterations int) string {
	current := Axiom
	for i := 0; i < iterations; i++ {
		var next strings.Builder
		for _, sym := range current {
			if replacement, ok := rs.Rules[string(sym)]; ok {
				next.WriteString(replacement)
			} else {
				next.WriteRune(sym)
			}
		}
		current = next.String()
	}
	return current
}

// Mutate applies one uniformly chosen mutation operator and refreshes the
// derived metrics in the same step. Degenerate picks (removing the last
// rule, swapping without a partner) are no-ops.
func (rs *RuleSet) Mutate() {
	switch rs.rng.Intn(5) {
	case 0:
		rs.addRule()
	case 1:
		rs.removeRule()
	case 2:
		rs.modifyRule()
	case 3:
		rs.swapRules()
	case 4:
		rs.reverseRules()
	}
	rs.refreshMetrics()
}

func (rs *RuleSet) addRule() {
	symbol := string(rune('A' + rs.rng.Intn(26)))
	rs.Rules[symbol] = rs.randomReplacement()
}

func (rs *RuleSet) removeRule() {
	if len(rs.Rules) <= 1 {
		return
	}
	keys := rs.sortedKeys()
	delete(rs.Rules, keys[rs.rng.Intn(len(keys))])
}

func (rs *RuleSet) modifyRule() {
	keys := rs.sortedKeys()
	rs.Rules[keys[rs.rng.Intn(len(keys))]] = rs.randomReplacement()
}

func (rs *RuleSet) swapRules() {
	if len(rs.Rules) < 2 {
		return
	}
	keys := rs.sortedKeys()
	i := rs.rng.Intn(len(keys))
	j := rs.rng.Intn(len(keys))
	for j == i {
		j = rs.rng.Intn(len(keys))
	}
	rs.Rules[keys[i]], rs.Rules[keys[j]] = rs.Rules[keys[j]], rs.Rules[keys[i]]
}

func (rs *RuleSet) reverseRules() {
	for k, v := range rs.Rules {
		rs.Rules[k] = reverseString(v)
	}
}

func (rs *RuleSet) randomReplacement() string {
	length := minReplacementLen + rs.rng.Intn(maxReplacementLen-minReplacementLen+1)
	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteRune(replacementAlphabet[rs.rng.Intn(len(replacementAlphabet))])
	}
	return b.String()
}

// sortedKeys keeps operator picks reproducible under a seeded source;
// iterating the map directly would reintroduce Go's map-order randomness.
func (rs *RuleSet) sortedKeys() []string {
	keys := make([]string, 0, len(rs.Rules))
	for k := range rs.Rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (rs *RuleSet) refreshMetrics() {
	rs.FractalDimension = rs.computeFractalDimension()
	rs.Fitness = rs.computeFitness()
}

// computeFractalDimension measures expansion growth as
// ln(length)/ln(distinct symbols). Empty and single-symbol expansions are
// pinned to 1.0: log(0) and log base 1 are undefined.
func (rs *RuleSet) computeFractalDimension() float64 {
	expanded := rs.Expand(fractalDimensionDepth)
	if len(expanded) == 0 {
		return 1.0
	}
	distinct := distinctSymbols(expanded)
	if distinct <= 1 {
		return 1.0
	}
	return math.Log(float64(len(expanded))) / math.Log(float64(distinct))
}

// computeFitness scores a rule set by symbol-mix complexity times symbol
// diversity times fractal dimension. Brackets weigh double.
func (rs *RuleSet) computeFitness() float64 {
	expanded := rs.Expand(fitnessDepth)
	complexity := 0
	for _, sym := range expanded {
		if sym == '[' || sym == ']' {
			complexity += 2
		} else {
			complexity++
		}
	}
	diversity := distinctSymbols(expanded)
	return float64(complexity) * float64(diversity) * rs.FractalDimension
}

// Serialize flattens the rules into a sorted, stable form for hashing.
func (rs *RuleSet) Serialize() []string {
	keys := rs.sortedKeys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s", k, rs.Rules[k]))
	}
	return out
}

func distinctSymbols(s string) int {
	seen := make(map[rune]struct{})
	for _, sym := range s {
		seen[sym] = struct{}{}
	}
	return len(seen)
}

func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
