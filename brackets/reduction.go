package brackets

import (
	"fmt"
	"sort"
)

// deviationRule overrides the plain mod-2 reduction for one contender count. The play-in
// round pairs the listed adjacent positions (0-based); every other contender gets a bye.
// The field left after the play-in is a power of two times four and is then halved down to
// the semifinal stage.
type deviationRule struct {
	pairs [][2]int
}

// deviationRules is keyed by the contender count the rule applies to.
//
// Whether these placements encode a deliberate fairness rule or were tuned by hand is still
// open; they are reproduced as documented rather than replaced with standard seeding.
var deviationRules = map[int]deviationRule{
	5:  {pairs: [][2]int{{1, 2}}},
	9:  {pairs: [][2]int{{7, 8}}},
	11: {pairs: [][2]int{{1, 2}, {5, 6}, {9, 10}}},
	12: {pairs: [][2]int{{1, 2}, {4, 5}, {7, 8}, {10, 11}}},
	13: {pairs: [][2]int{{1, 2}, {3, 4}, {6, 7}, {9, 10}, {11, 12}}},
	17: {pairs: [][2]int{{15, 16}}},
	19: {pairs: [][2]int{{5, 6}, {11, 12}, {17, 18}}},
	21: {pairs: [][2]int{{1, 2}, {5, 6}, {9, 10}, {13, 14}, {19, 20}}},
	23: {pairs: [][2]int{{1, 2}, {4, 5}, {7, 8}, {10, 11}, {13, 14}, {16, 17}, {21, 22}}},
	25: {pairs: [][2]int{{1, 2}, {3, 4}, {6, 7}, {9, 10}, {12, 13}, {15, 16}, {18, 19}, {20, 21}, {23, 24}}},
}

// DeviationCounts lists the contender counts that have a hand-tuned rule.
func DeviationCounts() []int {
	counts := make([]int, 0, len(deviationRules))
	for c := range deviationRules {
		counts = append(counts, c)
	}
	sort.Ints(counts)
	return counts
}

// target is the field size right after the play-in round.
func (r deviationRule) target(count int) int {
	return count - len(r.pairs)
}

// validate checks that a rule fits count: pairs are adjacent, in order, in range and
// disjoint, and the play-in leaves a power of two of at least four contenders.
func (r deviationRule) validate(count int) error {
	last := -1
	for _, p := range r.pairs {
		if p[1] != p[0]+1 {
			return fmt.Errorf("pair %v is not adjacent", p)
		}
		if p[0] <= last {
			return fmt.Errorf("pair %v overlaps or is out of order", p)
		}
		if p[1] >= count {
			return fmt.Errorf("pair %v out of range for %d contenders", p, count)
		}
		last = p[1]
	}
	t := r.target(count)
	if t < semifinalField || t&(t-1) != 0 {
		return fmt.Errorf("play-in leaves %d contenders, want a power of two >= %d", t, semifinalField)
	}
	return nil
}

// playIn opens one round holding the rule's pairs. Winners take the position of the first
// contender of their pair; byes keep theirs.
func (b *treeBuilder) playIn(contenders []node, rule deviationRule) []node {
	r := b.nextRound()
	pairAt := make(map[int]bool, len(rule.pairs))
	for _, p := range rule.pairs {
		pairAt[p[0]] = true
	}

	next := make([]node, 0, rule.target(len(contenders)))
	for i := 0; i < len(contenders); i++ {
		if pairAt[i] {
			next = append(next, b.addMatch(r, contenders[i], contenders[i+1]))
			i++
			continue
		}
		next = append(next, contenders[i])
	}
	return next
}

// applyDeviation runs the play-in round and the halving rounds that follow it.
func (b *treeBuilder) applyDeviation(contenders []node, rule deviationRule) []node {
	next := b.playIn(contenders, rule)
	for len(next) > semifinalField {
		next = b.pairRound(next, 0)
	}
	return next
}

// reduce shrinks the field round by round until at most four contenders remain.
// Counts with a deviation rule use it; any other count falls back to the plain rule:
// contenders mod 2 byes for the earliest contenders, the rest paired positionally.
func (b *treeBuilder) reduce(contenders []node) []node {
	for len(contenders) > semifinalField {
		if rule, ok := deviationRules[len(contenders)]; ok {
			contenders = b.applyDeviation(contenders, rule)
			continue
		}
		contenders = b.pairRound(contenders, len(contenders)%2)
	}
	return contenders
}
