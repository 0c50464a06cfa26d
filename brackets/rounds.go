package brackets

import "sort"

// RoundGroup is every match of one round, in tree order.
type RoundGroup struct {
	Number  int     `json:"number"`
	Matches []Match `json:"matches"`
}

// GroupByRound buckets matches by Match.Round. Groups come back sorted by round number and
// each group keeps the relative order the matches had in the input.
func GroupByRound(matches []Match) []RoundGroup {
	byRound := make(map[int][]Match)
	var roundNums []int
	for _, m := range matches {
		if _, exists := byRound[m.Round]; !exists {
			roundNums = append(roundNums, m.Round)
		}
		byRound[m.Round] = append(byRound[m.Round], m)
	}

	sort.Ints(roundNums)

	groups := make([]RoundGroup, 0, len(roundNums))
	for _, r := range roundNums {
		groups = append(groups, RoundGroup{Number: r, Matches: byRound[r]})
	}
	return groups
}

// RoundNumbers returns the distinct round numbers of the tree in ascending order.
func RoundNumbers(matches []Match) []int {
	groups := GroupByRound(matches)
	nums := make([]int, len(groups))
	for i, g := range groups {
		nums[i] = g.Number
	}
	return nums
}

// Round returns the matches of round r, nil when the round does not exist.
func (t MatchTree) Round(r int) []Match {
	var out []Match
	for _, m := range t.Matches {
		if m.Round == r {
			out = append(out, m)
		}
	}
	return out
}
