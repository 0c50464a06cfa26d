package brackets

import (
	"context"
	"fmt"
)

// semifinalField is the number of contenders at which reduction stops and the
// semifinal/final stage is built.
const semifinalField = 4

// node is a contender: a competitor that reached this point through a bye, or the
// future winner of a match already placed in the tree.
type node struct {
	competitor    *Competitor
	sourceMatchID *string
}

func competitorNode(c Competitor) node {
	return node{competitor: &c}
}

type treeBuilder struct {
	ids     IDGenerator
	round   int
	matches []Match
}

func newTreeBuilder(ids IDGenerator) *treeBuilder {
	return &treeBuilder{ids: ids}
}

// nextRound opens a new round and returns its number.
func (b *treeBuilder) nextRound() int {
	b.round++
	return b.round
}

// addMatch places a match between a and c in round r and returns the node for its winner.
func (b *treeBuilder) addMatch(r int, a, c node) node {
	m := Match{
		ID:           b.ids.NextID(),
		Round:        r,
		Number:       b.countInRound(r) + 1,
		Participants: []Competitor{EmptySlot, EmptySlot},
	}

	if r > 1 {
		m.PrevMatchIDs = make([]*string, 2)
	}
	for slot, n := range []node{a, c} {
		if n.competitor != nil {
			m.Participants[slot] = *n.competitor
			continue
		}
		if n.sourceMatchID != nil && r > 1 {
			m.PrevMatchIDs[slot] = stringPtr(*n.sourceMatchID)
		}
	}

	b.matches = append(b.matches, m)
	return node{sourceMatchID: stringPtr(m.ID)}
}

func (b *treeBuilder) countInRound(r int) int {
	count := 0
	for _, m := range b.matches {
		if m.Round == r {
			count++
		}
	}
	return count
}

// pairRound opens one round: the first byes contenders pass through untouched and the rest
// meet positionally. The returned slice keeps bracket order.
func (b *treeBuilder) pairRound(contenders []node, byes int) []node {
	r := b.nextRound()
	next := make([]node, 0, byes+(len(contenders)-byes)/2)
	next = append(next, contenders[:byes]...)
	for i := byes; i+1 < len(contenders); i += 2 {
		next = append(next, b.addMatch(r, contenders[i], contenders[i+1]))
	}
	return next
}

// firstRound pairs seeds positionally. With an odd field the last seed is carried as a bye
// contender instead of receiving a match record of its own.
func (b *treeBuilder) firstRound(seeds []node) []node {
	r := b.nextRound()
	next := make([]node, 0, (len(seeds)+1)/2)
	for i := 0; i+1 < len(seeds); i += 2 {
		next = append(next, b.addMatch(r, seeds[i], seeds[i+1]))
	}
	if len(seeds)%2 == 1 {
		next = append(next, seeds[len(seeds)-1])
	}
	return next
}

// closeOut builds the semifinal and final stage from at most four contenders.
func (b *treeBuilder) closeOut(contenders []node) {
	switch len(contenders) {
	case 0, 1:
		// The last match placed is already the final.
	case 2:
		b.addMatch(b.nextRound(), contenders[0], contenders[1])
	case 3:
		semi := b.addMatch(b.nextRound(), contenders[1], contenders[2])
		b.addMatch(b.nextRound(), contenders[0], semi)
	default:
		r := b.nextRound()
		semi1 := b.addMatch(r, contenders[0], contenders[1])
		semi2 := b.addMatch(r, contenders[2], contenders[3])
		b.addMatch(b.nextRound(), semi1, semi2)
	}
}

// addThirdPlace appends the third-place match next to the final when two semifinal losers
// exist, i.e. both final slots are fed by matches.
func (b *treeBuilder) addThirdPlace() {
	if len(b.matches) == 0 {
		return
	}
	if m, ok := thirdPlaceFor(b.matches[len(b.matches)-1], b.ids); ok {
		b.matches = append(b.matches, m)
	}
}

func thirdPlaceFor(final Match, ids IDGenerator) (Match, bool) {
	if len(final.PrevMatchIDs) != 2 || final.PrevMatchIDs[0] == nil || final.PrevMatchIDs[1] == nil {
		return Match{}, false
	}
	return Match{
		ID:           ids.NextID(),
		Round:        final.Round,
		Number:       final.Number + 1,
		Name:         thirdPlaceName,
		Participants: []Competitor{EmptySlot, EmptySlot},
		ThirdPlace:   true,
	}, true
}

const (
	finalName      = "Final"
	thirdPlaceName = "Third Place Match"
)

// nameMatches labels the final, the round before it and every other match.
func nameMatches(matches []Match) {
	last := 0
	for _, m := range matches {
		if m.Round > last {
			last = m.Round
		}
	}
	for i := range matches {
		m := &matches[i]
		switch {
		case m.ThirdPlace:
			m.Name = thirdPlaceName
		case m.Round == last:
			m.Name = finalName
		case m.Round == last-1:
			m.Name = fmt.Sprintf("Semifinal %d", m.Number)
		default:
			m.Name = fmt.Sprintf("Round %d - Match %d", m.Round, m.Number)
		}
	}
}

// BuildSingleElimination builds the complete single-elimination tree for competitors in
// seed order. Fewer than two competitors yields an empty tree. hasThirdPlaceMatch is ignored
// unless both final slots are fed by earlier matches, so two or three competitors never get
// a third place match.
func BuildSingleElimination(competitors []Competitor, hasThirdPlaceMatch bool, opts ...Option) MatchTree {
	cfg := newBuildConfig(opts)
	tree := MatchTree{Format: FormatSingleElimination, Matches: []Match{}}
	if len(competitors) < 2 {
		return tree
	}

	b := newTreeBuilder(cfg.ids)
	seeds := make([]node, len(competitors))
	for i, c := range competitors {
		seeds[i] = competitorNode(c)
	}

	var contenders []node
	switch cfg.policy {
	case PolicyStandard:
		contenders = b.standardSeeding(seeds)
	default:
		contenders = b.reduce(b.firstRound(seeds))
	}
	b.closeOut(contenders)

	if hasThirdPlaceMatch {
		b.addThirdPlace()
	}
	nameMatches(b.matches)

	tree.Matches = b.matches
	return tree
}

// SingleEliminationGenerator adapts BuildSingleElimination to BracketGenerator.
type SingleEliminationGenerator struct {
	opts []Option
}

func NewSingleEliminationGenerator(opts ...Option) BracketGenerator {
	return &SingleEliminationGenerator{opts: opts}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (MatchTree, error) {
	if err := ctx.Err(); err != nil {
		return MatchTree{}, err
	}
	if len(params.Competitors) < 2 {
		return MatchTree{}, fmt.Errorf("%w: found %d, min 2 required", ErrNotEnoughCompetitors, len(params.Competitors))
	}
	opts := append([]Option{}, g.opts...)
	opts = append(opts, params.Options...)
	return BuildSingleElimination(params.Competitors, params.HasThirdPlaceMatch, opts...), nil
}
