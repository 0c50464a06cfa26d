package brackets

import (
	"context"
	"fmt"
)

// BuildFreeForAll schedules totalRounds matches, each one listing every competitor. There is
// no elimination, so no match has predecessors.
func BuildFreeForAll(competitors []Competitor, totalRounds int, opts ...Option) MatchTree {
	cfg := newBuildConfig(opts)
	tree := MatchTree{Format: FormatFreeForAll, Matches: []Match{}}
	if totalRounds < 1 || len(competitors) == 0 {
		return tree
	}

	tree.Matches = make([]Match, 0, totalRounds)
	for r := 1; r <= totalRounds; r++ {
		participants := make([]Competitor, len(competitors))
		copy(participants, competitors)
		tree.Matches = append(tree.Matches, Match{
			ID:           cfg.ids.NextID(),
			Round:        r,
			Number:       1,
			Name:         fmt.Sprintf("Round %d", r),
			Participants: participants,
		})
	}
	return tree
}

type FreeForAllGenerator struct {
	opts []Option
}

func NewFreeForAllGenerator(opts ...Option) BracketGenerator {
	return &FreeForAllGenerator{opts: opts}
}

func (g *FreeForAllGenerator) GetName() string {
	return "FreeForAll"
}

func (g *FreeForAllGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (MatchTree, error) {
	if err := ctx.Err(); err != nil {
		return MatchTree{}, err
	}
	if len(params.Competitors) < 2 {
		return MatchTree{}, fmt.Errorf("%w: found %d, min 2 required", ErrNotEnoughCompetitors, len(params.Competitors))
	}
	if params.TotalRounds < 1 {
		return MatchTree{}, fmt.Errorf("%w: got %d", ErrInvalidRoundCount, params.TotalRounds)
	}
	opts := append([]Option{}, g.opts...)
	opts = append(opts, params.Options...)
	return BuildFreeForAll(params.Competitors, params.TotalRounds, opts...), nil
}
