package brackets

import (
	"context"
	"errors"
)

var (
	ErrNotEnoughCompetitors = errors.New("not enough competitors to generate a bracket")
	ErrInvalidRoundCount    = errors.New("free-for-all needs at least one round")
)

type GenerateBracketParams struct {
	Competitors        []Competitor
	HasThirdPlaceMatch bool
	// TotalRounds is only read by the free-for-all generator.
	TotalRounds int
	Options     []Option
}

// BracketGenerator is the service-facing wrapper around the pure builders. Unlike the
// builders it reports out-of-range input as an error.
type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (MatchTree, error)

	GetName() string
}

// GeneratorFor returns the generator for format, or false when the format is unknown.
func GeneratorFor(format Format, opts ...Option) (BracketGenerator, bool) {
	switch format {
	case FormatSingleElimination:
		return NewSingleEliminationGenerator(opts...), true
	case FormatFreeForAll:
		return NewFreeForAllGenerator(opts...), true
	default:
		return nil, false
	}
}
