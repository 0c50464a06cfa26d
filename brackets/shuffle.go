package brackets

import "math/rand/v2"

// RandomSource is the randomness the shuffler consumes. *rand.Rand from math/rand/v2
// satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// NewSeededSource returns a deterministic source for reproducible shuffles.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// fisherYates permutes items in place.
func fisherYates(items []Competitor, rng RandomSource) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

type slotRef struct {
	match int
	slot  int
}

// Shuffle re-randomizes the seed assignment of round 1. Participants of round-1 matches are
// permuted and written back in match order, each match keeping its slot count. Later rounds
// are not touched. The input tree is left unmodified; a nil rng uses the global source.
func Shuffle(tree MatchTree, rng RandomSource) MatchTree {
	return shuffleSlots(tree, rng, false)
}

// ShuffleSeeds is Shuffle extended to competitors that entered a later round through a bye,
// so an odd field also moves its bye.
func ShuffleSeeds(tree MatchTree, rng RandomSource) MatchTree {
	return shuffleSlots(tree, rng, true)
}

func shuffleSlots(tree MatchTree, rng RandomSource, includeByes bool) MatchTree {
	if rng == nil {
		rng = globalSource{}
	}

	out := tree.Clone()
	var refs []slotRef
	for i, m := range out.Matches {
		if m.Round == 1 && !m.ThirdPlace {
			for s := range m.Participants {
				refs = append(refs, slotRef{match: i, slot: s})
			}
		}
	}
	if len(refs) == 0 {
		return tree
	}
	if includeByes {
		for i, m := range out.Matches {
			if m.Round == 1 || m.ThirdPlace {
				continue
			}
			for s, prev := range m.PrevMatchIDs {
				if prev == nil && s < len(m.Participants) && !m.Participants[s].IsEmpty() {
					refs = append(refs, slotRef{match: i, slot: s})
				}
			}
		}
	}

	pool := make([]Competitor, len(refs))
	for i, ref := range refs {
		pool[i] = out.Matches[ref.match].Participants[ref.slot]
	}
	fisherYates(pool, rng)
	for i, ref := range refs {
		out.Matches[ref.match].Participants[ref.slot] = pool[i]
	}
	return out
}
