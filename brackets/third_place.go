package brackets

import "errors"

var ErrNoSemifinals = errors.New("a third place match needs a final fed by two semifinals")

// SetThirdPlaceMatch returns a copy of tree with the third-place match added or removed.
// Adding to a tree whose final is not fed by two matches fails with ErrNoSemifinals.
// Asking for the state the tree is already in returns an unchanged copy.
func SetThirdPlaceMatch(tree MatchTree, enabled bool, ids IDGenerator) (MatchTree, error) {
	out := tree.Clone()
	_, has := tree.ThirdPlaceMatch()

	if !enabled {
		if !has {
			return out, nil
		}
		kept := make([]Match, 0, len(out.Matches))
		for _, m := range out.Matches {
			if !m.ThirdPlace {
				kept = append(kept, m)
			}
		}
		out.Matches = kept
		return out, nil
	}

	if has {
		return out, nil
	}
	final, ok := tree.Final()
	if !ok || tree.Format != FormatSingleElimination {
		return out, ErrNoSemifinals
	}
	if ids == nil {
		ids = UUIDGenerator()
	}
	m, ok := thirdPlaceFor(final, ids)
	if !ok {
		return out, ErrNoSemifinals
	}
	out.Matches = append(out.Matches, m)
	return out, nil
}
