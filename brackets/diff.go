package brackets

import "slices"

// MatchKey identifies a match by its place in the tree rather than by id, so trees from two
// different builds (or a stored and a fresh tree) can be compared.
type MatchKey struct {
	Round      int  `json:"round"`
	Number     int  `json:"number"`
	ThirdPlace bool `json:"thirdPlace"`
}

func keyOf(m Match) MatchKey {
	return MatchKey{Round: m.Round, Number: m.Number, ThirdPlace: m.ThirdPlace}
}

// MatchChange pairs the old and new version of a match found at the same key.
type MatchChange struct {
	Key MatchKey `json:"key"`
	Old Match    `json:"old"`
	New Match    `json:"new"`
}

// TreeDiff lists what has to happen to one tree to make it structurally equal to another.
type TreeDiff struct {
	Added   []Match       `json:"added"`
	Removed []Match       `json:"removed"`
	Changed []MatchChange `json:"changed"`
}

// IsEmpty reports whether the two trees were structurally equal.
func (d TreeDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares two trees by match position. A match counts as changed when its name, its
// participants or the positions of its predecessors differ; ids are ignored.
func Diff(from, to MatchTree) TreeDiff {
	diff := TreeDiff{Added: []Match{}, Removed: []Match{}, Changed: []MatchChange{}}

	fromKeys := keysByID(from)
	toKeys := keysByID(to)

	fromByKey := make(map[MatchKey]Match, len(from.Matches))
	for _, m := range from.Matches {
		fromByKey[keyOf(m)] = m
	}
	toByKey := make(map[MatchKey]Match, len(to.Matches))
	for _, m := range to.Matches {
		toByKey[keyOf(m)] = m
	}

	for _, m := range to.Matches {
		prev, ok := fromByKey[keyOf(m)]
		if !ok {
			diff.Added = append(diff.Added, m)
			continue
		}
		if !sameShape(prev, m, fromKeys, toKeys) {
			diff.Changed = append(diff.Changed, MatchChange{Key: keyOf(m), Old: prev, New: m})
		}
	}
	for _, m := range from.Matches {
		if _, ok := toByKey[keyOf(m)]; !ok {
			diff.Removed = append(diff.Removed, m)
		}
	}
	return diff
}

func keysByID(t MatchTree) map[string]MatchKey {
	keys := make(map[string]MatchKey, len(t.Matches))
	for _, m := range t.Matches {
		keys[m.ID] = keyOf(m)
	}
	return keys
}

func sameShape(a, b Match, aKeys, bKeys map[string]MatchKey) bool {
	if a.Name != b.Name || !slices.Equal(a.Participants, b.Participants) {
		return false
	}
	if len(a.PrevMatchIDs) != len(b.PrevMatchIDs) {
		return false
	}
	for i := range a.PrevMatchIDs {
		pa, pb := a.PrevMatchIDs[i], b.PrevMatchIDs[i]
		if (pa == nil) != (pb == nil) {
			return false
		}
		if pa != nil && !samePredecessor(*pa, *pb, aKeys, bKeys) {
			return false
		}
	}
	return true
}

// samePredecessor compares two predecessor references by position. An id that does not
// resolve inside its own tree only matches the identical unresolved id on the other side.
func samePredecessor(a, b string, aKeys, bKeys map[string]MatchKey) bool {
	ka, okA := aKeys[a]
	kb, okB := bKeys[b]
	if okA && okB {
		return ka == kb
	}
	return !okA && !okB && a == b
}
