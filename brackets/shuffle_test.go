package brackets

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func competitorIDs(cs []Competitor) []string {
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		if !c.IsEmpty() {
			ids = append(ids, c.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

func roundOneSlots(tree MatchTree) []Competitor {
	var out []Competitor
	for _, m := range tree.Round(1) {
		out = append(out, m.Participants...)
	}
	return out
}

func TestShuffle_PermutesRoundOneOnly(t *testing.T) {
	tree := buildSeq(8, true)
	before := tree.Clone()

	shuffled := Shuffle(tree, NewSeededSource(7))

	if diff := cmp.Diff(before, tree); diff != "" {
		t.Fatalf("input tree mutated (-before +after):\n%s", diff)
	}
	assert.Equal(t, competitorIDs(roundOneSlots(tree)), competitorIDs(roundOneSlots(shuffled)))

	require.Len(t, shuffled.Matches, len(tree.Matches))
	for i, m := range shuffled.Matches {
		orig := tree.Matches[i]
		assert.Equal(t, orig.ID, m.ID)
		assert.Len(t, m.Participants, len(orig.Participants))
		if m.Round > 1 {
			assert.Equal(t, orig, m, "round %d match must not change", m.Round)
		}
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	tree := buildSeq(16, false)

	a := Shuffle(tree, NewSeededSource(42))
	b := Shuffle(tree, NewSeededSource(42))
	assert.Empty(t, cmp.Diff(a, b))
}

func TestShuffle_EventuallyChangesOrder(t *testing.T) {
	tree := buildSeq(16, false)
	original := roundOneSlots(tree)

	changed := false
	for seed := uint64(1); seed <= 10 && !changed; seed++ {
		changed = !cmp.Equal(original, roundOneSlots(Shuffle(tree, NewSeededSource(seed))))
	}
	assert.True(t, changed)
}

func TestShuffle_EmptyTree(t *testing.T) {
	empty := MatchTree{Format: FormatSingleElimination, Matches: []Match{}}
	assert.Equal(t, empty, Shuffle(empty, nil))
}

func TestShuffle_NilSourceUsesGlobal(t *testing.T) {
	tree := buildSeq(6, false)
	shuffled := Shuffle(tree, nil)
	assert.Equal(t, competitorIDs(roundOneSlots(tree)), competitorIDs(roundOneSlots(shuffled)))
}

func TestShuffleSeeds_IncludesByeCompetitor(t *testing.T) {
	tree := buildSeq(5, false)
	all := competitorIDs(testCompetitors(5))

	byeMoved := false
	for seed := uint64(1); seed <= 20; seed++ {
		shuffled := ShuffleSeeds(tree, NewSeededSource(seed))
		assert.Equal(t, all, competitorIDs(shuffled.Seeds()))

		semi := shuffled.Round(2)[0]
		if semi.Participants[1].ID != "c5" {
			byeMoved = true
		}
		assert.True(t, semi.Participants[0].IsEmpty(), "slot fed by a match stays empty")
	}
	assert.True(t, byeMoved)
}

func TestShuffle_LeavesByeCompetitorInPlace(t *testing.T) {
	tree := buildSeq(5, false)
	for seed := uint64(1); seed <= 10; seed++ {
		shuffled := Shuffle(tree, NewSeededSource(seed))
		assert.Equal(t, "c5", shuffled.Round(2)[0].Participants[1].ID)
	}
}

func TestShuffle_FreeForAll(t *testing.T) {
	tree := BuildFreeForAll(testCompetitors(6), 3)
	shuffled := Shuffle(tree, NewSeededSource(3))

	assert.Equal(t, competitorIDs(testCompetitors(6)), competitorIDs(shuffled.Matches[0].Participants))
	assert.Equal(t, tree.Matches[1], shuffled.Matches[1])
	assert.Equal(t, tree.Matches[2], shuffled.Matches[2])
}
