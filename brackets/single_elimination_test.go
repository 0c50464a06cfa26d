package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCompetitors(n int) []Competitor {
	out := make([]Competitor, n)
	for i := range out {
		out[i] = Competitor{ID: fmt.Sprintf("c%d", i+1), Name: fmt.Sprintf("Team %d", i+1)}
	}
	return out
}

func buildSeq(n int, thirdPlace bool, opts ...Option) MatchTree {
	opts = append([]Option{WithIDGenerator(NewSequentialIDs("m"))}, opts...)
	return BuildSingleElimination(testCompetitors(n), thirdPlace, opts...)
}

func prevIDs(m Match) []string {
	out := make([]string, len(m.PrevMatchIDs))
	for i, p := range m.PrevMatchIDs {
		if p != nil {
			out[i] = *p
		}
	}
	return out
}

func TestBuildSingleElimination_TooFewCompetitors(t *testing.T) {
	for _, n := range []int{0, 1} {
		tree := BuildSingleElimination(testCompetitors(n), true)
		assert.True(t, tree.IsEmpty(), "n=%d", n)
		assert.NotNil(t, tree.Matches)
		assert.Equal(t, FormatSingleElimination, tree.Format)
	}
}

func TestBuildSingleElimination_TwoCompetitors(t *testing.T) {
	tree := buildSeq(2, false)

	require.Len(t, tree.Matches, 1)
	final := tree.Matches[0]
	assert.Equal(t, 1, final.Round)
	assert.Equal(t, "Final", final.Name)
	assert.Nil(t, final.PrevMatchIDs)
	assert.Equal(t, testCompetitors(2), final.Participants)
}

func TestBuildSingleElimination_ThreeCompetitors(t *testing.T) {
	tree := buildSeq(3, false)

	require.Len(t, tree.Matches, 2)
	first, final := tree.Matches[0], tree.Matches[1]
	assert.Equal(t, 1, first.Round)
	assert.Equal(t, []Competitor{{ID: "c1", Name: "Team 1"}, {ID: "c2", Name: "Team 2"}}, first.Participants)

	assert.Equal(t, 2, final.Round)
	assert.Equal(t, "Final", final.Name)
	require.Len(t, final.PrevMatchIDs, 2)
	assert.Equal(t, first.ID, *final.PrevMatchIDs[0])
	assert.Nil(t, final.PrevMatchIDs[1], "third competitor reaches the final on a bye")
	assert.Equal(t, Competitor{ID: "c3", Name: "Team 3"}, final.Participants[1])
	assert.True(t, final.Participants[0].IsEmpty())
}

func TestBuildSingleElimination_FourCompetitors(t *testing.T) {
	tree := buildSeq(4, false)

	require.Len(t, tree.Matches, 3)
	assert.Len(t, tree.Round(1), 2)
	assert.Len(t, tree.Round(2), 1)

	final, ok := tree.Final()
	require.True(t, ok)
	assert.Equal(t, []string{"m1", "m2"}, prevIDs(final))
	assert.Equal(t, "Semifinal 1", tree.Matches[0].Name)
	assert.Equal(t, "Semifinal 2", tree.Matches[1].Name)
}

func TestBuildSingleElimination_FiveCompetitors(t *testing.T) {
	tree := buildSeq(5, false)

	require.Len(t, tree.Matches, 4)
	assert.Len(t, tree.Round(1), 2)

	semis := tree.Round(2)
	require.Len(t, semis, 1)
	assert.Equal(t, []string{"m2", ""}, prevIDs(semis[0]))
	assert.Equal(t, "c5", semis[0].Participants[1].ID)

	final, ok := tree.Final()
	require.True(t, ok)
	assert.Equal(t, 3, final.Round)
	assert.Equal(t, []string{"m1", "m3"}, prevIDs(final))
}

func TestBuildSingleElimination_TenCompetitors(t *testing.T) {
	tree := buildSeq(10, false)

	require.Len(t, tree.Matches, 9)
	assert.Len(t, tree.Round(1), 5)

	round2 := tree.Round(2)
	require.Len(t, round2, 1, "only the second and third match winners play in round 2")
	assert.Equal(t, []string{"m2", "m3"}, prevIDs(round2[0]))

	semis := tree.Round(3)
	require.Len(t, semis, 2)
	assert.Equal(t, []string{"m1", "m6"}, prevIDs(semis[0]))
	assert.Equal(t, []string{"m4", "m5"}, prevIDs(semis[1]))

	final, ok := tree.Final()
	require.True(t, ok)
	assert.Equal(t, 4, final.Round)
	assert.Equal(t, []string{"m7", "m8"}, prevIDs(final))
}

func TestBuildSingleElimination_ThirdPlaceMatch(t *testing.T) {
	tree := buildSeq(8, true)

	require.Len(t, tree.Matches, 8)
	third, ok := tree.ThirdPlaceMatch()
	require.True(t, ok)
	final, _ := tree.Final()

	assert.Equal(t, final.Round, third.Round)
	assert.Equal(t, "Third Place Match", third.Name)
	assert.Empty(t, third.PrevMatchIDs)
	assert.Equal(t, []Competitor{EmptySlot, EmptySlot}, third.Participants)
}

func TestBuildSingleElimination_ThirdPlaceNeedsTwoSemifinals(t *testing.T) {
	for _, n := range []int{2, 3} {
		tree := buildSeq(n, true)
		_, ok := tree.ThirdPlaceMatch()
		assert.False(t, ok, "n=%d", n)
		assert.Len(t, tree.Matches, n-1)
	}

	tree := buildSeq(4, true)
	third, ok := tree.ThirdPlaceMatch()
	require.True(t, ok)
	assert.Len(t, tree.Matches, 4)
	assert.Equal(t, 2, third.Round)
}

// checkTreeInvariants asserts the structural guarantees every single-elimination tree
// must keep, independent of the seeding policy.
func checkTreeInvariants(t *testing.T, n int, tree MatchTree) {
	t.Helper()

	require.Len(t, tree.Matches, n-1, "n=%d", n)

	rounds := make(map[string]int, len(tree.Matches))
	for _, m := range tree.Matches {
		rounds[m.ID] = m.Round
	}

	referenced := make(map[string]int)
	for _, m := range tree.Matches {
		assert.LessOrEqual(t, len(m.Participants), 2, "n=%d match %s", n, m.ID)
		if m.Round == 1 {
			assert.Nil(t, m.PrevMatchIDs, "n=%d round-1 match %s", n, m.ID)
		}
		for _, prev := range m.PrevMatchIDs {
			if prev == nil {
				continue
			}
			r, ok := rounds[*prev]
			require.True(t, ok, "n=%d unknown predecessor %s", n, *prev)
			assert.Less(t, r, m.Round, "n=%d predecessor %s of %s", n, *prev, m.ID)
			referenced[*prev]++
		}
	}

	nums := RoundNumbers(tree.Matches)
	for i, r := range nums {
		assert.Equal(t, i+1, r, "n=%d rounds must be consecutive", n)
	}
	last := tree.Round(len(nums))
	assert.Len(t, last, 1, "n=%d final round holds a single match", n)

	final, ok := tree.Final()
	require.True(t, ok)
	for _, m := range tree.Matches {
		if m.ID == final.ID {
			assert.Zero(t, referenced[m.ID], "n=%d final feeds nothing", n)
			continue
		}
		assert.Equal(t, 1, referenced[m.ID], "n=%d match %s must feed exactly one match", n, m.ID)
	}

	seen := make(map[string]int)
	for _, c := range tree.Seeds() {
		seen[c.ID]++
	}
	require.Len(t, seen, n, "n=%d every competitor is seeded", n)
	for id, count := range seen {
		assert.Equal(t, 1, count, "n=%d competitor %s", n, id)
	}
}

func TestBuildSingleElimination_Invariants(t *testing.T) {
	for n := 2; n <= 64; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			tree := buildSeq(n, false)
			checkTreeInvariants(t, n, tree)
			assert.Equal(t, testCompetitors(n), tree.Seeds(), "positional seeding keeps input order")
		})
	}
}

func TestBuildSingleElimination_StandardPolicyInvariants(t *testing.T) {
	for n := 2; n <= 64; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			checkTreeInvariants(t, n, buildSeq(n, false, WithSeedingPolicy(PolicyStandard)))
		})
	}
}

func TestBuildSingleElimination_StandardPolicyPairsTopAgainstBottom(t *testing.T) {
	tree := buildSeq(8, false, WithSeedingPolicy(PolicyStandard))

	round1 := tree.Round(1)
	require.Len(t, round1, 4)
	got := make([][2]string, len(round1))
	for i, m := range round1 {
		got[i] = [2]string{m.Participants[0].ID, m.Participants[1].ID}
	}
	assert.Equal(t, [][2]string{{"c1", "c8"}, {"c4", "c5"}, {"c2", "c7"}, {"c3", "c6"}}, got)
}

func TestBuildSingleElimination_StandardPolicyByesGoToTopSeeds(t *testing.T) {
	tree := buildSeq(5, false, WithSeedingPolicy(PolicyStandard))

	round1 := tree.Round(1)
	require.Len(t, round1, 1)
	assert.Equal(t, "c4", round1[0].Participants[0].ID)
	assert.Equal(t, "c5", round1[0].Participants[1].ID)

	semis := tree.Round(2)
	require.Len(t, semis, 2)
	assert.Equal(t, "c1", semis[0].Participants[0].ID)
	assert.Equal(t, []string{"", "m1"}, prevIDs(semis[0]))
	assert.Equal(t, []Competitor{{ID: "c2", Name: "Team 2"}, {ID: "c3", Name: "Team 3"}}, semis[1].Participants)
}

func TestBuildSingleElimination_FreshIDsPerBuild(t *testing.T) {
	a := BuildSingleElimination(testCompetitors(6), false)
	b := BuildSingleElimination(testCompetitors(6), false)

	ids := make(map[string]bool)
	for _, m := range append(a.Matches, b.Matches...) {
		assert.False(t, ids[m.ID], "duplicate id %s", m.ID)
		ids[m.ID] = true
	}
}

func TestStandardSeedOrder(t *testing.T) {
	assert.Equal(t, []int{1}, StandardSeedOrder(1))
	assert.Equal(t, []int{1, 2}, StandardSeedOrder(2))
	assert.Equal(t, []int{1, 4, 2, 3}, StandardSeedOrder(4))
	assert.Equal(t, []int{1, 8, 4, 5, 2, 7, 3, 6}, StandardSeedOrder(8))
}

func TestSingleEliminationGenerator(t *testing.T) {
	gen := NewSingleEliminationGenerator(WithIDGenerator(NewSequentialIDs("g")))
	assert.Equal(t, "SingleElimination", gen.GetName())

	tree, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{
		Competitors:        testCompetitors(4),
		HasThirdPlaceMatch: true,
	})
	require.NoError(t, err)
	assert.Len(t, tree.Matches, 4)
	assert.Equal(t, "g1", tree.Matches[0].ID)

	_, err = gen.GenerateBracket(context.Background(), GenerateBracketParams{Competitors: testCompetitors(1)})
	assert.ErrorIs(t, err, ErrNotEnoughCompetitors)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.GenerateBracket(ctx, GenerateBracketParams{Competitors: testCompetitors(4)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeneratorFor(t *testing.T) {
	gen, ok := GeneratorFor(FormatSingleElimination)
	require.True(t, ok)
	assert.Equal(t, "SingleElimination", gen.GetName())

	gen, ok = GeneratorFor(FormatFreeForAll)
	require.True(t, ok)
	assert.Equal(t, "FreeForAll", gen.GetName())

	_, ok = GeneratorFor(Format("double_elimination"))
	assert.False(t, ok)
}
