package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-brackets/brackets"
	"github.com/Dosada05/tournament-brackets/metrics"
	"github.com/Dosada05/tournament-brackets/models"
	"github.com/Dosada05/tournament-brackets/realtime"
)

type testEnv struct {
	svc      *bracketService
	repo     *memoryRepo
	tx       *directTx
	hub      *recordingHub
	uploader *memoryUploader
}

func newTestEnv(t *testing.T, withUploader bool) *testEnv {
	t.Helper()
	env := &testEnv{
		repo: newMemoryRepo(),
		tx:   &directTx{},
		hub:  &recordingHub{},
	}
	var svc BracketService
	if withUploader {
		env.uploader = newMemoryUploader()
		svc = NewBracketService(env.tx, env.repo, env.hub, env.uploader, metrics.NewCollector(), brackets.LayoutOptions{}, discardLogger())
	} else {
		svc = NewBracketService(env.tx, env.repo, env.hub, nil, nil, brackets.LayoutOptions{}, discardLogger())
	}
	env.svc = svc.(*bracketService)

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env.svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return env
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func competitors(n int) []brackets.Competitor {
	out := make([]brackets.Competitor, n)
	for i := range out {
		out[i] = brackets.Competitor{ID: fmt.Sprintf("roster-%d", i+1), Name: fmt.Sprintf("Team %d", i+1)}
	}
	return out
}

func (e *testEnv) createGroup(t *testing.T, name string) int {
	t.Helper()
	group := &models.BracketGroup{TournamentID: 1, Name: name, Format: models.BracketFormatSingleElimination}
	require.NoError(t, e.repo.CreateGroup(context.Background(), nil, group))
	return group.ID
}

func seedIDs(tree brackets.MatchTree) []string {
	var ids []string
	for _, c := range tree.Seeds() {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	return ids
}

func TestPreview(t *testing.T) {
	env := newTestEnv(t, false)

	view, err := env.svc.Preview(context.Background(), GenerateBracketInput{Competitors: competitors(5)})
	require.NoError(t, err)

	assert.Nil(t, view.Group)
	assert.Equal(t, brackets.FormatSingleElimination, view.Tree.Format)
	assert.Len(t, view.Tree.Matches, 4)
	assert.Len(t, view.Layout.Nodes, 4)
	assert.Zero(t, env.tx.calls)
	assert.Empty(t, env.hub.sent)
}

func TestPreview_FreeForAll(t *testing.T) {
	env := newTestEnv(t, false)

	view, err := env.svc.Preview(context.Background(), GenerateBracketInput{
		Format:      models.BracketFormatFreeForAll,
		Competitors: competitors(6),
		TotalRounds: 3,
	})
	require.NoError(t, err)
	assert.Len(t, view.Tree.Matches, 3)
	assert.Empty(t, view.Layout.Edges)
}

func TestPreview_Validation(t *testing.T) {
	date := "01.05.2024"
	tests := []struct {
		name  string
		input GenerateBracketInput
		want  error
	}{
		{"one competitor", GenerateBracketInput{Competitors: competitors(1)}, ErrNotEnoughCompetitors},
		{"unknown format", GenerateBracketInput{Format: "swiss", Competitors: competitors(4)}, ErrUnsupportedFormat},
		{"unknown policy", GenerateBracketInput{Competitors: competitors(4), SeedingPolicy: "random"}, ErrValidationFailed},
		{"duplicate", GenerateBracketInput{Competitors: append(competitors(3), competitors(1)...)}, ErrDuplicateCompetitor},
		{"missing id", GenerateBracketInput{Competitors: []brackets.Competitor{{Name: "a"}, {ID: "b"}}}, ErrValidationFailed},
		{"ffa without rounds", GenerateBracketInput{Format: models.BracketFormatFreeForAll, Competitors: competitors(4)}, ErrInvalidRoundCount},
		{"ffa third place", GenerateBracketInput{Format: models.BracketFormatFreeForAll, Competitors: competitors(4), TotalRounds: 2, HasThirdPlaceMatch: true}, ErrThirdPlaceNotAllowed},
		{"even best of", GenerateBracketInput{Competitors: competitors(4), Defaults: models.Schedule{BestOf: 2}}, ErrValidationFailed},
		{"bad date", GenerateBracketInput{Competitors: competitors(4), Defaults: models.Schedule{ScheduledDate: &date}}, ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, false)
			_, err := env.svc.Preview(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateAndSave_RoundTrip(t *testing.T) {
	env := newTestEnv(t, false)
	groupID := env.createGroup(t, "Group A")
	ctx := context.Background()

	generated, err := env.svc.GenerateAndSave(ctx, groupID, GenerateBracketInput{
		Competitors:        competitors(10),
		HasThirdPlaceMatch: true,
		Defaults:           models.Schedule{BestOf: 3},
	})
	require.NoError(t, err)
	assert.True(t, generated.Group.HasThirdPlaceMatch)
	assert.Equal(t, string(brackets.PolicyDeviationTable), generated.Group.SeedingPolicy)

	loaded, err := env.svc.GetBracket(ctx, groupID)
	require.NoError(t, err)
	assert.True(t, brackets.Diff(generated.Tree, loaded.Tree).IsEmpty())
	assert.Len(t, loaded.Layout.Nodes, len(generated.Tree.Matches))

	require.Len(t, env.hub.sent, 1)
	assert.Equal(t, realtime.RoomForGroup(groupID), env.hub.sent[0].room)
	msg := env.hub.sent[0].message.(realtime.Message)
	assert.Equal(t, realtime.MessageBracketUpdated, msg.Type)

	rounds, err := env.repo.ListRounds(ctx, groupID)
	require.NoError(t, err)
	assert.Len(t, rounds, 4)
	assert.Equal(t, 3, rounds[0].BestOf)
}

func TestGenerateAndSave_Regenerate(t *testing.T) {
	env := newTestEnv(t, false)
	groupID := env.createGroup(t, "Group A")
	ctx := context.Background()

	_, err := env.svc.GenerateAndSave(ctx, groupID, GenerateBracketInput{Competitors: competitors(16)})
	require.NoError(t, err)
	_, err = env.svc.GenerateAndSave(ctx, groupID, GenerateBracketInput{Competitors: competitors(4)})
	require.NoError(t, err)

	assert.Equal(t, 3, env.repo.matchCount(groupID))
}

func TestGenerateAndSave_MissingGroup(t *testing.T) {
	env := newTestEnv(t, false)
	_, err := env.svc.GenerateAndSave(context.Background(), 404, GenerateBracketInput{Competitors: competitors(4)})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, env.tx.calls)
}

func TestCreateGroups(t *testing.T) {
	env := newTestEnv(t, false)
	inputs := []CreateGroupInput{
		{TournamentID: 1, Name: "A", GenerateBracketInput: GenerateBracketInput{Competitors: competitors(8), HasThirdPlaceMatch: true}},
		{TournamentID: 1, Name: "B", GenerateBracketInput: GenerateBracketInput{Competitors: competitors(13), SeedingPolicy: "standard"}},
		{TournamentID: 1, Name: "C", GenerateBracketInput: GenerateBracketInput{Format: models.BracketFormatFreeForAll, Competitors: competitors(6), TotalRounds: 3}},
	}

	views, err := env.svc.CreateGroups(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Len(t, views[0].Tree.Matches, 8)
	assert.Len(t, views[1].Tree.Matches, 12)
	assert.Equal(t, string(brackets.PolicyStandard), views[1].Group.SeedingPolicy)
	assert.Equal(t, 3, views[2].Group.TotalRounds)
	assert.Equal(t, 1, env.tx.calls, "one transaction for the whole batch")
	assert.Len(t, env.hub.sent, 3)

	for _, v := range views {
		loaded, err := env.svc.GetBracket(context.Background(), v.Group.ID)
		require.NoError(t, err)
		assert.True(t, brackets.Diff(v.Tree, loaded.Tree).IsEmpty(), "group %s", v.Group.Name)
	}
}

func TestCreateGroups_InvalidInputStoresNothing(t *testing.T) {
	env := newTestEnv(t, false)
	inputs := []CreateGroupInput{
		{TournamentID: 1, Name: "A", GenerateBracketInput: GenerateBracketInput{Competitors: competitors(8)}},
		{TournamentID: 1, Name: "B", GenerateBracketInput: GenerateBracketInput{Competitors: competitors(1)}},
	}

	_, err := env.svc.CreateGroups(context.Background(), inputs)
	assert.ErrorIs(t, err, ErrNotEnoughCompetitors)
	assert.Zero(t, env.tx.calls)

	_, err = env.svc.CreateGroups(context.Background(), nil)
	assert.ErrorIs(t, err, ErrValidationFailed)

	dup := []CreateGroupInput{inputs[0], inputs[0]}
	_, err = env.svc.CreateGroups(context.Background(), dup)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestShuffleSeeds(t *testing.T) {
	env := newTestEnv(t, false)
	groupID := env.createGroup(t, "Group A")
	ctx := context.Background()

	generated, err := env.svc.GenerateAndSave(ctx, groupID, GenerateBracketInput{Competitors: competitors(7)})
	require.NoError(t, err)

	seed := uint64(99)
	shuffled, err := env.svc.ShuffleSeeds(ctx, groupID, &seed)
	require.NoError(t, err)
	assert.Equal(t, seedIDs(generated.Tree), seedIDs(shuffled.Tree))

	loaded, err := env.svc.GetBracket(ctx, groupID)
	require.NoError(t, err)
	assert.True(t, brackets.Diff(shuffled.Tree, loaded.Tree).IsEmpty(), "stored tree matches the returned one")

	last := env.hub.sent[len(env.hub.sent)-1].message.(realtime.Message)
	assert.Equal(t, realtime.MessageSeedsShuffled, last.Type)
}

func TestShuffleSeeds_NotGenerated(t *testing.T) {
	env := newTestEnv(t, false)
	groupID := env.createGroup(t, "Empty")

	_, err := env.svc.ShuffleSeeds(context.Background(), groupID, nil)
	assert.ErrorIs(t, err, ErrBracketNotGenerated)
}

func TestSetThirdPlaceMatch(t *testing.T) {
	env := newTestEnv(t, false)
	groupID := env.createGroup(t, "Group A")
	ctx := context.Background()

	_, err := env.svc.GenerateAndSave(ctx, groupID, GenerateBracketInput{Competitors: competitors(6)})
	require.NoError(t, err)
	require.Equal(t, 5, env.repo.matchCount(groupID))

	view, err := env.svc.SetThirdPlaceMatch(ctx, groupID, true)
	require.NoError(t, err)
	assert.True(t, view.Group.HasThirdPlaceMatch)
	assert.Equal(t, 6, env.repo.matchCount(groupID))
	third, ok := view.Tree.ThirdPlaceMatch()
	require.True(t, ok)
	final, _ := view.Tree.Final()
	assert.Equal(t, final.Round, third.Round)

	fresh := brackets.BuildSingleElimination(competitors(6), true)
	assert.True(t, brackets.Diff(fresh, view.Tree).IsEmpty())

	view, err = env.svc.SetThirdPlaceMatch(ctx, groupID, false)
	require.NoError(t, err)
	assert.False(t, view.Group.HasThirdPlaceMatch)
	assert.Equal(t, 5, env.repo.matchCount(groupID))
}

func TestSetThirdPlaceMatch_NotAllowed(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	small := env.createGroup(t, "Small")
	_, err := env.svc.GenerateAndSave(ctx, small, GenerateBracketInput{Competitors: competitors(3)})
	require.NoError(t, err)
	_, err = env.svc.SetThirdPlaceMatch(ctx, small, true)
	assert.ErrorIs(t, err, ErrThirdPlaceNotAllowed)

	ffa := env.createGroup(t, "FFA")
	_, err = env.svc.GenerateAndSave(ctx, ffa, GenerateBracketInput{
		Format: models.BracketFormatFreeForAll, Competitors: competitors(4), TotalRounds: 2,
	})
	require.NoError(t, err)
	_, err = env.svc.SetThirdPlaceMatch(ctx, ffa, true)
	assert.ErrorIs(t, err, ErrThirdPlaceNotAllowed)
}

func TestExportSnapshot(t *testing.T) {
	env := newTestEnv(t, true)
	groupID := env.createGroup(t, "Group A")
	ctx := context.Background()

	_, err := env.svc.GenerateAndSave(ctx, groupID, GenerateBracketInput{Competitors: competitors(4)})
	require.NoError(t, err)

	first, err := env.svc.ExportSnapshot(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/"+first.Key, first.URL)

	var stored BracketView
	require.NoError(t, json.Unmarshal(env.uploader.objects[first.Key], &stored))
	assert.Len(t, stored.Layout.Nodes, 3)

	second, err := env.svc.ExportSnapshot(ctx, groupID)
	require.NoError(t, err)
	assert.NotEqual(t, first.Key, second.Key)
	assert.Equal(t, []string{first.Key}, env.uploader.deleted)

	view, err := env.svc.GetBracket(ctx, groupID)
	require.NoError(t, err)
	require.NotNil(t, view.Group.SnapshotURL)
	assert.Equal(t, second.URL, *view.Group.SnapshotURL)
}

func TestExportSnapshot_Disabled(t *testing.T) {
	env := newTestEnv(t, false)
	groupID := env.createGroup(t, "Group A")

	_, err := env.svc.ExportSnapshot(context.Background(), groupID)
	assert.ErrorIs(t, err, ErrSnapshotsDisabled)
}
