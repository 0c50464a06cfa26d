package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Dosada05/tournament-brackets/brackets"
	"github.com/Dosada05/tournament-brackets/metrics"
	"github.com/Dosada05/tournament-brackets/models"
	"github.com/Dosada05/tournament-brackets/realtime"
	"github.com/Dosada05/tournament-brackets/repositories"
	"github.com/Dosada05/tournament-brackets/storage"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentBuilds = 4

// Broadcaster pushes a message to everyone watching a room. *realtime.Hub implements it.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type GenerateBracketInput struct {
	Format             models.BracketFormat  `json:"format"`
	Competitors        []brackets.Competitor `json:"competitors"`
	HasThirdPlaceMatch bool                  `json:"has_third_place_match"`
	TotalRounds        int                   `json:"total_rounds"`
	SeedingPolicy      string                `json:"seeding_policy"`
	Defaults           models.Schedule       `json:"defaults"`
}

type CreateGroupInput struct {
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
	GenerateBracketInput
}

// BracketView is what every read and write operation returns: the group, its tree and the
// tree's layout.
type BracketView struct {
	Group  *models.BracketGroup `json:"group,omitempty"`
	Tree   brackets.MatchTree   `json:"tree"`
	Layout brackets.Graph       `json:"layout"`
}

type SnapshotResult struct {
	GroupID int    `json:"group_id"`
	Key     string `json:"key"`
	URL     string `json:"url"`
}

type BracketService interface {
	Preview(ctx context.Context, input GenerateBracketInput) (*BracketView, error)
	GenerateAndSave(ctx context.Context, groupID int, input GenerateBracketInput) (*BracketView, error)
	CreateGroups(ctx context.Context, inputs []CreateGroupInput) ([]*BracketView, error)
	GetBracket(ctx context.Context, groupID int) (*BracketView, error)
	ShuffleSeeds(ctx context.Context, groupID int, seed *uint64) (*BracketView, error)
	SetThirdPlaceMatch(ctx context.Context, groupID int, enabled bool) (*BracketView, error)
	ExportSnapshot(ctx context.Context, groupID int) (*SnapshotResult, error)
}

type bracketService struct {
	tx       repositories.TxRunner
	repo     repositories.BracketRepository
	hub      Broadcaster
	uploader storage.FileUploader
	metrics  *metrics.Collector
	layout   brackets.LayoutOptions
	logger   *slog.Logger

	newIDs func() brackets.IDGenerator
	now    func() time.Time
}

// NewBracketService wires the bracket use cases. hub, uploader and collector may be nil:
// broadcasts and metrics are then skipped and snapshot export reports ErrSnapshotsDisabled.
func NewBracketService(
	tx repositories.TxRunner,
	repo repositories.BracketRepository,
	hub Broadcaster,
	uploader storage.FileUploader,
	collector *metrics.Collector,
	layout brackets.LayoutOptions,
	logger *slog.Logger,
) BracketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bracketService{
		tx:       tx,
		repo:     repo,
		hub:      hub,
		uploader: uploader,
		metrics:  collector,
		layout:   layout,
		logger:   logger,
		newIDs:   brackets.UUIDGenerator,
		now:      time.Now,
	}
}

func (s *bracketService) Preview(ctx context.Context, input GenerateBracketInput) (*BracketView, error) {
	if err := validateGenerateInput(&input); err != nil {
		return nil, err
	}
	tree, err := s.build(ctx, "preview", input, s.newIDs())
	if err != nil {
		return nil, err
	}
	return s.view(nil, tree), nil
}

func (s *bracketService) GenerateAndSave(ctx context.Context, groupID int, input GenerateBracketInput) (*BracketView, error) {
	if err := validateGenerateInput(&input); err != nil {
		return nil, err
	}
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	start := s.now()
	tree, err := s.build(ctx, "generate", input, s.newIDs())
	if err != nil {
		return nil, err
	}

	group.Format = input.Format
	group.SeedingPolicy = string(brackets.ParseSeedingPolicy(input.SeedingPolicy))
	group.HasThirdPlaceMatch = hasThirdPlace(tree)
	group.TotalRounds = totalRoundsFor(input)

	err = s.tx.InTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.repo.UpdateGroupSettings(ctx, exec, group); err != nil {
			return handleRepositoryError(err)
		}
		return s.save(ctx, exec, group.ID, tree, input.Defaults)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save bracket for group %d: %w", groupID, err)
	}

	s.logger.InfoContext(ctx, "bracket generated",
		slog.Int("group_id", group.ID),
		slog.String("format", string(group.Format)),
		slog.Int("competitors", len(input.Competitors)),
		slog.Int("matches", len(tree.Matches)),
		slog.Duration("took", s.now().Sub(start)))

	view := s.view(group, tree)
	s.broadcast(group.ID, realtime.MessageBracketUpdated, view)
	return view, nil
}

// CreateGroups builds every group's tree concurrently, then stores all groups in one
// transaction so a batch is saved completely or not at all.
func (s *bracketService) CreateGroups(ctx context.Context, inputs []CreateGroupInput) ([]*BracketView, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one group is required", ErrValidationFailed)
	}
	names := make(map[string]bool, len(inputs))
	for i := range inputs {
		if inputs[i].Name == "" {
			return nil, fmt.Errorf("%w: group %d has no name", ErrValidationFailed, i)
		}
		key := strconv.Itoa(inputs[i].TournamentID) + "/" + inputs[i].Name
		if names[key] {
			return nil, fmt.Errorf("%w: group name %q repeated", ErrValidationFailed, inputs[i].Name)
		}
		names[key] = true
		if err := validateGenerateInput(&inputs[i].GenerateBracketInput); err != nil {
			return nil, fmt.Errorf("group %q: %w", inputs[i].Name, err)
		}
	}

	trees := make([]brackets.MatchTree, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBuilds)
	for i := range inputs {
		g.Go(func() error {
			tree, err := s.build(gctx, "batch", inputs[i].GenerateBracketInput, s.newIDs())
			if err != nil {
				return fmt.Errorf("group %q: %w", inputs[i].Name, err)
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	groups := make([]*models.BracketGroup, len(inputs))
	err := s.tx.InTx(ctx, func(exec repositories.SQLExecutor) error {
		for i, in := range inputs {
			group := &models.BracketGroup{
				TournamentID:       in.TournamentID,
				Name:               in.Name,
				Format:             in.Format,
				SeedingPolicy:      string(brackets.ParseSeedingPolicy(in.SeedingPolicy)),
				HasThirdPlaceMatch: hasThirdPlace(trees[i]),
				TotalRounds:        totalRoundsFor(in.GenerateBracketInput),
			}
			if err := s.repo.CreateGroup(ctx, exec, group); err != nil {
				return handleRepositoryError(err)
			}
			if err := s.save(ctx, exec, group.ID, trees[i], in.Defaults); err != nil {
				return err
			}
			groups[i] = group
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save bracket groups: %w", err)
	}

	views := make([]*BracketView, len(inputs))
	for i, group := range groups {
		views[i] = s.view(group, trees[i])
		s.broadcast(group.ID, realtime.MessageBracketUpdated, views[i])
	}
	s.logger.InfoContext(ctx, "bracket groups created", slog.Int("groups", len(groups)))
	return views, nil
}

func (s *bracketService) GetBracket(ctx context.Context, groupID int) (*BracketView, error) {
	group, tree, err := s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.view(group, tree), nil
}

// ShuffleSeeds re-randomizes the stored first round, including competitors that entered a
// later round through a bye. A nil seed uses the global random source.
func (s *bracketService) ShuffleSeeds(ctx context.Context, groupID int, seed *uint64) (*BracketView, error) {
	group, tree, err := s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if tree.IsEmpty() {
		return nil, ErrBracketNotGenerated
	}

	var rng brackets.RandomSource
	if seed != nil {
		rng = brackets.NewSeededSource(*seed)
	}
	shuffled := brackets.ShuffleSeeds(tree, rng)

	err = s.tx.InTx(ctx, func(exec repositories.SQLExecutor) error {
		for i, m := range shuffled.Matches {
			matchID, err := strconv.Atoi(m.ID)
			if err != nil {
				return fmt.Errorf("stored match id %q is not numeric: %w", m.ID, err)
			}
			for slot, c := range m.Participants {
				if c == tree.Matches[i].Participants[slot] {
					continue
				}
				ref := models.RosterRef{RosterID: c.ID, Name: c.Name}
				if err := s.repo.UpdateSlot(ctx, exec, matchID, slot, ref); err != nil {
					return handleRepositoryError(err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store shuffled seeds for group %d: %w", groupID, err)
	}

	view := s.view(group, shuffled)
	s.broadcast(groupID, realtime.MessageSeedsShuffled, view)
	return view, nil
}

// SetThirdPlaceMatch adds or removes the third-place match of a stored bracket without
// touching any other match.
func (s *bracketService) SetThirdPlaceMatch(ctx context.Context, groupID int, enabled bool) (*BracketView, error) {
	group, tree, err := s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.Format != models.BracketFormatSingleElimination {
		return nil, fmt.Errorf("%w: format %s", ErrThirdPlaceNotAllowed, group.Format)
	}
	if tree.IsEmpty() {
		return nil, ErrBracketNotGenerated
	}

	updated, err := brackets.SetThirdPlaceMatch(tree, enabled, s.newIDs())
	if err != nil {
		if errors.Is(err, brackets.ErrNoSemifinals) {
			return nil, fmt.Errorf("%w: %v", ErrThirdPlaceNotAllowed, err)
		}
		return nil, err
	}
	diff := brackets.Diff(tree, updated)
	if diff.IsEmpty() && group.HasThirdPlaceMatch == enabled {
		return s.view(group, tree), nil
	}

	rounds, err := s.repo.ListRounds(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds of group %d: %w", groupID, err)
	}
	roundIDs := make(map[int]models.PersistedRound, len(rounds))
	for _, r := range rounds {
		roundIDs[r.RoundNumber] = r
	}

	group.HasThirdPlaceMatch = enabled
	err = s.tx.InTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, m := range diff.Removed {
			id, err := strconv.Atoi(m.ID)
			if err != nil {
				return fmt.Errorf("stored match id %q is not numeric: %w", m.ID, err)
			}
			if err := s.repo.DeleteMatch(ctx, exec, id); err != nil {
				return handleRepositoryError(err)
			}
		}
		for _, m := range diff.Added {
			round, ok := roundIDs[m.Round]
			if !ok {
				return fmt.Errorf("round %d of group %d is not stored", m.Round, groupID)
			}
			record := models.MatchRecord{
				TempID:       m.ID,
				MatchNumber:  m.Number,
				Name:         m.Name,
				Participants: rosterRefs(m.Participants),
				ThirdPlace:   m.ThirdPlace,
				Schedule:     round.Schedule,
			}
			if _, err := s.repo.CreateMatch(ctx, exec, groupID, round.ID, record); err != nil {
				return handleRepositoryError(err)
			}
		}
		return s.repo.UpdateGroupSettings(ctx, exec, group)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update third place match of group %d: %w", groupID, err)
	}

	// Re-read so the returned tree carries database ids only.
	group, tree, err = s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	view := s.view(group, tree)
	s.broadcast(groupID, realtime.MessageThirdPlaceChanged, view)
	return view, nil
}

// ExportSnapshot uploads the current tree and layout as JSON and remembers the object key
// on the group. The previous snapshot, if any, is deleted afterwards.
func (s *bracketService) ExportSnapshot(ctx context.Context, groupID int) (*SnapshotResult, error) {
	if s.uploader == nil {
		return nil, ErrSnapshotsDisabled
	}
	view, err := s.GetBracket(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if view.Tree.IsEmpty() {
		return nil, ErrBracketNotGenerated
	}

	body, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot for group %d: %w", groupID, err)
	}

	key := storage.SnapshotKey(groupID, s.now())
	uploaded, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot for group %d: %w", groupID, err)
	}
	if err := s.repo.SetSnapshotKey(ctx, groupID, uploaded.Key); err != nil {
		return nil, handleRepositoryError(err)
	}

	if old := view.Group.SnapshotKey; old != nil && *old != "" && *old != uploaded.Key {
		if err := s.uploader.Delete(ctx, *old); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous snapshot",
				slog.Int("group_id", groupID), slog.String("key", *old), slog.Any("error", err))
		}
	}

	return &SnapshotResult{GroupID: groupID, Key: uploaded.Key, URL: uploaded.Location}, nil
}

func (s *bracketService) build(ctx context.Context, operation string, input GenerateBracketInput, ids brackets.IDGenerator) (brackets.MatchTree, error) {
	start := s.now()
	gen, ok := brackets.GeneratorFor(brackets.Format(input.Format),
		brackets.WithIDGenerator(ids),
		brackets.WithSeedingPolicy(brackets.ParseSeedingPolicy(input.SeedingPolicy)),
	)
	if !ok {
		return brackets.MatchTree{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, input.Format)
	}

	tree, err := gen.GenerateBracket(ctx, brackets.GenerateBracketParams{
		Competitors:        input.Competitors,
		HasThirdPlaceMatch: input.HasThirdPlaceMatch,
		TotalRounds:        input.TotalRounds,
	})
	s.metrics.ObserveBuild(string(input.Format), operation, len(tree.Matches), err, s.now().Sub(start))
	if err != nil {
		return brackets.MatchTree{}, fmt.Errorf("%s failed: %w", gen.GetName(), err)
	}
	return tree, nil
}

// save replaces the stored contents of a group with tree. Rounds and matches are inserted
// first; predecessor links need every match id and are written in a second pass.
func (s *bracketService) save(ctx context.Context, exec repositories.SQLExecutor, groupID int, tree brackets.MatchTree, defaults models.Schedule) error {
	if defaults.BestOf < 1 {
		defaults.BestOf = 1
	}
	payload := brackets.ToGroupPayload(groupID, tree, defaults, s.newIDs())

	if err := s.repo.ClearGroup(ctx, exec, groupID); err != nil {
		return fmt.Errorf("failed to clear group %d: %w", groupID, err)
	}

	roundIDs := make(map[string]int, len(payload.Rounds))
	for _, round := range payload.Rounds {
		id, err := s.repo.CreateRound(ctx, exec, groupID, round)
		if err != nil {
			return fmt.Errorf("failed to create round %d: %w", round.RoundNumber, handleRepositoryError(err))
		}
		roundIDs[round.TempID] = id
	}

	matchIDs := make(map[string]int, len(payload.Matches))
	for _, match := range payload.Matches {
		id, err := s.repo.CreateMatch(ctx, exec, groupID, roundIDs[match.TempRoundID], match)
		if err != nil {
			return fmt.Errorf("failed to create match %q: %w", match.Name, handleRepositoryError(err))
		}
		matchIDs[match.TempID] = id
	}

	for _, match := range payload.Matches {
		for slot, prev := range match.PrevTempMatchIDs {
			var prevID *int
			if prev != nil {
				id, ok := matchIDs[*prev]
				if !ok {
					return fmt.Errorf("match %q refers to unknown match %q", match.Name, *prev)
				}
				prevID = &id
			}
			if err := s.repo.LinkMatch(ctx, exec, matchIDs[match.TempID], slot, prevID); err != nil {
				return fmt.Errorf("failed to link match %q: %w", match.Name, handleRepositoryError(err))
			}
		}
	}
	return nil
}

// load reads a group and rebuilds its tree. Rounds, matches and links are fetched
// concurrently.
func (s *bracketService) load(ctx context.Context, groupID int) (*models.BracketGroup, brackets.MatchTree, error) {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, brackets.MatchTree{}, err
	}

	var (
		rounds   []models.PersistedRound
		matches  []models.PersistedMatch
		overview models.GroupOverview
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rounds, err = s.repo.ListRounds(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.repo.ListMatches(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		overview, err = s.repo.GetOverview(gctx, groupID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, brackets.MatchTree{}, fmt.Errorf("failed to load bracket of group %d: %w", groupID, err)
	}

	tree := brackets.FromPersisted(brackets.Format(group.Format), rounds, matches, overview)
	return group, tree, nil
}

func (s *bracketService) getGroup(ctx context.Context, groupID int) (*models.BracketGroup, error) {
	group, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if s.uploader != nil && group.SnapshotKey != nil {
		url := s.uploader.GetPublicURL(*group.SnapshotKey)
		group.SnapshotURL = &url
	}
	return group, nil
}

func (s *bracketService) view(group *models.BracketGroup, tree brackets.MatchTree) *BracketView {
	return &BracketView{
		Group:  group,
		Tree:   tree,
		Layout: brackets.Layout(tree, s.layout),
	}
}

func (s *bracketService) broadcast(groupID int, messageType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	room := realtime.RoomForGroup(groupID)
	s.hub.BroadcastToRoom(room, realtime.Message{Type: messageType, Payload: payload, RoomID: room})
	s.metrics.ObserveBroadcast()
}
