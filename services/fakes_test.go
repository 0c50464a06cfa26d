package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/Dosada05/tournament-brackets/models"
	"github.com/Dosada05/tournament-brackets/repositories"
	"github.com/Dosada05/tournament-brackets/storage"
)

// memoryRepo is an in-memory BracketRepository. Writes made through a failed InTx are not
// rolled back; tests that need atomicity check the failure happens before any write.
type memoryRepo struct {
	mu      sync.Mutex
	nextID  int
	groups  map[int]models.BracketGroup
	rounds  map[int]models.PersistedRound
	matches map[int]models.PersistedMatch
	links   map[int][]*int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		groups:  make(map[int]models.BracketGroup),
		rounds:  make(map[int]models.PersistedRound),
		matches: make(map[int]models.PersistedMatch),
		links:   make(map[int][]*int),
	}
}

func (r *memoryRepo) id() int {
	r.nextID++
	return r.nextID
}

func (r *memoryRepo) CreateGroup(_ context.Context, _ repositories.SQLExecutor, group *models.BracketGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.groups {
		if g.TournamentID == group.TournamentID && g.Name == group.Name {
			return repositories.ErrBracketGroupNameConflict
		}
	}
	group.ID = r.id()
	r.groups[group.ID] = *group
	return nil
}

func (r *memoryRepo) GetGroup(_ context.Context, id int) (*models.BracketGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return nil, repositories.ErrBracketGroupNotFound
	}
	return &g, nil
}

func (r *memoryRepo) UpdateGroupSettings(_ context.Context, _ repositories.SQLExecutor, group *models.BracketGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[group.ID]; !ok {
		return repositories.ErrBracketGroupNotFound
	}
	r.groups[group.ID] = *group
	return nil
}

func (r *memoryRepo) SetSnapshotKey(_ context.Context, groupID int, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[groupID]
	if !ok {
		return repositories.ErrBracketGroupNotFound
	}
	g.SnapshotKey = &key
	r.groups[groupID] = g
	return nil
}

func (r *memoryRepo) ClearGroup(_ context.Context, _ repositories.SQLExecutor, groupID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, round := range r.rounds {
		if round.GroupID == groupID {
			delete(r.rounds, id)
		}
	}
	for id, m := range r.matches {
		if m.GroupID == groupID {
			delete(r.matches, id)
			delete(r.links, id)
		}
	}
	return nil
}

func (r *memoryRepo) CreateRound(_ context.Context, _ repositories.SQLExecutor, groupID int, round models.RoundRecord) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.id()
	r.rounds[id] = models.PersistedRound{ID: id, GroupID: groupID, RoundNumber: round.RoundNumber, Schedule: round.Schedule}
	return id, nil
}

func (r *memoryRepo) CreateMatch(_ context.Context, _ repositories.SQLExecutor, groupID, roundID int, match models.MatchRecord) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.id()
	tempID := match.TempID
	r.matches[id] = models.PersistedMatch{
		ID:           id,
		GroupID:      groupID,
		RoundID:      roundID,
		MatchNumber:  match.MatchNumber,
		Name:         match.Name,
		TempID:       &tempID,
		ThirdPlace:   match.ThirdPlace,
		Status:       models.StatusScheduled,
		Participants: append([]models.RosterRef(nil), match.Participants...),
		Schedule:     match.Schedule,
	}
	return id, nil
}

func (r *memoryRepo) LinkMatch(_ context.Context, _ repositories.SQLExecutor, matchID, slot int, prevMatchID *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	links := r.links[matchID]
	for len(links) <= slot {
		links = append(links, nil)
	}
	links[slot] = prevMatchID
	r.links[matchID] = links
	return nil
}

func (r *memoryRepo) UpdateSlot(_ context.Context, _ repositories.SQLExecutor, matchID, slot int, roster models.RosterRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[matchID]
	if !ok || slot >= len(m.Participants) {
		return repositories.ErrBracketMatchNotFound
	}
	m.Participants[slot] = roster
	return nil
}

func (r *memoryRepo) DeleteMatch(_ context.Context, _ repositories.SQLExecutor, matchID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[matchID]; !ok {
		return repositories.ErrBracketMatchNotFound
	}
	delete(r.matches, matchID)
	delete(r.links, matchID)
	return nil
}

func (r *memoryRepo) ListRounds(_ context.Context, groupID int) ([]models.PersistedRound, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.PersistedRound{}
	for _, round := range r.rounds {
		if round.GroupID == groupID {
			out = append(out, round)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoundNumber < out[j].RoundNumber })
	return out, nil
}

func (r *memoryRepo) ListMatches(_ context.Context, groupID int) ([]models.PersistedMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.PersistedMatch{}
	for _, m := range r.matches {
		if m.GroupID == groupID {
			m.Participants = append([]models.RosterRef(nil), m.Participants...)
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) GetOverview(_ context.Context, groupID int) (models.GroupOverview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	overview := models.GroupOverview{GroupID: groupID, PrevMatchIDs: map[int][]*int{}}
	for id, links := range r.links {
		if r.matches[id].GroupID == groupID {
			overview.PrevMatchIDs[id] = append([]*int(nil), links...)
		}
	}
	return overview, nil
}

func (r *memoryRepo) matchCount(groupID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.matches {
		if m.GroupID == groupID {
			n++
		}
	}
	return n
}

type directTx struct {
	calls int
}

func (t *directTx) InTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	t.calls++
	return fn(nil)
}

type sentMessage struct {
	room    string
	message interface{}
}

type recordingHub struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (h *recordingHub) BroadcastToRoom(roomID string, message interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, sentMessage{room: roomID, message: message})
}

type memoryUploader struct {
	objects map[string][]byte
	deleted []string
	failOn  string
}

func newMemoryUploader() *memoryUploader {
	return &memoryUploader{objects: make(map[string][]byte)}
}

func (u *memoryUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	if key == u.failOn {
		return nil, errors.New("upload failed")
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.objects[key] = body
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) Delete(_ context.Context, key string) error {
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
