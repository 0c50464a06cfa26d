package brackets

import (
	"sort"
	"strconv"

	"github.com/Dosada05/tournament-brackets/models"
)

// ToGroupPayload converts a built tree into the outbound storage shape. Match temp ids are
// the tree's match ids; round temp ids are drawn from ids. Every round and match starts with
// the same schedule defaults.
func ToGroupPayload(groupID int, tree MatchTree, defaults models.Schedule, ids IDGenerator) models.GroupPayload {
	if ids == nil {
		ids = UUIDGenerator()
	}
	payload := models.GroupPayload{
		GroupID: groupID,
		Format:  models.BracketFormat(tree.Format),
		Rounds:  []models.RoundRecord{},
		Matches: []models.MatchRecord{},
	}

	for _, group := range GroupByRound(tree.Matches) {
		round := models.RoundRecord{
			TempID:      ids.NextID(),
			RoundNumber: group.Number,
			Schedule:    copySchedule(defaults),
		}
		payload.Rounds = append(payload.Rounds, round)

		for _, m := range group.Matches {
			record := models.MatchRecord{
				TempID:       m.ID,
				TempRoundID:  round.TempID,
				MatchNumber:  m.Number,
				Name:         m.Name,
				Participants: make([]models.RosterRef, len(m.Participants)),
				ThirdPlace:   m.ThirdPlace,
				Schedule:     copySchedule(defaults),
			}
			for i, p := range m.Participants {
				record.Participants[i] = models.RosterRef{RosterID: p.ID, Name: p.Name}
			}
			if m.PrevMatchIDs != nil {
				record.PrevTempMatchIDs = m.Clone().PrevMatchIDs
			}
			payload.Matches = append(payload.Matches, record)
		}
	}
	return payload
}

func copySchedule(s models.Schedule) models.Schedule {
	out := s
	if s.RefereeIDs != nil {
		out.RefereeIDs = append([]int64(nil), s.RefereeIDs...)
	}
	return out
}

// FromPersisted rebuilds a MatchTree from stored rounds and matches so it can be edited,
// laid out or diffed like a freshly built one. Match ids become the decimal database ids.
func FromPersisted(format Format, rounds []models.PersistedRound, matches []models.PersistedMatch, overview models.GroupOverview) MatchTree {
	tree := MatchTree{Format: format, Matches: make([]Match, 0, len(matches))}

	roundNumbers := make(map[int]int, len(rounds))
	for _, r := range rounds {
		roundNumbers[r.ID] = r.RoundNumber
	}

	for _, pm := range matches {
		m := Match{
			ID:           strconv.Itoa(pm.ID),
			Round:        roundNumbers[pm.RoundID],
			Number:       pm.MatchNumber,
			Name:         pm.Name,
			Participants: make([]Competitor, len(pm.Participants)),
			ThirdPlace:   pm.ThirdPlace,
		}
		for i, p := range pm.Participants {
			m.Participants[i] = Competitor{ID: p.RosterID, Name: p.Name}
		}

		if m.Round > 1 && !m.ThirdPlace && format == FormatSingleElimination {
			m.PrevMatchIDs = make([]*string, len(m.Participants))
			for slot, prev := range overview.PrevMatchIDs[pm.ID] {
				if slot >= len(m.PrevMatchIDs) {
					break
				}
				if prev != nil {
					m.PrevMatchIDs[slot] = stringPtr(strconv.Itoa(*prev))
				}
			}
		}
		tree.Matches = append(tree.Matches, m)
	}

	sort.SliceStable(tree.Matches, func(i, j int) bool {
		a, b := tree.Matches[i], tree.Matches[j]
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		if a.ThirdPlace != b.ThirdPlace {
			return !a.ThirdPlace
		}
		return a.Number < b.Number
	})
	return tree
}
