package models

import "time"

type MatchStatus string

const (
	StatusScheduled      MatchStatus = "scheduled"
	StatusInProgress     MatchStatus = "in_progress"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCanceled  MatchStatus = "canceled"
)

// RosterRef fills one participant slot. An empty RosterID is an unassigned slot.
type RosterRef struct {
	RosterID string `json:"rosterId"`
	Name     string `json:"name,omitempty"`
}

// MatchRecord is the outbound shape of a match. TempID, TempRoundID and PrevTempMatchIDs
// are the ids generated by the builder.
type MatchRecord struct {
	TempID           string      `json:"tempId"`
	TempRoundID      string      `json:"tempRoundId"`
	MatchNumber      int         `json:"matchNumber"`
	Name             string      `json:"name"`
	Participants     []RosterRef `json:"participants"`
	PrevTempMatchIDs []*string   `json:"prevTempMatchIds"`
	ThirdPlace       bool        `json:"thirdPlace,omitempty"`
	Schedule
}

// GroupPayload is everything one bracket group sends to storage.
type GroupPayload struct {
	GroupID int           `json:"groupId"`
	Format  BracketFormat `json:"format"`
	Rounds  []RoundRecord `json:"rounds"`
	Matches []MatchRecord `json:"matches"`
}

// StoragePayload is the outbound document for one save, grouped per bracket group.
type StoragePayload struct {
	Groups []GroupPayload `json:"groups"`
}

// PersistedMatch is a match as stored. Predecessors live in GroupOverview.
type PersistedMatch struct {
	ID           int         `json:"id" db:"id"`
	GroupID      int         `json:"group_id" db:"group_id"`
	RoundID      int         `json:"round_id" db:"round_id"`
	MatchNumber  int         `json:"match_number" db:"match_number"`
	Name         string      `json:"name" db:"name"`
	TempID       *string     `json:"temp_id,omitempty" db:"temp_id"`
	ThirdPlace   bool        `json:"third_place" db:"third_place"`
	Status       MatchStatus `json:"status" db:"status"`
	Participants []RosterRef `json:"participants" db:"-"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	Schedule
}
