package models

// Schedule holds the fields an organizer fills in per round or per match after generation.
// Dates travel as "2006-01-02" and times as "15:04".
type Schedule struct {
	BestOf        int     `json:"bestOf"`
	ScheduledDate *string `json:"scheduledDate"`
	ScheduledTime *string `json:"scheduledTime"`
	Venue         *string `json:"venue"`
	RefereeIDs    []int64 `json:"refereeIds"`
}

// RoundRecord is the outbound shape of a round, keyed by the builder's temporary id.
type RoundRecord struct {
	TempID      string `json:"tempId"`
	RoundNumber int    `json:"roundNumber"`
	Schedule
}

// PersistedRound is a round as stored, keyed by its database id.
type PersistedRound struct {
	ID          int `json:"id" db:"id"`
	GroupID     int `json:"group_id" db:"group_id"`
	RoundNumber int `json:"round_number" db:"round_number"`
	Schedule
}
