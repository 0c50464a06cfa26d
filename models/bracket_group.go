package models

import "time"

type BracketFormat string

const (
	BracketFormatSingleElimination BracketFormat = "single_elimination"
	BracketFormatFreeForAll        BracketFormat = "free_for_all"
)

// BracketGroup is one bracket inside a tournament stage. Its rounds and matches hang off it.
type BracketGroup struct {
	ID                 int           `json:"id" db:"id"`
	TournamentID       int           `json:"tournament_id" db:"tournament_id"`
	Name               string        `json:"name" db:"name"`
	Format             BracketFormat `json:"format" db:"format"`
	SeedingPolicy      string        `json:"seeding_policy" db:"seeding_policy"`
	HasThirdPlaceMatch bool          `json:"has_third_place_match" db:"has_third_place_match"`
	TotalRounds        int           `json:"total_rounds" db:"total_rounds"` // free-for-all only
	SnapshotKey        *string       `json:"-" db:"snapshot_key"`
	SnapshotURL        *string       `json:"snapshot_url,omitempty" db:"-"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`
}

// GroupOverview maps a persisted match id to the persisted ids feeding each of its slots.
// A nil entry is a bye feed.
type GroupOverview struct {
	GroupID      int            `json:"group_id"`
	PrevMatchIDs map[int][]*int `json:"prev_match_ids"`
}
