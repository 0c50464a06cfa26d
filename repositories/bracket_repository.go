package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-brackets/models"
	"github.com/lib/pq"
)

var (
	ErrBracketGroupNotFound     = errors.New("bracket group not found")
	ErrBracketGroupNameConflict = errors.New("bracket group name already used in this tournament")
	ErrBracketMatchNotFound     = errors.New("bracket match not found")
	ErrBracketRoundConflict     = errors.New("bracket round or match number already exists")
)

type BracketRepository interface {
	CreateGroup(ctx context.Context, exec SQLExecutor, group *models.BracketGroup) error
	GetGroup(ctx context.Context, id int) (*models.BracketGroup, error)
	UpdateGroupSettings(ctx context.Context, exec SQLExecutor, group *models.BracketGroup) error
	SetSnapshotKey(ctx context.Context, groupID int, key string) error
	ClearGroup(ctx context.Context, exec SQLExecutor, groupID int) error

	CreateRound(ctx context.Context, exec SQLExecutor, groupID int, round models.RoundRecord) (int, error)
	CreateMatch(ctx context.Context, exec SQLExecutor, groupID, roundID int, match models.MatchRecord) (int, error)
	LinkMatch(ctx context.Context, exec SQLExecutor, matchID, slot int, prevMatchID *int) error
	UpdateSlot(ctx context.Context, exec SQLExecutor, matchID, slot int, roster models.RosterRef) error
	DeleteMatch(ctx context.Context, exec SQLExecutor, matchID int) error

	ListRounds(ctx context.Context, groupID int) ([]models.PersistedRound, error)
	ListMatches(ctx context.Context, groupID int) ([]models.PersistedMatch, error)
	GetOverview(ctx context.Context, groupID int) (models.GroupOverview, error)
}

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) CreateGroup(ctx context.Context, exec SQLExecutor, group *models.BracketGroup) error {
	query := `
		INSERT INTO bracket_groups
			(tournament_id, name, format, seeding_policy, has_third_place_match, total_rounds)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := exec.QueryRowContext(ctx, query,
		group.TournamentID,
		group.Name,
		group.Format,
		group.SeedingPolicy,
		group.HasThirdPlaceMatch,
		group.TotalRounds,
	).Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)

	return r.handleBracketError(err)
}

func (r *postgresBracketRepository) GetGroup(ctx context.Context, id int) (*models.BracketGroup, error) {
	query := `
		SELECT id, tournament_id, name, format, seeding_policy, has_third_place_match,
		       total_rounds, snapshot_key, created_at, updated_at
		FROM bracket_groups
		WHERE id = $1`

	group := &models.BracketGroup{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.TournamentID,
		&group.Name,
		&group.Format,
		&group.SeedingPolicy,
		&group.HasThirdPlaceMatch,
		&group.TotalRounds,
		&group.SnapshotKey,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (r *postgresBracketRepository) UpdateGroupSettings(ctx context.Context, exec SQLExecutor, group *models.BracketGroup) error {
	query := `
		UPDATE bracket_groups
		SET format = $1, seeding_policy = $2, has_third_place_match = $3, total_rounds = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	err := exec.QueryRowContext(ctx, query,
		group.Format,
		group.SeedingPolicy,
		group.HasThirdPlaceMatch,
		group.TotalRounds,
		group.ID,
	).Scan(&group.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBracketGroupNotFound
	}
	return r.handleBracketError(err)
}

func (r *postgresBracketRepository) SetSnapshotKey(ctx context.Context, groupID int, key string) error {
	query := `UPDATE bracket_groups SET snapshot_key = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, key, groupID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketGroupNotFound)
}

// ClearGroup removes every round of the group; matches, slots and links cascade.
func (r *postgresBracketRepository) ClearGroup(ctx context.Context, exec SQLExecutor, groupID int) error {
	_, err := exec.ExecContext(ctx, `DELETE FROM bracket_rounds WHERE group_id = $1`, groupID)
	return err
}

func (r *postgresBracketRepository) CreateRound(ctx context.Context, exec SQLExecutor, groupID int, round models.RoundRecord) (int, error) {
	query := `
		INSERT INTO bracket_rounds
			(group_id, round_number, best_of, scheduled_date, scheduled_time, venue, referee_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int
	err := exec.QueryRowContext(ctx, query,
		groupID,
		round.RoundNumber,
		round.BestOf,
		round.ScheduledDate,
		round.ScheduledTime,
		round.Venue,
		pq.Array(nonNilIDs(round.RefereeIDs)),
	).Scan(&id)
	return id, r.handleBracketError(err)
}

// CreateMatch inserts the match row and one slot row per participant. Links are written
// separately with LinkMatch once every match of the group has an id.
func (r *postgresBracketRepository) CreateMatch(ctx context.Context, exec SQLExecutor, groupID, roundID int, match models.MatchRecord) (int, error) {
	query := `
		INSERT INTO bracket_matches
			(group_id, round_id, match_number, name, temp_id, third_place,
			 best_of, scheduled_date, scheduled_time, venue, referee_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id int
	err := exec.QueryRowContext(ctx, query,
		groupID,
		roundID,
		match.MatchNumber,
		match.Name,
		match.TempID,
		match.ThirdPlace,
		match.BestOf,
		match.ScheduledDate,
		match.ScheduledTime,
		match.Venue,
		pq.Array(nonNilIDs(match.RefereeIDs)),
	).Scan(&id)
	if err != nil {
		return 0, r.handleBracketError(err)
	}

	slotQuery := `
		INSERT INTO bracket_match_slots (match_id, slot, roster_id, roster_name)
		VALUES ($1, $2, $3, $4)`
	for slot, p := range match.Participants {
		if _, err := exec.ExecContext(ctx, slotQuery, id, slot, p.RosterID, p.Name); err != nil {
			return 0, fmt.Errorf("failed to insert slot %d of match %d: %w", slot, id, err)
		}
	}
	return id, nil
}

func (r *postgresBracketRepository) LinkMatch(ctx context.Context, exec SQLExecutor, matchID, slot int, prevMatchID *int) error {
	query := `
		INSERT INTO bracket_match_links (match_id, slot, prev_match_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_id, slot) DO UPDATE SET prev_match_id = EXCLUDED.prev_match_id`
	_, err := exec.ExecContext(ctx, query, matchID, slot, prevMatchID)
	return r.handleBracketError(err)
}

func (r *postgresBracketRepository) UpdateSlot(ctx context.Context, exec SQLExecutor, matchID, slot int, roster models.RosterRef) error {
	query := `
		UPDATE bracket_match_slots
		SET roster_id = $1, roster_name = $2
		WHERE match_id = $3 AND slot = $4`
	result, err := exec.ExecContext(ctx, query, roster.RosterID, roster.Name, matchID, slot)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

func (r *postgresBracketRepository) DeleteMatch(ctx context.Context, exec SQLExecutor, matchID int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM bracket_matches WHERE id = $1`, matchID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

func (r *postgresBracketRepository) ListRounds(ctx context.Context, groupID int) ([]models.PersistedRound, error) {
	query := `
		SELECT id, group_id, round_number, best_of,
		       to_char(scheduled_date, 'YYYY-MM-DD'), to_char(scheduled_time, 'HH24:MI'),
		       venue, referee_ids
		FROM bracket_rounds
		WHERE group_id = $1
		ORDER BY round_number ASC`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]models.PersistedRound, 0)
	for rows.Next() {
		var round models.PersistedRound
		if err := rows.Scan(
			&round.ID,
			&round.GroupID,
			&round.RoundNumber,
			&round.BestOf,
			&round.ScheduledDate,
			&round.ScheduledTime,
			&round.Venue,
			pq.Array(&round.RefereeIDs),
		); err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *postgresBracketRepository) ListMatches(ctx context.Context, groupID int) ([]models.PersistedMatch, error) {
	query := `
		SELECT id, group_id, round_id, match_number, name, temp_id, third_place, status, best_of,
		       to_char(scheduled_date, 'YYYY-MM-DD'), to_char(scheduled_time, 'HH24:MI'),
		       venue, referee_ids, created_at
		FROM bracket_matches
		WHERE group_id = $1
		ORDER BY round_id ASC, third_place ASC, match_number ASC`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.PersistedMatch, 0)
	index := make(map[int]int)
	for rows.Next() {
		var m models.PersistedMatch
		if err := rows.Scan(
			&m.ID,
			&m.GroupID,
			&m.RoundID,
			&m.MatchNumber,
			&m.Name,
			&m.TempID,
			&m.ThirdPlace,
			&m.Status,
			&m.BestOf,
			&m.ScheduledDate,
			&m.ScheduledTime,
			&m.Venue,
			pq.Array(&m.RefereeIDs),
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		m.Participants = []models.RosterRef{}
		index[m.ID] = len(matches)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slotQuery := `
		SELECT s.match_id, s.roster_id, s.roster_name
		FROM bracket_match_slots s
		JOIN bracket_matches m ON m.id = s.match_id
		WHERE m.group_id = $1
		ORDER BY s.match_id ASC, s.slot ASC`

	slotRows, err := r.db.QueryContext(ctx, slotQuery, groupID)
	if err != nil {
		return nil, err
	}
	defer slotRows.Close()

	for slotRows.Next() {
		var matchID int
		var ref models.RosterRef
		if err := slotRows.Scan(&matchID, &ref.RosterID, &ref.Name); err != nil {
			return nil, err
		}
		if i, ok := index[matchID]; ok {
			matches[i].Participants = append(matches[i].Participants, ref)
		}
	}
	if err := slotRows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresBracketRepository) GetOverview(ctx context.Context, groupID int) (models.GroupOverview, error) {
	query := `
		SELECT l.match_id, l.slot, l.prev_match_id
		FROM bracket_match_links l
		JOIN bracket_matches m ON m.id = l.match_id
		WHERE m.group_id = $1
		ORDER BY l.match_id ASC, l.slot ASC`

	overview := models.GroupOverview{GroupID: groupID, PrevMatchIDs: make(map[int][]*int)}

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return overview, err
	}
	defer rows.Close()

	for rows.Next() {
		var matchID, slot int
		var prev sql.NullInt64
		if err := rows.Scan(&matchID, &slot, &prev); err != nil {
			return overview, err
		}
		links := overview.PrevMatchIDs[matchID]
		for len(links) <= slot {
			links = append(links, nil)
		}
		if prev.Valid {
			id := int(prev.Int64)
			links[slot] = &id
		}
		overview.PrevMatchIDs[matchID] = links
	}
	return overview, rows.Err()
}

func (r *postgresBracketRepository) handleBracketError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "bracket_groups_tournament_name_key" {
				return ErrBracketGroupNameConflict
			}
			return fmt.Errorf("%w: %s", ErrBracketRoundConflict, pqErr.Constraint)
		case "23503":
			return ErrBracketGroupNotFound
		}
	}
	return err
}
