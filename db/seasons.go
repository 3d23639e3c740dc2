package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/VolkerFelix/EvolveMeBackened/model"
)

// InsertSeason commits the season row together with a snapshot of the teams
// that are in it. The schedule is generated afterwards as a separate step so
// that a schedule failure leaves the season in place.
func (db *postgresDB) InsertSeason(ctx context.Context, season *model.Season, teamIDs []uuid.UUID) error {
	const insertSeason = `INSERT INTO league_seasons (id, league_id, name, start_date, end_date, created_at)
							VALUES (@id, @leagueID, @name, @startDate, @endDate, @createdAt)`

	const insertTeam = `INSERT INTO season_teams (id, season_id, team_id, joined_at)
							VALUES (@id, @seasonID, @teamID, @joinedAt)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := db.clock.Now().UTC()
	args := pgx.NamedArgs{
		"id":        season.ID,
		"leagueID":  season.LeagueID,
		"name":      season.Name,
		"startDate": season.StartDate,
		"endDate":   season.EndDate,
		"createdAt": now,
	}
	if _, err := tx.Exec(ctx, insertSeason, args); err != nil {
		return fmt.Errorf("error inserting season: %w", err)
	}

	for _, teamID := range teamIDs {
		args := pgx.NamedArgs{
			"id":       uuid.New(),
			"seasonID": season.ID,
			"teamID":   teamID,
			"joinedAt": now,
		}
		if _, err := tx.Exec(ctx, insertTeam, args); err != nil {
			return fmt.Errorf("error adding team %s to season: %w", teamID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing season transaction: %w", err)
	}
	season.CreatedAt = now
	return nil
}

func (db *postgresDB) GetSeason(ctx context.Context, id uuid.UUID) (*model.Season, error) {
	const query = `SELECT id, league_id, name, start_date, end_date, created_at
					FROM league_seasons WHERE id=@id`

	var s model.Season
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(
		&s.ID, &s.LeagueID, &s.Name, &s.StartDate, &s.EndDate, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("error reading season %s: %w", id, err)
	}
	return &s, nil
}

// DeleteSeason removes the season and everything hanging off it. Order
// matters for the foreign keys: games and standings first, the season last.
func (db *postgresDB) DeleteSeason(ctx context.Context, id uuid.UUID) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{"seasonID": id}
	for _, stmt := range []string{
		`DELETE FROM live_player_contributions WHERE game_id IN (SELECT id FROM league_games WHERE season_id=@seasonID)`,
		`DELETE FROM league_games WHERE season_id=@seasonID`,
		`DELETE FROM league_standings WHERE season_id=@seasonID`,
		`DELETE FROM season_teams WHERE season_id=@seasonID`,
	} {
		if _, err := tx.Exec(ctx, stmt, args); err != nil {
			return fmt.Errorf("error deleting season data: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM league_seasons WHERE id=@seasonID`, args)
	if err != nil {
		return fmt.Errorf("error deleting season %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSeasonNotFound
	}

	return tx.Commit(ctx)
}

func (db *postgresDB) ListSeasonTeamIDs(ctx context.Context, seasonID uuid.UUID) ([]uuid.UUID, error) {
	const query = `SELECT st.team_id
					FROM season_teams st
					JOIN teams t ON st.team_id = t.id
					WHERE st.season_id=@seasonID
					ORDER BY t.team_name ASC`

	return db.listTeamIDs(ctx, query, pgx.NamedArgs{"seasonID": seasonID})
}

func (db *postgresDB) ListActiveLeagueTeamIDs(ctx context.Context, leagueID uuid.UUID) ([]uuid.UUID, error) {
	const query = `SELECT lm.team_id
					FROM league_memberships lm
					JOIN teams t ON lm.team_id = t.id
					WHERE lm.league_id=@leagueID AND lm.status='active'
					ORDER BY t.team_name ASC`

	return db.listTeamIDs(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
}

func (db *postgresDB) listTeamIDs(ctx context.Context, query string, args pgx.NamedArgs) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing team ids: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, 8)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
