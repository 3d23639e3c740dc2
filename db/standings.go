package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/VolkerFelix/EvolveMeBackened/model"
)

// applyResult folds one match result into the team's standings row inside the
// caller's transaction. The whole read-increment-write happens in a single
// UPDATE so that two games finishing at the same instant for the same team
// cannot lose an increment.
func applyResult(ctx context.Context, tx pgx.Tx, seasonID, teamID uuid.UUID, result model.MatchResult, now time.Time) error {
	const query = `UPDATE league_standings
					SET games_played = games_played + 1,
						wins   = wins   + CASE WHEN @result='win'  THEN 1 ELSE 0 END,
						draws  = draws  + CASE WHEN @result='draw' THEN 1 ELSE 0 END,
						losses = losses + CASE WHEN @result='loss' THEN 1 ELSE 0 END,
						points = points + CASE WHEN @result='win' THEN 3 WHEN @result='draw' THEN 1 ELSE 0 END,
						last_updated = @now
					WHERE season_id=@seasonID AND team_id=@teamID`

	args := pgx.NamedArgs{
		"seasonID": seasonID,
		"teamID":   teamID,
		"result":   string(result),
		"now":      now,
	}
	tag, err := tx.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error applying %s to standings for team %s: %w", result, teamID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (db *postgresDB) GetStandings(ctx context.Context, seasonID uuid.UUID) ([]model.StandingsRow, error) {
	const query = `SELECT
						ls.season_id,
						ls.team_id,
						t.team_name,
						ls.games_played,
						ls.wins,
						ls.draws,
						ls.losses,
						ls.points,
						ROW_NUMBER() OVER (ORDER BY ls.points DESC, ls.wins DESC, t.team_name ASC) AS position
					FROM league_standings ls
					JOIN teams t ON ls.team_id = t.id
					WHERE ls.season_id=@seasonID
					ORDER BY position ASC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"seasonID": seasonID})
	if err != nil {
		return nil, fmt.Errorf("error reading standings for season %s: %w", seasonID, err)
	}
	defer rows.Close()

	standings := make([]model.StandingsRow, 0, 8)
	for rows.Next() {
		var s model.StandingsRow
		err := rows.Scan(
			&s.SeasonID,
			&s.TeamID,
			&s.TeamName,
			&s.GamesPlayed,
			&s.Wins,
			&s.Draws,
			&s.Losses,
			&s.Points,
			&s.Position)
		if err != nil {
			return nil, err
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
