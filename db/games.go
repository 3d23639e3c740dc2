package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/VolkerFelix/EvolveMeBackened/model"
)

const gameColumns = `lg.id, lg.season_id, lg.home_team_id, lg.away_team_id,
						ht.team_name, at.team_name, lg.week, lg.scheduled_time,
						lg.status, lg.home_score, lg.away_score, lg.winner_team_id`

const gameJoins = `FROM league_games lg
					JOIN teams ht ON lg.home_team_id = ht.id
					JOIN teams at ON lg.away_team_id = at.id`

// InsertSchedule writes the whole fixture list and the zero-valued standings
// rows in one transaction. A failure at any point leaves neither behind.
func (db *postgresDB) InsertSchedule(ctx context.Context, seasonID uuid.UUID, games []model.Game, teamIDs []uuid.UUID) error {
	const insertGame = `INSERT INTO league_games
							(id, season_id, home_team_id, away_team_id, week, scheduled_time, status, created_at)
						VALUES
							(@id, @seasonID, @homeTeamID, @awayTeamID, @week, @scheduledTime, 'scheduled', @createdAt)`

	const insertStanding = `INSERT INTO league_standings
								(season_id, team_id, games_played, wins, draws, losses, points, last_updated)
							VALUES
								(@seasonID, @teamID, 0, 0, 0, 0, 0, @now)
							ON CONFLICT (season_id, team_id) DO NOTHING`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := db.clock.Now().UTC()
	for i := range games {
		g := &games[i]
		args := pgx.NamedArgs{
			"id":            g.ID,
			"seasonID":      seasonID,
			"homeTeamID":    g.HomeTeamID,
			"awayTeamID":    g.AwayTeamID,
			"week":          g.Week,
			"scheduledTime": g.ScheduledTime,
			"createdAt":     now,
		}
		if _, err := tx.Exec(ctx, insertGame, args); err != nil {
			return fmt.Errorf("error inserting game %s: %w", g.ID, err)
		}
	}

	for _, teamID := range teamIDs {
		args := pgx.NamedArgs{
			"seasonID": seasonID,
			"teamID":   teamID,
			"now":      now,
		}
		if _, err := tx.Exec(ctx, insertStanding, args); err != nil {
			return fmt.Errorf("error seeding standings for team %s: %w", teamID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing schedule transaction: %w", err)
	}
	return nil
}

func (db *postgresDB) GetGame(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	query := `SELECT ` + gameColumns + ` ` + gameJoins + ` WHERE lg.id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("error reading game %s: %w", id, err)
	}
	return g, nil
}

func (db *postgresDB) ListUnfinishedGamesOn(ctx context.Context, date time.Time) ([]model.Game, error) {
	query := `SELECT ` + gameColumns + ` ` + gameJoins + `
				WHERE DATE(lg.scheduled_time AT TIME ZONE 'UTC')=@date
					AND lg.status IN ('scheduled', 'in_progress')
				ORDER BY lg.scheduled_time, ht.team_name`

	args := pgx.NamedArgs{"date": date.UTC().Format("2006-01-02")}
	return db.listGames(ctx, query, args)
}

// FinishGame is the exactly-once guard for evaluation. The status predicate
// makes the flip a compare-and-set: only one caller can move a game to
// finished, everyone else sees zero rows affected and backs off. The two
// standings increments ride in the same transaction as the flip, so a
// standings failure rolls the flip back and the fixture stays retryable
// instead of ending up finished with half its points applied.
func (db *postgresDB) FinishGame(ctx context.Context, game *model.Game, out *model.GameOutcome) (bool, error) {
	const finish = `UPDATE league_games
					SET status='finished',
						home_score=@homeScore,
						away_score=@awayScore,
						winner_team_id=@winnerTeamID,
						finished_at=@now
					WHERE id=@id AND status IN ('scheduled', 'in_progress')`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	now := db.clock.Now().UTC()
	args := pgx.NamedArgs{
		"id":           game.ID,
		"homeScore":    out.HomeScore,
		"awayScore":    out.AwayScore,
		"winnerTeamID": out.WinnerTeamID,
		"now":          now,
	}
	tag, err := tx.Exec(ctx, finish, args)
	if err != nil {
		return false, fmt.Errorf("error finishing game %s: %w", game.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if err := applyResult(ctx, tx, game.SeasonID, game.HomeTeamID, out.HomeResult, now); err != nil {
		return false, fmt.Errorf("home standings for game %s: %w", game.ID, err)
	}
	if err := applyResult(ctx, tx, game.SeasonID, game.AwayTeamID, out.AwayResult, now); err != nil {
		return false, fmt.Errorf("away standings for game %s: %w", game.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("error committing result of game %s: %w", game.ID, err)
	}
	return true, nil
}

func (db *postgresDB) StartDueGames(ctx context.Context, now time.Time) (int, error) {
	const query = `UPDATE league_games
					SET status='in_progress'
					WHERE status='scheduled' AND scheduled_time <= @now`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"now": now.UTC()})
	if err != nil {
		return 0, fmt.Errorf("error starting due games: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (db *postgresDB) CountGamesOn(ctx context.Context, date time.Time) (*model.GameDaySummary, error) {
	const query = `SELECT
						COUNT(*) FILTER (WHERE status='scheduled') AS scheduled,
						COUNT(*) FILTER (WHERE status='finished') AS finished
					FROM league_games
					WHERE DATE(scheduled_time AT TIME ZONE 'UTC')=@date`

	day := date.UTC().Truncate(24 * time.Hour)
	summary := &model.GameDaySummary{Date: day}
	args := pgx.NamedArgs{"date": day.Format("2006-01-02")}
	err := db.pool.QueryRow(ctx, query, args).Scan(&summary.ScheduledGames, &summary.FinishedGames)
	if err != nil {
		return nil, fmt.Errorf("error counting games for %s: %w", args["date"], err)
	}
	return summary, nil
}

func (db *postgresDB) listGames(ctx context.Context, query string, args pgx.NamedArgs) ([]model.Game, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing games: %w", err)
	}
	defer rows.Close()

	games := make([]model.Game, 0, 8)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

func scanGame(row pgx.Row) (*model.Game, error) {
	var g model.Game
	var status string
	err := row.Scan(
		&g.ID,
		&g.SeasonID,
		&g.HomeTeamID,
		&g.AwayTeamID,
		&g.HomeTeamName,
		&g.AwayTeamName,
		&g.Week,
		&g.ScheduledTime,
		&status,
		&g.HomeScore,
		&g.AwayScore,
		&g.WinnerTeamID)
	if err != nil {
		return nil, err
	}
	g.Status = model.ParseGameStatus(status)
	return &g, nil
}
