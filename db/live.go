package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/VolkerFelix/EvolveMeBackened/model"
)

const liveStateColumns = `lg.id, lg.home_team_id, lg.away_team_id,
							ht.team_name, at.team_name,
							lg.live_home_score, lg.live_away_score,
							lg.live_home_power, lg.live_away_power,
							lg.last_scorer_id, lg.live_updated_at`

func (db *postgresDB) ListActiveGamesFor(ctx context.Context, userID uuid.UUID) ([]model.Game, error) {
	// DISTINCT: a user on both sides of a game still gets the game once.
	query := `SELECT DISTINCT ` + gameColumns + ` ` + gameJoins + `
				JOIN team_members tm
					ON tm.team_id IN (lg.home_team_id, lg.away_team_id)
					AND tm.status='active'
				WHERE lg.status='in_progress' AND tm.user_id=@userID
				ORDER BY lg.scheduled_time`

	return db.listGames(ctx, query, pgx.NamedArgs{"userID": userID})
}

func (db *postgresDB) GetContributionTeamID(ctx context.Context, gameID, userID uuid.UUID) (uuid.UUID, bool, error) {
	const query = `SELECT team_id FROM live_player_contributions
					WHERE game_id=@gameID AND user_id=@userID`

	args := pgx.NamedArgs{"gameID": gameID, "userID": userID}
	var teamID uuid.UUID
	err := db.pool.QueryRow(ctx, query, args).Scan(&teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("error reading contribution for user %s: %w", userID, err)
	}
	return teamID, true, nil
}

func (db *postgresDB) GetMembershipTeamID(ctx context.Context, userID, homeTeamID, awayTeamID uuid.UUID) (uuid.UUID, bool, error) {
	const query = `SELECT team_id FROM team_members
					WHERE user_id=@userID AND status='active'
						AND team_id IN (@homeTeamID, @awayTeamID)
					LIMIT 1`

	args := pgx.NamedArgs{
		"userID":     userID,
		"homeTeamID": homeTeamID,
		"awayTeamID": awayTeamID,
	}
	var teamID uuid.UUID
	err := db.pool.QueryRow(ctx, query, args).Scan(&teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("error reading membership for user %s: %w", userID, err)
	}
	return teamID, true, nil
}

// ApplyLiveIncrement bumps the counters for whichever side the team id
// matches. The CASE arithmetic keeps the whole increment in one statement,
// so concurrent contributions to the same game all land; the RETURNING
// clause hands back the snapshot the caller should report.
func (db *postgresDB) ApplyLiveIncrement(ctx context.Context, gameID, teamID, userID uuid.UUID, score, power int32) (*model.LiveGameState, error) {
	const query = `UPDATE league_games lg
					SET live_home_score = lg.live_home_score + CASE WHEN lg.home_team_id=@teamID THEN @score ELSE 0 END,
						live_away_score = lg.live_away_score + CASE WHEN lg.away_team_id=@teamID THEN @score ELSE 0 END,
						live_home_power = lg.live_home_power + CASE WHEN lg.home_team_id=@teamID THEN @power ELSE 0 END,
						live_away_power = lg.live_away_power + CASE WHEN lg.away_team_id=@teamID THEN @power ELSE 0 END,
						last_scorer_id = @userID,
						live_updated_at = @now
					FROM teams ht, teams at
					WHERE lg.id=@gameID AND lg.status='in_progress'
						AND ht.id = lg.home_team_id AND at.id = lg.away_team_id
					RETURNING lg.id, lg.home_team_id, lg.away_team_id,
						ht.team_name, at.team_name,
						lg.live_home_score, lg.live_away_score,
						lg.live_home_power, lg.live_away_power,
						lg.last_scorer_id, lg.live_updated_at`

	args := pgx.NamedArgs{
		"gameID": gameID,
		"teamID": teamID,
		"userID": userID,
		"score":  score,
		"power":  power,
		"now":    db.clock.Now().UTC(),
	}
	row := db.pool.QueryRow(ctx, query, args)
	state, err := scanLiveState(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("error applying live increment to game %s: %w", gameID, err)
	}
	return state, nil
}

// UpsertLiveContribution records or accumulates one user's contribution to a
// game. The (game_id, user_id) key also pins the user to the side they first
// scored for.
func (db *postgresDB) UpsertLiveContribution(ctx context.Context, c *model.LiveContribution) error {
	const query = `INSERT INTO live_player_contributions
						(game_id, user_id, team_id, score_added, power_added, stamina_gained, strength_gained, last_updated)
					VALUES
						(@gameID, @userID, @teamID, @score, @power, @stamina, @strength, @now)
					ON CONFLICT (game_id, user_id) DO UPDATE
					SET score_added     = live_player_contributions.score_added + EXCLUDED.score_added,
						power_added     = live_player_contributions.power_added + EXCLUDED.power_added,
						stamina_gained  = live_player_contributions.stamina_gained + EXCLUDED.stamina_gained,
						strength_gained = live_player_contributions.strength_gained + EXCLUDED.strength_gained,
						last_updated    = EXCLUDED.last_updated`

	args := pgx.NamedArgs{
		"gameID":   c.GameID,
		"userID":   c.UserID,
		"teamID":   c.TeamID,
		"score":    c.ScoreAdded,
		"power":    c.PowerAdded,
		"stamina":  c.StaminaGained,
		"strength": c.StrengthGained,
		"now":      db.clock.Now().UTC(),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting contribution for user %s: %w", c.UserID, err)
	}
	return nil
}

func (db *postgresDB) GetLiveGameState(ctx context.Context, gameID uuid.UUID) (*model.LiveGameState, error) {
	query := `SELECT ` + liveStateColumns + ` ` + gameJoins + ` WHERE lg.id=@gameID`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"gameID": gameID})
	state, err := scanLiveState(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("error reading live state for game %s: %w", gameID, err)
	}
	return state, nil
}

func scanLiveState(row pgx.Row) (*model.LiveGameState, error) {
	var s model.LiveGameState
	err := row.Scan(
		&s.GameID,
		&s.HomeTeamID,
		&s.AwayTeamID,
		&s.HomeTeamName,
		&s.AwayTeamName,
		&s.HomeScore,
		&s.AwayScore,
		&s.HomePower,
		&s.AwayPower,
		&s.LastScorerID,
		&s.LastUpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
