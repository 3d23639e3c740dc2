package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VolkerFelix/EvolveMeBackened/model"
)

type DB interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*model.Team, error)
	// Computes the team's current power from its active members' stat rows.
	// A team with no active members gets zero power, not an error.
	GetTeamPower(ctx context.Context, teamID uuid.UUID) (*model.TeamPower, error)
	ApplyStatDelta(ctx context.Context, userID uuid.UUID, delta model.StatDelta) error

	InsertSeason(ctx context.Context, season *model.Season, teamIDs []uuid.UUID) error
	GetSeason(ctx context.Context, id uuid.UUID) (*model.Season, error)
	// Deletes the season plus all of its games, standings and team links in
	// one transaction.
	DeleteSeason(ctx context.Context, id uuid.UUID) error
	ListSeasonTeamIDs(ctx context.Context, seasonID uuid.UUID) ([]uuid.UUID, error)
	ListActiveLeagueTeamIDs(ctx context.Context, leagueID uuid.UUID) ([]uuid.UUID, error)

	// Persists a generated schedule and seeds a zero-valued standings row per
	// team in a single transaction. Either everything commits or nothing does.
	InsertSchedule(ctx context.Context, seasonID uuid.UUID, games []model.Game, teamIDs []uuid.UUID) error
	GetGame(ctx context.Context, id uuid.UUID) (*model.Game, error)
	// All not-yet-finished games whose scheduled_time falls on the given UTC
	// day. Includes in_progress games: kickoff moves a game into live
	// tracking, evaluation still owns the terminal result.
	ListUnfinishedGamesOn(ctx context.Context, date time.Time) ([]model.Game, error)
	// Flips the game to finished, writes the outcome onto it and applies one
	// standings increment per side, all in a single transaction. The flip is
	// guarded on the game not already being finished: a lost guard returns
	// false and leaves everything untouched, which is how repeated
	// evaluation runs skip games a previous run resolved. A failure rolls
	// the whole fixture back, so the game stays evaluatable.
	FinishGame(ctx context.Context, game *model.Game, out *model.GameOutcome) (bool, error)
	// scheduled -> in_progress for every game whose kickoff has passed.
	StartDueGames(ctx context.Context, now time.Time) (int, error)
	CountGamesOn(ctx context.Context, date time.Time) (*model.GameDaySummary, error)

	GetStandings(ctx context.Context, seasonID uuid.UUID) ([]model.StandingsRow, error)

	// In-progress games in which the user is an active member of either side.
	ListActiveGamesFor(ctx context.Context, userID uuid.UUID) ([]model.Game, error)
	// The side the user already contributed to in this game, if any.
	GetContributionTeamID(ctx context.Context, gameID, userID uuid.UUID) (uuid.UUID, bool, error)
	// The user's current active team restricted to the two given teams.
	GetMembershipTeamID(ctx context.Context, userID, homeTeamID, awayTeamID uuid.UUID) (uuid.UUID, bool, error)
	// Adds score/power to the resolved side's live counters in one atomic
	// statement and returns the updated snapshot.
	ApplyLiveIncrement(ctx context.Context, gameID, teamID, userID uuid.UUID, score, power int32) (*model.LiveGameState, error)
	UpsertLiveContribution(ctx context.Context, c *model.LiveContribution) error
	GetLiveGameState(ctx context.Context, gameID uuid.UUID) (*model.LiveGameState, error)
}
