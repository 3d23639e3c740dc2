package mockdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/VolkerFelix/EvolveMeBackened/model"
)

type DB struct {
	mock.Mock
}

func (db *DB) GetTeam(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	args := db.Called(ctx, id)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (db *DB) GetTeamPower(ctx context.Context, teamID uuid.UUID) (*model.TeamPower, error) {
	args := db.Called(ctx, teamID)

	var p *model.TeamPower
	if args.Get(0) != nil {
		p = args.Get(0).(*model.TeamPower)
	}
	return p, args.Error(1)
}

func (db *DB) ApplyStatDelta(ctx context.Context, userID uuid.UUID, delta model.StatDelta) error {
	args := db.Called(ctx, userID, delta)
	return args.Error(0)
}

func (db *DB) InsertSeason(ctx context.Context, season *model.Season, teamIDs []uuid.UUID) error {
	args := db.Called(ctx, season, teamIDs)
	return args.Error(0)
}

func (db *DB) GetSeason(ctx context.Context, id uuid.UUID) (*model.Season, error) {
	args := db.Called(ctx, id)

	var s *model.Season
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Season)
	}
	return s, args.Error(1)
}

func (db *DB) DeleteSeason(ctx context.Context, id uuid.UUID) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) ListSeasonTeamIDs(ctx context.Context, seasonID uuid.UUID) ([]uuid.UUID, error) {
	args := db.Called(ctx, seasonID)

	var ids []uuid.UUID
	if args.Get(0) != nil {
		ids = args.Get(0).([]uuid.UUID)
	}
	return ids, args.Error(1)
}

func (db *DB) ListActiveLeagueTeamIDs(ctx context.Context, leagueID uuid.UUID) ([]uuid.UUID, error) {
	args := db.Called(ctx, leagueID)

	var ids []uuid.UUID
	if args.Get(0) != nil {
		ids = args.Get(0).([]uuid.UUID)
	}
	return ids, args.Error(1)
}

func (db *DB) InsertSchedule(ctx context.Context, seasonID uuid.UUID, games []model.Game, teamIDs []uuid.UUID) error {
	args := db.Called(ctx, seasonID, games, teamIDs)
	return args.Error(0)
}

func (db *DB) GetGame(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	args := db.Called(ctx, id)

	var g *model.Game
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Game)
	}
	return g, args.Error(1)
}

func (db *DB) ListUnfinishedGamesOn(ctx context.Context, date time.Time) ([]model.Game, error) {
	args := db.Called(ctx, date)

	var games []model.Game
	if args.Get(0) != nil {
		games = args.Get(0).([]model.Game)
	}
	return games, args.Error(1)
}

func (db *DB) FinishGame(ctx context.Context, game *model.Game, out *model.GameOutcome) (bool, error) {
	args := db.Called(ctx, game, out)
	return args.Bool(0), args.Error(1)
}

func (db *DB) StartDueGames(ctx context.Context, now time.Time) (int, error) {
	args := db.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (db *DB) CountGamesOn(ctx context.Context, date time.Time) (*model.GameDaySummary, error) {
	args := db.Called(ctx, date)

	var s *model.GameDaySummary
	if args.Get(0) != nil {
		s = args.Get(0).(*model.GameDaySummary)
	}
	return s, args.Error(1)
}

func (db *DB) GetStandings(ctx context.Context, seasonID uuid.UUID) ([]model.StandingsRow, error) {
	args := db.Called(ctx, seasonID)

	var rows []model.StandingsRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]model.StandingsRow)
	}
	return rows, args.Error(1)
}

func (db *DB) ListActiveGamesFor(ctx context.Context, userID uuid.UUID) ([]model.Game, error) {
	args := db.Called(ctx, userID)

	var games []model.Game
	if args.Get(0) != nil {
		games = args.Get(0).([]model.Game)
	}
	return games, args.Error(1)
}

func (db *DB) GetContributionTeamID(ctx context.Context, gameID, userID uuid.UUID) (uuid.UUID, bool, error) {
	args := db.Called(ctx, gameID, userID)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (db *DB) GetMembershipTeamID(ctx context.Context, userID, homeTeamID, awayTeamID uuid.UUID) (uuid.UUID, bool, error) {
	args := db.Called(ctx, userID, homeTeamID, awayTeamID)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (db *DB) ApplyLiveIncrement(ctx context.Context, gameID, teamID, userID uuid.UUID, score, power int32) (*model.LiveGameState, error) {
	args := db.Called(ctx, gameID, teamID, userID, score, power)

	var s *model.LiveGameState
	if args.Get(0) != nil {
		s = args.Get(0).(*model.LiveGameState)
	}
	return s, args.Error(1)
}

func (db *DB) UpsertLiveContribution(ctx context.Context, c *model.LiveContribution) error {
	args := db.Called(ctx, c)
	return args.Error(0)
}

func (db *DB) GetLiveGameState(ctx context.Context, gameID uuid.UUID) (*model.LiveGameState, error) {
	args := db.Called(ctx, gameID)

	var s *model.LiveGameState
	if args.Get(0) != nil {
		s = args.Get(0).(*model.LiveGameState)
	}
	return s, args.Error(1)
}
