package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/VolkerFelix/EvolveMeBackened/model"
)

type C struct {
	mock.Mock
}

func (c *C) GetTeamPower(ctx context.Context, teamID uuid.UUID) (*model.TeamPower, error) {
	args := c.Called(ctx, teamID)

	var p *model.TeamPower
	if args.Get(0) != nil {
		p = args.Get(0).(*model.TeamPower)
	}
	return p, args.Error(1)
}

func (c *C) EvaluateGame(home, away *model.TeamPower) model.GameOutcome {
	args := c.Called(home, away)
	return args.Get(0).(model.GameOutcome)
}

func (c *C) CreateSeason(ctx context.Context, leagueID uuid.UUID, name string, start time.Time) (*model.Season, int, error) {
	args := c.Called(ctx, leagueID, name, start)

	var s *model.Season
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Season)
	}
	return s, args.Int(1), args.Error(2)
}

func (c *C) DeleteSeason(ctx context.Context, seasonID uuid.UUID) error {
	args := c.Called(ctx, seasonID)
	return args.Error(0)
}

func (c *C) GenerateSchedule(ctx context.Context, seasonID uuid.UUID, teamIDs []uuid.UUID, start time.Time) (int, error) {
	args := c.Called(ctx, seasonID, teamIDs, start)
	return args.Int(0), args.Error(1)
}

func (c *C) GetStandings(ctx context.Context, seasonID uuid.UUID) ([]model.StandingsRow, error) {
	args := c.Called(ctx, seasonID)

	var rows []model.StandingsRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]model.StandingsRow)
	}
	return rows, args.Error(1)
}

func (c *C) EvaluateGamesForDate(ctx context.Context, date time.Time) (*model.EvaluationSummary, error) {
	args := c.Called(ctx, date)

	var s *model.EvaluationSummary
	if args.Get(0) != nil {
		s = args.Get(0).(*model.EvaluationSummary)
	}
	return s, args.Error(1)
}

func (c *C) GameDaySummary(ctx context.Context, date time.Time) (*model.GameDaySummary, error) {
	args := c.Called(ctx, date)

	var s *model.GameDaySummary
	if args.Get(0) != nil {
		s = args.Get(0).(*model.GameDaySummary)
	}
	return s, args.Error(1)
}

func (c *C) StartDueGames(ctx context.Context) (int, error) {
	args := c.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (c *C) RunPeriodicGameEvaluation(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

func (c *C) ActiveGamesFor(ctx context.Context, userID uuid.UUID) ([]model.Game, error) {
	args := c.Called(ctx, userID)

	var games []model.Game
	if args.Get(0) != nil {
		games = args.Get(0).([]model.Game)
	}
	return games, args.Error(1)
}

func (c *C) ApplyContribution(ctx context.Context, gameID, userID uuid.UUID, delta model.StatDelta) (*model.LiveGameState, error) {
	args := c.Called(ctx, gameID, userID, delta)

	var s *model.LiveGameState
	if args.Get(0) != nil {
		s = args.Get(0).(*model.LiveGameState)
	}
	return s, args.Error(1)
}

func (c *C) RecordActivity(ctx context.Context, userID uuid.UUID, delta model.StatDelta) ([]model.LiveGameState, error) {
	args := c.Called(ctx, userID, delta)

	var states []model.LiveGameState
	if args.Get(0) != nil {
		states = args.Get(0).([]model.LiveGameState)
	}
	return states, args.Error(1)
}
