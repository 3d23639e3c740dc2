package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"

	"github.com/VolkerFelix/EvolveMeBackened/db"
	"github.com/VolkerFelix/EvolveMeBackened/events"
	"github.com/VolkerFelix/EvolveMeBackened/model"
)

var (
	ErrTooFewTeams      = errors.New("league needs at least 2 teams for a season")
	ErrOddTeamCount     = errors.New("league needs an even number of teams for a season")
	ErrInvalidKickoff   = errors.New("start time must be a Saturday at 22:00 UTC")
	ErrStartNotInFuture = errors.New("season start must be in the future")
	ErrNotAParticipant  = errors.New("user is not on either team of this game")
)

// C encapsulates the league business logic without worrying about any web layers
type C interface {
	// Computes the team's current aggregate power from its active members.
	GetTeamPower(ctx context.Context, teamID uuid.UUID) (*model.TeamPower, error)
	// Derives a match outcome from two team powers. Pure and deterministic:
	// the same powers always produce the same outcome.
	EvaluateGame(home, away *model.TeamPower) model.GameOutcome

	// Creates a season for the league's current active teams and generates
	// its schedule. The season row commits first; a schedule failure is
	// logged and leaves the season without games. Returns the season and the
	// number of games created.
	CreateSeason(ctx context.Context, leagueID uuid.UUID, name string, start time.Time) (*model.Season, int, error)
	DeleteSeason(ctx context.Context, seasonID uuid.UUID) error
	// Builds the double round-robin fixture list and persists it together
	// with zero-valued standings rows in one transaction. Fails closed on an
	// odd or too-small roster and on a start time outside the game slot.
	GenerateSchedule(ctx context.Context, seasonID uuid.UUID, teamIDs []uuid.UUID, start time.Time) (int, error)
	GetStandings(ctx context.Context, seasonID uuid.UUID) ([]model.StandingsRow, error)

	// Evaluates every still-scheduled game on the given date. Failures are
	// collected per game; re-running for the same date is a no-op for games
	// that already finished.
	EvaluateGamesForDate(ctx context.Context, date time.Time) (*model.EvaluationSummary, error)
	GameDaySummary(ctx context.Context, date time.Time) (*model.GameDaySummary, error)
	// Moves games whose kickoff has passed into in_progress so live scoring
	// starts accepting contributions for them.
	StartDueGames(ctx context.Context) (int, error)
	RunPeriodicGameEvaluation(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	ActiveGamesFor(ctx context.Context, userID uuid.UUID) ([]model.Game, error)
	// Attributes one stat delta to the user's side of an in-progress game
	// and returns the updated live snapshot.
	ApplyContribution(ctx context.Context, gameID, userID uuid.UUID, delta model.StatDelta) (*model.LiveGameState, error)
	// The activity-ingestion entry point: applies the stat delta to the
	// user's avatar and fans it out to all of the user's in-progress games.
	// Live-game trouble never fails the ingestion that triggered it.
	RecordActivity(ctx context.Context, userID uuid.UUID, delta model.StatDelta) ([]model.LiveGameState, error)
}

type controller struct {
	clock   clock.Clock
	db      db.DB
	pub     events.Publisher
	scoring ScoringConfig
}

func New(clock clock.Clock, db db.DB, pub events.Publisher, scoring ScoringConfig) (C, error) {
	c := &controller{
		clock:   clock,
		db:      db,
		pub:     pub,
		scoring: scoring,
	}
	return c, nil
}
