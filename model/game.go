package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type GameStatus string

const (
	GameScheduled  GameStatus = "scheduled"
	GameInProgress GameStatus = "in_progress"
	GameFinished   GameStatus = "finished"
)

func ParseGameStatus(s string) GameStatus {
	switch strings.ToLower(s) {
	case "scheduled":
		return GameScheduled
	case "in_progress":
		return GameInProgress
	case "finished":
		return GameFinished
	default:
		return GameScheduled
	}
}

type MatchResult string

const (
	ResultWin  MatchResult = "win"
	ResultLoss MatchResult = "loss"
	ResultDraw MatchResult = "draw"
)

func ParseMatchResult(s string) (MatchResult, bool) {
	switch strings.ToLower(s) {
	case "win":
		return ResultWin, true
	case "loss":
		return ResultLoss, true
	case "draw":
		return ResultDraw, true
	default:
		return "", false
	}
}

// Game is a single fixture between two teams within a season. Games are
// created in bulk by the schedule generator and move through
// scheduled -> in_progress -> finished. The score and winner columns are
// only set once the game is finished.
type Game struct {
	ID            uuid.UUID
	SeasonID      uuid.UUID
	HomeTeamID    uuid.UUID
	AwayTeamID    uuid.UUID
	HomeTeamName  string
	AwayTeamName  string
	Week          int
	ScheduledTime time.Time
	Status        GameStatus
	HomeScore     *int32
	AwayScore     *int32
	WinnerTeamID  *uuid.UUID
}

// GameOutcome is the result of evaluating a single game. It is derived
// entirely from the two team powers and is immutable once written onto the
// game row.
type GameOutcome struct {
	GameID       uuid.UUID    `json:"game_id"`
	HomeTeamName string       `json:"home_team_name"`
	AwayTeamName string       `json:"away_team_name"`
	HomeScore    int32        `json:"home_score"`
	AwayScore    int32        `json:"away_score"`
	HomeResult   MatchResult  `json:"home_result"`
	AwayResult   MatchResult  `json:"away_result"`
	WinnerTeamID *uuid.UUID   `json:"winner_team_id,omitempty"`
}

// EvaluationSummary reports what a single evaluation batch did. Errors holds
// one entry per fixture that failed; those fixtures stay scheduled and are
// retried on the next trigger.
type EvaluationSummary struct {
	Date           time.Time     `json:"date"`
	GamesEvaluated int           `json:"games_evaluated"`
	GamesUpdated   int           `json:"games_updated"`
	Errors         []string      `json:"errors"`
	Results        []GameOutcome `json:"results"`
}

type GameDaySummary struct {
	Date           time.Time `json:"date"`
	ScheduledGames int       `json:"scheduled_games"`
	FinishedGames  int       `json:"finished_games"`
}
