package model

import (
	"time"

	"github.com/google/uuid"
)

// StatDelta is what the activity-ingestion pipeline hands us for one
// processed upload. Upstream guarantees each physical activity is delivered
// at most once, keyed by its activity uuid.
type StatDelta struct {
	Stamina  int32 `json:"stamina_change"`
	Strength int32 `json:"strength_change"`
}

func (d StatDelta) Total() int32 {
	return d.Stamina + d.Strength
}

// LiveGameState is the running score view of one in-progress game.
type LiveGameState struct {
	GameID        uuid.UUID  `json:"game_id"`
	HomeTeamID    uuid.UUID  `json:"home_team_id"`
	AwayTeamID    uuid.UUID  `json:"away_team_id"`
	HomeTeamName  string     `json:"home_team_name"`
	AwayTeamName  string     `json:"away_team_name"`
	HomeScore     int32      `json:"home_score"`
	AwayScore     int32      `json:"away_score"`
	HomePower     int32      `json:"home_power"`
	AwayPower     int32      `json:"away_power"`
	LastScorerID  *uuid.UUID `json:"last_scorer_id,omitempty"`
	LastUpdatedAt time.Time  `json:"last_updated_at"`
}

// LiveContribution accumulates one user's contributions to one game. The row
// also pins the user to the side they first scored for, so a later team
// change cannot split their contributions across both sides.
type LiveContribution struct {
	GameID         uuid.UUID
	UserID         uuid.UUID
	TeamID         uuid.UUID
	ScoreAdded     int32
	PowerAdded     int32
	StaminaGained  int32
	StrengthGained int32
	LastUpdated    time.Time
}
