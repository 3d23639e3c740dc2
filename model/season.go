package model

import (
	"time"

	"github.com/google/uuid"
)

type Season struct {
	ID        uuid.UUID `json:"id"`
	LeagueID  uuid.UUID `json:"league_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

// StandingsRow is the persistent per-team season record. At all times
// Wins+Draws+Losses == GamesPlayed and Points == 3*Wins + Draws.
type StandingsRow struct {
	SeasonID    uuid.UUID `json:"season_id"`
	TeamID      uuid.UUID `json:"team_id"`
	TeamName    string    `json:"team_name"`
	GamesPlayed int32     `json:"games_played"`
	Wins        int32     `json:"wins"`
	Draws       int32     `json:"draws"`
	Losses      int32     `json:"losses"`
	Points      int32     `json:"points"`
	Position    int32     `json:"position"`
}
