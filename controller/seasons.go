package controller

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/VolkerFelix/EvolveMeBackened/model"
)

// CreateSeason snapshots the league's active teams, commits the season row,
// then generates the schedule as a follow-up step. The follow-up is best
// effort: if it fails the season stays (without games) and the failure is
// logged, matching the policy that schedule trouble must not undo a season.
func (c *controller) CreateSeason(ctx context.Context, leagueID uuid.UUID, name string, start time.Time) (*model.Season, int, error) {
	teamIDs, err := c.db.ListActiveLeagueTeamIDs(ctx, leagueID)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing teams for league %s: %w", leagueID, err)
	}
	if err := validateRoster(teamIDs); err != nil {
		return nil, 0, err
	}
	if !start.After(c.clock.Now()) {
		return nil, 0, ErrStartNotInFuture
	}
	if !IsValidKickoff(start) {
		return nil, 0, ErrInvalidKickoff
	}

	// n/2 games per week over n*(n-1) total games works out to 2*(n-1) weeks.
	totalWeeks := 2 * (len(teamIDs) - 1)
	season := &model.Season{
		ID:        uuid.New(),
		LeagueID:  leagueID,
		Name:      name,
		StartDate: start.UTC(),
		EndDate:   start.UTC().AddDate(0, 0, 7*totalWeeks),
	}

	if err := c.db.InsertSeason(ctx, season, teamIDs); err != nil {
		return nil, 0, fmt.Errorf("error creating season: %w", err)
	}

	gamesCreated, err := c.GenerateSchedule(ctx, season.ID, teamIDs, season.StartDate)
	if err != nil {
		log.Printf("error generating schedule for new season %s: %v", season.ID, err)
		return season, 0, nil
	}

	log.Printf("created season %s with %d games over %d weeks", season.ID, gamesCreated, totalWeeks)
	return season, gamesCreated, nil
}

func (c *controller) DeleteSeason(ctx context.Context, seasonID uuid.UUID) error {
	return c.db.DeleteSeason(ctx, seasonID)
}

func (c *controller) GetStandings(ctx context.Context, seasonID uuid.UUID) ([]model.StandingsRow, error) {
	return c.db.GetStandings(ctx, seasonID)
}
