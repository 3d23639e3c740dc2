package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VolkerFelix/EvolveMeBackened/model"
)

// League cadence: one round of games per week, kicking off Saturdays at
// 22:00 UTC.
const (
	gameSlotWeekday = time.Saturday
	gameSlotHourUTC = 22
)

// IsValidKickoff reports whether t lands on the league's weekly game slot.
func IsValidKickoff(t time.Time) bool {
	utc := t.UTC()
	return utc.Weekday() == gameSlotWeekday &&
		utc.Hour() == gameSlotHourUTC &&
		utc.Minute() == 0 && utc.Second() == 0 && utc.Nanosecond() == 0
}

func validateRoster(teamIDs []uuid.UUID) error {
	if len(teamIDs) < 2 {
		return ErrTooFewTeams
	}
	if len(teamIDs)%2 != 0 {
		return ErrOddTeamCount
	}
	return nil
}

// GenerateSchedule builds a full double round-robin: n-1 rounds covering
// every pair once, then the same rounds again with home and away swapped.
// Round r kicks off exactly r weeks after start, with all n/2 games of a
// round sharing the same slot. Fixtures and seeded standings commit in a
// single transaction.
func (c *controller) GenerateSchedule(ctx context.Context, seasonID uuid.UUID, teamIDs []uuid.UUID, start time.Time) (int, error) {
	if err := validateRoster(teamIDs); err != nil {
		return 0, err
	}
	if !IsValidKickoff(start) {
		return 0, ErrInvalidKickoff
	}

	games := buildDoubleRoundRobin(seasonID, teamIDs, start.UTC())

	if err := c.db.InsertSchedule(ctx, seasonID, games, teamIDs); err != nil {
		return 0, fmt.Errorf("error persisting schedule for season %s: %w", seasonID, err)
	}
	return len(games), nil
}

func buildDoubleRoundRobin(seasonID uuid.UUID, teamIDs []uuid.UUID, start time.Time) []model.Game {
	n := len(teamIDs)
	firstLeg := buildRounds(teamIDs)

	games := make([]model.Game, 0, n*(n-1))
	appendRound := func(week int, pairs [][2]uuid.UUID, swap bool) {
		kickoff := start.AddDate(0, 0, 7*(week-1))
		for _, p := range pairs {
			home, away := p[0], p[1]
			if swap {
				home, away = away, home
			}
			games = append(games, model.Game{
				ID:            uuid.New(),
				SeasonID:      seasonID,
				HomeTeamID:    home,
				AwayTeamID:    away,
				Week:          week,
				ScheduledTime: kickoff,
				Status:        model.GameScheduled,
			})
		}
	}

	// First leg, then the return leg with every pairing reversed.
	for r, pairs := range firstLeg {
		appendRound(r+1, pairs, false)
	}
	for r, pairs := range firstLeg {
		appendRound(n-1+r+1, pairs, true)
	}

	return games
}

// buildRounds is the classic circle method: the first team stays fixed while
// the rest rotate one position per round. Each round pairs entry i with entry
// n-1-i, so all n teams play exactly once per round.
func buildRounds(teamIDs []uuid.UUID) [][][2]uuid.UUID {
	n := len(teamIDs)
	arr := make([]uuid.UUID, n)
	copy(arr, teamIDs)

	rounds := make([][][2]uuid.UUID, 0, n-1)
	for r := 0; r < n-1; r++ {
		pairs := make([][2]uuid.UUID, 0, n/2)
		for i := 0; i < n/2; i++ {
			pairs = append(pairs, [2]uuid.UUID{arr[i], arr[n-1-i]})
		}
		rounds = append(rounds, pairs)

		// Rotate everything but arr[0] one step to the right.
		last := arr[n-1]
		copy(arr[2:], arr[1:n-1])
		arr[1] = last
	}
	return rounds
}
