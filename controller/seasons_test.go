package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/mock"

	"github.com/VolkerFelix/EvolveMeBackened/db/mockdb"
	"github.com/VolkerFelix/EvolveMeBackened/events"
	"github.com/VolkerFelix/EvolveMeBackened/model"
)

// newTestController wires a controller around a mock db with the clock set
// to a fixed instant a few days before validStart.
func newTestController(t *testing.T, mockDB *mockdb.DB) (C, *clock.Mock) {
	t.Helper()

	c := clock.NewMock()
	c.Set(validStart.AddDate(0, 0, -3))

	ctrl, err := New(c, mockDB, events.NopPublisher{}, DefaultScoringConfig())
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}
	return ctrl, c
}

func TestCreateSeason(t *testing.T) {
	leagueID := uuid.New()
	teamIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	mockDB := &mockdb.DB{}
	ctrl, _ := newTestController(t, mockDB)

	mockDB.On("ListActiveLeagueTeamIDs", mock.Anything, leagueID).Return(teamIDs, nil)
	mockDB.On("InsertSeason", mock.Anything, mock.Anything, teamIDs).Return(nil)
	mockDB.On("InsertSchedule", mock.Anything, mock.Anything, mock.Anything, teamIDs).Return(nil)

	season, games, err := ctrl.CreateSeason(context.Background(), leagueID, "2026/27", validStart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if games != 12 {
		t.Errorf("expected 12 games for 4 teams, got %d", games)
	}
	if season.LeagueID != leagueID {
		t.Errorf("season has wrong league id")
	}
	if !season.StartDate.Equal(validStart) {
		t.Errorf("expected start %s, got %s", validStart, season.StartDate)
	}

	// 4 teams play 2*(4-1) = 6 weekly rounds.
	expectedEnd := validStart.AddDate(0, 0, 7*6)
	if !season.EndDate.Equal(expectedEnd) {
		t.Errorf("expected end %s, got %s", expectedEnd, season.EndDate)
	}
	mockDB.AssertExpectations(t)
}

func TestCreateSeasonValidation(t *testing.T) {
	twoTeams := []uuid.UUID{uuid.New(), uuid.New()}

	tests := map[string]struct {
		teams []uuid.UUID
		start time.Time
		err   error
	}{
		"too few teams": {teams: twoTeams[:1], start: validStart, err: ErrTooFewTeams},
		"odd roster":    {teams: append([]uuid.UUID{uuid.New()}, twoTeams...), start: validStart, err: ErrOddTeamCount},
		"bad kickoff":   {teams: twoTeams, start: validStart.Add(30 * time.Minute), err: ErrInvalidKickoff},
		"in the past":   {teams: twoTeams, start: validStart.AddDate(0, 0, -7), err: ErrStartNotInFuture},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			leagueID := uuid.New()
			mockDB := &mockdb.DB{}
			ctrl, _ := newTestController(t, mockDB)

			mockDB.On("ListActiveLeagueTeamIDs", mock.Anything, leagueID).Return(tc.teams, nil)

			season, games, err := ctrl.CreateSeason(context.Background(), leagueID, "test", tc.start)
			if !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
			if season != nil || games != 0 {
				t.Errorf("expected no season on validation failure, got %v with %d games", season, games)
			}
			mockDB.AssertExpectations(t)
		})
	}
}

// A schedule failure after the season committed must not fail the call or
// roll the season back.
func TestCreateSeasonScheduleFailureKeepsSeason(t *testing.T) {
	leagueID := uuid.New()
	teamIDs := []uuid.UUID{uuid.New(), uuid.New()}

	mockDB := &mockdb.DB{}
	ctrl, _ := newTestController(t, mockDB)

	mockDB.On("ListActiveLeagueTeamIDs", mock.Anything, leagueID).Return(teamIDs, nil)
	mockDB.On("InsertSeason", mock.Anything, mock.Anything, teamIDs).Return(nil)
	mockDB.On("InsertSchedule", mock.Anything, mock.Anything, mock.Anything, teamIDs).
		Return(errors.New("schedule insert failed"))

	season, games, err := ctrl.CreateSeason(context.Background(), leagueID, "doomed schedule", validStart)
	if err != nil {
		t.Fatalf("schedule failure should not fail season creation: %v", err)
	}
	if season == nil {
		t.Fatal("expected the created season back")
	}
	if games != 0 {
		t.Errorf("expected 0 games after schedule failure, got %d", games)
	}
	mockDB.AssertExpectations(t)
}

func TestCreateSeasonInsertError(t *testing.T) {
	leagueID := uuid.New()
	teamIDs := []uuid.UUID{uuid.New(), uuid.New()}
	insertErr := errors.New("season insert failed")

	mockDB := &mockdb.DB{}
	ctrl, _ := newTestController(t, mockDB)

	mockDB.On("ListActiveLeagueTeamIDs", mock.Anything, leagueID).Return(teamIDs, nil)
	mockDB.On("InsertSeason", mock.Anything, mock.Anything, teamIDs).Return(insertErr)

	season, games, err := ctrl.CreateSeason(context.Background(), leagueID, "test", validStart)
	if !errors.Is(err, insertErr) {
		t.Errorf("expected wrapped insert error, got %v", err)
	}
	if season != nil || games != 0 {
		t.Errorf("expected no season on insert failure")
	}
	mockDB.AssertExpectations(t)
}

func TestGetStandingsDelegates(t *testing.T) {
	seasonID := uuid.New()
	rows := []model.StandingsRow{
		{SeasonID: seasonID, TeamID: uuid.New(), Points: 9, Position: 1},
		{SeasonID: seasonID, TeamID: uuid.New(), Points: 4, Position: 2},
	}

	mockDB := &mockdb.DB{}
	ctrl, _ := newTestController(t, mockDB)

	mockDB.On("GetStandings", mock.Anything, seasonID).Return(rows, nil)

	got, err := ctrl.GetStandings(context.Background(), seasonID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Position != 1 {
		t.Errorf("standings not passed through: %v", got)
	}
	mockDB.AssertExpectations(t)
}
