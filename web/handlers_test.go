package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/unrolled/render"

	"github.com/VolkerFelix/EvolveMeBackened/controller"
	"github.com/VolkerFelix/EvolveMeBackened/controller/mockcontroller"
	"github.com/VolkerFelix/EvolveMeBackened/db"
	"github.com/VolkerFelix/EvolveMeBackened/model"
)

func newTestServer(ctrl controller.C) *httptest.Server {
	return httptest.NewServer(getRouter(ctrl, render.New()))
}

func adminRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("error building request: %v", err)
	}
	req.SetBasicAuth("admin", "pa55word")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("error decoding response body: %v", err)
	}
}

func TestHealthHandler(t *testing.T) {
	server := newTestServer(&mockcontroller.C{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("error calling health endpoint: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestRecordActivityHandler(t *testing.T) {
	userID := uuid.New()
	delta := model.StatDelta{Stamina: 5, Strength: 3}
	states := []model.LiveGameState{{GameID: uuid.New(), HomeScore: 8}}

	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("RecordActivity", mock.Anything, userID, delta).Return(states, nil)

	server := newTestServer(mockCtrl)
	defer server.Close()

	payload := fmt.Sprintf(`{"user_id":%q,"stamina_change":5,"strength_change":3}`, userID)
	resp, err := http.Post(server.URL+"/activity", "application/json", bytes.NewBufferString(payload))
	if err != nil {
		t.Fatalf("error posting activity: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body struct {
		LiveGames []model.LiveGameState `json:"live_games"`
	}
	decodeBody(t, resp, &body)
	if len(body.LiveGames) != 1 || body.LiveGames[0].HomeScore != 8 {
		t.Errorf("unexpected live games in response: %v", body.LiveGames)
	}
	mockCtrl.AssertExpectations(t)
}

func TestRecordActivityHandlerErrors(t *testing.T) {
	tests := map[string]struct {
		payload string
		err     error
		status  int
	}{
		"malformed json":  {payload: "{not json", status: http.StatusBadRequest},
		"missing user id": {payload: `{"stamina_change":1}`, status: http.StatusBadRequest},
		"unknown user":    {payload: "", err: db.ErrUserNotFound, status: http.StatusNotFound},
		"db failure":      {payload: "", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			userID := uuid.New()
			mockCtrl := &mockcontroller.C{}
			payload := tc.payload
			if payload == "" {
				payload = fmt.Sprintf(`{"user_id":%q,"stamina_change":1}`, userID)
				mockCtrl.On("RecordActivity", mock.Anything, userID, model.StatDelta{Stamina: 1}).
					Return(nil, tc.err)
			}

			server := newTestServer(mockCtrl)
			defer server.Close()

			resp, err := http.Post(server.URL+"/activity", "application/json", bytes.NewBufferString(payload))
			if err != nil {
				t.Fatalf("error posting activity: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, resp.StatusCode)
			}
			mockCtrl.AssertExpectations(t)
		})
	}
}

func TestActiveGamesHandler(t *testing.T) {
	userID := uuid.New()
	games := []model.Game{{
		ID:           uuid.New(),
		HomeTeamName: "Early Birds",
		AwayTeamName: "Night Owls",
		Status:       model.GameInProgress,
	}}

	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("ActiveGamesFor", mock.Anything, userID).Return(games, nil)

	server := newTestServer(mockCtrl)
	defer server.Close()

	resp, err := http.Get(fmt.Sprintf("%s/users/%s/games/active", server.URL, userID))
	if err != nil {
		t.Fatalf("error getting active games: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body struct {
		Games []gameJSON `json:"games"`
	}
	decodeBody(t, resp, &body)
	if len(body.Games) != 1 || body.Games[0].Status != "in_progress" {
		t.Errorf("unexpected games payload: %v", body.Games)
	}
	mockCtrl.AssertExpectations(t)
}

func TestActiveGamesHandlerBadID(t *testing.T) {
	server := newTestServer(&mockcontroller.C{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/users/not-a-uuid/games/active")
	if err != nil {
		t.Fatalf("error getting active games: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad user id, got %d", resp.StatusCode)
	}
}

func TestStandingsHandler(t *testing.T) {
	seasonID := uuid.New()
	rows := []model.StandingsRow{
		{SeasonID: seasonID, TeamName: "Leaders", Points: 9, Position: 1},
		{SeasonID: seasonID, TeamName: "Trailers", Points: 2, Position: 2},
	}

	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("GetStandings", mock.Anything, seasonID).Return(rows, nil)

	server := newTestServer(mockCtrl)
	defer server.Close()

	resp, err := http.Get(fmt.Sprintf("%s/seasons/%s/standings", server.URL, seasonID))
	if err != nil {
		t.Fatalf("error getting standings: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body struct {
		Standings []model.StandingsRow `json:"standings"`
	}
	decodeBody(t, resp, &body)
	if len(body.Standings) != 2 || body.Standings[0].TeamName != "Leaders" {
		t.Errorf("unexpected standings payload: %v", body.Standings)
	}
	mockCtrl.AssertExpectations(t)
}

func TestGameSummaryHandler(t *testing.T) {
	date := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)
	summary := &model.GameDaySummary{Date: date, ScheduledGames: 6, FinishedGames: 2}

	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("GameDaySummary", mock.Anything, date).Return(summary, nil)

	server := newTestServer(mockCtrl)
	defer server.Close()

	resp, err := http.Get(server.URL + "/games/summary?date=2026-09-05")
	if err != nil {
		t.Fatalf("error getting game summary: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body model.GameDaySummary
	decodeBody(t, resp, &body)
	if body.ScheduledGames != 6 || body.FinishedGames != 2 {
		t.Errorf("unexpected summary payload: %+v", body)
	}
	mockCtrl.AssertExpectations(t)

	// Missing or malformed dates never reach the controller.
	for _, q := range []string{"", "?date=tomorrow"} {
		resp, err := http.Get(server.URL + "/games/summary" + q)
		if err != nil {
			t.Fatalf("error getting game summary: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400 for %q, got %d", q, resp.StatusCode)
		}
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	server := newTestServer(&mockcontroller.C{})
	defer server.Close()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/admin/seasons"},
		{http.MethodDelete, "/admin/seasons/" + uuid.NewString()},
		{http.MethodPost, "/admin/games/evaluate"},
		{http.MethodPost, "/admin/games/start-now"},
	}

	for _, route := range routes {
		req, err := http.NewRequest(route.method, server.URL+route.path, nil)
		if err != nil {
			t.Fatalf("error building request: %v", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("error calling %s %s: %v", route.method, route.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s without credentials - expected 401, got %d", route.method, route.path, resp.StatusCode)
		}
	}
}

func TestCreateSeasonHandler(t *testing.T) {
	leagueID := uuid.New()
	start := time.Date(2026, time.September, 5, 22, 0, 0, 0, time.UTC)
	season := &model.Season{ID: uuid.New(), LeagueID: leagueID, Name: "2026/27", StartDate: start}

	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("CreateSeason", mock.Anything, leagueID, "2026/27", start).Return(season, 12, nil)

	server := newTestServer(mockCtrl)
	defer server.Close()

	payload := fmt.Sprintf(`{"league_id":%q,"name":"2026/27","start_date":"2026-09-05T22:00:00Z"}`, leagueID)
	resp, err := http.DefaultClient.Do(adminRequest(t, http.MethodPost, server.URL+"/admin/seasons", []byte(payload)))
	if err != nil {
		t.Fatalf("error creating season: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body struct {
		Season       model.Season `json:"season"`
		GamesCreated int          `json:"games_created"`
	}
	decodeBody(t, resp, &body)
	if body.Season.ID != season.ID || body.GamesCreated != 12 {
		t.Errorf("unexpected create season payload: %+v", body)
	}
	mockCtrl.AssertExpectations(t)
}

func TestCreateSeasonHandlerValidation(t *testing.T) {
	tests := map[string]struct {
		err    error
		status int
	}{
		"odd roster":    {err: controller.ErrOddTeamCount, status: http.StatusBadRequest},
		"bad kickoff":   {err: controller.ErrInvalidKickoff, status: http.StatusBadRequest},
		"start in past": {err: controller.ErrStartNotInFuture, status: http.StatusBadRequest},
		"too few teams": {err: controller.ErrTooFewTeams, status: http.StatusBadRequest},
		"db failure":    {err: errors.New("insert failed"), status: http.StatusInternalServerError},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			leagueID := uuid.New()
			mockCtrl := &mockcontroller.C{}
			mockCtrl.On("CreateSeason", mock.Anything, leagueID, "test", mock.Anything).
				Return(nil, 0, tc.err)

			server := newTestServer(mockCtrl)
			defer server.Close()

			payload := fmt.Sprintf(`{"league_id":%q,"name":"test","start_date":"2026-09-06T10:00:00Z"}`, leagueID)
			resp, err := http.DefaultClient.Do(adminRequest(t, http.MethodPost, server.URL+"/admin/seasons", []byte(payload)))
			if err != nil {
				t.Fatalf("error creating season: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, resp.StatusCode)
			}
			mockCtrl.AssertExpectations(t)
		})
	}
}

func TestDeleteSeasonHandler(t *testing.T) {
	seasonID := uuid.New()

	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("DeleteSeason", mock.Anything, seasonID).Return(nil)

	server := newTestServer(mockCtrl)
	defer server.Close()

	resp, err := http.DefaultClient.Do(
		adminRequest(t, http.MethodDelete, server.URL+"/admin/seasons/"+seasonID.String(), nil))
	if err != nil {
		t.Fatalf("error deleting season: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	mockCtrl.AssertExpectations(t)
}

func TestDeleteSeasonHandlerNotFound(t *testing.T) {
	seasonID := uuid.New()

	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("DeleteSeason", mock.Anything, seasonID).Return(db.ErrSeasonNotFound)

	server := newTestServer(mockCtrl)
	defer server.Close()

	resp, err := http.DefaultClient.Do(
		adminRequest(t, http.MethodDelete, server.URL+"/admin/seasons/"+seasonID.String(), nil))
	if err != nil {
		t.Fatalf("error deleting season: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	mockCtrl.AssertExpectations(t)
}

func TestEvaluateGamesHandler(t *testing.T) {
	date := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)
	summary := &model.EvaluationSummary{
		Date:           date,
		GamesEvaluated: 3,
		GamesUpdated:   2,
		Errors:         []string{"game x: power query failed"},
	}

	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("EvaluateGamesForDate", mock.Anything, date).Return(summary, nil)

	server := newTestServer(mockCtrl)
	defer server.Close()

	resp, err := http.DefaultClient.Do(adminRequest(t, http.MethodPost,
		server.URL+"/admin/games/evaluate", []byte(`{"date":"2026-09-05"}`)))
	if err != nil {
		t.Fatalf("error evaluating games: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body model.EvaluationSummary
	decodeBody(t, resp, &body)
	if body.GamesEvaluated != 3 || body.GamesUpdated != 2 || len(body.Errors) != 1 {
		t.Errorf("unexpected summary payload: %+v", body)
	}
	mockCtrl.AssertExpectations(t)
}

func TestStartGamesHandler(t *testing.T) {
	mockCtrl := &mockcontroller.C{}
	mockCtrl.On("StartDueGames", mock.Anything).Return(2, nil)

	server := newTestServer(mockCtrl)
	defer server.Close()

	resp, err := http.DefaultClient.Do(adminRequest(t, http.MethodPost,
		server.URL+"/admin/games/start-now", nil))
	if err != nil {
		t.Fatalf("error starting games: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body map[string]int
	decodeBody(t, resp, &body)
	if body["games_started"] != 2 {
		t.Errorf("unexpected start payload: %v", body)
	}
	mockCtrl.AssertExpectations(t)
}
