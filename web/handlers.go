package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/unrolled/render"

	"github.com/VolkerFelix/EvolveMeBackened/controller"
	"github.com/VolkerFelix/EvolveMeBackened/db"
	"github.com/VolkerFelix/EvolveMeBackened/model"
)

func healthHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type activityRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	Stamina  int32     `json:"stamina_change"`
	Strength int32     `json:"strength_change"`
}

func recordActivityHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req activityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}
		if req.UserID == uuid.Nil {
			render.JSON(w, http.StatusBadRequest, errorBody(errors.New("user_id is required")))
			return
		}

		delta := model.StatDelta{Stamina: req.Stamina, Strength: req.Strength}
		states, err := ctrl.RecordActivity(r.Context(), req.UserID, delta)
		if err != nil {
			if errors.Is(err, db.ErrUserNotFound) {
				render.JSON(w, http.StatusNotFound, errorBody(err))
				return
			}
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{
			"stat_changes": delta,
			"live_games":   states,
		})
	}
}

func activeGamesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}

		games, err := ctrl.ActiveGamesFor(r.Context(), userID)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{"games": gamesResponse(games)})
	}
}

func standingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID, err := uuid.Parse(chi.URLParam(r, "seasonID"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}

		standings, err := ctrl.GetStandings(r.Context(), seasonID)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{"standings": standings})
	}
}

func gameSummaryHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := parseDateParam(r.URL.Query().Get("date"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}

		summary, err := ctrl.GameDaySummary(r.Context(), date)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}

		render.JSON(w, http.StatusOK, summary)
	}
}

type createSeasonRequest struct {
	LeagueID  uuid.UUID `json:"league_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
}

func createSeasonHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSeasonRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}
		if req.LeagueID == uuid.Nil || req.Name == "" {
			render.JSON(w, http.StatusBadRequest, errorBody(errors.New("league_id and name are required")))
			return
		}

		season, gamesCreated, err := ctrl.CreateSeason(r.Context(), req.LeagueID, req.Name, req.StartDate)
		if err != nil {
			if isValidationErr(err) {
				render.JSON(w, http.StatusBadRequest, errorBody(err))
				return
			}
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}

		render.JSON(w, http.StatusCreated, map[string]any{
			"season":        season,
			"games_created": gamesCreated,
		})
	}
}

func deleteSeasonHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID, err := uuid.Parse(chi.URLParam(r, "seasonID"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}

		if err := ctrl.DeleteSeason(r.Context(), seasonID); err != nil {
			if errors.Is(err, db.ErrSeasonNotFound) {
				render.JSON(w, http.StatusNotFound, errorBody(err))
				return
			}
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{"season_id": seasonID, "deleted": true})
	}
}

type evaluateRequest struct {
	Date string `json:"date"`
}

func evaluateGamesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}

		date, err := parseDateParam(req.Date)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}

		summary, err := ctrl.EvaluateGamesForDate(r.Context(), date)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}

		render.JSON(w, http.StatusOK, summary)
	}
}

func startGamesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started, err := ctrl.StartDueGames(r.Context())
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{"games_started": started})
	}
}

func parseDateParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("date is required in YYYY-MM-DD format")
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return date, nil
}

func isValidationErr(err error) bool {
	return errors.Is(err, controller.ErrTooFewTeams) ||
		errors.Is(err, controller.ErrOddTeamCount) ||
		errors.Is(err, controller.ErrInvalidKickoff) ||
		errors.Is(err, controller.ErrStartNotInFuture)
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

type gameJSON struct {
	ID            uuid.UUID  `json:"id"`
	SeasonID      uuid.UUID  `json:"season_id"`
	HomeTeamID    uuid.UUID  `json:"home_team_id"`
	AwayTeamID    uuid.UUID  `json:"away_team_id"`
	HomeTeamName  string     `json:"home_team_name"`
	AwayTeamName  string     `json:"away_team_name"`
	Week          int        `json:"week"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	Status        string     `json:"status"`
	HomeScore     *int32     `json:"home_score,omitempty"`
	AwayScore     *int32     `json:"away_score,omitempty"`
	WinnerTeamID  *uuid.UUID `json:"winner_team_id,omitempty"`
}

func gamesResponse(games []model.Game) []gameJSON {
	out := make([]gameJSON, 0, len(games))
	for _, g := range games {
		out = append(out, gameJSON{
			ID:            g.ID,
			SeasonID:      g.SeasonID,
			HomeTeamID:    g.HomeTeamID,
			AwayTeamID:    g.AwayTeamID,
			HomeTeamName:  g.HomeTeamName,
			AwayTeamName:  g.AwayTeamName,
			Week:          g.Week,
			ScheduledTime: g.ScheduledTime,
			Status:        string(g.Status),
			HomeScore:     g.HomeScore,
			AwayScore:     g.AwayScore,
			WinnerTeamID:  g.WinnerTeamID,
		})
	}
	return out
}
