package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"

	"github.com/VolkerFelix/EvolveMeBackened/controller"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", healthHandler(render))

	// Called by the activity-ingestion pipeline once per processed upload.
	r.Post("/activity", recordActivityHandler(ctrl, render))
	r.Get("/users/{userID}/games/active", activeGamesHandler(ctrl, render))

	r.Get("/seasons/{seasonID}/standings", standingsHandler(ctrl, render))
	r.Get("/games/summary", gameSummaryHandler(ctrl, render))

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("league", map[string]string{"admin": "pa55word"})) // TODO: read from DB instead
		r.Use(middleware.Timeout(30 * time.Second))                                   // Evaluating a full game day can be slow

		r.Post("/seasons", createSeasonHandler(ctrl, render))
		r.Delete("/seasons/{seasonID}", deleteSeasonHandler(ctrl, render))
		r.Post("/games/evaluate", evaluateGamesHandler(ctrl, render))
		r.Post("/games/start-now", startGamesHandler(ctrl, render))
	})

	return r
}
