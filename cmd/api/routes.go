package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	// Router
	router.NotFound(app.notFoundResponse)
	router.MethodNotAllowed(app.methodNotAllowedRequest)

	// Middleware
	router.Use(app.metrics)
	router.Use(app.recoverPanic)
	router.Use(app.enableCORS)
	router.Use(app.rateLimit)

	// Healthcheck
	router.Get("/v1/healthcheck", app.HealthCheck)
	router.Method(http.MethodGet, "/v1/metrics", expvar.Handler())

	// Archived Reports
	router.Get("/v1/archive/{pin}", app.ArchivedReport)

	// Game Endpoints
	router.Route("/v1/game", func(router chi.Router) {
		router.Get("/{id}", app.GetGame)
		router.Get("/{id}/report", app.GameReport)
		router.Get("/{id}/view", app.WatchGame)

		router.Group(func(router chi.Router) {
			router.Use(app.requireKeeperKey)
			router.Post("/", app.CreateGame)
			router.Post("/{id}/shot", app.RecordShot)
			router.Post("/{id}/stat", app.RecordStat)
			router.Post("/{id}/undo", app.UndoShot)
			router.Post("/{id}/audio", app.StatFromAudio)
			router.Post("/{id}/finish", app.FinishGame)
			router.Get("/{id}/keep", app.KeepGame)
		})
	})

	return router
}
