package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Alex-Aron/LeagueOverlay/internal/ws"
)

func SetupRoutes(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz(d))
	r.Get("/snapshot", Snapshot(d))
	r.Get("/stats", Stats(d))
	r.Post("/visibility/toggle", ToggleVisibility(d))
	if d.LiveClient != nil {
		r.Get("/events", Events(d))
		r.Get("/scores", Scores(d))
	}
	r.Get("/ws", ws.Handler(d.Hub, d.Toggles, d.Logger.Named("ws")))
	return r
}
