// Package api is the optional ops HTTP surface of the bot.
package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/embebot/embebot/internal/api/handler"
	mw "github.com/embebot/embebot/internal/api/middleware"
	"github.com/embebot/embebot/internal/relay"
)

// NewRouter creates the ops router. It only exposes health; the bot's real
// surface is the Discord command set.
func NewRouter(stats *relay.Stats, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.CleanPath)
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(mw.Recovery(logger))
	r.Use(chimw.Timeout(10 * time.Second))

	health := handler.NewHealthHandler(stats)
	r.Get("/health", health.Live)

	return r
}
