// Package api wires the chi router, middleware stack, and route table.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/scorecheck/scorecheck/internal/api/handler"
	"github.com/scorecheck/scorecheck/internal/config"
	"github.com/scorecheck/scorecheck/internal/service"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(svc *service.Service, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := handler.New(svc, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/leagues", h.Leagues)
		r.Get("/leagues/{league}/teams", h.LeagueTeams)
		r.Get("/leagues/{league}/teams/{team}", h.TeamDetail)
		r.Get("/leagues/{league}/teams/{team}/games/{game}/players", h.GamePlayers)
		r.Get("/games/today", h.TodayGames)
	})

	return r
}
