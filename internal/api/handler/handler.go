// Package handler provides HTTP handlers for all API endpoints. Handlers are
// thin: they parse path and query inputs, call the orchestration service, and
// translate service errors into JSON detail responses.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scorecheck/scorecheck/internal/api/respond"
	"github.com/scorecheck/scorecheck/internal/service"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

// New creates a Handler around the orchestration service.
func New(svc *service.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Health returns basic health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Leagues lists the supported leagues.
func (h *Handler) Leagues(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Leagues(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}

// LeagueTeams lists a league's teams.
func (h *Handler) LeagueTeams(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.LeagueTeams(r.Context(), chi.URLParam(r, "league"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}

// TeamDetail returns one team's players and recent games.
func (h *Handler) TeamDetail(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.TeamDetail(r.Context(), chi.URLParam(r, "league"), chi.URLParam(r, "team"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}

// GamePlayers returns per-game player stats.
func (h *Handler) GamePlayers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GamePlayers(r.Context(),
		chi.URLParam(r, "league"), chi.URLParam(r, "team"), chi.URLParam(r, "game"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}

// TodayGames returns today's (and optionally yesterday's) scoreboards.
func (h *Handler) TodayGames(w http.ResponseWriter, r *http.Request) {
	includeYesterday := true
	if raw := r.URL.Query().Get("include_yesterday"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respond.WriteDetail(w, http.StatusBadRequest, "include_yesterday must be a boolean")
			return
		}
		includeYesterday = parsed
	}

	resp, err := h.svc.TodayGames(r.Context(), includeYesterday)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		respond.WriteDetail(w, svcErr.Status, svcErr.Detail)
		return
	}
	h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	respond.WriteDetail(w, http.StatusInternalServerError, "Internal server error")
}
