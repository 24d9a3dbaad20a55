package service

import (
	"context"
	"fmt"

	"github.com/scorecheck/scorecheck/internal/cache"
	"github.com/scorecheck/scorecheck/internal/config"
	"github.com/scorecheck/scorecheck/internal/league"
	"github.com/scorecheck/scorecheck/internal/models"
	"github.com/scorecheck/scorecheck/internal/provider"
)

// GamePlayersResponse is the per-game player stats payload.
type GamePlayersResponse struct {
	League    string          `json:"league"`
	TeamID    string          `json:"team_id"`
	GameID    string          `json:"game_id"`
	Players   []models.Player `json:"players"`
	Available bool            `json:"available"`
	Source    string          `json:"source"`
}

// GamePlayers fetches per-game player stats. Only TheSportsDB exposes event
// box scores, so any other active source is rejected up front. Transient
// fetch failures produce an unavailable result without caching it.
func (s *Service) GamePlayers(ctx context.Context, leagueID, teamID, gameID string) (*GamePlayersResponse, error) {
	lg, ok := league.Lookup(leagueID)
	if !ok {
		return nil, notFound("League not found")
	}
	if s.cfg.DataSource != config.SourceTheSportsDB {
		return nil, badRequest("Per-game player stats are only supported with TheSportsDB")
	}
	if gameID == "" {
		return nil, badRequest("Game id is required")
	}

	key := fmt.Sprintf("game_players:%s:%s:%s:%s", s.cfg.DataSource, lg.Key, teamID, gameID)
	var cached GamePlayersResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	conn := s.sportsDBFor()
	var players []models.Player
	data, err := conn.EventStats(ctx, gameID)
	if err != nil {
		if provider.IsRateLimit(err) {
			return nil, rateLimited("Rate limited by TheSportsDB. Please retry.")
		}
		s.logger.Warn("failed to fetch game player stats",
			"league", lg.Key, "game", gameID, "error", err)
	} else {
		players = conn.ExtractEventPlayerStats(data)
	}

	resp := &GamePlayersResponse{
		League:    lg.Name,
		TeamID:    teamID,
		GameID:    gameID,
		Players:   nonNilPlayers(players),
		Available: len(players) > 0,
		Source:    s.cfg.DataSource,
	}
	if err == nil {
		s.cache.SetJSON(ctx, key, resp, cache.TTLGamePlayers)
	}
	return resp, nil
}
