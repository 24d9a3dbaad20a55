package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/scorecheck/scorecheck/internal/cache"
	"github.com/scorecheck/scorecheck/internal/config"
	"github.com/scorecheck/scorecheck/internal/league"
	"github.com/scorecheck/scorecheck/internal/models"
	"github.com/scorecheck/scorecheck/internal/provider"
	"github.com/scorecheck/scorecheck/internal/roster"
)

// Leagues whose providers routinely return partial rosters get a backfill
// from the league's own free roster endpoint below this player count.
const rosterFloor = 15

// TeamDetailResponse is the players+games payload for one team.
type TeamDetailResponse struct {
	League  string          `json:"league"`
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Logo    string          `json:"logo"`
	Players []models.Player `json:"players"`
	Games   []models.Game   `json:"games"`
	Source  string          `json:"source"`
	Warning string          `json:"warning,omitempty"`
}

type attempt struct {
	source string
	reason string
}

type providerResult struct {
	logo    string
	players []models.Player
	games   []models.Game
}

// TeamDetail resolves a team across the provider priority order and returns
// the first acceptable players+games result, falling back to the static
// snapshot when every provider fails.
func (s *Service) TeamDetail(ctx context.Context, leagueID, teamID string) (*TeamDetailResponse, error) {
	lg, ok := league.Lookup(leagueID)
	if !ok {
		return nil, notFound("League not found")
	}

	key := fmt.Sprintf("league_team:v3:%s:%s:%s:%s", s.cfg.DataSource, lg.Key, teamID, s.cfg.DefaultSeason)
	var cached TeamDetailResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	if !s.sourceSupported() {
		return nil, badRequest("Unsupported data source")
	}

	matched, ok := league.FindStaticTeam(lg.Key, teamID)
	if !ok {
		return nil, notFound("Team not found")
	}

	candidates := league.SearchCandidates(lg.Key, matched.Name)
	season := s.activeSeason(lg)

	var attempts []attempt
	for _, source := range s.providerOrder() {
		conn, skipReason := s.connectorFor(source, lg)
		if conn == nil {
			attempts = append(attempts, attempt{source, skipReason})
			continue
		}

		result, reason := s.fetchTeamDetail(ctx, conn, lg, candidates, season, &attempts)
		if result == nil {
			attempts = append(attempts, attempt{source, reason})
			continue
		}

		resp := &TeamDetailResponse{
			League:  lg.Name,
			ID:      teamID,
			Name:    matched.Name,
			Logo:    result.logo,
			Players: nonNilPlayers(result.players),
			Games:   nonNilGames(result.games),
			Source:  source,
		}
		s.cache.SetJSON(ctx, key, resp, cache.TTLTeamDetail)
		return resp, nil
	}

	s.logger.Warn("unable to fetch live team details",
		"league", lg.Key, "team", matched.Name, "attempts", formatAttempts(attempts))

	snapshot, _ := league.FallbackSnapshot(lg.Key, teamID)
	resp := &TeamDetailResponse{
		League:  lg.Name,
		ID:      teamID,
		Name:    matched.Name,
		Logo:    matched.Logo,
		Players: nonNilPlayers(snapshot.Players),
		Games:   nonNilGames(snapshot.Games),
		Source:  "static",
		Warning: "Live team details temporarily unavailable",
	}
	s.cache.SetJSON(ctx, key, resp, cache.TTLTeamDetail)
	return resp, nil
}

// fetchTeamDetail runs one provider through identity resolution, data fetch,
// roster backfill, and the games fallback. A nil result carries the failure
// reason for the attempt log.
func (s *Service) fetchTeamDetail(ctx context.Context, conn provider.Connector, lg league.Info, candidates []string, season string, attempts *[]attempt) (*providerResult, string) {
	var info *models.ProviderTeam
	resolvedSearch := ""
	for _, name := range candidates {
		data, err := conn.SearchTeams(ctx, s.cfg.DefaultSeason, name)
		if err != nil {
			return nil, err.Error()
		}
		if t := conn.ExtractTeam(data); t != nil && t.ID != "" {
			info = t
			resolvedSearch = name
			break
		}
	}
	if info == nil {
		return nil, "team id not found"
	}

	resolvedName := info.Name
	if resolvedName == "" {
		resolvedName = resolvedSearch
	}

	playersData, err := conn.FetchPlayers(ctx, season, info.ID)
	if err != nil {
		return nil, err.Error()
	}
	gamesData, err := conn.FetchGames(ctx, season, info.ID)
	if err != nil {
		return nil, err.Error()
	}

	players := conn.ExtractPlayers(playersData)
	if len(players) < rosterFloor {
		switch lg.Name {
		case "NHL":
			players = roster.Merge(players, s.roster.NHL(ctx, resolvedName))
		case "MLB":
			players = roster.Merge(players, s.roster.MLB(ctx, resolvedName, season))
		}
	}

	games := conn.ExtractGames(gamesData, resolvedName)
	if len(games) == 0 && conn.Name() != config.SourceESPN {
		games = s.espnGamesFallback(ctx, lg, append([]string{resolvedName}, candidates...), season, attempts)
	}

	if len(players) == 0 && len(games) == 0 {
		return nil, "no players or games returned"
	}
	return &providerResult{logo: info.Logo, players: players, games: games}, ""
}

// espnGamesFallback retries the schedule through the scoreboard feed when the
// accepted provider had no games, trying each search name until one resolves
// to a non-empty schedule.
func (s *Service) espnGamesFallback(ctx context.Context, lg league.Info, searches []string, season string, attempts *[]attempt) []models.Game {
	conn, err := s.espnFor(lg)
	if err != nil {
		*attempts = append(*attempts, attempt{"espn-games-fallback", err.Error()})
		return nil
	}

	seen := make(map[string]bool, len(searches))
	for _, name := range searches {
		normalized := league.Slug(name)
		if seen[normalized] {
			continue
		}
		seen[normalized] = true

		data, err := conn.SearchTeams(ctx, season, name)
		if err != nil {
			*attempts = append(*attempts, attempt{"espn-games-fallback", err.Error()})
			return nil
		}
		team := conn.ExtractTeam(data)
		if team == nil || team.ID == "" {
			continue
		}
		teamName := team.Name
		if teamName == "" {
			teamName = name
		}

		gamesData, err := conn.FetchGames(ctx, season, team.ID)
		if err != nil {
			*attempts = append(*attempts, attempt{"espn-games-fallback", err.Error()})
			return nil
		}
		if games := conn.ExtractGames(gamesData, teamName); len(games) > 0 {
			return games
		}
	}
	return nil
}

func formatAttempts(attempts []attempt) string {
	parts := make([]string, 0, len(attempts))
	for _, a := range attempts {
		parts = append(parts, fmt.Sprintf("%s: %s", a.source, a.reason))
	}
	return strings.Join(parts, "; ")
}

func nonNilPlayers(players []models.Player) []models.Player {
	if players == nil {
		return []models.Player{}
	}
	return players
}

func nonNilGames(games []models.Game) []models.Game {
	if games == nil {
		return []models.Game{}
	}
	return games
}
