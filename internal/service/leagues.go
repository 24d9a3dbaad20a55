package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/scorecheck/scorecheck/internal/cache"
	"github.com/scorecheck/scorecheck/internal/config"
	"github.com/scorecheck/scorecheck/internal/league"
	"github.com/scorecheck/scorecheck/internal/models"
	"github.com/scorecheck/scorecheck/internal/provider"
)

// LeagueSummary is one entry in the league listing.
type LeagueSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// LeaguesResponse is the league listing payload.
type LeaguesResponse struct {
	Leagues []LeagueSummary `json:"leagues"`
}

// Leagues lists the supported leagues and whether the active source covers
// them.
func (s *Service) Leagues(ctx context.Context) (*LeaguesResponse, error) {
	key := fmt.Sprintf("leagues:%s:%s", s.cfg.DataSource, s.cfg.DefaultSeason)
	var cached LeaguesResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	resp := &LeaguesResponse{Leagues: make([]LeagueSummary, 0, len(league.All()))}
	for _, lg := range league.All() {
		available := true
		if s.cfg.DataSource == config.SourceTheSportsDB {
			available = lg.SportsDBName != "" || len(league.StaticTeams(lg.Key)) > 0
		}
		resp.Leagues = append(resp.Leagues, LeagueSummary{ID: lg.Key, Name: lg.Name, Available: available})
	}

	s.cache.SetJSON(ctx, key, resp, cache.TTLLeagues)
	return resp, nil
}

// LeagueTeamsResponse is the team listing payload for one league.
type LeagueTeamsResponse struct {
	League string        `json:"league"`
	Teams  []models.Team `json:"teams"`
	Source string        `json:"source"`
}

// LeagueTeams lists a league's teams. With TheSportsDB active the listing is
// fetched live (stale data served on rate limits); otherwise the static
// registry is used, enriched with ESPN logos when ESPN is active.
func (s *Service) LeagueTeams(ctx context.Context, leagueID string) (*LeagueTeamsResponse, error) {
	lg, ok := league.Lookup(leagueID)
	if !ok {
		return nil, notFound("League not found")
	}

	key := fmt.Sprintf("league_teams:v2:%s:%s:%s", s.cfg.DataSource, lg.Key, s.cfg.DefaultSeason)
	var cached LeagueTeamsResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	if s.cfg.DataSource == config.SourceTheSportsDB && lg.SportsDBName != "" {
		teams, err := s.sportsDBLeagueTeams(ctx, lg)
		if err != nil {
			return nil, rateLimited("Rate limited by TheSportsDB. Please retry.")
		}
		resp := &LeagueTeamsResponse{League: lg.Name, Teams: teams, Source: config.SourceTheSportsDB}
		s.cache.SetJSON(ctx, key, resp, cache.TTLLeagueTeams)
		return resp, nil
	}

	teams := league.StaticTeams(lg.Key)
	source := "static"
	if s.cfg.DataSource == config.SourceESPN {
		conn, err := s.espnFor(lg)
		var logos map[string]string
		if err == nil {
			logos, err = conn.TeamLogos(ctx)
		}
		if err != nil {
			s.logger.Warn("failed to enrich league teams with logos", "league", lg.Key, "error", err)
		} else {
			for i := range teams {
				teams[i].Logo = logoForTeam(logos, lg.Key, teams[i].Name)
			}
			source = config.SourceESPN
		}
	}

	resp := &LeagueTeamsResponse{League: lg.Name, Teams: teams, Source: source}
	s.cache.SetJSON(ctx, key, resp, cache.TTLLeagueTeams)
	return resp, nil
}

// logoForTeam resolves a team's logo from a lowercase-name-keyed map, trying
// each search candidate so rebranded teams still match older feed names.
func logoForTeam(logosByName map[string]string, leagueKey, teamName string) string {
	for _, candidate := range league.SearchCandidates(leagueKey, teamName) {
		if logo := logosByName[strings.ToLower(candidate)]; logo != "" {
			return logo
		}
	}
	return ""
}

// sportsDBLeagueTeams returns the live listing through the in-process
// secondary cache. A rate-limited refresh serves the stale entry when one
// exists.
func (s *Service) sportsDBLeagueTeams(ctx context.Context, lg league.Info) ([]models.Team, error) {
	s.mu.Lock()
	entry, ok := s.leagueTeams[lg.Key]
	s.mu.Unlock()
	if ok && s.clock.Now().Sub(entry.fetchedAt) < cache.TTLLeagueTeams {
		return entry.teams, nil
	}

	teams, err := s.fetchSportsDBLeagueTeams(ctx, lg)
	if err != nil {
		if provider.IsRateLimit(err) && ok {
			s.logger.Warn("rate limited while listing league teams, serving stale data", "league", lg.Key)
			return entry.teams, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.leagueTeams[lg.Key] = secondaryTeamsEntry{teams: teams, fetchedAt: s.clock.Now()}
	s.mu.Unlock()
	return teams, nil
}

// fetchSportsDBLeagueTeams lists a league's teams directly, expanding a small
// result set with throttled a-z searches filtered by league name.
func (s *Service) fetchSportsDBLeagueTeams(ctx context.Context, lg league.Info) ([]models.Team, error) {
	conn := s.sportsDBFor()
	data, err := conn.TeamsByLeague(ctx, lg.SportsDBName)
	if err != nil {
		return nil, err
	}
	teams := conn.ExtractTeams(data)

	if len(teams) < 20 {
		expanded := make(map[string]models.Team, len(teams))
		for _, t := range teams {
			expanded[t.ID] = t
		}
		for q := 'a'; q <= 'z'; q++ {
			searchData, err := conn.SearchTeams(ctx, s.cfg.DefaultSeason, string(q))
			if err != nil {
				s.logger.Warn("league team search aborted", "query", string(q), "error", err)
				break
			}
			for _, t := range conn.ExtractTeams(searchData) {
				if t.League != lg.SportsDBName {
					continue
				}
				expanded[t.ID] = t
			}
			s.clock.Sleep(200 * time.Millisecond)
		}
		teams = teams[:0]
		for _, t := range expanded {
			teams = append(teams, t)
		}
	}

	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}
