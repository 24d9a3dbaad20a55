// Package sportsdb implements the connector for TheSportsDB, a free sports
// database with no authentication. The free tier throttles aggressively, so
// outbound requests go through a token bucket on top of the shared retry.
package sportsdb

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/scorecheck/scorecheck/internal/models"
	"github.com/scorecheck/scorecheck/internal/provider"
)

// BaseURL is the free-tier endpoint root.
const BaseURL = "https://www.thesportsdb.com/api/v1/json/123"

const (
	gamesCap   = 30
	playersCap = 50
)

// Connector talks to TheSportsDB.
type Connector struct {
	client  *provider.Client
	baseURL string
	limiter *rate.Limiter
}

// New creates a TheSportsDB connector.
func New(baseURL string, client *provider.Client) *Connector {
	return &Connector{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
}

// Name implements provider.Connector.
func (c *Connector) Name() string { return "thesportsdb" }

func (c *Connector) get(ctx context.Context, endpoint string, params url.Values) (provider.Payload, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return c.client.GetJSON(ctx, c.baseURL+endpoint, params, nil)
}

// SearchTeams searches by team name. An empty query returns an empty payload.
func (c *Connector) SearchTeams(ctx context.Context, season, query string) (provider.Payload, error) {
	if strings.TrimSpace(query) == "" {
		return provider.Payload{}, nil
	}
	return c.get(ctx, "/searchteams.php", url.Values{"t": {query}})
}

// TeamsByLeague fetches all teams for a league by name.
func (c *Connector) TeamsByLeague(ctx context.Context, leagueName string) (provider.Payload, error) {
	if leagueName == "" {
		return provider.Payload{}, nil
	}
	return c.get(ctx, "/search_all_teams.php", url.Values{"l": {leagueName}})
}

func (c *Connector) teamByID(ctx context.Context, teamID string) (provider.Payload, error) {
	if teamID == "" {
		return provider.Payload{}, nil
	}
	return c.get(ctx, "/lookupteam.php", url.Values{"id": {teamID}})
}

// FetchPlayers fetches a team's full player list.
func (c *Connector) FetchPlayers(ctx context.Context, season, teamID string) (provider.Payload, error) {
	if teamID == "" {
		return provider.Payload{}, nil
	}
	return c.get(ctx, "/lookup_all_players.php", url.Values{"id": {teamID}})
}

// FetchGames prefers full-season events for the team's league, filtered to
// the team, falling back to the last-events endpoint. Stale season tokens
// are common upstream, so alternate season formats are tried too.
func (c *Connector) FetchGames(ctx context.Context, season, teamID string) (provider.Payload, error) {
	if teamID == "" {
		return provider.Payload{}, nil
	}

	teamData, err := c.teamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	var leagueID, sport string
	if teams := provider.AsSlice(teamData["teams"]); len(teams) > 0 {
		info := provider.AsMap(teams[0])
		leagueID = provider.Str(info, "idLeague")
		sport = strings.ToLower(provider.Str(info, "strSport"))
	}

	if leagueID != "" {
		for _, candidate := range seasonCandidates(season, sport) {
			events, err := c.get(ctx, "/eventsseason.php", url.Values{"id": {leagueID}, "s": {candidate}})
			if err != nil {
				return nil, err
			}
			filtered := filterTeamEvents(provider.AsSlice(events["events"]), teamID)
			if len(filtered) > 0 {
				return provider.Payload{"results": filtered}, nil
			}
		}
	}

	return c.get(ctx, "/eventslast.php", url.Values{"id": {teamID}})
}

// seasonCandidates expands a season token into the formats TheSportsDB may
// key the league's events under: the token itself, plus the single-year or
// split-year variant for the sport.
func seasonCandidates(season, sport string) []string {
	s := strings.TrimSpace(season)
	candidates := []string{}
	add := func(v string) {
		if v == "" {
			return
		}
		for _, existing := range candidates {
			if existing == v {
				return
			}
		}
		candidates = append(candidates, v)
	}

	add(s)
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		add(strings.TrimSpace(parts[len(parts)-1]))
	} else if sport == "basketball" || sport == "ice hockey" {
		if year, err := strconv.Atoi(s); err == nil {
			add(fmt.Sprintf("%d-%d", year, year+1))
		}
	}
	return candidates
}

func filterTeamEvents(events []any, teamID string) []any {
	filtered := make([]any, 0, len(events))
	for _, raw := range events {
		event := provider.AsMap(raw)
		if event == nil {
			continue
		}
		if provider.Str(event, "idHomeTeam") == teamID || provider.Str(event, "idAwayTeam") == teamID {
			filtered = append(filtered, raw)
		}
	}
	return filtered
}

// EventStats fetches player-level stats for one event, when available.
func (c *Connector) EventStats(ctx context.Context, eventID string) (provider.Payload, error) {
	if eventID == "" {
		return provider.Payload{}, nil
	}
	return c.get(ctx, "/lookupeventstats.php", url.Values{"id": {eventID}})
}

// preferredStatFields maps TheSportsDB stat columns to canonical stat names.
var preferredStatFields = []struct{ source, target string }{
	{"intPoints", "points"},
	{"intRebounds", "rebounds"},
	{"intAssists", "assists"},
	{"intGoals", "goals"},
	{"intHomeRuns", "home_runs"},
	{"intRBI", "rbi"},
	{"intHits", "hits"},
	{"strBattingAverage", "batting_avg"},
}

// ExtractTeam pulls the first search result.
func (c *Connector) ExtractTeam(data provider.Payload) *models.ProviderTeam {
	teams := provider.AsSlice(data["teams"])
	if len(teams) == 0 {
		return nil
	}
	first := provider.AsMap(teams[0])
	if first == nil {
		return nil
	}
	return &models.ProviderTeam{
		ID:   provider.Str(first, "idTeam"),
		Name: provider.Str(first, "strTeam"),
		Logo: provider.Str(first, "strTeamBadge"),
	}
}

// ExtractTeams normalizes a team listing, sorted by name.
func (c *Connector) ExtractTeams(data provider.Payload) []models.Team {
	items := provider.AsSlice(data["teams"])
	teams := make([]models.Team, 0, len(items))
	for _, raw := range items {
		item := provider.AsMap(raw)
		if item == nil {
			continue
		}
		id := provider.Str(item, "idTeam")
		name := provider.Str(item, "strTeam")
		if id == "" || name == "" {
			continue
		}
		teams = append(teams, models.Team{
			ID:     id,
			Name:   name,
			League: provider.Str(item, "strLeague"),
			Logo:   provider.Str(item, "strTeamBadge"),
		})
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}

// ExtractPlayers normalizes a player listing, de-duplicated by name and
// capped. Stats use the preferred field mapping with an
// appearances/goals fallback for players without box-score columns.
func (c *Connector) ExtractPlayers(data provider.Payload) []models.Player {
	results := provider.AsSlice(data["player"])
	if results == nil {
		return nil
	}

	players := make([]models.Player, 0, len(results))
	seen := make(map[string]bool, len(results))
	for _, raw := range results {
		item := provider.AsMap(raw)
		if item == nil {
			continue
		}
		name := provider.Str(item, "strPlayer")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		position := provider.Str(item, "strPosition")
		if position == "" {
			position = "-"
		}

		stats := map[string]float64{}
		for _, field := range preferredStatFields {
			if n, ok := provider.Num(item[field.source]); ok {
				stats[field.target] = provider.RoundStat(n)
			}
		}
		if len(stats) == 0 {
			if n, ok := provider.Num(item["intGoals"]); ok {
				stats["goals"] = provider.RoundStat(n)
			}
			if n, ok := provider.Num(item["intCaps"]); ok {
				stats["appearances"] = provider.RoundStat(n)
			}
		}

		players = append(players, models.Player{Name: name, Position: position, Stats: stats})
		if len(players) >= playersCap {
			break
		}
	}
	return players
}

// ExtractGames normalizes events for the given team into played games,
// newest first.
func (c *Connector) ExtractGames(data provider.Payload, teamName string) []models.Game {
	results := provider.AsSlice(data["results"])
	if results == nil {
		return nil
	}

	teamLower := strings.ToLower(teamName)
	games := make([]models.Game, 0, len(results))
	for _, raw := range results {
		item := provider.AsMap(raw)
		if item == nil {
			continue
		}
		dateStr := provider.Str(item, "dateEvent")
		if dateStr == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", dateStr); err != nil {
			continue
		}
		homeTeam := provider.Str(item, "strHomeTeam")
		awayTeam := provider.Str(item, "strAwayTeam")
		if homeTeam == "" || awayTeam == "" {
			continue
		}

		home := teamLower == strings.ToLower(homeTeam)
		opponent := "TBD"
		switch {
		case home:
			opponent = awayTeam
		case teamLower == strings.ToLower(awayTeam):
			opponent = homeTeam
		}

		game := models.Game{
			ID:       provider.Str(item, "idEvent"),
			Date:     dateStr,
			Opponent: opponent,
			Home:     home,
			Status:   models.StatusUpcoming,
		}
		if score, ok := provider.FormatScore(item["intHomeScore"], item["intAwayScore"]); ok {
			game.Score = score
			game.Status = models.StatusPlayed
		}
		games = append(games, game)
	}

	return provider.SortPlayedDesc(games, gamesCap)
}

// ExtractEventPlayerStats normalizes per-game player stats. Players without
// any numeric stat are dropped; unmapped numeric columns are kept under
// their raw names when no preferred column is present.
func (c *Connector) ExtractEventPlayerStats(data provider.Payload) []models.Player {
	items := provider.AsSlice(data["eventstats"])
	if items == nil {
		return nil
	}

	players := make([]models.Player, 0, len(items))
	for _, raw := range items {
		item := provider.AsMap(raw)
		if item == nil {
			continue
		}
		name := firstNonEmpty(item, "strPlayer", "strPlayerName", "strHomePlayer", "strAwayPlayer", "player")
		if name == "" {
			continue
		}

		stats := map[string]float64{}
		for _, field := range preferredStatFields {
			if n, ok := provider.Num(item[field.source]); ok {
				stats[field.target] = provider.RoundStat(n)
			}
		}
		if len(stats) == 0 {
			for key, value := range item {
				switch key {
				case "idEvent", "idPlayer", "idTeam", "strPlayer", "strPlayerName":
					continue
				}
				if n, ok := provider.Num(value); ok {
					stats[key] = provider.RoundStat(n)
				}
			}
		}
		if len(stats) == 0 {
			continue
		}

		position := provider.Str(item, "strPosition")
		if position == "" {
			position = "-"
		}
		players = append(players, models.Player{Name: name, Position: position, Stats: stats})
	}
	return players
}

func firstNonEmpty(item provider.Payload, keys ...string) string {
	for _, key := range keys {
		if v := provider.Str(item, key); v != "" {
			return v
		}
	}
	return ""
}
