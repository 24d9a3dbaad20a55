// Package apisports implements the connector for the API-Sports family of
// paid stats APIs. Auth is an x-apisports-key header; each league lives on
// its own host. Responses can report errors in-band via an "errors" field
// even on HTTP 200.
package apisports

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/scorecheck/scorecheck/internal/models"
	"github.com/scorecheck/scorecheck/internal/provider"
)

// Per-league production hosts.
var leagueBaseURLs = map[string]string{
	"NBA": "https://v2.nba.api-sports.io",
	"NHL": "https://v1.hockey.api-sports.io",
	"MLB": "https://v1.baseball.api-sports.io",
}

// BaseURLFor returns the host for a league, if API-Sports covers it.
func BaseURLFor(leagueName string) (string, bool) {
	u, ok := leagueBaseURLs[leagueName]
	return u, ok
}

const gamesCap = 10

// Connector talks to one API-Sports host.
type Connector struct {
	client  *provider.Client
	baseURL string
	apiKey  string
}

// New creates an API-Sports connector. The key is required.
func New(baseURL, apiKey string, client *provider.Client) (*Connector, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("api key must be a non-empty string")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	return &Connector{client: client, baseURL: baseURL, apiKey: apiKey}, nil
}

// Name implements provider.Connector.
func (c *Connector) Name() string { return "apisports" }

func (c *Connector) get(ctx context.Context, endpoint string, params url.Values) (provider.Payload, error) {
	headers := map[string]string{"x-apisports-key": c.apiKey}
	data, err := c.client.GetJSON(ctx, c.baseURL+endpoint, params, headers)
	if err != nil {
		return nil, err
	}

	// The API reports failures in-band with HTTP 200.
	switch errs := data["errors"].(type) {
	case map[string]any:
		if len(errs) > 0 {
			return nil, &provider.ResponseError{Reason: fmt.Sprintf("api returned errors: %v", errs)}
		}
	case []any:
		if len(errs) > 0 {
			return nil, &provider.ResponseError{Reason: fmt.Sprintf("api returned errors: %v", errs)}
		}
	}
	return data, nil
}

// SearchTeams searches teams by name within a season.
func (c *Connector) SearchTeams(ctx context.Context, season, query string) (provider.Payload, error) {
	params := url.Values{"season": {season}}
	if query != "" {
		params.Set("search", query)
	}
	return c.get(ctx, "/teams", params)
}

// FetchPlayers fetches players for a team and season.
func (c *Connector) FetchPlayers(ctx context.Context, season, teamID string) (provider.Payload, error) {
	params := url.Values{"season": {season}}
	if teamID != "" {
		params.Set("team", teamID)
	}
	return c.get(ctx, "/players", params)
}

// FetchGames fetches games for a team and season.
func (c *Connector) FetchGames(ctx context.Context, season, teamID string) (provider.Payload, error) {
	params := url.Values{"season": {season}}
	if teamID != "" {
		params.Set("team", teamID)
	}
	return c.get(ctx, "/games", params)
}

// ExtractTeam pulls the first response item that looks like a team.
func (c *Connector) ExtractTeam(data provider.Payload) *models.ProviderTeam {
	for _, raw := range provider.AsSlice(data["response"]) {
		item := provider.AsMap(raw)
		if item == nil {
			continue
		}
		team := provider.AsMap(item["team"])
		if team == nil {
			if _, hasName := item["name"]; hasName {
				team = item
			}
		}
		if team == nil {
			continue
		}
		return &models.ProviderTeam{
			ID:   provider.Str(team, "id"),
			Name: provider.Str(team, "name"),
			Logo: provider.Str(team, "logo"),
		}
	}
	return nil
}

// ExtractPlayers normalizes a player response. Only numeric values from the
// first statistics block are kept.
func (c *Connector) ExtractPlayers(data provider.Payload) []models.Player {
	response := provider.AsSlice(data["response"])
	players := make([]models.Player, 0, len(response))
	for _, raw := range response {
		item := provider.AsMap(raw)
		if item == nil {
			continue
		}
		info := provider.AsMap(item["player"])
		if info == nil {
			info = item
		}

		name := provider.Str(info, "name")
		if name == "" {
			parts := []string{}
			for _, key := range []string{"firstname", "lastname"} {
				if part := provider.Str(info, key); part != "" {
					parts = append(parts, part)
				}
			}
			name = strings.Join(parts, " ")
		}
		if name == "" {
			name = "Unknown"
		}

		position := provider.Str(info, "position")
		if position == "" {
			position = provider.Str(info, "pos")
		}
		if position == "" {
			position = "-"
		}

		var statsSource provider.Payload
		if statistics := provider.AsSlice(item["statistics"]); len(statistics) > 0 {
			statsSource = provider.AsMap(statistics[0])
		} else {
			statsSource = provider.AsMap(item["stats"])
		}
		stats := map[string]float64{}
		for key, value := range statsSource {
			switch n := value.(type) {
			case float64:
				stats[key] = n
			case int:
				stats[key] = float64(n)
			}
		}

		players = append(players, models.Player{Name: name, Position: position, Stats: stats})
	}
	return players
}

// ExtractGames normalizes a games response using the shared score policy.
// Played games come first, sorted date-descending, followed by upcoming games
// in feed order; the cap applies after ordering so the newest games survive.
func (c *Connector) ExtractGames(data provider.Payload, teamName string) []models.Game {
	response := provider.AsSlice(data["response"])
	teamLower := strings.ToLower(teamName)

	games := make([]models.Game, 0, len(response))
	for _, raw := range response {
		item := provider.AsMap(raw)
		if item == nil {
			continue
		}

		date := provider.Str(item, "date")
		if date == "" {
			date = provider.Str(provider.AsMap(item["game"]), "date")
		}

		teams := provider.AsMap(item["teams"])
		homeName := provider.Str(provider.AsMap(teams["home"]), "name")
		awayName := provider.Str(provider.AsMap(teams["away"]), "name")

		home := false
		opponent := "TBD"
		if homeName != "" && awayName != "" {
			switch teamLower {
			case strings.ToLower(homeName):
				home = true
				opponent = awayName
			case strings.ToLower(awayName):
				opponent = homeName
			}
		}

		scores := item["scores"]
		if scores == nil {
			scores = item["score"]
		}
		var score string
		if m := provider.AsMap(scores); m != nil {
			score, _ = provider.FormatScore(m["home"], m["away"])
		} else if n, ok := provider.Num(scores); ok {
			score = fmt.Sprintf("%d", int(n))
		}

		status := models.StatusUpcoming
		if score != "" {
			status = models.StatusPlayed
		}

		games = append(games, models.Game{
			Date:     date,
			Opponent: opponent,
			Home:     home,
			Status:   status,
			Score:    score,
		})
	}

	sort.SliceStable(games, func(i, j int) bool {
		if pi, pj := games[i].Status == models.StatusPlayed, games[j].Status == models.StatusPlayed; pi != pj {
			return pi
		}
		if games[i].Status != models.StatusPlayed {
			return false
		}
		return games[i].Date > games[j].Date
	})
	if len(games) > gamesCap {
		games = games[:gamesCap]
	}
	return games
}
