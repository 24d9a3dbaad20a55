// Package espn implements the connector for ESPN's public site JSON
// endpoints. No authentication; team search is an in-memory filter over the
// full league team list, so it returns loosely-matched supersets that the
// orchestrator verifies name-by-name.
package espn

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/scorecheck/scorecheck/internal/models"
	"github.com/scorecheck/scorecheck/internal/provider"
)

// BaseURL is the production endpoint root.
const BaseURL = "https://site.api.espn.com/apis/site/v2"

// gamesCap bounds how many played games an extraction returns.
const gamesCap = 30

type leaguePath struct {
	sport  string
	league string
}

var leaguePaths = map[string]leaguePath{
	"NBA": {sport: "basketball", league: "nba"},
	"NHL": {sport: "hockey", league: "nhl"},
	"MLB": {sport: "baseball", league: "mlb"},
}

// Connector serves one league's ESPN endpoints.
type Connector struct {
	client  *provider.Client
	baseURL string
	path    leaguePath
}

// New creates an ESPN connector for a league. Fails when ESPN has no path
// for the league.
func New(baseURL, leagueName string, client *provider.Client) (*Connector, error) {
	path, ok := leaguePaths[leagueName]
	if !ok {
		return nil, fmt.Errorf("unsupported league for ESPN connector: %s", leagueName)
	}
	return &Connector{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    path,
	}, nil
}

// Name implements provider.Connector.
func (c *Connector) Name() string { return "espn" }

func (c *Connector) get(ctx context.Context, endpoint string, params url.Values) (provider.Payload, error) {
	return c.client.GetJSON(ctx, c.baseURL+endpoint, params, nil)
}

func (c *Connector) teamsEndpoint() string {
	return fmt.Sprintf("/sports/%s/%s/teams", c.path.sport, c.path.league)
}

func (c *Connector) teamEndpoint(teamID, suffix string) string {
	return fmt.Sprintf("/sports/%s/%s/teams/%s/%s", c.path.sport, c.path.league, teamID, suffix)
}

func (c *Connector) scoreboardEndpoint() string {
	return fmt.Sprintf("/sports/%s/%s/scoreboard", c.path.sport, c.path.league)
}

// allTeams fetches the complete league team list.
func (c *Connector) allTeams(ctx context.Context) ([]provider.Payload, error) {
	params := url.Values{}
	params.Set("limit", "200")
	data, err := c.get(ctx, c.teamsEndpoint(), params)
	if err != nil {
		return nil, err
	}

	sports := provider.AsSlice(data["sports"])
	if len(sports) == 0 {
		return nil, nil
	}
	leagues := provider.AsSlice(provider.AsMap(sports[0])["leagues"])
	if len(leagues) == 0 {
		return nil, nil
	}
	entries := provider.AsSlice(provider.AsMap(leagues[0])["teams"])

	teams := make([]provider.Payload, 0, len(entries))
	for _, entry := range entries {
		if team := provider.AsMap(provider.AsMap(entry)["team"]); team != nil {
			teams = append(teams, team)
		}
	}
	return teams, nil
}

// SearchTeams filters the full team list by a loose name match across
// display name, short name, location, and slug.
func (c *Connector) SearchTeams(ctx context.Context, season, query string) (provider.Payload, error) {
	teams, err := c.allTeams(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matched := make([]any, 0, len(teams))
	for _, team := range teams {
		if needle == "" || matchesTeam(needle, team) {
			matched = append(matched, map[string]any{"team": map[string]any(team)})
		}
	}
	return provider.Payload{"response": matched}, nil
}

func matchesTeam(needle string, team provider.Payload) bool {
	for _, key := range []string{"displayName", "name", "shortDisplayName", "location", "slug"} {
		value := provider.Str(team, key)
		if value == "" {
			continue
		}
		if strings.Contains(strings.ToLower(value), needle) || fuzzy.MatchFold(needle, value) {
			return true
		}
	}
	return false
}

// FetchPlayers fetches a team's roster.
func (c *Connector) FetchPlayers(ctx context.Context, season, teamID string) (provider.Payload, error) {
	data, err := c.get(ctx, c.teamEndpoint(teamID, "roster"), nil)
	if err != nil {
		return nil, err
	}
	athletes := data["athletes"]
	if provider.AsSlice(athletes) == nil {
		athletes = []any{}
	}
	return provider.Payload{"athletes": athletes}, nil
}

// FetchGames fetches a team's schedule for a season. Split-year seasons use
// the later year, which is how ESPN keys them.
func (c *Connector) FetchGames(ctx context.Context, season, teamID string) (provider.Payload, error) {
	params := url.Values{}
	if s := scheduleSeason(season); s != "" {
		params.Set("season", s)
	}
	data, err := c.get(ctx, c.teamEndpoint(teamID, "schedule"), params)
	if err != nil {
		return nil, err
	}
	events := data["events"]
	if provider.AsSlice(events) == nil {
		events = []any{}
	}
	return provider.Payload{"events": events}, nil
}

func scheduleSeason(season string) string {
	s := strings.TrimSpace(season)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		for i := len(parts) - 1; i >= 0; i-- {
			if p := strings.TrimSpace(parts[i]); p != "" {
				return p
			}
		}
	}
	return s
}

// Scoreboard fetches the league scoreboard, optionally for a YYYYMMDD date.
func (c *Connector) Scoreboard(ctx context.Context, date string) (provider.Payload, error) {
	params := url.Values{}
	if date != "" {
		params.Set("dates", date)
	}
	data, err := c.get(ctx, c.scoreboardEndpoint(), params)
	if err != nil {
		return nil, err
	}
	events := data["events"]
	if provider.AsSlice(events) == nil {
		events = []any{}
	}
	return provider.Payload{"events": events}, nil
}

// ExtractTeam pulls the first matched team with its logo. When ESPN returns
// no logo list, the CDN scoreboard URL derived from the abbreviation is used.
func (c *Connector) ExtractTeam(data provider.Payload) *models.ProviderTeam {
	response := provider.AsSlice(data["response"])
	if len(response) == 0 {
		return nil
	}
	first := provider.AsMap(response[0])
	team := provider.AsMap(first["team"])
	if team == nil {
		team = first
	}
	if team == nil {
		return nil
	}

	name := provider.Str(team, "displayName")
	if name == "" {
		name = provider.Str(team, "name")
	}
	return &models.ProviderTeam{
		ID:   provider.Str(team, "id"),
		Name: name,
		Logo: c.teamLogo(team, "scoreboard/"),
	}
}

func (c *Connector) teamLogo(team provider.Payload, cdnPrefix string) string {
	for _, item := range provider.AsSlice(team["logos"]) {
		if href := strings.TrimSpace(provider.Str(provider.AsMap(item), "href")); href != "" {
			return href
		}
	}
	if direct := strings.TrimSpace(provider.Str(team, "logo")); direct != "" {
		return direct
	}
	abbr := strings.ToLower(strings.TrimSpace(provider.Str(team, "abbreviation")))
	if abbr == "" {
		return ""
	}
	return fmt.Sprintf("https://a.espncdn.com/i/teamlogos/%s/500/%s%s.png", c.path.league, cdnPrefix, abbr)
}

// TeamLogos returns a lowercase display-name to logo URL index for the whole
// league, used to enrich static team listings.
func (c *Connector) TeamLogos(ctx context.Context) (map[string]string, error) {
	teams, err := c.allTeams(ctx)
	if err != nil {
		return nil, err
	}
	logos := make(map[string]string, len(teams))
	for _, team := range teams {
		name := strings.TrimSpace(provider.Str(team, "displayName"))
		if name == "" {
			name = strings.TrimSpace(provider.Str(team, "name"))
		}
		if name == "" {
			continue
		}
		logos[strings.ToLower(name)] = c.teamLogo(team, "scoreboard/")
	}
	return logos, nil
}

// ExtractPlayers normalizes a roster payload. Rosters may arrive grouped by
// position ({"items": [...], "position": "Forwards"}); groups are flattened
// with the group position applied to members that lack one.
func (c *Connector) ExtractPlayers(data provider.Payload) []models.Player {
	athletes := provider.AsSlice(data["athletes"])
	if athletes == nil {
		return nil
	}

	flattened := make([]provider.Payload, 0, len(athletes))
	for _, entry := range athletes {
		m := provider.AsMap(entry)
		if m == nil {
			continue
		}
		items := provider.AsSlice(m["items"])
		if items == nil {
			flattened = append(flattened, m)
			continue
		}
		groupPosition := strings.TrimSpace(provider.Str(m, "position"))
		for _, grouped := range items {
			athlete := provider.AsMap(grouped)
			if athlete == nil {
				continue
			}
			if groupPosition != "" && provider.AsMap(athlete["position"]) == nil {
				clone := make(provider.Payload, len(athlete)+1)
				for k, v := range athlete {
					clone[k] = v
				}
				clone["position"] = map[string]any{"abbreviation": groupPosition}
				athlete = clone
			}
			flattened = append(flattened, athlete)
		}
	}

	players := make([]models.Player, 0, len(flattened))
	for _, athlete := range flattened {
		name := provider.Str(athlete, "fullName")
		if name == "" {
			name = provider.Str(athlete, "displayName")
		}
		if name == "" {
			continue
		}
		position := provider.Str(provider.AsMap(athlete["position"]), "abbreviation")
		if position == "" {
			position = "-"
		}
		players = append(players, models.Player{Name: name, Position: position, Stats: map[string]float64{}})
	}
	return players
}

// ExtractGames normalizes schedule events for the given team into played
// games, newest first.
func (c *Connector) ExtractGames(data provider.Payload, teamName string) []models.Game {
	events := provider.AsSlice(data["events"])
	if events == nil {
		return nil
	}

	teamLower := strings.ToLower(teamName)
	games := make([]models.Game, 0, len(events))

	for _, raw := range events {
		event := provider.AsMap(raw)
		if event == nil {
			continue
		}
		competitors := eventCompetitors(event)
		if competitors == nil {
			continue
		}

		var homeName, awayName string
		var homeScore, awayScore any
		for _, comp := range competitors {
			team := provider.AsMap(comp["team"])
			display := provider.Str(team, "displayName")
			if provider.Str(comp, "homeAway") == "home" {
				homeName, homeScore = display, comp["score"]
			} else {
				awayName, awayScore = display, comp["score"]
			}
		}
		if homeName == "" || awayName == "" {
			continue
		}

		isHome := teamLower == strings.ToLower(homeName)
		isAway := teamLower == strings.ToLower(awayName)
		if !isHome && !isAway {
			continue
		}
		opponent := awayName
		if isAway {
			opponent = homeName
		}

		game := models.Game{
			ID:       provider.Str(event, "id"),
			Date:     eventDate(provider.Str(event, "date")),
			Opponent: opponent,
			Home:     isHome,
			Status:   models.StatusUpcoming,
		}
		if score, ok := provider.FormatScore(competitorScore(homeScore), competitorScore(awayScore)); ok {
			game.Score = score
			game.Status = models.StatusPlayed
		}
		games = append(games, game)
	}

	return provider.SortPlayedDesc(games, gamesCap)
}

// competitorScore unwraps ESPN's score shapes (number, numeric string, or a
// {"value", "displayValue"} object) into something the shared score policy
// can parse.
func competitorScore(v any) any {
	if m := provider.AsMap(v); m != nil {
		for _, key := range []string{"value", "displayValue"} {
			if n, ok := provider.Num(m[key]); ok {
				return n
			}
		}
		return m
	}
	return v
}

func eventCompetitors(event provider.Payload) []provider.Payload {
	competitions := provider.AsSlice(event["competitions"])
	if len(competitions) == 0 {
		return nil
	}
	raw := provider.AsSlice(provider.AsMap(competitions[0])["competitors"])
	if raw == nil {
		return nil
	}
	competitors := make([]provider.Payload, 0, len(raw))
	for _, item := range raw {
		if m := provider.AsMap(item); m != nil {
			competitors = append(competitors, m)
		}
	}
	return competitors
}

func eventDate(raw string) string {
	if raw == "" {
		return ""
	}
	// ESPN emits both second and minute precision timestamps.
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}

// ExtractScoreboardGames normalizes a daily scoreboard payload.
func (c *Connector) ExtractScoreboardGames(data provider.Payload) []models.ScoreboardGame {
	events := provider.AsSlice(data["events"])
	if events == nil {
		return nil
	}

	games := make([]models.ScoreboardGame, 0, len(events))
	for _, raw := range events {
		event := provider.AsMap(raw)
		if event == nil {
			continue
		}
		competitors := eventCompetitors(event)
		if competitors == nil {
			continue
		}

		var home, away provider.Payload
		for _, comp := range competitors {
			switch provider.Str(comp, "homeAway") {
			case "home":
				home = comp
			case "away":
				away = comp
			}
		}
		if home == nil || away == nil {
			continue
		}

		homeTeam := provider.AsMap(home["team"])
		awayTeam := provider.AsMap(away["team"])
		start := provider.Str(event, "date")

		games = append(games, models.ScoreboardGame{
			ID:         provider.Str(event, "id"),
			Date:       eventDate(start),
			StartTime:  start,
			Status:     eventStatusDetail(event),
			HomeTeam:   teamDisplayName(homeTeam),
			AwayTeam:   teamDisplayName(awayTeam),
			HomeLogo:   c.teamLogo(homeTeam, ""),
			AwayLogo:   c.teamLogo(awayTeam, ""),
			HomeScore:  scoreboardScore(home),
			AwayScore:  scoreboardScore(away),
			HomeRecord: recordSummary(home),
			AwayRecord: recordSummary(away),
		})
	}
	return games
}

func teamDisplayName(team provider.Payload) string {
	if name := provider.Str(team, "displayName"); name != "" {
		return name
	}
	return provider.Str(team, "name")
}

func eventStatusDetail(event provider.Payload) string {
	statusType := provider.AsMap(provider.AsMap(event["status"])["type"])
	for _, key := range []string{"detail", "shortDetail", "description"} {
		if v := provider.Str(statusType, key); v != "" {
			return v
		}
	}
	return ""
}

func scoreboardScore(competitor provider.Payload) string {
	if v := provider.Str(competitor, "score"); v != "" {
		return v
	}
	return "-"
}

func recordSummary(competitor provider.Payload) string {
	for _, item := range provider.AsSlice(competitor["records"]) {
		if summary := strings.TrimSpace(provider.Str(provider.AsMap(item), "summary")); summary != "" {
			return summary
		}
	}
	return "-"
}
