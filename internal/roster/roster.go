// Package roster fetches league-official rosters from the NHL and MLB stats
// APIs. Used to backfill teams whose primary provider returned a thin player
// list. Lookups are best-effort: any failure yields an empty roster.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/scorecheck/scorecheck/internal/models"
)

const (
	nhlBaseURL = "https://statsapi.web.nhl.com/api/v1"
	mlbBaseURL = "https://statsapi.mlb.com/api/v1"
)

// Client fetches official rosters.
type Client struct {
	httpClient *http.Client
	nhlBaseURL string
	mlbBaseURL string
	logger     *slog.Logger
}

// NewClient creates a roster client.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		nhlBaseURL: nhlBaseURL,
		mlbBaseURL: mlbBaseURL,
		logger:     logger,
	}
}

type teamsResponse struct {
	Teams []struct {
		ID int `json:"id"`
	} `json:"teams"`
}

type rosterResponse struct {
	Roster []struct {
		Person struct {
			FullName string `json:"fullName"`
		} `json:"person"`
		Position struct {
			Abbreviation string `json:"abbreviation"`
			Name         string `json:"name"`
		} `json:"position"`
	} `json:"roster"`
}

// NHL fetches an NHL team's roster by team name.
func (c *Client) NHL(ctx context.Context, teamName string) []models.Player {
	teamID, err := c.teamID(ctx, c.nhlBaseURL, url.Values{"name": {teamName}})
	if err != nil || teamID == 0 {
		c.logDebug("nhl roster lookup failed", teamName, err)
		return nil
	}
	players, err := c.roster(ctx, fmt.Sprintf("%s/teams/%d/roster", c.nhlBaseURL, teamID), nil)
	if err != nil {
		c.logDebug("nhl roster fetch failed", teamName, err)
		return nil
	}
	return players
}

// MLB fetches an MLB team's roster by team name for a season.
func (c *Client) MLB(ctx context.Context, teamName, season string) []models.Player {
	teamID, err := c.teamID(ctx, c.mlbBaseURL, url.Values{"name": {teamName}, "sportId": {"1"}})
	if err != nil || teamID == 0 {
		c.logDebug("mlb roster lookup failed", teamName, err)
		return nil
	}
	params := url.Values{}
	if season != "" {
		params.Set("season", season)
	}
	players, err := c.roster(ctx, fmt.Sprintf("%s/teams/%d/roster", c.mlbBaseURL, teamID), params)
	if err != nil {
		c.logDebug("mlb roster fetch failed", teamName, err)
		return nil
	}
	return players
}

func (c *Client) logDebug(msg, teamName string, err error) {
	c.logger.Debug(msg, "team", teamName, "error", err)
}

func (c *Client) teamID(ctx context.Context, baseURL string, params url.Values) (int, error) {
	var resp teamsResponse
	if err := c.getJSON(ctx, baseURL+"/teams", params, &resp); err != nil {
		return 0, err
	}
	if len(resp.Teams) == 0 {
		return 0, nil
	}
	return resp.Teams[0].ID, nil
}

func (c *Client) roster(ctx context.Context, rawURL string, params url.Values) ([]models.Player, error) {
	var resp rosterResponse
	if err := c.getJSON(ctx, rawURL, params, &resp); err != nil {
		return nil, err
	}
	players := make([]models.Player, 0, len(resp.Roster))
	for _, item := range resp.Roster {
		name := item.Person.FullName
		if name == "" {
			continue
		}
		position := item.Position.Abbreviation
		if position == "" {
			position = item.Position.Name
		}
		if position == "" {
			position = "-"
		}
		players = append(players, models.Player{Name: name, Position: position, Stats: map[string]float64{}})
	}
	return players, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, dst any) error {
	u := rawURL
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("statsapi returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// Merge combines a base player list with extras, first-seen-wins by exact
// case-sensitive name match. Base order is preserved; unseen extras append
// in order.
func Merge(base, extra []models.Player) []models.Player {
	merged := make([]models.Player, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, p := range base {
		if p.Name == "" || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		merged = append(merged, p)
	}
	for _, p := range extra {
		if p.Name == "" || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		merged = append(merged, p)
	}
	return merged
}
