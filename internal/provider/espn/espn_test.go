package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorecheck/scorecheck/internal/models"
	"github.com/scorecheck/scorecheck/internal/provider"
)

const teamListBody = `{
  "sports": [{
    "leagues": [{
      "teams": [
        {"team": {"id": "2", "displayName": "Boston Celtics", "abbreviation": "BOS",
          "logos": [{"href": "https://cdn.example/bos.png"}]}},
        {"team": {"id": "17", "displayName": "Brooklyn Nets", "abbreviation": "BKN"}},
        {"team": {"id": "13", "displayName": "Los Angeles Lakers", "abbreviation": "LAL",
          "logos": []}}
      ]
    }]
  }]
}`

func newTestConnector(t *testing.T, handler http.Handler) (*Connector, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := provider.NewClient(2*time.Second, clockwork.NewRealClock(), nil)
	conn, err := New(srv.URL, "NBA", client)
	require.NoError(t, err)
	return conn, srv
}

func TestNewRejectsUnknownLeague(t *testing.T) {
	client := provider.NewClient(time.Second, clockwork.NewRealClock(), nil)
	_, err := New(BaseURL, "EPL", client)
	assert.Error(t, err)
}

func TestSearchTeamsFiltersTeamList(t *testing.T) {
	conn, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/basketball/nba/teams", r.URL.Path)
		w.Write([]byte(teamListBody))
	}))

	data, err := conn.SearchTeams(context.Background(), "2024", "Boston Celtics")
	require.NoError(t, err)

	team := conn.ExtractTeam(data)
	require.NotNil(t, team)
	assert.Equal(t, "2", team.ID)
	assert.Equal(t, "Boston Celtics", team.Name)
	assert.Equal(t, "https://cdn.example/bos.png", team.Logo)
}

func TestExtractTeamUsesCDNFallbackLogo(t *testing.T) {
	conn, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(teamListBody))
	}))

	data, err := conn.SearchTeams(context.Background(), "2024", "Brooklyn Nets")
	require.NoError(t, err)

	team := conn.ExtractTeam(data)
	require.NotNil(t, team)
	assert.Equal(t, "https://a.espncdn.com/i/teamlogos/nba/500/scoreboard/bkn.png", team.Logo)
}

func TestExtractTeamNoMatch(t *testing.T) {
	conn, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(teamListBody))
	}))

	data, err := conn.SearchTeams(context.Background(), "2024", "Springfield Isotopes")
	require.NoError(t, err)
	assert.Nil(t, conn.ExtractTeam(data))
}

func TestTeamLogos(t *testing.T) {
	conn, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(teamListBody))
	}))

	logos, err := conn.TeamLogos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/bos.png", logos["boston celtics"])
	assert.Contains(t, logos, "brooklyn nets")
}

func TestExtractPlayersFlattensGroups(t *testing.T) {
	conn, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/basketball/nba/teams/2/roster", r.URL.Path)
		w.Write([]byte(`{
  "athletes": [
    {"position": "Guards", "items": [
      {"fullName": "Derrick White"},
      {"fullName": "Jrue Holiday", "position": {"abbreviation": "PG"}}
    ]},
    {"fullName": "Al Horford", "position": {"abbreviation": "C"}}
  ]
}`))
	}))

	data, err := conn.FetchPlayers(context.Background(), "2024-2025", "2")
	require.NoError(t, err)

	players := conn.ExtractPlayers(data)
	require.Len(t, players, 3)
	assert.Equal(t, models.Player{Name: "Derrick White", Position: "Guards", Stats: map[string]float64{}}, players[0])
	assert.Equal(t, "PG", players[1].Position)
	assert.Equal(t, "C", players[2].Position)
}

func TestFetchGamesUsesLaterSplitYear(t *testing.T) {
	conn, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025", r.URL.Query().Get("season"))
		w.Write([]byte(`{"events": []}`))
	}))

	_, err := conn.FetchGames(context.Background(), "2024-2025", "2")
	require.NoError(t, err)
}

func TestExtractGames(t *testing.T) {
	conn, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
  "events": [
    {"id": "g1", "date": "2025-01-10T00:00Z", "competitions": [{"competitors": [
      {"homeAway": "home", "team": {"displayName": "Boston Celtics"}, "score": {"value": 120, "displayValue": "120"}},
      {"homeAway": "away", "team": {"displayName": "Brooklyn Nets"}, "score": {"value": 99, "displayValue": "99"}}
    ]}]},
    {"id": "g2", "date": "2025-02-01T19:30Z", "competitions": [{"competitors": [
      {"homeAway": "home", "team": {"displayName": "Los Angeles Lakers"}, "score": "101"},
      {"homeAway": "away", "team": {"displayName": "Boston Celtics"}, "score": "105"}
    ]}]},
    {"id": "g3", "date": "2025-06-01T00:00Z", "competitions": [{"competitors": [
      {"homeAway": "home", "team": {"displayName": "Boston Celtics"}},
      {"homeAway": "away", "team": {"displayName": "Brooklyn Nets"}}
    ]}]}
  ]
}`))
	}))

	data, err := conn.FetchGames(context.Background(), "2024-2025", "2")
	require.NoError(t, err)

	games := conn.ExtractGames(data, "Boston Celtics")
	require.Len(t, games, 2) // unscored g3 is upcoming and filtered out
	assert.Equal(t, "g2", games[0].ID)
	assert.Equal(t, "2025-02-01", games[0].Date)
	assert.Equal(t, "Los Angeles Lakers", games[0].Opponent)
	assert.False(t, games[0].Home)
	assert.Equal(t, "105-101", games[0].Score)
	assert.Equal(t, models.StatusPlayed, games[0].Status)

	assert.Equal(t, "g1", games[1].ID)
	assert.True(t, games[1].Home)
	assert.Equal(t, "120-99", games[1].Score)
}

func TestExtractGamesCap(t *testing.T) {
	events := make([]any, 0, 40)
	for i := 0; i < 40; i++ {
		events = append(events, map[string]any{
			"id":   "g",
			"date": "2025-01-02T00:00Z",
			"competitions": []any{map[string]any{"competitors": []any{
				map[string]any{"homeAway": "home", "team": map[string]any{"displayName": "Boston Celtics"}, "score": "100"},
				map[string]any{"homeAway": "away", "team": map[string]any{"displayName": "Brooklyn Nets"}, "score": "90"},
			}}},
		})
	}
	conn, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	games := conn.ExtractGames(provider.Payload{"events": events}, "Boston Celtics")
	assert.Len(t, games, 30)
}

func TestScoreboard(t *testing.T) {
	conn, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/basketball/nba/scoreboard", r.URL.Path)
		assert.Equal(t, "20250110", r.URL.Query().Get("dates"))
		w.Write([]byte(`{
  "events": [
    {"id": "sb1", "date": "2025-01-10T00:30Z",
     "status": {"type": {"detail": "Final", "shortDetail": "Final"}},
     "competitions": [{"competitors": [
       {"homeAway": "home", "team": {"displayName": "Boston Celtics", "abbreviation": "BOS"},
        "score": "120", "records": [{"summary": "30-10"}]},
       {"homeAway": "away", "team": {"displayName": "Brooklyn Nets", "abbreviation": "BKN"},
        "score": "99"}
     ]}]}
  ]
}`))
	}))

	data, err := conn.Scoreboard(context.Background(), "20250110")
	require.NoError(t, err)

	games := conn.ExtractScoreboardGames(data)
	require.Len(t, games, 1)
	g := games[0]
	assert.Equal(t, "sb1", g.ID)
	assert.Equal(t, "2025-01-10", g.Date)
	assert.Equal(t, "2025-01-10T00:30Z", g.StartTime)
	assert.Equal(t, "Final", g.Status)
	assert.Equal(t, "Boston Celtics", g.HomeTeam)
	assert.Equal(t, "Brooklyn Nets", g.AwayTeam)
	assert.Equal(t, "120", g.HomeScore)
	assert.Equal(t, "99", g.AwayScore)
	assert.Equal(t, "30-10", g.HomeRecord)
	assert.Equal(t, "-", g.AwayRecord)
	assert.Equal(t, "https://a.espncdn.com/i/teamlogos/nba/500/bkn.png", g.AwayLogo)
}
