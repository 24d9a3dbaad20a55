package apisports

import (
	"context"
	"fmt"
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

func newTestConnector(t *testing.T, handler http.Handler) *Connector {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := provider.NewClient(2*time.Second, clockwork.NewRealClock(), nil)
	conn, err := New(srv.URL, "test-key", client)
	require.NoError(t, err)
	return conn
}

func noRetryClient() *provider.Client {
	p := provider.DefaultRetryPolicy()
	p.MaxRetries = 0
	return provider.NewClient(2*time.Second, clockwork.NewRealClock(), nil).WithRetry(p)
}

func TestNewRequiresKey(t *testing.T) {
	client := provider.NewClient(time.Second, clockwork.NewRealClock(), nil)
	_, err := New("https://v2.nba.api-sports.io", "  ", client)
	assert.Error(t, err)
}

func TestBaseURLFor(t *testing.T) {
	u, ok := BaseURLFor("NHL")
	require.True(t, ok)
	assert.Equal(t, "https://v1.hockey.api-sports.io", u)

	_, ok = BaseURLFor("EPL")
	assert.False(t, ok)
}

func TestSearchTeamsSendsKeyHeader(t *testing.T) {
	conn := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-apisports-key"))
		assert.Equal(t, "/teams", r.URL.Path)
		assert.Equal(t, "2024", r.URL.Query().Get("season"))
		assert.Equal(t, "Boston Celtics", r.URL.Query().Get("search"))
		w.Write([]byte(`{"response": [{"id": 2, "name": "Boston Celtics", "logo": "https://cdn.example/bos.png"}]}`))
	}))

	data, err := conn.SearchTeams(context.Background(), "2024", "Boston Celtics")
	require.NoError(t, err)

	team := conn.ExtractTeam(data)
	require.NotNil(t, team)
	assert.Equal(t, "2", team.ID)
	assert.Equal(t, "Boston Celtics", team.Name)
}

func TestCredentialRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	conn, err := New(srv.URL, "bad-key", noRetryClient())
	require.NoError(t, err)

	_, err = conn.SearchTeams(context.Background(), "2024", "Boston Celtics")
	assert.True(t, provider.IsAuth(err))
}

func TestInBandErrorsBecomeResponseError(t *testing.T) {
	conn := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": {"token": "Invalid subscription"}, "response": []}`))
	}))

	_, err := conn.SearchTeams(context.Background(), "2024", "Boston Celtics")
	var respErr *provider.ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Contains(t, respErr.Reason, "Invalid subscription")
}

func TestEmptyErrorsFieldIsFine(t *testing.T) {
	conn := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [], "response": []}`))
	}))

	data, err := conn.SearchTeams(context.Background(), "2024", "Boston Celtics")
	require.NoError(t, err)
	assert.Nil(t, conn.ExtractTeam(data))
}

func TestExtractPlayers(t *testing.T) {
	conn := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	players := conn.ExtractPlayers(provider.Payload{"response": []any{
		map[string]any{
			"player":     map[string]any{"firstname": "Jayson", "lastname": "Tatum", "position": "F"},
			"statistics": []any{map[string]any{"points": 27.1, "games": 74.0, "team": "BOS"}},
		},
		map[string]any{"name": "Flat Shape", "pos": "G", "stats": map[string]any{"assists": 5.0}},
	}})
	require.Len(t, players, 2)

	assert.Equal(t, "Jayson Tatum", players[0].Name)
	assert.Equal(t, "F", players[0].Position)
	assert.Equal(t, 27.1, players[0].Stats["points"])
	_, hasTeam := players[0].Stats["team"] // non-numeric values dropped
	assert.False(t, hasTeam)

	assert.Equal(t, "Flat Shape", players[1].Name)
	assert.Equal(t, "G", players[1].Position)
	assert.Equal(t, 5.0, players[1].Stats["assists"])
}

func TestExtractGames(t *testing.T) {
	conn := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	games := conn.ExtractGames(provider.Payload{"response": []any{
		map[string]any{
			"date":  "2025-01-10",
			"teams": map[string]any{"home": map[string]any{"name": "Boston Celtics"}, "away": map[string]any{"name": "Brooklyn Nets"}},
			"scores": map[string]any{
				"home": map[string]any{"points": 120.0},
				"away": map[string]any{"points": 99.0},
			},
		},
		map[string]any{
			"game":  map[string]any{"date": "2025-03-01"},
			"teams": map[string]any{"home": map[string]any{"name": "Brooklyn Nets"}, "away": map[string]any{"name": "Boston Celtics"}},
		},
	}}, "Boston Celtics")
	require.Len(t, games, 2)

	assert.Equal(t, "2025-01-10", games[0].Date)
	assert.True(t, games[0].Home)
	assert.Equal(t, "Brooklyn Nets", games[0].Opponent)
	assert.Equal(t, "120-99", games[0].Score)
	assert.Equal(t, models.StatusPlayed, games[0].Status)

	assert.Equal(t, "2025-03-01", games[1].Date)
	assert.False(t, games[1].Home)
	assert.Equal(t, models.StatusUpcoming, games[1].Status)
	assert.Empty(t, games[1].Score)
}

func TestExtractGamesSortsPlayedDesc(t *testing.T) {
	conn := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	scored := func(date string) map[string]any {
		return map[string]any{
			"date":  date,
			"teams": map[string]any{"home": map[string]any{"name": "A"}, "away": map[string]any{"name": "B"}},
			"scores": map[string]any{
				"home": map[string]any{"points": 100.0},
				"away": map[string]any{"points": 90.0},
			},
		}
	}

	games := conn.ExtractGames(provider.Payload{"response": []any{
		scored("2025-01-10"),
		map[string]any{
			"date":  "2025-03-01",
			"teams": map[string]any{"home": map[string]any{"name": "A"}, "away": map[string]any{"name": "B"}},
		},
		scored("2025-02-20"),
	}}, "A")
	require.Len(t, games, 3)
	assert.Equal(t, "2025-02-20", games[0].Date)
	assert.Equal(t, "2025-01-10", games[1].Date)
	assert.Equal(t, models.StatusUpcoming, games[2].Status)

	// The cap keeps the most recent played games, not the first in the feed.
	response := make([]any, 0, 15)
	for i := 1; i <= 15; i++ {
		response = append(response, scored(fmt.Sprintf("2025-01-%02d", i)))
	}
	games = conn.ExtractGames(provider.Payload{"response": response}, "A")
	require.Len(t, games, 10)
	assert.Equal(t, "2025-01-15", games[0].Date)
	assert.Equal(t, "2025-01-06", games[9].Date)
}

func TestExtractGamesCap(t *testing.T) {
	conn := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	response := make([]any, 0, 25)
	for i := 0; i < 25; i++ {
		response = append(response, map[string]any{
			"date":  fmt.Sprintf("2025-01-%02d", i+1),
			"teams": map[string]any{"home": map[string]any{"name": "A"}, "away": map[string]any{"name": "B"}},
		})
	}
	games := conn.ExtractGames(provider.Payload{"response": response}, "A")
	assert.Len(t, games, 10)
}
