package league

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"periods and spaces", "St. Louis Blues", "st-louis-blues"},
		{"already slugged", "st-louis-blues", "st-louis-blues"},
		{"mixed case", "LA Clippers", "la-clippers"},
		{"numbers kept", "Philadelphia 76ers", "philadelphia-76ers"},
		{"outer punctuation trimmed", "  (Utah) Jazz!  ", "utah-jazz"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestSlugIdempotent(t *testing.T) {
	for _, name := range []string{"St. Louis Blues", "Utah Hockey Club", "Philadelphia 76ers"} {
		once := Slug(name)
		assert.Equal(t, once, Slug(once))
	}
}

func TestSearchCandidates(t *testing.T) {
	t.Run("aliased team keeps order", func(t *testing.T) {
		got := SearchCandidates("nhl", "Utah Mammoth")
		assert.Equal(t, []string{"Utah Mammoth", "Utah Hockey Club", "Arizona Coyotes"}, got)
	})

	t.Run("relocated mlb team", func(t *testing.T) {
		got := SearchCandidates("mlb", "Oakland Athletics")
		assert.Equal(t, []string{"Oakland Athletics", "Athletics", "Sacramento Athletics"}, got)
	})

	t.Run("team without aliases", func(t *testing.T) {
		assert.Equal(t, []string{"Boston Celtics"}, SearchCandidates("nba", "Boston Celtics"))
	})

	t.Run("blank name", func(t *testing.T) {
		assert.Nil(t, SearchCandidates("nba", "   "))
	})
}

func TestLookup(t *testing.T) {
	lg, ok := Lookup(" NHL ")
	require.True(t, ok)
	assert.Equal(t, "nhl", lg.Key)
	assert.Equal(t, "NHL", lg.SportsDBName)

	_, ok = Lookup("epl")
	assert.False(t, ok)

	nba, ok := Lookup("nba")
	require.True(t, ok)
	assert.Empty(t, nba.SportsDBName)
}

func TestActiveSeason(t *testing.T) {
	nba, _ := Lookup("nba")
	nhl, _ := Lookup("nhl")
	mlb, _ := Lookup("mlb")

	tests := []struct {
		name string
		lg   Info
		now  time.Time
		want string
	}{
		{"nba before rollover", nba, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{"nba at rollover", nba, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{"nhl december", nhl, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{"mlb january uses prior year", mlb, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), "2025"},
		{"mlb march", mlb, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActiveSeason(tt.now, tt.lg, "2024"))
		})
	}

	t.Run("unknown league falls back to default", func(t *testing.T) {
		got := ActiveSeason(time.Now(), Info{Key: "epl", Name: "EPL"}, "2024")
		assert.Equal(t, "2024", got)
	})
}

func TestStaticTeams(t *testing.T) {
	nba := StaticTeams("nba")
	require.Len(t, nba, 30)
	assert.True(t, len(StaticTeams("nhl")) == 32)
	assert.Len(t, StaticTeams("mlb"), 30)
	assert.Nil(t, StaticTeams("epl"))

	// Sorted by name with slug ids.
	for i := 1; i < len(nba); i++ {
		assert.Less(t, nba[i-1].Name, nba[i].Name)
	}
	team, ok := FindStaticTeam("nhl", "st-louis-blues")
	require.True(t, ok)
	assert.Equal(t, "St. Louis Blues", team.Name)
	assert.Equal(t, "NHL", team.League)

	_, ok = FindStaticTeam("nhl", "quebec-nordiques")
	assert.False(t, ok)
}

func TestFallbackSnapshot(t *testing.T) {
	snap, ok := FallbackSnapshot("nba", "boston-celtics")
	require.True(t, ok)
	assert.NotEmpty(t, snap.Players)
	assert.NotEmpty(t, snap.Games)

	_, ok = FallbackSnapshot("nba", "utah-jazz")
	assert.False(t, ok)
}
