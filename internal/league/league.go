// Package league holds the supported-league registry, season computation,
// team name slugging, search aliases, and the static fallback dataset.
package league

import (
	"fmt"
	"strings"
	"time"
)

// Info describes one supported league. SportsDBName is the league name used
// by TheSportsDB; empty means the league cannot be queried there.
type Info struct {
	Key          string
	Name         string
	SportsDBName string
}

var registry = []Info{
	{Key: "nba", Name: "NBA", SportsDBName: ""},
	{Key: "nhl", Name: "NHL", SportsDBName: "NHL"},
	{Key: "mlb", Name: "MLB", SportsDBName: "MLB"},
}

// All returns the supported leagues in registry order.
func All() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a league by its key, case-insensitively.
func Lookup(key string) (Info, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, lg := range registry {
		if lg.Key == k {
			return lg, true
		}
	}
	return Info{}, false
}

// ActiveSeason computes the season token for a league at the given time.
// NBA and NHL use a split-year format rolling over in September; MLB uses a
// single year rolling over in March. Unknown leagues fall back to the default
// season. Configured per-league overrides are applied by the caller.
func ActiveSeason(now time.Time, lg Info, defaultSeason string) string {
	year, month := now.Year(), int(now.Month())

	switch lg.Name {
	case "NBA", "NHL":
		if month >= 9 {
			return fmt.Sprintf("%d-%d", year, year+1)
		}
		return fmt.Sprintf("%d-%d", year-1, year)
	case "MLB":
		if month < 3 {
			return fmt.Sprintf("%d", year-1)
		}
		return fmt.Sprintf("%d", year)
	}

	return defaultSeason
}
