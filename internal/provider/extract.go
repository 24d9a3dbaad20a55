package provider

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/scorecheck/scorecheck/internal/models"
)

// AsMap returns v as a payload map, or nil.
func AsMap(v any) Payload {
	m, _ := v.(map[string]any)
	return m
}

// AsSlice returns v as a slice, or nil.
func AsSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// Str returns a string field of a payload, or "".
func Str(m Payload, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// Num extracts a scalar number from a raw value.
//
// Providers return stats as flat numbers, numeric strings, or both. This
// handles all of them; ok is false when the value is not numeric.
func Num(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// scoreKeys is the priority order for structured score objects. This policy
// is shared across providers.
var scoreKeys = []string{"total", "points", "goals", "runs", "score"}

// ScoreValue extracts a numeric score from a raw score field: numbers and
// numeric strings directly, structured objects via the shared key priority.
func ScoreValue(v any) (float64, bool) {
	if n, ok := Num(v); ok {
		return n, true
	}
	if m := AsMap(v); m != nil {
		for _, key := range scoreKeys {
			if inner, exists := m[key]; exists {
				if n, ok := Num(inner); ok {
					return n, true
				}
			}
		}
	}
	return 0, false
}

// FormatScore formats a home/away score pair as "<home>-<away>" with integer
// truncation. ok is false when either side is missing, in which case the
// game has no score and its status is upcoming.
func FormatScore(home, away any) (string, bool) {
	h, okH := ScoreValue(home)
	a, okA := ScoreValue(away)
	if !okH || !okA {
		return "", false
	}
	return fmt.Sprintf("%d-%d", int(h), int(a)), true
}

// RoundStat normalizes a stat value: integers stay integral, fractions are
// rounded to three decimal places.
func RoundStat(v float64) float64 {
	if v == math.Trunc(v) {
		return v
	}
	return math.Round(v*1000) / 1000
}

// SortPlayedDesc filters to played games sorted by date descending and
// applies the provider's cap.
func SortPlayedDesc(games []models.Game, limit int) []models.Game {
	played := make([]models.Game, 0, len(games))
	for _, g := range games {
		if g.Status == models.StatusPlayed {
			played = append(played, g)
		}
	}
	sort.SliceStable(played, func(i, j int) bool { return played[i].Date > played[j].Date })
	if len(played) > limit {
		played = played[:limit]
	}
	return played
}
