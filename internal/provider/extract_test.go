package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorecheck/scorecheck/internal/models"
)

func TestScoreValue(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{"number", 102.0, 102, true},
		{"numeric string", "98", 98, true},
		{"structured total", map[string]any{"total": 4.0}, 4, true},
		{"structured points", map[string]any{"points": "110"}, 110, true},
		{"key priority", map[string]any{"score": 1.0, "goals": 3.0}, 3, true},
		{"missing", nil, 0, false},
		{"non-numeric string", "tbd", 0, false},
		{"structured without score keys", map[string]any{"displayValue": "W"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ScoreValue(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatScore(t *testing.T) {
	score, ok := FormatScore(102.0, 98.7)
	require.True(t, ok)
	assert.Equal(t, "102-98", score)

	score, ok = FormatScore(map[string]any{"goals": "3"}, 2.0)
	require.True(t, ok)
	assert.Equal(t, "3-2", score)

	_, ok = FormatScore(nil, 2.0)
	assert.False(t, ok)
}

func TestRoundStat(t *testing.T) {
	assert.Equal(t, 25.0, RoundStat(25.0))
	assert.Equal(t, 0.333, RoundStat(1.0/3.0))
	assert.Equal(t, 99.9, RoundStat(99.9))
}

func TestSortPlayedDesc(t *testing.T) {
	games := []models.Game{
		{Date: "2025-01-10", Status: models.StatusPlayed},
		{Date: "2025-03-01", Status: models.StatusUpcoming},
		{Date: "2025-02-20", Status: models.StatusPlayed},
		{Date: "2025-02-28", Status: models.StatusPlayed},
	}

	got := SortPlayedDesc(games, 30)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-02-28", got[0].Date)
	assert.Equal(t, "2025-02-20", got[1].Date)
	assert.Equal(t, "2025-01-10", got[2].Date)

	capped := SortPlayedDesc(games, 2)
	require.Len(t, capped, 2)
	assert.Equal(t, "2025-02-28", capped[0].Date)
}

func TestNum(t *testing.T) {
	n, ok := Num("12.5")
	require.True(t, ok)
	assert.Equal(t, 12.5, n)

	_, ok = Num("dnp")
	assert.False(t, ok)

	_, ok = Num(nil)
	assert.False(t, ok)
}
