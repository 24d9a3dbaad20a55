// Package models defines the canonical shapes every provider normalizes into.
package models

// Game statuses. A game is "played" exactly when a parseable final score
// exists for both sides.
const (
	StatusPlayed   = "played"
	StatusUpcoming = "upcoming"
)

// Team is a team identity within one league. The ID is a locally assigned
// slug; the logo is provider-sourced and filled in opportunistically.
type Team struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	League string `json:"league"`
	Logo   string `json:"logo,omitempty"`
}

// ProviderTeam is a team as resolved against one upstream provider. The ID is
// the provider's internal identifier, not the local slug.
type ProviderTeam struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Player has no stable identity across providers; merging is by exact
// case-sensitive name match. Stats is empty when the provider exposes no
// numeric stats for the player.
type Player struct {
	Name     string             `json:"name"`
	Position string             `json:"position"`
	Stats    map[string]float64 `json:"stats"`
}

// Game is a single normalized game from a team's perspective.
type Game struct {
	ID       string `json:"id,omitempty"`
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
	Home     bool   `json:"home"`
	Status   string `json:"status"`
	Score    string `json:"score,omitempty"`
}

// ScoreboardGame is one game on a daily league scoreboard. Scores and records
// are display strings; "-" stands in for unknown values.
type ScoreboardGame struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	Status     string `json:"status"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	HomeLogo   string `json:"home_logo"`
	AwayLogo   string `json:"away_logo"`
	HomeScore  string `json:"home_score"`
	AwayScore  string `json:"away_score"`
	HomeRecord string `json:"home_record"`
	AwayRecord string `json:"away_record"`
}
