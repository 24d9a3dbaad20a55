package provider

import (
	"context"

	"github.com/scorecheck/scorecheck/internal/models"
)

// Payload is a decoded upstream JSON document. Connectors extract from it
// defensively: every nested lookup treats absence as an empty default.
type Payload = map[string]any

// Connector is the contract every upstream source implements. Fetch methods
// return raw payloads; Extract methods are pure functions that normalize a
// provider's idiosyncratic shapes into the canonical models.
type Connector interface {
	Name() string

	SearchTeams(ctx context.Context, season, query string) (Payload, error)
	FetchPlayers(ctx context.Context, season, teamID string) (Payload, error)
	FetchGames(ctx context.Context, season, teamID string) (Payload, error)

	ExtractTeam(data Payload) *models.ProviderTeam
	ExtractPlayers(data Payload) []models.Player
	ExtractGames(data Payload, teamName string) []models.Game
}
