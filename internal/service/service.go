// Package service implements the cross-provider orchestration behind every
// endpoint: provider priority, alias-driven identity resolution, fallback,
// normalization, and read-through caching. Connector errors never escape
// this package; they drive the next-provider/fallback decision.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/scorecheck/scorecheck/internal/cache"
	"github.com/scorecheck/scorecheck/internal/config"
	"github.com/scorecheck/scorecheck/internal/league"
	"github.com/scorecheck/scorecheck/internal/models"
	"github.com/scorecheck/scorecheck/internal/provider"
	"github.com/scorecheck/scorecheck/internal/provider/apisports"
	"github.com/scorecheck/scorecheck/internal/provider/espn"
	"github.com/scorecheck/scorecheck/internal/provider/sportsdb"
	"github.com/scorecheck/scorecheck/internal/roster"
)

// Error is a caller-visible failure with an HTTP status. Anything else the
// service returns is an internal error.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func notFound(detail string) *Error {
	return &Error{Status: http.StatusNotFound, Detail: detail}
}

func badRequest(detail string) *Error {
	return &Error{Status: http.StatusBadRequest, Detail: detail}
}

func rateLimited(detail string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Detail: detail}
}

// espnConnector is the capability set the orchestrator needs from the
// scoreboard-feed provider beyond the common contract.
type espnConnector interface {
	provider.Connector
	Scoreboard(ctx context.Context, date string) (provider.Payload, error)
	ExtractScoreboardGames(data provider.Payload) []models.ScoreboardGame
	TeamLogos(ctx context.Context) (map[string]string, error)
}

// rosterClient backfills thin rosters from a league's own free endpoint.
type rosterClient interface {
	NHL(ctx context.Context, teamName string) []models.Player
	MLB(ctx context.Context, teamName, season string) []models.Player
}

// sportsDBConnector adds the free database's listing and per-event stats.
type sportsDBConnector interface {
	provider.Connector
	TeamsByLeague(ctx context.Context, leagueName string) (provider.Payload, error)
	ExtractTeams(data provider.Payload) []models.Team
	EventStats(ctx context.Context, eventID string) (provider.Payload, error)
	ExtractEventPlayerStats(data provider.Payload) []models.Player
}

type secondaryTeamsEntry struct {
	teams     []models.Team
	fetchedAt time.Time
}

// Service holds the orchestrator's dependencies. Construction of connectors
// goes through factory fields so tests can substitute stubs.
type Service struct {
	cfg    *config.Config
	cache  *cache.Service
	clock  clockwork.Clock
	logger *slog.Logger
	roster rosterClient

	espnFor      func(lg league.Info) (espnConnector, error)
	sportsDBFor  func() sportsDBConnector
	apiSportsFor func(lg league.Info) (provider.Connector, error)

	// In-process secondary cache for TheSportsDB league team listings,
	// serving stale data when the upstream rate-limits. Benign races are
	// tolerated; last write wins.
	mu          sync.Mutex
	leagueTeams map[string]secondaryTeamsEntry
}

// New creates the orchestration service.
func New(cfg *config.Config, cacheSvc *cache.Service, clock clockwork.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := provider.NewClient(cfg.UpstreamTimeout, clock, logger)

	s := &Service{
		cfg:         cfg,
		cache:       cacheSvc,
		clock:       clock,
		logger:      logger,
		roster:      roster.NewClient(logger),
		leagueTeams: make(map[string]secondaryTeamsEntry),
	}
	s.espnFor = func(lg league.Info) (espnConnector, error) {
		return espn.New(espn.BaseURL, lg.Name, client)
	}
	s.sportsDBFor = func() sportsDBConnector {
		return sportsdb.New(sportsdb.BaseURL, client)
	}
	s.apiSportsFor = func(lg league.Info) (provider.Connector, error) {
		baseURL, ok := apisports.BaseURLFor(lg.Name)
		if !ok {
			return nil, fmt.Errorf("unsupported league for API-Sports connector: %s", lg.Name)
		}
		return apisports.New(baseURL, cfg.APISportsKey, client)
	}
	return s
}

var knownSources = []string{config.SourceESPN, config.SourceTheSportsDB, config.SourceAPISports}

// providerOrder is the configured default source first, then the remaining
// known sources, de-duplicated.
func (s *Service) providerOrder() []string {
	order := make([]string, 0, 1+len(knownSources))
	seen := make(map[string]bool, 1+len(knownSources))
	for _, source := range append([]string{s.cfg.DataSource}, knownSources...) {
		if source == "" || seen[source] {
			continue
		}
		seen[source] = true
		order = append(order, source)
	}
	return order
}

// connectorFor builds the connector for a source and league, or reports the
// skip reason when prerequisite configuration is absent.
func (s *Service) connectorFor(source string, lg league.Info) (provider.Connector, string) {
	switch source {
	case config.SourceESPN:
		conn, err := s.espnFor(lg)
		if err != nil {
			return nil, "league unavailable"
		}
		return conn, ""
	case config.SourceTheSportsDB:
		if lg.SportsDBName == "" {
			return nil, "league unavailable"
		}
		return s.sportsDBFor(), ""
	case config.SourceAPISports:
		if s.cfg.APISportsKey == "" {
			return nil, "missing credential"
		}
		conn, err := s.apiSportsFor(lg)
		if err != nil {
			return nil, "league unavailable"
		}
		return conn, ""
	}
	return nil, "unknown source"
}

// activeSeason computes the season used for player/game queries.
func (s *Service) activeSeason(lg league.Info) string {
	if season, ok := s.cfg.SeasonOverride(lg.Key); ok {
		return season
	}
	return league.ActiveSeason(s.clock.Now(), lg, s.cfg.DefaultSeason)
}

func (s *Service) sourceSupported() bool {
	switch s.cfg.DataSource {
	case config.SourceESPN, config.SourceTheSportsDB, config.SourceAPISports:
		return true
	}
	return false
}
