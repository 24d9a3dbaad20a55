// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/warm.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Known data source selectors.
const (
	SourceESPN        = "espn"
	SourceTheSportsDB = "thesportsdb"
	SourceAPISports   = "apisports"
)

// Cache backends.
const (
	CacheMemory   = "memory"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
)

// Config is populated from environment variables.
type Config struct {
	// Upstream providers
	DataSource      string            `envconfig:"SPORTS_DATA_SOURCE" default:"espn"`
	DefaultSeason   string            `envconfig:"SCORECHECK_SEASON" default:"2024"`
	LeagueSeasons   map[string]string `envconfig:"SCORECHECK_LEAGUE_SEASONS"`
	UpstreamTimeout time.Duration     `envconfig:"SCORECHECK_UPSTREAM_TIMEOUT" default:"4s"`
	APISportsKey    string            `envconfig:"APISPORTS_API_KEY"`

	// API server
	APIHost string `envconfig:"API_HOST" default:"0.0.0.0"`
	APIPort int    `envconfig:"API_PORT" default:"8000"`

	// CORS
	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`

	// Inbound rate limiting
	RateLimitEnabled  bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`

	// Cache
	CacheEnabled bool   `envconfig:"CACHE_ENABLED" default:"true"`
	CacheBackend string `envconfig:"CACHE_BACKEND" default:"memory"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	RedisURL     string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	c.DataSource = strings.ToLower(strings.TrimSpace(c.DataSource))
	c.DefaultSeason = strings.TrimSpace(c.DefaultSeason)
	c.CacheBackend = strings.ToLower(strings.TrimSpace(c.CacheBackend))

	if c.UpstreamTimeout < time.Second {
		c.UpstreamTimeout = time.Second
	}

	switch c.CacheBackend {
	case CacheMemory, CacheRedis:
	case CachePostgres:
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when CACHE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}

	return &c, nil
}

// SeasonOverride returns the configured season for a league key, if any.
// Blank overrides count as absent.
func (c *Config) SeasonOverride(leagueKey string) (string, bool) {
	if c.LeagueSeasons == nil {
		return "", false
	}
	s := strings.TrimSpace(c.LeagueSeasons[strings.ToLower(leagueKey)])
	return s, s != ""
}
