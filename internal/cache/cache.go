// Package cache provides the read-through JSON response cache with a
// pluggable store (in-memory, Postgres, or Redis). Store failures degrade to
// cache-miss behavior and never fail a request.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Per-endpoint-class TTLs.
const (
	TTLLeagues     = 5 * time.Minute
	TTLLeagueTeams = time.Hour
	TTLTeamDetail  = 5 * time.Minute
	TTLGamePlayers = 5 * time.Minute
	TTLTodayGames  = 30 * time.Second
)

// Entry is one cached payload with its absolute expiry.
type Entry struct {
	Payload   []byte    `json:"payload"`
	ExpiresAt time.Time `json:"expires_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store maps cache keys to entries. Implementations may keep expired entries
// around; the service treats them as misses.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
}

// Service is the cache used by the orchestrator. A nil store disables
// caching entirely.
type Service struct {
	store  Store
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewService creates a cache service around a store.
func NewService(store Store, clock clockwork.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, clock: clock, logger: logger}
}

// GetJSON loads a cached value into dst. A miss, expired entry, store
// failure, or decode failure all report false.
func (s *Service) GetJSON(ctx context.Context, key string, dst any) bool {
	if s.store == nil {
		return false
	}
	e, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache get failed", "key", key, "error", err)
		return false
	}
	if !ok || s.clock.Now().After(e.ExpiresAt) {
		return false
	}
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		s.logger.Warn("cache decode failed", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON stores a value with a TTL. Failures are logged and swallowed.
func (s *Service) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if s.store == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	now := s.clock.Now()
	e := Entry{Payload: payload, ExpiresAt: now.Add(ttl), UpdatedAt: now}
	if err := s.store.Set(ctx, key, e); err != nil {
		s.logger.Warn("cache set failed", "key", key, "error", err)
	}
}
