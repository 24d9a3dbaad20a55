package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Memory is a thread-safe in-memory store. Expired entries are swept
// periodically; reads between sweeps still treat them as misses via the
// service's expiry check.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
	clock   clockwork.Clock
}

// NewMemory creates an in-memory store and starts its eviction loop, which
// stops when ctx is cancelled.
func NewMemory(ctx context.Context, clock clockwork.Clock) *Memory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	m := &Memory{entries: make(map[string]Entry), clock: clock}
	go m.evictLoop(ctx)
	return m
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

// Set implements Store.
func (m *Memory) Set(ctx context.Context, key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
	return nil
}

func (m *Memory) evictLoop(ctx context.Context) {
	ticker := m.clock.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			m.evict()
		}
	}
}

func (m *Memory) evict() {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, e := range m.entries {
		if now.After(e.ExpiresAt) {
			delete(m.entries, key)
		}
	}
}
