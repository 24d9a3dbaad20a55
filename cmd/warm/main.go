// Command warm pre-populates the response cache so the first readers after a
// deploy hit warm entries instead of slow upstream calls.
//
// Usage:
//
//	scorecheck-warm --teams 5
//	scorecheck-warm --leagues nba,nhl --teams 10 --scoreboard=false
//
// Warming goes through the orchestration service against the configured
// store, so it only persists across processes with the postgres or redis
// backend.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/scorecheck/scorecheck/internal/cache"
	"github.com/scorecheck/scorecheck/internal/config"
	"github.com/scorecheck/scorecheck/internal/league"
	"github.com/scorecheck/scorecheck/internal/service"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	var (
		leagues    string
		teamsPer   int
		scoreboard bool
	)
	root := &cobra.Command{
		Use:   "scorecheck-warm",
		Short: "Scorecheck cache warming CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(leagues, teamsPer, scoreboard)
		},
	}
	root.Flags().StringVar(&leagues, "leagues", "", "Comma-separated league keys; empty = all")
	root.Flags().IntVar(&teamsPer, "teams", 5, "Team details to warm per league")
	root.Flags().BoolVar(&scoreboard, "scoreboard", true, "Warm today's scoreboard")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(leagueFilter string, teamsPer int, scoreboard bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.CacheEnabled {
		return fmt.Errorf("caching is disabled; nothing to warm")
	}
	if cfg.CacheBackend == config.CacheMemory {
		logger.Warn("memory backend warms only this process; use postgres or redis to share entries")
	}

	clock := clockwork.NewRealClock()
	store, closeStore, err := newStore(ctx, cfg, clock)
	if err != nil {
		return fmt.Errorf("initialize cache store: %w", err)
	}
	if closeStore != nil {
		defer closeStore()
	}

	svc := service.New(cfg, cache.NewService(store, clock, logger), clock, logger)

	start := time.Now()
	if _, err := svc.Leagues(ctx); err != nil {
		return fmt.Errorf("warm leagues: %w", err)
	}
	logger.Info("Warmed league list")

	for _, lg := range selectLeagues(leagueFilter) {
		teams, err := svc.LeagueTeams(ctx, lg.Key)
		if err != nil {
			logger.Error("Failed to warm league teams", "league", lg.Key, "error", err)
			continue
		}
		logger.Info("Warmed league teams", "league", lg.Key, "teams", len(teams.Teams))

		warmed := 0
		for _, team := range teams.Teams {
			if warmed >= teamsPer {
				break
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			detail, err := svc.TeamDetail(ctx, lg.Key, league.Slug(team.Name))
			if err != nil {
				logger.Error("Failed to warm team detail", "league", lg.Key, "team", team.Name, "error", err)
				continue
			}
			logger.Info("Warmed team detail",
				"league", lg.Key, "team", team.Name,
				"source", detail.Source, "players", len(detail.Players), "games", len(detail.Games))
			warmed++
			clock.Sleep(100 * time.Millisecond)
		}
	}

	if scoreboard {
		if _, err := svc.TodayGames(ctx, true); err != nil {
			logger.Error("Failed to warm today's games", "error", err)
		} else {
			logger.Info("Warmed today's games")
		}
	}

	logger.Info("Warm finished", "duration", time.Since(start).Round(time.Second))
	return nil
}

func selectLeagues(filter string) []league.Info {
	if strings.TrimSpace(filter) == "" {
		return league.All()
	}
	var out []league.Info
	for _, key := range strings.Split(filter, ",") {
		if lg, ok := league.Lookup(key); ok {
			out = append(out, lg)
		} else {
			logger.Warn("Skipping unknown league", "league", key)
		}
	}
	return out
}

func newStore(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (cache.Store, func(), error) {
	switch cfg.CacheBackend {
	case config.CachePostgres:
		pg, err := cache.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	case config.CacheRedis:
		rd, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return rd, func() { rd.Close() }, nil
	default:
		return cache.NewMemory(ctx, clock), nil, nil
	}
}
