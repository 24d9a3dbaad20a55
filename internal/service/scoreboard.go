package service

import (
	"context"
	"fmt"
	"time"

	"github.com/scorecheck/scorecheck/internal/cache"
	"github.com/scorecheck/scorecheck/internal/config"
	"github.com/scorecheck/scorecheck/internal/league"
	"github.com/scorecheck/scorecheck/internal/models"
)

// Scoreboard date keys follow the US Eastern schedule day.
var easternTime = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*3600)
	}
	return loc
}()

// ScoreboardLeague is one league's slate of scoreboard games.
type ScoreboardLeague struct {
	ID    string                  `json:"id"`
	Name  string                  `json:"name"`
	Games []models.ScoreboardGame `json:"games"`
}

// DaySchedule groups per-league slates under one schedule day.
type DaySchedule struct {
	Date    string             `json:"date"`
	Key     string             `json:"key"`
	Leagues []ScoreboardLeague `json:"leagues"`
}

// TodayGamesResponse is the today-and-yesterday scoreboard payload. Leagues
// mirrors Today.Leagues for callers that predate the day split.
type TodayGamesResponse struct {
	Date             string             `json:"date"`
	TodayKey         string             `json:"today_key"`
	YesterdayKey     string             `json:"yesterday_key"`
	IncludeYesterday bool               `json:"include_yesterday"`
	Source           string             `json:"source"`
	Today            DaySchedule        `json:"today"`
	Yesterday        DaySchedule        `json:"yesterday"`
	Leagues          []ScoreboardLeague `json:"leagues"`
}

// TodayGames builds the scoreboard for today, and optionally yesterday,
// across every league. Per-league feed failures degrade to an empty slate.
func (s *Service) TodayGames(ctx context.Context, includeYesterday bool) (*TodayGamesResponse, error) {
	nowET := s.clock.Now().In(easternTime)
	yesterdayET := nowET.AddDate(0, 0, -1)
	todayKey := nowET.Format("20060102")
	yesterdayKey := yesterdayET.Format("20060102")

	flag := 0
	if includeYesterday {
		flag = 1
	}
	key := fmt.Sprintf("today_games:espn:%s:include_yesterday:%d", todayKey, flag)
	var cached TodayGamesResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	leagues := league.All()
	todayLeagues := make([]ScoreboardLeague, 0, len(leagues))
	yesterdayLeagues := make([]ScoreboardLeague, 0, len(leagues))
	for _, lg := range leagues {
		todayGames := s.scoreboardGames(ctx, lg, todayKey)
		var yesterdayGames []models.ScoreboardGame
		if includeYesterday {
			yesterdayGames = s.scoreboardGames(ctx, lg, yesterdayKey)
		}

		todayLeagues = append(todayLeagues, ScoreboardLeague{
			ID: lg.Key, Name: lg.Name, Games: nonNilScoreboardGames(todayGames),
		})
		yesterdayLeagues = append(yesterdayLeagues, ScoreboardLeague{
			ID: lg.Key, Name: lg.Name, Games: nonNilScoreboardGames(yesterdayGames),
		})
	}

	resp := &TodayGamesResponse{
		Date:             nowET.Format("2006-01-02"),
		TodayKey:         todayKey,
		YesterdayKey:     yesterdayKey,
		IncludeYesterday: includeYesterday,
		Source:           config.SourceESPN,
		Today: DaySchedule{
			Date:    nowET.Format("2006-01-02"),
			Key:     todayKey,
			Leagues: todayLeagues,
		},
		Yesterday: DaySchedule{
			Date:    yesterdayET.Format("2006-01-02"),
			Key:     yesterdayKey,
			Leagues: yesterdayLeagues,
		},
		Leagues: todayLeagues,
	}
	s.cache.SetJSON(ctx, key, resp, cache.TTLTodayGames)
	return resp, nil
}

func (s *Service) scoreboardGames(ctx context.Context, lg league.Info, dateKey string) []models.ScoreboardGame {
	conn, err := s.espnFor(lg)
	if err != nil {
		s.logger.Warn("scoreboard connector unavailable", "league", lg.Key, "error", err)
		return nil
	}
	data, err := conn.Scoreboard(ctx, dateKey)
	if err != nil {
		s.logger.Warn("failed to fetch scoreboard", "league", lg.Key, "date", dateKey, "error", err)
		return nil
	}
	return conn.ExtractScoreboardGames(data)
}

func nonNilScoreboardGames(games []models.ScoreboardGame) []models.ScoreboardGame {
	if games == nil {
		return []models.ScoreboardGame{}
	}
	return games
}
