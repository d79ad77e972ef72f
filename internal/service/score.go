// Package service contains the score bookkeeping layer between the
// session registry and the repositories.
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/botabeer/linegames/internal/model"
	"github.com/botabeer/linegames/internal/pkg/cache"
	"github.com/botabeer/linegames/internal/repository"
)

// PlayerStats bundles a player's row with their per-game breakdown.
type PlayerStats struct {
	Player *model.Player
	ByGame map[string]int
	Recent []*model.GameHistory
}

// ScoreService applies score awards and serves leaderboard and stats
// reads through short-lived caches.
type ScoreService struct {
	players *repository.PlayerRepository
	history *repository.HistoryRepository

	top   *cache.Cache[string, []*model.Player]
	stats *cache.Cache[string, *PlayerStats]

	topLimit int
	log      zerolog.Logger
}

func NewScoreService(
	players *repository.PlayerRepository,
	history *repository.HistoryRepository,
	top *cache.Cache[string, []*model.Player],
	stats *cache.Cache[string, *PlayerStats],
	topLimit int,
	log zerolog.Logger,
) *ScoreService {
	return &ScoreService{
		players:  players,
		history:  history,
		top:      top,
		stats:    stats,
		topLimit: topLimit,
		log:      log,
	}
}

const leaderboardKey = "top"

// Award records a score delta for a player and invalidates the caches
// that may now be stale. Implements session.ScoreSink.
func (s *ScoreService) Award(ctx context.Context, playerID, displayName string, points int64, won bool, gameType string) error {
	_, err := s.players.UpsertAndIncrement(ctx, playerID, displayName, points, won, gameType)
	if err != nil {
		return err
	}
	s.top.Delete(leaderboardKey)
	s.stats.Delete(playerID)
	return nil
}

// Touch refreshes a player's display name and activity timestamp
// without affecting counters.
func (s *ScoreService) Touch(ctx context.Context, playerID, displayName string) error {
	return s.players.Touch(ctx, playerID, displayName)
}

// Leaderboard returns the top players, served from cache when fresh.
func (s *ScoreService) Leaderboard(ctx context.Context) ([]*model.Player, error) {
	if top, ok := s.top.Get(leaderboardKey); ok {
		return top, nil
	}
	top, err := s.players.Leaderboard(ctx, s.topLimit)
	if err != nil {
		return nil, err
	}
	s.top.Set(leaderboardKey, top)
	return top, nil
}

// Stats returns a player's row plus their per-game history breakdown.
func (s *ScoreService) Stats(ctx context.Context, playerID string) (*PlayerStats, error) {
	if st, ok := s.stats.Get(playerID); ok {
		return st, nil
	}
	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	byGame, err := s.history.CountByGameType(ctx, playerID)
	if err != nil {
		return nil, err
	}
	recent, err := s.history.RecentByPlayer(ctx, playerID, 5)
	if err != nil {
		return nil, err
	}
	st := &PlayerStats{Player: player, ByGame: byGame, Recent: recent}
	s.stats.Set(playerID, st)
	return st, nil
}

// PurgeInactive deletes players idle longer than the retention window.
func (s *ScoreService) PurgeInactive(ctx context.Context, retention time.Duration) {
	removed, err := s.players.DeleteInactive(ctx, time.Now().Add(-retention))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to purge inactive players")
		return
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("Purged inactive players")
	}
}
