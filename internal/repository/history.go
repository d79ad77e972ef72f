package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/botabeer/linegames/internal/model"
)

// HistoryRepository reads the append-only game history log. Writes happen
// inside PlayerRepository.UpsertAndIncrement so a score and its audit row
// commit together.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository instance.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// RecentByPlayer returns the newest history rows for a player.
func (r *HistoryRepository) RecentByPlayer(ctx context.Context, playerID string, limit int) ([]*model.GameHistory, error) {
	const query = `
		SELECT id, player_id, game_type, points, won, created_at
		FROM game_history
		WHERE player_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*model.GameHistory
	for rows.Next() {
		var h model.GameHistory
		if err := rows.Scan(&h.ID, &h.PlayerID, &h.GameType, &h.Points, &h.Won, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return entries, nil
}

// CountByGameType returns how many history rows exist per game type for
// a player, for the stats card.
func (r *HistoryRepository) CountByGameType(ctx context.Context, playerID string) (map[string]int, error) {
	const query = `
		SELECT game_type, COUNT(*)
		FROM game_history
		WHERE player_id = $1
		GROUP BY game_type
	`

	rows, err := r.pool.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count history: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var gameType string
		var n int
		if err := rows.Scan(&gameType, &n); err != nil {
			return nil, fmt.Errorf("failed to scan history count: %w", err)
		}
		counts[gameType] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history counts: %w", err)
	}
	return counts, nil
}
