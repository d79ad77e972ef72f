// Package repository provides the data access layer over PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/botabeer/linegames/internal/model"
)

// ErrPlayerNotFound is returned when no player row matches.
var ErrPlayerNotFound = errors.New("player not found")

const playerColumns = "id, display_name, points, games_played, wins, last_active, created_at, updated_at"

// PlayerRepository handles player persistence.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository instance.
func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

// UpsertAndIncrement applies one scored round to a player atomically:
// the row is created on first contact, the cumulative total is floored at
// zero even for negative deltas, games-played always increments, wins
// increments when won, and the display name and last-active refresh.
// When gameType is non-empty and delta non-zero a history row is appended
// in the same transaction, so concurrent rounds from different
// conversations never lose updates.
func (r *PlayerRepository) UpsertAndIncrement(ctx context.Context, playerID, displayName string, delta int64, won bool, gameType string) (*model.Player, error) {
	const query = `
		INSERT INTO players (id, display_name, points, games_played, wins, last_active, created_at, updated_at)
		VALUES ($1, $2, GREATEST($3, 0), 1, CASE WHEN $4 THEN 1 ELSE 0 END, NOW(), NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			points = GREATEST(players.points + $3, 0),
			games_played = players.games_played + 1,
			wins = players.wins + CASE WHEN $4 THEN 1 ELSE 0 END,
			last_active = NOW(),
			updated_at = NOW()
		RETURNING ` + playerColumns

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var p model.Player
	err = tx.QueryRow(ctx, query, playerID, displayName, delta, won).Scan(
		&p.ID, &p.DisplayName, &p.Points, &p.GamesPlayed, &p.Wins,
		&p.LastActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert player: %w", err)
	}

	if gameType != "" && delta != 0 {
		const historyQuery = `
			INSERT INTO game_history (player_id, game_type, points, won, created_at)
			VALUES ($1, $2, $3, $4, NOW())
		`
		if _, err := tx.Exec(ctx, historyQuery, playerID, gameType, delta, won); err != nil {
			return nil, fmt.Errorf("failed to append history: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit upsert tx: %w", err)
	}
	return &p, nil
}

// GetByID retrieves a player. Returns ErrPlayerNotFound when absent.
func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (*model.Player, error) {
	query := "SELECT " + playerColumns + " FROM players WHERE id = $1"

	var p model.Player
	err := r.pool.QueryRow(ctx, query, playerID).Scan(
		&p.ID, &p.DisplayName, &p.Points, &p.GamesPlayed, &p.Wins,
		&p.LastActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

// Leaderboard retrieves the top players by cumulative points. Equal
// totals order by wins descending, then id for a stable listing.
func (r *PlayerRepository) Leaderboard(ctx context.Context, limit int) ([]*model.Player, error) {
	query := "SELECT " + playerColumns + ` FROM players
		ORDER BY points DESC, wins DESC, id
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var players []*model.Player
	for rows.Next() {
		var p model.Player
		err := rows.Scan(
			&p.ID, &p.DisplayName, &p.Points, &p.GamesPlayed, &p.Wins,
			&p.LastActive, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}
	return players, nil
}

// Touch refreshes a player's display name and last-active without
// touching counters, creating the row on first contact.
func (r *PlayerRepository) Touch(ctx context.Context, playerID, displayName string) error {
	const query = `
		INSERT INTO players (id, display_name, points, games_played, wins, last_active, created_at, updated_at)
		VALUES ($1, $2, 0, 0, 0, NOW(), NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			last_active = NOW(),
			updated_at = NOW()
	`
	if _, err := r.pool.Exec(ctx, query, playerID, displayName); err != nil {
		return fmt.Errorf("failed to touch player: %w", err)
	}
	return nil
}

// DeleteInactive removes players whose last activity is older than the
// cutoff. History rows cascade.
func (r *PlayerRepository) DeleteInactive(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = "DELETE FROM players WHERE last_active < $1"

	tag, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete inactive players: %w", err)
	}
	return tag.RowsAffected(), nil
}
