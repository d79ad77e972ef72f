package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// migrations are applied in order on startup. Statements are idempotent
// so re-running on every boot is safe.
var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "players table",
		sql: `
			CREATE TABLE IF NOT EXISTS players (
				id TEXT PRIMARY KEY,
				display_name TEXT NOT NULL,
				points BIGINT NOT NULL DEFAULT 0 CHECK (points >= 0),
				games_played INT NOT NULL DEFAULT 0,
				wins INT NOT NULL DEFAULT 0,
				last_active TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_players_points ON players(points DESC);
			CREATE INDEX IF NOT EXISTS idx_players_last_active ON players(last_active);
		`,
	},
	{
		name: "game_history table",
		sql: `
			CREATE TABLE IF NOT EXISTS game_history (
				id BIGSERIAL PRIMARY KEY,
				player_id TEXT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
				game_type VARCHAR(30) NOT NULL,
				points BIGINT NOT NULL,
				won BOOLEAN NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_game_history_player_time ON game_history(player_id, created_at DESC);
			CREATE INDEX IF NOT EXISTS idx_game_history_type_time ON game_history(game_type, created_at DESC);
		`,
	},
}

// Migrate applies the schema migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	log.Info().Msg("Running database migrations...")
	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %q failed: %w", m.name, err)
		}
		log.Info().Str("migration", m.name).Msg("Migration applied")
	}
	return nil
}
