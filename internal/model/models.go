// Package model defines the data models for the LINE games bot.
package model

import "time"

// Player is a durable player record. Points are a cumulative counter
// floored at zero; the display name is last-seen-wins.
type Player struct {
	ID          string    `db:"id"`
	DisplayName string    `db:"display_name"`
	Points      int64     `db:"points"`
	GamesPlayed int       `db:"games_played"`
	Wins        int       `db:"wins"`
	LastActive  time.Time `db:"last_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// GameHistory is an append-only audit record of one scored round.
type GameHistory struct {
	ID        int64     `db:"id"`
	PlayerID  string    `db:"player_id"`
	GameType  string    `db:"game_type"`
	Points    int64     `db:"points"`
	Won       bool      `db:"won"`
	CreatedAt time.Time `db:"created_at"`
}

// Game type tags used in history rows and per-type configuration.
const (
	GameSong       = "song"
	GameOpposite   = "opposite"
	GameWordChain  = "wordchain"
	GameLetters    = "letters"
	GameOrdering   = "ordering"
	GameSpeed      = "speed"
	GameCategories = "categories"
	GameCompat     = "compat"
	GameSpotDiff   = "spotdiff"
	GameAIChat     = "aichat"
)
