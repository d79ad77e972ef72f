// Package main is the entry point for the LINE games bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/botabeer/linegames/internal/ai"
	"github.com/botabeer/linegames/internal/bot"
	"github.com/botabeer/linegames/internal/config"
	"github.com/botabeer/linegames/internal/content"
	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/game/aichat"
	"github.com/botabeer/linegames/internal/game/categories"
	"github.com/botabeer/linegames/internal/game/compat"
	"github.com/botabeer/linegames/internal/game/letters"
	"github.com/botabeer/linegames/internal/game/opposite"
	"github.com/botabeer/linegames/internal/game/ordering"
	"github.com/botabeer/linegames/internal/game/song"
	"github.com/botabeer/linegames/internal/game/speed"
	"github.com/botabeer/linegames/internal/game/spotdiff"
	"github.com/botabeer/linegames/internal/game/wordchain"
	"github.com/botabeer/linegames/internal/handler"
	"github.com/botabeer/linegames/internal/model"
	"github.com/botabeer/linegames/internal/pkg/cache"
	"github.com/botabeer/linegames/internal/pkg/db"
	"github.com/botabeer/linegames/internal/pkg/ratelimit"
	"github.com/botabeer/linegames/internal/repository"
	"github.com/botabeer/linegames/internal/service"
	"github.com/botabeer/linegames/internal/session"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log.Info().Msg("Configuration loaded successfully")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := db.Migrate(ctx, dbPool.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories and the score service with its caches
	playerRepo := repository.NewPlayerRepository(dbPool.Pool)
	historyRepo := repository.NewHistoryRepository(dbPool.Pool)

	leaderboardCache := cache.New[string, []*model.Player](cfg.Cache.Leaderboard.Capacity, cfg.Cache.Leaderboard.TTL)
	statsCache := cache.New[string, *service.PlayerStats](cfg.Cache.Stats.Capacity, cfg.Cache.Stats.TTL)
	scores := service.NewScoreService(
		playerRepo,
		historyRepo,
		leaderboardCache,
		statsCache,
		cfg.Games.LeaderboardTop,
		log.With().Str("component", "scores").Logger(),
	)

	// Build the game catalog. Availability is decided here, once: a game
	// missing its prerequisites is simply never registered.
	catalog := game.NewCatalog()
	register := func(trigger string, f game.Factory) {
		if cfg.IsDisabled(trigger) {
			catalog.RegisterUnavailable(trigger)
			log.Info().Str("trigger", trigger).Msg("Game disabled by configuration")
			return
		}
		if err := catalog.Register(trigger, f); err != nil {
			log.Fatal().Err(err).Str("trigger", trigger).Msg("Failed to register game")
		}
	}
	register(song.Trigger, song.New)
	register(opposite.Trigger, opposite.New)
	register(wordchain.Trigger, wordchain.New)
	register(letters.Trigger, letters.New)
	register(ordering.Trigger, ordering.New)
	register(speed.Trigger, speed.New)
	register(categories.Trigger, categories.New)
	register(compat.Trigger, compat.New)
	register(spotdiff.Trigger, spotdiff.New)
	if len(cfg.AI.Keys) > 0 {
		aiClient := ai.NewClient(cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Keys)
		register(aichat.Trigger, aichat.New(aiClient))
	} else {
		catalog.RegisterUnavailable(aichat.Trigger)
		log.Info().Msg("No AI keys configured, AI chat game unavailable")
	}

	log.Info().
		Int("game_count", catalog.Count()).
		Strs("games", catalog.Triggers()).
		Msg("Games registered")

	// Session registry with its idle sweeper
	registry := session.NewRegistry(catalog, scores, cfg.Session.IdleTimeout)
	go registry.Run(ctx, cfg.Session.SweepInterval)

	// Content lists
	library, err := content.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load content lists")
	}

	// Webhook server
	limiter := ratelimit.New(cfg.RateLimit.MaxPerWindow, cfg.RateLimit.Window)
	nameCache := cache.New[string, string](cfg.Cache.Names.Capacity, cfg.Cache.Names.TTL)
	dispatcher := handler.NewDispatcher(registry, scores, library, catalog)

	server, err := bot.NewServer(&cfg.Line, dispatcher, limiter, nameCache, dbPool.HealthCheck)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create webhook server")
	}

	// Periodic housekeeping: limiter windows, cached names and player
	// retention.
	go housekeeping(ctx, limiter, nameCache, scores, cfg.Session.InactiveDays)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("Webhook server failed")
		}
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Webhook server shutdown failed")
	}
	log.Info().Msg("Bot stopped gracefully")
}

// housekeeping runs the slow periodic chores: expired limiter windows
// and cached names every 10 minutes, inactive-player retention daily.
func housekeeping(ctx context.Context, limiter *ratelimit.Limiter, names *cache.Cache[string, string], scores *service.ScoreService, inactiveDays int) {
	sweep := time.NewTicker(10 * time.Minute)
	defer sweep.Stop()
	purge := time.NewTicker(24 * time.Hour)
	defer purge.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sweep.C:
			limiter.Cleanup()
			names.Sweep()
		case <-purge.C:
			scores.PurgeInactive(ctx, time.Duration(inactiveDays)*24*time.Hour)
		}
	}
}
