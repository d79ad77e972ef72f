// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Line      LineConfig      `mapstructure:"line"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Session   SessionConfig   `mapstructure:"session"`
	Cache     CacheConfig     `mapstructure:"cache"`
	AI        AIConfig        `mapstructure:"ai"`
	Games     GamesConfig     `mapstructure:"games"`
}

// LineConfig holds LINE Messaging API credentials and the webhook
// listen address.
type LineConfig struct {
	ChannelSecret string `mapstructure:"channel_secret"`
	ChannelToken  string `mapstructure:"channel_token"`
	ListenAddr    string `mapstructure:"listen_addr"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// RateLimitConfig holds the per-user message rate limit.
type RateLimitConfig struct {
	MaxPerWindow int           `mapstructure:"max_per_window"`
	Window       time.Duration `mapstructure:"window"`
}

// SessionConfig holds game session lifecycle configuration.
type SessionConfig struct {
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	InactiveDays  int           `mapstructure:"inactive_days"`
}

// CacheConfig holds the per-tier cache sizing.
type CacheConfig struct {
	Names       CacheTierConfig `mapstructure:"names"`
	Leaderboard CacheTierConfig `mapstructure:"leaderboard"`
	Stats       CacheTierConfig `mapstructure:"stats"`
}

// CacheTierConfig holds capacity and TTL for one cache tier.
type CacheTierConfig struct {
	Capacity int           `mapstructure:"capacity"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// AIConfig holds the chat completion backend configuration. The AI
// chat game is only registered when at least one key is set.
type AIConfig struct {
	Keys    []string `mapstructure:"keys"`
	BaseURL string   `mapstructure:"base_url"`
	Model   string   `mapstructure:"model"`
}

// GamesConfig holds game registration configuration.
type GamesConfig struct {
	Disabled       []string `mapstructure:"disabled"`
	LeaderboardTop int      `mapstructure:"leaderboard_top"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// IsDisabled reports whether a game trigger is disabled by configuration.
func (c *Config) IsDisabled(trigger string) bool {
	for _, t := range c.Games.Disabled {
		if t == trigger {
			return true
		}
	}
	return false
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Enable environment variable override
	// Environment variables use underscore separator and uppercase
	// e.g., LINE_CHANNEL_SECRET, DATABASE_HOST, DATABASE_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional - env vars can provide all config)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we can use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Line.ChannelSecret == "" || cfg.Line.ChannelToken == "" {
		return nil, fmt.Errorf("line channel_secret and channel_token are required")
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Webhook defaults
	v.SetDefault("line.listen_addr", ":8080")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "linegames")
	v.SetDefault("database.name", "linegames")
	v.SetDefault("database.pool_size", 20)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	// Rate limit defaults
	v.SetDefault("rate_limit.max_per_window", 15)
	v.SetDefault("rate_limit.window", "1m")

	// Session defaults
	v.SetDefault("session.idle_timeout", "15m")
	v.SetDefault("session.sweep_interval", "1m")
	v.SetDefault("session.inactive_days", 90)

	// Cache defaults
	v.SetDefault("cache.names.capacity", 2048)
	v.SetDefault("cache.names.ttl", "1h")
	v.SetDefault("cache.leaderboard.capacity", 4)
	v.SetDefault("cache.leaderboard.ttl", "30s")
	v.SetDefault("cache.stats.capacity", 1024)
	v.SetDefault("cache.stats.ttl", "5m")

	// AI defaults
	v.SetDefault("ai.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.model", "deepseek/deepseek-chat")

	// Game defaults
	v.SetDefault("games.leaderboard_top", 10)
}
