package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	// BotUserID is the chat platform user id of the bot itself. Used for
	// mention stripping and to make sure the bot never triggers itself.
	BotUserID string `env:"BOT_USER_ID"`

	// AdminToken protects the admin API (trigger overrides, manual awards).
	AdminToken string `env:"ADMIN_TOKEN"`

	PointsMaxGrant        int `env:"POINTS_MAX_GRANT" default:"100"`
	PointsCooldownSeconds int `env:"POINTS_COOLDOWN_SECONDS" default:"30"`
	LeaderboardLimit      int `env:"LEADERBOARD_LIMIT" default:"10"`

	OverrideCacheTTL time.Duration `env:"OVERRIDE_CACHE_TTL" default:"60s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"REDIS_URL":    cfg.RedisURL,
		"BOT_USER_ID":  cfg.BotUserID,
		"ADMIN_TOKEN":  cfg.AdminToken,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.PointsMaxGrant < 1 {
		return fmt.Errorf("POINTS_MAX_GRANT must be at least 1, got %d", cfg.PointsMaxGrant)
	}
	if cfg.PointsCooldownSeconds < 0 {
		return fmt.Errorf("POINTS_COOLDOWN_SECONDS must not be negative, got %d", cfg.PointsCooldownSeconds)
	}
	if cfg.LeaderboardLimit < 1 {
		return fmt.Errorf("LEADERBOARD_LIMIT must be at least 1, got %d", cfg.LeaderboardLimit)
	}

	return nil
}
