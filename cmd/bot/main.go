package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/maju6406/shundor-bot/internal/config"
	"github.com/maju6406/shundor-bot/internal/database"
	"github.com/maju6406/shundor-bot/internal/logging"
	"github.com/maju6406/shundor-bot/internal/points"
	"github.com/maju6406/shundor-bot/internal/redis"
	"github.com/maju6406/shundor-bot/internal/server"
	"github.com/maju6406/shundor-bot/internal/trigger"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	defer func() { _ = redisClient.Close() }()

	// Construct repositories and their Redis-backed layers
	kvRepo := database.NewKVRepo(pool)
	ledgerRepo := database.NewLedgerRepo(pool)
	overrideRepo := database.NewOverrideRepo(kvRepo)
	overrideCache := redis.NewOverrideCache(redisClient, overrideRepo, cfg.OverrideCacheTTL)
	giverCooldowns := redis.NewGiverCooldowns(redisClient)

	pointsSvc := points.NewService(ledgerRepo, giverCooldowns, clock,
		cfg.PointsMaxGrant, cfg.PointsCooldownSeconds, cfg.LeaderboardLimit)

	// Assemble the trigger engine
	cooldowns := trigger.NewCooldownStore(clock)
	dispatcher, err := trigger.NewDispatcher(cfg.BotUserID, trigger.Builtins(pointsSvc), cooldowns, overrideCache)
	if err != nil {
		slog.Error("Failed to create dispatcher", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg, dispatcher, pointsSvc, overrideCache, redisClient, pool)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
