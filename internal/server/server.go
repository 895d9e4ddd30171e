package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/maju6406/shundor-bot/internal/config"
	"github.com/maju6406/shundor-bot/internal/domain"
	apperrors "github.com/maju6406/shundor-bot/internal/errors"
	"github.com/maju6406/shundor-bot/internal/points"
	"github.com/maju6406/shundor-bot/internal/trigger"
)

// dispatcher is the slice of the trigger engine the server uses.
type dispatcher interface {
	Dispatch(ctx context.Context, ev domain.Event, rsp trigger.Replier)
	Triggers() []trigger.Trigger
	HasTrigger(id string) bool
}

// pointsService is the slice of the points ledger the admin API uses.
type pointsService interface {
	GiverCooldownRemaining(ctx context.Context, scopeID, giverID string) (time.Duration, error)
	ArmGiverCooldown(ctx context.Context, scopeID, giverID string) error
	Award(ctx context.Context, scopeID, giverID string, receiver domain.Member, amount int) (int64, error)
	TopPoints(ctx context.Context, scopeID string, w points.Window, limit int) ([]domain.LeaderboardRow, error)
}

// redisHealthChecker is a minimal interface for Redis health checks
type redisHealthChecker interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

// postgresHealthChecker is a minimal interface for PostgreSQL health checks
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo       *echo.Echo
	config     *config.Config
	dispatcher dispatcher
	points     pointsService
	overrides  domain.OverrideStore
	redisPing  redisHealthChecker
	dbPing     postgresHealthChecker
	limiter    *ScopeRateLimiter
	startTime  time.Time
}

func NewServer(
	cfg *config.Config,
	disp dispatcher,
	pts pointsService,
	overrides domain.OverrideStore,
	redisPing redisHealthChecker,
	dbPing postgresHealthChecker,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:       e,
		config:     cfg,
		dispatcher: disp,
		points:     pts,
		overrides:  overrides,
		redisPing:  redisPing,
		dbPing:     dbPing,
		limiter:    NewScopeRateLimiter(eventRatePerSecond, eventRateBurst),
		startTime:  time.Now(),
	}
	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
