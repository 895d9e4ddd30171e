package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Event intake from the chat gateway
	s.echo.POST("/events", s.handleEvent)

	// Admin API (bearer token)
	admin := s.echo.Group("/api", s.requireAdmin)
	admin.GET("/scopes/:scope/triggers", s.handleListTriggers)
	admin.PUT("/scopes/:scope/triggers/:id", s.handleSetOverride)
	admin.GET("/scopes/:scope/leaderboard", s.handleLeaderboard)
	admin.POST("/scopes/:scope/awards", s.handleAward)
}
