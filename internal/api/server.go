package api

import (
	"context"
	"log/slog"
	"net/netip"

	"screentime/internal/config"
	"screentime/internal/ratelimit"
	"screentime/internal/tracker"
	"screentime/internal/websocket"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	config  *config.Config
	service *tracker.Service
	db      Pinger
	wsHub   *websocket.Hub
	limiter *ratelimit.IPRateLimiter
	logger  *slog.Logger
	proxies []netip.Prefix
}

func NewServer(cfg *config.Config, service *tracker.Service, db Pinger, wsHub *websocket.Hub, limiter *ratelimit.IPRateLimiter, logger *slog.Logger) *Server {
	proxies, err := cfg.HTTP.TrustedProxyPrefixes()
	if err != nil {
		logger.Warn("ignoring trusted proxies", "error", err)
		proxies = nil
	}

	return &Server{
		config:  cfg,
		service: service,
		db:      db,
		wsHub:   wsHub,
		limiter: limiter,
		logger:  logger,
		proxies: proxies,
	}
}

// @title           Screen Time Tracker API
// @version         1.0
// @description     Users report screen time with an optional screenshot and compare totals on a shared dashboard.
// @host            localhost:8080
// @schemes         http https
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
