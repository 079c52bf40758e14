package server

import (
	"context"
	"net/http"
	"time"

	"user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/gin/middleware"
	"user-rest-service/internal/adapter/gin/router"
	"user-rest-service/internal/config"
	redisclient "user-rest-service/pkg/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Server wraps the HTTP server hosting the REST API.
type Server struct {
	HTTP *http.Server
	log  *zap.Logger
}

// New builds the gin router and the HTTP server around it. redisClient may
// be nil when rate limiting is disabled.
func New(cfg *config.Config, l *zap.Logger, userHandler *handler.UserHandler, redisClient *redisclient.Client) *Server {
	var rdb *redis.Client
	if redisClient != nil {
		rdb = redisClient.Client
	}

	engine := router.SetupRouter(
		userHandler,
		middleware.RateLimiterConfig{
			Enabled:           cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
		},
		rdb,
		cfg.App.OpenAPIPath,
		l,
	)

	return &Server{
		HTTP: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           engine,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		log: l,
	}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.log.Info("REST API server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTP.Shutdown(ctx)
}
