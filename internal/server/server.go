// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - document store connection
//   - optional redis client for the contact cache
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/contacts-service/internal/config"
	"github.com/deppfellow/contacts-service/internal/database"

	loggerPkg "github.com/deppfellow/contacts-service/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself; that one is configured by
// SetupHTTPServer and run by Start.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService holds the New Relic application, which may be nil.
	LoggerService *loggerPkg.LoggerService

	// DB is nil when the memory driver is configured.
	DB *database.Database

	// Redis is nil when no cache address is configured.
	Redis *redis.Client

	httpServer *http.Server
}

// New constructs a Server and connects to the document store when the
// mongo driver is configured. The unique phone index is ensured on startup.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	if cfg.Database.Driver == config.DriverMongo {
		db, err := database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := db.EnsureIndexes(ctx, cfg.Database.Collection); err != nil {
			_ = db.Close(context.Background())
			return nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}

		server.DB = db
	} else {
		logger.Warn().Str("driver", cfg.Database.Driver).Msg("contacts are not persisted across restarts")
	}

	if cfg.Redis.Enabled() {
		server.Redis = newRedisClient(cfg.Redis, logger, loggerService)
	}

	return server, nil
}

// newRedisClient never fails: an unreachable cache is logged and every
// lookup falls through to the store.
func newRedisClient(cfg config.RedisConfig, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if loggerService.GetApplication() != nil {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Str("address", cfg.Address).Msg("failed to connect to redis, continuing without a warm cache")
	}

	return client
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops and
// returns http.ErrServerClosed after a Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, then closes the store and
// cache connections and flushes New Relic.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(ctx); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	s.LoggerService.Shutdown()

	return nil
}
