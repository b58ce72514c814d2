// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client
//   - user cache (in-memory with a sweeper, or Redis)
//   - background job worker server (asynq)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/fieldservice/internal/config"
	"github.com/deppfellow/fieldservice/internal/database"
	"github.com/deppfellow/fieldservice/internal/lib/cache"
	"github.com/deppfellow/fieldservice/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/fieldservice/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself; httpServer is configured by
// SetupHTTPServer and started by Start.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client

	// Cache holds users by id and by email.
	Cache cache.Cache

	// Job runs background workers (Asynq server) and provides a client for enqueueing.
	Job *job.JobService

	httpServer *http.Server
	memCache   *cache.MemoryCache
}

// New constructs a Server and initializes core dependencies.
//
// Notes:
//   - Redis connection failure does not block startup (it logs and continues);
//     the cache falls back to memory in that case.
//   - JobService Start failure DOES block startup (returns error).
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Instrument Redis commands so they show up in distributed traces.
	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisUp := true
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisUp = false
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
	}
	server.setupCache(redisUp)

	jobService := job.NewJobService(logger, cfg)
	if err := jobService.Start(); err != nil {
		server.stopCache()
		db.Close()
		return nil, err
	}
	server.Job = jobService

	return server, nil
}

func (s *Server) setupCache(redisUp bool) {
	cfg := s.Config.Cache

	if cfg.Backend == "redis" {
		if redisUp {
			s.Cache = cache.NewRedisCache(s.Redis, cfg.TTL)
			s.Logger.Info().Str("backend", "redis").Dur("ttl", cfg.TTL).Msg("user cache ready")
			return
		}
		s.Logger.Warn().Msg("redis cache requested but Redis is unreachable, using memory cache")
	}

	s.memCache = cache.NewMemoryCache(cfg.TTL, s.Logger)
	s.memCache.Start(cfg.SweepInterval)
	s.Cache = s.memCache
	s.Logger.Info().Str("backend", "memory").Dur("ttl", cfg.TTL).Msg("user cache ready")
}

func (s *Server) stopCache() {
	if s.memCache != nil {
		s.memCache.Stop()
	}
}

// SetupHTTPServer configures the internal net/http server with handler as
// its router/middleware stack. Config timeouts are seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server and blocks until it stops.
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

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then releases the cache sweeper, job workers, Redis and the DB pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	s.stopCache()

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.Redis.Close(); err != nil {
		s.Logger.Warn().Err(err).Msg("failed to close redis client")
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
