package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agrisetu/agrisetu/internal/advisor"
	v1 "github.com/agrisetu/agrisetu/internal/api/v1"
	"github.com/agrisetu/agrisetu/internal/auth"
	"github.com/agrisetu/agrisetu/internal/config"
	"github.com/agrisetu/agrisetu/internal/server"
	"github.com/agrisetu/agrisetu/internal/server/middleware"
	"github.com/agrisetu/agrisetu/internal/store/postgres"
	redisstore "github.com/agrisetu/agrisetu/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("AGRISETU_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("AGRISETU_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	// Role lookups go through Redis when configured; otherwise every
	// capability check hits PostgreSQL directly.
	var (
		roles       middleware.RoleSource = store.Roles()
		invalidator v1.RoleInvalidator    = noopInvalidator{}
	)
	if cfg.Redis.Addr != "" {
		cache, cacheErr := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.RoleTTL)
		if cacheErr != nil {
			return cacheErr
		}
		defer func() {
			if closeErr := cache.Close(); closeErr != nil {
				log.Warn().Err(closeErr).Msg("closing role cache")
			}
		}()

		roles = redisstore.NewCachedRoles(cache, store.Roles())
		invalidator = cache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("role cache enabled")
	}

	// Create auth service.
	authSvc := auth.NewService(store.Users(), store.Roles(), cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	// Create the LLM gateway client for the advisory tools.
	adv := advisor.New(cfg.Gateway.URL, cfg.Gateway.APIKey, cfg.Gateway.Model, cfg.Gateway.Timeout)

	middleware.InitMetrics()

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, store, authSvc, adv, roles, invalidator)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}

// noopInvalidator stands in for the role cache when Redis is disabled; role
// reads then always hit PostgreSQL, so there is nothing to drop.
type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, uuid.UUID) {}
