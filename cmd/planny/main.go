package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plannyhq/planny/internal/auth"
	"github.com/plannyhq/planny/internal/config"
	"github.com/plannyhq/planny/internal/kanban"
	"github.com/plannyhq/planny/internal/server"
	"github.com/plannyhq/planny/internal/store/postgres"
	redisstore "github.com/plannyhq/planny/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("PLANNY_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("PLANNY_LOG_FORMAT")
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

	// Connect to PostgreSQL and ensure the schema exists.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	// Pick the credential verifier.
	var verifier auth.Verifier
	if cfg.PasswordScheme == "plain" {
		verifier = auth.PlainVerifier{}
	} else {
		verifier = auth.Argon2Verifier{}
	}

	authSvc := auth.NewService(store.Users(), verifier, cfg.JWT.Secret, cfg.JWT.TokenTTL)

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Optional cross-node event bridge over Redis.
	var (
		relay  kanban.Relay
		bridge *kanban.Bridge
	)
	if cfg.Redis.Addr != "" {
		pubsub, psErr := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if psErr != nil {
			return psErr
		}
		defer func() { _ = pubsub.Close() }()

		bridge = kanban.NewBridge(pubsub, redisstore.EventsChannel())
		relay = bridge
	}

	svc := kanban.NewService(store.Users(), store.Boards(), store.Tasks(), store.Messages(), relay, cfg.Chat.HistoryLimit)

	if bridge != nil {
		go func() {
			if runErr := bridge.Run(ctx, svc.Broadcaster()); runErr != nil {
				log.Error().Err(runErr).Msg("event bridge stopped")
			}
		}()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("event bridge enabled")
	}

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, svc, authSvc)

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
