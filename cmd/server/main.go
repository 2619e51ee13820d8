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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/AlessandroLop/evaluacion-api/internal/config"
	"github.com/AlessandroLop/evaluacion-api/internal/database"
	"github.com/AlessandroLop/evaluacion-api/internal/logging"
	"github.com/AlessandroLop/evaluacion-api/internal/ratelimit"
	"github.com/AlessandroLop/evaluacion-api/internal/sentiment"
	"github.com/AlessandroLop/evaluacion-api/internal/server"
)

const limiterSweepInterval = 5 * time.Minute

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

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, draining connections...")

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

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	repo := database.NewRepository(pool)

	limiter := ratelimit.New(cfg.SentimentRateLimit, cfg.SentimentRateWindow, clock)
	stopSweeper := limiter.StartSweeper(limiterSweepInterval)
	defer stopSweeper()

	var sentimentSvc server.SentimentService
	if cfg.SentimentEnabled() {
		client := sentiment.NewClient(cfg.SentimentEndpoint, cfg.SentimentAPIKey, cfg.SentimentTimeout)
		cache := sentiment.NewCache(cfg.SentimentCacheTTL, cfg.SentimentCacheSize, clock)
		sentimentSvc = sentiment.NewService(client, cache)
	} else {
		slog.Info("Sentiment endpoint not configured, /sentiments disabled")
	}

	srv := server.NewServer(cfg, repo, sentimentSvc, limiter)

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
