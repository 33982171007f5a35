// Command api is the Gridiron Data API server.
//
// Usage:
//
//	gridiron-api
//	API_PORT=8080 gridiron-api

// @title Gridiron Data API
// @version 1.0.0
// @description NFL live scores and fantasy scoring API: a normalized scoreboard read path plus game ingestion and Full PPR fantasy point computation persisted to Postgres.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/scoreframe/gridiron-data/internal/api"
	"github.com/scoreframe/gridiron-data/internal/api/handler"
	"github.com/scoreframe/gridiron-data/internal/cache"
	"github.com/scoreframe/gridiron-data/internal/config"
	"github.com/scoreframe/gridiron-data/internal/db"
	"github.com/scoreframe/gridiron-data/internal/espn"
	"github.com/scoreframe/gridiron-data/internal/ingest"
	"github.com/scoreframe/gridiron-data/internal/maintenance"
	"github.com/scoreframe/gridiron-data/internal/nflverse"
	"github.com/scoreframe/gridiron-data/internal/scoreboard"
	"github.com/scoreframe/gridiron-data/internal/stats"
	"github.com/scoreframe/gridiron-data/internal/store"
	"github.com/scoreframe/gridiron-data/internal/week"

	_ "github.com/scoreframe/gridiron-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	loc, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		logger.Warn("Invalid display timezone, using UTC", "tz", cfg.DisplayTimezone)
		loc = time.UTC
	}

	// Upstream client and week rule
	client := espn.NewClient(espn.DefaultURLs(), cfg.UpstreamRequestsPerMinute, logger)
	var rule week.Rule = week.FixedRule{}
	if cfg.WeekRule == config.WeekRuleDiscovered {
		rule = week.DiscoveredRule{Start: client.SeasonStart}
	}

	// Scoreboard read path
	norm := scoreboard.Normalizer{Loc: loc, Label: time.Now().In(loc).Format("MST")}
	scores := scoreboard.NewService(client, rule, norm, logger)
	scores.SetTTL(cfg.ScoreboardTTL)

	// Ingestion service
	ing := ingest.NewService(ingest.Options{
		Provider:   client,
		Resolver:   stats.NewResolver(logger, stats.DefaultSources(client)...),
		Historical: nflverse.New(logger),
		Scores:     scores,
		Store:      store.New(pool.Pool),
		InTx: func(ctx context.Context, fn func(ingest.Store) error) error {
			return pool.InTx(ctx, func(tx pgx.Tx) error {
				return fn(store.New(tx))
			})
		},
		Location:        loc,
		LeaderboardSize: cfg.LeaderboardSize,
		Logger:          logger,
	})

	// Response cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Background refresh of the current week and correction sweeps
	go maintenance.Start(ctx, ing, loc, maintenance.DefaultConfig(), logger)

	// Create router
	h := handler.New(scores, ing, pool, appCache, cfg, loc)
	router := api.NewRouter(h, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Gridiron Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
