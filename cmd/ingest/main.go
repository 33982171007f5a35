// Command ingest is the Gridiron data ingestion CLI.
//
// Usage:
//
//	gridiron-ingest seed teams
//	gridiron-ingest seed rules
//	gridiron-ingest seed seasons --start 2020 --end 2025
//	gridiron-ingest week --year 2025 --week 4
//	gridiron-ingest seasons --start 2023 --end 2024 --max-week 21
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scoreframe/gridiron-data/internal/config"
	"github.com/scoreframe/gridiron-data/internal/db"
	"github.com/scoreframe/gridiron-data/internal/espn"
	"github.com/scoreframe/gridiron-data/internal/ingest"
	"github.com/scoreframe/gridiron-data/internal/nflverse"
	"github.com/scoreframe/gridiron-data/internal/scoreboard"
	"github.com/scoreframe/gridiron-data/internal/seed"
	"github.com/scoreframe/gridiron-data/internal/stats"
	"github.com/scoreframe/gridiron-data/internal/store"
	"github.com/scoreframe/gridiron-data/internal/week"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "gridiron-ingest",
		Short: "Gridiron data ingestion CLI",
	}

	root.AddCommand(seedCmd())
	root.AddCommand(weekCmd())
	root.AddCommand(seasonsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed reference data (teams, scoring rules, season anchors)",
	}
	cmd.AddCommand(seedTeamsCmd())
	cmd.AddCommand(seedRulesCmd())
	cmd.AddCommand(seedSeasonsCmd())
	return cmd
}

func seedTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "Seed the 32 NFL teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				result := seed.SeedTeams(ctx, store.New(pool.Pool), logger)
				return reportSeed(result)
			})
		},
	}
}

func seedRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Seed scoring rule presets (Full PPR, Half-PPR)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				result := seed.SeedRules(ctx, store.New(pool.Pool), logger)
				return reportSeed(result)
			})
		},
	}
}

func seedSeasonsCmd() *cobra.Command {
	var startYear, endYear int
	cmd := &cobra.Command{
		Use:   "seasons",
		Short: "Seed season rows with week window anchor dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if startYear > endYear {
				return fmt.Errorf("--start must not exceed --end")
			}
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				result := seed.SeedSeasonAnchors(ctx, store.New(pool.Pool), startYear, endYear, logger)
				return reportSeed(result)
			})
		},
	}
	cmd.Flags().IntVar(&startYear, "start", 2020, "First season year")
	cmd.Flags().IntVar(&endYear, "end", time.Now().Year(), "Last season year")
	return cmd
}

func reportSeed(result seed.SeedResult) error {
	logger.Info("Seed finished", "summary", result.Summary())
	for _, e := range result.Errors {
		logger.Error("seed error", "error", e)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d seed errors", len(result.Errors))
	}
	return nil
}

// --------------------------------------------------------------------------
// week command
// --------------------------------------------------------------------------

func weekCmd() *cobra.Command {
	var (
		year      int
		overall   int
		skipScore bool
	)
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Ingest every game of one season week",
		RunE: func(cmd *cobra.Command, args []string) error {
			if overall < 1 || overall > week.MaxOverallWeek {
				return fmt.Errorf("--week must be between 1 and %d", week.MaxOverallWeek)
			}
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				svc := buildIngest(cfg, pool)
				start := time.Now()
				report, err := svc.IngestWeek(ctx, year, overall, !skipScore)
				if err != nil {
					return err
				}
				logger.Info("Week ingest finished",
					"year", year, "week", overall,
					"duration", time.Since(start).Round(time.Second),
					"summary", report.Summary())
				for _, e := range report.Errors {
					logger.Error("game error", "event_id", e.EventID, "error", e.Error)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Season year")
	cmd.Flags().IntVar(&overall, "week", 0, "Overall week 1-21")
	cmd.Flags().BoolVar(&skipScore, "skip-score", false, "Save games without computing fantasy points")
	return cmd
}

// --------------------------------------------------------------------------
// seasons backfill command
// --------------------------------------------------------------------------

func seasonsCmd() *cobra.Command {
	var (
		startYear int
		endYear   int
		maxWeek   int
		skipScore bool
	)
	cmd := &cobra.Command{
		Use:   "seasons",
		Short: "Backfill every week of a season range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if startYear > endYear {
				return fmt.Errorf("--start must not exceed --end")
			}
			if maxWeek < 1 || maxWeek > week.MaxOverallWeek {
				return fmt.Errorf("--max-week must be between 1 and %d", week.MaxOverallWeek)
			}
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				svc := buildIngest(cfg, pool)
				start := time.Now()
				for year := startYear; year <= endYear; year++ {
					for wk := 1; wk <= maxWeek; wk++ {
						report, err := svc.IngestWeek(ctx, year, wk, !skipScore)
						if err != nil {
							logger.Error("week ingest failed", "year", year, "week", wk, "error", err)
							continue
						}
						logger.Info("Week ingested",
							"year", year, "week", wk, "summary", report.Summary())
					}
				}
				logger.Info("Backfill finished",
					"from", startYear, "to", endYear,
					"duration", time.Since(start).Round(time.Second))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&startYear, "start", time.Now().Year(), "First season year")
	cmd.Flags().IntVar(&endYear, "end", time.Now().Year(), "Last season year")
	cmd.Flags().IntVar(&maxWeek, "max-week", week.MaxOverallWeek, "Last overall week to ingest per season")
	cmd.Flags().BoolVar(&skipScore, "skip-score", false, "Save games without computing fantasy points")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// buildIngest wires the ingestion service the same way the API server does.
func buildIngest(cfg *config.Config, pool *db.Pool) *ingest.Service {
	client := espn.NewClient(espn.DefaultURLs(), cfg.UpstreamRequestsPerMinute, logger)
	var rule week.Rule = week.FixedRule{}
	if cfg.WeekRule == config.WeekRuleDiscovered {
		rule = week.DiscoveredRule{Start: client.SeasonStart}
	}

	loc, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		loc = time.UTC
	}
	norm := scoreboard.Normalizer{Loc: loc, Label: time.Now().In(loc).Format("MST")}
	scores := scoreboard.NewService(client, rule, norm, logger)

	return ingest.NewService(ingest.Options{
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
}

// run handles config loading, DB connection, and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
