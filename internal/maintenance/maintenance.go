// Package maintenance runs periodic background tasks as Go tickers.
// Replaces external cron — all scheduled work is driven from Go since the
// API server is already a persistent, long-running service.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/scoreframe/gridiron-data/internal/ingest"
	"github.com/scoreframe/gridiron-data/internal/week"
)

// Ingestor is the slice of the ingestion service the tickers drive.
type Ingestor interface {
	IngestWeek(ctx context.Context, year, overallWeek int, score bool) (*ingest.WeekReport, error)
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	LiveRefreshInterval time.Duration // Re-ingest the current week while in season
	CorrectionInterval  time.Duration // Rescore the previous week for stat corrections
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		LiveRefreshInterval: 5 * time.Minute,
		CorrectionInterval:  12 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, ing Ingestor, loc *time.Location, cfg Config, logger *slog.Logger) {
	if loc == nil {
		loc = time.UTC
	}
	logger.Info("Maintenance tickers started",
		"live_refresh", cfg.LiveRefreshInterval,
		"correction", cfg.CorrectionInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Live refresh: persist fresh scores for the week in progress
	if cfg.LiveRefreshInterval > 0 {
		t := time.NewTicker(cfg.LiveRefreshInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { refreshCurrentWeek(ctx, ing, loc, logger) })
	}

	// Correction sweep: re-ingest last week to pick up upstream stat edits
	if cfg.CorrectionInterval > 0 {
		t := time.NewTicker(cfg.CorrectionInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { sweepPreviousWeek(ctx, ing, loc, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// refreshCurrentWeek re-ingests the week containing today so saved games and
// fantasy points track live play. Outside any week window it is a no-op.
func refreshCurrentWeek(ctx context.Context, ing Ingestor, loc *time.Location, logger *slog.Logger) {
	var rule week.FixedRule
	year, overall, ok := rule.Season(time.Now().In(loc))
	if !ok {
		return
	}
	report, err := ing.IngestWeek(ctx, year, overall, true)
	if err != nil {
		logger.Warn("Live refresh: week ingest failed", "year", year, "week", overall, "error", err)
		return
	}
	logger.Info("Live refresh: week ingested",
		"year", year, "week", overall, "summary", report.Summary())
}

// sweepPreviousWeek rescoring catches upstream stat corrections that land
// days after games finish.
func sweepPreviousWeek(ctx context.Context, ing Ingestor, loc *time.Location, logger *slog.Logger) {
	var rule week.FixedRule
	year, overall, ok := rule.Season(time.Now().In(loc).AddDate(0, 0, -7))
	if !ok {
		return
	}
	report, err := ing.IngestWeek(ctx, year, overall, true)
	if err != nil {
		logger.Warn("Correction sweep: week ingest failed", "year", year, "week", overall, "error", err)
		return
	}
	logger.Info("Correction sweep: week rescored",
		"year", year, "week", overall, "summary", report.Summary())
}
