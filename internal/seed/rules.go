package seed

import (
	"context"
	"log/slog"

	"github.com/scoreframe/gridiron-data/internal/scoring"
	"github.com/scoreframe/gridiron-data/internal/store"
	"github.com/scoreframe/gridiron-data/internal/week"
)

// SeedRules upserts the scoring rule presets. The Full PPR rule must exist
// before any game can be scored.
func SeedRules(ctx context.Context, st *store.Store, logger *slog.Logger) SeedResult {
	var result SeedResult
	for _, rule := range []scoring.Rule{scoring.FullPPR, scoring.HalfPPR} {
		if err := st.UpsertScoringRule(ctx, rule); err != nil {
			result.AddErrorf("upsert rule %s: %v", rule.Name, err)
			continue
		}
		result.RulesUpserted++
	}
	logger.Info("Scoring rules seeded", "upserted", result.RulesUpserted, "errors", len(result.Errors))
	return result
}

// SeedSeasonAnchors creates season rows for [startYear, endYear] and stamps
// their week window anchor dates.
func SeedSeasonAnchors(ctx context.Context, st *store.Store, startYear, endYear int, logger *slog.Logger) SeedResult {
	var result SeedResult
	for year := startYear; year <= endYear; year++ {
		if _, err := st.GetOrCreateSeason(ctx, year); err != nil {
			result.AddErrorf("create season %d: %v", year, err)
			continue
		}
		pre, reg := week.Anchors(year)
		if err := st.SetSeasonAnchors(ctx, year, &pre, &reg); err != nil {
			result.AddErrorf("set anchors %d: %v", year, err)
			continue
		}
		result.SeasonsUpserted++
	}
	logger.Info("Season anchors seeded",
		"from", startYear, "to", endYear,
		"upserted", result.SeasonsUpserted, "errors", len(result.Errors))
	return result
}
