package seed

import (
	"context"
	"log/slog"

	"github.com/scoreframe/gridiron-data/internal/store"
)

type teamEntry struct {
	abbr string
	name string
}

// The 32 franchises under the upstream provider's abbreviations.
var nflTeams = []teamEntry{
	{"ARI", "Arizona Cardinals"}, {"ATL", "Atlanta Falcons"}, {"BAL", "Baltimore Ravens"},
	{"BUF", "Buffalo Bills"}, {"CAR", "Carolina Panthers"}, {"CHI", "Chicago Bears"},
	{"CIN", "Cincinnati Bengals"}, {"CLE", "Cleveland Browns"}, {"DAL", "Dallas Cowboys"},
	{"DEN", "Denver Broncos"}, {"DET", "Detroit Lions"}, {"GB", "Green Bay Packers"},
	{"HOU", "Houston Texans"}, {"IND", "Indianapolis Colts"}, {"JAX", "Jacksonville Jaguars"},
	{"KC", "Kansas City Chiefs"}, {"LV", "Las Vegas Raiders"}, {"LAC", "Los Angeles Chargers"},
	{"LAR", "Los Angeles Rams"}, {"MIA", "Miami Dolphins"}, {"MIN", "Minnesota Vikings"},
	{"NE", "New England Patriots"}, {"NO", "New Orleans Saints"}, {"NYG", "New York Giants"},
	{"NYJ", "New York Jets"}, {"PHI", "Philadelphia Eagles"}, {"PIT", "Pittsburgh Steelers"},
	{"SF", "San Francisco 49ers"}, {"SEA", "Seattle Seahawks"}, {"TB", "Tampa Bay Buccaneers"},
	{"TEN", "Tennessee Titans"}, {"WSH", "Washington Commanders"},
}

// SeedTeams upserts the full team table. Individual failures are recorded
// and skipped.
func SeedTeams(ctx context.Context, st *store.Store, logger *slog.Logger) SeedResult {
	var result SeedResult
	for _, team := range nflTeams {
		if _, err := st.UpsertTeam(ctx, team.abbr, team.name, nil); err != nil {
			result.AddErrorf("upsert team %s: %v", team.abbr, err)
			continue
		}
		result.TeamsUpserted++
	}
	logger.Info("Teams seeded", "upserted", result.TeamsUpserted, "errors", len(result.Errors))
	return result
}
