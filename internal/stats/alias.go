package stats

import "github.com/scoreframe/gridiron-data/internal/scoring"

// statAliases maps the short stat names the upstream boxscores use onto the
// canonical keys the scoring engine understands. Keys already canonical
// pass through untouched.
var statAliases = map[string]string{
	"passingYds":   scoring.PassingYards,
	"passingTDs":   scoring.PassingTouchdowns,
	"ints":         scoring.Interceptions,
	"rushingYds":   scoring.RushingYards,
	"rushingTDs":   scoring.RushingTouchdowns,
	"receivingYds": scoring.ReceivingYards,
	"receivingTDs": scoring.ReceivingTouchdowns,
	"rec":          scoring.Receptions,
	"fumbles":      scoring.FumblesLost,
}

// canonicalize rewrites aliased stat keys to their canonical names. When a
// payload carries both a true fumblesLost value and the generic fumbles
// count, the true value wins: total fumbles include recovered ones and
// would overstate the penalty.
func canonicalize(stats map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(stats))
	_, hasFumblesLost := stats[scoring.FumblesLost]
	for k, v := range stats {
		canon, ok := statAliases[k]
		if !ok {
			canon = k
		}
		if canon == scoring.FumblesLost && k != scoring.FumblesLost && hasFumblesLost {
			continue
		}
		out[canon] = v
	}
	return out
}
