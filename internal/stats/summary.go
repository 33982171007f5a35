package stats

import (
	"context"
	"strings"

	"github.com/scoreframe/gridiron-data/internal/jsontree"
	"github.com/scoreframe/gridiron-data/internal/scoring"
)

// SummarySource reads player lines straight out of the summary payload's
// embedded boxscore. It is the fast path: no extra requests.
type SummarySource struct{}

func (s *SummarySource) Name() string { return "summary" }

func (s *SummarySource) Players(_ context.Context, summary jsontree.Tree) ([]Line, error) {
	return boxscoreLines(summary), nil
}

// boxscoreLines walks a gamepackage-shaped tree and collects player stat
// lines. The upstream uses two shapes interchangeably, sometimes both in
// one payload:
//
//	boxscore.teams[].players[].athletes[]
//	boxscore.teams[].statistics[].athletes[]
//
// so both lists are treated as stat groups. Shared with PageSource, whose
// embedded blob carries the same structure.
func boxscoreLines(root jsontree.Tree) []Line {
	var lines []Line
	for _, rawTeam := range root.Slice("boxscore", "teams") {
		team := jsontree.AsTree(rawTeam)
		if team == nil {
			continue
		}
		abbr := strings.ToUpper(strings.TrimSpace(team.Str("team", "abbreviation")))
		if abbr == "" {
			continue
		}

		groups := append(team.Slice("players"), team.Slice("statistics")...)
		for _, rawGroup := range groups {
			group := jsontree.AsTree(rawGroup)
			if group == nil {
				continue
			}
			groupPos := group.Str("position", "abbreviation")
			if groupPos == "" {
				groupPos = group.Str("position", "displayName")
			}
			groupPos = strings.ToUpper(groupPos)

			for _, rawRow := range group.Slice("athletes") {
				row := jsontree.AsTree(rawRow)
				if row == nil {
					continue
				}
				athlete := row.Map("athlete")
				if len(athlete) == 0 {
					continue
				}
				if line, ok := buildLine(abbr, groupPos, athlete, rowStats(row)); ok {
					lines = append(lines, line)
				}
			}
		}
	}
	return lines
}

// rowStats merges a row's totals and stats fields into one raw stat map.
// The stats field is either a name→value object or a list of stat cells;
// list cells keyed only by abbreviation fill interceptions and receptions
// when no named cell already did.
func rowStats(row jsontree.Tree) map[string]float64 {
	stats := make(map[string]float64)

	for k, v := range row.Map("totals") {
		stats[k] = coerceNum(v)
	}

	if m := row.Map("stats"); m != nil {
		for k, v := range m {
			stats[k] = coerceNum(v)
		}
		return stats
	}

	for _, rawCell := range row.Slice("stats") {
		cell := jsontree.AsTree(rawCell)
		if cell == nil {
			continue
		}
		val := coerceNum(rawGet(cell, "value"))
		if name := cell.Str("name"); name != "" {
			stats[name] = val
		}
		switch cell.Str("abbreviation") {
		case "INT":
			if _, ok := stats[scoring.Interceptions]; !ok {
				stats[scoring.Interceptions] = val
			}
		case "REC":
			if _, ok := stats[scoring.Receptions]; !ok {
				stats[scoring.Receptions] = val
			}
		}
	}

	return stats
}

// buildLine canonicalizes stats and resolves the athlete's identity and
// position into a Line. The athlete's own position beats the group label.
func buildLine(teamAbbr, groupPos string, athlete jsontree.Tree, raw map[string]float64) (Line, bool) {
	pos := athlete.Str("position", "abbreviation")
	if pos == "" {
		pos = groupPos
	}

	id := strVal(athlete, "id")
	if id == "" {
		id = strVal(athlete, "uid")
	}
	if id == "" {
		return Line{}, false
	}
	name := athlete.Str("displayName")
	if name == "" {
		name = athlete.Str("shortName")
	}
	if name == "" {
		name = "Unknown"
	}

	return Line{
		TeamAbbr: teamAbbr,
		Position: strings.ToUpper(pos),
		Athlete:  Athlete{ID: id, Name: name},
		Stats:    canonicalize(raw),
	}, true
}

// coerceNum is the lenient numeric coercion for stat cells: numbers pass
// through, formatted strings like "1,024" parse, anything else is zero.
func coerceNum(v any) float64 {
	if f, ok := jsontree.Num(v); ok {
		return f
	}
	return 0
}

func rawGet(t jsontree.Tree, path ...any) any {
	v, _ := t.Get(path...)
	return v
}
