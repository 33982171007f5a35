package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/scoreframe/gridiron-data/internal/jsontree"
)

// GraphSource walks the upstream's core resource graph: competition →
// competitors → roster → per-athlete statistics, following $ref links
// wherever the graph uses them instead of inline objects. It is the
// slowest tier, one request per athlete, but the only one that covers
// historical games whose summaries carry no boxscore.
type GraphSource struct {
	Client Fetcher
}

func (s *GraphSource) Name() string { return "core-graph" }

func (s *GraphSource) Players(ctx context.Context, summary jsontree.Tree) ([]Line, error) {
	eventID := eventIDFromSummary(summary)
	if eventID == "" {
		return nil, nil
	}

	comp, err := s.Client.Core(ctx, fmt.Sprintf("/events/%s/competitions/%s", eventID, eventID))
	if err != nil {
		return nil, fmt.Errorf("fetch competition: %w", err)
	}

	var lines []Line
	for _, rawCompetitor := range s.competitorItems(ctx, comp) {
		competitor := s.deref(ctx, rawCompetitor)
		if competitor == nil {
			continue
		}
		teamAbbr := s.teamAbbr(ctx, competitor)
		competitorID := strVal(competitor, "id")
		if teamAbbr == "" || competitorID == "" {
			continue
		}

		roster, err := s.Client.Core(ctx, fmt.Sprintf(
			"/events/%s/competitions/%s/competitors/%s/roster", eventID, eventID, competitorID))
		if err != nil {
			continue
		}

		for _, rawItem := range roster.Slice("items") {
			line, ok := s.athleteLine(ctx, eventID, competitorID, teamAbbr, rawItem)
			if ok {
				lines = append(lines, line)
			}
		}
	}
	return lines, nil
}

// competitorItems normalizes the three shapes the competitors field takes:
// an object with an items list, an object holding only a $ref, or a bare
// list.
func (s *GraphSource) competitorItems(ctx context.Context, comp jsontree.Tree) []any {
	if items := comp.Slice("competitors", "items"); items != nil {
		return items
	}
	if ref := comp.Str("competitors", "$ref"); ref != "" {
		linked, err := s.Client.GetJSON(ctx, ref)
		if err != nil {
			return nil
		}
		return linked.Slice("items")
	}
	return comp.Slice("competitors")
}

// deref resolves a node that may be an inline object or a {$ref: url}
// stub. Unresolvable nodes come back nil.
func (s *GraphSource) deref(ctx context.Context, raw any) jsontree.Tree {
	node := jsontree.AsTree(raw)
	if node == nil {
		return nil
	}
	ref := node.Str("$ref")
	if ref == "" || len(node) > 1 {
		return node
	}
	linked, err := s.Client.GetJSON(ctx, ref)
	if err != nil {
		return nil
	}
	return linked
}

// teamAbbr resolves a competitor's team abbreviation, fetching the team
// resource when the competitor only links to it.
func (s *GraphSource) teamAbbr(ctx context.Context, competitor jsontree.Tree) string {
	team := competitor.Map("team")
	if team == nil {
		return ""
	}
	if abbr := team.Str("abbreviation"); abbr != "" {
		return strings.ToUpper(strings.TrimSpace(abbr))
	}
	if ref := team.Str("$ref"); ref != "" {
		linked, err := s.Client.GetJSON(ctx, ref)
		if err != nil {
			return ""
		}
		return strings.ToUpper(strings.TrimSpace(linked.Str("abbreviation")))
	}
	return ""
}

// athleteLine resolves one roster entry to a stat line. Entries whose
// athlete or statistics bucket cannot be fetched are skipped, not fatal:
// practice-squad players routinely have no game bucket.
func (s *GraphSource) athleteLine(ctx context.Context, eventID, competitorID, teamAbbr string, rawItem any) (Line, bool) {
	athlete := s.deref(ctx, rawItem)
	if athlete == nil {
		return Line{}, false
	}
	athleteID := strVal(athlete, "id")
	if athleteID == "" {
		return Line{}, false
	}
	name := athlete.Str("displayName")
	if name == "" {
		name = athlete.Str("shortName")
	}
	if name == "" {
		name = "Unknown"
	}
	pos := strings.ToUpper(athlete.Str("position", "abbreviation"))

	// Per-game statistics live in bucket 0 of the competition-scoped
	// roster entry.
	bucket, err := s.Client.Core(ctx, fmt.Sprintf(
		"/events/%s/competitions/%s/competitors/%s/roster/%s/statistics/0",
		eventID, eventID, competitorID, athleteID))
	if err != nil {
		return Line{}, false
	}

	stats := make(map[string]float64)
	for _, rawCat := range bucket.Slice("categories") {
		cat := jsontree.AsTree(rawCat)
		if cat == nil {
			continue
		}
		for _, rawMetric := range cat.Slice("stats") {
			metric := jsontree.AsTree(rawMetric)
			if metric == nil {
				continue
			}
			key := metric.Str("name")
			if key == "" {
				continue
			}
			if v, ok := metric.Get("value"); ok {
				stats[key] = coerceNum(v)
			}
		}
	}

	return Line{
		TeamAbbr: teamAbbr,
		Position: pos,
		Athlete:  Athlete{ID: athleteID, Name: name},
		Stats:    canonicalize(stats),
	}, true
}
