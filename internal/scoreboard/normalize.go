// Package scoreboard normalizes the upstream scoreboard payload into a
// canonical game listing and caches it with a short TTL.
package scoreboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/scoreframe/gridiron-data/internal/jsontree"
)

// SourceLabel identifies where scoreboard data came from. A refresh failure
// that falls back to a cached copy appends " (stale)".
const SourceLabel = "ESPN public scoreboard"

// Game is one normalized scoreboard entry. Scores are nil before kickoff
// and whenever the upstream value does not parse.
type Game struct {
	ID           string `json:"id"`
	Away         string `json:"away"`
	Home         string `json:"home"`
	AwayScore    *int   `json:"awayScore"`
	HomeScore    *int   `json:"homeScore"`
	Status       string `json:"status"`
	StartTimeUTC string `json:"startTimeUtc"`
}

// Payload is the normalized scoreboard response.
type Payload struct {
	AsOf   string `json:"asOf"`
	Source string `json:"source"`
	Games  []Game `json:"games"`
}

// Normalizer converts raw scoreboard trees. Kickoff times in status strings
// are rendered in Loc and suffixed with Label.
type Normalizer struct {
	Loc   *time.Location
	Label string
}

// Normalize converts a raw scoreboard payload. Entries without exactly two
// competitors are skipped: they are malformed or incomplete upstream data,
// not an error.
func (n Normalizer) Normalize(raw jsontree.Tree, now time.Time) Payload {
	games := []Game{}
	for _, ev := range raw.Slice("events") {
		event := jsontree.AsTree(ev)
		if event == nil {
			continue
		}
		comp := event.Map("competitions", 0)
		if comp == nil {
			continue
		}
		competitors := comp.Slice("competitors")
		if len(competitors) != 2 {
			continue
		}

		home, away := pickSides(competitors)

		kickoffISO := comp.Str("date")
		if kickoffISO == "" {
			kickoffISO = event.Str("date")
		}

		state := comp.Str("status", "type", "state")
		clock := comp.Str("status", "displayClock")
		period := comp.Int("status", "period")

		g := Game{
			ID:           event.Str("id"),
			Away:         teamAbbr(away),
			Home:         teamAbbr(home),
			StartTimeUTC: kickoffISO,
		}

		switch state {
		case "pre":
			g.Status = n.kickoffLabel(kickoffISO)
		case "in":
			label := ""
			if period > 0 {
				label = fmt.Sprintf("Q%d", period)
			}
			label = strings.TrimSpace(label + " " + clock)
			if label == "" {
				label = "In Progress"
			}
			g.Status = label
			g.HomeScore = score(home)
			g.AwayScore = score(away)
		case "post":
			g.Status = "Final"
			g.HomeScore = score(home)
			g.AwayScore = score(away)
		default:
			g.Status = "Status Unknown"
		}

		games = append(games, g)
	}

	return Payload{
		AsOf:   now.In(n.Loc).Format(time.RFC3339),
		Source: SourceLabel,
		Games:  games,
	}
}

// pickSides resolves home/away by the explicit role tag, falling back to
// positional order when the tag is absent.
func pickSides(competitors []any) (home, away jsontree.Tree) {
	for _, c := range competitors {
		t := jsontree.AsTree(c)
		if t == nil {
			continue
		}
		switch t.Str("homeAway") {
		case "home":
			if home == nil {
				home = t
			}
		case "away":
			if away == nil {
				away = t
			}
		}
	}
	if home == nil {
		home = jsontree.AsTree(competitors[0])
	}
	if away == nil {
		away = jsontree.AsTree(competitors[len(competitors)-1])
	}
	return home, away
}

func teamAbbr(c jsontree.Tree) string {
	if c == nil {
		return "UNK"
	}
	if abbr := c.Str("team", "abbreviation"); abbr != "" {
		return abbr
	}
	if short := c.Str("team", "shortDisplayName"); short != "" {
		return short
	}
	return "UNK"
}

func score(c jsontree.Tree) *int {
	if c == nil {
		return nil
	}
	v, ok := c.Get("score")
	if !ok {
		zero := 0
		return &zero
	}
	f, ok := jsontree.Num(v)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

// kickoffLabel renders a pre-game status like "Sep 07, 12:00 PM CT".
func (n Normalizer) kickoffLabel(iso string) string {
	t, ok := parseKickoff(iso)
	if !ok {
		return "Pregame"
	}
	return t.In(n.Loc).Format("Jan 02, 03:04 PM") + " " + n.Label
}

// parseKickoff accepts RFC3339 and the upstream's seconds-less variant.
func parseKickoff(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02T15:04Z07:00", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
