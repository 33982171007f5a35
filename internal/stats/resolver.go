// Package stats resolves per-player game statistics from the upstream
// provider's three data sources and normalizes them into canonical stat
// maps.
//
// Sources are tried in priority order: the embedded summary boxscore, the
// rendered boxscore page's state blob, and finally the core resource graph
// (one request per athlete, last resort). The first source that yields any
// players wins; a source that errors is treated as having yielded nothing
// so the next one gets a chance.
package stats

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/scoreframe/gridiron-data/internal/jsontree"
)

// Athlete identifies a player as reported by the upstream source. ID is
// source-specific and synthesized by some adapters when absent.
type Athlete struct {
	ID   string
	Name string
}

// Line is one player's statistics within a game: the canonical tuple every
// source produces.
type Line struct {
	TeamAbbr string
	Position string
	Athlete  Athlete
	Stats    map[string]float64
}

// Fetcher is the slice of the upstream client the fallback sources need:
// the rendered boxscore page and the core resource graph with its linked
// resources.
type Fetcher interface {
	BoxscoreHTML(ctx context.Context, eventID string) (string, error)
	Core(ctx context.Context, path string) (jsontree.Tree, error)
	GetJSON(ctx context.Context, rawURL string) (jsontree.Tree, error)
}

// Source is one ordered statistics source. Players returns an empty slice
// when the source has nothing for this game; that is not an error.
type Source interface {
	Name() string
	Players(ctx context.Context, summary jsontree.Tree) ([]Line, error)
}

// Resolver dispatches over an ordered list of sources.
type Resolver struct {
	sources []Source
	logger  *slog.Logger
}

// NewResolver creates a resolver trying sources in the given order.
func NewResolver(logger *slog.Logger, sources ...Source) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{sources: sources, logger: logger}
}

// DefaultSources returns the production source order for a client.
func DefaultSources(client Fetcher) []Source {
	return []Source{
		&SummarySource{},
		&PageSource{Client: client},
		&GraphSource{Client: client},
	}
}

// Players resolves the canonical player lines for a game's summary payload.
// All sources empty means an empty result: zero recorded players is a
// valid, if unusual, outcome and never an error.
func (r *Resolver) Players(ctx context.Context, summary jsontree.Tree) []Line {
	for _, src := range r.sources {
		lines, err := src.Players(ctx, summary)
		if err != nil {
			r.logger.Warn("stats source failed, trying next", "source", src.Name(), "error", err)
			continue
		}
		if len(lines) > 0 {
			r.logger.Debug("stats resolved", "source", src.Name(), "players", len(lines))
			return lines
		}
	}
	return nil
}

// eventIDFromSummary pulls the event id out of a summary payload, needed by
// the page and graph sources.
func eventIDFromSummary(summary jsontree.Tree) string {
	if id := strVal(summary, "header", "id"); id != "" {
		return id
	}
	return strVal(summary, "header", "competitions", 0, "id")
}

// strVal reads a string-or-number field as a string.
func strVal(t jsontree.Tree, path ...any) string {
	if s := t.Str(path...); s != "" {
		return s
	}
	v, ok := t.Get(path...)
	if !ok {
		return ""
	}
	if f, ok := jsontree.Num(v); ok {
		return trimFloat(f)
	}
	return ""
}

func trimFloat(f float64) string {
	// Upstream ids are integral.
	n := int64(f)
	if float64(n) == f {
		return strconv.FormatInt(n, 10)
	}
	return ""
}
