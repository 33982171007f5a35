package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoreframe/gridiron-data/internal/jsontree"
)

type fakeSource struct {
	name  string
	lines []Line
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Players(context.Context, jsontree.Tree) ([]Line, error) {
	f.calls++
	return f.lines, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolverFirstNonEmptySourceWins(t *testing.T) {
	first := &fakeSource{name: "a", lines: []Line{{TeamAbbr: "KC"}}}
	second := &fakeSource{name: "b", lines: []Line{{TeamAbbr: "BUF"}}}
	r := NewResolver(discardLogger(), first, second)

	lines := r.Players(context.Background(), jsontree.Tree{})
	require.Len(t, lines, 1)
	assert.Equal(t, "KC", lines[0].TeamAbbr)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later sources must not be consulted")
}

func TestResolverSkipsEmptyAndFailedSources(t *testing.T) {
	empty := &fakeSource{name: "empty"}
	failed := &fakeSource{name: "failed", err: errors.New("upstream 500")}
	last := &fakeSource{name: "last", lines: []Line{{TeamAbbr: "PHI"}}}
	r := NewResolver(discardLogger(), empty, failed, last)

	lines := r.Players(context.Background(), jsontree.Tree{})
	require.Len(t, lines, 1)
	assert.Equal(t, "PHI", lines[0].TeamAbbr)
	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 1, failed.calls)
}

func TestResolverAllSourcesEmpty(t *testing.T) {
	r := NewResolver(discardLogger(), &fakeSource{name: "a"}, &fakeSource{name: "b"})
	assert.Empty(t, r.Players(context.Background(), jsontree.Tree{}))
}

func TestCanonicalizeAliases(t *testing.T) {
	out := canonicalize(map[string]float64{
		"passingYds": 250,
		"rec":        6,
		"ints":       1,
		"custom":     3,
	})
	assert.Equal(t, map[string]float64{
		"passingYards":  250,
		"receptions":    6,
		"interceptions": 1,
		"custom":        3,
	}, out)
}

func TestCanonicalizeFumblesLostPrecedence(t *testing.T) {
	// Total fumbles include recovered ones; when the true lost count is
	// present the generic alias must not clobber it.
	out := canonicalize(map[string]float64{"fumbles": 2, "fumblesLost": 1})
	assert.Equal(t, 1.0, out["fumblesLost"])

	out = canonicalize(map[string]float64{"fumbles": 2})
	assert.Equal(t, 2.0, out["fumblesLost"])
}

func TestEventIDFromSummary(t *testing.T) {
	assert.Equal(t, "401547", eventIDFromSummary(jsontree.Tree{
		"header": map[string]any{"id": "401547"},
	}))
	// Numeric ids and the competitions fallback both resolve.
	assert.Equal(t, "401548", eventIDFromSummary(jsontree.Tree{
		"header": map[string]any{
			"competitions": []any{map[string]any{"id": float64(401548)}},
		},
	}))
	assert.Empty(t, eventIDFromSummary(jsontree.Tree{}))
}
