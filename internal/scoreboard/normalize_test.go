package scoreboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoreframe/gridiron-data/internal/jsontree"
)

var testNormalizer = Normalizer{
	Loc:   time.FixedZone("CT", -5*3600),
	Label: "CT",
}

func mustTree(t *testing.T, s string) jsontree.Tree {
	t.Helper()
	tree, err := jsontree.Parse([]byte(s))
	require.NoError(t, err)
	return tree
}

func event(id, state, clock string, period int, homeScore, awayScore string) string {
	return `{
		"id": "` + id + `",
		"date": "2025-09-07T17:00Z",
		"competitions": [{
			"date": "2025-09-07T17:00Z",
			"status": {"type": {"state": "` + state + `"}, "displayClock": "` + clock + `", "period": ` + itoa(period) + `},
			"competitors": [
				{"homeAway": "home", "score": "` + homeScore + `", "team": {"abbreviation": "CHI"}},
				{"homeAway": "away", "score": "` + awayScore + `", "team": {"abbreviation": "GB"}}
			]
		}]
	}`
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	return string(rune('0' + n))
}

func TestNormalizePregameWithholdsScores(t *testing.T) {
	raw := mustTree(t, `{"events": [`+event("401", "pre", "", 0, "0", "0")+`]}`)
	p := testNormalizer.Normalize(raw, time.Now())

	require.Len(t, p.Games, 1)
	g := p.Games[0]
	assert.Equal(t, "401", g.ID)
	assert.Equal(t, "CHI", g.Home)
	assert.Equal(t, "GB", g.Away)
	assert.Nil(t, g.HomeScore)
	assert.Nil(t, g.AwayScore)
	// 17:00 UTC is 12:00 PM in the fixed CT zone.
	assert.Equal(t, "Sep 07, 12:00 PM CT", g.Status)
}

func TestNormalizeInProgress(t *testing.T) {
	raw := mustTree(t, `{"events": [`+event("401", "in", "8:42", 3, "21", "14")+`]}`)
	p := testNormalizer.Normalize(raw, time.Now())

	require.Len(t, p.Games, 1)
	g := p.Games[0]
	assert.Equal(t, "Q3 8:42", g.Status)
	require.NotNil(t, g.HomeScore)
	require.NotNil(t, g.AwayScore)
	assert.Equal(t, 21, *g.HomeScore)
	assert.Equal(t, 14, *g.AwayScore)
}

func TestNormalizeInProgressEmptyClock(t *testing.T) {
	raw := mustTree(t, `{"events": [`+event("401", "in", "", 0, "7", "3")+`]}`)
	p := testNormalizer.Normalize(raw, time.Now())

	require.Len(t, p.Games, 1)
	assert.Equal(t, "In Progress", p.Games[0].Status)
}

func TestNormalizeFinalIsAlwaysFinal(t *testing.T) {
	raw := mustTree(t, `{"events": [`+event("401", "post", "0:00", 4, "31", "28")+`]}`)
	p := testNormalizer.Normalize(raw, time.Now())

	require.Len(t, p.Games, 1)
	assert.Equal(t, "Final", p.Games[0].Status)
}

func TestNormalizeUnknownState(t *testing.T) {
	raw := mustTree(t, `{"events": [`+event("401", "halftime?", "", 0, "7", "7")+`]}`)
	p := testNormalizer.Normalize(raw, time.Now())

	require.Len(t, p.Games, 1)
	g := p.Games[0]
	assert.Equal(t, "Status Unknown", g.Status)
	assert.Nil(t, g.HomeScore)
	assert.Nil(t, g.AwayScore)
}

func TestNormalizeDropsSingleCompetitorEntries(t *testing.T) {
	raw := mustTree(t, `{"events": [
		{"id": "900", "competitions": [{"competitors": [{"homeAway": "home", "team": {"abbreviation": "DAL"}}]}]},
		`+event("401", "post", "", 4, "20", "17")+`
	]}`)
	p := testNormalizer.Normalize(raw, time.Now())

	require.Len(t, p.Games, 1)
	assert.Equal(t, "401", p.Games[0].ID)
}

func TestNormalizeAbbrFallbacks(t *testing.T) {
	raw := mustTree(t, `{"events": [{
		"id": "401",
		"competitions": [{
			"status": {"type": {"state": "post"}},
			"competitors": [
				{"score": "10", "team": {"shortDisplayName": "Bears"}},
				{"score": "13", "team": {}}
			]
		}]
	}]}`)
	p := testNormalizer.Normalize(raw, time.Now())

	require.Len(t, p.Games, 1)
	g := p.Games[0]
	// No homeAway tags: positional fallback, first is home.
	assert.Equal(t, "Bears", g.Home)
	assert.Equal(t, "UNK", g.Away)
}

func TestNormalizeScoreParseFailure(t *testing.T) {
	raw := mustTree(t, `{"events": [{
		"id": "401",
		"competitions": [{
			"status": {"type": {"state": "post"}},
			"competitors": [
				{"homeAway": "home", "score": "n/a", "team": {"abbreviation": "NYJ"}},
				{"homeAway": "away", "score": "24", "team": {"abbreviation": "NE"}}
			]
		}]
	}]}`)
	p := testNormalizer.Normalize(raw, time.Now())

	require.Len(t, p.Games, 1)
	assert.Nil(t, p.Games[0].HomeScore)
	require.NotNil(t, p.Games[0].AwayScore)
	assert.Equal(t, 24, *p.Games[0].AwayScore)
}
