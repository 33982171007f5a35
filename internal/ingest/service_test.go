package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoreframe/gridiron-data/internal/jsontree"
	"github.com/scoreframe/gridiron-data/internal/scoreboard"
	"github.com/scoreframe/gridiron-data/internal/scoring"
	"github.com/scoreframe/gridiron-data/internal/stats"
	"github.com/scoreframe/gridiron-data/internal/store"
)

// fakeStore is an in-memory Store. Writes during a transaction land in the
// same maps; tx boundaries are tested through fakeTx.
type fakeStore struct {
	nextID   int64
	teams    map[string]store.Team
	players  map[string]int64
	seasons  map[int]int64
	games    map[string]*store.Game
	perfs    map[string]store.Performance
	rules    map[string]scoring.Rule
	gameByID map[int64]*store.Game
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		teams:    map[string]store.Team{},
		players:  map[string]int64{},
		seasons:  map[int]int64{},
		games:    map[string]*store.Game{},
		perfs:    map[string]store.Performance{},
		rules:    map[string]scoring.Rule{},
		gameByID: map[int64]*store.Game{},
	}
}

func (f *fakeStore) id() int64 { f.nextID++; return f.nextID }

func (f *fakeStore) UpsertTeam(_ context.Context, abbr, name string, logoURL *string) (int64, error) {
	if t, ok := f.teams[abbr]; ok {
		t.Name = name
		f.teams[abbr] = t
		return t.ID, nil
	}
	t := store.Team{ID: f.id(), Abbr: abbr, Name: name, LogoURL: logoURL}
	f.teams[abbr] = t
	return t.ID, nil
}

func (f *fakeStore) UpsertPlayer(_ context.Context, extID, name string, _ *string, _ *int64) (int64, error) {
	if id, ok := f.players[extID]; ok {
		return id, nil
	}
	id := f.id()
	f.players[extID] = id
	return id, nil
}

func (f *fakeStore) GetOrCreateSeason(_ context.Context, year int) (int64, error) {
	if id, ok := f.seasons[year]; ok {
		return id, nil
	}
	id := f.id()
	f.seasons[year] = id
	return id, nil
}

func (f *fakeStore) UpsertGame(_ context.Context, eventID string, seasonID int64, overallWeek int, kickoff *time.Time, status string, venue *string) (int64, error) {
	g, ok := f.games[eventID]
	if !ok {
		g = &store.Game{ID: f.id(), EventID: eventID}
		f.games[eventID] = g
	}
	g.SeasonID = seasonID
	g.OverallWeek = overallWeek
	g.Kickoff = kickoff
	g.Status = status
	g.Venue = venue
	for year, id := range f.seasons {
		if id == seasonID {
			g.Year = year
		}
	}
	f.gameByID[g.ID] = g
	return g.ID, nil
}

func (f *fakeStore) UpsertGameTeam(_ context.Context, gameID, teamID int64, homeAway string, score *int) error {
	for _, g := range f.games {
		if g.ID != gameID {
			continue
		}
		for _, t := range f.teams {
			if t.ID == teamID {
				if homeAway == "home" {
					g.HomeAbbr, g.HomeScore = t.Abbr, score
				} else {
					g.AwayAbbr, g.AwayScore = t.Abbr, score
				}
			}
		}
	}
	return nil
}

func (f *fakeStore) UpsertPerformance(_ context.Context, p store.Performance) error {
	f.perfs[fmt.Sprintf("%d/%d", p.GameID, p.PlayerID)] = p
	return nil
}

func (f *fakeStore) GameByEventID(_ context.Context, eventID string) (*store.Game, error) {
	if g, ok := f.games[eventID]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("game %s: %w", eventID, store.ErrNotFound)
}

func (f *fakeStore) TeamsByAbbr(context.Context) (map[string]store.Team, error) {
	return f.teams, nil
}

func (f *fakeStore) ScoringRuleByName(_ context.Context, name string) (scoring.Rule, error) {
	if r, ok := f.rules[name]; ok {
		return r, nil
	}
	return scoring.Rule{}, fmt.Errorf("scoring rule %q: %w", name, store.ErrNotFound)
}

func (f *fakeStore) TopPerformers(context.Context, int64, int) ([]store.Performer, error) {
	return nil, nil
}

func (f *fakeStore) TeamTopPerformers(_ context.Context, gameID int64, limit int) (map[string][]store.Performer, error) {
	out := map[string][]store.Performer{}
	for _, p := range f.perfs {
		if p.GameID != gameID {
			continue
		}
		for _, t := range f.teams {
			if t.ID == p.TeamID && len(out[t.Abbr]) < limit {
				out[t.Abbr] = append(out[t.Abbr], store.Performer{Points: p.Points})
			}
		}
	}
	return out, nil
}

type fakeProvider struct {
	summaries map[string]jsontree.Tree
}

func (f *fakeProvider) Summary(_ context.Context, eventID string) (jsontree.Tree, error) {
	if t, ok := f.summaries[eventID]; ok {
		return t, nil
	}
	return nil, errors.New("upstream 502")
}

type fakeResolver struct {
	lines []stats.Line
}

func (f *fakeResolver) Players(context.Context, jsontree.Tree) []stats.Line {
	return f.lines
}

type fakeHistorical struct {
	lines []stats.Line
	err   error
	calls int
}

func (f *fakeHistorical) PlayersForGame(context.Context, int, int, string, string) ([]stats.Line, error) {
	f.calls++
	return f.lines, f.err
}

type fakeScores struct {
	payload scoreboard.Payload
	err     error
}

func (f *fakeScores) Fresh(context.Context, int, int) (scoreboard.Payload, error) {
	return f.payload, f.err
}

func passthroughTx(st Store) TxRunner {
	return func(_ context.Context, fn func(Store) error) error {
		return fn(st)
	}
}

func gameSummary(eventID, kickoff string, state string) jsontree.Tree {
	competitor := func(homeAway, abbr, name, score string) map[string]any {
		return map[string]any{
			"homeAway": homeAway,
			"score":    score,
			"team": map[string]any{
				"abbreviation": abbr,
				"displayName":  name,
				"logo":         "https://img.example/" + abbr + ".png",
			},
		}
	}
	return jsontree.Tree{
		"header": map[string]any{
			"id": eventID,
			"competitions": []any{map[string]any{
				"id":   eventID,
				"date": kickoff,
				"venue": map[string]any{
					"fullName": "Arrowhead Stadium",
				},
				"competitors": []any{
					competitor("home", "KC", "Kansas City Chiefs", "24"),
					competitor("away", "DET", "Detroit Lions", "21"),
				},
				"status": map[string]any{
					"type": map[string]any{"state": state},
				},
			}},
		},
	}
}

func newTestService(st *fakeStore, provider Provider, resolver Resolver, historical Historical, scores ScoreFetcher) *Service {
	return NewService(Options{
		Provider:        provider,
		Resolver:        resolver,
		Historical:      historical,
		Scores:          scores,
		Store:           st,
		InTx:            passthroughTx(st),
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		LeaderboardSize: 5,
	})
}

func TestSaveGamePersistsGameAndSides(t *testing.T) {
	st := newFakeStore()
	provider := &fakeProvider{summaries: map[string]jsontree.Tree{
		"401": gameSummary("401", "2025-09-07T17:00Z", "post"),
	}}
	svc := newTestService(st, provider, &fakeResolver{}, nil, nil)

	res, err := svc.SaveGame(context.Background(), "401")
	require.NoError(t, err)

	assert.True(t, res.OK)
	assert.Equal(t, 2025, res.Year)
	assert.Equal(t, 4, res.OverallWeek, "Sep 7 falls in the first regular-season window")
	assert.Equal(t, "KC", res.Home)
	assert.Equal(t, "DET", res.Away)
	assert.Equal(t, "post", res.Status)
	assert.Equal(t, "Arrowhead Stadium", res.Venue)

	g := st.games["401"]
	require.NotNil(t, g)
	assert.Equal(t, "KC", g.HomeAbbr)
	require.NotNil(t, g.HomeScore)
	assert.Equal(t, 24, *g.HomeScore)
	require.NotNil(t, g.AwayScore)
	assert.Equal(t, 21, *g.AwayScore)
}

func TestSaveGameIdempotent(t *testing.T) {
	st := newFakeStore()
	provider := &fakeProvider{summaries: map[string]jsontree.Tree{
		"401": gameSummary("401", "2025-09-07T17:00Z", "in"),
	}}
	svc := newTestService(st, provider, &fakeResolver{}, nil, nil)

	_, err := svc.SaveGame(context.Background(), "401")
	require.NoError(t, err)
	_, err = svc.SaveGame(context.Background(), "401")
	require.NoError(t, err)

	assert.Len(t, st.games, 1)
	assert.Len(t, st.teams, 2)
	assert.Len(t, st.seasons, 1)
}

func TestSaveGameMalformedPayload(t *testing.T) {
	summary := gameSummary("401", "2025-09-07T17:00Z", "pre")
	comp := summary.Map("header", "competitions", 0)
	comp["competitors"] = []any{comp.Slice("competitors")[0]}

	st := newFakeStore()
	provider := &fakeProvider{summaries: map[string]jsontree.Tree{"401": summary}}
	svc := newTestService(st, provider, &fakeResolver{}, nil, nil)

	_, err := svc.SaveGame(context.Background(), "401")
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.Empty(t, st.games, "nothing persists for a malformed payload")
}

func TestSaveGameMissingKickoff(t *testing.T) {
	summary := gameSummary("401", "", "pre")
	st := newFakeStore()
	provider := &fakeProvider{summaries: map[string]jsontree.Tree{"401": summary}}
	svc := newTestService(st, provider, &fakeResolver{}, nil, nil)

	_, err := svc.SaveGame(context.Background(), "401")
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func scoredFixture(t *testing.T) (*fakeStore, *fakeProvider) {
	t.Helper()
	st := newFakeStore()
	st.rules[scoring.FullPPRName] = scoring.FullPPR
	provider := &fakeProvider{summaries: map[string]jsontree.Tree{
		"401": gameSummary("401", "2025-09-07T17:00Z", "post"),
	}}
	svc := newTestService(st, provider, &fakeResolver{}, nil, nil)
	_, err := svc.SaveGame(context.Background(), "401")
	require.NoError(t, err)
	return st, provider
}

func TestScoreGameComputesAndPersistsPoints(t *testing.T) {
	st, provider := scoredFixture(t)
	resolver := &fakeResolver{lines: []stats.Line{
		{
			TeamAbbr: "KC", Position: "QB",
			Athlete: stats.Athlete{ID: "15", Name: "Patrick Mahomes"},
			Stats:   map[string]float64{"passingYards": 250, "passingTouchdowns": 2, "interceptions": 1},
		},
		{
			TeamAbbr: "SEA", Position: "WR", // not a team in this game
			Athlete: stats.Athlete{ID: "99", Name: "Stray Player"},
			Stats:   map[string]float64{"receptions": 5},
		},
	}}
	svc := newTestService(st, provider, resolver, nil, nil)

	res, err := svc.ScoreGame(context.Background(), "401")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Parsed, "players on unknown teams are skipped")
	require.Len(t, st.perfs, 1)
	for _, p := range st.perfs {
		// 250*0.04 + 2*4 - 2 = 16
		assert.Equal(t, 16.0, p.Points)
	}
	assert.Contains(t, res.TopFullPPR, "KC")
}

func TestScoreGameNotSaved(t *testing.T) {
	st := newFakeStore()
	st.rules[scoring.FullPPRName] = scoring.FullPPR
	svc := newTestService(st, &fakeProvider{}, &fakeResolver{}, nil, nil)
	_, err := svc.ScoreGame(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScoreGameRuleMissing(t *testing.T) {
	st, provider := scoredFixture(t)
	delete(st.rules, scoring.FullPPRName)
	svc := newTestService(st, provider, &fakeResolver{}, nil, nil)
	_, err := svc.ScoreGame(context.Background(), "401")
	assert.ErrorIs(t, err, ErrRuleMissing)
}

func TestScoreGameHistoricalFallback(t *testing.T) {
	st, provider := scoredFixture(t)
	historical := &fakeHistorical{lines: []stats.Line{
		{
			TeamAbbr: "DET", Position: "RB",
			Athlete: stats.Athlete{ID: "00-0035685", Name: "David Montgomery"},
			Stats:   map[string]float64{"rushingYards": 100, "rushingTouchdowns": 1},
		},
	}}
	svc := newTestService(st, provider, &fakeResolver{}, historical, nil)

	res, err := svc.ScoreGame(context.Background(), "401")
	require.NoError(t, err)
	assert.Equal(t, 1, historical.calls)
	assert.Equal(t, 1, res.Parsed)
}

func TestScoreGameHistoricalNotConsultedWhenResolverHits(t *testing.T) {
	st, provider := scoredFixture(t)
	historical := &fakeHistorical{}
	resolver := &fakeResolver{lines: []stats.Line{{
		TeamAbbr: "KC",
		Athlete:  stats.Athlete{ID: "15", Name: "Patrick Mahomes"},
		Stats:    map[string]float64{"passingYards": 300},
	}}}
	svc := newTestService(st, provider, resolver, historical, nil)

	_, err := svc.ScoreGame(context.Background(), "401")
	require.NoError(t, err)
	assert.Equal(t, 0, historical.calls)
}

func TestIngestWeekPartialFailure(t *testing.T) {
	st := newFakeStore()
	st.rules[scoring.FullPPRName] = scoring.FullPPR
	provider := &fakeProvider{summaries: map[string]jsontree.Tree{
		"a": gameSummary("a", "2025-09-05T00:15Z", "post"),
		"c": gameSummary("c", "2025-09-08T17:00Z", "post"),
		// "b" has no summary and fails.
	}}
	scores := &fakeScores{payload: scoreboard.Payload{
		Games: []scoreboard.Game{{ID: "a"}, {ID: "b"}, {ID: "c"}},
	}}
	svc := newTestService(st, provider, &fakeResolver{}, nil, scores)

	report, err := svc.IngestWeek(context.Background(), 2025, 4, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, report.Events)
	assert.Equal(t, []string{"a", "c"}, report.Saved)
	assert.Len(t, report.Scored, 2)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "b", report.Errors[0].EventID)
}

func TestIngestWeekAllFinalHeuristic(t *testing.T) {
	st := newFakeStore()
	scores := &fakeScores{payload: scoreboard.Payload{}}
	svc := newTestService(st, &fakeProvider{}, &fakeResolver{}, nil, scores)

	// 2025 week 4 window ends Sep 10; a day later it is all final.
	svc.now = func() time.Time { return time.Date(2025, 9, 11, 12, 0, 0, 0, time.UTC) }
	report, err := svc.IngestWeek(context.Background(), 2025, 4, false)
	require.NoError(t, err)
	assert.True(t, report.AllFinal)

	svc.now = func() time.Time { return time.Date(2025, 9, 9, 12, 0, 0, 0, time.UTC) }
	report, err = svc.IngestWeek(context.Background(), 2025, 4, false)
	require.NoError(t, err)
	assert.False(t, report.AllFinal)
}

func TestIngestWeekScoreboardError(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeProvider{}, &fakeResolver{}, nil,
		&fakeScores{err: errors.New("upstream down")})
	_, err := svc.IngestWeek(context.Background(), 2025, 4, false)
	assert.Error(t, err)
}
