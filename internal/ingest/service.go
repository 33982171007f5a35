// Package ingest orchestrates game ingestion: saving games from upstream
// summaries, resolving and scoring player statistics, and bulk week
// backfills. Each game's writes happen in one transaction so repeated runs
// converge and a failed game leaves nothing behind.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/scoreframe/gridiron-data/internal/jsontree"
	"github.com/scoreframe/gridiron-data/internal/scoreboard"
	"github.com/scoreframe/gridiron-data/internal/scoring"
	"github.com/scoreframe/gridiron-data/internal/stats"
	"github.com/scoreframe/gridiron-data/internal/store"
	"github.com/scoreframe/gridiron-data/internal/week"
)

// Store is the persistence surface ingestion writes through, satisfied by
// *store.Store over a pool or transaction.
type Store interface {
	UpsertTeam(ctx context.Context, abbr, name string, logoURL *string) (int64, error)
	UpsertPlayer(ctx context.Context, extID, name string, position *string, teamID *int64) (int64, error)
	GetOrCreateSeason(ctx context.Context, year int) (int64, error)
	UpsertGame(ctx context.Context, eventID string, seasonID int64, overallWeek int, kickoff *time.Time, status string, venue *string) (int64, error)
	UpsertGameTeam(ctx context.Context, gameID, teamID int64, homeAway string, score *int) error
	UpsertPerformance(ctx context.Context, p store.Performance) error
	GameByEventID(ctx context.Context, eventID string) (*store.Game, error)
	TeamsByAbbr(ctx context.Context) (map[string]store.Team, error)
	ScoringRuleByName(ctx context.Context, name string) (scoring.Rule, error)
	TopPerformers(ctx context.Context, gameID int64, limit int) ([]store.Performer, error)
	TeamTopPerformers(ctx context.Context, gameID int64, limit int) (map[string][]store.Performer, error)
}

// TxRunner executes fn against a transactional Store, committing on nil.
type TxRunner func(ctx context.Context, fn func(Store) error) error

// Provider fetches game summaries from the upstream API.
type Provider interface {
	Summary(ctx context.Context, eventID string) (jsontree.Tree, error)
}

// Resolver yields player stat lines for a game summary.
type Resolver interface {
	Players(ctx context.Context, summary jsontree.Tree) []stats.Line
}

// Historical is the fallback stat source for games whose upstream payloads
// have gone stale.
type Historical interface {
	PlayersForGame(ctx context.Context, season, overallWeek int, homeAbbr, awayAbbr string) ([]stats.Line, error)
}

// ScoreFetcher provides a fresh normalized scoreboard for a week window.
type ScoreFetcher interface {
	Fresh(ctx context.Context, year, overallWeek int) (scoreboard.Payload, error)
}

// Service is the ingestion orchestrator.
type Service struct {
	provider   Provider
	resolver   Resolver
	historical Historical
	scores     ScoreFetcher
	store      Store
	inTx       TxRunner
	logger     *slog.Logger

	// fixed maps kickoff dates to season and overall week at save time.
	fixed week.FixedRule
	loc   *time.Location
	now   func() time.Time

	leaderboardSize int
}

// Options carries the service's collaborators.
type Options struct {
	Provider        Provider
	Resolver        Resolver
	Historical      Historical
	Scores          ScoreFetcher
	Store           Store
	InTx            TxRunner
	Location        *time.Location
	LeaderboardSize int
	Logger          *slog.Logger
}

// NewService builds an ingestion service.
func NewService(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.LeaderboardSize <= 0 {
		opts.LeaderboardSize = 5
	}
	return &Service{
		provider:        opts.Provider,
		resolver:        opts.Resolver,
		historical:      opts.Historical,
		scores:          opts.Scores,
		store:           opts.Store,
		inTx:            opts.InTx,
		logger:          opts.Logger,
		loc:             opts.Location,
		now:             time.Now,
		leaderboardSize: opts.LeaderboardSize,
	}
}

// SaveResult describes a saved game.
type SaveResult struct {
	OK          bool   `json:"ok"`
	EventID     string `json:"event_id"`
	Year        int    `json:"year"`
	OverallWeek int    `json:"overall_week"`
	Venue       string `json:"venue,omitempty"`
	Home        string `json:"home"`
	Away        string `json:"away"`
	Status      string `json:"status"`
	Kickoff     string `json:"kickoff"`
}

type gameSide struct {
	teamID int64
	abbr   string
	score  *int
}

// SaveGame fetches the summary for one game and persists the season, both
// teams, the game row, and the two team sides in a single transaction.
func (s *Service) SaveGame(ctx context.Context, eventID string) (*SaveResult, error) {
	summary, err := s.provider.Summary(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("fetch summary %s: %w", eventID, err)
	}

	comp0 := summary.Map("header", "competitions", 0)
	competitors := comp0.Slice("competitors")
	if len(competitors) != 2 {
		return nil, fmt.Errorf("%w: event %s: expected 2 competitors, got %d",
			ErrMalformedPayload, eventID, len(competitors))
	}

	kickoffISO := comp0.Str("date")
	kickoff, ok := parseKickoff(kickoffISO)
	if !ok {
		return nil, fmt.Errorf("%w: event %s: missing kickoff date", ErrMalformedPayload, eventID)
	}

	venue := comp0.Str("venue", "fullName")
	if venue == "" {
		venue = summary.Str("gameInfo", "venue", "fullName")
	}

	year, overallWeek := s.inferSeasonWeek(kickoff)

	state := strings.ToLower(comp0.Str("status", "type", "state"))
	status := "pre"
	if state == "in" || state == "post" {
		status = state
	}

	res := &SaveResult{
		OK:          true,
		EventID:     eventID,
		Year:        year,
		OverallWeek: overallWeek,
		Venue:       venue,
		Status:      status,
		Kickoff:     kickoff.UTC().Format(time.RFC3339),
	}

	err = s.inTx(ctx, func(tx Store) error {
		seasonID, err := tx.GetOrCreateSeason(ctx, year)
		if err != nil {
			return err
		}

		sides := make(map[string]gameSide, 2)
		for _, rawCompetitor := range competitors {
			c := jsontree.AsTree(rawCompetitor)
			if c == nil {
				continue
			}
			side, abbr, err := s.saveCompetitor(ctx, tx, eventID, c)
			if err != nil {
				return err
			}
			sides[c.Str("homeAway")] = side
			if c.Str("homeAway") == "home" {
				res.Home = abbr
			} else {
				res.Away = abbr
			}
		}
		home, hasHome := sides["home"]
		away, hasAway := sides["away"]
		if !hasHome || !hasAway {
			return fmt.Errorf("%w: event %s: home/away sides not found", ErrMalformedPayload, eventID)
		}

		kick := kickoff.UTC()
		var venuePtr *string
		if venue != "" {
			venuePtr = &venue
		}
		gameID, err := tx.UpsertGame(ctx, eventID, seasonID, overallWeek, &kick, status, venuePtr)
		if err != nil {
			return err
		}
		if err := tx.UpsertGameTeam(ctx, gameID, home.teamID, "home", home.score); err != nil {
			return err
		}
		return tx.UpsertGameTeam(ctx, gameID, away.teamID, "away", away.score)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("game saved", "event_id", eventID, "year", year,
		"week", overallWeek, "home", res.Home, "away", res.Away, "status", status)
	return res, nil
}

// saveCompetitor upserts one competitor's team and returns its side record.
func (s *Service) saveCompetitor(ctx context.Context, tx Store, eventID string, c jsontree.Tree) (gameSide, string, error) {
	abbr := strings.ToUpper(c.Str("team", "abbreviation"))
	if abbr == "" {
		abbr = strings.ToUpper(c.Str("team", "shortDisplayName"))
	}
	if abbr == "" {
		return gameSide{}, "", fmt.Errorf("%w: event %s: missing team abbreviation", ErrMalformedPayload, eventID)
	}
	name := c.Str("team", "displayName")
	if name == "" {
		name = c.Str("team", "name")
	}
	if name == "" {
		name = abbr
	}
	var logo *string
	if l := c.Str("team", "logo"); l != "" {
		logo = &l
	} else if l := c.Str("team", "logos", 0, "href"); l != "" {
		logo = &l
	}

	teamID, err := tx.UpsertTeam(ctx, abbr, name, logo)
	if err != nil {
		return gameSide{}, "", err
	}

	var score *int
	if v, ok := c.Get("score"); ok {
		if f, ok := jsontree.Num(v); ok {
			n := int(f)
			score = &n
		}
	}
	return gameSide{teamID: teamID, abbr: abbr, score: score}, abbr, nil
}

// ScoreResult describes a scoring pass over one game.
type ScoreResult struct {
	EventID    string                       `json:"event_id"`
	Parsed     int                          `json:"parsed"`
	TopFullPPR map[string][]store.Performer `json:"top_full_ppr"`
}

// ScoreGame resolves player statistics for a saved game, computes Full PPR
// points, persists everything in one transaction, and returns the per-team
// leaderboards. The game must be saved first.
func (s *Service) ScoreGame(ctx context.Context, eventID string) (*ScoreResult, error) {
	g, err := s.store.GameByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rule, err := s.store.ScoringRuleByName(ctx, scoring.FullPPRName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrRuleMissing, scoring.FullPPRName)
		}
		return nil, err
	}

	summary, err := s.provider.Summary(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("fetch summary %s: %w", eventID, err)
	}

	lines := s.resolver.Players(ctx, summary)
	if len(lines) == 0 && s.historical != nil {
		lines, err = s.historical.PlayersForGame(ctx, g.Year, g.OverallWeek, g.HomeAbbr, g.AwayAbbr)
		if err != nil {
			s.logger.Warn("historical stats lookup failed", "event_id", eventID, "error", err)
			lines = nil
		} else if len(lines) > 0 {
			s.logger.Info("stats resolved from historical data set",
				"event_id", eventID, "players", len(lines))
		}
	}

	teams, err := s.store.TeamsByAbbr(ctx)
	if err != nil {
		return nil, err
	}

	written := 0
	err = s.inTx(ctx, func(tx Store) error {
		for _, line := range lines {
			team, ok := teams[line.TeamAbbr]
			if !ok {
				continue
			}
			var pos *string
			if line.Position != "" {
				p := line.Position
				pos = &p
			}
			playerID, err := tx.UpsertPlayer(ctx, line.Athlete.ID, line.Athlete.Name, pos, &team.ID)
			if err != nil {
				return err
			}
			err = tx.UpsertPerformance(ctx, store.Performance{
				GameID:   g.ID,
				PlayerID: playerID,
				TeamID:   team.ID,
				Position: pos,
				Stats:    line.Stats,
				Points:   scoring.Round2(scoring.Points(line.Stats, rule)),
			})
			if err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	top, err := s.store.TeamTopPerformers(ctx, g.ID, s.leaderboardSize)
	if err != nil {
		return nil, err
	}

	s.logger.Info("game scored", "event_id", eventID, "players", written)
	return &ScoreResult{EventID: eventID, Parsed: written, TopFullPPR: top}, nil
}

// TopPerformers returns the top-N performers across both teams of a saved
// game. top is clamped to 1..50.
func (s *Service) TopPerformers(ctx context.Context, eventID string, top int) ([]store.Performer, error) {
	if top < 1 {
		top = 1
	} else if top > 50 {
		top = 50
	}
	g, err := s.store.GameByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.store.TopPerformers(ctx, g.ID, top)
}

// IngestWeek saves every game in a week window and optionally scores each
// one. Games are processed strictly sequentially; each failure is recorded
// in the report and the rest of the week continues.
func (s *Service) IngestWeek(ctx context.Context, year, overallWeek int, score bool) (*WeekReport, error) {
	payload, err := s.scores.Fresh(ctx, year, overallWeek)
	if err != nil {
		return nil, fmt.Errorf("fetch week %d/%d scoreboard: %w", year, overallWeek, err)
	}

	report := &WeekReport{Year: year, Week: overallWeek}
	for _, g := range payload.Games {
		if g.ID != "" {
			report.Events = append(report.Events, g.ID)
		}
	}

	for _, eventID := range report.Events {
		if _, err := s.SaveGame(ctx, eventID); err != nil {
			report.AddError(eventID, err)
			continue
		}
		report.Saved = append(report.Saved, eventID)

		if !score {
			continue
		}
		res, err := s.ScoreGame(ctx, eventID)
		if err != nil {
			report.AddError(eventID, err)
			continue
		}
		report.Scored = append(report.Scored, ScoredGame{EventID: eventID, Rows: res.Parsed})
	}

	// If the window ended at least one full day ago, every game in it can
	// be assumed final.
	if _, end, err := s.fixed.Range(ctx, year, overallWeek); err == nil {
		today := s.now().In(s.loc)
		report.AllFinal = !today.Before(end.AddDate(0, 0, 1))
	}

	s.logger.Info("week ingested", "summary", report.Summary())
	return report, nil
}

// inferSeasonWeek maps a kickoff to its season year and overall week using
// the fixed calendar. Late-season weeks spill into January, so the season
// year can differ from the kickoff's calendar year. Unmatched dates default
// to the kickoff year and regular-season week 1.
func (s *Service) inferSeasonWeek(kickoff time.Time) (int, int) {
	local := kickoff.In(s.loc)
	if year, overallWeek, ok := s.fixed.Season(local); ok {
		return year, overallWeek
	}
	return local.Year(), week.DefaultCurrentWeek
}

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
