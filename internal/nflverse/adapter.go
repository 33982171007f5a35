// Package nflverse adapts the nflverse community weekly player-stats CSVs
// into the same canonical stat lines the live sources produce. It covers
// games whose upstream payloads have gone stale, which means any game more
// than a season or two old.
package nflverse

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/scoreframe/gridiron-data/internal/scoring"
	"github.com/scoreframe/gridiron-data/internal/stats"
)

// DefaultCSVURL is the release asset pattern for weekly player stats, one
// CSV per season.
const DefaultCSVURL = "https://github.com/nflverse/nflverse-data/releases/download/player_stats/stats_player_week_%d.csv"

// CSVTTL bounds how long a downloaded season sheet is reused. The data set
// is rebuilt nightly in-season, so twenty minutes keeps live backfills
// reasonably fresh without hammering the release host.
const CSVTTL = 20 * time.Minute

// Header candidates for the identity columns. Column names drift between
// data set builds, so each is probed in order against the actual header.
var (
	teamCols = []string{"team", "recent_team", "team_abbr"}
	oppCols  = []string{"opponent_team", "opponent", "opp"}
	posCols  = []string{"position"}
	nameCols = []string{"player_display_name", "player_name", "name"}
	idCols   = []string{"player_id", "gsis_id", "nflverse_id"}
)

// statCols maps canonical stat keys to their CSV columns.
var statCols = map[string]string{
	scoring.PassingYards:        "passing_yards",
	scoring.PassingTouchdowns:   "passing_tds",
	scoring.Interceptions:       "interceptions",
	scoring.RushingYards:        "rushing_yards",
	scoring.RushingTouchdowns:   "rushing_tds",
	scoring.ReceivingYards:      "receiving_yards",
	scoring.ReceivingTouchdowns: "receiving_tds",
	scoring.Receptions:          "receptions",
}

// fumbleLostCols are summed into fumblesLost: the data set splits lost
// fumbles by play type, and some builds also carry a pre-summed column.
var fumbleLostCols = []string{
	"rushing_fumbles_lost",
	"receiving_fumbles_lost",
	"sack_fumbles_lost",
	"fumbles_lost",
}

// row is one CSV record keyed by header name.
type row map[string]string

type seasonSheet struct {
	fetched time.Time
	rows    []row
}

// Adapter downloads and caches season sheets and extracts per-game lines.
type Adapter struct {
	httpClient *http.Client
	csvURL     string
	logger     *slog.Logger

	mu    sync.Mutex
	cache map[int]seasonSheet
	ttl   time.Duration
	now   func() time.Time
}

// New creates an adapter with the default release URL.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		csvURL:     DefaultCSVURL,
		logger:     logger,
		cache:      make(map[int]seasonSheet),
		ttl:        CSVTTL,
		now:        time.Now,
	}
}

// PlayersForGame returns the canonical stat lines for one game, identified by
// season, overall week, and the two ESPN-style team abbreviations.
func (a *Adapter) PlayersForGame(ctx context.Context, season, overallWeek int, homeAbbr, awayAbbr string) ([]stats.Line, error) {
	homeNV := ToNflverseAbbr(homeAbbr)
	awayNV := ToNflverseAbbr(awayAbbr)
	seasonType, nvWeek := convertOverallWeek(overallWeek)

	rows, err := a.seasonRows(ctx, season)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := resolveColumns(rows[0])

	filtered := filterRows(rows, cols, season, nvWeek, seasonType, homeNV, awayNV, true)
	if len(filtered) == 0 {
		// Timing and data-set version quirks occasionally break opponent
		// matching; retry on team membership alone.
		filtered = filterRows(rows, cols, season, nvWeek, seasonType, homeNV, awayNV, false)
		a.logger.Info("loose row filter used, no opponent match",
			"season", season, "week", nvWeek, "type", seasonType,
			"home", homeNV, "away", awayNV, "rows", len(filtered))
	}

	lines := make([]stats.Line, 0, len(filtered))
	for _, r := range filtered {
		lines = append(lines, rowLine(r, cols, season))
	}
	return lines, nil
}

type columns struct {
	team, opp, pos, name, id string
}

func resolveColumns(first row) columns {
	return columns{
		team: firstPresent(first, teamCols),
		opp:  firstPresent(first, oppCols),
		pos:  firstPresentOr(first, posCols, "position"),
		name: firstPresentOr(first, nameCols, "player_display_name"),
		id:   firstPresentOr(first, idCols, "player_id"),
	}
}

func firstPresent(r row, candidates []string) string {
	for _, c := range candidates {
		if _, ok := r[c]; ok {
			return c
		}
	}
	return ""
}

func firstPresentOr(r row, candidates []string, fallback string) string {
	if c := firstPresent(r, candidates); c != "" {
		return c
	}
	return fallback
}

// filterRows selects the rows for the requested game. Strict mode also
// requires the opponent column to name the other team when the column is
// present; loose mode matches on team membership alone.
func filterRows(rows []row, cols columns, season, nvWeek int, seasonType, homeNV, awayNV string, strict bool) []row {
	var out []row
	for _, r := range rows {
		if toInt(r["season"]) != season {
			continue
		}
		if w, ok := r["week"]; ok && isDigits(w) && toInt(w) != nvWeek {
			continue
		}
		if st, ok := r["season_type"]; ok && seasonType != "" && st != seasonType {
			continue
		}
		team := strings.ToUpper(r[cols.team])
		if team != homeNV && team != awayNV {
			continue
		}
		if strict && cols.opp != "" {
			expected := awayNV
			if team != homeNV {
				expected = homeNV
			}
			if strings.ToUpper(r[cols.opp]) != expected {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// rowLine maps a CSV row to a canonical line. Rows without a player id get
// a synthesized stable one so upserts stay idempotent.
func rowLine(r row, cols columns, season int) stats.Line {
	team := strings.ToUpper(r[cols.team])
	pos := strings.ToUpper(r[cols.pos])
	if pos == "" {
		pos = "NA"
	}
	name := strings.TrimSpace(r[cols.name])
	id := strings.TrimSpace(r[cols.id])
	if id == "" {
		id = fmt.Sprintf("nflverse:%d:%s:%s", season, name, team)
	}

	line := stats.Line{
		TeamAbbr: ToESPNAbbr(team),
		Position: pos,
		Athlete:  stats.Athlete{ID: id, Name: name},
		Stats:    make(map[string]float64, len(statCols)+1),
	}
	for canon, col := range statCols {
		line.Stats[canon] = float64(toInt(r[col]))
	}
	var fumbles int
	for _, col := range fumbleLostCols {
		if v, ok := r[col]; ok {
			fumbles += toInt(v)
		}
	}
	line.Stats[scoring.FumblesLost] = float64(fumbles)
	return line
}

// convertOverallWeek maps the continuous 1..21 week numbering onto the
// data set's (season_type, week) pair: weeks 1-3 are PRE 1-3, week 4
// onward is REG starting at 1.
func convertOverallWeek(overallWeek int) (string, int) {
	switch {
	case overallWeek <= 0:
		return "REG", 1
	case overallWeek <= 3:
		return "PRE", overallWeek
	default:
		return "REG", overallWeek - 3
	}
}

// seasonRows returns the cached season sheet, downloading when missing or
// expired.
func (a *Adapter) seasonRows(ctx context.Context, season int) ([]row, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if sheet, ok := a.cache[season]; ok && a.now().Sub(sheet.fetched) < a.ttl {
		return sheet.rows, nil
	}

	url := fmt.Sprintf(a.csvURL, season)
	a.logger.Info("downloading weekly player stats sheet", "season", season, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download season %d sheet: %w", season, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download season %d sheet: status %d", season, resp.StatusCode)
	}

	rows, err := parseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse season %d sheet: %w", season, err)
	}

	a.cache[season] = seasonSheet{fetched: a.now(), rows: rows}
	a.logger.Info("cached season sheet", "season", season, "rows", len(rows))
	return rows, nil
}

func parseCSV(r io.Reader) ([]row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := make(row, len(header))
		for i, col := range header {
			if i < len(record) {
				rec[col] = record[i]
			}
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// toInt parses a CSV numeric cell; the sheets store some counting stats as
// floats.
func toInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
