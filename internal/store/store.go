// Package store is the persistence gateway: natural-key upserts and reads
// over the games, teams, players, and performance tables. All writes are
// idempotent so repeated ingestion of the same game converges instead of
// duplicating.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned by lookups whose subject does not exist.
var ErrNotFound = errors.New("not found")

// Querier is the subset of pgx shared by pools and transactions, so every
// method works inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store executes queries against a pool or transaction.
type Store struct {
	q Querier
}

// New wraps a querier.
func New(q Querier) *Store {
	return &Store{q: q}
}

// Team is an NFL franchise, keyed naturally by abbreviation.
type Team struct {
	ID      int64
	Abbr    string
	Name    string
	LogoURL *string
}

// Player is keyed naturally by the external id the stat sources report:
// an ESPN athlete id, a GSIS id, or a synthesized historical id.
type Player struct {
	ID       int64
	ExtID    string
	Name     string
	Position *string
	TeamID   *int64
}

// Season holds a year and its two week-window anchors when known.
type Season struct {
	ID         int64
	Year       int
	PreW1Start *time.Time
	RegW1Start *time.Time
}

// Game is one scheduled NFL game, keyed naturally by the provider event
// id. Reads join in the season year and both team sides.
type Game struct {
	ID          int64
	EventID     string
	SeasonID    int64
	Year        int
	OverallWeek int
	Kickoff     *time.Time
	Status      string
	Venue       *string
	HomeAbbr    string
	AwayAbbr    string
	HomeScore   *int
	AwayScore   *int
}

// Performance is one player's stat line in one game, with the cached
// fantasy point total.
type Performance struct {
	GameID   int64
	PlayerID int64
	TeamID   int64
	Position *string
	Stats    map[string]float64
	Points   float64
}

// Performer is a leaderboard row.
type Performer struct {
	Player   string  `json:"player"`
	Team     string  `json:"team,omitempty"`
	Position string  `json:"pos"`
	Points   float64 `json:"points"`
}
