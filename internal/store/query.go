package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/scoreframe/gridiron-data/internal/scoring"
)

// GameByEventID loads a game with its season year and both team sides.
func (s *Store) GameByEventID(ctx context.Context, eventID string) (*Game, error) {
	g := &Game{}
	err := s.q.QueryRow(ctx, `
		SELECT g.game_id, g.event_id, g.season_id, s.year, g.overall_week,
		       g.kickoff, g.status, g.venue,
		       th.abbr, hgt.score, ta.abbr, agt.score
		FROM games g
		JOIN seasons s ON s.season_id = g.season_id
		JOIN game_teams hgt ON hgt.game_id = g.game_id AND hgt.home_away = 'home'
		JOIN teams th ON th.team_id = hgt.team_id
		JOIN game_teams agt ON agt.game_id = g.game_id AND agt.home_away = 'away'
		JOIN teams ta ON ta.team_id = agt.team_id
		WHERE g.event_id = $1`,
		eventID,
	).Scan(
		&g.ID, &g.EventID, &g.SeasonID, &g.Year, &g.OverallWeek,
		&g.Kickoff, &g.Status, &g.Venue,
		&g.HomeAbbr, &g.HomeScore, &g.AwayAbbr, &g.AwayScore,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", eventID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", eventID, err)
	}
	return g, nil
}

// Season loads a season row by year.
func (s *Store) Season(ctx context.Context, year int) (*Season, error) {
	season := &Season{}
	err := s.q.QueryRow(ctx,
		`SELECT season_id, year, pre_w1_start, reg_w1_start FROM seasons WHERE year = $1`,
		year,
	).Scan(&season.ID, &season.Year, &season.PreW1Start, &season.RegW1Start)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("season %d: %w", year, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load season %d: %w", year, err)
	}
	return season, nil
}

// TeamsByAbbr loads every team keyed by abbreviation.
func (s *Store) TeamsByAbbr(ctx context.Context) (map[string]Team, error) {
	rows, err := s.q.Query(ctx, `SELECT team_id, abbr, name, logo_url FROM teams`)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	defer rows.Close()

	teams := make(map[string]Team)
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Abbr, &t.Name, &t.LogoURL); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams[t.Abbr] = t
	}
	return teams, rows.Err()
}

// ScoringRuleByName loads a named rule's weights.
func (s *Store) ScoringRuleByName(ctx context.Context, name string) (scoring.Rule, error) {
	r := scoring.Rule{Name: name}
	err := s.q.QueryRow(ctx, `
		SELECT pass_yd, pass_td, pass_int, rush_yd, rush_td,
		       rec_yd, rec_td, reception, fumble_lost
		FROM scoring_rules WHERE name = $1`,
		name,
	).Scan(
		&r.PassYd, &r.PassTD, &r.PassInt, &r.RushYd, &r.RushTD,
		&r.RecYd, &r.RecTD, &r.Reception, &r.FumbleLost,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return scoring.Rule{}, fmt.Errorf("scoring rule %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return scoring.Rule{}, fmt.Errorf("load scoring rule %q: %w", name, err)
	}
	return r, nil
}

// TopPerformers returns the highest-scoring players across both teams of a
// game, ordered by cached fantasy points.
func (s *Store) TopPerformers(ctx context.Context, gameID int64, limit int) ([]Performer, error) {
	rows, err := s.q.Query(ctx, `
		SELECT p.name, t.abbr, COALESCE(ps.position, ''), ps.fantasy_points
		FROM player_stats ps
		JOIN players p ON p.player_id = ps.player_id
		JOIN teams t ON t.team_id = ps.team_id
		WHERE ps.game_id = $1
		ORDER BY ps.fantasy_points DESC
		LIMIT $2`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("load top performers: %w", err)
	}
	defer rows.Close()
	return scanPerformers(rows)
}

// TeamTopPerformers returns the per-team leaderboards for a game, keyed by
// team abbreviation, each holding at most limit players.
func (s *Store) TeamTopPerformers(ctx context.Context, gameID int64, limit int) (map[string][]Performer, error) {
	rows, err := s.q.Query(ctx, `
		SELECT p.name, t.abbr, COALESCE(ps.position, ''), ps.fantasy_points
		FROM (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY team_id ORDER BY fantasy_points DESC
			) AS rank
			FROM player_stats WHERE game_id = $1
		) ps
		JOIN players p ON p.player_id = ps.player_id
		JOIN teams t ON t.team_id = ps.team_id
		WHERE ps.rank <= $2
		ORDER BY t.abbr, ps.fantasy_points DESC`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("load team top performers: %w", err)
	}
	defer rows.Close()

	performers, err := scanPerformers(rows)
	if err != nil {
		return nil, err
	}
	byTeam := make(map[string][]Performer)
	for _, p := range performers {
		team := p.Team
		p.Team = ""
		byTeam[team] = append(byTeam[team], p)
	}
	return byTeam, nil
}

func scanPerformers(rows pgx.Rows) ([]Performer, error) {
	var out []Performer
	for rows.Next() {
		var p Performer
		if err := rows.Scan(&p.Player, &p.Team, &p.Position, &p.Points); err != nil {
			return nil, fmt.Errorf("scan performer: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
