package store

import (
	"context"
	"fmt"
	"time"

	"github.com/scoreframe/gridiron-data/internal/scoring"
)

// UpsertTeam writes a team and returns its id. Conflicts on abbreviation
// refresh the display name and logo.
func (s *Store) UpsertTeam(ctx context.Context, abbr, name string, logoURL *string) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx, `
		INSERT INTO teams (abbr, name, logo_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (abbr) DO UPDATE SET
			name = EXCLUDED.name,
			logo_url = COALESCE(EXCLUDED.logo_url, teams.logo_url)
		RETURNING team_id`,
		abbr, name, logoURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert team %s: %w", abbr, err)
	}
	return id, nil
}

// UpsertPlayer writes a player keyed by external id and returns its id.
func (s *Store) UpsertPlayer(ctx context.Context, extID, name string, position *string, teamID *int64) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx, `
		INSERT INTO players (ext_id, name, position, team_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ext_id) DO UPDATE SET
			name = EXCLUDED.name,
			position = COALESCE(EXCLUDED.position, players.position),
			team_id = COALESCE(EXCLUDED.team_id, players.team_id)
		RETURNING player_id`,
		extID, name, position, teamID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert player %s: %w", extID, err)
	}
	return id, nil
}

// GetOrCreateSeason resolves a season row for a year, creating it when
// absent. Existing anchor dates are never overwritten here; SetSeasonAnchors
// handles deliberate updates.
func (s *Store) GetOrCreateSeason(ctx context.Context, year int) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx, `
		INSERT INTO seasons (year)
		VALUES ($1)
		ON CONFLICT (year) DO UPDATE SET year = EXCLUDED.year
		RETURNING season_id`,
		year,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get or create season %d: %w", year, err)
	}
	return id, nil
}

// SetSeasonAnchors records the preseason and regular-season week 1 start
// dates for a year.
func (s *Store) SetSeasonAnchors(ctx context.Context, year int, preW1Start, regW1Start *time.Time) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO seasons (year, pre_w1_start, reg_w1_start)
		VALUES ($1, $2, $3)
		ON CONFLICT (year) DO UPDATE SET
			pre_w1_start = COALESCE(EXCLUDED.pre_w1_start, seasons.pre_w1_start),
			reg_w1_start = COALESCE(EXCLUDED.reg_w1_start, seasons.reg_w1_start)`,
		year, preW1Start, regW1Start,
	)
	if err != nil {
		return fmt.Errorf("set season anchors %d: %w", year, err)
	}
	return nil
}

// UpsertGame writes a game keyed by event id and returns its id.
func (s *Store) UpsertGame(ctx context.Context, eventID string, seasonID int64, overallWeek int, kickoff *time.Time, status string, venue *string) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx, `
		INSERT INTO games (event_id, season_id, overall_week, kickoff, status, venue)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO UPDATE SET
			season_id = EXCLUDED.season_id,
			overall_week = EXCLUDED.overall_week,
			kickoff = EXCLUDED.kickoff,
			status = EXCLUDED.status,
			venue = EXCLUDED.venue
		RETURNING game_id`,
		eventID, seasonID, overallWeek, kickoff, status, venue,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert game %s: %w", eventID, err)
	}
	return id, nil
}

// UpsertGameTeam attaches a team to a game on one side.
func (s *Store) UpsertGameTeam(ctx context.Context, gameID, teamID int64, homeAway string, score *int) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO game_teams (game_id, team_id, home_away, score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (game_id, team_id) DO UPDATE SET
			home_away = EXCLUDED.home_away,
			score = EXCLUDED.score`,
		gameID, teamID, homeAway, score,
	)
	if err != nil {
		return fmt.Errorf("upsert game team %d/%d: %w", gameID, teamID, err)
	}
	return nil
}

// UpsertPerformance writes one player's stat line for a game, including
// the cached fantasy point total. Absent canonical keys persist as zero.
func (s *Store) UpsertPerformance(ctx context.Context, p Performance) error {
	stat := func(key string) int { return int(p.Stats[key]) }
	_, err := s.q.Exec(ctx, `
		INSERT INTO player_stats (
			game_id, player_id, team_id, position,
			pass_yd, pass_td, pass_int, rush_yd, rush_td,
			rec_yd, rec_td, receptions, fumbles_lost, fantasy_points
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (game_id, player_id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			position = EXCLUDED.position,
			pass_yd = EXCLUDED.pass_yd,
			pass_td = EXCLUDED.pass_td,
			pass_int = EXCLUDED.pass_int,
			rush_yd = EXCLUDED.rush_yd,
			rush_td = EXCLUDED.rush_td,
			rec_yd = EXCLUDED.rec_yd,
			rec_td = EXCLUDED.rec_td,
			receptions = EXCLUDED.receptions,
			fumbles_lost = EXCLUDED.fumbles_lost,
			fantasy_points = EXCLUDED.fantasy_points`,
		p.GameID, p.PlayerID, p.TeamID, p.Position,
		stat(scoring.PassingYards), stat(scoring.PassingTouchdowns), stat(scoring.Interceptions),
		stat(scoring.RushingYards), stat(scoring.RushingTouchdowns),
		stat(scoring.ReceivingYards), stat(scoring.ReceivingTouchdowns),
		stat(scoring.Receptions), stat(scoring.FumblesLost), p.Points,
	)
	if err != nil {
		return fmt.Errorf("upsert performance game=%d player=%d: %w", p.GameID, p.PlayerID, err)
	}
	return nil
}

// UpsertScoringRule seeds or refreshes a named scoring rule.
func (s *Store) UpsertScoringRule(ctx context.Context, r scoring.Rule) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO scoring_rules (
			name, pass_yd, pass_td, pass_int, rush_yd, rush_td,
			rec_yd, rec_td, reception, fumble_lost
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (name) DO UPDATE SET
			pass_yd = EXCLUDED.pass_yd,
			pass_td = EXCLUDED.pass_td,
			pass_int = EXCLUDED.pass_int,
			rush_yd = EXCLUDED.rush_yd,
			rush_td = EXCLUDED.rush_td,
			rec_yd = EXCLUDED.rec_yd,
			rec_td = EXCLUDED.rec_td,
			reception = EXCLUDED.reception,
			fumble_lost = EXCLUDED.fumble_lost`,
		r.Name, r.PassYd, r.PassTD, r.PassInt, r.RushYd, r.RushTD,
		r.RecYd, r.RecTD, r.Reception, r.FumbleLost,
	)
	if err != nil {
		return fmt.Errorf("upsert scoring rule %s: %w", r.Name, err)
	}
	return nil
}
