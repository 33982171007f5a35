// Package week maps season years and overall week numbers to calendar
// windows and back.
//
// The service numbers weeks in a single "overall" namespace: weeks 1-3 are
// preseason, week 4 is regular-season week 1, and so on through overall
// week 21. Two window rules exist and are selected by configuration: a
// fixed-anchor rule driven by hardcoded per-year dates, and a discovered
// rule anchored on the earliest scheduled preseason game per upstream.
package week

import (
	"context"
	"fmt"
	"time"
)

const (
	// PreseasonWeeks is the number of overall weeks occupied by preseason.
	PreseasonWeeks = 3

	// MaxOverallWeek is the last regular-season overall week (18 regular
	// weeks after the 3 preseason weeks).
	MaxOverallWeek = 21

	// DefaultCurrentWeek is the fallback for "what week is it" when no
	// window matches today's date: regular-season week 1.
	DefaultCurrentWeek = 4
)

// Rule computes the calendar window for an overall week. The context is
// used by rules that consult upstream data.
type Rule interface {
	Range(ctx context.Context, year, overallWeek int) (start, end time.Time, err error)
}

// Date builds a date-precision time.Time in UTC. Window math throughout
// this package is date-granular.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nextWeekday returns the first date on or after d that falls on wd.
func nextWeekday(d time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, delta)
}

// --------------------------------------------------------------------------
// Fixed-anchor rule
// --------------------------------------------------------------------------

type anchors struct {
	preStart time.Time // preseason week 1 start (Hall of Fame game)
	regStart time.Time // regular-season week 1 start (overall week 4)
}

// Known season anchors. Preseason starts at the Hall of Fame game; the
// regular season starts the Thursday after Labor Day.
var seasonAnchors = map[int]anchors{
	2020: {Date(2020, time.August, 6), Date(2020, time.September, 10)},
	2021: {Date(2021, time.August, 5), Date(2021, time.September, 9)},
	2022: {Date(2022, time.August, 4), Date(2022, time.September, 8)},
	2023: {Date(2023, time.August, 3), Date(2023, time.September, 7)},
	2024: {Date(2024, time.August, 1), Date(2024, time.September, 5)},
	2025: {Date(2025, time.August, 7), Date(2025, time.September, 4)},
}

// Anchors returns the preseason and regular-season week 1 start dates for
// a season year, computed when no hardcoded entry exists.
func Anchors(year int) (preStart, regStart time.Time) {
	a := anchorsFor(year)
	return a.preStart, a.regStart
}

func anchorsFor(year int) anchors {
	if a, ok := seasonAnchors[year]; ok {
		return a
	}
	// Seasons without a hardcoded entry: first Thursday of August, and the
	// Thursday after Labor Day (first Monday of September).
	pre := nextWeekday(Date(year, time.August, 1), time.Thursday)
	laborDay := nextWeekday(Date(year, time.September, 1), time.Monday)
	return anchors{preStart: pre, regStart: nextWeekday(laborDay, time.Thursday)}
}

// FixedRule computes windows from hardcoded per-year anchors. Preseason
// weeks 1-3 are consecutive 7-day windows from the preseason anchor;
// regular-season weeks are consecutive 7-day windows from the September
// anchor. The dates between preseason week 3 and the September anchor
// intentionally belong to no week.
type FixedRule struct{}

// Range returns the inclusive date window for an overall week.
func (FixedRule) Range(_ context.Context, year, overallWeek int) (time.Time, time.Time, error) {
	if overallWeek < 1 || overallWeek > MaxOverallWeek {
		return time.Time{}, time.Time{}, fmt.Errorf("overall week %d out of range 1-%d", overallWeek, MaxOverallWeek)
	}
	a := anchorsFor(year)
	var start time.Time
	if overallWeek <= PreseasonWeeks {
		start = a.preStart.AddDate(0, 0, (overallWeek-1)*7)
	} else {
		start = a.regStart.AddDate(0, 0, (overallWeek-PreseasonWeeks-1)*7)
	}
	return start, start.AddDate(0, 0, 6), nil
}

// Season returns the season year and overall week containing d, or
// ok=false when d falls in no window (including the gap before the
// regular-season anchor). Late-season windows cross into January, so the
// previous season year is scanned as well.
func (r FixedRule) Season(d time.Time) (year, overallWeek int, ok bool) {
	d = truncateToDate(d)
	for _, y := range []int{d.Year(), d.Year() - 1} {
		for w := 1; w <= MaxOverallWeek; w++ {
			start, end, err := r.Range(context.Background(), y, w)
			if err != nil {
				break
			}
			if !d.Before(start) && !d.After(end) {
				return y, w, true
			}
		}
	}
	return 0, 0, false
}

// ForDate returns the overall week containing d, or ok=false when d falls
// in no window.
func (r FixedRule) ForDate(d time.Time) (int, bool) {
	_, w, ok := r.Season(d)
	return w, ok
}

// CurrentGuess returns the overall week for today, defaulting to the first
// regular-season week when today matches no window.
func (r FixedRule) CurrentGuess(today time.Time) int {
	if w, ok := r.ForDate(today); ok {
		return w
	}
	return DefaultCurrentWeek
}

// --------------------------------------------------------------------------
// Discovered-anchor rule
// --------------------------------------------------------------------------

// StartFunc resolves the preseason week 1 start date for a season, usually
// by querying the upstream season calendar.
type StartFunc func(ctx context.Context, year int) (time.Time, error)

// DiscoveredRule anchors windows on a dynamically discovered week 1 start.
// Week 1 is a 14-day window covering the Hall of Fame game and the first
// full preseason slate; later weeks run Wednesday through Tuesday.
type DiscoveredRule struct {
	Start StartFunc
}

// Range returns the inclusive date window for an overall week.
func (r DiscoveredRule) Range(ctx context.Context, year, overallWeek int) (time.Time, time.Time, error) {
	if overallWeek < 1 || overallWeek > MaxOverallWeek {
		return time.Time{}, time.Time{}, fmt.Errorf("overall week %d out of range 1-%d", overallWeek, MaxOverallWeek)
	}
	wk1, err := r.Start(ctx, year)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("discover week 1 start: %w", err)
	}
	wk1 = truncateToDate(wk1)

	if overallWeek == 1 {
		return wk1, wk1.AddDate(0, 0, 13), nil
	}

	// Week 2 starts the first Wednesday on or after the day week 1 ends.
	anchor := nextWeekday(wk1.AddDate(0, 0, 14), time.Wednesday)
	start := anchor.AddDate(0, 0, (overallWeek-2)*7)
	return start, start.AddDate(0, 0, 6), nil
}
