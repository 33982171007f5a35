package week

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedRuleKnownWindows(t *testing.T) {
	var r FixedRule
	ctx := context.Background()

	start, end, err := r.Range(ctx, 2025, 1)
	require.NoError(t, err)
	assert.Equal(t, Date(2025, time.August, 7), start)
	assert.Equal(t, Date(2025, time.August, 13), end)

	// Overall week 4 is regular-season week 1 at the September anchor.
	start, end, err = r.Range(ctx, 2025, 4)
	require.NoError(t, err)
	assert.Equal(t, Date(2025, time.September, 4), start)
	assert.Equal(t, Date(2025, time.September, 10), end)

	_, _, err = r.Range(ctx, 2025, 0)
	assert.Error(t, err)
	_, _, err = r.Range(ctx, 2025, MaxOverallWeek+1)
	assert.Error(t, err)
}

func TestFixedRuleWindowsOrderedAndDisjoint(t *testing.T) {
	var r FixedRule
	ctx := context.Background()

	for _, year := range []int{2020, 2023, 2025, 2031} {
		var prevEnd time.Time
		for w := 1; w <= MaxOverallWeek; w++ {
			start, end, err := r.Range(ctx, year, w)
			require.NoError(t, err)
			assert.False(t, end.Before(start), "year %d week %d: end before start", year, w)
			if w > 1 {
				assert.True(t, start.After(prevEnd), "year %d week %d overlaps week %d", year, w, w-1)
			}
			prevEnd = end
		}
	}
}

func TestFixedRuleForDateInvertsRange(t *testing.T) {
	var r FixedRule
	ctx := context.Background()

	for w := 1; w <= MaxOverallWeek; w++ {
		start, end, err := r.Range(ctx, 2025, w)
		require.NoError(t, err)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			got, ok := r.ForDate(d)
			require.True(t, ok, "date %s should map to a week", d.Format("2006-01-02"))
			assert.Equal(t, w, got, "date %s", d.Format("2006-01-02"))
		}
	}
}

func TestFixedRuleGapMatchesNoWeek(t *testing.T) {
	var r FixedRule
	ctx := context.Background()

	_, preEnd, err := r.Range(ctx, 2025, PreseasonWeeks)
	require.NoError(t, err)
	regStart, _, err := r.Range(ctx, 2025, PreseasonWeeks+1)
	require.NoError(t, err)

	for d := preEnd.AddDate(0, 0, 1); d.Before(regStart); d = d.AddDate(0, 0, 1) {
		_, ok := r.ForDate(d)
		assert.False(t, ok, "gap date %s must not map to a week", d.Format("2006-01-02"))
	}

	// Deep offseason.
	_, ok := r.ForDate(Date(2025, time.March, 15))
	assert.False(t, ok)
}

func TestFixedRuleSeasonSpansJanuary(t *testing.T) {
	var r FixedRule

	// The last regular-season weeks of 2025 fall in January 2026 and must
	// still resolve to the 2025 season.
	start, _, err := r.Range(context.Background(), 2025, MaxOverallWeek)
	require.NoError(t, err)
	require.Equal(t, 2026, start.Year())

	year, w, ok := r.Season(start)
	require.True(t, ok)
	assert.Equal(t, 2025, year)
	assert.Equal(t, MaxOverallWeek, w)
}

func TestFixedRuleCurrentGuessFallback(t *testing.T) {
	var r FixedRule

	assert.Equal(t, DefaultCurrentWeek, r.CurrentGuess(Date(2025, time.March, 15)))
	assert.Equal(t, 5, r.CurrentGuess(Date(2025, time.September, 11)))
}

func TestDiscoveredRuleWindows(t *testing.T) {
	// 2024 Hall of Fame game: Thursday, August 1.
	r := DiscoveredRule{Start: func(ctx context.Context, year int) (time.Time, error) {
		return Date(year, time.August, 1), nil
	}}
	ctx := context.Background()

	start, end, err := r.Range(ctx, 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, Date(2024, time.August, 1), start)
	assert.Equal(t, Date(2024, time.August, 14), end)

	// Week 2 begins the first Wednesday on/after Aug 15 2024 (a Thursday),
	// so Aug 21, and runs through the following Tuesday.
	start, end, err = r.Range(ctx, 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, start.Weekday())
	assert.Equal(t, Date(2024, time.August, 21), start)
	assert.Equal(t, time.Tuesday, end.Weekday())

	// Consecutive 7-day windows from week 2 on.
	s3, e3, err := r.Range(ctx, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 0, 7), s3)
	assert.Equal(t, end.AddDate(0, 0, 7), e3)
	_ = e3
}
