package summary

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekPeriodStartsMonday(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		offset int
		start  time.Time
	}{
		{"midweek", time.Date(2026, time.October, 14, 15, 30, 0, 0, time.UTC), 0, date(2026, time.October, 12)},
		{"monday", time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC), 0, date(2026, time.October, 12)},
		{"sunday belongs to the week before", time.Date(2026, time.October, 18, 22, 0, 0, 0, time.UTC), 0, date(2026, time.October, 12)},
		{"previous week", time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC), -1, date(2026, time.October, 5)},
		{"next week", time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC), 1, date(2026, time.October, 19)},
		{"crosses a month", time.Date(2026, time.October, 2, 9, 0, 0, 0, time.UTC), 0, date(2026, time.September, 28)},
		{"crosses a year", time.Date(2027, time.January, 1, 9, 0, 0, 0, time.UTC), 0, date(2026, time.December, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := WeekPeriod(tt.now, tt.offset, time.UTC)
			require.True(t, tt.start.Equal(r.Start), "start = %s", r.Start)
			require.Equal(t, time.Monday, r.Start.Weekday())
			require.Equal(t, time.Sunday, r.End.Weekday())
		})
	}
}

func TestWeekPeriodEnd(t *testing.T) {
	r := WeekPeriod(time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC), 0, time.UTC)
	want := time.Date(2026, time.October, 18, 23, 59, 59, 999_000_000, time.UTC)
	require.True(t, want.Equal(r.End), "end = %s", r.End)
	require.Len(t, r.Days(), DaysPerWeek)
}

func TestWeekPeriodUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// Sunday evening in UTC is already Monday in UTC+9.
	now := time.Date(2026, time.October, 18, 20, 0, 0, 0, time.UTC)

	r := WeekPeriod(now, 0, loc)
	require.Equal(t, 19, r.Start.Day())
	require.Equal(t, loc, r.Start.Location())
}

func TestYearPeriod(t *testing.T) {
	r := YearPeriod(2024, time.UTC)
	require.True(t, date(2024, time.January, 1).Equal(r.Start))
	require.True(t, time.Date(2024, time.December, 31, 23, 59, 59, 999_000_000, time.UTC).Equal(r.End))
	require.Len(t, r.Days(), 366)
}

func TestParseWeekOffset(t *testing.T) {
	n, err := ParseWeekOffset("")
	require.NoError(t, err)
	require.Equal(t, 0, n)

	n, err = ParseWeekOffset(" -3 ")
	require.NoError(t, err)
	require.Equal(t, -3, n)

	for _, raw := range []string{"abc", "1.5", "--1", "9223372036854775807", "-9223372036854775808", "100001", "99999999999999999999"} {
		_, err := ParseWeekOffset(raw)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrInvalidPeriodSelector), "raw %q", raw)
	}
}

func TestParseYear(t *testing.T) {
	now := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)

	y, err := ParseYear("", now)
	require.NoError(t, err)
	require.Equal(t, 2026, y)

	y, err = ParseYear("1999", now)
	require.NoError(t, err)
	require.Equal(t, 1999, y)

	y, err = ParseYear("9999", now)
	require.NoError(t, err)
	require.Equal(t, MaxYear, y)

	for _, raw := range []string{"next", "0", "-5", "10000", "9223372036854775807"} {
		_, err = ParseYear(raw, now)
		require.ErrorIs(t, err, ErrInvalidPeriodSelector, "raw %q", raw)
	}
}

func TestResolveWeek(t *testing.T) {
	now := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		now    time.Time
		offset int
		ok     bool
	}{
		{"current", now, 0, true},
		{"far past", now, -MaxWeekOffset, true},
		{"far future", now, MaxWeekOffset, true},
		{"past bound", now, -MaxWeekOffset - 1, false},
		{"max int", now, math.MaxInt, false},
		{"min int", now, math.MinInt, false},
		{"leaves year 9999", time.Date(9999, time.December, 20, 0, 0, 0, 0, time.UTC), 2, false},
		{"leaves year 1", time.Date(1, time.January, 10, 0, 0, 0, 0, time.UTC), -2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResolveWeek(tt.now, tt.offset, time.UTC)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidPeriodSelector)
				return
			}
			require.NoError(t, err)
			require.Equal(t, WeekPeriod(tt.now, tt.offset, time.UTC), r)
			require.Equal(t, time.Monday, r.Start.Weekday())
		})
	}
}

func TestCheckYear(t *testing.T) {
	require.NoError(t, CheckYear(MinYear))
	require.NoError(t, CheckYear(MaxYear))
	for _, y := range []int{MinYear - 1, MaxYear + 1, math.MaxInt, math.MinInt} {
		require.ErrorIs(t, CheckYear(y), ErrInvalidPeriodSelector, "year %d", y)
	}
}
