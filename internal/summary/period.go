package summary

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const endOfDayNanos = 999 * int(time.Millisecond)

// Selectors outside these bounds do not resolve to a date range.
const (
	MinYear       = 1
	MaxYear       = 9999
	MaxWeekOffset = 100_000
)

// WeekPeriod returns the Monday-to-Sunday week containing now, shifted by
// offset weeks (negative is the past). offset must lie within MaxWeekOffset;
// ResolveWeek checks it.
func WeekPeriod(now time.Time, offset int, loc *time.Location) Range {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	// Sunday counts as day 7 so that weeks start on Monday.
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := now.Day() - (weekday - 1) + 7*offset

	start := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, loc)
	end := time.Date(start.Year(), start.Month(), start.Day()+DaysPerWeek-1, 23, 59, 59, endOfDayNanos, loc)
	return Range{Start: start, End: end}
}

// YearPeriod returns January 1st through December 31st of year.
func YearPeriod(year int, loc *time.Location) Range {
	if loc == nil {
		loc = time.Local
	}
	return Range{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		End:   time.Date(year, time.December, 31, 23, 59, 59, endOfDayNanos, loc),
	}
}

// ResolveWeek is WeekPeriod for an untrusted offset.
func ResolveWeek(now time.Time, offset int, loc *time.Location) (Range, error) {
	if err := checkWeekOffset(offset); err != nil {
		return Range{}, err
	}
	r := WeekPeriod(now, offset, loc)
	if r.Start.Year() < MinYear || r.End.Year() > MaxYear {
		return Range{}, fmt.Errorf("%w: week offset %d leaves years %d..%d", ErrInvalidPeriodSelector, offset, MinYear, MaxYear)
	}
	return r, nil
}

// CheckYear rejects years outside MinYear..MaxYear.
func CheckYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d..%d", ErrInvalidPeriodSelector, year, MinYear, MaxYear)
	}
	return nil
}

func checkWeekOffset(offset int) error {
	if offset < -MaxWeekOffset || offset > MaxWeekOffset {
		return fmt.Errorf("%w: week offset %d outside ±%d", ErrInvalidPeriodSelector, offset, MaxWeekOffset)
	}
	return nil
}

// Days lists the calendar days of r starting at midnight.
func (r Range) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, d.Location()) {
		days = append(days, d)
	}
	return days
}

// ParseWeekOffset resolves a week selector. An empty value means the current week.
func ParseWeekOffset(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: week offset %q", ErrInvalidPeriodSelector, raw)
	}
	if err := checkWeekOffset(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ParseYear resolves a year selector. An empty value means the year of now.
func ParseYear(raw string, now time.Time) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Year(), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: year %q", ErrInvalidPeriodSelector, raw)
	}
	if err := CheckYear(n); err != nil {
		return 0, err
	}
	return n, nil
}
