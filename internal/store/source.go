package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sadopc/dayzen/internal/summary"
)

var (
	_ summary.Source         = (*Store)(nil)
	_ summary.ActivitySource = (*Store)(nil)
)

type dayCount struct {
	total, completed int
}

// DailyRecords returns one record per day of week, Monday first.
func (s *Store) DailyRecords(ctx context.Context, week summary.Range) ([]summary.DailyRecord, error) {
	days := week.Days()
	if len(days) == 0 {
		return []summary.DailyRecord{}, nil
	}
	loc := week.Start.Location()
	first, last := days[0], days[len(days)-1]
	next := time.Date(last.Year(), last.Month(), last.Day()+1, 0, 0, 0, 0, loc)

	counts, err := s.taskCounts(ctx,
		`SELECT scheduled_for, COUNT(*), COALESCE(SUM(completed), 0) FROM tasks
		 WHERE archived = 0 AND scheduled_for BETWEEN ? AND ?
		 GROUP BY scheduled_for`,
		first.Format(dateLayout), last.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("daily task counts: %w", err)
	}
	focus, err := s.focusBy(ctx, first, next, func(t time.Time) string { return t.In(loc).Format(dateLayout) })
	if err != nil {
		return nil, fmt.Errorf("daily focus: %w", err)
	}

	records := make([]summary.DailyRecord, 0, len(days))
	for _, d := range days {
		key := d.Format(dateLayout)
		c := counts[key]
		records = append(records, summary.DailyRecord{
			Label:          d.Weekday().String()[:3],
			Date:           d,
			TasksCompleted: c.completed,
			TotalTasks:     c.total,
			FocusMinutes:   focus[key] / 60,
		})
	}
	return records, nil
}

// MonthlyRecords returns twelve records for year, January first.
func (s *Store) MonthlyRecords(ctx context.Context, year int, loc *time.Location) ([]summary.MonthlyRecord, error) {
	if err := summary.CheckYear(year); err != nil {
		return nil, err
	}
	period := summary.YearPeriod(year, loc)
	counts, err := s.taskCounts(ctx,
		`SELECT strftime('%m', scheduled_for), COUNT(*), COALESCE(SUM(completed), 0) FROM tasks
		 WHERE archived = 0 AND scheduled_for LIKE ?
		 GROUP BY 1`,
		fmt.Sprintf("%04d-%%", year),
	)
	if err != nil {
		return nil, fmt.Errorf("monthly task counts: %w", err)
	}
	next := time.Date(year+1, time.January, 1, 0, 0, 0, 0, period.Start.Location())
	focus, err := s.focusBy(ctx, period.Start, next, func(t time.Time) string {
		return fmt.Sprintf("%02d", int(t.In(period.Start.Location()).Month()))
	})
	if err != nil {
		return nil, fmt.Errorf("monthly focus: %w", err)
	}

	records := make([]summary.MonthlyRecord, 0, summary.MonthsPerYear)
	for m := time.January; m <= time.December; m++ {
		key := fmt.Sprintf("%02d", int(m))
		c := counts[key]
		records = append(records, summary.MonthlyRecord{
			Label:          m.String()[:3],
			TasksCompleted: c.completed,
			FocusHours:     math.Round(float64(focus[key])/360) / 10,
			CompletionRate: float64(summary.Percent(c.completed, c.total)),
		})
	}
	return records, nil
}

// Achievements lists the achievements unlocked during year.
func (s *Store) Achievements(ctx context.Context, year int) ([]summary.Achievement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, icon, title, description, color, unlocked_at FROM achievements
		 WHERE unlocked_at >= ? AND unlocked_at < ?
		 ORDER BY unlocked_at, id`,
		fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-01-01", year+1),
	)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	out := []summary.Achievement{}
	for rows.Next() {
		var a summary.Achievement
		var unlockedAt string
		if err := rows.Scan(&a.ID, &a.Icon, &a.Title, &a.Description, &a.Color, &unlockedAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, unlockedAt); err == nil {
			a.UnlockedDate = t.Format(dateLayout)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Categories splits the tasks completed in year by category. Tasks without a
// category count as Others.
func (s *Store) Categories(ctx context.Context, year int, _ *time.Location) ([]summary.Category, error) {
	if err := summary.CheckYear(year); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(c.name, 'Others'), COUNT(*)
		 FROM tasks t LEFT JOIN categories c ON c.id = t.category_id
		 WHERE t.completed = 1 AND t.archived = 0 AND t.scheduled_for LIKE ?
		 GROUP BY 1`,
		fmt.Sprintf("%04d-%%", year),
	)
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[name] += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summary.CategoryShares(counts), nil
}

// ActiveDays returns the distinct days in [from, to] on which a task was
// completed, as midnights in from's location.
func (s *Store) ActiveDays(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	loc := from.Location()
	rows, err := s.db.QueryContext(ctx,
		`SELECT completed_at FROM tasks
		 WHERE completed = 1 AND completed_at >= ? AND completed_at <= ?
		 ORDER BY completed_at`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("active days: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var days []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		t = t.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		if key := day.Format(dateLayout); !seen[key] {
			seen[key] = true
			days = append(days, day)
		}
	}
	return days, rows.Err()
}

func (s *Store) taskCounts(ctx context.Context, query string, args ...any) (map[string]dayCount, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]dayCount)
	for rows.Next() {
		var key string
		var c dayCount
		if err := rows.Scan(&key, &c.total, &c.completed); err != nil {
			return nil, err
		}
		counts[key] = c
	}
	return counts, rows.Err()
}

// focusBy sums completed pomodoro seconds started in [from, to), bucketed by key.
func (s *Store) focusBy(ctx context.Context, from, to time.Time, key func(time.Time) string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT started_at, actual_seconds FROM focus_sessions
		 WHERE status = 'completed' AND mode = 'pomodoro'
		   AND started_at >= ? AND started_at < ?`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]int)
	for rows.Next() {
		var raw string
		var secs int
		if err := rows.Scan(&raw, &secs); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("bad started_at %q: %w", raw, err)
		}
		sums[key(t)] += secs
	}
	return sums, rows.Err()
}
