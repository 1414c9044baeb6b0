package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sadopc/dayzen/internal/summary"
)

// UnlockAchievement records a as unlocked at. It reports false when a was
// already unlocked; the first unlock date is kept.
func (s *Store) UnlockAchievement(ctx context.Context, a summary.Achievement, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO achievements (id, icon, title, description, color, unlocked_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Icon, a.Title, a.Description, a.Color, at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("unlock achievement %q: %w", a.ID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// achievementStats are the facts the unlock rules look at.
type achievementStats struct {
	months        []summary.MonthlyRecord
	streak        int
	lastWeekDone  int
	learningDone  int
	yearDone      int
	yearScheduled int
	morningDone   int
}

type achievementRule struct {
	id     string
	unlock func(achievementStats) bool
}

var achievementRules = []achievementRule{
	{summary.AchievementCenturyClub, func(st achievementStats) bool {
		n := 0
		for _, m := range st.months {
			if m.TasksCompleted >= 100 {
				n++
			}
		}
		return n >= 8
	}},
	{summary.AchievementStreakMaster, func(st achievementStats) bool { return st.streak >= 30 }},
	{summary.AchievementSpeedDemon, func(st achievementStats) bool { return st.lastWeekDone >= 12*summary.DaysPerWeek }},
	{summary.AchievementPrecisionPro, func(st achievementStats) bool {
		return st.yearScheduled >= 50 && summary.Percent(st.yearDone, st.yearScheduled) >= 85
	}},
	{summary.AchievementKnowledgeSeeker, func(st achievementStats) bool { return st.learningDone >= 50 }},
	{summary.AchievementEarlyBird, func(st achievementStats) bool {
		return st.yearDone >= 20 && 2*st.morningDone > st.yearDone
	}},
}

// EvaluateAchievements unlocks every catalog achievement whose rule now holds
// and returns the ones unlocked by this call.
func (s *Store) EvaluateAchievements(ctx context.Context, loc *time.Location) ([]summary.Achievement, error) {
	if loc == nil {
		loc = time.Local
	}
	now := s.now().In(loc)
	st, err := s.collectStats(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("achievement stats: %w", err)
	}

	var unlocked []summary.Achievement
	for _, rule := range achievementRules {
		if !rule.unlock(st) {
			continue
		}
		a, ok := summary.CatalogEntry(rule.id)
		if !ok {
			continue
		}
		fresh, err := s.UnlockAchievement(ctx, a, now)
		if err != nil {
			return unlocked, err
		}
		if fresh {
			a.UnlockedDate = now.Format(dateLayout)
			unlocked = append(unlocked, a)
		}
	}
	return unlocked, nil
}

func (s *Store) collectStats(ctx context.Context, now time.Time) (achievementStats, error) {
	var st achievementStats
	var err error
	loc := now.Location()

	if st.months, err = s.MonthlyRecords(ctx, now.Year(), loc); err != nil {
		return st, err
	}
	for _, m := range st.months {
		st.yearDone += m.TasksCompleted
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE archived = 0 AND scheduled_for LIKE ?`,
		fmt.Sprintf("%04d-%%", now.Year()),
	).Scan(&st.yearScheduled)
	if err != nil {
		return st, err
	}

	days, err := s.ActiveDays(ctx, now.AddDate(-1, 0, 0), now)
	if err != nil {
		return st, err
	}
	st.streak = summary.ComputeStreak(days, now).Current

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE completed = 1 AND completed_at >= ? AND completed_at <= ?`,
		now.AddDate(0, 0, -summary.DaysPerWeek).UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339),
	).Scan(&st.lastWeekDone)
	if err != nil {
		return st, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks t JOIN categories c ON c.id = t.category_id
		 WHERE t.completed = 1 AND c.name = 'Learning'`,
	).Scan(&st.learningDone)
	if err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT completed_at FROM tasks WHERE completed = 1 AND archived = 0 AND scheduled_for LIKE ?`,
		fmt.Sprintf("%04d-%%", now.Year()),
	)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return st, err
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil && t.In(loc).Hour() < 12 {
			st.morningDone++
		}
	}
	return st, rows.Err()
}
