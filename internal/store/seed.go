package store

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

var seedTitles = []string{
	"Review pull requests", "Write weekly plan", "Morning run", "Read a chapter",
	"Sketch ideas", "Inbox zero", "Team sync notes", "Practice guitar",
	"Refactor module", "Stretching", "Online course lesson", "Update journal",
}

// Seed fills the store with synthetic history for the days before now,
// today included. It is meant for demos and development databases.
func (s *Store) Seed(ctx context.Context, days int, rng *rand.Rand, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	cats, err := s.ListCategories()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	today := s.now().In(loc)
	for i := days - 1; i >= 0; i-- {
		day := time.Date(today.Year(), today.Month(), today.Day()-i, 0, 0, 0, 0, loc)

		total := 8 + rng.Intn(5)
		completed := min(3+rng.Intn(8), total)
		for n := 0; n < total; n++ {
			var categoryID any
			if len(cats) > 0 && rng.Intn(6) > 0 {
				categoryID = cats[rng.Intn(len(cats))].ID
			}
			var completedAt any
			if n < completed {
				at := day.Add(time.Duration(7+rng.Intn(14))*time.Hour + time.Duration(rng.Intn(60))*time.Minute)
				completedAt = at.UTC().Format(time.RFC3339)
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO tasks (title, priority, category_id, estimated_minutes, scheduled_for, completed, completed_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				seedTitles[rng.Intn(len(seedTitles))],
				[]Priority{PriorityHigh, PriorityMedium, PriorityLow}[rng.Intn(3)],
				categoryID, 15*(1+rng.Intn(8)), day.Format(dateLayout),
				boolInt(n < completed), completedAt,
			)
			if err != nil {
				return fmt.Errorf("seed task: %w", err)
			}
		}

		// 60-179 minutes of focus in 25 minute pomodoros plus a remainder.
		focus := (60 + rng.Intn(120)) * 60
		start := day.Add(8 * time.Hour)
		for focus > 0 {
			secs := min(focus, 25*60)
			_, err := tx.ExecContext(ctx,
				`INSERT INTO focus_sessions (mode, planned_seconds, actual_seconds, status, started_at, ended_at)
				 VALUES ('pomodoro', 1500, ?, 'completed', ?, ?)`,
				secs, start.UTC().Format(time.RFC3339), start.Add(time.Duration(secs)*time.Second).UTC().Format(time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("seed focus: %w", err)
			}
			focus -= secs
			start = start.Add(30 * time.Minute)
		}
	}
	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
