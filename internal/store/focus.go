package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) StartFocus(taskID *int64, mode FocusMode, plannedSeconds int) (*FocusSession, error) {
	if plannedSeconds <= 0 {
		return nil, fmt.Errorf("start focus: planned duration must be positive, got %d", plannedSeconds)
	}
	res, err := s.db.Exec(
		`INSERT INTO focus_sessions (task_id, mode, planned_seconds, status, started_at) VALUES (?, ?, ?, 'running', ?)`,
		taskID, string(mode), plannedSeconds, s.stamp(),
	)
	if err != nil {
		return nil, fmt.Errorf("start focus: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetFocus(id)
}

func (s *Store) GetFocus(id int64) (*FocusSession, error) {
	f := &FocusSession{}
	var mode, startedAt string
	var endedAt sql.NullString
	var taskID sql.NullInt64

	err := s.db.QueryRow(
		`SELECT id, task_id, mode, planned_seconds, actual_seconds, status, started_at, ended_at
		 FROM focus_sessions WHERE id = ?`, id,
	).Scan(&f.ID, &taskID, &mode, &f.PlannedSeconds, &f.ActualSeconds, &f.Status, &startedAt, &endedAt)
	if err != nil {
		return nil, fmt.Errorf("get focus session %d: %w", id, err)
	}
	f.Mode = FocusMode(mode)
	if taskID.Valid {
		f.TaskID = &taskID.Int64
	}
	f.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if endedAt.Valid {
		t, _ := time.Parse(time.RFC3339, endedAt.String)
		f.EndedAt = &t
	}
	return f, nil
}

// CompleteFocus closes a running session with the seconds actually spent.
func (s *Store) CompleteFocus(id int64, actualSeconds int) error {
	return s.endFocus(id, FocusCompleted, actualSeconds)
}

func (s *Store) CancelFocus(id int64, actualSeconds int) error {
	return s.endFocus(id, FocusCancelled, actualSeconds)
}

func (s *Store) endFocus(id int64, status string, actualSeconds int) error {
	res, err := s.db.Exec(
		`UPDATE focus_sessions SET status = ?, actual_seconds = ?, ended_at = ? WHERE id = ? AND status = 'running'`,
		status, max(actualSeconds, 0), s.stamp(), id,
	)
	if err != nil {
		return fmt.Errorf("%s focus session %d: %w", status, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s focus session %d: not running", status, id)
	}
	return nil
}

// FocusSeconds sums completed pomodoro time started in [from, to).
func (s *Store) FocusSeconds(from, to time.Time) (int, error) {
	var total int
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(actual_seconds), 0)
		FROM focus_sessions
		WHERE status = 'completed' AND mode = 'pomodoro'
		  AND started_at >= ? AND started_at < ?`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("focus seconds: %w", err)
	}
	return total, nil
}

// CompletedFocusCount counts completed pomodoros started in [from, to).
func (s *Store) CompletedFocusCount(from, to time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM focus_sessions
		WHERE status = 'completed' AND mode = 'pomodoro'
		  AND started_at >= ? AND started_at < ?`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&n)
	return n, err
}
