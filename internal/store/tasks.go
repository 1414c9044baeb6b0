package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const taskColumns = `t.id, t.title, t.description, t.priority, t.category_id, COALESCE(c.name, ''),
	t.estimated_minutes, t.scheduled_for, t.completed, t.completed_at, t.archived, t.created_at, t.updated_at`

const taskFrom = ` FROM tasks t LEFT JOIN categories c ON c.id = t.category_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (Task, error) {
	var t Task
	var categoryID sql.NullInt64
	var completedAt sql.NullString
	var completed, archived int
	var priority, createdAt, updatedAt string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &priority, &categoryID, &t.CategoryName,
		&t.EstimatedMinutes, &t.ScheduledFor, &completed, &completedAt, &archived, &createdAt, &updatedAt)
	if err != nil {
		return t, err
	}
	t.Priority = Priority(priority)
	if categoryID.Valid {
		t.CategoryID = &categoryID.Int64
	}
	t.Completed = completed == 1
	if completedAt.Valid {
		ts, _ := time.Parse(time.RFC3339, completedAt.String)
		t.CompletedAt = &ts
	}
	t.Archived = archived == 1
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}

func normalize(n NewTask) (NewTask, error) {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return n, fmt.Errorf("task title is required")
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if n.ScheduledFor.IsZero() {
		return n, fmt.Errorf("task %q has no scheduled day", n.Title)
	}
	return n, nil
}

func (s *Store) CreateTask(n NewTask) (*Task, error) {
	n, err := normalize(n)
	if err != nil {
		return nil, err
	}
	now := s.stamp()
	res, err := s.db.Exec(
		`INSERT INTO tasks (title, description, priority, category_id, estimated_minutes, scheduled_for, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.Title, n.Description, string(n.Priority), n.CategoryID, n.EstimatedMinutes,
		n.ScheduledFor.Format(dateLayout), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

func (s *Store) GetTask(id int64) (*Task, error) {
	t, err := scanTask(s.db.QueryRow(`SELECT `+taskColumns+taskFrom+` WHERE t.id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &t, nil
}

// ListTasks returns the tasks scheduled for day, open ones first.
func (s *Store) ListTasks(day time.Time, includeArchived bool) ([]Task, error) {
	query := `SELECT ` + taskColumns + taskFrom + ` WHERE t.scheduled_for = ?`
	if !includeArchived {
		query += ` AND t.archived = 0`
	}
	query += ` ORDER BY t.completed, CASE t.priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, t.id`

	rows, err := s.db.Query(query, day.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(id int64, n NewTask) error {
	n, err := normalize(n)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`UPDATE tasks SET title = ?, description = ?, priority = ?, category_id = ?, estimated_minutes = ?,
		 scheduled_for = ?, updated_at = ? WHERE id = ?`,
		n.Title, n.Description, string(n.Priority), n.CategoryID, n.EstimatedMinutes,
		n.ScheduledFor.Format(dateLayout), s.stamp(), id,
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	return nil
}

// ToggleTask flips a task between open and completed and returns the result.
func (s *Store) ToggleTask(id int64) (*Task, error) {
	now := s.stamp()
	res, err := s.db.Exec(
		`UPDATE tasks SET
			completed    = 1 - completed,
			completed_at = CASE completed WHEN 0 THEN ? ELSE NULL END,
			updated_at   = ?
		 WHERE id = ?`,
		now, now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggle task %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("toggle task %d: %w", id, sql.ErrNoRows)
	}
	return s.GetTask(id)
}

func (s *Store) ArchiveTask(id int64) error {
	_, err := s.db.Exec(
		`UPDATE tasks SET archived = 1, updated_at = ? WHERE id = ?`, s.stamp(), id,
	)
	return err
}
