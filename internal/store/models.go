package store

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type FocusMode string

const (
	ModePomodoro   FocusMode = "pomodoro"
	ModeShortBreak FocusMode = "short_break"
	ModeLongBreak  FocusMode = "long_break"
)

const (
	FocusRunning   = "running"
	FocusCompleted = "completed"
	FocusCancelled = "cancelled"
)

type Category struct {
	ID        int64
	Name      string
	Color     string
	CreatedAt time.Time
}

type Task struct {
	ID               int64
	Title            string
	Description      string
	Priority         Priority
	CategoryID       *int64
	CategoryName     string
	EstimatedMinutes int
	ScheduledFor     string // YYYY-MM-DD
	Completed        bool
	CompletedAt      *time.Time
	Archived         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewTask holds the editable fields of a task.
type NewTask struct {
	Title            string
	Description      string
	Priority         Priority
	CategoryID       *int64
	EstimatedMinutes int
	ScheduledFor     time.Time
}

type FocusSession struct {
	ID             int64
	TaskID         *int64
	Mode           FocusMode
	PlannedSeconds int
	ActualSeconds  int
	Status         string // running, completed, cancelled
	StartedAt      time.Time
	EndedAt        *time.Time
}

type Setting struct {
	Key   string
	Value string
}
