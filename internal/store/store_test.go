package store

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/sadopc/dayzen/internal/summary"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// at pins the store clock.
func at(s *Store, ts time.Time) {
	s.now = func() time.Time { return ts }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addTask creates a task on d and completes it at hour when done.
func addTask(t *testing.T, s *Store, d time.Time, categoryID *int64, done bool, hour int) *Task {
	t.Helper()
	task, err := s.CreateTask(NewTask{Title: "task", ScheduledFor: d, CategoryID: categoryID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if done {
		prev := s.now
		at(s, d.Add(time.Duration(hour)*time.Hour))
		if task, err = s.ToggleTask(task.ID); err != nil {
			t.Fatalf("toggle task: %v", err)
		}
		s.now = prev
	}
	return task
}

// addFocus records a completed pomodoro started at ts.
func addFocus(t *testing.T, s *Store, ts time.Time, secs int) {
	t.Helper()
	prev := s.now
	at(s, ts)
	f, err := s.StartFocus(nil, ModePomodoro, 1500)
	if err != nil {
		t.Fatalf("start focus: %v", err)
	}
	if err := s.CompleteFocus(f.ID, secs); err != nil {
		t.Fatalf("complete focus: %v", err)
	}
	s.now = prev
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/dayzen.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopening must not re-run migrations.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Categories
// ============================================================

func TestDefaultCategories(t *testing.T) {
	s := newTestStore(t)
	cats, err := s.ListCategories()
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 5 {
		t.Fatalf("expected 5 default categories, got %d", len(cats))
	}
	for i := 1; i < len(cats); i++ {
		if cats[i-1].Name >= cats[i].Name {
			t.Fatalf("categories not sorted: %s >= %s", cats[i-1].Name, cats[i].Name)
		}
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateCategory("Errands", "#FF0000"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateCategory("Errands", "#00FF00"); err == nil {
		t.Fatal("expected unique constraint error")
	}
}

func TestUpdateCategory(t *testing.T) {
	s := newTestStore(t)
	c, _ := s.CreateCategory("Errands", "#FF0000")
	if err := s.UpdateCategory(c.ID, "Chores", "#00FF00"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetCategory(c.ID)
	if got.Name != "Chores" || got.Color != "#00FF00" {
		t.Fatalf("unexpected category: %+v", got)
	}
}

func TestDeleteCategoryUncategorizesTasks(t *testing.T) {
	s := newTestStore(t)
	c, _ := s.CreateCategory("Errands", "#FF0000")
	task := addTask(t, s, day(2026, time.October, 12), &c.ID, false, 0)

	if err := s.DeleteCategory(c.ID); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CategoryID != nil {
		t.Fatalf("expected task to lose its category, got %d", *got.CategoryID)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestCreateAndGetTask(t *testing.T) {
	s := newTestStore(t)
	cats, _ := s.ListCategories()

	task, err := s.CreateTask(NewTask{
		Title:            "  Write report ",
		Priority:         PriorityHigh,
		CategoryID:       &cats[0].ID,
		EstimatedMinutes: 45,
		ScheduledFor:     day(2026, time.October, 14),
	})
	if err != nil {
		t.Fatal(err)
	}
	if task.Title != "Write report" {
		t.Fatalf("title not trimmed: %q", task.Title)
	}
	if task.Priority != PriorityHigh || task.EstimatedMinutes != 45 {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.ScheduledFor != "2026-10-14" {
		t.Fatalf("scheduled for %q", task.ScheduledFor)
	}
	if task.CategoryName != cats[0].Name {
		t.Fatalf("category name %q, want %q", task.CategoryName, cats[0].Name)
	}
	if task.Completed || task.CompletedAt != nil {
		t.Fatal("new task should be open")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateTask(NewTask{Title: "  ", ScheduledFor: day(2026, time.October, 14)}); err == nil {
		t.Fatal("expected error for blank title")
	}
	if _, err := s.CreateTask(NewTask{Title: "x"}); err == nil {
		t.Fatal("expected error for missing day")
	}
	task, err := s.CreateTask(NewTask{Title: "x", ScheduledFor: day(2026, time.October, 14)})
	if err != nil {
		t.Fatal(err)
	}
	if task.Priority != PriorityMedium {
		t.Fatalf("default priority %q", task.Priority)
	}
}

func TestCreateTaskInvalidCategory(t *testing.T) {
	s := newTestStore(t)
	missing := int64(999)
	_, err := s.CreateTask(NewTask{Title: "orphan", CategoryID: &missing, ScheduledFor: day(2026, time.October, 14)})
	if err == nil {
		t.Fatal("expected foreign key error")
	}
}

func TestGetTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetTask(999); err == nil {
		t.Fatal("expected error for missing task")
	}
}

func TestToggleTask(t *testing.T) {
	s := newTestStore(t)
	task := addTask(t, s, day(2026, time.October, 14), nil, false, 0)

	at(s, time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC))
	done, err := s.ToggleTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !done.Completed || done.CompletedAt == nil {
		t.Fatalf("expected completed task, got %+v", done)
	}
	if done.CompletedAt.Hour() != 9 {
		t.Fatalf("completed at %s", done.CompletedAt)
	}

	open, err := s.ToggleTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if open.Completed || open.CompletedAt != nil {
		t.Fatalf("expected reopened task, got %+v", open)
	}
}

func TestToggleTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ToggleTask(999); err == nil {
		t.Fatal("expected error for missing task")
	}
}

func TestListTasks(t *testing.T) {
	s := newTestStore(t)
	d := day(2026, time.October, 14)

	low, _ := s.CreateTask(NewTask{Title: "low", Priority: PriorityLow, ScheduledFor: d})
	high, _ := s.CreateTask(NewTask{Title: "high", Priority: PriorityHigh, ScheduledFor: d})
	done, _ := s.CreateTask(NewTask{Title: "done", Priority: PriorityHigh, ScheduledFor: d})
	s.ToggleTask(done.ID)
	archived, _ := s.CreateTask(NewTask{Title: "archived", ScheduledFor: d})
	s.ArchiveTask(archived.ID)
	s.CreateTask(NewTask{Title: "tomorrow", ScheduledFor: d.AddDate(0, 0, 1)})

	tasks, err := s.ListTasks(d, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{high.ID, low.ID, done.ID}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Fatalf("tasks[%d] = %q, want id %d", i, tasks[i].Title, id)
		}
	}

	all, _ := s.ListTasks(d, true)
	if len(all) != 4 {
		t.Fatalf("expected 4 tasks including archived, got %d", len(all))
	}
}

func TestListTasksEmpty(t *testing.T) {
	s := newTestStore(t)
	tasks, err := s.ListTasks(day(2026, time.October, 14), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected 0 tasks, got %d", len(tasks))
	}
}

func TestUpdateTask(t *testing.T) {
	s := newTestStore(t)
	task := addTask(t, s, day(2026, time.October, 14), nil, false, 0)

	err := s.UpdateTask(task.ID, NewTask{Title: "Renamed", Priority: PriorityLow, ScheduledFor: day(2026, time.October, 15)})
	if err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTask(task.ID)
	if got.Title != "Renamed" || got.Priority != PriorityLow || got.ScheduledFor != "2026-10-15" {
		t.Fatalf("unexpected task: %+v", got)
	}
}

// ============================================================
// Focus sessions
// ============================================================

func TestFocusLifecycle(t *testing.T) {
	s := newTestStore(t)
	at(s, time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC))

	f, err := s.StartFocus(nil, ModePomodoro, 1500)
	if err != nil {
		t.Fatal(err)
	}
	if f.Status != FocusRunning || f.PlannedSeconds != 1500 || f.Mode != ModePomodoro {
		t.Fatalf("unexpected session: %+v", f)
	}

	if err := s.CompleteFocus(f.ID, 1480); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetFocus(f.ID)
	if got.Status != FocusCompleted || got.ActualSeconds != 1480 || got.EndedAt == nil {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := s.CompleteFocus(f.ID, 10); err == nil {
		t.Fatal("expected error completing a finished session")
	}
}

func TestFocusWithTask(t *testing.T) {
	s := newTestStore(t)
	task := addTask(t, s, day(2026, time.October, 14), nil, false, 0)

	f, err := s.StartFocus(&task.ID, ModePomodoro, 1500)
	if err != nil {
		t.Fatal(err)
	}
	if f.TaskID == nil || *f.TaskID != task.ID {
		t.Fatalf("expected task link, got %+v", f.TaskID)
	}
}

func TestStartFocusRejectsEmptyDuration(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.StartFocus(nil, ModePomodoro, 0); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

func TestFocusSecondsCountsCompletedPomodorosOnly(t *testing.T) {
	s := newTestStore(t)
	d := day(2026, time.October, 14)

	addFocus(t, s, d.Add(9*time.Hour), 1500)
	addFocus(t, s, d.Add(10*time.Hour), 600)

	at(s, d.Add(11*time.Hour))
	cancelled, _ := s.StartFocus(nil, ModePomodoro, 1500)
	s.CancelFocus(cancelled.ID, 300)
	brk, _ := s.StartFocus(nil, ModeShortBreak, 300)
	s.CompleteFocus(brk.ID, 300)
	s.StartFocus(nil, ModePomodoro, 1500) // still running

	total, err := s.FocusSeconds(d, d.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if total != 2100 {
		t.Fatalf("expected 2100 seconds, got %d", total)
	}

	n, _ := s.CompletedFocusCount(d, d.AddDate(0, 0, 1))
	if n != 2 {
		t.Fatalf("expected 2 completed pomodoros, got %d", n)
	}
}

// ============================================================
// Summary source
// ============================================================

func TestDailyRecords(t *testing.T) {
	s := newTestStore(t)
	mon := day(2026, time.October, 12)
	week := summary.WeekPeriod(mon.Add(50*time.Hour), 0, time.UTC)

	addTask(t, s, mon, nil, true, 9)
	addTask(t, s, mon, nil, true, 10)
	addTask(t, s, mon, nil, false, 0)
	addTask(t, s, mon.AddDate(0, 0, 4), nil, true, 15)
	archived := addTask(t, s, mon, nil, true, 11)
	s.ArchiveTask(archived.ID)
	addTask(t, s, mon.AddDate(0, 0, 7), nil, true, 9) // next week

	addFocus(t, s, mon.Add(8*time.Hour), 1500)
	addFocus(t, s, mon.Add(9*time.Hour), 1500)
	addFocus(t, s, mon.AddDate(0, 0, 6).Add(20*time.Hour), 1230)

	records, err := s.DailyRecords(context.Background(), week)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 7 {
		t.Fatalf("expected 7 records, got %d", len(records))
	}
	labels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for i, r := range records {
		if r.Label != labels[i] {
			t.Fatalf("records[%d].Label = %q, want %q", i, r.Label, labels[i])
		}
	}
	if records[0].TasksCompleted != 2 || records[0].TotalTasks != 3 || records[0].FocusMinutes != 50 {
		t.Fatalf("unexpected Monday: %+v", records[0])
	}
	if records[4].TasksCompleted != 1 || records[4].TotalTasks != 1 {
		t.Fatalf("unexpected Friday: %+v", records[4])
	}
	if records[6].FocusMinutes != 20 {
		t.Fatalf("expected Sunday focus 20, got %d", records[6].FocusMinutes)
	}

	totals := summary.AggregateWeek(records)
	if totals.TasksCompleted != 3 || totals.TotalTasks != 4 || totals.CompletionRate != 75 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestDailyRecordsEmptyWeek(t *testing.T) {
	s := newTestStore(t)
	week := summary.WeekPeriod(day(2026, time.October, 14), 0, time.UTC)

	records, err := s.DailyRecords(context.Background(), week)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 7 {
		t.Fatalf("expected 7 zero records, got %d", len(records))
	}
	if got := summary.AggregateWeek(records); got != (summary.WeeklyTotals{}) {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

func TestDailyRecordsUsesWeekLocation(t *testing.T) {
	s := newTestStore(t)
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 20:00 UTC on Sunday is 05:00 Monday in UTC+9.
	addFocus(t, s, time.Date(2026, time.October, 18, 20, 0, 0, 0, time.UTC), 600)

	week := summary.WeekPeriod(time.Date(2026, time.October, 19, 12, 0, 0, 0, loc), 0, loc)
	records, err := s.DailyRecords(context.Background(), week)
	if err != nil {
		t.Fatal(err)
	}
	if records[0].FocusMinutes != 10 {
		t.Fatalf("expected focus on Monday local time, got %+v", records[0])
	}
}

func TestMonthlyRecords(t *testing.T) {
	s := newTestStore(t)

	addTask(t, s, day(2025, time.January, 5), nil, true, 9)
	addTask(t, s, day(2025, time.January, 6), nil, false, 0)
	addTask(t, s, day(2025, time.January, 7), nil, false, 0)
	addTask(t, s, day(2025, time.July, 1), nil, true, 9)
	addTask(t, s, day(2024, time.December, 31), nil, true, 9)

	addFocus(t, s, day(2025, time.March, 3).Add(9*time.Hour), 1500)
	addFocus(t, s, day(2025, time.March, 4).Add(9*time.Hour), 1500)
	addFocus(t, s, day(2025, time.March, 5).Add(9*time.Hour), 1500)

	records, err := s.MonthlyRecords(context.Background(), 2025, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 12 {
		t.Fatalf("expected 12 records, got %d", len(records))
	}
	if records[0].Label != "Jan" || records[11].Label != "Dec" {
		t.Fatalf("unexpected labels %q..%q", records[0].Label, records[11].Label)
	}
	if records[0].TasksCompleted != 1 || records[0].CompletionRate != 33 {
		t.Fatalf("unexpected January: %+v", records[0])
	}
	if records[6].CompletionRate != 100 {
		t.Fatalf("unexpected July: %+v", records[6])
	}
	if records[2].FocusHours != 1.3 {
		t.Fatalf("expected 1.3 focus hours in March, got %v", records[2].FocusHours)
	}
	if records[11].TasksCompleted != 0 || records[11].CompletionRate != 0 {
		t.Fatalf("unexpected December: %+v", records[11])
	}
}

func TestYearQueriesRejectOutOfRangeYears(t *testing.T) {
	s := newTestStore(t)
	for _, year := range []int{0, 10000} {
		if _, err := s.MonthlyRecords(context.Background(), year, time.UTC); !errors.Is(err, summary.ErrInvalidPeriodSelector) {
			t.Fatalf("MonthlyRecords(%d) err = %v", year, err)
		}
		if _, err := s.Categories(context.Background(), year, time.UTC); !errors.Is(err, summary.ErrInvalidPeriodSelector) {
			t.Fatalf("Categories(%d) err = %v", year, err)
		}
	}
}

func TestCategories(t *testing.T) {
	s := newTestStore(t)
	cats, _ := s.ListCategories()
	d := day(2026, time.March, 3)

	for i := 0; i < 3; i++ {
		addTask(t, s, d, &cats[0].ID, true, 9)
	}
	addTask(t, s, d, nil, true, 9)
	addTask(t, s, d, &cats[1].ID, false, 0)

	got, err := s.Categories(context.Background(), 2026, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %+v", got)
	}
	if got[0].Name != cats[0].Name || got[0].Count != 3 || got[0].Percentage != 75 {
		t.Fatalf("unexpected first category: %+v", got[0])
	}
	if got[1].Name != "Others" || got[1].Percentage != 25 {
		t.Fatalf("unexpected second category: %+v", got[1])
	}
}

func TestActiveDays(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, day(2026, time.October, 13), nil, true, 9)
	addTask(t, s, day(2026, time.October, 13), nil, true, 17)
	addTask(t, s, day(2026, time.October, 15), nil, true, 9)
	addTask(t, s, day(2026, time.October, 16), nil, false, 0)

	days, err := s.ActiveDays(context.Background(), day(2026, time.October, 1), day(2026, time.October, 17))
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 active days, got %v", days)
	}
	if !days[0].Equal(day(2026, time.October, 13)) || !days[1].Equal(day(2026, time.October, 15)) {
		t.Fatalf("unexpected days: %v", days)
	}
}

// ============================================================
// Achievements
// ============================================================

func TestUnlockAchievementKeepsFirstDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a, _ := summary.CatalogEntry(summary.AchievementStreakMaster)

	fresh, err := s.UnlockAchievement(ctx, a, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC))
	if err != nil || !fresh {
		t.Fatalf("first unlock: fresh=%v err=%v", fresh, err)
	}
	fresh, err = s.UnlockAchievement(ctx, a, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	if err != nil || fresh {
		t.Fatalf("second unlock: fresh=%v err=%v", fresh, err)
	}

	got, err := s.Achievements(ctx, 2026)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].UnlockedDate != "2026-05-01" || got[0].Title != a.Title {
		t.Fatalf("unexpected achievements: %+v", got)
	}

	other, _ := s.Achievements(ctx, 2025)
	if len(other) != 0 {
		t.Fatalf("expected no achievements in 2025, got %+v", other)
	}
}

func TestEvaluateAchievementsKnowledgeSeeker(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cats, _ := s.ListCategories()
	var learning *int64
	for i := range cats {
		if cats[i].Name == "Learning" {
			learning = &cats[i].ID
		}
	}
	if learning == nil {
		t.Fatal("missing Learning category")
	}

	d := day(2026, time.October, 14)
	for i := 0; i < 50; i++ {
		addTask(t, s, d, learning, true, 15)
	}
	at(s, d.Add(20*time.Hour))

	unlocked, err := s.EvaluateAchievements(ctx, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	ids := map[string]bool{}
	for _, a := range unlocked {
		ids[a.ID] = true
	}
	if !ids[summary.AchievementKnowledgeSeeker] {
		t.Fatalf("expected knowledge-seeker, got %+v", unlocked)
	}
	if ids[summary.AchievementEarlyBird] {
		t.Fatal("afternoon tasks should not unlock early-bird")
	}

	again, err := s.EvaluateAchievements(ctx, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Fatalf("expected nothing new, got %+v", again)
	}
}

// ============================================================
// Seed
// ============================================================

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	today := time.Date(2026, time.October, 14, 22, 0, 0, 0, time.UTC)
	at(s, today)

	if err := s.Seed(context.Background(), 14, rand.New(rand.NewSource(1)), time.UTC); err != nil {
		t.Fatal(err)
	}

	records, err := s.DailyRecords(context.Background(), summary.WeekPeriod(today, -1, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		if r.TotalTasks < 8 || r.TotalTasks > 12 {
			t.Fatalf("%s: total tasks %d out of range", r.Label, r.TotalTasks)
		}
		if r.TasksCompleted < 3 || r.TasksCompleted > r.TotalTasks {
			t.Fatalf("%s: completed %d out of range", r.Label, r.TasksCompleted)
		}
		if r.FocusMinutes < 60 || r.FocusMinutes > 179 {
			t.Fatalf("%s: focus %d out of range", r.Label, r.FocusMinutes)
		}
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	defaults := map[string]string{
		"focus_pomodoro":    "1500",
		"focus_short_break": "300",
		"focus_long_break":  "900",
		"focus_rounds":      "4",
		"daily_goal":        "8",
	}

	for k, expected := range defaults {
		val, err := s.GetSetting(k)
		if err != nil {
			t.Fatalf("GetSetting(%q): %v", k, err)
		}
		if val != expected {
			t.Fatalf("GetSetting(%q) = %q, want %q", k, val, expected)
		}
	}
}

func TestSetSettingOverwrite(t *testing.T) {
	s := newTestStore(t)

	s.SetSetting("key", "v1")
	s.SetSetting("key", "v2")
	val, _ := s.GetSetting("key")
	if val != "v2" {
		t.Fatalf("expected v2, got %s", val)
	}
}

func TestSetSettingRejectsBadNumbers(t *testing.T) {
	s := newTestStore(t)
	for _, v := range []string{"many", "0", "-5", ""} {
		if err := s.SetSetting(SettingRounds, v); err == nil {
			t.Fatalf("SetSetting(%q) should fail", v)
		}
	}
	if err := s.SetSetting(SettingDailyGoal, " 12 "); err != nil {
		t.Fatal(err)
	}
	if got := s.IntSetting(SettingDailyGoal, 0); got != 12 {
		t.Fatalf("daily goal = %d, want 12", got)
	}
	if got := s.IntSetting(SettingRounds, 0); got != 4 {
		t.Fatalf("rejected writes must keep the old value, got %d", got)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSetting("nonexistent"); err == nil {
		t.Fatal("expected error for missing setting")
	}
}

func TestIntSetting(t *testing.T) {
	s := newTestStore(t)
	if got := s.IntSetting("focus_pomodoro", 1); got != 1500 {
		t.Fatalf("expected 1500, got %d", got)
	}
	if err := s.SetSetting("note", "many"); err != nil {
		t.Fatal(err)
	}
	if got := s.IntSetting("note", 4); got != 4 {
		t.Fatalf("expected fallback 4, got %d", got)
	}
	if got := s.IntSetting("missing", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) < 5 {
		t.Fatalf("expected at least 5 default settings, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("settings not sorted: %s >= %s", all[i-1].Key, all[i].Key)
		}
	}
}
