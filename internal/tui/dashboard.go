package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayzen/internal/session"
	"github.com/sadopc/dayzen/internal/store"
	"github.com/sadopc/dayzen/internal/summary"
	"go.uber.org/zap"
)

const dashboardOpenTasks = 5

type dashboardModel struct {
	store  *store.Store
	svc    Summaries
	sess   *session.Session
	log    *zap.Logger
	now    func() time.Time
	width  int
	height int

	tasks      []store.Task
	focusSecs  int
	pomodoros  int
	dailyGoal  int
	streak     summary.Streak
	streakErr  bool
	loadedOnce bool
}

func newDashboardModel(s *store.Store, svc Summaries, log *zap.Logger, now func() time.Time) dashboardModel {
	return dashboardModel{store: s, svc: svc, log: log, now: now}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	tasks     []store.Task
	focusSecs int
	pomodoros int
	dailyGoal int
	streak    summary.Streak
	streakErr bool
}

func (d dashboardModel) loadData() tea.Cmd {
	sess := d.sess
	return func() tea.Msg {
		loc := d.svc.Location()
		now := d.now().In(loc)
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		dayEnd := dayStart.AddDate(0, 0, 1)

		var msg dashboardDataMsg
		var err error
		if msg.tasks, err = d.store.ListTasks(dayStart, false); err != nil {
			d.log.Error("dashboard tasks", zap.Error(err))
		}
		if msg.focusSecs, err = d.store.FocusSeconds(dayStart, dayEnd); err != nil {
			d.log.Error("dashboard focus", zap.Error(err))
		}
		msg.pomodoros, _ = d.store.CompletedFocusCount(dayStart, dayEnd)
		msg.dailyGoal = d.store.IntSetting(store.SettingDailyGoal, 8)

		if msg.streak, err = d.svc.Streak(context.Background(), sess); err != nil {
			d.log.Warn("dashboard streak", zap.Error(err))
			msg.streakErr = true
		}
		return msg
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(dashboardDataMsg); ok {
		d.tasks = msg.tasks
		d.focusSecs = msg.focusSecs
		d.pomodoros = msg.pomodoros
		d.dailyGoal = msg.dailyGoal
		d.streak = msg.streak
		d.streakErr = msg.streakErr
		d.loadedOnce = true
	}
	return d, nil
}

func (d dashboardModel) done() int {
	n := 0
	for _, t := range d.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	if !d.loadedOnce {
		return mutedStyle.Render("  Loading...")
	}
	w := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderProgressPanel(w),
		d.renderStreakPanel(w),
		d.renderOpenTasks(w),
	)
}

func (d dashboardModel) renderProgressPanel(w int) string {
	done := d.done()
	goal := max(d.dailyGoal, 1)

	title := titleStyle.Render("Today")
	date := mutedStyle.Render(d.now().In(d.svc.Location()).Format("Monday, January 2"))

	taskLine := fmt.Sprintf("Tasks   %s  %s",
		progressBar(done, max(len(d.tasks), 1), 24),
		highlightStyle.Render(fmt.Sprintf("%d/%d", done, len(d.tasks))))
	goalLine := fmt.Sprintf("Goal    %s  %s",
		progressBar(min(done, goal), goal, 24),
		highlightStyle.Render(fmt.Sprintf("%d of %d tasks", done, goal)))
	if done >= goal {
		goalLine += successStyle.Render("  goal reached!")
	}
	focusLine := fmt.Sprintf("Focus   %s  %s",
		highlightStyle.Render(formatMinutes(d.focusSecs/60)),
		mutedStyle.Render(fmt.Sprintf("(%d pomodoros)", d.pomodoros)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", date),
		"",
		taskLine,
		goalLine,
		focusLine,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderStreakPanel(w int) string {
	title := titleStyle.Render("Streak")
	if d.streakErr {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, mutedStyle.Render("Streak unavailable right now")))
	}

	days := "days"
	if d.streak.Current == 1 {
		days = "day"
	}
	count := accentStyle.Bold(true).Render(fmt.Sprintf("🔥 %d %s", d.streak.Current, days))

	labels := []string{"M", "T", "W", "T", "F", "S", "S"}
	var week []string
	for i, active := range d.streak.Week {
		if active {
			week = append(week, successStyle.Render(labels[i]))
		} else {
			week = append(week, mutedStyle.Render(labels[i]))
		}
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", count),
		strings.Join(week, " "),
	))
}

func (d dashboardModel) renderOpenTasks(w int) string {
	title := titleStyle.Render("Up Next")

	var rows []string
	rows = append(rows, title)
	for _, t := range d.tasks {
		if t.Completed {
			continue
		}
		if len(rows) > dashboardOpenTasks {
			break
		}
		rows = append(rows, fmt.Sprintf("  %s %s", priorityStyle(string(t.Priority)).Render("▌"), t.Title))
	}
	if len(rows) == 1 {
		if len(d.tasks) == 0 {
			rows = append(rows, mutedStyle.Render("  Nothing planned. Press 2 to add tasks."))
		} else {
			rows = append(rows, successStyle.Render("  All done for today!"))
		}
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
