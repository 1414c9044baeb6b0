package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/dayzen/internal/summary"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewWeekly
	viewYearly
	viewFocus
	viewSettings
)

var viewNames = []string{"Dashboard", "Tasks", "Weekly", "Yearly", "Focus", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

type weeklyDataMsg struct {
	offset int
	sum    *summary.WeeklySummary
	err    error
}

type yearlyDataMsg struct {
	year int
	sum  *summary.YearlySummary
	err  error
}

// --- Helpers ---

// formatMinutes renders a minute count as "1h 05m" or "45m".
func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

// progressBar draws done/total as a bar of width cells.
func progressBar(done, total, width int) string {
	if width < 1 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	filled = min(filled, width)
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += successStyle.Render("█")
		} else {
			bar += mutedStyle.Render("░")
		}
	}
	return bar
}
