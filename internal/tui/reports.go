package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayzen/internal/session"
	"github.com/sadopc/dayzen/internal/summary"
	"go.uber.org/zap"
)

// failureText is what a summary view shows instead of data after a failed
// load. Causes go to the log only.
func failureText(err error, p summary.Pipeline) string {
	switch {
	case errors.Is(err, summary.ErrUnauthenticated):
		return "Your session has expired. Restart dayzen to sign in again."
	case errors.Is(err, summary.ErrInvalidPeriodSelector):
		return "That period cannot be shown."
	}
	return fmt.Sprintf("Failed to fetch %s summary", p)
}

func chartSize(width, height int) (int, int) {
	w := max(width-8, 20)
	h := 10
	if height > 34 {
		h = 14
	}
	return w, h
}

func barStyle(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func renderInsights(lines []string) string {
	rows := []string{titleStyle.Render("Insights")}
	for _, l := range lines {
		rows = append(rows, "  "+highlightStyle.Render("›")+" "+l)
	}
	return strings.Join(rows, "\n")
}

// ============================================================
// Weekly
// ============================================================

type weeklyModel struct {
	svc    Summaries
	sess   *session.Session
	log    *zap.Logger
	width  int
	height int

	offset  int
	sum     *summary.WeeklySummary
	err     error
	loading bool

	chart barchart.Model
}

func newWeeklyModel(svc Summaries, log *zap.Logger) weeklyModel {
	return weeklyModel{svc: svc, log: log, chart: barchart.New(60, 10)}
}

func (m *weeklyModel) setSize(w, h int) {
	m.width = w
	m.height = h
	if m.sum != nil {
		m.buildChart()
	}
}

func (m *weeklyModel) refresh() tea.Cmd {
	m.loading = true
	m.sum = nil
	m.err = nil
	svc, sess, offset, log := m.svc, m.sess, m.offset, m.log
	return func() tea.Msg {
		sum, err := svc.Weekly(context.Background(), sess, offset)
		if err != nil {
			log.Error("load weekly summary", zap.Int("offset", offset), zap.Error(err))
		}
		return weeklyDataMsg{offset: offset, sum: sum, err: err}
	}
}

func (m weeklyModel) update(msg tea.Msg) (weeklyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case weeklyDataMsg:
		if msg.offset != m.offset {
			return m, nil
		}
		m.loading = false
		m.sum, m.err = msg.sum, msg.err
		if m.err != nil {
			m.sum = nil
		} else {
			m.buildChart()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset--
			cmd := m.refresh()
			return m, cmd
		case key.Matches(msg, keys.Right):
			if m.offset < 0 {
				m.offset++
				cmd := m.refresh()
				return m, cmd
			}
		case key.Matches(msg, keys.Retry):
			cmd := m.refresh()
			return m, cmd
		}
	}
	return m, nil
}

func (m *weeklyModel) buildChart() {
	w, h := chartSize(m.width, m.height)
	m.chart = barchart.New(w, h)

	var bars []barchart.BarData
	for _, d := range m.sum.DailyStats {
		bars = append(bars, barchart.BarData{
			Label: d.Label,
			Values: []barchart.BarValue{
				{Name: "done", Value: float64(d.TasksCompleted), Style: barStyle(colorPrimary)},
				{Name: "open", Value: float64(max(d.TotalTasks-d.TasksCompleted, 0)), Style: barStyle(colorSubtle)},
			},
		})
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m weeklyModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Weekly Summary")
	nav := mutedStyle.Render("  ←/→: week  r: retry  e: export")

	switch {
	case m.err != nil:
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", errorStyle.Render(failureText(m.err, summary.PipelineWeekly)), "", nav))
	case m.loading || m.sum == nil:
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("Loading..."), "", nav))
	}

	s := m.sum
	rangeLabel := mutedStyle.Render(fmt.Sprintf("%s – %s",
		s.WeekRange.Start.Format("Jan 2"), s.WeekRange.End.Format("Jan 2, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", rangeLabel)
	if s.Synthetic {
		header = lipgloss.JoinHorizontal(lipgloss.Bottom, header, "  ", warningStyle.Render("(sample data)"))
	}

	totals := fmt.Sprintf("Completed %s   Completion %s   Focus %s",
		highlightStyle.Render(fmt.Sprintf("%d/%d", s.Totals.TasksCompleted, s.Totals.TotalTasks)),
		highlightStyle.Render(fmt.Sprintf("%d%%", s.Totals.CompletionRate)),
		highlightStyle.Render(formatMinutes(s.Totals.FocusMinutes)),
	)
	legend := fmt.Sprintf("%s done  %s planned", dot(string(colorPrimary)), dot(string(colorSubtle)))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", m.chart.View(), legend, "", totals, "", renderInsights(s.Insights), "", nav,
	))
}

// ============================================================
// Yearly
// ============================================================

type yearlyModel struct {
	svc    Summaries
	sess   *session.Session
	log    *zap.Logger
	width  int
	height int

	year    int
	sum     *summary.YearlySummary
	err     error
	loading bool

	chart barchart.Model
}

func newYearlyModel(svc Summaries, log *zap.Logger, year int) yearlyModel {
	return yearlyModel{svc: svc, log: log, year: year, chart: barchart.New(60, 10)}
}

func (m *yearlyModel) setSize(w, h int) {
	m.width = w
	m.height = h
	if m.sum != nil {
		m.buildChart()
	}
}

func (m *yearlyModel) refresh() tea.Cmd {
	m.loading = true
	m.sum = nil
	m.err = nil
	svc, sess, year, log := m.svc, m.sess, m.year, m.log
	return func() tea.Msg {
		sum, err := svc.Yearly(context.Background(), sess, year)
		if err != nil {
			log.Error("load yearly summary", zap.Int("year", year), zap.Error(err))
		}
		return yearlyDataMsg{year: year, sum: sum, err: err}
	}
}

func (m yearlyModel) update(msg tea.Msg) (yearlyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case yearlyDataMsg:
		if msg.year != m.year {
			return m, nil
		}
		m.loading = false
		m.sum, m.err = msg.sum, msg.err
		if m.err != nil {
			m.sum = nil
		} else {
			m.buildChart()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.year--
			cmd := m.refresh()
			return m, cmd
		case key.Matches(msg, keys.Right):
			m.year++
			cmd := m.refresh()
			return m, cmd
		case key.Matches(msg, keys.Retry):
			cmd := m.refresh()
			return m, cmd
		}
	}
	return m, nil
}

func (m *yearlyModel) buildChart() {
	w, h := chartSize(m.width, m.height)
	m.chart = barchart.New(w, h)

	var bars []barchart.BarData
	for _, mo := range m.sum.MonthlyStats {
		bars = append(bars, barchart.BarData{
			Label:  mo.Label,
			Values: []barchart.BarValue{{Name: "done", Value: float64(mo.TasksCompleted), Style: barStyle(colorPrimary)}},
		})
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m yearlyModel) view() string {
	w := m.width - 4
	title := titleStyle.Render(fmt.Sprintf("%d in Review", m.year))
	nav := mutedStyle.Render("  ←/→: year  r: retry  e: export")

	switch {
	case m.err != nil:
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", errorStyle.Render(failureText(m.err, summary.PipelineYearly)), "", nav))
	case m.loading || m.sum == nil:
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("Loading..."), "", nav))
	}

	s := m.sum
	header := title
	if s.Synthetic {
		header = lipgloss.JoinHorizontal(lipgloss.Bottom, header, "  ", warningStyle.Render("(sample data)"))
	}
	totals := fmt.Sprintf("Completed %s   Focus %s   Avg completion %s",
		highlightStyle.Render(fmt.Sprintf("%d", s.Totals.TasksCompleted)),
		highlightStyle.Render(fmt.Sprintf("%.1fh", s.Totals.FocusHours)),
		highlightStyle.Render(fmt.Sprintf("%d%%", s.Totals.AvgCompletionRate)),
	)
	highlights := strings.Join([]string{
		titleStyle.Render("Highlights"),
		"  Most productive  " + highlightStyle.Render(s.Highlights.MostProductiveMonth),
		"  Growth           " + highlightStyle.Render(s.Highlights.BiggestGrowth),
		"  Consistency      " + highlightStyle.Render(s.Highlights.ConsistencyRecord),
	}, "\n")

	side := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(max(w/2-2, 30)).Render(renderCategories(s.Categories)),
		renderAchievements(s.Achievements),
	)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", m.chart.View(), "", totals, "", highlights, "", side, "", nav,
	))
}

func renderCategories(cats []summary.Category) string {
	rows := []string{titleStyle.Render("Categories")}
	if len(cats) == 0 {
		rows = append(rows, mutedStyle.Render("  No completed tasks"))
	}
	for _, c := range cats {
		rows = append(rows, fmt.Sprintf("  %-22s %s %3d%%", c.Name, progressBar(c.Percentage, 100, 10), c.Percentage))
	}
	return strings.Join(rows, "\n")
}

func renderAchievements(list []summary.Achievement) string {
	rows := []string{titleStyle.Render("Achievements")}
	if len(list) == 0 {
		rows = append(rows, mutedStyle.Render("  None unlocked yet"))
	}
	for _, a := range list {
		title := lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color)).Bold(true).Render(a.Title)
		rows = append(rows, fmt.Sprintf("  %s %s %s", a.Icon, title, mutedStyle.Render(a.UnlockedDate)))
	}
	return strings.Join(rows, "\n")
}
