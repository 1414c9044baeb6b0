package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayzen/internal/export"
	"github.com/sadopc/dayzen/internal/session"
	"github.com/sadopc/dayzen/internal/store"
	"github.com/sadopc/dayzen/internal/summary"
	"go.uber.org/zap"
)

// Summaries is the part of summary.Service the TUI reads from.
type Summaries interface {
	Weekly(ctx context.Context, sess *session.Session, offset int) (*summary.WeeklySummary, error)
	Yearly(ctx context.Context, sess *session.Session, year int) (*summary.YearlySummary, error)
	Streak(ctx context.Context, sess *session.Session) (summary.Streak, error)
	Location() *time.Location
}

type Options struct {
	Store      *store.Store
	Summaries  Summaries
	Log        *zap.Logger
	SessionTTL time.Duration
	// User prefills the login prompt.
	User string
	// ExportDir receives exported summaries.
	ExportDir string
	Now       func() time.Time
}

var exportFormats = []export.Format{export.CSV, export.JSON}

// App is the root Bubble Tea model.
type App struct {
	store     *store.Store
	log       *zap.Logger
	exportDir string
	sess      *session.Session
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	login     loginModel
	dashboard dashboardModel
	tasks     tasksModel
	weekly    weeklyModel
	yearly    yearlyModel
	focus     focusModel
	settings  settingsModel

	help   help.Model
	status string
}

func NewApp(opts Options) App {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	loc := opts.Summaries.Location()

	h := help.New()
	h.ShowAll = false

	return App{
		store:      opts.Store,
		log:        opts.Log,
		exportDir:  opts.ExportDir,
		activeView: viewDashboard,
		login:      newLoginModel(opts.User, opts.SessionTTL, opts.Now),
		dashboard:  newDashboardModel(opts.Store, opts.Summaries, opts.Log, opts.Now),
		tasks:      newTasksModel(opts.Store, opts.Log, loc, opts.Now),
		weekly:     newWeeklyModel(opts.Summaries, opts.Log),
		yearly:     newYearlyModel(opts.Summaries, opts.Log, opts.Now().In(loc).Year()),
		focus:      newFocusModel(opts.Store, opts.Log, opts.Now),
		settings:   newSettingsModel(opts.Store, opts.Log),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.login.Init(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) signIn(sess *session.Session) {
	a.sess = sess
	a.dashboard.sess = sess
	a.weekly.sess = sess
	a.yearly.sess = sess
	a.status = "Welcome, " + sess.User
	a.log.Info("signed in", zap.String("user", sess.User), zap.String("session", sess.ID.String()))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.weekly.setSize(a.width, contentHeight)
		a.yearly.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tickMsg:
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		return a, tea.Batch(tickCmd(), cmd)
	}

	if a.sess == nil {
		return a.updateLogin(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A child view capturing input (e.g. a form) sees keys first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export) && a.exportable() != nil:
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a.quit()
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewTasks)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewWeekly)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewYearly)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewFocus)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}
		return a.updateActiveView(msg)

	case statusMsg:
		a.status = msg.text
		if msg.isError {
			a.status = "! " + msg.text
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		return a, nil

	case taskChangedMsg:
		a.status = msg.text
		var cmd tea.Cmd
		a.tasks, cmd = a.tasks.update(msg)
		return a, tea.Batch(cmd, a.dashboard.loadData())

	case focusTaskMsg:
		a.focus, _ = a.focus.update(msg)
		a.activeView = viewFocus
		return a, nil

	case dashboardDataMsg:
		a.dashboard, _ = a.dashboard.update(msg)
		return a, nil
	case tasksDataMsg:
		a.tasks, _ = a.tasks.update(msg)
		return a, nil
	case weeklyDataMsg:
		a.weekly, _ = a.weekly.update(msg)
		return a, nil
	case yearlyDataMsg:
		a.yearly, _ = a.yearly.update(msg)
		return a, nil
	case settingsDataMsg:
		a.settings, _ = a.settings.update(msg)
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			return a, tea.Quit
		}
	case signedInMsg:
		a.signIn(msg.sess)
		return a, a.dashboard.loadData()
	}
	var cmd tea.Cmd
	a.login, cmd = a.login.update(msg)
	return a, cmd
}

// quit cancels a running focus session so it is not left open in the store.
func (a App) quit() (tea.Model, tea.Cmd) {
	if a.focus.running() {
		a.focus, _ = a.focus.cancel("")
	}
	return a, tea.Quit
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	cmd := a.refreshCurrentView()
	return a, cmd
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "r" {
			return a, a.dashboard.loadData()
		}
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewWeekly:
		a.weekly, cmd = a.weekly.update(msg)
	case viewYearly:
		a.yearly, cmd = a.yearly.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

// refreshCurrentView reloads the active view. Summary views drop what they
// showed before so a failed reload never leaves old numbers on screen.
func (a *App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewTasks:
		return a.tasks.refresh()
	case viewWeekly:
		return a.weekly.refresh()
	case viewYearly:
		return a.yearly.refresh()
	case viewFocus:
		a.focus.loadSettings()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

// exportable returns the summary on screen, if any.
func (a App) exportable() any {
	switch a.activeView {
	case viewWeekly:
		if a.weekly.sum != nil {
			return a.weekly.sum
		}
	case viewYearly:
		if a.yearly.sum != nil {
			return a.yearly.sum
		}
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}
	if a.sess == nil {
		return a.login.view(a.width, a.height)
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTasks:
		content = a.tasks.view()
	case viewWeekly:
		content = a.weekly.view()
	case viewYearly:
		content = a.yearly.view()
	case viewFocus:
		content = a.focus.view()
	case viewSettings:
		content = a.settings.view()
	}

	contentHeight := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)
	if a.exportPicking {
		content = a.renderExportPicker()
	}
	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("dayzen")
	user := mutedStyle.Render(" · " + a.sess.User)
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(user)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, user, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	left := footerStyle.Render(a.help.View(keys))

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	focusInfo := ""
	if a.focus.running() {
		label := modeNames[a.focus.mode] + " " + formatCountdown(a.focus.timer.remaining())
		focusInfo = successStyle.Render(" ● " + label)
		if a.focus.timer.paused() {
			focusInfo = warningStyle.Render(" ⏸ " + label)
		}
	}
	right := focusInfo + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export Format"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+string(f)))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))
	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(exportFormats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format export.Format) tea.Cmd {
	sum := a.exportable()
	dir := a.exportDir
	return func() tea.Msg {
		if sum == nil {
			return statusMsg{text: "Nothing to export", isError: true}
		}
		path := filepath.Join(dir, export.Filename(format, sum))
		if err := export.WriteFile(path, format, sum); err != nil {
			a.log.Error("export", zap.String("path", path), zap.Error(err))
			return statusMsg{text: fmt.Sprintf("Export failed: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
