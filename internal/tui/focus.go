package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayzen/internal/store"
	"go.uber.org/zap"
)

var focusModes = []store.FocusMode{store.ModePomodoro, store.ModeShortBreak, store.ModeLongBreak}

var modeNames = map[store.FocusMode]string{
	store.ModePomodoro:   "POMODORO",
	store.ModeShortBreak: "SHORT BREAK",
	store.ModeLongBreak:  "LONG BREAK",
}

// focusTaskMsg asks the focus view to attribute its next session to task.
type focusTaskMsg struct {
	task store.Task
}

type focusModel struct {
	store  *store.Store
	log    *zap.Logger
	width  int
	height int

	timer     timerModel
	mode      store.FocusMode
	durations map[store.FocusMode]time.Duration
	rounds    int
	completed int

	task      *store.Task
	sessionID int64
}

func newFocusModel(s *store.Store, log *zap.Logger, now func() time.Time) focusModel {
	m := focusModel{
		store: s,
		log:   log,
		timer: newTimerModel(now),
		mode:  store.ModePomodoro,
	}
	m.loadSettings()
	return m
}

func (f *focusModel) loadSettings() {
	f.durations = map[store.FocusMode]time.Duration{
		store.ModePomodoro:   time.Duration(f.store.IntSetting(store.SettingPomodoro, 1500)) * time.Second,
		store.ModeShortBreak: time.Duration(f.store.IntSetting(store.SettingShortBreak, 300)) * time.Second,
		store.ModeLongBreak:  time.Duration(f.store.IntSetting(store.SettingLongBreak, 900)) * time.Second,
	}
	f.rounds = max(f.store.IntSetting(store.SettingRounds, 4), 1)
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f focusModel) running() bool { return f.timer.running() }

// nextMode is the mode that follows a finished or skipped session. completed
// already counts the pomodoro that just ended.
func nextMode(mode store.FocusMode, completed, rounds int) store.FocusMode {
	if mode != store.ModePomodoro {
		return store.ModePomodoro
	}
	if rounds > 0 && completed > 0 && completed%rounds == 0 {
		return store.ModeLongBreak
	}
	return store.ModeShortBreak
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if f.timer.finished() {
			return f.finish()
		}
		return f, nil

	case focusTaskMsg:
		t := msg.task
		f.task = &t
		return f, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if !f.timer.running() {
				return f.start()
			}
			f.timer.toggle()
		case key.Matches(msg, keys.Reset):
			if f.timer.running() {
				return f.cancel("Session reset")
			}
		case key.Matches(msg, keys.Skip):
			var cmd tea.Cmd
			f, cmd = f.cancel("")
			f.mode = nextMode(f.mode, f.completed, f.rounds)
			return f, cmd
		case key.Matches(msg, keys.Left):
			if !f.timer.running() {
				f.mode = cycleMode(f.mode, -1)
			}
		case key.Matches(msg, keys.Right):
			if !f.timer.running() {
				f.mode = cycleMode(f.mode, 1)
			}
		case key.Matches(msg, keys.Back):
			if !f.timer.running() {
				f.task = nil
			}
		}
	}
	return f, nil
}

func cycleMode(mode store.FocusMode, step int) store.FocusMode {
	for i, m := range focusModes {
		if m == mode {
			return focusModes[(i+step+len(focusModes))%len(focusModes)]
		}
	}
	return store.ModePomodoro
}

func (f focusModel) start() (focusModel, tea.Cmd) {
	f.loadSettings()
	planned := f.durations[f.mode]

	var taskID *int64
	if f.task != nil && f.mode == store.ModePomodoro {
		taskID = &f.task.ID
	}
	sess, err := f.store.StartFocus(taskID, f.mode, int(planned.Seconds()))
	if err != nil {
		f.log.Error("start focus session", zap.Error(err))
		return f, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	f.sessionID = sess.ID
	f.timer.start(planned)
	return f, nil
}

func (f focusModel) finish() (focusModel, tea.Cmd) {
	planned := int(f.timer.planned.Seconds())
	f.timer.stop()
	if err := f.store.CompleteFocus(f.sessionID, planned); err != nil {
		f.log.Error("complete focus session", zap.Int64("id", f.sessionID), zap.Error(err))
	}
	f.sessionID = 0

	text := "Break over. Back to work! \a"
	if f.mode == store.ModePomodoro {
		f.completed++
		text = "Pomodoro complete! Time for a break. \a"
	}
	f.mode = nextMode(f.mode, f.completed, f.rounds)
	return f, func() tea.Msg { return statusMsg{text: text} }
}

// cancel stops a running session and records the time actually spent.
func (f focusModel) cancel(status string) (focusModel, tea.Cmd) {
	if !f.timer.running() {
		return f, nil
	}
	spent := int(f.timer.elapsed().Seconds())
	f.timer.stop()
	if err := f.store.CancelFocus(f.sessionID, spent); err != nil {
		f.log.Error("cancel focus session", zap.Int64("id", f.sessionID), zap.Error(err))
	}
	f.sessionID = 0
	if status == "" {
		return f, nil
	}
	return f, func() tea.Msg { return statusMsg{text: status} }
}

func (f focusModel) view() string {
	w := f.width - 4

	var tabs []string
	for _, m := range focusModes {
		if m == f.mode {
			tabs = append(tabs, activeTabStyle.Render(modeNames[m]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(modeNames[m]))
		}
	}
	modeRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	style := countdownStyle
	switch {
	case f.timer.paused():
		style = style.Foreground(colorWarning)
	case f.timer.running() && f.mode == store.ModePomodoro:
		style = style.Foreground(colorAccent)
	case f.timer.running():
		style = style.Foreground(colorSuccess)
	}
	remaining := f.durations[f.mode]
	if f.timer.running() {
		remaining = f.timer.remaining()
	}
	countdown := style.Width(max(w-6, 10)).Render(formatCountdown(remaining))

	var state string
	switch {
	case f.timer.paused():
		state = warningStyle.Render("⏸  PAUSED")
	case f.timer.running():
		state = successStyle.Render("●  RUNNING")
	default:
		state = mutedStyle.Render("Ready")
	}

	taskLine := mutedStyle.Render("No task selected (press f on a task)")
	if f.task != nil {
		taskLine = highlightStyle.Render("Focusing on: " + f.task.Title)
	}

	var controls string
	if f.timer.running() {
		controls = mutedStyle.Render("s: pause/resume  x: reset  >: skip")
	} else {
		controls = mutedStyle.Render("s: start  ←/→: mode  >: skip  esc: clear task")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Focus"),
		modeRow,
		"",
		countdown,
		state,
		"",
		f.renderRounds(),
		taskLine,
		"",
		controls,
	)
	panel := panelStyle
	if f.timer.running() {
		panel = activePanelStyle
	}
	return panel.Width(w).Render(content)
}

func (f focusModel) renderRounds() string {
	done := f.completed % f.rounds
	if f.completed > 0 && done == 0 && f.mode == store.ModeLongBreak {
		done = f.rounds
	}
	var parts []string
	for i := 0; i < f.rounds; i++ {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && f.mode == store.ModePomodoro && f.timer.running():
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	return strings.Join(parts, " ") + mutedStyle.Render(fmt.Sprintf("  %d this session", f.completed))
}
