package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayzen/internal/store"
	"go.uber.org/zap"
)

var settingLabels = map[string]string{
	store.SettingPomodoro:   "Pomodoro",
	store.SettingShortBreak: "Short break",
	store.SettingLongBreak:  "Long break",
	store.SettingRounds:     "Pomodoros per long break",
	store.SettingDailyGoal:  "Daily goal",
}

type settingsModel struct {
	store  *store.Store
	log    *zap.Logger
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	pomodoro   *string
	shortBreak *string
	longBreak  *string
	rounds     *string
	dailyGoal  *string
}

func newSettingsModel(s *store.Store, log *zap.Logger) settingsModel {
	p, sb, lb, r, g := "", "", "", "", ""
	return settingsModel{
		store:      s,
		log:        log,
		pomodoro:   &p,
		shortBreak: &sb,
		longBreak:  &lb,
		rounds:     &r,
		dailyGoal:  &g,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := s.store.GetAllSettings()
		if err != nil {
			s.log.Error("list settings", zap.Error(err))
		}
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) || key.Matches(msg, keys.Edit) {
			return s.showForm()
		}
	}
	return s, nil
}

func positiveInt(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a whole number above zero")
	}
	return nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.pomodoro = secsToMin(s.getVal(store.SettingPomodoro, "1500"))
	*s.shortBreak = secsToMin(s.getVal(store.SettingShortBreak, "300"))
	*s.longBreak = secsToMin(s.getVal(store.SettingLongBreak, "900"))
	*s.rounds = s.getVal(store.SettingRounds, "4")
	*s.dailyGoal = s.getVal(store.SettingDailyGoal, "8")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Pomodoro (min)").Value(s.pomodoro).Validate(positiveInt),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreak).Validate(positiveInt),
			huh.NewInput().Title("Long break (min)").Value(s.longBreak).Validate(positiveInt),
			huh.NewInput().Title("Pomodoros before a long break").Value(s.rounds).Validate(positiveInt),
		).Title("Focus"),
		huh.NewGroup(
			huh.NewInput().Title("Daily goal (tasks)").Value(s.dailyGoal).Validate(positiveInt),
		).Title("Goals"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		s.formActive = false
		s.form = nil
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			s.log.Error("save settings", zap.Error(err))
			return s, func() tea.Msg { return statusMsg{text: "Could not save settings", isError: true} }
		}
		return s, tea.Batch(s.refresh(), func() tea.Msg { return statusMsg{text: "Settings saved"} })
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	values := map[string]string{
		store.SettingPomodoro:   minToSecs(*s.pomodoro),
		store.SettingShortBreak: minToSecs(*s.shortBreak),
		store.SettingLongBreak:  minToSecs(*s.longBreak),
		store.SettingRounds:     strings.TrimSpace(*s.rounds),
		store.SettingDailyGoal:  strings.TrimSpace(*s.dailyGoal),
	}
	for k, v := range values {
		if err := s.store.SetSetting(k, v); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return nil
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	rows := []string{title, ""}
	for _, setting := range s.settings {
		name, ok := settingLabels[setting.Key]
		if !ok {
			name = setting.Key
		}
		label := lipgloss.NewStyle().Width(28).Render(name)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingPomodoro, store.SettingShortBreak, store.SettingLongBreak:
		if secs, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d min", secs/60)
		}
	case store.SettingDailyGoal:
		if n, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d tasks", n)
		}
	}
	return v
}

func secsToMin(s string) string {
	if secs, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(secs / 60)
	}
	return s
}

func minToSecs(s string) string {
	if mins, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return strconv.Itoa(mins * 60)
	}
	return s
}
