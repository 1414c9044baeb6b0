package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayzen/internal/session"
)

// signedInMsg carries the session created by the login gate.
type signedInMsg struct {
	sess *session.Session
}

// loginModel asks who is using dayzen before any data is shown.
type loginModel struct {
	ttl  time.Duration
	now  func() time.Time
	name *string
	form *huh.Form
}

func newLoginModel(defaultUser string, ttl time.Duration, now func() time.Time) loginModel {
	name := defaultUser
	m := loginModel{ttl: ttl, now: now, name: &name}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Who's planning today?").
				Placeholder("your name").
				Value(m.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a name is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false).WithShowErrors(true)
	return m
}

func (m loginModel) Init() tea.Cmd { return m.form.Init() }

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		sess := session.New(*m.name, m.ttl, m.now())
		return m, func() tea.Msg { return signedInMsg{sess: sess} }
	}
	return m, cmd
}

func (m loginModel) view(width, height int) string {
	box := activePanelStyle.Width(min(width-4, 56)).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("dayzen"),
		mutedStyle.Render("Plan the day. Focus. Look back."),
		"",
		m.form.View(),
	))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
