package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayzen/internal/store"
	"go.uber.org/zap"
)

type tasksModel struct {
	store  *store.Store
	log    *zap.Logger
	loc    *time.Location
	now    func() time.Time
	width  int
	height int

	dayOffset  int
	tasks      []store.Task
	categories []store.Category
	cursor     int

	formActive bool
	form       *huh.Form
	editingID  int64

	// Form field pointers (survive value copies)
	formTitle    *string
	formDesc     *string
	formPriority *string
	formCategory *string
	formEstimate *string
}

func newTasksModel(s *store.Store, log *zap.Logger, loc *time.Location, now func() time.Time) tasksModel {
	title, desc, prio, cat, est := "", "", string(store.PriorityMedium), "", ""
	return tasksModel{
		store:        s,
		log:          log,
		loc:          loc,
		now:          now,
		formTitle:    &title,
		formDesc:     &desc,
		formPriority: &prio,
		formCategory: &cat,
		formEstimate: &est,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// day is the local day being shown.
func (m tasksModel) day() time.Time {
	now := m.now().In(m.loc)
	return time.Date(now.Year(), now.Month(), now.Day()+m.dayOffset, 0, 0, 0, 0, m.loc)
}

type tasksDataMsg struct {
	tasks      []store.Task
	categories []store.Category
}

// taskChangedMsg reports a finished write; the list reloads on receipt.
type taskChangedMsg struct {
	text string
}

func (m tasksModel) refresh() tea.Cmd {
	day := m.day()
	return func() tea.Msg {
		tasks, err := m.store.ListTasks(day, false)
		if err != nil {
			m.log.Error("list tasks", zap.Error(err))
			return statusMsg{text: "Could not load tasks", isError: true}
		}
		cats, _ := m.store.ListCategories()
		return tasksDataMsg{tasks: tasks, categories: cats}
	}
}

func (m tasksModel) selected() (store.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return store.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		m.tasks = msg.tasks
		m.categories = msg.categories
		if m.cursor >= len(m.tasks) {
			m.cursor = max(0, len(m.tasks)-1)
		}
		return m, nil

	case taskChangedMsg:
		return m, m.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Left):
			m.dayOffset--
			m.cursor = 0
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.dayOffset++
			m.cursor = 0
			return m, m.refresh()
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if t, ok := m.selected(); ok {
				return m, m.toggle(t)
			}
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if t, ok := m.selected(); ok {
				return m.showForm(&t)
			}
		case key.Matches(msg, keys.Delete):
			if t, ok := m.selected(); ok {
				return m, m.archive(t)
			}
		case msg.String() == "f":
			if t, ok := m.selected(); ok && !t.Completed {
				return m, func() tea.Msg { return focusTaskMsg{task: t} }
			}
		}
	}
	return m, nil
}

func (m tasksModel) toggle(t store.Task) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.store.ToggleTask(t.ID)
		if err != nil {
			m.log.Error("toggle task", zap.Int64("id", t.ID), zap.Error(err))
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		if !updated.Completed {
			return taskChangedMsg{text: "Reopened " + updated.Title}
		}

		text := "Completed " + updated.Title
		unlocked, err := m.store.EvaluateAchievements(context.Background(), m.loc)
		if err != nil {
			m.log.Warn("evaluate achievements", zap.Error(err))
		}
		for _, a := range unlocked {
			m.log.Info("achievement unlocked", zap.String("id", a.ID))
			text = fmt.Sprintf("Achievement unlocked: %s %s", a.Icon, a.Title)
		}
		return taskChangedMsg{text: text}
	}
}

func (m tasksModel) archive(t store.Task) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.ArchiveTask(t.ID); err != nil {
			m.log.Error("archive task", zap.Int64("id", t.ID), zap.Error(err))
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return taskChangedMsg{text: "Archived " + t.Title}
	}
}

func (m tasksModel) showForm(editing *store.Task) (tasksModel, tea.Cmd) {
	*m.formTitle, *m.formDesc, *m.formEstimate, *m.formCategory = "", "", "", ""
	*m.formPriority = string(store.PriorityMedium)
	m.editingID = 0
	if editing != nil {
		m.editingID = editing.ID
		*m.formTitle = editing.Title
		*m.formDesc = editing.Description
		*m.formPriority = string(editing.Priority)
		if editing.EstimatedMinutes > 0 {
			*m.formEstimate = strconv.Itoa(editing.EstimatedMinutes)
		}
		if editing.CategoryID != nil {
			*m.formCategory = strconv.FormatInt(*editing.CategoryID, 10)
		}
	}

	catOptions := []huh.Option[string]{huh.NewOption("None", "")}
	for _, c := range m.categories {
		catOptions = append(catOptions, huh.NewOption(c.Name, strconv.FormatInt(c.ID, 10)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("a title is required")
				}
				return nil
			}),
			huh.NewInput().Title("Description").Value(m.formDesc),
			huh.NewSelect[string]().Title("Priority").Options(
				huh.NewOption("High", string(store.PriorityHigh)),
				huh.NewOption("Medium", string(store.PriorityMedium)),
				huh.NewOption("Low", string(store.PriorityLow)),
			).Value(m.formPriority),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(m.formCategory),
			huh.NewInput().Title("Estimate (min)").Value(m.formEstimate).Validate(validateOptionalMinutes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func validateOptionalMinutes(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("enter a number of minutes")
	}
	return nil
}

// formTask converts the form fields into a task scheduled on day.
func (m tasksModel) formTask(day time.Time) store.NewTask {
	n := store.NewTask{
		Title:        *m.formTitle,
		Description:  strings.TrimSpace(*m.formDesc),
		Priority:     store.Priority(*m.formPriority),
		ScheduledFor: day,
	}
	if id, err := strconv.ParseInt(*m.formCategory, 10, 64); err == nil {
		n.CategoryID = &id
	}
	n.EstimatedMinutes, _ = strconv.Atoi(strings.TrimSpace(*m.formEstimate))
	return n
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.formActive = false
	n := m.formTask(m.day())
	id := m.editingID
	return m, func() tea.Msg {
		if id != 0 {
			if err := m.store.UpdateTask(id, n); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return taskChangedMsg{text: "Updated " + n.Title}
		}
		t, err := m.store.CreateTask(n)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return taskChangedMsg{text: "Added " + t.Title}
	}
}

func (m tasksModel) view() string {
	w := m.width - 4
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		if m.editingID != 0 {
			title = titleStyle.Render("Edit Task")
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()))
	}

	day := m.day()
	label := day.Format("Monday, Jan 2")
	switch m.dayOffset {
	case 0:
		label = "Today · " + label
	case -1:
		label = "Yesterday · " + label
	case 1:
		label = "Tomorrow · " + label
	}

	done := 0
	for _, t := range m.tasks {
		if t.Completed {
			done++
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Tasks"), "  ", mutedStyle.Render(label), "  ",
		highlightStyle.Render(fmt.Sprintf("%d/%d done", done, len(m.tasks))),
	)

	rows := []string{header, ""}
	if len(m.tasks) == 0 {
		rows = append(rows, mutedStyle.Render("Nothing planned. Press n to add a task."))
	}
	for i, t := range m.tasks {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := "[ ]"
		if t.Completed {
			check = successStyle.Render("[✓]")
			if i != m.cursor {
				style = doneItemStyle
			}
		}
		line := fmt.Sprintf("%s%s %s %s", cursor, check,
			priorityStyle(string(t.Priority)).Render("▌"), style.Render(t.Title))
		if t.CategoryName != "" {
			line += mutedStyle.Render("  " + t.CategoryName)
		}
		if t.EstimatedMinutes > 0 {
			line += mutedStyle.Render("  ~" + formatMinutes(t.EstimatedMinutes))
		}
		rows = append(rows, line)
	}

	rows = append(rows, "", mutedStyle.Render("  space: done/undo  n: new  e: edit  d: archive  f: focus  ←/→: day"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
