package tasklist

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/cache"
	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/theme"
)

// TasksLoadedMsg is sent when tasks have been loaded from the cache.
type TasksLoadedMsg struct {
	Tasks []model.Task
}

// SelectedTaskMsg is sent when a user selects a task to act on.
type SelectedTaskMsg struct {
	TaskID int64
}

// StatusChangeRequestMsg asks for the selected task to advance to the
// next status in the cycle.
type StatusChangeRequestMsg struct {
	TaskID     int64
	NextStatut string
}

// AssignRequestMsg asks for the selected task to be assigned.
type AssignRequestMsg struct {
	TaskID int64
}

// statusFilters holds the values cycled by the f key: every status
// plus the empty string for "no filter".
var statusFilters = append([]string{""}, model.TaskStatuses...)

// Model is the task list view component.
type Model struct {
	list        list.Model
	cache       cache.Cache
	keys        *keys.KeyMap
	filter      cache.TaskFilter
	statusIndex int
	searchMode  bool
	searchInput textinput.Model
	stale       *bool
	width       int
	height      int
}

// New creates a new task list model.
func New(c cache.Cache, k *keys.KeyMap, width, height int) Model {
	stale := new(bool)
	delegate := ItemDelegate{stale: stale}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Tâches"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "rechercher une tâche..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		cache:       c,
		keys:        k,
		stale:       stale,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of tasks.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks()
}

// SetProjectScope restricts the list to one project, or clears the
// restriction when projetID is nil.
func (m *Model) SetProjectScope(projetID *int64) {
	m.filter.ProjetID = projetID
}

// SetAssigneeScope restricts the list to one member's tasks.
func (m *Model) SetAssigneeScope(membreID *int64) {
	m.filter.AssigneeID = membreID
}

// MarkStale flags the rendered rows as possibly outdated after a
// failed refresh.
func (m *Model) MarkStale(stale bool) {
	*m.stale = stale
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		items := make([]list.Item, len(msg.Tasks))
		for i, task := range msg.Tasks {
			items[i] = TaskItem{Task: task}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadTasks()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadTasks()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTaskMsg{TaskID: task.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Status):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		next := model.NextStatus(task.Statut)
		return m, func() tea.Msg {
			return StatusChangeRequestMsg{TaskID: task.ID, NextStatut: next}
		}

	case key.Matches(msg, m.keys.Assign):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return AssignRequestMsg{TaskID: task.ID}
		}

	case key.Matches(msg, m.keys.Filter):
		m.statusIndex = (m.statusIndex + 1) % len(statusFilters)
		if statusFilters[m.statusIndex] == "" {
			m.filter.Statut = nil
		} else {
			s := statusFilters[m.statusIndex]
			m.filter.Statut = &s
		}
		return m, m.LoadTasks()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are available.
func (m Model) renderEmptyState() string {
	hasFilters := m.filter.Statut != nil ||
		m.filter.ProjetID != nil ||
		m.filter.Query != nil

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if hasFilters {
		return style.Render("Aucune tâche ne correspond.\nAjustez les filtres.")
	}

	return style.Render("Aucune tâche.\nAppuyez sur r pour rafraîchir.")
}

// Searching reports whether the search input has keyboard focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// FilterSummarydescribes the active filters for the status bar.
func (m Model) FilterSummary() string {
	if m.filter.Statut != nil {
		return "filtre: " + *m.filter.Statut
	}
	if m.filter.Query != nil {
		return "recherche: " + *m.filter.Query
	}
	return ""
}

// LoadTasks returns a tea.Cmd that queries the cache with the current filter.
func (m Model) LoadTasks() tea.Cmd {
	filter := m.filter
	c := m.cache
	return func() tea.Msg {
		tasks, err := c.Tasks(context.Background(), filter)
		if err != nil {
			return TasksLoadedMsg{Tasks: nil}
		}
		return TasksLoadedMsg{Tasks: tasks}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
