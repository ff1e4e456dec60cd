// Package assign is the small picker used to assign a task to a
// member.
package assign

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/theme"
)

// ChosenMsg is sent when a member has been picked for the task.
type ChosenMsg struct {
	TaskID   int64
	MembreID int64
}

// CancelMsg is sent when the picker is dismissed.
type CancelMsg struct{}

// Model is the assignment picker component.
type Model struct {
	keys    *keys.KeyMap
	taskID  int64
	members []model.Member
	cursor  int
	width   int
	height  int
}

// New creates a new assignment picker.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{keys: k, width: width, height: height}
}

// Start opens the picker for a task. Archived members are excluded
// from the pool.
func (m *Model) Start(taskID int64, members []model.Member) {
	m.taskID = taskID
	m.members = model.ActiveMembers(members)
	m.cursor = 0
}

// Update handles messages for the assignment picker.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return CancelMsg{} }

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.members)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Select):
		if m.cursor >= len(m.members) {
			return m, nil
		}
		taskID, membreID := m.taskID, m.members[m.cursor].ID
		return m, func() tea.Msg {
			return ChosenMsg{TaskID: taskID, MembreID: membreID}
		}
	}

	return m, nil
}

// View renders the assignment picker.
func (m Model) View() string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render("Assigner à"), ""}
	if len(m.members) == 0 {
		lines = append(lines, theme.HelpStyle.Render("Aucun membre actif."))
	}
	for i, member := range m.members {
		line := member.Nom + "  " + theme.RoleStyle(member.Role).Render(member.Role.Label())
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", theme.HelpStyle.Render("enter assigner | esc annuler"))

	return theme.DetailPanelStyle.
		Width(m.width / 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SetSize updates the picker dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
