// Package sidebar renders the role-driven navigation menu. The entries
// come fully formed from the menu package; nothing here looks at the
// role beyond handing it over.
package sidebar

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/menu"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/theme"
)

// NavigateMsg is dispatched when the user activates a menu entry.
type NavigateMsg struct {
	Route menu.Route
}

// Model is the sidebar navigation component.
type Model struct {
	sections []menu.Section
	links    []menu.Link // flattened, in display order
	cursor   int
	active   menu.Route
	focused  bool
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a sidebar for the given role.
func New(role model.Role, k *keys.KeyMap, width, height int) Model {
	m := Model{
		keys:   k,
		width:  width,
		height: height,
	}
	m.SetRole(role)
	return m
}

// SetRole rebuilds the menu for a new role and resets the cursor.
func (m *Model) SetRole(role model.Role) {
	m.sections = menu.Build(role)
	m.links = nil
	for _, s := range m.sections {
		m.links = append(m.links, s.Links...)
	}
	m.cursor = 0
	if len(m.links) > 0 {
		m.active = m.links[0].Route
	}
}

// SetActive highlights the entry for the given route without moving
// the cursor.
func (m *Model) SetActive(route menu.Route) {
	m.active = route
	for i, l := range m.links {
		if l.Route == route {
			m.cursor = i
			return
		}
	}
}

// Focus gives the sidebar keyboard focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the sidebar has keyboard focus.
func (m Model) Focused() bool { return m.focused }

// Update handles messages for the sidebar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.links)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Select):
		if m.cursor < len(m.links) {
			route := m.links[m.cursor].Route
			m.active = route
			return m, func() tea.Msg {
				return NavigateMsg{Route: route}
			}
		}
	}

	return m, nil
}

// View renders the sidebar sections.
func (m Model) View() string {
	sectionTitle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorGray).
		MarginTop(1)

	var lines []string
	idx := 0
	for _, s := range m.sections {
		lines = append(lines, sectionTitle.Render(s.Title))
		for _, l := range s.Links {
			label := l.Label
			switch {
			case m.focused && idx == m.cursor:
				label = theme.SelectedItemStyle.Render(label)
			case l.Route == m.active:
				label = theme.ListItemStyle.Bold(true).Foreground(theme.ColorBlue).Render(label)
			default:
				label = theme.ListItemStyle.Render(label)
			}
			lines = append(lines, label)
			idx++
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	borderColor := theme.ColorBorder
	if m.focused {
		borderColor = theme.ColorBlue
	}

	return lipgloss.NewStyle().
		Width(m.width - 2).
		Height(m.height - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(content)
}

// SetSize updates the sidebar dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
