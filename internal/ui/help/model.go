// Package help renders the help overlay: the bindings of the screen
// the user came from, followed by the global shortcuts.
package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/theme"
)

// Context identifies the screen the overlay describes.
type Context int

const (
	ContextGeneral Context = iota
	ContextProjects
	ContextProjectDetail
	ContextTasks
	ContextTaskDetail
	ContextCalendar
	ContextUsers
	ContextFiles
	ContextProfile
)

// Model is the help overlay view.
type Model struct {
	keys    *keys.KeyMap
	help    help.Model
	context Context
	width   int
	height  int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// SetContext selects which screen's bindings to show first.
func (m *Model) SetContext(c Context) {
	m.context = c
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) contextTitle() string {
	switch m.context {
	case ContextProjects:
		return "Projets"
	case ContextProjectDetail:
		return "Détail du projet"
	case ContextTasks:
		return "Tâches"
	case ContextTaskDetail:
		return "Détail de la tâche"
	case ContextCalendar:
		return "Calendrier"
	case ContextUsers:
		return "Utilisateurs"
	case ContextFiles:
		return "Fichiers partagés"
	case ContextProfile:
		return "Profil"
	}
	return ""
}

func (m Model) contextBindings() []key.Binding {
	k := m.keys
	switch m.context {
	case ContextProjects:
		return []key.Binding{k.Select, k.New, k.Edit, k.Delete}
	case ContextProjectDetail:
		return []key.Binding{k.Tab, k.Members, k.Delete, k.Back}
	case ContextTasks:
		return []key.Binding{k.Select, k.New, k.Edit, k.Status, k.Assign, k.Filter, k.Search}
	case ContextTaskDetail:
		return []key.Binding{k.Comment, k.Status, k.Delete, k.Back}
	case ContextCalendar:
		return []key.Binding{k.Left, k.Right, k.Up, k.Down}
	case ContextUsers:
		return []key.Binding{k.Archive}
	case ContextFiles:
		return []key.Binding{k.Select, k.New, k.Delete, k.Back}
	case ContextProfile:
		return []key.Binding{k.Edit}
	}
	return nil
}

func renderBindings(bindings []key.Binding) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue).Width(12)
	lines := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, keyStyle.Render(h.Key)+theme.HelpStyle.Render(h.Desc))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorGray).
		MarginTop(1)

	parts := []string{titleStyle.Render("Raccourcis clavier")}

	if bindings := m.contextBindings(); len(bindings) > 0 {
		parts = append(parts,
			sectionStyle.Render(m.contextTitle()),
			renderBindings(bindings),
		)
	}

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	parts = append(parts,
		sectionStyle.Render("Général"),
		m.help.View(m.keys),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
