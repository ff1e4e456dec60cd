// Package projectlist renders the projects visible to the member. The
// backend scopes the list per role; locally it is whatever the cache
// holds.
package projectlist

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/cache"
	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/theme"
)

// ProjectsLoadedMsg is sent when projects have been loaded from the cache.
type ProjectsLoadedMsg struct {
	Projects []model.Project
}

// SelectedProjectMsg is sent when a user opens a project.
type SelectedProjectMsg struct {
	ProjectID int64
}

// DeleteRequestMsg asks for the selected project to be deleted.
type DeleteRequestMsg struct {
	ProjectID int64
}

// EditRequestMsg asks to open the edit form for the selected project.
type EditRequestMsg struct {
	Project model.Project
}

// projectItem wraps a model.Project for bubbles/list.
type projectItem struct {
	project model.Project
}

func (i projectItem) FilterValue() string { return i.project.Nom }

// projectDelegate renders one project per line.
type projectDelegate struct{}

func (d projectDelegate) Height() int                             { return 1 }
func (d projectDelegate) Spacing() int                            { return 0 }
func (d projectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(projectItem)
	if !ok {
		return
	}

	p := pi.project
	statusBadge := theme.StatusStyle(p.Statut).Render(p.Statut)

	dates := ""
	if !p.DateDebut.IsZero() {
		dates = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(fmt.Sprintf(" %s → %s",
				p.DateDebut.Format("02/01/2006"),
				p.DateFin.Format("02/01/2006")))
	}

	line := fmt.Sprintf("%s %s%s", statusBadge, p.Nom, dates)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// Model is the project list view component.
type Model struct {
	list   list.Model
	cache  cache.Cache
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new project list model.
func New(c cache.Cache, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, projectDelegate{}, width, height-2)
	l.Title = "Projets"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		cache:  c,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns a command that loads the projects.
func (m Model) Init() tea.Cmd {
	return m.LoadProjects()
}

// LoadProjects returns a tea.Cmd that reads the cached projects.
func (m Model) LoadProjects() tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		projects, err := c.Projects(context.Background())
		if err != nil {
			return ProjectsLoadedMsg{}
		}
		return ProjectsLoadedMsg{Projects: projects}
	}
}

// SelectedProject returns the project under the cursor.
func (m Model) SelectedProject() (model.Project, bool) {
	item, ok := m.list.SelectedItem().(projectItem)
	if !ok {
		return model.Project{}, false
	}
	return item.project, true
}

// Update handles messages for the project list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProjectsLoadedMsg:
		items := make([]list.Item, len(msg.Projects))
		for i, p := range msg.Projects {
			items[i] = projectItem{project: p}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Select):
			p, ok := m.SelectedProject()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return SelectedProjectMsg{ProjectID: p.ID}
			}

		case key.Matches(msg, m.keys.Edit):
			p, ok := m.SelectedProject()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return EditRequestMsg{Project: p}
			}

		case key.Matches(msg, m.keys.Delete):
			p, ok := m.SelectedProject()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return DeleteRequestMsg{ProjectID: p.ID}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the project list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Aucun projet.\nAppuyez sur r pour rafraîchir.")
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
