// Package projectdetail renders one project: its description, member
// roster, tasks, and shared files. Mutating actions are emitted as
// request messages; the root model decides whether the member's role
// allows them before calling the backend.
package projectdetail

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/api"
	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/theme"
)

// BackMsg is sent when the user leaves the project detail view.
type BackMsg struct{}

// AddMemberRequestMsg asks for a member to be added to the project.
type AddMemberRequestMsg struct {
	ProjectID int64
	MembreID  int64
}

// RemoveMemberRequestMsg asks for a member to be removed from the project.
type RemoveMemberRequestMsg struct {
	ProjectID int64
	MembreID  int64
}

// DeleteFileRequestMsg asks for a shared file to be deleted.
type DeleteFileRequestMsg struct {
	FileID int64
}

// RequestMembersMsg asks the root model for the members that can be
// added to the project, which then arrive via SetAvailableMembers.
type RequestMembersMsg struct {
	ProjectID int64
}

// OpenTaskMsg asks to open a task of this project in the task view.
type OpenTaskMsg struct {
	TaskID int64
}

// tab identifies a section of the detail view.
type tab int

const (
	tabInfo tab = iota
	tabMembres
	tabTaches
	tabFichiers
)

var tabTitles = []string{"Infos", "Membres", "Tâches", "Fichiers"}

// Model is the project detail view component.
type Model struct {
	project   *model.Project
	files     []model.File
	available []api.AvailableMember
	picking   bool // choosing an available member to add
	keys      *keys.KeyMap
	activeTab tab
	cursor    int
	canManage bool
	width     int
	height    int
}

// New creates a new project detail model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetProject installs the project to display and resets the cursor.
func (m *Model) SetProject(p *model.Project) {
	m.project = p
	m.activeTab = tabInfo
	m.cursor = 0
	m.picking = false
}

// SetFiles installs the project's shared files.
func (m *Model) SetFiles(files []model.File) {
	m.files = files
}

// SetAvailableMembers installs the members that can still be added and
// switches to the picker.
func (m *Model) SetAvailableMembers(members []api.AvailableMember) {
	m.available = members
	m.picking = true
	m.cursor = 0
}

// SetCanManage controls whether management keys are offered. The root
// model derives this from the permission table.
func (m *Model) SetCanManage(can bool) {
	m.canManage = can
}

// Project returns the displayed project.
func (m Model) Project() *model.Project {
	return m.project
}

// Update handles messages for the project detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.project == nil {
		return m, nil
	}

	if m.picking {
		return m.updatePicker(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(keyMsg, m.keys.Tab):
		m.activeTab = tab((int(m.activeTab) + 1) % len(tabTitles))
		m.cursor = 0

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < m.tabItemCount()-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Select):
		if m.activeTab == tabTaches && m.cursor < len(m.project.Taches) {
			taskID := m.project.Taches[m.cursor].ID
			return m, func() tea.Msg { return OpenTaskMsg{TaskID: taskID} }
		}

	case key.Matches(keyMsg, m.keys.Members):
		if m.canManage && m.activeTab == tabMembres {
			projectID := m.project.ID
			return m, func() tea.Msg {
				return RequestMembersMsg{ProjectID: projectID}
			}
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if !m.canManage {
			return m, nil
		}
		switch m.activeTab {
		case tabMembres:
			if m.cursor < len(m.project.Membres) {
				projectID := m.project.ID
				membreID := m.project.Membres[m.cursor].ID
				return m, func() tea.Msg {
					return RemoveMemberRequestMsg{ProjectID: projectID, MembreID: membreID}
				}
			}
		case tabFichiers:
			if m.cursor < len(m.files) {
				fileID := m.files[m.cursor].ID
				return m, func() tea.Msg {
					return DeleteFileRequestMsg{FileID: fileID}
				}
			}
		}
	}

	return m, nil
}

// updatePicker handles keys while choosing a member to add.
func (m Model) updatePicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.picking = false
		m.cursor = 0

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.available)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(m.available) {
			projectID := m.project.ID
			membreID := m.available[m.cursor].ID
			m.picking = false
			return m, func() tea.Msg {
				return AddMemberRequestMsg{ProjectID: projectID, MembreID: membreID}
			}
		}
	}

	return m, nil
}

func (m Model) tabItemCount() int {
	switch m.activeTab {
	case tabMembres:
		return len(m.project.Membres)
	case tabTaches:
		return len(m.project.Taches)
	case tabFichiers:
		return len(m.files)
	default:
		return 0
	}
}

// View renders the project detail view.
func (m Model) View() string {
	if m.project == nil {
		return theme.HelpStyle.Render("Chargement du projet...")
	}

	if m.picking {
		return m.renderPicker()
	}

	header := m.renderTabs()
	var body string
	switch m.activeTab {
	case tabInfo:
		body = m.renderInfo()
	case tabMembres:
		body = m.renderMembres()
	case tabTaches:
		body = m.renderTaches()
	case tabFichiers:
		body = m.renderFichiers()
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, title := range tabTitles {
		style := theme.ListItemStyle
		if tab(i) == m.activeTab {
			style = theme.SelectedItemStyle
		}
		rendered = append(rendered, style.Render(title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderInfo() string {
	p := m.project
	title := lipgloss.NewStyle().Bold(true).Render(p.Nom)
	statusBadge := theme.StatusStyle(p.Statut).Render(p.Statut)

	lines := []string{
		title,
		statusBadge,
		"",
		p.Description,
		"",
		theme.HelpStyle.Render(fmt.Sprintf("Du %s au %s",
			p.DateDebut.Format("02/01/2006"),
			p.DateFin.Format("02/01/2006"))),
		theme.HelpStyle.Render(fmt.Sprintf("%d membres, %d tâches",
			len(p.Membres), len(p.Taches))),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderMembres() string {
	if len(m.project.Membres) == 0 {
		return theme.HelpStyle.Render("Aucun membre.")
	}

	var lines []string
	for i, mem := range m.project.Membres {
		roleBadge := theme.RoleStyle(mem.Role).Render(mem.Role.Label())
		line := fmt.Sprintf("%s %s", roleBadge, mem.Nom)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if m.canManage {
		lines = append(lines, theme.HelpStyle.Render("M ajouter | x retirer"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderTaches() string {
	if len(m.project.Taches) == 0 {
		return theme.HelpStyle.Render("Aucune tâche.")
	}

	var lines []string
	for i, t := range m.project.Taches {
		statusBadge := theme.StatusStyle(t.Statut).Render(t.Statut)
		priBadge := theme.PriorityStyle(t.Priorite).Render(t.Priorite)
		line := fmt.Sprintf("%s %s %s", statusBadge, priBadge, t.Nom)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderFichiers() string {
	if len(m.files) == 0 {
		return theme.HelpStyle.Render("Aucun fichier partagé.")
	}

	var lines []string
	for i, f := range m.files {
		date := theme.HelpStyle.Render(f.DatePartage.Format("02/01/2006"))
		line := fmt.Sprintf("%s %s", f.Nom, date)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderPicker() string {
	title := lipgloss.NewStyle().Bold(true).Render("Ajouter un membre")

	lines := []string{title}
	if len(m.available) == 0 {
		lines = append(lines, theme.HelpStyle.Render("Aucun membre disponible."))
	}
	for i, am := range m.available {
		line := am.Nom
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, theme.HelpStyle.Render("enter ajouter | esc annuler"))

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
