// Package adminusers is the administrator screen listing every member,
// archived ones included, with archive and restore actions.
package adminusers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/cache"
	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/theme"
)

// MembersLoadedMsg is sent when the member list has been read from the
// cache.
type MembersLoadedMsg struct {
	Members []model.Member
}

// ArchiveRequestMsg asks for a member to be archived.
type ArchiveRequestMsg struct {
	MembreID int64
}

// UnarchiveRequestMsg asks for an archived member to be restored.
type UnarchiveRequestMsg struct {
	MembreID int64
}

// Model is the member administration view component.
type Model struct {
	cache   cache.Cache
	keys    *keys.KeyMap
	members []model.Member
	cursor  int
	width   int
	height  int
}

// New creates a new member administration model.
func New(c cache.Cache, k *keys.KeyMap, width, height int) Model {
	return Model{cache: c, keys: k, width: width, height: height}
}

// LoadMembers reads all members from the cache, archived included.
func (m Model) LoadMembers() tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		members, err := c.Members(context.Background(), true)
		if err != nil {
			return MembersLoadedMsg{}
		}
		return MembersLoadedMsg{Members: members}
	}
}

// Update handles messages for the member administration view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MembersLoadedMsg:
		m.members = msg.Members
		if m.cursor >= len(m.members) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.members)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Archive):
			if m.cursor >= len(m.members) {
				return m, nil
			}
			member := m.members[m.cursor]
			if member.IsActive {
				return m, func() tea.Msg { return ArchiveRequestMsg{MembreID: member.ID} }
			}
			return m, func() tea.Msg { return UnarchiveRequestMsg{MembreID: member.ID} }
		}
	}

	return m, nil
}

// View renders the member administration view.
func (m Model) View() string {
	if len(m.members) == 0 {
		return theme.HelpStyle.Render("Aucun membre.")
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Render("Membres"), ""}
	for i, member := range m.members {
		role := theme.RoleStyle(member.Role).Render(member.Role.Label())
		line := fmt.Sprintf("%s  %s  %s", member.Nom, role, theme.HelpStyle.Render(member.Email))
		if !member.IsActive {
			archived := "archivé"
			if member.ArchivedAt != nil {
				archived = fmt.Sprintf("archivé le %s", member.ArchivedAt.Format("02/01/2006"))
			}
			line += " " + theme.ErrorBannerStyle.Render(" "+archived+" ")
		}
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", theme.HelpStyle.Render("A archiver/restaurer"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
