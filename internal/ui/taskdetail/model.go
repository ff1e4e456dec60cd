// Package taskdetail renders one task with its comment thread. Comment
// deletion is offered only for the member's own comments; the root
// model enforces the same rule before issuing the call.
package taskdetail

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/theme"
)

// BackMsg is sent when the user leaves the task detail view.
type BackMsg struct{}

// CommentSubmitMsg asks for a new comment on the task.
type CommentSubmitMsg struct {
	TaskID  int64
	Contenu string
}

// CommentDeleteRequestMsg asks for a comment to be deleted.
type CommentDeleteRequestMsg struct {
	Comment model.Comment
}

// StatusChangeRequestMsg asks for the task to advance to the next
// status in the cycle.
type StatusChangeRequestMsg struct {
	TaskID     int64
	NextStatut string
}

// Model is the task detail view component.
type Model struct {
	task     *model.Task
	comments []model.Comment
	memberID int64
	keys     *keys.KeyMap
	cursor   int
	writing  bool
	input    textinput.Model
	width    int
	height   int
}

// New creates a new task detail model. memberID identifies the
// authenticated member, used to mark their own comments.
func New(k *keys.KeyMap, memberID int64, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "votre commentaire..."
	ti.Prompt = "> "
	ti.Width = width - 6

	return Model{
		keys:     k,
		memberID: memberID,
		input:    ti,
		width:    width,
		height:   height,
	}
}

// SetTask installs the task to display.
func (m *Model) SetTask(t *model.Task) {
	m.task = t
	m.cursor = 0
	m.writing = false
}

// SetComments installs the task's comment thread.
func (m *Model) SetComments(comments []model.Comment) {
	m.comments = comments
	if m.cursor >= len(comments) {
		m.cursor = 0
	}
}

// SetMemberID updates the authenticated member id after login.
func (m *Model) SetMemberID(id int64) {
	m.memberID = id
}

// Writing reports whether the comment input has keyboard focus.
func (m Model) Writing() bool {
	return m.writing
}

// Task returns the displayed task.
func (m Model) Task() *model.Task {
	return m.task
}

// Update handles messages for the task detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.task == nil {
		return m, nil
	}

	if m.writing {
		return m.updateInput(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(keyMsg, m.keys.Comment):
		m.writing = true
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(keyMsg, m.keys.Status):
		taskID := m.task.ID
		next := model.NextStatus(m.task.Statut)
		return m, func() tea.Msg {
			return StatusChangeRequestMsg{TaskID: taskID, NextStatut: next}
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.comments)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if m.cursor < len(m.comments) {
			comment := m.comments[m.cursor]
			return m, func() tea.Msg {
				return CommentDeleteRequestMsg{Comment: comment}
			}
		}
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		contenu := m.input.Value()
		m.writing = false
		if contenu == "" {
			return m, nil
		}
		taskID := m.task.ID
		return m, func() tea.Msg {
			return CommentSubmitMsg{TaskID: taskID, Contenu: contenu}
		}

	case "esc":
		m.writing = false
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the task detail view.
func (m Model) View() string {
	if m.task == nil {
		return theme.HelpStyle.Render("Chargement de la tâche...")
	}

	t := m.task
	title := lipgloss.NewStyle().Bold(true).Render(t.Nom)
	statusBadge := theme.StatusStyle(t.Statut).Render(t.Statut)
	priBadge := theme.PriorityStyle(t.Priorite).Render(t.Priorite)

	assignee := "Non assignée"
	if t.AssigneeNom != "" {
		assignee = t.AssigneeNom
	}

	lines := []string{
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, statusBadge, " ", priBadge),
		"",
		t.Description,
		"",
		theme.HelpStyle.Render(fmt.Sprintf("Projet: %s | Assignée à: %s | Échéance: %s",
			t.ProjetNom, assignee, t.DateFin.Format("02/01/2006"))),
		"",
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Commentaires (%d)", len(m.comments))),
	}

	for i, c := range m.comments {
		author := c.AuteurNom
		if c.AuteurID == m.memberID {
			author += " (vous)"
		}
		meta := theme.HelpStyle.Render(fmt.Sprintf("%s, %s", author, c.Date.Format("02/01/2006 15:04")))
		line := fmt.Sprintf("%s %s", meta, c.Contenu)
		if i == m.cursor && !m.writing {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	if m.writing {
		lines = append(lines, "", m.input.View())
	} else {
		lines = append(lines, "", theme.HelpStyle.Render("c commenter | s changer le statut | x supprimer | esc retour"))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}
