// Package profile shows the authenticated member's profile and lets
// them edit their name and email. Role changes go through an
// administrator, the form never exposes the role field.
package profile

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/api"
	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/theme"
)

// UpdateRequestMsg asks for the profile to be patched server-side.
type UpdateRequestMsg struct {
	Patch api.ProfilePatch
}

// formBindings holds the form field values. Kept on the heap so the
// huh form can write through the pointers across Update copies.
type formBindings struct {
	nom   string
	email string
}

// Model is the profile view component.
type Model struct {
	profile  *api.Profile
	keys     *keys.KeyMap
	editing  bool
	form     *huh.Form
	bindings *formBindings
	width    int
	height   int
}

// New creates a new profile model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{keys: k, width: width, height: height}
}

// SetProfile installs the profile to display.
func (m *Model) SetProfile(p *api.Profile) {
	m.profile = p
}

// Editing reports whether the edit form has keyboard focus.
func (m Model) Editing() bool {
	return m.editing
}

// Profile returns the displayed profile.
func (m Model) Profile() *api.Profile {
	return m.profile
}

func (m *Model) startEdit() tea.Cmd {
	m.bindings = &formBindings{
		nom:   m.profile.Nom,
		email: m.profile.Email,
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nom").
				Value(&m.bindings.nom).
				Validate(required("le nom")),
			huh.NewInput().
				Title("Email").
				Value(&m.bindings.email).
				Validate(required("l'email")),
		),
	).WithWidth(m.width - 8).WithShowHelp(true)
	m.editing = true
	return m.form.Init()
}

func required(label string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s est obligatoire", label)
		}
		return nil
	}
}

// Update handles messages for the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.editing {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.profile == nil {
		return m, nil
	}

	if key.Matches(keyMsg, m.keys.Edit) {
		return m, m.startEdit()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.editing = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.editing = false
		patch := api.ProfilePatch{Nom: m.bindings.nom, Email: m.bindings.email}
		m.form = nil
		return m, func() tea.Msg { return UpdateRequestMsg{Patch: patch} }
	}

	return m, cmd
}

// View renders the profile view.
func (m Model) View() string {
	if m.profile == nil {
		return theme.HelpStyle.Render("Chargement du profil...")
	}

	if m.editing && m.form != nil {
		return theme.DetailPanelStyle.Width(m.width - 4).Render(m.form.View())
	}

	p := m.profile
	role := theme.RoleStyle(p.Role).Render(p.Role.Label())

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(p.Nom),
		role,
		"",
		fmt.Sprintf("Nom d'utilisateur : %s", p.Username),
		fmt.Sprintf("Email : %s", p.Email),
		fmt.Sprintf("Membre depuis : %s", p.DateCreation),
		"",
		lipgloss.NewStyle().Bold(true).Render("Statistiques"),
		fmt.Sprintf("Projets : %d", p.ProjetsCount),
		fmt.Sprintf("Tâches terminées : %d", p.TachesTerminees),
		"",
		theme.HelpStyle.Render("e modifier"),
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
