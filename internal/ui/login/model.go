// Package login is the authentication screen: a login form with an
// optional switch to account registration. New accounts always start
// with the MEMBRE role.
package login

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/api"
	"github.com/promanager/promanager/internal/theme"
)

// LoginSuccessMsg is dispatched when a login round-trip succeeds.
type LoginSuccessMsg struct {
	Creds api.Credentials
}

// RegisteredMsg is dispatched when account creation succeeds; the user
// still has to log in.
type RegisteredMsg struct {
	Username string
}

// errMsg carries a failed login or registration back to the form.
type errMsg struct {
	err error
}

// loginTimeout bounds the login and register round-trips.
const loginTimeout = 15 * time.Second

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	username string
	email    string
	password string
}

// Model is the Bubble Tea model for the login screen.
type Model struct {
	client       *api.Client
	form         *huh.Form
	fb           *formBindings
	registerMode bool
	submitting   bool
	errMessage   string
	infoMessage  string
	width        int
	height       int
}

// New creates a new login model.
func New(client *api.Client, width, height int) Model {
	return Model{
		client: client,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Init builds and starts the login form.
func (m *Model) Init() tea.Cmd {
	return m.startForm()
}

func (m *Model) startForm() tea.Cmd {
	m.fb.password = ""
	m.submitting = false
	m.form = m.buildForm()
	return m.form.Init()
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Nom d'utilisateur").
			Value(&m.fb.username).
			Validate(validateRequired("nom d'utilisateur")),
	}
	if m.registerMode {
		fields = append(fields,
			huh.NewInput().
				Title("Email").
				Value(&m.fb.email).
				Validate(validateRequired("email")),
		)
	}
	fields = append(fields,
		huh.NewInput().
			Title("Mot de passe").
			EchoMode(huh.EchoModePassword).
			Value(&m.fb.password).
			Validate(validateRequired("mot de passe")),
	)

	return huh.NewForm(huh.NewGroup(fields...)).
		WithWidth(m.formWidth()).
		WithShowHelp(false)
}

// Update handles messages for the login screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		m.errMessage = msg.err.Error()
		return m, m.startForm()

	case RegisteredMsg:
		m.registerMode = false
		m.errMessage = ""
		m.infoMessage = fmt.Sprintf("Compte %s créé, connectez-vous.", msg.Username)
		return m, m.startForm()

	case tea.KeyMsg:
		if msg.String() == "ctrl+r" && !m.submitting {
			m.registerMode = !m.registerMode
			m.errMessage = ""
			m.infoMessage = ""
			return m, m.startForm()
		}
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted && !m.submitting {
		m.submitting = true
		m.errMessage = ""
		if m.registerMode {
			return m, m.submitRegister()
		}
		return m, m.submitLogin()
	}

	return m, cmd
}

func (m Model) submitLogin() tea.Cmd {
	client := m.client
	username := strings.TrimSpace(m.fb.username)
	password := m.fb.password
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()

		creds, err := client.Login(ctx, username, password)
		if err != nil {
			return errMsg{err: err}
		}
		return LoginSuccessMsg{Creds: creds}
	}
}

func (m Model) submitRegister() tea.Cmd {
	client := m.client
	username := strings.TrimSpace(m.fb.username)
	email := strings.TrimSpace(m.fb.email)
	password := m.fb.password
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()

		if err := client.Register(ctx, username, email, password); err != nil {
			return errMsg{err: err}
		}
		return RegisteredMsg{Username: username}
	}
}

// View renders the login screen.
func (m Model) View() string {
	titleText := "Connexion"
	if m.registerMode {
		titleText = "Créer un compte"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var parts []string
	parts = append(parts, titleStyle.Render(titleText))

	if m.errMessage != "" {
		parts = append(parts, theme.ErrorBannerStyle.Render(m.errMessage))
	}
	if m.infoMessage != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ColorGreen).Render(m.infoMessage))
	}

	if m.submitting {
		parts = append(parts, theme.HelpStyle.Render("Connexion en cours..."))
	} else if m.form != nil {
		parts = append(parts, m.form.View())
	}

	hint := "ctrl+r créer un compte"
	if m.registerMode {
		hint = "ctrl+r retour à la connexion"
	}
	parts = append(parts, theme.HelpStyle.Render(hint))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.DetailPanelStyle.Render(content))
}

// SetSize updates the login screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width / 2
	if w < 40 {
		w = 40
	}
	return w
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("le champ %s est requis", fieldName)
		}
		return nil
	}
}
