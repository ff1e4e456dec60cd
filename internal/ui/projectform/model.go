// Package projectform is the create/edit form for projects.
package projectform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/model"
)

// CreatedMsg is dispatched when a new project is submitted.
type CreatedMsg struct {
	Project model.Project
}

// UpdatedMsg is dispatched when an existing project is submitted.
type UpdatedMsg struct {
	Project model.Project
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	nom         string
	description string
	dateDebut   string
	dateFin     string
	statut      string
}

// Model is the Bubble Tea model for the project create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   int64
	width    int
	height   int
}

// New creates a new project form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{statut: model.StatusEnAttente},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new project.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.fb.nom = ""
	m.fb.description = ""
	m.fb.dateDebut = ""
	m.fb.dateFin = ""
	m.fb.statut = model.StatusEnAttente
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing project.
func (m *Model) StartEdit(p model.Project) tea.Cmd {
	m.editMode = true
	m.editID = p.ID
	m.fb.nom = p.Nom
	m.fb.description = p.Description
	m.fb.dateDebut = formatDate(p.DateDebut)
	m.fb.dateFin = formatDate(p.DateFin)
	m.fb.statut = p.Statut
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the project form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the project form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Nouveau projet"
	if m.editMode {
		titleText = "Modifier le projet"
	}

	titleStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(titleStyle.Render(titleText) + "\n" + m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	statusOpts := make([]huh.Option[string], len(model.ProjectStatuses))
	for i, st := range model.ProjectStatuses {
		statusOpts[i] = huh.NewOption(st, st)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nom").
				Placeholder("Nom du projet").
				Value(&m.fb.nom).
				Validate(validateRequired("Le nom")),
			huh.NewText().
				Title("Description").
				Placeholder("Description du projet...").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Date de début").
				Placeholder("AAAA-MM-JJ").
				Value(&m.fb.dateDebut).
				Validate(validateDate),
			huh.NewInput().
				Title("Date de fin").
				Placeholder("AAAA-MM-JJ").
				Value(&m.fb.dateFin).
				Validate(m.validateEndDate),
			huh.NewSelect[string]().
				Title("Statut").
				Options(statusOpts...).
				Value(&m.fb.statut),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	project := model.Project{
		Nom:         m.fb.nom,
		Description: m.fb.description,
		Statut:      m.fb.statut,
	}
	project.DateDebut, _ = time.Parse("2006-01-02", m.fb.dateDebut)
	project.DateFin, _ = time.Parse("2006-01-02", m.fb.dateFin)

	if m.editMode {
		project.ID = m.editID
		return func() tea.Msg { return UpdatedMsg{Project: project} }
	}
	return func() tea.Msg { return CreatedMsg{Project: project} }
}

// validateEndDate also enforces the date ordering so the user gets the
// error on the field instead of a rejected submit.
func (m *Model) validateEndDate(s string) error {
	if err := validateDate(s); err != nil {
		return err
	}
	debut, err := time.Parse("2006-01-02", strings.TrimSpace(m.fb.dateDebut))
	if err != nil {
		return nil
	}
	fin, _ := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err := model.ValidateDateRange(debut, fin); err != nil {
		return fmt.Errorf("la date de fin doit être postérieure à la date de début")
	}
	return nil
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s est obligatoire", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("format de date invalide, utilisez AAAA-MM-JJ")
	}
	return nil
}
