// Package taskform is the create/edit form for tasks.
package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/model"
)

// CreatedMsg is dispatched when a new task is submitted.
type CreatedMsg struct {
	Task model.Task
}

// UpdatedMsg is dispatched when an existing task is submitted.
type UpdatedMsg struct {
	Task model.Task
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
	priorite    string
	projetID    int64
	assigneeID  int64
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   int64
	projects []model.Project
	members  []model.Member
	width    int
	height   int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb: &formBindings{
			statut:   model.StatusEnAttente,
			priorite: model.PriorityMoyenne,
		},
		width:  width,
		height: height,
	}
}

// SetOptions sets the selectable projects and assignees. Archived
// members are excluded from the assignment pool.
func (m *Model) SetOptions(projects []model.Project, members []model.Member) {
	m.projects = projects
	m.members = model.ActiveMembers(members)
}

// StartCreate initializes the form for creating a new task. projetID
// preselects the owning project, 0 leaves the selector on its first
// option.
func (m *Model) StartCreate(projetID int64) tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.fb.nom = ""
	m.fb.description = ""
	m.fb.dateDebut = ""
	m.fb.dateFin = ""
	m.fb.statut = model.StatusEnAttente
	m.fb.priorite = model.PriorityMoyenne
	m.fb.projetID = projetID
	m.fb.assigneeID = 0
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(t model.Task) tea.Cmd {
	m.editMode = true
	m.editID = t.ID
	m.fb.nom = t.Nom
	m.fb.description = t.Description
	m.fb.dateDebut = formatDate(t.DateDebut)
	m.fb.dateFin = formatDate(t.DateFin)
	m.fb.statut = t.Statut
	m.fb.priorite = t.Priorite
	m.fb.projetID = t.ProjetID
	if t.AssigneeID != nil {
		m.fb.assigneeID = *t.AssigneeID
	} else {
		m.fb.assigneeID = 0
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
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

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Nouvelle tâche"
	if m.editMode {
		titleText = "Modifier la tâche"
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
	statusOpts := make([]huh.Option[string], len(model.TaskStatuses))
	for i, st := range model.TaskStatuses {
		statusOpts[i] = huh.NewOption(st, st)
	}
	priorityOpts := make([]huh.Option[string], len(model.TaskPriorities))
	for i, p := range model.TaskPriorities {
		priorityOpts[i] = huh.NewOption(p, p)
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Nom").
			Placeholder("Nom de la tâche").
			Value(&m.fb.nom).
			Validate(validateRequired("Le nom")),
		huh.NewText().
			Title("Description").
			Placeholder("Description de la tâche...").
			Value(&m.fb.description),
		m.projectField(),
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
			Title("Priorité").
			Options(priorityOpts...).
			Value(&m.fb.priorite),
		huh.NewSelect[string]().
			Title("Statut").
			Options(statusOpts...).
			Value(&m.fb.statut),
		m.assigneeField(),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) projectField() huh.Field {
	opts := make([]huh.Option[int64], 0, len(m.projects))
	for _, p := range m.projects {
		opts = append(opts, huh.NewOption(p.Nom, p.ID))
	}
	return huh.NewSelect[int64]().
		Title("Projet").
		Options(opts...).
		Value(&m.fb.projetID)
}

func (m *Model) assigneeField() huh.Field {
	opts := []huh.Option[int64]{
		huh.NewOption("Non assignée", int64(0)),
	}
	for _, member := range m.members {
		opts = append(opts, huh.NewOption(member.Nom, member.ID))
	}
	return huh.NewSelect[int64]().
		Title("Assignée à").
		Options(opts...).
		Value(&m.fb.assigneeID)
}

func (m Model) handleSubmit() tea.Cmd {
	task := model.Task{
		Nom:         m.fb.nom,
		Description: m.fb.description,
		Statut:      m.fb.statut,
		Priorite:    m.fb.priorite,
		ProjetID:    m.fb.projetID,
	}
	task.DateDebut, _ = time.Parse("2006-01-02", m.fb.dateDebut)
	task.DateFin, _ = time.Parse("2006-01-02", m.fb.dateFin)
	if m.fb.assigneeID != 0 {
		id := m.fb.assigneeID
		task.AssigneeID = &id
	}

	if m.editMode {
		task.ID = m.editID
		return func() tea.Msg { return UpdatedMsg{Task: task} }
	}
	return func() tea.Msg { return CreatedMsg{Task: task} }
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
