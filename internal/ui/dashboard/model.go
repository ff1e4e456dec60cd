// Package dashboard renders the member's dashboard: status counters,
// completion rate, recent projects, and the tasks needing attention.
// All aggregates come from the view package over cached entities.
package dashboard

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/cache"
	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/theme"
	"github.com/promanager/promanager/internal/view"
)

// StatsLoadedMsg is sent when dashboard aggregates have been computed
// from the cache.
type StatsLoadedMsg struct {
	Stats view.DashboardStats
}

// Model is the dashboard view component.
type Model struct {
	cache  cache.Cache
	keys   *keys.KeyMap
	stats  view.DashboardStats
	loaded bool
	width  int
	height int
}

// New creates a new dashboard model.
func New(c cache.Cache, k *keys.KeyMap, width, height int) Model {
	return Model{
		cache:  c,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns a command that computes the initial aggregates.
func (m Model) Init() tea.Cmd {
	return m.LoadStats()
}

// LoadStats returns a tea.Cmd that reads the cache and recomputes the
// dashboard aggregates.
func (m Model) LoadStats() tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		ctx := context.Background()
		projects, err := c.Projects(ctx)
		if err != nil {
			return StatsLoadedMsg{}
		}
		tasks, err := c.Tasks(ctx, cache.TaskFilter{})
		if err != nil {
			return StatsLoadedMsg{}
		}
		return StatsLoadedMsg{Stats: view.ComputeDashboard(projects, tasks)}
	}
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if stats, ok := msg.(StatsLoadedMsg); ok {
		m.stats = stats.Stats
		m.loaded = true
	}
	return m, nil
}

// View renders the dashboard panels.
func (m Model) View() string {
	if !m.loaded {
		return theme.HelpStyle.Render("Chargement du tableau de bord...")
	}

	counters := m.renderCounters()
	watch := m.renderTaskPanel("Tâches à suivre", m.stats.TachesASuivre)
	urgent := m.renderTaskPanel("Tâches urgentes", m.stats.TachesUrgentes)
	recent := m.renderRecentProjects()

	top := lipgloss.JoinHorizontal(lipgloss.Top, counters, recent)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, watch, urgent)

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (m Model) renderCounters() string {
	title := lipgloss.NewStyle().Bold(true).Render("Vue d'ensemble")

	s := m.stats
	lines := []string{
		title,
		fmt.Sprintf("Projets          %d", s.ProjetsCount),
		fmt.Sprintf("Tâches           %d", s.TachesTotal),
		fmt.Sprintf("En attente       %d", s.TachesEnAttente),
		fmt.Sprintf("En cours         %d", s.TachesEnCours),
		fmt.Sprintf("Terminées        %d", s.TachesTerminees),
		fmt.Sprintf("En retard        %d", s.TachesEnRetard),
		fmt.Sprintf("Avancement       %.0f%%", s.CompletionRate*100),
	}

	return theme.BorderStyle.
		Width(m.panelWidth()).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderRecentProjects() string {
	title := lipgloss.NewStyle().Bold(true).Render("Projets récents")

	lines := []string{title}
	if len(m.stats.ProjetsRecents) == 0 {
		lines = append(lines, theme.HelpStyle.Render("Aucun projet"))
	}
	for _, p := range m.stats.ProjetsRecents {
		badge := theme.StatusStyle(p.Statut).Render(p.Statut)
		lines = append(lines, fmt.Sprintf("%s %s", badge, p.Nom))
	}

	return theme.BorderStyle.
		Width(m.panelWidth()).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderTaskPanel(titleText string, tasks []model.Task) string {
	title := lipgloss.NewStyle().Bold(true).Render(titleText)

	lines := []string{title}
	if len(tasks) == 0 {
		lines = append(lines, theme.HelpStyle.Render("Rien à signaler"))
	}
	for _, t := range tasks {
		pri := theme.PriorityStyle(t.Priorite).Render(t.Priorite)
		due := ""
		if !t.DateFin.IsZero() {
			due = theme.HelpStyle.Render(" " + t.DateFin.Format("02 Jan"))
		}
		lines = append(lines, fmt.Sprintf("%s %s%s", pri, t.Nom, due))
	}

	return theme.BorderStyle.
		Width(m.panelWidth()).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) panelWidth() int {
	w := m.width/2 - 2
	if w < 30 {
		w = 30
	}
	return w
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
