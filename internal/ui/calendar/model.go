// Package calendar renders the month grid of task deadlines. Days are
// colored by the urgency of their busiest task and a banner warns
// about late or imminent deadlines on the selected day.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/cache"
	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/theme"
	"github.com/promanager/promanager/internal/view"
)

// LoadedMsg is sent when the month's calendar data has been computed.
type LoadedMsg struct {
	Calendar  view.Calendar
	Summaries []view.ProjectSummary
}

var monthNames = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var weekdayHeader = [...]string{"Lu", "Ma", "Me", "Je", "Ve", "Sa", "Di"}

// Model is the calendar view component.
type Model struct {
	cache     cache.Cache
	keys      *keys.KeyMap
	selected  time.Time
	calendar  view.Calendar
	summaries []view.ProjectSummary
	loaded    bool
	width     int
	height    int
}

// New creates a calendar model opened on today.
func New(c cache.Cache, k *keys.KeyMap, width, height int) Model {
	now := time.Now()
	return Model{
		cache:    c,
		keys:     k,
		selected: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
		width:    width,
		height:   height,
	}
}

// Load recomputes the calendar for the selected day from cached tasks.
func (m Model) Load() tea.Cmd {
	c, selected := m.cache, m.selected
	return func() tea.Msg {
		tasks, err := c.Tasks(context.Background(), cache.TaskFilter{})
		if err != nil {
			return LoadedMsg{Calendar: view.ComputeCalendar(nil, selected, time.Now())}
		}
		return LoadedMsg{
			Calendar:  view.ComputeCalendar(tasks, selected, time.Now()),
			Summaries: view.SummarizeByProject(tasks),
		}
	}
}

// Update handles messages for the calendar view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.calendar = msg.Calendar
		m.summaries = msg.Summaries
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Left):
			return m.moveTo(m.selected.AddDate(0, 0, -1))
		case key.Matches(msg, m.keys.Right):
			return m.moveTo(m.selected.AddDate(0, 0, 1))
		case key.Matches(msg, m.keys.Up):
			return m.moveTo(m.selected.AddDate(0, 0, -7))
		case key.Matches(msg, m.keys.Down):
			return m.moveTo(m.selected.AddDate(0, 0, 7))
		}
	}

	return m, nil
}

// moveTo changes the selected day. The notification is tied to the
// selection, so the calendar is recomputed on every move.
func (m Model) moveTo(day time.Time) (Model, tea.Cmd) {
	m.selected = day
	return m, m.Load()
}

// Selected returns the day the cursor is on.
func (m Model) Selected() time.Time {
	return m.selected
}

// View renders the calendar view.
func (m Model) View() string {
	if !m.loaded {
		return theme.HelpStyle.Render("Chargement du calendrier...")
	}

	title := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("%s %d", monthNames[m.selected.Month()-1], m.selected.Year()))

	sections := []string{title}
	if banner := m.renderBanner(); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections, "", m.renderGrid(), "", m.renderDayDetail())
	if recap := m.renderSummary(); recap != "" {
		sections = append(sections, recap)
	}
	sections = append(sections, "", theme.HelpStyle.Render("←/→ jour | ↑/↓ semaine"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderBanner() string {
	n := m.calendar.Notification()
	switch n.Kind {
	case view.NotificationLate:
		return theme.ErrorBannerStyle.Render(
			fmt.Sprintf(" %d tâche(s) en retard ce jour ", n.Count))
	case view.NotificationDueSoon:
		return lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "166", Dark: "214"}).
			Bold(true).
			Render(fmt.Sprintf("%d tâche(s) proche(s) de l'échéance", n.Count))
	}
	return ""
}

func (m Model) renderGrid() string {
	header := ""
	for _, wd := range weekdayHeader {
		header += lipgloss.NewStyle().Bold(true).Width(4).Render(wd)
	}

	first := time.Date(m.selected.Year(), m.selected.Month(), 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	rows := []string{header}
	row := ""
	// Monday-first grid; pad the first week.
	col := (int(first.Weekday()) + 6) % 7
	for i := 0; i < col; i++ {
		row += lipgloss.NewStyle().Width(4).Render("")
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(m.selected.Year(), m.selected.Month(), day, 0, 0, 0, 0, time.Local)
		style := theme.DayStyle(m.calendar.DayClassFor(date)).Width(4)
		if day == m.selected.Day() {
			style = style.Reverse(true)
		}
		row += style.Render(fmt.Sprintf("%2d", day))
		col++
		if col == 7 {
			rows = append(rows, row)
			row = ""
			col = 0
		}
	}
	if row != "" {
		rows = append(rows, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderDayDetail() string {
	dayTasks := m.calendar.TasksOn(m.selected)
	if len(dayTasks) == 0 {
		return theme.HelpStyle.Render(
			fmt.Sprintf("Aucune échéance le %s", m.selected.Format("02/01/2006")))
	}

	lines := []string{lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("Échéances du %s", m.selected.Format("02/01/2006")))}
	for _, t := range dayTasks {
		line := fmt.Sprintf("%s %s %s",
			theme.StatusStyle(t.Statut).Render("●"),
			theme.PriorityStyle(t.Priorite).Render(t.Priorite),
			t.Nom)
		if t.ProjetNom != "" {
			line += theme.HelpStyle.Render(" [" + t.ProjetNom + "]")
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderSummary() string {
	if len(m.summaries) == 0 {
		return ""
	}

	lines := []string{"", lipgloss.NewStyle().Bold(true).Render("Par projet")}
	for _, s := range m.summaries {
		lines = append(lines, theme.HelpStyle.Render(
			fmt.Sprintf("%s : %d tâches, %d en cours, %d terminées, %d en retard, %d urgentes",
				s.Nom, s.Total, s.EnCours, s.Terminees, s.EnRetard, s.Urgentes)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
