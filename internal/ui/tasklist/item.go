package tasklist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Nom }

// Title returns the task name for the list.
func (i TaskItem) Title() string { return i.Task.Nom }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	return fmt.Sprintf("%s | %s | %s", i.Task.ProjetNom, i.Task.Statut, i.Task.Priorite)
}

// ItemDelegate implements list.ItemDelegate for rendering task lines.
type ItemDelegate struct {
	// stale is shared by reference with the tasklist Model; when set,
	// rows carry a marker showing the data may be outdated.
	stale *bool
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	taskItem, ok := item.(TaskItem)
	if !ok {
		return
	}

	t := taskItem.Task
	isSelected := index == m.Index()

	statusBadge := theme.StatusStyle(t.Statut).Render(t.Statut)
	priBadge := theme.PriorityStyle(t.Priorite).Render(t.Priorite)

	project := ""
	if t.ProjetNom != "" {
		project = lipgloss.NewStyle().
			Foreground(theme.ColorBlue).
			Render(" [" + t.ProjetNom + "]")
	}

	assignee := ""
	if t.AssigneeNom != "" {
		assignee = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" @" + t.AssigneeNom)
	}

	due := ""
	if !t.DateFin.IsZero() {
		due = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" " + t.DateFin.Format("02/01/2006"))
	}

	staleMark := ""
	if d.stale != nil && *d.stale {
		staleMark = lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Render(" ~")
	}

	line := fmt.Sprintf(
		"%s %s %s%s%s%s%s",
		statusBadge, priBadge, t.Nom, project, assignee, due, staleMark,
	)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
