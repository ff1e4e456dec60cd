// Package view derives screen-ready aggregates from cached entities.
// Every function is a pure, order-stable transform over its inputs so
// screens can be tested without mounting any UI.
package view

import (
	"sort"
	"time"

	"github.com/promanager/promanager/internal/model"
)

// Caps applied to the dashboard sublists.
const (
	maxTachesASuivre  = 8
	maxTachesUrgentes = 5
	maxProjetsRecents = 5
	maxTachesAVenir   = 5
)

// DashboardStats summarizes the projects and tasks visible to the
// current member. The backend scopes the input lists to the caller;
// this recomputes the same aggregates locally so screens stay
// consistent between fetches.
type DashboardStats struct {
	ProjetsCount    int
	TachesTotal     int
	TachesTerminees int
	TachesEnCours   int
	TachesEnRetard  int

	// TachesEnAttente is derived as total minus the other buckets,
	// clamped to zero to tolerate inconsistent inputs.
	TachesEnAttente int

	// CompletionRate is terminées/total, 0 when there are no tasks.
	CompletionRate float64

	// ProjetsRecents holds the latest projects, newest id first.
	ProjetsRecents []model.Project

	// TachesASuivre holds tasks needing attention (high priority or
	// active/late status), soonest deadline first.
	TachesASuivre []model.Task

	// TachesUrgentes holds only Élevée/Urgente tasks, soonest first.
	TachesUrgentes []model.Task
}

// ComputeDashboard builds dashboard statistics from the given lists.
// Inputs are never mutated; calling twice with the same lists yields
// identical output.
func ComputeDashboard(projects []model.Project, tasks []model.Task) DashboardStats {
	stats := DashboardStats{
		ProjetsCount: len(projects),
		TachesTotal:  len(tasks),
	}

	for _, t := range tasks {
		switch t.Statut {
		case model.StatusTermine:
			stats.TachesTerminees++
		case model.StatusEnCours:
			stats.TachesEnCours++
		case model.StatusEnRetard:
			stats.TachesEnRetard++
		}
	}

	attente := stats.TachesTotal - stats.TachesTerminees -
		stats.TachesEnCours - stats.TachesEnRetard
	if attente < 0 {
		attente = 0
	}
	stats.TachesEnAttente = attente

	if stats.TachesTotal > 0 {
		stats.CompletionRate = float64(stats.TachesTerminees) / float64(stats.TachesTotal)
	}

	stats.ProjetsRecents = RecentProjects(projects)
	stats.TachesASuivre = TachesASuivre(tasks)
	stats.TachesUrgentes = TachesUrgentes(tasks)

	return stats
}

// TachesASuivre selects tasks worth watching: high priority (Élevée or
// Urgente) or an active/late status (En cours or En retard). The result
// is sorted by ascending deadline and capped to 8 entries.
func TachesASuivre(tasks []model.Task) []model.Task {
	selected := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		highPriority := t.Priorite == model.PriorityElevee ||
			t.Priorite == model.PriorityUrgente
		activeStatus := t.Statut == model.StatusEnRetard ||
			t.Statut == model.StatusEnCours
		if highPriority || activeStatus {
			selected = append(selected, t)
		}
	}
	sortByDeadline(selected)
	return capTasks(selected, maxTachesASuivre)
}

// TachesUrgentes selects only Urgente/Élevée tasks, sorted by ascending
// deadline and capped to 5 entries. Stricter than TachesASuivre: status
// plays no part here.
func TachesUrgentes(tasks []model.Task) []model.Task {
	selected := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Priorite == model.PriorityUrgente || t.Priorite == model.PriorityElevee {
			selected = append(selected, t)
		}
	}
	sortByDeadline(selected)
	return capTasks(selected, maxTachesUrgentes)
}

// RecentProjects returns the most recently created projects, newest id
// first, capped to 5.
func RecentProjects(projects []model.Project) []model.Project {
	recent := make([]model.Project, len(projects))
	copy(recent, projects)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ID > recent[j].ID
	})
	if len(recent) > maxProjetsRecents {
		recent = recent[:maxProjetsRecents]
	}
	return recent
}

// TachesAVenir returns tasks whose deadline is today or later, soonest
// first, capped to 5.
func TachesAVenir(tasks []model.Task, now time.Time) []model.Task {
	today := truncateToDay(now)
	upcoming := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !truncateToDay(t.DateFin).Before(today) {
			upcoming = append(upcoming, t)
		}
	}
	sortByDeadline(upcoming)
	return capTasks(upcoming, maxTachesAVenir)
}

// CountOverdue counts tasks whose deadline has passed and which are not
// Terminé, mirroring how the backend derives its "en retard" figure.
func CountOverdue(tasks []model.Task, now time.Time) int {
	today := truncateToDay(now)
	count := 0
	for _, t := range tasks {
		if truncateToDay(t.DateFin).Before(today) && t.Statut != model.StatusTermine {
			count++
		}
	}
	return count
}

func sortByDeadline(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DateFin.Before(tasks[j].DateFin)
	})
}

func capTasks(tasks []model.Task, max int) []model.Task {
	if len(tasks) > max {
		return tasks[:max]
	}
	return tasks
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
