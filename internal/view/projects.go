package view

import (
	"sort"

	"github.com/promanager/promanager/internal/model"
)

// ProjectSummary aggregates task counts for a single project, used by
// the calendar screen's per-project recap.
type ProjectSummary struct {
	Nom       string
	Total     int
	EnCours   int
	Terminees int
	EnRetard  int
	Urgentes  int
}

// SummarizeByProject groups tasks by their project name and counts the
// states surfaced in the recap. Tasks without a project name fall into
// a single "Projet non spécifié" bucket. The result is sorted by
// project name for stable display.
func SummarizeByProject(tasks []model.Task) []ProjectSummary {
	byName := make(map[string]*ProjectSummary)
	for _, t := range tasks {
		name := t.ProjetNom
		if name == "" {
			name = "Projet non spécifié"
		}
		s, ok := byName[name]
		if !ok {
			s = &ProjectSummary{Nom: name}
			byName[name] = s
		}
		s.Total++
		switch t.Statut {
		case model.StatusEnCours:
			s.EnCours++
		case model.StatusTermine:
			s.Terminees++
		case model.StatusEnRetard:
			s.EnRetard++
		}
		if t.Priorite == model.PriorityUrgente {
			s.Urgentes++
		}
	}

	summaries := make([]ProjectSummary, 0, len(byName))
	for _, s := range byName {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Nom < summaries[j].Nom
	})
	return summaries
}
