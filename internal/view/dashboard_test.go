package view

import (
	"reflect"
	"testing"
	"time"

	"github.com/promanager/promanager/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func taskList(statuses map[string]int) []model.Task {
	var tasks []model.Task
	id := int64(1)
	for statut, n := range statuses {
		for i := 0; i < n; i++ {
			tasks = append(tasks, model.Task{
				ID:      id,
				Statut:  statut,
				DateFin: date(2024, 1, int(id%28)+1),
			})
			id++
		}
	}
	return tasks
}

func TestComputeDashboardAttenteBucket(t *testing.T) {
	tasks := taskList(map[string]int{
		model.StatusTermine:   4,
		model.StatusEnCours:   3,
		model.StatusEnRetard:  1,
		model.StatusEnAttente: 2,
	})

	stats := ComputeDashboard(nil, tasks)
	if stats.TachesTotal != 10 {
		t.Fatalf("total = %d, want 10", stats.TachesTotal)
	}
	if stats.TachesEnAttente != 2 {
		t.Errorf("en attente = %d, want 2", stats.TachesEnAttente)
	}
}

func TestComputeDashboardAttenteClamped(t *testing.T) {
	// Inconsistent input: more terminées than seems possible next to
	// the other buckets must not produce a negative attente count.
	tasks := taskList(map[string]int{
		model.StatusTermine:  3,
		model.StatusEnCours:  2,
		model.StatusEnRetard: 1,
	})
	tasks = tasks[:4] // total 4 < 3+2+1

	stats := ComputeDashboard(nil, tasks)
	if stats.TachesEnAttente < 0 {
		t.Errorf("en attente = %d, want clamped to >= 0", stats.TachesEnAttente)
	}
}

func TestCompletionRate(t *testing.T) {
	all := taskList(map[string]int{model.StatusTermine: 10})
	if got := ComputeDashboard(nil, all).CompletionRate; got != 1.0 {
		t.Errorf("completion rate = %v, want 1.0", got)
	}

	if got := ComputeDashboard(nil, nil).CompletionRate; got != 0 {
		t.Errorf("completion rate with no tasks = %v, want 0", got)
	}

	half := taskList(map[string]int{
		model.StatusTermine:   2,
		model.StatusEnAttente: 2,
	})
	if got := ComputeDashboard(nil, half).CompletionRate; got != 0.5 {
		t.Errorf("completion rate = %v, want 0.5", got)
	}
}

func TestTachesASuivreSelectionAndOrder(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Priorite: model.PriorityUrgente, Statut: model.StatusEnCours, DateFin: date(2024, 1, 10)},
		{ID: 2, Priorite: model.PriorityFaible, Statut: model.StatusTermine, DateFin: date(2024, 1, 10)},
		{ID: 3, Priorite: model.PriorityElevee, Statut: model.StatusEnAttente, DateFin: date(2024, 1, 5)},
	}

	got := TachesASuivre(tasks)
	ids := make([]int64, len(got))
	for i, task := range got {
		ids[i] = task.ID
	}
	if !reflect.DeepEqual(ids, []int64{3, 1}) {
		t.Errorf("tâches à suivre = %v, want [3 1]", ids)
	}
}

func TestTachesASuivreCapAndSortWithReversedInput(t *testing.T) {
	var tasks []model.Task
	for i := 12; i >= 1; i-- {
		tasks = append(tasks, model.Task{
			ID:       int64(i),
			Priorite: model.PriorityUrgente,
			DateFin:  date(2024, 2, i),
		})
	}

	got := TachesASuivre(tasks)
	if len(got) != 8 {
		t.Fatalf("got %d tasks, want cap of 8", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].DateFin.Before(got[i-1].DateFin) {
			t.Fatalf("not sorted ascending at index %d", i)
		}
	}
	if got[0].ID != 1 {
		t.Errorf("earliest deadline should come first, got id %d", got[0].ID)
	}
}

func TestTachesUrgentesStricterThanASuivre(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Priorite: model.PriorityFaible, Statut: model.StatusEnRetard, DateFin: date(2024, 1, 3)},
		{ID: 2, Priorite: model.PriorityUrgente, Statut: model.StatusEnAttente, DateFin: date(2024, 1, 2)},
		{ID: 3, Priorite: model.PriorityElevee, Statut: model.StatusTermine, DateFin: date(2024, 1, 1)},
	}

	urgent := TachesUrgentes(tasks)
	if len(urgent) != 2 {
		t.Fatalf("got %d urgent tasks, want 2 (status plays no part)", len(urgent))
	}
	if urgent[0].ID != 3 || urgent[1].ID != 2 {
		t.Errorf("urgent order = [%d %d], want [3 2]", urgent[0].ID, urgent[1].ID)
	}

	// Task 1 is late, so à suivre includes it while urgentes does not.
	if len(TachesASuivre(tasks)) != 3 {
		t.Error("à suivre should include the late Faible task")
	}
}

func TestComputeDashboardIdempotent(t *testing.T) {
	tasks := []model.Task{
		{ID: 5, Priorite: model.PriorityUrgente, Statut: model.StatusEnCours, DateFin: date(2024, 3, 5)},
		{ID: 4, Priorite: model.PriorityElevee, Statut: model.StatusEnAttente, DateFin: date(2024, 3, 1)},
		{ID: 3, Statut: model.StatusTermine, DateFin: date(2024, 3, 2)},
	}
	projects := []model.Project{{ID: 1}, {ID: 2}}

	first := ComputeDashboard(projects, tasks)
	second := ComputeDashboard(projects, tasks)
	if !reflect.DeepEqual(first, second) {
		t.Error("same input must yield identical output")
	}

	// The input slices themselves must not be reordered.
	if tasks[0].ID != 5 || tasks[2].ID != 3 {
		t.Error("input task list was mutated")
	}
}

func TestRecentProjects(t *testing.T) {
	var projects []model.Project
	for i := 1; i <= 7; i++ {
		projects = append(projects, model.Project{ID: int64(i)})
	}

	recent := RecentProjects(projects)
	if len(recent) != 5 {
		t.Fatalf("got %d recent projects, want 5", len(recent))
	}
	if recent[0].ID != 7 || recent[4].ID != 3 {
		t.Errorf("recent projects = %v, want ids 7..3", recent)
	}
	if projects[0].ID != 1 {
		t.Error("input project list was mutated")
	}
}

func TestTachesAVenirAndCountOverdue(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: 1, DateFin: date(2024, 1, 9), Statut: model.StatusEnCours},
		{ID: 2, DateFin: date(2024, 1, 10), Statut: model.StatusEnAttente},
		{ID: 3, DateFin: date(2024, 1, 12), Statut: model.StatusEnAttente},
		{ID: 4, DateFin: date(2024, 1, 8), Statut: model.StatusTermine},
	}

	upcoming := TachesAVenir(tasks, now)
	if len(upcoming) != 2 || upcoming[0].ID != 2 || upcoming[1].ID != 3 {
		t.Errorf("upcoming = %v, want tasks 2 then 3", upcoming)
	}

	// Task 1 is past due and not Terminé; task 4 is past due but done.
	if got := CountOverdue(tasks, now); got != 1 {
		t.Errorf("overdue count = %d, want 1", got)
	}
}
