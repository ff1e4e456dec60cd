package view

import (
	"testing"
	"time"

	"github.com/promanager/promanager/internal/model"
)

func TestDayClassPrecedence(t *testing.T) {
	day := date(2024, 1, 10)

	cases := []struct {
		name  string
		tasks []model.Task
		want  DayClass
	}{
		{
			name: "urgente wins over terminé",
			tasks: []model.Task{
				{ID: 1, Priorite: model.PriorityUrgente, Statut: model.StatusEnCours, DateFin: day},
				{ID: 2, Priorite: model.PriorityFaible, Statut: model.StatusTermine, DateFin: day},
			},
			want: DayClassRed,
		},
		{
			name: "en retard wins regardless of priority",
			tasks: []model.Task{
				{ID: 1, Priorite: model.PriorityFaible, Statut: model.StatusEnRetard, DateFin: day},
				{ID: 2, Priorite: model.PriorityElevee, Statut: model.StatusEnAttente, DateFin: day},
			},
			want: DayClassRed,
		},
		{
			name: "élevée without red conditions",
			tasks: []model.Task{
				{ID: 1, Priorite: model.PriorityElevee, Statut: model.StatusEnAttente, DateFin: day},
				{ID: 2, Priorite: model.PriorityFaible, Statut: model.StatusEnCours, DateFin: day},
			},
			want: DayClassOrange,
		},
		{
			name: "en cours only",
			tasks: []model.Task{
				{ID: 1, Priorite: model.PriorityMoyenne, Statut: model.StatusEnCours, DateFin: day},
			},
			want: DayClassYellow,
		},
		{
			name: "quiet day",
			tasks: []model.Task{
				{ID: 1, Priorite: model.PriorityFaible, Statut: model.StatusTermine, DateFin: day},
			},
			want: DayClassGreen,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := ComputeCalendar(tc.tasks, day, day)
			if got := c.DayClassFor(day); got != tc.want {
				t.Errorf("DayClassFor = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDayClassEmptyDay(t *testing.T) {
	c := ComputeCalendar(nil, date(2024, 1, 10), date(2024, 1, 10))
	if got := c.DayClassFor(date(2024, 1, 10)); got != DayClassNone {
		t.Errorf("empty day class = %q, want none", got)
	}
}

func TestTasksOnMatchesCalendarDateOnly(t *testing.T) {
	// Deadlines on the same calendar day with different clock times
	// land in the same bucket.
	c := ComputeCalendar([]model.Task{
		{ID: 1, DateFin: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 2, DateFin: time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)},
		{ID: 3, DateFin: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)},
	}, date(2024, 1, 10), date(2024, 1, 10))

	if got := c.TasksOn(date(2024, 1, 10)); len(got) != 2 {
		t.Errorf("tasks on Jan 10 = %d, want 2", len(got))
	}
	if got := c.TasksOn(date(2024, 1, 11)); len(got) != 1 {
		t.Errorf("tasks on Jan 11 = %d, want 1", len(got))
	}
}

func TestNotificationLateTakesPrecedence(t *testing.T) {
	selected := date(2024, 1, 10)
	now := time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		// Late task on the selected day.
		{ID: 1, Statut: model.StatusEnRetard, DateFin: selected},
		// Due within the next day, not late.
		{ID: 2, Statut: model.StatusEnAttente, DateFin: selected},
	}

	n := ComputeCalendar(tasks, selected, now).Notification()
	if n.Kind != NotificationLate {
		t.Fatalf("notification kind = %v, want late", n.Kind)
	}
	if n.Count != 1 {
		t.Errorf("late count = %d, want 1", n.Count)
	}
}

func TestNotificationDueSoon(t *testing.T) {
	selected := date(2024, 1, 10)
	now := time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		{ID: 1, Statut: model.StatusEnAttente, DateFin: selected},
		// Terminé tasks never count as due soon.
		{ID: 2, Statut: model.StatusTermine, DateFin: selected},
	}

	n := ComputeCalendar(tasks, selected, now).Notification()
	if n.Kind != NotificationDueSoon {
		t.Fatalf("notification kind = %v, want due soon", n.Kind)
	}
	if n.Count != 1 {
		t.Errorf("due soon count = %d, want 1", n.Count)
	}
}

func TestNotificationNone(t *testing.T) {
	selected := date(2024, 1, 10)
	// Selected day is far in the future relative to now.
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		{ID: 1, Statut: model.StatusEnAttente, DateFin: selected},
	}

	n := ComputeCalendar(tasks, selected, now).Notification()
	if n.Kind != NotificationNone {
		t.Errorf("notification kind = %v, want none", n.Kind)
	}
}

func TestSummarizeByProject(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, ProjetNom: "Site web", Statut: model.StatusEnCours, Priorite: model.PriorityUrgente, DateFin: date(2024, 1, 5)},
		{ID: 2, ProjetNom: "Site web", Statut: model.StatusTermine, DateFin: date(2024, 1, 6)},
		{ID: 3, ProjetNom: "API", Statut: model.StatusEnRetard, DateFin: date(2024, 1, 7)},
		{ID: 4, Statut: model.StatusEnAttente, DateFin: date(2024, 1, 8)},
	}

	summaries := SummarizeByProject(tasks)
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}
	// Sorted by name: API, Projet non spécifié, Site web.
	if summaries[0].Nom != "API" || summaries[0].EnRetard != 1 {
		t.Errorf("API summary = %+v", summaries[0])
	}
	if summaries[2].Nom != "Site web" || summaries[2].Total != 2 ||
		summaries[2].Urgentes != 1 || summaries[2].Terminees != 1 {
		t.Errorf("Site web summary = %+v", summaries[2])
	}
}
