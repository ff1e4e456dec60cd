package view

import (
	"sort"
	"time"

	"github.com/promanager/promanager/internal/model"
)

// DayClass is the severity class of a calendar day, derived from the
// tasks due that day.
type DayClass string

const (
	// DayClassNone marks a day with no tasks due.
	DayClassNone DayClass = ""

	DayClassRed    DayClass = "red"
	DayClassOrange DayClass = "orange"
	DayClassYellow DayClass = "yellow"
	DayClassGreen  DayClass = "green"
)

// NotificationKind discriminates the calendar warning shown for the
// selected day. At most one notification is shown at a time.
type NotificationKind int

const (
	NotificationNone NotificationKind = iota
	NotificationLate
	NotificationDueSoon
)

// Notification is the warning computed for the selected day.
type Notification struct {
	Kind  NotificationKind
	Count int
}

// dueSoonWindow is how far ahead a deadline counts as "proche de
// l'échéance".
const dueSoonWindow = 48 * time.Hour

// Calendar buckets tasks by the calendar day of their deadline and
// precomputes the selected day's notification.
type Calendar struct {
	buckets      map[string][]model.Task
	selected     time.Time
	notification Notification
}

// ComputeCalendar builds the calendar aggregation for the given tasks.
// selected is the day the user is looking at; now anchors the due-soon
// window. Matching is on calendar dates, ignoring time-of-day.
func ComputeCalendar(tasks []model.Task, selected, now time.Time) Calendar {
	buckets := make(map[string][]model.Task)
	for _, t := range tasks {
		key := dayKey(t.DateFin)
		buckets[key] = append(buckets[key], t)
	}
	for _, dayTasks := range buckets {
		sort.SliceStable(dayTasks, func(i, j int) bool {
			return dayTasks[i].ID < dayTasks[j].ID
		})
	}

	c := Calendar{buckets: buckets, selected: selected}
	c.notification = computeNotification(c.TasksOn(selected), now)
	return c
}

// TasksOn returns the tasks due on the given day, ordered by id.
func (c Calendar) TasksOn(day time.Time) []model.Task {
	return c.buckets[dayKey(day)]
}

// DayClassFor returns the severity class for a day, by precedence:
// red when any task is Urgente or En retard, orange when any is Élevée,
// yellow when any is En cours, green otherwise. Days without tasks get
// DayClassNone.
func (c Calendar) DayClassFor(day time.Time) DayClass {
	dayTasks := c.buckets[dayKey(day)]
	if len(dayTasks) == 0 {
		return DayClassNone
	}

	hasEleve := false
	hasEnCours := false
	for _, t := range dayTasks {
		if t.Priorite == model.PriorityUrgente || t.Statut == model.StatusEnRetard {
			return DayClassRed
		}
		if t.Priorite == model.PriorityElevee {
			hasEleve = true
		}
		if t.Statut == model.StatusEnCours {
			hasEnCours = true
		}
	}
	if hasEleve {
		return DayClassOrange
	}
	if hasEnCours {
		return DayClassYellow
	}
	return DayClassGreen
}

// Notification returns the warning for the selected day. Late tasks
// take precedence over upcoming deadlines; only one kind is reported.
func (c Calendar) Notification() Notification {
	return c.notification
}

func computeNotification(dayTasks []model.Task, now time.Time) Notification {
	late := 0
	dueSoon := 0
	for _, t := range dayTasks {
		if t.Statut == model.StatusEnRetard {
			late++
			continue
		}
		if t.Statut == model.StatusTermine {
			continue
		}
		until := t.DateFin.Sub(now)
		if until >= 0 && until < dueSoonWindow {
			dueSoon++
		}
	}

	if late > 0 {
		return Notification{Kind: NotificationLate, Count: late}
	}
	if dueSoon > 0 {
		return Notification{Kind: NotificationDueSoon, Count: dueSoon}
	}
	return Notification{}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
