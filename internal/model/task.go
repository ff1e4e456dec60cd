package model

import "time"

// Task statuses as the backend stores them. "En retard" is set by the
// backend when a deadline passes without completion.
const (
	StatusEnAttente = "En attente"
	StatusEnCours   = "En cours"
	StatusTermine   = "Terminé"
	StatusEnRetard  = "En retard"
	StatusAnnule    = "Annulé"
)

// Task priorities, lowest to highest.
const (
	PriorityFaible  = "Faible"
	PriorityMoyenne = "Moyenne"
	PriorityElevee  = "Élevée"
	PriorityUrgente = "Urgente"
)

// TaskStatuses lists the statuses a task can be moved to through the
// change_status action, in cycle order.
var TaskStatuses = []string{
	StatusEnAttente,
	StatusEnCours,
	StatusTermine,
	StatusAnnule,
}

// NextStatus returns the status following s in the cycle. Statuses
// outside the cycle, such as "En retard", restart at "En attente".
func NextStatus(s string) string {
	for i, st := range TaskStatuses {
		if st == s {
			return TaskStatuses[(i+1)%len(TaskStatuses)]
		}
	}
	return StatusEnAttente
}

// TaskPriorities lists the selectable priorities, lowest first.
var TaskPriorities = []string{
	PriorityFaible,
	PriorityMoyenne,
	PriorityElevee,
	PriorityUrgente,
}

// Task is a unit of work within a project.
type Task struct {
	// ID is the backend identifier for this task.
	ID int64 `json:"id" db:"id"`

	// Nom is the task title.
	Nom string `json:"nom" db:"nom"`

	// Description is the optional task body.
	Description string `json:"description" db:"description"`

	// DateDebut and DateFin are calendar dates; time-of-day is ignored
	// everywhere a task date is compared.
	DateDebut time.Time `json:"date_debut" db:"date_debut"`
	DateFin   time.Time `json:"date_fin" db:"date_fin"`

	// Statut is one of the Status* constants.
	Statut string `json:"statut" db:"statut"`

	// Priorite is one of the Priority* constants.
	Priorite string `json:"priorite" db:"priorite"`

	// ProjetID references the owning project.
	ProjetID int64 `json:"projet" db:"projet_id"`

	// ProjetNom is denormalized by the backend for list displays.
	ProjetNom string `json:"projet_nom" db:"projet_nom"`

	// AssigneeID is nil when the task is unassigned.
	AssigneeID *int64 `json:"assignee,omitempty" db:"assignee_id"`

	// AssigneeNom is the assignee's display name, empty when unassigned.
	AssigneeNom string `json:"assignee_nom" db:"assignee_nom"`
}

// IsClosed reports whether the task no longer needs attention.
func (t Task) IsClosed() bool {
	return t.Statut == StatusTermine || t.Statut == StatusAnnule
}

// DueOn reports whether the task's deadline falls on the given calendar
// day, ignoring time-of-day on both sides.
func (t Task) DueOn(day time.Time) bool {
	ty, tm, td := t.DateFin.Date()
	dy, dm, dd := day.Date()
	return ty == dy && tm == dm && td == dd
}
