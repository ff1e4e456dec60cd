package model

import (
	"errors"
	"time"
)

// ErrDateRange is returned when a project or task is submitted with an
// end date earlier than its start date. The backend does not enforce
// this, so the client rejects it before the write is issued.
var ErrDateRange = errors.New("la date de fin précède la date de début")

// Project is a unit of work with a lifecycle status, a member set, and
// tasks. Its statuses are the task statuses minus "En retard".
type Project struct {
	ID          int64     `json:"id" db:"id"`
	Nom         string    `json:"nom" db:"nom"`
	Description string    `json:"description" db:"description"`
	DateDebut   time.Time `json:"date_debut" db:"date_debut"`
	DateFin     time.Time `json:"date_fin" db:"date_fin"`
	Statut      string    `json:"statut" db:"statut"`
	CreeParID   int64     `json:"cree_par" db:"cree_par_id"`

	// Membres and Taches are only populated on the project detail
	// endpoint; list responses leave them empty.
	Membres []Member `json:"membres,omitempty" db:"-"`
	Taches  []Task   `json:"taches,omitempty" db:"-"`
}

// ProjectStatuses lists the selectable project statuses.
var ProjectStatuses = []string{
	StatusEnAttente,
	StatusEnCours,
	StatusTermine,
	StatusAnnule,
}

// ValidateDateRange rejects ranges whose end precedes their start.
// Zero dates are accepted so optional fields can stay unset.
func ValidateDateRange(debut, fin time.Time) error {
	if debut.IsZero() || fin.IsZero() {
		return nil
	}
	if fin.Before(debut) {
		return ErrDateRange
	}
	return nil
}
