package model

import (
	"strings"
	"time"
)

// Role identifies a member's level of access across the application.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleChef   Role = "CHEF_PROJET"
	RoleMembre Role = "MEMBRE"
)

// NormalizeRole maps a raw role value from the backend onto one of the
// three canonical roles. The API is inconsistent about casing ("MEMBRE"
// and "Membre" both appear), so normalization happens once, at the
// session boundary, and the rest of the code only sees canonical values.
// Unknown values return ok=false; callers must treat those as
// unprivileged (fail-closed).
func NormalizeRole(raw string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ADMIN", "ADMINISTRATEUR":
		return RoleAdmin, true
	case "CHEF_PROJET", "CHEF DE PROJET":
		return RoleChef, true
	case "MEMBRE":
		return RoleMembre, true
	default:
		return "", false
	}
}

// Label returns the display name for the role, matching the labels the
// backend declares for its role choices.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrateur"
	case RoleChef:
		return "Chef de projet"
	case RoleMembre:
		return "Membre"
	default:
		return string(r)
	}
}

// Member is a user account with an assigned role. Archived members keep
// their history but are excluded from assignment pools.
type Member struct {
	// ID is the backend identifier; the client never originates ids.
	ID int64 `json:"id" db:"id"`

	// Nom is the display name shown across all screens.
	Nom string `json:"nom" db:"nom"`

	// Email is the account email, editable through the profile screen.
	Email string `json:"email" db:"email"`

	// Role is the canonical role after normalization.
	Role Role `json:"role" db:"role"`

	// IsActive is false once the member has been archived.
	IsActive bool `json:"is_active" db:"is_active"`

	// ArchivedAt is set when an admin archives the account.
	ArchivedAt *time.Time `json:"archived_at,omitempty" db:"archived_at"`

	// DateCreation is when the account was registered.
	DateCreation time.Time `json:"date_creation" db:"date_creation"`
}

// ActiveMembers filters out archived members, preserving input order.
// Used to build assignment pools; archived members remain visible in
// historical displays.
func ActiveMembers(members []Member) []Member {
	active := make([]Member, 0, len(members))
	for _, m := range members {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active
}
