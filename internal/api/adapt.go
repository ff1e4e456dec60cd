package api

import (
	"encoding/json"
	"time"

	"github.com/promanager/promanager/internal/model"
)

// jsonID decodes a foreign key that the backend serializes either as a
// bare integer, as a nested object with an "id" field (detail
// serializers use depth=1), or as null.
type jsonID struct {
	ID    int64
	Valid bool
}

func (j *jsonID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*j = jsonID{}
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		*j = jsonID{ID: id, Valid: true}
		return nil
	}

	var nested struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}
	*j = jsonID{ID: nested.ID, Valid: nested.ID != 0}
	return nil
}

// Pointer returns the id as *int64, nil when absent.
func (j jsonID) Pointer() *int64 {
	if !j.Valid {
		return nil
	}
	id := j.ID
	return &id
}

// dateLayout is how the backend serializes DateField values.
const dateLayout = "2006-01-02"

// parseDate parses a backend date or timestamp string. Empty or
// malformed values return the zero time rather than failing the whole
// payload.
func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}

// formatDate renders a time as a backend date string, empty for zero.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func (p memberPayload) toModel() model.Member {
	role, _ := model.NormalizeRole(p.Role)
	m := model.Member{
		ID:           p.ID,
		Nom:          p.Nom,
		Email:        p.Email,
		Role:         role,
		IsActive:     p.IsActive,
		DateCreation: parseDate(p.DateCreation),
	}
	if p.ArchivedAt != "" {
		archived := parseDate(p.ArchivedAt)
		m.ArchivedAt = &archived
	}
	return m
}

func (p projectPayload) toModel() model.Project {
	proj := model.Project{
		ID:          p.ID,
		Nom:         p.Nom,
		Description: p.Description,
		DateDebut:   parseDate(p.DateDebut),
		DateFin:     parseDate(p.DateFin),
		Statut:      p.Statut,
		CreeParID:   p.CreePar.ID,
	}
	for _, m := range p.Membres {
		proj.Membres = append(proj.Membres, m.toModel())
	}
	for _, t := range p.Taches {
		proj.Taches = append(proj.Taches, t.toModel())
	}
	return proj
}

func (p taskPayload) toModel() model.Task {
	return model.Task{
		ID:          p.ID,
		Nom:         p.Nom,
		Description: p.Description,
		DateDebut:   parseDate(p.DateDebut),
		DateFin:     parseDate(p.DateFin),
		Statut:      p.Statut,
		Priorite:    p.Priorite,
		ProjetID:    p.Projet.ID,
		ProjetNom:   p.ProjetNom,
		AssigneeID:  p.Assignee.Pointer(),
		AssigneeNom: p.AssigneeNom,
	}
}

func (p commentPayload) toModel() model.Comment {
	return model.Comment{
		ID:        p.ID,
		Contenu:   p.Contenu,
		Date:      parseDate(p.Date),
		TacheID:   p.Tache.ID,
		AuteurID:  p.Auteur.ID,
		AuteurNom: p.AuteurNom,
	}
}

func (p filePayload) toModel() model.File {
	return model.File{
		ID:          p.ID,
		Nom:         p.Nom,
		URL:         p.Fichier,
		DatePartage: parseDate(p.DatePartage),
		ProjetID:    p.Projet.ID,
	}
}
