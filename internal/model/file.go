package model

import "time"

// File is a document shared on a project. The binary content stays on
// the backend; the client only holds the download reference.
type File struct {
	ID          int64     `json:"id" db:"id"`
	Nom         string    `json:"nom" db:"nom"`
	URL         string    `json:"fichier" db:"url"`
	DatePartage time.Time `json:"date_partage" db:"date_partage"`
	ProjetID    int64     `json:"projet" db:"projet_id"`
}
