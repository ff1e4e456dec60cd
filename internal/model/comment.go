package model

import "time"

// Comment is a discussion entry on a task.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	Contenu   string    `json:"contenu" db:"contenu"`
	Date      time.Time `json:"date" db:"date"`
	TacheID   int64     `json:"tache" db:"tache_id"`
	AuteurID  int64     `json:"auteur" db:"auteur_id"`
	AuteurNom string    `json:"auteur_nom" db:"auteur_nom"`
}
