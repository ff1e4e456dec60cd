package api

// Wire types mirroring the backend's JSON. Dates arrive as strings
// ("2006-01-02" for date fields, RFC 3339 for timestamps) and are
// converted to time.Time in adapt.go.

// loginRequest carries the credentials for POST /login/.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the token pair plus the member identity the backend
// attaches to a successful login.
type loginResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	UserID   int64  `json:"user_id"`
	MembreID int64  `json:"membre_id"`
	Role     string `json:"role"`
}

// registerRequest carries the fields for POST /register/.
type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// profileResponse is the shape of GET /profile/.
type profileResponse struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Nom             string `json:"nom"`
	Role            string `json:"role"`
	DateCreation    string `json:"date_creation"`
	ProjetsCount    int    `json:"projets_count"`
	TachesTerminees int    `json:"taches_terminees"`
}

// memberPayload is the shape of a Membre resource.
type memberPayload struct {
	ID           int64  `json:"id"`
	Nom          string `json:"nom"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	IsActive     bool   `json:"is_active"`
	ArchivedAt   string `json:"archived_at"`
	DateCreation string `json:"date_creation"`
}

// availableMemberPayload is the reduced shape returned by
// GET /projets/available_members/.
type availableMemberPayload struct {
	ID   int64  `json:"id"`
	Nom  string `json:"nom"`
	Role string `json:"role"`
}

// projectPayload is the shape of a Projet resource. Membres and Taches
// are only present on the detail endpoint.
type projectPayload struct {
	ID          int64           `json:"id"`
	Nom         string          `json:"nom"`
	Description string          `json:"description"`
	DateDebut   string          `json:"date_debut"`
	DateFin     string          `json:"date_fin"`
	Statut      string          `json:"statut"`
	CreePar     jsonID          `json:"cree_par"`
	Membres     []memberPayload `json:"membres"`
	Taches      []taskPayload   `json:"taches"`
}

// projectInput is the write shape for project create/update.
type projectInput struct {
	Nom         string  `json:"nom"`
	Description string  `json:"description"`
	DateDebut   string  `json:"date_debut"`
	DateFin     string  `json:"date_fin"`
	Statut      string  `json:"statut"`
	CreePar     int64   `json:"cree_par"`
	Membres     []int64 `json:"membres"`
}

// taskPayload is the shape of a Tache resource.
type taskPayload struct {
	ID          int64  `json:"id"`
	Nom         string `json:"nom"`
	Description string `json:"description"`
	DateDebut   string `json:"date_debut"`
	DateFin     string `json:"date_fin"`
	Statut      string `json:"statut"`
	Priorite    string `json:"priorite"`
	Projet      jsonID `json:"projet"`
	ProjetNom   string `json:"projet_nom"`
	Assignee    jsonID `json:"assignee"`
	AssigneeNom string `json:"assignee_nom"`
}

// taskInput is the write shape for task create/update.
type taskInput struct {
	Nom         string `json:"nom"`
	Description string `json:"description"`
	DateDebut   string `json:"date_debut"`
	DateFin     string `json:"date_fin"`
	Statut      string `json:"statut"`
	Priorite    string `json:"priorite"`
	Projet      int64  `json:"projet"`
	Assignee    *int64 `json:"assignee,omitempty"`
}

// commentPayload is the shape of a Commentaire resource.
type commentPayload struct {
	ID        int64  `json:"id"`
	Contenu   string `json:"contenu"`
	Date      string `json:"date"`
	Tache     jsonID `json:"tache"`
	Auteur    jsonID `json:"auteur"`
	AuteurNom string `json:"auteur_nom"`
}

// filePayload is the shape of a Fichier resource.
type filePayload struct {
	ID          int64  `json:"id"`
	Nom         string `json:"nom"`
	Fichier     string `json:"fichier"`
	DatePartage string `json:"date_partage"`
	Projet      jsonID `json:"projet"`
}
