package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/promanager/promanager/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	c.SetToken("jeton-123")

	if _, err := c.ListProjects(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer jeton-123" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestUnauthorizedBecomesAuthError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Token is invalid or expired"}`))
	}))

	_, err := c.ListTasks(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAuthError(err) {
		t.Errorf("expected AuthError through the wrap chain, got %v", err)
	}
}

func TestAPIErrorMessageSurfaced(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Membre non trouvé"}`))
	}))

	err := c.AddProjectMember(context.Background(), 1, 99)
	if err == nil {
		t.Fatal("expected error")
	}
	if IsAuthError(err) {
		t.Error("a 404 must not be classified as an auth error")
	}
	if want := "Membre non trouvé"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should contain %q", err, want)
	}
}

func TestLoginReturnsIdentity(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login/" {
			t.Errorf("path = %s, want /api/login/", r.URL.Path)
		}
		w.Write([]byte(`{
			"access": "tok", "refresh": "ref",
			"user_id": 3, "membre_id": 7, "role": "CHEF_PROJET"
		}`))
	}))

	creds, err := c.Login(context.Background(), "chef", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if creds.Token != "tok" || creds.MembreID != 7 || creds.Role != "CHEF_PROJET" {
		t.Errorf("unexpected credentials: %+v", creds)
	}
}

func TestListTasksAdaptsPayload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{
				"id": 1, "nom": "Maquette", "statut": "En cours",
				"priorite": "Élevée", "date_debut": "2024-01-02",
				"date_fin": "2024-01-10", "projet": 4,
				"projet_nom": "Site web", "assignee": 7,
				"assignee_nom": "Alice"
			},
			{
				"id": 2, "nom": "Revue", "statut": "En attente",
				"priorite": "Faible", "date_debut": "2024-01-03",
				"date_fin": "2024-01-12", "projet": {"id": 4},
				"assignee": null
			}
		]`))
	}))

	tasks, err := c.ListTasks(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}

	first := tasks[0]
	if first.ProjetID != 4 || first.AssigneeID == nil || *first.AssigneeID != 7 {
		t.Errorf("first task references wrong: %+v", first)
	}
	if !first.DateFin.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date_fin parsed as %v", first.DateFin)
	}

	second := tasks[1]
	if second.ProjetID != 4 {
		t.Errorf("nested projet id parsed as %d, want 4", second.ProjetID)
	}
	if second.AssigneeID != nil {
		t.Error("null assignee should stay nil")
	}
}

func TestCreateTaskRejectsInvertedDates(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.CreateTask(context.Background(), model.Task{
		Nom:       "Inversée",
		DateDebut: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		DateFin:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Statut:    model.StatusEnAttente,
		Priorite:  model.PriorityMoyenne,
		ProjetID:  1,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if called {
		t.Error("invalid write must not reach the backend")
	}
}

func TestChangeStatusPostsAction(t *testing.T) {
	var gotPath, gotBody string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"success": true}`))
	}))

	if err := c.ChangeTaskStatus(context.Background(), 5, model.StatusTermine); err != nil {
		t.Fatalf("change status: %v", err)
	}
	if gotPath != "/api/taches/5/change_status/" {
		t.Errorf("path = %s", gotPath)
	}
	if !strings.Contains(gotBody, model.StatusTermine) {
		t.Errorf("body %q should carry the new status", gotBody)
	}
}

func TestUploadFileSendsMultipart(t *testing.T) {
	src := filepath.Join(t.TempDir(), "rapport.txt")
	if err := os.WriteFile(src, []byte("contenu du rapport"), 0o600); err != nil {
		t.Fatal(err)
	}

	var gotProjet, gotName, gotContent string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart form: %v", err)
		}
		gotProjet = r.FormValue("projet")
		f, header, err := r.FormFile("fichier")
		if err != nil {
			t.Fatalf("missing fichier part: %v", err)
		}
		defer f.Close()
		gotName = header.Filename
		raw, _ := io.ReadAll(f)
		gotContent = string(raw)
		w.Write([]byte(`{"id": 7, "nom": "rapport.txt", "fichier": "/media/rapport.txt", "projet": 3}`))
	}))

	file, err := c.UploadFile(context.Background(), 3, src)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if gotProjet != "3" {
		t.Errorf("projet field = %q, want 3", gotProjet)
	}
	if gotName != "rapport.txt" {
		t.Errorf("filename = %q", gotName)
	}
	if gotContent != "contenu du rapport" {
		t.Errorf("content = %q", gotContent)
	}
	if file.ID != 7 || file.ProjetID != 3 {
		t.Errorf("returned file = %+v", file)
	}
}

func TestDownloadFileWritesBinary(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/media/notes.pdf" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte("%PDF-fake"))
	}))

	dir := t.TempDir()
	dest, err := c.DownloadFile(context.Background(), model.File{
		Nom: "notes.pdf",
		URL: "/media/notes.pdf",
	}, dir)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if dest != filepath.Join(dir, "notes.pdf") {
		t.Errorf("dest = %s", dest)
	}
	raw, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "%PDF-fake" {
		t.Errorf("content = %q", raw)
	}
}
