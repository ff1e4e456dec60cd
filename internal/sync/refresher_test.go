package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/promanager/promanager/internal/api"
	"github.com/promanager/promanager/internal/cache"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/tests/testutil"
)

func newTestRefresher(t *testing.T, handler http.Handler) (*Refresher, *cache.SQLiteCache) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, 5*time.Second)
	client.SetToken("tok")

	c := testutil.NewTestCache(t)
	return New(client, c), c
}

func TestRefreshAllPopulatesCache(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/profile/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username": "zoe", "nom": "Zoé", "email": "zoe@example.com", "role": "MEMBRE"}`))
	})
	mux.HandleFunc("/api/projets/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "nom": "Refonte", "statut": "En cours", "date_debut": "2026-01-01", "date_fin": "2026-06-30"}]`))
	})
	mux.HandleFunc("/api/taches/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "nom": "Cadrage", "statut": "Terminé", "priorite": "Moyenne", "projet": 1, "date_fin": "2026-02-01"},
			{"id": 2, "nom": "Recette", "statut": "En cours", "priorite": "Élevée", "projet": 1, "date_fin": "2026-05-01"}
		]`))
	})
	mux.HandleFunc("/api/membres/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "nom": "Zoé", "role": "MEMBRE", "is_active": true}]`))
	})

	r, c := newTestRefresher(t, mux)

	cmd := r.RefreshAll()
	if cmd == nil {
		t.Fatal("RefreshAll returned nil cmd")
	}

	var gotProfile bool
	for i := 0; i < len(refreshResources); i++ {
		msg := cmd()
		result, ok := msg.(ResultMsg)
		if !ok {
			t.Fatalf("message %d: got %T, want ResultMsg", i, msg)
		}
		if result.Err != nil {
			t.Fatalf("resource %s failed: %v", result.Resource, result.Err)
		}
		if result.Resource == ResourceProfile {
			if result.Profile == nil || result.Profile.Role != model.RoleMembre {
				t.Errorf("profile result = %+v, want normalized MEMBRE role", result.Profile)
			}
			gotProfile = true
		}
		cmd = r.WaitForNextResult()
	}
	if !gotProfile {
		t.Error("no profile result received")
	}

	ctx := context.Background()
	projects, err := c.Projects(ctx)
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if len(projects) != 1 || projects[0].Nom != "Refonte" {
		t.Errorf("cached projects = %+v", projects)
	}

	tasks, err := c.Tasks(ctx, cache.TaskFilter{})
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("got %d cached tasks, want 2", len(tasks))
	}

	members, err := c.Members(ctx, true)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("got %d cached members, want 1", len(members))
	}

	for _, st := range r.Statuses() {
		if st.State != StateIdle {
			t.Errorf("resource %s left in state %d", st.Resource, st.State)
		}
		if st.LastSync.IsZero() {
			t.Errorf("resource %s has no LastSync", st.Resource)
		}
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projets/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 9, "nom": "Obsolète", "statut": "En cours", "date_debut": "2026-01-01", "date_fin": "2026-06-30"}]`))
	})

	r, c := newTestRefresher(t, mux)

	gen := r.currentGeneration()
	r.Abandon()

	if err := r.fetchProjects(context.Background(), gen); err != nil {
		t.Fatalf("fetchProjects: %v", err)
	}

	projects, err := c.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("stale fetch wrote %d projects into the cache", len(projects))
	}

	r.fetch(gen, ResourceTasks)
	select {
	case msg := <-r.resultCh:
		t.Errorf("stale fetch emitted %+v", msg)
	default:
	}
}

func TestFailedFetchKeepsCachedRows(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/taches/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "indisponible"}`, http.StatusInternalServerError)
	})

	r, c := newTestRefresher(t, mux)

	ctx := context.Background()
	seed := model.Task{
		ID: 1, Nom: "Cadrage", Statut: model.StatusEnCours,
		Priorite: model.PriorityMoyenne, ProjetID: 1,
		DateFin: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := c.UpsertTasks(ctx, []model.Task{seed}); err != nil {
		t.Fatalf("UpsertTasks: %v", err)
	}

	r.fetch(r.currentGeneration(), ResourceTasks)

	msg := <-r.resultCh
	if msg.Err == nil {
		t.Fatal("expected an error result")
	}
	if msg.Auth {
		t.Error("server error flagged as auth failure")
	}

	tasks, err := c.Tasks(ctx, cache.TaskFilter{})
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("failed fetch disturbed the cache: %d tasks", len(tasks))
	}

	statuses := r.Statuses()
	for _, st := range statuses {
		if st.Resource == ResourceTasks && st.State != StateError {
			t.Errorf("tasks status = %d, want StateError", st.State)
		}
	}
}

func TestAuthFailureFlagged(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/membres/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "Token invalide"}`, http.StatusUnauthorized)
	})

	r, _ := newTestRefresher(t, mux)

	r.fetchMembers(r.currentGeneration(), false)

	msg := <-r.resultCh
	if msg.Err == nil || !msg.Auth {
		t.Fatalf("result = %+v, want auth failure", msg)
	}
}
