package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/promanager/promanager/internal/cache"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/tests/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUpsertTasksLastWriteWins(t *testing.T) {
	c := testutil.NewTestCache(t)
	ctx := context.Background()

	first := model.Task{
		ID: 1, Nom: "Maquettes", Statut: model.StatusEnAttente,
		Priorite: model.PriorityMoyenne, ProjetID: 10,
		DateDebut: date(2026, 3, 1), DateFin: date(2026, 3, 15),
	}
	if err := c.UpsertTasks(ctx, []model.Task{first}); err != nil {
		t.Fatalf("UpsertTasks: %v", err)
	}

	second := first
	second.Statut = model.StatusEnCours
	second.Priorite = model.PriorityUrgente
	if err := c.UpsertTasks(ctx, []model.Task{second}); err != nil {
		t.Fatalf("UpsertTasks (second): %v", err)
	}

	tasks, err := c.Tasks(ctx, cache.TaskFilter{})
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].Statut != model.StatusEnCours || tasks[0].Priorite != model.PriorityUrgente {
		t.Errorf("row = %q/%q, want the later write", tasks[0].Statut, tasks[0].Priorite)
	}
}

func TestTasksFilters(t *testing.T) {
	c := testutil.NewTestCache(t)
	ctx := context.Background()

	assignee := int64(7)
	seed := []model.Task{
		{ID: 1, Nom: "Cadrage", Statut: model.StatusEnCours, Priorite: model.PriorityMoyenne, ProjetID: 1, DateFin: date(2026, 4, 3)},
		{ID: 2, Nom: "Recette", Statut: model.StatusEnAttente, Priorite: model.PriorityElevee, ProjetID: 1, DateFin: date(2026, 4, 1), AssigneeID: &assignee},
		{ID: 3, Nom: "Déploiement", Statut: model.StatusEnCours, Priorite: model.PriorityUrgente, ProjetID: 2, DateFin: date(2026, 4, 2)},
	}
	if err := c.UpsertTasks(ctx, seed); err != nil {
		t.Fatalf("UpsertTasks: %v", err)
	}

	projet := int64(1)
	got, err := c.Tasks(ctx, cache.TaskFilter{ProjetID: &projet})
	if err != nil {
		t.Fatalf("Tasks(projet): %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("projet filter: got %d tasks, want 2", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("ordering = [%d %d], want due date ascending [2 1]", got[0].ID, got[1].ID)
	}

	statut := model.StatusEnCours
	got, err = c.Tasks(ctx, cache.TaskFilter{Statut: &statut})
	if err != nil {
		t.Fatalf("Tasks(statut): %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("statut filter: got %d tasks, want 2", len(got))
	}

	got, err = c.Tasks(ctx, cache.TaskFilter{AssigneeID: &assignee})
	if err != nil {
		t.Fatalf("Tasks(assignee): %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("assignee filter: got %v, want task 2", got)
	}
	if got[0].AssigneeID == nil || *got[0].AssigneeID != 7 {
		t.Errorf("assignee did not round-trip: %v", got[0].AssigneeID)
	}

	q := "cadr"
	got, err = c.Tasks(ctx, cache.TaskFilter{Query: &q})
	if err != nil {
		t.Fatalf("Tasks(query): %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("query filter: got %v, want task 1", got)
	}
}

func TestMembersArchiveFiltering(t *testing.T) {
	c := testutil.NewTestCache(t)
	ctx := context.Background()

	archived := date(2026, 1, 10)
	seed := []model.Member{
		{ID: 1, Nom: "Zoé", Role: model.RoleMembre, IsActive: true, DateCreation: date(2025, 6, 1)},
		{ID: 2, Nom: "Ahmed", Role: model.RoleChef, IsActive: true, DateCreation: date(2025, 6, 1)},
		{ID: 3, Nom: "Marc", Role: model.RoleMembre, IsActive: false, ArchivedAt: &archived, DateCreation: date(2025, 6, 1)},
	}
	if err := c.UpsertMembers(ctx, seed); err != nil {
		t.Fatalf("UpsertMembers: %v", err)
	}

	active, err := c.Members(ctx, false)
	if err != nil {
		t.Fatalf("Members(active): %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("got %d active members, want 2", len(active))
	}
	if active[0].Nom != "Ahmed" || active[1].Nom != "Zoé" {
		t.Errorf("ordering = [%s %s], want by name", active[0].Nom, active[1].Nom)
	}

	all, err := c.Members(ctx, true)
	if err != nil {
		t.Fatalf("Members(all): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d members, want 3", len(all))
	}

	m, err := c.MemberByID(ctx, 3)
	if err != nil {
		t.Fatalf("MemberByID: %v", err)
	}
	if m == nil || m.ArchivedAt == nil || !m.ArchivedAt.Equal(archived) {
		t.Errorf("archived_at did not round-trip: %+v", m)
	}
}

func TestSetMemberActive(t *testing.T) {
	c := testutil.NewTestCache(t)
	ctx := context.Background()

	if err := c.UpsertMembers(ctx, []model.Member{
		{ID: 5, Nom: "Lina", Role: model.RoleMembre, IsActive: true, DateCreation: date(2025, 2, 1)},
	}); err != nil {
		t.Fatalf("UpsertMembers: %v", err)
	}

	when := date(2026, 2, 2)
	if err := c.SetMemberActive(ctx, 5, false, &when); err != nil {
		t.Fatalf("SetMemberActive: %v", err)
	}

	m, err := c.MemberByID(ctx, 5)
	if err != nil {
		t.Fatalf("MemberByID: %v", err)
	}
	if m.IsActive {
		t.Error("member still active after archive")
	}
	if m.ArchivedAt == nil || !m.ArchivedAt.Equal(when) {
		t.Errorf("ArchivedAt = %v, want %v", m.ArchivedAt, when)
	}

	if err := c.SetMemberActive(ctx, 5, true, nil); err != nil {
		t.Fatalf("SetMemberActive (restore): %v", err)
	}
	m, _ = c.MemberByID(ctx, 5)
	if !m.IsActive || m.ArchivedAt != nil {
		t.Errorf("restore left member %+v", m)
	}
}

func TestSetTaskAssigneeWritesDenormalizedName(t *testing.T) {
	c := testutil.NewTestCache(t)
	ctx := context.Background()

	if err := c.UpsertTasks(ctx, []model.Task{
		{ID: 4, Nom: "Relire le cahier des charges", Statut: model.StatusEnCours,
			Priorite: model.PriorityMoyenne, ProjetID: 1},
	}); err != nil {
		t.Fatalf("UpsertTasks: %v", err)
	}

	id := int64(5)
	if err := c.SetTaskAssignee(ctx, 4, &id, "Lina"); err != nil {
		t.Fatalf("SetTaskAssignee: %v", err)
	}

	task, err := c.TaskByID(ctx, 4)
	if err != nil {
		t.Fatalf("TaskByID: %v", err)
	}
	if task.AssigneeID == nil || *task.AssigneeID != 5 {
		t.Errorf("AssigneeID = %v, want 5", task.AssigneeID)
	}
	if task.AssigneeNom != "Lina" {
		t.Errorf("AssigneeNom = %q, want Lina", task.AssigneeNom)
	}

	if err := c.SetTaskAssignee(ctx, 4, nil, ""); err != nil {
		t.Fatalf("SetTaskAssignee (clear): %v", err)
	}
	task, _ = c.TaskByID(ctx, 4)
	if task.AssigneeID != nil || task.AssigneeNom != "" {
		t.Errorf("clear left assignee %v %q", task.AssigneeID, task.AssigneeNom)
	}
}

func TestProjectByIDAssemblesDetail(t *testing.T) {
	c := testutil.NewTestCache(t)
	ctx := context.Background()

	p := model.Project{
		ID: 1, Nom: "Refonte", Statut: model.StatusEnCours,
		DateDebut: date(2026, 1, 1), DateFin: date(2026, 6, 30),
		Membres: []model.Member{
			{ID: 1, Nom: "Zoé", Role: model.RoleMembre, IsActive: true, DateCreation: date(2025, 6, 1)},
			{ID: 2, Nom: "Ahmed", Role: model.RoleChef, IsActive: true, DateCreation: date(2025, 6, 1)},
		},
		Taches: []model.Task{
			{ID: 1, Nom: "Cadrage", Statut: model.StatusTermine, Priorite: model.PriorityMoyenne, ProjetID: 1, DateFin: date(2026, 2, 1)},
		},
	}
	if err := c.UpsertProjects(ctx, []model.Project{p}); err != nil {
		t.Fatalf("UpsertProjects: %v", err)
	}

	got, err := c.ProjectByID(ctx, 1)
	if err != nil {
		t.Fatalf("ProjectByID: %v", err)
	}
	if got == nil {
		t.Fatal("ProjectByID returned nil for cached project")
	}
	if len(got.Membres) != 2 {
		t.Errorf("got %d membres, want 2", len(got.Membres))
	}
	if len(got.Taches) != 1 || got.Taches[0].Nom != "Cadrage" {
		t.Errorf("taches = %+v, want the cached task", got.Taches)
	}

	missing, err := c.ProjectByID(ctx, 99)
	if err != nil {
		t.Fatalf("ProjectByID(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("ProjectByID(missing) = %+v, want nil", missing)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	c := testutil.NewTestCache(t)
	ctx := context.Background()

	if err := c.UpsertProjects(ctx, []model.Project{
		{ID: 1, Nom: "Refonte", Statut: model.StatusEnCours, DateDebut: date(2026, 1, 1), DateFin: date(2026, 6, 30)},
	}); err != nil {
		t.Fatalf("UpsertProjects: %v", err)
	}
	if err := c.UpsertTasks(ctx, []model.Task{
		{ID: 1, Nom: "Cadrage", Statut: model.StatusEnCours, Priorite: model.PriorityMoyenne, ProjetID: 1, DateFin: date(2026, 2, 1)},
	}); err != nil {
		t.Fatalf("UpsertTasks: %v", err)
	}
	if err := c.UpsertComments(ctx, []model.Comment{
		{ID: 1, Contenu: "ok", Date: date(2026, 1, 5), TacheID: 1, AuteurID: 2},
	}); err != nil {
		t.Fatalf("UpsertComments: %v", err)
	}
	if err := c.UpsertFiles(ctx, []model.File{
		{ID: 1, Nom: "cdc.pdf", DatePartage: date(2026, 1, 2), ProjetID: 1},
	}); err != nil {
		t.Fatalf("UpsertFiles: %v", err)
	}

	if err := c.DeleteProject(ctx, 1); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	tasks, _ := c.Tasks(ctx, cache.TaskFilter{})
	if len(tasks) != 0 {
		t.Errorf("%d tasks survived project deletion", len(tasks))
	}
	comments, _ := c.CommentsForTask(ctx, 1)
	if len(comments) != 0 {
		t.Errorf("%d comments survived project deletion", len(comments))
	}
	files, _ := c.FilesForProject(ctx, 1)
	if len(files) != 0 {
		t.Errorf("%d files survived project deletion", len(files))
	}
}

func TestCommentsOrderedOldestFirst(t *testing.T) {
	c := testutil.NewTestCache(t)
	ctx := context.Background()

	seed := []model.Comment{
		{ID: 2, Contenu: "ensuite", Date: date(2026, 1, 6), TacheID: 1, AuteurID: 2},
		{ID: 1, Contenu: "d'abord", Date: date(2026, 1, 5), TacheID: 1, AuteurID: 2},
		{ID: 3, Contenu: "ailleurs", Date: date(2026, 1, 4), TacheID: 9, AuteurID: 2},
	}
	if err := c.UpsertComments(ctx, seed); err != nil {
		t.Fatalf("UpsertComments: %v", err)
	}

	got, err := c.CommentsForTask(ctx, 1)
	if err != nil {
		t.Fatalf("CommentsForTask: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d comments, want 2", len(got))
	}
	if got[0].Contenu != "d'abord" || got[1].Contenu != "ensuite" {
		t.Errorf("ordering = [%s %s], want oldest first", got[0].Contenu, got[1].Contenu)
	}

	if err := c.DeleteComment(ctx, 1); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	got, _ = c.CommentsForTask(ctx, 1)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("after delete, comments = %+v", got)
	}
}

func TestFilesNewestFirst(t *testing.T) {
	c := testutil.NewTestCache(t)
	ctx := context.Background()

	seed := []model.File{
		{ID: 1, Nom: "v1.pdf", DatePartage: date(2026, 1, 2), ProjetID: 1},
		{ID: 2, Nom: "v2.pdf", DatePartage: date(2026, 2, 2), ProjetID: 1},
	}
	if err := c.UpsertFiles(ctx, seed); err != nil {
		t.Fatalf("UpsertFiles: %v", err)
	}

	got, err := c.FilesForProject(ctx, 1)
	if err != nil {
		t.Fatalf("FilesForProject: %v", err)
	}
	if len(got) != 2 || got[0].Nom != "v2.pdf" {
		t.Errorf("ordering = %+v, want newest first", got)
	}
}
