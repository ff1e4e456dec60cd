package menu

import (
	"testing"

	"github.com/promanager/promanager/internal/model"
)

func sectionTitles(sections []Section) []string {
	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}
	return titles
}

func TestBuildSectionsPerRole(t *testing.T) {
	cases := []struct {
		role   model.Role
		titles []string
	}{
		{model.RoleAdmin, []string{"Administration", "Rapports", "Mon compte"}},
		{model.RoleChef, []string{"Gestion des projets et tâches", "Rapports", "Outils", "Mon compte"}},
		{model.RoleMembre, []string{"Espace membre", "Rapports", "Outils", "Mon compte"}},
	}

	for _, tc := range cases {
		got := sectionTitles(Build(tc.role))
		if len(got) != len(tc.titles) {
			t.Errorf("%s: got sections %v, want %v", tc.role, got, tc.titles)
			continue
		}
		for i := range got {
			if got[i] != tc.titles[i] {
				t.Errorf("%s: section %d = %q, want %q", tc.role, i, got[i], tc.titles[i])
			}
		}
	}
}

func TestBuildUnknownRoleIsEmpty(t *testing.T) {
	for _, role := range []model.Role{"", "INVITE", "admin "} {
		if got := Build(role); len(got) != 0 {
			t.Errorf("Build(%q) = %d sections, want empty menu", role, len(got))
		}
	}
}

func TestAdminMenuContainsUserManagement(t *testing.T) {
	sections := Build(model.RoleAdmin)
	found := false
	for _, s := range sections {
		for _, l := range s.Links {
			if l.Route == RouteUsers {
				found = true
			}
		}
	}
	if !found {
		t.Error("admin menu should link to user management")
	}

	for _, s := range Build(model.RoleMembre) {
		for _, l := range s.Links {
			if l.Route == RouteUsers {
				t.Error("member menu must not link to user management")
			}
		}
	}
}
