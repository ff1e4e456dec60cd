package model

import (
	"testing"
	"time"
)

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		raw  string
		want Role
		ok   bool
	}{
		{"ADMIN", RoleAdmin, true},
		{"CHEF_PROJET", RoleChef, true},
		{"MEMBRE", RoleMembre, true},
		{"Membre", RoleMembre, true},
		{" membre ", RoleMembre, true},
		{"chef_projet", RoleChef, true},
		{"Administrateur", RoleAdmin, true},
		{"", "", false},
		{"SUPERUSER", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeRole(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NormalizeRole(%q) = (%q, %v), want (%q, %v)",
				tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestActiveMembers(t *testing.T) {
	archived := time.Now()
	members := []Member{
		{ID: 1, Nom: "Alice", IsActive: true},
		{ID: 2, Nom: "Bob", IsActive: false, ArchivedAt: &archived},
		{ID: 3, Nom: "Chloé", IsActive: true},
	}

	active := ActiveMembers(members)
	if len(active) != 2 {
		t.Fatalf("expected 2 active members, got %d", len(active))
	}
	if active[0].ID != 1 || active[1].ID != 3 {
		t.Errorf("active members out of order: %+v", active)
	}
}

func TestValidateDateRange(t *testing.T) {
	debut := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	if err := ValidateDateRange(debut, debut.AddDate(0, 0, 5)); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateDateRange(debut, debut); err != nil {
		t.Errorf("same-day range rejected: %v", err)
	}
	if err := ValidateDateRange(debut, debut.AddDate(0, 0, -1)); err == nil {
		t.Error("expected error for end before start")
	}
	if err := ValidateDateRange(time.Time{}, debut); err != nil {
		t.Errorf("zero start should be accepted: %v", err)
	}
}
