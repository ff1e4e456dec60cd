package session

import (
	"encoding/json"
	"testing"

	"github.com/promanager/promanager/internal/model"
)

func TestEstablishNormalizesRole(t *testing.T) {
	tests := []struct {
		name      string
		rawRole   string
		wantRole  model.Role
		wantKnown bool
	}{
		{name: "canonical", rawRole: "CHEF_PROJET", wantRole: model.RoleChef, wantKnown: true},
		{name: "mixed case", rawRole: "Membre", wantRole: model.RoleMembre, wantKnown: true},
		{name: "display form", rawRole: "Chef de projet", wantRole: model.RoleChef, wantKnown: true},
		{name: "unknown", rawRole: "SUPERVISEUR", wantKnown: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Establish(State{Token: "tok", MembreID: 7, Role: tt.rawRole})

			role, known := s.Role()
			if known != tt.wantKnown {
				t.Fatalf("Role() known = %v, want %v", known, tt.wantKnown)
			}
			if known && role != tt.wantRole {
				t.Errorf("Role() = %q, want %q", role, tt.wantRole)
			}
		})
	}
}

func TestClearWipesIdentity(t *testing.T) {
	s := New()
	s.Establish(State{Token: "tok", Refresh: "ref", MembreID: 3, Role: "ADMIN"})

	if !s.Active() {
		t.Fatal("Active() = false after Establish")
	}

	s.Clear()

	if s.Active() {
		t.Error("Active() = true after Clear")
	}
	if s.Token() != "" {
		t.Errorf("Token() = %q after Clear, want empty", s.Token())
	}
	if s.MembreID() != 0 {
		t.Errorf("MembreID() = %d after Clear, want 0", s.MembreID())
	}
	if _, known := s.Role(); known {
		t.Error("Role() known after Clear")
	}

	// The session must stay usable across logout/login cycles.
	s.Establish(State{Token: "tok2", MembreID: 4, Role: "MEMBRE"})
	if !s.Active() {
		t.Fatal("Active() = false after re-Establish")
	}
	s.Clear()
	if s.Active() {
		t.Error("Active() = true after second Clear")
	}
}

func TestSnapshotKeepsRawRole(t *testing.T) {
	s := New()
	s.Establish(State{Token: "tok", Refresh: "ref", MembreID: 9, Role: "Membre"})

	st := s.Snapshot()
	if st.Role != "Membre" {
		t.Errorf("Snapshot().Role = %q, want raw %q", st.Role, "Membre")
	}
	if st.Token != "tok" || st.Refresh != "ref" || st.MembreID != 9 {
		t.Errorf("Snapshot() = %+v, fields do not round-trip", st)
	}
}

func TestStateRoundTrip(t *testing.T) {
	in := State{Token: "tok", Refresh: "ref", MembreID: 12, Role: "ADMIN"}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out State
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	s := New()
	s.Establish(out)

	role, known := s.Role()
	if !known || role != model.RoleAdmin {
		t.Errorf("restored Role() = %q known=%v, want ADMIN", role, known)
	}
	if s.MembreID() != 12 {
		t.Errorf("restored MembreID() = %d, want 12", s.MembreID())
	}
}
