package access

import (
	"testing"

	"github.com/promanager/promanager/internal/model"
)

func TestManagementActionsPerRole(t *testing.T) {
	cases := []struct {
		role   model.Role
		action Action
		want   bool
	}{
		{model.RoleAdmin, ActionCreateProject, true},
		{model.RoleChef, ActionCreateProject, true},
		{model.RoleMembre, ActionCreateProject, false},

		{model.RoleAdmin, ActionDeleteProject, true},
		{model.RoleChef, ActionDeleteProject, true},
		{model.RoleMembre, ActionDeleteProject, false},

		{model.RoleAdmin, ActionChangeTaskStatus, true},
		{model.RoleChef, ActionChangeTaskStatus, true},
		{model.RoleMembre, ActionChangeTaskStatus, false},

		{model.RoleAdmin, ActionAddProjectMember, true},
		{model.RoleChef, ActionRemoveProjectMember, true},
		{model.RoleMembre, ActionAddProjectMember, false},

		{model.RoleAdmin, ActionViewUsers, true},
		{model.RoleChef, ActionViewUsers, false},
		{model.RoleMembre, ActionViewUsers, false},

		{model.RoleAdmin, ActionArchiveMember, true},
		{model.RoleChef, ActionArchiveMember, false},

		{model.RoleAdmin, ActionEditOwnProfile, true},
		{model.RoleChef, ActionEditOwnProfile, true},
		{model.RoleMembre, ActionEditOwnProfile, true},

		{model.RoleMembre, ActionViewProfile, true},
		{model.RoleMembre, ActionPostComment, true},
	}

	for _, tc := range cases {
		if got := Allowed(tc.role, tc.action); got != tc.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v",
				tc.role, tc.action, got, tc.want)
		}
	}
}

func TestUnknownRoleDeniesEverything(t *testing.T) {
	for _, role := range []model.Role{"", "SUPERUSER", "Membre "} {
		for _, action := range MutatingActions {
			if Allowed(role, action) {
				t.Errorf("Allowed(%q, %s) = true, want fail-closed deny",
					role, action)
			}
		}
	}
}

func TestUnknownActionDenied(t *testing.T) {
	if Allowed(model.RoleAdmin, Action("projet.transfer")) {
		t.Error("unrecognized action should be denied even for ADMIN")
	}
}

func TestCanDeleteComment(t *testing.T) {
	if !CanDeleteComment(model.RoleMembre, 7, 7) {
		t.Error("member should delete their own comment")
	}
	if CanDeleteComment(model.RoleMembre, 7, 8) {
		t.Error("member should not delete another member's comment")
	}
	if CanDeleteComment(model.RoleAdmin, 1, 8) {
		t.Error("deletion is limited to own comments for every role")
	}
	if CanDeleteComment("", 7, 7) {
		t.Error("unknown role should be denied")
	}
}
