// Package access is the single place where role-based permissions are
// decided. Views consume its answers as data instead of re-implementing
// role checks per screen.
package access

import "github.com/promanager/promanager/internal/model"

// Action identifies an operation a member may attempt.
type Action string

const (
	ActionCreateProject Action = "projet.create"
	ActionEditProject   Action = "projet.edit"
	ActionDeleteProject Action = "projet.delete"

	ActionCreateTask       Action = "tache.create"
	ActionEditTask         Action = "tache.edit"
	ActionChangeTaskStatus Action = "tache.change_status"
	ActionAssignTask       Action = "tache.assign"

	ActionAddProjectMember    Action = "projet.add_member"
	ActionRemoveProjectMember Action = "projet.remove_member"

	ActionViewUsers      Action = "membre.list"
	ActionArchiveMember  Action = "membre.archive"
	ActionRestoreMember  Action = "membre.unarchive"

	ActionViewOwnProfile Action = "profil.view"
	ActionEditOwnProfile Action = "profil.edit"
	ActionViewProfile    Action = "membre.view"

	ActionPostComment Action = "commentaire.create"
)

// MutatingActions lists every action that writes state. Used by tests
// to assert the fail-closed contract for unknown roles.
var MutatingActions = []Action{
	ActionCreateProject,
	ActionEditProject,
	ActionDeleteProject,
	ActionCreateTask,
	ActionEditTask,
	ActionChangeTaskStatus,
	ActionAssignTask,
	ActionAddProjectMember,
	ActionRemoveProjectMember,
	ActionArchiveMember,
	ActionRestoreMember,
	ActionEditOwnProfile,
	ActionPostComment,
}

// managementActions are granted to ADMIN and CHEF_PROJET.
var managementActions = []Action{
	ActionCreateProject,
	ActionEditProject,
	ActionDeleteProject,
	ActionCreateTask,
	ActionEditTask,
	ActionChangeTaskStatus,
	ActionAssignTask,
	ActionAddProjectMember,
	ActionRemoveProjectMember,
}

// adminActions are granted to ADMIN only.
var adminActions = []Action{
	ActionViewUsers,
	ActionArchiveMember,
	ActionRestoreMember,
}

// commonActions are granted to every recognized role.
var commonActions = []Action{
	ActionViewOwnProfile,
	ActionEditOwnProfile,
	ActionViewProfile,
	ActionPostComment,
}

var rolePermissions = map[model.Role]map[Action]struct{}{
	model.RoleAdmin:  permissionSet(commonActions, managementActions, adminActions),
	model.RoleChef:   permissionSet(commonActions, managementActions),
	model.RoleMembre: permissionSet(commonActions),
}

func permissionSet(groups ...[]Action) map[Action]struct{} {
	set := make(map[Action]struct{})
	for _, group := range groups {
		for _, a := range group {
			set[a] = struct{}{}
		}
	}
	return set
}

// Allowed reports whether the role may perform the action. Unknown
// roles and unknown actions are denied.
func Allowed(role model.Role, action Action) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = perms[action]
	return ok
}

// CanDeleteComment reports whether a member may delete a comment.
// Deletion is limited to the member's own comments for every role.
func CanDeleteComment(role model.Role, memberID, authorID int64) bool {
	if _, ok := rolePermissions[role]; !ok {
		return false
	}
	return memberID == authorID
}
