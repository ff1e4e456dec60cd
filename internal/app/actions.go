package app

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/promanager/promanager/internal/api"
	"github.com/promanager/promanager/internal/model"
)

// actionTimeout bounds every server round trip issued from the UI.
const actionTimeout = 15 * time.Second

// actionErrMsg reports a failed server call. Auth failures are routed
// to the login screen by the root model.
type actionErrMsg struct {
	err error
}

// mirrorErrMsg reports a cache write that failed after the server
// accepted the mutation. The follow-up message still runs so the
// screens reload rather than silently rendering stale rows.
type mirrorErrMsg struct {
	err   error
	after tea.Msg
}

// mirror relays the follow-up message, flagging a failed cache
// write-through along the way.
func mirror(err error, after tea.Msg) tea.Msg {
	if err != nil {
		return mirrorErrMsg{err: err, after: after}
	}
	return after
}

// projectLoadedMsg carries the assembled project detail.
type projectLoadedMsg struct {
	project   *model.Project
	files     []model.File
	available []api.AvailableMember
}

// taskLoadedMsg carries a task with its comment thread.
type taskLoadedMsg struct {
	task     *model.Task
	comments []model.Comment
}

type projectSavedMsg struct{}

type projectDeletedMsg struct{}

type projectMembersChangedMsg struct {
	projectID int64
}

type taskSavedMsg struct{}

type taskStatusChangedMsg struct {
	taskID int64
}

type taskAssignedMsg struct {
	taskID int64
}

type commentsChangedMsg struct {
	taskID int64
}

type membersChangedMsg struct{}

type membersForAssignMsg struct {
	taskID  int64
	members []model.Member
}

type filesChangedMsg struct {
	projetID int64
}

type fileDownloadedMsg struct {
	path string
}

type profileLoadedMsg struct {
	profile *api.Profile
}

// taskFormOptionsMsg carries the selector choices for the task form,
// plus the task when the form opens in edit mode.
type taskFormOptionsMsg struct {
	projects []model.Project
	members  []model.Member
	task     *model.Task
}

func actionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), actionTimeout)
}

// loadProject fetches the project detail, its shared files and, for
// managers, the members that can still be added. Server responses are
// written through to the cache; on failure the cached copy is shown.
func (m Model) loadProject(projectID int64, canManage bool) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		project, err := client.GetProject(ctx, projectID)
		if err != nil {
			if api.IsAuthError(err) {
				return actionErrMsg{err: err}
			}
			project, err = c.ProjectByID(ctx, projectID)
			if err != nil || project == nil {
				return actionErrMsg{err: err}
			}
		} else {
			_ = c.UpsertProjects(ctx, []model.Project{*project})
		}

		files, err := client.ListFiles(ctx, projectID)
		if err == nil {
			_ = c.UpsertFiles(ctx, files)
		} else {
			files, _ = c.FilesForProject(ctx, projectID)
		}

		var available []api.AvailableMember
		if canManage {
			available, _ = client.AvailableMembers(ctx)
		}

		return projectLoadedMsg{project: project, files: files, available: available}
	}
}

// loadTask fetches a task and its comment thread.
func (m Model) loadTask(taskID int64) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		task, err := client.GetTask(ctx, taskID)
		if err != nil {
			if api.IsAuthError(err) {
				return actionErrMsg{err: err}
			}
			task, err = c.TaskByID(ctx, taskID)
			if err != nil || task == nil {
				return actionErrMsg{err: err}
			}
		} else {
			_ = c.UpsertTasks(ctx, []model.Task{*task})
		}

		comments, err := client.ListComments(ctx, taskID)
		if err == nil {
			_ = c.UpsertComments(ctx, comments)
		} else {
			comments, _ = c.CommentsForTask(ctx, taskID)
		}

		return taskLoadedMsg{task: task, comments: comments}
	}
}

// taskFormOptions reads the selector choices from the cache. task is
// nil when the form opens in create mode.
func (m Model) taskFormOptions(task *model.Task) tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		projects, err := c.Projects(ctx)
		if err != nil {
			return actionErrMsg{err: err}
		}
		members, err := c.Members(ctx, false)
		if err != nil {
			return actionErrMsg{err: err}
		}
		return taskFormOptionsMsg{projects: projects, members: members, task: task}
	}
}

func (m Model) createProject(p model.Project) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		created, err := client.CreateProject(ctx, p)
		if err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.UpsertProjects(ctx, []model.Project{*created}), projectSavedMsg{})
	}
}

func (m Model) updateProject(p model.Project) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.UpdateProject(ctx, p); err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.UpsertProjects(ctx, []model.Project{p}), projectSavedMsg{})
	}
}

func (m Model) deleteProject(projectID int64) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.DeleteProject(ctx, projectID); err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.DeleteProject(ctx, projectID), projectDeletedMsg{})
	}
}

func (m Model) addProjectMember(projectID, membreID int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.AddProjectMember(ctx, projectID, membreID); err != nil {
			return actionErrMsg{err: err}
		}
		return projectMembersChangedMsg{projectID: projectID}
	}
}

func (m Model) removeProjectMember(projectID, membreID int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.RemoveProjectMember(ctx, projectID, membreID); err != nil {
			return actionErrMsg{err: err}
		}
		return projectMembersChangedMsg{projectID: projectID}
	}
}

func (m Model) createTask(t model.Task) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		created, err := client.CreateTask(ctx, t)
		if err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.UpsertTasks(ctx, []model.Task{*created}), taskSavedMsg{})
	}
}

func (m Model) updateTask(t model.Task) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.UpdateTask(ctx, t); err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.UpsertTasks(ctx, []model.Task{t}), taskSavedMsg{})
	}
}

// changeTaskStatus writes the status server-side first, then mirrors
// it in the cache so the next repaint shows the new value.
func (m Model) changeTaskStatus(taskID int64, statut string) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.ChangeTaskStatus(ctx, taskID, statut); err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.SetTaskStatus(ctx, taskID, statut), taskStatusChangedMsg{taskID: taskID})
	}
}

func (m Model) assignTask(taskID, membreID int64) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.AssignTask(ctx, taskID, membreID); err != nil {
			return actionErrMsg{err: err}
		}
		assigneeNom := ""
		if member, err := c.MemberByID(ctx, membreID); err == nil && member != nil {
			assigneeNom = member.Nom
		}
		return mirror(
			c.SetTaskAssignee(ctx, taskID, &membreID, assigneeNom),
			taskAssignedMsg{taskID: taskID},
		)
	}
}

// membersForAssign reads the assignment pool from the cache.
func (m Model) membersForAssign(taskID int64) tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		members, err := c.Members(ctx, false)
		if err != nil {
			return actionErrMsg{err: err}
		}
		return membersForAssignMsg{taskID: taskID, members: members}
	}
}

func (m Model) postComment(taskID, auteurID int64, contenu string) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		created, err := client.CreateComment(ctx, taskID, auteurID, contenu)
		if err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.UpsertComments(ctx, []model.Comment{*created}), commentsChangedMsg{taskID: taskID})
	}
}

func (m Model) deleteComment(comment model.Comment) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.DeleteComment(ctx, comment.ID); err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.DeleteComment(ctx, comment.ID), commentsChangedMsg{taskID: comment.TacheID})
	}
}

func (m Model) archiveMember(membreID int64) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.ArchiveMember(ctx, membreID); err != nil {
			return actionErrMsg{err: err}
		}
		now := time.Now()
		return mirror(c.SetMemberActive(ctx, membreID, false, &now), membersChangedMsg{})
	}
}

func (m Model) unarchiveMember(membreID int64) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.UnarchiveMember(ctx, membreID); err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.SetMemberActive(ctx, membreID, true, nil), membersChangedMsg{})
	}
}

func (m Model) fetchFiles(projetID int64) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		list, err := client.ListFiles(ctx, projetID)
		if err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.UpsertFiles(ctx, list), filesChangedMsg{projetID: projetID})
	}
}

func (m Model) deleteFile(fileID, projetID int64) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.DeleteFile(ctx, fileID); err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.DeleteFile(ctx, fileID), filesChangedMsg{projetID: projetID})
	}
}

func (m Model) uploadFile(projetID int64, path string) tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		file, err := client.UploadFile(ctx, projetID, path)
		if err != nil {
			return actionErrMsg{err: err}
		}
		return mirror(c.UpsertFiles(ctx, []model.File{*file}), filesChangedMsg{projetID: projetID})
	}
}

func (m Model) downloadFile(file model.File) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		destDir, err := os.UserHomeDir()
		if err != nil {
			destDir = "."
		}
		dest, err := client.DownloadFile(ctx, file, destDir)
		if err != nil {
			return actionErrMsg{err: err}
		}
		return fileDownloadedMsg{path: dest}
	}
}

func (m Model) loadProfile() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		profile, err := client.GetProfile(ctx)
		if err != nil {
			return actionErrMsg{err: err}
		}
		return profileLoadedMsg{profile: profile}
	}
}

func (m Model) updateProfile(patch api.ProfilePatch) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := actionContext()
		defer cancel()

		if err := client.UpdateProfile(ctx, patch); err != nil {
			return actionErrMsg{err: err}
		}
		profile, err := client.GetProfile(ctx)
		if err != nil {
			return actionErrMsg{err: err}
		}
		return profileLoadedMsg{profile: profile}
	}
}
