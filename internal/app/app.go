// Package app holds the root Bubble Tea model: view routing, the
// role-gated sidebar, session lifecycle and the dispatch of every
// server mutation.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/promanager/promanager/internal/access"
	"github.com/promanager/promanager/internal/api"
	"github.com/promanager/promanager/internal/cache"
	"github.com/promanager/promanager/internal/menu"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/session"
	appsync "github.com/promanager/promanager/internal/sync"
	"github.com/promanager/promanager/internal/ui"
	"github.com/promanager/promanager/internal/ui/adminusers"
	"github.com/promanager/promanager/internal/ui/assign"
	calendarview "github.com/promanager/promanager/internal/ui/calendar"
	dashboardview "github.com/promanager/promanager/internal/ui/dashboard"
	filesview "github.com/promanager/promanager/internal/ui/files"
	helpview "github.com/promanager/promanager/internal/ui/help"
	loginview "github.com/promanager/promanager/internal/ui/login"
	profileview "github.com/promanager/promanager/internal/ui/profile"
	"github.com/promanager/promanager/internal/ui/projectdetail"
	"github.com/promanager/promanager/internal/ui/projectform"
	"github.com/promanager/promanager/internal/ui/projectlist"
	"github.com/promanager/promanager/internal/ui/sidebar"
	"github.com/promanager/promanager/internal/ui/taskdetail"
	"github.com/promanager/promanager/internal/ui/taskform"
	"github.com/promanager/promanager/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewProjects
	ViewProjectDetail
	ViewProjectCreate
	ViewProjectEdit
	ViewTasks
	ViewTaskDetail
	ViewTaskCreate
	ViewTaskEdit
	ViewCalendar
	ViewUsers
	ViewFiles
	ViewProfile
	ViewHelp
	ViewAssign
)

// Model is the root Bubble Tea model that manages view routing, the
// sidebar, and access to the API client and the local cache.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	client       *api.Client
	cache        cache.Cache
	session      *session.Session
	refresher    *appsync.Refresher
	keys         *KeyMap

	sidebar     sidebar.Model
	login       loginview.Model
	dashboard   dashboardview.Model
	projectList projectlist.Model
	projectView projectdetail.Model
	projectForm projectform.Model
	taskList    tasklist.Model
	taskView    taskdetail.Model
	taskForm    taskform.Model
	calendar    calendarview.Model
	users       adminusers.Model
	files       filesview.Model
	profile     profileview.Model
	helpView    helpview.Model
	assignView  assign.Model

	// available caches the last fetched addable-members list so the
	// picker opens without a round trip.
	available []api.AvailableMember

	ready  bool
	banner string
}

// New creates the root application model. sess may hold a restored
// session; when it is empty the login screen is shown first.
func New(client *api.Client, c cache.Cache, sess *session.Session) Model {
	keys := DefaultKeyMap()
	role, _ := sess.Role()

	current := ViewLogin
	if sess.Active() {
		current = ViewDashboard
	}

	return Model{
		currentView: current,
		client:      client,
		cache:       c,
		session:     sess,
		refresher:   appsync.New(client, c),
		keys:        keys,
		sidebar:     sidebar.New(role, keys, ui.SidebarWidth, 24),
		login:       loginview.New(client, 80, 24),
		dashboard:   dashboardview.New(c, keys, 80, 24),
		projectList: projectlist.New(c, keys, 80, 24),
		projectView: projectdetail.New(keys, 80, 24),
		projectForm: projectform.New(80, 24),
		taskList:    tasklist.New(c, keys, 80, 24),
		taskView:    taskdetail.New(keys, sess.MembreID(), 80, 24),
		taskForm:    taskform.New(80, 24),
		calendar:    calendarview.New(c, keys, 80, 24),
		users:       adminusers.New(c, keys, 80, 24),
		files:       filesview.New(c, keys, 80, 24),
		profile:     profileview.New(keys, 80, 24),
		helpView:    helpview.New(keys, 80, 24),
		assignView:  assign.New(keys, 80, 24),
	}
}

// Init starts either the login form or, with a restored session, the
// first full refresh.
func (m Model) Init() tea.Cmd {
	if !m.session.Active() {
		return m.login.Init()
	}
	m.client.SetToken(m.session.Token())
	return tea.Batch(m.refresher.RefreshAll(), m.dashboard.LoadStats())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg)

	case appsync.ResultMsg:
		return m.handleRefreshResult(msg)

	case actionErrMsg:
		if api.IsAuthError(msg.err) {
			return m.expireSession()
		}
		if msg.err != nil {
			m.banner = msg.err.Error()
		}
		return m, nil

	case mirrorErrMsg:
		m.banner = "Cache local non mis à jour: " + msg.err.Error()
		return m.Update(msg.after)

	case loginview.LoginSuccessMsg:
		return m.establishSession(msg.Creds)

	case sidebar.NavigateMsg:
		m.sidebar.Blur()
		return m.navigateTo(msg.Route)

	// Project screens.

	case projectlist.SelectedProjectMsg:
		canManage := m.allowed(access.ActionAddProjectMember)
		m.projectView.SetProject(nil)
		m.projectView.SetCanManage(canManage)
		m.setView(ViewProjectDetail)
		return m, m.loadProject(msg.ProjectID, canManage)

	case projectlist.EditRequestMsg:
		if m.deny(access.ActionEditProject) {
			return m, nil
		}
		m.setView(ViewProjectEdit)
		return m, m.projectForm.StartEdit(msg.Project)

	case projectlist.DeleteRequestMsg:
		if m.deny(access.ActionDeleteProject) {
			return m, nil
		}
		return m, m.deleteProject(msg.ProjectID)

	case projectform.CreatedMsg:
		if m.deny(access.ActionCreateProject) {
			return m, nil
		}
		m.setView(ViewProjects)
		return m, m.createProject(msg.Project)

	case projectform.UpdatedMsg:
		if m.deny(access.ActionEditProject) {
			return m, nil
		}
		m.setView(ViewProjects)
		return m, m.updateProject(msg.Project)

	case projectform.CancelMsg:
		m.setView(ViewProjects)
		return m, m.projectList.LoadProjects()

	case projectLoadedMsg:
		m.projectView.SetProject(msg.project)
		m.projectView.SetFiles(msg.files)
		m.available = msg.available
		return m, nil

	case projectSavedMsg, projectDeletedMsg:
		return m, m.projectList.LoadProjects()

	case projectdetail.BackMsg:
		m.setView(ViewProjects)
		return m, m.projectList.LoadProjects()

	case projectdetail.RequestMembersMsg:
		if m.deny(access.ActionAddProjectMember) {
			return m, nil
		}
		m.projectView.SetAvailableMembers(m.available)
		return m, nil

	case projectdetail.AddMemberRequestMsg:
		if m.deny(access.ActionAddProjectMember) {
			return m, nil
		}
		return m, m.addProjectMember(msg.ProjectID, msg.MembreID)

	case projectdetail.RemoveMemberRequestMsg:
		if m.deny(access.ActionRemoveProjectMember) {
			return m, nil
		}
		return m, m.removeProjectMember(msg.ProjectID, msg.MembreID)

	case projectdetail.DeleteFileRequestMsg:
		if p := m.projectView.Project(); p != nil {
			return m, m.deleteFile(msg.FileID, p.ID)
		}
		return m, nil

	case projectdetail.OpenTaskMsg:
		return m.openTask(msg.TaskID)

	case projectMembersChangedMsg:
		canManage := m.allowed(access.ActionAddProjectMember)
		return m, m.loadProject(msg.projectID, canManage)

	// Task screens.

	case tasklist.SelectedTaskMsg:
		return m.openTask(msg.TaskID)

	case tasklist.StatusChangeRequestMsg:
		if m.deny(access.ActionChangeTaskStatus) {
			return m, nil
		}
		return m, m.changeTaskStatus(msg.TaskID, msg.NextStatut)

	case tasklist.AssignRequestMsg:
		if m.deny(access.ActionAssignTask) {
			return m, nil
		}
		return m, m.membersForAssign(msg.TaskID)

	case membersForAssignMsg:
		m.assignView.Start(msg.taskID, msg.members)
		m.setView(ViewAssign)
		return m, nil

	case assign.ChosenMsg:
		m.restoreView()
		return m, m.assignTask(msg.TaskID, msg.MembreID)

	case assign.CancelMsg:
		m.restoreView()
		return m, nil

	case taskform.CreatedMsg:
		if m.deny(access.ActionCreateTask) {
			return m, nil
		}
		m.setView(ViewTasks)
		return m, m.createTask(msg.Task)

	case taskform.UpdatedMsg:
		if m.deny(access.ActionEditTask) {
			return m, nil
		}
		m.setView(ViewTasks)
		return m, m.updateTask(msg.Task)

	case taskform.CancelMsg:
		m.setView(ViewTasks)
		return m, m.taskList.LoadTasks()

	case taskFormOptionsMsg:
		m.taskForm.SetOptions(msg.projects, msg.members)
		if msg.task != nil {
			m.setView(ViewTaskEdit)
			return m, m.taskForm.StartEdit(*msg.task)
		}
		m.setView(ViewTaskCreate)
		return m, m.taskForm.StartCreate(0)

	case taskLoadedMsg:
		m.taskView.SetTask(msg.task)
		m.taskView.SetComments(msg.comments)
		return m, nil

	case taskSavedMsg:
		return m, m.taskList.LoadTasks()

	case taskStatusChangedMsg, taskAssignedMsg:
		return m.reloadAfterTaskChange(msg)

	case taskdetail.BackMsg:
		m.restoreView()
		return m, m.reloadCurrent()

	case taskdetail.CommentSubmitMsg:
		if m.deny(access.ActionPostComment) {
			return m, nil
		}
		return m, m.postComment(msg.TaskID, m.session.MembreID(), msg.Contenu)

	case taskdetail.CommentDeleteRequestMsg:
		role, _ := m.session.Role()
		if !access.CanDeleteComment(role, m.session.MembreID(), msg.Comment.AuteurID) {
			m.banner = "Seul l'auteur peut supprimer son commentaire"
			return m, nil
		}
		return m, m.deleteComment(msg.Comment)

	case taskdetail.StatusChangeRequestMsg:
		if m.deny(access.ActionChangeTaskStatus) {
			return m, nil
		}
		return m, m.changeTaskStatus(msg.TaskID, msg.NextStatut)

	case commentsChangedMsg:
		return m, m.loadTask(msg.taskID)

	// Members, files, profile.

	case adminusers.ArchiveRequestMsg:
		if m.deny(access.ActionArchiveMember) {
			return m, nil
		}
		return m, m.archiveMember(msg.MembreID)

	case adminusers.UnarchiveRequestMsg:
		if m.deny(access.ActionRestoreMember) {
			return m, nil
		}
		return m, m.unarchiveMember(msg.MembreID)

	case membersChangedMsg:
		return m, tea.Batch(m.users.LoadMembers(), m.refresher.RefreshMembers(true))

	case filesview.FetchRequestMsg:
		return m, m.fetchFiles(msg.ProjetID)

	case filesview.DeleteRequestMsg:
		if projetID := m.files.ProjetID(); projetID != 0 {
			return m, m.deleteFile(msg.FileID, projetID)
		}
		return m, nil

	case filesview.UploadRequestMsg:
		return m, m.uploadFile(msg.ProjetID, msg.Path)

	case filesview.DownloadRequestMsg:
		return m, m.downloadFile(msg.File)

	case fileDownloadedMsg:
		m.banner = "Téléchargé: " + msg.path
		return m, nil

	case filesChangedMsg:
		if m.currentView == ViewFiles {
			return m, m.files.LoadFiles()
		}
		canManage := m.allowed(access.ActionAddProjectMember)
		return m, m.loadProject(msg.projetID, canManage)

	case profileview.UpdateRequestMsg:
		if m.deny(access.ActionEditOwnProfile) {
			return m, nil
		}
		return m, m.updateProfile(msg.Patch)

	case profileLoadedMsg:
		m.profile.SetProfile(msg.profile)
		return m, nil

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKey(msg); handled {
			return mdl, cmd
		}
		if m.sidebar.Focused() {
			var cmd tea.Cmd
			m.sidebar, cmd = m.sidebar.Update(msg)
			return m, cmd
		}
	}

	return m.updateActiveView(msg)
}

func (m Model) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.layout = ui.NewLayout(msg.Width, msg.Height)
	m.layout.ShowSidebar = m.currentView != ViewLogin
	m.ready = true
	m.applySizes()

	// Forward to the active view so huh forms can lay themselves out.
	return m.updateActiveView(msg)
}

// applySizes pushes the layout dimensions into every view. Called on
// terminal resize and whenever sidebar visibility flips.
func (m *Model) applySizes() {
	contentWidth := m.layout.ContentWidth()
	contentHeight := m.layout.ContentHeight()
	m.sidebar.SetSize(ui.SidebarWidth, contentHeight)
	m.login.SetSize(m.layout.Width, contentHeight)
	m.dashboard.SetSize(contentWidth, contentHeight)
	m.projectList.SetSize(contentWidth, contentHeight)
	m.projectView.SetSize(contentWidth, contentHeight)
	m.projectForm.SetSize(contentWidth, contentHeight)
	m.taskList.SetSize(contentWidth, contentHeight)
	m.taskView.SetSize(contentWidth, contentHeight)
	m.taskForm.SetSize(contentWidth, contentHeight)
	m.calendar.SetSize(contentWidth, contentHeight)
	m.users.SetSize(contentWidth, contentHeight)
	m.files.SetSize(contentWidth, contentHeight)
	m.profile.SetSize(contentWidth, contentHeight)
	m.helpView.SetSize(contentWidth, contentHeight)
	m.assignView.SetSize(contentWidth, contentHeight)
}

// handleRefreshResult reacts to one finished background fetch: an auth
// failure drops the session, a success repaints whatever screen shows
// the refreshed resource.
func (m Model) handleRefreshResult(msg appsync.ResultMsg) (tea.Model, tea.Cmd) {
	if msg.Auth {
		return m.expireSession()
	}

	wait := m.refresher.WaitForNextResult()

	if msg.Err != nil {
		m.taskList.MarkStale(true)
		return m, wait
	}

	if msg.Resource == appsync.ResourceProfile && msg.Profile != nil {
		m.profile.SetProfile(msg.Profile)
	}

	m.taskList.MarkStale(false)
	m.banner = ""
	return m, tea.Batch(wait, m.reloadCurrent())
}

// establishSession installs a fresh login and moves to the dashboard.
func (m Model) establishSession(creds api.Credentials) (tea.Model, tea.Cmd) {
	m.session.Establish(session.State{
		Token:    creds.Token,
		Refresh:  creds.Refresh,
		MembreID: creds.MembreID,
		Role:     creds.Role,
	})
	if err := session.Save(m.session); err != nil {
		m.banner = "Session non persistée : " + err.Error()
	}
	m.client.SetToken(creds.Token)

	role, _ := m.session.Role()
	m.sidebar.SetRole(role)
	m.sidebar.SetActive(menu.RouteDashboard)
	m.taskView.SetMemberID(m.session.MembreID())
	m.layout.ShowSidebar = true
	m.applySizes()
	m.setView(ViewDashboard)

	return m, tea.Batch(m.refresher.RefreshAll(), m.dashboard.LoadStats())
}

// expireSession drops the stored credentials and returns to login.
func (m Model) expireSession() (tea.Model, tea.Cmd) {
	m.refresher.Abandon()
	m.session.Clear()
	_ = session.Forget()
	m.client.SetToken("")
	m.layout.ShowSidebar = false
	m.currentView = ViewLogin
	m.banner = "Session expirée, reconnectez-vous."
	m.login = loginview.New(m.client, m.layout.Width, m.layout.ContentHeight())
	m.applySizes()
	return m, m.login.Init()
}

// navigateTo routes a sidebar selection to its screen.
func (m Model) navigateTo(route menu.Route) (tea.Model, tea.Cmd) {
	m.sidebar.SetActive(route)

	switch route {
	case menu.RouteDashboard:
		m.setView(ViewDashboard)
		return m, m.dashboard.LoadStats()

	case menu.RouteProjects:
		m.setView(ViewProjects)
		return m, m.projectList.LoadProjects()

	case menu.RouteCreateProject:
		if m.deny(access.ActionCreateProject) {
			return m, nil
		}
		m.setView(ViewProjectCreate)
		return m, m.projectForm.StartCreate()

	case menu.RouteTasks:
		role, _ := m.session.Role()
		if role == model.RoleMembre {
			id := m.session.MembreID()
			m.taskList.SetAssigneeScope(&id)
		} else {
			m.taskList.SetAssigneeScope(nil)
		}
		m.taskList.SetProjectScope(nil)
		m.setView(ViewTasks)
		return m, m.taskList.LoadTasks()

	case menu.RouteUsers:
		if m.deny(access.ActionViewUsers) {
			return m, nil
		}
		m.setView(ViewUsers)
		return m, tea.Batch(m.users.LoadMembers(), m.refresher.RefreshMembers(true))

	case menu.RouteCalendar:
		m.setView(ViewCalendar)
		return m, m.calendar.Load()

	case menu.RouteFiles:
		m.files.Reset()
		m.setView(ViewFiles)
		return m, m.files.LoadProjects()

	case menu.RouteProfile:
		m.setView(ViewProfile)
		return m, m.loadProfile()
	}

	return m, nil
}

// openTask shows the task detail, fetching the fresh copy.
func (m Model) openTask(taskID int64) (tea.Model, tea.Cmd) {
	m.taskView.SetTask(nil)
	m.setView(ViewTaskDetail)
	return m, m.loadTask(taskID)
}

// reloadAfterTaskChange repaints the screen the mutation was issued
// from.
func (m Model) reloadAfterTaskChange(msg tea.Msg) (tea.Model, tea.Cmd) {
	var taskID int64
	switch msg := msg.(type) {
	case taskStatusChangedMsg:
		taskID = msg.taskID
	case taskAssignedMsg:
		taskID = msg.taskID
	}

	if m.currentView == ViewTaskDetail {
		return m, m.loadTask(taskID)
	}
	return m, m.taskList.LoadTasks()
}

// reloadCurrent reissues the load command of the visible screen.
func (m Model) reloadCurrent() tea.Cmd {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.LoadStats()
	case ViewProjects:
		return m.projectList.LoadProjects()
	case ViewTasks:
		return m.taskList.LoadTasks()
	case ViewCalendar:
		return m.calendar.Load()
	case ViewUsers:
		return m.users.LoadMembers()
	case ViewFiles:
		return m.files.LoadProjects()
	default:
		return nil
	}
}

// handleGlobalKey intercepts the keys that work independently of the
// focused view. Returns false when the key must reach the view, for
// example while a form or a text input has focus.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}

	if m.inputActive() {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewDashboard {
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.restoreView()
			return true, m, nil
		}
		m.helpView.SetContext(helpContextFor(m.currentView))
		m.setView(ViewHelp)
		return true, m, nil

	case "m":
		if m.currentView != ViewLogin {
			if m.sidebar.Focused() {
				m.sidebar.Blur()
			} else {
				m.sidebar.Focus()
			}
			return true, m, nil
		}

	case "n":
		switch m.currentView {
		case ViewProjects:
			if m.deny(access.ActionCreateProject) {
				return true, m, nil
			}
			m.setView(ViewProjectCreate)
			return true, m, m.projectForm.StartCreate()
		case ViewTasks:
			if m.deny(access.ActionCreateTask) {
				return true, m, nil
			}
			return true, m, m.taskFormOptions(nil)
		}

	case "e":
		if m.currentView == ViewTasks {
			task, ok := m.taskList.SelectedTask()
			if !ok {
				return true, m, nil
			}
			if m.deny(access.ActionEditTask) {
				return true, m, nil
			}
			t := task
			return true, m, m.taskFormOptions(&t)
		}

	case "r":
		if m.currentView != ViewLogin {
			return true, m, m.refresher.RefreshAll()
		}

	case "ctrl+d":
		if m.currentView != ViewLogin {
			mdl, cmd := m.expireSession()
			out := mdl.(Model)
			out.banner = "Déconnecté."
			return true, out, cmd
		}
	}

	return false, m, nil
}

// helpContextFor maps a screen to the bindings section the help
// overlay opens with.
func helpContextFor(v ViewState) helpview.Context {
	switch v {
	case ViewProjects:
		return helpview.ContextProjects
	case ViewProjectDetail:
		return helpview.ContextProjectDetail
	case ViewTasks:
		return helpview.ContextTasks
	case ViewTaskDetail:
		return helpview.ContextTaskDetail
	case ViewCalendar:
		return helpview.ContextCalendar
	case ViewUsers:
		return helpview.ContextUsers
	case ViewFiles:
		return helpview.ContextFiles
	case ViewProfile:
		return helpview.ContextProfile
	}
	return helpview.ContextGeneral
}

// inputActive reports whether the focused view is capturing raw typed
// characters.
func (m Model) inputActive() bool {
	switch m.currentView {
	case ViewLogin, ViewProjectCreate, ViewProjectEdit, ViewTaskCreate, ViewTaskEdit:
		return true
	case ViewTasks:
		return m.taskList.Searching()
	case ViewTaskDetail:
		return m.taskView.Writing()
	case ViewProfile:
		return m.profile.Editing()
	case ViewFiles:
		return m.files.Typing()
	}
	return false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.login, cmd = m.login.Update(msg)
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewProjects:
		m.projectList, cmd = m.projectList.Update(msg)
	case ViewProjectDetail:
		m.projectView, cmd = m.projectView.Update(msg)
	case ViewProjectCreate, ViewProjectEdit:
		m.projectForm, cmd = m.projectForm.Update(msg)
	case ViewTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewTaskDetail:
		m.taskView, cmd = m.taskView.Update(msg)
	case ViewTaskCreate, ViewTaskEdit:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewCalendar:
		m.calendar, cmd = m.calendar.Update(msg)
	case ViewUsers:
		m.users, cmd = m.users.Update(msg)
	case ViewFiles:
		m.files, cmd = m.files.Update(msg)
	case ViewProfile:
		m.profile, cmd = m.profile.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewAssign:
		m.assignView, cmd = m.assignView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Chargement..."
	}

	if m.currentView == ViewLogin {
		return m.login.View()
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.refreshStatus())
	content := m.layout.RenderWithSidebar(m.sidebar.View(), m.renderContent())
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.View()
	case ViewProjects:
		return m.projectList.View()
	case ViewProjectDetail:
		return m.projectView.View()
	case ViewProjectCreate, ViewProjectEdit:
		return m.projectForm.View()
	case ViewTasks:
		return m.taskList.View()
	case ViewTaskDetail:
		return m.taskView.View()
	case ViewTaskCreate, ViewTaskEdit:
		return m.taskForm.View()
	case ViewCalendar:
		return m.calendar.View()
	case ViewUsers:
		return m.users.View()
	case ViewFiles:
		return m.files.View()
	case ViewProfile:
		return m.profile.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewAssign:
		return m.assignView.View()
	default:
		return ""
	}
}

func (m Model) headerTitle() string {
	title := "ProManager"
	switch m.currentView {
	case ViewDashboard:
		title += " | Tableau de bord"
	case ViewProjects, ViewProjectDetail:
		title += " | Projets"
	case ViewProjectCreate, ViewProjectEdit:
		title += " | Projet"
	case ViewTasks, ViewTaskDetail, ViewTaskCreate, ViewTaskEdit, ViewAssign:
		title += " | Tâches"
	case ViewCalendar:
		title += " | Calendrier"
	case ViewUsers:
		title += " | Utilisateurs"
	case ViewFiles:
		title += " | Fichiers"
	case ViewProfile:
		title += " | Profil"
	}
	return title
}

// refreshStatus summarizes the background fetches for the header.
func (m Model) refreshStatus() string {
	statuses := m.refresher.Statuses()
	if len(statuses) == 0 {
		return ""
	}

	running := 0
	var failed []string
	for _, s := range statuses {
		switch s.State {
		case appsync.StateRunning:
			running++
		case appsync.StateError:
			failed = append(failed, string(s.Resource))
		}
	}

	if running > 0 {
		return fmt.Sprintf("actualisation (%d)", running)
	}
	if len(failed) > 0 {
		out := failed[0]
		for _, name := range failed[1:] {
			out += ", " + name
		}
		return "hors ligne: " + out
	}
	return "à jour"
}

// keyHints returns the status bar hints for the current view, or the
// pending error banner when one is set.
func (m Model) keyHints() string {
	if m.banner != "" {
		return m.banner
	}

	switch m.currentView {
	case ViewDashboard:
		return "m menu | r actualiser | ? aide | q quitter"
	case ViewProjects:
		return "enter ouvrir | n nouveau | e modifier | x supprimer | m menu"
	case ViewProjectDetail:
		return "tab onglets | M ajouter | x retirer | esc retour"
	case ViewProjectCreate, ViewProjectEdit, ViewTaskCreate, ViewTaskEdit:
		return "enter valider | esc annuler"
	case ViewTasks:
		summary := m.taskList.FilterSummary()
		if summary != "" {
			return summary + " | f filtre | / recherche"
		}
		return "enter ouvrir | s statut | a assigner | f filtre | / recherche"
	case ViewTaskDetail:
		return "c commenter | s statut | x supprimer | esc retour"
	case ViewCalendar:
		return "←/→ jour | ↑/↓ semaine | m menu"
	case ViewUsers:
		return "A archiver/restaurer | m menu"
	case ViewFiles:
		return "enter ouvrir/télécharger | n partager | x supprimer | esc retour"
	case ViewProfile:
		return "e modifier | m menu"
	case ViewHelp:
		return "? fermer l'aide"
	case ViewAssign:
		return "enter assigner | esc annuler"
	}
	return "m menu | ? aide"
}

// setView switches screens, remembering where to come back to.
func (m *Model) setView(v ViewState) {
	if v != m.currentView {
		m.previousView = m.currentView
		m.currentView = v
	}
	m.banner = ""
}

func (m *Model) restoreView() {
	m.currentView = m.previousView
}

// allowed checks an action against the session role. Unknown roles
// fail closed.
func (m Model) allowed(action access.Action) bool {
	role, ok := m.session.Role()
	return ok && access.Allowed(role, action)
}

// deny is allowed plus the denial banner; it returns true when the
// action must be blocked.
func (m *Model) deny(action access.Action) bool {
	if m.allowed(action) {
		return false
	}
	m.banner = "Action non autorisée pour votre rôle"
	return true
}
