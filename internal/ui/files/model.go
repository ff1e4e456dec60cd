// Package files is the shared-files screen: pick a project, then
// browse, share, download, or remove the documents on it.
package files

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/cache"
	"github.com/promanager/promanager/internal/keys"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/theme"
)

// ProjectsLoadedMsg is sent when the project choices have been read
// from the cache.
type ProjectsLoadedMsg struct {
	Projects []model.Project
}

// FetchRequestMsg asks the root model to refresh the file list for a
// project from the backend.
type FetchRequestMsg struct {
	ProjetID int64
}

// FilesLoadedMsg delivers the cached files of the selected project.
type FilesLoadedMsg struct {
	Files []model.File
}

// DeleteRequestMsg asks for a file to be deleted.
type DeleteRequestMsg struct {
	FileID int64
}

// UploadRequestMsg asks for a local file to be shared on the project.
type UploadRequestMsg struct {
	ProjetID int64
	Path     string
}

// DownloadRequestMsg asks for a file's content to be downloaded.
type DownloadRequestMsg struct {
	File model.File
}

// Model is the shared-files view component.
type Model struct {
	cache    cache.Cache
	keys     *keys.KeyMap
	projects []model.Project
	files    []model.File
	cursor   int
	projetID int64
	browsing bool
	typing   bool
	input    textinput.Model
	width    int
	height   int
}

// New creates a new shared-files model.
func New(c cache.Cache, k *keys.KeyMap, width, height int) Model {
	input := textinput.New()
	input.Placeholder = "chemin du fichier local..."
	input.CharLimit = 512
	return Model{cache: c, keys: k, input: input, width: width, height: height}
}

// LoadProjects reads the project choices from the cache.
func (m Model) LoadProjects() tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		projects, err := c.Projects(context.Background())
		if err != nil {
			return ProjectsLoadedMsg{}
		}
		return ProjectsLoadedMsg{Projects: projects}
	}
}

// LoadFiles reads the selected project's files from the cache.
func (m Model) LoadFiles() tea.Cmd {
	c, projetID := m.cache, m.projetID
	return func() tea.Msg {
		list, err := c.FilesForProject(context.Background(), projetID)
		if err != nil {
			return FilesLoadedMsg{}
		}
		return FilesLoadedMsg{Files: list}
	}
}

// ProjetID returns the project being browsed, 0 while picking.
func (m Model) ProjetID() int64 {
	if !m.browsing {
		return 0
	}
	return m.projetID
}

// Typing reports whether the path prompt is capturing keystrokes.
func (m Model) Typing() bool {
	return m.typing
}

// Reset returns to the project picker.
func (m *Model) Reset() {
	m.browsing = false
	m.typing = false
	m.cursor = 0
	m.files = nil
}

// Update handles messages for the shared-files view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProjectsLoadedMsg:
		m.projects = msg.Projects
		if m.cursor >= len(m.projects) {
			m.cursor = 0
		}
		return m, nil

	case FilesLoadedMsg:
		m.files = msg.Files
		if m.cursor >= len(m.files) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			return m.updateInput(msg)
		}
		if m.browsing {
			return m.updateFileList(msg)
		}
		return m.updatePicker(msg)
	}

	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Select):
		if m.cursor >= len(m.projects) {
			return m, nil
		}
		m.projetID = m.projects[m.cursor].ID
		m.browsing = true
		m.cursor = 0
		projetID := m.projetID
		return m, tea.Batch(
			m.LoadFiles(),
			func() tea.Msg { return FetchRequestMsg{ProjetID: projetID} },
		)
	}

	return m, nil
}

func (m Model) updateFileList(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.New):
		m.typing = true
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(m.files) {
			f := m.files[m.cursor]
			return m, func() tea.Msg { return DownloadRequestMsg{File: f} }
		}

	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(m.files) {
			fileID := m.files[m.cursor].ID
			return m, func() tea.Msg { return DeleteRequestMsg{FileID: fileID} }
		}
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(m.input.Value())
		m.typing = false
		m.input.Blur()
		if path == "" {
			return m, nil
		}
		projetID := m.projetID
		return m, func() tea.Msg { return UploadRequestMsg{ProjetID: projetID, Path: path} }

	case "esc":
		m.typing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the shared-files view.
func (m Model) View() string {
	if m.browsing {
		return m.viewFiles()
	}
	return m.viewPicker()
}

func (m Model) viewPicker() string {
	if len(m.projects) == 0 {
		return theme.HelpStyle.Render("Aucun projet.")
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Render("Fichiers partagés"), ""}
	for i, p := range m.projects {
		line := p.Nom
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", theme.HelpStyle.Render("enter ouvrir"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewFiles() string {
	projectName := ""
	for _, p := range m.projects {
		if p.ID == m.projetID {
			projectName = p.Nom
			break
		}
	}

	lines := []string{lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("Fichiers de %s", projectName)), ""}

	if len(m.files) == 0 {
		lines = append(lines, theme.HelpStyle.Render("Aucun fichier partagé sur ce projet."))
	}
	for i, f := range m.files {
		line := fmt.Sprintf("%s  %s", f.Nom,
			theme.HelpStyle.Render(f.DatePartage.Format("02/01/2006")))
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	if m.typing {
		lines = append(lines, "", "Partager un fichier:", m.input.View())
	} else {
		lines = append(lines, "",
			theme.HelpStyle.Render("entrée télécharger | n partager | x supprimer | esc retour"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
