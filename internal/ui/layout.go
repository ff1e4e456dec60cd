package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/theme"
)

// SidebarWidth is the fixed width of the navigation sidebar.
const SidebarWidth = 26

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
	ShowSidebar     bool
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
		ShowSidebar:     true,
	}
}

// ContentWidth returns the width available for the main content area,
// accounting for the sidebar when visible.
func (l Layout) ContentWidth() int {
	if l.ShowSidebar {
		return l.Width - SidebarWidth
	}
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar with a title and refresh status.
func (l Layout) RenderHeader(title string, refreshStatus string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(refreshStatus)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(statusRendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// RenderWithSidebar joins the sidebar and content area side by side.
func (l Layout) RenderWithSidebar(sidebar string, content string) string {
	if !l.ShowSidebar {
		return content
	}

	sidebarRendered := lipgloss.NewStyle().
		Width(SidebarWidth).
		Height(l.ContentHeight()).
		Render(sidebar)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, content)
}
