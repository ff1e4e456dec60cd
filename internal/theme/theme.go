package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/view"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ErrorBannerStyle renders fetch and permission errors above the
// active view.
var ErrorBannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorRed).
	Padding(0, 1)

// StatusStyle returns a color-coded style for the given task status.
func StatusStyle(statut string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch statut {
	case model.StatusEnAttente:
		return base.Foreground(ColorBlue)
	case model.StatusEnCours:
		return base.Foreground(ColorYellow)
	case model.StatusTermine:
		return base.Foreground(ColorGreen)
	case model.StatusEnRetard:
		return base.Foreground(ColorRed)
	case model.StatusAnnule:
		return base.Foreground(ColorGray)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for the given task priority.
func PriorityStyle(priorite string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priorite {
	case model.PriorityUrgente:
		return base.Foreground(ColorRed)
	case model.PriorityElevee:
		return base.Foreground(ColorOrange)
	case model.PriorityMoyenne:
		return base.Foreground(ColorYellow)
	case model.PriorityFaible:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// DayStyle returns the style for a calendar day given its severity
// class.
func DayStyle(class view.DayClass) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch class {
	case view.DayClassRed:
		return base.Foreground(ColorRed)
	case view.DayClassOrange:
		return base.Foreground(ColorOrange)
	case view.DayClassYellow:
		return base.Foreground(ColorYellow)
	case view.DayClassGreen:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// RoleStyle returns a color-coded style for a member role label.
func RoleStyle(role model.Role) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch role {
	case model.RoleAdmin:
		return base.Foreground(ColorMagenta)
	case model.RoleChef:
		return base.Foreground(ColorBlue)
	case model.RoleMembre:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}
