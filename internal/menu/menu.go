// Package menu derives the navigation structure from the member's role.
// The sidebar renders the result as-is; no role checks happen in views.
package menu

import "github.com/promanager/promanager/internal/model"

// Route identifies a navigable screen.
type Route string

const (
	RouteDashboard     Route = "dashboard"
	RouteProjects      Route = "projects"
	RouteCreateProject Route = "create-project"
	RouteTasks         Route = "tasks"
	RouteUsers         Route = "users"
	RouteCalendar      Route = "calendar"
	RouteFiles         Route = "files"
	RouteProfile       Route = "profile"
)

// Link is a single navigation entry.
type Link struct {
	Label string
	Route Route
}

// Section is a titled group of links.
type Section struct {
	Title string
	Links []Link
}

// Build returns the ordered menu sections for the given role. An
// unrecognized role yields an empty menu, matching the fail-closed
// behavior of the access package.
func Build(role model.Role) []Section {
	switch role {
	case model.RoleAdmin:
		return []Section{
			{
				Title: "Administration",
				Links: []Link{
					{Label: "Tableau de bord", Route: RouteDashboard},
					{Label: "Tous les projets", Route: RouteProjects},
					{Label: "Créer un projet", Route: RouteCreateProject},
					{Label: "Utilisateurs", Route: RouteUsers},
				},
			},
			{
				Title: "Rapports",
				Links: []Link{
					{Label: "Calendrier des tâches", Route: RouteCalendar},
				},
			},
			{
				Title: "Mon compte",
				Links: []Link{
					{Label: "Profil", Route: RouteProfile},
				},
			},
		}

	case model.RoleChef:
		return []Section{
			{
				Title: "Gestion des projets et tâches",
				Links: []Link{
					{Label: "Tableau de bord", Route: RouteDashboard},
					{Label: "Mes projets", Route: RouteProjects},
					{Label: "Créer un projet", Route: RouteCreateProject},
					{Label: "Tâches", Route: RouteTasks},
				},
			},
			{
				Title: "Rapports",
				Links: []Link{
					{Label: "Calendrier des tâches", Route: RouteCalendar},
				},
			},
			{
				Title: "Outils",
				Links: []Link{
					{Label: "Fichiers partagés", Route: RouteFiles},
				},
			},
			{
				Title: "Mon compte",
				Links: []Link{
					{Label: "Profil", Route: RouteProfile},
				},
			},
		}

	case model.RoleMembre:
		return []Section{
			{
				Title: "Espace membre",
				Links: []Link{
					{Label: "Mon tableau de bord", Route: RouteDashboard},
					{Label: "Mes projets", Route: RouteProjects},
					{Label: "Mes tâches", Route: RouteTasks},
				},
			},
			{
				Title: "Rapports",
				Links: []Link{
					{Label: "Mon calendrier", Route: RouteCalendar},
				},
			},
			{
				Title: "Outils",
				Links: []Link{
					{Label: "Fichiers partagés", Route: RouteFiles},
				},
			},
			{
				Title: "Mon compte",
				Links: []Link{
					{Label: "Mon profil", Route: RouteProfile},
				},
			},
		}

	default:
		return nil
	}
}
