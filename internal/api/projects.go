package api

import (
	"context"
	"fmt"

	"github.com/promanager/promanager/internal/model"
)

// ListProjects fetches the projects visible to the caller. The backend
// scopes the list by role; member sets and tasks are left empty here.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var payloads []projectPayload
	if err := c.Get(ctx, "/projets/", &payloads); err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}

	projects := make([]model.Project, 0, len(payloads))
	for _, p := range payloads {
		projects = append(projects, p.toModel())
	}
	return projects, nil
}

// GetProject fetches a project with its members and tasks.
func (c *Client) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var payload projectPayload
	if err := c.Get(ctx, fmt.Sprintf("/projets/%d/", id), &payload); err != nil {
		return nil, fmt.Errorf("fetching project %d: %w", id, err)
	}
	proj := payload.toModel()
	return &proj, nil
}

// CreateProject creates a project. Dates are validated client-side
// before the request is issued since the backend accepts inverted
// ranges.
func (c *Client) CreateProject(ctx context.Context, p model.Project) (*model.Project, error) {
	if err := model.ValidateDateRange(p.DateDebut, p.DateFin); err != nil {
		return nil, err
	}

	var created projectPayload
	err := c.Post(ctx, "/projets/", projectWriteBody(p), &created)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	result := created.toModel()
	return &result, nil
}

// UpdateProject replaces a project's writable fields.
func (c *Client) UpdateProject(ctx context.Context, p model.Project) error {
	if err := model.ValidateDateRange(p.DateDebut, p.DateFin); err != nil {
		return err
	}
	err := c.Put(ctx, fmt.Sprintf("/projets/%d/", p.ID), projectWriteBody(p), nil)
	if err != nil {
		return fmt.Errorf("updating project %d: %w", p.ID, err)
	}
	return nil
}

// DeleteProject removes a project and its tasks.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	if err := c.Delete(ctx, fmt.Sprintf("/projets/%d/", id)); err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	return nil
}

// AddProjectMember adds a member to the project's member set.
func (c *Client) AddProjectMember(ctx context.Context, projectID, membreID int64) error {
	body := map[string]int64{"membre_id": membreID}
	err := c.Post(ctx, fmt.Sprintf("/projets/%d/add_member/", projectID), body, nil)
	if err != nil {
		return fmt.Errorf("adding member %d to project %d: %w", membreID, projectID, err)
	}
	return nil
}

// RemoveProjectMember removes a member from the project's member set.
func (c *Client) RemoveProjectMember(ctx context.Context, projectID, membreID int64) error {
	body := map[string]int64{"membre_id": membreID}
	err := c.Post(ctx, fmt.Sprintf("/projets/%d/remove_member/", projectID), body, nil)
	if err != nil {
		return fmt.Errorf("removing member %d from project %d: %w", membreID, projectID, err)
	}
	return nil
}

// AvailableMember is the reduced member shape offered when picking
// someone to add to a project.
type AvailableMember struct {
	ID   int64
	Nom  string
	Role model.Role
}

// AvailableMembers lists the members that can be added to projects.
func (c *Client) AvailableMembers(ctx context.Context) ([]AvailableMember, error) {
	var payloads []availableMemberPayload
	if err := c.Get(ctx, "/projets/available_members/", &payloads); err != nil {
		return nil, fmt.Errorf("fetching available members: %w", err)
	}

	members := make([]AvailableMember, 0, len(payloads))
	for _, p := range payloads {
		role, _ := model.NormalizeRole(p.Role)
		members = append(members, AvailableMember{ID: p.ID, Nom: p.Nom, Role: role})
	}
	return members, nil
}

func projectWriteBody(p model.Project) projectInput {
	memberIDs := make([]int64, 0, len(p.Membres))
	for _, m := range p.Membres {
		memberIDs = append(memberIDs, m.ID)
	}
	return projectInput{
		Nom:         p.Nom,
		Description: p.Description,
		DateDebut:   formatDate(p.DateDebut),
		DateFin:     formatDate(p.DateFin),
		Statut:      p.Statut,
		CreePar:     p.CreeParID,
		Membres:     memberIDs,
	}
}
