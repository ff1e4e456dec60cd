package api

import (
	"context"
	"fmt"

	"github.com/promanager/promanager/internal/model"
)

// ListMembers fetches all members. With showArchived, archived accounts
// are included for the admin screen; otherwise only active members are
// returned.
func (c *Client) ListMembers(ctx context.Context, showArchived bool) ([]model.Member, error) {
	path := "/membres/"
	if showArchived {
		path += "?show_archived=true"
	}

	var payloads []memberPayload
	if err := c.Get(ctx, path, &payloads); err != nil {
		return nil, fmt.Errorf("fetching members: %w", err)
	}

	members := make([]model.Member, 0, len(payloads))
	for _, p := range payloads {
		members = append(members, p.toModel())
	}
	return members, nil
}

// GetMember fetches a single member by id.
func (c *Client) GetMember(ctx context.Context, id int64) (*model.Member, error) {
	var payload memberPayload
	if err := c.Get(ctx, fmt.Sprintf("/membres/%d/", id), &payload); err != nil {
		return nil, fmt.Errorf("fetching member %d: %w", id, err)
	}
	m := payload.toModel()
	return &m, nil
}

// MemberPatch holds the member fields an admin may edit.
type MemberPatch struct {
	Nom   string `json:"nom,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// UpdateMember patches a member record (admin screen).
func (c *Client) UpdateMember(ctx context.Context, id int64, patch MemberPatch) error {
	if err := c.Patch(ctx, fmt.Sprintf("/membres/%d/", id), patch, nil); err != nil {
		return fmt.Errorf("updating member %d: %w", id, err)
	}
	return nil
}

// ArchiveMember deactivates an account while keeping its history.
func (c *Client) ArchiveMember(ctx context.Context, id int64) error {
	if err := c.Post(ctx, fmt.Sprintf("/membres/%d/archive/", id), nil, nil); err != nil {
		return fmt.Errorf("archiving member %d: %w", id, err)
	}
	return nil
}

// UnarchiveMember reactivates a previously archived account.
func (c *Client) UnarchiveMember(ctx context.Context, id int64) error {
	if err := c.Post(ctx, fmt.Sprintf("/membres/%d/unarchive/", id), nil, nil); err != nil {
		return fmt.Errorf("unarchiving member %d: %w", id, err)
	}
	return nil
}
