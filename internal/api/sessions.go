package api

import (
	"context"
	"fmt"

	"github.com/promanager/promanager/internal/model"
)

// Credentials is the identity issued by a successful login.
type Credentials struct {
	Token    string
	Refresh  string
	MembreID int64
	Role     string
}

// Login exchanges a username and password for a bearer token and the
// member identity. The token is not installed on the client; the auth
// flow decides when to adopt it.
func (c *Client) Login(ctx context.Context, username, password string) (Credentials, error) {
	var resp loginResponse
	err := c.Post(ctx, "/login/", loginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return Credentials{}, fmt.Errorf("logging in: %w", err)
	}

	return Credentials{
		Token:    resp.Access,
		Refresh:  resp.Refresh,
		MembreID: resp.MembreID,
		Role:     resp.Role,
	}, nil
}

// Register creates a new account. New accounts always get the MEMBRE
// role; the caller follows up with Login.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	err := c.Post(ctx, "/register/", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return fmt.Errorf("registering account: %w", err)
	}
	return nil
}

// Profile is the authenticated member's own profile with its activity
// counters.
type Profile struct {
	Username        string
	Email           string
	Nom             string
	Role            model.Role
	RawRole         string
	DateCreation    string
	ProjetsCount    int
	TachesTerminees int
}

// GetProfile fetches the authenticated member's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var resp profileResponse
	if err := c.Get(ctx, "/profile/", &resp); err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}

	role, _ := model.NormalizeRole(resp.Role)
	return &Profile{
		Username:        resp.Username,
		Email:           resp.Email,
		Nom:             resp.Nom,
		Role:            role,
		RawRole:         resp.Role,
		DateCreation:    resp.DateCreation,
		ProjetsCount:    resp.ProjetsCount,
		TachesTerminees: resp.TachesTerminees,
	}, nil
}

// ProfilePatch holds the profile fields a member may edit. The role is
// immutable through this endpoint.
type ProfilePatch struct {
	Nom   string `json:"nom,omitempty"`
	Email string `json:"email,omitempty"`
}

// UpdateProfile patches the authenticated member's own profile.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) error {
	if err := c.Patch(ctx, "/profile/", patch, nil); err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}
