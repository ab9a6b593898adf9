package api

import (
	"context"
	"net/http"

	"lawconnect/models"
)

// Login authenticates against the backend and returns the bearer token plus
// the signed-in profile. The caller stores both in the session.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, models.User, error) {
	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return "", models.User{}, err
	}
	return resp.Token, resp.User, nil
}

// Profile fetches the authenticated account's profile.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &resp); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

// UpdateProfile applies a partial profile update and returns the new profile.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPatch, "/auth/profile", update, &resp); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

// ChangePassword sets a new password for the authenticated account.
func (c *Client) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	return c.do(ctx, http.MethodPut, "/auth/change-password", change, nil)
}
