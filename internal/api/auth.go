// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"time"
)

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// User is the signed-in account as returned by /api/auth/me.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProfileUpdate carries the fields of a PATCH /api/auth/me. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Login exchanges credentials for a bearer token. The token is opaque to
// the client.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	body := credentialsRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Signup registers a new account and returns its bearer token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	var resp tokenResponse
	body := credentialsRequest{Email: email, Password: password, Name: name}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Me fetches the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe applies a partial profile update and returns the updated profile.
func (c *Client) UpdateMe(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, "/api/auth/me", nil, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
