// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
)

// LoginResponse is the outcome of a credential check. Token is the bearer
// token for subsequent requests when Authenticated is true.
type LoginResponse struct {
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token"`
	Error         string `json:"error"`
}

// Login exchanges credentials for a bearer token. A wrong password comes
// back as an *APIError (the backend answers 401 with its error string).
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var out LoginResponse
	if err := c.postJSON(ctx, http.MethodPost, "/api/login", payload, &out); err != nil {
		return nil, err
	}
	if !out.Authenticated {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: out.Error}
	}
	return &out, nil
}

// SignupRequest carries a new account registration. Password policy is
// enforced client-side before this is sent.
type SignupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Signup registers a new account. A taken username or rejected field comes
// back as an *APIError.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, http.MethodPost, "/api/signup", req, &out); err != nil {
		return err
	}
	if !out.Success {
		return &APIError{Status: http.StatusOK, Message: out.Error}
	}
	return nil
}

// CheckAuth verifies the current bearer token. The backend answers 200 for
// both outcomes; only the authenticated flag distinguishes them.
func (c *Client) CheckAuth(ctx context.Context) (bool, error) {
	if c.token() == "" {
		return false, nil
	}
	var out struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := c.getJSON(ctx, "/api/check_auth", &out); err != nil {
		return false, err
	}
	return out.Authenticated, nil
}

// Logout tells the backend the session is over. Token disposal is the
// session guard's job, not this call's.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// UserInfo is the profile record behind the user-info modal. Username is
// fixed at signup; the other fields are editable.
type UserInfo struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// GetUserInfo fetches the authenticated user's profile. An expired token
// yields ErrSessionExpired so the caller can force a logout.
func (c *Client) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	if c.token() == "" {
		return nil, ErrNotAuthenticated
	}
	var out struct {
		UserInfo
		Error string `json:"error"`
	}
	if err := c.getJSON(ctx, "/api/user-info", &out); err != nil {
		return nil, err
	}
	// The backend reports an expired token as 200 with an error string.
	if out.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrSessionExpired, out.Error)
	}
	return &out.UserInfo, nil
}

// UpdateUserInfo edits the profile's editable fields.
func (c *Client) UpdateUserInfo(ctx context.Context, info UserInfo) error {
	payload := struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	}{info.FirstName, info.LastName, info.Email}

	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, http.MethodPut, "/api/update-user-info", payload, &out); err != nil {
		return err
	}
	if !out.Success {
		return &APIError{Status: http.StatusOK, Message: out.Error}
	}
	return nil
}
