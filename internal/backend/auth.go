package backend

import (
	"context"
	"net/http"

	"github.com/spec-kit/leave-portal/internal/domain"
)

// LoginRequest carries credentials to the backend.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the backend's session bootstrap payload.
type LoginResponse struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	Token    string      `json:"token"`
}

// RegisterRequest carries a new account to the backend.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
	Username string      `json:"username,omitempty"`
}

// Login exchanges credentials for a token and profile. A 401 here means bad
// credentials and is returned to the caller rather than clearing sessions.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp, asCredentialCall()); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the same bootstrap payload as Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp, asCredentialCall()); err != nil {
		return nil, err
	}
	return &resp, nil
}
