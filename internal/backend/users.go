package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/leave-portal/internal/domain"
)

// UserAPI is the slice of the client consumed by the user service.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, req UpsertUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, req UpsertUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UpsertUserRequest is the create/update payload for user records.
type UpsertUserRequest struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// ListUsers fetches all user records.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser fetches one user record.
func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser adds a user record.
func (c *Client) CreateUser(ctx context.Context, req UpsertUserRequest) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPost, "/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser replaces the mutable fields of a user record.
func (c *Client) UpdateUser(ctx context.Context, id int64, req UpsertUserRequest) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user record.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}
