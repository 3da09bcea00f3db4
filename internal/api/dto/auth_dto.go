package dto

import (
	"github.com/spec-kit/leave-portal/internal/authz"
	"github.com/spec-kit/leave-portal/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest payload.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
	Username string      `json:"username,omitempty"`
}

// SessionResponse returns the signed-in profile and its navigation menu.
type SessionResponse struct {
	User  UserResponse    `json:"user"`
	Links []authz.NavLink `json:"links"`
}

// UserResponse is the profile shape shared across endpoints. RoleLabel is the
// display form of the role for headers and greetings.
type UserResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	RoleLabel string      `json:"roleLabel"`
}
