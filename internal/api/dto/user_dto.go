package dto

import "github.com/spec-kit/leave-portal/internal/domain"

// UpsertUserRequest payload for admin user management.
type UpsertUserRequest struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// UpdateProfileRequest payload; only the name is editable.
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// UpsertBalanceRequest payload for admin balance management.
type UpsertBalanceRequest struct {
	UserID    int64  `json:"userId"`
	LeaveType string `json:"leaveType"`
	TotalDays int    `json:"totalDays"`
	UsedDays  int    `json:"usedDays"`
}
