package dto

import (
	"github.com/spec-kit/leave-portal/internal/authz"
	"github.com/spec-kit/leave-portal/internal/domain"
)

// LeaveCounts summarizes visible requests per status.
type LeaveCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// DashboardResponse is the landing view for every role.
type DashboardResponse struct {
	User     UserResponse          `json:"user"`
	Links    []authz.NavLink       `json:"links"`
	Counts   LeaveCounts           `json:"counts"`
	Balances []domain.LeaveBalance `json:"balances"`
}
