package dto

import "github.com/spec-kit/leave-portal/internal/domain"

// ApplyLeaveRequest payload.
type ApplyLeaveRequest struct {
	LeaveType string      `json:"leaveType"`
	StartDate domain.Date `json:"startDate"`
	EndDate   domain.Date `json:"endDate"`
	Reason    string      `json:"reason"`
}

// DecisionRequest payload for approving or rejecting a request.
type DecisionRequest struct {
	Decision domain.LeaveStatus `json:"decision"`
}

// LeaveResponse is a leave request plus its displayed duration.
type LeaveResponse struct {
	ID              int64              `json:"id"`
	EmployeeID      int64              `json:"employeeId"`
	LeaveType       string             `json:"leaveType"`
	StartDate       domain.Date        `json:"startDate"`
	EndDate         domain.Date        `json:"endDate"`
	Reason          string             `json:"reason,omitempty"`
	Status          domain.LeaveStatus `json:"status"`
	RejectionReason string             `json:"rejectionReason,omitempty"`
	DurationDays    int                `json:"durationDays"`
}

// LeaveListResponse wraps a filtered listing with the unfiltered total.
type LeaveListResponse struct {
	Items []LeaveResponse `json:"items"`
	Total int             `json:"total"`
}

// LeaveFormResponse describes the apply-leave form metadata.
type LeaveFormResponse struct {
	LeaveTypes []string `json:"leaveTypes"`
}
