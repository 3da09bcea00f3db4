package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spec-kit/leave-portal/internal/domain"
)

// LeaveAPI is the slice of the client consumed by the leave lifecycle
// service; the concrete Client satisfies it.
type LeaveAPI interface {
	ListLeaves(ctx context.Context) ([]domain.LeaveRequest, error)
	ListLeavesByEmployee(ctx context.Context, employeeID int64) ([]domain.LeaveRequest, error)
	GetLeave(ctx context.Context, id int64) (*domain.LeaveRequest, error)
	CreateLeave(ctx context.Context, req CreateLeaveRequest) (*domain.LeaveRequest, error)
	UpdateLeaveStatus(ctx context.Context, id int64, status domain.LeaveStatus) (*domain.LeaveRequest, error)
	DeleteLeave(ctx context.Context, id int64) error
}

// CreateLeaveRequest is the creation payload; new requests always start
// PENDING.
type CreateLeaveRequest struct {
	EmployeeID int64              `json:"employeeId"`
	LeaveType  string             `json:"leaveType"`
	StartDate  domain.Date        `json:"startDate"`
	EndDate    domain.Date        `json:"endDate"`
	Reason     string             `json:"reason,omitempty"`
	Status     domain.LeaveStatus `json:"status"`
}

// ListLeaves fetches every request in the system.
func (c *Client) ListLeaves(ctx context.Context) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	if err := c.do(ctx, http.MethodGet, "/leaves", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLeavesByEmployee fetches the requests owned by one employee.
func (c *Client) ListLeavesByEmployee(ctx context.Context, employeeID int64) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/leaves/employee/%d", employeeID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLeavesByUser fetches requests through the by-user view.
func (c *Client) ListLeavesByUser(ctx context.Context, userID int64) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/leaves/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetLeave fetches a single request.
func (c *Client) GetLeave(ctx context.Context, id int64) (*domain.LeaveRequest, error) {
	var out domain.LeaveRequest
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/leaves/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateLeave submits a new request.
func (c *Client) CreateLeave(ctx context.Context, req CreateLeaveRequest) (*domain.LeaveRequest, error) {
	var out domain.LeaveRequest
	if err := c.do(ctx, http.MethodPost, "/leaves", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLeaveStatus moves a request to a terminal state.
func (c *Client) UpdateLeaveStatus(ctx context.Context, id int64, status domain.LeaveStatus) (*domain.LeaveRequest, error) {
	path := fmt.Sprintf("/leaves/%d/status?status=%s", id, url.QueryEscape(string(status)))
	var out domain.LeaveRequest
	if err := c.do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLeave removes a request.
func (c *Client) DeleteLeave(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/leaves/%d", id), nil, nil)
}
