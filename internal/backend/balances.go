package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/leave-portal/internal/domain"
)

// UpsertBalanceRequest is the create/update payload for leave balances.
type UpsertBalanceRequest struct {
	UserID    int64  `json:"userId"`
	LeaveType string `json:"leaveType"`
	TotalDays int    `json:"totalDays"`
	UsedDays  int    `json:"usedDays"`
}

// ListBalances fetches every balance record.
func (c *Client) ListBalances(ctx context.Context) ([]domain.LeaveBalance, error) {
	var out []domain.LeaveBalance
	if err := c.do(ctx, http.MethodGet, "/leave-balances", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBalancesByUser fetches the balances displayed on the dashboard.
func (c *Client) ListBalancesByUser(ctx context.Context, userID int64) ([]domain.LeaveBalance, error) {
	var out []domain.LeaveBalance
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/leave-balances/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBalance fetches one balance record.
func (c *Client) GetBalance(ctx context.Context, id int64) (*domain.LeaveBalance, error) {
	var out domain.LeaveBalance
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/leave-balances/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBalance adds a balance record.
func (c *Client) CreateBalance(ctx context.Context, req UpsertBalanceRequest) (*domain.LeaveBalance, error) {
	var out domain.LeaveBalance
	if err := c.do(ctx, http.MethodPost, "/leave-balances", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBalance replaces a balance record.
func (c *Client) UpdateBalance(ctx context.Context, id int64, req UpsertBalanceRequest) (*domain.LeaveBalance, error) {
	var out domain.LeaveBalance
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/leave-balances/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBalance removes a balance record.
func (c *Client) DeleteBalance(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/leave-balances/%d", id), nil, nil)
}
