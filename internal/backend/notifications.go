package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/leave-portal/internal/domain"
)

// NotificationAPI is the slice of the client consumed by the notification
// service.
type NotificationAPI interface {
	ListNotificationsByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
}

// ListNotificationsByUser fetches a user's notifications.
func (c *Client) ListNotificationsByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notifications/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead flags one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}
