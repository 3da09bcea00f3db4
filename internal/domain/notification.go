package domain

import "time"

// NotificationType enumerates backend notification categories.
type NotificationType string

const (
	NotificationInfo  NotificationType = "INFO"
	NotificationAlert NotificationType = "ALERT"
)

// Notification is created by the backend as a side effect of lifecycle
// events; the portal only lists them and marks them read.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
	Read      bool             `json:"read"`
}
