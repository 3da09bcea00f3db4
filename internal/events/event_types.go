package events

import (
	"time"

	"github.com/spec-kit/leave-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeaveSubmitted   EventType = "leave_submitted"
	EventLeaveDecided     EventType = "leave_decided"
	EventLeaveDeleted     EventType = "leave_deleted"
	EventNotificationRead EventType = "notification_read"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a portal action emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	LeaveID   int64       `json:"leave_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeaveSubmittedPayload payload.
type LeaveSubmittedPayload struct {
	LeaveType    string      `json:"leave_type"`
	StartDate    domain.Date `json:"start_date"`
	EndDate      domain.Date `json:"end_date"`
	DurationDays int         `json:"duration_days"`
}

// LeaveDecidedPayload payload.
type LeaveDecidedPayload struct {
	Decision domain.LeaveStatus `json:"decision"`
}

// NotificationReadPayload payload.
type NotificationReadPayload struct {
	NotificationID int64 `json:"notification_id"`
}
