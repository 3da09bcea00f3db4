package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/events"
)

// NotificationService lists a user's notifications and forwards mark-as-read
// actions. Marking is fire-and-forget: a failure is logged, never surfaced,
// and the caller refreshes the list for the authoritative state either way.
type NotificationService struct {
	api        backend.NotificationAPI
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(api backend.NotificationAPI, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{api: api, dispatcher: dispatcher, logger: logger}
}

// List fetches the actor's notifications.
func (s *NotificationService) List(ctx context.Context, actor domain.User) ([]domain.Notification, error) {
	return s.api.ListNotificationsByUser(ctx, actor.ID)
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, actor domain.User, id int64) {
	if err := s.api.MarkNotificationRead(ctx, id); err != nil {
		s.logger.Warn("mark notification read failed",
			zap.Int64("notification_id", id),
			zap.Error(err))
		return
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventNotificationRead,
			Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
			Timestamp: time.Now(),
			Payload:   events.NotificationReadPayload{NotificationID: id},
		})
	}
}
