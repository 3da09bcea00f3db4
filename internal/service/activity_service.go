package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/leave-portal/internal/config"
	"github.com/spec-kit/leave-portal/internal/events"
)

// ActivityService records portal lifecycle events for operators. Email and
// webhook delivery are stubs activated by configuration.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.ActivityConfig
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.ActivityConfig) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLeaveSubmitted, a.handleLeaveSubmitted)
	a.dispatcher.Subscribe(events.EventLeaveDecided, a.handleLeaveDecided)
	a.dispatcher.Subscribe(events.EventLeaveDeleted, a.handleLeaveDeleted)
	a.dispatcher.Subscribe(events.EventNotificationRead, a.handleNotificationRead)
}

func (a *ActivityService) handleLeaveSubmitted(ctx context.Context, event events.Event) error {
	a.logger.Info("LeaveSubmitted", zap.Int64("leave_id", event.LeaveID), zap.Any("payload", event.Payload))
	a.sendEmailStub(ctx, event)
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *ActivityService) handleLeaveDecided(ctx context.Context, event events.Event) error {
	a.logger.Info("LeaveDecided", zap.Int64("leave_id", event.LeaveID), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *ActivityService) handleLeaveDeleted(ctx context.Context, event events.Event) error {
	a.logger.Info("LeaveDeleted", zap.Int64("leave_id", event.LeaveID))
	return nil
}

func (a *ActivityService) handleNotificationRead(ctx context.Context, event events.Event) error {
	a.logger.Debug("NotificationRead", zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) sendEmailStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(a.cfg.EmailFrom) == "" {
		return
	}
	a.logger.Debug("sendEmailStub",
		zap.String("from", a.cfg.EmailFrom),
		zap.Int64("leave_id", event.LeaveID),
		zap.String("event_type", string(event.Type)))
}

func (a *ActivityService) sendWebhookStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(a.cfg.WebhookURL) == "" {
		return
	}
	a.logger.Debug("sendWebhookStub",
		zap.String("url", a.cfg.WebhookURL),
		zap.Int64("leave_id", event.LeaveID),
		zap.String("event_type", string(event.Type)))
}
