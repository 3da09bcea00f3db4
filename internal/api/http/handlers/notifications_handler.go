package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leave-portal/internal/authz"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/service"
)

// NotificationsHandler serves the notification bell.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notificationService}
}

// List handles GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	items, err := h.notifications.List(c.UserContext(), *sess.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": notificationResponses(items)})
}

// MarkRead handles PUT /notifications/:id/read. The mark call is
// fire-and-forget; the response is the refreshed list either way.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	h.notifications.MarkRead(c.UserContext(), *sess.User, id)

	items, err := h.notifications.List(c.UserContext(), *sess.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": notificationResponses(items)})
}

type notificationResponse struct {
	ID        int64                   `json:"id"`
	Type      domain.NotificationType `json:"type"`
	Message   string                  `json:"message"`
	CreatedAt time.Time               `json:"createdAt"`
	Read      bool                    `json:"read"`
}

func notificationResponses(items []domain.Notification) []notificationResponse {
	resp := make([]notificationResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, notificationResponse{
			ID:        item.ID,
			Type:      item.Type,
			Message:   item.Message,
			CreatedAt: item.CreatedAt,
			Read:      item.Read,
		})
	}
	return resp
}
