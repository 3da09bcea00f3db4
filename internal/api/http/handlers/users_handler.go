package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leave-portal/internal/api/dto"
	"github.com/spec-kit/leave-portal/internal/authz"
	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/service"
	apperrors "github.com/spec-kit/leave-portal/pkg/util"
)

// UsersHandler serves the admin user-management views and the profile view.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	users, err := h.users.List(c.UserContext(), *sess.User)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, userResponse(user))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), *sess.User, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(*user)})
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	var req dto.UpsertUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.users.Create(c.UserContext(), *sess.User, backend.UpsertUserRequest{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(*user)})
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpsertUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.users.Update(c.UserContext(), *sess.User, id, backend.UpsertUserRequest{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(*user)})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), *sess.User, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Profile handles GET /profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	user, err := h.users.Get(c.UserContext(), *sess.User, sess.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(*user)})
}

// UpdateProfile handles PUT /profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	sess, sessionID := authz.CurrentSession(c)
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.users.UpdateProfile(c.UserContext(), sess, sessionID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(*user)})
}
