package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leave-portal/internal/api/dto"
	"github.com/spec-kit/leave-portal/internal/authz"
	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/service"
	apperrors "github.com/spec-kit/leave-portal/pkg/util"
)

// AuthHandler serves login, register and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	_, sessionID := authz.CurrentSession(c)
	user, err := h.auth.Login(c.UserContext(), sessionID, req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": sessionResponse(user)})
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	_, sessionID := authz.CurrentSession(c)
	user, err := h.auth.Register(c.UserContext(), sessionID, backend.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Username: req.Username,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sessionResponse(user)})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_, sessionID := authz.CurrentSession(c)
	if err := h.auth.Logout(c.UserContext(), sessionID); err != nil {
		return err
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// Session handles GET /session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	return c.JSON(fiber.Map{"data": sessionResponse(sess.User)})
}

func sessionResponse(user *domain.User) dto.SessionResponse {
	resp := dto.SessionResponse{Links: []authz.NavLink{}}
	if user != nil {
		resp.User = userResponse(*user)
		resp.Links = append([]authz.NavLink{authz.DashboardLink}, authz.LinksForRole(user.Role)...)
	}
	return resp
}

func userResponse(user domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		RoleLabel: user.Role.DisplayName(),
	}
}
