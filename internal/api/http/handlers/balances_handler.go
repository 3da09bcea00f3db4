package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leave-portal/internal/api/dto"
	"github.com/spec-kit/leave-portal/internal/authz"
	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/domain"
	apperrors "github.com/spec-kit/leave-portal/pkg/util"
)

// BalancesHandler serves leave balances: the caller's own for the dashboard
// widgets, and admin CRUD passthrough.
type BalancesHandler struct {
	client *backend.Client
}

// NewBalancesHandler constructs handler.
func NewBalancesHandler(client *backend.Client) *BalancesHandler {
	return &BalancesHandler{client: client}
}

// List handles GET /balances. Admins see every balance record, everyone else
// their own.
func (h *BalancesHandler) List(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	var (
		balances []domain.LeaveBalance
		err      error
	)
	if sess.User.Role == domain.RoleAdmin {
		balances, err = h.client.ListBalances(c.UserContext())
	} else {
		balances, err = h.client.ListBalancesByUser(c.UserContext(), sess.User.ID)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": balances})
}

// Get handles GET /balances/:id.
func (h *BalancesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	balance, err := h.client.GetBalance(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": balance})
}

// Create handles POST /balances.
func (h *BalancesHandler) Create(c *fiber.Ctx) error {
	var req dto.UpsertBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	balance, err := h.client.CreateBalance(c.UserContext(), backend.UpsertBalanceRequest{
		UserID:    req.UserID,
		LeaveType: req.LeaveType,
		TotalDays: req.TotalDays,
		UsedDays:  req.UsedDays,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": balance})
}

// Update handles PUT /balances/:id.
func (h *BalancesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpsertBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	balance, err := h.client.UpdateBalance(c.UserContext(), id, backend.UpsertBalanceRequest{
		UserID:    req.UserID,
		LeaveType: req.LeaveType,
		TotalDays: req.TotalDays,
		UsedDays:  req.UsedDays,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": balance})
}

// Delete handles DELETE /balances/:id.
func (h *BalancesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.client.DeleteBalance(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
