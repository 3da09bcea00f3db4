package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leave-portal/internal/api/dto"
	"github.com/spec-kit/leave-portal/internal/authz"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/service"
	apperrors "github.com/spec-kit/leave-portal/pkg/util"
)

// LeavesHandler serves the leave request views: apply, own list, the
// admin/manager lists, detail, withdraw and decide.
type LeavesHandler struct {
	leaves *service.LeaveService
}

// NewLeavesHandler constructs handler.
func NewLeavesHandler(leaveService *service.LeaveService) *LeavesHandler {
	return &LeavesHandler{leaves: leaveService}
}

// ApplyForm handles GET /apply-leave.
func (h *LeavesHandler) ApplyForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.LeaveFormResponse{LeaveTypes: domain.LeaveTypes}})
}

// Apply handles POST /apply-leave.
func (h *LeavesHandler) Apply(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	var req dto.ApplyLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	created, err := h.leaves.Submit(c.UserContext(), *sess.User, service.SubmitInput{
		LeaveType: req.LeaveType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": leaveResponse(created)})
}

// ListMine handles GET /leave-requests.
func (h *LeavesHandler) ListMine(c *fiber.Ctx) error {
	return h.list(c, service.ScopeMine, c.Query("status", service.StatusFilterAll))
}

// ListAll handles GET /all-leaves.
func (h *LeavesHandler) ListAll(c *fiber.Ctx) error {
	return h.list(c, service.ScopeAll, c.Query("status", service.StatusFilterAll))
}

// Approvals handles GET /leave-approvals. The queue defaults to the pending
// requests awaiting a decision.
func (h *LeavesHandler) Approvals(c *fiber.Ctx) error {
	return h.list(c, service.ScopeAll, c.Query("status", string(domain.LeaveStatusPending)))
}

// Get handles GET /leave-requests/:id.
func (h *LeavesHandler) Get(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	leave, err := h.leaves.Get(c.UserContext(), *sess.User, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponse(leave)})
}

// Withdraw handles DELETE /leave-requests/:id.
func (h *LeavesHandler) Withdraw(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.leaves.Delete(c.UserContext(), *sess.User, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Decide handles PUT /leaves/:id/decision.
func (h *LeavesHandler) Decide(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	updated, err := h.leaves.Decide(c.UserContext(), *sess.User, id, req.Decision)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponse(updated)})
}

func (h *LeavesHandler) list(c *fiber.Ctx, scope service.ListScope, status string) error {
	sess, _ := authz.CurrentSession(c)
	items, err := h.leaves.List(c.UserContext(), *sess.User, scope)
	if err != nil {
		return err
	}
	filtered := service.FilterLeaves(items, status, c.Query("search"))
	resp := dto.LeaveListResponse{
		Items: make([]dto.LeaveResponse, 0, len(filtered)),
		Total: len(items),
	}
	for i := range filtered {
		resp.Items = append(resp.Items, leaveResponse(&filtered[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": raw})
	}
	return id, nil
}

func leaveResponse(leave *domain.LeaveRequest) dto.LeaveResponse {
	return dto.LeaveResponse{
		ID:              leave.ID,
		EmployeeID:      leave.EmployeeID,
		LeaveType:       leave.LeaveType,
		StartDate:       leave.StartDate,
		EndDate:         leave.EndDate,
		Reason:          leave.Reason,
		Status:          leave.Status,
		RejectionReason: leave.RejectionReason,
		DurationDays:    leave.DurationDays(),
	}
}
