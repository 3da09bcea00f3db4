package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/leave-portal/internal/api/dto"
	"github.com/spec-kit/leave-portal/internal/authz"
	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/service"
)

// DashboardHandler serves the landing view: navigation for the session's
// role, status counts over the requests the role can see, and the caller's
// leave balances.
type DashboardHandler struct {
	leaves   *service.LeaveService
	balances *backend.Client
	logger   *zap.Logger
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(leaveService *service.LeaveService, client *backend.Client, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{leaves: leaveService, balances: client, logger: logger}
}

// Dashboard handles GET /dashboard.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	sess, _ := authz.CurrentSession(c)
	actor := *sess.User

	scope := service.ScopeMine
	if actor.Role.CanDecide() {
		scope = service.ScopeAll
	}
	items, err := h.leaves.List(c.UserContext(), actor, scope)
	if err != nil {
		return err
	}

	// Balances are decoration; a failure leaves the dashboard usable.
	balances, err := h.balances.ListBalancesByUser(c.UserContext(), actor.ID)
	if err != nil {
		h.logger.Warn("fetch leave balances failed", zap.Int64("user_id", actor.ID), zap.Error(err))
		balances = []domain.LeaveBalance{}
	}

	resp := dto.DashboardResponse{
		User:     userResponse(actor),
		Links:    append([]authz.NavLink{authz.DashboardLink}, authz.LinksForRole(actor.Role)...),
		Counts:   countByStatus(items),
		Balances: balances,
	}
	return c.JSON(fiber.Map{"data": resp})
}

func countByStatus(items []domain.LeaveRequest) dto.LeaveCounts {
	counts := dto.LeaveCounts{}
	for _, item := range items {
		switch item.Status {
		case domain.LeaveStatusPending:
			counts.Pending++
		case domain.LeaveStatusApproved:
			counts.Approved++
		case domain.LeaveStatusRejected:
			counts.Rejected++
		}
	}
	return counts
}
