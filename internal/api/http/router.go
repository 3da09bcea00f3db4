package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leave-portal/internal/api/http/handlers"
	"github.com/spec-kit/leave-portal/internal/authz"
	"github.com/spec-kit/leave-portal/internal/config"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Leaves        *handlers.LeavesHandler
	Users         *handlers.UsersHandler
	Notifications *handlers.NotificationsHandler
	Balances      *handlers.BalancesHandler
	Dashboard     *handlers.DashboardHandler
	SessionStore  session.Store
	SessionCfg    config.SessionConfig
}

// RegisterRoutes wires the navigation surface. Every protected route runs
// the session middleware and an authorization gate on each request.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(authz.SessionMiddleware(cfg.SessionStore, cfg.SessionCfg))

	// Public routes.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/login", fiber.StatusFound)
	})
	app.Get("/login", cfg.Auth.Session)
	app.Post("/login", cfg.Auth.Login)
	app.Post("/register", cfg.Auth.Register)
	app.Post("/logout", cfg.Auth.Logout)

	// Any authenticated user.
	authed := app.Group("", authz.Gate(authz.AnyAuthenticated()))
	authed.Get("/session", cfg.Auth.Session)
	authed.Get("/dashboard", cfg.Dashboard.Dashboard)
	authed.Get("/apply-leave", cfg.Leaves.ApplyForm)
	authed.Post("/apply-leave", cfg.Leaves.Apply)
	authed.Get("/leave-requests", cfg.Leaves.ListMine)
	authed.Get("/leave-requests/:id", cfg.Leaves.Get)
	authed.Delete("/leave-requests/:id", cfg.Leaves.Withdraw)
	authed.Get("/profile", cfg.Users.Profile)
	authed.Put("/profile", cfg.Users.UpdateProfile)
	authed.Get("/notifications", cfg.Notifications.List)
	authed.Put("/notifications/:id/read", cfg.Notifications.MarkRead)
	authed.Get("/balances", cfg.Balances.List)

	// Role-restricted routes.
	app.Get("/all-leaves", authz.Gate(authz.RequireRoles(domain.RoleAdmin)), cfg.Leaves.ListAll)
	app.Get("/leave-approvals", authz.Gate(authz.RequireRoles(domain.RoleManager)), cfg.Leaves.Approvals)
	app.Put("/leaves/:id/decision", authz.Gate(authz.RequireRoles(domain.RoleManager, domain.RoleAdmin)), cfg.Leaves.Decide)

	users := app.Group("/users", authz.Gate(authz.RequireRoles(domain.RoleAdmin, domain.RoleManager)))
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	admin := app.Group("/balances", authz.Gate(authz.RequireRoles(domain.RoleAdmin)))
	admin.Post("/", cfg.Balances.Create)
	admin.Get("/:id", cfg.Balances.Get)
	admin.Put("/:id", cfg.Balances.Update)
	admin.Delete("/:id", cfg.Balances.Delete)
}
