package authz

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/config"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/session"
	apperrors "github.com/spec-kit/leave-portal/pkg/util"
)

const (
	sessionKey   = "portal_session"
	sessionIDKey = "portal_session_id"

	loginRoute     = "/login"
	dashboardRoute = "/dashboard"
)

// SessionMiddleware resolves the durable session for every request. The
// session is re-loaded on each navigation rather than cached so a session
// cleared elsewhere (a backend 401, a logout in another tab) is seen before
// the next protected view renders.
func SessionMiddleware(store session.Store, cfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cfg.CookieName)
		if id == "" {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cfg.CookieName,
				Value:    id,
				HTTPOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		sess, err := store.Load(c.UserContext(), id)
		if err != nil {
			return apperrors.NewInternalError(err)
		}

		c.Locals(sessionIDKey, id)
		c.Locals(sessionKey, sess)

		ctx := session.ContextWithID(c.UserContext(), id)
		if sess.Authenticated() {
			ctx = backend.WithToken(ctx, sess.Token)
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// Gate guards a navigation target with an authorization requirement,
// mirroring the protected-route semantics: no session goes to login, a role
// mismatch goes to the dashboard.
func Gate(req Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := CurrentSession(c)
		switch Check(sess, req) {
		case RedirectLogin:
			return c.Redirect(loginRoute, fiber.StatusFound)
		case RedirectDashboard:
			return c.Redirect(dashboardRoute, fiber.StatusFound)
		}
		return c.Next()
	}
}

// CurrentSession retrieves the resolved session and its id.
func CurrentSession(c *fiber.Ctx) (domain.Session, string) {
	sess, _ := c.Locals(sessionKey).(domain.Session)
	id, _ := c.Locals(sessionIDKey).(string)
	return sess, id
}
