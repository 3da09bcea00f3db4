package authz

import "github.com/spec-kit/leave-portal/internal/domain"

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Allow lets the guarded content render.
	Allow Decision = iota
	// RedirectLogin signals the caller to send the visitor to the login page.
	RedirectLogin
	// RedirectDashboard signals a role mismatch on an otherwise valid session.
	RedirectDashboard
)

// Requirement describes what a navigation target demands of the session. An
// empty role set means any authenticated user may proceed.
type Requirement struct {
	Roles []domain.Role
}

// AnyAuthenticated requires only a valid session.
func AnyAuthenticated() Requirement {
	return Requirement{}
}

// RequireRoles restricts a target to the given roles.
func RequireRoles(roles ...domain.Role) Requirement {
	return Requirement{Roles: roles}
}

// Check evaluates the gate for one navigation. It is deliberately stateless:
// callers re-run it on every navigation so a session cleared mid-use is
// caught before the next protected view renders.
func Check(sess domain.Session, req Requirement) Decision {
	if !sess.Authenticated() {
		return RedirectLogin
	}
	if len(req.Roles) == 0 {
		return Allow
	}
	role := sess.Role()
	for _, allowed := range req.Roles {
		if role == allowed {
			return Allow
		}
	}
	return RedirectDashboard
}

// HasPermission is the single predicate views consult instead of re-deriving
// role logic locally.
func HasPermission(sess domain.Session, req Requirement) bool {
	return Check(sess, req) == Allow
}
