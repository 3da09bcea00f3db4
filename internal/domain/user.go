package domain

// Role enumerates the account roles recognized by the portal.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// Known reports whether the role is one of the three recognized values.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// CanDecide reports whether the role may approve or reject leave requests.
func (r Role) CanDecide() bool {
	return r == RoleAdmin || r == RoleManager
}

// DisplayName maps a role to its human-readable label.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleManager:
		return "Manager"
	case RoleEmployee:
		return "Employee"
	default:
		return "Unknown"
	}
}

// User is the profile record cached alongside the bearer token.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
