package authz

import "github.com/spec-kit/leave-portal/internal/domain"

// NavLink is one entry in the role-derived navigation menu.
type NavLink struct {
	Route string `json:"route"`
	Label string `json:"label"`
}

// DashboardLink is implicitly available to every authenticated user and is
// not part of the role-derived set.
var DashboardLink = NavLink{Route: "/dashboard", Label: "Dashboard"}

// LinksForRole derives the navigation menu for a role. Unrecognized or
// absent roles yield an empty list beyond the implicit dashboard link; that
// is a defined fallback, not an error.
func LinksForRole(role domain.Role) []NavLink {
	switch role {
	case domain.RoleEmployee:
		return []NavLink{
			{Route: "/profile", Label: "Profile"},
			{Route: "/apply-leave", Label: "Apply Leave"},
			{Route: "/leave-requests", Label: "My Leave Requests"},
		}
	case domain.RoleManager:
		return []NavLink{
			{Route: "/profile", Label: "Profile"},
			{Route: "/leave-approvals", Label: "Leave Requests"},
		}
	case domain.RoleAdmin:
		return []NavLink{
			{Route: "/profile", Label: "Profile"},
			{Route: "/users", Label: "Manage Employees"},
			{Route: "/all-leaves", Label: "Leave Requests"},
		}
	default:
		return []NavLink{}
	}
}
