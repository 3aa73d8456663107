// Package rbac maps roles to the capabilities they grant.
package rbac

import (
	"slices"

	"github.com/tasknity/tasknity-api/internal/models"
)

type Capability string

const (
	ManageProjects Capability = "manage-projects"
	ManageTasks    Capability = "manage-tasks"
	ViewAnalytics  Capability = "view-analytics"
	ManageTeam     Capability = "manage-team"
	MarkAttendance Capability = "mark-attendance"
	ManageExpenses Capability = "manage-expenses"
	ViewClassified Capability = "view-classified"
)

// All lists every capability in display order.
var All = []Capability{
	ManageProjects,
	ManageTasks,
	ViewAnalytics,
	ManageTeam,
	MarkAttendance,
	ManageExpenses,
	ViewClassified,
}

var grants = map[models.Role][]Capability{
	models.RoleOwner:  All,
	models.RoleAdmin:  All,
	models.RoleMember: {ManageTasks, ViewAnalytics, MarkAttendance},
	models.RoleViewer: {ViewAnalytics},
}

// Staff is the whitelist used by every Owner/Admin-only route.
var Staff = []models.Role{models.RoleOwner, models.RoleAdmin}

// Contributors adds members to Staff.
var Contributors = []models.Role{models.RoleOwner, models.RoleAdmin, models.RoleMember}

// Satisfies reports whether role passes a route whitelist. Owner passes every
// whitelist and an empty whitelist admits any role.
func Satisfies(role models.Role, whitelist []models.Role) bool {
	if !role.Valid() {
		return false
	}
	if role == models.RoleOwner || len(whitelist) == 0 {
		return true
	}
	return slices.Contains(whitelist, role)
}

func Can(role models.Role, capability Capability) bool {
	return slices.Contains(grants[role], capability)
}

// Capabilities returns the capability set granted to role, keyed for JSON.
func Capabilities(role models.Role) map[Capability]bool {
	out := make(map[Capability]bool, len(All))
	for _, c := range All {
		out[c] = Can(role, c)
	}
	return out
}
