// Package routes holds the API route table. Every endpoint is declared once,
// together with whether it is public and which roles may call it, and Mount
// derives each handler chain from that declaration.
package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknity/tasknity-api/internal/handlers"
	"github.com/tasknity/tasknity-api/internal/middleware"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/rbac"
)

// Route is one entry of the table. Roles is the whitelist checked after
// authentication; nil admits any authenticated caller.
type Route struct {
	Method  string
	Path    string
	Public  bool
	Roles   []models.Role
	Handler gin.HandlerFunc
}

// Handlers groups the resource handlers the table points at.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Users      *handlers.UserHandler
	Projects   *handlers.ProjectHandler
	Tasks      *handlers.TaskHandler
	Attendance *handlers.AttendanceHandler
	Leaves     *handlers.LeaveHandler
	Expenses   *handlers.ExpenseHandler
	Analytics  *handlers.AnalyticsHandler
	Kudos      *handlers.KudosHandler
	Meetings   *handlers.MeetingHandler
	Invoices   *handlers.InvoiceHandler
}

// Mount registers table on r. Protected routes run authenticate, then the
// role guard, then the handler. It panics on a public route that declares
// roles, since such a route could never check them.
func Mount(r gin.IRoutes, table []Route, authenticate gin.HandlerFunc) {
	for _, rt := range table {
		if rt.Public {
			if len(rt.Roles) > 0 {
				panic(fmt.Sprintf("routes: public route %s %s declares roles", rt.Method, rt.Path))
			}
			r.Handle(rt.Method, rt.Path, rt.Handler)
			continue
		}
		r.Handle(rt.Method, rt.Path, authenticate, middleware.RequireRoles(rt.Roles...), rt.Handler)
	}
}

// Table returns every API route, relative to the /api prefix.
func Table(h Handlers) []Route {
	staff := rbac.Staff
	contributors := rbac.Contributors

	return []Route{
		// Auth
		{Method: http.MethodPost, Path: "/auth/register", Public: true, Handler: h.Auth.Register},
		{Method: http.MethodPost, Path: "/auth/login", Public: true, Handler: h.Auth.Login},
		{Method: http.MethodPost, Path: "/auth/logout", Public: true, Handler: h.Auth.Logout},
		{Method: http.MethodGet, Path: "/auth/me", Handler: h.Auth.Me},
		{Method: http.MethodGet, Path: "/auth/permissions", Handler: h.Auth.Permissions},

		// Users
		{Method: http.MethodGet, Path: "/users", Roles: contributors, Handler: h.Users.List},
		{Method: http.MethodGet, Path: "/users/me", Handler: h.Users.Me},
		{Method: http.MethodGet, Path: "/users/:id", Roles: contributors, Handler: h.Users.Get},
		{Method: http.MethodPatch, Path: "/users/:id", Roles: staff, Handler: h.Users.Update},
		{Method: http.MethodDelete, Path: "/users/:id", Roles: staff, Handler: h.Users.Delete},

		// Projects
		{Method: http.MethodGet, Path: "/projects", Handler: h.Projects.List},
		{Method: http.MethodGet, Path: "/projects/:id", Handler: h.Projects.Get},
		{Method: http.MethodPost, Path: "/projects", Roles: staff, Handler: h.Projects.Create},
		{Method: http.MethodPatch, Path: "/projects/:id", Roles: staff, Handler: h.Projects.Update},
		{Method: http.MethodDelete, Path: "/projects/:id", Roles: staff, Handler: h.Projects.Delete},

		// Tasks
		{Method: http.MethodGet, Path: "/tasks", Handler: h.Tasks.List},
		{Method: http.MethodGet, Path: "/tasks/classified", Roles: staff, Handler: h.Tasks.ListClassified},
		{Method: http.MethodGet, Path: "/tasks/project/:projectId", Roles: contributors, Handler: h.Tasks.ListByProject},
		{Method: http.MethodGet, Path: "/tasks/:id", Handler: h.Tasks.Get},
		{Method: http.MethodPost, Path: "/tasks", Roles: contributors, Handler: h.Tasks.Create},
		{Method: http.MethodPatch, Path: "/tasks/:id", Roles: contributors, Handler: h.Tasks.Update},
		{Method: http.MethodDelete, Path: "/tasks/:id", Roles: staff, Handler: h.Tasks.Delete},

		// Attendance
		{Method: http.MethodPost, Path: "/attendance", Roles: contributors, Handler: h.Attendance.Mark},
		{Method: http.MethodGet, Path: "/attendance", Roles: staff, Handler: h.Attendance.List},
		{Method: http.MethodGet, Path: "/attendance/today", Handler: h.Attendance.Today},
		{Method: http.MethodGet, Path: "/attendance/my", Handler: h.Attendance.Mine},
		{Method: http.MethodGet, Path: "/attendance/user/:userId", Roles: staff, Handler: h.Attendance.ByUser},

		// Leaves
		{Method: http.MethodPost, Path: "/leaves", Roles: contributors, Handler: h.Leaves.Create},
		{Method: http.MethodGet, Path: "/leaves", Roles: staff, Handler: h.Leaves.List},
		{Method: http.MethodGet, Path: "/leaves/my", Handler: h.Leaves.Mine},
		{Method: http.MethodPatch, Path: "/leaves/:id", Roles: staff, Handler: h.Leaves.Decide},

		// Expenses
		{Method: http.MethodPost, Path: "/expenses", Roles: contributors, Handler: h.Expenses.Create},
		{Method: http.MethodGet, Path: "/expenses", Roles: staff, Handler: h.Expenses.List},
		{Method: http.MethodGet, Path: "/expenses/my", Handler: h.Expenses.Mine},
		{Method: http.MethodPatch, Path: "/expenses/:id", Roles: staff, Handler: h.Expenses.Decide},

		// Analytics
		{Method: http.MethodGet, Path: "/analytics/kpis", Roles: staff, Handler: h.Analytics.KPIs},
		{Method: http.MethodGet, Path: "/analytics/productivity", Roles: staff, Handler: h.Analytics.Productivity},
		{Method: http.MethodGet, Path: "/analytics/insights", Handler: h.Analytics.Insights},

		// Kudos
		{Method: http.MethodGet, Path: "/kudos", Handler: h.Kudos.List},
		{Method: http.MethodGet, Path: "/kudos/leaderboard", Handler: h.Kudos.Leaderboard},
		{Method: http.MethodGet, Path: "/kudos/user/:userId", Handler: h.Kudos.ByUser},
		{Method: http.MethodPost, Path: "/kudos", Handler: h.Kudos.Give},

		// Meetings
		{Method: http.MethodGet, Path: "/meetings", Handler: h.Meetings.List},
		{Method: http.MethodGet, Path: "/meetings/upcoming", Handler: h.Meetings.Upcoming},
		{Method: http.MethodGet, Path: "/meetings/my", Handler: h.Meetings.Mine},
		{Method: http.MethodGet, Path: "/meetings/:id", Handler: h.Meetings.Get},
		{Method: http.MethodPost, Path: "/meetings", Handler: h.Meetings.Create},
		{Method: http.MethodPatch, Path: "/meetings/:id", Handler: h.Meetings.Update},
		{Method: http.MethodDelete, Path: "/meetings/:id", Roles: staff, Handler: h.Meetings.Delete},

		// Invoices
		{Method: http.MethodGet, Path: "/invoices", Handler: h.Invoices.List},
		{Method: http.MethodGet, Path: "/invoices/:id", Handler: h.Invoices.Get},
		{Method: http.MethodPost, Path: "/invoices", Handler: h.Invoices.Create},
		{Method: http.MethodPatch, Path: "/invoices/:id", Handler: h.Invoices.Update},
		{Method: http.MethodDelete, Path: "/invoices/:id", Handler: h.Invoices.Delete},
	}
}
