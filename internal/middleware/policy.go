package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gymapi/internal/models"
)

// Requirement describes who may perform one action on one resource.
// An empty role list admits any authenticated caller. AllowSelf also
// admits a caller whose user id matches the :id path parameter.
type Requirement struct {
	Roles     []models.UserRole
	AllowSelf bool
}

var adminOnly = []models.UserRole{models.RoleAdmin}
var memberOnly = []models.UserRole{models.RoleMember}

// policies is the single authorization table for the API. Every route
// is gated here; a resource/action pair with no entry is open to any
// authenticated caller.
var policies = map[string]Requirement{
	"users.list":         {Roles: adminOnly},
	"users.get":          {Roles: adminOnly, AllowSelf: true},
	"users.create":       {Roles: adminOnly},
	"users.update":       {Roles: adminOnly, AllowSelf: true},
	"users.delete":       {Roles: adminOnly},
	"users.promote":      {Roles: adminOnly},
	"users.distribution": {Roles: adminOnly},

	"instructor.list":   {Roles: adminOnly},
	"instructor.create": {Roles: adminOnly},
	"instructor.delete": {Roles: adminOnly},

	"member.list":   {Roles: adminOnly},
	"member.create": {Roles: adminOnly},
	"member.delete": {Roles: adminOnly},

	"subscriptions.my":  {Roles: memberOnly},
	"ptsession.book":    {Roles: memberOnly},
	"groupclass.enroll": {Roles: memberOnly},
	"dashboard.view":    {Roles: memberOnly},
}

// Authorize gates a route by the policy table. Must run after
// RequireAuth.
func Authorize(resource, action string) echo.MiddlewareFunc {
	req := policies[resource+"."+action]

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(req.Roles) == 0 {
				return next(c)
			}

			if req.AllowSelf {
				userID, _ := c.Get(CtxUserID).(uint)
				if c.Param("id") == strconv.FormatUint(uint64(userID), 10) {
					return next(c)
				}
			}

			role, _ := c.Get(CtxRole).(models.UserRole)
			for _, allowed := range req.Roles {
				if role == allowed {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
	}
}
