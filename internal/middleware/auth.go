package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"gymapi/internal/services"
)

// Context keys populated by RequireAuth for downstream handlers.
const (
	CtxUserID  = "userID"
	CtxName    = "userName"
	CtxEmail   = "userEmail"
	CtxRole    = "userRole"
	CtxIsAdmin = "isAdmin"
)

// RequireAuth returns a middleware that verifies bearer tokens
func RequireAuth(tokens *services.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == header {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			// Set user info in context for downstream handlers
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxName, claims.Name)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxIsAdmin, claims.IsAdmin)

			return next(c)
		}
	}
}
