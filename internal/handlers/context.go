package handlers

import (
	"github.com/labstack/echo/v4"

	"gymapi/internal/middleware"
)

// currentUserID reads the caller's id placed in the request context by
// the auth middleware.
func currentUserID(c echo.Context) uint {
	id, _ := c.Get(middleware.CtxUserID).(uint)
	return id
}
