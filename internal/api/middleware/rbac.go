package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC enforces a static role allow-list captured at route registration.
// Requests with no resolved role or an unknown role are denied; roles are
// never default-allowed.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
