package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ireserve/ireserve-api/internal/core/token"
)

// Auth validates the bearer access token and injects the resolved subject
// and role into the request context. A missing or malformed header is 401;
// a presented token that fails verification is 403 — the two cases stay
// distinct so clients can tell them apart.
func Auth(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.VerifyAccess(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			c.Set("subject_id", claims.Subject)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}
