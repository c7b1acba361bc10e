package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ireserve/ireserve-api/internal/core/domain"
	"github.com/ireserve/ireserve-api/internal/core/ports"
)

// SuperAdmin gates routes on the super-admin flag. It must run after Auth:
// the subject is looked up in the store on every request rather than trusted
// from token claims, so demotion takes effect immediately. A missing record
// or an unset flag is 403; a store fault surfaces as an internal error.
func SuperAdmin(repo ports.AdminRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subjectID, _ := c.Get("subject_id").(string)

			admin, err := repo.FindByID(c.Request().Context(), subjectID)
			if err != nil {
				if errors.Is(err, domain.ErrAdminNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, "super admin only")
				}
				return err
			}
			if !admin.IsSuperAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "super admin only")
			}

			return next(c)
		}
	}
}
