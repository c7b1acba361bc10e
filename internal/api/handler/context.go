package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSubject extracts the subject identifier injected by the Auth middleware.
// A missing subject means the middleware never ran on this route — reject
// with 401 before any service call.
func ctxSubject(c echo.Context) (string, error) {
	subjectID, _ := c.Get("subject_id").(string)
	if subjectID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return subjectID, nil
}
