package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ireserve/ireserve-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp["error"]
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"token missing", domain.ErrTokenMissing, http.StatusUnauthorized, "token required"},
		{"token invalid", domain.ErrTokenInvalid, http.StatusForbidden, "invalid or expired token"},
		{"account inactive", domain.ErrAccountInactive, http.StatusForbidden, "account is not active"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"admin exists", domain.ErrAdminExists, http.StatusConflict, "admin already exists"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"admin not found", domain.ErrAdminNotFound, http.StatusNotFound, "admin not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := renderError(t, tt.err)
			if code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, code)
			}
			if msg != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("%w: username cannot be empty", domain.ErrInvalidInput)

	code, msg := renderError(t, wrapped)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if msg != wrapped.Error() {
		t.Fatalf("expected %q, got %q", wrapped.Error(), msg)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("unexpected mapping: %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: socket was unexpectedly closed"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details leaked: %q", msg)
	}
}
